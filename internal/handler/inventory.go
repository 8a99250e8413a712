package handler

import (
	"fmt"
	"net/http"

	"github.com/storeroomlabs/storeroom/internal/checkout"
	"github.com/storeroomlabs/storeroom/internal/domain"
	"github.com/storeroomlabs/storeroom/internal/logger"
)

// InventoryResponse is the reconciled inventory view for one user at one location
type InventoryResponse struct {
	Location *domain.InventoryLocation `json:"location"`
	Tags     []domain.Tag              `json:"tags,omitempty"`
	Items    []domain.AdjustedItem     `json:"items"`
	Cart     *domain.Cart              `json:"cart,omitempty"`
	Diff     map[string]int            `json:"diff,omitempty"`
}

// HandleGetInventory serves the reconciled inventory view
// @Summary Get reconciled inventory
// @Description Returns location items with availability adjusted for the user's cart. When stock dropped below what the cart holds, the cart view is shrunk (temporary lines first) and the removals are reported in diff.
// @Tags inventory
// @Produce json
// @Param user_id query string true "User ID"
// @Param location_id query string true "Location ID"
// @Success 200 {object} InventoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /inventory [get]
func HandleGetInventory(svc checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "user_id"))
			return
		}
		locationID := r.URL.Query().Get("location_id")
		if locationID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "location_id"))
			return
		}

		result, err := svc.ReconcileInventory(r.Context(), userID, locationID)
		if err != nil {
			log.Error("Failed to reconcile inventory", "error", err, "user_id", userID, "location_id", locationID)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, InventoryResponse{
			Location: result.Location,
			Tags:     result.Tags,
			Items:    result.Items,
			Cart:     result.Cart,
			Diff:     result.Diff,
		})
	}
}
