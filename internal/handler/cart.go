package handler

import (
	"encoding/json"
	"net/http"

	"github.com/storeroomlabs/storeroom/internal/checkout"
	"github.com/storeroomlabs/storeroom/internal/domain"
	"github.com/storeroomlabs/storeroom/internal/logger"
)

// CartRequest is one cart mutation. ADD and REMOVE address a single line by
// (item_id, checkout_type); CLEAR drops the whole cart and needs neither.
type CartRequest struct {
	UserID       string `json:"user_id" validate:"required,max=100"`
	LocationID   string `json:"location_id" validate:"required,max=100"`
	Action       string `json:"action" validate:"required,cart_action"`
	ItemID       string `json:"item_id" validate:"max=100"`
	CheckoutType string `json:"checkout_type" validate:"checkout_type"`
	Quantity     int    `json:"quantity" validate:"min=0,max=10000"`
}

// HandleCartMutation applies an ADD, REMOVE or CLEAR to the user's cart
// @Summary Mutate cart
// @Description Add to, remove from, or clear the user's cart at a location
// @Tags cart
// @Accept json
// @Produce json
// @Param request body CartRequest true "Cart mutation"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /cart [post]
func HandleCartMutation(svc checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode cart request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid cart request", "error", err)
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"errors":  FormatValidationError(err),
			})
			return
		}

		err := svc.MutateCart(r.Context(), checkout.CartMutation{
			UserID:       req.UserID,
			LocationID:   req.LocationID,
			Action:       domain.CartAction(req.Action),
			ItemID:       req.ItemID,
			CheckoutType: domain.CheckoutType(req.CheckoutType),
			Quantity:     req.Quantity,
		})
		if err != nil {
			log.Error("Failed to mutate cart", "error", err, "user_id", req.UserID, "action", req.Action)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}
