package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/storeroomlabs/storeroom/internal/checkout"
	"github.com/storeroomlabs/storeroom/internal/domain"
	"github.com/storeroomlabs/storeroom/internal/logger"
)

// CheckoutLineRequest is one reconciled cart line submitted for commit
type CheckoutLineRequest struct {
	Item     domain.Item `json:"item"`
	Quantity int         `json:"quantity" validate:"min=1,max=10000"`
}

// CheckoutCartRequest carries the reconciled cart partitioned by checkout type
type CheckoutCartRequest struct {
	ID             string                `json:"id" validate:"required,max=100"`
	PermanentItems []CheckoutLineRequest `json:"permanent_items" validate:"dive"`
	TemporaryItems []CheckoutLineRequest `json:"temporary_items" validate:"dive"`
}

// CheckoutRequest is the body of the checkout endpoint
type CheckoutRequest struct {
	LocationID  string              `json:"location_id" validate:"required,max=100"`
	UserID      string              `json:"user_id" validate:"required,max=100"`
	Note        string              `json:"note" validate:"max=500,excludesall=\x00"`
	DisplayName string              `json:"display_name" validate:"max=100,excludesall=\x00\n\r\t"`
	Cart        CheckoutCartRequest `json:"cart"`
}

// CheckoutResponse reports a committed checkout
type CheckoutResponse struct {
	Success      bool                      `json:"success"`
	Message      string                    `json:"message"`
	LinkID       string                    `json:"link_id,omitempty"`
	Transactions []checkout.TransactionRef `json:"transactions"`
}

// HandleCheckout commits a reconciled cart
// @Summary Commit a checkout
// @Description Atomically decrements stock, mints one transaction per checkout type, and deletes the cart. Fails as a whole with reason NO_STOCK when any line exceeds remaining stock.
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body CheckoutRequest true "Checkout details"
// @Success 200 {object} CheckoutResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /checkout [post]
func HandleCheckout(svc checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CheckoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode checkout request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid checkout request", "error", err)
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"errors":  FormatValidationError(err),
			})
			return
		}

		result, err := svc.Checkout(r.Context(), checkout.CheckoutRequest{
			LocationID:     req.LocationID,
			UserID:         req.UserID,
			Note:           req.Note,
			DisplayName:    req.DisplayName,
			CartID:         req.Cart.ID,
			PermanentItems: toCheckoutLines(req.Cart.PermanentItems),
			TemporaryItems: toCheckoutLines(req.Cart.TemporaryItems),
		})
		if err != nil {
			log.Error("Checkout failed", "error", err, "user_id", req.UserID, "location_id", req.LocationID)

			if errors.Is(err, domain.ErrStockExhausted) {
				respondErrorReason(w, http.StatusConflict, ReasonNoStock, ErrMsgStockExhaustedError)
				return
			}
			if errors.Is(err, domain.ErrWriteConflict) {
				// Retry bound exhausted under contention. The 409 marks the
				// request as safe to resubmit; the reason code keeps the
				// failure contract to NO_STOCK or SERVER_ERROR.
				respondErrorReason(w, http.StatusConflict, ReasonServerError, ErrMsgWriteConflictError)
				return
			}

			status, message := mapServiceErrorToUserMessage(err)
			if status >= http.StatusInternalServerError {
				respondErrorReason(w, status, ReasonServerError, message)
				return
			}
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, CheckoutResponse{
			Success:      true,
			Message:      result.Message,
			LinkID:       result.LinkID,
			Transactions: result.Transactions,
		})
	}
}

func toCheckoutLines(lines []CheckoutLineRequest) []checkout.CheckoutLine {
	if len(lines) == 0 {
		return nil
	}
	out := make([]checkout.CheckoutLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, checkout.CheckoutLine{Item: line.Item, Quantity: line.Quantity})
	}
	return out
}
