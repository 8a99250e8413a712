package handler

import (
	"encoding/json"
	"net/http"

	"github.com/storeroomlabs/storeroom/internal/checkout"
	"github.com/storeroomlabs/storeroom/internal/logger"
)

// CheckInRequest is the body of the check-in endpoint
type CheckInRequest struct {
	TransactionIDs []string `json:"transaction_ids" validate:"required,min=1,max=100,dive,required,max=100"`
}

// CheckInResponse reports a completed check-in
type CheckInResponse struct {
	Success      bool                  `json:"success"`
	Transactions []checkout.CheckinRef `json:"transactions"`
}

// HandleCheckIn resolves pending temporary transactions
// @Summary Check borrowed items back in
// @Description Atomically restores stock from each transaction's snapshot and marks the transactions COMPLETED. All selected transactions succeed or none do.
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body CheckInRequest true "Transaction ids to resolve"
// @Success 200 {object} CheckInResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /checkin [post]
func HandleCheckIn(svc checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CheckInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode check-in request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid check-in request", "error", err)
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"errors":  FormatValidationError(err),
			})
			return
		}

		result, err := svc.CheckIn(r.Context(), req.TransactionIDs)
		if err != nil {
			log.Error("Check-in failed", "error", err, "transaction_count", len(req.TransactionIDs))
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, CheckInResponse{
			Success:      true,
			Transactions: result.Transactions,
		})
	}
}
