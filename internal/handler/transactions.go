package handler

import (
	"fmt"
	"net/http"

	"github.com/storeroomlabs/storeroom/internal/checkout"
	"github.com/storeroomlabs/storeroom/internal/domain"
	"github.com/storeroomlabs/storeroom/internal/logger"
)

// TransactionsResponse lists transactions for a location
type TransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// HandleGetPendingTransactions lists a location's transactions awaiting check-in
// @Summary List pending transactions
// @Description Returns the location's temporary checkouts that have not been checked back in
// @Tags checkout
// @Produce json
// @Param location_id query string true "Location ID"
// @Success 200 {object} TransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Router /transactions [get]
func HandleGetPendingTransactions(svc checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		locationID := r.URL.Query().Get("location_id")
		if locationID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "location_id"))
			return
		}

		txns, err := svc.PendingTransactions(r.Context(), locationID)
		if err != nil {
			log.Error("Failed to list pending transactions", "error", err, "location_id", locationID)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		if txns == nil {
			txns = []domain.Transaction{}
		}
		respondJSON(w, http.StatusOK, TransactionsResponse{Transactions: txns})
	}
}
