package postgres

// Error message formats for repository operations
const (
	ErrMsgFailedToBeginTx = "failed to begin transaction"
	ErrMsgRowIteration    = "row iteration error"
)
