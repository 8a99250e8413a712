package domain

// AccountType classifies a user account
type AccountType string

const (
	AccountTypeAdmin  AccountType = "ADMIN"
	AccountTypeMember AccountType = "MEMBER"
	AccountTypeGuest  AccountType = "GUEST"
)

// User represents a registered user
type User struct {
	ID          string      `json:"user_id"`
	Username    string      `json:"username"`
	AccountType AccountType `json:"account_type"`
}

// IsGuest reports whether the user checks out as a guest. Guest checkouts
// record a display name on the transaction instead of an account reference.
func (u User) IsGuest() bool {
	return u.AccountType == AccountTypeGuest
}
