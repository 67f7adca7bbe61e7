package domain

// UserRegistered is published after Register persists a new user. Subscribers
// (OTP issuance, default-role assignment) run asynchronously; registration
// success never depends on their outcome.
type UserRegistered struct {
	UserID   string
	Email    string
	Username string
}
