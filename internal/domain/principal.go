package domain

// Principal captures the authenticated caller identity attached to a request
// by the auth middleware.
type Principal struct {
	UserID   uint
	PublicID string
	Email    string
}
