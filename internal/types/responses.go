package types

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthenticatedUser is the identity the auth middleware stores on the
// request context.
type AuthenticatedUser struct {
	ID    uint
	Name  string
	Email string
}
