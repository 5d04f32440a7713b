package domain

// User is the authenticated account identity as returned by the backend.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
