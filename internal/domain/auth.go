package domain

// Subject is the authenticated principal. It never carries the password.
type Subject struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
