package domain

// User is a stored account able to sign in.
type User struct {
	ID           string
	Email        string
	PasswordHash string
}

// Subject returns the sanitized principal for the user.
func (u *User) Subject() Subject {
	return Subject{ID: u.ID, Email: u.Email}
}
