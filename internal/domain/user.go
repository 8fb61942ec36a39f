package domain

import "time"

// User represents an administrator account able to manage site content.
// The IsAdmin flag is stored but never consulted for authorization; access
// control is authenticated-or-not.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
