package domain

import "time"

// User is the domain entity for a user account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	// UserType is stored for future role support; the auth flow does not branch on it.
	UserType  string
	CreatedAt time.Time
}
