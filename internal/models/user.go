package models

import (
	"time"
)

// User is the credential store entity. PasswordHash is never serialized.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`

	// Internal only - never returned in JSON
	PasswordHash string `json:"-"`
}

// Public returns a copy of the user with the password hash cleared.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.PasswordHash = ""
	return &cp
}
