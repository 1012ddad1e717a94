package services

import (
	"errors"

	"github.com/AnshRaj112/placement-tracker-backend/pkg/utils"
)

var (
	// ErrUserExists is returned when registering an email that is already taken.
	ErrUserExists = errors.New("user exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTopicNotFound is returned when a problem references a topic the caller does not own.
	ErrTopicNotFound = errors.New("topic not found")

	// ErrSubjectNotFound is returned when a valid token names a user that no longer exists.
	ErrSubjectNotFound = errors.New("token subject not found")
)

// ValidationError carries every failing field of a rejected input.
type ValidationError struct {
	Result utils.ValidationResult
}

func (e *ValidationError) Error() string {
	return e.Result.Message()
}

// check turns a failed validation result into a *ValidationError.
func check(r utils.ValidationResult) error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Result: r}
}
