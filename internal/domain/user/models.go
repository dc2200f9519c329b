package user

import (
	"errors"
	"regexp"
	"time"
	"unicode"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// emailPattern is a light format check, not RFC 5322. The store's unique
// index on email is the real gatekeeper.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateParams struct {
	Email        string
	PasswordHash string
	Name         *string
}

// IsValidEmail checks the basic shape of an email address.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// PasswordErrors returns the strength rules a candidate password violates:
// at least 6 characters, one uppercase, one lowercase, one digit.
func PasswordErrors(password string) []string {
	var errs []string

	if len(password) < 6 {
		errs = append(errs, "Password must be at least 6 characters long")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		errs = append(errs, "Password must contain at least one uppercase letter")
	}
	if !hasLower {
		errs = append(errs, "Password must contain at least one lowercase letter")
	}
	if !hasDigit {
		errs = append(errs, "Password must contain at least one number")
	}

	return errs
}
