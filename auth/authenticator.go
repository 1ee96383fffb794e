package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/peterdinis/Wheel-Verse/models"
	"gorm.io/gorm"
)

// ErrInvalidCredentials covers every credential failure: unknown email,
// federated user without a password, wrong password. Callers must not
// distinguish them, to avoid leaking which emails are registered.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Identity is the minimal shape handed to the token issuer after a
// successful login. It never carries the password hash.
type Identity struct {
	ID    string
	Name  string
	Email string
}

// NormalizeEmail lower-cases and trims an email address. Applied at
// registration and at every lookup so casing can never split or collide
// accounts.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate verifies an email/password pair against the user table.
func Authenticate(db *gorm.DB, email, password string) (*Identity, error) {
	var user models.User
	err := db.Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if user.PasswordHash == nil || !CheckPassword(password, *user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return &Identity{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}
