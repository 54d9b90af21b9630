package identity

import (
	"net/mail"
	"strings"
	"time"

	"github.com/ikpixels/marketplace/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is a variable so tests can lower it
var bcryptCost = 12

// Account is a login identity. Marketplace-specific data lives on Client.
type Account struct {
	shared.BaseAggregateRoot
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	IsAdmin      bool
	LastLoginAt  *time.Time
}

// NewAccount validates the credentials and hashes the password
func NewAccount(username, email, password string) (*Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, shared.InvalidInput("username is required")
	}
	if len(username) > 150 {
		return nil, shared.InvalidInput("username cannot exceed 150 characters")
	}
	if password == "" {
		return nil, shared.InvalidInput("password is required")
	}
	if len(password) < 8 {
		return nil, shared.InvalidInput("password must be at least 8 characters")
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, shared.InvalidInput("email is not a valid address")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             strings.TrimSpace(email),
		PasswordHash:      string(hash),
	}, nil
}

// SetName sets the display name parts
func (a *Account) SetName(first, last string) {
	a.FirstName = strings.TrimSpace(first)
	a.LastName = strings.TrimSpace(last)
	a.UpdatedAt = time.Now()
}

// VerifyPassword checks a plaintext password against the stored hash
func (a *Account) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// RecordLogin stamps the last login time
func (a *Account) RecordLogin() {
	now := time.Now()
	a.LastLoginAt = &now
	a.UpdatedAt = now
}

// FullName joins first and last name, falling back to the username
func (a *Account) FullName() string {
	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	if name == "" {
		return a.Username
	}
	return name
}
