package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("email already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User models a registered account. The password hash never crosses the API boundary.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Claims is the decoded, verified content of a session token.
// Tokens are validated by signature and expiry only; a claims value can
// outlive changes to the underlying user record until the token expires.
type Claims struct {
	UserID string
	Email  string
	Role   string
	Name   string
}
