package domain

import (
	"errors"
	"time"
)

var ErrUserExists = errors.New("user exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User models a registered account. The password is only ever stored as a
// bcrypt hash; the plaintext never leaves the strategy that verified it.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
