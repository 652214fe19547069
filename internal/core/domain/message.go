package domain

import (
	"errors"
	"time"
)

var ErrMessageNotFound = errors.New("message not found")

// Message is a board entry. Like Product, wire field names stay in Spanish.
type Message struct {
	ID    string    `json:"id"`
	Email string    `json:"email"`
	Text  string    `json:"texto"`
	Date  time.Time `json:"fecha"`
}
