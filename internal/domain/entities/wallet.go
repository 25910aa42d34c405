package entities

import (
	"time"

	"github.com/google/uuid"
)

// Wallet represents a named token-holding wallet
type Wallet struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"-"`
}
