package entities

import (
	"time"

	"github.com/google/uuid"
)

// Token represents a discrete, uniquely identified digital token.
// A token has exactly one custodian wallet at any instant; custody
// changes only when a transfer is fulfilled.
type Token struct {
	ID        uuid.UUID `json:"id"`
	WalletID  uuid.UUID `json:"walletId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
