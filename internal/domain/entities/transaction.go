package entities

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is the historical record of one token changing custody.
// Rows are written inside the fulfillment transaction and never updated.
type Transaction struct {
	ID             uuid.UUID `json:"id"`
	TokenID        uuid.UUID `json:"tokenId"`
	TransferID     uuid.UUID `json:"transferId"`
	SourceWalletID uuid.UUID `json:"sourceWalletId"`
	DestWalletID   uuid.UUID `json:"destWalletId"`
	ProcessedAt    time.Time `json:"processedAt"`
}
