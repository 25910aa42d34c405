package models

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	TokenID        uuid.UUID `gorm:"type:uuid;not null;index"`
	TransferID     uuid.UUID `gorm:"type:uuid;not null;index"`
	SourceWalletID uuid.UUID `gorm:"type:uuid;not null"`
	DestWalletID   uuid.UUID `gorm:"type:uuid;not null"`
	ProcessedAt    time.Time `gorm:"not null"`
}
