package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Transfer struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	InitiatorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CounterpartyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Direction      string    `gorm:"type:varchar(20);not null"`
	State          string    `gorm:"type:varchar(20);not null;index"`
	// Token selector: exactly one of RequestedTokens (JSON array of ids)
	// or BundleSize is set.
	RequestedTokens null.String `gorm:"type:jsonb"`
	BundleSize      null.Int
	ResolvedTokens  null.String `gorm:"type:jsonb"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ClosedAt        *time.Time
}
