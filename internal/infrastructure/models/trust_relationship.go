package models

import (
	"time"

	"github.com/google/uuid"
)

// TrustRelationship rows carry a partial unique index over
// (source, target, type) for non-cancelled states, so at most one open
// relationship can exist per triple no matter how requests interleave.
type TrustRelationship struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	SourceWalletID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_trust_open,where:state <> 'cancelled'"`
	TargetWalletID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_trust_open,where:state <> 'cancelled'"`
	Type           string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_trust_open,where:state <> 'cancelled'"`
	State          string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
