package entities

import (
	"time"

	"github.com/google/uuid"
)

// TrustType is the category of transfer a trust relationship permits
type TrustType string

const (
	// TrustTypeSend: target permits source to send it tokens
	TrustTypeSend TrustType = "send"
	// TrustTypeReceive: target permits source to request tokens from it
	TrustTypeReceive TrustType = "receive"
	// TrustTypeManage: general trust covering both directions
	TrustTypeManage TrustType = "manage"
)

// IsValid reports whether the type is one of the known values
func (t TrustType) IsValid() bool {
	switch t {
	case TrustTypeSend, TrustTypeReceive, TrustTypeManage:
		return true
	}
	return false
}

// TrustState represents the lifecycle state of a trust relationship
type TrustState string

const (
	TrustStateRequested TrustState = "requested"
	TrustStateActive    TrustState = "active"
	TrustStateCancelled TrustState = "cancelled"
)

// TrustRelationship is a directional authorization grant between two
// wallets. (A,B,send) and (B,A,send) are independent facts.
type TrustRelationship struct {
	ID             uuid.UUID  `json:"id"`
	SourceWalletID uuid.UUID  `json:"sourceWalletId"`
	TargetWalletID uuid.UUID  `json:"targetWalletId"`
	Type           TrustType  `json:"type"`
	State          TrustState `json:"state"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
