package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	errBothSelectorModes = errors.New("token list and bundle size are mutually exclusive")
	errNoSelectorMode    = errors.New("either a token list or a bundle size is required")
)

// TransferState represents the lifecycle state of a transfer
type TransferState string

const (
	TransferStateRequested TransferState = "requested"
	TransferStateAccepted  TransferState = "accepted"
	TransferStateDeclined  TransferState = "declined"
	TransferStateCancelled TransferState = "cancelled"
	TransferStateFulfilled TransferState = "fulfilled"
)

// IsTerminal reports whether no further transition is legal from the state
func (s TransferState) IsTerminal() bool {
	switch s {
	case TransferStateDeclined, TransferStateCancelled, TransferStateFulfilled:
		return true
	}
	return false
}

// TransferDirection distinguishes "I am sending tokens to you" from
// "I am requesting tokens from you".
type TransferDirection string

const (
	TransferDirectionSend    TransferDirection = "send"
	TransferDirectionReceive TransferDirection = "receive"
)

// IsValid reports whether the direction is one of the known values
func (d TransferDirection) IsValid() bool {
	return d == TransferDirectionSend || d == TransferDirectionReceive
}

// TokenSelector chooses the tokens a transfer moves: either an explicit
// ordered list of token ids, or a bundle of N system-selected tokens.
// Exactly one mode must be set.
type TokenSelector struct {
	Tokens     []uuid.UUID `json:"tokens,omitempty"`
	BundleSize int         `json:"bundleSize,omitempty"`
}

// IsBundle reports whether the selector is in bundle mode
func (s TokenSelector) IsBundle() bool {
	return len(s.Tokens) == 0 && s.BundleSize > 0
}

// Count returns the number of tokens the selector asks for.
// The explicit list takes priority over the bundle size.
func (s TokenSelector) Count() int {
	if len(s.Tokens) > 0 {
		return len(s.Tokens)
	}
	return s.BundleSize
}

// Validate checks that exactly one selection mode is active
func (s TokenSelector) Validate() error {
	if len(s.Tokens) > 0 && s.BundleSize > 0 {
		return errBothSelectorModes
	}
	if len(s.Tokens) == 0 && s.BundleSize <= 0 {
		return errNoSelectorMode
	}
	return nil
}

// Transfer represents a two-party token transfer request and its lifecycle
type Transfer struct {
	ID             uuid.UUID         `json:"id"`
	InitiatorID    uuid.UUID         `json:"initiatorId"`
	CounterpartyID uuid.UUID         `json:"counterpartyId"`
	Direction      TransferDirection `json:"direction"`
	State          TransferState     `json:"state"`
	Tokens         []uuid.UUID       `json:"tokens,omitempty"`
	BundleSize     int               `json:"bundleSize,omitempty"`
	ResolvedTokens []uuid.UUID       `json:"resolvedTokens,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
	ClosedAt       *time.Time        `json:"closedAt,omitempty"`
}

// Selector returns the transfer's token selection parameters
func (t *Transfer) Selector() TokenSelector {
	return TokenSelector{Tokens: t.Tokens, BundleSize: t.BundleSize}
}

// TokenCount derives the number of tokens this transfer covers.
// Explicit list length takes priority over the bundle size so every
// consumer sees the same value.
func (t *Transfer) TokenCount() int {
	return t.Selector().Count()
}

// SourceWalletID is the wallet tokens leave at fulfillment
func (t *Transfer) SourceWalletID() uuid.UUID {
	if t.Direction == TransferDirectionReceive {
		return t.CounterpartyID
	}
	return t.InitiatorID
}

// DestWalletID is the wallet tokens arrive at
func (t *Transfer) DestWalletID() uuid.UUID {
	if t.Direction == TransferDirectionReceive {
		return t.InitiatorID
	}
	return t.CounterpartyID
}

// FulfillerID is the wallet allowed to fulfill an accepted transfer:
// the party that supplies the tokens.
func (t *Transfer) FulfillerID() uuid.UUID {
	return t.SourceWalletID()
}
