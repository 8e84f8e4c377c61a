package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventPublisher defines the interface for emitting domain events to an
// external system. Publishing is best-effort from the ledger's point of view:
// a failed publish never affects account state.
type EventPublisher interface {
	// Publish sends a single event. Implementations own encoding and delivery.
	Publish(ctx context.Context, event any) error
}

// AccountLocked is emitted when a chargeback freezes an account.
type AccountLocked struct {
	EventID    uuid.UUID       `json:"event_id"`
	ClientID   uint16          `json:"client_id"`
	TxID       uint32          `json:"tx_id"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewAccountLocked builds an AccountLocked event for the given chargeback.
func NewAccountLocked(clientID uint16, txID uint32, amount decimal.Decimal) AccountLocked {
	return AccountLocked{
		EventID:    uuid.New(),
		ClientID:   clientID,
		TxID:       txID,
		Amount:     amount,
		OccurredAt: time.Now().UTC(),
	}
}
