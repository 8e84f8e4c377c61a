package events

import (
	"context"

	"github.com/simaogato/txledger/internal/domain"
)

// NoopPublisher discards all events. It is the default when no broker is
// configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event any) error {
	return nil
}

// Compile-time check: ensure NoopPublisher implements domain.EventPublisher
var _ domain.EventPublisher = NoopPublisher{}
