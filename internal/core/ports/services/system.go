package services

import (
	"context"
	"time"

	"github.com/SscSPs/branchledger/internal/core/domain"
)

// Clock supplies the current time so postings are reproducible in tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator supplies identifiers for entries and lines.
type IDGenerator interface {
	NewID() string
}

// EventPublisher emits ledger events to downstream consumers. Publishing is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// EventTracker records product analytics events.
type EventTracker interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

// GLAccountCache is a read-through cache for immutable GL account records.
type GLAccountCache interface {
	Get(ctx context.Context, accountID string) (*domain.GLAccount, bool)
	Set(ctx context.Context, account domain.GLAccount)
}
