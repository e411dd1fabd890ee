package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/branchledger/internal/core/domain"
	portssvc "github.com/SscSPs/branchledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// Routing keys for ledger events.
const (
	EventEntryPosted   = "gl.entry.posted"
	EventEntryReversed = "gl.entry.reversed"
)

// LedgerEvent is published after an entry is committed. BalanceEffects are the
// signed changes each GL account's natural balance should see.
type LedgerEvent struct {
	EventType      string                     `json:"eventType"`
	EntryID        string                     `json:"entryId"`
	TransactionID  string                     `json:"transactionId"`
	Source         domain.ServiceModule       `json:"source"`
	Reference      string                     `json:"reference"`
	BranchID       string                     `json:"branchId"`
	ReversalOf     *string                    `json:"reversalOf,omitempty"`
	BalanceEffects map[string]decimal.Decimal `json:"balanceEffects,omitempty"`
	OccurredAt     time.Time                  `json:"occurredAt"`
}

func newLedgerEvent(eventType string, entry domain.JournalEntry, effects map[string]decimal.Decimal, at time.Time) LedgerEvent {
	return LedgerEvent{
		EventType:      eventType,
		EntryID:        entry.ID,
		TransactionID:  entry.TransactionID,
		Source:         entry.TransactionSource,
		Reference:      entry.Reference,
		BranchID:       entry.BranchID,
		ReversalOf:     entry.ReversalOf,
		BalanceEffects: effects,
		OccurredAt:     at,
	}
}

// publishEvent is best effort: the entry is already committed.
func publishEvent(ctx context.Context, base *BaseService, publisher portssvc.EventPublisher, event LedgerEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event.EventType, event); err != nil {
		base.LogWarn(ctx, "Failed to publish ledger event",
			slog.String("event_type", event.EventType),
			slog.String("entry_id", event.EntryID),
			slog.String("error", err.Error()))
	}
}
