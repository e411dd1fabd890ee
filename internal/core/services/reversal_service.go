package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/branchledger/internal/apperrors"
	"github.com/SscSPs/branchledger/internal/core/domain"
	portsrepo "github.com/SscSPs/branchledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/branchledger/internal/core/ports/services"
	"github.com/SscSPs/branchledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ReversalFailedEvent is tracked whenever a soft reversal leaves the ledger needing manual reconciliation.
const ReversalFailedEvent = "gl_reversal_failed"

type reversalService struct {
	BaseService
	repo      portsrepo.JournalRepositoryWithTx
	accounts  portssvc.AccountDirectorySvc
	generator portssvc.JournalGeneratorSvc
	posting   portssvc.PostingSvc
	clock     portssvc.Clock
	publisher portssvc.EventPublisher
	tracker   portssvc.EventTracker
}

// ReversalServiceOption is a functional option for configuring the reversal service
type ReversalServiceOption func(*reversalService)

// WithReversalEventPublisher publishes gl.entry.reversed after each commit.
func WithReversalEventPublisher(publisher portssvc.EventPublisher) ReversalServiceOption {
	return func(s *reversalService) {
		s.publisher = publisher
	}
}

// WithReversalFailureTracker records soft reversal failures as analytics events.
func WithReversalFailureTracker(tracker portssvc.EventTracker) ReversalServiceOption {
	return func(s *reversalService) {
		s.tracker = tracker
	}
}

func NewReversalService(
	repo portsrepo.JournalRepositoryWithTx,
	accounts portssvc.AccountDirectorySvc,
	generator portssvc.JournalGeneratorSvc,
	posting portssvc.PostingSvc,
	clock portssvc.Clock,
	opts ...ReversalServiceOption,
) portssvc.ReversalSvc {
	s := &reversalService{repo: repo, accounts: accounts, generator: generator, posting: posting, clock: clock}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ReversalSvc = (*reversalService)(nil)

func (s *reversalService) ReverseEntry(ctx context.Context, entryID string, req domain.ReversalRequest) (*domain.JournalEntry, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, apperrors.NewValidationError("a reversal reason is required")
	}

	original, err := s.repo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("journal entry " + entryID)
		}
		return nil, fmt.Errorf("failed to load journal entry %s: %w", entryID, err)
	}

	if original.IsReversal() {
		return nil, apperrors.NewConflictError("cannot reverse reversal entry " + entryID)
	}
	if original.Status != domain.EntryPosted {
		return nil, apperrors.NewConflictError(fmt.Sprintf("entry %s is %s, only posted entries can be reversed", entryID, original.Status))
	}

	// One reversal per original. The unique index on reversal_of backs this up under races.
	existing, err := s.repo.FindReversalOf(ctx, entryID)
	if err == nil {
		return nil, apperrors.NewConflictError(fmt.Sprintf("entry %s is already reversed by %s", entryID, existing.ID))
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing reversal of %s: %w", entryID, err)
	}

	reversal, err := s.generator.GenerateReversal(*original, req)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	actor := req.Actor
	reversal.Status = domain.EntryPosted
	reversal.PostedBy = &actor
	reversal.PostedAt = &now
	reversal.CreatedBy = actor
	reversal.LastUpdatedBy = actor
	reversal.LastUpdatedAt = now

	if err := s.repo.SaveReversal(ctx, *reversal, actor, now); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("entry " + entryID + " was reversed concurrently")
		}
		s.LogError(ctx, err, "Failed to persist reversal",
			slog.String("original_entry_id", entryID),
			slog.String("reversal_entry_id", reversal.ID))
		return nil, apperrors.NewPostingError("failed to persist reversal of entry "+entryID, err)
	}

	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("original_entry_id", entryID),
		slog.String("reversal_entry_id", reversal.ID),
		slog.String("reason", req.Reason))

	if s.publisher != nil {
		effects := s.balanceEffects(ctx, *reversal)
		publishEvent(ctx, &s.BaseService, s.publisher, newLedgerEvent(EventEntryReversed, *reversal, effects, now))
	}
	return reversal, nil
}

// ReverseSourceTransaction is used by module edit and delete flows, which must
// complete even when the ledger cannot follow. Failures become warnings.
func (s *reversalService) ReverseSourceTransaction(ctx context.Context, source domain.ServiceModule, transactionID string, req domain.ReversalRequest) domain.ReversalOutcome {
	entries, err := s.repo.FindEntriesBySource(ctx, source, transactionID)
	if err != nil {
		return s.softFail(ctx, source, transactionID, "", req, err)
	}

	live := livePosting(entries)
	if live == nil {
		s.LogWarn(ctx, "No posted GL entry to reverse",
			slog.String("source", string(source)),
			slog.String("transaction_id", transactionID))
		return domain.ReversalOutcome{
			Skipped: true,
			Warning: fmt.Sprintf("no posted GL entry found for %s transaction %s; reconcile manually if one was expected", source, transactionID),
		}
	}

	reversal, err := s.ReverseEntry(ctx, live.ID, req)
	if err != nil {
		return s.softFail(ctx, source, transactionID, live.ID, req, err)
	}
	return domain.ReversalOutcome{Entry: reversal}
}

// ReclassifySourceTransaction reverses the current posting and posts txn in its place.
// The new posting goes ahead even if the reversal only produced a warning.
func (s *reversalService) ReclassifySourceTransaction(ctx context.Context, txn domain.SourceTransaction, req domain.ReversalRequest) (*domain.ReclassifyResult, error) {
	outcome := s.ReverseSourceTransaction(ctx, txn.ServiceModule, txn.ID, req)

	entry, err := s.posting.PostSourceTransaction(ctx, txn, req.Actor)
	if err != nil {
		return &domain.ReclassifyResult{Reversal: outcome}, err
	}
	return &domain.ReclassifyResult{Reversal: outcome, Entry: entry}, nil
}

func (s *reversalService) softFail(ctx context.Context, source domain.ServiceModule, transactionID, entryID string, req domain.ReversalRequest, err error) domain.ReversalOutcome {
	s.LogError(ctx, err, "GL reversal failed, manual reconciliation required",
		slog.String("source", string(source)),
		slog.String("transaction_id", transactionID),
		slog.String("entry_id", entryID))

	if s.tracker != nil {
		s.tracker.Enqueue(req.Actor, ReversalFailedEvent, map[string]any{
			"source":         string(source),
			"transaction_id": transactionID,
			"entry_id":       entryID,
			"reason":         req.Reason,
			"error":          err.Error(),
		})
	}

	return domain.ReversalOutcome{
		Warning: fmt.Sprintf("GL reversal for %s transaction %s failed: %v", source, transactionID, err),
	}
}

// balanceEffects is best effort; the event goes out without effects if accounts cannot be read.
func (s *reversalService) balanceEffects(ctx context.Context, entry domain.JournalEntry) map[string]decimal.Decimal {
	ids := make([]string, len(entry.Lines))
	for i, l := range entry.Lines {
		ids[i] = l.AccountID
	}
	accounts, err := s.accounts.GetGLAccounts(ctx, ids)
	if err == nil {
		var effects map[string]decimal.Decimal
		if effects, err = accounting.BalanceEffects(entry.Lines, accounts); err == nil {
			return effects
		}
	}
	s.LogWarn(ctx, "Could not compute balance effects for event", slog.String("entry_id", entry.ID), slog.String("error", err.Error()))
	return nil
}

// livePosting returns the most recent posted, non-reversal entry.
func livePosting(entries []domain.JournalEntry) *domain.JournalEntry {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Status == domain.EntryPosted && !entries[i].IsReversal() {
			return &entries[i]
		}
	}
	return nil
}
