package services

import (
	"context"

	"github.com/SscSPs/branchledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalGeneratorSvc builds balanced, unsaved journal entries.
type JournalGeneratorSvc interface {
	Generate(txn domain.SourceTransaction, mapping domain.GLMapping) (*domain.JournalEntry, error)
	GenerateCustom(header domain.EntryHeader, legs []domain.EntryLeg) (*domain.JournalEntry, error)
	GeneratePurchase(header domain.EntryHeader, inventoryAccountID, paymentAccountID string, amount decimal.Decimal, feeAccountID string, fee decimal.Decimal) (*domain.JournalEntry, error)
	GenerateAdjustment(header domain.EntryHeader, debitOnIncreaseID, creditOnIncreaseID string, oldAmount, newAmount decimal.Decimal) (*domain.JournalEntry, error)
	GeneratePayment(header domain.EntryHeader, payableAccountID, cashAccountID string, amount decimal.Decimal) (*domain.JournalEntry, error)
	GenerateReversal(original domain.JournalEntry, req domain.ReversalRequest) (*domain.JournalEntry, error)
}

// PostingSvc validates and persists journal entries.
type PostingSvc interface {
	// PostEntry generates the entry for txn from mapping and persists it.
	PostEntry(ctx context.Context, txn domain.SourceTransaction, mapping domain.GLMapping, actor string) (*domain.JournalEntry, error)

	// PostCustomEntry persists an entry built from explicit legs.
	PostCustomEntry(ctx context.Context, header domain.EntryHeader, legs []domain.EntryLeg, actor string) (*domain.JournalEntry, error)

	// PostPrepared persists a pending entry produced by JournalGeneratorSvc.
	PostPrepared(ctx context.Context, entry *domain.JournalEntry, actor string) (*domain.JournalEntry, error)

	// PostSourceTransaction resolves the mapping, falling back to the configured safe
	// default accounts when none matches, then posts.
	PostSourceTransaction(ctx context.Context, txn domain.SourceTransaction, actor string) (*domain.JournalEntry, error)

	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// ReversalSvc reverses posted entries.
type ReversalSvc interface {
	// ReverseEntry posts the mirror of a posted entry. Persistence failures are ErrPosting.
	ReverseEntry(ctx context.Context, entryID string, req domain.ReversalRequest) (*domain.JournalEntry, error)

	// ReverseSourceTransaction reverses the live posting of a business transaction.
	// It never fails the caller; problems come back as a warning.
	ReverseSourceTransaction(ctx context.Context, source domain.ServiceModule, transactionID string, req domain.ReversalRequest) domain.ReversalOutcome

	// ReclassifySourceTransaction reverses the live posting and posts txn in its place.
	ReclassifySourceTransaction(ctx context.Context, txn domain.SourceTransaction, req domain.ReversalRequest) (*domain.ReclassifyResult, error)
}
