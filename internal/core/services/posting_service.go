package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/branchledger/internal/apperrors"
	"github.com/SscSPs/branchledger/internal/core/domain"
	portsrepo "github.com/SscSPs/branchledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/branchledger/internal/core/ports/services"
	"github.com/SscSPs/branchledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const (
	defaultEntryPageSize = 20
	maxEntryPageSize     = 100

	// feeTransactionSuffix selects the mapping for a transaction's fee leg, e.g. "cash_in_fee".
	feeTransactionSuffix = "_fee"
)

type postingService struct {
	BaseService
	repo      portsrepo.JournalRepositoryWithTx
	accounts  portssvc.AccountDirectorySvc
	resolver  portssvc.MappingResolverSvc
	generator portssvc.JournalGeneratorSvc
	clock     portssvc.Clock
	publisher portssvc.EventPublisher

	fallbackDebitCode  string
	fallbackCreditCode string
}

// PostingServiceOption is a functional option for configuring the posting service
type PostingServiceOption func(*postingService)

// WithPostingEventPublisher publishes gl.entry.posted after each commit.
func WithPostingEventPublisher(publisher portssvc.EventPublisher) PostingServiceOption {
	return func(s *postingService) {
		s.publisher = publisher
	}
}

// WithPostingFallback sets the GL account codes used when no mapping matches.
func WithPostingFallback(debitCode, creditCode string) PostingServiceOption {
	return func(s *postingService) {
		s.fallbackDebitCode = debitCode
		s.fallbackCreditCode = creditCode
	}
}

func NewPostingService(
	repo portsrepo.JournalRepositoryWithTx,
	accounts portssvc.AccountDirectorySvc,
	resolver portssvc.MappingResolverSvc,
	generator portssvc.JournalGeneratorSvc,
	clock portssvc.Clock,
	opts ...PostingServiceOption,
) portssvc.PostingSvc {
	s := &postingService{
		repo:      repo,
		accounts:  accounts,
		resolver:  resolver,
		generator: generator,
		clock:     clock,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.PostingSvc = (*postingService)(nil)

func (s *postingService) PostEntry(ctx context.Context, txn domain.SourceTransaction, mapping domain.GLMapping, actor string) (*domain.JournalEntry, error) {
	entry, err := s.generator.Generate(txn, mapping)
	if err != nil {
		return nil, err
	}
	return s.post(ctx, entry, actor)
}

func (s *postingService) PostCustomEntry(ctx context.Context, header domain.EntryHeader, legs []domain.EntryLeg, actor string) (*domain.JournalEntry, error) {
	entry, err := s.generator.GenerateCustom(header, legs)
	if err != nil {
		return nil, err
	}
	return s.post(ctx, entry, actor)
}

// PostPrepared persists an entry built by one of the generator's specialised shapes.
func (s *postingService) PostPrepared(ctx context.Context, entry *domain.JournalEntry, actor string) (*domain.JournalEntry, error) {
	if entry == nil {
		return nil, apperrors.NewValidationError("entry is required")
	}
	if entry.Status != domain.EntryPending {
		return nil, apperrors.NewConflictError(fmt.Sprintf("entry %s is %s, only pending entries can be posted", entry.ID, entry.Status))
	}
	return s.post(ctx, entry, actor)
}

func (s *postingService) PostSourceTransaction(ctx context.Context, txn domain.SourceTransaction, actor string) (*domain.JournalEntry, error) {
	attrs, err := domain.BindAmounts(txn.ServiceModule, txn.Attributes, txn.Amount, txn.Fee)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	txn.Attributes = attrs

	mapping, err := s.resolver.ResolveMapping(ctx, txn.ServiceModule, txn.TransactionType, txn.BranchID, txn.Attributes)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		mapping, err = s.fallbackMapping(ctx, txn, err)
		if err != nil {
			return nil, err
		}
	}

	if !txn.Fee.IsPositive() {
		return s.PostEntry(ctx, txn, *mapping, actor)
	}

	feeMapping, err := s.resolver.ResolveMapping(ctx, txn.ServiceModule, txn.TransactionType+feeTransactionSuffix, txn.BranchID, txn.Attributes)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogWarn(ctx, "No fee mapping, posting principal only",
			slog.String("module", string(txn.ServiceModule)),
			slog.String("transaction_type", txn.TransactionType),
			slog.String("transaction_id", txn.ID))
		return s.PostEntry(ctx, txn, *mapping, actor)
	}

	ref := txn.ReferenceOrID()
	principalDesc := lineDescription(mapping.Description, ref)
	feeDesc := lineDescription(feeMapping.Description, ref)
	return s.PostCustomEntry(ctx, headerFor(txn, principalDesc), []domain.EntryLeg{
		{AccountID: mapping.DebitAccountID, Side: domain.Debit, Amount: txn.Amount, Description: principalDesc},
		{AccountID: mapping.CreditAccountID, Side: domain.Credit, Amount: txn.Amount, Description: principalDesc},
		{AccountID: feeMapping.DebitAccountID, Side: domain.Debit, Amount: txn.Fee, Description: feeDesc},
		{AccountID: feeMapping.CreditAccountID, Side: domain.Credit, Amount: txn.Fee, Description: feeDesc},
	}, actor)
}

// fallbackMapping builds a mapping onto the configured safe default accounts.
func (s *postingService) fallbackMapping(ctx context.Context, txn domain.SourceTransaction, cause error) (*domain.GLMapping, error) {
	if s.fallbackDebitCode == "" || s.fallbackCreditCode == "" {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s and no fallback GL accounts are configured", cause.Error()))
	}
	debit, err := s.accounts.GetGLAccountByCode(ctx, s.fallbackDebitCode)
	if err != nil {
		return nil, fmt.Errorf("fallback debit account: %w", err)
	}
	credit, err := s.accounts.GetGLAccountByCode(ctx, s.fallbackCreditCode)
	if err != nil {
		return nil, fmt.Errorf("fallback credit account: %w", err)
	}

	s.LogWarn(ctx, "No GL mapping matched, posting to fallback accounts",
		slog.String("module", string(txn.ServiceModule)),
		slog.String("transaction_type", txn.TransactionType),
		slog.String("transaction_id", txn.ID),
		slog.String("debit_code", debit.Code),
		slog.String("credit_code", credit.Code))

	return &domain.GLMapping{
		ServiceModule:   txn.ServiceModule,
		TransactionType: txn.TransactionType,
		DebitAccountID:  debit.ID,
		CreditAccountID: credit.ID,
		Description:     fmt.Sprintf("Unmapped %s %s", txn.ServiceModule, txn.TransactionType),
		IsActive:        true,
	}, nil
}

// post validates entry against the chart of accounts and persists it atomically.
func (s *postingService) post(ctx context.Context, entry *domain.JournalEntry, actor string) (*domain.JournalEntry, error) {
	effects, err := s.validateAgainstChart(ctx, entry)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	entry.Status = domain.EntryPosted
	entry.PostedBy = &actor
	entry.PostedAt = &now
	entry.CreatedBy = actor
	entry.LastUpdatedBy = actor
	entry.LastUpdatedAt = now

	if err := s.repo.SaveEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to persist journal entry",
			slog.String("entry_id", entry.ID),
			slog.String("transaction_id", entry.TransactionID),
			slog.String("source", string(entry.TransactionSource)))
		return nil, apperrors.NewPostingError("failed to persist journal entry "+entry.ID, err)
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entry.ID),
		slog.String("transaction_id", entry.TransactionID),
		slog.String("source", string(entry.TransactionSource)),
		slog.Int("lines", len(entry.Lines)))

	publishEvent(ctx, &s.BaseService, s.publisher, newLedgerEvent(EventEntryPosted, *entry, effects, now))
	return entry, nil
}

// validateAgainstChart re-checks the balance invariant and that every line hits an
// existing, active account. It returns each account's signed balance effect.
func (s *postingService) validateAgainstChart(ctx context.Context, entry *domain.JournalEntry) (map[string]decimal.Decimal, error) {
	if err := accounting.ValidateLines(entry.Lines); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	accountIDs := make([]string, len(entry.Lines))
	for i, l := range entry.Lines {
		accountIDs[i] = l.AccountID
	}
	accounts, err := s.accounts.GetGLAccounts(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		if !acc.IsActive {
			return nil, apperrors.NewValidationError("GL account " + acc.Code + " is inactive")
		}
	}

	effects, err := accounting.BalanceEffects(entry.Lines, accounts)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	return effects, nil
}

func (s *postingService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.repo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("journal entry " + entryID)
		}
		return nil, fmt.Errorf("failed to load journal entry %s: %w", entryID, err)
	}
	return entry, nil
}

func (s *postingService) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = defaultEntryPageSize
	}
	if limit > maxEntryPageSize {
		limit = maxEntryPageSize
	}
	entries, token, err := s.repo.ListEntries(ctx, filter, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, token, nil
}
