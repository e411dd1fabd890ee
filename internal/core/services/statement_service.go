package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/SscSPs/branchledger/internal/apperrors"
	"github.com/SscSPs/branchledger/internal/core/domain"
	portsrepo "github.com/SscSPs/branchledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/branchledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type statementService struct {
	BaseService
	floatRepo portsrepo.FloatRepositoryFacade
	ledger    portsrepo.GLLedgerReader
	mappings  portsrepo.MappingReader
	accounts  portssvc.AccountDirectorySvc
}

func NewStatementService(floatRepo portsrepo.FloatRepositoryFacade, ledger portsrepo.GLLedgerReader, mappings portsrepo.MappingReader, accounts portssvc.AccountDirectorySvc) portssvc.StatementSvc {
	return &statementService{floatRepo: floatRepo, ledger: ledger, mappings: mappings, accounts: accounts}
}

var _ portssvc.StatementSvc = (*statementService)(nil)

func (s *statementService) BuildFloatStatement(ctx context.Context, auth domain.AuthContext, floatAccountID string, filters domain.StatementFilters) (*domain.Statement, error) {
	account, err := s.accounts.GetFloatAccount(ctx, floatAccountID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeStatement(ctx, auth, *account, filters); err != nil {
		return nil, err
	}
	if filters.StartDate != nil && filters.EndDate != nil && filters.StartDate.After(*filters.EndDate) {
		return nil, apperrors.NewValidationError("start date must not be after end date")
	}

	// Rows hidden by the branch or type filter still move the balance, so the
	// running balance is computed over the whole date range first.
	natives, err := s.floatRepo.ListFloatTransactions(ctx, account.ID, filters.DateRange())
	if err != nil {
		s.LogError(ctx, err, "Failed to load float transactions", slog.String("float_account_id", account.ID))
		return nil, fmt.Errorf("failed to load float transactions: %w", err)
	}
	rows := NativeStatementRows(natives)

	if filters.IncludeGL {
		glRows, err := s.glRows(ctx, *account, filters)
		if err != nil {
			return nil, err
		}
		rows = append(rows, glRows...)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TransactionDate.Before(rows[j].TransactionDate)
	})

	opening, err := s.openingBalance(ctx, *account, filters)
	if err != nil {
		return nil, err
	}
	ApplyRunningBalance(rows, opening)

	shown := rows[:0]
	for _, row := range rows {
		if filters.Shows(row) {
			shown = append(shown, row)
		}
	}
	rows = shown

	s.LogDebug(ctx, "Float statement built",
		slog.String("float_account_id", account.ID),
		slog.Int("native_rows", len(natives)),
		slog.Int("total_rows", len(rows)))

	return &domain.Statement{
		Account: *account,
		Entries: rows,
		Summary: Summarize(rows),
	}, nil
}

// authorizeStatement enforces branch scope. A non-admin may not ask for another branch.
func (s *statementService) authorizeStatement(ctx context.Context, auth domain.AuthContext, account domain.FloatAccount, filters domain.StatementFilters) error {
	if !auth.IsAdmin() && filters.BranchID != "" && filters.BranchID != auth.BranchID {
		return s.AuthorizeBranch(ctx, auth, filters.BranchID)
	}
	return s.AuthorizeBranch(ctx, auth, account.BranchID)
}

func (s *statementService) glRows(ctx context.Context, account domain.FloatAccount, filters domain.StatementFilters) ([]domain.StatementEntry, error) {
	glAccountIDs, err := s.floatGLAccounts(ctx, account)
	if err != nil {
		return nil, err
	}
	if len(glAccountIDs) == 0 {
		s.LogDebug(ctx, "Float account has no GL association, statement uses native rows only", slog.String("float_account_id", account.ID))
		return nil, nil
	}

	lines, err := s.ledger.ListLedgerLines(ctx, glAccountIDs, filters.StartDate, filters.EndDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to load GL lines for float statement", slog.String("float_account_id", account.ID))
		return nil, fmt.Errorf("failed to load GL lines: %w", err)
	}
	return GLStatementRows(lines, glAccountIDs[0]), nil
}

// floatGLAccounts resolves the GL accounts backing a float, primary first. The direct
// association wins; otherwise "<accountType>_float" mappings for the float's branch,
// then branch-agnostic ones, supply their debit account.
func (s *statementService) floatGLAccounts(ctx context.Context, account domain.FloatAccount) ([]string, error) {
	ids, err := s.floatRepo.FindFloatGLAccountIDs(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load float GL association: %w", err)
	}
	if len(ids) > 0 {
		return ids, nil
	}

	mappings, err := s.mappings.ListMappings(ctx, domain.ModuleFloat, domain.FloatGLTransactionType(account.AccountType))
	if err != nil {
		return nil, fmt.Errorf("failed to load float GL mappings: %w", err)
	}
	var branchIDs, globalIDs []string
	for _, m := range mappings {
		if !m.IsActive {
			continue
		}
		switch {
		case m.BranchID == nil:
			globalIDs = append(globalIDs, m.DebitAccountID)
		case *m.BranchID == account.BranchID:
			branchIDs = append(branchIDs, m.DebitAccountID)
		}
	}
	if len(branchIDs) > 0 {
		return uniqueStrings(branchIDs), nil
	}
	return uniqueStrings(globalIDs), nil
}

// openingBalance uses the last native row before the start date. With no start date,
// or no earlier row, it falls back to the account's current balance. That fallback is
// only exact when nothing moved the float after the range ends.
func (s *statementService) openingBalance(ctx context.Context, account domain.FloatAccount, filters domain.StatementFilters) (decimal.Decimal, error) {
	if filters.StartDate == nil {
		return account.CurrentBalance, nil
	}
	last, err := s.floatRepo.FindLastFloatTransactionBefore(ctx, account.ID, *filters.StartDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return account.CurrentBalance, nil
		}
		return decimal.Zero, fmt.Errorf("failed to load opening balance: %w", err)
	}
	return last.BalanceAfter, nil
}

// NativeStatementRows converts float-ledger rows as stored; amounts keep their sign.
func NativeStatementRows(txns []domain.FloatTransaction) []domain.StatementEntry {
	rows := make([]domain.StatementEntry, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, domain.StatementEntry{
			ID:              t.ID,
			TransactionDate: t.CreatedAt,
			TransactionType: t.TransactionType,
			Amount:          t.Amount,
			Description:     t.Description,
			Reference:       t.Reference,
			ProcessedBy:     t.ProcessedBy,
			SourceModule:    string(domain.ModuleFloat),
			BranchID:        t.BranchID,
		})
	}
	return rows
}

// GLStatementRows collapses ledger lines into one row per journal entry, in
// first-seen order. Each row carries its dominant leg's credit minus debit.
func GLStatementRows(lines []domain.GLLedgerLine, primaryAccountID string) []domain.StatementEntry {
	var order []string
	groups := make(map[string][]domain.GLLedgerLine)
	for _, l := range lines {
		if _, ok := groups[l.EntryID]; !ok {
			order = append(order, l.EntryID)
		}
		groups[l.EntryID] = append(groups[l.EntryID], l)
	}

	rows := make([]domain.StatementEntry, 0, len(order))
	for _, entryID := range order {
		group := groups[entryID]
		dominant := DominantLeg(group, primaryAccountID)
		fee := feeSubtotal(group, dominant)

		description := group[dominant].EntryDescription
		if description == "" {
			description = group[dominant].LineDescription
		}
		if fee.IsPositive() {
			description = fmt.Sprintf("%s (Fee: %s)", description, fee.StringFixed(2))
		}

		lead := group[dominant]
		source := string(lead.Source)
		if source == "" {
			source = domain.SourceGL
		}
		rows = append(rows, domain.StatementEntry{
			ID:              entryID,
			TransactionDate: lead.EntryDate,
			TransactionType: lead.TransactionType,
			Amount:          lead.Credit.Sub(lead.Debit),
			Description:     description,
			Reference:       lead.EntryReference,
			ProcessedBy:     lead.CreatedBy,
			SourceModule:    source,
			BranchID:        lead.BranchID,
			IsGL:            true,
			FeeAmount:       fee,
		})
	}
	return rows
}

// DominantLeg returns the index of the leg with the largest amount. Ties go to a
// leg on the float's primary GL account, then to a non-fee leg, then to the earlier leg.
func DominantLeg(lines []domain.GLLedgerLine, primaryAccountID string) int {
	best := 0
	for i := 1; i < len(lines); i++ {
		if outranks(lines[i], lines[best], primaryAccountID) {
			best = i
		}
	}
	return best
}

func outranks(a, b domain.GLLedgerLine, primaryAccountID string) bool {
	amtA, amtB := legAmount(a), legAmount(b)
	if c := amtA.Cmp(amtB); c != 0 {
		return c > 0
	}
	aPrimary, bPrimary := a.AccountID == primaryAccountID, b.AccountID == primaryAccountID
	if aPrimary != bPrimary {
		return aPrimary
	}
	aFee, bFee := isFeeLeg(a), isFeeLeg(b)
	if aFee != bFee {
		return !aFee
	}
	return false
}

func legAmount(l domain.GLLedgerLine) decimal.Decimal {
	if l.Debit.GreaterThan(l.Credit) {
		return l.Debit
	}
	return l.Credit
}

func isFeeLeg(l domain.GLLedgerLine) bool {
	for _, s := range []string{l.AccountCode, l.AccountName, l.LineDescription} {
		if strings.Contains(strings.ToLower(s), "fee") {
			return true
		}
	}
	return false
}

// feeSubtotal sums the non-dominant fee legs. Fees are reported, not netted.
func feeSubtotal(lines []domain.GLLedgerLine, dominant int) decimal.Decimal {
	total := decimal.Zero
	for i, l := range lines {
		if i != dominant && isFeeLeg(l) {
			total = total.Add(legAmount(l))
		}
	}
	return total
}

// ApplyRunningBalance walks rows in order starting from opening.
func ApplyRunningBalance(rows []domain.StatementEntry, opening decimal.Decimal) {
	running := opening
	for i := range rows {
		rows[i].BalanceBefore = running
		running = running.Add(rows[i].Amount)
		rows[i].BalanceAfter = running
	}
}
