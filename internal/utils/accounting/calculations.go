package accounting

import (
	"fmt"

	"github.com/SscSPs/branchledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the sign a line has on its account's natural balance.
// DEBIT to ASSET/EXPENSE -> (+), CREDIT to ASSET/EXPENSE -> (-).
// DEBIT to LIABILITY/EQUITY/REVENUE -> (-), CREDIT to LIABILITY/EQUITY/REVENUE -> (+).
func CalculateSignedAmount(line domain.JournalEntryLine, accountType domain.AccountType) (decimal.Decimal, error) {
	amount := line.Amount()
	isDebit := line.Side() == domain.Debit

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			amount = amount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			amount = amount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
	return amount, nil
}

// BalanceEffects sums the signed effect of lines per account.
func BalanceEffects(lines []domain.JournalEntryLine, accounts map[string]domain.GLAccount) (map[string]decimal.Decimal, error) {
	effects := make(map[string]decimal.Decimal, len(accounts))
	for _, l := range lines {
		acc, ok := accounts[l.AccountID]
		if !ok {
			return nil, fmt.Errorf("account %s not loaded", l.AccountID)
		}
		signed, err := CalculateSignedAmount(l, acc.Type)
		if err != nil {
			return nil, err
		}
		effects[l.AccountID] = effects[l.AccountID].Add(signed)
	}
	return effects, nil
}

// NetEffectByAccount returns Σdebit − Σcredit per account across entries.
func NetEffectByAccount(entries ...domain.JournalEntry) map[string]decimal.Decimal {
	net := make(map[string]decimal.Decimal)
	for _, e := range entries {
		for _, l := range e.Lines {
			net[l.AccountID] = net[l.AccountID].Add(l.Debit).Sub(l.Credit)
		}
	}
	return net
}

// ValidateLines checks the structural rules every persisted entry obeys:
// at least two lines, each with exactly one positive side, and Σdebit = Σcredit
// within domain.BalanceTolerance.
func ValidateLines(lines []domain.JournalEntryLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("entry must have at least two lines, got %d", len(lines))
	}
	debit, credit := decimal.Zero, decimal.Zero
	for i, l := range lines {
		if l.AccountID == "" {
			return fmt.Errorf("line %d has no account", i)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("line %d has a negative amount", i)
		}
		if l.Debit.IsPositive() == l.Credit.IsPositive() {
			return fmt.Errorf("line %d must carry exactly one of debit or credit", i)
		}
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	if diff := debit.Sub(credit).Abs(); !diff.LessThan(domain.BalanceTolerance) {
		return fmt.Errorf("entry does not balance: debits %s, credits %s", debit.String(), credit.String())
	}
	return nil
}
