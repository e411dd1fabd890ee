package services

import (
	"github.com/SscSPs/branchledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Summarize totals a statement. Opening and closing balances come from the first
// and last rows. closing = opening + netChange holds when no row between them was
// hidden by a branch or type filter. No rows yields a zero summary.
func Summarize(entries []domain.StatementEntry) domain.StatementSummary {
	summary := domain.StatementSummary{
		OpeningBalance: decimal.Zero,
		ClosingBalance: decimal.Zero,
		TotalCredits:   decimal.Zero,
		TotalDebits:    decimal.Zero,
		NetChange:      decimal.Zero,
	}
	if len(entries) == 0 {
		return summary
	}

	for _, e := range entries {
		if e.Amount.IsPositive() {
			summary.TotalCredits = summary.TotalCredits.Add(e.Amount)
		} else {
			summary.TotalDebits = summary.TotalDebits.Add(e.Amount.Abs())
		}
		if e.IsGL {
			summary.GLTransactionCount++
		}
	}
	summary.TransactionCount = len(entries)
	summary.NetChange = summary.TotalCredits.Sub(summary.TotalDebits)
	summary.OpeningBalance = entries[0].BalanceBefore
	summary.ClosingBalance = entries[len(entries)-1].BalanceAfter
	return summary
}
