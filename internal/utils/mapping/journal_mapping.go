package mapping

import (
	"github.com/SscSPs/branchledger/internal/core/domain"
	"github.com/SscSPs/branchledger/internal/models"
)

// ToModelJournalEntry converts a domain entry header to a gl_transactions row.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           d.ID,
		TransactionID:     d.TransactionID,
		TransactionSource: string(d.TransactionSource),
		TransactionType:   d.TransactionType,
		Reference:         d.Reference,
		Description:       d.Description,
		EntryDate:         d.Date,
		BranchID:          d.BranchID,
		Status:            string(d.Status),
		ReversalOf:        d.ReversalOf,
		Metadata:          d.Metadata,
		PostedBy:          d.PostedBy,
		PostedAt:          d.PostedAt,
		ReversedBy:        d.ReversedBy,
		ReversedAt:        d.ReversedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a gl_transactions row to a domain entry without lines.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		ID:                m.EntryID,
		TransactionID:     m.TransactionID,
		TransactionSource: domain.ServiceModule(m.TransactionSource),
		TransactionType:   m.TransactionType,
		Reference:         m.Reference,
		Description:       m.Description,
		Date:              m.EntryDate,
		BranchID:          m.BranchID,
		Status:            domain.EntryStatus(m.Status),
		ReversalOf:        m.ReversalOf,
		Metadata:          m.Metadata,
		PostedBy:          m.PostedBy,
		PostedAt:          m.PostedAt,
		ReversedBy:        m.ReversedBy,
		ReversedAt:        m.ReversedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryLines converts lines, recording their order within the entry.
func ToModelJournalEntryLines(lines []domain.JournalEntryLine) []models.JournalEntryLine {
	out := make([]models.JournalEntryLine, len(lines))
	for i, l := range lines {
		out[i] = models.JournalEntryLine{
			LineID:      l.ID,
			EntryID:     l.EntryID,
			LineOrder:   i,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return out
}

// ToDomainJournalEntryLines converts rows already sorted by line order.
func ToDomainJournalEntryLines(rows []models.JournalEntryLine) []domain.JournalEntryLine {
	out := make([]domain.JournalEntryLine, len(rows))
	for i, r := range rows {
		out[i] = domain.JournalEntryLine{
			ID:          r.LineID,
			EntryID:     r.EntryID,
			AccountID:   r.AccountID,
			Debit:       r.Debit,
			Credit:      r.Credit,
			Description: r.Description,
		}
	}
	return out
}
