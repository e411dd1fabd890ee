package services

import (
	"fmt"
	"strconv"

	"github.com/SscSPs/branchledger/internal/apperrors"
	"github.com/SscSPs/branchledger/internal/core/domain"
	portssvc "github.com/SscSPs/branchledger/internal/core/ports/services"
	"github.com/SscSPs/branchledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ReversalReferenceSuffix is appended to the original reference on reversal entries.
const ReversalReferenceSuffix = "-REVERSAL"

// JournalGenerator builds pending journal entries. It performs no I/O.
type JournalGenerator struct {
	clock portssvc.Clock
	ids   portssvc.IDGenerator
}

func NewJournalGenerator(clock portssvc.Clock, ids portssvc.IDGenerator) *JournalGenerator {
	return &JournalGenerator{clock: clock, ids: ids}
}

var _ portssvc.JournalGeneratorSvc = (*JournalGenerator)(nil)

// lineDescription is "<mapping description> - <reference or id>".
func lineDescription(mappingDescription, ref string) string {
	if mappingDescription == "" {
		return ref
	}
	return mappingDescription + " - " + ref
}

func headerFor(txn domain.SourceTransaction, description string) domain.EntryHeader {
	if txn.Description != "" {
		description = txn.Description
	}
	return domain.EntryHeader{
		TransactionID:     txn.ID,
		TransactionSource: txn.ServiceModule,
		TransactionType:   txn.TransactionType,
		Reference:         txn.ReferenceOrID(),
		Description:       description,
		Date:              txn.Date,
		BranchID:          txn.BranchID,
	}
}

// Generate builds the two-line entry mapping prescribes for txn.
func (g *JournalGenerator) Generate(txn domain.SourceTransaction, mapping domain.GLMapping) (*domain.JournalEntry, error) {
	if txn.ID == "" {
		return nil, apperrors.NewValidationError("transaction id is required")
	}
	if mapping.ServiceModule != txn.ServiceModule || mapping.TransactionType != txn.TransactionType {
		return nil, apperrors.NewValidationError(fmt.Sprintf("mapping %s is for %s/%s, not %s/%s",
			mapping.ID, mapping.ServiceModule, mapping.TransactionType, txn.ServiceModule, txn.TransactionType))
	}
	desc := lineDescription(mapping.Description, txn.ReferenceOrID())
	return g.build(headerFor(txn, desc), []domain.EntryLeg{
		{AccountID: mapping.DebitAccountID, Side: domain.Debit, Amount: txn.Amount, Description: desc},
		{AccountID: mapping.CreditAccountID, Side: domain.Credit, Amount: txn.Amount, Description: desc},
	})
}

// GenerateCustom builds an entry from explicit legs, e.g. principal plus fee.
func (g *JournalGenerator) GenerateCustom(header domain.EntryHeader, legs []domain.EntryLeg) (*domain.JournalEntry, error) {
	return g.build(header, legs)
}

// GeneratePurchase debits inventory and credits the paying account, with an optional fee leg.
func (g *JournalGenerator) GeneratePurchase(header domain.EntryHeader, inventoryAccountID, paymentAccountID string, amount decimal.Decimal, feeAccountID string, fee decimal.Decimal) (*domain.JournalEntry, error) {
	if fee.IsNegative() {
		return nil, apperrors.NewValidationError("purchase fee cannot be negative")
	}
	legs := []domain.EntryLeg{
		{AccountID: inventoryAccountID, Side: domain.Debit, Amount: amount, Description: lineDescription("Inventory purchase", header.Reference)},
	}
	total := amount
	if fee.IsPositive() {
		if feeAccountID == "" {
			return nil, apperrors.NewValidationError("purchase fee requires a fee account")
		}
		legs = append(legs, domain.EntryLeg{AccountID: feeAccountID, Side: domain.Debit, Amount: fee, Description: lineDescription("Purchase fee", header.Reference)})
		total = total.Add(fee)
	}
	legs = append(legs, domain.EntryLeg{AccountID: paymentAccountID, Side: domain.Credit, Amount: total, Description: lineDescription("Inventory payment", header.Reference)})
	return g.build(header, legs)
}

// GenerateAdjustment posts |newAmount − oldAmount|. An increase debits
// debitOnIncreaseID and credits creditOnIncreaseID; a decrease swaps them.
func (g *JournalGenerator) GenerateAdjustment(header domain.EntryHeader, debitOnIncreaseID, creditOnIncreaseID string, oldAmount, newAmount decimal.Decimal) (*domain.JournalEntry, error) {
	diff := newAmount.Sub(oldAmount)
	if diff.IsZero() {
		return nil, apperrors.NewValidationError("adjustment does not change the amount")
	}
	debitAcc, creditAcc := debitOnIncreaseID, creditOnIncreaseID
	label := "Upward adjustment"
	if diff.IsNegative() {
		debitAcc, creditAcc = creditOnIncreaseID, debitOnIncreaseID
		label = "Downward adjustment"
	}
	desc := lineDescription(label, header.Reference)
	return g.build(header, []domain.EntryLeg{
		{AccountID: debitAcc, Side: domain.Debit, Amount: diff.Abs(), Description: desc},
		{AccountID: creditAcc, Side: domain.Credit, Amount: diff.Abs(), Description: desc},
	})
}

// GeneratePayment settles a payable from cash.
func (g *JournalGenerator) GeneratePayment(header domain.EntryHeader, payableAccountID, cashAccountID string, amount decimal.Decimal) (*domain.JournalEntry, error) {
	desc := lineDescription("Payment", header.Reference)
	return g.build(header, []domain.EntryLeg{
		{AccountID: payableAccountID, Side: domain.Debit, Amount: amount, Description: desc},
		{AccountID: cashAccountID, Side: domain.Credit, Amount: amount, Description: desc},
	})
}

// GenerateReversal mirrors original: every debit becomes a credit of the same
// amount on the same account and vice versa.
func (g *JournalGenerator) GenerateReversal(original domain.JournalEntry, req domain.ReversalRequest) (*domain.JournalEntry, error) {
	if original.IsReversal() {
		return nil, apperrors.NewConflictError("cannot reverse reversal entry " + original.ID)
	}
	legs := make([]domain.EntryLeg, len(original.Lines))
	for i, l := range original.Lines {
		side := domain.Credit
		if l.Side() == domain.Credit {
			side = domain.Debit
		}
		legs[i] = domain.EntryLeg{
			AccountID:   l.AccountID,
			Side:        side,
			Amount:      l.Amount(),
			Description: "Reversal: " + l.Description,
		}
	}

	entry, err := g.build(domain.EntryHeader{
		TransactionID:     original.TransactionID,
		TransactionSource: original.TransactionSource,
		TransactionType:   original.TransactionType,
		Reference:         original.Reference + ReversalReferenceSuffix,
		Description:       "Reversal of " + original.Description,
		BranchID:          original.BranchID,
	}, legs)
	if err != nil {
		return nil, err
	}

	originalID := original.ID
	entry.ReversalOf = &originalID
	entry.Metadata = map[string]string{
		domain.MetaReversalReason: req.Reason,
		domain.MetaOriginalStatus: string(original.Status),
	}
	if req.OriginalSettled != nil {
		entry.Metadata[domain.MetaOriginalSettled] = strconv.FormatBool(*req.OriginalSettled)
	}
	return entry, nil
}

// build is the single primitive behind every entry shape. It rejects entries
// that would violate the balance invariant.
func (g *JournalGenerator) build(header domain.EntryHeader, legs []domain.EntryLeg) (*domain.JournalEntry, error) {
	if len(legs) < 2 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("an entry needs at least two legs, got %d", len(legs)))
	}

	now := g.clock.Now()
	date := header.Date
	if date.IsZero() {
		date = now
	}

	entryID := g.ids.NewID()
	lines := make([]domain.JournalEntryLine, 0, len(legs))
	for i, leg := range legs {
		if leg.AccountID == "" {
			return nil, apperrors.NewValidationError(fmt.Sprintf("leg %d has no GL account", i))
		}
		if !leg.Amount.IsPositive() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("leg %d amount must be positive, got %s", i, leg.Amount.String()))
		}
		desc := leg.Description
		if desc == "" {
			desc = lineDescription(header.Description, header.Reference)
		}
		line := domain.JournalEntryLine{
			ID:          g.ids.NewID(),
			EntryID:     entryID,
			AccountID:   leg.AccountID,
			Description: desc,
		}
		switch leg.Side {
		case domain.Debit:
			line.Debit = leg.Amount
		case domain.Credit:
			line.Credit = leg.Amount
		default:
			return nil, apperrors.NewValidationError(fmt.Sprintf("leg %d has unknown side %q", i, leg.Side))
		}
		lines = append(lines, line)
	}

	if err := accounting.ValidateLines(lines); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	return &domain.JournalEntry{
		ID:                entryID,
		TransactionID:     header.TransactionID,
		TransactionSource: header.TransactionSource,
		TransactionType:   header.TransactionType,
		Reference:         header.Reference,
		Description:       header.Description,
		Date:              date,
		BranchID:          header.BranchID,
		Status:            domain.EntryPending,
		Lines:             lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}, nil
}
