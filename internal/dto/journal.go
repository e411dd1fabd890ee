package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/branchledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryHeaderRequest carries the business identity shared by every entry shape.
type EntryHeaderRequest struct {
	TransactionID     string     `json:"transactionId" binding:"required"`
	TransactionSource string     `json:"transactionSource" binding:"required"`
	TransactionType   string     `json:"transactionType" binding:"required"`
	Reference         string     `json:"reference"`
	Description       string     `json:"description"`
	Date              *time.Time `json:"date"` // Optional: defaults to now
	BranchID          string     `json:"branchId" binding:"required"`
}

func (r EntryHeaderRequest) ToDomain() domain.EntryHeader {
	h := domain.EntryHeader{
		TransactionID:     r.TransactionID,
		TransactionSource: domain.ServiceModule(r.TransactionSource),
		TransactionType:   r.TransactionType,
		Reference:         r.Reference,
		Description:       r.Description,
		BranchID:          r.BranchID,
	}
	if r.Date != nil {
		h.Date = *r.Date
	}
	return h
}

// PostSourceTransactionRequest posts a business transaction through the mapping table.
type PostSourceTransactionRequest struct {
	TransactionID   string          `json:"transactionId" binding:"required"`
	Reference       string          `json:"reference"`
	ServiceModule   string          `json:"serviceModule" binding:"required"`
	TransactionType string          `json:"transactionType" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"decimal_gt0" swaggertype:"string"`
	Fee             decimal.Decimal `json:"fee" binding:"decimal_gte0" swaggertype:"string"`
	Date            *time.Time      `json:"date"`
	BranchID        string          `json:"branchId" binding:"required"`
	Description     string          `json:"description"`
	Attributes      json.RawMessage `json:"attributes" swaggertype:"object"`
}

// ToDomain decodes the module attributes; an undeclared attribute is an error.
func (r PostSourceTransactionRequest) ToDomain() (domain.SourceTransaction, error) {
	module := domain.ServiceModule(r.ServiceModule)
	attrs, err := domain.DecodeAttributes(module, r.Attributes)
	if err != nil {
		return domain.SourceTransaction{}, err
	}
	txn := domain.SourceTransaction{
		ID:              r.TransactionID,
		Reference:       r.Reference,
		ServiceModule:   module,
		TransactionType: r.TransactionType,
		Amount:          r.Amount,
		Fee:             r.Fee,
		BranchID:        r.BranchID,
		Description:     r.Description,
		Attributes:      attrs,
	}
	if r.Date != nil {
		txn.Date = *r.Date
	}
	return txn, nil
}

// EntryLegRequest is one explicit line of a custom entry.
type EntryLegRequest struct {
	AccountID   string          `json:"accountId" binding:"required"`
	Side        string          `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Amount      decimal.Decimal `json:"amount" binding:"decimal_gt0" swaggertype:"string"`
	Description string          `json:"description"`
}

// CreateCustomEntryRequest posts an entry built from explicit legs.
type CreateCustomEntryRequest struct {
	EntryHeaderRequest
	Legs []EntryLegRequest `json:"legs" binding:"required,min=2,dive"`
}

func (r CreateCustomEntryRequest) ToDomainLegs() []domain.EntryLeg {
	legs := make([]domain.EntryLeg, len(r.Legs))
	for i, l := range r.Legs {
		legs[i] = domain.EntryLeg{
			AccountID:   l.AccountID,
			Side:        domain.EntrySide(l.Side),
			Amount:      l.Amount,
			Description: l.Description,
		}
	}
	return legs
}

// CreatePurchaseEntryRequest posts a stock purchase with an optional fee.
type CreatePurchaseEntryRequest struct {
	EntryHeaderRequest
	InventoryAccountID string          `json:"inventoryAccountId" binding:"required"`
	PaymentAccountID   string          `json:"paymentAccountId" binding:"required"`
	Amount             decimal.Decimal `json:"amount" binding:"decimal_gt0" swaggertype:"string"`
	FeeAccountID       string          `json:"feeAccountId"`
	Fee                decimal.Decimal `json:"fee" binding:"decimal_gte0" swaggertype:"string"`
}

// CreateAdjustmentEntryRequest posts the difference between an old and a new amount.
type CreateAdjustmentEntryRequest struct {
	EntryHeaderRequest
	DebitOnIncreaseAccountID  string          `json:"debitOnIncreaseAccountId" binding:"required"`
	CreditOnIncreaseAccountID string          `json:"creditOnIncreaseAccountId" binding:"required,nefield=DebitOnIncreaseAccountID"`
	OldAmount                 decimal.Decimal `json:"oldAmount" binding:"decimal_gte0" swaggertype:"string"`
	NewAmount                 decimal.Decimal `json:"newAmount" binding:"decimal_gte0" swaggertype:"string"`
}

// CreatePaymentEntryRequest settles a payable from cash.
type CreatePaymentEntryRequest struct {
	EntryHeaderRequest
	PayableAccountID string          `json:"payableAccountId" binding:"required"`
	CashAccountID    string          `json:"cashAccountId" binding:"required,nefield=PayableAccountID"`
	Amount           decimal.Decimal `json:"amount" binding:"decimal_gt0" swaggertype:"string"`
}

// ReverseRequest explains a reversal.
type ReverseRequest struct {
	Reason          string `json:"reason" binding:"required"`
	OriginalSettled *bool  `json:"originalSettled"`
}

func (r ReverseRequest) ToDomain(actor string) domain.ReversalRequest {
	return domain.ReversalRequest{Reason: r.Reason, Actor: actor, OriginalSettled: r.OriginalSettled}
}

// ReclassifyRequest reverses a source transaction's posting and posts the corrected transaction.
type ReclassifyRequest struct {
	Reason          string                       `json:"reason" binding:"required"`
	OriginalSettled *bool                        `json:"originalSettled"`
	Transaction     PostSourceTransactionRequest `json:"transaction" binding:"required"`
}

// ListEntriesParams defines the query parameters for listing journal entries.
type ListEntriesParams struct {
	Source        string  `form:"source"`
	TransactionID string  `form:"transactionId"`
	BranchID      string  `form:"branchId"`
	Status        string  `form:"status" binding:"omitempty,oneof=pending posted reversed"`
	Limit         int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken     *string `form:"nextToken"`
}

func (p ListEntriesParams) Filter() domain.EntryFilter {
	return domain.EntryFilter{
		Source:        domain.ServiceModule(p.Source),
		TransactionID: p.TransactionID,
		BranchID:      p.BranchID,
		Status:        domain.EntryStatus(p.Status),
	}
}

// ListEntriesResponse wraps a page of journal entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// JournalLineResponse defines the data returned for one journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineId"`
	AccountID   string          `json:"accountId"`
	Side        string          `json:"side"`
	Debit       decimal.Decimal `json:"debit" swaggertype:"string"`
	Credit      decimal.Decimal `json:"credit" swaggertype:"string"`
	Description string          `json:"description"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID           string                `json:"entryId"`
	TransactionID     string                `json:"transactionId"`
	TransactionSource string                `json:"transactionSource"`
	TransactionType   string                `json:"transactionType"`
	Reference         string                `json:"reference"`
	Description       string                `json:"description"`
	Date              time.Time             `json:"date"`
	BranchID          string                `json:"branchId"`
	Status            string                `json:"status"`
	ReversalOf        *string               `json:"reversalOf,omitempty"`
	Metadata          map[string]string     `json:"metadata,omitempty"`
	TotalDebit        decimal.Decimal       `json:"totalDebit" swaggertype:"string"`
	TotalCredit       decimal.Decimal       `json:"totalCredit" swaggertype:"string"`
	PostedBy          *string               `json:"postedBy,omitempty"`
	PostedAt          *time.Time            `json:"postedAt,omitempty"`
	ReversedBy        *string               `json:"reversedBy,omitempty"`
	ReversedAt        *time.Time            `json:"reversedAt,omitempty"`
	Lines             []JournalLineResponse `json:"lines"`
	CreatedAt         time.Time             `json:"createdAt"`
	CreatedBy         string                `json:"createdBy"`
}

// ToJournalEntryResponse converts a domain entry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	debit, credit := e.Totals()
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineID:      l.ID,
			AccountID:   l.AccountID,
			Side:        string(l.Side()),
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return JournalEntryResponse{
		EntryID:           e.ID,
		TransactionID:     e.TransactionID,
		TransactionSource: string(e.TransactionSource),
		TransactionType:   e.TransactionType,
		Reference:         e.Reference,
		Description:       e.Description,
		Date:              e.Date,
		BranchID:          e.BranchID,
		Status:            string(e.Status),
		ReversalOf:        e.ReversalOf,
		Metadata:          e.Metadata,
		TotalDebit:        debit,
		TotalCredit:       credit,
		PostedBy:          e.PostedBy,
		PostedAt:          e.PostedAt,
		ReversedBy:        e.ReversedBy,
		ReversedAt:        e.ReversedAt,
		Lines:             lines,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
}

// ToJournalEntryResponses converts a slice of domain entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	out := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToJournalEntryResponse(&entries[i])
	}
	return out
}

// ReversalOutcomeResponse is the soft-fail result of reversing a source transaction.
type ReversalOutcomeResponse struct {
	Entry   *JournalEntryResponse `json:"entry,omitempty"`
	Skipped bool                  `json:"skipped"`
	Warning string                `json:"warning,omitempty"`
}

func ToReversalOutcomeResponse(o domain.ReversalOutcome) ReversalOutcomeResponse {
	resp := ReversalOutcomeResponse{Skipped: o.Skipped, Warning: o.Warning}
	if o.Entry != nil {
		e := ToJournalEntryResponse(o.Entry)
		resp.Entry = &e
	}
	return resp
}

// ReclassifyResponse pairs the reversal outcome with the corrected posting.
type ReclassifyResponse struct {
	Reversal ReversalOutcomeResponse `json:"reversal"`
	Entry    JournalEntryResponse    `json:"entry"`
}

func ToReclassifyResponse(r *domain.ReclassifyResult) ReclassifyResponse {
	return ReclassifyResponse{
		Reversal: ToReversalOutcomeResponse(r.Reversal),
		Entry:    ToJournalEntryResponse(r.Entry),
	}
}
