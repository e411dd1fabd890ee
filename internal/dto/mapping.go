package dto

import (
	"encoding/json"

	"github.com/SscSPs/branchledger/internal/core/domain"
)

// MappingConditionRequest is one attribute predicate of a mapping.
type MappingConditionRequest struct {
	Attribute string `json:"attribute" binding:"required"`
	Operator  string `json:"operator" binding:"required,oneof=equals not_equals greater_than less_than contains starts_with ends_with"`
	Value     string `json:"value"`
}

// CreateMappingRequest defines the data needed to register a GL mapping.
type CreateMappingRequest struct {
	ServiceModule   string                    `json:"serviceModule" binding:"required"`
	TransactionType string                    `json:"transactionType" binding:"required"`
	BranchID        *string                   `json:"branchId"` // Optional: nil applies to every branch
	DebitAccountID  string                    `json:"debitAccountId" binding:"required"`
	CreditAccountID string                    `json:"creditAccountId" binding:"required,nefield=DebitAccountID"`
	Description     string                    `json:"description"`
	Conditions      []MappingConditionRequest `json:"conditions" binding:"omitempty,dive"`
	Priority        int                       `json:"priority"`
}

// ToDomain converts the request; validation against the module schema happens in the service.
func (r CreateMappingRequest) ToDomain() domain.GLMapping {
	conds := make([]domain.MappingCondition, len(r.Conditions))
	for i, c := range r.Conditions {
		conds[i] = domain.MappingCondition{
			Attribute: c.Attribute,
			Operator:  domain.Operator(c.Operator),
			Value:     c.Value,
		}
	}
	return domain.GLMapping{
		ServiceModule:   domain.ServiceModule(r.ServiceModule),
		TransactionType: r.TransactionType,
		BranchID:        r.BranchID,
		DebitAccountID:  r.DebitAccountID,
		CreditAccountID: r.CreditAccountID,
		Description:     r.Description,
		Conditions:      conds,
		Priority:        r.Priority,
		IsActive:        true,
	}
}

// ResolveMappingRequest asks which mapping a transaction would post through.
type ResolveMappingRequest struct {
	ServiceModule   string `json:"serviceModule" binding:"required"`
	TransactionType string `json:"transactionType" binding:"required"`
	// BranchID defaults to the caller's branch. Only admins may ask about another branch.
	BranchID   string          `json:"branchId"`
	Attributes json.RawMessage `json:"attributes" swaggertype:"object"`
}

// ListMappingsParams are the query parameters of the mapping listing.
type ListMappingsParams struct {
	ServiceModule   string `form:"module" binding:"required"`
	TransactionType string `form:"transactionType"`
}

// ListMappingsResponse wraps a mapping listing.
type ListMappingsResponse struct {
	Mappings []domain.GLMapping `json:"mappings"`
}
