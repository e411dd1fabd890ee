package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/branchledger/internal/core/domain"
)

const dateOnly = "2006-01-02"

// StatementParams are the query parameters of a float statement.
// Dates accept YYYY-MM-DD or RFC3339; a date-only end includes that whole day.
type StatementParams struct {
	StartDate       string `form:"startDate"`
	EndDate         string `form:"endDate"`
	BranchID        string `form:"branchId"`
	IncludeGL       *bool  `form:"includeGL"` // Optional: defaults to true
	TransactionType string `form:"transactionType"`
}

func (p StatementParams) ToFilters() (domain.StatementFilters, error) {
	filters := domain.StatementFilters{
		BranchID:        p.BranchID,
		IncludeGL:       p.IncludeGL == nil || *p.IncludeGL,
		TransactionType: p.TransactionType,
	}
	if p.StartDate != "" {
		start, _, err := parseStatementDate(p.StartDate)
		if err != nil {
			return filters, fmt.Errorf("invalid startDate: %w", err)
		}
		filters.StartDate = &start
	}
	if p.EndDate != "" {
		end, dayOnly, err := parseStatementDate(p.EndDate)
		if err != nil {
			return filters, fmt.Errorf("invalid endDate: %w", err)
		}
		if dayOnly {
			end = end.Add(24*time.Hour - time.Nanosecond)
		}
		filters.EndDate = &end
	}
	return filters, nil
}

func parseStatementDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, false, err
}

// StatementResponse is a reconstructed float statement.
type StatementResponse struct {
	Account domain.FloatAccount      `json:"account"`
	Entries []domain.StatementEntry  `json:"entries"`
	Summary domain.StatementSummary  `json:"summary"`
	Filters StatementFiltersResponse `json:"filters"`
}

// StatementFiltersResponse echoes the filters the statement was built with.
type StatementFiltersResponse struct {
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	BranchID        string     `json:"branchId,omitempty"`
	IncludeGL       bool       `json:"includeGL"`
	TransactionType string     `json:"transactionType,omitempty"`
}

func ToStatementResponse(s *domain.Statement, f domain.StatementFilters) StatementResponse {
	entries := s.Entries
	if entries == nil {
		entries = []domain.StatementEntry{}
	}
	return StatementResponse{
		Account: s.Account,
		Entries: entries,
		Summary: s.Summary,
		Filters: StatementFiltersResponse{
			StartDate:       f.StartDate,
			EndDate:         f.EndDate,
			BranchID:        f.BranchID,
			IncludeGL:       f.IncludeGL,
			TransactionType: f.TransactionType,
		},
	}
}
