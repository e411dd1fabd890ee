package mapping

import (
	"github.com/SscSPs/branchledger/internal/core/domain"
	"github.com/SscSPs/branchledger/internal/models"
)

func ToDomainGLAccount(m models.GLAccount) domain.GLAccount {
	return domain.GLAccount{
		ID:          m.AccountID,
		Code:        m.Code,
		Name:        m.Name,
		Type:        domain.AccountType(m.AccountType),
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelGLMapping converts a mapping to its header row and ordered condition rows.
func ToModelGLMapping(d domain.GLMapping) (models.GLMapping, []models.GLMappingCondition) {
	conds := make([]models.GLMappingCondition, len(d.Conditions))
	for i, c := range d.Conditions {
		conds[i] = models.GLMappingCondition{
			MappingID: d.ID,
			Position:  i,
			Attribute: c.Attribute,
			Operator:  string(c.Operator),
			Value:     c.Value,
		}
	}
	return models.GLMapping{
		MappingID:       d.ID,
		ServiceModule:   string(d.ServiceModule),
		TransactionType: d.TransactionType,
		BranchID:        d.BranchID,
		DebitAccountID:  d.DebitAccountID,
		CreditAccountID: d.CreditAccountID,
		Description:     d.Description,
		Priority:        d.Priority,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}, conds
}

// ToDomainGLMapping joins a mapping row with its condition rows, which must be in position order.
func ToDomainGLMapping(m models.GLMapping, conds []models.GLMappingCondition) domain.GLMapping {
	var conditions []domain.MappingCondition
	for _, c := range conds {
		conditions = append(conditions, domain.MappingCondition{
			Attribute: c.Attribute,
			Operator:  domain.Operator(c.Operator),
			Value:     c.Value,
		})
	}
	return domain.GLMapping{
		ID:              m.MappingID,
		ServiceModule:   domain.ServiceModule(m.ServiceModule),
		TransactionType: m.TransactionType,
		BranchID:        m.BranchID,
		DebitAccountID:  m.DebitAccountID,
		CreditAccountID: m.CreditAccountID,
		Description:     m.Description,
		Conditions:      conditions,
		Priority:        m.Priority,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainFloatAccount(m models.FloatAccount) domain.FloatAccount {
	return domain.FloatAccount{
		ID:             m.FloatAccountID,
		BranchID:       m.BranchID,
		AccountType:    m.AccountType,
		Provider:       m.Provider,
		CurrentBalance: m.CurrentBalance,
		MinThreshold:   m.MinThreshold,
		MaxThreshold:   m.MaxThreshold,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainFloatTransaction(m models.FloatTransaction) domain.FloatTransaction {
	return domain.FloatTransaction{
		ID:              m.FloatTransactionID,
		FloatAccountID:  m.FloatAccountID,
		TransactionType: m.TransactionType,
		Amount:          m.Amount,
		BalanceBefore:   m.BalanceBefore,
		BalanceAfter:    m.BalanceAfter,
		Description:     m.Description,
		Reference:       m.Reference,
		BranchID:        m.BranchID,
		ProcessedBy:     m.ProcessedBy,
		CreatedAt:       m.CreatedAt,
	}
}
