package services

import (
	"strings"

	"github.com/SscSPs/branchledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// conditionHolds evaluates one mapping condition. Attributes the module does
// not declare, and numeric comparisons on non-numeric values, never hold.
func conditionHolds(cond domain.MappingCondition, attrs domain.TransactionAttributes) bool {
	if attrs == nil {
		return false
	}
	value, ok := attrs.Lookup(cond.Attribute)
	if !ok {
		return false
	}

	switch cond.Operator {
	case domain.OpEquals:
		return valuesEqual(value, cond.Value)
	case domain.OpNotEquals:
		return !valuesEqual(value, cond.Value)
	case domain.OpGreaterThan, domain.OpLessThan:
		actual, ok := value.Number()
		if !ok {
			return false
		}
		expected, err := decimal.NewFromString(cond.Value)
		if err != nil {
			return false
		}
		if cond.Operator == domain.OpGreaterThan {
			return actual.GreaterThan(expected)
		}
		return actual.LessThan(expected)
	case domain.OpContains:
		return strings.Contains(value.Text(), cond.Value)
	case domain.OpStartsWith:
		return strings.HasPrefix(value.Text(), cond.Value)
	case domain.OpEndsWith:
		return strings.HasSuffix(value.Text(), cond.Value)
	}
	return false
}

// valuesEqual compares numeric attributes by value, so 100 equals "100.00".
// Text attributes compare exactly; "0241" is not "241".
func valuesEqual(value domain.AttributeValue, expected string) bool {
	if value.IsNumeric() {
		actual, _ := value.Number()
		if exp, err := decimal.NewFromString(expected); err == nil {
			return actual.Equal(exp)
		}
	}
	return value.Text() == expected
}

func allConditionsHold(mapping domain.GLMapping, attrs domain.TransactionAttributes) bool {
	for _, cond := range mapping.Conditions {
		if !conditionHolds(cond, attrs) {
			return false
		}
	}
	return true
}
