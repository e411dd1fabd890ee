package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ServiceModule identifies the business module that produced a transaction.
type ServiceModule string

const (
	ModuleMomo          ServiceModule = "momo"
	ModuleAgencyBanking ServiceModule = "agency_banking"
	ModuleEZwich        ServiceModule = "e-zwich"
	ModulePower         ServiceModule = "power"
	ModuleJumia         ServiceModule = "jumia"
	ModuleExpenses      ServiceModule = "expenses"
	ModuleCommissions   ServiceModule = "commissions"
	ModuleFloat         ServiceModule = "float"
	ModuleInventory     ServiceModule = "inventory"
)

// AttributeValue is a single attribute as seen by mapping conditions.
// Numeric attributes keep their decimal form so comparisons never go through floats.
type AttributeValue struct {
	text    string
	number  decimal.Decimal
	numeric bool
}

func TextValue(s string) AttributeValue { return AttributeValue{text: s} }

func NumberValue(d decimal.Decimal) AttributeValue {
	return AttributeValue{number: d, numeric: true}
}

// Text returns the string form used by the string operators.
func (v AttributeValue) Text() string {
	if v.numeric {
		return v.number.String()
	}
	return v.text
}

// IsNumeric reports whether the attribute is declared as a number.
func (v AttributeValue) IsNumeric() bool { return v.numeric }

// Number returns the numeric form; text attributes are parsed on demand.
func (v AttributeValue) Number() (decimal.Decimal, bool) {
	if v.numeric {
		return v.number, true
	}
	d, err := decimal.NewFromString(v.text)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// TransactionAttributes is the typed attribute bag of one service module.
// Mapping conditions may only reference names listed by Fields.
type TransactionAttributes interface {
	Module() ServiceModule
	Fields() []string
	Lookup(name string) (AttributeValue, bool)
}

// amountBinder is implemented by every module schema; the transaction's own
// amount and fee are the values conditions see for those attributes.
type amountBinder interface {
	withAmounts(amount, fee decimal.Decimal) (TransactionAttributes, error)
}

// supplied records which attributes a decoded payload carried. Lookup on an
// attribute the payload omitted reports false, so no condition on it holds.
// A bag built in code has a nil set and every declared field counts as supplied.
type supplied struct {
	names map[string]bool
}

func (s supplied) has(name string) bool {
	return s.names == nil || s.names[name]
}

func (s supplied) with(names ...string) supplied {
	if s.names == nil {
		return s
	}
	merged := make(map[string]bool, len(s.names)+len(names))
	for n := range s.names {
		merged[n] = true
	}
	for _, n := range names {
		merged[n] = true
	}
	return supplied{names: merged}
}

// agrees rejects an attribute value that contradicts the transaction. In a bag
// built in code a zero value means unset.
func (s supplied) agrees(name string, given, want decimal.Decimal) error {
	if s.names == nil && given.IsZero() {
		return nil
	}
	if s.has(name) && !given.Equal(want) {
		return fmt.Errorf("attribute %s=%s does not match the transaction %s %s", name, given, name, want)
	}
	return nil
}

func (s *supplied) markSupplied(names map[string]bool) {
	s.names = names
}

type MomoAttributes struct {
	supplied
	Provider      string          `json:"provider"`
	CustomerPhone string          `json:"customerPhone"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
}

func (MomoAttributes) Module() ServiceModule { return ModuleMomo }
func (MomoAttributes) Fields() []string {
	return []string{"provider", "customerPhone", "amount", "fee"}
}
func (a MomoAttributes) Lookup(name string) (AttributeValue, bool) {
	if !a.has(name) {
		return AttributeValue{}, false
	}
	switch name {
	case "provider":
		return TextValue(a.Provider), true
	case "customerPhone":
		return TextValue(a.CustomerPhone), true
	case "amount":
		return NumberValue(a.Amount), true
	case "fee":
		return NumberValue(a.Fee), true
	}
	return AttributeValue{}, false
}

func (a MomoAttributes) withAmounts(amount, fee decimal.Decimal) (TransactionAttributes, error) {
	if err := a.agrees("amount", a.Amount, amount); err != nil {
		return nil, err
	}
	if err := a.agrees("fee", a.Fee, fee); err != nil {
		return nil, err
	}
	a.Amount, a.Fee = amount, fee
	a.supplied = a.with("amount", "fee")
	return a, nil
}

type AgencyBankingAttributes struct {
	supplied
	PartnerBank   string          `json:"partnerBank"`
	AccountNumber string          `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
}

func (AgencyBankingAttributes) Module() ServiceModule { return ModuleAgencyBanking }
func (AgencyBankingAttributes) Fields() []string {
	return []string{"partnerBank", "accountNumber", "amount", "fee"}
}
func (a AgencyBankingAttributes) Lookup(name string) (AttributeValue, bool) {
	if !a.has(name) {
		return AttributeValue{}, false
	}
	switch name {
	case "partnerBank":
		return TextValue(a.PartnerBank), true
	case "accountNumber":
		return TextValue(a.AccountNumber), true
	case "amount":
		return NumberValue(a.Amount), true
	case "fee":
		return NumberValue(a.Fee), true
	}
	return AttributeValue{}, false
}

func (a AgencyBankingAttributes) withAmounts(amount, fee decimal.Decimal) (TransactionAttributes, error) {
	if err := a.agrees("amount", a.Amount, amount); err != nil {
		return nil, err
	}
	if err := a.agrees("fee", a.Fee, fee); err != nil {
		return nil, err
	}
	a.Amount, a.Fee = amount, fee
	a.supplied = a.with("amount", "fee")
	return a, nil
}

type EZwichAttributes struct {
	supplied
	CardType string          `json:"cardType"`
	Quantity decimal.Decimal `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
	Fee      decimal.Decimal `json:"fee"`
}

func (EZwichAttributes) Module() ServiceModule { return ModuleEZwich }
func (EZwichAttributes) Fields() []string {
	return []string{"cardType", "quantity", "amount", "fee"}
}
func (a EZwichAttributes) Lookup(name string) (AttributeValue, bool) {
	if !a.has(name) {
		return AttributeValue{}, false
	}
	switch name {
	case "cardType":
		return TextValue(a.CardType), true
	case "quantity":
		return NumberValue(a.Quantity), true
	case "amount":
		return NumberValue(a.Amount), true
	case "fee":
		return NumberValue(a.Fee), true
	}
	return AttributeValue{}, false
}

func (a EZwichAttributes) withAmounts(amount, fee decimal.Decimal) (TransactionAttributes, error) {
	if err := a.agrees("amount", a.Amount, amount); err != nil {
		return nil, err
	}
	if err := a.agrees("fee", a.Fee, fee); err != nil {
		return nil, err
	}
	a.Amount, a.Fee = amount, fee
	a.supplied = a.with("amount", "fee")
	return a, nil
}

type PowerAttributes struct {
	supplied
	Provider  string          `json:"provider"`
	MeterType string          `json:"meterType"`
	Amount    decimal.Decimal `json:"amount"`
	Fee       decimal.Decimal `json:"fee"`
}

func (PowerAttributes) Module() ServiceModule { return ModulePower }
func (PowerAttributes) Fields() []string {
	return []string{"provider", "meterType", "amount", "fee"}
}
func (a PowerAttributes) Lookup(name string) (AttributeValue, bool) {
	if !a.has(name) {
		return AttributeValue{}, false
	}
	switch name {
	case "provider":
		return TextValue(a.Provider), true
	case "meterType":
		return TextValue(a.MeterType), true
	case "amount":
		return NumberValue(a.Amount), true
	case "fee":
		return NumberValue(a.Fee), true
	}
	return AttributeValue{}, false
}

func (a PowerAttributes) withAmounts(amount, fee decimal.Decimal) (TransactionAttributes, error) {
	if err := a.agrees("amount", a.Amount, amount); err != nil {
		return nil, err
	}
	if err := a.agrees("fee", a.Fee, fee); err != nil {
		return nil, err
	}
	a.Amount, a.Fee = amount, fee
	a.supplied = a.with("amount", "fee")
	return a, nil
}

type JumiaAttributes struct {
	supplied
	PaymentMethod string          `json:"paymentMethod"`
	DeliveryType  string          `json:"deliveryType"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
}

func (JumiaAttributes) Module() ServiceModule { return ModuleJumia }
func (JumiaAttributes) Fields() []string {
	return []string{"paymentMethod", "deliveryType", "amount", "fee"}
}
func (a JumiaAttributes) Lookup(name string) (AttributeValue, bool) {
	if !a.has(name) {
		return AttributeValue{}, false
	}
	switch name {
	case "paymentMethod":
		return TextValue(a.PaymentMethod), true
	case "deliveryType":
		return TextValue(a.DeliveryType), true
	case "amount":
		return NumberValue(a.Amount), true
	case "fee":
		return NumberValue(a.Fee), true
	}
	return AttributeValue{}, false
}

func (a JumiaAttributes) withAmounts(amount, fee decimal.Decimal) (TransactionAttributes, error) {
	if err := a.agrees("amount", a.Amount, amount); err != nil {
		return nil, err
	}
	if err := a.agrees("fee", a.Fee, fee); err != nil {
		return nil, err
	}
	a.Amount, a.Fee = amount, fee
	a.supplied = a.with("amount", "fee")
	return a, nil
}

type ExpenseAttributes struct {
	supplied
	ExpenseHead   string          `json:"expenseHead"`
	PaymentSource string          `json:"paymentSource"`
	Amount        decimal.Decimal `json:"amount"`
}

func (ExpenseAttributes) Module() ServiceModule { return ModuleExpenses }
func (ExpenseAttributes) Fields() []string {
	return []string{"expenseHead", "paymentSource", "amount"}
}
func (a ExpenseAttributes) Lookup(name string) (AttributeValue, bool) {
	if !a.has(name) {
		return AttributeValue{}, false
	}
	switch name {
	case "expenseHead":
		return TextValue(a.ExpenseHead), true
	case "paymentSource":
		return TextValue(a.PaymentSource), true
	case "amount":
		return NumberValue(a.Amount), true
	}
	return AttributeValue{}, false
}

func (a ExpenseAttributes) withAmounts(amount, _ decimal.Decimal) (TransactionAttributes, error) {
	if err := a.agrees("amount", a.Amount, amount); err != nil {
		return nil, err
	}
	a.Amount = amount
	a.supplied = a.with("amount")
	return a, nil
}

type CommissionAttributes struct {
	supplied
	Source string          `json:"source"`
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

func (CommissionAttributes) Module() ServiceModule { return ModuleCommissions }
func (CommissionAttributes) Fields() []string {
	return []string{"source", "month", "amount"}
}
func (a CommissionAttributes) Lookup(name string) (AttributeValue, bool) {
	if !a.has(name) {
		return AttributeValue{}, false
	}
	switch name {
	case "source":
		return TextValue(a.Source), true
	case "month":
		return TextValue(a.Month), true
	case "amount":
		return NumberValue(a.Amount), true
	}
	return AttributeValue{}, false
}

func (a CommissionAttributes) withAmounts(amount, _ decimal.Decimal) (TransactionAttributes, error) {
	if err := a.agrees("amount", a.Amount, amount); err != nil {
		return nil, err
	}
	a.Amount = amount
	a.supplied = a.with("amount")
	return a, nil
}

type FloatAttributes struct {
	supplied
	AccountType string          `json:"accountType"`
	Provider    string          `json:"provider"`
	Amount      decimal.Decimal `json:"amount"`
}

func (FloatAttributes) Module() ServiceModule { return ModuleFloat }
func (FloatAttributes) Fields() []string {
	return []string{"accountType", "provider", "amount"}
}
func (a FloatAttributes) Lookup(name string) (AttributeValue, bool) {
	if !a.has(name) {
		return AttributeValue{}, false
	}
	switch name {
	case "accountType":
		return TextValue(a.AccountType), true
	case "provider":
		return TextValue(a.Provider), true
	case "amount":
		return NumberValue(a.Amount), true
	}
	return AttributeValue{}, false
}

func (a FloatAttributes) withAmounts(amount, _ decimal.Decimal) (TransactionAttributes, error) {
	if err := a.agrees("amount", a.Amount, amount); err != nil {
		return nil, err
	}
	a.Amount = amount
	a.supplied = a.with("amount")
	return a, nil
}

type InventoryAttributes struct {
	supplied
	ItemType string          `json:"itemType"`
	Supplier string          `json:"supplier"`
	Quantity decimal.Decimal `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

func (InventoryAttributes) Module() ServiceModule { return ModuleInventory }
func (InventoryAttributes) Fields() []string {
	return []string{"itemType", "supplier", "quantity", "amount"}
}
func (a InventoryAttributes) Lookup(name string) (AttributeValue, bool) {
	if !a.has(name) {
		return AttributeValue{}, false
	}
	switch name {
	case "itemType":
		return TextValue(a.ItemType), true
	case "supplier":
		return TextValue(a.Supplier), true
	case "quantity":
		return NumberValue(a.Quantity), true
	case "amount":
		return NumberValue(a.Amount), true
	}
	return AttributeValue{}, false
}

func (a InventoryAttributes) withAmounts(amount, _ decimal.Decimal) (TransactionAttributes, error) {
	if err := a.agrees("amount", a.Amount, amount); err != nil {
		return nil, err
	}
	a.Amount = amount
	a.supplied = a.with("amount")
	return a, nil
}

var attributeSchemas = map[ServiceModule]func() TransactionAttributes{
	ModuleMomo:          func() TransactionAttributes { return &MomoAttributes{} },
	ModuleAgencyBanking: func() TransactionAttributes { return &AgencyBankingAttributes{} },
	ModuleEZwich:        func() TransactionAttributes { return &EZwichAttributes{} },
	ModulePower:         func() TransactionAttributes { return &PowerAttributes{} },
	ModuleJumia:         func() TransactionAttributes { return &JumiaAttributes{} },
	ModuleExpenses:      func() TransactionAttributes { return &ExpenseAttributes{} },
	ModuleCommissions:   func() TransactionAttributes { return &CommissionAttributes{} },
	ModuleFloat:         func() TransactionAttributes { return &FloatAttributes{} },
	ModuleInventory:     func() TransactionAttributes { return &InventoryAttributes{} },
}

// IsValid reports whether m has a registered attribute schema.
func (m ServiceModule) IsValid() bool {
	_, ok := attributeSchemas[m]
	return ok
}

// HasAttribute reports whether the module's schema declares name.
func (m ServiceModule) HasAttribute(name string) bool {
	newAttrs, ok := attributeSchemas[m]
	if !ok {
		return false
	}
	for _, f := range newAttrs().Fields() {
		if f == name {
			return true
		}
	}
	return false
}

// DecodeAttributes decodes a JSON attribute bag into the module's typed schema.
// Unknown attribute names are rejected. Attributes absent from the payload, or
// sent as null, are not supplied and fail every condition on them.
func DecodeAttributes(module ServiceModule, raw []byte) (TransactionAttributes, error) {
	newAttrs, ok := attributeSchemas[module]
	if !ok {
		return nil, fmt.Errorf("unknown service module %q", module)
	}
	attrs := newAttrs()
	present := map[string]bool{}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(attrs); err != nil {
			return nil, fmt.Errorf("invalid %s attributes: %w", module, err)
		}
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(raw, &keys); err != nil {
			return nil, fmt.Errorf("invalid %s attributes: %w", module, err)
		}
		for name, value := range keys {
			if !bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
				present[name] = true
			}
		}
	}
	attrs.(interface{ markSupplied(map[string]bool) }).markSupplied(present)
	return attrs, nil
}

// BindAmounts returns attrs with its amount and fee attributes taken from the
// transaction. A nil bag becomes an empty one for the module. A supplied
// attribute that disagrees with the transaction is an error.
func BindAmounts(module ServiceModule, attrs TransactionAttributes, amount, fee decimal.Decimal) (TransactionAttributes, error) {
	if attrs == nil {
		decoded, err := DecodeAttributes(module, nil)
		if err != nil {
			return nil, err
		}
		attrs = decoded
	}
	if attrs.Module() != module {
		return nil, fmt.Errorf("%s attributes given for a %s transaction", attrs.Module(), module)
	}
	binder, ok := attrs.(amountBinder)
	if !ok {
		return attrs, nil
	}
	return binder.withAmounts(amount, fee)
}
