package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Field names of an extraction result, in output order.
const (
	FieldBankName        = "bank_name"
	FieldCardVariant     = "card_variant"
	FieldCardLast4       = "card_last_4"
	FieldBillingCycle    = "billing_cycle"
	FieldPaymentDueDate  = "payment_due_date"
	FieldTotalBalance    = "total_balance"
	FieldTransactionInfo = "transaction_info"
)

// FieldOrder lists every result field in the order they are extracted and rendered.
var FieldOrder = []string{
	FieldBankName,
	FieldCardVariant,
	FieldCardLast4,
	FieldBillingCycle,
	FieldPaymentDueDate,
	FieldTotalBalance,
	FieldTransactionInfo,
}

// NotFoundText is how a missing value is rendered in text and CSV output.
const NotFoundText = "Not Found"

// Value is an extracted field: either a string or an explicit "not found".
// The zero value is not found. It marshals to JSON null / YAML null when absent.
type Value struct {
	s     string
	found bool
}

// Found wraps an extracted string.
func Found(s string) Value {
	return Value{s: s, found: true}
}

// NotFound is the explicit absence marker.
func NotFound() Value {
	return Value{}
}

// OK reports whether the value was extracted.
func (v Value) OK() bool { return v.found }

// Get returns the extracted string and whether it exists.
func (v Value) Get() (string, bool) { return v.s, v.found }

func (v Value) String() string {
	if !v.found {
		return NotFoundText
	}
	return v.s
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.found {
		return []byte("null"), nil
	}
	return json.Marshal(v.s)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = NotFound()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = Found(s)
	return nil
}

// MarshalYAML renders a missing value as YAML null.
func (v Value) MarshalYAML() (interface{}, error) {
	if !v.found {
		return nil, nil
	}
	return v.s, nil
}

// ExtractionResult holds the seven fields extracted from one statement.
// Every field is always present; absent data is a NotFound value.
type ExtractionResult struct {
	BankName        Value `json:"bank_name" yaml:"bank_name"`
	CardVariant     Value `json:"card_variant" yaml:"card_variant"`
	CardLast4       Value `json:"card_last_4" yaml:"card_last_4"`
	BillingCycle    Value `json:"billing_cycle" yaml:"billing_cycle"`
	PaymentDueDate  Value `json:"payment_due_date" yaml:"payment_due_date"`
	TotalBalance    Value `json:"total_balance" yaml:"total_balance"`
	TransactionInfo Value `json:"transaction_info" yaml:"transaction_info"`
}

// FieldValue pairs a field name with its value.
type FieldValue struct {
	Name  string
	Value Value
}

// Fields returns the result as ordered name/value pairs.
func (r *ExtractionResult) Fields() []FieldValue {
	return []FieldValue{
		{FieldBankName, r.BankName},
		{FieldCardVariant, r.CardVariant},
		{FieldCardLast4, r.CardLast4},
		{FieldBillingCycle, r.BillingCycle},
		{FieldPaymentDueDate, r.PaymentDueDate},
		{FieldTotalBalance, r.TotalBalance},
		{FieldTransactionInfo, r.TransactionInfo},
	}
}

// Map returns the result keyed by field name. Missing values map to nil.
func (r *ExtractionResult) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(FieldOrder))
	for _, f := range r.Fields() {
		if s, ok := f.Value.Get(); ok {
			m[f.Name] = s
		} else {
			m[f.Name] = nil
		}
	}
	return m
}

// BalanceAmount parses TotalBalance (e.g. "12,345.67") as a decimal.
func (r *ExtractionResult) BalanceAmount() (decimal.Decimal, bool) {
	return ParseAmount(r.TotalBalance)
}

// ParseAmount converts an extracted numeral with optional thousands separators to a decimal.
func ParseAmount(v Value) (decimal.Decimal, bool) {
	s, ok := v.Get()
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ErrorResult is the single-key shape returned when a statement cannot be parsed.
type ErrorResult struct {
	Error string `json:"error" yaml:"error"`
}

// NewErrorResult wraps err's message.
func NewErrorResult(err error) *ErrorResult {
	return &ErrorResult{Error: err.Error()}
}
