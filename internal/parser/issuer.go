package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/insightdelivered/card-statement-parser/internal/models"
)

// Issuer extracts the seven statement fields for one card issuer's layout.
// Implementations hold no per-call state and are safe for concurrent use.
type Issuer interface {
	// ID returns the issuer identifier.
	ID() models.Issuer
	// ShortName is the label used in the list of supported issuers.
	ShortName() string
	BankName() string
	CardVariant(text string) models.Value
	CardLast4(text string) models.Value
	BillingCycle(text string) models.Value
	DueDate(text string) models.Value
	TotalBalance(text string) models.Value
	TransactionInfo(text string) models.Value
}

// Rule is a single field extraction: the first match of Pattern in the text,
// rendered through Format with the first capture group as its only argument.
// An empty Format returns the capture verbatim.
type Rule struct {
	Pattern *regexp.Regexp
	Format  string
}

// Apply runs the rule against text. A missing match is NotFound, never an error.
func (r Rule) Apply(text string) models.Value {
	if r.Pattern == nil {
		return models.NotFound()
	}
	m := r.Pattern.FindStringSubmatch(text)
	if m == nil || len(m) < 2 {
		return models.NotFound()
	}
	if r.Format == "" {
		return models.Found(m[1])
	}
	return models.Found(fmt.Sprintf(r.Format, m[1]))
}

// Profile is a data-driven Issuer: the bank name, product keywords and one Rule per field.
type Profile struct {
	Issuer models.Issuer
	Short  string
	Bank   string

	// VariantPrefix is prepended to the first matching keyword in Variants.
	VariantPrefix string
	// VariantFallback is returned when no keyword matches.
	VariantFallback string
	Variants        []string

	Last4        Rule
	Cycle        Rule
	Due          Rule
	Balance      Rule
	Transactions Rule
}

var _ Issuer = (*Profile)(nil)

func (p *Profile) ID() models.Issuer { return p.Issuer }
func (p *Profile) ShortName() string { return p.Short }
func (p *Profile) BankName() string  { return p.Bank }

// CardVariant returns the first product keyword found (case-insensitive),
// prefixed with the issuer name, or the issuer's generic card label.
func (p *Profile) CardVariant(text string) models.Value {
	upper := strings.ToUpper(text)
	for _, kw := range p.Variants {
		if strings.Contains(upper, strings.ToUpper(kw)) {
			return models.Found(p.VariantPrefix + " " + kw)
		}
	}
	return models.Found(p.VariantFallback)
}

func (p *Profile) CardLast4(text string) models.Value       { return p.Last4.Apply(text) }
func (p *Profile) BillingCycle(text string) models.Value    { return p.Cycle.Apply(text) }
func (p *Profile) DueDate(text string) models.Value         { return p.Due.Apply(text) }
func (p *Profile) TotalBalance(text string) models.Value    { return p.Balance.Apply(text) }
func (p *Profile) TransactionInfo(text string) models.Value { return p.Transactions.Apply(text) }

// Extract runs every field rule of iss against text in result order, after
// folding Unicode spaces and digits to ASCII.
func Extract(iss Issuer, text string) *models.ExtractionResult {
	text = normalizeText(text)
	return &models.ExtractionResult{
		BankName:        models.Found(iss.BankName()),
		CardVariant:     iss.CardVariant(text),
		CardLast4:       iss.CardLast4(text),
		BillingCycle:    iss.BillingCycle(text),
		PaymentDueDate:  iss.DueDate(text),
		TotalBalance:    iss.TotalBalance(text),
		TransactionInfo: iss.TransactionInfo(text),
	}
}
