package parser

import (
	"strings"
)

// Signature identifies an issuer by literal substrings in the statement text.
// It matches when any literal occurs; FoldCase makes the comparison case-insensitive.
type Signature struct {
	Literals []string
	FoldCase bool
}

// Matches reports whether text contains any of the signature's literals.
func (s Signature) Matches(text string) bool {
	if s.FoldCase {
		return containsAnyFold(text, s.Literals)
	}
	return containsAny(text, s.Literals)
}

// Route pairs a signature with the issuer it selects.
type Route struct {
	Signature Signature
	Issuer    Issuer
}

// Router selects an issuer for a statement. Routes are tried in order and the
// first match wins, so a statement mentioning two issuers goes to the earlier one.
type Router struct {
	routes []Route
}

// NewRouter builds a router over routes in priority order.
func NewRouter(routes ...Route) *Router {
	return &Router{routes: append([]Route(nil), routes...)}
}

// DefaultRouter returns the router for the built-in issuers:
// HDFC, Chase, SBI, Amex, Citi, in that priority.
func DefaultRouter() *Router {
	return NewRouter(
		Route{Signature{Literals: []string{"HDFC", "H.D.F.C"}}, hdfcProfile},
		// "PURCHASE" contains "CHASE", so Chase claims any statement mentioning purchases
		// that HDFC has not already claimed.
		Route{Signature{Literals: []string{"CHASE", "JPMORGAN"}, FoldCase: true}, chaseProfile},
		Route{Signature{Literals: []string{"SBI Card", "State Bank of India"}}, sbiProfile},
		Route{Signature{Literals: []string{"American Express", "AMEX"}}, amexProfile},
		Route{Signature{Literals: []string{"Citi", "Citibank"}}, citiProfile},
	)
}

// Detect returns the first issuer whose signature occurs in text.
func (r *Router) Detect(text string) (Issuer, bool) {
	for _, route := range r.routes {
		if route.Signature.Matches(text) {
			return route.Issuer, true
		}
	}
	return nil, false
}

// Supported lists the short names of the routed issuers in priority order.
func (r *Router) Supported() []string {
	names := make([]string, 0, len(r.routes))
	for _, route := range r.routes {
		names = append(names, route.Issuer.ShortName())
	}
	return names
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if needle != "" && strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

func containsAnyFold(text string, needles []string) bool {
	upper := strings.ToUpper(text)
	for _, needle := range needles {
		if needle != "" && strings.Contains(upper, strings.ToUpper(needle)) {
			return true
		}
	}
	return false
}
