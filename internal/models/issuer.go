package models

// Issuer identifies a supported card issuer.
type Issuer string

const (
	IssuerHDFC  Issuer = "hdfc"
	IssuerChase Issuer = "chase"
	IssuerSBI   Issuer = "sbi"
	IssuerAmex  Issuer = "amex"
	IssuerCiti  Issuer = "citi"
)
