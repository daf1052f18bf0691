package parser

import (
	"regexp"

	"github.com/insightdelivered/card-statement-parser/internal/models"
)

// Shared label patterns. Indian issuers print DD/MM/YYYY dates after a
// "Statement Date" / "Payment Due Date" label with optional ':' or '-'.
var (
	statementDateLoose = regexp.MustCompile(`(?i)Statement\s+Date\s*[:\-\s]*(\d{2}/\d{2}/\d{4})`)
	totalAmountDue     = regexp.MustCompile(`(?i)Total\s+Amount\s+Due\s*[:\-\s]*.*?([\d,]+\.\d{2})`)
	debitsTotal        = regexp.MustCompile(`(?i)Debits\s+([\d,]+\.\d{2})`)
	// US issuers: "New Balance ... $1,234.56"
	newBalanceDollar = regexp.MustCompile(`(?i)New\s+Balance\s.*?\$([\d,]+\.\d{2})`)
)

// HDFC statements mask the card number as a run of X/digits, e.g. "XXXXXXXX1234".
var hdfcProfile = &Profile{
	Issuer:          models.IssuerHDFC,
	Short:           "HDFC",
	Bank:            "HDFC Bank",
	VariantPrefix:   "HDFC",
	VariantFallback: "HDFC Credit Card",
	Variants:        []string{"Infinia", "Regalia", "Millennia", "MoneyBack", "Diners Club", "Business MoneyBack"},
	Last4:           Rule{Pattern: regexp.MustCompile(`(?i)[X\d]{8,12}(\d{4})`)},
	Cycle:           Rule{Pattern: statementDateLoose, Format: "Ends on %s"},
	Due:             Rule{Pattern: regexp.MustCompile(`(?i)Payment\s+Due\s+Date\s*[:\-\s]*(\d{2}/\d{2}/\d{4})`)},
	Balance:         Rule{Pattern: totalAmountDue},
	Transactions:    Rule{Pattern: debitsTotal, Format: "Total Debits: %s"},
}

// Chase: "Account ending in 1234", "Opening/Closing Date 12/24/21 - 01/23/22",
// "Purchases $1,200.50".
var chaseProfile = &Profile{
	Issuer:          models.IssuerChase,
	Short:           "Chase",
	Bank:            "Chase Bank",
	VariantPrefix:   "Chase",
	VariantFallback: "Chase Credit Card",
	Variants:        []string{"Sapphire", "Freedom", "Ink", "Slate", "Amazon"},
	Last4:           Rule{Pattern: regexp.MustCompile(`(?i)(?:Account|ending)\s+(?:Number)?\s*(?:in|:)?\s*(\d{4})`)},
	Cycle: Rule{Pattern: regexp.MustCompile(
		`(?i)Opening/Closing\s+Date\s+(\d{2}/\d{2}/\d{2,4}\s*-\s*\d{2}/\d{2}/\d{2,4})`)},
	Due:     Rule{Pattern: regexp.MustCompile(`(?i)Payment\s+Due\s+Date\s+(\d{1,2}/\d{1,2}/\d{2,4})`)},
	Balance: Rule{Pattern: newBalanceDollar},
	Transactions: Rule{
		Pattern: regexp.MustCompile(`(?i)Purchases\s+(?:and Adjustments)?\s*\$([\d,]+\.\d{2})`),
		Format:  "Total Purchases: $%s",
	},
}

// SBI Card: "Card Number: XXXX XXXX XXXX 1234".
var sbiProfile = &Profile{
	Issuer:          models.IssuerSBI,
	Short:           "SBI",
	Bank:            "SBI Card",
	VariantPrefix:   "SBI",
	VariantFallback: "SBI Credit Card",
	Variants:        []string{"Elite", "Prime", "SimplyClick", "SimplySave", "Aurum"},
	Last4:           Rule{Pattern: regexp.MustCompile(`(?i)XXXX\s+(\d{4})`)},
	Cycle:           Rule{Pattern: statementDateLoose, Format: "Statement generated on %s"},
	Due:             Rule{Pattern: regexp.MustCompile(`(?i)Payment\s+Due\s+Date\s*[:\-\s]*(\d{2}/\d{2}/\d{2,4})`)},
	Balance:         Rule{Pattern: totalAmountDue},
	Transactions:    Rule{Pattern: debitsTotal, Format: "Total Debits: %s"},
}

// Amex prints five-digit account endings and "Mon D, YYYY" dates.
var amexProfile = &Profile{
	Issuer:          models.IssuerAmex,
	Short:           "Amex",
	Bank:            "American Express",
	VariantPrefix:   "Amex",
	VariantFallback: "Amex Card",
	Variants:        []string{"Platinum", "Gold", "Green", "EveryDay", "Blue Cash"},
	Last4:           Rule{Pattern: regexp.MustCompile(`(?i)ending\s+in\s+(\d{4,5})`)},
	Cycle: Rule{
		Pattern: regexp.MustCompile(`(?i)Closing\s+Date\s+([A-Za-z]{3}\s\d{1,2},?\s\d{4})`),
		Format:  "Closing Date: %s",
	},
	Due:     Rule{Pattern: regexp.MustCompile(`(?i)Payment\s+Due\s+Date\s+([A-Za-z]{3}\s\d{1,2},?\s\d{4})`)},
	Balance: Rule{Pattern: newBalanceDollar},
	Transactions: Rule{
		Pattern: regexp.MustCompile(`(?i)New\s+charges\s.*?\$([\d,]+\.\d{2})`),
		Format:  "New Charges: $%s",
	},
}

var citiProfile = &Profile{
	Issuer:          models.IssuerCiti,
	Short:           "Citi",
	Bank:            "Citibank",
	VariantPrefix:   "Citi",
	VariantFallback: "Citi Card",
	Variants:        []string{"Premier", "Prestige", "Double Cash", "Rewards", "Simplicity"},
	// Greedy: the last four digits on the first "Account"/"Card" line.
	Last4: Rule{Pattern: regexp.MustCompile(`(?i)(?:Account|Card)\s+.*(\d{4})`)},
	Cycle: Rule{
		Pattern: regexp.MustCompile(`(?i)Statement\s+Date\s+(\d{2}/\d{2}/\d{4})`),
		Format:  "Statement Date: %s",
	},
	Due:     Rule{Pattern: regexp.MustCompile(`(?i)Payment\s+Due\s+Date\s+(\d{2}/\d{2}/\d{4})`)},
	Balance: Rule{Pattern: newBalanceDollar},
	Transactions: Rule{
		Pattern: regexp.MustCompile(`(?i)Purchases\s.*?\$([\d,]+\.\d{2})`),
		Format:  "Purchases: $%s",
	},
}
