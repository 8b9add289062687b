package parser

import (
	"regexp"

	"github.com/cardsense/statement-analyzer/internal/models"
)

// HDFC credit card statements list transactions as
//
//	Date | Description | Amount [Cr]
//
// Date format: DD/MM/YYYY. Credit rows (repayments, reversals) carry a
// trailing "Cr" marker.
// Example line: "15/01/2024 AMAZON PAY INDIA 1,200.00"
var hdfcTemplate = &Template{
	Bank:        models.BankHDFC,
	DisplayName: "HDFC",
	Markers:     []string{"HDFC"},
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(\d{2}/\d{2}/\d{4})\s+(.+?)\s+(?:Rs\.?\s*|INR\s*|₹\s*)?([\d,]+\.\d{2})\s*(Cr)?$`),
	},
}
