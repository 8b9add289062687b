package parser

import (
	"regexp"

	"github.com/cardsense/statement-analyzer/internal/models"
)

// SBI Card statements list transactions as
//
//	Date | Description | Amount | D/C
//
// Date format: DD MON YY or DD MON YYYY. The trailing single letter
// tags the row as debit or credit; rows without it are spend entries.
// Example line: "15 JAN 24 SWIGGY ORDER BANGALORE 450.00 D"
var sbiTemplate = &Template{
	Bank:        models.BankSBI,
	DisplayName: "SBI",
	Markers:     []string{"SBI"},
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(\d{2}\s+[A-Z]{3}\s+\d{2,4})\s+(.+?)\s+([\d,]+\.\d{2})\s*([DC])$`),
		regexp.MustCompile(`(?i)^(\d{2}\s+[A-Z]{3}\s+\d{2,4})\s+(.+?)\s+([\d,]+\.\d{2})$`),
	},
}
