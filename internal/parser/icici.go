package parser

import (
	"regexp"

	"github.com/cardsense/statement-analyzer/internal/models"
)

// ICICI Bank statements list transactions as
//
//	Date | SerNo | Description | [Reward Points] | Amount [CR]
//
// Date format: DD-MM-YYYY. The serial number and reward points columns
// are optional; credit rows carry a trailing "CR".
// Example line: "15-01-2024 10234567890 BIGBASKET MUMBAI 12 2,340.00"
var iciciTemplate = &Template{
	Bank:        models.BankICICI,
	DisplayName: "ICICI",
	Markers:     []string{"ICICI"},
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(\d{2}-\d{2}-\d{4})\s+(?:\d{6,}\s+)?(.+?)\s+(?:\d{1,4}\s+)?([\d,]+\.\d{2})\s*(CR)?$`),
	},
}
