package parser

import (
	"regexp"

	"github.com/cardsense/statement-analyzer/internal/models"
)

// Axis Bank statements list transactions as
//
//	Date | Description | Amount | Dr/Cr
//
// Date format: DD/MM/YYYY. Every row carries an explicit Dr or Cr
// marker.
// Example line: "15/01/2024 INOX MULTIPLEX PUNE 650.00 Dr"
var axisTemplate = &Template{
	Bank:        models.BankAxis,
	DisplayName: "AXIS",
	Markers:     []string{"AXIS"},
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(\d{2}/\d{2}/\d{4})\s+(.+?)\s+([\d,]+\.\d{2})\s+(Dr|Cr)$`),
	},
}
