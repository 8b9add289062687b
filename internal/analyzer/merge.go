package analyzer

import (
	"fmt"

	"github.com/cardsense/statement-analyzer/internal/models"
)

// MergeStatements combines several monthly statements for one physical
// card into a single extended observation window.
//
// Transactions are concatenated in statement order, then within-statement
// order; no de-duplication is attempted (submitting the same document
// twice is a caller error). The credit limit is the maximum seen across
// inputs — limits do not shrink, and a partial-page extraction that
// missed the limit field must not erase one seen earlier. TotalSpend is
// recomputed from the merged transactions.
func MergeStatements(statements []models.ParsedStatement) (models.ParsedStatement, error) {
	if len(statements) == 0 {
		return models.ParsedStatement{}, models.ErrEmptyMergeInput
	}
	if len(statements) == 1 {
		return statements[0], nil
	}

	merged := models.ParsedStatement{
		CardName:        statements[0].CardName,
		CardLastFour:    statements[0].CardLastFour,
		StatementPeriod: fmt.Sprintf("%d months", len(statements)),
		CreditLimit:     statements[0].CreditLimit,
		MinimumDue:      statements[0].MinimumDue,
		PreviousBalance: statements[0].PreviousBalance,
	}

	for _, stmt := range statements {
		merged.Transactions = append(merged.Transactions, stmt.Transactions...)
		if stmt.CreditLimit > merged.CreditLimit {
			merged.CreditLimit = stmt.CreditLimit
		}
	}
	for _, t := range merged.Transactions {
		merged.TotalSpend += t.Amount
	}

	return merged, nil
}
