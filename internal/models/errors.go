package models

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMergeInput is returned when a merge is requested with no
	// statements. This is a programmer error, not a parse failure.
	ErrEmptyMergeInput = errors.New("no statements to merge")

	// ErrNoSafeCard is returned when no card can absorb a purchase
	// without crossing the utilization ceiling.
	ErrNoSafeCard = errors.New("no card can safely absorb this purchase")

	// ErrMissingInput is returned when a recommendation is requested
	// without a category or a positive amount.
	ErrMissingInput = errors.New("category and a positive amount are required")
)

// ExtractionError means the text-extraction collaborator could not
// produce readable text for a document. Terminal for that document.
type ExtractionError struct {
	File string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("text extraction failed for %s: %v", e.File, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ZeroTransactionsError means a recognized bank's template matched the
// institution but produced no transactions. This usually indicates the
// statement layout drifted, so it is surfaced instead of being treated
// as an empty statement.
type ZeroTransactionsError struct {
	Bank BankType
}

func (e *ZeroTransactionsError) Error() string {
	return fmt.Sprintf("statement recognized as %s but no transactions matched its template", e.Bank)
}
