// Package writer exports the categorized transaction ledger.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cardsense/statement-analyzer/internal/models"
)

// CSVWriter writes a parsed statement's ledger to CSV.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the statement to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, stmt *models.ParsedStatement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, stmt)
}

// Write writes the statement in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, stmt *models.ParsedStatement) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	// Statement metadata as comment-style header rows
	if w.IncludeHeader {
		if stmt.CardName != "" {
			writer.Write([]string{"# Card", stmt.CardName})
		}
		if stmt.CardLastFour != "" {
			writer.Write([]string{"# Last Four", stmt.CardLastFour})
		}
		if stmt.StatementPeriod != "" {
			writer.Write([]string{"# Period", stmt.StatementPeriod})
		}
		if stmt.CreditLimit > 0 {
			writer.Write([]string{"# Credit Limit", formatAmount(stmt.CreditLimit)})
		}
		writer.Write([]string{"# Total Spend", formatAmount(stmt.TotalSpend)})
	}

	header := []string{"Date", "Description", "Category", "Type", "Amount"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range stmt.Transactions {
		row := []string{
			txn.Date,
			txn.Description,
			txn.Category,
			string(txn.Type),
			formatAmount(txn.Amount),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
