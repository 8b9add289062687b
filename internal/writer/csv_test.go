package writer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cardsense/statement-analyzer/internal/models"
)

func sampleStatement() *models.ParsedStatement {
	return &models.ParsedStatement{
		CardName:        "HDFC Credit Card",
		CardLastFour:    "5678",
		StatementPeriod: "Last Month",
		Transactions: []models.Transaction{
			{Date: "15/01/2024", Description: "AMAZON PAY INDIA", Amount: 1200, Type: models.Debit, Category: "Shopping"},
			{Date: "16/01/2024", Description: "SWIGGY ORDER, BANGALORE", Amount: 450, Type: models.Debit, Category: "Dining"},
		},
		TotalSpend:  1650,
		CreditLimit: 200000,
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, sampleStatement()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines: got %d, want 3\n%s", len(lines), buf.String())
	}
	if lines[0] != "Date,Description,Category,Type,Amount" {
		t.Errorf("header: got %q", lines[0])
	}
	if lines[1] != "15/01/2024,AMAZON PAY INDIA,Shopping,debit,1200.00" {
		t.Errorf("row 1: got %q", lines[1])
	}
	// the comma in the description must be quoted
	if !strings.Contains(lines[2], `"SWIGGY ORDER, BANGALORE"`) {
		t.Errorf("row 2 not quoted: %q", lines[2])
	}
}

func TestWrite_WithHeader(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	if err := w.Write(&buf, sampleStatement()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Card,HDFC Credit Card",
		"# Last Four,5678",
		"# Period,Last Month",
		"# Credit Limit,200000.00",
		"# Total Spend,1650.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing header row %q in:\n%s", want, out)
		}
	}
}

func TestWrite_HeaderSkipsMissingMetadata(t *testing.T) {
	stmt := &models.ParsedStatement{
		TotalSpend: 0,
		// no card name, last four, period or limit
	}

	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	if err := w.Write(&buf, stmt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "# Card,") || strings.Contains(out, "# Credit Limit") {
		t.Errorf("empty metadata should be omitted:\n%s", out)
	}
	if !strings.Contains(out, "# Total Spend,0.00") {
		t.Errorf("total spend row always present:\n%s", out)
	}
}

func TestWriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := &CSVWriter{}
	if err := w.WriteToFile(path, sampleStatement()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	var buf bytes.Buffer
	if err := w.Write(&buf, sampleStatement()); err != nil {
		t.Fatal(err)
	}
	if string(data) != buf.String() {
		t.Errorf("file content differs from stream output:\n%s", data)
	}
}
