package extractor

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cardsense/statement-analyzer/internal/models"
)

func TestIsReadableText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "real statement text",
			text: "HDFC Bank Credit Card Statement\nCredit Limit: Rs. 2,00,000\n15/01/2024 AMAZON PAY INDIA 1,200.00",
			want: true,
		},
		{
			name: "too short",
			text: "credit card",
			want: false,
		},
		{
			name: "identity-encoded garbage",
			text: strings.Repeat("þÿàéîôû ", 20),
			want: false,
		},
		{
			name: "readable but not a statement",
			text: "The quick brown fox jumps over the lazy dog again and again and again without stopping once.",
			want: false,
		},
		{
			name: "rupee symbol does not hurt quality",
			text: "Credit Card Statement total amount due ₹4,500.00 payment date 15/01/2024 balance ₹12,000.00",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isReadableText(tt.text); got != tt.want {
				t.Errorf("isReadableText() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextQuality(t *testing.T) {
	if q := textQuality(""); q != 0 {
		t.Errorf("empty: got %f, want 0", q)
	}
	if q := textQuality("plain ascii text 123"); q != 1 {
		t.Errorf("ascii: got %f, want 1", q)
	}
	if q := textQuality("þÿàé"); q != 0 {
		t.Errorf("garbage: got %f, want 0", q)
	}
	// accented letters count against quality even though they are letters
	if q := textQuality("café"); q != 0.75 {
		t.Errorf("mixed: got %f, want 0.75", q)
	}
}

func TestExtract_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.pdf")
	_, err := Extract(path)
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var extErr *models.ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %T: %v", err, err)
	}
	if extErr.File != path {
		t.Errorf("File: got %q, want %q", extErr.File, path)
	}
}
