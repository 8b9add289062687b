package parser

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"1,234.56", 1234.56, false},
		{"2,00,000", 200000, false}, // Indian lakh grouping
		{"Rs. 560.00", 560, false},
		{"₹1234", 1234, false},
		{"INR 99.50", 99.5, false},
		{"450.00", 450, false},
		{"", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseAmount(%q): expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAmount(%q): unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseAmount(%q) = %f, want %f", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsExcludedDescription(t *testing.T) {
	tests := []struct {
		desc     string
		excluded bool
	}{
		{"NEFT PAYMENT RECEIVED", true},
		{"PAYMENT RECEIVED - THANK YOU", true},
		{"IMPS TRANSFER CREDIT", true},
		{"CASHBACK CREDIT JAN", true},
		{"TRANSACTION REVERSAL", true},
		{"MYNTRA ORDER REFUND", true},
		{"ELECTRICITY BILL PAYMENT", false}, // genuine spend
		{"SWIGGY ORDER BANGALORE", false},
		{"AMAZON PAY INDIA", false},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := isExcludedDescription(tt.desc); got != tt.excluded {
				t.Errorf("isExcludedDescription(%q) = %v, want %v", tt.desc, got, tt.excluded)
			}
		})
	}
}

func TestTruncateDescription(t *testing.T) {
	long := "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	if got := truncateDescription(long); len(got) != 50 {
		t.Errorf("length: got %d, want 50", len(got))
	}
	if got := truncateDescription("  short  "); got != "short" {
		t.Errorf("got %q, want %q", got, "short")
	}
}

func TestTruncateDescription_RuneBoundary(t *testing.T) {
	// a multi-byte rune straddling the byte limit is dropped whole
	prefix := strings.Repeat("A", 49)
	got := truncateDescription(prefix + "₹100 STORE")
	if !utf8.ValidString(got) {
		t.Fatalf("invalid UTF-8 after truncation: %q", got)
	}
	if got != prefix {
		t.Errorf("got %q, want %q", got, prefix)
	}

	// a rune ending exactly at the limit is kept
	prefix47 := strings.Repeat("A", 47)
	got = truncateDescription(prefix47 + "₹ EXTRA TEXT")
	if !utf8.ValidString(got) {
		t.Fatalf("invalid UTF-8 after truncation: %q", got)
	}
	if got != prefix47+"₹" {
		t.Errorf("got %q, want %q", got, prefix47+"₹")
	}
}
