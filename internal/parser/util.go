package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Date formats seen across Indian credit card statements, tried in order.
var datePatterns = []*regexp.Regexp{
	// DD/MM/YYYY or DD-MM-YYYY
	regexp.MustCompile(`\b(\d{2}[/\-]\d{2}[/\-]\d{4})\b`),
	// DD MON YYYY (e.g. 15 JAN 2024)
	regexp.MustCompile(`(?i)\b(\d{2}\s+[A-Z]{3}\s+\d{4})\b`),
	// DD Month YYYY (e.g. 15 January 2024)
	regexp.MustCompile(`(?i)\b(\d{2}\s+[A-Za-z]+\s+\d{4})\b`),
	// YYYY-MM-DD
	regexp.MustCompile(`\b(\d{4}[/\-]\d{2}[/\-]\d{2})\b`),
}

// Amount formats, tried in order. The currency-marker form is first so
// "Rs. 1,234.56" is not half-matched by the bare-number form. The Rs/INR
// markers are anchored to a word boundary so the "rs" ending merchant
// names like ROASTERS or MOTORS is never mistaken for a currency marker.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:\b(?:Rs\.?|INR)|₹)\s*([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)([\d,]+\.\d{2})\s*(?:Dr|Cr)?`),
	regexp.MustCompile(`\b([\d,]{1,10}\.\d{2})\b`),
}

const (
	// Lines shorter than this are header/footer noise, skipped outright.
	minLineLen = 10
	// Descriptions must keep at least this many characters after the
	// date and amount substrings are removed.
	minDescriptionLen = 4
	// Descriptions are bounded so one malformed row cannot blow up
	// downstream output.
	maxDescriptionLen = 50
)

// parseAmount converts "1,234.56", "Rs. 1,234.56" or "₹1234" to a float.
// Thousands separators and currency markers are stripped first.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ReplaceAll(s, "Rs.", "")
	s = strings.ReplaceAll(s, "Rs", "")
	s = strings.ReplaceAll(s, "INR", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00A0", "")
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}

// Repayment and reversal phrasing. A matched row whose description
// contains any of these is balance repayment or a credit reversal, not
// spend, and would corrupt utilization and category metrics if kept.
// Plain "payment" is deliberately absent: "BILL PAYMENT" rows are
// genuine spend.
var exclusionMarkers = []string{
	"payment received",
	"payment - thank you",
	"payment thank you",
	"thank you",
	"neft",
	"imps",
	"rtgs",
	"ach payment",
	"reversal",
	"refund",
	"cashback",
	"credit adjustment",
}

// isExcludedDescription reports whether a description marks a repayment
// or reversal row. Applied uniformly to every template and the fallback.
func isExcludedDescription(desc string) bool {
	lower := strings.ToLower(desc)
	for _, marker := range exclusionMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// truncateDescription bounds a description, cutting on a rune boundary
// so a multi-byte character (₹ shows up in merchant names) straddling
// the limit is dropped whole instead of leaving invalid UTF-8 behind.
func truncateDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	if len(desc) > maxDescriptionLen {
		cut := maxDescriptionLen
		for cut > 0 && !utf8.RuneStart(desc[cut]) {
			cut--
		}
		desc = desc[:cut]
	}
	return strings.TrimSpace(desc)
}

// Account metadata patterns, shared across templates. Scanned over the
// whole document independently of the transaction loop.
var (
	cardNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:card|account)\s*(?:number|no\.?)?\s*[:\-]?\s*[X*]{4,12}(\d{4})`),
		regexp.MustCompile(`[X*]{12}(\d{4})`),
	}
	creditLimitPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:credit\s*limit|total\s*limit|card\s*limit)\s*[:\-]?\s*(?:Rs\.?|INR|₹)?\s*([\d,]+(?:\.\d{2})?)`),
		regexp.MustCompile(`(?i)\blimit\s*[:\-]?\s*(?:Rs\.?|INR|₹)?\s*([\d,]+(?:\.\d{2})?)`),
	}
	minimumDuePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:minimum\s*(?:amount\s*)?due|min\.?\s*due|minimum\s*payment)\s*[:\-]?\s*(?:Rs\.?|INR|₹)?\s*([\d,]+(?:\.\d{2})?)`),
		// "Pay by" is usually followed by a date, so this form demands a
		// currency marker before it is read as an amount.
		regexp.MustCompile(`(?i)pay\s*by\s*[:\-]?\s*(?:Rs\.?|INR|₹)\s*([\d,]+(?:\.\d{2})?)`),
	}
	previousBalancePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:previous\s*balance|opening\s*balance)\s*[:\-]?\s*(?:Rs\.?|INR|₹)?\s*([\d,]+(?:\.\d{2})?)`),
	}
)

// Sanity bounds for an extracted credit limit. A "limit" outside these
// is a false positive colliding with some unrelated number in the
// document and is rejected.
const (
	minPlausibleLimit = 5_000
	maxPlausibleLimit = 10_000_000
)

func firstMatch(text string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// normalizeLine cleans up common PDF extraction artifacts.
func normalizeLine(line string) string {
	line = strings.ReplaceAll(line, "\u200B", "")
	line = strings.ReplaceAll(line, "\u00A0", " ")
	return strings.TrimSpace(line)
}
