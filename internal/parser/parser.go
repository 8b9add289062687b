// Package parser turns raw statement text into a transaction ledger.
//
// Each issuer emits transactions in a distinct token layout (delimiters,
// date format, currency marker, debit/credit marker), so parsing is
// driven by a registry of bank templates. A template is a data record:
// detection markers, transaction patterns and metadata patterns. Text
// from an unrecognized issuer goes through a generic fallback scan that
// trades recall for precision.
package parser

import (
	"regexp"
	"strings"

	"github.com/cardsense/statement-analyzer/internal/categorizer"
	"github.com/cardsense/statement-analyzer/internal/models"
	"github.com/cardsense/statement-analyzer/internal/observability"
)

// Template describes how one issuer's statements are parsed.
//
// Patterns must expose submatches in a fixed layout:
//
//	1 = date, 2 = description, 3 = amount, 4 = optional credit marker
//
// A row whose credit marker begins with "c" (Cr, CR, C) is money onto
// the card and is never retained as spend.
type Template struct {
	Bank        models.BankType
	DisplayName string
	// Markers identify the issuer in statement text. Registry order
	// matters: the first template whose marker appears wins, so more
	// specific issuers must be listed earlier.
	Markers []string
	// Patterns match transaction lines. Empty for marker-only entries,
	// which are detected by name but parsed with the generic fallback.
	Patterns []*regexp.Regexp
}

// dedicated reports whether the template carries its own transaction
// grammar.
func (t *Template) dedicated() bool { return len(t.Patterns) > 0 }

// registry is the ordered template list. Detection walks it top to
// bottom; a tie between two issuer names present in boilerplate text
// resolves to the earlier entry.
var registry = []*Template{
	hdfcTemplate,
	sbiTemplate,
	iciciTemplate,
	axisTemplate,
	{Bank: models.BankKotak, DisplayName: "Kotak", Markers: []string{"Kotak"}},
	{Bank: models.BankCiti, DisplayName: "Citi", Markers: []string{"Citi"}},
	{Bank: models.BankAmex, DisplayName: "American Express", Markers: []string{"American Express", "AMEX"}},
	{Bank: models.BankIndusInd, DisplayName: "IndusInd", Markers: []string{"IndusInd"}},
	{Bank: models.BankYes, DisplayName: "Yes Bank", Markers: []string{"Yes Bank"}},
	{Bank: models.BankSC, DisplayName: "Standard Chartered", Markers: []string{"Standard Chartered"}},
}

// Detect classifies the issuing bank from markers in the text. Returns
// BankUnknown when nothing matches; the caller then takes the generic
// parse path. Pure function.
func Detect(text string) models.BankType {
	upper := strings.ToUpper(text)
	for _, tpl := range registry {
		for _, marker := range tpl.Markers {
			if strings.Contains(upper, strings.ToUpper(marker)) {
				return tpl.Bank
			}
		}
	}
	return models.BankUnknown
}

// TemplateFor returns the registered template for a bank, or nil.
func TemplateFor(bank models.BankType) *Template {
	for _, tpl := range registry {
		if tpl.Bank == bank {
			return tpl
		}
	}
	return nil
}

// Parse converts raw statement text into a ParsedStatement.
//
// A bank with a dedicated template is parsed with that template
// exclusively; zero matches is surfaced as a ZeroTransactionsError
// rather than silently falling back, because a template that stopped
// matching more likely means the issuer changed its layout than that
// the statement is genuinely empty. Unrecognized banks go through the
// generic fallback scan.
func Parse(text string, bank models.BankType, sink observability.Sink) (*models.ParsedStatement, error) {
	if sink == nil {
		sink = observability.NopSink{}
	}

	tpl := TemplateFor(bank)

	var txns []models.Transaction
	if tpl != nil && tpl.dedicated() {
		txns = parseWithTemplate(text, tpl)
		if len(txns) == 0 {
			return nil, &models.ZeroTransactionsError{Bank: bank}
		}
	} else {
		txns = parseGeneric(text)
	}

	stmt := &models.ParsedStatement{
		CardName:        "Unknown Card",
		CardLastFour:    "****",
		StatementPeriod: "Last Month",
		Transactions:    txns,
	}
	if tpl != nil {
		stmt.CardName = tpl.DisplayName + " Credit Card"
	}
	for _, t := range txns {
		stmt.TotalSpend += t.Amount
	}

	extractCardDetails(text, stmt)
	if stmt.CreditLimit > 0 {
		sink.Event("limit extracted", map[string]any{
			"bank":  string(bank),
			"limit": stmt.CreditLimit,
		})
	}

	sink.Event("transactions parsed", map[string]any{
		"bank":       string(bank),
		"count":      len(txns),
		"totalSpend": stmt.TotalSpend,
	})

	return stmt, nil
}

// parseWithTemplate applies a dedicated template's patterns line by line.
// Source order is preserved.
func parseWithTemplate(text string, tpl *Template) []models.Transaction {
	var txns []models.Transaction
	for _, line := range strings.Split(text, "\n") {
		line = normalizeLine(line)
		if len(line) < minLineLen {
			continue
		}
		for _, pattern := range tpl.Patterns {
			m := pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			crMarker := ""
			if len(m) > 4 {
				crMarker = m[4]
			}
			if txn, ok := buildTransaction(m[1], m[2], m[3], crMarker); ok {
				txns = append(txns, txn)
			}
			break
		}
	}
	return txns
}

// buildTransaction validates one matched row and assembles a categorized
// transaction. Credit rows, repayment rows and non-positive amounts are
// dropped here so every template shares one filter.
func buildTransaction(date, desc, amount, crMarker string) (models.Transaction, bool) {
	if strings.HasPrefix(strings.ToLower(crMarker), "c") {
		return models.Transaction{}, false
	}
	description := truncateDescription(desc)
	if len(description) < minDescriptionLen {
		return models.Transaction{}, false
	}
	if isExcludedDescription(description) {
		return models.Transaction{}, false
	}
	amt, err := parseAmount(amount)
	if err != nil || amt <= 0 {
		return models.Transaction{}, false
	}
	return models.Transaction{
		Date:        date,
		Description: description,
		Amount:      amt,
		Type:        models.Debit,
		Category:    categorizer.Categorize(description),
	}, true
}

// parseGeneric is the fallback for unrecognized issuers. A line
// qualifies as a transaction if it carries a recognizable date token,
// a monetary amount, and enough description once both are removed.
func parseGeneric(text string) []models.Transaction {
	var txns []models.Transaction
	for _, line := range strings.Split(text, "\n") {
		line = normalizeLine(line)
		if len(line) < minLineLen {
			continue
		}

		var dateMatch []string
		for _, p := range datePatterns {
			if dateMatch = p.FindStringSubmatch(line); dateMatch != nil {
				break
			}
		}
		if dateMatch == nil {
			continue
		}

		var amountMatch []string
		for _, p := range amountPatterns {
			if amountMatch = p.FindStringSubmatch(line); amountMatch != nil {
				break
			}
		}
		if amountMatch == nil {
			continue
		}

		desc := line
		desc = strings.Replace(desc, dateMatch[0], "", 1)
		desc = strings.Replace(desc, amountMatch[0], "", 1)

		if txn, ok := buildTransaction(dateMatch[1], desc, amountMatch[1], ""); ok {
			txns = append(txns, txn)
		}
	}
	return txns
}

// extractCardDetails scans the whole document for account metadata,
// independently of the transaction loop. Sanity bounds keep a stray
// number near the word "limit" from masquerading as a credit limit.
func extractCardDetails(text string, stmt *models.ParsedStatement) {
	if m := firstMatch(text, cardNumberPatterns); m != "" {
		stmt.CardLastFour = m
	}
	if m := firstMatch(text, creditLimitPatterns); m != "" {
		if limit, err := parseAmount(m); err == nil &&
			limit >= minPlausibleLimit && limit <= maxPlausibleLimit {
			stmt.CreditLimit = limit
		}
	}
	if m := firstMatch(text, minimumDuePatterns); m != "" {
		if due, err := parseAmount(m); err == nil && due > 0 {
			stmt.MinimumDue = due
		}
	}
	if m := firstMatch(text, previousBalancePatterns); m != "" {
		if bal, err := parseAmount(m); err == nil {
			stmt.PreviousBalance = bal
		}
	}
}
