package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardsense/statement-analyzer/internal/models"
)

const hdfcStatement = `HDFC Bank Credit Card Statement
Card No: XXXXXXXXXXXX5678
Credit Limit: Rs. 2,00,000

15/01/2024 AMAZON PAY INDIA 1,200.00
16/01/2024 SWIGGY ORDER BANGALORE 450.00
18/01/2024 INDIANOIL FUEL STATION PUNE 2,000.00`

// fakeExtractor returns canned text per path and an error for anything
// else.
func fakeExtractor(texts map[string]string) func(string) (string, error) {
	return func(path string) (string, error) {
		text, ok := texts[path]
		if !ok {
			return "", &models.ExtractionError{File: path, Err: errors.New("unreadable")}
		}
		return text, nil
	}
}

func TestAnalyzeBatch_Empty(t *testing.T) {
	orch := New(nil)
	_, err := orch.AnalyzeBatch(nil)
	require.Error(t, err)

	_, err = orch.AnalyzeBatch([]CardSlot{{}, {}})
	require.Error(t, err)
}

func TestAnalyzeBatch_SingleDocument(t *testing.T) {
	orch := New(nil)
	orch.ExtractFile = fakeExtractor(map[string]string{"a.pdf": hdfcStatement})

	result, err := orch.AnalyzeBatch([]CardSlot{
		{Documents: []Document{{File: "a.pdf"}}},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Empty(t, result.Failures)
	require.Len(t, result.Cards, 1)

	card := result.Cards[0]
	assert.Equal(t, "card-1", card.ID)
	assert.Equal(t, "HDFC Credit Card", card.Name)
	assert.Equal(t, 200000.0, card.Limit)
	assert.Equal(t, 3650.0, card.LastMonthSpend)
}

func TestAnalyzeBatch_FailureIsolatedToItsDocument(t *testing.T) {
	orch := New(nil)
	orch.ExtractFile = fakeExtractor(map[string]string{"good.pdf": hdfcStatement})

	result, err := orch.AnalyzeBatch([]CardSlot{
		{Documents: []Document{{File: "good.pdf"}}},
		{Documents: []Document{{File: "corrupt.pdf"}}},
	})
	require.NoError(t, err)

	// the bad slot is reported, the good slot still analyzed
	require.Len(t, result.Cards, 1)
	assert.Equal(t, "card-1", result.Cards[0].ID)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "corrupt.pdf", result.Failures[0].File)
	assert.NotEmpty(t, result.Failures[0].Message())
}

func TestAnalyzeBatch_InlineTextSkipsExtraction(t *testing.T) {
	orch := New(nil)
	orch.ExtractFile = func(path string) (string, error) {
		t.Errorf("extractor called for %q despite inline text", path)
		return "", nil
	}

	result, err := orch.AnalyzeBatch([]CardSlot{
		{Documents: []Document{{Text: hdfcStatement}}},
	})
	require.NoError(t, err)
	require.Len(t, result.Cards, 1)
}

func TestAnalyzeBatch_MergesSlotDocuments(t *testing.T) {
	orch := New(nil)
	orch.ExtractFile = fakeExtractor(map[string]string{
		"jan.pdf": hdfcStatement,
		"feb.pdf": hdfcStatement,
	})

	result, err := orch.AnalyzeBatch([]CardSlot{
		{Documents: []Document{{File: "jan.pdf"}, {File: "feb.pdf"}}},
	})
	require.NoError(t, err)
	require.Len(t, result.Cards, 1)

	card := result.Cards[0]
	require.Len(t, card.MonthlyData, 2)
	// merged total 7,300 split evenly across the two periods
	assert.Equal(t, 3650.0, card.LastMonthSpend)
	assert.Equal(t, 3650.0, card.MonthlyData[0].Spend)
}

func TestAnalyzeBatch_BankOverride(t *testing.T) {
	// text with no recognizable markers still parses when the caller
	// names the bank
	text := `Monthly summary

15/01/2024 AMAZON PAY INDIA 1,200.00`

	orch := New(nil)
	result, err := orch.AnalyzeBatch([]CardSlot{
		{Documents: []Document{{Text: text, Bank: models.BankHDFC}}},
	})
	require.NoError(t, err)
	require.Len(t, result.Cards, 1)
	assert.Equal(t, "HDFC Credit Card", result.Cards[0].Name)
}

func TestParseDocuments_AbortsOnFailure(t *testing.T) {
	orch := New(nil)
	orch.ExtractFile = fakeExtractor(map[string]string{"good.pdf": hdfcStatement})

	stmts, err := orch.ParseDocuments([]Document{
		{File: "good.pdf"},
		{File: "corrupt.pdf"},
	})
	require.Error(t, err)
	assert.Nil(t, stmts)

	var extErr *models.ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "corrupt.pdf", extErr.File)
}

func TestParseDocuments_ReturnsRawStatements(t *testing.T) {
	orch := New(nil)
	stmts, err := orch.ParseDocuments([]Document{
		{Text: hdfcStatement},
		{Text: hdfcStatement},
	})
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.Equal(t, 3650.0, stmts[0].TotalSpend)
}
