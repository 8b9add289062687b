// Package extractor is the document-to-text collaborator: it turns a
// statement PDF into one ordered text blob, preserving line order. The
// pipeline treats it as a black box; everything downstream works on the
// returned string.
package extractor

import (
	"fmt"
	"io"
	"math"
	"os/exec"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/cardsense/statement-analyzer/internal/models"
)

// Extract reads a statement PDF and returns its text, top to bottom.
// It tries the structured PDF library first and falls back to the
// external pdftotext command (poppler-utils). Garbage decodes are
// rejected by readability checks so they surface as an extraction
// failure instead of a zero-transaction parse.
func Extract(filePath string) (string, error) {
	text, libErr := extractWithLibrary(filePath)
	if libErr == nil && isReadableText(text) {
		return text, nil
	}

	popplerText, popplerErr := extractWithPdftotext(filePath)
	if popplerErr == nil && isReadableText(popplerText) {
		return popplerText, nil
	}

	err := libErr
	if err == nil {
		err = fmt.Errorf("no readable text could be decoded; the document may be image-based or use custom font encodings")
	}
	return "", &models.ExtractionError{File: filePath, Err: err}
}

// extractWithLibrary uses ledongthuc/pdf, trying row-based extraction
// first and coordinate-based row reconstruction second.
func extractWithLibrary(filePath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return "", openErr
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	text = extractByRow(r, numPages)
	if isReadableText(text) {
		return text, nil
	}

	text = extractByContent(r, numPages)
	if isReadableText(text) {
		return text, nil
	}

	plain, plainErr := r.GetPlainText()
	if plainErr == nil {
		if data, readErr := io.ReadAll(plain); readErr == nil {
			text = strings.TrimSpace(string(data))
		}
	}
	return text, nil
}

func extractByRow(r *pdf.Reader, numPages int) string {
	var lines []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// extractByContent reconstructs rows from raw text objects by grouping
// on the Y coordinate, then ordering left to right.
func extractByContent(r *pdf.Reader, numPages int) string {
	var lines []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		type textItem struct {
			x float64
			s string
		}
		rowMap := make(map[int][]textItem)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			yKey := int(math.Round(t.Y))
			rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, s: t.S})
		}

		// PDF Y runs bottom-to-top
		yKeys := make([]int, 0, len(rowMap))
		for y := range rowMap {
			yKeys = append(yKeys, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

		for _, y := range yKeys {
			items := rowMap[y]
			sort.Slice(items, func(a, b int) bool {
				return items[a].x < items[b].x
			})
			var parts []string
			var prevX float64
			for j, item := range items {
				if j > 0 && item.x-prevX > 15 {
					parts = append(parts, "  ")
				}
				parts = append(parts, item.s)
				prevX = item.x
			}
			line := strings.TrimSpace(strings.Join(parts, ""))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// extractWithPdftotext shells out to poppler-utils as a fallback for
// PDFs the Go library cannot decode.
func extractWithPdftotext(filePath string) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not available: %v", err)
	}
	out, err := exec.Command("pdftotext", "-layout", filePath, "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %v", err)
	}
	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", fmt.Errorf("pdftotext produced no output")
	}
	return text, nil
}

// statementWords appear in virtually every credit card statement. If
// the decoded text contains none of them, it is likely garbage from an
// identity-encoded font.
var statementWords = []string{
	"card", "statement", "credit", "limit", "due", "payment",
	"balance", "transaction", "amount", "date", "total", "account",
	"period", "reward", "bank",
}

// isReadableText requires enough text, a high ASCII-readable ratio and
// at least one recognizable statement word.
func isReadableText(text string) bool {
	if len(strings.TrimSpace(text)) <= 50 {
		return false
	}
	if textQuality(text) <= 0.6 {
		return false
	}
	lower := strings.ToLower(text)
	for _, word := range statementWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// textQuality returns the ratio of basic readable characters to total.
// Strict ASCII on letters: unicode.IsLetter is too broad and matches
// the accented garbage produced by identity-encoded fonts.
func textQuality(text string) float64 {
	total := 0
	readable := 0
	for _, r := range text {
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
			r == '.' || r == ',' || r == '-' || r == '/' || r == ':' ||
			r == ';' || r == '(' || r == ')' || r == '\'' || r == '"' ||
			r == '₹' || r == '$' || r == '%' || r == '&' || r == '*' ||
			r == '@' || r == '#' || r == '!' || r == '?' || r == '+' ||
			r == '=' || r == '\t' {
			readable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}
