// Package pipeline orchestrates the per-document flow: extract text,
// detect the bank, parse, then merge and analyze per card slot.
//
// Documents are independent until the merge step, so they are processed
// concurrently; the merge itself is a pure reduction. A failure is
// scoped to its document — one bad statement never discards siblings
// that already parsed. The caller decides what to do with partial
// results.
package pipeline

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/cardsense/statement-analyzer/internal/analyzer"
	"github.com/cardsense/statement-analyzer/internal/extractor"
	"github.com/cardsense/statement-analyzer/internal/models"
	"github.com/cardsense/statement-analyzer/internal/observability"
	"github.com/cardsense/statement-analyzer/internal/parser"
)

// Document is one input statement. Text, when set, is used as-is
// (pre-extracted upstream); otherwise File is run through the
// extractor. Bank overrides auto-detection when non-empty.
type Document struct {
	File string
	Text string
	Bank models.BankType
}

// CardSlot groups the documents the caller assigned to one physical
// card. Grouping is a caller decision, never inferred from content.
type CardSlot struct {
	Documents []Document
}

// Failure records a document that could not be processed.
type Failure struct {
	File string `json:"file"`
	Err  error  `json:"-"`
}

// Message is the user-facing failure text.
func (f Failure) Message() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

// BatchResult is the outcome of one analysis run: an analysis per card
// slot that yielded at least one parsed statement, plus the documents
// that failed.
type BatchResult struct {
	RunID    string
	Cards    []models.CardAnalysis
	Failures []Failure
}

// Orchestrator wires the pipeline stages together.
type Orchestrator struct {
	Sink    observability.Sink
	Options analyzer.Options

	// ExtractFile converts a document path to text. Defaults to the
	// PDF extractor; tests inject their own.
	ExtractFile func(path string) (string, error)
}

// New returns an orchestrator emitting into the given sink.
func New(sink observability.Sink) *Orchestrator {
	if sink == nil {
		sink = observability.NopSink{}
	}
	return &Orchestrator{Sink: sink, ExtractFile: extractor.Extract}
}

// AnalyzeBatch processes every slot's documents and produces one
// CardAnalysis per slot that parsed. Card IDs are assigned
// sequentially per batch from slot order.
func (o *Orchestrator) AnalyzeBatch(slots []CardSlot) (*BatchResult, error) {
	total := 0
	for _, slot := range slots {
		total += len(slot.Documents)
	}
	if total == 0 {
		return nil, errors.New("no documents supplied")
	}

	result := &BatchResult{RunID: uuid.NewString()}

	// Documents are independent: extract and parse them all
	// concurrently, indexed so no locking is needed.
	statements := make([][]*models.ParsedStatement, len(slots))
	failures := make([][]*Failure, len(slots))
	var wg sync.WaitGroup
	for si, slot := range slots {
		statements[si] = make([]*models.ParsedStatement, len(slot.Documents))
		failures[si] = make([]*Failure, len(slot.Documents))
		for di, doc := range slot.Documents {
			wg.Add(1)
			go func(si, di int, doc Document) {
				defer wg.Done()
				stmt, err := o.processDocument(doc)
				if err != nil {
					failures[si][di] = &Failure{File: doc.File, Err: err}
					o.Sink.Event("document failed", map[string]any{
						"file":  doc.File,
						"error": err.Error(),
					})
					return
				}
				statements[si][di] = stmt
			}(si, di, doc)
		}
	}
	wg.Wait()

	for si := range slots {
		for _, f := range failures[si] {
			if f != nil {
				result.Failures = append(result.Failures, *f)
			}
		}

		var parsed []models.ParsedStatement
		for _, stmt := range statements[si] {
			if stmt != nil {
				parsed = append(parsed, *stmt)
			}
		}
		if len(parsed) == 0 {
			continue
		}

		merged, err := analyzer.MergeStatements(parsed)
		if err != nil {
			return nil, err
		}
		o.Sink.Event("statements merged", map[string]any{
			"slot":       si + 1,
			"statements": len(parsed),
			"totalSpend": merged.TotalSpend,
		})

		cardID := fmt.Sprintf("card-%d", si+1)
		analysis := analyzer.AnalyzeWithOptions(merged, cardID, o.Options)
		o.Sink.Event("analysis complete", map[string]any{
			"card":        cardID,
			"name":        analysis.Name,
			"healthScore": analysis.HealthScore,
		})
		result.Cards = append(result.Cards, analysis)
	}

	return result, nil
}

// ParseDocuments runs documents through extract → detect → parse
// sequentially and returns the raw parsed statements. Unlike
// AnalyzeBatch, any document failure aborts: callers wanting the raw
// ledger (CSV export) need every document.
func (o *Orchestrator) ParseDocuments(docs []Document) ([]models.ParsedStatement, error) {
	stmts := make([]models.ParsedStatement, 0, len(docs))
	for _, doc := range docs {
		stmt, err := o.processDocument(doc)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, *stmt)
	}
	return stmts, nil
}

// processDocument runs one document through extract → detect → parse.
func (o *Orchestrator) processDocument(doc Document) (*models.ParsedStatement, error) {
	text := doc.Text
	if text == "" {
		extract := o.ExtractFile
		if extract == nil {
			extract = extractor.Extract
		}
		var err error
		text, err = extract(doc.File)
		if err != nil {
			return nil, err
		}
	}

	bank := doc.Bank
	if bank == models.BankUnknown {
		bank = parser.Detect(text)
	}
	o.Sink.Event("bank detected", map[string]any{
		"file": doc.File,
		"bank": string(bank),
	})

	return parser.Parse(text, bank, o.Sink)
}
