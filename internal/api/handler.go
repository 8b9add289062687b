// Package api exposes the analysis pipeline over HTTP.
package api

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cardsense/statement-analyzer/internal/models"
	"github.com/cardsense/statement-analyzer/internal/pipeline"
	"github.com/cardsense/statement-analyzer/internal/recommend"
)

const version = "1.0.0"

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Orchestrator *pipeline.Orchestrator
}

// Register sets up the API routes.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/analyze", h.HandleAnalyze)
	app.Post("/api/recommend", h.HandleRecommend)
}

// AnalyzeResponse is the JSON envelope for /api/analyze.
type AnalyzeResponse struct {
	Success  bool                  `json:"success"`
	Error    string                `json:"error,omitempty"`
	RunID    string                `json:"runId,omitempty"`
	Cards    []models.CardAnalysis `json:"cards"`
	Failures []FailedDocument      `json:"failures,omitempty"`
}

// FailedDocument reports one document that could not be processed.
type FailedDocument struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// RecommendRequest is the JSON body for /api/recommend.
type RecommendRequest struct {
	Category string                `json:"category"`
	Amount   float64               `json:"amount"`
	Priority recommend.Priority    `json:"priority"`
	Cards    []models.CardAnalysis `json:"cards"`
}

// RecommendResponse is the JSON envelope for /api/recommend.
type RecommendResponse struct {
	Success        bool                   `json:"success"`
	Error          string                 `json:"error,omitempty"`
	Recommendation *models.Recommendation `json:"recommendation,omitempty"`
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
	})
}

// HandleAnalyze accepts one or more statement PDFs grouped into card
// slots by multipart field name ("card1", "card2", ...) and returns a
// CardAnalysis per slot. A field "extractedText" may carry
// pre-extracted statement text instead of a file; "bank" overrides
// auto-detection for all documents in the request.
func (h *Handler) HandleAnalyze(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return writeAnalyzeError(c, fiber.StatusBadRequest,
			fmt.Sprintf("failed to parse form: %v", err))
	}

	bank, err := bankFromParam(c.FormValue("bank"))
	if err != nil {
		return writeAnalyzeError(c, fiber.StatusBadRequest, err.Error())
	}

	var slots []pipeline.CardSlot

	// Pre-extracted text forms one slot on its own.
	if text := c.FormValue("extractedText"); strings.TrimSpace(text) != "" {
		slots = append(slots, pipeline.CardSlot{Documents: []pipeline.Document{
			{File: "extractedText", Text: text, Bank: bank},
		}})
	}

	// Uploaded files, grouped into slots by field name. Numeric-aware
	// ordering so card10 comes after card2 and slot numbering stays
	// aligned with card IDs.
	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool {
		return fieldLess(fields[i], fields[j])
	})

	tmpDir, err := os.MkdirTemp("", "cardsense-*")
	if err != nil {
		return writeAnalyzeError(c, fiber.StatusInternalServerError, "failed to create temp dir")
	}
	defer os.RemoveAll(tmpDir)

	for _, field := range fields {
		var docs []pipeline.Document
		for i, fh := range form.File[field] {
			if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
				return writeAnalyzeError(c, fiber.StatusBadRequest,
					fmt.Sprintf("only PDF files are supported, got %q", fh.Filename))
			}
			path := filepath.Join(tmpDir, fmt.Sprintf("%s-%d.pdf", field, i))
			if err := c.SaveFile(fh, path); err != nil {
				return writeAnalyzeError(c, fiber.StatusInternalServerError,
					fmt.Sprintf("failed to save upload %q", fh.Filename))
			}
			docs = append(docs, pipeline.Document{File: path, Bank: bank})
		}
		if len(docs) > 0 {
			slots = append(slots, pipeline.CardSlot{Documents: docs})
		}
	}

	if len(slots) == 0 {
		return writeAnalyzeError(c, fiber.StatusBadRequest,
			"no statements uploaded; send PDF files in fields card1, card2, ... or pre-extracted text in extractedText")
	}

	result, err := h.Orchestrator.AnalyzeBatch(slots)
	if err != nil {
		return writeAnalyzeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	resp := AnalyzeResponse{
		Success: true,
		RunID:   result.RunID,
		Cards:   result.Cards,
	}
	if resp.Cards == nil {
		resp.Cards = []models.CardAnalysis{}
	}
	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, FailedDocument{
			File:  f.File,
			Error: f.Message(),
		})
	}
	return c.JSON(resp)
}

// HandleRecommend routes a candidate purchase across the supplied
// card analyses. Stateless: the caller sends back the analyses it got
// from /api/analyze.
func (h *Handler) HandleRecommend(c *fiber.Ctx) error {
	var req RecommendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(RecommendResponse{
			Success: false,
			Error:   fmt.Sprintf("invalid request body: %v", err),
		})
	}

	rec, err := recommend.Recommend(recommend.Request{
		Category: req.Category,
		Amount:   req.Amount,
		Priority: req.Priority,
	}, req.Cards)
	if err != nil {
		status := fiber.StatusUnprocessableEntity
		if errors.Is(err, models.ErrMissingInput) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(RecommendResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(RecommendResponse{
		Success:        true,
		Recommendation: rec,
	})
}

// fieldLess compares multipart field names by non-digit prefix first,
// then by numeric suffix, so "card2" sorts before "card10".
func fieldLess(a, b string) bool {
	pa, na := splitFieldNum(a)
	pb, nb := splitFieldNum(b)
	if pa != pb {
		return pa < pb
	}
	return na < nb
}

func splitFieldNum(s string) (string, int) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	n, _ := strconv.Atoi(s[i:])
	return s[:i], n
}

func bankFromParam(param string) (models.BankType, error) {
	switch strings.ToLower(strings.TrimSpace(param)) {
	case "":
		return models.BankUnknown, nil
	case "hdfc":
		return models.BankHDFC, nil
	case "sbi":
		return models.BankSBI, nil
	case "icici":
		return models.BankICICI, nil
	case "axis":
		return models.BankAxis, nil
	case "kotak":
		return models.BankKotak, nil
	case "citi":
		return models.BankCiti, nil
	case "amex", "american express":
		return models.BankAmex, nil
	case "indusind":
		return models.BankIndusInd, nil
	case "yes", "yes bank":
		return models.BankYes, nil
	case "sc", "standard chartered":
		return models.BankSC, nil
	default:
		return models.BankUnknown, fmt.Errorf("unknown bank %q", param)
	}
}

func writeAnalyzeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(AnalyzeResponse{
		Success: false,
		Error:   msg,
		Cards:   []models.CardAnalysis{},
	})
}
