package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/cardsense/statement-analyzer/internal/analyzer"
	"github.com/cardsense/statement-analyzer/internal/api"
	"github.com/cardsense/statement-analyzer/internal/config"
	"github.com/cardsense/statement-analyzer/internal/models"
	"github.com/cardsense/statement-analyzer/internal/observability"
	"github.com/cardsense/statement-analyzer/internal/pipeline"
	"github.com/cardsense/statement-analyzer/internal/recommend"
	"github.com/cardsense/statement-analyzer/internal/writer"
)

const version = "1.0.0"

func main() {
	bankFlag := flag.String("bank", "", "Bank override: hdfc, sbi, icici, axis, ... (auto-detected if omitted)")
	configFlag := flag.String("config", "", "Path to YAML config file")
	csvFlag := flag.String("csv", "", "Write the categorized ledger to this CSV file")
	serveFlag := flag.Bool("serve", false, "Start the HTTP API instead of processing files")
	categoryFlag := flag.String("category", "", "Recommend a card for a purchase in this category")
	amountFlag := flag.Float64("amount", 0, "Purchase amount for the recommendation")
	priorityFlag := flag.String("priority", "balance", "Recommendation priority: rewards, safety, balance")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `CardSense Statement Analyzer

Parses credit card statement PDFs into a categorized transaction
ledger and derives utilization, health score and card insights.
All PDFs passed in one invocation are treated as months of the same
card and merged.

Usage:
  statement-analyzer [flags] <statement.pdf> [statement2.pdf ...]
  statement-analyzer --serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Analyze one statement, print analysis as JSON
  statement-analyzer statement.pdf

  # Merge three months of one card
  statement-analyzer jan.pdf feb.pdf mar.pdf

  # Export the categorized ledger
  statement-analyzer --csv=ledger.csv statement.pdf

  # Ask where to put a purchase
  statement-analyzer --category=dining --amount=1500 --priority=safety statement.pdf

  # Run the HTTP API
  statement-analyzer --serve
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-analyzer v%s\n", version)
		os.Exit(0)
	}

	cfg, err := config.LoadOrEnv(*configFlag)
	if err != nil {
		fatalf("config error: %v\n", err)
	}

	sink := newSink(cfg.Logging)

	if *serveFlag {
		serve(cfg, sink)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	bank, err := parseBankFlag(*bankFlag)
	if err != nil {
		fatalf("%v\n", err)
	}

	orch := pipeline.New(sink)
	orch.Options = analyzer.Options{
		DefaultCreditLimit: cfg.Analysis.DefaultCreditLimit,
		RewardRate:         cfg.Analysis.RewardRate,
	}

	docs := make([]pipeline.Document, 0, flag.NArg())
	for _, path := range flag.Args() {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fatalf("input file not found: %s\n", path)
		}
		docs = append(docs, pipeline.Document{File: path, Bank: bank})
	}

	result, err := orch.AnalyzeBatch([]pipeline.CardSlot{{Documents: docs}})
	if err != nil {
		fatalf("analysis failed: %v\n", err)
	}
	for _, f := range result.Failures {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", f.File, f.Message())
	}
	if len(result.Cards) == 0 {
		fatalf("no statements could be analyzed\n")
	}
	card := result.Cards[0]

	if *csvFlag != "" {
		if err := exportCSV(*csvFlag, orch, docs); err != nil {
			fatalf("CSV export failed: %v\n", err)
		}
		fmt.Printf("Ledger written to %s\n", *csvFlag)
	}

	out, _ := json.MarshalIndent(card, "", "  ")
	fmt.Println(string(out))

	if *categoryFlag != "" || *amountFlag > 0 {
		rec, err := recommend.Recommend(recommend.Request{
			Category: *categoryFlag,
			Amount:   *amountFlag,
			Priority: recommend.Priority(*priorityFlag),
		}, result.Cards)
		if err != nil {
			fatalf("recommendation failed: %v\n", err)
		}
		fmt.Printf("\nRecommended: %s\n", rec.Card.Name)
		for _, reason := range rec.Reasoning {
			fmt.Printf("  - %s\n", reason)
		}
		for _, alt := range rec.Alternatives {
			fmt.Printf("Alternative: %s (%s)\n", alt.Card.Name, alt.Reason)
		}
	}
}

// exportCSV re-parses the documents into a merged statement so the raw
// ledger can be written out; AnalyzeBatch only returns the derived
// analysis.
func exportCSV(path string, orch *pipeline.Orchestrator, docs []pipeline.Document) error {
	stmts, err := orch.ParseDocuments(docs)
	if err != nil {
		return err
	}
	merged, err := analyzer.MergeStatements(stmts)
	if err != nil {
		return err
	}
	w := &writer.CSVWriter{IncludeHeader: true}
	return w.WriteToFile(path, &merged)
}

func serve(cfg *config.Config, sink observability.Sink) {
	orch := pipeline.New(sink)
	orch.Options = analyzer.Options{
		DefaultCreditLimit: cfg.Analysis.DefaultCreditLimit,
		RewardRate:         cfg.Analysis.RewardRate,
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20, // 32MB uploads
	})
	h := &api.Handler{Orchestrator: orch}
	h.Register(app)

	fmt.Printf("Listening on %s\n", cfg.Server.Addr)
	if err := app.Listen(cfg.Server.Addr); err != nil {
		fatalf("server error: %v\n", err)
	}
}

func newSink(cfg config.LoggingConfig) observability.Sink {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if strings.EqualFold(cfg.Format, "json") {
		log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
		return observability.NewZerologSink(log)
	}
	return observability.NewConsoleSink(level)
}

func parseBankFlag(s string) (models.BankType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
	case "amex":
		return models.BankAmex, nil
	case "indusind":
		return models.BankIndusInd, nil
	case "yes":
		return models.BankYes, nil
	case "sc":
		return models.BankSC, nil
	default:
		return models.BankUnknown, fmt.Errorf("unknown bank %q", s)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
