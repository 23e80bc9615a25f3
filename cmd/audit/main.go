// Command audit runs the compliance pipeline against three local documents
// without the server or database: parse, extract, link, evaluate, and write
// the report to a file or stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/wardenhq/warden/internal/compliance"
	"github.com/wardenhq/warden/internal/config"
	"github.com/wardenhq/warden/internal/engine"
	"github.com/wardenhq/warden/internal/extraction"
	"github.com/wardenhq/warden/internal/ingestion"
	"github.com/wardenhq/warden/internal/linking"
	"github.com/wardenhq/warden/internal/oracle"
	"github.com/wardenhq/warden/internal/rules"
)

func main() {
	var (
		regulationPath = flag.String("regulation", "", "Path to the regulatory document")
		policyPath     = flag.String("policy", "", "Path to the bank policy document")
		systemPath     = flag.String("system", "", "Path to the system rules export")
		outPath        = flag.String("out", "", "Report output path (default stdout)")
		format         = flag.String("format", "csv", "Report format: csv or json")
		findingsPath   = flag.String("findings", "", "Optional path for the findings JSON")
		skipClauses    = flag.Bool("skip-clauses", false, "Skip LLM clause extraction; findings only")
	)
	flag.Parse()

	if *regulationPath == "" || *policyPath == "" || *systemPath == "" {
		fmt.Println("usage: audit -regulation <path> -policy <path> -system <path> [-out <path>] [-format csv|json]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := context.Background()
	agentCfg := cfg.Agent.Resolve()

	orc, err := oracle.New(&cfg.Oracle, agentCfg, logger)
	if err != nil {
		log.Fatal("oracle init failed:", err)
	}

	dispatcher := ingestion.NewDispatcher()
	dispatcher.Register(".pdf", ingestion.NewPDFParser(agentCfg, logger))

	docs := []struct {
		path    string
		docType rules.DocType
	}{
		{*regulationPath, rules.DocRegulation},
		{*policyPath, rules.DocPolicy},
		{*systemPath, rules.DocSystem},
	}

	ruleSets := make([][]rules.StructuredRule, len(docs))
	texts := make([]string, len(docs))

	for i, doc := range docs {
		elements, err := dispatcher.Parse(ctx, doc.path)
		if err != nil {
			log.Fatalf("parse %s: %v", doc.path, err)
		}

		ruleSets[i] = rules.ExtractAll(rules.CandidatesFromElements(elements, doc.docType))
		texts[i] = joinElements(elements)
	}

	linker := linking.New(orc, cfg.Engine, logger)
	links, err := linker.LinkAll(ctx, ruleSets[0], ruleSets[1], ruleSets[2])
	if err != nil {
		log.Fatal("link rules failed:", err)
	}

	entries := compliance.EvaluateTraces(links)

	if *findingsPath != "" {
		if err := writeJSONFile(*findingsPath, entries); err != nil {
			log.Fatal("write findings failed:", err)
		}
	}

	if *skipClauses {
		printSummary(entries, nil)
		return
	}

	extractor := extraction.NewExtractor(agentCfg, cfg.Engine.Workers, logger)

	clauseSets := make([][]extraction.Clause, len(texts))
	for i, text := range texts {
		clauses, err := extractor.ExtractClauses(ctx, text)
		if err != nil {
			log.Fatalf("extract clauses from %s: %v", docs[i].path, err)
		}
		clauseSets[i] = clauses
	}

	matcher := engine.NewMatcher(cfg.Engine, orc, logger)
	evaluator := compliance.NewEvaluator(matcher, logger)

	rows, err := evaluator.CompareClauses(ctx, clauseSets[0], clauseSets[1], clauseSets[2])
	if err != nil {
		log.Fatal("compare clauses failed:", err)
	}

	if err := writeReport(*outPath, *format, rows); err != nil {
		log.Fatal("write report failed:", err)
	}

	printSummary(entries, rows)
}

func joinElements(elements []ingestion.TextElement) string {
	var out string
	for i, e := range elements {
		if i > 0 {
			out += "\n\n"
		}
		out += e.Text
	}
	return out
}

func writeReport(path, format string, rows []compliance.ReportRow) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "json":
		return compliance.WriteJSON(out, rows)
	case "csv":
		return compliance.WriteCSV(out, rows)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printSummary(entries []compliance.AuditEntry, rows []compliance.ReportRow) {
	high, medium, low := 0, 0, 0
	for _, e := range entries {
		switch e.Severity {
		case compliance.SeverityHigh:
			high++
		case compliance.SeverityMedium:
			medium++
		default:
			low++
		}
	}

	fmt.Fprintf(os.Stderr, "findings: %d (high=%d medium=%d low=%d)\n", len(entries), high, medium, low)
	if rows != nil {
		fmt.Fprintf(os.Stderr, "report rows: %d\n", len(rows))
	}
}
