// Package process contains the command that runs one document through the
// extraction pipeline.
package process

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/clearledgr/clearledgr-ap/cmd/root"
	"github.com/clearledgr/clearledgr-ap/internal/arbiter"
	"github.com/clearledgr/clearledgr-ap/internal/categorizer"
	"github.com/clearledgr/clearledgr-ap/internal/classifier"
	"github.com/clearledgr/clearledgr-ap/internal/config"
	"github.com/clearledgr/clearledgr-ap/internal/engine"
	"github.com/clearledgr/clearledgr-ap/internal/extractor"
	"github.com/clearledgr/clearledgr-ap/internal/logging"
	"github.com/clearledgr/clearledgr-ap/internal/matcher"
	"github.com/clearledgr/clearledgr-ap/internal/models"
	"github.com/clearledgr/clearledgr-ap/internal/router"
	"github.com/clearledgr/clearledgr-ap/internal/store"
)

var (
	inputFile  string
	outputFile string

	// Cmd is the process command.
	Cmd = &cobra.Command{
		Use:   "process",
		Short: "Run one document through the extraction pipeline",
		Long: `Reads a document (subject, body, sender, attachment references) from a
JSON file, runs classification, extraction, arbitration and matching, and
writes the outcome as JSON. Attachment names are resolved as file paths
relative to the input file.`,
		RunE: run,
	}
)

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "input document JSON file")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default stdout)")
	_ = Cmd.MarkFlagRequired("input")
}

func run(cmd *cobra.Command, args []string) error {
	log := root.Log
	cfg := root.Cfg

	data, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("error reading input file: %w", err)
	}

	var doc models.DocumentInput
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("error parsing input document: %w", err)
	}

	eng, err := buildEngine(cmd.Context(), cfg, filepath.Dir(inputFile), log)
	if err != nil {
		return err
	}

	outcome, err := eng.Process(cmd.Context(), doc)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding outcome: %w", err)
	}

	if outputFile == "" {
		fmt.Println(string(encoded))
		return nil
	}
	if err := os.WriteFile(outputFile, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}
	log.Info("Wrote outcome", logging.Field{Key: "file", Value: outputFile})
	return nil
}

// buildEngine assembles the pipeline from configuration. The remote matcher
// and Gemini strategy are only wired when configured.
func buildEngine(ctx context.Context, cfg *config.Config, attachmentDir string, log logging.Logger) (*engine.Engine, error) {
	budget := extractor.Budget{
		MaxAttachments:   cfg.Extraction.MaxAttachments,
		MaxBytes:         cfg.Extraction.MaxBytes,
		MaxPages:         cfg.Extraction.MaxPages,
		MaxChars:         cfg.Extraction.MaxChars,
		QualityEarlyStop: cfg.Extraction.QualityEarlyStop,
	}
	ext := extractor.New(
		&fileFetcher{dir: attachmentDir},
		extractor.NewCommandPDFExtractor(),
		nil,
		budget,
		log,
	)

	margins := arbiter.Margins{
		EmailScoreFloor: cfg.Arbitration.EmailScoreFloor,
		Vendor:          cfg.Arbitration.VendorMargin,
		Amount:          cfg.Arbitration.AmountMargin,
		Invoice:         cfg.Arbitration.InvoiceMargin,
		Date:            cfg.Arbitration.DateMargin,
	}

	accountStore := store.NewAccountStore(cfg.Accounts.File, log)
	strategies := []categorizer.Strategy{categorizer.NewKeywordStrategy(accountStore, log)}
	if cfg.Insights.Enabled {
		accounts, err := accountStore.LoadAccounts()
		if err != nil {
			return nil, err
		}
		gemini, err := categorizer.NewGeminiStrategy(ctx, cfg.Insights.APIKey, cfg.Insights.Model, accounts, log)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, gemini)
	}

	var remote matcher.RemoteMatcher
	var insights matcher.VendorInsights
	if cfg.Matcher.BaseURL != "" {
		timeout := time.Duration(cfg.Matcher.TimeoutSeconds) * time.Second
		remote = matcher.NewHTTPMatcher(cfg.Matcher.BaseURL, timeout, log)
		insights = matcher.NewHTTPVendorInsights(cfg.Matcher.BaseURL, timeout, log)
	}

	return engine.New(
		classifier.New(cfg.Classifier.IgnoredDomains, log),
		ext,
		arbiter.New(margins, log),
		categorizer.NewAdvisor(log, strategies...),
		matcher.NewLocalFallback(log),
		remote,
		insights,
		router.New(nil, cfg.Routing.AutoRouteExceptions, log),
		log,
	), nil
}

// fileFetcher resolves attachment names as paths relative to the input file.
type fileFetcher struct {
	dir string
}

func (f *fileFetcher) FetchAttachmentBytes(_ context.Context, ref models.AttachmentRef) ([]byte, error) {
	path := ref.Name
	if !filepath.IsAbs(path) {
		path = filepath.Join(f.dir, path)
	}
	return os.ReadFile(path)
}
