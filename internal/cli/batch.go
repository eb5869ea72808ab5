package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/verifact/verifact/internal/model"
	"github.com/verifact/verifact/internal/pipeline"
	"github.com/verifact/verifact/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	jobsPerSec   float64
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|list-file>",
	Short: "Fact-check multiple documents in parallel",
	Long: `Batch fact-checks multiple documents concurrently:
- Scan a directory for supported documents, or read paths from a .list file
- Check documents in parallel with a configurable worker count
- Each document is still processed claim by claim, strictly in order
- Generate individual reports for each document

Example:
  verifact batch ./papers
  verifact batch docs.list --concurrency 8 --output-dir ./reports
  verifact batch ./papers --jobs-per-second 0.5`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./verifact-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&jobsPerSec, "jobs-per-second", 1, "pace at which new documents start (0 disables pacing)")

	// Shared pipeline flags
	batchCmd.Flags().StringVar(&llmModel, "model", "gpt-4o-mini", "oracle model name")
	batchCmd.Flags().StringVar(&searchDepth, "depth", "advanced", "search depth (basic, advanced)")
	batchCmd.Flags().IntVar(&maxResults, "max-results", 5, "search results per claim")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extracted-text cache")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().BoolVar(&validateSources, "validate-sources", false, "check accessibility of cited source URLs")
}

// pipelineChecker adapts the pipeline to the worker.Checker interface
type pipelineChecker struct {
	p *pipeline.Pipeline
}

func (c *pipelineChecker) Check(ctx context.Context, path string) (*model.Report, []string, error) {
	result, err := c.p.CheckFile(ctx, path, nil)
	if err != nil {
		return nil, nil, err
	}
	return result.Report, result.Warnings, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}

	paths, err := worker.CollectDocuments(input)
	if err != nil {
		return fmt.Errorf("collect documents: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no supported documents found in %s", input)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Checking %d documents with %d workers...\n\n", len(paths), concurrency)

	processor := worker.NewBatchProcessor(&pipelineChecker{p: p}, concurrency, jobsPerSec, concurrency)
	results := processor.ProcessPaths(ctx, paths)

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Err)
			continue
		}

		successCount++

		for _, warning := range result.Warnings {
			fmt.Fprintf(os.Stderr, "⚠ %s: %s\n", result.Path, warning)
		}

		slug := sanitizeFilename(result.Report.Subject)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Path, err)
			continue
		}

		verified := result.Report.Summary.Counts[model.StatusVerified]
		fmt.Fprintf(os.Stderr, "✓ %s (%d/%d verified)\n", result.Report.Subject, verified, result.Report.Summary.Total)
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d documents, %d succeeded, %d failed, reports in %s\n",
		len(results), successCount, failureCount, outputDir)

	return nil
}

// sanitizeFilename sanitizes a subject string for use as a filename
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	s = replacer.Replace(s)

	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "report"
	}

	return s
}
