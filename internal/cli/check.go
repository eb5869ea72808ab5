package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/verifact/verifact/internal/model"
	"github.com/verifact/verifact/internal/pipeline"
)

var (
	outJSON         string
	outMD           string
	timeout         time.Duration
	llmModel        string
	searchDepth     string
	maxResults      int
	noCache         bool
	noFooter        bool
	validateSources bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Fact-check a single document against live web evidence",
	Long: `Check extracts verifiable claims from a PDF or plain-text document
and verifies each claim against live web search results:
- Extract document text (cached by content digest)
- Enumerate claims with their type and named entities
- Search the web for evidence, one query per claim
- Judge each claim against up to 3 evidence snippets

Example:
  verifact check report.pdf
  verifact check report.pdf --json report.json --md report.md
  verifact check report.pdf --model gpt-4o-mini --validate-sources`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Pipeline flags
	checkCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "overall check timeout (increase for documents with many claims)")
	checkCmd.Flags().StringVar(&llmModel, "model", "gpt-4o-mini", "oracle model name")
	checkCmd.Flags().StringVar(&searchDepth, "depth", "advanced", "search depth (basic, advanced)")
	checkCmd.Flags().IntVar(&maxResults, "max-results", 5, "search results per claim")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extracted-text cache")
	checkCmd.Flags().BoolVar(&validateSources, "validate-sources", false, "check accessibility of cited source URLs")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", path)
		fmt.Fprintf(os.Stderr, "Model: %s, search depth: %s\n", cfg.LLM.Model, cfg.Search.Depth)
		fmt.Fprintln(os.Stderr)
	}

	progress := func(done, total int, result model.VerificationResult) {
		fmt.Fprintf(os.Stderr, "  [%d/%d] %s: %s\n", done, total, result.Status, truncateClaim(result.Claim, 70))
	}

	result, err := p.CheckFile(ctx, path, progress)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "⚠ %s\n", warning)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d characters\n", result.Report.Document.Chars)
		fmt.Fprintf(os.Stderr, "✓ Found %d verifiable claims\n", len(result.Report.Claims))
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(result.Report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig assembles the runtime configuration from defaults, flags,
// and the two required environment secrets
func buildConfig() (*model.Config, error) {
	openaiKey, tavilyKey, err := loadAPIKeys()
	if err != nil {
		return nil, err
	}

	cfg := model.DefaultConfig()
	cfg.LLM.APIKey = openaiKey
	cfg.LLM.Model = llmModel
	cfg.Search.APIKey = tavilyKey
	cfg.Search.Depth = searchDepth
	cfg.Search.MaxResults = maxResults
	cfg.Cache.Enabled = !noCache
	cfg.Validate.Enabled = validateSources
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	return cfg, nil
}

func truncateClaim(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
