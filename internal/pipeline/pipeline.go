package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/verifact/verifact/internal/cache"
	"github.com/verifact/verifact/internal/document"
	"github.com/verifact/verifact/internal/extract"
	"github.com/verifact/verifact/internal/llm"
	"github.com/verifact/verifact/internal/model"
	"github.com/verifact/verifact/internal/score"
	"github.com/verifact/verifact/internal/search"
	"github.com/verifact/verifact/internal/validate"
	"github.com/verifact/verifact/internal/verify"
)

// Stage tracks the strictly sequential states of one document run
type Stage string

const (
	StageIdle            Stage = "idle"
	StageTextExtracted   Stage = "text_extracted"
	StageClaimsExtracted Stage = "claims_extracted"
	StageVerifying       Stage = "verifying"
	StageComplete        Stage = "complete"
)

// Progress is called after each completed claim. Redrawing on completion
// is the caller's concern; the pipeline only reports.
type Progress func(done, total int, result model.VerificationResult)

// Pipeline orchestrates the complete verification process for one document.
// The oracle and search clients are constructed once and reused; they hold
// no mutable cross-call state.
type Pipeline struct {
	reader    *document.Reader
	extractor *extract.ClaimExtractor
	searcher  *search.Client
	verifier  *verify.Verifier
	validator *validate.Validator // nil unless source validation enabled
	renderer  *Renderer
	config    *model.Config
}

// NewPipeline creates a new pipeline with the given configuration.
// A missing oracle or search API key is a startup error here, never a
// runtime error mid-batch.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	oracle, err := llm.NewOracle(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("oracle: %w", err)
	}

	searcher, err := search.NewClient(search.Config{
		APIKey:     cfg.Search.APIKey,
		BaseURL:    cfg.Search.BaseURL,
		Depth:      cfg.Search.Depth,
		MaxResults: cfg.Search.MaxResults,
		Timeout:    cfg.Search.Timeout,
		RPS:        cfg.Search.RPS,
		Burst:      cfg.Search.Burst,
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	var textCache cache.Cache
	if cfg.Cache.Enabled {
		textCache = document.NewDefaultCache(cfg.Cache.Dir, cfg.Cache.MemoryTTL, cfg.Cache.DiskTTL)
	}

	var validator *validate.Validator
	if cfg.Validate.Enabled {
		validator = validate.NewValidator(cfg.Validate.Timeout, cfg.Validate.Workers)
	}

	return &Pipeline{
		reader:    document.NewReader(textCache),
		extractor: extract.NewClaimExtractor(oracle, cfg.Extract.MaxChars),
		searcher:  searcher,
		verifier:  verify.NewVerifier(oracle),
		validator: validator,
		renderer:  NewRenderer(cfg.Output.IncludeFooter),
		config:    cfg,
	}, nil
}

// CheckResult contains the complete result for one document
type CheckResult struct {
	Report   *model.Report
	Stage    Stage
	Warnings []string
}

// CheckFile runs the full pipeline on one document: extract text, extract
// claims, then search and verify each claim strictly in order. Every claim
// yields exactly one result; per-claim failures are isolated as ERROR
// results and never abort the batch.
func (p *Pipeline) CheckFile(ctx context.Context, path string, onProgress Progress) (*CheckResult, error) {
	result := &CheckResult{Stage: StageIdle}

	// 1. Extract document text
	ex, err := p.reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("extract document text: %w", err)
	}
	if strings.TrimSpace(ex.Text) == "" {
		return nil, fmt.Errorf("no readable text in document: %s", path)
	}
	result.Stage = StageTextExtracted

	report := &model.Report{
		Subject:   document.Subject(path),
		CheckedAt: time.Now().UTC(),
		Document: model.DocumentMeta{
			Path:  path,
			Chars: len(ex.Text),
			Pages: ex.Pages,
		},
	}
	result.Report = report

	// 2. Extract claims (soft failure: empty list plus a warning)
	extraction, err := p.extractor.Extract(ctx, ex.Text)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	}
	report.Document.Truncated = extraction.Truncated
	if extraction.Truncated {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("document is large; analyzed only the first %d characters", extraction.AnalyzedChars))
	}

	report.Claims = extraction.Claims
	result.Stage = StageClaimsExtracted

	if len(extraction.Claims) == 0 {
		result.Warnings = append(result.Warnings, "no verifiable claims found in the document")
		report.Results = []model.VerificationResult{}
		report.Summary = score.Summarize(nil)
		return result, nil
	}

	// 3. Verify each claim in original order, one at a time. Identical
	// claim texts are searched and judged again each time.
	result.Stage = StageVerifying
	total := len(extraction.Claims)
	results := make([]model.VerificationResult, 0, total)

	for i, claim := range extraction.Claims {
		evidence := p.searcher.Search(ctx, claim.Text)
		verdict := p.verifier.Verify(ctx, claim, evidence)
		results = append(results, verdict)

		if onProgress != nil {
			onProgress(i+1, total, verdict)
		}
	}

	report.Results = results
	report.Summary = score.Summarize(results)

	// 4. Optional source-link validation (never alters verdicts)
	if p.validator != nil {
		report.Validation = p.validator.Validate(ctx, collectSources(results))
	}

	result.Stage = StageComplete
	return result, nil
}

// RenderReport renders the report to the specified outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}

// collectSources gathers unique source URLs across all results, in order
func collectSources(results []model.VerificationResult) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, r := range results {
		for _, u := range r.Sources {
			if u != "" && !seen[u] {
				seen[u] = true
				urls = append(urls, u)
			}
		}
	}
	return urls
}
