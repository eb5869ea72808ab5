package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verifact/verifact/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		Subject:   "economy-briefing",
		CheckedAt: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
		Document: model.DocumentMeta{
			Path:      "/docs/economy-briefing.pdf",
			Chars:     9500,
			Truncated: true,
			Pages:     12,
		},
		Claims: []model.Claim{
			{Text: "The GDP was $5 trillion in 2020.", Kind: model.ClaimKindFinancial},
			{Text: "Inflation stayed below 2%.", Kind: model.ClaimKindStatistic},
		},
		Results: []model.VerificationResult{
			{
				Claim:       "The GDP was $5 trillion in 2020.",
				Kind:        model.ClaimKindFinancial,
				Status:      model.StatusVerified,
				Explanation: "Matches World Bank figures.",
				Confidence:  model.ConfidenceHigh,
				Sources:     []string{"https://data.worldbank.org/gdp"},
			},
			{
				Claim:       "Inflation stayed below 2%.",
				Kind:        model.ClaimKindStatistic,
				Status:      model.StatusInaccurate,
				Explanation: "Inflation exceeded 2% in late 2020.",
				CorrectInfo: "Inflation peaked at 2.4%.",
				Confidence:  model.ConfidenceMedium,
				Sources:     []string{"https://example.com/inflation"},
			},
		},
		Summary: model.Summary{
			Total: 2,
			Counts: map[model.Status]int{
				model.StatusVerified:   1,
				model.StatusInaccurate: 1,
			},
			Percent: map[model.Status]float64{
				model.StatusVerified:   50,
				model.StatusInaccurate: 50,
			},
		},
	}
}

func TestRenderer_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	renderer := NewRenderer(true)

	if err := renderer.RenderJSON(sampleReport(), path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Report is not valid JSON: %v", err)
	}
	if decoded.Subject != "economy-briefing" {
		t.Errorf("Unexpected subject: %q", decoded.Subject)
	}
	if len(decoded.Results) != 2 {
		t.Errorf("Expected 2 results, got %d", len(decoded.Results))
	}
}

func TestRenderer_Markdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	renderer := NewRenderer(true)

	if err := renderer.RenderMarkdown(sampleReport(), path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	md := string(data)

	for _, want := range []string{
		"# Fact-Check Report: economy-briefing",
		"(truncated for analysis)",
		"| VERIFIED | 1 | 50.0% |",
		"Total claims: 2",
		"> Correct information: Inflation peaked at 2.4%.",
		"- <https://data.worldbank.org/gdp>",
		"Generated by verifact",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q", want)
		}
	}
}

func TestRenderer_MarkdownWithoutFooter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	renderer := NewRenderer(false)

	if err := renderer.RenderMarkdown(sampleReport(), path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "Generated by verifact") {
		t.Error("Footer should be omitted when disabled")
	}
}

func TestRenderer_SummaryOutput(t *testing.T) {
	var buf strings.Builder
	renderer := NewRenderer(true)

	renderer.writeSummary(&buf, sampleReport())
	out := buf.String()

	if !strings.Contains(out, "economy-briefing: 2 claims") {
		t.Errorf("Expected summary header, got %q", out)
	}
	if !strings.Contains(out, "VERIFIED") || !strings.Contains(out, "50.0%") {
		t.Errorf("Expected per-status lines, got %q", out)
	}
	// Status marks aside, the summary sticks to ASCII separators
	for _, r := range out {
		if r > 127 && r != '✓' && r != '✗' {
			t.Errorf("Unexpected non-ASCII separator %q in summary output", r)
		}
	}
}

func TestRenderer_MarkdownSourceChecks(t *testing.T) {
	report := sampleReport()
	report.Validation = []model.ValidationResult{
		{URL: "https://data.worldbank.org/gdp", IsAccessible: true, StatusCode: 200, Authority: model.TierSecondary},
		{URL: "https://example.com/inflation", IsDead: true, StatusCode: 404, Authority: model.TierTertiary},
	}

	path := filepath.Join(t.TempDir(), "report.md")
	renderer := NewRenderer(true)

	if err := renderer.RenderMarkdown(report, path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	md := string(data)

	if !strings.Contains(md, "## Source Checks") {
		t.Error("Expected source-checks section")
	}
	if !strings.Contains(md, "ok (200)") || !strings.Contains(md, "dead") {
		t.Error("Expected accessibility states in the table")
	}
}
