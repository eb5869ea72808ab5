package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/verifact/verifact/internal/model"
)

// statusOrder fixes the display order of verdict statuses
var statusOrder = []model.Status{
	model.StatusVerified,
	model.StatusInaccurate,
	model.StatusFalse,
	model.StatusError,
	model.StatusUnknown,
}

// Renderer writes verification reports to files and the terminal
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable Markdown report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Fact-Check Report: %s\n\n", report.Subject)
	fmt.Fprintf(&b, "- **Document**: %s\n", report.Document.Path)
	fmt.Fprintf(&b, "- **Checked**: %s\n", report.CheckedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "- **Extracted**: %d characters", report.Document.Chars)
	if report.Document.Truncated {
		b.WriteString(" (truncated for analysis)")
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "| Status | Count | Share |\n|---|---|---|\n")
	for _, status := range statusOrder {
		count := report.Summary.Counts[status]
		if count == 0 {
			continue
		}
		fmt.Fprintf(&b, "| %s | %d | %.1f%% |\n", status, count, report.Summary.Percent[status])
	}
	fmt.Fprintf(&b, "\nTotal claims: %d\n\n", report.Summary.Total)

	fmt.Fprintf(&b, "## Claims\n\n")
	for i, result := range report.Results {
		fmt.Fprintf(&b, "### %d. %s %s\n\n", i+1, statusMark(result.Status), result.Status)
		fmt.Fprintf(&b, "**Claim:** %s\n\n", result.Claim)
		fmt.Fprintf(&b, "**Type:** %s · **Confidence:** %s\n\n", result.Kind, result.Confidence)
		if result.Explanation != "" {
			fmt.Fprintf(&b, "%s\n\n", result.Explanation)
		}
		if result.CorrectInfo != "" {
			fmt.Fprintf(&b, "> Correct information: %s\n\n", result.CorrectInfo)
		}
		if len(result.Sources) > 0 {
			b.WriteString("Sources:\n")
			for _, src := range result.Sources {
				fmt.Fprintf(&b, "- <%s>\n", src)
			}
			b.WriteString("\n")
		}
	}

	if len(report.Validation) > 0 {
		fmt.Fprintf(&b, "## Source Checks\n\n")
		fmt.Fprintf(&b, "| URL | Status | Authority |\n|---|---|---|\n")
		validation := append([]model.ValidationResult(nil), report.Validation...)
		sort.Slice(validation, func(i, j int) bool { return validation[i].URL < validation[j].URL })
		for _, v := range validation {
			state := "dead"
			if v.IsAccessible {
				state = fmt.Sprintf("ok (%d)", v.StatusCode)
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", v.URL, state, v.Authority)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by verifact. Verdicts reflect retrieved web evidence at check time, not ground truth.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderSummary prints the verdict summary to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	r.writeSummary(os.Stdout, report)
}

func (r *Renderer) writeSummary(w io.Writer, report *model.Report) {
	fmt.Fprintf(w, "\n%s: %d claims\n", report.Subject, report.Summary.Total)
	for _, status := range statusOrder {
		count := report.Summary.Counts[status]
		if count == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s %-10s %d (%.1f%%)\n", statusMark(status), status, count, report.Summary.Percent[status])
	}
}

func statusMark(status model.Status) string {
	switch status {
	case model.StatusVerified:
		return "✓"
	case model.StatusInaccurate:
		return "~"
	case model.StatusFalse:
		return "✗"
	default:
		return "?"
	}
}
