package score

import (
	"math"

	"github.com/verifact/verifact/internal/model"
)

// Summarize aggregates verdicts into per-status counts and percentages.
// Percentages are rounded to one decimal place and only computed when at
// least one result exists, so the division is never by zero.
func Summarize(results []model.VerificationResult) model.Summary {
	summary := model.Summary{
		Total:  len(results),
		Counts: make(map[model.Status]int),
	}

	for _, r := range results {
		summary.Counts[r.Status]++
	}

	if summary.Total > 0 {
		summary.Percent = make(map[model.Status]float64)
		for status, count := range summary.Counts {
			pct := float64(count) / float64(summary.Total) * 100
			summary.Percent[status] = math.Round(pct*10) / 10
		}
	}

	return summary
}
