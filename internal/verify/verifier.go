package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/verifact/verifact/internal/llm"
	"github.com/verifact/verifact/internal/model"
)

// maxSnippets is how many evidence snippets are embedded in the prompt
const maxSnippets = 3

// maxExcerptChars caps each snippet excerpt inside the prompt
const maxExcerptChars = 500

const verificationSystem = "You are a professional fact-checker. Analyze claims against evidence and provide accurate verification."

// Verifier judges one claim against retrieved web evidence
type Verifier struct {
	oracle llm.Oracle
}

// NewVerifier creates a new claim verifier
func NewVerifier(oracle llm.Oracle) *Verifier {
	return &Verifier{oracle: oracle}
}

// Verify judges the claim against the evidence and always returns a result.
// Oracle-call failures and unparsable verdicts become status ERROR with LOW
// confidence and empty sources; they never abort the surrounding batch.
// An empty evidence set is absent evidence, not a failure: the oracle is
// still asked to judge.
func (v *Verifier) Verify(ctx context.Context, claim model.Claim, evidence *model.SearchResult) model.VerificationResult {
	snippets := evidence.Results
	if len(snippets) > maxSnippets {
		snippets = snippets[:maxSnippets]
	}

	raw, err := v.oracle.CompleteJSON(ctx, llm.CompletionRequest{
		System:      verificationSystem,
		Prompt:      buildVerificationPrompt(claim, snippets),
		Temperature: 0.2,
	})
	if err != nil {
		return errorResult(claim, fmt.Sprintf("Error during verification: %v", err))
	}

	var verdict struct {
		Status      string `json:"status"`
		Explanation string `json:"explanation"`
		CorrectInfo string `json:"correct_info"`
		Confidence  string `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return errorResult(claim, fmt.Sprintf("Error parsing verification response: %v", err))
	}

	// Source URLs come only from the snippets actually passed to the oracle
	var sources []string
	for _, s := range snippets {
		if s.URL != "" {
			sources = append(sources, s.URL)
		}
	}
	if sources == nil {
		sources = []string{}
	}

	return model.VerificationResult{
		Claim:       claim.Text,
		Kind:        claim.Kind,
		Status:      model.NormalizeStatus(strings.ToUpper(strings.TrimSpace(verdict.Status))),
		Explanation: verdict.Explanation,
		CorrectInfo: verdict.CorrectInfo,
		Confidence:  model.NormalizeConfidence(strings.ToUpper(strings.TrimSpace(verdict.Confidence))),
		Sources:     sources,
	}
}

// buildVerificationPrompt embeds the claim and up to 3 formatted evidence
// blocks into the fixed verification instruction
func buildVerificationPrompt(claim model.Claim, snippets []model.EvidenceSnippet) string {
	var context strings.Builder
	for i, s := range snippets {
		excerpt := truncateExcerpt(s.Excerpt, maxExcerptChars)
		context.WriteString(fmt.Sprintf("\nSource %d:\nTitle: %s\nContent: %s\nURL: %s\n", i+1, orNA(s.Title), orNA(excerpt), orNA(s.URL)))
	}

	evidenceBlock := context.String()
	if evidenceBlock == "" {
		evidenceBlock = "No search results found."
	}

	return fmt.Sprintf(`You are a fact-checker. Verify the following claim against the provided web search results.

Claim to verify:
"%s"

Claim Type: %s

Web Search Results:
%s

Based on the search results, determine:
1. Is the claim VERIFIED (matches current data), INACCURATE (outdated or partially wrong), or FALSE (no evidence or contradicts evidence)?
2. What is the correct/current information if the claim is inaccurate or false?
3. Provide a brief explanation.

Return your response as JSON with this structure:
{
  "status": "VERIFIED|INACCURATE|FALSE",
  "explanation": "brief explanation of your verification",
  "correct_info": "correct information if status is INACCURATE or FALSE, otherwise null",
  "confidence": "HIGH|MEDIUM|LOW"
}

Return ONLY valid JSON, no additional text.`, claim.Text, claim.Kind, evidenceBlock)
}

func errorResult(claim model.Claim, explanation string) model.VerificationResult {
	return model.VerificationResult{
		Claim:       claim.Text,
		Kind:        claim.Kind,
		Status:      model.StatusError,
		Explanation: explanation,
		Confidence:  model.ConfidenceLow,
		Sources:     []string{},
	}
}

// truncateExcerpt caps s at max characters on a rune boundary, so prompts
// never carry a split multi-byte rune
func truncateExcerpt(s string, max int) string {
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
