package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/verifact/verifact/internal/llm"
	"github.com/verifact/verifact/internal/model"
)

// DefaultMaxChars is the analysis prefix length for long documents.
// Roughly 2000 tokens, which keeps the extraction call well under limits.
const DefaultMaxChars = 8000

const extractionSystem = "You are a fact-checking assistant. Extract verifiable claims from text and return them as JSON with a 'claims' array."

// ClaimExtractor asks the oracle to enumerate verifiable claims from document text
type ClaimExtractor struct {
	oracle   llm.Oracle
	maxChars int
}

// NewClaimExtractor creates a new claim extractor
func NewClaimExtractor(oracle llm.Oracle, maxChars int) *ClaimExtractor {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &ClaimExtractor{
		oracle:   oracle,
		maxChars: maxChars,
	}
}

// Extraction contains the extracted claims plus what the oracle actually analyzed
type Extraction struct {
	Claims        []model.Claim
	Truncated     bool // True when only the first maxChars characters were analyzed
	AnalyzedChars int
}

// Extract enumerates verifiable claims from the given text.
// Oracle failures and unparsable responses fail soft: the returned
// Extraction carries an empty claim list and the error describes the
// diagnostic for the caller to surface.
func (e *ClaimExtractor) Extract(ctx context.Context, text string) (*Extraction, error) {
	analyze, truncated := truncateRunes(text, e.maxChars)
	extraction := &Extraction{
		Truncated:     truncated,
		AnalyzedChars: utf8.RuneCountInString(analyze),
	}

	raw, err := e.oracle.CompleteJSON(ctx, llm.CompletionRequest{
		System:      extractionSystem,
		Prompt:      buildExtractionPrompt(analyze),
		Temperature: 0.3,
	})
	if err != nil {
		return extraction, fmt.Errorf("claim extraction: %w", err)
	}

	claims, err := parseClaims(raw)
	if err != nil {
		return extraction, fmt.Errorf("parse claims: %w", err)
	}

	extraction.Claims = claims
	return extraction, nil
}

// buildExtractionPrompt formats the fixed instruction block around the document text
func buildExtractionPrompt(text string) string {
	return fmt.Sprintf(`Analyze the following text and extract all verifiable claims. Focus on:
- Statistics and numerical data
- Dates and historical events
- Financial figures (prices, GDP, market values, etc.)
- Technical specifications
- Scientific facts
- Demographic data
- Any factual statements that can be verified

For each claim, extract:
1. The exact claim text
2. The type of claim (statistic, date, financial, technical, scientific, demographic, or other)
3. The key entities involved

Return the results as a JSON object with a "claims" array. Structure:
{
  "claims": [
    {
      "claim": "exact claim text from document",
      "type": "statistic|date|financial|technical|scientific|demographic|other",
      "entities": ["entity1", "entity2"]
    }
  ]
}

Text to analyze:
%s

Return ONLY valid JSON, no additional text.`, text)
}

// rawClaim matches the oracle's claim object shape
type rawClaim struct {
	Claim    string   `json:"claim"`
	Type     string   `json:"type"`
	Entities []string `json:"entities"`
}

// parseClaims normalizes the oracle response into a claim list.
// Both {"claims":[...]} and a bare [...] are accepted; any other shape
// yields an empty list.
func parseClaims(raw string) ([]model.Claim, error) {
	var wrapped struct {
		Claims []rawClaim `json:"claims"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err == nil && wrapped.Claims != nil {
		return toClaims(wrapped.Claims), nil
	}

	var bare []rawClaim
	if err := json.Unmarshal([]byte(raw), &bare); err == nil {
		return toClaims(bare), nil
	}

	// Valid JSON of some other shape counts as "no claims", not a failure
	if json.Valid([]byte(raw)) {
		return nil, nil
	}

	return nil, fmt.Errorf("response is not valid JSON")
}

// truncateRunes caps s at max characters, cutting on a rune boundary so
// multi-byte text never reaches the oracle as invalid UTF-8
func truncateRunes(s string, max int) (string, bool) {
	count := 0
	for i := range s {
		if count == max {
			return s[:i], true
		}
		count++
	}
	return s, false
}

func toClaims(raw []rawClaim) []model.Claim {
	var claims []model.Claim
	for _, rc := range raw {
		text := strings.TrimSpace(rc.Claim)
		if text == "" {
			continue
		}
		claims = append(claims, model.Claim{
			Text:     text,
			Kind:     model.NormalizeKind(rc.Type),
			Entities: rc.Entities,
		})
	}
	return claims
}
