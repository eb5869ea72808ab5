package verify

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/verifact/verifact/internal/llm"
	"github.com/verifact/verifact/internal/model"
)

type fakeOracle struct {
	response string
	err      error
	lastReq  llm.CompletionRequest
}

func (f *fakeOracle) Name() string { return "fake" }

func (f *fakeOracle) CompleteJSON(ctx context.Context, req llm.CompletionRequest) (string, error) {
	f.lastReq = req
	return f.response, f.err
}

func (f *fakeOracle) IsAvailable(ctx context.Context) bool { return true }

func testClaim() model.Claim {
	return model.Claim{
		Text: "The Eiffel Tower is 330 meters tall.",
		Kind: model.ClaimKindStatistic,
	}
}

func evidenceWith(urls ...string) *model.SearchResult {
	var snippets []model.EvidenceSnippet
	for i, u := range urls {
		snippets = append(snippets, model.EvidenceSnippet{
			Title:   fmt.Sprintf("Source %d", i+1),
			Excerpt: "The tower stands 330 meters including antennas.",
			URL:     u,
		})
	}
	return &model.SearchResult{Results: snippets, Query: "q"}
}

func TestVerifier_Verdict(t *testing.T) {
	oracle := &fakeOracle{
		response: `{"status":"INACCURATE","explanation":"Height changed after antenna extension.","correct_info":"330 meters since 2022","confidence":"HIGH"}`,
	}
	verifier := NewVerifier(oracle)

	result := verifier.Verify(context.Background(), testClaim(), evidenceWith("https://example.com/a"))

	if result.Status != model.StatusInaccurate {
		t.Errorf("Expected INACCURATE, got %s", result.Status)
	}
	if result.Confidence != model.ConfidenceHigh {
		t.Errorf("Expected HIGH confidence, got %s", result.Confidence)
	}
	if result.CorrectInfo != "330 meters since 2022" {
		t.Errorf("Unexpected correct_info: %q", result.CorrectInfo)
	}
	if result.Claim != testClaim().Text {
		t.Errorf("Result should carry the claim text, got %q", result.Claim)
	}
	if result.Kind != model.ClaimKindStatistic {
		t.Errorf("Result should carry the claim kind, got %s", result.Kind)
	}
	if oracle.lastReq.Temperature != 0.2 {
		t.Errorf("Expected temperature 0.2, got %v", oracle.lastReq.Temperature)
	}
}

func TestVerifier_SourcesFromSuppliedSnippetsOnly(t *testing.T) {
	oracle := &fakeOracle{
		response: `{"status":"VERIFIED","explanation":"ok","confidence":"HIGH"}`,
	}
	verifier := NewVerifier(oracle)

	evidence := evidenceWith(
		"https://example.com/1",
		"https://example.com/2",
		"https://example.com/3",
		"https://example.com/4",
		"https://example.com/5",
	)
	result := verifier.Verify(context.Background(), testClaim(), evidence)

	if len(result.Sources) != 3 {
		t.Fatalf("Expected sources capped at 3, got %d", len(result.Sources))
	}
	for i, want := range []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"} {
		if result.Sources[i] != want {
			t.Errorf("Source %d: expected %s, got %s", i, want, result.Sources[i])
		}
	}
	// Snippet 4 and 5 were never shown to the oracle
	if strings.Contains(oracle.lastReq.Prompt, "example.com/4") {
		t.Error("Prompt should only embed the first 3 snippets")
	}
}

func TestVerifier_StatusAndConfidenceNormalization(t *testing.T) {
	oracle := &fakeOracle{
		response: `{"status":"verified","explanation":"ok"}`,
	}
	verifier := NewVerifier(oracle)

	result := verifier.Verify(context.Background(), testClaim(), evidenceWith("https://example.com/a"))

	if result.Status != model.StatusVerified {
		t.Errorf("Expected lowercase status normalized to VERIFIED, got %s", result.Status)
	}
	if result.Confidence != model.ConfidenceMedium {
		t.Errorf("Expected missing confidence to default to MEDIUM, got %s", result.Confidence)
	}
}

func TestVerifier_UnknownStatus(t *testing.T) {
	oracle := &fakeOracle{
		response: `{"status":"PLAUSIBLE","explanation":"cannot tell","confidence":"LOW"}`,
	}
	verifier := NewVerifier(oracle)

	result := verifier.Verify(context.Background(), testClaim(), evidenceWith("https://example.com/a"))

	if result.Status != model.StatusUnknown {
		t.Errorf("Expected unrecognized status to map to UNKNOWN, got %s", result.Status)
	}
}

func TestVerifier_OracleFailure(t *testing.T) {
	oracle := &fakeOracle{err: fmt.Errorf("timeout")}
	verifier := NewVerifier(oracle)

	result := verifier.Verify(context.Background(), testClaim(), evidenceWith("https://example.com/a"))

	if result.Status != model.StatusError {
		t.Errorf("Expected ERROR status, got %s", result.Status)
	}
	if result.Confidence != model.ConfidenceLow {
		t.Errorf("Expected LOW confidence, got %s", result.Confidence)
	}
	if result.Sources == nil || len(result.Sources) != 0 {
		t.Errorf("Expected empty sources slice, got %v", result.Sources)
	}
	if !strings.Contains(result.Explanation, "timeout") {
		t.Errorf("Explanation should name the failure, got %q", result.Explanation)
	}
}

func TestVerifier_MalformedVerdict(t *testing.T) {
	oracle := &fakeOracle{response: `not json at all`}
	verifier := NewVerifier(oracle)

	result := verifier.Verify(context.Background(), testClaim(), evidenceWith("https://example.com/a"))

	if result.Status != model.StatusError {
		t.Errorf("Expected ERROR status for malformed verdict, got %s", result.Status)
	}
	if len(result.Sources) != 0 {
		t.Errorf("Expected empty sources, got %v", result.Sources)
	}
}

func TestVerifier_NoEvidenceIsNotAnError(t *testing.T) {
	oracle := &fakeOracle{
		response: `{"status":"FALSE","explanation":"no supporting evidence found","confidence":"LOW"}`,
	}
	verifier := NewVerifier(oracle)

	result := verifier.Verify(context.Background(), testClaim(), &model.SearchResult{Results: []model.EvidenceSnippet{}, Query: "q"})

	if !strings.Contains(oracle.lastReq.Prompt, "No search results found.") {
		t.Error("Prompt should state that no search results were found")
	}
	if result.Status != model.StatusFalse {
		t.Errorf("Empty evidence should still produce the oracle's verdict, got %s", result.Status)
	}
	if len(result.Sources) != 0 {
		t.Errorf("Expected no sources without evidence, got %v", result.Sources)
	}
}

func TestVerifier_PromptEmbedsEvidence(t *testing.T) {
	oracle := &fakeOracle{
		response: `{"status":"VERIFIED","explanation":"ok","confidence":"HIGH"}`,
	}
	verifier := NewVerifier(oracle)

	evidence := &model.SearchResult{
		Results: []model.EvidenceSnippet{
			{Title: "Tower facts", Excerpt: strings.Repeat("e", 700), URL: "https://example.com/tower"},
		},
		Query: "q",
	}
	verifier.Verify(context.Background(), testClaim(), evidence)

	prompt := oracle.lastReq.Prompt
	if !strings.Contains(prompt, "Tower facts") || !strings.Contains(prompt, "https://example.com/tower") {
		t.Error("Prompt should embed snippet title and URL")
	}
	if !strings.Contains(prompt, testClaim().Text) {
		t.Error("Prompt should embed the claim text")
	}
	if strings.Contains(prompt, strings.Repeat("e", 501)) {
		t.Error("Excerpts inside the prompt should be capped at 500 chars")
	}
}

func TestVerifier_PromptExcerptKeepsRunesIntact(t *testing.T) {
	oracle := &fakeOracle{
		response: `{"status":"VERIFIED","explanation":"ok","confidence":"HIGH"}`,
	}
	verifier := NewVerifier(oracle)

	// The cut lands inside the run of multi-byte characters
	evidence := &model.SearchResult{
		Results: []model.EvidenceSnippet{
			{Title: "t", Excerpt: strings.Repeat("x", 499) + strings.Repeat("日", 5), URL: "https://example.com/jp"},
		},
		Query: "q",
	}
	verifier.Verify(context.Background(), testClaim(), evidence)

	prompt := oracle.lastReq.Prompt
	if !utf8.ValidString(prompt) {
		t.Error("Prompt must remain valid UTF-8 after excerpt truncation")
	}
	if got := strings.Count(prompt, "日"); got != 1 {
		t.Errorf("Expected exactly 1 multi-byte character kept, got %d", got)
	}
}
