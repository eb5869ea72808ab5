package model

import "time"

// EvidenceSnippet is a single web-search result surfaced to support or refute a claim
type EvidenceSnippet struct {
	Title   string `json:"title"`   // Result title
	Excerpt string `json:"content"` // Content excerpt, capped at 500 characters
	URL     string `json:"url"`     // Full URL
}

// SearchResult bundles the evidence snippets returned for one claim
// with the query that produced them. A failed search yields an empty
// Results slice, never an error.
type SearchResult struct {
	Results []EvidenceSnippet `json:"results"`
	Query   string            `json:"query"`
}

// AuthorityTier represents the classification of source authority
type AuthorityTier int

const (
	TierUnknown   AuthorityTier = 0 // Not yet classified
	TierPrimary   AuthorityTier = 1 // Government, academic, official documents
	TierSecondary AuthorityTier = 2 // Encyclopedias, major publishers, reputable media
	TierTertiary  AuthorityTier = 3 // Blogs, personal websites, aggregators
)

func (t AuthorityTier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// ValidationResult contains the result of checking a cited source URL
type ValidationResult struct {
	URL          string        `json:"url"`
	IsAccessible bool          `json:"is_accessible"`
	StatusCode   int           `json:"status_code,omitempty"`
	LastModified *time.Time    `json:"last_modified,omitempty"`
	IsDead       bool          `json:"is_dead"`                // 404, 410, or network failure
	RedirectURL  string        `json:"redirect_url,omitempty"` // If redirected
	Authority    AuthorityTier `json:"authority"`
	Error        string        `json:"error,omitempty"`
}
