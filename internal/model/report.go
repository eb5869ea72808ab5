package model

import "time"

// Status is the verifier's judgment on a claim
type Status string

const (
	StatusVerified   Status = "VERIFIED"   // Current data matches the claim
	StatusInaccurate Status = "INACCURATE" // Outdated or partially wrong, correction available
	StatusFalse      Status = "FALSE"      // Contradicted or unsupported by evidence
	StatusError      Status = "ERROR"      // Search or verification call failed for this claim
	StatusUnknown    Status = "UNKNOWN"    // Oracle omitted or returned an unrecognized status
)

// NormalizeStatus maps an oracle-supplied status string onto the closed set
func NormalizeStatus(s string) Status {
	switch Status(s) {
	case StatusVerified, StatusInaccurate, StatusFalse, StatusError:
		return Status(s)
	default:
		return StatusUnknown
	}
}

// Confidence is the verifier's self-reported confidence tier
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// NormalizeConfidence maps an oracle-supplied confidence string onto the
// closed set, defaulting to MEDIUM the way the verdict parser expects
func NormalizeConfidence(s string) Confidence {
	switch Confidence(s) {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return Confidence(s)
	default:
		return ConfidenceMedium
	}
}

// VerificationResult is the verdict for a single claim.
// Every claim fed into the pipeline yields exactly one of these, in order.
type VerificationResult struct {
	Claim       string     `json:"claim"`
	Kind        ClaimKind  `json:"type"`
	Status      Status     `json:"status"`
	Explanation string     `json:"explanation"`
	CorrectInfo string     `json:"correct_info,omitempty"` // Populated when status is INACCURATE or FALSE
	Confidence  Confidence `json:"confidence"`
	Sources     []string   `json:"sources"` // Up to 3 URLs drawn from the evidence actually judged
}

// Summary aggregates verdicts across one document
type Summary struct {
	Total   int                `json:"total"`
	Counts  map[Status]int     `json:"counts"`
	Percent map[Status]float64 `json:"percent,omitempty"` // Omitted when Total is zero
}

// DocumentMeta describes the text handed to the claim extractor
type DocumentMeta struct {
	Path      string `json:"path"`
	Chars     int    `json:"chars"`          // Characters extracted from the document
	Truncated bool   `json:"truncated"`      // True when only the analysis prefix was sent to the oracle
	Pages     int    `json:"pages,omitempty"`
}

// Report is the complete verification report for one document
type Report struct {
	Subject   string       `json:"subject"`
	CheckedAt time.Time    `json:"checked_at"`
	Document  DocumentMeta `json:"document"`

	Claims  []Claim              `json:"claims"`
	Results []VerificationResult `json:"results"`
	Summary Summary              `json:"summary"`

	Validation []ValidationResult `json:"validation,omitempty"` // Optional source-link checks
}
