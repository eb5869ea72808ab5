package model

// Claim represents a verifiable factual statement extracted from a document
type Claim struct {
	Text     string    `json:"claim"`              // Exact claim text quoted from the document
	Kind     ClaimKind `json:"type"`               // Category of the claim
	Entities []string  `json:"entities,omitempty"` // Named entities involved, in order of mention
}

// ClaimKind categorizes the nature of the claim
type ClaimKind string

const (
	ClaimKindStatistic   ClaimKind = "statistic"
	ClaimKindDate        ClaimKind = "date"
	ClaimKindFinancial   ClaimKind = "financial"
	ClaimKindTechnical   ClaimKind = "technical"
	ClaimKindScientific  ClaimKind = "scientific"
	ClaimKindDemographic ClaimKind = "demographic"
	ClaimKindOther       ClaimKind = "other"
)

// NormalizeKind maps an arbitrary kind string onto the closed set,
// falling back to "other" for anything unrecognized
func NormalizeKind(kind string) ClaimKind {
	switch ClaimKind(kind) {
	case ClaimKindStatistic, ClaimKindDate, ClaimKindFinancial,
		ClaimKindTechnical, ClaimKindScientific, ClaimKindDemographic,
		ClaimKindOther:
		return ClaimKind(kind)
	default:
		return ClaimKindOther
	}
}
