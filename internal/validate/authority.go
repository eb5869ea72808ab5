package validate

import (
	"net/url"
	"strings"

	"github.com/verifact/verifact/internal/model"
)

// secondaryDomains lists well-known reference and news publishers.
// Sub-domains match too (en.wikipedia.org matches wikipedia.org).
var secondaryDomains = []string{
	"wikipedia.org",
	"britannica.com",
	"reuters.com",
	"apnews.com",
	"bbc.co.uk",
	"bbc.com",
	"nytimes.com",
	"economist.com",
	"nature.com",
	"sciencedirect.com",
	"worldbank.org",
	"imf.org",
	"oecd.org",
	"statista.com",
}

// ClassifyAuthority classifies a source URL into an authority tier.
// Government and academic hosts rank primary, known publishers secondary,
// everything else tertiary.
func ClassifyAuthority(rawURL string) model.AuthorityTier {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return model.TierTertiary
	}

	host := parsed.Hostname()
	if host == "" {
		return model.TierTertiary
	}

	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") ||
		strings.HasSuffix(host, ".ac.uk") || strings.Contains(host, ".gov.") {
		return model.TierPrimary
	}

	for _, domain := range secondaryDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return model.TierSecondary
		}
	}

	return model.TierTertiary
}
