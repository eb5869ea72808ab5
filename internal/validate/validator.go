package validate

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/verifact/verifact/internal/model"
	"github.com/verifact/verifact/internal/util"
)

const userAgent = "verifact/0.1 (+https://github.com/verifact/verifact)"

// Validator checks cited source URLs concurrently. Results attach to the
// report as diagnostics; they never alter verdicts.
type Validator struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	maxWorkers int
}

// NewValidator creates a new source-link validator
func NewValidator(timeout time.Duration, maxWorkers int) *Validator {
	if maxWorkers <= 0 {
		maxWorkers = 10
	}

	return &Validator{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:     util.NewRobotsChecker(userAgent, timeout),
		maxWorkers: maxWorkers,
	}
}

// Validate checks all source URLs concurrently and returns results in the
// same order as the input
func (v *Validator) Validate(ctx context.Context, urls []string) []model.ValidationResult {
	if len(urls) == 0 {
		return []model.ValidationResult{}
	}

	results := make([]model.ValidationResult, len(urls))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, v.maxWorkers)

	for i, u := range urls {
		wg.Add(1)
		go func(idx int, rawURL string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = model.ValidationResult{
					URL:       rawURL,
					Error:     "context cancelled",
					Authority: ClassifyAuthority(rawURL),
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = v.validateSingle(ctx, rawURL)
		}(i, u)
	}

	wg.Wait()
	return results
}

func (v *Validator) validateSingle(ctx context.Context, rawURL string) model.ValidationResult {
	result := model.ValidationResult{
		URL:       rawURL,
		Authority: ClassifyAuthority(rawURL),
	}

	if !v.robots.IsAllowed(ctx, rawURL) {
		result.Error = "disallowed by robots.txt"
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		result.Error = fmt.Sprintf("create request: %v", err)
		result.IsDead = true
		return result
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		result.IsDead = true
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.IsAccessible = true
	} else if resp.StatusCode == 404 || resp.StatusCode == 410 {
		result.IsDead = true
	}

	if resp.Request.URL.String() != rawURL {
		result.RedirectURL = resp.Request.URL.String()
	}

	if lastModified := resp.Header.Get("Last-Modified"); lastModified != "" {
		if t, err := time.Parse(time.RFC1123, lastModified); err == nil {
			result.LastModified = &t
		}
	}

	return result
}
