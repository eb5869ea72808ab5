package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/verifact/verifact/internal/model"
)

// Checker defines the interface for checking one document.
// Within a document, processing stays strictly sequential; only whole
// documents run in parallel.
type Checker interface {
	Check(ctx context.Context, path string) (*model.Report, []string, error)
}

// CheckJob represents one document to fact-check
type CheckJob struct {
	Path    string
	Checker Checker
	Limiter *Limiter
}

// Execute runs the check job
func (j *CheckJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx); err != nil {
			return &DocumentResult{Path: j.Path, Err: err}
		}
	}

	report, warnings, err := j.Checker.Check(ctx, j.Path)
	return &DocumentResult{
		Path:     j.Path,
		Report:   report,
		Warnings: warnings,
		Err:      err,
	}
}

// DocumentResult represents the result of checking one document
type DocumentResult struct {
	Path     string
	Report   *model.Report
	Warnings []string
	Err      error
}

// GetError returns the error from the document result
func (r *DocumentResult) GetError() error {
	return r.Err
}

// BatchProcessor fact-checks multiple documents concurrently
type BatchProcessor struct {
	checker     Checker
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(checker Checker, concurrency int, jobsPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
		limiter:     NewLimiter(jobsPerSecond, burst),
	}
}

// ProcessPaths checks multiple documents concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*DocumentResult {
	if len(paths) == 0 {
		return []*DocumentResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&CheckJob{
			Path:    path,
			Checker: b.checker,
			Limiter: b.limiter,
		})
	}

	results := pool.Wait()

	docResults := make([]*DocumentResult, len(results))
	for i, result := range results {
		docResults[i] = result.(*DocumentResult)
	}

	return docResults
}

// CollectDocuments resolves the batch input into document paths:
// a directory is scanned for supported files, a .txt list file is read
// line by line, and anything else is treated as a single document.
func CollectDocuments(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if info.IsDir() {
		return scanDirectory(input)
	}

	if strings.EqualFold(filepath.Ext(input), ".list") {
		return readPathsFromFile(input)
	}

	return []string{input}, nil
}

func scanDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".pdf", ".txt", ".md", ".text":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// readPathsFromFile reads document paths from a list file (one per line)
func readPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
