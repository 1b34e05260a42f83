package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/meescheck/meescheck/internal/model"
)

// Analyzer analyzes one certificate file.
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path string) (*model.Report, error)
}

// AnalyzeJob is one certificate analysis job.
type AnalyzeJob struct {
	Path     string
	Analyzer Analyzer
}

// Execute runs the analysis.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	report, err := j.Analyzer.AnalyzeFile(ctx, j.Path)
	return &AnalyzeResult{Path: j.Path, Report: report, Error: err}
}

// AnalyzeResult is the outcome of one certificate analysis job.
type AnalyzeResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the job error.
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple certificate files concurrently.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessPaths analyzes the given certificate files concurrently.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*AnalyzeResult {
	if len(paths) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	// Propagate caller cancellation into the pool.
	stop := context.AfterFunc(ctx, pool.cancel)
	defer stop()

	// Submission runs alongside draining: the pool's channels are bounded,
	// so queueing a portfolio larger than the buffers before reading any
	// results would wedge both sides.
	go func() {
		for _, path := range paths {
			pool.Submit(&AnalyzeJob{Path: path, Analyzer: b.analyzer})
		}
		pool.Finish()
	}()

	results := pool.Wait()
	out := make([]*AnalyzeResult, len(results))
	for i, r := range results {
		out[i] = r.(*AnalyzeResult)
	}
	return out
}

// Process analyzes every certificate under path: a directory is scanned
// for certificate files, anything else is read as a list file with one
// path per line.
func (b *BatchProcessor) Process(ctx context.Context, path string) ([]*AnalyzeResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	var paths []string
	if info.IsDir() {
		paths, err = certificatesInDir(path)
	} else {
		paths, err = readPathsFromFile(path)
	}
	if err != nil {
		return nil, err
	}
	return b.ProcessPaths(ctx, paths), nil
}

// certificatesInDir lists certificate files directly inside dir.
func certificatesInDir(dir string) ([]string, error) {
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
		case ".html", ".htm", ".txt":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

// readPathsFromFile reads file paths from a list file (one per line,
// # comments and duplicates skipped).
func readPathsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open list file: %w", err)
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
		return nil, fmt.Errorf("scan list file: %w", err)
	}
	return paths, nil
}
