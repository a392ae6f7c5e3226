package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/beaconhilldata/earmarker/internal/model"
	"github.com/beaconhilldata/earmarker/internal/pipeline"
)

// Runner executes one (fiscal year, chamber) run.
type Runner interface {
	Run(ctx context.Context, in pipeline.Input) (*model.RunReport, error)
}

// Target names one amendment book to process.
type Target struct {
	FiscalYear int
	Chamber    model.Chamber
	BookDir    string
	SponsorDir string // optional sponsor index pages
}

// RunJob processes one target. Page loading happens inside the job so a
// bad book directory fails only its own run.
type RunJob struct {
	Target Target
	Runner Runner
}

// Execute executes the run job
func (j *RunJob) Execute(ctx context.Context) Result {
	doc, err := pipeline.LoadDocument(j.Target.BookDir, j.Target.FiscalYear, j.Target.Chamber)
	if err != nil {
		return &RunResult{Target: j.Target, Error: err}
	}

	in := pipeline.Input{Book: *doc}
	if j.Target.SponsorDir != "" {
		pages, err := pipeline.LoadPages(j.Target.SponsorDir)
		if err != nil {
			return &RunResult{Target: j.Target, Error: fmt.Errorf("sponsor index: %w", err)}
		}
		in.SponsorPages = pages
	}

	report, err := j.Runner.Run(ctx, in)
	if err != nil {
		return &RunResult{Target: j.Target, Error: err}
	}
	return &RunResult{Target: j.Target, Report: report}
}

// RunResult represents the result of one batch run
type RunResult struct {
	Target Target
	Report *model.RunReport
	Error  error
}

// GetError returns the error from the run result
func (r *RunResult) GetError() error {
	return r.Error
}

// BatchProcessor processes multiple amendment books concurrently
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
}

// Process runs all targets concurrently and collects the results.
func (b *BatchProcessor) Process(ctx context.Context, targets []Target) []*RunResult {
	if len(targets) == 0 {
		return []*RunResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, target := range targets {
		pool.Submit(&RunJob{Target: target, Runner: b.runner})
	}

	results := pool.Wait()

	runResults := make([]*RunResult, len(results))
	for i, result := range results {
		runResults[i] = result.(*RunResult)
	}

	return runResults
}

// ProcessFile reads targets from a file and processes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*RunResult, error) {
	targets, err := ReadTargetsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read targets: %w", err)
	}

	return b.Process(ctx, targets), nil
}

// ReadTargetsFromFile reads batch targets, one per line:
//
//	<fiscal_year> <chamber> <book_dir> [sponsor_dir]
//
// Blank lines and #-comments are skipped; duplicate (fiscal year,
// chamber) pairs keep the first occurrence.
func ReadTargetsFromFile(filePath string) ([]Target, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var targets []Target
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 || len(fields) > 4 {
			return nil, fmt.Errorf("line %d: want <fiscal_year> <chamber> <book_dir> [sponsor_dir], got %q", lineNum, line)
		}

		fy, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad fiscal year %q", lineNum, fields[0])
		}

		chamber, err := parseChamber(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		key := fmt.Sprintf("%d/%s", fy, chamber)
		if seen[key] {
			continue
		}
		seen[key] = true

		t := Target{FiscalYear: fy, Chamber: chamber, BookDir: fields[2]}
		if len(fields) == 4 {
			t.SponsorDir = fields[3]
		}
		targets = append(targets, t)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return targets, nil
}

func parseChamber(s string) (model.Chamber, error) {
	switch strings.ToLower(s) {
	case "house":
		return model.ChamberHouse, nil
	case "senate":
		return model.ChamberSenate, nil
	default:
		return "", fmt.Errorf("unknown chamber %q", s)
	}
}
