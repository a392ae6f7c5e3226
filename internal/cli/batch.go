package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/beaconhilldata/earmarker/internal/logger"
	"github.com/beaconhilldata/earmarker/internal/pipeline"
	"github.com/beaconhilldata/earmarker/internal/roster"
	"github.com/beaconhilldata/earmarker/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	// rosterPath and noCache are defined in run.go and shared here
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <targets_file>",
	Short: "Process multiple amendment books in parallel",
	Long: `Batch processes multiple amendment books concurrently:
- Read targets from a file, one per line:
    <fiscal_year> <chamber> <book_dir> [sponsor_dir]
- Process books in parallel with a configurable worker count
- Generate one JSON report per book in the output directory

The roster file may hold members of both chambers; attribution
considers only the members of each book's chamber.

Example:
  earmarker batch targets.txt --roster rosters/general_court.yaml
  earmarker batch targets.txt --roster rosters/general_court.yaml --concurrency 4 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./earmarker-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&rosterPath, "roster", "", "legislator roster file, JSON or YAML (required)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parsed-artifact cache")

	_ = batchCmd.MarkFlagRequired("roster")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose
	if noCache {
		cfg.Cache.Enabled = false
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Earmarker Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Targets file: %s\n", file)
	fmt.Fprintf(os.Stderr, "  Roster:       %s\n", rosterPath)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	log := logger.New(cfg.Output.Verbose)

	members, err := roster.Load(rosterPath)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.New(cfg, members, log)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	processor := worker.NewBatchProcessor(p, concurrency)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := pipeline.NewRenderer()
	successCount := 0
	failureCount := 0

	for _, result := range results {
		label := fmt.Sprintf("FY%d %s", result.Target.FiscalYear, result.Target.Chamber)
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", label, result.Error)
			continue
		}

		jsonPath := filepath.Join(outputDir, reportFilename(result))
		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", label, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s: %d earmarks from %d amendments → %s\n",
			label, result.Report.EarmarksFound, result.Report.AmendmentsFound, jsonPath)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d books\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d runs failed", failureCount, len(results))
	}
	return nil
}

func reportFilename(result *worker.RunResult) string {
	chamber := strings.ToLower(string(result.Target.Chamber))
	return fmt.Sprintf("fy%d_%s.json", result.Target.FiscalYear, chamber)
}
