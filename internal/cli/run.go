package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/beaconhilldata/earmarker/internal/logger"
	"github.com/beaconhilldata/earmarker/internal/model"
	"github.com/beaconhilldata/earmarker/internal/pipeline"
	"github.com/beaconhilldata/earmarker/internal/roster"
)

var (
	fiscalYear int
	chamber    string
	sponsorDir string
	rosterPath string
	outJSON    string
	runTimeout time.Duration
	noCache    bool
	llmEnabled bool
	llmModel   string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <book_dir>",
	Short: "Process one amendment book and generate an earmark report",
	Long: `Run processes a single amendment book:
- Load page text files from the book directory
- Segment pages into amendment records and extract fields
- Classify each record with the weighted-signal model
- Attribute earmarks to legislators from the roster
- Generate a JSON report and a console summary

Example:
  earmarker run data/fy2026/house --fiscal-year 2026 --chamber house --roster rosters/house.yaml
  earmarker run data/fy2026/senate --fiscal-year 2026 --chamber senate --roster rosters/senate.json \
    --sponsors data/fy2026/senate_sponsors --json out/fy2026_senate.json`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVar(&fiscalYear, "fiscal-year", 0, "fiscal year of the amendment book (required)")
	runCmd.Flags().StringVar(&chamber, "chamber", "", "chamber: house or senate (required)")
	runCmd.Flags().StringVar(&rosterPath, "roster", "", "legislator roster file, JSON or YAML (required)")
	runCmd.Flags().StringVar(&sponsorDir, "sponsors", "", "sponsor index page directory (optional)")
	runCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default from config)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 5*time.Minute, "overall run timeout")
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parsed-artifact cache")

	// LLM flags
	runCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable local-model assist for low-confidence classifications")
	runCmd.Flags().StringVar(&llmModel, "llm-model", "", "local model name (default from config)")

	_ = runCmd.MarkFlagRequired("fiscal-year")
	_ = runCmd.MarkFlagRequired("chamber")
	_ = runCmd.MarkFlagRequired("roster")
}

func runRun(cmd *cobra.Command, args []string) error {
	bookDir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	ch, err := parseChamber(chamber)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cfg)

	log := logger.New(cfg.Output.Verbose)

	members, err := roster.Load(rosterPath)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	doc, err := pipeline.LoadDocument(bookDir, fiscalYear, ch)
	if err != nil {
		return fmt.Errorf("load book: %w", err)
	}

	in := pipeline.Input{Book: *doc}
	if sponsorDir != "" {
		pages, err := pipeline.LoadPages(sponsorDir)
		if err != nil {
			return fmt.Errorf("load sponsor index: %w", err)
		}
		in.SponsorPages = pages
	}

	p, err := pipeline.New(cfg, members, log)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	report, err := p.Run(ctx, in)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	r := pipeline.NewRenderer()
	if err := r.RenderJSON(report, cfg.Output.JSONPath); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	r.RenderSummary(os.Stdout, report)
	fmt.Fprintf(os.Stderr, "Report written to %s\n", cfg.Output.JSONPath)

	return nil
}

// applyRunFlags overlays run command flags onto the effective config.
func applyRunFlags(cfg *model.Config) {
	cfg.Output.Verbose = cfg.Output.Verbose || verbose
	if noCache {
		cfg.Cache.Enabled = false
	}
	if outJSON != "" {
		cfg.Output.JSONPath = outJSON
	}
	if llmEnabled {
		cfg.LLM.Enabled = true
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
		cfg.LLM.BaseURL = baseURL
	}
}

func parseChamber(s string) (model.Chamber, error) {
	switch strings.ToLower(s) {
	case "house":
		return model.ChamberHouse, nil
	case "senate":
		return model.ChamberSenate, nil
	default:
		return "", fmt.Errorf("unknown chamber %q (want house or senate)", s)
	}
}
