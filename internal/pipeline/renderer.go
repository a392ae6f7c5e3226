package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/beaconhilldata/earmarker/internal/model"
)

// Renderer writes run reports.
type Renderer struct{}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the full report as indented JSON, creating parent
// directories as needed.
func (r *Renderer) RenderJSON(report *model.RunReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderSummary prints a human-readable run summary.
func (r *Renderer) RenderSummary(w io.Writer, report *model.RunReport) {
	fmt.Fprintf(w, "\nFY%d %s amendment book\n", report.FiscalYear, report.Chamber)
	fmt.Fprintf(w, "  Amendments found:  %d\n", report.AmendmentsFound)
	fmt.Fprintf(w, "  Earmarks found:    %d\n", report.EarmarksFound)
	if report.PagesFailed > 0 {
		fmt.Fprintf(w, "  Pages failed:      %d\n", report.PagesFailed)
	}

	if report.Index != nil {
		s := report.Index.Stats
		fmt.Fprintf(w, "  Mapped to members: %d of %d", s.Mapped, s.Total)
		if s.LastNameFallback > 0 {
			fmt.Fprintf(w, " (%d via last-name fallback)", s.LastNameFallback)
		}
		fmt.Fprintln(w)

		if n := len(report.Index.Buckets[model.BucketUnmatched]); n > 0 {
			fmt.Fprintf(w, "  No sponsor found:  %d\n", n)
		}
		if n := len(report.Index.Buckets[model.BucketUnknown]); n > 0 {
			fmt.Fprintf(w, "  Unknown sponsors:  %d\n", n)
		}
	}

	if len(report.Summaries) > 0 {
		fmt.Fprintln(w, "\nTop members by earmark dollars:")
		for i, s := range report.Summaries {
			if i >= 10 {
				fmt.Fprintf(w, "  ... and %d more\n", len(report.Summaries)-10)
				break
			}
			name := s.Name
			if name == "" {
				name = s.MemberCode
			}
			fmt.Fprintf(w, "  %-28s %3d earmarks  $%.0f\n", name, s.EarmarkCount, s.TotalDollars)
		}
	}
}
