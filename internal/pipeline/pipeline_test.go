package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/beaconhilldata/earmarker/internal/model"
)

func testConfig(cacheDir string) *model.Config {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = cacheDir != ""
	cfg.Cache.Backend = "disk"
	cfg.Cache.Dir = cacheDir
	return cfg
}

func testRoster() []model.Legislator {
	return []model.Legislator{
		{MemberCode: "SH1", Name: "Susan Hawkins", Chamber: model.ChamberHouse, District: "2nd Bristol"},
		{MemberCode: "JB1", Name: "John Barrett", Chamber: model.ChamberHouse, District: "1st Berkshire"},
	}
}

func bookPage() string {
	return strings.Join([]string{
		"47 Attleboro Youth Center",
		"Line item 7004-0099",
		"provided further, that not less than $50,000 shall be expended for the Attleboro Youth Center renovation project",
		"Primary Sponsor: Representative Susan Hawkins",
		"88 Department Administration",
		"for the operating expenses and personnel salaries of the department, administered by the commissioner, statewide",
	}, "\n")
}

func testInput() Input {
	return Input{
		Book: model.Document{
			Chamber:    model.ChamberHouse,
			FiscalYear: 2026,
			Pages:      []string{bookPage()},
		},
		SponsorPages: []string{"Amendment 47 - Representative Susan Hawkins"},
	}
}

func TestPipeline_Run(t *testing.T) {
	p, err := New(testConfig(""), testRoster(), zerolog.Nop())
	if err != nil {
		t.Fatalf("new pipeline: %v", err)
	}

	report, err := p.Run(context.Background(), testInput())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if report.RunID == "" {
		t.Error("run id missing")
	}
	if report.AmendmentsFound != 2 {
		t.Errorf("amendments found = %d, want 2", report.AmendmentsFound)
	}
	if report.EarmarksFound != 1 {
		t.Errorf("earmarks found = %d, want 1", report.EarmarksFound)
	}

	bucket := report.Index.Buckets["SH1"]
	if len(bucket) != 1 {
		t.Fatalf("SH1 bucket = %d entries, want 1", len(bucket))
	}
	if got := bucket[0].Record.AmendmentNumber; got != "47" {
		t.Errorf("attributed amendment = %q, want 47", got)
	}
	if bucket[0].Record.Classification == nil || !bucket[0].Record.Classification.IsEarmark {
		t.Error("attributed record missing classification")
	}

	if report.Index.Stats.Total != 1 || report.Index.Stats.Mapped != 1 {
		t.Errorf("stats = %+v", report.Index.Stats)
	}
	if len(report.Summaries) != 1 || report.Summaries[0].MemberCode != "SH1" {
		t.Errorf("summaries = %+v", report.Summaries)
	}
}

func TestPipeline_RejectsUnknownChamber(t *testing.T) {
	p, err := New(testConfig(""), testRoster(), zerolog.Nop())
	if err != nil {
		t.Fatalf("new pipeline: %v", err)
	}

	in := testInput()
	in.Book.Chamber = "Assembly"
	if _, err := p.Run(context.Background(), in); err == nil {
		t.Error("expected error for unknown chamber")
	}
}

func TestPipeline_CachedRunsAgree(t *testing.T) {
	dir := t.TempDir()
	p, err := New(testConfig(dir), testRoster(), zerolog.Nop())
	if err != nil {
		t.Fatalf("new pipeline: %v", err)
	}

	first, err := p.Run(context.Background(), testInput())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		t.Fatalf("expected cache entries in %s (err=%v)", dir, err)
	}

	// The second run reads the parsed artifacts from cache and must land
	// on the same counts.
	second, err := p.Run(context.Background(), testInput())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.AmendmentsFound != second.AmendmentsFound || first.EarmarksFound != second.EarmarksFound {
		t.Errorf("cached run disagrees: %+v vs %+v", first, second)
	}

	if err := p.ClearCache(2026, model.ChamberHouse); err != nil {
		t.Fatalf("clear cache: %v", err)
	}
}

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"page_002.txt": "second page",
		"page_001.txt": "first page",
		"notes.md":     "ignored",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	doc, err := LoadDocument(dir, 2026, model.ChamberSenate)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Pages) != 2 || doc.Pages[0] != "first page" || doc.Pages[1] != "second page" {
		t.Errorf("pages = %q", doc.Pages)
	}

	if _, err := LoadDocument(t.TempDir(), 2026, model.ChamberSenate); err == nil {
		t.Error("expected error for empty page dir")
	}
}

func TestRenderer(t *testing.T) {
	p, err := New(testConfig(""), testRoster(), zerolog.Nop())
	if err != nil {
		t.Fatalf("new pipeline: %v", err)
	}
	report, err := p.Run(context.Background(), testInput())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	r := NewRenderer()

	path := filepath.Join(t.TempDir(), "out", "earmarks.json")
	if err := r.RenderJSON(report, path); err != nil {
		t.Fatalf("render json: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var round model.RunReport
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if round.EarmarksFound != report.EarmarksFound {
		t.Errorf("round-tripped report differs: %+v", round)
	}

	var buf bytes.Buffer
	r.RenderSummary(&buf, report)
	out := buf.String()
	for _, want := range []string{"FY2026", "Earmarks found", "Susan Hawkins"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
