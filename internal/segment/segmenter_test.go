package segment

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/beaconhilldata/earmarker/internal/model"
)

func newSegmenter() *Segmenter {
	return New(zerolog.Nop())
}

func TestSegment_TwoAmendmentsOnOnePage(t *testing.T) {
	page := strings.Join([]string{
		"Fiscal Year 2026 Amendment Book",
		"47 Massachusetts Cultural Council",
		"Line item 0640-0300",
		"provided that not less than $50,000 shall be expended for the Attleboro Youth Center",
		"Primary Sponsor: Representative Susan Hawkins",
		"129 Harbor Dredging",
		"$250,000 for dredging located in Gloucester",
	}, "\n")

	doc := &model.Document{Chamber: model.ChamberHouse, FiscalYear: 2026, Pages: []string{page}}
	res := newSegmenter().Segment(doc)

	if res.PagesFailed != 0 {
		t.Fatalf("pages failed: %d", res.PagesFailed)
	}
	if len(res.Amendments) != 2 {
		t.Fatalf("got %d amendments, want 2", len(res.Amendments))
	}

	first := res.Amendments[0]
	if first.AmendmentNumber != "47" {
		t.Errorf("number = %q, want 47", first.AmendmentNumber)
	}
	if first.LineItem != "0640-0300" {
		t.Errorf("line item = %q", first.LineItem)
	}
	if first.Amount == nil || *first.Amount != 50000 {
		t.Errorf("amount = %v, want 50000", first.Amount)
	}
	if first.PrimarySponsor != "Representative Susan Hawkins" {
		t.Errorf("sponsor = %q", first.PrimarySponsor)
	}
	if first.Chamber != model.ChamberHouse || first.FiscalYear != 2026 || first.PageNumber != 1 {
		t.Errorf("context fields wrong: %+v", first)
	}
	if !strings.HasPrefix(first.Description, "47 Massachusetts Cultural Council") {
		t.Errorf("description = %q", first.Description)
	}
	if !strings.Contains(first.RawText, "Primary Sponsor") {
		t.Errorf("raw text missing continuation lines: %q", first.RawText)
	}

	second := res.Amendments[1]
	if second.AmendmentNumber != "129" {
		t.Errorf("number = %q, want 129", second.AmendmentNumber)
	}
	if second.Amount == nil || *second.Amount != 250000 {
		t.Errorf("amount = %v, want 250000", second.Amount)
	}
	if second.Location != "Gloucester" {
		t.Errorf("location = %q, want Gloucester", second.Location)
	}
}

func TestSegment_FirstMatchWinsPerField(t *testing.T) {
	page := strings.Join([]string{
		"47 Park Improvements",
		"$100,000 shall be expended",
		"a further $999,999 is mentioned later",
	}, "\n")

	doc := &model.Document{Chamber: model.ChamberSenate, FiscalYear: 2026, Pages: []string{page}}
	res := newSegmenter().Segment(doc)

	if len(res.Amendments) != 1 {
		t.Fatalf("got %d amendments", len(res.Amendments))
	}
	if a := res.Amendments[0].Amount; a == nil || *a != 100000 {
		t.Errorf("amount = %v, want first capture 100000", a)
	}
}

func TestSegment_HeadingLineNotScannedForFields(t *testing.T) {
	// The heading's leading numeral must not be misread as an amount.
	page := "2500 Regional Transit\nservices for the elderly"

	doc := &model.Document{Chamber: model.ChamberHouse, FiscalYear: 2026, Pages: []string{page}}
	res := newSegmenter().Segment(doc)

	if len(res.Amendments) != 1 {
		t.Fatalf("got %d amendments", len(res.Amendments))
	}
	if res.Amendments[0].Amount != nil {
		t.Errorf("amount = %v, want nil", *res.Amendments[0].Amount)
	}
}

func TestSegment_PreambleIgnored(t *testing.T) {
	page := "Table of Contents\nIntroduction text\n47 First Real Amendment\nbody line"

	doc := &model.Document{Chamber: model.ChamberHouse, FiscalYear: 2026, Pages: []string{page}}
	res := newSegmenter().Segment(doc)

	if len(res.Amendments) != 1 || res.Amendments[0].AmendmentNumber != "47" {
		t.Fatalf("preamble lines produced spurious records: %+v", res.Amendments)
	}
}

func TestSegment_DescriptionTruncated(t *testing.T) {
	long := strings.Repeat("very long continuation text ", 4)
	page := strings.Join([]string{
		"47 Some Title",
		long, long, long, long,
		"this sixth line is excluded from the description",
	}, "\n")

	doc := &model.Document{Chamber: model.ChamberHouse, FiscalYear: 2026, Pages: []string{page}}
	res := newSegmenter().Segment(doc)

	if len(res.Amendments) != 1 {
		t.Fatalf("got %d amendments", len(res.Amendments))
	}
	desc := res.Amendments[0].Description
	if !strings.HasSuffix(desc, "...") {
		t.Errorf("description not truncated: %q", desc)
	}
	if len(desc) != descriptionMaxLen+3 {
		t.Errorf("description length = %d, want %d", len(desc), descriptionMaxLen+3)
	}
	if strings.Contains(desc, "sixth line") {
		t.Errorf("description should only use the first %d lines", descriptionLines)
	}
}

func TestSegment_AccumulatorResetsPerPage(t *testing.T) {
	pages := []string{
		"47 Trail Repairs\nfunding for trail repairs",
		"orphan continuation text with $900,000",
	}

	doc := &model.Document{Chamber: model.ChamberHouse, FiscalYear: 2026, Pages: pages}
	res := newSegmenter().Segment(doc)

	if len(res.Amendments) != 1 {
		t.Fatalf("got %d amendments", len(res.Amendments))
	}
	rec := res.Amendments[0]
	if rec.Amount != nil {
		t.Error("continuation text on a later page must not feed the record")
	}
	if strings.Contains(rec.RawText, "orphan") {
		t.Errorf("raw text crossed page boundary: %q", rec.RawText)
	}
}

func TestParseSponsorIndex(t *testing.T) {
	pages := []string{
		strings.Join([]string{
			"Amendment 47 - Representative Susan Hawkins",
			"Amendment 47: Senator John Barrett",
			"129 John A. Smith",
			"random narrative line",
		}, "\n"),
	}

	index := ParseSponsorIndex(pages)

	got := index[model.SponsorKey("47")]
	if len(got) != 2 || got[0] != "Representative Susan Hawkins" || got[1] != "Senator John Barrett" {
		t.Errorf("amendment 47 sponsors = %v", got)
	}
	if got := index[model.SponsorKey("129")]; len(got) != 1 || got[0] != "John A. Smith" {
		t.Errorf("amendment 129 sponsors = %v", got)
	}
	if len(index) != 2 {
		t.Errorf("index has %d keys, want 2", len(index))
	}
}

func TestParseSponsorIndex_NumericFormNameOrder(t *testing.T) {
	// The numeric form takes "First [M.] Last" only. A "Last, First" line
	// without the Amendment keyword is not indexed; the comma after the
	// surname stops the name pattern.
	index := ParseSponsorIndex([]string{"123 Smith, John"})
	if len(index) != 0 {
		t.Errorf("Last, First line should not be indexed, got %v", index)
	}

	index = ParseSponsorIndex([]string{"123 John Smith"})
	if got := index[model.SponsorKey("123")]; len(got) != 1 || got[0] != "John Smith" {
		t.Errorf("amendment 123 sponsors = %v", got)
	}
}
