// Package segment turns per-page document text into amendment records.
// The walk is a line accumulator: a line that looks like an amendment
// heading starts a new record, and every following line is appended to
// it and scanned for fields until the next heading. Fields are
// first-match-wins; a later line never overwrites an earlier capture.
package segment

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/beaconhilldata/earmarker/internal/extract"
	"github.com/beaconhilldata/earmarker/internal/model"
)

const (
	descriptionLines  = 5
	descriptionMaxLen = 200
)

// Segmenter walks amendment book pages.
type Segmenter struct {
	log zerolog.Logger
}

// New returns a Segmenter that reports page failures to log.
func New(log zerolog.Logger) *Segmenter {
	return &Segmenter{log: log}
}

// Result is the outcome of segmenting one document.
type Result struct {
	Amendments  []model.AmendmentRecord
	PagesFailed int
}

// Segment extracts amendment records from every page of doc. A failure
// on one page is logged and skips only that page; amendments never span
// a page boundary, so the accumulator resets between pages.
func (s *Segmenter) Segment(doc *model.Document) Result {
	var res Result
	for i, page := range doc.Pages {
		pageNum := i + 1
		records, err := s.segmentPage(doc, pageNum, page)
		if err != nil {
			res.PagesFailed++
			s.log.Warn().
				Int("page", pageNum).
				Int("fiscal_year", doc.FiscalYear).
				Str("chamber", string(doc.Chamber)).
				Err(err).
				Msg("page segmentation failed")
			continue
		}
		res.Amendments = append(res.Amendments, records...)
	}
	s.log.Info().
		Int("amendments", len(res.Amendments)).
		Int("pages", len(doc.Pages)).
		Int("pages_failed", res.PagesFailed).
		Str("chamber", string(doc.Chamber)).
		Msg("segmented document")
	return res
}

func (s *Segmenter) segmentPage(doc *model.Document, pageNum int, text string) (records []model.AmendmentRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = &pageError{page: pageNum, cause: r}
		}
	}()

	if text == "" {
		return nil, nil
	}

	var current *model.AmendmentRecord
	var textLines []string

	flush := func() {
		if current == nil {
			return
		}
		current.RawText = strings.Join(textLines, "\n")
		current.Description = buildDescription(textLines)
		records = append(records, *current)
		current = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if num, ok := extract.AmendmentNumber(line); ok {
			flush()
			current = &model.AmendmentRecord{
				AmendmentNumber: num,
				Chamber:         doc.Chamber,
				FiscalYear:      doc.FiscalYear,
				PageNumber:      pageNum,
			}
			textLines = []string{line}
			continue
		}

		if current == nil {
			continue
		}
		textLines = append(textLines, line)

		// The heading line is deliberately not scanned: its leading
		// numeral would be misread as a bare amount.
		if current.Amount == nil {
			if v, ok := extract.Amount(line); ok {
				current.Amount = &v
			}
		}
		if current.LineItem == "" {
			if v, ok := extract.LineItem(line); ok {
				current.LineItem = v
			}
		}
		if current.PrimarySponsor == "" {
			if v, ok := extract.PrimarySponsor(line); ok {
				current.PrimarySponsor = v
			}
		}
		if current.Location == "" {
			if v, ok := extract.Location(line); ok {
				current.Location = v
			}
		}
		if current.Organization == "" {
			if v, ok := extract.Organization(line); ok {
				current.Organization = v
			}
		}
	}

	flush()
	return records, nil
}

// buildDescription joins the first few accumulated lines and truncates
// the result so downstream output stays scannable.
func buildDescription(lines []string) string {
	n := len(lines)
	if n > descriptionLines {
		n = descriptionLines
	}
	desc := strings.Join(lines[:n], " ")
	if len(desc) > descriptionMaxLen {
		return desc[:descriptionMaxLen] + "..."
	}
	return desc
}

type pageError struct {
	page  int
	cause any
}

func (e *pageError) Error() string {
	return fmt.Sprintf("page %d: panic: %v", e.page, e.cause)
}
