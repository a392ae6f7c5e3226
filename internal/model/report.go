package model

import "time"

// RunReport is the complete output of one (fiscal year, chamber) run:
// the attribution index plus enough counts for the caller to judge how
// complete the extraction was.
type RunReport struct {
	RunID      string    `json:"run_id"`
	FiscalYear int       `json:"fiscal_year"`
	Chamber    Chamber   `json:"chamber"`
	StartedAt  time.Time `json:"started_at"`

	AmendmentsFound int `json:"amendments_found"`
	EarmarksFound   int `json:"earmarks_found"`
	PagesFailed     int `json:"pages_failed"`

	Index     *AttributionIndex `json:"index"`
	Summaries []MemberSummary   `json:"member_summaries"`
}
