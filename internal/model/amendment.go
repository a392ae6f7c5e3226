package model

// Chamber identifies which legislative body a document belongs to
type Chamber string

const (
	ChamberHouse  Chamber = "House"
	ChamberSenate Chamber = "Senate"
)

// Document is the per-page plain text of one source document, plus the
// context the segmenter needs. Page text is produced by an upstream
// text-extraction collaborator; this core never touches PDF bytes.
type Document struct {
	Chamber    Chamber  `json:"chamber"`
	FiscalYear int      `json:"fiscal_year"`
	Pages      []string `json:"pages"`
}

// AmendmentRecord is one candidate budget line item produced by the
// segmenter. Fields are filled incrementally while scanning lines; the
// first match wins per field and is never overwritten. A record is
// immutable once flushed, apart from classifier/attributor annotations.
type AmendmentRecord struct {
	AmendmentNumber string  `json:"amendment_number"`
	Chamber         Chamber `json:"chamber"`
	FiscalYear      int     `json:"fiscal_year"`
	PageNumber      int     `json:"page_number"`

	Amount         *float64 `json:"amount,omitempty"`
	LineItem       string   `json:"line_item,omitempty"`
	PrimarySponsor string   `json:"primary_sponsor,omitempty"`
	Location       string   `json:"location,omitempty"`
	Organization   string   `json:"organization_or_recipient,omitempty"`

	Description string `json:"description"`
	RawText     string `json:"raw_text"`

	Classification *ClassificationResult `json:"classification,omitempty"`
}

// Text returns the text the classifier should analyze, preferring the
// full accumulated fragment over the truncated description.
func (a *AmendmentRecord) Text() string {
	if a.RawText != "" {
		return a.RawText
	}
	return a.Description
}

// ClassificationResult is the earmark/non-earmark decision for a record,
// created once and never mutated.
type ClassificationResult struct {
	IsEarmark  bool    `json:"is_earmark"`
	Confidence float64 `json:"confidence"` // clamped to [0.1, 0.95]

	GeographicSpecific   bool `json:"geographic_specific"`
	OrganizationSpecific bool `json:"organization_specific"`
	ProjectSpecific      bool `json:"project_specific"`
	RoutineIndicators    bool `json:"routine_indicators"`
	AmountInRange        bool `json:"amount_in_range"`

	// Reasoning records each contributing term with its numeric value so
	// a reviewer can audit the decision.
	Reasoning string `json:"reasoning"`
}

// SponsorIndex maps "amendment_<number>" keys to the sponsor names listed
// for that amendment in the sponsor-index document.
type SponsorIndex map[string][]string

// SponsorKey builds the index key for an amendment number.
func SponsorKey(amendmentNumber string) string {
	return "amendment_" + amendmentNumber
}
