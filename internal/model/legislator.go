package model

// Legislator is one roster entry. The roster is an external, read-only
// input; member_code is the stable primary key.
type Legislator struct {
	MemberCode string  `json:"member_code" yaml:"member_code"`
	Name       string  `json:"name" yaml:"name"`
	Chamber    Chamber `json:"chamber" yaml:"chamber"`
	District   string  `json:"district" yaml:"district"`
}

// MatchMethod records which attribution tier accepted a sponsor name.
type MatchMethod string

const (
	MatchFullName     MatchMethod = "full_name"
	MatchLastNameOnly MatchMethod = "last_name_only"
	MatchNone         MatchMethod = "none"
)

// Sentinel bucket keys for earmarks that could not be attributed.
// BucketUnmatched holds records with no sponsor name at all;
// BucketUnknown holds records whose sponsor names matched no legislator.
const (
	BucketUnmatched = "UNMATCHED"
	BucketUnknown   = "UNKNOWN"
)

// Mapping status values attached to sentinel-bucket entries.
const (
	StatusNoSponsorFound = "no_sponsor_found"
	StatusNoMemberMatch  = "no_member_match"
)

// AttributionResult describes how (or whether) an earmark was matched to
// a legislator. MemberCode is empty for the sentinel buckets.
type AttributionResult struct {
	MemberCode  string      `json:"member_code,omitempty"`
	SponsorName string      `json:"sponsor_name,omitempty"`
	MatchedName string      `json:"matched_member,omitempty"`
	Confidence  float64     `json:"confidence"`
	Method      MatchMethod `json:"match_method"`

	MappingStatus     string   `json:"mapping_status,omitempty"`
	AttemptedSponsors []string `json:"attempted_sponsors,omitempty"`
}

// AttributedEarmark is one classified earmark together with its
// attribution metadata, as stored in an AttributionIndex bucket.
type AttributedEarmark struct {
	Record      AmendmentRecord   `json:"record"`
	Attribution AttributionResult `json:"attribution"`
}

// AttributionStats are the per-run mapping counters. mapped + unmapped
// always equals total.
type AttributionStats struct {
	Total            int `json:"total"`
	Mapped           int `json:"mapped"`
	Unmapped         int `json:"unmapped"`
	LastNameFallback int `json:"last_name_fallback"`
}

// AttributionIndex groups attributed earmarks by member code, plus the
// two sentinel buckets. It is built fresh each run and owned by exactly
// one run; it is not safe for concurrent mutation.
type AttributionIndex struct {
	Buckets map[string][]AttributedEarmark `json:"buckets"`
	Stats   AttributionStats               `json:"stats"`
}

// NewAttributionIndex returns an empty index.
func NewAttributionIndex() *AttributionIndex {
	return &AttributionIndex{Buckets: make(map[string][]AttributedEarmark)}
}

// Add appends an earmark to the given bucket.
func (ix *AttributionIndex) Add(bucket string, e AttributedEarmark) {
	ix.Buckets[bucket] = append(ix.Buckets[bucket], e)
}

// MemberSummary aggregates earmark statistics for one legislator.
type MemberSummary struct {
	MemberCode     string  `json:"member_code"`
	Name           string  `json:"name"`
	Chamber        Chamber `json:"chamber"`
	District       string  `json:"district"`
	EarmarkCount   int     `json:"earmark_count"`
	TotalDollars   float64 `json:"total_earmark_dollars"`
	AverageDollars float64 `json:"average_earmark_amount"`
	LargestEarmark float64 `json:"largest_earmark"`
}
