// Package attribute matches classified earmarks to legislators. Matching
// is two-tier: full normalized names against the roster first, then a
// last-name-only fallback with a lower threshold when the full name is
// too garbled. Earmarks that cannot be attributed land in one of two
// sentinel buckets instead of being dropped.
package attribute

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/beaconhilldata/earmarker/internal/model"
	"github.com/beaconhilldata/earmarker/internal/names"
)

// Suffix tokens ignored when picking the last-name token.
var suffixTokens = map[string]struct{}{
	"jr": {}, "sr": {}, "ii": {}, "iii": {}, "iv": {}, "v": {}, "esq": {},
}

// Attributor matches sponsor names against a fixed roster.
type Attributor struct {
	cfg     model.AttributeConfig
	norm    *names.Normalizer
	members []model.Legislator
	log     zerolog.Logger
}

// New builds an Attributor over the given roster. The roster slice is
// not copied; do not mutate it while the Attributor is in use.
func New(cfg model.AttributeConfig, norm *names.Normalizer, members []model.Legislator, log zerolog.Logger) *Attributor {
	return &Attributor{cfg: cfg, norm: norm, members: members, log: log}
}

// FindMember resolves a sponsor name to a roster member. Tier one scans
// the full normalized name, filtered to the earmark's chamber. Tier two
// compares last names only, without the chamber filter, because
// amendments can carry cross-chamber sponsors. Ties keep the first
// roster entry, so results are stable for a fixed roster order.
func (a *Attributor) FindMember(sponsor string, chamber model.Chamber) (*model.Legislator, float64, model.MatchMethod) {
	normalized := a.norm.NormalizeSponsor(sponsor)
	if normalized == "" {
		return nil, 0, model.MatchNone
	}

	var best *model.Legislator
	bestScore := 0.0
	for i := range a.members {
		m := &a.members[i]
		if chamber != "" && m.Chamber != chamber {
			continue
		}
		score := Similarity(normalized, a.norm.NormalizeSponsor(m.Name))
		if score > bestScore {
			bestScore = score
			best = m
		}
	}
	if best != nil && bestScore >= a.cfg.FullNameThreshold {
		return best, bestScore, model.MatchFullName
	}

	sponsorLast := lastNameToken(normalized)
	if sponsorLast == "" {
		return nil, 0, model.MatchNone
	}

	var lastBest *model.Legislator
	lastScore := 0.0
	for i := range a.members {
		m := &a.members[i]
		memberLast := lastNameToken(a.norm.NormalizeSponsor(m.Name))
		if memberLast == "" {
			continue
		}
		score := Similarity(sponsorLast, memberLast)
		if score > lastScore {
			lastScore = score
			lastBest = m
		}
	}
	if lastBest != nil && lastScore >= a.cfg.LastNameThreshold {
		return lastBest, lastScore, model.MatchLastNameOnly
	}

	return nil, 0, model.MatchNone
}

// lastNameToken picks the surname token of a normalized name, skipping a
// trailing generational suffix.
func lastNameToken(normalized string) string {
	parts := strings.Fields(normalized)
	if len(parts) == 0 {
		return ""
	}
	last := parts[len(parts)-1]
	if _, isSuffix := suffixTokens[last]; isSuffix && len(parts) > 1 {
		last = parts[len(parts)-2]
	}
	return last
}

// Attribute builds the attribution index for a run. Every earmark lands
// in exactly one bucket: a member code, UNMATCHED when no sponsor name
// could be found anywhere, or UNKNOWN when the sponsor names matched no
// roster member.
func (a *Attributor) Attribute(earmarks []model.AmendmentRecord, index model.SponsorIndex) *model.AttributionIndex {
	out := model.NewAttributionIndex()
	out.Stats.Total = len(earmarks)

	for _, rec := range earmarks {
		sponsors := a.sponsorsFor(&rec, index)
		if len(sponsors) == 0 {
			out.Stats.Unmapped++
			out.Add(model.BucketUnmatched, model.AttributedEarmark{
				Record: rec,
				Attribution: model.AttributionResult{
					Method:        model.MatchNone,
					MappingStatus: model.StatusNoSponsorFound,
				},
			})
			continue
		}

		matched := false
		for _, sponsor := range sponsors {
			member, confidence, method := a.FindMember(sponsor, rec.Chamber)
			if member == nil || member.MemberCode == "" {
				continue
			}
			out.Add(member.MemberCode, model.AttributedEarmark{
				Record: rec,
				Attribution: model.AttributionResult{
					MemberCode:  member.MemberCode,
					SponsorName: sponsor,
					MatchedName: member.Name,
					Confidence:  confidence,
					Method:      method,
				},
			})
			out.Stats.Mapped++
			if method == model.MatchLastNameOnly {
				out.Stats.LastNameFallback++
			}
			matched = true
			break
		}

		if !matched {
			out.Stats.Unmapped++
			out.Add(model.BucketUnknown, model.AttributedEarmark{
				Record: rec,
				Attribution: model.AttributionResult{
					Method:            model.MatchNone,
					MappingStatus:     model.StatusNoMemberMatch,
					AttemptedSponsors: sponsors,
				},
			})
		}
	}

	a.log.Info().
		Int("total", out.Stats.Total).
		Int("mapped", out.Stats.Mapped).
		Int("unmapped", out.Stats.Unmapped).
		Int("last_name_fallback", out.Stats.LastNameFallback).
		Msg("attributed earmarks")

	return out
}

// sponsorsFor returns the sponsor names to try for a record: the sponsor
// index entry when present, otherwise the record's own primary sponsor.
func (a *Attributor) sponsorsFor(rec *model.AmendmentRecord, index model.SponsorIndex) []string {
	if rec.AmendmentNumber == "" {
		return nil
	}
	if sponsors := index[model.SponsorKey(rec.AmendmentNumber)]; len(sponsors) > 0 {
		return sponsors
	}
	if rec.PrimarySponsor != "" {
		return []string{rec.PrimarySponsor}
	}
	return nil
}

// Summarize aggregates per-member earmark statistics from an index,
// sorted by total dollars descending. The sentinel buckets are skipped.
func Summarize(ix *model.AttributionIndex, members []model.Legislator) []model.MemberSummary {
	lookup := make(map[string]model.Legislator, len(members))
	for _, m := range members {
		if m.MemberCode != "" {
			lookup[m.MemberCode] = m
		}
	}

	var summaries []model.MemberSummary
	for code, earmarks := range ix.Buckets {
		if code == model.BucketUnmatched || code == model.BucketUnknown {
			continue
		}
		s := model.MemberSummary{
			MemberCode:   code,
			EarmarkCount: len(earmarks),
		}
		if m, ok := lookup[code]; ok {
			s.Name = m.Name
			s.Chamber = m.Chamber
			s.District = m.District
		}
		counted := 0
		for _, e := range earmarks {
			if e.Record.Amount == nil {
				continue
			}
			amt := *e.Record.Amount
			s.TotalDollars += amt
			if amt > s.LargestEarmark {
				s.LargestEarmark = amt
			}
			counted++
		}
		if counted > 0 {
			s.AverageDollars = s.TotalDollars / float64(counted)
		}
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].TotalDollars != summaries[j].TotalDollars {
			return summaries[i].TotalDollars > summaries[j].TotalDollars
		}
		return summaries[i].MemberCode < summaries[j].MemberCode
	})
	return summaries
}
