// Package classify decides whether a budget amendment is an earmark.
// The decision is a transparent weighted sum over independent signal
// detectors, with the contributing terms recorded in the result so a
// reviewer can audit each decision.
package classify

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/beaconhilldata/earmarker/internal/model"
)

// Classifier applies the weighted-signal model. Construct once per run;
// it is safe for concurrent use after construction.
type Classifier struct {
	cfg model.ClassifyConfig

	localityRes []*regexp.Regexp
	orgRes      []*regexp.Regexp
	projectRes  []*regexp.Regexp
	routineRes  []*regexp.Regexp
}

// New builds a Classifier from configuration. ExtraLocalities extend the
// built-in gazetteer.
func New(cfg model.ClassifyConfig) *Classifier {
	c := &Classifier{cfg: cfg}
	c.localityRes = compileWordSet(append(append([]string{}, localities...), cfg.ExtraLocalities...))
	c.orgRes = compileWordSet(orgKeywords)
	c.projectRes = compileWordSet(projectKeywords)
	c.routineRes = compileWordSet(routineKeywords)
	return c
}

func compileWordSet(words []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		res = append(res, regexp.MustCompile(`\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return res
}

var (
	hyphenBreakRe = regexp.MustCompile(`-\s*\n\s*`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	unicodeFixes  = strings.NewReplacer("–", "-", "—", "-", "“", `"`, "”", `"`, "‘", "'", "’", "'")
)

// NormalizeText prepares raw page text for pattern matching: hyphenated
// line breaks are rejoined, whitespace is collapsed, and typographic
// dashes and quotes are mapped to ASCII.
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}
	text = hyphenBreakRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = unicodeFixes.Replace(text)
	return strings.TrimSpace(text)
}

// Classify scores one record and returns the decision. The input record
// is not modified.
func (c *Classifier) Classify(rec *model.AmendmentRecord) model.ClassificationResult {
	text := NormalizeText(rec.Text())
	lower := strings.ToLower(text)

	hasBoiler, boilerConf, boilerMatches := matchBoilerplate(text)
	geoSpecific, geoConf := c.geographic(lower)
	orgSpecific, orgConf := c.organization(text, lower)
	projSpecific, projConf := c.project(lower)
	routine, routineConf := c.routine(lower)
	amountOK, amountConf := amountInRange(rec.Amount)

	var signals []string
	score := 0.0

	if hasBoiler {
		score += c.cfg.BoilerplateWeight * boilerConf
		preview := boilerMatches
		if len(preview) > 2 {
			preview = preview[:2]
		}
		signals = append(signals, fmt.Sprintf("earmark boilerplate (%.2f): %s",
			boilerConf, strings.Join(preview, ", ")))
	}
	if geoSpecific {
		score += c.cfg.GeographicWeight * geoConf
		signals = append(signals, fmt.Sprintf("geographic (%.2f)", geoConf))
	}
	if orgSpecific {
		score += c.cfg.OrgWeight * orgConf
		signals = append(signals, fmt.Sprintf("organization (%.2f)", orgConf))
	}
	if projSpecific {
		score += c.cfg.ProjectWeight * projConf
		signals = append(signals, fmt.Sprintf("project (%.2f)", projConf))
	}
	if amountOK {
		score += c.cfg.AmountWeight * amountConf
		signals = append(signals, fmt.Sprintf("amount range (%.2f)", amountConf))
	}

	// Large amounts read like policy changes, not directed local
	// spending. The penalty grows with the log of the amount.
	if rec.Amount != nil && *rec.Amount > 1000000 {
		penalty := math.Min(0.8, 0.2*math.Log10(*rec.Amount/1000000))
		score -= penalty
		signals = append(signals, fmt.Sprintf("large amount penalty (-%.2f)", penalty))
	}
	if routine {
		score -= c.cfg.RoutineWeight * routineConf
		signals = append(signals, fmt.Sprintf("routine/statewide (-%.2f)", routineConf))
	}

	threshold := c.cfg.Threshold
	isEarmark := score >= threshold

	confidence := 1.0 / (1.0 + math.Exp(-2.0*(score-threshold)))
	confidence = math.Max(0.1, math.Min(0.95, confidence))

	return model.ClassificationResult{
		IsEarmark:            isEarmark,
		Confidence:           confidence,
		GeographicSpecific:   geoSpecific,
		OrganizationSpecific: orgSpecific,
		ProjectSpecific:      projSpecific,
		RoutineIndicators:    routine,
		AmountInRange:        amountOK,
		Reasoning: fmt.Sprintf("Score: %.2f (threshold: %g). %s",
			score, threshold, strings.Join(signals, ", ")),
	}
}

func matchBoilerplate(text string) (bool, float64, []string) {
	var matches []string
	for _, re := range boilerplatePhrases {
		matches = append(matches, re.FindAllString(text, -1)...)
	}
	if len(matches) == 0 {
		return false, 0, nil
	}
	// Each phrase occurrence strengthens the signal, capped.
	conf := math.Min(0.95, 0.6+0.15*float64(len(matches)))
	return true, conf, matches
}

func (c *Classifier) geographic(lower string) (bool, float64) {
	if lower == "" {
		return false, 0
	}
	for _, re := range c.localityRes {
		if re.MatchString(lower) {
			return true, 0.9
		}
	}
	for _, re := range geoPatterns {
		if re.MatchString(lower) {
			return true, 0.8
		}
	}
	return false, 0
}

func (c *Classifier) organization(text, lower string) (bool, float64) {
	if lower == "" {
		return false, 0
	}
	switch matches := countMatches(c.orgRes, lower); {
	case matches >= 2:
		return true, 0.9
	case matches == 1:
		return true, 0.7
	}
	// Adjacent capitalized words are probably a proper name.
	if len(properNamePattern.FindAllString(text, -1)) >= 2 {
		return true, 0.6
	}
	return false, 0
}

func (c *Classifier) project(lower string) (bool, float64) {
	if lower == "" {
		return false, 0
	}
	switch matches := countMatches(c.projectRes, lower); {
	case matches >= 2:
		return true, 0.8
	case matches == 1:
		return true, 0.6
	}
	return false, 0
}

func (c *Classifier) routine(lower string) (bool, float64) {
	if lower == "" {
		return false, 0
	}
	switch matches := countMatches(c.routineRes, lower); {
	case matches >= 3:
		return true, 0.9
	case matches >= 2:
		return true, 0.7
	case matches == 1:
		return true, 0.5
	}
	return false, 0
}

func countMatches(res []*regexp.Regexp, lower string) int {
	n := 0
	for _, re := range res {
		if re.MatchString(lower) {
			n++
		}
	}
	return n
}

// amountInRange scores how typical the amount is for a directed local
// appropriation. The sweet spot is $25k to $1M.
func amountInRange(amount *float64) (bool, float64) {
	if amount == nil {
		return false, 0
	}
	a := *amount
	if a >= 5000 && a <= 3000000 {
		switch {
		case a >= 25000 && a <= 1000000:
			return true, 0.9
		case a > 1000000:
			return true, 0.6
		}
		return true, 0.7
	}
	return false, 0
}
