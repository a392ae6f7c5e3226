// Package extract provides the stateless field extractors used by the
// segmenter. Every extractor is best-effort: a miss returns ok=false and
// is never an error.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Amount patterns, tried in strict precedence order. K/M suffixes are
	// word-boundary guarded so "make" or "must" never match.
	reAmountK      = regexp.MustCompile(`(?i)\$?\s*([\d,]+(?:\.\d+)?)\s*K\b`)
	reAmountM      = regexp.MustCompile(`(?i)\$?\s*([\d,]+(?:\.\d+)?)\s*M\b`)
	reAmountDollar = regexp.MustCompile(`\$\s*([\d,]+(?:\.\d{2})?)`)
	reAmountBare   = regexp.MustCompile(`\b([\d,]+)\b`)

	reLineItem = regexp.MustCompile(`\b(\d{4}-\d{4})\b`)

	// Amendment-number triggers: a leading 1-4 digit numeral followed by a
	// capitalized word (the "NNN Title" book layout), or the word
	// "amendment" with an optional # and digits.
	reAmendLeading = regexp.MustCompile(`^(\d{1,4})\s+[A-Z]`)
	reAmendWord    = regexp.MustCompile(`(?i)amendment\s*#?\s*(\d+)`)

	reSponsor     = regexp.MustCompile(`(?i)Primary Sponsor:\s*(.+)`)
	reSponsorTail = regexp.MustCompile(`\s+\d{4}$`)

	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bin\s+(?:the\s+)?(?:city\s+of\s+)?([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
		regexp.MustCompile(`\bfor\s+(?:the\s+)?(?:city\s+of\s+|town\s+of\s+)?([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
		regexp.MustCompile(`\bthroughout\s+([A-Z][a-z]+(?:\s+(?:County|Region|District))?)`),
		regexp.MustCompile(`\bat\s+(?:the\s+)?([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
		regexp.MustCompile(`\blocated\s+in\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
		regexp.MustCompile(`\b([A-Z][a-z]+)\s+County\b`),
	}

	organizationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bfor\s+(?:the\s+)?([A-Z][A-Za-z\s&\-]+(?:Center|Club|Council|Foundation|Association|Project|Program|Initiative))`),
		regexp.MustCompile(`(?i)\bto\s+(?:the\s+)?([A-Z][A-Za-z\s&\-]+(?:Center|Club|Council|Foundation|Association|Project|Program|Initiative))`),
		regexp.MustCompile(`(?i)\bsupport\s+(?:the\s+)?([A-Z][A-Za-z\s&\-]+(?:Center|Club|Council|Foundation|Association|Project|Program|Initiative))`),
		regexp.MustCompile(`(?i)\bfor\s+(?:a|an)\s+([a-z][a-z\s\-]+(?:project|program|initiative|facility|center))`),
		regexp.MustCompile(`(?i)\bto\s+(?:construct|build|establish|create|fund)\s+(?:a|an)?\s*([a-z][a-z\s\-]+)`),
	}
)

// Capitalized words that the location patterns keep matching but that are
// never place names in this corpus.
var locationDenylist = map[string]struct{}{
	"Massachusetts": {}, "Section": {}, "Item": {}, "Line": {},
	"The": {}, "This": {}, "General": {}, "Court": {},
	"House": {}, "Senate": {}, "Amendment": {},
}

// Amount extracts a dollar amount from text. Patterns are tried in
// precedence order: K suffix (x1,000), M suffix (x1,000,000), $-prefixed
// decimal, then a bare integer of at least 1,000. The first pattern that
// matches wins; later patterns are not consulted.
func Amount(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}

	if m := reAmountK.FindStringSubmatch(text); m != nil {
		if v, err := parseNumber(m[1]); err == nil {
			return v * 1000, true
		}
	}

	if m := reAmountM.FindStringSubmatch(text); m != nil {
		if v, err := parseNumber(m[1]); err == nil {
			return v * 1000000, true
		}
	}

	if m := reAmountDollar.FindStringSubmatch(text); m != nil {
		if v, err := parseNumber(m[1]); err == nil {
			return v, true
		}
	}

	// Bare number is a last resort; small numbers are almost never
	// dollar amounts in amendment text.
	if m := reAmountBare.FindStringSubmatch(text); m != nil {
		if v, err := parseNumber(m[1]); err == nil && v >= 1000 {
			return v, true
		}
	}

	return 0, false
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

// LineItem extracts the first ####-#### budget line-item code.
func LineItem(text string) (string, bool) {
	if m := reLineItem.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// AmendmentNumber reports whether a line is an amendment heading and
// returns its number. The leading-numeral form is checked before the
// "Amendment #N" form.
func AmendmentNumber(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	if m := reAmendLeading.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := reAmendWord.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// Location extracts a city/town/county mention. Ordered alternatives with
// a deny-list filtering out capitalized words that are not places.
func Location(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	for _, re := range locationPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		loc := strings.TrimSpace(m[1])
		if _, bad := locationDenylist[loc]; bad {
			continue
		}
		return loc, true
	}
	return "", false
}

// Organization extracts an organization, recipient, or project name.
// A match is accepted only when its length is plausible for a name.
func Organization(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	for _, re := range organizationPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		org := strings.TrimSpace(m[1])
		if len(org) > 5 && len(org) < 100 {
			return org, true
		}
	}
	return "", false
}

// PrimarySponsor extracts the name from a "Primary Sponsor: ..." line,
// stripping a trailing line-item fragment when the layout runs the two
// columns together.
func PrimarySponsor(text string) (string, bool) {
	m := reSponsor.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	sponsor := strings.TrimSpace(m[1])
	sponsor = reSponsorTail.ReplaceAllString(sponsor, "")
	if sponsor == "" {
		return "", false
	}
	return sponsor, true
}
