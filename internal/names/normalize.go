// Package names canonicalizes legislator and sponsor names so the
// attributor can compare them. The algorithm is deliberately simple:
// suffix stripping, accent folding, punctuation-to-space, a nickname
// table, and a manual override map for the handful of roster names that
// no heuristic gets right. The roster is small and stable, so explicit
// overrides beat ever-more-elaborate middle-name and hyphenated-surname
// rules, which history showed break other cases every time they grow.
package names

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Generational suffixes stripped from the end of a name.
var nameSuffixes = []string{
	", Jr.", ", Jr", ", Sr.", ", Sr",
	", II", ", III", ", IV", ", V",
	", 2nd", ", 3rd", ", 4th",
	" Jr.", " Jr", " Sr.", " Sr",
	" II", " III", " IV", " V",
}

// Nickname-to-formal-name table. Formal names map to themselves so the
// table is idempotent. Nickname collisions are a known source of false
// matches: "Kate" can be Katherine or Kathleen, and we normalize both to
// kathleen, so the override map has to carry the exceptions.
var nicknames = map[string]string{
	"mike": "michael", "michael": "michael",
	"nick": "nicholas", "nicholas": "nicholas",
	"bill": "william", "will": "william", "william": "william",
	"bob": "robert", "rob": "robert", "robert": "robert",
	"dick": "richard", "rick": "richard", "richard": "richard",
	"jim": "james", "jimmy": "james", "jay": "james", "james": "james",
	"joe": "joseph", "joseph": "joseph",
	"dan": "daniel", "daniel": "daniel",
	"tom": "thomas", "tommy": "thomas", "thomas": "thomas",
	"pat": "patricia", "patty": "patricia", "tricia": "patricia", "patricia": "patricia",
	"beth": "elizabeth", "liz": "elizabeth", "betsy": "elizabeth", "elizabeth": "elizabeth",
	"sue": "susan", "susan": "susan",
	"kate": "kathleen", "katie": "kathleen", "kathy": "kathleen",
	"katherine": "kathleen", "kathleen": "kathleen",
	"cindy": "cynthia", "cynthia": "cynthia",
	"matt": "matthew", "matthew": "matthew",
	"chris": "christopher", "christopher": "christopher",
	"steve": "steven", "steven": "steven",
	"dave": "david", "david": "david",
	"ed": "edward", "ted": "edward", "edward": "edward",
	"greg": "gregory", "gregory": "gregory",
	"tony": "anthony", "anthony": "anthony",
	"jen": "jennifer", "jenny": "jennifer", "jennifer": "jennifer",
	"manny": "emmanuel", "emmanuel": "emmanuel",
	"bud": "buddy", "buddy": "buddy",
}

// Manual override map, consulted last and on exact normalized strings
// only. Each entry documents a mismatch the algorithm cannot resolve.
// Keys and values are both in normalized form.
var manualOverrides = map[string]string{
	// Middle names present in the sponsor index but not the roster.
	"christopher richard flanagan": "christopher flanagan",
	"carmine lawrence gentile":     "carmine gentile",
	"david paul linsky":            "david linsky",
	"david allen robertson":        "david robertson",
	"jack patrick lewis":           "jack lewis",
	"john francis moran":           "john moran",
	"steven george xiarhos":        "steven xiarhos",

	// Apostrophe surnames: "O'Day" tokenizes to "o day", and a middle
	// initial leaves a stray token between first name and the "o".
	// Flagged rather than fixed structurally; the override table depends
	// on this exact tokenization.
	"james j o day":     "james o day",
	"patrick m o connor": "patrick o connor",
}

var (
	titleRe      = regexp.MustCompile(`(?i)\b(Representative|Senator|Rep|Sen)\b\.?`)
	midSuffixRe  = strings.NewReplacer(" Jr. ", " ", " Sr. ", " ")
	punctReplace = strings.NewReplacer(",", " ", ".", " ", "'", " ", "’", " ", "-", " ", "–", " ", "—", " ")
)

// Normalizer canonicalizes names. The zero-configuration form is
// obtained with New(nil, nil); per-run additions extend (and may
// shadow) the built-in tables.
type Normalizer struct {
	nicknames map[string]string
	overrides map[string]string
}

// New builds a Normalizer with the built-in tables plus any per-run
// additions.
func New(extraNicknames, extraOverrides map[string]string) *Normalizer {
	n := &Normalizer{
		nicknames: make(map[string]string, len(nicknames)+len(extraNicknames)),
		overrides: make(map[string]string, len(manualOverrides)+len(extraOverrides)),
	}
	for k, v := range nicknames {
		n.nicknames[k] = v
	}
	for k, v := range extraNicknames {
		n.nicknames[k] = v
	}
	for k, v := range manualOverrides {
		n.overrides[k] = v
	}
	for k, v := range extraOverrides {
		n.overrides[k] = v
	}
	return n
}

// Normalize canonicalizes a name: strip generational suffixes, fold
// accents, lowercase, replace punctuation with spaces, collapse
// whitespace, map nicknames, then consult the override map. The result
// is a fixed point: Normalize(Normalize(x)) == Normalize(x).
func (n *Normalizer) Normalize(name string) string {
	s := strings.TrimSpace(name)
	if s == "" {
		return ""
	}

	s = stripSuffix(s)
	s = stripAccents(s)
	s = strings.ToLower(s)
	s = punctReplace.Replace(s)
	s = strings.Join(strings.Fields(s), " ")

	parts := strings.Fields(s)
	for i, p := range parts {
		if formal, ok := n.nicknames[p]; ok {
			parts[i] = formal
		}
	}
	s = strings.Join(parts, " ")

	if corrected, ok := n.overrides[s]; ok {
		return corrected
	}
	return s
}

// NormalizeSponsor canonicalizes a person name as written in a sponsor
// index or roster. Chamber titles are dropped, and the "Last, First"
// format is swapped to "First Last" before normalization. Both sides of
// a match go through this path, so a roster stored either way compares
// equal to its index form.
func (n *Normalizer) NormalizeSponsor(name string) string {
	s := titleRe.ReplaceAllString(name, " ")

	if i := strings.Index(s, ","); i >= 0 {
		last := strings.TrimSpace(s[:i])
		first := strings.TrimSpace(s[i+1:])
		if last != "" && first != "" {
			s = first + " " + last
		}
	}

	return n.Normalize(s)
}

func stripSuffix(s string) string {
	for _, suffix := range nameSuffixes {
		if strings.HasSuffix(s, suffix) {
			s = s[:len(s)-len(suffix)]
			break
		}
	}
	// Jr/Sr occasionally appears mid-name ("Angelo Jr. Puppolo").
	s = midSuffixRe.Replace(s)
	return strings.TrimSpace(s)
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
