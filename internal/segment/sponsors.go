package segment

import (
	"regexp"
	"strings"

	"github.com/beaconhilldata/earmarker/internal/model"
)

var (
	// "Amendment 123 - Representative Smith"
	sponsorWordForm = regexp.MustCompile(`(?i)amendment\s*#?\s*(\d+)[\s\-:]+(.+)`)
	// "123 John A. Smith" with an optional middle initial
	sponsorNumForm = regexp.MustCompile(`^(\d+)[\s\-:,]+([A-Z][a-z]+(?:\s+[A-Z]\.?)?\s+[A-Z][a-z]+)`)
)

// ParseSponsorIndex walks the pages of a sponsor index document and maps
// amendment numbers to the sponsor names listed for them. An amendment
// listed on several lines collects all of its sponsors in order.
func ParseSponsorIndex(pages []string) model.SponsorIndex {
	index := make(model.SponsorIndex)
	for _, page := range pages {
		for _, raw := range strings.Split(page, "\n") {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}

			if m := sponsorWordForm.FindStringSubmatch(line); m != nil {
				key := model.SponsorKey(m[1])
				index[key] = append(index[key], strings.TrimSpace(m[2]))
				continue
			}
			if m := sponsorNumForm.FindStringSubmatch(line); m != nil {
				key := model.SponsorKey(m[1])
				index[key] = append(index[key], strings.TrimSpace(m[2]))
			}
		}
	}
	return index
}
