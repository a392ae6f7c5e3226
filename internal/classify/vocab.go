package classify

import "regexp"

// Boilerplate phrases from Massachusetts budget amendment drafting
// conventions. These are the strongest positive signals.
var boilerplatePhrases = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bprovided(?:,)?\s+that\b`),
	regexp.MustCompile(`(?i)\bprovided\s+further(?:,)?\s+that\b`),
	regexp.MustCompile(`(?i)\bshall\s+be\s+expended\s+for\b`),
	regexp.MustCompile(`(?i)\bshall\s+be\s+provided\s+to\b`),
	regexp.MustCompile(`(?i)\bnot\s+less\s+than\s+\$?[\d,]+`),
	regexp.MustCompile(`(?i)\bup\s+to\s+\$?[\d,]+`),
	regexp.MustCompile(`(?i)\bfor\s+the\s+purpose\s+of\b`),
	regexp.MustCompile(`(?i)\bin\s+the\s+(?:city|town)\s+of\b`),
	regexp.MustCompile(`(?i)\bfor\s+(?:the\s+)?benefit\s+of\b`),
}

// Gazetteer of Massachusetts municipalities, regions, and Boston
// neighborhoods. Lowercase; matched with word boundaries.
var localities = []string{
	// Major cities
	"boston", "worcester", "springfield", "cambridge", "lowell",
	"brockton", "quincy", "lynn", "new bedford", "fall river",
	"newton", "lawrence", "somerville", "framingham", "haverhill",
	"waltham", "malden", "brookline", "plymouth", "medford",
	"taunton", "chicopee", "weymouth", "revere", "peabody",
	"methuen", "barnstable", "pittsfield", "arlington", "everett",
	"salem", "westfield", "leominster", "fitchburg", "beverly",
	"holyoke", "marlborough", "woburn", "chelsea", "braintree",
	"amherst", "shrewsbury", "dartmouth", "billerica", "natick",
	"randolph", "northampton", "attleboro", "agawam", "west springfield",
	// Smaller municipalities
	"gloucester", "danvers", "andover", "watertown", "burlington",
	"lexington", "milton", "needham", "dedham", "wellesley",
	"belmont", "reading", "wakefield", "stoneham", "winchester",
	"melrose", "concord", "norwood", "norfolk", "rockland",
	"holbrook", "abington", "whitman", "hanover", "hingham",
	"cohasset", "scituate", "marshfield", "duxbury", "kingston",
	// Regions
	"cape cod", "south coast", "north shore", "south shore",
	"merrimack valley", "pioneer valley", "berkshires",
	"metro boston", "greater boston",
	// Boston neighborhoods
	"dorchester", "roxbury", "jamaica plain", "south end",
	"back bay", "charlestown", "east boston", "allston",
	"brighton", "west roxbury", "mattapan", "roslindale",
	"hyde park",
}

// Generic geographic forms that count even when the place name is not in
// the gazetteer.
var geoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bcity\s+of\s+\w+`),
	regexp.MustCompile(`\btown\s+of\s+\w+`),
	regexp.MustCompile(`\b\w+\s+county\b`),
	regexp.MustCompile(`\bdistrict\s+\d+`),
	regexp.MustCompile(`\b\d+(st|nd|rd|th)\s+district\b`),
}

// Words that suggest a named organization or recipient. Lowercase,
// word-boundary matched.
var orgKeywords = []string{
	"foundation", "association", "society", "institute", "center",
	"council", "organization", "commission", "authority", "trust",
	"coalition", "collaborative", "partnership", "corporation",
	"company", "university", "college", "school", "hospital",
	"museum", "library", "church", "temple", "synagogue",
	// Legal suffixes
	"inc", "corp", "llc", "ltd", "dba",
	// Common nonprofit forms
	"ymca", "ywca", "boys and girls club", "food pantry",
	"community health center", "housing authority",
	"united way", "community development corporation", "cdc",
}

// Two or more adjacent capitalized words usually mean a proper name.
var properNamePattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,3}\b`)

// Words describing a concrete project or deliverable.
var projectKeywords = []string{
	"construction", "renovation", "repair", "upgrade", "improvement",
	"building", "facility", "infrastructure", "project", "program",
	"initiative", "development", "installation", "acquisition",
	"purchase", "equipment", "system", "maintenance", "expansion",
	// Planning and services
	"design", "feasibility", "planning", "engineering", "permitting",
	"pilot", "technical assistance", "training", "capacity",
	"outreach", "programming", "after-school", "violence prevention",
	"shelter", "workforce", "build-out", "fit-out",
}

// Words suggesting broad or statewide spending rather than a directed
// local appropriation.
var routineKeywords = []string{
	"statewide", "subject to appropriation", "for grants to municipalities",
	"administered by", "operating expenses", "general fund",
	"personnel", "salaries", "benefits", "overhead",
	"contingency", "reserve",
}
