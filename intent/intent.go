// Package intent classifies free-form transcript text into job-search and
// statistics requests using keyword heuristics. Detection is best effort and
// never fails; an unmatched field is simply zero.
package intent

import (
	"regexp"
	"strings"
)

// Result is the outcome of one detection pass over a piece of text.
type Result struct {
	HasJobIntent   bool
	HasStatsIntent bool
	Role           string // uppercased abbreviation, "" when none matched
	Location       string // "" when none matched
	Remote         bool
}

// Executive-title abbreviations recognized as roles. CEO stays in the set
// even though it is not a typical fractional search target.
var roleAbbrevs = []string{"CFO", "CMO", "CTO", "COO", "CHRO", "CRO", "CISO", "CPO", "CEO"}

var (
	// Matched against the original text so mixed-case forms like "Cfo" hit.
	roleAbbrevRe = regexp.MustCompile(`(?i)\b(CFO|CMO|CTO|COO|CHRO|CRO|CISO|CPO|CEO)\b`)

	genericRoleRe = regexp.MustCompile(`\b(chief|executive|officer)\b`)
	actionRe      = regexp.MustCompile(`\b(jobs?|roles?|positions?|opportunit(?:y|ies)|openings?|vacanc(?:y|ies)|gigs?)\b`)
	searchVerbRe  = regexp.MustCompile(`\b(show|find|search|look|get|give|list|display)\b`)
	statsRe       = regexp.MustCompile(`\b(how many|stats|statistics|trends?|market|overview|breakdown)\b`)
	remoteRe      = regexp.MustCompile(`\bremote\b`)

	// Capitalized one-or-two-word sequence after a preposition. Heuristic by
	// design: lowercase place names are missed, capitalized non-places over-match.
	locationRe = regexp.MustCompile(`\b(?:in|at|near)\s+([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)?)`)
)

// Detect inspects transcript text and reports what it expresses.
func Detect(text string) Result {
	lower := strings.ToLower(text)

	hasRoleMatch := roleAbbrevRe.MatchString(text) || genericRoleRe.MatchString(lower)
	hasActionMatch := actionRe.MatchString(lower)
	hasSearchMatch := searchVerbRe.MatchString(lower)

	r := Result{
		HasStatsIntent: statsRe.MatchString(lower),
		HasJobIntent:   (hasRoleMatch && hasActionMatch) || (hasSearchMatch && (hasRoleMatch || hasActionMatch)),
		Remote:         remoteRe.MatchString(lower),
	}

	if m := roleAbbrevRe.FindString(text); m != "" {
		r.Role = strings.ToUpper(m)
	}
	if m := locationRe.FindStringSubmatch(text); m != nil {
		r.Location = m[1]
	}

	return r
}

// Roles returns the fixed executive-title enumeration.
func Roles() []string {
	out := make([]string, len(roleAbbrevs))
	copy(out, roleAbbrevs)
	return out
}
