// Package jobs provides the fractional-executive jobs store backing the
// career agent's actions.
package jobs

import (
	"context"
	"time"
)

// Job is one active listing.
type Job struct {
	ID             string
	Title          string
	Company        string
	Location       string
	Remote         bool
	Salary         string
	URL            string
	Description    string
	ExecutiveTitle string
	PostedDate     time.Time
}

// Query filters a search. Zero values mean "no filter".
type Query struct {
	Role       string // executive abbreviation, expanded to title patterns
	Location   string
	RemoteOnly bool
	Limit      int
}

// Stats summarizes the live market.
type Stats struct {
	TotalJobs  int
	ByRole     []RoleCount // ordered by count, descending
	RemoteJobs int
}

type RoleCount struct {
	Role  string
	Count int
}

type Store interface {
	Search(ctx context.Context, q Query) ([]Job, error)
	Stats(ctx context.Context) (Stats, error)
}

const DefaultLimit = 5

// rolePatterns expands an executive abbreviation to the title spellings it
// appears under in listings.
var rolePatterns = map[string][]string{
	"CFO":  {"CFO", "Chief Financial", "Finance Director", "FD"},
	"CMO":  {"CMO", "Chief Marketing", "Marketing Director", "VP Marketing"},
	"CTO":  {"CTO", "Chief Technology", "Tech Director", "VP Engineering"},
	"COO":  {"COO", "Chief Operating", "Operations Director"},
	"CHRO": {"CHRO", "Chief HR", "HR Director", "People Director", "Chief People"},
	"CRO":  {"CRO", "Chief Revenue", "Revenue Director", "Sales Director"},
	"CISO": {"CISO", "Chief Security", "Security Director", "InfoSec"},
	"CPO":  {"CPO", "Chief Product", "Product Director", "VP Product"},
}

// PatternsFor returns the title patterns for a role, falling back to the
// role string itself for unknown abbreviations.
func PatternsFor(role string) []string {
	if p, ok := rolePatterns[role]; ok {
		return p
	}
	return []string{role}
}
