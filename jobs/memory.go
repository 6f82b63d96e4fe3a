package jobs

import (
	"context"
	"sort"
	"strings"
)

// MemoryStore serves a fixed slice of jobs with the same filter semantics as
// the Postgres store. Used by tests and the demo mode of the agent service.
type MemoryStore struct {
	Jobs []Job
}

func NewMemory(jobs []Job) *MemoryStore {
	return &MemoryStore{Jobs: jobs}
}

func (s *MemoryStore) Search(_ context.Context, q Query) ([]Job, error) {
	var patterns []string
	if q.Role != "" {
		patterns = PatternsFor(strings.ToUpper(q.Role))
	}

	matches := func(j Job) bool {
		if q.RemoteOnly && !j.Remote {
			return false
		}
		if q.Location != "" && !strings.Contains(strings.ToLower(j.Location), strings.ToLower(q.Location)) {
			return false
		}
		if patterns == nil {
			return true
		}
		title := strings.ToLower(j.Title)
		for _, p := range patterns {
			if strings.Contains(title, strings.ToLower(p)) {
				return true
			}
		}
		return false
	}

	var out []Job
	for _, j := range s.Jobs {
		if matches(j) {
			out = append(out, j)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].PostedDate.After(out[k].PostedDate) })

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Stats(_ context.Context) (Stats, error) {
	st := Stats{TotalJobs: len(s.Jobs)}
	counts := map[string]int{}
	for _, j := range s.Jobs {
		if j.Remote {
			st.RemoteJobs++
		}
		counts[roleBucket(j.Title)]++
	}
	for role, n := range counts {
		st.ByRole = append(st.ByRole, RoleCount{Role: role, Count: n})
	}
	sort.Slice(st.ByRole, func(i, k int) bool {
		if st.ByRole[i].Count != st.ByRole[k].Count {
			return st.ByRole[i].Count > st.ByRole[k].Count
		}
		return st.ByRole[i].Role < st.ByRole[k].Role
	})
	return st, nil
}

func roleBucket(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "cfo") || strings.Contains(t, "chief financial"):
		return "CFO"
	case strings.Contains(t, "cmo") || strings.Contains(t, "chief marketing"):
		return "CMO"
	case strings.Contains(t, "cto") || strings.Contains(t, "chief technology"):
		return "CTO"
	case strings.Contains(t, "coo") || strings.Contains(t, "chief operating"):
		return "COO"
	case strings.Contains(t, "chro") || strings.Contains(t, "chief hr") || strings.Contains(t, "chief people"):
		return "CHRO"
	default:
		return "Other"
	}
}
