package jobs

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
)

// PostgresStore queries the jobs table populated by the scraper pipeline.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open jobs database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Search(ctx context.Context, q Query) ([]Job, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT
			id,
			title,
			COALESCE(company_name, 'Unknown'),
			COALESCE(location, ''),
			COALESCE(is_remote, false),
			COALESCE(compensation, ''),
			COALESCE(url, ''),
			COALESCE(description_snippet, ''),
			COALESCE(executive_title, ''),
			COALESCE(posted_date, 'epoch'::timestamptz)
		FROM jobs
		WHERE is_active = true`)

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Role != "" {
		patterns := PatternsFor(strings.ToUpper(q.Role))
		conds := make([]string, len(patterns))
		for i, p := range patterns {
			conds[i] = "title ILIKE " + arg("%"+p+"%")
		}
		query.WriteString(" AND (" + strings.Join(conds, " OR ") + ")")
	}
	if q.Location != "" {
		query.WriteString(" AND location ILIKE " + arg("%"+q.Location+"%"))
	}
	if q.RemoteOnly {
		query.WriteString(" AND is_remote = true")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	query.WriteString(" ORDER BY posted_date DESC NULLS LAST LIMIT " + arg(limit))

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Remote,
			&j.Salary, &j.URL, &j.Description, &j.ExecutiveTitle, &j.PostedDate); err != nil {
			return nil, fmt.Errorf("scan job row: %w", err)
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM jobs WHERE is_active = true").Scan(&st.TotalJobs); err != nil {
		return Stats{}, fmt.Errorf("job stats total: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT
			CASE
				WHEN title ILIKE '%CFO%' OR title ILIKE '%Chief Financial%' THEN 'CFO'
				WHEN title ILIKE '%CMO%' OR title ILIKE '%Chief Marketing%' THEN 'CMO'
				WHEN title ILIKE '%CTO%' OR title ILIKE '%Chief Technology%' THEN 'CTO'
				WHEN title ILIKE '%COO%' OR title ILIKE '%Chief Operating%' THEN 'COO'
				WHEN title ILIKE '%CHRO%' OR title ILIKE '%Chief HR%' OR title ILIKE '%Chief People%' THEN 'CHRO'
				ELSE 'Other'
			END AS role_type,
			COUNT(*) AS count
		FROM jobs
		WHERE is_active = true
		GROUP BY role_type
		ORDER BY count DESC`)
	if err != nil {
		return Stats{}, fmt.Errorf("job stats by role: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rc RoleCount
		if err := rows.Scan(&rc.Role, &rc.Count); err != nil {
			return Stats{}, fmt.Errorf("scan role count: %w", err)
		}
		st.ByRole = append(st.ByRole, rc)
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM jobs WHERE is_active = true AND is_remote = true").Scan(&st.RemoteJobs); err != nil {
		return Stats{}, fmt.Errorf("job stats remote: %w", err)
	}

	return st, nil
}
