package search

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// PgFTS implements Searcher using PostgreSQL full-text search as a fallback.
type PgFTS struct {
	db *sql.DB
}

// NewPgFTS creates a PostgreSQL FTS searcher.
func NewPgFTS(db *sql.DB) *PgFTS {
	return &PgFTS{db: db}
}

// Healthy always returns true. If Postgres is down, the whole app is down.
func (p *PgFTS) Healthy() bool {
	return true
}

// Search runs a ranked full-text query over questions using plainto_tsquery
// and ts_rank, with ts_headline for snippets.
func (p *PgFTS) Search(q Query) ([]Result, int, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, 0, nil
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	tsQuery := "plainto_tsquery('english', $1)"
	args := []any{q.Text}

	where := "q.fts @@ " + tsQuery
	if q.LeadID != "" {
		where += " AND q.lead_id = $2"
		args = append(args, q.LeadID)
	}

	countSQL := fmt.Sprintf("SELECT count(*) FROM questions q WHERE %s", where)
	dataSQL := fmt.Sprintf(`
		SELECT q.id, q.content, q.question_type,
			ts_headline('english', coalesce(q.content, ''), %s, 'MaxFragments=1,MaxWords=30') AS snippet,
			ts_rank(q.fts, %s) AS rank
		FROM questions q
		WHERE %s
		ORDER BY rank DESC
		LIMIT %d OFFSET %d`, tsQuery, tsQuery, where, limit, offset)

	ctx := context.Background()

	var total int
	if err := p.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgfts count: %w", err)
	}

	rows, err := p.db.QueryContext(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgfts query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var rank float64
		if err := rows.Scan(&r.ID, &r.Content, &r.QuestionType, &r.Snippet, &rank); err != nil {
			return nil, 0, fmt.Errorf("pgfts scan: %w", err)
		}
		results = append(results, r)
	}

	return results, total, rows.Err()
}

// LoadAllRecords returns every question for full reindexing.
func (p *PgFTS) LoadAllRecords(ctx context.Context) ([]QuestionRecord, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, content, question_type, lead_id
		FROM questions
	`)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	records := make([]QuestionRecord, 0)
	for rows.Next() {
		var record QuestionRecord
		if err := rows.Scan(&record.ID, &record.Content, &record.QuestionType, &record.LeadID); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return records, nil
}
