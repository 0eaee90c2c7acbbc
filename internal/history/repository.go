// Package history persists a trace of served recommendations in an embedded
// SQLite database. The trace feeds the stats endpoint; losing it never
// affects recommendation results.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/slideforge/layout-engine/internal/recommender"
)

const schema = `
CREATE TABLE IF NOT EXISTS recommendation_history (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	content_type   TEXT NOT NULL,
	structure      TEXT NOT NULL,
	top_layout_id  TEXT NOT NULL,
	top_score      REAL NOT NULL,
	returned       INTEGER NOT NULL,
	duration_ms    REAL NOT NULL,
	recommended_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_content_type ON recommendation_history(content_type);
CREATE INDEX IF NOT EXISTS idx_history_recommended_at ON recommendation_history(recommended_at);
`

// Repository stores and aggregates recommendation history rows.
type Repository struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at path, creating the schema if
// needed. Use ":memory:" for an ephemeral store.
func Open(path string) (*Repository, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Record inserts one served recommendation.
func (r *Repository) Record(ctx context.Context, entry recommender.RecordEntry) error {
	const query = `
		INSERT INTO recommendation_history
			(content_type, structure, top_layout_id, top_score, returned, duration_ms, recommended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ContentType,
		entry.Structure,
		entry.TopLayoutID,
		entry.TopScore,
		entry.Returned,
		entry.DurationMs,
		entry.RecommendedAt,
	)
	if err != nil {
		return fmt.Errorf("insert history row: %w", err)
	}
	return nil
}

// ContentTypeCount is one row of the per-type aggregate.
type ContentTypeCount struct {
	ContentType string `db:"content_type" json:"content_type"`
	Count       int64  `db:"count" json:"count"`
}

// LayoutCount is one row of the per-layout aggregate.
type LayoutCount struct {
	LayoutID string `db:"top_layout_id" json:"layout_id"`
	Count    int64  `db:"count" json:"count"`
}

// Stats is the aggregate view served by the stats endpoint.
type Stats struct {
	TotalRecommendations int64              `json:"total_recommendations"`
	AvgTopScore          float64            `json:"avg_top_score"`
	AvgDurationMs        float64            `json:"avg_duration_ms"`
	ByContentType        []ContentTypeCount `json:"by_content_type"`
	TopLayouts           []LayoutCount      `json:"top_layouts"`
	Since                *time.Time         `json:"since,omitempty"`
}

// Stats aggregates the full history.
func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	var stats Stats

	row := r.db.QueryRowxContext(ctx, `
		SELECT COUNT(*), COALESCE(AVG(top_score), 0), COALESCE(AVG(duration_ms), 0)
		FROM recommendation_history`)
	if err := row.Scan(&stats.TotalRecommendations, &stats.AvgTopScore, &stats.AvgDurationMs); err != nil {
		return Stats{}, fmt.Errorf("aggregate history: %w", err)
	}

	if stats.TotalRecommendations > 0 {
		// SQLite loses the column's declared type inside aggregate
		// expressions, so the earliest row is fetched directly.
		var since time.Time
		if err := r.db.GetContext(ctx, &since, `
			SELECT recommended_at FROM recommendation_history
			ORDER BY recommended_at ASC LIMIT 1`); err != nil {
			return Stats{}, fmt.Errorf("find earliest history row: %w", err)
		}
		stats.Since = &since
	}

	if err := r.db.SelectContext(ctx, &stats.ByContentType, `
		SELECT content_type, COUNT(*) AS count
		FROM recommendation_history
		GROUP BY content_type
		ORDER BY count DESC, content_type ASC`); err != nil {
		return Stats{}, fmt.Errorf("aggregate content types: %w", err)
	}

	if err := r.db.SelectContext(ctx, &stats.TopLayouts, `
		SELECT top_layout_id, COUNT(*) AS count
		FROM recommendation_history
		GROUP BY top_layout_id
		ORDER BY count DESC, top_layout_id ASC
		LIMIT 10`); err != nil {
		return Stats{}, fmt.Errorf("aggregate layouts: %w", err)
	}

	return stats, nil
}

// Close releases the database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}
