package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stewartad1/RapidEdge/internal/dxf/domain"
)

// HistoryEntry is one recorded measurement.
type HistoryEntry struct {
	ID          string                  `json:"id"`
	Filename    string                  `json:"filename"`
	SourceUnits string                  `json:"source_units"`
	Report      *domain.DimensionReport `json:"report"`
	CreatedAt   time.Time               `json:"created_at"`
}

// HistoryRepository persists dimension reports to Postgres so operators
// can review past measurements. Uploads themselves are never stored.
//
// Schema:
//
//	CREATE TABLE measurement_history (
//	    id           UUID PRIMARY KEY,
//	    filename     TEXT NOT NULL,
//	    source_units TEXT NOT NULL,
//	    report       JSONB NOT NULL,
//	    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type HistoryRepository struct {
	db *pgxpool.Pool
}

func NewHistoryRepository(db *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record inserts one measurement row and returns its id.
func (r *HistoryRepository) Record(ctx context.Context, filename string, report *domain.DimensionReport) (string, error) {
	id := uuid.New().String()

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	const q = `
INSERT INTO measurement_history (id, filename, source_units, report)
VALUES ($1, $2, $3, $4);
`
	if _, err := r.db.Exec(ctx, q, id, filename, report.SourceUnits, reportJSON); err != nil {
		return "", fmt.Errorf("insert measurement history: %w", err)
	}
	return id, nil
}

// List returns the most recent entries, newest first.
func (r *HistoryRepository) List(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	const q = `
SELECT id, filename, source_units, report, created_at
FROM measurement_history
ORDER BY created_at DESC
LIMIT $1;
`
	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query measurement history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var reportJSON []byte
		if err := rows.Scan(&e.ID, &e.Filename, &e.SourceUnits, &reportJSON, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan measurement history: %w", err)
		}
		if err := json.Unmarshal(reportJSON, &e.Report); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// PruneOlderThan deletes entries past the retention window, returning the
// number of rows removed.
func (r *HistoryRepository) PruneOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	const q = `DELETE FROM measurement_history WHERE created_at < NOW() - $1::interval;`

	tag, err := r.db.Exec(ctx, q, fmt.Sprintf("%d seconds", int(age.Seconds())))
	if err != nil {
		return 0, fmt.Errorf("prune measurement history: %w", err)
	}
	return tag.RowsAffected(), nil
}
