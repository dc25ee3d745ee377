package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"powersim/domain/core"
	"powersim/domain/power"
	"powersim/ports"
)

// resultRepository implements the ResultRepository interface
type resultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a new power result repository
func NewResultRepository(db *sqlx.DB) ports.ResultRepository {
	return &resultRepository{db: db}
}

// Connect opens and pings a Postgres connection
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// SaveManifest inserts the run manifest for a completed batch
func (r *resultRepository) SaveManifest(ctx context.Context, manifest *power.RunManifest) error {
	query := `INSERT INTO power_runs (
		id, seed_from, seed_to, simulations, sample_size, alpha,
		row_count, skipped_seeds, runtime_ms, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		manifest.RunID.String(), manifest.SeedFrom, manifest.SeedTo,
		manifest.Simulations, manifest.SampleSize, manifest.Alpha,
		manifest.RowCount, pq.Array(manifest.SkippedSeeds),
		manifest.RuntimeMs, manifest.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run manifest: %w", err)
	}
	return nil
}

// SaveSummaries inserts the aggregated power table for a run
func (r *resultRepository) SaveSummaries(ctx context.Context, runID core.RunID, summaries []power.Summary) error {
	query := `INSERT INTO power_summaries (
		run_id, predictor, power, mean_effect, repetitions
	) VALUES ($1, $2, $3, $4, $5)`

	for _, s := range summaries {
		_, err := r.db.ExecContext(ctx, query,
			runID.String(), s.Predictor.String(), s.Power, s.MeanEstimate, s.Repetitions,
		)
		if err != nil {
			return fmt.Errorf("failed to save summary for %s: %w", s.Predictor, err)
		}
	}
	return nil
}

// GetSummaries retrieves the power table for a run
func (r *resultRepository) GetSummaries(ctx context.Context, runID core.RunID) ([]power.Summary, error) {
	query := `SELECT predictor, power, mean_effect, repetitions
	FROM power_summaries WHERE run_id = $1 ORDER BY predictor`

	rows, err := r.db.QueryContext(ctx, query, runID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return []power.Summary{}, nil
		}
		return nil, fmt.Errorf("failed to get summaries: %w", err)
	}
	defer rows.Close()

	var summaries []power.Summary
	for rows.Next() {
		var s power.Summary
		var predictor string
		if err := rows.Scan(&predictor, &s.Power, &s.MeanEstimate, &s.Repetitions); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		s.Predictor = core.Predictor(predictor)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
