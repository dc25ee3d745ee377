package power

import (
	"time"

	"powersim/domain/core"
)

// CoefficientRow holds the inferential statistics for one non-intercept
// predictor from a single fitted repetition.
// INVARIANTS:
// - SampleSize always present and > 0
// - PValue always present (0.0 to 1.0)
type CoefficientRow struct {
	Predictor  core.Predictor `json:"predictor"`
	Estimate   float64        `json:"estimate"`
	StdError   float64        `json:"std_error"`
	TStatistic float64        `json:"t_statistic"`
	PValue     float64        `json:"p_value"`
	SampleSize int            `json:"sample_size"`
	Seed       int64          `json:"seed"` // repetition that produced the row
}

// Summary is the aggregated power estimate for one predictor.
type Summary struct {
	Predictor    core.Predictor `json:"predictor"`
	Power        float64        `json:"power"`       // empirical rejection rate
	MeanEstimate float64        `json:"mean_effect"` // mean point estimate across repetitions
	Repetitions  int            `json:"repetitions"` // rows contributing to the estimate
}

// DefaultAlpha is the significance threshold used when none is configured.
const DefaultAlpha = 0.05

// RunManifest captures the complete specification and outcome of one
// simulation batch, enough to reproduce it deterministically.
type RunManifest struct {
	RunID        core.RunID `json:"run_id"`
	SeedFrom     int64      `json:"seed_from"`
	SeedTo       int64      `json:"seed_to"`
	Simulations  int        `json:"simulations"`
	SampleSize   int        `json:"sample_size"` // units per repetition
	Alpha        float64    `json:"alpha"`
	RowCount     int        `json:"row_count"` // coefficient rows collected
	SkippedSeeds []int64    `json:"skipped_seeds,omitempty"`
	RuntimeMs    int64      `json:"runtime_ms"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewRunManifest creates a manifest for a batch over seeds 1..nSim.
func NewRunManifest(nSim, sampleSize int, alpha float64) *RunManifest {
	return &RunManifest{
		RunID:       core.RunID(core.NewID()),
		SeedFrom:    1,
		SeedTo:      int64(nSim),
		Simulations: nSim,
		SampleSize:  sampleSize,
		Alpha:       alpha,
		CreatedAt:   time.Now().UTC(),
	}
}
