package ports

import (
	"context"

	"powersim/domain/design"
	"powersim/domain/power"
)

// ModelFitterPort fits a linear model of outcome on the design's factor
// codings and extracts inferential statistics for every non-intercept
// predictor.
type ModelFitterPort interface {
	// Fit regresses outcomes on the persistence and identification dummies
	// (main effects only). Implementations must detect rank-deficient design
	// matrices and return ErrSingularDesign rather than NaN coefficients.
	Fit(ctx context.Context, outcomes []float64, units []design.UnitRecord) ([]power.CoefficientRow, error)
}
