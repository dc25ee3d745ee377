package ols

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"powersim/domain/core"
	"powersim/domain/design"
	"powersim/domain/power"
	"powersim/ports"
)

// Predictor names reported by the fitter, matching the design's factors.
const (
	PredictorPersistence    = core.Predictor(design.FactorPersistence)
	PredictorIdentification = core.Predictor(design.FactorIdentification)
)

// relative singular value cutoff for rank detection
const rankTolerance = 1e-10

// Fitter estimates a main-effects-only ordinary least squares model of
// outcome on the two factor dummies. The fit intentionally carries no
// interaction term even though the assumed cell means need not be additive;
// the power target is the main effects.
type Fitter struct{}

// NewFitter creates an OLS model fitter
func NewFitter() ports.ModelFitterPort {
	return &Fitter{}
}

// Fit solves the regression via SVD and extracts estimate, standard error,
// t statistic and two-sided p-value for every non-intercept predictor.
// P-values come from Student's t with n - 3 degrees of freedom.
func (f *Fitter) Fit(ctx context.Context, outcomes []float64, units []design.UnitRecord) ([]power.CoefficientRow, error) {
	n := len(units)
	const p = 3 // intercept + two dummies
	if len(outcomes) != n {
		return nil, fmt.Errorf("%w: outcome length %d does not match design length %d",
			core.ErrSingularDesign, len(outcomes), n)
	}
	if n <= p {
		return nil, fmt.Errorf("%w: need more than %d observations, got %d",
			core.ErrSingularDesign, p, n)
	}

	x := mat.NewDense(n, p, nil)
	for i, rec := range units {
		x.Set(i, 0, 1)
		x.Set(i, 1, float64(rec.Persistence))
		x.Set(i, 2, float64(rec.Identification))
	}

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return nil, fmt.Errorf("%w: SVD factorization failed", core.ErrSingularDesign)
	}

	values := svd.Values(nil)
	if values[0] == 0 || values[p-1]/values[0] < rankTolerance {
		// A factor with a single observed level collapses a column onto the
		// intercept; report it instead of producing NaN coefficients.
		return nil, fmt.Errorf("%w: a predictor column is collinear with the intercept",
			core.ErrSingularDesign)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// beta = V * S^-1 * U' y
	w := make([]float64, p)
	for j := 0; j < p; j++ {
		var dot float64
		for i := 0; i < n; i++ {
			dot += u.At(i, j) * outcomes[i]
		}
		w[j] = dot / values[j]
	}
	beta := make([]float64, p)
	for j := 0; j < p; j++ {
		for k := 0; k < p; k++ {
			beta[j] += v.At(j, k) * w[k]
		}
	}

	// residual variance with n - p degrees of freedom
	var rss float64
	for i, rec := range units {
		fitted := beta[0] + beta[1]*float64(rec.Persistence) + beta[2]*float64(rec.Identification)
		resid := outcomes[i] - fitted
		rss += resid * resid
	}
	df := float64(n - p)
	sigma2 := rss / df

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	predictors := [p]core.Predictor{"", PredictorPersistence, PredictorIdentification}

	rows := make([]power.CoefficientRow, 0, p-1)
	for j := 1; j < p; j++ {
		// cov_jj = sigma2 * sum_k V[j][k]^2 / s[k]^2
		var cjj float64
		for k := 0; k < p; k++ {
			cjj += v.At(j, k) * v.At(j, k) / (values[k] * values[k])
		}
		se := math.Sqrt(sigma2 * cjj)
		t := beta[j] / se
		rows = append(rows, power.CoefficientRow{
			Predictor:  predictors[j],
			Estimate:   beta[j],
			StdError:   se,
			TStatistic: t,
			PValue:     2 * (1 - tDist.CDF(math.Abs(t))),
			SampleSize: n,
		})
	}
	return rows, nil
}
