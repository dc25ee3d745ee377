package power

import (
	"sort"

	"github.com/montanaflynn/stats"

	"powersim/domain/core"
)

// Aggregate groups coefficient rows by predictor and computes, per group,
// the empirical rejection rate at alpha and the mean point estimate.
//
// Only membership of the input matters, not its order: rows from a parallel
// driver aggregate to the same summaries as rows from a sequential one.
// Every distinct predictor in the input appears exactly once in the output,
// sorted by predictor name for stable presentation.
func Aggregate(rows []CoefficientRow, alpha float64) []Summary {
	if alpha <= 0 || alpha >= 1 {
		alpha = DefaultAlpha
	}

	estimates := make(map[string][]float64)
	rejections := make(map[string]int)
	for _, row := range rows {
		key := row.Predictor.String()
		estimates[key] = append(estimates[key], row.Estimate)
		if row.PValue < alpha {
			rejections[key]++
		}
	}

	names := make([]string, 0, len(estimates))
	for name := range estimates {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]Summary, 0, len(names))
	for _, name := range names {
		group := estimates[name]
		mean, err := stats.Mean(group)
		if err != nil {
			mean = 0
		}
		summaries = append(summaries, Summary{
			Predictor:    core.Predictor(name),
			Power:        float64(rejections[name]) / float64(len(group)),
			MeanEstimate: mean,
			Repetitions:  len(group),
		})
	}
	return summaries
}
