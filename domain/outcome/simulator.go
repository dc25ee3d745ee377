package outcome

import (
	"math/rand"

	"powersim/domain/design"
	"powersim/domain/effects"
)

// Simulate draws one outcome value for every unit record, in record order.
//
// Each draw comes from a normal distribution with the mean of the unit's
// (persistence, identification) cell and the spec's shared standard
// deviation. The random generator is owned by the caller: one seeded
// *rand.Rand per repetition keeps draws isolated, so the same seed always
// reproduces the same outcome sequence even when repetitions run
// concurrently.
//
// The input records are read-only; outcomes come back as a fresh
// index-aligned slice.
func Simulate(units []design.UnitRecord, spec effects.Spec, rng *rand.Rand) ([]float64, error) {
	outcomes := make([]float64, len(units))
	sd := spec.SD()
	for i, u := range units {
		mean, err := spec.MeanFor(u.Persistence, u.Identification)
		if err != nil {
			return nil, err
		}
		outcomes[i] = rng.NormFloat64()*sd + mean
	}
	return outcomes, nil
}
