package effects

import (
	"fmt"

	"powersim/domain/core"
)

// Cell identifies one combination of the two binary factor codes.
type Cell struct {
	Persistence    int `json:"persistence"`
	Identification int `json:"identification"`
}

// The four cells of the 2x2 design, in the canonical input order:
// persistent+identifiable, persistent+anonymous, ephemeral+identifiable,
// ephemeral+anonymous.
var CellOrder = [4]Cell{
	{Persistence: 1, Identification: 1},
	{Persistence: 1, Identification: 0},
	{Persistence: 0, Identification: 1},
	{Persistence: 0, Identification: 0},
}

// Spec assigns one mean outcome to every cell of the design plus a shared
// standard deviation. The means map is exhaustive over the four cells by
// construction, so lookups never fall through to a catch-all branch.
type Spec struct {
	means map[Cell]float64
	sd    float64
}

// NewSpec validates and builds an effect specification.
// Means must carry exactly four values ordered as CellOrder documents.
func NewSpec(means []float64, sd float64) (Spec, error) {
	if len(means) != len(CellOrder) {
		return Spec{}, core.NewInvalidEffectSpecError(
			fmt.Sprintf("expected %d cell means, got %d", len(CellOrder), len(means)))
	}
	if sd <= 0 {
		return Spec{}, core.NewInvalidEffectSpecError(
			fmt.Sprintf("standard deviation must be > 0, got %g", sd))
	}

	byCell := make(map[Cell]float64, len(CellOrder))
	for i, cell := range CellOrder {
		byCell[cell] = means[i]
	}
	return Spec{means: byCell, sd: sd}, nil
}

// MustNewSpec builds an effect specification and panics on invalid input.
// Use only in tests and development.
func MustNewSpec(means []float64, sd float64) Spec {
	spec, err := NewSpec(means, sd)
	if err != nil {
		panic(err)
	}
	return spec
}

// Validate reports whether the spec was properly constructed. A zero-value
// Spec (empty mean table) is rejected here before any simulation runs.
func (s Spec) Validate() error {
	if len(s.means) != len(CellOrder) {
		return core.NewInvalidEffectSpecError("effect specification is empty")
	}
	if s.sd <= 0 {
		return core.NewInvalidEffectSpecError(
			fmt.Sprintf("standard deviation must be > 0, got %g", s.sd))
	}
	return nil
}

// MeanFor returns the assumed mean for a factor code combination.
// Codes outside {0,1} report an error instead of silently picking a cell.
func (s Spec) MeanFor(persistence, identification int) (float64, error) {
	mean, ok := s.means[Cell{Persistence: persistence, Identification: identification}]
	if !ok {
		return 0, core.NewInvalidEffectSpecError(
			fmt.Sprintf("no cell for codes (%d,%d)", persistence, identification))
	}
	return mean, nil
}

// SD returns the shared spread value.
func (s Spec) SD() float64 {
	return s.sd
}

// CellMeans returns the means in canonical CellOrder.
func (s Spec) CellMeans() [4]float64 {
	var out [4]float64
	for i, cell := range CellOrder {
		out[i] = s.means[cell]
	}
	return out
}
