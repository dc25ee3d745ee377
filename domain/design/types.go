package design

import (
	"powersim/domain/core"
)

// Factor is a named experimental dimension with a fixed number of levels.
// Only binary factors are supported: raw levels 1 and 2 are recoded to the
// regression dummies 0 and 1.
type Factor struct {
	Name   string `json:"name"`
	Levels int    `json:"levels"`
}

// The two fixed factors of the 2x2 between-subjects design.
const (
	FactorPersistence    = "persistence"
	FactorIdentification = "identification"
)

// Spec describes the dimensions of a factorial study design.
// Total sample size = GroupSize x 2 x 2 x Topics x Repetitions.
type Spec struct {
	GroupSize   int      `json:"group_size"`
	Factors     []Factor `json:"factors"`
	Topics      int      `json:"topics"`
	Repetitions int      `json:"repetitions"`
}

// NewSpec builds a Spec for the fixed persistence x identification design.
func NewSpec(groupSize, topics, repetitions int) Spec {
	return Spec{
		GroupSize: groupSize,
		Factors: []Factor{
			{Name: FactorPersistence, Levels: 2},
			{Name: FactorIdentification, Levels: 2},
		},
		Topics:      topics,
		Repetitions: repetitions,
	}
}

// Validate checks the design counts before any simulation work happens.
func (s Spec) Validate() error {
	if s.GroupSize <= 0 {
		return core.NewInvalidDesignError("group_size", s.GroupSize)
	}
	if s.Topics <= 0 {
		return core.NewInvalidDesignError("topics", s.Topics)
	}
	if s.Repetitions <= 0 {
		return core.NewInvalidDesignError("repetitions", s.Repetitions)
	}
	if len(s.Factors) != 2 {
		return core.NewInvalidDesignError("factors", len(s.Factors))
	}
	for _, f := range s.Factors {
		if f.Levels != 2 {
			return core.NewInvalidDesignError(f.Name+" levels", f.Levels)
		}
	}
	return nil
}

// TotalUnits returns the total sample size implied by the spec.
func (s Spec) TotalUnits() int {
	cells := 1
	for _, f := range s.Factors {
		cells *= f.Levels
	}
	return s.GroupSize * cells * s.Topics * s.Repetitions
}

// TotalGroups returns the number of factor x topic x repetition cells.
func (s Spec) TotalGroups() int {
	cells := 1
	for _, f := range s.Factors {
		cells *= f.Levels
	}
	return cells * s.Topics * s.Repetitions
}

// UnitRecord is one hypothetical observation in the design skeleton.
// Records are created without an outcome; the outcome simulator returns a
// separate, index-aligned sequence so records are never mutated downstream.
type UnitRecord struct {
	ID             int `json:"id"`          // unique row index, 1-based
	Participant    int `json:"participant"` // index within cell, 1..GroupSize
	Persistence    int `json:"persistence"` // dummy code, 0 or 1
	Identification int `json:"identification"`
	Topic          int `json:"topic"`
	Repetition     int `json:"repetition"`
	Group          int `json:"group"` // sequential cell id, 1-based
}
