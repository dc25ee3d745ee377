package design

import (
	"reflect"
	"testing"

	"powersim/domain/core"
)

func TestGenerate_Completeness(t *testing.T) {
	tests := []struct {
		name        string
		groupSize   int
		topics      int
		repetitions int
	}{
		{name: "reference design", groupSize: 20, topics: 3, repetitions: 4},
		{name: "minimal design", groupSize: 1, topics: 1, repetitions: 1},
		{name: "wide design", groupSize: 7, topics: 5, repetitions: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := NewSpec(tt.groupSize, tt.topics, tt.repetitions)
			units, err := Generate(spec)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}

			want := tt.groupSize * 2 * 2 * tt.topics * tt.repetitions
			if len(units) != want {
				t.Fatalf("expected %d units, got %d", want, len(units))
			}

			// every (persistence, identification, topic, repetition) cell
			// must hold exactly groupSize records
			type cell struct{ a, b, topic, rep int }
			counts := make(map[cell]int)
			for _, u := range units {
				counts[cell{u.Persistence, u.Identification, u.Topic, u.Repetition}]++
			}
			if len(counts) != 2*2*tt.topics*tt.repetitions {
				t.Errorf("expected %d cells, got %d", 2*2*tt.topics*tt.repetitions, len(counts))
			}
			for c, n := range counts {
				if n != tt.groupSize {
					t.Errorf("cell %+v has %d records, want %d", c, n, tt.groupSize)
				}
			}
		})
	}
}

func TestGenerate_RecodingAndIDs(t *testing.T) {
	units, err := Generate(NewSpec(3, 2, 2))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	seenIDs := make(map[int]bool)
	for i, u := range units {
		if u.Persistence != 0 && u.Persistence != 1 {
			t.Errorf("unit %d: persistence code %d not in {0,1}", u.ID, u.Persistence)
		}
		if u.Identification != 0 && u.Identification != 1 {
			t.Errorf("unit %d: identification code %d not in {0,1}", u.ID, u.Identification)
		}
		if u.ID != i+1 {
			t.Errorf("expected 1-based sequential id %d, got %d", i+1, u.ID)
		}
		if seenIDs[u.ID] {
			t.Errorf("duplicate id %d", u.ID)
		}
		seenIDs[u.ID] = true
	}
}

func TestGenerate_GroupAssignment(t *testing.T) {
	spec := NewSpec(4, 3, 2)
	units, err := Generate(spec)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// groupSize consecutive records share one group id, numbered 1..TotalGroups
	for i, u := range units {
		wantGroup := i/spec.GroupSize + 1
		if u.Group != wantGroup {
			t.Fatalf("unit %d: group %d, want %d", u.ID, u.Group, wantGroup)
		}
	}
	last := units[len(units)-1]
	if last.Group != spec.TotalGroups() {
		t.Errorf("last group %d, want %d", last.Group, spec.TotalGroups())
	}
	if spec.TotalGroups() != 2*2*spec.Topics*spec.Repetitions {
		t.Errorf("TotalGroups %d, want %d", spec.TotalGroups(), 2*2*spec.Topics*spec.Repetitions)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	spec := NewSpec(5, 2, 3)
	first, err := Generate(spec)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	second, err := Generate(spec)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical output for identical spec")
	}
}

func TestGenerate_InvalidDesign(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{name: "zero group size", spec: NewSpec(0, 3, 4)},
		{name: "negative group size", spec: NewSpec(-5, 3, 4)},
		{name: "zero topics", spec: NewSpec(20, 0, 4)},
		{name: "zero repetitions", spec: NewSpec(20, 3, 0)},
		{name: "missing factors", spec: Spec{GroupSize: 20, Topics: 3, Repetitions: 4}},
		{
			name: "non-binary factor",
			spec: Spec{
				GroupSize:   20,
				Topics:      3,
				Repetitions: 4,
				Factors: []Factor{
					{Name: FactorPersistence, Levels: 3},
					{Name: FactorIdentification, Levels: 2},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units, err := Generate(tt.spec)
			if !core.IsValidationError(err) {
				t.Errorf("expected InvalidDesign error, got %v", err)
			}
			if units != nil {
				t.Error("expected no units on invalid design")
			}
		})
	}
}
