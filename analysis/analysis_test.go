package analysis_test

import (
	"context"
	"testing"

	petrinet "github.com/ksztenderski/PetriNet"
	"github.com/ksztenderski/PetriNet/analysis"
)

// TestApplyVector_MatchesFire checks that, for a net with no inhibitor or
// reset arcs, the linear-algebra view of firing a transition agrees with
// actually firing it through the engine.
func TestApplyVector_MatchesFire(t *testing.T) {
	places := []string{"p1", "p2"}
	s := &analysis.Structure[string]{
		Places:      places,
		Transitions: []string{"move"},
		Input:       map[string]map[string]int{"move": {"p1": 1}},
		Output:      map[string]map[string]int{"move": {"p2": 1}},
	}

	net := petrinet.New(map[string]int{"p1": 2}, false)
	tr := petrinet.NewTransition("move", map[string]int{"p1": 1}, map[string]int{"p2": 1}, nil, nil)

	state := []float64{2, 0}
	next := s.ApplyVector(state, s.FiringVector(0))

	if _, err := net.Fire(context.Background(), []*petrinet.Transition[string]{tr}); err != nil {
		t.Fatalf("fire: %v", err)
	}
	got := net.Marking()

	for i, p := range places {
		if got[p] != int(next[i]) {
			t.Fatalf("place %s: matrix view says %v, engine says %v", p, next[i], got[p])
		}
	}
}

func TestIncidenceMatrix_Overlap(t *testing.T) {
	s := &analysis.Structure[string]{
		Places:      []string{"p"},
		Transitions: []string{"grow"},
		Input:       map[string]map[string]int{"grow": {"p": 2}},
		Output:      map[string]map[string]int{"grow": {"p": 5}},
	}
	m := s.IncidenceMatrix()
	if got := m.At(0, 0); got != 3 {
		t.Fatalf("incidence(grow, p) = %v, want 3", got)
	}
}
