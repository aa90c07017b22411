package petrinet_test

import (
	"context"
	"testing"
	"time"

	petrinet "github.com/ksztenderski/PetriNet"
)

func TestNewTransition_PanicsOnBadWeight(t *testing.T) {
	cases := []struct {
		name   string
		input  map[string]int
		output map[string]int
	}{
		{"zero input weight", map[string]int{"p": 0}, nil},
		{"negative input weight", map[string]int{"p": -1}, nil},
		{"zero output weight", nil, map[string]int{"p": 0}},
		{"negative output weight", nil, map[string]int{"p": -3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("NewTransition did not panic")
				}
			}()
			petrinet.NewTransition("bad", tc.input, tc.output, nil, nil)
		})
	}
}

// TestNewTransition_CopiesArcCollections checks that a transition is
// unaffected by the caller mutating the collections it was built from.
func TestNewTransition_CopiesArcCollections(t *testing.T) {
	input := map[string]int{"p1": 1}
	output := map[string]int{"p2": 1}
	inhibitor := []string{"p3"}
	reset := []string{"p4"}

	tr := petrinet.NewTransition("move", input, output, inhibitor, reset)

	input["p1"] = 100
	output["p2"] = 100
	inhibitor[0] = "p1"
	reset[0] = "p2"

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	net := petrinet.New(map[string]int{"p1": 1, "p3": 0, "p4": 9}, false)
	if _, err := net.Fire(ctx, []*petrinet.Transition[string]{tr}); err != nil {
		t.Fatalf("fire: %v", err)
	}
	got := net.Marking()
	want := petrinet.Marking[string]{"p2": 1}
	if !equalMarking(got, want) {
		t.Fatalf("marking = %v, want %v", got, want)
	}
}
