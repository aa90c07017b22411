package petrinet

import "fmt"

// Transition describes one transition's four arc sets. A Transition is
// immutable after construction, so a single value may be shared by many
// goroutines and referenced by identity: Fire returns the exact descriptor
// the caller passed in, not a reconstructed equivalent, so callers can tell
// which transition "won" a Fire call with a pointer comparison.
type Transition[P comparable] struct {
	// Name identifies the transition for logging only; it does not
	// participate in any enabling or firing predicate.
	Name string

	input     map[P]int
	output    map[P]int
	inhibitor map[P]struct{}
	reset     map[P]struct{}
}

// NewTransition builds an immutable transition descriptor. input and output
// map a place to the weight of the arc connecting it to this transition;
// inhibitor and reset list places connected by inhibitor and reset arcs
// respectively. All four collections are copied, so later mutation of the
// slices/maps passed in has no effect on the returned Transition.
//
// NewTransition panics if any input or output weight is below 1 — a weight
// of zero or less is a net-design bug, not a condition the engine recovers
// from at run time.
func NewTransition[P comparable](name string, input, output map[P]int, inhibitor, reset []P) *Transition[P] {
	t := &Transition[P]{
		Name:      name,
		input:     make(map[P]int, len(input)),
		output:    make(map[P]int, len(output)),
		inhibitor: make(map[P]struct{}, len(inhibitor)),
		reset:     make(map[P]struct{}, len(reset)),
	}
	for p, w := range input {
		if w < 1 {
			panic(fmt.Sprintf("petrinet: transition %q: input weight for place %v must be >= 1, got %d", name, p, w))
		}
		t.input[p] = w
	}
	for p, w := range output {
		if w < 1 {
			panic(fmt.Sprintf("petrinet: transition %q: output weight for place %v must be >= 1, got %d", name, p, w))
		}
		t.output[p] = w
	}
	for _, p := range inhibitor {
		t.inhibitor[p] = struct{}{}
	}
	for _, p := range reset {
		t.reset[p] = struct{}{}
	}
	return t
}

func (t *Transition[P]) String() string {
	if t.Name != "" {
		return t.Name
	}
	return "<unnamed transition>"
}

// enabled reports whether t may fire against marking m. The reset set is
// deliberately excluded: it never participates in enabling.
func (t *Transition[P]) enabled(m Marking[P]) bool {
	for p, w := range t.input {
		if m.get(p) < w {
			return false
		}
	}
	for p := range t.inhibitor {
		if m.get(p) != 0 {
			return false
		}
	}
	return true
}

// fire applies t's effect to m in place, assuming t.enabled(m) already
// holds. Inputs are consumed before outputs are produced, so a place
// appearing in both sets nets to output-input; reset is applied after
// output, so a place in both output and reset ends the firing at zero.
func (t *Transition[P]) fire(m Marking[P]) {
	for p, w := range t.input {
		m.add(p, -w)
	}
	for p, w := range t.output {
		m.add(p, w)
	}
	for p := range t.reset {
		m.zero(p)
	}
}
