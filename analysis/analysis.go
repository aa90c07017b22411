// Package analysis gives callers a linear-algebra view of a Petri net's
// structure, independent of the engine's hot firing path. It works over
// the places and transitions a caller explicitly lists, since the engine
// keeps no graph of places and transitions of its own - the caller
// supplies the arcs directly when describing the net.
package analysis

import "gonum.org/v1/gonum/mat"

// Structure is a snapshot of a net's places and transitions, used to build
// an incidence-matrix view. It does not model inhibitor or reset arcs,
// since neither has a linear effect on the marking; ApplyVector therefore
// only approximates a real Fire call for transitions that use either.
type Structure[P comparable] struct {
	Places      []P
	Transitions []string
	// Input and Output map a transition's name to its arc weights, keyed
	// by place, mirroring the engine's own Transition arc maps.
	Input  map[string]map[P]int
	Output map[string]map[P]int
}

// IncidenceMatrix returns the transitions x places matrix whose (t, p)
// entry is Output[t][p] - Input[t][p].
func (s *Structure[P]) IncidenceMatrix() *mat.Dense {
	rows := len(s.Transitions)
	cols := len(s.Places)
	data := make([]float64, rows*cols)

	placeIndex := make(map[P]int, cols)
	for j, p := range s.Places {
		placeIndex[p] = j
	}

	for i, name := range s.Transitions {
		for p, w := range s.Output[name] {
			data[i*cols+placeIndex[p]] += float64(w)
		}
		for p, w := range s.Input[name] {
			data[i*cols+placeIndex[p]] -= float64(w)
		}
	}
	return mat.NewDense(rows, cols, data)
}

// FiringVector returns the one-hot row vector selecting transition index i.
func (s *Structure[P]) FiringVector(i int) *mat.Dense {
	v := make([]float64, len(s.Transitions))
	v[i] = 1
	return mat.NewDense(1, len(s.Transitions), v)
}

// ApplyVector returns state after firing the transition selected by
// firingVector, under the linear (inhibitor/reset-free) view of firing:
// state + firingVector x IncidenceMatrix.
func (s *Structure[P]) ApplyVector(state []float64, firingVector *mat.Dense) []float64 {
	st := mat.NewDense(1, len(state), append([]float64(nil), state...))

	var delta mat.Dense
	delta.Mul(firingVector, s.IncidenceMatrix())

	var out mat.Dense
	out.Add(st, &delta)

	result := make([]float64, len(state))
	for i := range result {
		result[i] = out.At(0, i)
	}
	return result
}

// VectorIndex returns the index of p within Places, or -1 if absent. It is
// a convenience for callers translating a sparse marking into the dense
// vector basis used by IncidenceMatrix and ApplyVector.
func (s *Structure[P]) VectorIndex(p P) int {
	for i, q := range s.Places {
		if q == p {
			return i
		}
	}
	return -1
}
