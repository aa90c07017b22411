package petrinet

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Marking is a sparse mapping from a place identifier to its token count.
//
// Invariant: no key is ever present with a value <= 0. A place absent from
// the map holds zero tokens. Every exported operation that mutates a
// Marking re-establishes this invariant before returning.
type Marking[P comparable] map[P]int

// newMarking copies src, dropping any non-positive entries so the result
// satisfies the sparse invariant regardless of what the caller handed in.
func newMarking[P comparable](src map[P]int) Marking[P] {
	m := make(Marking[P], len(src))
	for p, w := range src {
		if w > 0 {
			m[p] = w
		}
	}
	return m
}

// get returns the token count of p, or 0 if p is absent.
func (m Marking[P]) get(p P) int {
	return m[p]
}

// add applies delta to p's count, removing the key if the result is not
// strictly positive.
func (m Marking[P]) add(p P, delta int) {
	v := m[p] + delta
	if v > 0 {
		m[p] = v
	} else {
		delete(m, p)
	}
}

// zero removes p from the marking regardless of its current count.
func (m Marking[P]) zero(p P) {
	delete(m, p)
}

// snapshot returns an independent copy of m.
func (m Marking[P]) snapshot() Marking[P] {
	cp := make(Marking[P], len(m))
	for p, w := range m {
		cp[p] = w
	}
	return cp
}

// key returns a canonical string encoding of the marking, suitable for use
// as a map key when de-duplicating markings during reachability exploration.
// Two sparse markings are equal iff they produce the same key.
//
// The encoding sorts by the string form of each place so the result is
// independent of map iteration order.
func (m Marking[P]) key() string {
	type entry struct {
		p P
		w int
	}
	entries := make([]entry, 0, len(m))
	for p, w := range m {
		entries = append(entries, entry{p, w})
	}
	sort.Slice(entries, func(i, j int) bool {
		return placeString(entries[i].p) < placeString(entries[j].p)
	})
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(placeString(e.p))
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(e.w))
		b.WriteByte(';')
	}
	return b.String()
}

// placeString renders a place identifier for use in the reachability key
// and in log fields. P is only required to be comparable, not Stringer, so
// this falls back to a generic "%v" formatting.
func placeString[P comparable](p P) string {
	if s, ok := any(p).(string); ok {
		return s
	}
	if s, ok := any(p).(interface{ String() string }); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", p)
}
