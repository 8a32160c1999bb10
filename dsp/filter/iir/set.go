package iir

import (
	"fmt"
	"slices"
)

// Filter is one delayed first-order section of a [Set].
type Filter struct {
	A1    complex128 // feedback (decay) coefficient, |A1| < 1 for stability
	B0    complex128 // feedforward (gain) coefficient
	Delay int        // samples from the start of the impulse response
}

// Set is a bank of first-order filters stored as three parallel slices.
//
// Sets returned by [Synthesize] have non-decreasing delays. Callers that
// build a Set by hand must keep the three slices the same length; every
// evaluator checks this with [Set.Validate].
type Set struct {
	A1    []complex128
	B0    []complex128
	Delay []int
}

// Len returns the number of filters in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.A1)
}

// Filter returns filter i.
func (s *Set) Filter(i int) Filter {
	return Filter{A1: s.A1[i], B0: s.B0[i], Delay: s.Delay[i]}
}

// Append adds one filter to the end of the set.
func (s *Set) Append(f Filter) {
	s.A1 = append(s.A1, f.A1)
	s.B0 = append(s.B0, f.B0)
	s.Delay = append(s.Delay, f.Delay)
}

// Validate reports whether the set is usable by the evaluators.
func (s *Set) Validate() error {
	if s == nil {
		return ErrNilSet
	}
	if len(s.A1) != len(s.B0) || len(s.A1) != len(s.Delay) {
		return fmt.Errorf("%w: a1=%d b0=%d delay=%d",
			ErrLengthMismatch, len(s.A1), len(s.B0), len(s.Delay))
	}
	for i, d := range s.Delay {
		if d < 0 {
			return fmt.Errorf("%w: filter %d has delay %d", ErrInvalidDelay, i, d)
		}
	}
	return nil
}

// MaxDelay returns the largest delay in the set, or -1 for an empty set.
func (s *Set) MaxDelay() int {
	if s.Len() == 0 {
		return -1
	}
	return slices.Max(s.Delay)
}

func newSet(capacity int) *Set {
	return &Set{
		A1:    make([]complex128, 0, capacity),
		B0:    make([]complex128, 0, capacity),
		Delay: make([]int, 0, capacity),
	}
}

// clip drops spare capacity left over from the growth heuristic.
func (s *Set) clip() {
	s.A1 = slices.Clip(s.A1)
	s.B0 = slices.Clip(s.B0)
	s.Delay = slices.Clip(s.Delay)
}
