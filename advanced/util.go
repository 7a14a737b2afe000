package advanced

import "math"

// Two direction vectors are treated as parallel when the magnitude of their
// cross product is below this. It only guards the division in Intersect.
const ParallelEpsilon = 1e-15

// Weights within this of [0, 1] still count as inside. A point on an edge or at
// a vertex rarely gets weights of exactly 0 and 1 once its coordinates have
// been rounded.
const InsideEpsilon = 1e-12

// Tolerance for comparisons in tests and for callers checking weight sums.
const Tolerance = 1e-9

func Equal(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// Half-edges are stored in groups of three, one group per triangle. This gives
// the index of the first half-edge of the group containing e, which is also how
// triangles are indexed.
func triangleStart(e int) int {
	return e - e%3
}

// The half-edge following e inside its own triangle, wrapping from the third
// edge back to the first.
func nextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}
