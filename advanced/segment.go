package advanced

import "math"

func (s Segment) Direction() Point {
	return s.End.Sub(s.Start)
}

func (s Segment) Parallel(o Segment) bool {
	return math.Abs(s.Direction().Cross(o.Direction())) < ParallelEpsilon
}

// Signed area of the triangle formed by the segment and c. Positive when c is
// left of the segment (walking from Start to End), negative when it is right.
func (s Segment) SignedArea(c Point) float64 {
	return s.Direction().Cross(c.Sub(s.Start)) / 2
}

// Intersect finds where the infinite lines through the two segments meet,
// expressed in the parametric basis of each segment: the intersection is
// s.Start + a*(s.End-s.Start) and also o.Start + b*(o.End-o.Start). Parallel
// lines have no well defined answer, so both parameters come back NaN.
func (s Segment) Intersect(o Segment) (a, b float64) {
	if s.Parallel(o) {
		return math.NaN(), math.NaN()
	}
	dirA := s.Direction()
	dirB := o.Start.Sub(o.End) // reversed, so the system is solved with Cramer's rule directly
	denom := 1 / dirA.Cross(dirB)
	heads := s.Start.Sub(o.Start)
	a = dirB.Cross(heads) * denom
	b = heads.Cross(dirA) * denom
	return a, b
}

// Whether the two segments properly cross. Touching at an endpoint does not
// count, and neither do parallel segments (NaN fails every comparison).
func (s Segment) IsCross(o Segment) bool {
	a, b := s.Intersect(o)
	return a > 0 && a < 1 && b > 0 && b < 1
}

// Touches is IsCross with the endpoints of o included. A ray that passes
// exactly through a vertex of a triangle touches both edges meeting there while
// properly crossing neither of them.
func (s Segment) Touches(o Segment) bool {
	a, b := s.Intersect(o)
	return a > 0 && a < 1 && b >= 0 && b <= 1
}
