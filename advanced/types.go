package advanced

import (
	"fmt"

	"github.com/golang/geo/r2"
)

// Points are plain values. Vertices are identified by their index into the
// mesh's coordinate array, and every Point handed out is a copy.
type Point r2.Point

type Segment struct {
	Start Point
	End   Point
}

// Barycentric weights of a point relative to the three vertices of a triangle,
// in the triangle's vertex order.
type Weights [3]float64

// The triangles visited by a search, in order. The first entry is the starting
// guess and the last is the triangle containing the query point.
type Path []int

func (p Point) Sub(q Point) Point {
	return Point(r2.Point(p).Sub(r2.Point(q)))
}

func (p Point) Add(q Point) Point {
	return Point(r2.Point(p).Add(r2.Point(q)))
}

func (p Point) Scale(k float64) Point {
	return Point(r2.Point(p).Mul(k))
}

// Z component of the 3D cross product of two vectors in the plane.
func (p Point) Cross(v Point) float64 {
	return r2.Point(p).Cross(r2.Point(v))
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

func (w Weights) Sum() float64 {
	return w[0] + w[1] + w[2]
}

// A point is inside (or on the boundary of) a triangle iff every weight lies in
// [0, 1], give or take InsideEpsilon. NaN weights, which come out of degenerate
// triangles, never pass.
func (w Weights) Inside() bool {
	for _, l := range w {
		if !(l >= -InsideEpsilon && l <= 1+InsideEpsilon) {
			return false
		}
	}
	return true
}

// Last returns the triangle the search ended in, or -1 for an empty path.
func (p Path) Last() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}
