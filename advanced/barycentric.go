package advanced

import (
	"math"

	"github.com/pkg/errors"
)

// Barycentric computes the weights of p relative to the vertices of triangle t,
// in the triangle's vertex order. The third weight is derived from the other
// two, so the weights always sum to one up to a single rounding.
//
// For a degenerate (zero area) triangle the weights are not finite.
func (m *Mesh) Barycentric(p Point, t int) (w Weights, err error) {
	defer catch(&err)
	return m.barycentric(p, t), nil
}

// Centroid of triangle t. Its weights are (1/3, 1/3, 1/3), so it is always
// strictly inside a non-degenerate triangle.
func (m *Mesh) Centroid(t int) (c Point, err error) {
	defer catch(&err)
	return m.centroid(t), nil
}

// IsInTriangle reports whether p is inside triangle t or on its boundary.
func (m *Mesh) IsInTriangle(p Point, t int) (inside bool, err error) {
	defer catch(&err)
	return m.isInTriangle(p, t), nil
}

// Interp linearly interpolates the vertex values at p. The containing triangle
// is found by searching from init; see Search for the errors this can return.
func (m *Mesh) Interp(p Point, init int) (value float64, err error) {
	path, err := m.Search(p, init)
	if err != nil {
		return math.NaN(), err
	}
	defer catch(&err)
	return m.interpIn(p, path.Last()), nil
}

// Gradient of the linear interpolant over triangle t. It is constant across
// the triangle.
func (m *Mesh) Gradient(t int) (dx, dy float64, err error) {
	defer catch(&err)
	corners := m.coordsOfTriangle(t)
	vertices := m.verticesOfTriangle(t)

	ab := corners[1].Sub(corners[0])
	ac := corners[2].Sub(corners[0])
	det := ab.Cross(ac)
	if det == 0 || math.IsNaN(det) {
		return 0, 0, errors.Wrapf(ErrDegenerateTriangle, "triangle %d", triangleStart(t))
	}

	// Solve
	//   [ ab.X ab.Y ] [dx]   [vb - va]
	//   [ ac.X ac.Y ] [dy] = [vc - va]
	db := m.values[vertices[1]] - m.values[vertices[0]]
	dc := m.values[vertices[2]] - m.values[vertices[0]]
	dx = (db*ac.Y - dc*ab.Y) / det
	dy = (dc*ab.X - db*ac.X) / det
	return dx, dy, nil
}

func (m *Mesh) barycentric(p Point, t int) Weights {
	corners := m.coordsOfTriangle(t)
	x1, y1 := corners[0].X, corners[0].Y
	x2, y2 := corners[1].X, corners[1].Y
	x3, y3 := corners[2].X, corners[2].Y
	x, y := p.X, p.Y

	invDet := 1 / ((x1-x3)*(y2-y3) - (x2-x3)*(y1-y3))
	var w Weights
	w[0] = invDet * ((y2-y3)*(x-x3) + (x3-x2)*(y-y3))
	w[1] = invDet * ((y3-y1)*(x-x3) + (x1-x3)*(y-y3))
	w[2] = 1 - w[0] - w[1]
	return w
}

func (m *Mesh) isInTriangle(p Point, t int) bool {
	return m.barycentric(p, t).Inside()
}

func (m *Mesh) centroid(t int) Point {
	var sum Point
	for _, corner := range m.coordsOfTriangle(t) {
		sum = sum.Add(corner)
	}
	return Point{X: sum.X / 3, Y: sum.Y / 3}
}

func (m *Mesh) interpIn(p Point, t int) float64 {
	w := m.barycentric(p, t)
	var out float64
	for i, v := range m.verticesOfTriangle(t) {
		out += w[i] * m.values[v]
	}
	return out
}
