package advanced

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

const noHalfedge = -1

// Mesh is a triangulated point set with a scalar value on every vertex, stored
// in the flat half-edge layout produced by delaunator style triangulators:
//
//	coords:    x0, y0, x1, y1, ...            (two per vertex)
//	values:    v0, v1, ...                    (one per vertex)
//	triangles: vertex ids, three per triangle (half-edge e starts at vertex triangles[e])
//	halfedges: opposite half-edge of each half-edge, if there is one
//
// A triangle is identified by the index of its first half-edge, so triangle
// indices are multiples of three. Any index inside a triangle's group is
// accepted and normalized.
//
// A Mesh never changes after NewMesh returns, so any number of goroutines may
// query it at once.
type Mesh struct {
	coords    []float64
	values    []float64
	triangles []int
	halfedges []int
	options   Options
}

// NewMesh validates the arrays and takes a private copy of them. Negative
// entries in halfedges mark boundary edges.
func NewMesh(coords, values []float64, triangles, halfedges []int, opts ...Option) (*Mesh, error) {
	if len(coords)%2 != 0 {
		return nil, errors.Wrapf(ErrDimensionMismatch, "odd number of coordinates (%d)", len(coords))
	}
	if len(coords)/2 != len(values) {
		return nil, errors.Wrapf(ErrDimensionMismatch, "found %d values for %d pairs of coordinates", len(values), len(coords)/2)
	}
	if len(triangles)%3 != 0 {
		return nil, errors.Wrapf(ErrMalformedMesh, "triangle array length %d is not a multiple of 3", len(triangles))
	}
	if len(halfedges) != len(triangles) {
		return nil, errors.Wrapf(ErrMalformedMesh, "%d half-edges for %d triangle corners", len(halfedges), len(triangles))
	}

	m := &Mesh{
		coords:    append([]float64(nil), coords...),
		values:    append([]float64(nil), values...),
		triangles: append([]int(nil), triangles...),
		halfedges: make([]int, len(halfedges)),
		options:   newOptions(opts),
	}

	for e, v := range m.triangles {
		if v < 0 || v >= len(m.values) {
			return nil, errors.Wrapf(ErrIndexOutOfRange, "half-edge %d starts at vertex %d of %d", e, v, len(m.values))
		}
	}

	for e, opposite := range halfedges {
		if opposite < 0 {
			m.halfedges[e] = noHalfedge
			continue
		}
		if opposite >= len(halfedges) {
			return nil, errors.Wrapf(ErrIndexOutOfRange, "half-edge %d has opposite %d of %d", e, opposite, len(halfedges))
		}
		m.halfedges[e] = opposite
	}

	// Every opposite relationship must be reflexive, or walking across an edge
	// and back would land somewhere else.
	for e, opposite := range m.halfedges {
		if opposite == noHalfedge {
			continue
		}
		if m.halfedges[opposite] != e {
			return nil, errors.Wrapf(ErrMalformedMesh, "half-edge %d has opposite %d, whose opposite is %d", e, opposite, m.halfedges[opposite])
		}
	}

	return m, nil
}

// LinkHalfedges derives the opposite array for a triangle list that does not
// come with one. Two half-edges are opposite when they join the same pair of
// vertices in reverse directions. The same directed edge appearing twice means
// the triangles overlap or are wound inconsistently.
func LinkHalfedges(triangles []int) ([]int, error) {
	if len(triangles)%3 != 0 {
		return nil, errors.Wrapf(ErrMalformedMesh, "triangle array length %d is not a multiple of 3", len(triangles))
	}
	type directedEdge struct{ from, to int }

	halfedges := make([]int, len(triangles))
	seen := make(map[directedEdge]int, len(triangles))
	for e := range triangles {
		halfedges[e] = noHalfedge
		key := directedEdge{triangles[e], triangles[nextHalfedge(e)]}
		if other, ok := seen[key]; ok {
			return nil, errors.Wrapf(ErrMalformedMesh, "half-edges %d and %d both run from vertex %d to %d", other, e, key.from, key.to)
		}
		seen[key] = e
	}
	for e := range triangles {
		reverse := directedEdge{triangles[nextHalfedge(e)], triangles[e]}
		if opposite, ok := seen[reverse]; ok {
			halfedges[e] = opposite
		}
	}
	return halfedges, nil
}

// Number of vertices.
func (m *Mesh) Size() int {
	return len(m.values)
}

func (m *Mesh) NumTriangles() int {
	return len(m.triangles) / 3
}

func (m *Mesh) NumHalfedges() int {
	return len(m.triangles)
}

func (m *Mesh) Options() Options {
	return m.options
}

// Bounds is the axis aligned bounding box of every vertex.
func (m *Mesh) Bounds() r2.Rect {
	rect := r2.EmptyRect()
	for i := 0; i < m.Size(); i++ {
		rect = rect.AddPoint(r2.Point(m.vertex(i)))
	}
	return rect
}

func (m *Mesh) Vertex(i int) (p Point, err error) {
	defer catch(&err)
	m.checkVertex(i)
	return m.vertex(i), nil
}

func (m *Mesh) Value(i int) (v float64, err error) {
	defer catch(&err)
	m.checkVertex(i)
	return m.values[i], nil
}

func (m *Mesh) EdgesOfTriangle(t int) (edges [3]int, err error) {
	defer catch(&err)
	return m.edgesOfTriangle(t), nil
}

// PointsOfTriangle gives, for each vertex of the triangle, the index of its x
// and y coordinate in the flat coordinate array.
func (m *Mesh) PointsOfTriangle(t int) (indices [6]int, err error) {
	defer catch(&err)
	return m.pointsOfTriangle(t), nil
}

func (m *Mesh) VerticesOfTriangle(t int) (vertices [3]int, err error) {
	defer catch(&err)
	return m.verticesOfTriangle(t), nil
}

func (m *Mesh) TriangleOfEdge(e int) (t int, err error) {
	defer catch(&err)
	m.checkEdge(e)
	return triangleStart(e), nil
}

func (m *Mesh) CoordsOfTriangle(t int) (points [3]Point, err error) {
	defer catch(&err)
	return m.coordsOfTriangle(t), nil
}

// EdgeToSegment gives the segment from the vertex half-edge e starts at to the
// vertex it ends at.
func (m *Mesh) EdgeToSegment(e int) (s Segment, err error) {
	defer catch(&err)
	return m.edgeToSegment(e), nil
}

// Opposite gives the half-edge running the other way along e in the adjacent
// triangle. ok is false for boundary edges.
func (m *Mesh) Opposite(e int) (opposite int, ok bool, err error) {
	defer catch(&err)
	opposite, ok = m.opposite(e)
	return opposite, ok, nil
}

func (m *Mesh) IsBoundary(e int) (boundary bool, err error) {
	defer catch(&err)
	_, ok := m.opposite(e)
	return !ok, nil
}

// NeighborTriangle gives the triangle on the other side of e. ok is false when
// e is on the boundary of the mesh.
func (m *Mesh) NeighborTriangle(e int) (t int, ok bool, err error) {
	defer catch(&err)
	opposite, ok := m.opposite(e)
	if !ok {
		return 0, false, nil
	}
	return triangleStart(opposite), true, nil
}

// The unexported accessors below throw instead of returning errors. They are
// only reached through exported methods that catch.

func (m *Mesh) checkTriangle(t int) {
	if t < 0 || t >= len(m.triangles) {
		throwf(ErrIndexOutOfRange, "triangle %d (mesh has %d half-edges)", t, len(m.triangles))
	}
}

func (m *Mesh) checkEdge(e int) {
	if e < 0 || e >= len(m.halfedges) {
		throwf(ErrIndexOutOfRange, "half-edge %d (mesh has %d half-edges)", e, len(m.halfedges))
	}
}

func (m *Mesh) checkVertex(i int) {
	if i < 0 || i >= len(m.values) {
		throwf(ErrIndexOutOfRange, "vertex %d (mesh has %d vertices)", i, len(m.values))
	}
}

func (m *Mesh) vertex(i int) Point {
	return Point{X: m.coords[2*i], Y: m.coords[2*i+1]}
}

func (m *Mesh) edgesOfTriangle(t int) [3]int {
	m.checkTriangle(t)
	t = triangleStart(t)
	return [3]int{t, t + 1, t + 2}
}

func (m *Mesh) pointsOfTriangle(t int) [6]int {
	var out [6]int
	for i, v := range m.verticesOfTriangle(t) {
		out[2*i] = 2 * v
		out[2*i+1] = 2*v + 1
	}
	return out
}

func (m *Mesh) verticesOfTriangle(t int) [3]int {
	var out [3]int
	for i, e := range m.edgesOfTriangle(t) {
		out[i] = m.triangles[e]
	}
	return out
}

func (m *Mesh) coordsOfTriangle(t int) [3]Point {
	var out [3]Point
	for i, v := range m.verticesOfTriangle(t) {
		out[i] = m.vertex(v)
	}
	return out
}

func (m *Mesh) opposite(e int) (int, bool) {
	m.checkEdge(e)
	opposite := m.halfedges[e]
	if opposite == noHalfedge {
		return 0, false
	}
	return opposite, true
}

func (m *Mesh) edgeToSegment(e int) Segment {
	m.checkEdge(e)
	start := m.triangles[e]
	var end int
	if opposite, ok := m.opposite(e); ok {
		// The opposite half-edge starts where this one ends
		end = m.triangles[opposite]
	} else {
		// No opposite triangle, so look for the start of the next half-edge
		end = m.triangles[nextHalfedge(e)]
	}
	return Segment{Start: m.vertex(start), End: m.vertex(end)}
}
