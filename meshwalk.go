// Point location and linear interpolation over planar triangulations.
//
// Given a triangulated point set with a scalar value on every vertex, this
// package finds the triangle containing a query point by walking across the
// mesh from a starting guess, and interpolates the vertex values there. The
// triangulation is supplied by the caller, either as a plain triangle list or
// in the flat half-edge layout that delaunator style triangulators produce.
//
// The advanced package has the full low level API.
package meshwalk

import (
	"github.com/osuushi/meshwalk/advanced"
)

type Point = advanced.Point
type Mesh = advanced.Mesh
type Path = advanced.Path
type Weights = advanced.Weights
type Option = advanced.Option
type WalkError = advanced.WalkError

var (
	ErrDimensionMismatch = advanced.ErrDimensionMismatch
	ErrIndexOutOfRange   = advanced.ErrIndexOutOfRange
	ErrNoIntersection    = advanced.ErrNoIntersection
	ErrOutsideDomain     = advanced.ErrOutsideDomain
	ErrMalformedMesh     = advanced.ErrMalformedMesh
	ErrWalkCycle         = advanced.ErrWalkCycle
	ErrStepBudget        = advanced.ErrStepBudget
)

var (
	WithMaxSteps = advanced.WithMaxSteps
	WithTracer   = advanced.WithTracer
)

// New builds a mesh over the points given as flat x, y pairs, one value per
// point, and triangles listed as three counterclockwise vertex ids each. The
// adjacency between triangles is worked out from the shared edges.
func New(coords, values []float64, triangles []int, opts ...Option) (*Mesh, error) {
	halfedges, err := advanced.LinkHalfedges(triangles)
	if err != nil {
		return nil, err
	}
	return advanced.NewMesh(coords, values, triangles, halfedges, opts...)
}

// FromTriangulation builds a mesh over an existing triangulation whose
// adjacency is already known, such as the Triangles and Halfedges of a
// delaunator port. halfedges may be nil, in which case this is New.
func FromTriangulation(coords, values []float64, triangles, halfedges []int, opts ...Option) (*Mesh, error) {
	if halfedges == nil {
		return New(coords, values, triangles, opts...)
	}
	return advanced.NewMesh(coords, values, triangles, halfedges, opts...)
}

// Interpolate the field at every point. Points outside the mesh come back as
// NaN; see advanced.Mesh.InterpolateAll for the per-point errors.
func Interpolate(m *Mesh, points []Point) []float64 {
	samples := m.InterpolateAll(points, 0, 0)
	values := make([]float64, len(samples))
	for i, sample := range samples {
		values[i] = sample.Value
	}
	return values
}
