package advanced

// Point location by walking. Starting from a guess, we draw a segment from the
// query point to the centroid of the current triangle. Since the centroid is
// inside the triangle, if the query point is outside, that segment leaves the
// triangle through exactly one edge, and the triangle across that edge is one
// step closer along the straight line to the query point. Repeat until the
// point is inside.
//
// Floating point makes "exactly one edge" a hope rather than a guarantee, so:
//
//  1. If several edges report a proper crossing, the one whose crossing is
//     closest to the centroid wins, since that is where the segment first
//     leaves the triangle. Exact ties go to the lowest edge index.
//  2. If none do, the segment may pass exactly through a vertex, where it only
//     touches the two edges meeting there. The same selection is then made with
//     the endpoints of the edges included.
//  3. Rounding can also put the segment a hair to one side of that vertex,
//     so that it misses both edges even with their endpoints. The walk then
//     leaves through the edge that p is furthest beyond, going by the most
//     negative barycentric weight. Some weight is negative whenever p is not
//     inside, so this always finds an edge.
//
// Walks on a well formed mesh never revisit a triangle, so a revisit is
// reported as an error rather than followed around in a loop.

// Search walks from init to the triangle containing p and returns every
// triangle visited on the way, starting with init. On failure the path walked
// so far is returned along with the error.
func (m *Mesh) Search(p Point, init int) (path Path, err error) {
	defer catch(&err)
	m.checkTriangle(init)

	budget := m.options.MaxSteps
	if budget <= 0 {
		budget = m.NumTriangles()
	}

	path = Path{init}
	current := triangleStart(init)
	visited := map[int]struct{}{current: {}}
	for {
		w := m.barycentric(p, current)
		if w.Inside() {
			if m.options.Tracer != nil {
				m.options.Tracer.Found(current, w)
			}
			return path, nil
		}
		if len(path) > budget {
			throw(&WalkError{Err: ErrStepBudget, Triangle: current, Point: p})
		}

		edge, next := m.step(p, current)
		if m.options.Tracer != nil {
			m.options.Tracer.Step(current, edge, next)
		}
		if _, ok := visited[next]; ok {
			throw(&WalkError{Err: ErrWalkCycle, Triangle: next, Point: p})
		}
		visited[next] = struct{}{}
		path = append(path, next)
		current = next
	}
}

// Locate is Search when only the containing triangle matters.
func (m *Mesh) Locate(p Point, init int) (int, error) {
	path, err := m.Search(p, init)
	if err != nil {
		return 0, err
	}
	return path.Last(), nil
}

// Walk takes a single step from triangle t towards p, returning the adjacent
// triangle to move to.
func (m *Mesh) Walk(p Point, t int) (next int, err error) {
	defer catch(&err)
	_, next = m.step(p, t)
	return next, nil
}

func (m *Mesh) step(p Point, t int) (edge, next int) {
	t = triangleStart(t)
	query := Segment{Start: p, End: m.centroid(t)}

	edge, ok := m.exitEdge(query, t, Segment.IsCross)
	if !ok {
		edge, ok = m.exitEdge(query, t, Segment.Touches)
	}
	if !ok {
		edge, ok = m.facingEdge(p, t)
	}
	if !ok {
		throw(&WalkError{Err: ErrNoIntersection, Triangle: t, Point: p})
	}

	opposite, ok := m.opposite(edge)
	if !ok {
		throw(&WalkError{Err: ErrOutsideDomain, Triangle: t, Point: p})
	}
	return edge, triangleStart(opposite)
}

// Find the edge of t that the query segment leaves through, according to the
// given crossing test. Among several candidates the crossing furthest along
// the query segment, i.e. nearest the centroid, wins.
func (m *Mesh) exitEdge(query Segment, t int, crosses func(Segment, Segment) bool) (int, bool) {
	best := -1
	var bestS float64
	for _, e := range m.edgesOfTriangle(t) {
		edge := m.edgeToSegment(e)
		if !crosses(query, edge) {
			continue
		}
		s, _ := query.Intersect(edge)
		if best == -1 || s > bestS {
			best = e
			bestS = s
		}
	}
	return best, best != -1
}

// The edge of t that p lies beyond, i.e. the one opposite the corner with the
// most negative weight. Edge t+i runs from corner i to corner i+1, so corner i
// faces edge t+(i+1)%3.
func (m *Mesh) facingEdge(p Point, t int) (int, bool) {
	w := m.barycentric(p, t)
	corner := -1
	for i, l := range w {
		if l < 0 && (corner == -1 || l < w[corner]) {
			corner = i
		}
	}
	if corner == -1 {
		return -1, false
	}
	return t + (corner+1)%3, true
}
