package advanced

import (
	"math"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Sample is the outcome of interpolating one point of a batch.
type Sample struct {
	Value    float64
	Triangle int
	Err      error
}

// Consecutive points are handed to the same worker in chunks of this size, so
// each walk can start from where the previous one ended.
const batchChunkSize = 64

// InterpolateAll interpolates every point using a pool of workers, which is
// safe because the mesh is never modified. Within a chunk of nearby input
// points, each search starts from the triangle the previous one found, which
// is usually adjacent when the points are ordered along a path or a grid row.
// The first search of a chunk, and any search following a failure, starts
// from init.
//
// Failures are reported per sample with a NaN value; they never stop the
// batch. workers <= 0 means one per CPU.
func (m *Mesh) InterpolateAll(points []Point, init int, workers int) []Sample {
	samples := make([]Sample, len(points))
	if len(points) == 0 {
		return samples
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(points); start += batchChunkSize {
		start := start
		end := start + batchChunkSize
		if end > len(points) {
			end = len(points)
		}
		g.Go(func() error {
			m.interpolateChunk(points[start:end], samples[start:end], init)
			return nil
		})
	}
	// Failures are recorded in the samples, so there is never a group error
	g.Wait()
	return samples
}

func (m *Mesh) interpolateChunk(points []Point, out []Sample, init int) {
	guess := init
	for i, p := range points {
		t, err := m.Locate(p, guess)
		if err != nil {
			out[i] = Sample{Value: math.NaN(), Triangle: -1, Err: errors.WithMessagef(err, "sample %v", p)}
			guess = init
			continue
		}
		out[i] = Sample{Value: m.interpIn(p, t), Triangle: t}
		guess = t
	}
}
