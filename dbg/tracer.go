package dbg

import (
	"fmt"
	"io"
	"sync"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/meshwalk/advanced"
)

// Tracer prints every triangle a search visits. Pass it to a mesh with
// advanced.WithTracer.
type Tracer struct {
	mu  sync.Mutex
	w   io.Writer
	au  aurora.Aurora
	hit int
}

var _ advanced.Tracer = (*Tracer)(nil)

// NewTracer writes to w, with ANSI colors if color is set.
func NewTracer(w io.Writer, color bool) *Tracer {
	return &Tracer{w: w, au: aurora.NewAurora(color)}
}

func (t *Tracer) Step(from, edge, to int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "%s %s %s\n",
		t.au.Cyan(fmt.Sprintf("%s(%d)", Name(from), from)),
		t.au.Faint(fmt.Sprintf("-[%d]->", edge)),
		t.au.Cyan(fmt.Sprintf("%s(%d)", Name(to), to)),
	)
}

func (t *Tracer) Found(tri int, weights advanced.Weights) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hit++
	fmt.Fprintf(t.w, "%s %s weights (%.4f, %.4f, %.4f)\n",
		t.au.Green("found"),
		t.au.Green(fmt.Sprintf("%s(%d)", Name(tri), tri)),
		weights[0], weights[1], weights[2],
	)
}

// Number of searches that have found their triangle.
func (t *Tracer) Hits() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hit
}
