package advanced

// Tracer is notified as a search walks across the mesh. The dbg package has an
// implementation that prints each step.
type Tracer interface {
	// Step is called after the walk crosses edge out of triangle from into
	// triangle to.
	Step(from, edge, to int)
	// Found is called when the search stops in the containing triangle.
	Found(t int, weights Weights)
}

type Options struct {
	// Maximum number of walk steps a single search may take. Zero means one per
	// triangle, which is enough for any walk that does not revisit a triangle.
	MaxSteps int
	Tracer   Tracer
}

type Option func(*Options)

func WithMaxSteps(n int) Option {
	return func(o *Options) {
		o.MaxSteps = n
	}
}

func WithTracer(t Tracer) Option {
	return func(o *Options) {
		o.Tracer = t
	}
}

func newOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
