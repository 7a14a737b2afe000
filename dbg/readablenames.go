package dbg

import (
	"fmt"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
)

// Triangle labels for traces and drawings. A walk across a big mesh visits
// triangles whose indices all look alike, so each triangle is given a pet name
// such as "brisk-heron" the first time it is asked about, and keeps it for the
// rest of the run. No two triangles get the same label.

type labeler struct {
	mu         sync.Mutex
	byTriangle map[int]string
	taken      map[string]struct{}
}

var labels = labeler{
	byTriangle: map[int]string{},
	taken:      map[string]struct{}{},
}

func init() {
	// Labels are handed out in order of demand, so a label means nothing in the
	// next run. Randomizing them keeps anyone from relying on it.
	petname.NonDeterministicMode()
}

// Name of the triangle containing half-edge t. Negative indices, which mark a
// missing triangle, are all named Ø.
func Name(t int) string {
	if t < 0 {
		return "Ø"
	}
	return labels.get(t - t%3)
}

func (l *labeler) get(t int) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if label, ok := l.byTriangle[t]; ok {
		return label
	}

	label := petname.Generate(2, "-")
	for tries := 1; l.isTaken(label); tries++ {
		if tries >= 8 {
			label = fmt.Sprintf("%s-%d", label, t)
			break
		}
		label = petname.Generate(2, "-")
	}
	l.byTriangle[t] = label
	l.taken[label] = struct{}{}
	return label
}

func (l *labeler) isTaken(label string) bool {
	_, ok := l.taken[label]
	return ok
}
