package advanced

import (
	"fmt"

	"github.com/pkg/errors"
)

// Walking a mesh touches the topology arrays through several layers of small
// accessors. Threading an error out of every one of them would bury the
// algorithm, so the internals panic with a meshError and every exported entry
// point recovers it into an ordinary returned error.

var (
	ErrDimensionMismatch  = errors.New("coordinates and values dimension mismatch")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrNoIntersection     = errors.New("no intersection found with current triangle")
	ErrOutsideDomain      = errors.New("search target point is outside domain")
	ErrMalformedMesh      = errors.New("malformed mesh")
	ErrWalkCycle          = errors.New("walk revisited a triangle")
	ErrStepBudget         = errors.New("walk step budget exhausted")
	ErrDegenerateTriangle = errors.New("degenerate triangle")
)

// WalkError reports a failed walk step along with where it happened.
type WalkError struct {
	Err      error
	Triangle int
	Point    Point
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("%v (triangle %d, point %v)", e.Err, e.Triangle, e.Point)
}

func (e *WalkError) Unwrap() error { return e.Err }

// Cause lets errors.Cause see through to the error kind.
func (e *WalkError) Cause() error { return e.Err }

type meshError struct {
	err error
}

func throw(err error) {
	panic(meshError{err})
}

// Panic with one of the error kinds above, annotated with a message.
func throwf(kind error, format string, args ...interface{}) {
	throw(errors.Wrapf(kind, format, args...))
}

// Convert a recovered meshError back into an error. Anything else was a real
// panic and keeps unwinding.
func HandleMeshPanicRecover(r interface{}) error {
	if r != nil {
		if e, ok := r.(meshError); ok {
			return e.err
		}
		panic(r)
	}
	return nil
}

// Deferred by exported methods so that a throw becomes their error result.
func catch(err *error) {
	if recovered := HandleMeshPanicRecover(recover()); recovered != nil {
		*err = recovered
	}
}
