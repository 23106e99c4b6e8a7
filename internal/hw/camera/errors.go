package camera

import (
	"errors"
	"fmt"
)

// Kind classifies a camera failure.
type Kind int

const (
	// KindAcquisition: the backend could not produce image bytes.
	KindAcquisition Kind = iota + 1
	// KindPersistence: bytes could not be written to the destination.
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindAcquisition:
		return "acquisition"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks against an *Error of the matching kind.
var (
	ErrAcquisition = errors.New("acquisition failed")
	ErrPersistence = errors.New("persistence failed")
)

// ErrCaptureTimeout is wrapped when a tethered capture sees no new file in time.
var ErrCaptureTimeout = errors.New("timed out waiting for image")

// Error is the only error type returned by Service implementations.
type Error struct {
	Kind Kind
	Op   string // "capture" or "save"
	Path string // source or destination, may be empty
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("camera %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("camera %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel matching e.Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrAcquisition:
		return e.Kind == KindAcquisition
	case ErrPersistence:
		return e.Kind == KindPersistence
	}
	return false
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}

func acquisitionError(path string, err error) error {
	return &Error{Kind: KindAcquisition, Op: "capture", Path: path, Err: err}
}

func persistenceError(path string, err error) error {
	return &Error{Kind: KindPersistence, Op: "save", Path: path, Err: err}
}
