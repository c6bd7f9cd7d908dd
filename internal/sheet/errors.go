package sheet

import (
	"errors"
	"fmt"
)

// Kind classifies sink failures.
type Kind int

const (
	// Transient failures (rate limiting, temporary unreachability) may clear on retry.
	Transient Kind = iota
	// Fatal failures (authentication, permissions, bad target) will not self-heal.
	Fatal
)

func (k Kind) String() string {
	switch k {
	case Transient:
		return "transient"
	case Fatal:
		return "fatal"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// SinkError wraps a sink failure with its classification.
type SinkError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("sink %s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

// NewTransient wraps err as a transient sink failure.
func NewTransient(op string, err error) error {
	return &SinkError{Kind: Transient, Op: op, Err: err}
}

// NewFatal wraps err as a fatal sink failure.
func NewFatal(op string, err error) error {
	return &SinkError{Kind: Fatal, Op: op, Err: err}
}

// IsFatal reports whether err carries a fatal SinkError.
func IsFatal(err error) bool {
	var se *SinkError
	return errors.As(err, &se) && se.Kind == Fatal
}

// IsSinkError reports whether err is (or wraps) a SinkError.
func IsSinkError(err error) bool {
	var se *SinkError
	return errors.As(err, &se)
}
