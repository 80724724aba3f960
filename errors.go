package genstream

import (
	"errors"
	"fmt"
	"runtime"
)

// EndOfStream is the error reported by Next and Send once the producer has
// terminated normally. It carries the producer's final return value and is
// an expected terminal signal, not a fault.
type EndOfStream[R any] struct {
	// Value is the value the producer passed to Return.
	Value R
}

func (e *EndOfStream[R]) Error() string {
	return fmt.Sprintf("genstream: end of stream (returned %v)", e.Value)
}

// AsEndOfStream extracts the final return value from an error produced by a
// terminated stream. It reports false if err does not carry an
// *EndOfStream[R].
func AsEndOfStream[R any](err error) (R, bool) {
	var e *EndOfStream[R]
	if errors.As(err, &e) {
		return e.Value, true
	}
	var zero R
	return zero, false
}

// MisuseError reports a protocol violation by the consumer: calling Send
// before the first Next, calling Next on a stream that already started, or
// observing a producer that exited its body without calling Return or Throw.
// It is recoverable; the stream is unaffected unless the violation was
// produced by the producer exiting early, in which case it is terminal.
type MisuseError struct {
	// Op is the operation that detected the violation, "Next" or "Send".
	Op string

	// Reason describes the violation.
	Reason string
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("genstream: %s: %s", e.Op, e.Reason)
}

// TerminationError wraps a failure that crossed the producer/consumer
// boundary, either raised deliberately through Throw or escaping the
// producer body as a panic. It records the source location of the Throw
// call site so the failure can be attributed to a specific producer.
type TerminationError struct {
	// Err is the failure the producer terminated with.
	Err error

	// File, Function and Line identify the Throw call site. They are zero
	// when the failure escaped the producer body as a panic; the panic
	// location is then part of the wrapped *PanicError stack.
	File     string
	Function string
	Line     int
}

func (e *TerminationError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("genstream: producer failed: %v", e.Err)
	}
	return fmt.Sprintf("genstream: producer failed at %s:%d (%s): %v", e.File, e.Line, e.Function, e.Err)
}

func (e *TerminationError) Unwrap() error { return e.Err }

// newTermination wraps err in a *TerminationError capturing the caller
// identified by skip. An error that already carries a *TerminationError is
// reused verbatim, never re-wrapped.
func newTermination(err error, skip int) *TerminationError {
	var te *TerminationError
	if errors.As(err, &te) {
		return te
	}
	te = &TerminationError{Err: err}
	if pc, file, line, ok := runtime.Caller(skip); ok {
		te.File = file
		te.Line = line
		if fn := runtime.FuncForPC(pc); fn != nil {
			te.Function = fn.Name()
		}
	}
	return te
}

// PanicError wraps a panic value recovered from the producer goroutine
// together with the goroutine stack captured at the point of the panic.
type PanicError struct {
	// Value is the original value passed to panic().
	Value any

	// Stack is the producer goroutine stack trace at the point of panic.
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", e.Value, e.Stack)
}

func newPanicError(v any) *PanicError {
	// runtime.Stack truncates gracefully if the buffer is too small.
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{
		Value: v,
		Stack: string(buf[:n]),
	}
}

// contractViolation is the panic value raised for producer-side protocol
// violations. The producer goroutine wrapper re-raises it instead of
// converting it into a stream failure: it marks a programming defect, not a
// recoverable condition.
type contractViolation string

func (v contractViolation) String() string { return string(v) }
