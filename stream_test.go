package genstream

import (
	"errors"
	"strings"
	"testing"
)

// counter is the reference producer used throughout: yields 1, yields the
// sent value plus one, returns twice the second sent value.
func counter(c *Continuation[int, int, int]) {
	x := c.Yield(1)
	y := c.Yield(x + 1)
	c.Return(y * 2)
}

func TestSendBeforeNext(t *testing.T) {
	s := New(counter)

	_, err := s.Send(1)
	var misuse *MisuseError
	if !errors.As(err, &misuse) {
		t.Fatalf("expected *MisuseError, got %v", err)
	}
	if misuse.Op != "Send" {
		t.Errorf("wrong op: %q", misuse.Op)
	}

	// The violation is recoverable: the stream still works.
	if v, err := s.Next(); err != nil || v != 1 {
		t.Errorf("Next after misuse: got (%v, %v), want (1, nil)", v, err)
	}
}

func TestNextTwice(t *testing.T) {
	s := New(counter)

	if v, err := s.Next(); err != nil || v != 1 {
		t.Fatalf("first Next: got (%v, %v), want (1, nil)", v, err)
	}

	_, err := s.Next()
	var misuse *MisuseError
	if !errors.As(err, &misuse) {
		t.Fatalf("expected *MisuseError, got %v", err)
	}
	if misuse.Op != "Next" {
		t.Errorf("wrong op: %q", misuse.Op)
	}

	// Send still resumes the producer after the misuse.
	if v, err := s.Send(10); err != nil || v != 11 {
		t.Errorf("Send after misuse: got (%v, %v), want (11, nil)", v, err)
	}
}

func TestImmediateReturn(t *testing.T) {
	s := New(func(c *Continuation[int, int, string]) {
		c.Return("done")
	})

	_, err := s.Next()
	r, ok := AsEndOfStream[string](err)
	if !ok {
		t.Fatalf("expected *EndOfStream, got %v", err)
	}
	if r != "done" {
		t.Errorf("wrong return value: %q", r)
	}

	// The terminal outcome is cached and replayed on every later call.
	for i := 0; i < 3; i++ {
		_, replay := s.Send(0)
		if replay != err {
			t.Errorf("call %d: outcome not replayed: got %v, want %v", i, replay, err)
		}
		_, replay = s.Next()
		if replay != err {
			t.Errorf("call %d: Next outcome not replayed: got %v", i, replay)
		}
	}
}

func TestYieldSendRoundTrip(t *testing.T) {
	var got int
	s := New(func(c *Continuation[string, int, string]) {
		got = c.Yield("first")
		c.Yield("second")
		c.Return("end")
	})

	if v, err := s.Next(); err != nil || v != "first" {
		t.Fatalf("Next: got (%v, %v)", v, err)
	}
	if v, err := s.Send(42); err != nil || v != "second" {
		t.Fatalf("Send: got (%v, %v)", v, err)
	}
	if got != 42 {
		t.Errorf("producer saw sent value %d, want 42", got)
	}
}

func TestCounterScenario(t *testing.T) {
	s := New(counter)

	if v, err := s.Next(); err != nil || v != 1 {
		t.Fatalf("Next: got (%v, %v), want (1, nil)", v, err)
	}
	if v, err := s.Send(10); err != nil || v != 11 {
		t.Fatalf("Send(10): got (%v, %v), want (11, nil)", v, err)
	}
	_, err := s.Send(999)
	r, ok := AsEndOfStream[int](err)
	if !ok {
		t.Fatalf("expected *EndOfStream, got %v", err)
	}
	if r != 22 {
		t.Errorf("wrong final value: %d, want 22", r)
	}
}

func TestThrow(t *testing.T) {
	cause := errors.New("boom")
	s := New(func(c *Continuation[int, int, int]) {
		c.Yield(1)
		c.Throw(cause)
	})

	if _, err := s.Next(); err != nil {
		t.Fatal(err)
	}

	_, err := s.Send(0)
	var te *TerminationError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TerminationError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("termination error does not wrap the thrown failure")
	}
	if !strings.HasSuffix(te.File, "stream_test.go") || te.Line == 0 {
		t.Errorf("wrong source location: %s:%d", te.File, te.Line)
	}

	// Replays reproduce the identical record, same location included.
	_, replay := s.Next()
	if replay != err {
		t.Errorf("failure not replayed verbatim: got %v", replay)
	}
}

func TestProducerBodyExit(t *testing.T) {
	s := New(func(c *Continuation[int, int, int]) {
		c.Yield(1)
		// falls off the end without Return or Throw
	})

	if _, err := s.Next(); err != nil {
		t.Fatal(err)
	}

	_, err := s.Send(0)
	var misuse *MisuseError
	if !errors.As(err, &misuse) {
		t.Fatalf("expected *MisuseError, got %v", err)
	}

	// Terminal: later calls replay instead of deadlocking.
	if _, replay := s.Send(0); replay != err {
		t.Errorf("misuse outcome not replayed: got %v", replay)
	}
}

func TestProducerPanic(t *testing.T) {
	s := New(func(c *Continuation[int, int, int]) {
		c.Yield(1)
		panic("unexpected")
	})

	if _, err := s.Next(); err != nil {
		t.Fatal(err)
	}

	_, err := s.Send(0)
	var te *TerminationError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TerminationError, got %v", err)
	}
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("expected wrapped *PanicError, got %v", te.Err)
	}
	if pe.Value != "unexpected" {
		t.Errorf("wrong panic value: %v", pe.Value)
	}
	if !strings.Contains(pe.Stack, "goroutine") {
		t.Error("panic stack not captured")
	}
}

func TestNewPair(t *testing.T) {
	s, c := NewPair[int, int, int]()

	go func() {
		x := c.Yield(1)
		c.Return(x * 3)
	}()

	if v, err := s.Next(); err != nil || v != 1 {
		t.Fatalf("Next: got (%v, %v)", v, err)
	}
	_, err := s.Send(7)
	if r, ok := AsEndOfStream[int](err); !ok || r != 21 {
		t.Fatalf("expected EndOfStream(21), got %v", err)
	}
}

func TestPairYieldBeforeNext(t *testing.T) {
	s, c := NewPair[int, None, int]()

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Yield(5)
		c.Return(0)
	}()

	// The producer may publish before the consumer starts waiting; the
	// signal is latched, not lost.
	if v, err := s.Next(); err != nil || v != 5 {
		t.Fatalf("Next: got (%v, %v)", v, err)
	}
	if _, err := s.Send(None{}); err == nil {
		t.Fatal("expected end of stream")
	}
	<-done
}
