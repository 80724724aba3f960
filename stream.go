package genstream

// Stream is the consumer-facing handle of a generator. The consumer drives
// the producer with Next and Send, receiving yielded values until the
// producer terminates.
//
// A stream is single-use and single-consumer: it is driven by one goroutine
// at a time and is never restarted after termination.
type Stream[Y, S, R any] struct {
	cont *Continuation[Y, S, R]

	// fn is the producer routine, launched exactly once on the first Next.
	// It is nil for streams built with NewPair, whose producer is driven
	// externally.
	fn func(*Continuation[Y, S, R])

	started bool

	// Once the producer reaches a terminal state the outcome is cached here
	// and replayed identically on every subsequent call, so the producer is
	// never re-entered.
	done    bool
	outcome error
}

// New returns a stream whose producer is f. The function runs exactly once,
// on its own goroutine, starting lazily when Next is first called; it must
// terminate through its continuation with Return or Throw.
func New[Y, S, R any](f func(*Continuation[Y, S, R])) *Stream[Y, S, R] {
	s, _ := NewPair[Y, S, R]()
	s.fn = f
	return s
}

// NewPair returns a stream and its continuation directly, without a producer
// closure, for cases where the producer logic is driven externally. The
// caller is responsible for invoking the continuation methods from a
// goroutine other than the one driving the stream.
func NewPair[Y, S, R any]() (*Stream[Y, S, R], *Continuation[Y, S, R]) {
	c := &Continuation[Y, S, R]{
		yieldSig: make(chan struct{}, 1),
		sendSig:  make(chan struct{}, 1),
	}
	return &Stream[Y, S, R]{cont: c}, c
}

// Next starts the stream and blocks until the producer yields or terminates.
// It returns the first yielded value, or the terminal outcome as an error:
// *EndOfStream[R] on normal termination, the producer's *TerminationError on
// failure. Calling Next on a stream that already started is a consumer
// protocol violation reported as *MisuseError; an active stream is resumed
// with Send, not Next.
func (s *Stream[Y, S, R]) Next() (Y, error) {
	var zero Y
	if s.done {
		return zero, s.outcome
	}
	if s.started {
		return zero, &MisuseError{Op: "Next", Reason: "stream already started, use Send to resume"}
	}
	s.started = true
	if s.fn != nil {
		go s.produce()
	}
	return s.wait("Next")
}

// Send resumes the producer suspended in Yield, handing it v, and blocks
// until the next yield or termination. It resolves exactly like Next.
// Calling Send before the first Next is reported as *MisuseError.
func (s *Stream[Y, S, R]) Send(v S) (Y, error) {
	var zero Y
	if s.done {
		return zero, s.outcome
	}
	if !s.started {
		return zero, &MisuseError{Op: "Send", Reason: "stream not started, call Next first"}
	}
	c := s.cont
	c.sent = v
	c.kind = stateSent
	c.sendSig <- struct{}{}
	return s.wait("Send")
}

// wait blocks on the yield signal and resolves the state the producer left
// behind. The baton is with the consumer from the moment the signal is
// consumed until the next Send.
func (s *Stream[Y, S, R]) wait(op string) (Y, error) {
	c := s.cont
	<-c.yieldSig
	var zero Y
	switch c.kind {
	case stateYielded:
		c.kind = stateWaitingForSend
		return c.yielded, nil
	case stateFinished:
		s.done = true
		s.outcome = &EndOfStream[R]{Value: c.result}
		return zero, s.outcome
	case stateErrored:
		s.done = true
		s.outcome = c.err
		return zero, s.outcome
	default:
		// The producer body returned without Yield, Return or Throw.
		s.done = true
		s.outcome = &MisuseError{Op: op, Reason: "producer returned without calling Yield, Return or Throw"}
		return zero, s.outcome
	}
}

// produce runs the producer routine and normalizes how it leaves the stream:
// a body that returns without a terminal call wakes the consumer into a
// misuse report, and a panic escaping the body is captured with its stack
// and surfaced as a termination failure. Contract-violation panics, and
// panics raised after the stream already terminated, are re-raised.
func (s *Stream[Y, S, R]) produce() {
	c := s.cont
	defer func() {
		r := recover()
		if r == nil {
			if !c.finished {
				c.exited()
			}
			return
		}
		if _, ok := r.(contractViolation); ok {
			panic(r)
		}
		if c.finished {
			panic(r)
		}
		c.terminate(&TerminationError{Err: newPanicError(r)})
	}()
	s.fn(c)
}
