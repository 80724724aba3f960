package genstream

// stateKind identifies which variant of the continuation mailbox is active.
// Transitions follow a strict chain:
//
//	idle → yielded → waitingForSend → sent → yielded → … → finished | errored
//
// Exactly one side of the stream mutates the state at any instant; the two
// rendezvous signals enforce the alternation, so no extra locking is needed.
type stateKind int

const (
	stateIdle stateKind = iota
	stateYielded
	stateWaitingForSend
	stateSent
	stateFinished
	stateErrored
)

// Continuation is the producer-facing handle of a stream. The producer emits
// values with Yield and announces termination with Return or Throw; it must
// make exactly one terminal call, after which any further call panics.
//
// The type parameter Y is the type of yielded values, S the type of values
// the consumer sends back, and R the type of the final return value.
type Continuation[Y, S, R any] struct {
	kind    stateKind
	yielded Y
	sent    S
	result  R
	err     *TerminationError

	// yieldSig wakes the consumer after the producer published a value or a
	// terminal outcome; sendSig wakes the producer after the consumer
	// deposited a sent value. Both have capacity one and carry at most one
	// unconsumed token at a time, so releases never block.
	yieldSig chan struct{}
	sendSig  chan struct{}

	finished bool
}

// Yield hands v to the consumer and suspends the producer until the consumer
// calls Send on the stream. It returns the sent value. This is the only
// suspension point on the producer side.
//
// Yield panics if the continuation already finished.
func (c *Continuation[Y, S, R]) Yield(v Y) S {
	if c.finished {
		panic(contractViolation("genstream: Yield called on a finished continuation"))
	}
	var zero S
	c.sent = zero
	c.yielded = v
	c.kind = stateYielded
	c.yieldSig <- struct{}{}
	<-c.sendSig
	return c.sent
}

// Return terminates the stream with the final value v. The consumer observes
// it as an *EndOfStream[R] from its current or next Next/Send call.
//
// Return panics if the continuation already finished.
func (c *Continuation[Y, S, R]) Return(v R) {
	if c.finished {
		panic(contractViolation("genstream: Return called on a finished continuation"))
	}
	c.finished = true
	c.result = v
	c.kind = stateFinished
	c.yieldSig <- struct{}{}
}

// Throw terminates the stream with a failure. The error is wrapped in a
// *TerminationError recording the Throw call site, unless it already carries
// one, in which case the existing record is propagated unchanged.
//
// Throw panics if the continuation already finished.
func (c *Continuation[Y, S, R]) Throw(err error) {
	if c.finished {
		panic(contractViolation("genstream: Throw called on a finished continuation"))
	}
	c.terminate(newTermination(err, 2))
}

func (c *Continuation[Y, S, R]) terminate(rec *TerminationError) {
	c.finished = true
	c.err = rec
	c.kind = stateErrored
	c.yieldSig <- struct{}{}
}

// exited signals the consumer after the producer body returned without a
// terminal call. The state is left outside the terminal variants, which the
// consumer reports as a misuse.
func (c *Continuation[Y, S, R]) exited() {
	c.finished = true
	c.yieldSig <- struct{}{}
}
