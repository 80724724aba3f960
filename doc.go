// Package genstream implements bidirectional generators on top of goroutines.
//
// A generator is a producer function running on its own goroutine that can
// suspend itself to hand a value to the caller, receive a value sent back,
// and eventually terminate with a final return value or a failure. The
// package reproduces the next/send and yield/return/throw protocol of
// languages with native generators.
//
// # Streams and Continuations
//
// [New] takes a producer function and returns a [Stream], the consumer-side
// handle. The producer receives a [Continuation], the producer-side handle,
// and communicates exclusively through it:
//
//	s := genstream.New(func(c *genstream.Continuation[int, int, int]) {
//	    x := c.Yield(1)
//	    y := c.Yield(x + 1)
//	    c.Return(y * 2)
//	})
//
//	v, _ := s.Next()    // v == 1
//	v, _ = s.Send(10)   // v == 11, the producer sees x == 10
//	_, err = s.Send(0)  // err is *EndOfStream[int] carrying 22
//
// The producer goroutine starts lazily on the first call to [Stream.Next],
// never at construction time, and runs exactly once. [NewPair] returns the
// stream and continuation separately for producers driven externally rather
// than embedded in a closure.
//
// # Scheduling
//
// Exactly one of the two sides runs at any instant. The consumer suspends
// inside Next/Send waiting for the producer to yield or terminate; the
// producer suspends inside Yield waiting for the consumer to send. There is
// no buffering: at most one value is in flight in each direction, and a
// suspended producer can only be resumed by a matching Send. A stream the
// consumer abandons leaves its producer goroutine parked forever; the
// package provides no external cancellation.
//
// Streams are single-consumer: calling Next or Send concurrently from
// multiple goroutines on the same stream is outside the supported contract.
//
// # Termination and errors
//
// Normal termination surfaces as an [EndOfStream] error carrying the
// producer's final return value. A failure raised through
// [Continuation.Throw], or a panic escaping the producer body, surfaces as a
// [TerminationError] recording where the producer failed. Protocol
// violations by the consumer (Send before Next, Next on a started stream)
// are reported as a recoverable [MisuseError]; protocol violations by the
// producer (Yield, Return or Throw after the stream terminated) are
// programming defects and panic.
//
// Once a stream reports a terminal outcome, every subsequent Next or Send
// replays that same outcome; the producer is never re-entered.
package genstream
