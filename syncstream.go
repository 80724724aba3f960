package genstream

import "iter"

// None is the content-free send token used by unidirectional streams, whose
// consumer has nothing to say back to the producer.
type None struct{}

// Values adapts a unidirectional stream into a forward-only iterator. It is
// constructible only for streams whose send type carries no information and
// whose yielded and returned types coincide: every yielded value is forwarded
// as a sequence element, and on normal termination the final return value is
// forwarded as the last element before the sequence completes.
//
// The sequence is single-use. A terminal failure other than end-of-stream
// ends the sequence without surfacing the failure; callers that need the
// failure must drive the stream directly. Breaking out of the loop abandons
// the stream and leaves the producer goroutine parked forever.
func Values[T any](s *Stream[T, None, T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		v, err := s.Next()
		for err == nil {
			if !yield(v) {
				return
			}
			v, err = s.Send(None{})
		}
		if r, ok := AsEndOfStream[T](err); ok {
			yield(r)
		}
	}
}
