package genstream

// Run drives s to completion, calling f for each value that the producer
// yields and sending back each value that f returns. It returns the
// producer's final return value, or the failure the stream terminated with.
func Run[Y, S, R any](s *Stream[Y, S, R], f func(Y) S) (R, error) {
	v, err := s.Next()
	for err == nil {
		v, err = s.Send(f(v))
	}
	if r, ok := AsEndOfStream[R](err); ok {
		return r, nil
	}
	var zero R
	return zero, err
}
