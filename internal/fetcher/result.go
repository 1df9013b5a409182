package fetcher

// Result is the outcome of one market operation: either Value or Err is meaningful.
// It is what goroutines hand back over channels
type Result[T any] struct {
	// Key identifies the request the result belongs to (e.g. "price:730:AK-47 | Redline (Field-Tested)")
	Key string

	Value T

	// Err is nil on success. If Err is not nil, Value should be considered invalid
	Err error
}

// Success returns a successful Result
func Success[T any](key string, v T) Result[T] {
	return Result[T]{Key: key, Value: v}
}

// Failure returns a failed Result
func Failure[T any](key string, err error) Result[T] {
	return Result[T]{Key: key, Err: err}
}

// Ok reports whether the result is a success
func (r Result[T]) Ok() bool {
	return r.Err == nil
}
