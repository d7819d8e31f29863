package ports

// Result is the outcome of an upstream call that never fails outright.
// A degraded result still carries a usable Value (a sentinel, a fallback
// text or empty audio) together with the Reason it was degraded.
type Result[T any] struct {
	Value    T
	Degraded bool
	Reason   error
}

func OK[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func Degrade[T any](v T, reason error) Result[T] {
	return Result[T]{Value: v, Degraded: true, Reason: reason}
}
