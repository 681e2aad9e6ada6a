package ports

// Result is the outcome of a lookup that may legitimately match nothing.
// Repositories return it instead of signalling absence through an error or an
// empty slice, and callers branch on IsFound.
type Result[T any] struct {
	value T
	found bool
}

// Found wraps a located value
func Found[T any](value T) Result[T] {
	return Result[T]{value: value, found: true}
}

// NotFound is the empty result
func NotFound[T any]() Result[T] {
	return Result[T]{}
}

// Get returns the value and whether it was found
func (r Result[T]) Get() (T, bool) {
	return r.value, r.found
}

// IsFound reports whether the lookup matched a row
func (r Result[T]) IsFound() bool {
	return r.found
}

// FirstOf turns the rows returned by a single-row query into a Result
func FirstOf[T any](rows []T) Result[T] {
	if len(rows) == 0 {
		return NotFound[T]()
	}
	return Found(rows[0])
}
