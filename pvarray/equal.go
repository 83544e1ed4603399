package pvarray

import "golang.org/x/exp/slices"

// Equal reports whether a and b hold the same elements, regardless of capacity, name or mutability.
func Equal[T Scalar](a, b *Array[T]) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return slices.Equal(a.value[:a.length], b.value[:b.length])
}

// Equals is Equal(a, other).
func (a *Array[T]) Equals(other *Array[T]) bool {
	return Equal(a, other)
}

// NotEquals is !Equal(a, other).
func (a *Array[T]) NotEquals(other *Array[T]) bool {
	return !Equal(a, other)
}
