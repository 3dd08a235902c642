package pair

import "fmt"

// Pair is an ordered pair with value equality.
// It is comparable, so it can be used as a map key or as a FIFOSet element.
type Pair[A, B comparable] struct {
	First  A
	Second B
}

// Of builds a Pair.
func Of[A, B comparable](first A, second B) Pair[A, B] {
	return Pair[A, B]{First: first, Second: second}
}

// Swap returns the pair with its components exchanged.
func (p Pair[A, B]) Swap() Pair[B, A] {
	return Pair[B, A]{First: p.Second, Second: p.First}
}

// Equal reports whether both components are equal.
func (p Pair[A, B]) Equal(o Pair[A, B]) bool {
	return p == o
}

// Unpack returns both components.
func (p Pair[A, B]) Unpack() (A, B) {
	return p.First, p.Second
}

func (p Pair[A, B]) String() string {
	return fmt.Sprintf("(%v, %v)", p.First, p.Second)
}
