// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

// Maybe is the outcome shape of the optional context: Some holds the first
// success, None marks failure without a carried value.
type Maybe[A any] struct {
	isSome bool
	value  A
}

// Some creates a present value.
func Some[A any](a A) Maybe[A] {
	return Maybe[A]{isSome: true, value: a}
}

// None creates an absent value.
func None[A any]() Maybe[A] {
	return Maybe[A]{}
}

// IsSome reports whether a value is present.
func (m Maybe[A]) IsSome() bool { return m.isSome }

// IsNone reports whether the value is absent.
func (m Maybe[A]) IsNone() bool { return !m.isSome }

// Get returns the value and true, or zero and false.
func (m Maybe[A]) Get() (A, bool) {
	if m.isSome {
		return m.value, true
	}
	var zero A
	return zero, false
}

// GetOrElse returns the value, or fallback when absent.
func (m Maybe[A]) GetOrElse(fallback A) A {
	if m.isSome {
		return m.value
	}
	return fallback
}

// MatchMaybe pattern matches on the Maybe.
func MatchMaybe[A, T any](m Maybe[A], onNone func() T, onSome func(A) T) T {
	if m.isSome {
		return onSome(m.value)
	}
	return onNone()
}

// MapMaybe applies a function to the present value.
func MapMaybe[A, B any](m Maybe[A], f func(A) B) Maybe[B] {
	if m.isSome {
		return Some(f(m.value))
	}
	return None[B]()
}

// FlatMapMaybe sequences two Maybe computations.
func FlatMapMaybe[A, B any](m Maybe[A], f func(A) Maybe[B]) Maybe[B] {
	if m.isSome {
		return f(m.value)
	}
	return None[B]()
}
