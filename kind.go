// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

import "reflect"

// Kind identifies an effect family. Kinds are compared by name; the type
// parameter an effect currently carries lives in the effect [List] entry,
// not in the Kind itself.
type Kind struct {
	name string
}

// NewKind declares a new effect kind with the given name.
// Kind names must be unique within one computation's effect list.
func NewKind(name string) Kind { return Kind{name: name} }

// Name returns the kind's declared name.
func (k Kind) Name() string { return k.name }

// String implements fmt.Stringer.
func (k Kind) String() string { return k.name }

// Built-in effect kinds.
var (
	// KindState is mutable state threading. Parameter: the carried state type.
	KindState = NewKind("state")
	// KindExcept is exception-style failure. Parameter: the raised error type.
	KindExcept = NewKind("except")
	// KindRand is seeded pseudo-random number generation. Parameter: int64 (the seed).
	KindRand = NewKind("rand")
	// KindChoose is non-deterministic choice. Parameter: unit.
	KindChoose = NewKind("choose")
	// KindConsole is console I/O. Parameter: unit.
	KindConsole = NewKind("console")
)

// unitType is the parameter of effects that carry no meaningful resource state.
var unitType = reflect.TypeFor[struct{}]()

// seedType is the parameter of the Rand effect.
var seedType = reflect.TypeFor[int64]()

// Sig is an operation signature: the effect kind the operation belongs to,
// the list parameter the kind must carry before the operation, and the
// parameter it carries afterwards. In and Out are identical for every
// operation except updating ones such as [PutOther].
type Sig struct {
	Kind Kind
	In   reflect.Type
	Out  reflect.Type
}

// sigAt builds a non-updating signature at parameter t.
func sigAt(k Kind, t reflect.Type) Sig { return Sig{Kind: k, In: t, Out: t} }

// Operation is the interface for effect operations. Every operation reports
// its signature; handlers receive operations through [Handler.Dispatch].
type Operation interface {
	Sig() Sig
}

// Resumed is the interface for values flowing through effect suspension and
// resumption inside the evaluation loop.
type Resumed any

// Op is the F-bounded interface for effect operations. Each effect defines
// concrete types implementing Op with the appropriate result type parameter;
// the self-referencing constraint gives the compiler knowledge of both the
// concrete operation type and its result type.
//
// Example:
//
//	type Ping struct{ eff.Phantom[string] }
type Op[O Op[O, A], A any] interface {
	Operation
	OpResult() A // phantom type marker for result
}

// Phantom is an embeddable zero-size type that provides the [Op] result
// marker. Embed Phantom[A] in an operation struct to satisfy the result part
// of [Op] without writing a manual OpResult method.
type Phantom[A any] struct{}

// OpResult implements the phantom type marker for [Op].
func (Phantom[A]) OpResult() A { panic("phantom") }

// unhandledEffect panics with a descriptive message for unmatched operations.
// Extracted as a noinline function so that Dispatch methods remain inlineable.
//
//go:noinline
func unhandledEffect(handler string) {
	panic("eff: unhandled effect in " + handler)
}
