// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package eff provides algebraic effects with statically tracked effect lists
// in Go.
//
// The core type [Comp] represents a suspended effectful computation. A Comp
// carries the effect list it requires before running and the effect list it
// guarantees afterwards; the two differ only when a list-updating operation
// such as [PutOther] changes the type parameter carried by an effect.
//
// # Effect Kinds
//
// An effect family is identified by a [Kind]. Built-in kinds:
//
//   - [KindState]: mutable state threading ([Get], [Put], [Update], [PutOther])
//   - [KindExcept]: exception-style failure ([Raise])
//   - [KindRand]: seeded deterministic pseudo-random numbers ([Srand], [RndInt], [RndFin])
//   - [KindChoose]: non-deterministic choice with backtracking ([Select])
//   - [KindConsole]: console I/O behind an opaque [Console] capability
//
// Custom effects implement [Operation] (providing a [Sig]) together with a
// [Handler] registered on the runner via [WithHandler].
//
// # Effect Lists
//
// A [List] is an ordered sequence of (kind, type parameter) entries with
// unique kinds. Value-level composition ([Then], [Map2], [Map3], [Sub])
// verifies sub-list membership and typestate chaining at construction time;
// violations panic with a [*CompositionError] naming the offending kind and
// the list it was checked against. Operations reached only through a [Bind]
// continuation are verified when the continuation is applied, before the
// operation executes.
//
// # Composition
//
// Minimal monad operations:
//
//   - [Pure]: lift a value into a computation with an empty effect list
//   - [Bind]: sequence two computations
//
// Derived operations:
//
//   - [Map], [Then]: functor map and sequencing with discard
//   - [Map2], [Map3]: applicative combination, left-to-right, once each
//   - [Sub]: embed a computation into a wider effect list
//
// # Contexts
//
// A computation is driven to completion by one of four runners, each fixing
// the outcome shape of the computation context:
//
//   - [RunEither]: error-carrying, returns [Either]
//   - [RunMaybe]: optional, returns [Maybe] (first success under [Select])
//   - [RunList]: many-result, returns a slice (all successes, depth-first,
//     left-to-right)
//   - [RunIO]: performs console I/O, returns (value, error)
//
// Execution is single-threaded and depth-first. "Forking" under [Select] is
// enumerative backtracking: each candidate's whole continuation runs to
// completion or failure before the next candidate is attempted, and resource
// mutations made inside an abandoned branch are discarded.
//
// # Catch
//
// [Catch] is a context capability, not an effect-list entry: the Either and
// IO runners honor it, the Maybe and List runners reject it (their failure
// shapes carry no value to recover from). [Bracket] and [OnError] build
// exception-safe resource handling on top of it.
//
// Nil completion convention: runners treat a nil final value as "completed
// with the zero value", so computations whose result type is a pointer or
// interface cannot use nil as a meaningful result.
package eff
