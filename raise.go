// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

import "reflect"

// Exception effect and the catchable capability.
//
// Raise is an ordinary effect: it occupies the except<E> entry of the effect
// list and its failure propagates as the context's failure shape (Left,
// None, no contribution, error). Catch is not an effect: it is a context
// capability honored by the runners whose outcome shape carries an error
// value (Either and IO), independent of effect-list membership.

// Raise is the effect operation for signaling failure carrying an error
// value. The continuation is never resumed; the failure unwinds to the
// nearest [Catch] or to the runner boundary.
type Raise[E any] struct {
	Phantom[Resumed]
	Err E
}

// Sig implements Operation.
func (Raise[E]) Sig() Sig { return sigAt(KindExcept, reflect.TypeFor[E]()) }

// DispatchExcept handles Raise in exception handler dispatch.
func (o Raise[E]) DispatchExcept() Outcome {
	return Outcome{Failed: true, Raised: o.Err}
}

// RaiseError raises err, aborting the current branch. The result type A is
// free since the continuation never runs.
func RaiseError[E, A any](err E) Comp[A] {
	op := Raise[E]{Err: err}
	sig := op.Sig()
	return Comp[A]{
		in:  List{{Kind: sig.Kind, Param: sig.In}},
		out: List{{Kind: sig.Kind, Param: sig.Out}},
		run: func(k func(A) Resumed) Resumed {
			// k is never applied; the wrapper keeps the marker well-typed.
			return &marker{op: op, sig: sig, k: func(v Resumed) Resumed { return k(v.(A)) }}
		},
	}
}

// Catch runs body; if body's outcome is a failure carrying a value of type
// E, the failure is discarded and handler(e) runs in its place. Both
// branches share body's declared effect list and result type. A failure
// carrying a value of a different type propagates past this delimiter.
//
// Catch requires the catchable capability: the Either and IO runners honor
// it, the Maybe and List runners reject it with a [*CompositionError].
//
// Effects other than the caught failure remain live inside body: state
// mutations made before the failure persist into handler.
func Catch[E, A any](body Comp[A], handler func(E) Comp[A]) Comp[A] {
	return Comp[A]{in: body.in, out: body.out, run: func(k func(A) Resumed) Resumed {
		return &catchMarker{
			body: func() Resumed { return body.run(pureK[A]) },
			recover: func(raised any) (Resumed, bool) {
				e, ok := raised.(E)
				if !ok {
					return nil, false
				}
				return handler(e).run(pureK[A]), true
			},
			k: func(v Resumed) Resumed { return k(v.(A)) },
		}
	}}
}

// Bracket provides exception-safe resource acquisition and release:
// acquire, then use, then release, where release runs whether or not use
// fails. The outcome of use is reified as an [Either].
func Bracket[E, R, A any](
	acquire Comp[R],
	release func(R) Comp[struct{}],
	use func(R) Comp[A],
) Comp[Either[E, A]] {
	return Bind(acquire, func(r R) Comp[Either[E, A]] {
		guarded := Catch(
			Map(use(r), Right[E, A]),
			func(e E) Comp[Either[E, A]] { return Pure(Left[E, A](e)) },
		)
		return Bind(guarded, func(res Either[E, A]) Comp[Either[E, A]] {
			return Then(release(r), Pure(res))
		})
	})
}

// OnError runs cleanup only if body fails with an E, then re-raises the
// original failure.
func OnError[E, A any](body Comp[A], cleanup func(E) Comp[struct{}]) Comp[A] {
	return Catch(body, func(e E) Comp[A] {
		return Then(cleanup(e), RaiseError[E, A](e))
	})
}
