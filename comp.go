// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

// Comp represents a suspended effectful computation producing a value of
// type A. The computation carries the effect list it requires before running
// (Requires) and the list it guarantees afterwards (Ensures); the two differ
// only when a list-updating operation such as [PutOther] is sequenced.
//
// A Comp is immutable once constructed. It is consumed by one of the runners
// in run.go, or embedded in a larger composition.
type Comp[A any] struct {
	in  List
	out List
	run func(k func(A) Resumed) Resumed
}

// Requires returns the effect list the computation needs before running.
func (m Comp[A]) Requires() List { return m.in }

// Ensures returns the effect list the computation guarantees after running.
func (m Comp[A]) Ensures() List { return m.out }

// Pure lifts a value into a computation with an empty effect list that
// always succeeds with that value, in every context.
func Pure[A any](a A) Comp[A] {
	return Comp[A]{run: func(k func(A) Resumed) Resumed {
		return k(a)
	}}
}

// pureK is the identity continuation used to start evaluation. A named
// generic function produces a static function value per type instantiation.
func pureK[A any](a A) Resumed { return a }

// marker is a suspended effect operation flowing through the evaluation
// loop: the operation, its signature, and the rest of the computation.
//
// Markers are plain values and are never pooled: backtracking re-enters a
// marker's continuation once per candidate, so a marker stays live after its
// first resumption.
type marker struct {
	op  Operation
	sig Sig
	k   func(Resumed) Resumed
}

// catchMarker delimits a protected computation for contexts with the
// catchable capability. body restarts the protected computation; recover
// starts the recovery computation for a raised value, reporting false when
// the value is not of the caught type; k is the continuation after the
// delimiter.
type catchMarker struct {
	body    func() Resumed
	recover func(raised any) (Resumed, bool)
	k       func(Resumed) Resumed
}

// Perform triggers an effect operation and suspends the computation. The
// resulting computation requires exactly the operation's effect kind at its
// input parameter, and guarantees the kind at its output parameter.
func Perform[O Op[O, A], A any](op O) Comp[A] {
	sig := op.Sig()
	return Comp[A]{
		in:  List{{Kind: sig.Kind, Param: sig.In}},
		out: List{{Kind: sig.Kind, Param: sig.Out}},
		run: func(k func(A) Resumed) Resumed {
			return &marker{op: op, sig: sig, k: func(v Resumed) Resumed { return k(v.(A)) }}
		},
	}
}

// Bind sequences two computations (monadic bind). It runs m, then passes the
// result to f to obtain the continuation computation. If the context's
// notion of failure triggers during m, f is never invoked and the failure
// propagates as the composite's outcome.
//
// The continuation's effect requirements are opaque until f is applied; they
// are verified at that point, before any of the continuation's operations
// execute. Use [Then], [Map2] or [Map3] when the continuation is available
// by value and should be verified at construction time.
func Bind[A, B any](m Comp[A], f func(A) Comp[B]) Comp[B] {
	return Comp[B]{in: m.in, out: m.out, run: func(k func(B) Resumed) Resumed {
		return m.run(func(a A) Resumed {
			return f(a).run(k)
		})
	}}
}

// Map applies a pure function to the result of a computation, leaving the
// effect list unchanged.
func Map[A, B any](m Comp[A], f func(A) B) Comp[B] {
	return Comp[B]{in: m.in, out: m.out, run: func(k func(B) Resumed) Resumed {
		return m.run(func(a A) Resumed {
			return k(f(a))
		})
	}}
}

// Then sequences two computations, discarding the first result. Both
// computations are available by value, so their effect lists are composed
// and verified at construction time.
func Then[A, B any](m Comp[A], n Comp[B]) Comp[B] {
	in, out := chain(m.in, m.out, n.in, n.out)
	return Comp[B]{in: in, out: out, run: func(k func(B) Resumed) Resumed {
		return m.run(func(_ A) Resumed {
			return n.run(k)
		})
	}}
}

// Map2 combines two computations with a pure function. The computations are
// evaluated left-to-right, once each; effect lists are composed and verified
// at construction time. This is the inline-unwrap shorthand for the common
// pattern of binding two sub-computations used by value.
func Map2[A, B, C any](f func(A, B) C, ma Comp[A], mb Comp[B]) Comp[C] {
	in, out := chain(ma.in, ma.out, mb.in, mb.out)
	return Comp[C]{in: in, out: out, run: func(k func(C) Resumed) Resumed {
		return ma.run(func(a A) Resumed {
			return mb.run(func(b B) Resumed {
				return k(f(a, b))
			})
		})
	}}
}

// Map3 combines three computations with a pure function, left-to-right,
// once each.
func Map3[A, B, C, D any](f func(A, B, C) D, ma Comp[A], mb Comp[B], mc Comp[C]) Comp[D] {
	in, out := chain(ma.in, ma.out, mb.in, mb.out)
	in, out = chain(in, out, mc.in, mc.out)
	return Comp[D]{in: in, out: out, run: func(k func(D) Resumed) Resumed {
		return ma.run(func(a A) Resumed {
			return mb.run(func(b B) Resumed {
				return mc.run(func(c C) Resumed {
					return k(f(a, b, c))
				})
			})
		})
	}}
}

// Sub embeds a computation requiring a sub-list of avail into the wider list
// avail. Every effect kind m requires must appear in avail at a matching
// parameter; otherwise Sub panics with a [*CompositionError] naming the
// absent kind. The result requires avail and guarantees avail with m's
// parameter updates applied.
func Sub[A any](avail List, m Comp[A]) Comp[A] {
	if err := m.in.SubOf(avail); err != nil {
		panic(err)
	}
	out := avail
	for _, e := range m.out {
		if _, ok := out.Lookup(e.Kind); ok {
			out = out.Update(e.Kind, e.Param)
		}
	}
	return Comp[A]{in: avail, out: out, run: m.run}
}
