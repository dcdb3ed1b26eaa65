// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

import "errors"

// Non-deterministic choice effect.
//
// Select forks the remaining computation once per candidate, in declaration
// order, explored depth-first. What becomes of the branches is decided by
// the context: the List runner concatenates every successful continuation's
// results, the other runners commit to the first candidate whose whole
// continuation succeeds and abandon a candidate's subtree on any failure,
// including a downstream Raise.

// ErrNoChoice is the failure value of a Select with no candidates, and of a
// Select whose candidates' continuations all fail in a first-success
// context.
var ErrNoChoice = errors.New("eff: no viable choice")

// Select is the effect operation for non-deterministic choice among
// candidates.
type Select[A any] struct {
	Phantom[A]
	Candidates []A
}

// Sig implements Operation. Choice carries no resource state, so the list
// parameter is unit regardless of the candidate type.
func (Select[A]) Sig() Sig { return sigAt(KindChoose, unitType) }

// DispatchChoose handles Select in choice handler dispatch.
func (o Select[A]) DispatchChoose() Outcome {
	if len(o.Candidates) == 0 {
		return Outcome{Failed: true, Raised: ErrNoChoice}
	}
	branches := make([]Resumed, len(o.Candidates))
	for i, c := range o.Candidates {
		branches[i] = c
	}
	return Outcome{Forked: true, Branches: branches}
}

// Choose performs Select over candidates. An empty candidate list is the
// unconditional failure; Choose[A](nil) prunes the current branch.
func Choose[A any](candidates []A) Comp[A] {
	return Perform(Select[A]{Candidates: candidates})
}

// Range performs Select over the integers lo..hi inclusive, in ascending
// order. An empty range (hi < lo) prunes the current branch.
func Range(lo, hi int) Comp[int] {
	if hi < lo {
		return Choose[int](nil)
	}
	candidates := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		candidates = append(candidates, i)
	}
	return Choose(candidates)
}

// Guard succeeds with unit when cond holds and prunes the current branch
// otherwise.
func Guard(cond bool) Comp[struct{}] {
	if cond {
		return Choose([]struct{}{{}})
	}
	return Choose[struct{}](nil)
}
