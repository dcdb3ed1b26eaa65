// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

import "reflect"

// State effect operations.
// State threads one mutable value through a computation; the effect-list
// entry state<S> records the carried type, and [PutOther] updates it.

// Get is the effect operation for reading state.
// Perform(Get[S]{}) returns the current state of type S.
type Get[S any] struct{ Phantom[S] }

// Sig implements Operation.
func (Get[S]) Sig() Sig { return sigAt(KindState, reflect.TypeFor[S]()) }

// DispatchState handles Get in State handler dispatch.
func (Get[S]) DispatchState(r Resource) Outcome {
	return resume(r, r.(S))
}

// Put is the effect operation for writing state.
// Perform(Put[S]{Value: s}) replaces the current state.
type Put[S any] struct {
	Phantom[struct{}]
	Value S
}

// Sig implements Operation.
func (Put[S]) Sig() Sig { return sigAt(KindState, reflect.TypeFor[S]()) }

// DispatchState handles Put in State handler dispatch.
func (o Put[S]) DispatchState(Resource) Outcome {
	return resume(o.Value, struct{}{})
}

// Update is the effect operation for applying a function to the state.
// Perform(Update[S]{F: f}) replaces the state with f(state) and returns the
// new state.
type Update[S any] struct {
	Phantom[S]
	F func(S) S
}

// Sig implements Operation.
func (Update[S]) Sig() Sig { return sigAt(KindState, reflect.TypeFor[S]()) }

// DispatchState handles Update in State handler dispatch.
func (o Update[S]) DispatchState(r Resource) Outcome {
	s := o.F(r.(S))
	return resume(s, s)
}

// PutOther is the list-updating write: it replaces the state with a value of
// a different type, taking the effect list from state<S> to state<T>. The
// surrounding list's other entries are untouched.
type PutOther[S, T any] struct {
	Phantom[struct{}]
	Value T
}

// Sig implements Operation. In and Out differ: this operation updates the
// state entry's parameter.
func (PutOther[S, T]) Sig() Sig {
	return Sig{Kind: KindState, In: reflect.TypeFor[S](), Out: reflect.TypeFor[T]()}
}

// DispatchState handles PutOther in State handler dispatch.
func (o PutOther[S, T]) DispatchState(Resource) Outcome {
	return resume(o.Value, struct{}{})
}

// GetState performs Get.
func GetState[S any]() Comp[S] { return Perform(Get[S]{}) }

// PutState performs Put.
func PutState[S any](s S) Comp[struct{}] { return Perform(Put[S]{Value: s}) }

// UpdateState performs Update, returning the new state.
func UpdateState[S any](f func(S) S) Comp[S] { return Perform(Update[S]{F: f}) }

// PutOtherState performs PutOther, updating the state entry from S to T.
func PutOtherState[S, T any](t T) Comp[struct{}] { return Perform(PutOther[S, T]{Value: t}) }
