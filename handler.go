// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

import "reflect"

// Resource is the hidden internal value a handler threads through the
// operations of one effect kind: the current state value for State, the seed
// for Rand, the unit value for effects with no meaningful state. A resource
// is exclusively owned by its handler's invocation chain for the duration of
// one run and is never observed by other effects.
type Resource any

// Outcome is the result of dispatching one operation against the kind's
// current resource.
//
// Exactly one of three shapes applies:
//
//   - resume: Value carries the resumption value, Resource the updated
//     resource
//   - fork: Forked is set and Branches carries one resumption value per
//     candidate, in depth-first exploration order
//   - failure: Failed is set and Raised carries the failure value, if any
type Outcome struct {
	Resource Resource
	Value    Resumed
	Branches []Resumed
	Forked   bool
	Raised   any
	Failed   bool
}

// resume is the common single-resumption outcome.
func resume(r Resource, v Resumed) Outcome { return Outcome{Resource: r, Value: v} }

// Handler binds an effect kind to an interpretation: how each of the kind's
// operations transforms the resource and produces a resumption outcome. A
// handler must be installed on the runner for every effect kind a
// computation uses; the runners install handlers for all built-in kinds
// their context supports.
type Handler interface {
	// Kind returns the effect kind this handler interprets.
	Kind() Kind
	// Param returns the resource parameter the handler is fixed to, if any.
	// Handlers reporting false adopt the parameter declared by the
	// computation's effect list.
	Param() (reflect.Type, bool)
	// Default returns the initial resource for parameter p, or false when
	// the kind has no default and requires an explicit initializer.
	Default(p reflect.Type) (Resource, bool)
	// Dispatch interprets one operation against the current resource.
	Dispatch(op Operation, r Resource) Outcome
}

// finalizer receives the kind's final resource after a run, backing the
// getter functions returned by handler constructors.
type finalizer interface {
	setFinal(r Resource)
}

// stateHandler interprets State operations. Without an explicit initial
// value the default resource is the zero value of the list parameter.
type stateHandler struct {
	initial Resource
	hasInit bool
	param   reflect.Type
	final   Resource
}

func (h *stateHandler) Kind() Kind { return KindState }

func (h *stateHandler) Param() (reflect.Type, bool) { return h.param, h.param != nil }

func (h *stateHandler) Default(p reflect.Type) (Resource, bool) {
	if h.hasInit {
		return h.initial, true
	}
	if p == nil {
		return nil, false
	}
	return reflect.Zero(p).Interface(), true
}

func (h *stateHandler) Dispatch(op Operation, r Resource) Outcome {
	if sop, ok := op.(interface {
		DispatchState(r Resource) Outcome
	}); ok {
		return sop.DispatchState(r)
	}
	unhandledEffect("StateHandler")
	return Outcome{}
}

func (h *stateHandler) setFinal(r Resource) { h.final = r }

// NewStateHandler creates a State handler with an explicit initial state.
// Returns the handler and a getter reporting the final state after the most
// recent run (the winning branch's state under backtracking contexts).
func NewStateHandler[S any](initial S) (Handler, func() S) {
	h := &stateHandler{
		initial: initial,
		hasInit: true,
		param:   reflect.TypeFor[S](),
		final:   initial,
	}
	return h, func() S { return h.final.(S) }
}

// exceptHandler interprets Raise. The resource is the unit value; the list
// parameter tracks the raised type.
type exceptHandler struct {
	param reflect.Type
}

func (h *exceptHandler) Kind() Kind { return KindExcept }

func (h *exceptHandler) Param() (reflect.Type, bool) { return h.param, h.param != nil }

func (h *exceptHandler) Default(reflect.Type) (Resource, bool) { return struct{}{}, true }

func (h *exceptHandler) Dispatch(op Operation, _ Resource) Outcome {
	if eop, ok := op.(interface {
		DispatchExcept() Outcome
	}); ok {
		return eop.DispatchExcept()
	}
	unhandledEffect("ExceptHandler")
	return Outcome{}
}

// randHandler interprets Srand/RndInt/RndFin. The resource is the int64 seed.
type randHandler struct {
	seed    int64
	hasSeed bool
	final   int64
}

func (h *randHandler) Kind() Kind { return KindRand }

func (h *randHandler) Param() (reflect.Type, bool) { return seedType, true }

func (h *randHandler) Default(reflect.Type) (Resource, bool) {
	if h.hasSeed {
		return h.seed, true
	}
	return DefaultSeed, true
}

func (h *randHandler) Dispatch(op Operation, r Resource) Outcome {
	if rop, ok := op.(interface {
		DispatchRand(r Resource) Outcome
	}); ok {
		return rop.DispatchRand(r)
	}
	unhandledEffect("RandHandler")
	return Outcome{}
}

func (h *randHandler) setFinal(r Resource) { h.final = r.(int64) }

// NewRandHandler creates a Rand handler with an explicit seed. Returns the
// handler and a getter for the final seed after the most recent run.
func NewRandHandler(seed int64) (Handler, func() int64) {
	h := &randHandler{seed: seed, hasSeed: true, final: seed}
	return h, func() int64 { return h.final }
}

// chooseHandler interprets Select. Stateless; forking and backtracking are
// realized by the evaluation loop.
type chooseHandler struct{}

func (chooseHandler) Kind() Kind { return KindChoose }

func (chooseHandler) Param() (reflect.Type, bool) { return unitType, true }

func (chooseHandler) Default(reflect.Type) (Resource, bool) { return struct{}{}, true }

func (chooseHandler) Dispatch(op Operation, _ Resource) Outcome {
	if cop, ok := op.(interface {
		DispatchChoose() Outcome
	}); ok {
		return cop.DispatchChoose()
	}
	unhandledEffect("ChooseHandler")
	return Outcome{}
}

// consoleHandler interprets console operations through an opaque [Console]
// capability. Only the IO runner installs one.
type consoleHandler struct {
	c Console
}

func (h *consoleHandler) Kind() Kind { return KindConsole }

func (h *consoleHandler) Param() (reflect.Type, bool) { return unitType, true }

func (h *consoleHandler) Default(reflect.Type) (Resource, bool) { return struct{}{}, true }

func (h *consoleHandler) Dispatch(op Operation, _ Resource) Outcome {
	if cop, ok := op.(interface {
		DispatchConsole(c Console) Outcome
	}); ok {
		return cop.DispatchConsole(h.c)
	}
	unhandledEffect("ConsoleHandler")
	return Outcome{}
}

// NewConsoleHandler creates a Console handler over the given capability.
func NewConsoleHandler(c Console) Handler { return &consoleHandler{c: c} }

// handlerFunc adapts a dispatch function into a Handler for a custom kind.
type handlerFunc struct {
	kind Kind
	def  Resource
	f    func(op Operation, r Resource) Outcome
}

func (h *handlerFunc) Kind() Kind { return h.kind }

func (h *handlerFunc) Param() (reflect.Type, bool) { return nil, false }

func (h *handlerFunc) Default(reflect.Type) (Resource, bool) { return h.def, true }

func (h *handlerFunc) Dispatch(op Operation, r Resource) Outcome { return h.f(op, r) }

// HandlerOf creates a handler for a custom effect kind from a dispatch
// function and a default resource. The handler adopts the resource parameter
// declared by the computation's effect list.
func HandlerOf(kind Kind, initial Resource, f func(op Operation, r Resource) Outcome) Handler {
	return &handlerFunc{kind: kind, def: initial, f: f}
}
