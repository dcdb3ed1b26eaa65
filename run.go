// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

import (
	"fmt"
	"reflect"

	"github.com/benbjohnson/immutable"
	"go.uber.org/zap"
)

// Runners drive a computation to completion in one of four contexts. Each
// runner installs handlers for the built-in kinds its context supports,
// verifies the computation's required effect list against them, supplies
// initial resources (declared defaults, or explicit ones via options), and
// produces the context-wrapped final value.
//
// Evaluation is a single-threaded depth-first trampoline over suspension
// markers. Forks from [Select] are explored strictly left-to-right; the
// resource store is a persistent map, so each branch starts from an O(1)
// snapshot of the store at the fork point and abandoned branches leak no
// mutations.

// RaisedError wraps a raised value that does not implement error when a
// failure reaches the IO runner boundary.
type RaisedError struct {
	Val any
}

// Error implements the error interface.
func (e *RaisedError) Error() string { return fmt.Sprintf("eff: raised %v", e.Val) }

// RunOption configures a runner.
type RunOption func(*config)

type config struct {
	handlers []Handler
	logger   *zap.Logger
	console  Console
}

// WithHandler installs h, replacing any handler previously installed for the
// same kind (including the context's built-in one).
func WithHandler(h Handler) RunOption {
	return func(c *config) { c.handlers = append(c.handlers, h) }
}

// WithLogger enables dispatch tracing at debug level.
func WithLogger(log *zap.Logger) RunOption {
	return func(c *config) { c.logger = log }
}

// WithConsole sets the console capability for the IO runner.
func WithConsole(console Console) RunOption {
	return func(c *config) { c.console = console }
}

// WithState supplies an explicit initial state resource.
func WithState[S any](initial S) RunOption {
	h, _ := NewStateHandler(initial)
	return WithHandler(h)
}

// WithSeed supplies an explicit initial random seed resource.
func WithSeed(seed int64) RunOption {
	h, _ := NewRandHandler(seed)
	return WithHandler(h)
}

func buildConfig(opts []RunOption) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// cell is one effect kind's slot in the resource store: the parameter the
// kind currently carries and its resource value.
type cell struct {
	param reflect.Type
	value Resource
}

// failure is a dynamic failure unwinding toward the nearest catch delimiter
// or the runner boundary.
type failure struct {
	raised any
}

// stepper is one run's evaluation state.
type stepper struct {
	ctx       string
	catchable bool
	handlers  map[string]Handler
	store     *immutable.SortedMap
	avail     List
	tr        *tracer
}

func newStepper(ctx string, catchable bool, required List, base []Handler, cfg *config) *stepper {
	s := &stepper{
		ctx:       ctx,
		catchable: catchable,
		handlers:  make(map[string]Handler, len(base)+len(cfg.handlers)),
		store:     immutable.NewSortedMap(nil),
		tr:        newTracer(cfg.logger, ctx),
	}
	for _, h := range base {
		s.handlers[h.Kind().name] = h
	}
	for _, h := range cfg.handlers {
		s.handlers[h.Kind().name] = h
	}
	// Pre-run obligation: every required kind needs an installed handler and
	// an initial resource.
	for _, e := range required {
		h, ok := s.handlers[e.Kind.name]
		if !ok {
			panic(&CompositionError{
				Kind:      e.Kind,
				Available: s.avail,
				Reason:    "no handler installed for effect kind in " + ctx + " context",
			})
		}
		s.initCell(e.Kind, e.Param, h)
	}
	return s
}

// initCell creates the resource slot for kind k at parameter param,
// verifying the handler's fixed parameter and default-resource obligations.
func (s *stepper) initCell(k Kind, param reflect.Type, h Handler) cell {
	if v, ok := s.store.Get(k.name); ok {
		return v.(cell)
	}
	if fixed, ok := h.Param(); ok && param != nil && fixed != param {
		panic(&CompositionError{
			Kind:      k,
			Want:      param,
			Got:       fixed,
			Available: s.avail,
			Reason:    "handler resource parameter mismatch",
		})
	}
	r, ok := h.Default(param)
	if !ok {
		panic(&CompositionError{
			Kind:      k,
			Available: s.avail,
			Reason:    "effect kind has no default resource and no explicit initializer",
		})
	}
	c := cell{param: param, value: r}
	s.store = s.store.Set(k.name, c)
	s.avail = append(s.avail, Entry{Kind: k, Param: param})
	return c
}

// dispatch interprets one suspended operation against its kind's handler and
// resource, committing the resource (and, for updating operations, the list
// parameter) on a plain resumption.
func (s *stepper) dispatch(m *marker, depth int) Outcome {
	h, ok := s.handlers[m.sig.Kind.name]
	if !ok {
		panic(&CompositionError{
			Kind:      m.sig.Kind,
			Available: s.avail,
			Reason:    "no handler installed for effect kind in " + s.ctx + " context",
		})
	}
	c := s.initCell(m.sig.Kind, m.sig.In, h)
	if c.param != m.sig.In {
		panic(&CompositionError{
			Kind:      m.sig.Kind,
			Want:      m.sig.In,
			Got:       c.param,
			Available: s.avail,
			Reason:    "operation requires a different effect parameter",
		})
	}
	out := h.Dispatch(m.op, c.value)
	switch {
	case out.Failed:
		s.tr.failed(out.Raised, depth)
	case out.Forked:
		s.tr.forked(m.op, len(out.Branches), depth)
	default:
		s.tr.dispatched(m.op, depth)
		s.store = s.store.Set(m.sig.Kind.name, cell{param: m.sig.Out, value: out.Resource})
		if m.sig.Out != m.sig.In {
			s.avail = s.avail.Update(m.sig.Kind, m.sig.Out)
		}
	}
	return out
}

// evalOne drives r depth-first to the first successful completion. Forks
// commit to the first candidate whose whole continuation succeeds; an
// abandoned branch's resource mutations are discarded with its snapshot.
func (s *stepper) evalOne(r Resumed, depth int) (Resumed, *failure) {
	for {
		switch m := r.(type) {
		case *marker:
			out := s.dispatch(m, depth)
			if out.Failed {
				return nil, &failure{raised: out.Raised}
			}
			if out.Forked {
				saved, savedAvail := s.store, s.avail
				for _, c := range out.Branches {
					s.store, s.avail = saved, savedAvail
					v, f := s.evalOne(m.k(c), depth+1)
					if f == nil {
						return v, nil
					}
				}
				s.store, s.avail = saved, savedAvail
				return nil, &failure{raised: ErrNoChoice}
			}
			r = m.k(out.Value)
		case *catchMarker:
			if !s.catchable {
				panic(&CompositionError{
					Reason: "catch requires an error-carrying context, not " + s.ctx,
				})
			}
			v, f := s.evalOne(m.body(), depth+1)
			if f != nil {
				rv, ok := m.recover(f.raised)
				if !ok {
					// Raised value of a foreign type: keep unwinding.
					return nil, f
				}
				v, f = s.evalOne(rv, depth+1)
				if f != nil {
					return nil, f
				}
			}
			r = m.k(v)
		default:
			return r, nil
		}
	}
}

// evalAll drives r depth-first, feeding every successful completion to sink
// in left-to-right order. Failures prune their branch and contribute
// nothing.
func (s *stepper) evalAll(r Resumed, depth int, sink func(Resumed)) {
	for {
		switch m := r.(type) {
		case *marker:
			out := s.dispatch(m, depth)
			if out.Failed {
				return
			}
			if out.Forked {
				saved, savedAvail := s.store, s.avail
				for _, c := range out.Branches {
					s.store, s.avail = saved, savedAvail
					s.evalAll(m.k(c), depth+1, sink)
				}
				s.store, s.avail = saved, savedAvail
				return
			}
			r = m.k(out.Value)
		case *catchMarker:
			panic(&CompositionError{
				Reason: "catch requires an error-carrying context, not " + s.ctx,
			})
		default:
			sink(r)
			return
		}
	}
}

// finalize hands each kind's final resource back to handlers that observe it
// (backing the getters returned by handler constructors).
func (s *stepper) finalize() {
	itr := s.store.Iterator()
	for !itr.Done() {
		k, v := itr.Next()
		if h, ok := s.handlers[k.(string)]; ok {
			if f, ok := h.(finalizer); ok {
				f.setFinal(v.(cell).value)
			}
		}
	}
}

// value unwraps a final resumption into the computation's result type,
// applying the nil-is-zero completion convention.
func value[A any](v Resumed) A {
	if v == nil {
		var zero A
		return zero
	}
	return v.(A)
}

// RunEither runs m in the error-carrying context. A failure raising an E
// surfaces as Left; success as Right. The exception effect's parameter is
// fixed to E, so raising any other type inside m is a composition error.
func RunEither[E, A any](m Comp[A], opts ...RunOption) Either[E, A] {
	cfg := buildConfig(opts)
	base := []Handler{
		&stateHandler{},
		&exceptHandler{param: reflect.TypeFor[E]()},
		&randHandler{},
		chooseHandler{},
	}
	s := newStepper("either", true, m.in, base, cfg)
	v, f := s.evalOne(m.run(pureK[A]), 0)
	s.finalize()
	if f != nil {
		if e, ok := f.raised.(E); ok {
			return Left[E, A](e)
		}
		var zero E
		return Left[E, A](zero)
	}
	return Right[E](value[A](v))
}

// RunMaybe runs m in the optional context: the first successful completion
// under backtracking, or None. Raised values are discarded at this boundary.
func RunMaybe[A any](m Comp[A], opts ...RunOption) Maybe[A] {
	cfg := buildConfig(opts)
	base := []Handler{&stateHandler{}, &exceptHandler{}, &randHandler{}, chooseHandler{}}
	s := newStepper("maybe", false, m.in, base, cfg)
	v, f := s.evalOne(m.run(pureK[A]), 0)
	s.finalize()
	if f != nil {
		return None[A]()
	}
	return Some(value[A](v))
}

// RunList runs m in the many-result context: the concatenation of every
// successful completion, depth-first, left-to-right. Failed branches
// contribute nothing.
func RunList[A any](m Comp[A], opts ...RunOption) []A {
	cfg := buildConfig(opts)
	base := []Handler{&stateHandler{}, &exceptHandler{}, &randHandler{}, chooseHandler{}}
	s := newStepper("list", false, m.in, base, cfg)
	var out []A
	s.evalAll(m.run(pureK[A]), 0, func(v Resumed) {
		out = append(out, value[A](v))
	})
	s.finalize()
	return out
}

// RunIO runs m in the I/O-performing context, executing console operations
// against the configured [Console] (process stdio unless [WithConsole]
// overrides it). A failure surfaces as the raised error, wrapped in
// [*RaisedError] when the raised value does not implement error.
func RunIO[A any](m Comp[A], opts ...RunOption) (A, error) {
	cfg := buildConfig(opts)
	console := cfg.console
	if console == nil {
		console = StdConsole()
	}
	base := []Handler{
		&stateHandler{},
		&exceptHandler{},
		&randHandler{},
		chooseHandler{},
		&consoleHandler{c: console},
	}
	s := newStepper("io", true, m.in, base, cfg)
	v, f := s.evalOne(m.run(pureK[A]), 0)
	s.finalize()
	if f != nil {
		var zero A
		if err, ok := f.raised.(error); ok {
			return zero, err
		}
		return zero, &RaisedError{Val: f.raised}
	}
	return value[A](v), nil
}
