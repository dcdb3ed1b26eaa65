// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

import (
	"fmt"
	"reflect"
	"strings"
)

// Entry is one element of an effect [List]: an effect kind together with the
// type parameter it currently carries.
type Entry struct {
	Kind  Kind
	Param reflect.Type
}

// String implements fmt.Stringer.
func (e Entry) String() string {
	if e.Param == nil || e.Param == unitType {
		return e.Kind.name
	}
	return e.Kind.name + "<" + e.Param.String() + ">"
}

// EntryOf builds a list entry for kind k carrying type parameter T.
func EntryOf[T any](k Kind) Entry {
	return Entry{Kind: k, Param: reflect.TypeFor[T]()}
}

// List is an ordered sequence of effect entries. Order is irrelevant to
// semantics but syntactically stable: composition preserves the positions of
// existing entries and appends new kinds at the end. Within one list, kind
// names are unique.
type List []Entry

// NewList builds a list from entries, panicking with a [*CompositionError]
// if a kind appears twice.
func NewList(entries ...Entry) List {
	l := make(List, 0, len(entries))
	for _, e := range entries {
		if l.Contains(e.Kind) {
			panic(&CompositionError{
				Kind:      e.Kind,
				Available: l,
				Reason:    "duplicate effect kind in list",
			})
		}
		l = append(l, e)
	}
	return l
}

// Lookup returns the entry for kind k, if present.
func (l List) Lookup(k Kind) (Entry, bool) {
	for _, e := range l {
		if e.Kind.name == k.name {
			return e, true
		}
	}
	return Entry{}, false
}

// Contains reports whether kind k is present in the list.
func (l List) Contains(k Kind) bool {
	_, ok := l.Lookup(k)
	return ok
}

// Update returns a copy of the list with kind k's parameter replaced by
// param. All other entries keep their position and parameter. The entry must
// exist.
func (l List) Update(k Kind, param reflect.Type) List {
	out := make(List, len(l))
	copy(out, l)
	for i, e := range out {
		if e.Kind.name == k.name {
			out[i].Param = param
			return out
		}
	}
	panic(&CompositionError{Kind: k, Available: l, Reason: "update of absent effect kind"})
}

// SubOf verifies that every entry of l matches, by kind and current
// parameter, an entry of avail. Order is ignored. On failure it returns a
// *CompositionError naming the first offending kind and the list it was
// checked against.
func (l List) SubOf(avail List) error {
	for _, e := range l {
		have, ok := avail.Lookup(e.Kind)
		if !ok {
			return &CompositionError{Kind: e.Kind, Available: avail, Reason: "required effect absent from list"}
		}
		if e.Param != nil && have.Param != e.Param {
			return &CompositionError{
				Kind:      e.Kind,
				Want:      e.Param,
				Got:       have.Param,
				Available: avail,
				Reason:    "effect parameter mismatch",
			}
		}
	}
	return nil
}

// String implements fmt.Stringer.
func (l List) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range l {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}

// chain composes the effect-list transforms of two sequenced computations:
// one taking aIn to aOut, followed by one taking bIn to bOut. Kinds used by
// both must line up: the parameter the first guarantees on exit must be the
// parameter the second requires on entry. Panics with a *CompositionError on
// mismatch.
func chain(aIn, aOut, bIn, bOut List) (in, out List) {
	in = make(List, len(aIn), len(aIn)+len(bIn))
	copy(in, aIn)
	out = make(List, len(aOut), len(aOut)+len(bIn))
	copy(out, aOut)
	for _, e := range bIn {
		have, ok := out.Lookup(e.Kind)
		if !ok {
			in = append(in, e)
			out = append(out, e)
			continue
		}
		if have.Param != e.Param {
			panic(&CompositionError{
				Kind:      e.Kind,
				Want:      e.Param,
				Got:       have.Param,
				Available: out,
				Reason:    "sequenced computation requires a different effect parameter",
			})
		}
	}
	for _, e := range bOut {
		out = out.Update(e.Kind, e.Param)
	}
	return in, out
}

// CompositionError reports a statically detectable composition defect: a
// required effect kind absent from the available list, a typestate parameter
// mismatch, a missing handler or resource, or a Catch delimiter in a context
// without the catchable capability. Composition errors are raised as panics
// at construction or runner-setup time; they are programmer errors, never
// part of a computation's dynamic outcome.
type CompositionError struct {
	Kind      Kind
	Want, Got reflect.Type
	Available List
	Reason    string
}

// Error implements the error interface.
func (e *CompositionError) Error() string {
	var b strings.Builder
	b.WriteString("eff: ")
	b.WriteString(e.Reason)
	if e.Kind.name != "" {
		fmt.Fprintf(&b, ": %s", e.Kind.name)
	}
	if e.Want != nil {
		fmt.Fprintf(&b, " (want %s, got %s)", e.Want, typeName(e.Got))
	}
	if e.Available != nil {
		fmt.Fprintf(&b, " in %s", e.Available)
	}
	return b.String()
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<none>"
	}
	return t.String()
}
