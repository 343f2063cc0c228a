// Copyright 2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package layout

import "reflect"

// recordLayout is the subset of [Layout] implemented by every
// record-producing node: [Structure], [BitStructure], [Union], and a
// [VariantLayout] wrapping one of those. Bind requires its argument to
// satisfy it so that a bound type only ever wraps something that actually
// decodes to a Record.
type recordLayout interface {
	Layout
	setBoundType(bt *boundType)
}

func (s *Structure) setBoundType(bt *boundType) { s.bound = bt }
func (b *BitStructure) setBoundType(bt *boundType) { b.bound = bt }
func (v *VariantLayout) setBoundType(bt *boundType) { v.bound = bt }

// Bound couples a user-defined Go struct type T with a record-producing
// layout, so that Decode returns *T directly instead of a [Record] (§4.1,
// "binding a user type to a layout").
//
// Field assignment matches each child's Property() against a field of T by
// name, falling back to a case-insensitive match; fields with no matching
// property are left at their zero value, and decoded properties with no
// matching field are dropped.
type Bound[T any] struct {
	Layout
	inner recordLayout
}

var _ Layout = (*Bound[struct{}])(nil)

// Bind records T on layout: makeDestinationObject now produces *T, and the
// returned Bound[T] exposes symmetric Decode (returning *T) and Encode
// (accepting *T or T, via the same struct-reflection path every Encode
// already uses for plain structs).
func Bind[T any](l recordLayout) *Bound[T] {
	bt := &boundType{newFunc: func() any { return new(T) }}
	l.setBoundType(bt)
	return &Bound[T]{Layout: l, inner: l}
}

// Decode implements [Layout]. It delegates to the wrapped layout and then
// reshapes the result into *T when the wrapped layout produced a generic
// Record (which happens whenever decode stops before ever calling
// MakeDestinationObject itself, e.g. through an intervening [OffsetLayout]).
func (b *Bound[T]) Decode(buf []byte, offset int) (any, error) {
	v, err := b.inner.Decode(buf, offset)
	if err != nil {
		return nil, err
	}
	if _, ok := v.(*T); ok {
		return v, nil
	}
	if rec, ok := v.(Record); ok {
		dst := new(T)
		set, _ := settableReflect(dst)
		for k, val := range rec {
			set(k, val)
		}
		return dst, nil
	}
	return v, nil
}

func (b *Bound[T]) MakeDestinationObject() any { return new(T) }

// Replicate preserves the binding across a property rename.
func (b *Bound[T]) Replicate(newProperty string) Layout {
	replicated := b.inner.Replicate(newProperty)
	rl, ok := replicated.(recordLayout)
	if !ok {
		return replicated
	}
	return Bind[T](rl)
}

// settableReflect returns a setter for a pointer-to-struct destination,
// matching properties to fields by name (case-insensitive fallback).
func settableReflect(dst any) (func(prop string, v any), bool) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, false
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return nil, false
	}
	return func(prop string, v any) {
		fv, ok := lookupField(elem, prop)
		if !ok {
			return
		}
		setFieldValue(fv, v)
	}, true
}

func setFieldValue(fv reflect.Value, v any) {
	if v == nil || !fv.CanSet() {
		return
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(fv.Type()) {
		fv.Set(rv)
		return
	}
	if isNumericKind(rv.Kind()) && isNumericKind(fv.Kind()) && rv.Type().ConvertibleTo(fv.Type()) {
		fv.Set(rv.Convert(fv.Type()))
	}
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
