// Copyright 2020-2025 Buf Technologies, Inc.
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

// Record is the generic destination record produced by decoding a
// [Structure], [BitStructure], or tag-only/data [VariantLayout]: a value
// keyed by each child's property name. Containers with no bound user type
// (see [Bind]) decode into a Record; containers with a bound type decode
// into a fresh instance of that type instead.
//
// Field order is carried by the layout's own child list, not by this map, so
// a plain map suffices to satisfy the "ordered record" contract of §3: two
// Records with the same keys and values are equal regardless of how Go
// chooses to range over them.
type Record map[string]any

// List is the generic destination produced by decoding a [Sequence]: an
// ordered slice of per-element decoded values.
type List []any

// Bytes is a thin marker over []byte accepted wherever the design document
// calls for a "byte-like" input (§4.3, Blob.Encode). Plain []byte and string
// values are also accepted directly; Bytes exists only for callers who want
// to be explicit about intent.
type Bytes []byte

// asBytes extracts a byte slice from a value accepted by Blob.Encode,
// reporting whether v was byte-like at all.
func asBytes(v any) ([]byte, bool) {
	switch b := v.(type) {
	case []byte:
		return b, true
	case Bytes:
		return []byte(b), true
	case string:
		return []byte(b), true
	default:
		return nil, false
	}
}

// asRecord extracts a property->value lookup from a destination value,
// whether it is a Record or a bound user struct (reflected by field name,
// case-insensitively matched against the property name).
func asRecord(v any) (func(prop string) (any, bool), bool) {
	switch r := v.(type) {
	case Record:
		return func(prop string) (any, bool) {
			val, ok := r[prop]
			return val, ok
		}, true
	case map[string]any:
		return func(prop string) (any, bool) {
			val, ok := r[prop]
			return val, ok
		}, true
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	return func(prop string) (any, bool) {
		fv, ok := lookupField(rv, prop)
		if !ok {
			return nil, false
		}
		return fv.Interface(), true
	}, true
}

// lookupField finds the struct field matching prop, preferring an exact
// name match and falling back to a case-insensitive one.
func lookupField(rv reflect.Value, prop string) (reflect.Value, bool) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		if rt.Field(i).Name == prop {
			return rv.Field(i), true
		}
	}
	for i := 0; i < rt.NumField(); i++ {
		if equalFold(rt.Field(i).Name, prop) {
			return rv.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
