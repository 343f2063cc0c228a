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

import "errors"

// offsetUnknown is returned by [Structure.OffsetOf] when the named field's
// offset is not statically known (it follows a variable-span sibling).
const offsetUnknown = -1

// Structure is an ordered list of named (or unnamed) child layouts (§4.5).
// Its span is the sum of its children's spans, or variable if any child is
// variable-span.
type Structure struct {
	property       string
	fields         []Layout
	span           int
	decodePrefixes bool
	bound          *boundType
}

var _ Layout = (*Structure)(nil)

// NewStructure validates and builds a Structure. Construction fails with a
// schema error if an unnamed child is variable-span (§4.5, "a structure may
// not contain an unnamed variable-span child").
func NewStructure(fields []Layout, property string, opts ...StructOption) (*Structure, error) {
	var cfg structConfig
	for _, o := range opts {
		o.apply(&cfg)
	}

	span := 0
	for _, f := range fields {
		if f.Property() == "" && !isFixed(f.Span()) {
			return nil, schemaErr("structure %q has an unnamed variable-span field", property)
		}
		if isFixed(span) {
			if isFixed(f.Span()) {
				span += f.Span()
			} else {
				span = spanDynamic
			}
		}
	}

	cp := make([]Layout, len(fields))
	copy(cp, fields)

	return &Structure{
		property:       property,
		fields:         cp,
		span:           span,
		decodePrefixes: cfg.decodePrefixes,
	}, nil
}

// Struct is the ergonomic factory form of [NewStructure]: it panics on a
// schema violation instead of returning an error, the way
// [regexp.MustCompile] does for layouts assembled from static field lists.
func Struct(fields []Layout, property string, opts ...StructOption) *Structure {
	s, err := NewStructure(fields, property, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Structure) Span() int        { return s.span }
func (s *Structure) Property() string { return s.property }

func (s *Structure) Replicate(newProperty string) Layout {
	cp := *s
	cp.property = newProperty
	return &cp
}

func (s *Structure) MakeDestinationObject() any { return recordDestination(s.bound) }

// FromArray pairs values positionally with named fields in declaration
// order, skipping unnamed fields and ignoring extra values (§4.1).
func (s *Structure) FromArray(values []any) (any, bool) {
	dst := s.MakeDestinationObject()
	set, ok := settableRecord(dst)
	if !ok {
		return nil, false
	}
	i := 0
	for _, f := range s.fields {
		if f.Property() == "" {
			continue
		}
		if i >= len(values) {
			break
		}
		set(f.Property(), values[i])
		i++
	}
	return dst, true
}

// LayoutFor returns the child layout registered under the given property
// name (§4.5).
func (s *Structure) LayoutFor(name string) (Layout, bool) {
	for _, f := range s.fields {
		if f.Property() == name {
			return f, true
		}
	}
	return nil, false
}

// OffsetOf returns the statically-known byte offset of the named field, or
// offsetUnknown if the field follows a variable-span sibling (§4.5).
func (s *Structure) OffsetOf(name string) int {
	offset := 0
	for _, f := range s.fields {
		if f.Property() == name {
			return offset
		}
		if !isFixed(offset) {
			continue
		}
		if isFixed(f.Span()) {
			offset += f.Span()
		} else {
			offset = offsetUnknown
		}
	}
	return offsetUnknown
}

func (s *Structure) GetSpan(buf []byte, offset int) (int, error) {
	if isFixed(s.span) {
		return s.span, nil
	}
	if buf == nil {
		return 0, unresolvedSpanErr("structure %q is variable-span", s.property)
	}
	total := 0
	running := offset
	for _, f := range s.fields {
		n, err := f.GetSpan(buf, running)
		if err != nil {
			return 0, err
		}
		total += n
		running += n
	}
	return total, nil
}

func (s *Structure) Decode(buf []byte, offset int) (any, error) {
	dst := s.MakeDestinationObject()
	set, _ := settableRecord(dst)

	running := offset
	for _, f := range s.fields {
		n, err := f.GetSpan(buf, running)
		if err != nil || running+n > len(buf) {
			if s.decodePrefixes {
				return dst, nil
			}
			if err != nil {
				return nil, err
			}
			return nil, rangeErr(running, "structure %q truncated", s.property)
		}

		v, err := f.Decode(buf, running)
		if err != nil {
			if s.decodePrefixes && errors.Is(err, ErrRange) {
				return dst, nil
			}
			return nil, err
		}
		if f.Property() != "" {
			set(f.Property(), v)
		}
		running += n
	}
	return dst, nil
}

func (s *Structure) Encode(value any, buf []byte, offset int) (int, error) {
	get, ok := asRecord(value)
	if !ok {
		return 0, typeErr("expected a record-like value to encode structure %q, got %T", s.property, value)
	}

	total := 0
	running := offset
	for _, f := range s.fields {
		if f.Property() == "" {
			n, err := f.GetSpan(buf, running)
			if err != nil {
				return 0, err
			}
			total += n
			running += n
			continue
		}

		v, present := get(f.Property())
		if !present {
			n, err := f.GetSpan(buf, running)
			if err != nil {
				return 0, err
			}
			total += n
			running += n
			continue
		}

		n, err := f.Encode(v, buf, running)
		if err != nil {
			return 0, err
		}
		total += n
		running += n
	}
	return total, nil
}

// settableRecord returns a setter for a destination produced by
// MakeDestinationObject: either a Record or a pointer to a bound struct.
func settableRecord(dst any) (func(prop string, v any), bool) {
	if r, ok := dst.(Record); ok {
		return func(prop string, v any) { r[prop] = v }, true
	}
	return settableReflect(dst)
}
