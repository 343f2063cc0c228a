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

// Sequence repeats an element layout count times (§4.6). count is either a
// fixed non-negative integer or an [ExternalLayout] whose IsCount() is
// true. With a fixed integer count and a fixed element span, the sequence
// is fixed-span; otherwise it is variable-span.
type Sequence struct {
	property     string
	element      Layout
	fixedCount   int // -1 if count is external.
	externalCount ExternalLayout
	span         int
}

var _ Layout = Sequence{}

// NewSequence constructs a Sequence with a fixed element count.
func NewSequence(element Layout, count int, property string) Sequence {
	if count < 0 {
		panic(schemaErr("sequence count must be non-negative, got %d", count))
	}
	span := spanDynamic
	if isFixed(element.Span()) {
		span = count * element.Span()
	}
	return Sequence{property: property, element: element, fixedCount: count, span: span}
}

// NewExternalSequence constructs a Sequence whose count is sourced from an
// external, count-valued layout.
func NewExternalSequence(element Layout, count ExternalLayout, property string) Sequence {
	if !count.IsCount() {
		panic(schemaErr("sequence count source must be a count-valued external layout"))
	}
	return Sequence{property: property, element: element, fixedCount: spanDynamic, externalCount: count, span: spanDynamic}
}

func (s Sequence) Span() int        { return s.span }
func (s Sequence) Property() string { return s.property }

func (s Sequence) Replicate(newProperty string) Layout {
	s.property = newProperty
	return s
}

func (s Sequence) FromArray([]any) (any, bool)    { return nil, false }
func (s Sequence) MakeDestinationObject() any     { return nil }

func (s Sequence) count(buf []byte, offset int) (int, error) {
	if s.externalCount == nil {
		return s.fixedCount, nil
	}
	v, err := s.externalCount.Decode(buf, offset)
	if err != nil {
		return 0, err
	}
	n, ok := toInt(v)
	if !ok || n < 0 {
		return 0, typeErr("external sequence count decoded to %v, want a non-negative integer", v)
	}
	return n, nil
}

func (s Sequence) GetSpan(buf []byte, offset int) (int, error) {
	if isFixed(s.span) {
		return s.span, nil
	}
	if buf == nil {
		return 0, unresolvedSpanErr("sequence %q is variable-span", s.property)
	}
	n, err := s.count(buf, offset)
	if err != nil {
		return 0, err
	}
	if isFixed(s.element.Span()) {
		return n * s.element.Span(), nil
	}
	total := 0
	running := offset
	for i := 0; i < n; i++ {
		es, err := s.element.GetSpan(buf, running)
		if err != nil {
			return 0, err
		}
		total += es
		running += es
	}
	return total, nil
}

func (s Sequence) Decode(buf []byte, offset int) (any, error) {
	n, err := s.count(buf, offset)
	if err != nil {
		return nil, err
	}
	out := make(List, 0, n)
	running := offset
	for i := 0; i < n; i++ {
		es, err := s.element.GetSpan(buf, running)
		if err != nil {
			return nil, err
		}
		v, err := s.element.Decode(buf, running)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		running += es
	}
	return out, nil
}

// Encode writes min(count, len(src)) elements when count is a fixed
// integer, silently dropping any extra source elements (§4.6). When count
// is external, it writes all of src and then writes len(src) through the
// external layout, outside the bytes returned from Encode.
func (s Sequence) Encode(value any, buf []byte, offset int) (int, error) {
	src, ok := asList(value)
	if !ok {
		return 0, typeErr("expected a sequence-like value to encode %q, got %T", s.property, value)
	}

	n := len(src)
	if s.externalCount == nil && n > s.fixedCount {
		n = s.fixedCount
	}

	total := 0
	running := offset
	for i := 0; i < n; i++ {
		w, err := s.element.Encode(src[i], buf, running)
		if err != nil {
			return 0, err
		}
		total += w
		running += w
	}

	if s.externalCount != nil {
		if _, err := s.externalCount.Encode(len(src), buf, offset); err != nil {
			return 0, err
		}
	}
	return total, nil
}

func asList(v any) ([]any, bool) {
	switch x := v.(type) {
	case List:
		return x, true
	case []any:
		return x, true
	}
	return nil, false
}
