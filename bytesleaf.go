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

import (
	"reflect"
	"unicode/utf8"

	"github.com/tiendc/go-deepcopy"
)

// Blob is a leaf of raw bytes, either of a fixed configured length or of a
// length sourced from an [ExternalLayout] (§4.3).
type Blob struct {
	property string
	fixedLen int             // -1 if length is external.
	extLen   ExternalLayout   // nil if length is fixed.
}

var _ Layout = Blob{}

// NewBlob constructs a fixed-length Blob.
func NewBlob(length int, property string) Blob {
	if length < 0 {
		panic(schemaErr("blob length must be non-negative, got %d", length))
	}
	return Blob{property: property, fixedLen: length, extLen: nil}
}

// NewExternalBlob constructs a Blob whose length comes from an external
// layout (e.g. an [OffsetLayout] pointing at a count field).
func NewExternalBlob(length ExternalLayout, property string) Blob {
	if !length.IsCount() {
		panic(schemaErr("blob length source must be a count-valued external layout"))
	}
	return Blob{property: property, fixedLen: spanDynamic, extLen: length}
}

func (b Blob) Span() int {
	if b.extLen != nil {
		return spanDynamic
	}
	return b.fixedLen
}
func (b Blob) Property() string { return b.property }

func (b Blob) Replicate(newProperty string) Layout {
	b.property = newProperty
	return b
}

func (b Blob) FromArray([]any) (any, bool) { return nil, false }
func (b Blob) MakeDestinationObject() any  { return nil }

func (b Blob) length(buf []byte, offset int) (int, error) {
	if b.extLen == nil {
		return b.fixedLen, nil
	}
	v, err := b.extLen.Decode(buf, offset)
	if err != nil {
		return 0, err
	}
	n, ok := toInt(v)
	if !ok || n < 0 {
		return 0, typeErr("external blob length decoded to %v, want a non-negative integer", v)
	}
	return n, nil
}

func (b Blob) GetSpan(buf []byte, offset int) (int, error) {
	if b.extLen == nil {
		return b.fixedLen, nil
	}
	if buf == nil {
		return 0, unresolvedSpanErr("blob with external length requires a buffer")
	}
	return b.length(buf, offset)
}

func (b Blob) Decode(buf []byte, offset int) (any, error) {
	n, err := b.length(buf, offset)
	if err != nil {
		return nil, err
	}
	if offset < 0 || offset+n > len(buf) {
		return nil, rangeErr(offset, "need %d bytes to decode a blob", n)
	}
	out := make([]byte, n)
	copy(out, buf[offset:offset+n])
	return out, nil
}

// Encode copies len(src) bytes from src into the buffer. If the blob has a
// fixed length, src must match it exactly. If the length is external, the
// length is written through the external layout after the bytes (§4.3).
func (b Blob) Encode(value any, buf []byte, offset int) (int, error) {
	src, ok := asBytes(value)
	if !ok {
		return 0, typeErr("expected byte-like value, got %T", value)
	}
	if b.extLen == nil && len(src) != b.fixedLen {
		return 0, typeErr("blob expects exactly %d bytes, got %d", b.fixedLen, len(src))
	}
	if offset < 0 || offset+len(src) > len(buf) {
		return 0, rangeErr(offset, "need %d bytes to encode a blob", len(src))
	}
	copy(buf[offset:offset+len(src)], src)
	if b.extLen != nil {
		if _, err := b.extLen.Encode(len(src), buf, offset); err != nil {
			return 0, err
		}
	}
	return len(src), nil
}

// CString is a NUL-terminated string leaf (§4.3). Decode scans forward for
// the first zero byte; encode appends one. An internal zero byte in the
// source string means the round trip is not guaranteed.
type CString struct {
	property string
}

var _ Layout = CString{}

func NewCString(property string) CString { return CString{property: property} }

func (c CString) Span() int        { return spanDynamic }
func (c CString) Property() string { return c.property }

func (c CString) Replicate(newProperty string) Layout {
	c.property = newProperty
	return c
}

func (c CString) FromArray([]any) (any, bool) { return nil, false }
func (c CString) MakeDestinationObject() any  { return nil }

func (c CString) GetSpan(buf []byte, offset int) (int, error) {
	if buf == nil {
		return 0, unresolvedSpanErr("cstr is variable-span and requires a buffer")
	}
	i := offset
	for i < len(buf) && buf[i] != 0 {
		i++
	}
	if i >= len(buf) {
		return 0, rangeErr(offset, "no zero terminator found for cstr")
	}
	return i - offset + 1, nil
}

func (c CString) Decode(buf []byte, offset int) (any, error) {
	if offset < 0 || offset > len(buf) {
		return nil, rangeErr(offset, "offset out of range for cstr")
	}
	i := offset
	for i < len(buf) && buf[i] != 0 {
		i++
	}
	if i >= len(buf) {
		return nil, rangeErr(offset, "no zero terminator found for cstr")
	}
	return string(buf[offset:i]), nil
}

func (c CString) Encode(value any, buf []byte, offset int) (int, error) {
	s, ok := stringOf(value)
	if !ok {
		return 0, typeErr("expected a string, got %T", value)
	}
	n := len(s) + 1
	if offset < 0 || offset+n > len(buf) {
		return 0, rangeErr(offset, "need %d bytes to encode cstr", n)
	}
	copy(buf[offset:offset+len(s)], s)
	buf[offset+len(s)] = 0
	return n, nil
}

// UTF8 is a leaf whose span is the remainder of the buffer: decode returns
// the UTF-8 decoding of buf[offset:], and there is no length prefix at all
// (§4.3, "length-implicit UTF-8").
type UTF8 struct {
	property string
	maxSpan  int // 0 means unbounded.
}

var _ Layout = UTF8{}

// NewUTF8 constructs a UTF8 leaf, applying any options (e.g. [WithMaxSpan]).
func NewUTF8(property string, opts ...UTF8Option) UTF8 {
	var cfg utf8Config
	for _, o := range opts {
		o.apply(&cfg)
	}
	return UTF8{property: property, maxSpan: cfg.maxSpan}
}

func (u UTF8) Span() int        { return spanDynamic }
func (u UTF8) Property() string { return u.property }

func (u UTF8) Replicate(newProperty string) Layout {
	u.property = newProperty
	return u
}

func (u UTF8) FromArray([]any) (any, bool) { return nil, false }
func (u UTF8) MakeDestinationObject() any  { return nil }

func (u UTF8) GetSpan(buf []byte, offset int) (int, error) {
	if buf == nil {
		return 0, unresolvedSpanErr("utf8 is variable-span and requires a buffer")
	}
	if offset < 0 || offset > len(buf) {
		return 0, rangeErr(offset, "offset out of range for utf8")
	}
	return len(buf) - offset, nil
}

func (u UTF8) Decode(buf []byte, offset int) (any, error) {
	if offset < 0 || offset > len(buf) {
		return nil, rangeErr(offset, "offset out of range for utf8")
	}
	return string(buf[offset:]), nil
}

func (u UTF8) Encode(value any, buf []byte, offset int) (int, error) {
	s, ok := stringOf(value)
	if !ok {
		return 0, typeErr("expected a string, got %T", value)
	}
	if u.maxSpan > 0 && utf8.RuneCountInString(s) > 0 && len(s) > u.maxSpan {
		return 0, rangeErr(offset, "utf8 value of %d bytes exceeds maxSpan %d", len(s), u.maxSpan)
	}
	if offset < 0 || offset+len(s) > len(buf) {
		return 0, rangeErr(offset, "need %d bytes to encode utf8", len(s))
	}
	copy(buf[offset:offset+len(s)], s)
	return len(s), nil
}

// Constant is a span-0 leaf that always decodes to a preset value and never
// writes anything on encode (§4.3). Decode deep-copies the stored value so
// that repeated decodes do not alias one another or leak the constructor's
// identity into caller-owned data (spec.md §9's "Constant... does not
// clone" open question, resolved here by cloning).
type Constant struct {
	property string
	value    any
}

var _ Layout = Constant{}

func NewConstant(value any, property string) Constant {
	return Constant{property: property, value: value}
}

func (c Constant) Span() int        { return 0 }
func (c Constant) Property() string { return c.property }

func (c Constant) Replicate(newProperty string) Layout {
	c.property = newProperty
	return c
}

func (c Constant) FromArray([]any) (any, bool) { return nil, false }
func (c Constant) MakeDestinationObject() any  { return nil }

func (c Constant) GetSpan(buf []byte, offset int) (int, error) { return 0, nil }

func (c Constant) Decode(buf []byte, offset int) (any, error) {
	if c.value == nil {
		return nil, nil
	}
	rt := reflect.TypeOf(c.value)
	switch rt.Kind() {
	case reflect.Chan, reflect.Func:
		// Not cloneable; these are never meaningfully "aliased" by a
		// caller the way a slice or map would be.
		return c.value, nil
	}
	clone := reflect.New(rt)
	if err := deepcopy.Copy(clone.Interface(), c.value); err != nil {
		return c.value, nil
	}
	return clone.Elem().Interface(), nil
}

func (c Constant) Encode(value any, buf []byte, offset int) (int, error) {
	return 0, nil
}

func stringOf(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	case Bytes:
		return string(s), true
	}
	return "", false
}
