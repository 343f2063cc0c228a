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
	"math"
	"reflect"
)

// Int is a 1-6 byte signed or unsigned integer leaf, little- or
// big-endian (§4.2). Decode yields uint64 for unsigned widths and int64 for
// signed widths; Encode accepts any Go integer type whose value fits.
type Int struct {
	property     string
	width        int
	signed       bool
	littleEndian bool
}

var _ Layout = Int{}

// NewInt constructs an integer leaf of the given width (1-6 bytes).
func NewInt(width int, signed, littleEndian bool, property string) Int {
	if width < 1 || width > 6 {
		panic(schemaErr("integer width must be 1-6 bytes, got %d", width))
	}
	return Int{property: property, width: width, signed: signed, littleEndian: littleEndian}
}

func (n Int) Span() int        { return n.width }
func (n Int) Property() string { return n.property }

func (n Int) Replicate(newProperty string) Layout {
	n.property = newProperty
	return n
}

func (n Int) FromArray([]any) (any, bool)    { return nil, false }
func (n Int) MakeDestinationObject() any     { return nil }

func (n Int) GetSpan(buf []byte, offset int) (int, error) { return n.width, nil }

func (n Int) Decode(buf []byte, offset int) (any, error) {
	if offset < 0 || offset+n.width > len(buf) {
		return nil, rangeErr(offset, "need %d bytes to decode a %d-byte integer", n.width, n.width)
	}
	raw := readUint(buf[offset:offset+n.width], n.littleEndian)
	if !n.signed {
		return raw, nil
	}
	return signExtend(raw, n.width), nil
}

func (n Int) Encode(value any, buf []byte, offset int) (int, error) {
	if offset < 0 || offset+n.width > len(buf) {
		return 0, rangeErr(offset, "need %d bytes to encode a %d-byte integer", n.width, n.width)
	}
	if n.signed {
		v, ok := toInt64(value)
		if !ok {
			return 0, typeErr("expected an integer, got %T", value)
		}
		lo, hi := signedRange(n.width)
		if v < lo || v > hi {
			return 0, rangeErr(offset, "value %d does not fit in a signed %d-byte integer", v, n.width)
		}
		writeUint(buf[offset:offset+n.width], uint64(v), n.littleEndian)
		return n.width, nil
	}
	v, ok := toUint64(value)
	if !ok {
		return 0, typeErr("expected an unsigned integer, got %T", value)
	}
	if n.width < 8 && v >= uint64(1)<<(8*n.width) {
		return 0, rangeErr(offset, "value %d does not fit in an unsigned %d-byte integer", v, n.width)
	}
	writeUint(buf[offset:offset+n.width], v, n.littleEndian)
	return n.width, nil
}

// NearInt is an 8-byte integer leaf that decodes to a float64 ("near-64",
// §4.2). Precision degrades above 2^53; this is documented behavior, not an
// error.
type NearInt struct {
	property     string
	signed       bool
	littleEndian bool
}

var _ Layout = NearInt{}

func NewNearInt(signed, littleEndian bool, property string) NearInt {
	return NearInt{property: property, signed: signed, littleEndian: littleEndian}
}

func (n NearInt) Span() int        { return 8 }
func (n NearInt) Property() string { return n.property }

func (n NearInt) Replicate(newProperty string) Layout {
	n.property = newProperty
	return n
}

func (n NearInt) FromArray([]any) (any, bool)    { return nil, false }
func (n NearInt) MakeDestinationObject() any     { return nil }

func (n NearInt) GetSpan(buf []byte, offset int) (int, error) { return 8, nil }

func (n NearInt) Decode(buf []byte, offset int) (any, error) {
	if offset < 0 || offset+8 > len(buf) {
		return nil, rangeErr(offset, "need 8 bytes to decode a near-64 integer")
	}
	raw := readUint(buf[offset:offset+8], n.littleEndian)
	if n.signed {
		return float64(int64(raw)), nil
	}
	return float64(raw), nil
}

func (n NearInt) Encode(value any, buf []byte, offset int) (int, error) {
	if offset < 0 || offset+8 > len(buf) {
		return 0, rangeErr(offset, "need 8 bytes to encode a near-64 integer")
	}
	f, ok := toFloat64(value)
	if !ok {
		return 0, typeErr("expected a number, got %T", value)
	}
	if n.signed {
		writeUint(buf[offset:offset+8], uint64(int64(f)), n.littleEndian)
	} else {
		if f < 0 {
			return 0, rangeErr(offset, "value %v does not fit in an unsigned near-64 integer", f)
		}
		writeUint(buf[offset:offset+8], uint64(f), n.littleEndian)
	}
	return 8, nil
}

// Float is a 32- or 64-bit IEEE-754 float leaf, little- or big-endian
// (§4.2).
type Float struct {
	property     string
	width        int // 4 or 8
	littleEndian bool
}

var _ Layout = Float{}

func NewFloat(width int, littleEndian bool, property string) Float {
	if width != 4 && width != 8 {
		panic(schemaErr("float width must be 4 or 8 bytes, got %d", width))
	}
	return Float{property: property, width: width, littleEndian: littleEndian}
}

func (n Float) Span() int        { return n.width }
func (n Float) Property() string { return n.property }

func (n Float) Replicate(newProperty string) Layout {
	n.property = newProperty
	return n
}

func (n Float) FromArray([]any) (any, bool)    { return nil, false }
func (n Float) MakeDestinationObject() any     { return nil }

func (n Float) GetSpan(buf []byte, offset int) (int, error) { return n.width, nil }

func (n Float) Decode(buf []byte, offset int) (any, error) {
	if offset < 0 || offset+n.width > len(buf) {
		return nil, rangeErr(offset, "need %d bytes to decode a float", n.width)
	}
	raw := readUint(buf[offset:offset+n.width], n.littleEndian)
	if n.width == 4 {
		return math.Float32frombits(uint32(raw)), nil
	}
	return math.Float64frombits(raw), nil
}

func (n Float) Encode(value any, buf []byte, offset int) (int, error) {
	if offset < 0 || offset+n.width > len(buf) {
		return 0, rangeErr(offset, "need %d bytes to encode a float", n.width)
	}
	f, ok := toFloat64(value)
	if !ok {
		return 0, typeErr("expected a number, got %T", value)
	}
	if n.width == 4 {
		writeUint(buf[offset:offset+4], uint64(math.Float32bits(float32(f))), n.littleEndian)
	} else {
		writeUint(buf[offset:offset+8], math.Float64bits(f), n.littleEndian)
	}
	return n.width, nil
}

// --- shared numeric helpers ---

func readUint(b []byte, littleEndian bool) uint64 {
	var v uint64
	if littleEndian {
		for i := len(b) - 1; i >= 0; i-- {
			v = v<<8 | uint64(b[i])
		}
	} else {
		for i := 0; i < len(b); i++ {
			v = v<<8 | uint64(b[i])
		}
	}
	return v
}

func writeUint(b []byte, v uint64, littleEndian bool) {
	if littleEndian {
		for i := range b {
			b[i] = byte(v)
			v >>= 8
		}
	} else {
		for i := len(b) - 1; i >= 0; i-- {
			b[i] = byte(v)
			v >>= 8
		}
	}
}

func signExtend(raw uint64, width int) int64 {
	bits := uint(width * 8)
	signBit := uint64(1) << (bits - 1)
	if raw&signBit != 0 {
		return int64(raw | (^uint64(0) << bits))
	}
	return int64(raw)
}

func signedRange(width int) (lo, hi int64) {
	bits := uint(width*8 - 1)
	hi = int64(uint64(1)<<bits - 1)
	lo = -hi - 1
	return
}

func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), true
	case float32:
		return int64(x), true
	case float64:
		return int64(x), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), true
	}
	return 0, false
}

func toUint64(v any) (uint64, bool) {
	switch x := v.(type) {
	case uint:
		return uint64(x), true
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint64:
		return x, true
	case int:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case int8:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case int16:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case int32:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case int64:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case float32:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case float64:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Int() < 0 {
			return 0, false
		}
		return uint64(rv.Int()), true
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

// toInt tries to read v as a plain int, used for count/offset-like fields.
func toInt(v any) (int, bool) {
	i, ok := toInt64(v)
	return int(i), ok
}
