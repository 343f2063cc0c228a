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
	"github.com/layoutkit/layout/internal/assert"
	"github.com/layoutkit/layout/internal/bitops"
)

// bitField is one field packed inside a [BitStructure]'s word.
type bitField struct {
	property  string
	bits      int
	start     int
	valueMask uint32
	wordMask  uint32
	boolean   bool
}

// BitStructure packs multiple sub-byte fields inside a single 1-4 byte
// unsigned integer word (§4.7). Fields are added through a
// [BitStructureBuilder], which checks that the running bit total never
// exceeds the word's bit width.
type BitStructure struct {
	property     string
	wordBytes    int
	littleEndian bool
	msbFirst     bool
	fields       []bitField
	bound        *boundType
}

var _ Layout = (*BitStructure)(nil)

// BitStructureBuilder accumulates bit fields and produces an immutable
// [BitStructure] (§9, "Mutable registration post-construction"). Each
// invariant — total bits within the word, individual field width at most
// 32 bits — is checked as the field is added; the first violation is kept
// and returned from Build, so a caller composing fields in a loop only has
// to check one error.
type BitStructureBuilder struct {
	property     string
	wordBytes    int
	littleEndian bool
	msbFirst     bool
	fields       []bitField
	totalBits    int
	err          error
}

// Bits starts a builder for a word of the given byte width (1-4), in the
// given endianness. msbFirst selects MSB-first bit ordering; the default
// (false) is LSB-first, matching §4.7.
func Bits(wordBytes int, littleEndian, msbFirst bool, property string) *BitStructureBuilder {
	b := &BitStructureBuilder{property: property, wordBytes: wordBytes, littleEndian: littleEndian, msbFirst: msbFirst}
	if wordBytes < 1 || wordBytes > 4 {
		b.err = schemaErr("bit structure word must be 1-4 bytes, got %d", wordBytes)
	}
	return b
}

func (b *BitStructureBuilder) wordBits() int { return b.wordBytes * 8 }

// AddField registers a bit-width field. Returns the builder for chaining;
// the first construction error encountered is surfaced from Build.
func (b *BitStructureBuilder) AddField(bits int, property string) *BitStructureBuilder {
	if b.err != nil {
		return b
	}
	if bits <= 0 || bits > 32 {
		b.err = schemaErr("bit field %q has width %d, which exceeds the 32-bit limit", property, bits)
		return b
	}
	if b.totalBits+bits > b.wordBits() {
		b.err = schemaErr("bit field %q (width %d) would exceed the word's %d-bit width", property, bits, b.wordBits())
		return b
	}

	var start int
	if b.msbFirst {
		start = b.wordBits() - b.totalBits - bits
	} else {
		start = b.totalBits
	}

	b.fields = append(b.fields, bitField{
		property:  property,
		bits:      bits,
		start:     start,
		valueMask: bitops.Mask[uint32](bits),
		wordMask:  bitops.Mask[uint32](bits) << uint(start),
	})
	b.totalBits += bits
	return b
}

// AddBoolean registers a single-bit field decoded/encoded as a bool (§4.7).
func (b *BitStructureBuilder) AddBoolean(property string) *BitStructureBuilder {
	b.AddField(1, property)
	if b.err == nil {
		b.fields[len(b.fields)-1].boolean = true
	}
	return b
}

// Build finalizes the bit structure, or returns the first schema error
// encountered while adding fields.
func (b *BitStructureBuilder) Build() (*BitStructure, error) {
	if b.err != nil {
		return nil, b.err
	}
	fields := make([]bitField, len(b.fields))
	copy(fields, b.fields)
	assert.True(b.totalBits <= b.wordBits(), "bit structure %q accumulated %d bits over a %d-bit word", b.property, b.totalBits, b.wordBits())
	return &BitStructure{
		property:     b.property,
		wordBytes:    b.wordBytes,
		littleEndian: b.littleEndian,
		msbFirst:     b.msbFirst,
		fields:       fields,
	}, nil
}

func (bs *BitStructure) Span() int        { return bs.wordBytes }
func (bs *BitStructure) Property() string { return bs.property }

func (bs *BitStructure) Replicate(newProperty string) Layout {
	cp := *bs
	cp.property = newProperty
	return &cp
}

func (bs *BitStructure) MakeDestinationObject() any { return recordDestination(bs.bound) }

func (bs *BitStructure) FromArray(values []any) (any, bool) {
	dst := bs.MakeDestinationObject()
	set, ok := settableRecord(dst)
	if !ok {
		return nil, false
	}
	i := 0
	for _, f := range bs.fields {
		if i >= len(values) {
			break
		}
		set(f.property, values[i])
		i++
	}
	return dst, true
}

func (bs *BitStructure) GetSpan(buf []byte, offset int) (int, error) { return bs.wordBytes, nil }

func (bs *BitStructure) readWord(buf []byte, offset int) (uint32, error) {
	if offset < 0 || offset+bs.wordBytes > len(buf) {
		return 0, rangeErr(offset, "need %d bytes to read a bit structure word", bs.wordBytes)
	}
	return uint32(readUint(buf[offset:offset+bs.wordBytes], bs.littleEndian)), nil
}

// Decode reads the word and extracts each field, returning a record keyed
// by property (§4.7).
func (bs *BitStructure) Decode(buf []byte, offset int) (any, error) {
	word, err := bs.readWord(buf, offset)
	if err != nil {
		return nil, err
	}
	dst := bs.MakeDestinationObject()
	set, _ := settableRecord(dst)
	for _, f := range bs.fields {
		raw := (word >> uint(f.start)) & f.valueMask
		if f.boolean {
			set(f.property, raw != 0)
		} else {
			set(f.property, raw)
		}
	}
	return dst, nil
}

// Encode clears and rewrites only the bits for fields present in src,
// preserving the word's other bits across the call (§4.7). A missing field
// property leaves the existing bits at that position untouched.
func (bs *BitStructure) Encode(value any, buf []byte, offset int) (int, error) {
	get, ok := asRecord(value)
	if !ok {
		return 0, typeErr("expected a record-like value to encode bit structure %q, got %T", bs.property, value)
	}

	word, err := bs.readWord(buf, offset)
	if err != nil {
		// An all-zero word is a reasonable starting point when the
		// destination hasn't been initialized yet; offset range is still
		// validated below before any write happens.
		if offset < 0 || offset+bs.wordBytes > len(buf) {
			return 0, rangeErr(offset, "need %d bytes to encode a bit structure word", bs.wordBytes)
		}
		word = 0
	}

	for _, f := range bs.fields {
		v, present := get(f.property)
		if !present {
			continue
		}

		var raw uint32
		if f.boolean {
			bv, ok := v.(bool)
			if !ok {
				return 0, typeErr("bit field %q expects a bool, got %T", f.property, v)
			}
			if bv {
				raw = 1
			}
		} else {
			n, ok := toUint64(v)
			if !ok {
				return 0, typeErr("bit field %q expects an unsigned integer, got %T", f.property, v)
			}
			raw = uint32(n) & f.valueMask
		}

		word &^= f.wordMask
		word |= (raw & f.valueMask) << uint(f.start)
	}

	writeUint(buf[offset:offset+bs.wordBytes], uint64(word), bs.littleEndian)
	return bs.wordBytes, nil
}
