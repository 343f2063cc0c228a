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

// This file collects the shorthand numeric factories from §6's factory
// surface. Every other factory named there — blob, cstr, utf8, seq, struct,
// bits/addField/addBoolean, union/addVariant, offset, greedy, constant —
// already has a direct, identically-shaped constructor elsewhere in the
// package (NewBlob, NewCString, NewUTF8, NewSequence, Struct, Bits, NewUnion,
// NewOffset, NewGreedy, NewConstant); only the wide combinatorial family of
// integer/float widths and endiannesses benefits from named shorthands.

// U8 is an unsigned 8-bit integer leaf.
func U8(property string) Int { return NewInt(1, false, true, property) }

// U16 is a little-endian unsigned 16-bit integer leaf.
func U16(property string) Int { return NewInt(2, false, true, property) }

// U16BE is a big-endian unsigned 16-bit integer leaf.
func U16BE(property string) Int { return NewInt(2, false, false, property) }

// U24 is a little-endian unsigned 24-bit integer leaf.
func U24(property string) Int { return NewInt(3, false, true, property) }

// U24BE is a big-endian unsigned 24-bit integer leaf.
func U24BE(property string) Int { return NewInt(3, false, false, property) }

// U32 is a little-endian unsigned 32-bit integer leaf.
func U32(property string) Int { return NewInt(4, false, true, property) }

// U32BE is a big-endian unsigned 32-bit integer leaf.
func U32BE(property string) Int { return NewInt(4, false, false, property) }

// U40 is a little-endian unsigned 40-bit integer leaf.
func U40(property string) Int { return NewInt(5, false, true, property) }

// U40BE is a big-endian unsigned 40-bit integer leaf.
func U40BE(property string) Int { return NewInt(5, false, false, property) }

// U48 is a little-endian unsigned 48-bit integer leaf.
func U48(property string) Int { return NewInt(6, false, true, property) }

// U48BE is a big-endian unsigned 48-bit integer leaf.
func U48BE(property string) Int { return NewInt(6, false, false, property) }

// S8 is a signed 8-bit integer leaf.
func S8(property string) Int { return NewInt(1, true, true, property) }

// S16 is a little-endian signed 16-bit integer leaf.
func S16(property string) Int { return NewInt(2, true, true, property) }

// S16BE is a big-endian signed 16-bit integer leaf.
func S16BE(property string) Int { return NewInt(2, true, false, property) }

// S24 is a little-endian signed 24-bit integer leaf.
func S24(property string) Int { return NewInt(3, true, true, property) }

// S24BE is a big-endian signed 24-bit integer leaf.
func S24BE(property string) Int { return NewInt(3, true, false, property) }

// S32 is a little-endian signed 32-bit integer leaf.
func S32(property string) Int { return NewInt(4, true, true, property) }

// S32BE is a big-endian signed 32-bit integer leaf.
func S32BE(property string) Int { return NewInt(4, true, false, property) }

// S40 is a little-endian signed 40-bit integer leaf.
func S40(property string) Int { return NewInt(5, true, true, property) }

// S40BE is a big-endian signed 40-bit integer leaf.
func S40BE(property string) Int { return NewInt(5, true, false, property) }

// S48 is a little-endian signed 48-bit integer leaf.
func S48(property string) Int { return NewInt(6, true, true, property) }

// S48BE is a big-endian signed 48-bit integer leaf.
func S48BE(property string) Int { return NewInt(6, true, false, property) }

// NU64 is a little-endian 8-byte unsigned "near-64" leaf, decoded as a
// float64 (§4.2).
func NU64(property string) NearInt { return NewNearInt(false, true, property) }

// NU64BE is the big-endian counterpart of [NU64].
func NU64BE(property string) NearInt { return NewNearInt(false, false, property) }

// NS64 is a little-endian 8-byte signed "near-64" leaf, decoded as a
// float64.
func NS64(property string) NearInt { return NewNearInt(true, true, property) }

// NS64BE is the big-endian counterpart of [NS64].
func NS64BE(property string) NearInt { return NewNearInt(true, false, property) }

// F32 is a little-endian IEEE-754 single-precision float leaf.
func F32(property string) Float { return NewFloat(4, true, property) }

// F32BE is the big-endian counterpart of [F32].
func F32BE(property string) Float { return NewFloat(4, false, property) }

// F64 is a little-endian IEEE-754 double-precision float leaf.
func F64(property string) Float { return NewFloat(8, true, property) }

// F64BE is the big-endian counterpart of [F64].
func F64BE(property string) Float { return NewFloat(8, false, property) }
