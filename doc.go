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

// Package layout is a declarative binary-layout library: programs build an
// in-memory description of a byte layout by composing [Layout] nodes, then
// use that description to decode raw bytes into structured values and
// encode structured values back into raw bytes.
//
// The target domain is packed C-style structures, tagged unions, bit-packed
// words, and length-prefixed sequences found in on-the-wire and on-disk
// formats. A layout is *external* schema: this package never inspects or
// emits any self-describing framing of its own.
//
// # Building a layout
//
// Layouts are assembled from the factory functions in this package:
//
//	rec := Struct([]Layout{
//		U8("sensor_id"),
//		S16("temperature_c"),
//		U16("humidity_pph"),
//		U32("timestamp"),
//	}, "reading")
//
//	buf := make([]byte, rec.Span())
//	n, err := rec.Encode(map[string]any{
//		"sensor_id":     7,
//		"temperature_c": -5,
//		"humidity_pph":  16,
//		"timestamp":     1445799694,
//	}, buf, 0)
//
//	v, err := rec.Decode(buf, 0)
//
// # Support status
//
// This package implements the full node algebra described by its design
// document: numeric and byte/string leaves, external (greedy/offset)
// layouts, structures, sequences, bit-packed structures, and tagged unions
// with a replaceable variant chooser. It does not implement schema
// evolution, a self-describing wire format, or a streaming interface — the
// caller always addresses a contiguous, already-allocated byte region by
// offset.
package layout
