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

// Greedy is an external layout whose decode interprets "how many elements
// fit in the remainder of the buffer from offset" as an integer, equal to
// floor((len(buf)-offset) / elementSpan) (§4.4).
type Greedy struct {
	property    string
	elementSpan int
}

var _ ExternalLayout = Greedy{}

// NewGreedy constructs a Greedy external layout over elements of the given
// fixed span.
func NewGreedy(elementSpan int, property string) Greedy {
	if elementSpan <= 0 {
		panic(schemaErr("greedy element span must be positive, got %d", elementSpan))
	}
	return Greedy{property: property, elementSpan: elementSpan}
}

func (g Greedy) IsCount() bool  { return true }
func (g Greedy) Span() int      { return spanDynamic }
func (g Greedy) Property() string { return g.property }

func (g Greedy) Replicate(newProperty string) Layout {
	g.property = newProperty
	return g
}

func (g Greedy) FromArray([]any) (any, bool) { return nil, false }
func (g Greedy) MakeDestinationObject() any  { return nil }

func (g Greedy) GetSpan(buf []byte, offset int) (int, error) { return 0, nil }

func (g Greedy) Decode(buf []byte, offset int) (any, error) {
	if offset < 0 || offset > len(buf) {
		return nil, rangeErr(offset, "offset out of range for greedy")
	}
	return (len(buf) - offset) / g.elementSpan, nil
}

// Encode is a no-op: a Greedy count is inferred, never stored (§4.4).
func (g Greedy) Encode(value any, buf []byte, offset int) (int, error) { return 0, nil }

// OffsetLayout redirects to another layout at a signed relative offset from
// the consumer's base (§4.4). The offset may be negative, zero, or
// positive, enabling forward, backward, or internal references.
type OffsetLayout struct {
	property string
	target   Layout
	k        int
}

var _ ExternalLayout = OffsetLayout{}

// NewOffset constructs an OffsetLayout that reads/writes target at base+k,
// where base is the offset passed to Decode/Encode/GetSpan by the consumer.
func NewOffset(target Layout, k int, property string) OffsetLayout {
	return OffsetLayout{property: property, target: target, k: k}
}

func (o OffsetLayout) IsCount() bool {
	if ext, ok := o.target.(ExternalLayout); ok {
		return ext.IsCount()
	}
	// A plain integer leaf used as a discriminator/count source also
	// qualifies, matching §4.8 discriminator form 1.
	switch o.target.(type) {
	case Int:
		return true
	}
	return false
}

func (o OffsetLayout) Span() int        { return o.target.Span() }
func (o OffsetLayout) Property() string { return o.property }

func (o OffsetLayout) Replicate(newProperty string) Layout {
	o.property = newProperty
	return o
}

func (o OffsetLayout) FromArray(values []any) (any, bool) { return o.target.FromArray(values) }
func (o OffsetLayout) MakeDestinationObject() any         { return o.target.MakeDestinationObject() }

func (o OffsetLayout) GetSpan(buf []byte, offset int) (int, error) {
	return o.target.GetSpan(buf, offset+o.k)
}

func (o OffsetLayout) Decode(buf []byte, offset int) (any, error) {
	return o.target.Decode(buf, offset+o.k)
}

func (o OffsetLayout) Encode(value any, buf []byte, offset int) (int, error) {
	return o.target.Encode(value, buf, offset+o.k)
}
