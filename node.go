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

// spanDynamic is the sentinel span value meaning "ask me via GetSpan"
// (§3, "negative sentinel means ask me via getSpan").
const spanDynamic = -1

// Layout is the contract every node in the layout tree implements (§4.1).
//
// Decode interprets the bytes at buf[offset:] and returns a structured
// value. Encode writes a structured value at buf[offset:] and returns the
// number of bytes written, not counting bytes written by external siblings
// on its behalf (e.g. a sequence count stored outside the sequence itself).
// GetSpan returns the exact encoded length of one instance at offset; it
// must not require buf when the layout is fixed-span.
type Layout interface {
	Decode(buf []byte, offset int) (any, error)
	Encode(value any, buf []byte, offset int) (int, error)
	GetSpan(buf []byte, offset int) (int, error)

	// Span returns the node's static span, or a negative value if the node
	// is variable-span (§3).
	Span() int

	// Property returns the name this node is assigned inside a container
	// that assembles a record, or "" if the node is unnamed.
	Property() string

	// Replicate returns a shallow copy of this node with its property
	// renamed (§4.1).
	Replicate(newProperty string) Layout

	// FromArray pairs positional values with named children in order,
	// skipping unnamed children and ignoring extras. Only meaningful for
	// record-producing nodes (Structure, BitStructure, a VariantLayout
	// wrapping a Structure); other nodes return (nil, false).
	FromArray(values []any) (any, bool)

	// MakeDestinationObject returns a fresh, empty destination value: a
	// bound-type instance if one was registered via [Bind], else a
	// [Record]. Nodes that do not produce records return nil.
	MakeDestinationObject() any
}

// ExternalLayout is a [Layout] whose purpose is to locate or derive a value
// rather than occupy space within its parent (§3, "External layout").
type ExternalLayout interface {
	Layout

	// IsCount reports whether this layout decodes to a non-negative
	// integer usable as a count, length, or discriminator.
	IsCount() bool
}

// isFixed reports whether span denotes a fixed-span node.
func isFixed(span int) bool { return span >= 0 }

// recordDestination returns a caller-bound destination object if bt is
// non-nil, else a fresh empty [Record]. Shared by every record-producing
// node (Structure, BitStructure, VariantLayout).
func recordDestination(bt *boundType) any {
	if bt != nil {
		return bt.newFunc()
	}
	return Record{}
}

// boundType records a user type bound to a layout via [Bind].
type boundType struct {
	newFunc func() any
}
