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

package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layoutkit/layout"
)

func TestBitStructure_LSBFirstRoundTrip(t *testing.T) {
	bs, err := layout.Bits(2, true, false, "flags").
		AddField(3, "a").
		AddField(5, "b").
		AddField(8, "c").
		Build()
	require.NoError(t, err)

	buf := make([]byte, 2)
	n, err := bs.Encode(layout.Record{"a": uint64(5), "b": uint64(17), "c": uint64(0xA5)}, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0x8d, 0xa5}, buf)

	v, err := bs.Decode(buf, 0)
	require.NoError(t, err)
	rec := v.(layout.Record)
	assert.Equal(t, uint32(5), rec["a"])
	assert.Equal(t, uint32(17), rec["b"])
	assert.Equal(t, uint32(0xA5), rec["c"])
}

func TestBitStructure_MSBFirst(t *testing.T) {
	bs, err := layout.Bits(1, true, true, "flags").
		AddField(3, "a").
		AddField(5, "b").
		Build()
	require.NoError(t, err)

	buf := make([]byte, 1)
	_, err = bs.Encode(layout.Record{"a": uint64(0b101), "b": uint64(0b10110)}, buf, 0)
	require.NoError(t, err)
	// a occupies the top 3 bits, b the bottom 5: 101 10110 = 0xb6.
	assert.Equal(t, []byte{0xb6}, buf)
}

func TestBitStructure_Boolean(t *testing.T) {
	bs, err := layout.Bits(1, true, false, "flags").
		AddBoolean("enabled").
		AddField(7, "rest").
		Build()
	require.NoError(t, err)

	buf := make([]byte, 1)
	_, err = bs.Encode(layout.Record{"enabled": true, "rest": uint64(0)}, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, buf)

	v, err := bs.Decode(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, true, v.(layout.Record)["enabled"])
}

func TestBitStructure_EncodePreservesUnaddressedBitsAndMissingFields(t *testing.T) {
	bs, err := layout.Bits(1, true, false, "flags").
		AddField(4, "a").
		AddField(4, "b").
		Build()
	require.NoError(t, err)

	buf := []byte{0xF0} // a=0, b=0xF pre-existing.
	_, err = bs.Encode(layout.Record{"a": uint64(0x3)}, buf, 0)
	require.NoError(t, err)
	// Only a's nibble changes; b's pre-existing bits are preserved.
	assert.Equal(t, []byte{0xF3}, buf)
}

func TestBitStructureBuilder_RejectsOverflow(t *testing.T) {
	_, err := layout.Bits(1, true, false, "flags").
		AddField(4, "a").
		AddField(5, "b").
		Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, layout.ErrSchema)
}

func TestBitStructureBuilder_RejectsInvalidWordWidth(t *testing.T) {
	_, err := layout.Bits(5, true, false, "flags").Build()
	require.Error(t, err)
}
