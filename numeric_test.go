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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layoutkit/layout"
)

func TestInt_RoundTrip(t *testing.T) {
	cases := []struct {
		name         string
		width        int
		signed       bool
		littleEndian bool
		value        int64
		want         []byte
	}{
		{"u8", 1, false, true, 5, []byte{0x05}},
		{"u16le", 2, false, true, 0x1234, []byte{0x34, 0x12}},
		{"u16be", 2, false, false, 0x1234, []byte{0x12, 0x34}},
		{"u24le", 3, false, true, 0x010203, []byte{0x03, 0x02, 0x01}},
		{"s16le_negative", 2, true, true, -5, []byte{0xfb, 0xff}},
		{"s32be_negative", 4, true, false, -1, []byte{0xff, 0xff, 0xff, 0xff}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := layout.NewInt(tc.width, tc.signed, tc.littleEndian, "v")
			buf := make([]byte, tc.width)
			written, err := n.Encode(tc.value, buf, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.width, written)
			assert.Equal(t, tc.want, buf)

			v, err := n.Decode(buf, 0)
			require.NoError(t, err)
			if tc.signed {
				assert.Equal(t, tc.value, v)
			} else {
				assert.Equal(t, uint64(tc.value), v)
			}
		})
	}
}

func TestInt_EndiannessDuality(t *testing.T) {
	le := layout.NewInt(4, false, true, "v")
	be := layout.NewInt(4, false, false, "v")

	buf := []byte{0x01, 0x02, 0x03, 0x04}
	reversed := []byte{0x04, 0x03, 0x02, 0x01}

	got, err := le.Decode(buf, 0)
	require.NoError(t, err)
	want, err := be.Decode(reversed, 0)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestInt_EncodeRangeError(t *testing.T) {
	n := layout.NewInt(1, false, true, "v")
	buf := make([]byte, 1)
	_, err := n.Encode(256, buf, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, layout.ErrRange))
}

func TestInt_DecodeShortBuffer(t *testing.T) {
	n := layout.NewInt(4, false, true, "v")
	_, err := n.Decode([]byte{0x01, 0x02}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, layout.ErrRange))
}

func TestNearInt_Precision(t *testing.T) {
	n := layout.NewNearInt(false, true, "v")
	buf := make([]byte, 8)
	_, err := n.Encode(uint64(123456789), buf, 0)
	require.NoError(t, err)

	v, err := n.Decode(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, float64(123456789), v)
}

func TestFloat_RoundTrip(t *testing.T) {
	f32 := layout.NewFloat(4, true, "v")
	buf := make([]byte, 4)
	_, err := f32.Encode(float64(3.5), buf, 0)
	require.NoError(t, err)
	v, err := f32.Decode(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(3.5), v)

	f64 := layout.NewFloat(8, false, "v")
	buf8 := make([]byte, 8)
	_, err = f64.Encode(float64(2.25), buf8, 0)
	require.NoError(t, err)
	v8, err := f64.Decode(buf8, 0)
	require.NoError(t, err)
	assert.Equal(t, float64(2.25), v8)
}

func TestNewInt_InvalidWidthPanics(t *testing.T) {
	assert.Panics(t, func() { layout.NewInt(7, false, true, "v") })
}
