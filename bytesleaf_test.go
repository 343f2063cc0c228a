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

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layoutkit/layout"
)

func TestBlob_FixedLength(t *testing.T) {
	b := layout.NewBlob(4, "id")
	buf := make([]byte, 4)
	n, err := b.Encode([]byte{0xde, 0xad, 0xbe, 0xef}, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	v, err := b.Decode(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, v)
}

func TestBlob_WrongLengthFails(t *testing.T) {
	b := layout.NewBlob(4, "id")
	_, err := b.Encode([]byte{0x01, 0x02}, make([]byte, 4), 0)
	assert.Error(t, err)
}

// A 16-byte blob is exactly wide enough to carry a UUID, demonstrating a
// caller-owned value type on top of the plain byte leaf.
func TestBlob_UUID(t *testing.T) {
	id := uuid.New()
	b := layout.NewBlob(16, "id")
	buf := make([]byte, 16)

	raw, err := id.MarshalBinary()
	require.NoError(t, err)
	_, err = b.Encode(raw, buf, 0)
	require.NoError(t, err)

	v, err := b.Decode(buf, 0)
	require.NoError(t, err)
	got, err := uuid.FromBytes(v.([]byte))
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestCString_RoundTrip(t *testing.T) {
	c := layout.NewCString("s")
	buf := []byte{0x68, 0x69, 0x00, 0xff}

	span, err := c.GetSpan(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, span)

	v, err := c.Decode(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "hi", v)

	out := make([]byte, 3)
	n, err := c.Encode("hi", out, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte{0x68, 0x69, 0x00}, out)
}

func TestUTF8_MaxSpan(t *testing.T) {
	u := layout.NewUTF8("s", layout.WithMaxSpan(3))
	buf := make([]byte, 3)
	_, err := u.Encode("hi!", buf, 0)
	require.NoError(t, err)

	_, err = u.Encode("nope!", make([]byte, 5), 0)
	assert.Error(t, err)
}

func TestUTF8_ImplicitLength(t *testing.T) {
	u := layout.NewUTF8("s")
	buf := []byte("hello")
	v, err := u.Decode(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestConstant_DecodeDoesNotAliasSource(t *testing.T) {
	src := []byte{1, 2, 3}
	c := layout.NewConstant(src, "magic")

	v1, err := c.Decode(nil, 0)
	require.NoError(t, err)
	got := v1.([]byte)
	got[0] = 0xff

	v2, err := c.Decode(nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, v2)
	assert.Equal(t, []byte{1, 2, 3}, src)
}

func TestConstant_EncodeIsNoop(t *testing.T) {
	c := layout.NewConstant(uint64(42), "magic")
	n, err := c.Encode(nil, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, c.Span())
}
