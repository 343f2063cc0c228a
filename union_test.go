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

func shapeUnion(t *testing.T) *layout.Union {
	t.Helper()
	tag := layout.NewPrefixDiscriminator(1, true, "variant")
	u, err := layout.NewUnion(tag, true, "shape").
		AddVariant(0, layout.U32("a"), "a").
		AddVariant(1, layout.Struct([]layout.Layout{
			layout.U16("x"),
			layout.U16("y"),
		}, "pos"), "pos").
		Build()
	require.NoError(t, err)
	return u
}

func TestUnion_DecodeRegisteredVariant(t *testing.T) {
	u := shapeUnion(t)
	v, err := u.Decode([]byte{0x01, 0x0a, 0x00, 0x14, 0x00}, 0)
	require.NoError(t, err)
	rec := v.(layout.Record)
	pos := rec["pos"].(layout.Record)
	assert.Equal(t, uint64(10), pos["x"])
	assert.Equal(t, uint64(20), pos["y"])
}

func TestUnion_DecodeUnknownTagFailsWithoutDefault(t *testing.T) {
	u := shapeUnion(t)
	_, err := u.Decode([]byte{0x02, 0, 0, 0, 0}, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, layout.ErrUnknownVariant)
}

func TestVariantLayout_EncodeRoundTrip(t *testing.T) {
	u := shapeUnion(t)
	a, ok := u.Variant(0)
	require.True(t, ok)

	buf := make([]byte, 5)
	n, err := a.Encode(layout.Record{"a": uint64(0xDEADBEEF)}, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte{0x00, 0xef, 0xbe, 0xad, 0xde}, buf)

	v, err := u.Decode(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xDEADBEEF), v.(layout.Record)["a"])
}

func TestUnion_GetSourceVariant(t *testing.T) {
	u := shapeUnion(t)

	variant, useDefault, err := u.GetSourceVariant(layout.Record{"a": uint64(1)})
	require.NoError(t, err)
	assert.False(t, useDefault)
	require.NotNil(t, variant)
	assert.Equal(t, int64(0), variant.Tag())

	variant, useDefault, err = u.GetSourceVariant(layout.Record{"pos": layout.Record{"x": uint64(1), "y": uint64(2)}})
	require.NoError(t, err)
	assert.False(t, useDefault)
	assert.Equal(t, int64(1), variant.Tag())

	_, _, err = u.GetSourceVariant(layout.Record{})
	assert.Error(t, err)
	assert.ErrorIs(t, err, layout.ErrAmbiguousVariant)
}

func TestUnion_DefaultLayoutMutualExclusion(t *testing.T) {
	tag := layout.NewPrefixDiscriminator(1, true, "variant")
	u, err := layout.NewUnion(tag, true, "u").
		WithDefault(layout.U32("value"), "content").
		AddVariant(1, layout.U16("a"), "a").
		Build()
	require.NoError(t, err)

	src := layout.Record{"variant": int64(1), "content": uint64(7)}
	variant, useDefault, err := u.GetSourceVariant(src)
	require.NoError(t, err)
	assert.True(t, useDefault)
	assert.Nil(t, variant)

	buf := make([]byte, u.Span())
	n, err := u.Encode(src, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, u.Span(), n)

	v, err := u.Decode(buf, 0)
	require.NoError(t, err)
	rec := v.(layout.Record)
	assert.Equal(t, int64(1), rec["variant"])
	assert.Equal(t, uint64(7), rec["content"])
}

func TestUnionBuilder_RejectsDuplicateTag(t *testing.T) {
	tag := layout.NewPrefixDiscriminator(1, true, "variant")
	_, err := layout.NewUnion(tag, true, "u").
		AddVariant(0, layout.U8("a"), "a").
		AddVariant(0, layout.U8("b"), "b").
		Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, layout.ErrSchema)
}

func TestUnionBuilder_RejectsOversizedVariantWithDefault(t *testing.T) {
	tag := layout.NewPrefixDiscriminator(1, true, "variant")
	_, err := layout.NewUnion(tag, true, "u").
		WithDefault(layout.U8("value"), "content").
		AddVariant(0, layout.U32("a"), "a").
		Build()
	require.Error(t, err)
}
