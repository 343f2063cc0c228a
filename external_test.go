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

func TestGreedy_Count(t *testing.T) {
	g := layout.NewGreedy(3, "count")
	buf := make([]byte, 10)

	v, err := g.Decode(buf, 1)
	require.NoError(t, err)
	assert.Equal(t, (len(buf)-1)/3, v)
	assert.True(t, g.IsCount())

	n, err := g.Encode(999, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestOffsetLayout_Commutativity(t *testing.T) {
	target := layout.NewInt(2, false, true, "v")
	off := layout.NewOffset(target, 4, "v")

	buf := make([]byte, 10)
	n, err := off.Encode(uint64(0xabcd), buf, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	direct, err := target.Decode(buf, 6)
	require.NoError(t, err)
	viaOffset, err := off.Decode(buf, 2)
	require.NoError(t, err)
	assert.Equal(t, direct, viaOffset)
}

func TestOffsetLayout_IsCountDelegates(t *testing.T) {
	countLeaf := layout.NewInt(1, false, true, "n")
	off := layout.NewOffset(countLeaf, -1, "n")
	assert.True(t, off.IsCount())

	nonCount := layout.NewUTF8("s")
	offNonCount := layout.NewOffset(nonCount, 0, "s")
	assert.False(t, offNonCount.IsCount())
}
