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

// Package bitops holds small generic bit-mask helpers used by the bit-packed
// word sublayer.
package bitops

import "golang.org/x/exp/constraints"

// Mask returns a value of T with the low n bits set, saturating to all-ones
// if n is at or beyond T's bit width.
func Mask[T constraints.Unsigned](n int) T {
	width := bitWidth[T]()
	if n <= 0 {
		return 0
	}
	if n >= width {
		return ^T(0)
	}
	return T(1)<<uint(n) - 1
}

func bitWidth[T constraints.Unsigned]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 8
	case uint16:
		return 16
	case uint32:
		return 32
	case uint64:
		return 64
	default:
		return 64
	}
}
