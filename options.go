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

// structConfig holds the construction-time settings for [Struct].
type structConfig struct {
	decodePrefixes bool
}

// StructOption is a configuration setting for [Struct].
type StructOption struct{ apply func(*structConfig) }

// WithDecodePrefixes marks a structure as willing to decode a truncated
// buffer: if a child's decode would run past the end of the buffer, decode
// stops cleanly and returns the partial record built so far, instead of
// failing with a range error (§4.5).
func WithDecodePrefixes() StructOption {
	return StructOption{func(c *structConfig) { c.decodePrefixes = true }}
}

// utf8Config holds the construction-time settings for [UTF8].
type utf8Config struct {
	maxSpan int // 0 means unbounded.
}

// UTF8Option is a configuration setting for [UTF8].
type UTF8Option struct{ apply func(*utf8Config) }

// WithMaxSpan bounds the encoded length of a UTF8 leaf. Encode fails with a
// range error if the UTF-8 encoding of the source string would exceed n
// bytes (§4.3).
func WithMaxSpan(n int) UTF8Option {
	return UTF8Option{func(c *utf8Config) { c.maxSpan = n }}
}
