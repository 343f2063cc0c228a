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

// Package assert holds internal invariant checks for the layout engine.
//
// Assert is reserved for conditions the package itself guarantees never to
// violate (e.g. a span that was already validated at construction time). It
// must never be used to reject caller input — that belongs to the error
// values returned by the exported API.
package assert

import "fmt"

// True panics if cond is false. The panic indicates a bug in this package,
// not a problem with caller-supplied data.
func True(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("layout: internal invariant violated: "+format, args...))
	}
}
