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

// Package golden loads YAML-described byte/record fixtures used by the
// package's scenario tests.
package golden

import "gopkg.in/yaml.v3"

// Case is one named fixture: a hex-encoded byte region and the record it is
// expected to decode to.
type Case struct {
	Name   string         `yaml:"name"`
	Hex    string         `yaml:"hex"`
	Expect map[string]any `yaml:"expect"`
}

// Load parses a YAML document containing a list of [Case] values.
func Load(data []byte) ([]Case, error) {
	var cases []Case
	if err := yaml.Unmarshal(data, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}
