// Copyright the s2ibis authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package config

import "testing"

func TestParseNumberPlain(t *testing.T) {
	v, err := parseNumber("3.3")
	if err != nil {
		t.Fatalf("parseNumber(3.3) error: %v", err)
	}
	if v != 3.3 {
		t.Errorf("parseNumber(3.3) = %v, want 3.3", v)
	}
}

func TestParseNumberScientific(t *testing.T) {
	v, err := parseNumber("1.2e-9")
	if err != nil {
		t.Fatalf("parseNumber error: %v", err)
	}
	if v != 1.2e-9 {
		t.Errorf("parseNumber(1.2e-9) = %v, want 1.2e-9", v)
	}
}

func TestParseNumberSISuffixes(t *testing.T) {
	cases := []struct {
		tok  string
		want float64
	}{
		{"50n", 50e-9},
		{"3.3p", 3.3e-12},
		{"10f", 10e-15},
	}

	for _, c := range cases {
		v, err := parseNumber(c.tok)
		if err != nil {
			t.Fatalf("parseNumber(%q) error: %v", c.tok, err)
		}
		if v != c.want {
			t.Errorf("parseNumber(%q) = %v, want %v", c.tok, v, c.want)
		}
	}
}

func TestParseNumberInvalid(t *testing.T) {
	for _, tok := range []string{"", "abc", "3.3x", "NA"} {
		if _, err := parseNumber(tok); err == nil {
			t.Errorf("parseNumber(%q) should error", tok)
		}
	}
}

func TestIsUnsetTokens(t *testing.T) {
	for _, tok := range []string{"NA", "na", "NC", "nc", "", "  "} {
		if !isUnset(tok) {
			t.Errorf("isUnset(%q) = false, want true", tok)
		}
	}

	for _, tok := range []string{"3.3", "0", "NONE"} {
		if isUnset(tok) {
			t.Errorf("isUnset(%q) = true, want false", tok)
		}
	}
}
