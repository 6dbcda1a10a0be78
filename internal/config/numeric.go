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

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// siSuffixes maps the SI-style numeric suffixes the structured form accepts
// (spec.md §6 "numeric values may carry SI-style suffixes") to their
// power-of-ten exponent.
var siSuffixes = map[byte]int{
	'n': -9,
	'p': -12,
	'f': -15,
}

// parseNumber parses a numeric literal that is either plain scientific
// notation ("3.3", "1.2e-9") or a magnitude with a trailing SI suffix
// ("3.3n", "50p"). Returns an error for anything else, including the
// reserved tokens "NA"/"NC" which callers must special-case before calling
// this.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty numeric literal")
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}

	last := s[len(s)-1]

	exp, ok := siSuffixes[last]
	if !ok {
		return 0, fmt.Errorf("invalid numeric literal %q", s)
	}

	// Parse "3.3n" as "3.3e-9" so the result is the nearest float to the
	// literal, rather than the rounded product of two floats.
	if v, err := strconv.ParseFloat(fmt.Sprintf("%se%d", s[:len(s)-1], exp), 64); err == nil {
		return v, nil
	}

	mag, err := strconv.ParseFloat(s[:len(s)-1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric literal %q: %w", s, err)
	}

	return mag * math.Pow10(exp), nil
}

// isUnset reports whether a flat-form token is one of the reserved
// "unset"/"no-connect" sentinels (spec.md §6).
func isUnset(tok string) bool {
	u := strings.ToUpper(strings.TrimSpace(tok))
	return u == "NA" || u == "NC" || u == ""
}
