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
package dialect

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// eldoDialect implements Dialect for Mentor/Siemens Eldo. Eldo's `.PRINT`
// output uses semicolon-separated columns and a `.EXTRACT`-style blank
// line before the table proper.
type eldoDialect struct{}

func (eldoDialect) Name() string { return "eldo" }

var eldoProfile = profile{
	name:        "eldo",
	commentChar: "*",
	optionsCard: ".OPTION POST ARI",
	includeCard: func(path string) string { return fmt.Sprintf(".INCLUDE '%s'", path) },
	dcCard: func(sweepVar string, start, end, step float64) string {
		return fmt.Sprintf(".DC Vsweep %.6g %.6g %.6g", start, end, step)
	},
	tranCard: func(tstep, tstop float64) string {
		return fmt.Sprintf(".TRAN %.4gn %.4gn", tstep*1e9, tstop*1e9)
	},
	printDCCard: func(probe string) string {
		return fmt.Sprintf(".PRINT DC I(%s)", probe)
	},
	printTranCard: func(probes ...string) string {
		return fmt.Sprintf(".PRINT TRAN V(%s);I(%s)", probes[0], probes[1])
	},
}

func (d eldoDialect) RenderDeck(req DeckRequest) (string, error) {
	return eldoProfile.RenderDeck(req)
}

// ParseDC parses Eldo's semicolon-delimited "V;I" rows.
func (eldoDialect) ParseDC(data []byte) ([]DCPoint, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	var points []DCPoint

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "*") || !strings.Contains(line, ";") {
			continue
		}

		cols := strings.Split(line, ";")
		if len(cols) < 2 {
			continue
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(cols[0]), 64)
		if err != nil {
			continue
		}

		i, err := strconv.ParseFloat(strings.TrimSpace(cols[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("eldo DC: bad current field %q: %w", cols[1], err)
		}

		points = append(points, DCPoint{V: v, I: i})
	}

	return points, scanner.Err()
}

// ParseTran parses Eldo's semicolon-delimited "t;V;I" rows.
func (eldoDialect) ParseTran(data []byte) ([]TranPoint, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	var points []TranPoint

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "*") || !strings.Contains(line, ";") {
			continue
		}

		cols := strings.Split(line, ";")
		if len(cols) < 3 {
			continue
		}

		t, err := strconv.ParseFloat(strings.TrimSpace(cols[0]), 64)
		if err != nil {
			continue
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(cols[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("eldo TRAN: bad voltage field %q: %w", cols[1], err)
		}

		i, err := strconv.ParseFloat(strings.TrimSpace(cols[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("eldo TRAN: bad current field %q: %w", cols[2], err)
		}

		points = append(points, TranPoint{T: t, V: v, I: i})
	}

	return points, scanner.Err()
}
