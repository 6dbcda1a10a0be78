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

// spectreDialect implements Dialect for Cadence Spectre. Spectre's ASCII
// raw output (psfascii) separates value lines with a leading tag and a
// comma between columns, rather than HSPICE's whitespace columns.
type spectreDialect struct{}

func (spectreDialect) Name() string { return "spectre" }

var spectreProfile = profile{
	name:        "spectre",
	commentChar: "//",
	optionsCard: "simulatorOptions options reltol=1e-3 vabstol=1e-6 iabstol=1e-12",
	includeCard: func(path string) string { return fmt.Sprintf("include \"%s\"", path) },
	dcCard: func(sweepVar string, start, end, step float64) string {
		return fmt.Sprintf("sweepDC dc dev=Vsweep param=dc start=%.6g stop=%.6g step=%.6g", start, end, step)
	},
	tranCard: func(tstep, tstop float64) string {
		return fmt.Sprintf("tranAnalysis tran stop=%.4gn step=%.4gn", tstop*1e9, tstep*1e9)
	},
	printDCCard: func(probe string) string {
		return fmt.Sprintf("save %s:p", probe)
	},
	printTranCard: func(probes ...string) string {
		return fmt.Sprintf("save %s %s:p", probes[0], probes[1])
	},
}

func (d spectreDialect) RenderDeck(req DeckRequest) (string, error) {
	return spectreProfile.RenderDeck(req)
}

// ParseDC parses Spectre's comma-separated "V,I" value lines, one per sweep
// point. Lines without a comma or whose first field is not a number (such as
// a "VALUE" marker line) are skipped; no marker line is required.
func (spectreDialect) ParseDC(data []byte) ([]DCPoint, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	var points []DCPoint

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.Contains(line, ",") {
			continue
		}

		cols := strings.Split(line, ",")
		if len(cols) < 2 {
			continue
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(cols[0]), 64)
		if err != nil {
			continue // header/marker line, not a data row
		}

		i, err := strconv.ParseFloat(strings.TrimSpace(cols[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("spectre DC: bad current field %q: %w", cols[1], err)
		}

		points = append(points, DCPoint{V: v, I: i})
	}

	return points, scanner.Err()
}

// ParseTran parses Spectre's "t,V,I" comma-separated transient rows.
func (spectreDialect) ParseTran(data []byte) ([]TranPoint, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	var points []TranPoint

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.Contains(line, ",") {
			continue
		}

		cols := strings.Split(line, ",")
		if len(cols) < 3 {
			continue
		}

		t, err := strconv.ParseFloat(strings.TrimSpace(cols[0]), 64)
		if err != nil {
			continue
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(cols[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("spectre TRAN: bad voltage field %q: %w", cols[1], err)
		}

		i, err := strconv.ParseFloat(strings.TrimSpace(cols[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("spectre TRAN: bad current field %q: %w", cols[2], err)
		}

		points = append(points, TranPoint{T: t, V: v, I: i})
	}

	return points, scanner.Err()
}
