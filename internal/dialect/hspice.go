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

// hspiceDialect implements Dialect for Synopsys HSPICE. Its `.PRINT`
// output is a whitespace-column table with a header row; the first column
// is always the swept or time variable.
type hspiceDialect struct{}

func (hspiceDialect) Name() string { return "hspice" }

var hspiceProfile = profile{
	name:        "hspice",
	commentChar: "*",
	optionsCard: ".OPTIONS POST=2 INGOLD=2",
	includeCard: func(path string) string { return fmt.Sprintf(".INC '%s'", path) },
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
		return fmt.Sprintf(".PRINT TRAN V(%s) I(%s)", probes[0], probes[1])
	},
}

func (d hspiceDialect) RenderDeck(req DeckRequest) (string, error) {
	return hspiceProfile.RenderDeck(req)
}

// ParseDC parses an HSPICE `.PRINT DC` table: a header line starting with
// "sweep", then one whitespace-delimited "<V> <I>" row per line.
func (hspiceDialect) ParseDC(data []byte) ([]DCPoint, error) {
	return parseTwoColumnTable(data, "sweep")
}

// ParseTran parses an HSPICE `.PRINT TRAN` table: "<t> <V> <I>" rows.
func (hspiceDialect) ParseTran(data []byte) ([]TranPoint, error) {
	return parseThreeColumnTable(data, "time")
}

func parseTwoColumnTable(data []byte, headerToken string) ([]DCPoint, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	var points []DCPoint

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "*") || strings.Contains(strings.ToLower(line), headerToken) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("hspice DC: bad voltage column %q: %w", fields[0], err)
		}

		i, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("hspice DC: bad current column %q: %w", fields[1], err)
		}

		points = append(points, DCPoint{V: v, I: i})
	}

	return points, scanner.Err()
}

func parseThreeColumnTable(data []byte, headerToken string) ([]TranPoint, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	var points []TranPoint

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "*") || strings.Contains(strings.ToLower(line), headerToken) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}

		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("transient: bad time column %q: %w", fields[0], err)
		}

		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("transient: bad voltage column %q: %w", fields[1], err)
		}

		i, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("transient: bad current column %q: %w", fields[2], err)
		}

		points = append(points, TranPoint{T: t, V: v, I: i})
	}

	return points, scanner.Err()
}
