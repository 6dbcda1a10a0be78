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

// Package consts holds the curve-type enumeration, reserved model-name
// tokens, per-corner output filename prefixes, numeric sentinels and
// per-table point caps shared across the pipeline.
package consts

// Corner identifies one of the three process/voltage/temperature corners an
// electrical quantity may be characterized at.
type Corner uint8

// The three supported corners, in emission order.
const (
	Typ Corner = iota
	Min
	Max
)

// String renders a Corner using the filename/table tokens the rest of the
// pipeline expects ("typ", "min", "max").
func (c Corner) String() string {
	switch c {
	case Typ:
		return "typ"
	case Min:
		return "min"
	case Max:
		return "max"
	default:
		return "?"
	}
}

// Corners lists all three corners in the order tables and decks are emitted.
var Corners = [3]Corner{Typ, Min, Max}

// CurveType enumerates the characterization curves the planner can request.
type CurveType uint8

// The characterization curve kinds named in spec.md §4.1's decision table.
const (
	CurvePullup CurveType = iota
	CurvePulldown
	CurvePowerClamp
	CurveGndClamp
	CurveRamp
	CurveRisingWaveform
	CurveFallingWaveform
	CurveSeriesRSeries
)

// String renders the curve type using the token used in filename prefixes
// and log messages.
func (c CurveType) String() string {
	switch c {
	case CurvePullup:
		return "pullup"
	case CurvePulldown:
		return "pulldown"
	case CurvePowerClamp:
		return "power_clamp"
	case CurveGndClamp:
		return "gnd_clamp"
	case CurveRamp:
		return "ramp"
	case CurveRisingWaveform:
		return "rising_waveform"
	case CurveFallingWaveform:
		return "falling_waveform"
	case CurveSeriesRSeries:
		return "r_series"
	default:
		return "unknown"
	}
}

// filenamePrefixes maps each curve type to the deck/result filename prefix
// used by spec.md §4.2's "Filename discipline". Keyed centrally so the
// iterate-and-reuse policy (spec.md §5) can recognise pre-existing outputs.
var filenamePrefixes = map[CurveType]string{
	CurvePullup:          "pu",
	CurvePulldown:        "pd",
	CurvePowerClamp:      "pclamp",
	CurveGndClamp:        "gclamp",
	CurveRamp:            "ramp",
	CurveRisingWaveform:  "rise",
	CurveFallingWaveform: "fall",
	CurveSeriesRSeries:   "rseries",
}

// FilenamePrefix returns the deck/result filename prefix for a curve type.
func FilenamePrefix(c CurveType) string {
	if p, ok := filenamePrefixes[c]; ok {
		return p
	}

	return "unk"
}

// ReservedKind enumerates the reserved model-name tokens that bypass the
// planner entirely (spec.md §3 "Reserved model names").
type ReservedKind uint8

// The reserved tokens, case-insensitive in configuration input.
const (
	NotReserved ReservedKind = iota
	ReservedPower
	ReservedGND
	ReservedNC
	ReservedDummy
	ReservedNoModel
)

var reservedNames = map[string]ReservedKind{
	"POWER":   ReservedPower,
	"GND":     ReservedGND,
	"NC":      ReservedNC,
	"DUMMY":   ReservedDummy,
	"NOMODEL": ReservedNoModel,
}

// ClassifyReserved returns the ReservedKind for a model name, or
// NotReserved if the name is an ordinary model reference. Comparison is
// case-insensitive per spec.md §3.
func ClassifyReserved(modelName string) ReservedKind {
	upper := upperASCII(modelName)
	if k, ok := reservedNames[upper]; ok {
		return k
	}

	return NotReserved
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}

	return string(b)
}

// VITableMaxRows is the IBIS 1.x grammar cap on V/I table rows (spec.md §3).
const VITableMaxRows = 100

// VTTableRowsPre4 is the V/T waveform row count used for IBIS versions
// below 4.0.
const VTTableRowsPre4 = 100

// VTTableRowsPost4 is the V/T waveform row count used for IBIS versions
// 4.0 and above.
const VTTableRowsPost4 = 1000

// NASentinel is the value substituted for an unavailable corner in an
// emitted table (spec.md §4.6).
const NASentinel = "NA"

// MinSweepStep is the floor applied to adaptive DC sweep step sizing
// (spec.md §4.1 "Adaptive step sizing").
const MinSweepStep = 0.01

// SweepStepDivisor divides the sweep range to derive the nominal step size
// before the MinSweepStep floor is applied.
const SweepStepDivisor = 80.0

// DefaultLoadResistance is the default load resistor used for ramp-rate
// extraction (spec.md §4.5).
const DefaultLoadResistance = 50.0

// RampLowFraction and RampHighFraction bound the 20%-80% ramp-rate
// measurement window (spec.md §4.5 "Ramp rate").
const (
	RampLowFraction  = 0.20
	RampHighFraction = 0.80
)
