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
package consts

import (
	"testing"

	"github.com/simon9721/s2ibis-go/pkg/util/assert"
)

func TestCornerString(t *testing.T) {
	cases := map[Corner]string{
		Typ: "typ",
		Min: "min",
		Max: "max",
	}

	for corner, want := range cases {
		assert.Equal(t, want, corner.String())
	}

	assert.Equal(t, "?", Corner(99).String())
}

func TestCornersOrder(t *testing.T) {
	want := [3]Corner{Typ, Min, Max}
	if Corners != want {
		t.Errorf("Corners = %v, want %v", Corners, want)
	}
}

func TestFilenamePrefix(t *testing.T) {
	cases := map[CurveType]string{
		CurvePullup:          "pu",
		CurvePulldown:        "pd",
		CurvePowerClamp:      "pclamp",
		CurveGndClamp:        "gclamp",
		CurveRamp:            "ramp",
		CurveRisingWaveform:  "rise",
		CurveFallingWaveform: "fall",
		CurveSeriesRSeries:   "rseries",
	}

	for curve, want := range cases {
		assert.Equal(t, want, FilenamePrefix(curve))
	}

	assert.Equal(t, "unk", FilenamePrefix(CurveType(99)))
}

func TestClassifyReservedCaseInsensitive(t *testing.T) {
	cases := []struct {
		name string
		want ReservedKind
	}{
		{"POWER", ReservedPower},
		{"power", ReservedPower},
		{"Gnd", ReservedGND},
		{"NC", ReservedNC},
		{"nc", ReservedNC},
		{"Dummy", ReservedDummy},
		{"NOMODEL", ReservedNoModel},
		{"NoModel", ReservedNoModel},
		{"INVERTER_3V3", NotReserved},
		{"", NotReserved},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyReserved(c.name))
	}
}

func TestRampFractionsOrdered(t *testing.T) {
	if RampLowFraction >= RampHighFraction {
		t.Errorf("RampLowFraction (%v) must be less than RampHighFraction (%v)", RampLowFraction, RampHighFraction)
	}
}
