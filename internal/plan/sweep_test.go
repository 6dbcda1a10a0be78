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
package plan

import (
	"math"
	"testing"

	"github.com/simon9721/s2ibis-go/internal/consts"
)

func TestRangeConstructors(t *testing.T) {
	if got := PullupPulldownRange(0, 3.3); got != (SweepRange{Start: -3.3, End: 6.6}) {
		t.Errorf("PullupPulldownRange(0, 3.3) = %+v, want {-3.3 6.6}", got)
	}
	if got := PowerClampRange(3.3); got != (SweepRange{Start: 3.3, End: 6.6}) {
		t.Errorf("PowerClampRange(3.3) = %+v, want {3.3 6.6}", got)
	}
	if got := GndClampRange(0, 3.3); got != (SweepRange{Start: -3.3, End: 3.3}) {
		t.Errorf("GndClampRange(0, 3.3) = %+v, want {-3.3 3.3}", got)
	}
}

func TestStepFloor(t *testing.T) {
	// A narrow range (< 0.8V) should bind to the 0.01V floor.
	narrow := SweepRange{Start: 0, End: 0.5}
	if got := Step(narrow); got != consts.MinSweepStep {
		t.Errorf("Step(narrow) = %v, want floor %v", got, consts.MinSweepStep)
	}

	wide := SweepRange{Start: -3.3, End: 6.6}
	want := wide.Span() / consts.SweepStepDivisor
	if got := Step(wide); math.Abs(got-want) > 1e-12 {
		t.Errorf("Step(wide) = %v, want %v", got, want)
	}
}

func TestNumPointsCapped(t *testing.T) {
	r := SweepRange{Start: 0, End: 1000}
	tiny := 0.001 // would imply far more than VITableMaxRows points
	if got := NumPoints(r, tiny); got != consts.VITableMaxRows {
		t.Errorf("NumPoints() = %d, want capped at %d", got, consts.VITableMaxRows)
	}
}

func TestNumPointsMinimumTwo(t *testing.T) {
	r := SweepRange{Start: 0, End: 0}
	if got := NumPoints(r, 1.0); got < 2 {
		t.Errorf("NumPoints() = %d, want at least 2", got)
	}
}

func TestSpanIsAbsolute(t *testing.T) {
	r := SweepRange{Start: 5, End: -5}
	if got := r.Span(); got != 10 {
		t.Errorf("Span() = %v, want 10", got)
	}
}
