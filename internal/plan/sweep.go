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

	"github.com/simon9721/s2ibis-go/internal/consts"
)

// SweepRange is the [Start, End] range of a DC sweep.
type SweepRange struct {
	Start float64
	End   float64
}

// Span returns the (always positive) magnitude of the range.
func (r SweepRange) Span() float64 {
	return math.Abs(r.End - r.Start)
}

// PullupPulldownRange computes the pullup/pulldown sweep range of spec.md
// §4.1: Vgnd - Vmax to 2*Vmax.
func PullupPulldownRange(vgnd, vmax float64) SweepRange {
	return SweepRange{Start: vgnd - vmax, End: 2 * vmax}
}

// PowerClampRange computes the power-clamp sweep range: Vmax to 2*Vmax.
func PowerClampRange(vmax float64) SweepRange {
	return SweepRange{Start: vmax, End: 2 * vmax}
}

// GndClampRange computes the ground-clamp sweep range: Vgnd - Vmax to
// Vgnd + Vmax.
func GndClampRange(vgnd, vmax float64) SweepRange {
	return SweepRange{Start: vgnd - vmax, End: vgnd + vmax}
}

// Step computes the adaptive DC sweep step size of spec.md §4.1:
// step = max(0.01V, |range|/80). The 0.01V floor binds for any range
// narrower than 0.8V.
func Step(r SweepRange) float64 {
	nominal := r.Span() / consts.SweepStepDivisor
	if nominal < consts.MinSweepStep {
		return consts.MinSweepStep
	}

	return nominal
}

// NumPoints computes the number of sweep points for a range and step,
// clamped to the V/I table row cap: round(|range|/step) + 2, capped.
func NumPoints(r SweepRange, step float64) int {
	n := int(math.Round(r.Span()/step)) + 2
	if n > consts.VITableMaxRows {
		return consts.VITableMaxRows
	}

	if n < 2 {
		return 2
	}

	return n
}
