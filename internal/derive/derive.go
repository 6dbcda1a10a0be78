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

// Package derive implements the Curve Deriver of spec.md §4.5: it turns the
// raw per-corner simulation samples the Result Reader produced into the
// IBIS-ready V/I tables, V/T waveform tables, and ramp-rate records a Model
// carries, applying enable-based subtraction, clamp-region splitting,
// decimation to the grammar's row caps, and percentage derating when an
// explicit corner was never simulated.
package derive

import (
	"fmt"
	"math"
	"sort"

	"github.com/simon9721/s2ibis-go/internal/consts"
	"github.com/simon9721/s2ibis-go/internal/errs"
	"github.com/simon9721/s2ibis-go/internal/model"
)

// DCSet holds one curve's raw (V, I) samples at each of the three corners,
// indexed by consts.Corner. A corner with no samples (not simulated, or
// absent from the sweep plan) is represented by a nil slice.
type DCSet [3][]model.VIPoint

// TranSet holds one curve's raw (t, V, I) samples at each corner.
type TranSet [3][]model.TVIPoint

// interpolate returns the linearly-interpolated current at v from a
// V-sorted sample set, clamping to the nearest endpoint outside the
// sampled range. Reports false only when points is empty.
func interpolate(points []model.VIPoint, v float64) (float64, bool) {
	n := len(points)
	if n == 0 {
		return 0, false
	}

	if n == 1 || v <= points[0].V {
		return points[0].I, true
	}

	if v >= points[n-1].V {
		return points[n-1].I, true
	}

	idx := sort.Search(n, func(i int) bool { return points[i].V >= v })
	lo, hi := points[idx-1], points[idx]

	if hi.V == lo.V {
		return lo.I, true
	}

	frac := (v - lo.V) / (hi.V - lo.V)

	return lo.I + frac*(hi.I-lo.I), true
}

// Subtract computes the enable-based driver curve per spec.md §4.5:
// I_driver(V) = I_enabled(V) - I_disabled(V), sampled on the enabled
// sweep's own V grid at every corner that has data.
func Subtract(enabled, disabled DCSet) DCSet {
	var out DCSet

	for c := 0; c < 3; c++ {
		if len(enabled[c]) == 0 {
			continue
		}

		rows := make([]model.VIPoint, 0, len(enabled[c]))

		for _, p := range enabled[c] {
			dv, ok := interpolate(disabled[c], p.V)
			if !ok {
				dv = 0
			}

			rows = append(rows, model.VIPoint{V: p.V, I: p.I - dv})
		}

		out[c] = rows
	}

	return out
}

// DriverSplit splits one combined driver (or direct single-sweep) curve
// into its pullup and pulldown halves by sign region (spec.md §4.5
// "the driver sources current near the high rail and sinks it
// otherwise"): samples with non-negative current are pullup behaviour,
// negative current is pulldown behaviour.
func DriverSplit(raw DCSet) (pullup, pulldown DCSet) {
	for c := 0; c < 3; c++ {
		for _, p := range raw[c] {
			if p.I >= 0 {
				pullup[c] = append(pullup[c], p)
			} else {
				pulldown[c] = append(pulldown[c], p)
			}
		}
	}

	return pullup, pulldown
}

// ClampSplit splits a disabled-state (or direct clamp) sweep into its
// power-clamp and ground-clamp halves by voltage region: samples at or above
// the high rail belong to the power clamp, samples at or below ground belong
// to the ground clamp, and samples strictly between the two belong to
// neither (spec.md §4.5 "Clamp curves"). tolerance suppresses samples
// whose current magnitude falls below the configured clamp tolerance before
// the voltage-region split; pass 0 to disable suppression.
func ClampSplit(raw DCSet, vgnd, vmax model.Corner3[float64], tolerance float64) (power, gnd DCSet) {
	filtered := SuppressBelowTolerance(raw, tolerance)

	for c := 0; c < 3; c++ {
		corner := consts.Corners[c]
		hi := vmax.At(corner).GetOr(0)
		lo := vgnd.At(corner).GetOr(0)

		for _, p := range filtered[c] {
			switch {
			case p.V >= hi:
				power[c] = append(power[c], p)
			case p.V <= lo:
				gnd[c] = append(gnd[c], p)
			}
		}
	}

	return power, gnd
}

// SuppressBelowTolerance drops samples whose current magnitude is smaller
// than tolerance (spec.md §4.5 "Values below a configurable clamp tolerance
// are suppressed"). tolerance <= 0 disables suppression and returns raw
// unchanged.
func SuppressBelowTolerance(raw DCSet, tolerance float64) DCSet {
	if tolerance <= 0 {
		return raw
	}

	var out DCSet

	for c := 0; c < 3; c++ {
		for _, p := range raw[c] {
			if math.Abs(p.I) < tolerance {
				continue
			}

			out[c] = append(out[c], p)
		}
	}

	return out
}

// mergeGrid picks the canonical V grid for a merged table: the first
// non-empty corner's own V samples, preferring Typ.
func mergeGrid(raw DCSet) []float64 {
	order := []int{int(consts.Typ), int(consts.Min), int(consts.Max)}
	for _, c := range order {
		if len(raw[c]) == 0 {
			continue
		}

		grid := make([]float64, len(raw[c]))
		for i, p := range raw[c] {
			grid[i] = p.V
		}

		return grid
	}

	return nil
}

// MergeVI merges the three corners' raw samples into one VITable on a
// shared V grid, interpolating the non-canonical corners onto it.
func MergeVI(raw DCSet) *model.VITable {
	grid := mergeGrid(raw)
	if grid == nil {
		return &model.VITable{}
	}

	rows := make([]model.VIRow, len(grid))

	for i, v := range grid {
		row := model.VIRow{V: v}

		if iv, ok := interpolate(raw[consts.Typ], v); ok {
			row.Ityp = model.Of(iv)
		}

		if iv, ok := interpolate(raw[consts.Min], v); ok {
			row.Imin = model.Of(iv)
		}

		if iv, ok := interpolate(raw[consts.Max], v); ok {
			row.Imax = model.Of(iv)
		}

		rows[i] = row
	}

	return &model.VITable{Rows: rows}
}

// Decimate reduces a VITable to at most maxRows rows by uniform
// subsampling, always keeping the first and last row so the table's
// voltage extremes are preserved.
func Decimate(t *model.VITable, maxRows int) *model.VITable {
	n := len(t.Rows)
	if n <= maxRows || maxRows < 2 {
		return t
	}

	out := make([]model.VIRow, 0, maxRows)
	step := float64(n-1) / float64(maxRows-1)

	for i := 0; i < maxRows; i++ {
		idx := int(float64(i)*step + 0.5)
		if idx >= n {
			idx = n - 1
		}

		out = append(out, t.Rows[idx])
	}

	return &model.VITable{Rows: out}
}

// BuildVITable merges, decimates to maxRows, and validates monotonicity of
// a derived V/I curve in one step.
func BuildVITable(raw DCSet, maxRows int) (*model.VITable, error) {
	merged := MergeVI(raw)
	decimated := Decimate(merged, maxRows)

	if err := decimated.CheckMonotonic(maxRows); err != nil {
		return nil, &errs.DeriveError{Msg: err.Error()}
	}

	return decimated, nil
}

// crossingTime returns the time at which a monotonically-changing voltage
// waveform first crosses threshold, linearly interpolating between the
// bracketing samples.
func crossingTime(points []model.TVIPoint, threshold float64, rising bool) (float64, bool) {
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]

		crossed := false
		if rising {
			crossed = a.V < threshold && b.V >= threshold
		} else {
			crossed = a.V > threshold && b.V <= threshold
		}

		if !crossed {
			continue
		}

		if b.V == a.V {
			return b.T, true
		}

		frac := (threshold - a.V) / (b.V - a.V)

		return a.T + frac*(b.T-a.T), true
	}

	return 0, false
}

// ExtractRamp measures the 20%-80% ramp rate (spec.md §4.5 "Ramp rate") for
// each corner that has transient samples, given the swing [vlow, vhigh] the
// ramp is measured across.
func ExtractRamp(raw TranSet, vlow, vhigh model.Corner3[float64]) (model.RampRecord, error) {
	var rec model.RampRecord

	for c := 0; c < 3; c++ {
		if len(raw[c]) < 2 {
			continue
		}

		corner := consts.Corners[c]

		lo := vlow.At(corner).GetOr(0)
		hi := vhigh.At(corner).GetOr(0)
		span := hi - lo

		t20 := lo + consts.RampLowFraction*span
		t80 := lo + consts.RampHighFraction*span

		riseLo, ok1 := crossingTime(raw[c], t20, true)
		riseHi, ok2 := crossingTime(raw[c], t80, true)

		if ok1 && ok2 && riseHi > riseLo {
			rec.Rise = rec.Rise.WithAt(corner, model.Of(span/(riseHi-riseLo)))
		}

		fallHi, ok3 := crossingTime(raw[c], t80, false)
		fallLo, ok4 := crossingTime(raw[c], t20, false)

		if ok3 && ok4 && fallLo > fallHi {
			rec.Fall = rec.Fall.WithAt(corner, model.Of(span/(fallLo-fallHi)))
		}
	}

	if !rec.Rise.AnySet() && !rec.Fall.AnySet() {
		return rec, &errs.DeriveError{Msg: "no 20%-80% crossing found in any corner's ramp transient"}
	}

	return rec, nil
}

// BinWaveform bins raw transient samples into exactly numRows time bins
// spanning [0, simTime], averaging samples that fall in each bin and
// linearly interpolating bins no sample landed in (spec.md §4.5 "Rising and
// falling waveforms"). The final bin is always forced to land exactly on
// simTime.
func BinWaveform(raw TranSet, simTime float64, numRows int) (*model.VTTable, error) {
	if numRows < 2 {
		return nil, &errs.DeriveError{Msg: fmt.Sprintf("invalid waveform row count %d", numRows)}
	}

	binWidth := simTime / float64(numRows-1)

	rows := make([]model.VTRow, numRows)
	for i := range rows {
		rows[i].T = float64(i) * binWidth
	}

	rows[numRows-1].T = simTime

	for c := 0; c < 3; c++ {
		if len(raw[c]) == 0 {
			continue
		}

		sums := make([]float64, numRows)
		counts := make([]int, numRows)

		for _, p := range raw[c] {
			idx := int(p.T/binWidth + 0.5)
			if idx < 0 {
				idx = 0
			}

			if idx >= numRows {
				idx = numRows - 1
			}

			sums[idx] += p.V
			counts[idx]++
		}

		values := make([]float64, numRows)
		present := make([]bool, numRows)

		for i := 0; i < numRows; i++ {
			if counts[i] > 0 {
				values[i] = sums[i] / float64(counts[i])
				present[i] = true
			}
		}

		interpolateEmptyBins(values, present)

		corner := consts.Corners[c]
		for i := 0; i < numRows; i++ {
			setCornerVoltage(&rows[i], corner, values[i])
		}
	}

	t := &model.VTTable{Rows: rows}
	if err := t.CheckShape(simTime, numRows); err != nil {
		return nil, &errs.DeriveError{Msg: err.Error()}
	}

	return t, nil
}

func setCornerVoltage(row *model.VTRow, corner consts.Corner, v float64) {
	switch corner {
	case consts.Min:
		row.Vmin = model.Of(v)
	case consts.Max:
		row.Vmax = model.Of(v)
	default:
		row.Vtyp = model.Of(v)
	}
}

// interpolateEmptyBins fills bins with no sample by linear interpolation
// between the nearest present neighbours, extending the boundary value
// outward where no earlier/later neighbour exists.
func interpolateEmptyBins(values []float64, present []bool) {
	n := len(values)

	first := -1

	for i := 0; i < n; i++ {
		if present[i] {
			first = i
			break
		}
	}

	if first == -1 {
		return
	}

	for i := 0; i < first; i++ {
		values[i] = values[first]
	}

	last := first

	for i := first + 1; i < n; i++ {
		if !present[i] {
			continue
		}

		if i-last > 1 {
			span := i - last
			for j := last + 1; j < i; j++ {
				frac := float64(j-last) / float64(span)
				values[j] = values[last] + frac*(values[i]-values[last])
			}
		}

		last = i
	}

	for i := last + 1; i < n; i++ {
		values[i] = values[last]
	}
}

// DerateCorner fills an unset min or max corner from the typ value using a
// percentage spread, applied when no explicit corner simulation was run
// (spec.md §4.5 "Derating"). pct is a percentage, e.g. 10 for +/-10%.
func DerateCorner(v model.Corner3[float64], pct float64) model.Corner3[float64] {
	typ, ok := v.Typ.Get()
	if !ok {
		return v
	}

	if !v.Min.IsSet() {
		v.Min = model.Of(typ * (1 - pct/100))
	}

	if !v.Max.IsSet() {
		v.Max = model.Of(typ * (1 + pct/100))
	}

	return v
}
