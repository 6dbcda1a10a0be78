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
package model

import "fmt"

// VIRow is one row of a V/I Table: a pad voltage and its corner-valued
// current (spec.md §3).
type VIRow struct {
	V    float64
	Ityp Scalar[float64]
	Imin Scalar[float64]
	Imax Scalar[float64]
}

// VITable is an ordered sequence of VIRow, strictly monotonic in V, capped
// at consts.VITableMaxRows (spec.md §3, invariant 1).
type VITable struct {
	Rows []VIRow
}

// CheckMonotonic verifies invariant 1: V strictly increasing, row count
// within the IBIS 1.x cap.
func (t *VITable) CheckMonotonic(maxRows int) error {
	if len(t.Rows) > maxRows {
		return fmt.Errorf("V/I table has %d rows, exceeds cap of %d", len(t.Rows), maxRows)
	}

	for i := 1; i < len(t.Rows); i++ {
		if t.Rows[i].V <= t.Rows[i-1].V {
			return fmt.Errorf("V/I table not strictly monotonic at row %d (%.6g <= %.6g)", i, t.Rows[i].V, t.Rows[i-1].V)
		}
	}

	return nil
}

// VTRow is one row of a V/T Waveform Table: a time and its corner-valued
// voltage (spec.md §3).
type VTRow struct {
	T    float64
	Vtyp Scalar[float64]
	Vmin Scalar[float64]
	Vmax Scalar[float64]
}

// Fixture describes the external R/L/C/V network a waveform was captured
// into (spec.md §4.5 "Rising/falling waveforms").
type Fixture struct {
	R Corner3[float64]
	L Corner3[float64]
	C Corner3[float64]
	V Corner3[float64]
}

// VTTable is an ordered, fixed-count sequence of VTRow plus its fixture and
// associated die parasitics (spec.md §3).
type VTTable struct {
	Rows    []VTRow
	Fixture Fixture
	DieR    Corner3[float64]
	DieL    Corner3[float64]
	DieC    Corner3[float64]
}

// CheckShape verifies invariant 2: t strictly increasing, t[0] == 0,
// t[last] == simTime, and the row count matches the IBIS-version policy
// (100 rows below IBIS 4.0, up to 1000 at or above).
func (t *VTTable) CheckShape(simTime float64, wantRows int) error {
	if len(t.Rows) != wantRows {
		return fmt.Errorf("V/T waveform has %d rows, want %d", len(t.Rows), wantRows)
	}

	if len(t.Rows) == 0 {
		return fmt.Errorf("V/T waveform has no rows")
	}

	if t.Rows[0].T != 0 {
		return fmt.Errorf("V/T waveform does not start at t=0 (got %.6g)", t.Rows[0].T)
	}

	last := t.Rows[len(t.Rows)-1].T
	if last != simTime {
		return fmt.Errorf("V/T waveform does not end at sim_time=%.6g (got %.6g)", simTime, last)
	}

	for i := 1; i < len(t.Rows); i++ {
		if t.Rows[i].T <= t.Rows[i-1].T {
			return fmt.Errorf("V/T waveform not strictly monotonic at row %d (%.6g <= %.6g)", i, t.Rows[i].T, t.Rows[i-1].T)
		}
	}

	return nil
}

// RampRecord is the pair (dV/dt_rise, dV/dt_fall), each corner-valued,
// derived from the 20%-80% measurement (spec.md §3).
type RampRecord struct {
	Rise Corner3[float64]
	Fall Corner3[float64]
}
