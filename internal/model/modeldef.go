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

// SubcircuitFiles names the per-corner SPICE subcircuit file a Model
// resolves to (spec.md §3 "references to SPICE subcircuit files
// (typ/min/max corners)").
type SubcircuitFiles struct {
	Typ string
	Min string
	Max string
}

// ForCorner returns the subcircuit path for a given corner, falling back to
// Typ if that corner's path was never set.
func (s SubcircuitFiles) ForCorner(corner string) string {
	switch corner {
	case "min":
		if s.Min != "" {
			return s.Min
		}
	case "max":
		if s.Max != "" {
			return s.Max
		}
	}

	return s.Typ
}

// RawCurves holds the primitive, per-corner simulation results a Model has
// collected so far, before derivation (spec.md §3 "raw curves").
type RawCurves struct {
	// EnabledSweep / DisabledSweep are the combined DC sweep results used
	// by enable-based subtraction (spec.md §4.5): one sweep each, split
	// into pullup/pulldown/clamp curves downstream by sign or voltage
	// region. Indexed by consts.Corner.
	EnabledSweep  [3][]VIPoint
	DisabledSweep [3][]VIPoint
	// CombinedDriverSweep holds a no-enable driver's single sweep that
	// still covers both pullup and pulldown behaviour (Output/OutputECL),
	// split by current sign downstream instead of by subtraction.
	CombinedDriverSweep [3][]VIPoint
	// DirectSweep holds the raw DC sweep for every curve a model type
	// derives straight from its own dedicated sweep range rather than via
	// enable-based subtraction (Input/Terminator clamp sweeps,
	// OpenDrain/OpenSource pullup or pulldown, Series resistance),
	// indexed by the curve it feeds so two direct curves at the same
	// corner never collide in one slot.
	DirectSweep map[CurveKey][3][]VIPoint
	// RampTransient holds the raw (t, V, I) ramp-rate transient prior to
	// the 20%-80% measurement.
	RampTransient [3][]TVIPoint
	// RisingTransients / FallingTransients hold raw (t, V, I) samples
	// prior to binning, keyed by fixture identity.
	RisingTransients  map[string][3][]TVIPoint
	FallingTransients map[string][3][]TVIPoint
}

// CurveKey identifies one of the enumerated curve types for DirectSweep
// lookups. It mirrors consts.CurveType but is declared locally so this
// package does not need to import consts just for a map key type.
type CurveKey uint8

// The DirectSweep-addressable curve kinds.
const (
	CurveKeyPullup CurveKey = iota
	CurveKeyPulldown
	CurveKeyPowerClamp
	CurveKeyGndClamp
	CurveKeySeriesRSeries
)

// AddDirectSweep records one corner's raw samples for a direct-sweep curve,
// allocating the map on first use.
func (r *RawCurves) AddDirectSweep(key CurveKey, corner int, points []VIPoint) {
	if r.DirectSweep == nil {
		r.DirectSweep = make(map[CurveKey][3][]VIPoint)
	}

	set := r.DirectSweep[key]
	set[corner] = points
	r.DirectSweep[key] = set
}

// VIPoint is a single raw (V, I) sample from a DC sweep (spec.md §4.4).
type VIPoint struct {
	V float64
	I float64
}

// TVIPoint is a single raw (t, V, I) sample from a transient (spec.md §4.4).
type TVIPoint struct {
	T float64
	V float64
	I float64
}

// DerivedCurves holds the IBIS-ready tables a Model carries once the Curve
// Deriver has run (spec.md §3 "derived curves").
type DerivedCurves struct {
	Pullup        *VITable
	Pulldown      *VITable
	PowerClamp    *VITable
	GndClamp      *VITable
	Ramp          *RampRecord
	Rising        []*VTTable
	Falling       []*VTTable
	SeriesRSeries *VITable
}

// Model is the named behavioral description of spec.md §3.
type Model struct {
	Name           string
	Type           ModelType
	Polarity       Polarity
	EnablePolarity EnablePolarity
	Vinl           Corner3[float64]
	Vinh           Corner3[float64]
	Vmeas          Corner3[float64]
	Vref           Corner3[float64]
	Cref           Corner3[float64]
	Rref           Corner3[float64]
	Subcircuit     SubcircuitFiles
	Defaults       Defaults
	Raw            RawCurves
	Derived        DerivedCurves
	// Fixtures lists the user-specified R/L/C/V networks characterized by
	// rising/falling waveforms (spec.md §4.5). When empty, a single
	// fixture derived from Defaults.LoadResistance is used.
	Fixtures []Fixture
	// NoModel marks this Model as structurally present but excluded from
	// simulation (spec.md §3, preferred over reserved-name dispatch
	// because it preserves the model's other metadata - spec.md §9).
	NoModel bool
}

// IsSimulated reports whether this model should be handed to the planner.
func (m *Model) IsSimulated() bool {
	return !m.NoModel
}

// HasEnable reports whether this model type requires an enable pin
// according to the decision table (spec.md §4.1).
func (m *Model) HasEnable() bool {
	switch m.Type {
	case IO, IOECL, ThreeState:
		return true
	default:
		return false
	}
}
