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

import "sort"

// Defaults is the bag of corner-valued scalars applied hierarchically,
// Document -> Component -> Model, described in spec.md §3.
type Defaults struct {
	VoltageRange     Corner3[float64]
	TemperatureRange Corner3[float64]
	PullupRef        Corner3[float64]
	PulldownRef      Corner3[float64]
	PowerClampRef    Corner3[float64]
	GndClampRef      Corner3[float64]
	PackageR         Corner3[float64]
	PackageL         Corner3[float64]
	PackageC         Corner3[float64]
	DieCapacitance   Corner3[float64]
	LoadResistance   Corner3[float64]
	SimulationTime   Corner3[float64]
	InputLowVoltage  Corner3[float64]
	InputHighVoltage Corner3[float64]
	TargetRiseTime   Corner3[float64]
	TargetFallTime   Corner3[float64]
	ClampTolerance   Scalar[float64]
	DerateVIPercent  Scalar[float64]
	DerateRampPct    Scalar[float64]
}

// field identifies one resolvable Defaults field, used so Resolve can walk
// the three layers generically without reflection.
type field func(d *Defaults) *Corner3[float64]

var fields = map[string]field{
	"voltage_range":      func(d *Defaults) *Corner3[float64] { return &d.VoltageRange },
	"temperature_range":  func(d *Defaults) *Corner3[float64] { return &d.TemperatureRange },
	"pullup_ref":         func(d *Defaults) *Corner3[float64] { return &d.PullupRef },
	"pulldown_ref":       func(d *Defaults) *Corner3[float64] { return &d.PulldownRef },
	"power_clamp_ref":    func(d *Defaults) *Corner3[float64] { return &d.PowerClampRef },
	"gnd_clamp_ref":      func(d *Defaults) *Corner3[float64] { return &d.GndClampRef },
	"package_r":          func(d *Defaults) *Corner3[float64] { return &d.PackageR },
	"package_l":          func(d *Defaults) *Corner3[float64] { return &d.PackageL },
	"package_c":          func(d *Defaults) *Corner3[float64] { return &d.PackageC },
	"die_capacitance":    func(d *Defaults) *Corner3[float64] { return &d.DieCapacitance },
	"load_resistance":    func(d *Defaults) *Corner3[float64] { return &d.LoadResistance },
	"simulation_time":    func(d *Defaults) *Corner3[float64] { return &d.SimulationTime },
	"input_low_voltage":  func(d *Defaults) *Corner3[float64] { return &d.InputLowVoltage },
	"input_high_voltage": func(d *Defaults) *Corner3[float64] { return &d.InputHighVoltage },
	"target_rise_time":   func(d *Defaults) *Corner3[float64] { return &d.TargetRiseTime },
	"target_fall_time":   func(d *Defaults) *Corner3[float64] { return &d.TargetFallTime },
}

// FieldNames lists the resolvable Corner3 default fields, in a stable order,
// useful for diagnostics and round-trip tests.
func FieldNames() []string {
	names := make([]string, 0, len(fields))
	for n := range fields {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// Resolve implements spec.md §9's explicit three-layer resolution function:
// a Model field not explicitly set equals the Component field, which equals
// the Document field. No transparent inheritance at the type level - each
// call walks all three layers and merges per-corner, so that e.g. a model
// which only overrides Typ still inherits Min/Max from its component.
func Resolve(name string, modelDefaults, componentDefaults, documentDefaults *Defaults) Corner3[float64] {
	get, ok := fields[name]
	if !ok {
		return Corner3[float64]{}
	}

	var out Corner3[float64]

	for _, layer := range []*Defaults{documentDefaults, componentDefaults, modelDefaults} {
		if layer == nil {
			continue
		}

		layerValue := get(layer)
		if v, ok := layerValue.Typ.Get(); ok {
			out.Typ = Of(v)
		}

		if v, ok := layerValue.Min.Get(); ok {
			out.Min = Of(v)
		}

		if v, ok := layerValue.Max.Get(); ok {
			out.Max = Of(v)
		}
	}

	return out
}

// ResolveClampTolerance walks the same three layers for the scalar (not
// corner-valued) clamp tolerance field.
func ResolveClampTolerance(modelDefaults, componentDefaults, documentDefaults *Defaults) Scalar[float64] {
	return resolveScalar(modelDefaults, componentDefaults, documentDefaults, func(d *Defaults) Scalar[float64] { return d.ClampTolerance })
}

// ResolveDerateVI walks the same three layers for the V/I derating
// percentage.
func ResolveDerateVI(modelDefaults, componentDefaults, documentDefaults *Defaults) Scalar[float64] {
	return resolveScalar(modelDefaults, componentDefaults, documentDefaults, func(d *Defaults) Scalar[float64] { return d.DerateVIPercent })
}

// ResolveDerateRamp walks the same three layers for the ramp derating
// percentage.
func ResolveDerateRamp(modelDefaults, componentDefaults, documentDefaults *Defaults) Scalar[float64] {
	return resolveScalar(modelDefaults, componentDefaults, documentDefaults, func(d *Defaults) Scalar[float64] { return d.DerateRampPct })
}

func resolveScalar(modelDefaults, componentDefaults, documentDefaults *Defaults, get func(*Defaults) Scalar[float64]) Scalar[float64] {
	var out Scalar[float64]

	for _, layer := range []*Defaults{documentDefaults, componentDefaults, modelDefaults} {
		if layer == nil {
			continue
		}

		if v, ok := get(layer).Get(); ok {
			out = Of(v)
		}
	}

	return out
}
