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
package pipeline

import (
	"github.com/simon9721/s2ibis-go/internal/consts"
	"github.com/simon9721/s2ibis-go/internal/derive"
	"github.com/simon9721/s2ibis-go/internal/errs"
	"github.com/simon9721/s2ibis-go/internal/model"
)

// deriveModel turns one Model's accumulated RawCurves into its
// DerivedCurves, dispatching on Model Type the same way the Planner
// decided what to simulate in the first place (spec.md §4.1's decision
// table and §4.5's derivation rules are two views of the same table).
func deriveModel(doc *model.Document, m *model.Model) error {
	vr := model.Resolve("voltage_range", &m.Defaults, &model.Defaults{}, &doc.Defaults)
	vgnd := model.Corner3Of(0.0, 0.0, 0.0)
	tol := model.ResolveClampTolerance(&m.Defaults, &model.Defaults{}, &doc.Defaults).GetOr(0)

	if err := deriveByType(doc, m, vgnd, vr, tol); err != nil {
		return err
	}

	applyDerating(doc, m)

	return nil
}

func deriveByType(doc *model.Document, m *model.Model, vgnd, vr model.Corner3[float64], tol float64) error {
	switch m.Type {
	case model.Input, model.InputECL:
		return deriveClampOnly(m, tol)
	case model.Output, model.OutputECL:
		if err := deriveCombinedDriver(m); err != nil {
			return err
		}

		return deriveRampAndWaveforms(doc, m, vgnd, vr)
	case model.IO, model.IOECL:
		if err := deriveEnabledDriver(m, vgnd, vr, tol); err != nil {
			return err
		}

		return deriveRampAndWaveforms(doc, m, vgnd, vr)
	case model.ThreeState:
		if err := deriveEnabledDriver(m, vgnd, vr, tol); err != nil {
			return err
		}

		return deriveRamp(m, vgnd, vr)
	case model.OpenDrain, model.OpenSink:
		if err := deriveDirectCurve(m, model.CurveKeyPulldown, &m.Derived.Pulldown); err != nil {
			return err
		}

		if err := deriveClampOnly(m, tol); err != nil {
			return err
		}

		return deriveRamp(m, vgnd, vr)
	case model.OpenSource:
		if err := deriveDirectCurve(m, model.CurveKeyPullup, &m.Derived.Pullup); err != nil {
			return err
		}

		if err := deriveClampOnly(m, tol); err != nil {
			return err
		}

		return deriveRamp(m, vgnd, vr)
	case model.Terminator:
		return deriveClampOnly(m, tol)
	case model.Series, model.SeriesSwitch:
		return deriveDirectCurve(m, model.CurveKeySeriesRSeries, &m.Derived.SeriesRSeries)
	default:
		return &errs.DeriveError{Model: m.Name, Msg: "unhandled model type in derivation"}
	}
}

// applyDerating fills unset min/max corners on every V/I table and the ramp
// record from their typ value, per spec.md §4.5 "Derating", when the
// Defaults resolve a derate percentage. A model that never ran an explicit
// min/max corner simulation still gets IBIS-complete min/max columns.
func applyDerating(doc *model.Document, m *model.Model) {
	if pct, ok := model.ResolveDerateVI(&m.Defaults, &model.Defaults{}, &doc.Defaults).Get(); ok {
		derateVITable(m.Derived.Pullup, pct)
		derateVITable(m.Derived.Pulldown, pct)
		derateVITable(m.Derived.PowerClamp, pct)
		derateVITable(m.Derived.GndClamp, pct)
		derateVITable(m.Derived.SeriesRSeries, pct)
	}

	if pct, ok := model.ResolveDerateRamp(&m.Defaults, &model.Defaults{}, &doc.Defaults).Get(); ok && m.Derived.Ramp != nil {
		m.Derived.Ramp.Rise = derive.DerateCorner(m.Derived.Ramp.Rise, pct)
		m.Derived.Ramp.Fall = derive.DerateCorner(m.Derived.Ramp.Fall, pct)
	}
}

func derateVITable(t *model.VITable, pct float64) {
	if t == nil {
		return
	}

	for i := range t.Rows {
		row := &t.Rows[i]

		c := derive.DerateCorner(model.Corner3[float64]{Typ: row.Ityp, Min: row.Imin, Max: row.Imax}, pct)
		row.Ityp, row.Imin, row.Imax = c.Typ, c.Min, c.Max
	}
}

func toDCSet(raw [3][]model.VIPoint) derive.DCSet {
	return derive.DCSet(raw)
}

func toTranSet(raw [3][]model.TVIPoint) derive.TranSet {
	return derive.TranSet(raw)
}

func deriveClampOnly(m *model.Model, tol float64) error {
	power := m.Raw.DirectSweep[model.CurveKeyPowerClamp]
	gnd := m.Raw.DirectSweep[model.CurveKeyGndClamp]

	if len(power[0]) == 0 && len(power[1]) == 0 && len(power[2]) == 0 &&
		len(gnd[0]) == 0 && len(gnd[1]) == 0 && len(gnd[2]) == 0 {
		return nil
	}

	powerSet := derive.SuppressBelowTolerance(toDCSet(power), tol)
	gndSet := derive.SuppressBelowTolerance(toDCSet(gnd), tol)

	powerT, err := derive.BuildVITable(powerSet, consts.VITableMaxRows)
	if err != nil {
		return wrapDerive(m, "power_clamp", err)
	}

	gndT, err := derive.BuildVITable(gndSet, consts.VITableMaxRows)
	if err != nil {
		return wrapDerive(m, "gnd_clamp", err)
	}

	m.Derived.PowerClamp = powerT
	m.Derived.GndClamp = gndT

	return nil
}

func deriveDirectCurve(m *model.Model, key model.CurveKey, dst **model.VITable) error {
	raw, ok := m.Raw.DirectSweep[key]
	if !ok {
		return nil
	}

	t, err := derive.BuildVITable(toDCSet(raw), consts.VITableMaxRows)
	if err != nil {
		return wrapDerive(m, "direct curve", err)
	}

	*dst = t

	return nil
}

func deriveCombinedDriver(m *model.Model) error {
	pullup, pulldown := derive.DriverSplit(toDCSet(m.Raw.CombinedDriverSweep))

	pullupT, err := derive.BuildVITable(pullup, consts.VITableMaxRows)
	if err != nil {
		return wrapDerive(m, "pullup", err)
	}

	pulldownT, err := derive.BuildVITable(pulldown, consts.VITableMaxRows)
	if err != nil {
		return wrapDerive(m, "pulldown", err)
	}

	m.Derived.Pullup = pullupT
	m.Derived.Pulldown = pulldownT

	return nil
}

func deriveEnabledDriver(m *model.Model, vgnd, vmax model.Corner3[float64], tol float64) error {
	driver := derive.Subtract(toDCSet(m.Raw.EnabledSweep), toDCSet(m.Raw.DisabledSweep))

	pullup, pulldown := derive.DriverSplit(driver)

	pullupT, err := derive.BuildVITable(pullup, consts.VITableMaxRows)
	if err != nil {
		return wrapDerive(m, "pullup", err)
	}

	pulldownT, err := derive.BuildVITable(pulldown, consts.VITableMaxRows)
	if err != nil {
		return wrapDerive(m, "pulldown", err)
	}

	power, gnd := derive.ClampSplit(toDCSet(m.Raw.DisabledSweep), vgnd, vmax, tol)

	powerT, err := derive.BuildVITable(power, consts.VITableMaxRows)
	if err != nil {
		return wrapDerive(m, "power_clamp", err)
	}

	gndT, err := derive.BuildVITable(gnd, consts.VITableMaxRows)
	if err != nil {
		return wrapDerive(m, "gnd_clamp", err)
	}

	m.Derived.Pullup = pullupT
	m.Derived.Pulldown = pulldownT
	m.Derived.PowerClamp = powerT
	m.Derived.GndClamp = gndT

	return nil
}

func deriveRamp(m *model.Model, vgnd, vmax model.Corner3[float64]) error {
	if len(m.Raw.RampTransient[0]) == 0 && len(m.Raw.RampTransient[1]) == 0 && len(m.Raw.RampTransient[2]) == 0 {
		return nil
	}

	rec, err := derive.ExtractRamp(toTranSet(m.Raw.RampTransient), vgnd, vmax)
	if err != nil {
		return wrapDerive(m, "ramp", err)
	}

	m.Derived.Ramp = &rec

	return nil
}

func deriveRampAndWaveforms(doc *model.Document, m *model.Model, vgnd, vmax model.Corner3[float64]) error {
	if err := deriveRamp(m, vgnd, vmax); err != nil {
		return err
	}

	simTime := model.Resolve("simulation_time", &m.Defaults, &model.Defaults{}, &doc.Defaults).Typ.GetOr(100e-9)

	numRows := consts.VTTableRowsPre4
	if doc.IBISVersionAtLeast4() {
		numRows = consts.VTTableRowsPost4
	}

	fixture := defaultFixture(m)

	for key, raw := range m.Raw.RisingTransients {
		t, err := derive.BinWaveform(toTranSet(raw), simTime, numRows)
		if err != nil {
			return wrapDerive(m, "rising_waveform["+key+"]", err)
		}

		t.Fixture = fixture
		m.Derived.Rising = append(m.Derived.Rising, t)
	}

	for key, raw := range m.Raw.FallingTransients {
		t, err := derive.BinWaveform(toTranSet(raw), simTime, numRows)
		if err != nil {
			return wrapDerive(m, "falling_waveform["+key+"]", err)
		}

		t.Fixture = fixture
		m.Derived.Falling = append(m.Derived.Falling, t)
	}

	return nil
}

// defaultFixture returns the first user-declared fixture, or a fixture
// synthesized from the model's load-resistance default (spec.md §4.5
// "absent an explicit fixture list, a single load-resistor fixture is
// assumed").
func defaultFixture(m *model.Model) model.Fixture {
	if len(m.Fixtures) > 0 {
		return m.Fixtures[0]
	}

	r := m.Defaults.LoadResistance
	if !r.AnySet() {
		r = model.Corner3Of(consts.DefaultLoadResistance, consts.DefaultLoadResistance, consts.DefaultLoadResistance)
	}

	return model.Fixture{R: r}
}

func wrapDerive(m *model.Model, curve string, err error) error {
	if de, ok := err.(*errs.DeriveError); ok {
		de.Model = m.Name
		de.Curve = curve
		return de
	}

	return err
}
