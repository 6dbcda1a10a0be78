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
	"math"
	"testing"

	"github.com/simon9721/s2ibis-go/internal/consts"
	"github.com/simon9721/s2ibis-go/internal/errs"
	"github.com/simon9721/s2ibis-go/internal/model"
)

func twoPointSweep() [3][]model.VIPoint {
	var s [3][]model.VIPoint
	s[consts.Typ] = []model.VIPoint{{V: 0, I: 0}, {V: 1, I: 0.01}}
	return s
}

func TestDeriveModelInputIsClampOnly(t *testing.T) {
	m := &model.Model{Name: "IN_3V3", Type: model.Input}
	m.Raw.AddDirectSweep(model.CurveKeyPowerClamp, int(consts.Typ), twoPointSweep()[consts.Typ])
	m.Raw.AddDirectSweep(model.CurveKeyGndClamp, int(consts.Typ), twoPointSweep()[consts.Typ])

	doc := &model.Document{}

	if err := deriveModel(doc, m); err != nil {
		t.Fatalf("deriveModel() error: %v", err)
	}

	if m.Derived.PowerClamp == nil || m.Derived.GndClamp == nil {
		t.Errorf("Derived = %+v, want PowerClamp and GndClamp both set", m.Derived)
	}
	if m.Derived.Pullup != nil || m.Derived.Pulldown != nil {
		t.Errorf("an Input model should never derive a driver curve")
	}
}

func TestDeriveModelInputWithNoDataIsNoOp(t *testing.T) {
	m := &model.Model{Name: "IN_3V3", Type: model.Input}
	doc := &model.Document{}

	if err := deriveModel(doc, m); err != nil {
		t.Fatalf("deriveModel() error: %v", err)
	}
	if m.Derived.PowerClamp != nil || m.Derived.GndClamp != nil {
		t.Errorf("no raw samples should leave Derived curves nil")
	}
}

func TestDeriveModelOutputSplitsCombinedDriver(t *testing.T) {
	m := &model.Model{Name: "OUT_3V3", Type: model.Output}
	m.Raw.CombinedDriverSweep[consts.Typ] = []model.VIPoint{
		{V: 0, I: -0.02}, {V: 1.65, I: 0}, {V: 3.3, I: 0.02},
	}

	doc := &model.Document{}

	if err := deriveModel(doc, m); err != nil {
		t.Fatalf("deriveModel() error: %v", err)
	}
	if m.Derived.Pullup == nil || m.Derived.Pulldown == nil {
		t.Errorf("Derived = %+v, want Pullup and Pulldown both set", m.Derived)
	}
}

func TestDeriveModelIOSubtractsEnableAndSplitsClamp(t *testing.T) {
	m := &model.Model{Name: "IO_3V3", Type: model.IO}
	m.Raw.EnabledSweep[consts.Typ] = []model.VIPoint{{V: 0, I: -0.02}, {V: 3.3, I: 0.02}}
	m.Raw.DisabledSweep[consts.Typ] = []model.VIPoint{{V: 0, I: -0.001}, {V: 3.3, I: 0.001}}

	doc := &model.Document{Defaults: model.Defaults{VoltageRange: model.Corner3Of(3.3, 3.0, 3.6)}}

	if err := deriveModel(doc, m); err != nil {
		t.Fatalf("deriveModel() error: %v", err)
	}
	if m.Derived.Pullup == nil || m.Derived.Pulldown == nil {
		t.Errorf("IO model should derive both driver halves")
	}
	if m.Derived.PowerClamp == nil || m.Derived.GndClamp == nil {
		t.Errorf("IO model should derive both clamp halves from the disabled sweep")
	}
}

func TestDeriveModelAppliesDerateVIWhenConfigured(t *testing.T) {
	m := &model.Model{Name: "IN_3V3", Type: model.Input}
	m.Raw.AddDirectSweep(model.CurveKeyPowerClamp, int(consts.Typ), []model.VIPoint{{V: 4, I: 0.1}, {V: 5, I: 0.2}})
	m.Raw.AddDirectSweep(model.CurveKeyGndClamp, int(consts.Typ), []model.VIPoint{{V: -5, I: -0.2}, {V: -4, I: -0.1}})

	doc := &model.Document{Defaults: model.Defaults{DerateVIPercent: model.Of(10.0)}}

	if err := deriveModel(doc, m); err != nil {
		t.Fatalf("deriveModel() error: %v", err)
	}

	for _, row := range m.Derived.PowerClamp.Rows {
		typ := row.Ityp.MustGet()
		if !row.Imin.IsSet() || !row.Imax.IsSet() {
			t.Fatalf("row %+v: derating should fill Imin/Imax from Ityp", row)
		}
		if got := row.Imin.MustGet(); math.Abs(got-typ*0.9) > 1e-9 {
			t.Errorf("Imin = %v, want %v (typ - 10%%)", got, typ*0.9)
		}
		if got := row.Imax.MustGet(); math.Abs(got-typ*1.1) > 1e-9 {
			t.Errorf("Imax = %v, want %v (typ + 10%%)", got, typ*1.1)
		}
	}
}

func TestDeriveModelSkipsDerateVIWhenNotConfigured(t *testing.T) {
	m := &model.Model{Name: "IN_3V3", Type: model.Input}
	m.Raw.AddDirectSweep(model.CurveKeyPowerClamp, int(consts.Typ), []model.VIPoint{{V: 4, I: 0.1}, {V: 5, I: 0.2}})
	m.Raw.AddDirectSweep(model.CurveKeyGndClamp, int(consts.Typ), []model.VIPoint{{V: -5, I: -0.2}, {V: -4, I: -0.1}})

	doc := &model.Document{}

	if err := deriveModel(doc, m); err != nil {
		t.Fatalf("deriveModel() error: %v", err)
	}

	for _, row := range m.Derived.PowerClamp.Rows {
		if row.Imin.IsSet() || row.Imax.IsSet() {
			t.Errorf("row %+v: Imin/Imax should stay unset with no derate_vi_pct configured", row)
		}
	}
}

func TestDeriveModelAppliesDerateRampWhenConfigured(t *testing.T) {
	m := &model.Model{Name: "OUT_3V3", Type: model.Output}
	m.Raw.CombinedDriverSweep[consts.Typ] = []model.VIPoint{
		{V: 0, I: -0.02}, {V: 1.65, I: 0}, {V: 3.3, I: 0.02},
	}
	m.Raw.RampTransient[consts.Typ] = []model.TVIPoint{
		{T: 0, V: 0}, {T: 1e-9, V: 1.65}, {T: 2e-9, V: 3.3},
	}

	doc := &model.Document{Defaults: model.Defaults{
		VoltageRange:  model.Corner3Of(3.3, 3.0, 3.6),
		DerateRampPct: model.Of(5.0),
	}}

	if err := deriveModel(doc, m); err != nil {
		t.Fatalf("deriveModel() error: %v", err)
	}

	if m.Derived.Ramp == nil {
		t.Fatal("Derived.Ramp not set")
	}
	if !m.Derived.Ramp.Rise.Min.IsSet() || !m.Derived.Ramp.Rise.Max.IsSet() {
		t.Errorf("Ramp.Rise = %+v, want derated Min/Max filled from Typ", m.Derived.Ramp.Rise)
	}
}

func TestDeriveModelIOSuppressesClampBelowTolerance(t *testing.T) {
	m := &model.Model{Name: "IO_3V3", Type: model.IO}
	m.Raw.EnabledSweep[consts.Typ] = []model.VIPoint{{V: 0, I: -0.02}, {V: 3.3, I: 0.02}}
	m.Raw.DisabledSweep[consts.Typ] = []model.VIPoint{
		{V: 0, I: -1e-9}, {V: 3.3, I: 1e-9}, {V: 4, I: 0.05}, {V: -4, I: -0.05},
	}

	doc := &model.Document{Defaults: model.Defaults{
		VoltageRange:   model.Corner3Of(3.3, 3.0, 3.6),
		ClampTolerance: model.Of(1e-6),
	}}

	if err := deriveModel(doc, m); err != nil {
		t.Fatalf("deriveModel() error: %v", err)
	}

	if m.Derived.PowerClamp == nil || len(m.Derived.PowerClamp.Rows) != 1 {
		t.Fatalf("PowerClamp = %+v, want exactly the above-tolerance sample", m.Derived.PowerClamp)
	}
	if m.Derived.GndClamp == nil || len(m.Derived.GndClamp.Rows) != 1 {
		t.Fatalf("GndClamp = %+v, want exactly the above-tolerance sample", m.Derived.GndClamp)
	}
}

func TestDeriveModelSeriesUsesSeriesRSeriesKey(t *testing.T) {
	m := &model.Model{Name: "SERIES_R", Type: model.Series}
	m.Raw.AddDirectSweep(model.CurveKeySeriesRSeries, int(consts.Typ), twoPointSweep()[consts.Typ])

	doc := &model.Document{}

	if err := deriveModel(doc, m); err != nil {
		t.Fatalf("deriveModel() error: %v", err)
	}
	if m.Derived.SeriesRSeries == nil {
		t.Errorf("Derived.SeriesRSeries not set")
	}
}

func TestDeriveModelUnhandledTypeIsDeriveError(t *testing.T) {
	m := &model.Model{Name: "WEIRD", Type: model.ModelType(99)}
	doc := &model.Document{}

	err := deriveModel(doc, m)
	if err == nil {
		t.Fatal("deriveModel() should error for an unhandled model type")
	}
	if _, ok := err.(*errs.DeriveError); !ok {
		t.Errorf("error type = %T, want *errs.DeriveError", err)
	}
}

func TestDefaultFixtureUsesFirstUserFixture(t *testing.T) {
	want := model.Fixture{R: model.Corner3Of(25.0, 25.0, 25.0)}
	m := &model.Model{Fixtures: []model.Fixture{want, {R: model.Corner3Of(50.0, 50.0, 50.0)}}}

	got := defaultFixture(m)
	if got.R.Typ.MustGet() != 25.0 {
		t.Errorf("defaultFixture() = %+v, want the first declared fixture", got)
	}
}

func TestDefaultFixtureFallsBackToLoadResistanceDefault(t *testing.T) {
	m := &model.Model{}

	got := defaultFixture(m)
	if !got.R.Typ.IsSet() || got.R.Typ.MustGet() != consts.DefaultLoadResistance {
		t.Errorf("defaultFixture() = %+v, want the package default load resistance", got)
	}
}

func TestWrapDeriveAttachesModelAndCurveName(t *testing.T) {
	m := &model.Model{Name: "M1"}
	wrapped := wrapDerive(m, "ramp", &errs.DeriveError{Msg: "no crossing"})

	de, ok := wrapped.(*errs.DeriveError)
	if !ok {
		t.Fatalf("wrapDerive() returned %T, want *errs.DeriveError", wrapped)
	}
	if de.Model != "M1" || de.Curve != "ramp" {
		t.Errorf("DeriveError = %+v, want Model=M1 Curve=ramp", de)
	}
}

func TestWrapDerivePassesThroughNonDeriveError(t *testing.T) {
	m := &model.Model{Name: "M1"}
	original := &errs.ParseError{Msg: "bad file"}

	got := wrapDerive(m, "ramp", original)
	if got != original {
		t.Errorf("wrapDerive() should pass through non-DeriveError types unchanged")
	}
}
