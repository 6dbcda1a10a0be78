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
	"testing"

	"github.com/simon9721/s2ibis-go/internal/consts"
	"github.com/simon9721/s2ibis-go/internal/dialect"
	"github.com/simon9721/s2ibis-go/internal/model"
	"github.com/simon9721/s2ibis-go/internal/plan"
	"github.com/simon9721/s2ibis-go/internal/result"
)

func TestOutputFileNameUsesMetadataFileName(t *testing.T) {
	doc := &model.Document{Metadata: model.Metadata{FileName: "part.ibs"}}
	if got := outputFileName(doc); got != "part.ibs" {
		t.Errorf("outputFileName() = %q, want part.ibs", got)
	}
}

func TestOutputFileNameDefaultsWhenMetadataEmpty(t *testing.T) {
	doc := &model.Document{}
	if got := outputFileName(doc); got != "output.ibs" {
		t.Errorf("outputFileName() = %q, want output.ibs", got)
	}
}

func TestIndexPinsSkipsDuplicatePinName(t *testing.T) {
	doc := &model.Document{
		Components: []model.Component{{
			Name: "U1",
			Pins: []model.Pin{
				{PinName: "D1", ModelName: "OUT_3V3"},
				{PinName: "D1", ModelName: "IN_3V3"},
			},
		}},
		Models: []model.Model{
			{Name: "OUT_3V3", Type: model.Output},
			{Name: "IN_3V3", Type: model.Input},
		},
	}

	idx := indexPins(doc)
	if len(idx) != 1 {
		t.Fatalf("len(idx) = %d, want 1", len(idx))
	}
	if idx["D1"].model.Name != "OUT_3V3" {
		t.Errorf("first occurrence should win, got model %q", idx["D1"].model.Name)
	}
}

func TestIndexPinsSkipsUnknownModelReference(t *testing.T) {
	doc := &model.Document{
		Components: []model.Component{{
			Name: "U1",
			Pins: []model.Pin{{PinName: "D1", ModelName: "MISSING"}},
		}},
	}

	idx := indexPins(doc)
	if len(idx) != 0 {
		t.Errorf("len(idx) = %d, want 0 for an unresolvable model reference", len(idx))
	}
}

func TestCurveKeyForMapping(t *testing.T) {
	cases := map[consts.CurveType]model.CurveKey{
		consts.CurvePullup:         model.CurveKeyPullup,
		consts.CurvePulldown:       model.CurveKeyPulldown,
		consts.CurveGndClamp:       model.CurveKeyGndClamp,
		consts.CurveSeriesRSeries:  model.CurveKeySeriesRSeries,
		consts.CurvePowerClamp:     model.CurveKeyPowerClamp,
	}

	for ct, want := range cases {
		if got := curveKeyFor(ct); got != want {
			t.Errorf("curveKeyFor(%v) = %v, want %v", ct, got, want)
		}
	}
}

func TestStoreDCDirectSweepUsesPurposeKey(t *testing.T) {
	m := &model.Model{}
	item := plan.Item{Corner: consts.Typ, Kind: plan.DCDirect, Purposes: []consts.CurveType{consts.CurvePulldown}}

	storeDC(m, item, result.DCResult{Points: []dialect.DCPoint{{V: 0, I: 0}, {V: 1, I: -0.01}}})

	got := m.Raw.DirectSweep[model.CurveKeyPulldown][consts.Typ]
	if len(got) != 2 {
		t.Fatalf("len(DirectSweep[Pulldown][Typ]) = %d, want 2", len(got))
	}
}

func TestStoreDCEnabledAndDisabled(t *testing.T) {
	m := &model.Model{}

	storeDC(m, plan.Item{Corner: consts.Typ, Kind: plan.DCEnabled}, result.DCResult{Points: []dialect.DCPoint{{V: 0, I: 0.01}}})
	storeDC(m, plan.Item{Corner: consts.Min, Kind: plan.DCDisabled}, result.DCResult{Points: []dialect.DCPoint{{V: 0, I: 0.001}}})

	if len(m.Raw.EnabledSweep[consts.Typ]) != 1 {
		t.Errorf("EnabledSweep[Typ] not populated")
	}
	if len(m.Raw.DisabledSweep[consts.Min]) != 1 {
		t.Errorf("DisabledSweep[Min] not populated")
	}
}

func TestStoreDCSeriesUsesSeriesRSeriesKey(t *testing.T) {
	m := &model.Model{}
	storeDC(m, plan.Item{Corner: consts.Max, Kind: plan.DCSeries}, result.DCResult{Points: []dialect.DCPoint{{V: 0, I: 0}}})

	if len(m.Raw.DirectSweep[model.CurveKeySeriesRSeries][consts.Max]) != 1 {
		t.Errorf("DirectSweep[SeriesRSeries][Max] not populated")
	}
}

func TestStoreTranRampGoesToRampTransient(t *testing.T) {
	m := &model.Model{}
	item := plan.Item{Corner: consts.Typ, Kind: plan.TransientRamp}

	storeTran(m, item, result.TranResult{Points: []dialect.TranPoint{{T: 0, V: 0, I: 0}}})

	if len(m.Raw.RampTransient[consts.Typ]) != 1 {
		t.Errorf("RampTransient[Typ] not populated")
	}
}

func TestStoreTranRisingKeyedByFixtureIndex(t *testing.T) {
	m := &model.Model{}

	storeTran(m, plan.Item{Corner: consts.Typ, Kind: plan.TransientRising, FixtureIdx: 0}, result.TranResult{Points: []dialect.TranPoint{{T: 0, V: 0, I: 0}}})
	storeTran(m, plan.Item{Corner: consts.Typ, Kind: plan.TransientRising, FixtureIdx: 1}, result.TranResult{Points: []dialect.TranPoint{{T: 0, V: 0.1, I: 0}}})

	if len(m.Raw.RisingTransients) != 2 {
		t.Fatalf("len(RisingTransients) = %d, want 2 distinct fixture keys", len(m.Raw.RisingTransients))
	}
}
