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
package dialect

import (
	"strings"
	"testing"

	"github.com/simon9721/s2ibis-go/internal/consts"
	"github.com/simon9721/s2ibis-go/internal/model"
	"github.com/simon9721/s2ibis-go/internal/plan"
)

func sampleDCRequest() DeckRequest {
	return DeckRequest{
		Item: plan.Item{
			Pin: "D1", Model: "OUT_3V3", Kind: plan.DCDirect,
			Corner: consts.Typ, Sweep: plan.SweepRange{Start: -3.3, End: 6.6}, Step: 0.0825,
			Purposes: []consts.CurveType{consts.CurvePullup},
		},
		Doc:       &model.Document{},
		Component: &model.Component{Name: "U1"},
		Pin:       &model.Pin{PinName: "D1", NodeName: "d1", SigName: "d1_sig"},
		Model:     &model.Model{Name: "OUT_3V3"},
		Vmax:      3.3,
		Vgnd:      0,
		Temp:      25,
	}
}

func TestHSPICERenderDeckContainsCards(t *testing.T) {
	req := sampleDCRequest()

	out, err := hspiceDialect{}.RenderDeck(req)
	if err != nil {
		t.Fatalf("RenderDeck() error: %v", err)
	}

	for _, want := range []string{".OPTIONS POST=2", ".DC Vsweep", ".PRINT DC", ".END", "d1_sig"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered deck missing %q:\n%s", want, out)
		}
	}
}

func TestSpectreRenderDeckUsesSpectreSyntax(t *testing.T) {
	req := sampleDCRequest()

	out, err := spectreDialect{}.RenderDeck(req)
	if err != nil {
		t.Fatalf("RenderDeck() error: %v", err)
	}

	if !strings.Contains(out, "sweepDC dc") {
		t.Errorf("rendered Spectre deck missing sweepDC card:\n%s", out)
	}
	if strings.Contains(out, ".DC Vsweep") {
		t.Error("rendered Spectre deck should not contain HSPICE-syntax cards")
	}
}

func TestEldoRenderDeckTransient(t *testing.T) {
	req := sampleDCRequest()
	req.Item.Kind = plan.TransientRising
	req.Item.Purposes = []consts.CurveType{consts.CurveRisingWaveform}

	out, err := eldoDialect{}.RenderDeck(req)
	if err != nil {
		t.Fatalf("RenderDeck() error: %v", err)
	}

	if !strings.Contains(out, ".TRAN") {
		t.Errorf("rendered transient deck missing .TRAN card:\n%s", out)
	}
	if !strings.Contains(out, "PULSE") {
		t.Errorf("rendered transient deck missing PULSE stimulus:\n%s", out)
	}
}
