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

import "testing"

func TestSubcircuitFilesForCornerFallback(t *testing.T) {
	s := SubcircuitFiles{Typ: "typ.sp", Max: "max.sp"}

	if got := s.ForCorner("typ"); got != "typ.sp" {
		t.Errorf("ForCorner(typ) = %q, want typ.sp", got)
	}
	if got := s.ForCorner("max"); got != "max.sp" {
		t.Errorf("ForCorner(max) = %q, want max.sp", got)
	}
	// min was never set; falls back to Typ.
	if got := s.ForCorner("min"); got != "typ.sp" {
		t.Errorf("ForCorner(min) = %q, want fallback typ.sp", got)
	}
}

func TestRawCurvesAddDirectSweepNoCollision(t *testing.T) {
	var raw RawCurves

	pull := []VIPoint{{V: 0, I: 0}, {V: 1, I: 0.01}}
	clamp := []VIPoint{{V: -1, I: -0.5}, {V: 0, I: 0}}

	raw.AddDirectSweep(CurveKeyPullup, 0, pull)
	raw.AddDirectSweep(CurveKeyPowerClamp, 0, clamp)

	gotPull := raw.DirectSweep[CurveKeyPullup][0]
	gotClamp := raw.DirectSweep[CurveKeyPowerClamp][0]

	if len(gotPull) != 2 || gotPull[1].I != 0.01 {
		t.Errorf("DirectSweep[CurveKeyPullup][0] = %+v, want pullup points intact", gotPull)
	}
	if len(gotClamp) != 2 || gotClamp[0].I != -0.5 {
		t.Errorf("DirectSweep[CurveKeyPowerClamp][0] = %+v, want clamp points intact (no overwrite)", gotClamp)
	}
}

func TestRawCurvesAddDirectSweepPerCorner(t *testing.T) {
	var raw RawCurves

	raw.AddDirectSweep(CurveKeyGndClamp, 0, []VIPoint{{V: 0, I: 0}})
	raw.AddDirectSweep(CurveKeyGndClamp, 2, []VIPoint{{V: 0, I: 0.1}})

	if len(raw.DirectSweep[CurveKeyGndClamp][0]) != 1 {
		t.Error("corner 0 (typ) samples missing after adding corner 2 (max)")
	}
	if raw.DirectSweep[CurveKeyGndClamp][2][0].I != 0.1 {
		t.Errorf("corner 2 (max) sample = %v, want 0.1", raw.DirectSweep[CurveKeyGndClamp][2][0].I)
	}
}

func TestModelIsSimulated(t *testing.T) {
	m := &Model{Name: "X"}
	if !m.IsSimulated() {
		t.Error("a model with NoModel=false should be simulated")
	}

	m.NoModel = true
	if m.IsSimulated() {
		t.Error("a model with NoModel=true should not be simulated")
	}
}

func TestModelHasEnable(t *testing.T) {
	cases := map[ModelType]bool{
		IO:         true,
		IOECL:      true,
		ThreeState: true,
		Output:     false,
		Input:      false,
		OpenDrain:  false,
	}

	for mt, want := range cases {
		m := &Model{Type: mt}
		if got := m.HasEnable(); got != want {
			t.Errorf("Model{Type: %v}.HasEnable() = %v, want %v", mt, got, want)
		}
	}
}
