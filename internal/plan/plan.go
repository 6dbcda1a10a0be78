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

// Package plan implements the Planner of spec.md §4.1: given a populated
// Document, it decides the set of required characterization simulations
// per pin/model, in which corners, with which stimulus/termination recipe.
package plan

import (
	"fmt"

	"github.com/simon9721/s2ibis-go/internal/consts"
	"github.com/simon9721/s2ibis-go/internal/errs"
	"github.com/simon9721/s2ibis-go/internal/model"
)

// SimKind identifies the shape of simulation a Plan Item requires: a DC
// sweep (with the driver enabled, disabled, or a direct clamp/driver
// sweep), or one of the transient shapes.
type SimKind uint8

// The supported simulation shapes.
const (
	DCEnabled SimKind = iota
	DCDisabled
	DCDirect
	TransientRamp
	TransientRising
	TransientFalling
	DCSeries
)

// Item is one Simulation Plan Item (spec.md §3): a concrete simulation to
// run, the Plan Item's corner, its output filename, and the set of derived
// curves it feeds. MultiUse is set when more than one derived curve is fed
// by this single simulation (spec.md §4.1 "Tie-breaks").
type Item struct {
	Pin        string
	Model      string
	Kind       SimKind
	Corner     consts.Corner
	Sweep      SweepRange // meaningful for DC* kinds
	Step       float64
	NumPoints  int
	FixtureIdx int // meaningful for TransientRising/TransientFalling
	Purposes   []consts.CurveType
	OutputFile string
	MultiUse   bool
}

// Plan walks every Component's Pin List in order and, for each non-reserved,
// simulated Model, builds the ordered Simulation Plan Items a pin requires
// (spec.md §4.1's contract: "a pin's items complete before the next pin
// begins").
func Plan(doc *model.Document) ([]Item, error) {
	var items []Item

	for ci := range doc.Components {
		comp := &doc.Components[ci]

		for pi := range comp.Pins {
			pin := &comp.Pins[pi]

			if pin.Reserved() != consts.NotReserved {
				continue
			}

			m, ok := doc.ModelByName(pin.ModelName)
			if !ok {
				return nil, &errs.ConfigError{Msg: fmt.Sprintf("pin %q references unknown model %q", pin.PinName, pin.ModelName)}
			}

			if !m.IsSimulated() {
				continue
			}

			pinItems, err := planPin(doc, comp, pin, m)
			if err != nil {
				return nil, err
			}

			items = append(items, pinItems...)
		}
	}

	return items, nil
}

func planPin(doc *model.Document, comp *model.Component, pin *model.Pin, m *model.Model) ([]Item, error) {
	if m.HasEnable() && pin.EnablePin == "" {
		return nil, &errs.PlanError{Pin: pin.PinName, Model: m.Name, Msg: "model requires an enable pin but none is declared"}
	}

	var items []Item

	for _, corner := range consts.Corners {
		vr := model.Resolve("voltage_range", &m.Defaults, &comp.Defaults, &doc.Defaults)

		vmax, ok := vr.At(corner).Get()
		if !ok {
			// Corner defaults entirely unset: skip it (spec.md §4.1
			// "Corner selection" - absent corners filled with NA later).
			continue
		}

		vgnd := 0.0

		curveItems, err := planCurvesForCorner(m.Type, pin, m.Name, corner, vgnd, vmax)
		if err != nil {
			return nil, err
		}

		items = append(items, curveItems...)
	}

	return items, nil
}

// planCurvesForCorner applies the decision table of spec.md §4.1 for one
// (model-type, corner) pair, returning the concrete Plan Items.
func planCurvesForCorner(t model.ModelType, pin *model.Pin, modelName string, corner consts.Corner, vgnd, vmax float64) ([]Item, error) {
	var items []Item

	mk := func(kind SimKind, sweep SweepRange, purposes ...consts.CurveType) Item {
		step := Step(sweep)
		n := NumPoints(sweep, step)
		prefix := consts.FilenamePrefix(purposes[0])

		return Item{
			Pin: pin.PinName, Model: modelName, Kind: kind, Corner: corner,
			Sweep: sweep, Step: step, NumPoints: n, Purposes: purposes,
			OutputFile: fmt.Sprintf("%s_%s_%s.sp", prefix, pin.PinName, corner),
			MultiUse:   len(purposes) > 1,
		}
	}

	mkTransient := func(kind SimKind, fixtureIdx int, purpose consts.CurveType) Item {
		prefix := consts.FilenamePrefix(purpose)
		return Item{
			Pin: pin.PinName, Model: modelName, Kind: kind, Corner: corner,
			FixtureIdx: fixtureIdx, Purposes: []consts.CurveType{purpose},
			OutputFile: fmt.Sprintf("%s_%s_%s.sp", prefix, pin.PinName, corner),
		}
	}

	switch t {
	case model.Input, model.InputECL:
		items = append(items, mk(DCDirect, PowerClampRange(vmax), consts.CurvePowerClamp))
		items = append(items, mk(DCDirect, GndClampRange(vgnd, vmax), consts.CurveGndClamp))
	case model.Output, model.OutputECL:
		items = append(items, mk(DCDirect, PullupPulldownRange(vgnd, vmax), consts.CurvePullup, consts.CurvePulldown))
		items = append(items, mk(TransientRamp, SweepRange{}, consts.CurveRamp))
		items = append(items, mkTransient(TransientRising, 0, consts.CurveRisingWaveform))
		items = append(items, mkTransient(TransientFalling, 0, consts.CurveFallingWaveform))
	case model.IO, model.IOECL:
		items = append(items, mk(DCEnabled, PullupPulldownRange(vgnd, vmax), consts.CurvePullup, consts.CurvePulldown))
		items = append(items, mk(DCDisabled, PullupPulldownRange(vgnd, vmax), consts.CurvePullup, consts.CurvePulldown, consts.CurvePowerClamp, consts.CurveGndClamp))
		items = append(items, mk(TransientRamp, SweepRange{}, consts.CurveRamp))
		items = append(items, mkTransient(TransientRising, 0, consts.CurveRisingWaveform))
		items = append(items, mkTransient(TransientFalling, 0, consts.CurveFallingWaveform))
	case model.ThreeState:
		items = append(items, mk(DCEnabled, PullupPulldownRange(vgnd, vmax), consts.CurvePullup, consts.CurvePulldown))
		items = append(items, mk(DCDisabled, PullupPulldownRange(vgnd, vmax), consts.CurvePullup, consts.CurvePulldown, consts.CurvePowerClamp, consts.CurveGndClamp))
		items = append(items, mk(TransientRamp, SweepRange{}, consts.CurveRamp))
	case model.OpenDrain, model.OpenSink:
		items = append(items, mk(DCDirect, PullupPulldownRange(vgnd, vmax), consts.CurvePulldown))
		items = append(items, mk(DCDirect, PowerClampRange(vmax), consts.CurvePowerClamp))
		items = append(items, mk(DCDirect, GndClampRange(vgnd, vmax), consts.CurveGndClamp))
		items = append(items, mk(TransientRamp, SweepRange{}, consts.CurveRamp))
	case model.OpenSource:
		items = append(items, mk(DCDirect, PullupPulldownRange(vgnd, vmax), consts.CurvePullup))
		items = append(items, mk(DCDirect, PowerClampRange(vmax), consts.CurvePowerClamp))
		items = append(items, mk(DCDirect, GndClampRange(vgnd, vmax), consts.CurveGndClamp))
		items = append(items, mk(TransientRamp, SweepRange{}, consts.CurveRamp))
	case model.Terminator:
		items = append(items, mk(DCDirect, PowerClampRange(vmax), consts.CurvePowerClamp))
		items = append(items, mk(DCDirect, GndClampRange(vgnd, vmax), consts.CurveGndClamp))
	case model.Series, model.SeriesSwitch:
		items = append(items, mk(DCSeries, PullupPulldownRange(vgnd, vmax), consts.CurveSeriesRSeries))
	default:
		return nil, &errs.PlanError{Pin: pin.PinName, Model: modelName, Msg: fmt.Sprintf("unhandled model type %v", t)}
	}

	return items, nil
}
