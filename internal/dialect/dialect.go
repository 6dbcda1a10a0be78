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

// Package dialect models simulator dialects as a small interface plus one
// concrete implementation per supported simulator, the same shape the
// teacher's pkg/cmd/picus.go uses to select among field implementations via
// schema.GetFieldConfig(field): a lookup function from a declared name to a
// concrete behaviour, so adding a fourth simulator requires no change
// outside this package (spec.md §9 "Simulator dialects").
package dialect

import (
	"github.com/simon9721/s2ibis-go/internal/model"
	"github.com/simon9721/s2ibis-go/internal/plan"
)

// DeckRequest carries everything RenderDeck needs to synthesize one deck:
// the Plan Item, the owning Document/Component/Pin/Model, and the
// resolved corner voltages/temperature.
type DeckRequest struct {
	Item      plan.Item
	Doc       *model.Document
	Component *model.Component
	Pin       *model.Pin
	Model     *model.Model
	Vmax      float64
	Vgnd      float64
	Temp      float64
}

// DCPoint is a single parsed (V, I) sample from a DC sweep result.
type DCPoint struct {
	V float64
	I float64
}

// TranPoint is a single parsed (t, V, I) sample from a transient result.
type TranPoint struct {
	T float64
	V float64
	I float64
}

// Dialect is the per-simulator behaviour: render a deck for a Plan Item,
// and parse the two result shapes the Result Reader needs (spec.md §4.2,
// §4.4).
type Dialect interface {
	// Name identifies this dialect for logging and filename/CLI matching.
	Name() string
	// RenderDeck produces the complete SPICE deck text for one Plan Item.
	RenderDeck(req DeckRequest) (string, error)
	// ParseDC parses a DC-sweep result file into (V, I) pairs, monotonic
	// in V by construction.
	ParseDC(data []byte) ([]DCPoint, error)
	// ParseTran parses a transient result file into raw (t, V, I) samples
	// at the simulator's chosen time points.
	ParseTran(data []byte) ([]TranPoint, error)
}

// ByName resolves a dialect name (as declared via --spice-type) to its
// concrete Dialect, or false if unrecognised.
func ByName(name string) (Dialect, bool) {
	switch name {
	case "hspice":
		return hspiceDialect{}, true
	case "spectre":
		return spectreDialect{}, true
	case "eldo":
		return eldoDialect{}, true
	default:
		return nil, false
	}
}

// SupplyCurrentSign converts a SPICE passive-convention supply current
// reading into the IBIS active-convention sign: positive current sourced
// by the supply into the circuit (spec.md §4.2 "Sign convention"). SPICE
// reports current flowing into a source's positive terminal as positive;
// negating it yields "current the supply delivers to the circuit".
func SupplyCurrentSign(spiceCurrent float64) float64 {
	return -spiceCurrent
}
