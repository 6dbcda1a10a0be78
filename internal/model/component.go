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

// DiffPin is a differential pin pairing, carried as a first-class but
// optional field per SPEC_FULL.md §4 ("partially supported" structured-form
// features promoted to first-class, emitted only when present).
type DiffPin struct {
	PinA   string
	PinB   string
	Vdiff  Scalar[float64]
	Tdelay Scalar[float64]
}

// SeriesSwitchGroup names the pins that belong to one series-switch group,
// again promoted from "partially supported" to first-class-but-optional.
type SeriesSwitchGroup struct {
	Name string
	Pins []string
}

// Component is a named physical part: a SPICE netlist reference, an ordered
// Pin List, and component-level Defaults overriding the Document's
// (spec.md §3).
type Component struct {
	Name             string
	NetlistPath      string
	SeriesNetlist    string
	Manufacturer     string
	PackageModel     string
	Pins             []Pin
	Defaults         Defaults
	DiffPins         []DiffPin
	SeriesSwitches   []SeriesSwitchGroup
	SeriesPinMapping map[string]string
	PinMapping       map[string]string
}

// PinByName looks up a pin by name within this component. Pins are
// referenced by Models by name, never owned by them (spec.md §3
// "Ownership").
func (c *Component) PinByName(name string) (*Pin, bool) {
	for i := range c.Pins {
		if c.Pins[i].PinName == name {
			return &c.Pins[i], true
		}
	}

	return nil, false
}
