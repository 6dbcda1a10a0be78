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

import "fmt"

// ModelType enumerates the IBIS buffer model types named in spec.md §3/§4.1.
type ModelType uint8

// The supported model types.
const (
	Input ModelType = iota
	InputECL
	Output
	OutputECL
	IO
	IOECL
	ThreeState
	OpenDrain
	OpenSink
	OpenSource
	Terminator
	Series
	SeriesSwitch
)

var modelTypeNames = map[ModelType]string{
	Input:        "Input",
	InputECL:     "Input_ECL",
	Output:       "Output",
	OutputECL:    "Output_ECL",
	IO:           "I/O",
	IOECL:        "I/O_ECL",
	ThreeState:   "3-state",
	OpenDrain:    "Open_drain",
	OpenSink:     "Open_sink",
	OpenSource:   "Open_source",
	Terminator:   "Terminator",
	Series:       "Series",
	SeriesSwitch: "Series_switch",
}

// String renders the model type using its IBIS `[Model type]` token.
func (t ModelType) String() string {
	if s, ok := modelTypeNames[t]; ok {
		return s
	}

	return "?"
}

var modelTypesByName = func() map[string]ModelType {
	m := make(map[string]ModelType, len(modelTypeNames))
	for t, n := range modelTypeNames {
		m[n] = t
	}
	// Accept the slash-free spellings the flat config form also uses.
	m["IO"] = IO
	m["IO_ECL"] = IOECL

	return m
}()

// ParseModelType resolves a `[Model type]` token (from either config form)
// into a ModelType, returning an error for any unrecognised token.
func ParseModelType(s string) (ModelType, error) {
	if t, ok := modelTypesByName[s]; ok {
		return t, nil
	}

	return 0, fmt.Errorf("unknown model type %q", s)
}

// Polarity is the driver polarity of a model.
type Polarity uint8

// Polarity values.
const (
	NonInverting Polarity = iota
	Inverting
)

// EnablePolarity is the sense in which a model's enable pin is active.
type EnablePolarity uint8

// EnablePolarity values.
const (
	ActiveHigh EnablePolarity = iota
	ActiveLow
)
