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

import "github.com/simon9721/s2ibis-go/internal/consts"

// Pin is the tuple (pin-name, node-name, signal-name, model-name) of
// spec.md §3, optionally augmented with per-pin package parasitics and
// directives.
type Pin struct {
	PinName   string
	NodeName  string
	SigName   string
	ModelName string
	// Package parasitics specific to this pin; falls back to the
	// component/document Defaults when unset.
	PackageR Scalar[float64]
	PackageL Scalar[float64]
	PackageC Scalar[float64]
	// InputPin names the pin whose model provides the receiver behaviour
	// for a bidirectional pin (spec.md §3).
	InputPin string
	// EnablePin names the pin that drives output enable for a tri-state
	// or I/O model (spec.md §3).
	EnablePin string
}

// Reserved classifies this pin's model-name token, if it is one of the
// reserved sentinels that bypass the planner (spec.md §3, invariant 5).
func (p Pin) Reserved() consts.ReservedKind {
	return consts.ClassifyReserved(p.ModelName)
}
