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

// Package model implements the IBIS document tree of spec.md §3: the
// top-level Document and everything it transitively owns (Components,
// Pins, Models, and their Tables). Pins reference Models by name - a
// lookup, never ownership.
package model

// Metadata is the Document's header bookkeeping, emitted verbatim into the
// `.ibs` file's `[IBIS Ver]`...`[Copyright]` block (spec.md §4.6).
type Metadata struct {
	IBISVersion string
	FileName    string
	FileRev     string
	Date        string
	Source      string
	Notes       []string
	Disclaimer  []string
	Copyright   []string
}

// SimulatorType selects which SPICE dialect decks are rendered for and
// results parsed from (spec.md §6).
type SimulatorType uint8

// The three supported simulators.
const (
	HSPICE SimulatorType = iota
	Spectre
	Eldo
)

// Document is the top-level container of spec.md §3: metadata, a global
// Defaults block, an ordered list of Components, and an ordered list of
// Models.
type Document struct {
	Metadata   Metadata
	Defaults   Defaults
	Simulator  SimulatorType
	Components []Component
	Models     []Model
}

// ModelByName looks up a Model by name. Returns false if no such model is
// declared.
func (d *Document) ModelByName(name string) (*Model, bool) {
	for i := range d.Models {
		if d.Models[i].Name == name {
			return &d.Models[i], true
		}
	}

	return nil, false
}

// IBISVersionAtLeast4 reports whether the declared IBIS version is >= 4.0,
// which governs the V/T waveform row-count policy (spec.md §3, §4.5).
func (d *Document) IBISVersionAtLeast4() bool {
	return versionAtLeast4(d.Metadata.IBISVersion)
}

func versionAtLeast4(v string) bool {
	// Versions are dotted decimal strings like "2.1", "4.0", "5.1"; only
	// the major component matters for the row-count policy.
	major := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			break
		}

		major = major*10 + int(c-'0')
	}

	return major >= 4
}
