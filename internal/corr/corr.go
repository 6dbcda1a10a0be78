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

// Package corr implements the correlation deck generator of spec.md §1: an
// independent, template-driven action that emits one comparison testbench
// per pin, instantiating both the original transistor-level subcircuit and
// the just-derived IBIS behavioural model against the same stimulus so a
// user can visually or numerically correlate the two.
package corr

import (
	"os"
	"path/filepath"
	"text/template"

	"github.com/simon9721/s2ibis-go/internal/errs"
	"github.com/simon9721/s2ibis-go/internal/model"
)

// Generator renders correlation decks into OutDir.
type Generator struct {
	OutDir string
}

// New constructs a Generator writing to outDir.
func New(outDir string) *Generator {
	return &Generator{OutDir: outDir}
}

type deckData struct {
	PinName     string
	ModelName   string
	NetlistPath string
	NodeName    string
	Vmax        float64
	Vgnd        float64
	SimTime     float64
	IncludeIBIS string
}

var deckTmpl = template.Must(template.New("correlate").Parse(
	`* correlation testbench: {{.PinName}} ({{.ModelName}})
.OPTIONS POST=2 INGOLD=2
.TEMP 25

.INC '{{.NetlistPath}}'
.INC '{{.IncludeIBIS}}'

Vstim {{.NodeName}}_stim 0 PULSE({{.Vgnd}} {{.Vmax}} 1n 1n 1n 40n 80n)

Xspice {{.NodeName}}_stim {{.NodeName}}_spice 0 {{.ModelName}}_subckt
Rload_spice {{.NodeName}}_spice 0 50

Xibis {{.NodeName}}_stim {{.NodeName}}_ibis 0 {{.ModelName}}_ibis
Rload_ibis {{.NodeName}}_ibis 0 50

.TRAN 0.1n {{.SimTime}}n
.PRINT TRAN V({{.NodeName}}_spice) V({{.NodeName}}_ibis)
.END
`))

// Generate renders the correlation deck for one pin/model pair and writes
// it to OutDir/compare_{pin}.sp (spec.md §4 "filename discipline").
func (g *Generator) Generate(comp *model.Component, pin *model.Pin, m *model.Model) (string, error) {
	vr := model.Resolve("voltage_range", &m.Defaults, &comp.Defaults, &model.Defaults{})

	vmax, _ := vr.Typ.Get()

	simTime := model.Resolve("simulation_time", &m.Defaults, &comp.Defaults, &model.Defaults{}).Typ.GetOr(100e-9)

	data := deckData{
		PinName:     pin.PinName,
		ModelName:   m.Name,
		NetlistPath: comp.NetlistPath,
		NodeName:    pin.NodeName,
		Vmax:        vmax,
		Vgnd:        0,
		SimTime:     simTime * 1e9,
		IncludeIBIS: m.Name + ".ibs",
	}

	path := filepath.Join(g.OutDir, "compare_"+pin.PinName+".sp")

	f, err := os.Create(path)
	if err != nil {
		return "", &errs.ResourceError{Path: path, Msg: err.Error()}
	}
	defer f.Close()

	if err := deckTmpl.Execute(f, data); err != nil {
		return "", &errs.EmitError{Path: path, Msg: err.Error()}
	}

	return path, nil
}

// GenerateAll renders a correlation deck for every non-reserved,
// simulated pin in the document.
func (g *Generator) GenerateAll(doc *model.Document) ([]string, error) {
	var paths []string

	for ci := range doc.Components {
		comp := &doc.Components[ci]

		for pi := range comp.Pins {
			pin := &comp.Pins[pi]

			if pin.Reserved() != 0 {
				continue
			}

			m, ok := doc.ModelByName(pin.ModelName)
			if !ok || !m.IsSimulated() {
				continue
			}

			path, err := g.Generate(comp, pin, m)
			if err != nil {
				return nil, err
			}

			paths = append(paths, path)
		}
	}

	return paths, nil
}
