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
	"fmt"
	"strings"
	"text/template"

	"github.com/simon9721/s2ibis-go/internal/plan"
)

// profile carries the syntax differences between the three dialects: card
// spelling, comment character, and print-directive shape. RenderDeck is
// otherwise identical across dialects - spec.md §4.2's deck structure
// (title/options, supplies, includes, instantiation, stimulus, fixture,
// probes) is shared; only the card text differs per simulator.
type profile struct {
	name          string
	commentChar   string
	optionsCard   string
	dcCard        func(sweepVar string, start, end, step float64) string
	tranCard      func(tstep, tstop float64) string
	printDCCard   func(probe string) string
	printTranCard func(probes ...string) string
	includeCard   func(path string) string
}

const deckTmplText = `{{.Comment}} deck for pin {{.Pin}} model {{.Model}} curve {{.Curve}} corner {{.Corner}}
{{.OptionsCard}}
{{.Temp}}
VSUPPLY_VDD vdd 0 DC {{.Vdd}}
VSUPPLY_VSS vss 0 DC 0
{{.IncludeCard}}
Xdut {{.Nodes}} {{.SubcktName}}
{{.StimulusCard}}
{{.FixtureCard}}
{{.SweepOrTranCard}}
{{.PrintCard}}
.END
`

var deckTmpl = template.Must(template.New("deck").Parse(deckTmplText))

type deckTmplData struct {
	Comment, Pin, Model, Curve, Corner string
	OptionsCard, Temp, IncludeCard     string
	Nodes, SubcktName                  string
	StimulusCard, FixtureCard          string
	SweepOrTranCard, PrintCard         string
	Vdd                                float64
}

// RenderDeck renders the shared abstract deck structure of spec.md §4.2
// using this profile's card syntax.
func (p profile) RenderDeck(req DeckRequest) (string, error) {
	item := req.Item

	data := deckTmplData{
		Comment:     p.commentChar,
		Pin:         req.Pin.PinName,
		Model:       req.Model.Name,
		Curve:       item.Purposes[0].String(),
		Corner:      item.Corner.String(),
		OptionsCard: p.optionsCard,
		Temp:        fmt.Sprintf("%s .TEMP %.1f", p.commentChar, req.Temp),
		IncludeCard: p.includeCard(req.Model.Subcircuit.ForCorner(item.Corner.String())),
		Nodes:       fmt.Sprintf("%s %s vdd vss", req.Pin.NodeName, req.Pin.SigName),
		SubcktName:  req.Model.Name,
		Vdd:         req.Vmax,
	}

	data.StimulusCard, data.FixtureCard = p.stimulusAndFixture(req)

	switch item.Kind {
	case plan.DCEnabled, plan.DCDisabled, plan.DCDirect, plan.DCSeries:
		data.SweepOrTranCard = p.dcCard(req.Pin.SigName, item.Sweep.Start, item.Sweep.End, item.Step)
		data.PrintCard = p.printDCCard("VSUPPLY_VDD")
	case plan.TransientRamp, plan.TransientRising, plan.TransientFalling:
		simTime := 100 * 1e-9
		data.SweepOrTranCard = p.tranCard(simTime/1000, simTime)
		data.PrintCard = p.printTranCard(req.Pin.NodeName, "VSUPPLY_VDD")
	}

	var sb strings.Builder
	if err := deckTmpl.Execute(&sb, data); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// stimulusAndFixture renders the stimulus source and load/fixture network
// (spec.md §4.2 steps 5-6). DC curves get a swept source starting at the
// sweep's start voltage and no fixture. Every transient gets the same PULSE
// from 0 to Vmax (1ns edges, 50ns width, 100ns period) into a 50 ohm load
// resistor to ground; the target rise/fall times and the item's curve type
// change neither the pulse nor the fixture.
func (p profile) stimulusAndFixture(req DeckRequest) (stimulus, fixture string) {
	item := req.Item

	switch item.Kind {
	case plan.DCEnabled, plan.DCDisabled, plan.DCDirect, plan.DCSeries:
		stimulus = fmt.Sprintf("Vsweep %s 0 DC %.6g", req.Pin.SigName, item.Sweep.Start)
		fixture = ""
	default:
		stimulus = fmt.Sprintf("Vin in 0 PULSE(0 %.4g 0 1n 1n 50n 100n)", req.Vmax)
		fixture = "Rload out 0 50"
	}

	return stimulus, fixture
}
