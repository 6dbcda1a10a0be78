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
package config

import (
	"strings"

	"github.com/simon9721/s2ibis-go/internal/errs"
	"github.com/simon9721/s2ibis-go/internal/model"
)

// cornerField selects one of Defaults' corner-valued fields.
// cornerFieldsByKeyword maps the flat form's lower-case keyword spelling
// (e.g. "voltage range") to it; these keys are not the snake_case names
// model.Resolve takes.
type cornerField func(d *model.Defaults) *model.Corner3[float64]

var cornerFieldsByKeyword = map[string]cornerField{
	"voltage range":      func(d *model.Defaults) *model.Corner3[float64] { return &d.VoltageRange },
	"temperature range":  func(d *model.Defaults) *model.Corner3[float64] { return &d.TemperatureRange },
	"pullup reference":   func(d *model.Defaults) *model.Corner3[float64] { return &d.PullupRef },
	"pulldown reference": func(d *model.Defaults) *model.Corner3[float64] { return &d.PulldownRef },
	"power clamp reference": func(d *model.Defaults) *model.Corner3[float64] {
		return &d.PowerClampRef
	},
	"gnd clamp reference": func(d *model.Defaults) *model.Corner3[float64] { return &d.GndClampRef },
	"die capacitance":     func(d *model.Defaults) *model.Corner3[float64] { return &d.DieCapacitance },
	"load resistance":     func(d *model.Defaults) *model.Corner3[float64] { return &d.LoadResistance },
	"simulation time":     func(d *model.Defaults) *model.Corner3[float64] { return &d.SimulationTime },
	"input low voltage":   func(d *model.Defaults) *model.Corner3[float64] { return &d.InputLowVoltage },
	"input high voltage":  func(d *model.Defaults) *model.Corner3[float64] { return &d.InputHighVoltage },
	"target rise time":    func(d *model.Defaults) *model.Corner3[float64] { return &d.TargetRiseTime },
	"target fall time":    func(d *model.Defaults) *model.Corner3[float64] { return &d.TargetFallTime },
}

// loaderState tracks the in-progress Document while flat blocks are lowered
// in order; components/models are built up and appended only once the next
// section (or end-of-file) closes them, since IBIS declares fields after the
// owning "[Component]"/"[Model]" header line.
type loaderState struct {
	doc *model.Document

	comp    *model.Component
	mdl     *model.Model
	scope   *model.Defaults // where the next corner-valued keyword writes to
	curFile string
}

func (s *loaderState) flushModel() {
	if s.mdl != nil {
		s.doc.Models = append(s.doc.Models, *s.mdl)
		s.mdl = nil
	}
}

func (s *loaderState) flushComponent() {
	s.flushModel()

	if s.comp != nil {
		s.doc.Components = append(s.doc.Components, *s.comp)
		s.comp = nil
	}
}

func lowerFlatBlocks(file string, blocks []block) (*model.Document, error) {
	doc := &model.Document{}
	st := &loaderState{doc: doc, curFile: file, scope: &doc.Defaults}

	for _, b := range blocks {
		if err := st.apply(b); err != nil {
			return nil, err
		}
	}

	st.flushComponent()

	return doc, nil
}

func (s *loaderState) apply(b block) error {
	key := strings.ToLower(b.Keyword)

	if field, ok := cornerFieldsByKeyword[key]; ok {
		c, err := parseCornerTriple(b.Args)
		if err != nil {
			return &errs.ConfigError{File: s.curFile, Span: b.Span, Msg: err.Error()}
		}

		*field(s.scope) = c

		return nil
	}

	switch b.Keyword {
	case "IBIS Ver":
		s.doc.Metadata.IBISVersion = strings.Join(b.Args, " ")
	case "File Name":
		s.doc.Metadata.FileName = strings.Join(b.Args, " ")
	case "File Rev":
		s.doc.Metadata.FileRev = strings.Join(b.Args, " ")
	case "Date":
		s.doc.Metadata.Date = strings.Join(b.Args, " ")
	case "Source":
		s.doc.Metadata.Source = strings.Join(b.Args, " ")
	case "Notes":
		s.doc.Metadata.Notes = b.Lines
	case "Disclaimer":
		s.doc.Metadata.Disclaimer = b.Lines
	case "Copyright":
		s.doc.Metadata.Copyright = b.Lines
	case "Simulator":
		if len(b.Args) > 0 {
			s.doc.Simulator = parseSimulator(b.Args[0])
		}
	case "Component":
		s.flushComponent()
		s.comp = &model.Component{Name: strings.Join(b.Args, " ")}
		s.scope = &s.comp.Defaults
	case "Manufacturer":
		if s.comp != nil {
			s.comp.Manufacturer = strings.Join(b.Args, " ")
		}
	case "Package Model":
		if s.comp != nil {
			s.comp.PackageModel = strings.Join(b.Args, " ")
		}
	case "Package":
		return s.applyPackage(b)
	case "Pin":
		return s.applyPins(b)
	case "Diff Pin":
		return s.applyDiffPin(b)
	case "Series Switch Group":
		return s.applySeriesSwitch(b)
	case "Model":
		s.flushModel()
		s.mdl = &model.Model{Name: strings.Join(b.Args, " ")}
		s.scope = &s.mdl.Defaults
	case "Model type":
		if s.mdl == nil {
			return &errs.ConfigError{File: s.curFile, Span: b.Span, Msg: "[Model type] outside a [Model] block"}
		}

		t, err := model.ParseModelType(strings.Join(b.Args, "_"))
		if err != nil {
			return &errs.ConfigError{File: s.curFile, Span: b.Span, Msg: err.Error()}
		}

		s.mdl.Type = t
	case "Polarity":
		if s.mdl != nil && len(b.Args) > 0 && strings.EqualFold(b.Args[0], "Inverting") {
			s.mdl.Polarity = model.Inverting
		}
	case "Enable":
		if s.mdl != nil && len(b.Args) > 0 && strings.EqualFold(b.Args[0], "Active-Low") {
			s.mdl.EnablePolarity = model.ActiveLow
		}
	case "NoModel":
		if s.mdl != nil {
			s.mdl.NoModel = true
		}
	case "Vinl", "Vinh", "Vmeas", "Vref", "Cref", "Rref":
		return s.applyModelScalarCorner(b)
	case "Subcircuit":
		if s.mdl != nil {
			s.mdl.Subcircuit = subcircuitFromArgs(b.Args)
		}
	case "Clamp Tolerance":
		return s.applyScalar(b, func(d *model.Defaults) *model.Scalar[float64] { return &d.ClampTolerance })
	case "Derate VI":
		return s.applyScalar(b, func(d *model.Defaults) *model.Scalar[float64] { return &d.DerateVIPercent })
	case "Derate Ramp":
		return s.applyScalar(b, func(d *model.Defaults) *model.Scalar[float64] { return &d.DerateRampPct })
	case "End":
		s.flushComponent()
	default:
		// Unrecognised keywords are tolerated: spec.md §1 scopes the
		// configuration front-end itself out of core; a complete IBIS
		// grammar has many more bracketed sections than this domain
		// model represents, and rejecting them would make otherwise
		// valid files unloadable.
	}

	return nil
}

func (s *loaderState) applyModelScalarCorner(b block) error {
	if s.mdl == nil {
		return &errs.ConfigError{File: s.curFile, Span: b.Span, Msg: "threshold keyword outside a [Model] block"}
	}

	c, err := parseCornerTriple(b.Args)
	if err != nil {
		return &errs.ConfigError{File: s.curFile, Span: b.Span, Msg: err.Error()}
	}

	switch b.Keyword {
	case "Vinl":
		s.mdl.Vinl = c
	case "Vinh":
		s.mdl.Vinh = c
	case "Vmeas":
		s.mdl.Vmeas = c
	case "Vref":
		s.mdl.Vref = c
	case "Cref":
		s.mdl.Cref = c
	case "Rref":
		s.mdl.Rref = c
	}

	return nil
}

func (s *loaderState) applyScalar(b block, get func(*model.Defaults) *model.Scalar[float64]) error {
	if len(b.Args) == 0 || isUnset(b.Args[0]) {
		return nil
	}

	v, err := parseNumber(b.Args[0])
	if err != nil {
		return &errs.ConfigError{File: s.curFile, Span: b.Span, Msg: err.Error()}
	}

	*get(s.scope) = model.Of(v)

	return nil
}

func (s *loaderState) applyPackage(b block) error {
	if s.comp == nil {
		return &errs.ConfigError{File: s.curFile, Span: b.Span, Msg: "[Package] outside a [Component] block"}
	}

	for _, line := range b.Lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		c, err := parseCornerTriple(fields[1:])
		if err != nil {
			return &errs.ConfigError{File: s.curFile, Span: b.Span, Msg: err.Error()}
		}

		switch strings.ToUpper(fields[0]) {
		case "R_PKG":
			s.comp.Defaults.PackageR = c
		case "L_PKG":
			s.comp.Defaults.PackageL = c
		case "C_PKG":
			s.comp.Defaults.PackageC = c
		}
	}

	return nil
}

func (s *loaderState) applyPins(b block) error {
	if s.comp == nil {
		return &errs.ConfigError{File: s.curFile, Span: b.Span, Msg: "[Pin] outside a [Component] block"}
	}

	for _, line := range b.Lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if strings.EqualFold(fields[0], "pin_name") || strings.EqualFold(fields[0], "signal_name") {
			continue // header row
		}

		pin := model.Pin{PinName: fields[0]}

		if len(fields) > 1 {
			pin.SigName = fields[1]
		}

		if len(fields) > 2 {
			pin.ModelName = fields[2]
		}

		if len(fields) > 3 {
			pin.InputPin = fields[3]
		}

		if len(fields) > 4 {
			pin.EnablePin = fields[4]
		}

		s.comp.Pins = append(s.comp.Pins, pin)
	}

	return nil
}

func (s *loaderState) applyDiffPin(b block) error {
	if s.comp == nil || len(b.Args) < 2 {
		return &errs.ConfigError{File: s.curFile, Span: b.Span, Msg: "malformed [Diff Pin] declaration"}
	}

	dp := model.DiffPin{PinA: b.Args[0], PinB: b.Args[1]}

	if len(b.Args) > 2 && !isUnset(b.Args[2]) {
		if v, err := parseNumber(b.Args[2]); err == nil {
			dp.Vdiff = model.Of(v)
		}
	}

	if len(b.Args) > 3 && !isUnset(b.Args[3]) {
		if v, err := parseNumber(b.Args[3]); err == nil {
			dp.Tdelay = model.Of(v)
		}
	}

	s.comp.DiffPins = append(s.comp.DiffPins, dp)

	return nil
}

func (s *loaderState) applySeriesSwitch(b block) error {
	if s.comp == nil || len(b.Args) < 1 {
		return &errs.ConfigError{File: s.curFile, Span: b.Span, Msg: "malformed [Series Switch Group] declaration"}
	}

	s.comp.SeriesSwitches = append(s.comp.SeriesSwitches, model.SeriesSwitchGroup{
		Name: b.Args[0],
		Pins: append([]string{}, b.Args[1:]...),
	})

	return nil
}

func subcircuitFromArgs(args []string) model.SubcircuitFiles {
	var s model.SubcircuitFiles

	if len(args) > 0 {
		s.Typ = args[0]
	}

	if len(args) > 1 {
		s.Min = args[1]
	}

	if len(args) > 2 {
		s.Max = args[2]
	}

	return s
}

// parseCornerTriple parses 1 or 3 whitespace-separated tokens into a
// Corner3: a single token sets only Typ; three tokens set typ/min/max in
// order. The reserved token "NA" leaves a corner unset.
func parseCornerTriple(args []string) (model.Corner3[float64], error) {
	var c model.Corner3[float64]

	switch len(args) {
	case 0:
		return c, nil
	case 1:
		if isUnset(args[0]) {
			return c, nil
		}

		v, err := parseNumber(args[0])
		if err != nil {
			return c, err
		}

		c.Typ = model.Of(v)

		return c, nil
	default:
		setters := []*model.Scalar[float64]{&c.Typ, &c.Min, &c.Max}
		for i := 0; i < 3 && i < len(args); i++ {
			if isUnset(args[i]) {
				continue
			}

			v, err := parseNumber(args[i])
			if err != nil {
				return c, err
			}

			*setters[i] = model.Of(v)
		}

		return c, nil
	}
}

func parseSimulator(tok string) model.SimulatorType {
	switch strings.ToLower(tok) {
	case "spectre":
		return model.Spectre
	case "eldo":
		return model.Eldo
	default:
		return model.HSPICE
	}
}
