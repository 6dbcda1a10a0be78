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

// Package emit implements the Emitter of spec.md §4.6: it renders a fully
// derived Document as a syntactically correct `.ibs` file, in the fixed
// section order the IBIS grammar requires, with fixed-precision scientific
// numeric formatting and the NA sentinel for any corner the Curve Deriver
// could not produce.
package emit

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/simon9721/s2ibis-go/internal/consts"
	"github.com/simon9721/s2ibis-go/internal/errs"
	"github.com/simon9721/s2ibis-go/internal/model"
)

// Emitter renders a Document to the `.ibs` text format.
type Emitter struct{}

// New constructs an Emitter.
func New() *Emitter { return &Emitter{} }

// WriteFile renders doc and writes it to path.
func (e *Emitter) WriteFile(doc *model.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &errs.EmitError{Path: path, Msg: err.Error()}
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := e.Write(doc, w); err != nil {
		return err
	}

	if err := w.Flush(); err != nil {
		return &errs.EmitError{Path: path, Msg: err.Error()}
	}

	return nil
}

// Write renders doc's sections, in order, to w: Header, one block per
// Component, one block per Model, then [End] (spec.md §4.6 "Section
// order").
func (e *Emitter) Write(doc *model.Document, w io.Writer) error {
	writeHeader(w, doc)

	for i := range doc.Components {
		writeComponent(w, &doc.Components[i])
	}

	for i := range doc.Models {
		writeModel(w, &doc.Models[i])
	}

	fmt.Fprintln(w, "[End]")

	return nil
}

func writeHeader(w io.Writer, doc *model.Document) {
	md := doc.Metadata

	fmt.Fprintf(w, "[IBIS Ver]\t%s\n", orDefault(md.IBISVersion, "2.1"))
	fmt.Fprintf(w, "[File Name]\t%s\n", md.FileName)
	fmt.Fprintf(w, "[File Rev]\t%s\n", orDefault(md.FileRev, "1.0"))

	if md.Date != "" {
		fmt.Fprintf(w, "[Date]\t%s\n", md.Date)
	}

	if md.Source != "" {
		fmt.Fprintf(w, "[Source]\t%s\n", md.Source)
	}

	writeBlock(w, "[Notes]", md.Notes)
	writeBlock(w, "[Disclaimer]", md.Disclaimer)
	writeBlock(w, "[Copyright]", md.Copyright)

	fmt.Fprintln(w)
}

func writeBlock(w io.Writer, header string, lines []string) {
	if len(lines) == 0 {
		return
	}

	fmt.Fprintln(w, header)

	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

func writeComponent(w io.Writer, c *model.Component) {
	fmt.Fprintf(w, "[Component]\t%s\n", c.Name)

	if c.Manufacturer != "" {
		fmt.Fprintf(w, "[Manufacturer]\t%s\n", c.Manufacturer)
	}

	fmt.Fprintln(w, "[Package]")
	writeCorner3Row(w, "R_pkg", c.Defaults.PackageR)
	writeCorner3Row(w, "L_pkg", c.Defaults.PackageL)
	writeCorner3Row(w, "C_pkg", c.Defaults.PackageC)

	fmt.Fprintln(w, "[Pin]\tsignal_name\tmodel_name\tR_pin\tL_pin\tC_pin")

	for _, p := range c.Pins {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.PinName, orDefault(p.SigName, p.PinName), p.ModelName,
			scalarOrNA(p.PackageR), scalarOrNA(p.PackageL), scalarOrNA(p.PackageC))
	}

	for _, dp := range c.DiffPins {
		fmt.Fprintf(w, "[Diff Pin]\t%s\t%s\t%s\t%s\n",
			dp.PinA, dp.PinB, scalarOrNA(dp.Vdiff), scalarOrNA(dp.Tdelay))
	}

	for _, g := range c.SeriesSwitches {
		fmt.Fprintf(w, "[Series Switch Group]\t%s", g.Name)

		for _, p := range g.Pins {
			fmt.Fprintf(w, "\t%s", p)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
}

func writeModel(w io.Writer, m *model.Model) {
	fmt.Fprintf(w, "[Model]\t%s\n", m.Name)
	fmt.Fprintf(w, "Model_type\t%s\n", m.Type.String())

	if m.Polarity == model.Inverting {
		fmt.Fprintln(w, "Polarity\tInverting")
	} else {
		fmt.Fprintln(w, "Polarity\tNon-Inverting")
	}

	if m.EnablePolarity == model.ActiveLow {
		fmt.Fprintln(w, "Enable\tActive-Low")
	} else if m.HasEnable() {
		fmt.Fprintln(w, "Enable\tActive-High")
	}

	writeScalarLine(w, "Vinl", m.Vinl.Typ)
	writeScalarLine(w, "Vinh", m.Vinh.Typ)
	writeScalarLine(w, "Vmeas", m.Vmeas.Typ)
	writeScalarLine(w, "Vref", m.Vref.Typ)
	writeScalarLine(w, "Cref", m.Cref.Typ)
	writeScalarLine(w, "Rref", m.Rref.Typ)

	if m.NoModel {
		fmt.Fprintln(w)
		return
	}

	writeVITable(w, "[Pullup]", m.Derived.Pullup)
	writeVITable(w, "[Pulldown]", m.Derived.Pulldown)
	writeVITable(w, "[POWER Clamp]", m.Derived.PowerClamp)
	writeVITable(w, "[GND Clamp]", m.Derived.GndClamp)
	writeVITable(w, "[Series Rseries]", m.Derived.SeriesRSeries)

	if m.Derived.Ramp != nil {
		fmt.Fprintln(w, "[Ramp]")
		fmt.Fprintf(w, "dV/dt_r\t%s\n", corner3OrNA(m.Derived.Ramp.Rise))
		fmt.Fprintf(w, "dV/dt_f\t%s\n", corner3OrNA(m.Derived.Ramp.Fall))
	}

	for i, t := range m.Derived.Rising {
		writeVTTable(w, fmt.Sprintf("[Rising Waveform] %d", i+1), t)
	}

	for i, t := range m.Derived.Falling {
		writeVTTable(w, fmt.Sprintf("[Falling Waveform] %d", i+1), t)
	}

	fmt.Fprintln(w)
}

func writeVITable(w io.Writer, header string, t *model.VITable) {
	if t == nil || len(t.Rows) == 0 {
		return
	}

	fmt.Fprintln(w, header)
	fmt.Fprintln(w, "V\tI(typ)\tI(min)\tI(max)")

	for _, r := range t.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", sci(r.V), scalarOrNA(r.Ityp), scalarOrNA(r.Imin), scalarOrNA(r.Imax))
	}
}

func writeVTTable(w io.Writer, header string, t *model.VTTable) {
	if t == nil || len(t.Rows) == 0 {
		return
	}

	fmt.Fprintln(w, header)
	fmt.Fprintf(w, "R_fixture\t%s\n", corner3OrNA(t.Fixture.R))
	fmt.Fprintf(w, "L_fixture\t%s\n", corner3OrNA(t.Fixture.L))
	fmt.Fprintf(w, "C_fixture\t%s\n", corner3OrNA(t.Fixture.C))
	fmt.Fprintf(w, "V_fixture\t%s\n", corner3OrNA(t.Fixture.V))
	fmt.Fprintln(w, "t\tV(typ)\tV(min)\tV(max)")

	for _, r := range t.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", sci(r.T), scalarOrNA(r.Vtyp), scalarOrNA(r.Vmin), scalarOrNA(r.Vmax))
	}
}

func writeCorner3Row(w io.Writer, label string, c model.Corner3[float64]) {
	if !c.AnySet() {
		return
	}

	fmt.Fprintf(w, "%s\t%s\n", label, corner3OrNA(c))
}

func writeScalarLine(w io.Writer, label string, s model.Scalar[float64]) {
	if !s.IsSet() {
		return
	}

	fmt.Fprintf(w, "%s\t%s\n", label, sci(s.MustGet()))
}

// sci formats a float using the fixed-precision scientific notation IBIS
// requires: one digit before the decimal point, four after (spec.md §4.6).
func sci(v float64) string {
	return fmt.Sprintf("%1.4e", v)
}

func scalarOrNA(s model.Scalar[float64]) string {
	v, ok := s.Get()
	if !ok {
		return consts.NASentinel
	}

	return sci(v)
}

func corner3OrNA(c model.Corner3[float64]) string {
	return fmt.Sprintf("%s\t%s\t%s", scalarOrNA(c.Typ), scalarOrNA(c.Min), scalarOrNA(c.Max))
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}

	return v
}
