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
	"encoding/json"
	"os"
	"strings"

	"github.com/simon9721/s2ibis-go/internal/errs"
	"github.com/simon9721/s2ibis-go/internal/model"
)

// jsonCorner3 mirrors the structured form's "{typ, min, max}" numeric group,
// each entry a string so it may carry an SI suffix ("3.3n") or plain
// scientific notation ("3.3e-9"), or be omitted entirely.
type jsonCorner3 struct {
	Typ string `json:"typ,omitempty"`
	Min string `json:"min,omitempty"`
	Max string `json:"max,omitempty"`
}

func (j jsonCorner3) toCorner3() (model.Corner3[float64], error) {
	var c model.Corner3[float64]

	pairs := []struct {
		tok string
		dst *model.Scalar[float64]
	}{{j.Typ, &c.Typ}, {j.Min, &c.Min}, {j.Max, &c.Max}}

	for _, p := range pairs {
		if p.tok == "" || isUnset(p.tok) {
			continue
		}

		v, err := parseNumber(p.tok)
		if err != nil {
			return c, err
		}

		*p.dst = model.Of(v)
	}

	return c, nil
}

type jsonDefaults struct {
	VoltageRange     jsonCorner3 `json:"voltage_range"`
	TemperatureRange jsonCorner3 `json:"temperature_range"`
	PullupRef        jsonCorner3 `json:"pullup_ref"`
	PulldownRef      jsonCorner3 `json:"pulldown_ref"`
	PowerClampRef    jsonCorner3 `json:"power_clamp_ref"`
	GndClampRef      jsonCorner3 `json:"gnd_clamp_ref"`
	PackageR         jsonCorner3 `json:"package_r"`
	PackageL         jsonCorner3 `json:"package_l"`
	PackageC         jsonCorner3 `json:"package_c"`
	DieCapacitance   jsonCorner3 `json:"die_capacitance"`
	LoadResistance   jsonCorner3 `json:"load_resistance"`
	SimulationTime   jsonCorner3 `json:"simulation_time"`
	InputLowVoltage  jsonCorner3 `json:"input_low_voltage"`
	InputHighVoltage jsonCorner3 `json:"input_high_voltage"`
	TargetRiseTime   jsonCorner3 `json:"target_rise_time"`
	TargetFallTime   jsonCorner3 `json:"target_fall_time"`
	ClampTolerance   string      `json:"clamp_tolerance_pct,omitempty"`
	DerateVIPercent  string      `json:"derate_vi_pct,omitempty"`
	DerateRampPct    string      `json:"derate_ramp_pct,omitempty"`
}

func (j jsonDefaults) toDefaults() (model.Defaults, error) {
	var d model.Defaults

	pairs := []struct {
		src jsonCorner3
		dst *model.Corner3[float64]
	}{
		{j.VoltageRange, &d.VoltageRange}, {j.TemperatureRange, &d.TemperatureRange},
		{j.PullupRef, &d.PullupRef}, {j.PulldownRef, &d.PulldownRef},
		{j.PowerClampRef, &d.PowerClampRef}, {j.GndClampRef, &d.GndClampRef},
		{j.PackageR, &d.PackageR}, {j.PackageL, &d.PackageL}, {j.PackageC, &d.PackageC},
		{j.DieCapacitance, &d.DieCapacitance}, {j.LoadResistance, &d.LoadResistance},
		{j.SimulationTime, &d.SimulationTime},
		{j.InputLowVoltage, &d.InputLowVoltage}, {j.InputHighVoltage, &d.InputHighVoltage},
		{j.TargetRiseTime, &d.TargetRiseTime}, {j.TargetFallTime, &d.TargetFallTime},
	}

	for _, p := range pairs {
		c, err := p.src.toCorner3()
		if err != nil {
			return d, err
		}

		*p.dst = c
	}

	scalars := []struct {
		tok string
		dst *model.Scalar[float64]
	}{{j.ClampTolerance, &d.ClampTolerance}, {j.DerateVIPercent, &d.DerateVIPercent}, {j.DerateRampPct, &d.DerateRampPct}}

	for _, p := range scalars {
		if p.tok == "" || isUnset(p.tok) {
			continue
		}

		v, err := parseNumber(p.tok)
		if err != nil {
			return d, err
		}

		*p.dst = model.Of(v)
	}

	return d, nil
}

type jsonPin struct {
	PinName   string `json:"pin_name"`
	NodeName  string `json:"node_name"`
	SigName   string `json:"signal_name"`
	ModelName string `json:"model_name"`
	PackageR  string `json:"package_r,omitempty"`
	PackageL  string `json:"package_l,omitempty"`
	PackageC  string `json:"package_c,omitempty"`
	InputPin  string `json:"input_pin,omitempty"`
	EnablePin string `json:"enable_pin,omitempty"`
}

type jsonDiffPin struct {
	PinA   string `json:"pin_a"`
	PinB   string `json:"pin_b"`
	Vdiff  string `json:"vdiff,omitempty"`
	Tdelay string `json:"tdelay,omitempty"`
}

type jsonSeriesSwitchGroup struct {
	Name string   `json:"name"`
	Pins []string `json:"pins"`
}

type jsonComponent struct {
	Name             string                  `json:"name"`
	NetlistPath      string                  `json:"netlist_path"`
	SeriesNetlist    string                  `json:"series_netlist,omitempty"`
	Manufacturer     string                  `json:"manufacturer,omitempty"`
	PackageModel     string                  `json:"package_model,omitempty"`
	Defaults         jsonDefaults            `json:"defaults"`
	Pins             []jsonPin               `json:"p_list"`
	DiffPins         []jsonDiffPin           `json:"diff_pins,omitempty"`
	SeriesSwitches   []jsonSeriesSwitchGroup `json:"series_switch_groups,omitempty"`
	SeriesPinMapping map[string]string       `json:"series_pin_mapping,omitempty"`
	PinMapping       map[string]string       `json:"pin_mapping,omitempty"`
}

type jsonModel struct {
	Name           string       `json:"name"`
	Type           string       `json:"type"`
	Polarity       string       `json:"polarity,omitempty"`
	EnablePolarity string       `json:"enable_polarity,omitempty"`
	Vinl           jsonCorner3  `json:"vinl,omitempty"`
	Vinh           jsonCorner3  `json:"vinh,omitempty"`
	Vmeas          jsonCorner3  `json:"vmeas,omitempty"`
	Vref           jsonCorner3  `json:"vref,omitempty"`
	Cref           jsonCorner3  `json:"cref,omitempty"`
	Rref           jsonCorner3  `json:"rref,omitempty"`
	SubcircuitTyp  string       `json:"subcircuit_typ,omitempty"`
	SubcircuitMin  string       `json:"subcircuit_min,omitempty"`
	SubcircuitMax  string       `json:"subcircuit_max,omitempty"`
	Defaults       jsonDefaults `json:"defaults"`
	NoModel        bool         `json:"nomodel,omitempty"`
}

type jsonDocument struct {
	IBISVersion string          `json:"ibis_version"`
	FileName    string          `json:"file_name"`
	FileRev     string          `json:"file_rev"`
	Date        string          `json:"date,omitempty"`
	Source      string          `json:"source,omitempty"`
	Notes       []string        `json:"notes,omitempty"`
	Disclaimer  []string        `json:"disclaimer,omitempty"`
	Copyright   []string        `json:"copyright,omitempty"`
	Simulator   string          `json:"simulator,omitempty"`
	GlobalDefaults jsonDefaults `json:"global_defaults"`
	Models      []jsonModel     `json:"models"`
	Components  []jsonComponent `json:"components"`
}

// ParseStructured decodes the structured hierarchical configuration form
// (spec.md §6) and lowers it into the same Document the flat form produces.
func ParseStructured(path string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errs.ResourceError{Path: path, Msg: err.Error()}
	}

	var jd jsonDocument
	if err := json.Unmarshal(data, &jd); err != nil {
		return nil, &errs.ConfigError{File: path, Msg: err.Error()}
	}

	return jd.lower(path)
}

func (jd jsonDocument) lower(path string) (*model.Document, error) {
	doc := &model.Document{
		Metadata: model.Metadata{
			IBISVersion: jd.IBISVersion, FileName: jd.FileName, FileRev: jd.FileRev,
			Date: jd.Date, Source: jd.Source, Notes: jd.Notes, Disclaimer: jd.Disclaimer, Copyright: jd.Copyright,
		},
		Simulator: parseSimulator(jd.Simulator),
	}

	defaults, err := jd.GlobalDefaults.toDefaults()
	if err != nil {
		return nil, &errs.ConfigError{File: path, Msg: err.Error()}
	}

	doc.Defaults = defaults

	for _, jm := range jd.Models {
		m, err := jm.lower(path)
		if err != nil {
			return nil, err
		}

		doc.Models = append(doc.Models, m)
	}

	for _, jc := range jd.Components {
		c, err := jc.lower(path)
		if err != nil {
			return nil, err
		}

		doc.Components = append(doc.Components, c)
	}

	return doc, nil
}

func (jm jsonModel) lower(path string) (model.Model, error) {
	var m model.Model

	m.Name = jm.Name
	m.NoModel = jm.NoModel

	t, err := model.ParseModelType(jm.Type)
	if err != nil {
		return m, &errs.ConfigError{File: path, Msg: err.Error()}
	}

	m.Type = t

	if strings.EqualFold(jm.Polarity, "Inverting") {
		m.Polarity = model.Inverting
	}

	if strings.EqualFold(jm.EnablePolarity, "Active-Low") {
		m.EnablePolarity = model.ActiveLow
	}

	m.Subcircuit = model.SubcircuitFiles{Typ: jm.SubcircuitTyp, Min: jm.SubcircuitMin, Max: jm.SubcircuitMax}

	corners := []struct {
		src jsonCorner3
		dst *model.Corner3[float64]
	}{
		{jm.Vinl, &m.Vinl}, {jm.Vinh, &m.Vinh}, {jm.Vmeas, &m.Vmeas},
		{jm.Vref, &m.Vref}, {jm.Cref, &m.Cref}, {jm.Rref, &m.Rref},
	}

	for _, c := range corners {
		v, err := c.src.toCorner3()
		if err != nil {
			return m, &errs.ConfigError{File: path, Msg: err.Error()}
		}

		*c.dst = v
	}

	defaults, err := jm.Defaults.toDefaults()
	if err != nil {
		return m, &errs.ConfigError{File: path, Msg: err.Error()}
	}

	m.Defaults = defaults

	return m, nil
}

func (jc jsonComponent) lower(path string) (model.Component, error) {
	c := model.Component{
		Name: jc.Name, NetlistPath: jc.NetlistPath, SeriesNetlist: jc.SeriesNetlist,
		Manufacturer: jc.Manufacturer, PackageModel: jc.PackageModel,
		SeriesPinMapping: jc.SeriesPinMapping, PinMapping: jc.PinMapping,
	}

	defaults, err := jc.Defaults.toDefaults()
	if err != nil {
		return c, &errs.ConfigError{File: path, Msg: err.Error()}
	}

	c.Defaults = defaults

	for _, jp := range jc.Pins {
		pin := model.Pin{
			PinName: jp.PinName, NodeName: jp.NodeName, SigName: jp.SigName, ModelName: jp.ModelName,
			InputPin: jp.InputPin, EnablePin: jp.EnablePin,
		}

		if jp.PackageR != "" && !isUnset(jp.PackageR) {
			if v, err := parseNumber(jp.PackageR); err == nil {
				pin.PackageR = model.Of(v)
			}
		}

		if jp.PackageL != "" && !isUnset(jp.PackageL) {
			if v, err := parseNumber(jp.PackageL); err == nil {
				pin.PackageL = model.Of(v)
			}
		}

		if jp.PackageC != "" && !isUnset(jp.PackageC) {
			if v, err := parseNumber(jp.PackageC); err == nil {
				pin.PackageC = model.Of(v)
			}
		}

		c.Pins = append(c.Pins, pin)
	}

	for _, jd := range jc.DiffPins {
		dp := model.DiffPin{PinA: jd.PinA, PinB: jd.PinB}

		if jd.Vdiff != "" && !isUnset(jd.Vdiff) {
			if v, err := parseNumber(jd.Vdiff); err == nil {
				dp.Vdiff = model.Of(v)
			}
		}

		if jd.Tdelay != "" && !isUnset(jd.Tdelay) {
			if v, err := parseNumber(jd.Tdelay); err == nil {
				dp.Tdelay = model.Of(v)
			}
		}

		c.DiffPins = append(c.DiffPins, dp)
	}

	for _, jg := range jc.SeriesSwitches {
		c.SeriesSwitches = append(c.SeriesSwitches, model.SeriesSwitchGroup{Name: jg.Name, Pins: jg.Pins})
	}

	return c, nil
}
