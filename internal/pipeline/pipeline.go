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

// Package pipeline wires the eight stages of spec.md §1 together end to
// end: configuration load, planning, deck synthesis, simulation, result
// reading, curve derivation, and emission, plus the optional correlation
// and ibischk actions. It implements spec.md §7's propagation policy:
// ConfigError/ResourceError/PlanError abort the run immediately;
// SimulationFailed/ParseError/DeriveError are captured per Plan Item in an
// errs.Aggregate so the run continues: a corner whose simulation failed
// shows NA in its table column, while a table with no successful corner, or
// whose derivation failed, is left out of the .ibs file; EmitError is fatal.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/simon9721/s2ibis-go/internal/config"
	"github.com/simon9721/s2ibis-go/internal/consts"
	"github.com/simon9721/s2ibis-go/internal/corr"
	"github.com/simon9721/s2ibis-go/internal/deck"
	"github.com/simon9721/s2ibis-go/internal/dialect"
	"github.com/simon9721/s2ibis-go/internal/emit"
	"github.com/simon9721/s2ibis-go/internal/errs"
	"github.com/simon9721/s2ibis-go/internal/logging"
	"github.com/simon9721/s2ibis-go/internal/model"
	"github.com/simon9721/s2ibis-go/internal/plan"
	"github.com/simon9721/s2ibis-go/internal/result"
	"github.com/simon9721/s2ibis-go/internal/simrun"
)

// Options carries the CLI surface of spec.md §6 needed to drive a run.
type Options struct {
	ConfigPath string
	OutDir     string
	SpiceType  string
	SpiceCmd   string
	Iterate    bool
	Cleanup    bool
	Correlate  bool
	Timeout    time.Duration
}

// Result reports what a run produced: the output .ibs path, any
// correlation decks generated, and the non-fatal failures collected along
// the way.
type Result struct {
	IBSPath         string
	CorrelationDecks []string
	Failures        *errs.Aggregate
}

// Run executes the full pipeline for one configuration file.
func Run(ctx context.Context, opts Options) (*Result, error) {
	doc, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if err := simrun.EnsureOutDir(opts.OutDir); err != nil {
		return nil, err
	}

	dlt, ok := dialect.ByName(opts.SpiceType)
	if !ok {
		return nil, &errs.ConfigError{Msg: fmt.Sprintf("unknown simulator dialect %q", opts.SpiceType)}
	}

	items, err := plan.Plan(doc)
	if err != nil {
		return nil, err
	}

	logging.Infof("planned %d simulation item(s) across %d component(s)", len(items), len(doc.Components))

	index := indexPins(doc)

	synth := deck.New(dlt, opts.OutDir)
	driver := simrun.New(simrun.ResolveCommand(opts.SpiceCmd, dlt.Name()), simrun.Policy{Iterate: opts.Iterate, Cleanup: opts.Cleanup})
	reader := result.New(dlt)

	failures := &errs.Aggregate{}

	for _, item := range items {
		loc, ok := index[item.Pin]
		if !ok {
			return nil, &errs.PlanError{Pin: item.Pin, Model: item.Model, Msg: "plan item references a pin not found in the document"}
		}

		if err := runItem(ctx, opts, synth, driver, reader, doc, loc.comp, loc.pin, loc.model, item); err != nil {
			logging.PlanItem(item.Pin, item.Model, item.Purposes[0].String(), item.Corner.String()).Warn(err)
			failures.Add(err)
		}
	}

	for i := range doc.Models {
		m := &doc.Models[i]
		if !m.IsSimulated() {
			continue
		}

		if err := deriveModel(doc, m); err != nil {
			logging.Warnf("model %s: %v", m.Name, err)
			failures.Add(err)
		}
	}

	ibsPath := filepath.Join(opts.OutDir, outputFileName(doc))

	emitter := emit.New()
	if err := emitter.WriteFile(doc, ibsPath); err != nil {
		return nil, err
	}

	res := &Result{IBSPath: ibsPath, Failures: failures}

	if opts.Correlate {
		gen := corr.New(opts.OutDir)

		decks, err := gen.GenerateAll(doc)
		if err != nil {
			return res, err
		}

		res.CorrelationDecks = decks
	}

	if !failures.Empty() {
		logging.Warnf("run completed with failures: %v", failures)
	}

	return res, nil
}

// pinLocation carries the owning Component and resolved Model alongside a
// Pin, so a flat Plan Item list can be replayed without re-walking the
// Document for every item.
type pinLocation struct {
	comp  *model.Component
	pin   *model.Pin
	model *model.Model
}

// indexPins builds a pin-name lookup across every Component, mirroring the
// Planner's own traversal order (spec.md §4.1). Pin names are expected to
// be unique within a Document; the first occurrence wins.
func indexPins(doc *model.Document) map[string]pinLocation {
	idx := make(map[string]pinLocation)

	for ci := range doc.Components {
		comp := &doc.Components[ci]

		for pi := range comp.Pins {
			pin := &comp.Pins[pi]
			if _, exists := idx[pin.PinName]; exists {
				continue
			}

			m, ok := doc.ModelByName(pin.ModelName)
			if !ok {
				continue
			}

			idx[pin.PinName] = pinLocation{comp: comp, pin: pin, model: m}
		}
	}

	return idx
}

// runItem synthesizes, simulates, and reads the result for one Plan Item,
// storing its raw samples on the owning Model. Errors returned here are
// the non-fatal per-item kinds (SimulationFailed/ParseError) that the
// caller captures into the Aggregate rather than aborting the run.
func runItem(ctx context.Context, opts Options, synth *deck.Synthesizer, driver *simrun.Driver, reader *result.Reader, doc *model.Document, comp *model.Component, pin *model.Pin, m *model.Model, item plan.Item) error {
	deckPath, err := synth.Synthesize(doc, comp, pin, m, item)
	if err != nil {
		return err
	}

	resultPath := filepath.Join(opts.OutDir, deck.ResultFilename(item))
	logPath := simrun.LogPathFor(deckPath)

	runCtx, cancel := simrun.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	if _, err := driver.Run(runCtx, item, deckPath, resultPath, logPath); err != nil {
		return err
	}

	return storeResult(reader, m, item, resultPath)
}

// storeResult reads one Plan Item's result file and files its samples into
// the owning Model's RawCurves at the slot its Kind/Purposes select.
func storeResult(reader *result.Reader, m *model.Model, item plan.Item, resultPath string) error {
	switch item.Kind {
	case plan.TransientRamp, plan.TransientRising, plan.TransientFalling:
		tr, err := reader.ReadTran(item, resultPath)
		if err != nil {
			return err
		}

		storeTran(m, item, tr)
	default:
		dc, err := reader.ReadDC(item, resultPath)
		if err != nil {
			return err
		}

		storeDC(m, item, dc)
	}

	return nil
}

func toVIPoints(points []dialect.DCPoint) []model.VIPoint {
	out := make([]model.VIPoint, len(points))
	for i, p := range points {
		out[i] = model.VIPoint{V: p.V, I: p.I}
	}

	return out
}

func toTVIPoints(points []dialect.TranPoint) []model.TVIPoint {
	out := make([]model.TVIPoint, len(points))
	for i, p := range points {
		out[i] = model.TVIPoint{T: p.T, V: p.V, I: p.I}
	}

	return out
}

// storeDC files one DC Plan Item's samples according to spec.md §4.1's
// decision table: enable-based sweeps go to Enabled/DisabledSweep for
// later subtraction and clamp-splitting; a no-enable combined driver sweep
// (Output/OutputECL) goes to CombinedDriverSweep for sign-splitting; every
// other single-purpose direct sweep is addressed by its own curve key so
// two direct curves at the same corner never collide.
func storeDC(m *model.Model, item plan.Item, dc result.DCResult) {
	corner := int(item.Corner)
	points := toVIPoints(dc.Points)

	switch item.Kind {
	case plan.DCEnabled:
		m.Raw.EnabledSweep[corner] = points
	case plan.DCDisabled:
		m.Raw.DisabledSweep[corner] = points
	case plan.DCDirect:
		if len(item.Purposes) > 1 {
			m.Raw.CombinedDriverSweep[corner] = points
			return
		}

		m.Raw.AddDirectSweep(curveKeyFor(item.Purposes[0]), corner, points)
	case plan.DCSeries:
		m.Raw.AddDirectSweep(model.CurveKeySeriesRSeries, corner, points)
	}
}

// storeTran files one transient Plan Item's samples. Rising/falling
// waveforms are keyed by fixture index so multiple load fixtures (spec.md
// §4.5) never overwrite one another.
func storeTran(m *model.Model, item plan.Item, tr result.TranResult) {
	corner := int(item.Corner)
	points := toTVIPoints(tr.Points)

	switch item.Kind {
	case plan.TransientRamp:
		m.Raw.RampTransient[corner] = points
	case plan.TransientRising:
		if m.Raw.RisingTransients == nil {
			m.Raw.RisingTransients = make(map[string][3][]model.TVIPoint)
		}

		key := strconv.Itoa(item.FixtureIdx)
		set := m.Raw.RisingTransients[key]
		set[corner] = points
		m.Raw.RisingTransients[key] = set
	case plan.TransientFalling:
		if m.Raw.FallingTransients == nil {
			m.Raw.FallingTransients = make(map[string][3][]model.TVIPoint)
		}

		key := strconv.Itoa(item.FixtureIdx)
		set := m.Raw.FallingTransients[key]
		set[corner] = points
		m.Raw.FallingTransients[key] = set
	}
}

func curveKeyFor(c consts.CurveType) model.CurveKey {
	switch c {
	case consts.CurvePullup:
		return model.CurveKeyPullup
	case consts.CurvePulldown:
		return model.CurveKeyPulldown
	case consts.CurveGndClamp:
		return model.CurveKeyGndClamp
	case consts.CurveSeriesRSeries:
		return model.CurveKeySeriesRSeries
	case consts.CurvePowerClamp:
		return model.CurveKeyPowerClamp
	default:
		return model.CurveKeyPowerClamp
	}
}

func outputFileName(doc *model.Document) string {
	if doc.Metadata.FileName != "" {
		return doc.Metadata.FileName
	}

	return "output.ibs"
}
