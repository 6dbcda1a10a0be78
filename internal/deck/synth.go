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

// Package deck implements the Deck Synthesizer of spec.md §4.2: given one
// Simulation Plan Item, it renders a complete, dialect-specific SPICE deck
// and writes it to the output directory under the filename discipline the
// planner already assigned.
package deck

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/simon9721/s2ibis-go/internal/consts"
	"github.com/simon9721/s2ibis-go/internal/dialect"
	"github.com/simon9721/s2ibis-go/internal/errs"
	"github.com/simon9721/s2ibis-go/internal/model"
	"github.com/simon9721/s2ibis-go/internal/plan"
)

// Synthesizer renders decks for Plan Items using a fixed dialect.
type Synthesizer struct {
	Dialect dialect.Dialect
	OutDir  string
}

// New constructs a Synthesizer bound to a dialect and output directory.
func New(d dialect.Dialect, outDir string) *Synthesizer {
	return &Synthesizer{Dialect: d, OutDir: outDir}
}

// Synthesize renders one Plan Item's deck and writes it to
// OutDir/item.OutputFile, returning the path written.
func (s *Synthesizer) Synthesize(doc *model.Document, comp *model.Component, pin *model.Pin, m *model.Model, item plan.Item) (string, error) {
	vr := model.Resolve("voltage_range", &m.Defaults, &comp.Defaults, &doc.Defaults)

	vmax, ok := vr.At(item.Corner).Get()
	if !ok {
		return "", &errs.PlanError{Pin: pin.PinName, Model: m.Name, Msg: "voltage range unavailable at corner " + item.Corner.String()}
	}

	tr := model.Resolve("temperature_range", &m.Defaults, &comp.Defaults, &doc.Defaults)
	temp := tr.At(item.Corner).GetOr(25.0)

	req := dialect.DeckRequest{
		Item: item, Doc: doc, Component: comp, Pin: pin, Model: m,
		Vmax: vmax, Vgnd: 0, Temp: temp,
	}

	text, err := s.Dialect.RenderDeck(req)
	if err != nil {
		return "", fmt.Errorf("rendering deck for pin %s curve %s: %w", pin.PinName, item.Purposes[0], err)
	}

	path := filepath.Join(s.OutDir, item.OutputFile)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", &errs.ResourceError{Path: path, Msg: err.Error()}
	}

	return path, nil
}

// ResultFilename derives the expected raw-results filename for a deck,
// following the same prefix/pin/corner discipline as the deck itself but
// with the extension the driver's simulator invocation produces.
func ResultFilename(item plan.Item) string {
	prefix := consts.FilenamePrefix(item.Purposes[0])
	return fmt.Sprintf("%s_%s_%s.out", prefix, item.Pin, item.Corner)
}
