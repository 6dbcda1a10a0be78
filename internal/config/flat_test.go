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
	"os"
	"path/filepath"
	"testing"

	"github.com/simon9721/s2ibis-go/internal/model"
)

const sampleFlatDoc = `[IBIS Ver] 4.1
[File Name] test.ibs
[File Rev] 1.0
! this whole line is a comment
[Component] U1
[Manufacturer] Acme Corp
[Package]
R_PKG 1.0 0.5 1.5
L_PKG 2.0e-9 1.0e-9 3.0e-9
[Pin]
pin_name signal_name model_name
D1 d1_sig OUT_3V3
V1 vdd_sig POWER
[Model] OUT_3V3
[Model type] Output
[Voltage Range] 3.3 3.0 3.6
[Clamp Tolerance] 5
[End]
`

func TestParseFlatBasicDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.ibs")
	if err := os.WriteFile(path, []byte(sampleFlatDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ParseFlat(path)
	if err != nil {
		t.Fatalf("ParseFlat() error: %v", err)
	}

	if doc.Metadata.FileName != "test.ibs" || doc.Metadata.IBISVersion != "4.1" {
		t.Errorf("Metadata = %+v", doc.Metadata)
	}

	if len(doc.Components) != 1 {
		t.Fatalf("len(Components) = %d, want 1", len(doc.Components))
	}

	comp := doc.Components[0]
	if comp.Name != "U1" || comp.Manufacturer != "Acme Corp" {
		t.Errorf("Component = %+v", comp)
	}
	if comp.Defaults.PackageR.Typ.MustGet() != 1.0 || comp.Defaults.PackageL.Max.MustGet() != 3.0e-9 {
		t.Errorf("Component.Defaults package values = %+v", comp.Defaults)
	}

	if len(comp.Pins) != 2 {
		t.Fatalf("len(Pins) = %d, want 2 (header row skipped)", len(comp.Pins))
	}
	if comp.Pins[0].PinName != "D1" || comp.Pins[0].ModelName != "OUT_3V3" {
		t.Errorf("Pins[0] = %+v", comp.Pins[0])
	}

	if len(doc.Models) != 1 {
		t.Fatalf("len(Models) = %d, want 1", len(doc.Models))
	}

	m := doc.Models[0]
	if m.Type != model.Output {
		t.Errorf("Model.Type = %v, want Output", m.Type)
	}
	if m.Defaults.VoltageRange.Typ.MustGet() != 3.3 || m.Defaults.VoltageRange.Min.MustGet() != 3.0 {
		t.Errorf("Model.Defaults.VoltageRange = %+v", m.Defaults.VoltageRange)
	}
	if m.Defaults.ClampTolerance.MustGet() != 5 {
		t.Errorf("Model.Defaults.ClampTolerance = %+v", m.Defaults.ClampTolerance)
	}
}

func TestParseFlatContinuationLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.ibs")
	data := "[Component] U1\n[Pin]\npin_name signal_name model_name\nD1 d1_sig OUT\n+D2 d2_sig OUT\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ParseFlat(path)
	if err != nil {
		t.Fatalf("ParseFlat() error: %v", err)
	}

	if len(doc.Components[0].Pins) != 2 {
		t.Fatalf("len(Pins) = %d, want 2 (continuation line spliced in)", len(doc.Components[0].Pins))
	}
	if doc.Components[0].Pins[1].PinName != "D2" {
		t.Errorf("Pins[1] = %+v, want PinName D2", doc.Components[0].Pins[1])
	}
}

func TestParseFlatContinuationWithoutBlockErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.ibs")
	if err := os.WriteFile(path, []byte("+orphan continuation\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ParseFlat(path); err == nil {
		t.Error("ParseFlat() should error on a continuation line with no preceding block")
	}
}

func TestParseFlatInclude(t *testing.T) {
	dir := t.TempDir()

	subPath := filepath.Join(dir, "sub.inc")
	if err := os.WriteFile(subPath, []byte("[Manufacturer] Acme Corp\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	mainPath := filepath.Join(dir, "main.ibs")
	if err := os.WriteFile(mainPath, []byte("[Component] U1\n[Include] sub.inc\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ParseFlat(mainPath)
	if err != nil {
		t.Fatalf("ParseFlat() error: %v", err)
	}

	if doc.Components[0].Manufacturer != "Acme Corp" {
		t.Errorf("Manufacturer = %q, want Acme Corp (from included file)", doc.Components[0].Manufacturer)
	}
}

func TestParseFlatUnknownKeywordTolerated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.ibs")
	data := "[Component] U1\n[Some Future Keyword] foo bar\n[Manufacturer] Acme\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ParseFlat(path)
	if err != nil {
		t.Fatalf("ParseFlat() should tolerate unrecognised keywords, got error: %v", err)
	}
	if doc.Components[0].Manufacturer != "Acme" {
		t.Errorf("parsing should continue past the unknown keyword: %+v", doc.Components[0])
	}
}
