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
package emit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/simon9721/s2ibis-go/internal/model"
)

func sampleDoc() *model.Document {
	return &model.Document{
		Metadata: model.Metadata{FileName: "out.ibs"},
		Components: []model.Component{{
			Name: "U1",
			Pins: []model.Pin{
				{PinName: "D1", NodeName: "d1", SigName: "d1_sig", ModelName: "OUT_3V3"},
			},
		}},
		Models: []model.Model{{
			Name: "OUT_3V3",
			Type: model.Output,
			Derived: model.DerivedCurves{
				Pullup: &model.VITable{Rows: []model.VIRow{
					{V: 0, Ityp: model.Of(0.0)},
					{V: 3.3, Ityp: model.Of(0.05)},
				}},
			},
		}},
	}
}

func TestWriteSectionOrder(t *testing.T) {
	var buf bytes.Buffer
	e := New()

	if err := e.Write(sampleDoc(), &buf); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	out := buf.String()

	headerIdx := strings.Index(out, "[IBIS Ver]")
	compIdx := strings.Index(out, "[Component]")
	modelIdx := strings.Index(out, "[Model]")
	endIdx := strings.Index(out, "[End]")

	if headerIdx == -1 || compIdx == -1 || modelIdx == -1 || endIdx == -1 {
		t.Fatalf("missing a required section in output:\n%s", out)
	}
	if !(headerIdx < compIdx && compIdx < modelIdx && modelIdx < endIdx) {
		t.Errorf("sections out of order: header=%d component=%d model=%d end=%d", headerIdx, compIdx, modelIdx, endIdx)
	}
}

func TestWriteNASentinelForUnsetCorner(t *testing.T) {
	var buf bytes.Buffer
	e := New()

	if err := e.Write(sampleDoc(), &buf); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "NA") {
		t.Errorf("expected NA sentinel for the unset Min/Max corners, got:\n%s", out)
	}
}

func TestWriteScientificNotationFormat(t *testing.T) {
	var buf bytes.Buffer
	e := New()

	if err := e.Write(sampleDoc(), &buf); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	out := buf.String()
	// 3.3 formatted as %1.4e is "3.3000e+00".
	if !strings.Contains(out, "3.3000e+00") {
		t.Errorf("expected scientific-notation voltage 3.3000e+00 in output, got:\n%s", out)
	}
}

func TestWriteNoModelSkipsCurveTables(t *testing.T) {
	doc := sampleDoc()
	doc.Models[0].NoModel = true

	var buf bytes.Buffer
	if err := New().Write(doc, &buf); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	if strings.Contains(buf.String(), "[Pullup]") {
		t.Error("a NoModel model should not emit curve tables")
	}
}
