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

// Package result implements the Result Reader of spec.md §4.4: it hands a
// simulator's raw result file to the owning dialect's parser and returns
// the canonical (V,I) or (t,V,I) samples the Curve Deriver consumes.
// Downsampling/binning of transient samples is deliberately deferred to
// internal/derive (spec.md §4.5): this stage only normalizes the sign
// convention and sorts the samples into a stable order.
package result

import (
	"fmt"
	"os"
	"sort"

	"github.com/simon9721/s2ibis-go/internal/dialect"
	"github.com/simon9721/s2ibis-go/internal/errs"
	"github.com/simon9721/s2ibis-go/internal/plan"
)

// DCResult is the canonical output of reading one DC-sweep result file:
// voltage-sorted (V, I) samples with the IBIS active-current sign
// convention already applied.
type DCResult struct {
	Points []dialect.DCPoint
}

// TranResult is the canonical output of reading one transient result file:
// time-sorted raw (t, V, I) samples, sign-normalized but not yet binned.
type TranResult struct {
	Points []dialect.TranPoint
}

// Reader reads and normalizes one dialect's result files.
type Reader struct {
	Dialect dialect.Dialect
}

// New constructs a Reader bound to a dialect.
func New(d dialect.Dialect) *Reader {
	return &Reader{Dialect: d}
}

// ReadDC loads and parses a DC-sweep result file for a Plan Item.
func (r *Reader) ReadDC(item plan.Item, path string) (DCResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DCResult{}, &errs.ResourceError{Path: path, Msg: err.Error()}
	}

	points, err := r.Dialect.ParseDC(data)
	if err != nil {
		return DCResult{}, &errs.ParseError{File: path, Msg: err.Error()}
	}

	if len(points) == 0 {
		return DCResult{}, &errs.SimulationFailed{
			Pin: item.Pin, Model: item.Model, Curve: curveName(item), Corner: item.Corner.String(),
			Msg: fmt.Sprintf("result file %s contained no parsable rows", path),
		}
	}

	for i := range points {
		points[i].I = dialect.SupplyCurrentSign(points[i].I)
	}

	sort.Slice(points, func(a, b int) bool { return points[a].V < points[b].V })

	return DCResult{Points: points}, nil
}

// ReadTran loads and parses a transient result file for a Plan Item.
func (r *Reader) ReadTran(item plan.Item, path string) (TranResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TranResult{}, &errs.ResourceError{Path: path, Msg: err.Error()}
	}

	points, err := r.Dialect.ParseTran(data)
	if err != nil {
		return TranResult{}, &errs.ParseError{File: path, Msg: err.Error()}
	}

	if len(points) == 0 {
		return TranResult{}, &errs.SimulationFailed{
			Pin: item.Pin, Model: item.Model, Curve: curveName(item), Corner: item.Corner.String(),
			Msg: fmt.Sprintf("result file %s contained no parsable rows", path),
		}
	}

	for i := range points {
		points[i].I = dialect.SupplyCurrentSign(points[i].I)
	}

	sort.Slice(points, func(a, b int) bool { return points[a].T < points[b].T })

	return TranResult{Points: points}, nil
}

func curveName(item plan.Item) string {
	if len(item.Purposes) == 0 {
		return "unknown"
	}

	return item.Purposes[0].String()
}
