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
package errs

import (
	"errors"
	"strings"
	"testing"

	"github.com/simon9721/s2ibis-go/pkg/util/assert"
)

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{File: "pin.cfg", Span: Span{Start: 3, End: 7}, Msg: "unknown model type"}

	got := err.Error()
	if !strings.Contains(got, "pin.cfg") || !strings.Contains(got, "unknown model type") {
		t.Errorf("ConfigError.Error() = %q, missing file or message", got)
	}
}

func TestSimulationFailedMessage(t *testing.T) {
	err := &SimulationFailed{Pin: "D1", Model: "OUT_3V3", Curve: "pullup", Corner: "min", Msg: "no result file"}

	got := err.Error()
	for _, want := range []string{"D1", "OUT_3V3", "pullup", "min", "no result file"} {
		if !strings.Contains(got, want) {
			t.Errorf("SimulationFailed.Error() = %q, want it to contain %q", got, want)
		}
	}
}

func TestAggregateEmpty(t *testing.T) {
	var agg Aggregate
	assert.True(t, agg.Empty(), "zero-value Aggregate should be Empty")
	assert.Equal(t, "no failures", agg.Error())
}

func TestAggregateAdd(t *testing.T) {
	var agg Aggregate

	agg.Add(&DeriveError{Pin: "A1", Model: "IN_1V8", Curve: "ramp", Msg: "never crossed 80%"})
	agg.Add(&ParseError{File: "a1.lis", Span: Span{}, Msg: "unexpected token"})

	assert.False(t, agg.Empty(), "Aggregate with two failures should not be Empty")
	assert.Equal(t, 2, len(agg.Failures))

	got := agg.Error()
	if !strings.Contains(got, "2 plan item(s) failed") {
		t.Errorf("Aggregate.Error() = %q, want it to report the count", got)
	}
	if !strings.Contains(got, "never crossed 80%") || !strings.Contains(got, "unexpected token") {
		t.Errorf("Aggregate.Error() = %q, missing one of the underlying messages", got)
	}
}

func TestErrorTypesSatisfyErrorInterface(t *testing.T) {
	var errsList = []error{
		&ConfigError{},
		&ResourceError{},
		&PlanError{},
		&SimulationFailed{},
		&ParseError{},
		&DeriveError{},
		&EmitError{},
		&Cancelled{},
		&Aggregate{},
	}

	for _, e := range errsList {
		if errors.New(e.Error()) == nil {
			t.Errorf("%T.Error() produced no message", e)
		}
	}
}
