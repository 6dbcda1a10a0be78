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

// Package errs defines the error kinds of spec.md §7 as concrete types,
// grounded on the teacher's sexp.SyntaxError: a struct carrying positional
// or contextual data rather than a bare string, so callers can inspect
// *why* a stage failed, not just that it did.
package errs

import "fmt"

// Span is a half-open byte range into a configuration source, used by
// ConfigError and ParseError to point at the offending text.
type Span struct {
	Start int
	End   int
}

// ConfigError reports malformed or incomplete configuration input: a
// missing required field, unknown model type, unresolved model/pin
// reference, or invalid numeric literal (spec.md §7). Fatal at detection
// time.
type ConfigError struct {
	File string
	Span Span
	Msg  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s:%d:%d: config error: %s", e.File, e.Span.Start, e.Span.End, e.Msg)
}

// ResourceError reports a missing SPICE file, unreadable include, or
// unwritable output directory (spec.md §7). Fatal at detection time.
type ResourceError struct {
	Path string
	Msg  string
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource error: %s: %s", e.Path, e.Msg)
}

// PlanError reports an impossible plan, e.g. an I/O model declared without
// an enable pin (spec.md §7). Fatal at detection time.
type PlanError struct {
	Pin   string
	Model string
	Msg   string
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("plan error: pin %q model %q: %s", e.Pin, e.Model, e.Msg)
}

// SimulationFailed reports that the simulator returned without producing
// the expected result file, or produced an empty one (spec.md §4.3, §7).
// Captured per Plan Item; the pipeline continues.
type SimulationFailed struct {
	Pin       string
	Model     string
	Curve     string
	Corner    string
	ResultLog string
	Msg       string
}

func (e *SimulationFailed) Error() string {
	return fmt.Sprintf("simulation failed: pin %q model %q curve %s corner %s: %s", e.Pin, e.Model, e.Curve, e.Corner, e.Msg)
}

// ParseError reports that simulator output could not be interpreted under
// the declared dialect (spec.md §4.4, §7). Captured per Plan Item.
type ParseError struct {
	File string
	Span Span
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: parse error: %s", e.File, e.Span.Start, e.Span.End, e.Msg)
}

// DeriveError reports a pathological curve-derivation result: a
// non-monotonic V/I table, or a ramp window that never crossed 20%/80%
// (spec.md §4.5, §7). Captured; the affected table is left unset and the
// emitter omits an unset table rather than writing NA rows, and the model's
// remaining tables are not derived after the first DeriveError.
type DeriveError struct {
	Pin   string
	Model string
	Curve string
	Msg   string
}

func (e *DeriveError) Error() string {
	return fmt.Sprintf("derive error: pin %q model %q curve %s: %s", e.Pin, e.Model, e.Curve, e.Msg)
}

// EmitError reports that the emitter could not write the output file
// (spec.md §7). Fatal.
type EmitError struct {
	Path string
	Msg  string
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("emit error: %s: %s", e.Path, e.Msg)
}

// Cancelled reports an external cancellation of the run (spec.md §5, §7).
type Cancelled struct {
	Reason string
}

func (e *Cancelled) Error() string {
	return fmt.Sprintf("cancelled: %s", e.Reason)
}

// Aggregate collects the non-fatal per-Plan-Item failures (SimulationFailed,
// ParseError, DeriveError) so the pipeline can report them together at the
// end of a run, per spec.md §7's propagation policy.
type Aggregate struct {
	Failures []error
}

// Add records a non-fatal failure.
func (a *Aggregate) Add(err error) {
	a.Failures = append(a.Failures, err)
}

// Empty reports whether no failures were recorded.
func (a *Aggregate) Empty() bool {
	return len(a.Failures) == 0
}

func (a *Aggregate) Error() string {
	if len(a.Failures) == 0 {
		return "no failures"
	}

	msg := fmt.Sprintf("%d plan item(s) failed:", len(a.Failures))
	for _, f := range a.Failures {
		msg += "\n  - " + f.Error()
	}

	return msg
}
