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

// Package simrun implements the Simulator Driver of spec.md §4.3: it spawns
// the external SPICE simulator for one deck, honors the iterate/cleanup
// policy flags, and returns a handle to the raw results file or a
// structured failure. Subprocess handling is grounded on emer-gosl's
// process.go use of os/exec (the only example in the retrieval pack that
// shells out to an external tool and inspects its exit status).
package simrun

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/simon9721/s2ibis-go/internal/errs"
	"github.com/simon9721/s2ibis-go/internal/logging"
	"github.com/simon9721/s2ibis-go/internal/plan"
)

// Policy carries the iterate/cleanup flags of spec.md §4.3.
type Policy struct {
	// Iterate, if set and the expected result file already exists and is
	// newer than the deck, skips invocation entirely.
	Iterate bool
	// Cleanup, if set, deletes the deck and the simulator log once Run has
	// found a non-empty result file, before that result is parsed. No other
	// artifact (such as a simulator message file) is removed. Logs are
	// always preserved on failure, regardless of Cleanup.
	Cleanup bool
}

// Driver spawns the configured simulator command for each deck.
type Driver struct {
	Command string
	Policy  Policy
}

// New constructs a Driver bound to a simulator command (resolved on PATH,
// or an explicit path via --spice-cmd) and a Policy.
func New(command string, policy Policy) *Driver {
	return &Driver{Command: command, Policy: policy}
}

// Outcome reports what happened for one Plan Item's simulation.
type Outcome struct {
	ResultPath string
	Skipped    bool // iterate policy reused an existing result
	LogPath    string
}

// Run invokes the simulator on one deck and waits for it to finish,
// honoring ctx for cancellation/timeout (spec.md §5). deckPath and
// resultPath are absolute or relative-to-cwd paths; logPath is where
// stdout+stderr are captured.
func (d *Driver) Run(ctx context.Context, item plan.Item, deckPath, resultPath, logPath string) (Outcome, error) {
	curve := "unknown"
	if len(item.Purposes) > 0 {
		curve = item.Purposes[0].String()
	}

	if d.Policy.Iterate && resultIsFresh(resultPath, deckPath) {
		logging.Debugf("iterate: reusing %s for pin %s curve %s", resultPath, item.Pin, curve)
		return Outcome{ResultPath: resultPath, Skipped: true, LogPath: logPath}, nil
	}

	cmd := exec.CommandContext(ctx, d.Command, deckPath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	logText := stdout.String() + stderr.String()
	if err := os.WriteFile(logPath, []byte(logText), 0o644); err != nil {
		return Outcome{}, &errs.ResourceError{Path: logPath, Msg: err.Error()}
	}

	if ctx.Err() != nil {
		return Outcome{}, &errs.Cancelled{Reason: ctx.Err().Error()}
	}

	// A non-zero exit code is not itself fatal (spec.md §4.3); only the
	// presence and non-emptiness of the expected result file matters.
	info, statErr := os.Stat(resultPath)
	if statErr != nil || info.Size() == 0 {
		msg := "simulator produced no result file"
		if info != nil && info.Size() == 0 {
			msg = "simulator produced an empty result file"
		}

		if runErr != nil {
			msg = fmt.Sprintf("%s (simulator exit error: %v)", msg, runErr)
		}

		return Outcome{LogPath: logPath}, &errs.SimulationFailed{
			Pin: item.Pin, Model: item.Model, Curve: curve,
			Corner: item.Corner.String(), ResultLog: logPath, Msg: msg,
		}
	}

	if d.Policy.Cleanup {
		d.cleanup(deckPath, logPath)
	}

	return Outcome{ResultPath: resultPath, LogPath: logPath}, nil
}

// resultIsFresh reports whether resultPath exists and is newer than
// deckPath, the condition under which the iterate policy skips
// re-invocation.
func resultIsFresh(resultPath, deckPath string) bool {
	resultInfo, err := os.Stat(resultPath)
	if err != nil {
		return false
	}

	deckInfo, err := os.Stat(deckPath)
	if err != nil {
		return false
	}

	return resultInfo.ModTime().After(deckInfo.ModTime())
}

// cleanup removes the deck and log after a successful simulation. The result
// file itself is never removed: it is a shared resource other Plan Items'
// iterate checks may still depend on.
func (d *Driver) cleanup(deckPath, logPath string) {
	for _, p := range []string{deckPath, logPath} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logging.Warnf("cleanup: could not remove %s: %v", p, err)
		}
	}
}

// WithTimeout derives a context honoring an optional wall-clock timeout
// (spec.md §5); a zero duration means no intrinsic timeout.
func WithTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(parent)
	}

	return context.WithTimeout(parent, timeout)
}

// ResolveCommand returns the simulator command to invoke: an explicit
// --spice-cmd override, or a dialect-appropriate default expected to be on
// PATH.
func ResolveCommand(explicit, dialectName string) string {
	if explicit != "" {
		return explicit
	}

	switch dialectName {
	case "hspice":
		return "hspice"
	case "spectre":
		return "spectre"
	case "eldo":
		return "eldo"
	default:
		return "hspice"
	}
}

// EnsureOutDir creates the output directory if it does not already exist.
func EnsureOutDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &errs.ResourceError{Path: dir, Msg: err.Error()}
	}

	return nil
}

// LogPathFor derives the simulator-log filename for a deck file.
func LogPathFor(deckPath string) string {
	ext := filepath.Ext(deckPath)
	return deckPath[:len(deckPath)-len(ext)] + ".log"
}
