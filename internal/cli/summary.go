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
package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/simon9721/s2ibis-go/internal/plan"
)

// defaultSummaryWidth is used when stdout is not a terminal (piped output,
// CI logs) and there is nothing to query a size from.
const defaultSummaryWidth = 100

// printPlanSummary renders one line per Plan Item (pin, model, curve,
// corner), truncated to the terminal's width when stdout is a TTY so the
// table never wraps mid-row.
func printPlanSummary(items []plan.Item) {
	width := defaultSummaryWidth

	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	fmt.Printf("%d simulation item(s) planned:\n", len(items))

	for _, item := range items {
		line := fmt.Sprintf("  %-24s %-24s %-18s %s", item.Pin, item.Model, item.Purposes[0], item.Corner)
		if len(line) > width {
			line = line[:width]
		}

		fmt.Println(line)
	}
}
