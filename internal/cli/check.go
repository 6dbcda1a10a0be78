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
	"errors"
	"fmt"
	"os"
	"os/exec"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simon9721/s2ibis-go/internal/logging"
)

var checkCmd = &cobra.Command{
	Use:   "check ibs-file",
	Short: "Run an external IBIS syntax checker against an emitted .ibs file.",
	Long: `Invoke the golden-reference checker named by --ibischk (ibischk6 by
default) against the given .ibs file and relay its verdict. s2ibis does not
reimplement the IBIS grammar checker itself; this subcommand exists so a
generate/check cycle can be scripted in one tool (spec.md §6 "validation
hook").`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logging.Configure(GetFlag(cmd, "verbose"))

		checker := GetString(cmd, "ibischk")

		out, err := exec.Command(checker, args[0]).CombinedOutput()

		fmt.Print(string(out))

		if err != nil {
			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) {
				log.Errorf("check: could not run %s: %v", checker, err)
				os.Exit(2)
			}

			// Non-zero exit means the checker found problems; its own
			// output (already printed above) carries the diagnostics.
			os.Exit(1)
		}
	},
}

func init() {
	checkCmd.Flags().String("ibischk", "ibischk6", "external IBIS checker binary to invoke")

	rootCmd.AddCommand(checkCmd)
}
