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
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via
// "go install".
var Version string

// rootCmd is the base command when s2ibis is invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "s2ibis",
	Short: "Characterize SPICE I/O buffers into IBIS behavioral models.",
	Long: `s2ibis drives a SPICE simulator across the characterization sweeps an
IBIS behavioral model requires, derives the resulting V/I and V/T tables,
and emits a syntactically correct .ibs file.`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("s2ibis ")
			if Version != "" {
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Printf("%s", info.Main.Version)
			} else {
				fmt.Printf("(unknown version)")
			}
			fmt.Println()

			return
		}

		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and parses the
// command line. This is called once by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "report the version of this executable")

	rootCmd.PersistentFlags().StringP("outdir", "o", ".", "directory for decks, results, logs, and the emitted .ibs file")
	rootCmd.PersistentFlags().String("spice-type", "hspice", "simulator dialect: hspice, spectre, or eldo")
	rootCmd.PersistentFlags().String("spice-cmd", "", "simulator command to invoke (defaults to the dialect's own name on PATH)")
	rootCmd.PersistentFlags().Bool("iterate", false, "reuse a pre-existing result file when it is newer than its deck")
	rootCmd.PersistentFlags().Bool("cleanup", false, "delete decks and simulator logs after a successful run")
	rootCmd.PersistentFlags().Duration("timeout", 0, "wall-clock timeout per simulation invocation (0 disables)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}
