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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simon9721/s2ibis-go/internal/config"
	"github.com/simon9721/s2ibis-go/internal/corr"
	"github.com/simon9721/s2ibis-go/internal/logging"
	"github.com/simon9721/s2ibis-go/internal/simrun"
)

var correlateCmd = &cobra.Command{
	Use:   "correlate config-file",
	Short: "Emit correlation testbenches comparing the SPICE subcircuit to its .ibs model.",
	Long: `Load a configuration file and, for every non-reserved simulated pin,
write a testbench that instantiates both the original transistor-level
subcircuit and a previously-generated .ibs model against the same
stimulus, without re-running the characterization pipeline.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logging.Configure(GetFlag(cmd, "verbose"))

		doc, err := config.Load(args[0])
		if err != nil {
			log.Errorf("correlate: %v", err)
			os.Exit(1)
		}

		outDir := GetString(cmd, "outdir")
		if err := simrun.EnsureOutDir(outDir); err != nil {
			log.Errorf("correlate: %v", err)
			os.Exit(1)
		}

		gen := corr.New(outDir)

		paths, err := gen.GenerateAll(doc)
		if err != nil {
			log.Errorf("correlate: %v", err)
			os.Exit(1)
		}

		for _, p := range paths {
			fmt.Printf("wrote %s\n", p)
		}
	},
}

func init() {
	rootCmd.AddCommand(correlateCmd)
}
