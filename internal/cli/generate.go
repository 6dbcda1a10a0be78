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
	"context"
	"fmt"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simon9721/s2ibis-go/internal/config"
	"github.com/simon9721/s2ibis-go/internal/logging"
	"github.com/simon9721/s2ibis-go/internal/pipeline"
	"github.com/simon9721/s2ibis-go/internal/plan"
)

var generateCmd = &cobra.Command{
	Use:   "generate config-file",
	Short: "Run the full characterization pipeline and emit an .ibs file.",
	Long: `Load a configuration file (flat keyword form or structured JSON), plan
the required simulations, drive the configured SPICE simulator, derive the
IBIS tables, and emit the resulting .ibs file into --outdir.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logging.Configure(GetFlag(cmd, "verbose"))

		if doc, err := config.Load(args[0]); err == nil {
			if items, err := plan.Plan(doc); err == nil {
				printPlanSummary(items)
			}
		}

		opts := pipeline.Options{
			ConfigPath: args[0],
			OutDir:     GetString(cmd, "outdir"),
			SpiceType:  GetString(cmd, "spice-type"),
			SpiceCmd:   GetString(cmd, "spice-cmd"),
			Iterate:    GetFlag(cmd, "iterate"),
			Cleanup:    GetFlag(cmd, "cleanup"),
			Correlate:  GetFlag(cmd, "correlate"),
			Timeout:    GetDuration(cmd, "timeout"),
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		res, err := pipeline.Run(ctx, opts)
		if err != nil {
			log.Errorf("generate: %v", err)
			os.Exit(1)
		}

		fmt.Printf("wrote %s\n", res.IBSPath)

		if !res.Failures.Empty() {
			fmt.Println(res.Failures.Error())
		}

		for _, p := range res.CorrelationDecks {
			fmt.Printf("wrote correlation deck %s\n", p)
		}
	},
}

func init() {
	generateCmd.Flags().Bool("correlate", false, "also generate correlation testbenches for every simulated pin")

	rootCmd.AddCommand(generateCmd)
}
