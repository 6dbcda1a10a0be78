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

// Package logging centralises the structured logging setup used across the
// pipeline, grounded on the teacher's `log "github.com/sirupsen/logrus"`
// usage in pkg/cmd/compile.go and pkg/cmd/picus.go: --verbose raises the
// level to Debug, otherwise Info is the default (spec.md §7's "Logging
// distinguishes INFO / WARN / ERROR levels").
package logging

import (
	log "github.com/sirupsen/logrus"
)

// Configure sets the package-wide logrus level and formatter. Called once
// from the CLI entrypoint after flags are parsed.
func Configure(verbose bool) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: false,
	})

	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// PlanItem returns a logger entry pre-populated with the fields a Plan Item
// failure report needs (pin, model, curve, corner), so WARN/ERROR lines are
// greppable per spec.md §7.
func PlanItem(pin, model, curve, corner string) *log.Entry {
	return log.WithFields(log.Fields{
		"pin":    pin,
		"model":  model,
		"curve":  curve,
		"corner": corner,
	})
}

// Info logs at INFO level.
func Info(args ...any) {
	log.Info(args...)
}

// Infof logs a formatted message at INFO level.
func Infof(format string, args ...any) {
	log.Infof(format, args...)
}

// Warnf logs a formatted message at WARN level.
func Warnf(format string, args ...any) {
	log.Warnf(format, args...)
}

// Errorf logs a formatted message at ERROR level.
func Errorf(format string, args ...any) {
	log.Errorf(format, args...)
}

// Debugf logs a formatted message at DEBUG level, visible only with
// --verbose.
func Debugf(format string, args ...any) {
	log.Debugf(format, args...)
}
