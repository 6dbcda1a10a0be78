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
package config

import (
	"path/filepath"
	"strings"

	"github.com/simon9721/s2ibis-go/internal/model"
)

// Load reads a configuration file in either accepted form (spec.md §6) and
// returns the Document it describes. The structured hierarchical form is
// recognised by a ".json" extension; anything else is parsed as the flat
// keyword form.
func Load(path string) (*model.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseStructured(path)
	}

	return ParseFlat(path)
}
