// Copyright 2026 KrakLabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package entrypoints computes the seed set that reachability analysis
// starts from: a symbol qualifies if it is named main, lives in a test
// file, or is exported from an entry file (main/index with a supported
// extension, or lib.rs).
package entrypoints

import (
	"errors"
	"path/filepath"

	"github.com/kraklabs/codeviz/pkg/model"
)

// ErrNoEntryPoints is returned when a non-empty graph yields zero entry
// points. This halts dead-code analysis; metrics still flow
// independently.
var ErrNoEntryPoints = errors.New("entrypoints: no entry points found")

// entryFileBasenames is the closed set of basenames that mark a file as an
// entry file under rule 3.
var entryFileBasenames = map[string]bool{
	"main.ts": true, "main.tsx": true, "main.js": true, "main.jsx": true,
	"index.ts": true, "index.tsx": true, "index.js": true, "index.jsx": true,
	"lib.rs": true,
}

func hasEntryBasename(path string) bool {
	return entryFileBasenames[filepath.Base(path)]
}

// Detect returns the set of symbol ids that seed reachability.
func Detect(graph *model.SymbolGraph) (map[string]bool, error) {
	seeds := make(map[string]bool)
	entryFiles := make(map[string]bool)

	for _, s := range graph.Symbols {
		if hasEntryBasename(s.Path) {
			entryFiles[s.Path] = true
		}
	}

	for _, s := range graph.Symbols {
		switch {
		case s.Name == "main":
			seeds[s.ID] = true
		case s.IsTest:
			seeds[s.ID] = true
		case s.IsExported && entryFiles[s.Path]:
			seeds[s.ID] = true
		}
	}

	if len(seeds) == 0 && len(graph.Symbols) > 0 {
		return nil, ErrNoEntryPoints
	}
	return seeds, nil
}
