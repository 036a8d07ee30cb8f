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

// Package scorer computes a deletion-confidence score (0-100) for a dead
// symbol: start at 100, apply independent penalties, clamp. Higher means
// safer to delete.
//
// The git-history lookup behind the recently-modified penalty is
// abstracted as a HistoryProvider so the scorer itself never shells out;
// when no provider is wired (or the file isn't tracked) it falls back to
// file mtime.
package scorer

import (
	"strings"
	"time"

	"github.com/kraklabs/codeviz/pkg/model"
	"github.com/kraklabs/codeviz/pkg/vfs"
)

const recentWindow = 30 * 24 * time.Hour

// dynamicImportPatterns are the name stems that suggest a symbol might be
// invoked dynamically (reflection, plugin registries, route tables) rather
// than via a statically resolvable import edge.
var dynamicImportPatterns = []string{
	"_handler", "_plugin", "_loader", "_middleware", "_hook",
	"handler_", "plugin_", "loader_", "middleware_", "hook_",
}

// HistoryProvider answers "was this file recently modified" from version
// control. ok is false when the file isn't tracked; Calculate falls back to
// file mtime in that case and whenever err is non-nil.
type HistoryProvider interface {
	LastModified(path string) (t time.Time, ok bool, err error)
}

// Options configures Calculate. FS and Now are both required for the
// recently-modified penalty's mtime fallback; Git is optional.
type Options struct {
	Git HistoryProvider
	FS  vfs.FileSystem
	Now time.Time
}

// Calculate returns symbol's deletion-confidence score in [0, 100].
func Calculate(symbol model.Symbol, graph *model.SymbolGraph, opts Options) int {
	score := 100

	if symbol.IsExported {
		score -= 30
	}
	if recentlyModified(symbol.Path, opts) {
		score -= 20
	}
	if couldBeDynamicImport(symbol.Name) {
		score -= 25
	}
	if hasTestCoverage(symbol, graph) {
		score -= 15
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func recentlyModified(path string, opts Options) bool {
	if opts.Git != nil {
		if t, ok, err := opts.Git.LastModified(path); err == nil && ok {
			return opts.Now.Sub(t) < recentWindow
		}
	}
	if opts.FS == nil {
		return false
	}
	info, err := opts.FS.Stat(path)
	if err != nil {
		return false
	}
	return opts.Now.Sub(info.ModTime) < recentWindow
}

func couldBeDynamicImport(name string) bool {
	lower := strings.ToLower(name)
	for _, pattern := range dynamicImportPatterns {
		switch {
		case strings.HasPrefix(pattern, "_"):
			if strings.HasSuffix(lower, pattern) {
				return true
			}
		case strings.HasSuffix(pattern, "_"):
			if strings.HasPrefix(lower, pattern) {
				return true
			}
		default:
			if strings.Contains(lower, pattern) {
				return true
			}
		}
	}
	return false
}

// hasTestCoverage reports whether symbol appears tested: either its name
// appears as a substring of some test symbol's name, or some symbol of a
// test file has symbol's id in its imports list.
func hasTestCoverage(symbol model.Symbol, graph *model.SymbolGraph) bool {
	var testSymbols []model.Symbol
	for _, s := range graph.Symbols {
		if s.IsTest {
			testSymbols = append(testSymbols, s)
		}
	}
	if len(testSymbols) == 0 {
		return false
	}

	for _, ts := range testSymbols {
		if strings.Contains(ts.Name, symbol.Name) {
			return true
		}
	}

	for _, ts := range testSymbols {
		for _, dep := range graph.Imports[ts.ID] {
			if dep == symbol.ID {
				return true
			}
		}
	}
	return false
}
