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

package scorer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kraklabs/codeviz/pkg/model"
	"github.com/kraklabs/codeviz/pkg/vfs"
)

func graphWith(symbols ...model.Symbol) *model.SymbolGraph {
	g := model.NewSymbolGraph()
	for _, s := range symbols {
		g.Symbols[s.ID] = s
	}
	return g
}

func baseOpts() Options {
	return Options{Now: time.Now()}
}

func TestCalculate_BaseConfidence100(t *testing.T) {
	sym := model.Symbol{ID: "t:1:unusedFunction", Name: "unusedFunction", Path: "test.ts"}
	g := graphWith(sym)
	assert.Equal(t, 100, Calculate(sym, g, baseOpts()))
}

func TestCalculate_ExportedReduces30(t *testing.T) {
	sym := model.Symbol{ID: "t:1:exportedFunction", Name: "exportedFunction", Path: "test.ts", IsExported: true}
	g := graphWith(sym)
	assert.Equal(t, 70, Calculate(sym, g, baseOpts()))
}

func TestCalculate_DynamicImportPatterns(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"my_handler", 75},
		{"handler_foo", 75},
		{"foo_plugin", 75},
		{"plugin_bar", 75},
		{"data_loader", 75},
		{"middleware_auth", 75},
		{"onClick_hook", 75},
		{"regularFunction", 100},
	}
	for _, tt := range tests {
		sym := model.Symbol{ID: "t:1:" + tt.name, Name: tt.name, Path: "test.ts"}
		g := graphWith(sym)
		assert.Equal(t, tt.want, Calculate(sym, g, baseOpts()), tt.name)
	}
}

func TestCalculate_ExportedAndDynamicCombine(t *testing.T) {
	sym := model.Symbol{ID: "t:1:exported_handler", Name: "exported_handler", Path: "test.ts", IsExported: true}
	g := graphWith(sym)
	assert.Equal(t, 45, Calculate(sym, g, baseOpts()))
}

func TestCalculate_TestCoverageByName(t *testing.T) {
	sym := model.Symbol{ID: "src:1:myFunction", Name: "myFunction", Path: "src/utils.ts"}
	testSym := model.Symbol{ID: "tests:1:test_myFunction", Name: "test_myFunction", Path: "tests/utils.test.ts", IsTest: true}
	g := graphWith(sym, testSym)
	assert.Equal(t, 85, Calculate(sym, g, baseOpts()))
}

func TestCalculate_TestCoverageByImportEdge(t *testing.T) {
	sym := model.Symbol{ID: "src:1:myFunction", Name: "myFunction", Path: "src/utils.ts"}
	testSym := model.Symbol{ID: "tests:1:checkSomething", Name: "checkSomething", Path: "tests/utils.test.ts", IsTest: true, IsExported: true}
	g := graphWith(sym, testSym)
	g.Exports[testSym.Path] = []string{testSym.ID}
	g.Imports[testSym.ID] = []string{sym.ID}

	assert.Equal(t, 85, Calculate(sym, g, baseOpts()))
}

func TestCalculate_NoTestsInGraphNoPenalty(t *testing.T) {
	sym := model.Symbol{ID: "src:1:myFunction", Name: "myFunction", Path: "src/utils.ts"}
	g := graphWith(sym)
	assert.Equal(t, 100, Calculate(sym, g, baseOpts()))
}

func TestCalculate_RecentlyModifiedFallsBackToMtime(t *testing.T) {
	fs := vfs.NewMemFileSystem()
	now := time.Now()
	fs.AddFile("recent.ts", []byte("export function recentlyModified() {}\n"), now)

	sym := model.Symbol{ID: "t:1:recentlyModified", Name: "recentlyModified", Path: "recent.ts"}
	g := graphWith(sym)

	score := Calculate(sym, g, Options{FS: fs, Now: now})
	assert.Equal(t, 80, score)
}

func TestCalculate_NotRecentlyModifiedNoPenalty(t *testing.T) {
	fs := vfs.NewMemFileSystem()
	now := time.Now()
	fs.AddFile("old.ts", []byte("export function stable() {}\n"), now.Add(-60*24*time.Hour))

	sym := model.Symbol{ID: "t:1:stable", Name: "stable", Path: "old.ts"}
	g := graphWith(sym)

	score := Calculate(sym, g, Options{FS: fs, Now: now})
	assert.Equal(t, 100, score)
}

func TestCalculate_AllPenaltiesStack(t *testing.T) {
	fs := vfs.NewMemFileSystem()
	now := time.Now()
	fs.AddFile("exported_handler.ts", []byte("export function exported_handler() {}\n"), now)

	sym := model.Symbol{ID: "t:1:exported_handler", Name: "exported_handler", Path: "exported_handler.ts", IsExported: true}
	testSym := model.Symbol{ID: "tests:1:test_exported_handler", Name: "test_exported_handler", Path: "tests/test.ts", IsTest: true}
	g := graphWith(sym, testSym)

	score := Calculate(sym, g, Options{FS: fs, Now: now})
	assert.Equal(t, 10, score)
}

func TestCalculate_NeverNegative(t *testing.T) {
	fs := vfs.NewMemFileSystem()
	now := time.Now()
	fs.AddFile("x.ts", []byte("export function exported_handler_plugin_loader() {}\n"), now)

	sym := model.Symbol{ID: "t:1:exported_handler", Name: "exported_handler_plugin", Path: "x.ts", IsExported: true}
	testSym := model.Symbol{ID: "tests:1:test_exported_handler_plugin", Name: "test_exported_handler_plugin", Path: "tests/test.ts", IsTest: true}
	g := graphWith(sym, testSym)

	score := Calculate(sym, g, Options{FS: fs, Now: now})
	assert.GreaterOrEqual(t, score, 0)
}

type fakeGit struct {
	t  time.Time
	ok bool
}

func (f fakeGit) LastModified(path string) (time.Time, bool, error) {
	return f.t, f.ok, nil
}

func TestCalculate_GitHistoryTakesPrecedenceOverMtime(t *testing.T) {
	fs := vfs.NewMemFileSystem()
	now := time.Now()
	fs.AddFile("a.ts", []byte("export function a() {}\n"), now.Add(-60*24*time.Hour))

	sym := model.Symbol{ID: "t:1:a", Name: "a", Path: "a.ts"}
	g := graphWith(sym)

	score := Calculate(sym, g, Options{FS: fs, Git: fakeGit{t: now, ok: true}, Now: now})
	assert.Equal(t, 80, score)
}

func TestCalculate_GitUnavailableFallsBackToMtime(t *testing.T) {
	fs := vfs.NewMemFileSystem()
	now := time.Now()
	fs.AddFile("a.ts", []byte("export function a() {}\n"), now)

	sym := model.Symbol{ID: "t:1:a", Name: "a", Path: "a.ts"}
	g := graphWith(sym)

	score := Calculate(sym, g, Options{FS: fs, Git: fakeGit{ok: false}, Now: now})
	assert.Equal(t, 80, score)
}
