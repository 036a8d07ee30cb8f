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

package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/codeviz/internal/appctx"
	"github.com/kraklabs/codeviz/pkg/config"
	"github.com/kraklabs/codeviz/pkg/entrypoints"
)

// farFuture is used as the scorer's "now" in tests so freshly-written test
// fixtures never trip the recently-modified penalty via the mtime fallback.
var farFuture = time.Now().Add(365 * 24 * time.Hour)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestEngine(t *testing.T, root string, opts ...config.Option) *Engine {
	t.Helper()
	opts = append(opts, config.WithWorkers(2))
	cfg := config.New(root, opts...)
	return New(cfg, Options{
		AppCtx: appctx.NewRecordingContext(t.TempDir()),
		Now:    func() time.Time { return farFuture },
	})
}

func TestAnalyzeMetricsCountsLOC(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.ts", "/* header */\n\nfunction f(){ /* inline */ return 1; } // tail\n// note\nconst x=2;\n")

	e := newTestEngine(t, root)
	result, err := e.Analyze(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, 2, result.Files[0].LOC)
	assert.Equal(t, 1, result.Files[0].FunctionCount)
	assert.Equal(t, 2, result.Summary.TotalLOC)
}

func TestAnalyzeDeadCodeCircularPair(t *testing.T) {
	root := t.TempDir()
	// index.ts is the only entry file; the a/b cycle is unreachable from it.
	writeFile(t, root, "index.ts", "export function start() { return 0; }\n")
	writeFile(t, root, "a.ts", "import { funcB } from './b';\nexport function funcA() { return funcB(); }\n")
	writeFile(t, root, "b.ts", "import { funcA } from './a';\nexport function funcB() { return funcA(); }\n")

	e := newTestEngine(t, root, config.WithoutCache())
	result, err := e.AnalyzeDeadCode(context.Background())
	require.NoError(t, err)

	var names []string
	for _, f := range result.Files {
		for _, d := range f.DeadCode {
			names = append(names, d.Name)
			assert.Equal(t, 70, d.Confidence)
		}
	}
	assert.ElementsMatch(t, []string{"funcA", "funcB"}, names)
}

func TestAnalyzeDeadCodeNoEntryPoints(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.ts", "function helper() { return 1; }\n")

	e := newTestEngine(t, root, config.WithoutCache())
	_, err := e.AnalyzeDeadCode(context.Background())
	require.ErrorIs(t, err, entrypoints.ErrNoEntryPoints)
}

func TestAnalyzeDeadCodeEntryInference(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.ts", "import { helper } from './utils';\nexport function run() { return helper(); }\n")
	writeFile(t, root, "src/utils.ts", "export function helper() { return 1; }\nexport function leftover() { return 2; }\n")

	e := newTestEngine(t, root, config.WithoutCache())
	result, err := e.AnalyzeDeadCode(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	require.Len(t, result.Files[0].DeadCode, 1)
	assert.Equal(t, "leftover", result.Files[0].DeadCode[0].Name)
	assert.Equal(t, 70, result.Files[0].DeadCode[0].Confidence)
}

func TestAnalyzeDeadCodeStandaloneRatioIsNonZero(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.ts", "import { helper } from './utils';\nexport function run() { return helper(); }\n")
	writeFile(t, root, "src/utils.ts", "export function helper() { return 1; }\nexport function leftover() { return 2; }\n")

	e := newTestEngine(t, root, config.WithoutCache())
	result, err := e.AnalyzeDeadCode(context.Background())
	require.NoError(t, err)

	require.NotZero(t, result.Summary.TotalDeadLOC)
	assert.Greater(t, result.Summary.DeadCodeRatio, 0.0)
}

func TestAnalyzeAllMergesDeadCounts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.ts", "import { helper } from './utils';\nexport function run() { return helper(); }\n")
	writeFile(t, root, "src/utils.ts", "export function helper() { return 1; }\nexport function leftover() { return 2; }\n")

	e := newTestEngine(t, root, config.WithoutCache())
	analysis, deadCode, err := e.AnalyzeAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, deadCode)

	utilsIdx := -1
	for i, f := range analysis.Files {
		if filepath.Base(f.Path) == "utils.ts" {
			utilsIdx = i
		}
	}
	require.GreaterOrEqual(t, utilsIdx, 0)
	require.NotNil(t, analysis.Files[utilsIdx].DeadFunctionCount)
	assert.Equal(t, 1, *analysis.Files[utilsIdx].DeadFunctionCount)
}

func TestAnalyzeDeadCodeCacheReuse(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.ts", "export function run() { return 1; }\n")

	e := newTestEngine(t, root)
	first, err := e.AnalyzeDeadCode(context.Background())
	require.NoError(t, err)

	second, err := e.AnalyzeDeadCode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestAnalyzeDeadCodeCacheInvalidatedOnTouch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.ts", "export function run() { return 1; }\n")

	rec := appctx.NewRecordingContext(t.TempDir())
	cfg := config.New(root, config.WithWorkers(2))
	e := New(cfg, Options{
		AppCtx: rec,
		Now:    func() time.Time { return farFuture },
	})

	_, err := e.AnalyzeDeadCode(context.Background())
	require.NoError(t, err)
	_, err = e.AnalyzeDeadCode(context.Background())
	require.NoError(t, err)

	// Touch the file's mtime so its staleness hash changes.
	touched := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(root, "src/main.ts"), touched, touched))

	_, err = e.AnalyzeDeadCode(context.Background())
	require.NoError(t, err)

	var events []string
	for _, ev := range rec.Events {
		if ev.Name == "cache.hit" || ev.Name == "cache.miss" {
			events = append(events, ev.Name)
		}
	}
	assert.Equal(t, []string{"cache.miss", "cache.hit", "cache.miss"}, events)
}
