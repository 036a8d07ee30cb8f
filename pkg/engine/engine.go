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

// Package engine is the top-level orchestrator: it wires discovery, the
// parser registry, the metrics extractor, the symbol-graph builder (with
// its incremental cache), the entry-point detector, the reachability
// engine, and the confidence scorer into the two operations every
// front-end calls, Analyze and AnalyzeDeadCode.
//
// The orchestrator itself is single-threaded coordination; parallelism is
// scoped to individual passes, which run sequentially and are each
// internally parallel.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/kraklabs/codeviz/internal/appctx"
	"github.com/kraklabs/codeviz/pkg/cache"
	"github.com/kraklabs/codeviz/pkg/config"
	"github.com/kraklabs/codeviz/pkg/discovery"
	"github.com/kraklabs/codeviz/pkg/entrypoints"
	"github.com/kraklabs/codeviz/pkg/gitinfo"
	"github.com/kraklabs/codeviz/pkg/langparse"
	"github.com/kraklabs/codeviz/pkg/metrics"
	"github.com/kraklabs/codeviz/pkg/model"
	"github.com/kraklabs/codeviz/pkg/reachability"
	"github.com/kraklabs/codeviz/pkg/scorer"
	"github.com/kraklabs/codeviz/pkg/symgraph"
	"github.com/kraklabs/codeviz/pkg/vfs"
)

// Engine runs analyses over one configured root.
type Engine struct {
	cfg    config.Config
	fs     vfs.FileSystem
	reg    *langparse.Registry
	git    gitinfo.GitProvider
	logger *slog.Logger
	ctx    appctx.AppContext
	now    func() time.Time
}

// Options supplies the collaborators an Engine needs. FS, Registry, and
// AppContext default to production implementations when left nil; Git is
// optional and, when nil, the scorer falls back to file-mtime for its
// "recently modified" signal.
type Options struct {
	FS       vfs.FileSystem
	Registry *langparse.Registry
	Git      gitinfo.GitProvider
	Logger   *slog.Logger
	AppCtx   appctx.AppContext
	// Now overrides the scorer's notion of the current instant, for
	// deterministic "recently modified" tests. Defaults to time.Now.
	Now func() time.Time
}

// New builds an Engine for cfg.
func New(cfg config.Config, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fs := opts.FS
	if fs == nil {
		fs = vfs.NewOSFileSystem()
	}
	reg := opts.Registry
	if reg == nil {
		reg = langparse.NewRegistry()
	}
	appCtx := opts.AppCtx
	if appCtx == nil {
		appCtx = appctx.NewLoggingContext(logger, appctx.Options{AppDir: cfg.ResolvedCacheDir()})
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{cfg: cfg, fs: fs, reg: reg, git: opts.Git, logger: logger, ctx: appCtx, now: now}
}

// discover runs the discovery pass shared by both operations.
func (e *Engine) discover() ([]string, error) {
	e.ctx.ReportProgress(appctx.ProgressScanning, "scanning "+e.cfg.Root)
	walker, err := discovery.New(discovery.Options{
		Root:            e.cfg.Root,
		ExcludePatterns: e.cfg.ExcludeGlobs,
		Logger:          e.logger,
		MaxFileSize:     e.cfg.ResolvedMaxFileSize(),
	})
	if err != nil {
		return nil, fmt.Errorf("engine: discovery: %w", err)
	}
	paths, err := walker.Discover()
	if err != nil {
		return nil, fmt.Errorf("engine: discovery: %w", err)
	}
	e.ctx.ReportProgress(appctx.ProgressListed, fmt.Sprintf("found %d candidate files", len(paths)))
	e.ctx.EmitEvent("discovery.complete", map[string]any{"fileCount": len(paths)})
	return paths, nil
}

// Analyze runs the metrics half of the pipeline: discovery, per-file
// metrics extraction, and summary aggregation.
func (e *Engine) Analyze(ctx context.Context) (*model.AnalysisResult, error) {
	paths, err := e.discover()
	if err != nil {
		return nil, err
	}
	result, _ := e.analyzeMetrics(ctx, paths)
	return result, nil
}

func (e *Engine) analyzeMetrics(ctx context.Context, paths []string) (*model.AnalysisResult, []model.FileMetrics) {
	files, errs := metrics.ExtractAll(ctx, e.fs, e.reg, paths, e.cfg.Workers())
	for _, err := range errs {
		e.logger.Warn("engine.metrics.skip", "error", err)
	}
	for i := range files {
		files[i].Path = e.relPath(files[i].Path)
	}
	e.ctx.ReportProgress(appctx.ProcessingFraction(len(files), len(paths)), "metrics extracted")

	summary, sorted := model.BuildSummary(files)
	e.ctx.ReportProgress(appctx.ProgressSummarizing, "summarizing")
	result := &model.AnalysisResult{Summary: summary, Files: sorted, Timestamp: model.Now()}
	e.ctx.ReportProgress(appctx.ProgressComplete, "analysis complete")
	e.ctx.EmitEvent("analysis.complete", map[string]any{
		"totalFiles": summary.TotalFiles,
		"totalLOC":   summary.TotalLOC,
	})
	return result, sorted
}

// AnalyzeDeadCode runs the full pipeline through reachability and
// confidence scoring, reusing the incremental cache when the discovered
// file set is unchanged from the last run.
func (e *Engine) AnalyzeDeadCode(ctx context.Context) (*model.DeadCodeResult, error) {
	paths, err := e.discover()
	if err != nil {
		return nil, err
	}
	_, result, err := e.analyzeDeadCode(ctx, paths)
	return result, err
}

func (e *Engine) analyzeDeadCode(ctx context.Context, paths []string) (*model.SymbolGraph, *model.DeadCodeResult, error) {
	graph, err := e.buildOrLoadGraph(ctx, paths)
	if err != nil {
		return nil, nil, err
	}

	seeds, err := entrypoints.Detect(graph)
	if err != nil {
		return graph, nil, fmt.Errorf("engine: %w", err)
	}

	reachable := reachability.Analyze(graph, seeds)
	dead := reachability.Dead(graph, reachable)
	e.ctx.ReportProgress(appctx.ProcessingFraction(len(graph.Symbols)-len(dead), len(graph.Symbols)), "scoring dead symbols")

	scoreOpts := scorer.Options{Git: e.git, FS: e.fs, Now: e.now()}
	byPath := make(map[string][]model.DeadSymbol)
	for _, sym := range dead {
		confidence := scorer.Calculate(sym, graph, scoreOpts)
		ds := model.DeadSymbol{
			Name:       sym.Name,
			Kind:       sym.Kind,
			LineStart:  sym.LineStart,
			LineEnd:    sym.LineEnd,
			LOC:        sym.LineEnd - sym.LineStart + 1,
			Confidence: confidence,
			Reason:     "Unreachable from entry points",
		}
		if info, err := e.fs.Stat(sym.Path); err == nil {
			ts := model.NewTimestamp(info.ModTime)
			ds.LastModified = &ts
		}
		rel := e.relPath(sym.Path)
		byPath[rel] = append(byPath[rel], ds)
	}

	var files []model.FileDeadCode
	for path, syms := range byPath {
		files = append(files, model.FileDeadCode{Path: path, DeadCode: syms})
	}

	result := model.BuildDeadCodeResult(files, len(paths), approxTotalLOC(graph))
	e.ctx.ReportProgress(appctx.ProgressComplete, "dead-code analysis complete")
	e.ctx.EmitEvent("deadcode.complete", map[string]any{
		"deadFunctions": result.Summary.DeadFunctions,
		"totalDeadLoc":  result.Summary.TotalDeadLOC,
	})
	return graph, &result, nil
}

// AnalyzeAll runs discovery once and both the metrics and dead-code passes
// over the same file set, merging each file's dead-code counts into its
// FileMetrics optional fields before returning both results.
func (e *Engine) AnalyzeAll(ctx context.Context) (*model.AnalysisResult, *model.DeadCodeResult, error) {
	paths, err := e.discover()
	if err != nil {
		return nil, nil, err
	}

	analysis, _ := e.analyzeMetrics(ctx, paths)
	_, deadCode, err := e.analyzeDeadCode(ctx, paths)
	if err != nil {
		// NoEntryPoints is non-fatal for the overall run: metrics still
		// return even though dead-code analysis fails.
		return analysis, nil, err
	}

	*deadCode = model.BuildDeadCodeResult(deadCode.Files, len(paths), analysis.Summary.TotalLOC)

	deadByPath := make(map[string]model.FileDeadCode, len(deadCode.Files))
	for _, fd := range deadCode.Files {
		deadByPath[fd.Path] = fd
	}
	for i := range analysis.Files {
		fd, ok := deadByPath[analysis.Files[i].Path]
		if !ok {
			continue
		}
		deadFns := 0
		deadLOC := 0
		for _, ds := range fd.DeadCode {
			if ds.Kind == model.KindFunction || ds.Kind == model.KindArrowFunction || ds.Kind == model.KindMethod {
				deadFns++
			}
			deadLOC += ds.LOC
		}
		analysis.Files[i].DeadFunctionCount = &deadFns
		analysis.Files[i].DeadCodeLOC = &deadLOC
		ratio := 0.0
		if analysis.Files[i].LOC > 0 {
			ratio = float64(deadLOC) / float64(analysis.Files[i].LOC)
		}
		analysis.Files[i].DeadCodeRatio = &ratio
	}

	return analysis, deadCode, nil
}

// buildOrLoadGraph tries to open the cache, checks freshness against the
// current file set's hashes, and rebuilds then saves on any miss (stale,
// corrupt, or disabled).
func (e *Engine) buildOrLoadGraph(ctx context.Context, paths []string) (*model.SymbolGraph, error) {
	if e.cfg.DisableCache {
		return e.buildGraph(ctx, paths)
	}

	store, err := cache.Open(e.cfg.ResolvedCacheDir(), e.logger)
	if err != nil {
		e.logger.Warn("engine.cache.open_failed", "error", err)
		return e.buildGraph(ctx, paths)
	}
	defer store.Close()

	hashes := cache.HashFiles(e.fs, paths)
	cached, fresh, err := store.Load(hashes)
	if err != nil {
		e.logger.Warn("engine.cache.load_failed", "error", err)
	}
	if fresh {
		e.ctx.EmitEvent("cache.hit", map[string]any{"fileCount": len(paths)})
		return cached.Graph, nil
	}
	e.ctx.EmitEvent("cache.miss", map[string]any{"fileCount": len(paths)})

	graph, err := e.buildGraph(ctx, paths)
	if err != nil {
		return nil, err
	}
	if err := store.Save(graph, hashes); err != nil {
		e.logger.Warn("engine.cache.save_failed", "error", err)
	}
	return graph, nil
}

// relPath rewrites an absolute discovered path to be relative to the
// configured root for report output. Paths that don't relativize cleanly
// are reported verbatim.
func (e *Engine) relPath(path string) string {
	root, err := filepath.Abs(e.cfg.Root)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

// approxTotalLOC sums each graph symbol's line span as a stand-in for a
// real per-file LOC count, for the standalone dead-code path that has no
// metrics pass of its own to source a ratio denominator from. AnalyzeAll
// instead uses the metrics pass's real Summary.TotalLOC once one is
// available.
func approxTotalLOC(graph *model.SymbolGraph) int {
	total := 0
	for _, s := range graph.Symbols {
		total += s.LineEnd - s.LineStart + 1
	}
	return total
}

func (e *Engine) buildGraph(ctx context.Context, paths []string) (*model.SymbolGraph, error) {
	// Discovery hands back absolute paths, so alias imports ("@/", "~/")
	// must resolve against the absolute root too.
	root := e.cfg.Root
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	graph, err := symgraph.Build(ctx, e.fs, e.reg, paths, symgraph.Options{
		Root:       root,
		NumWorkers: e.cfg.Workers(),
		Logger:     e.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return graph, nil
}
