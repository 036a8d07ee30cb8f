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

// Package model defines the wire-stable data types produced by the
// analysis engine: per-file metrics, the symbol graph, and dead-code
// reports. Every exported type here is safe to serialize to JSON and
// hand to a front-end unchanged.
package model

import "sort"

// SymbolKind enumerates the closed set of symbol kinds the graph builder
// recognizes. Adding a new kind is a coordinated change across the graph
// builder, the scorer, and the wire format.
type SymbolKind string

const (
	KindFunction      SymbolKind = "Function"
	KindArrowFunction SymbolKind = "ArrowFunction"
	KindClass         SymbolKind = "Class"
	KindMethod        SymbolKind = "Method"
	KindVariable      SymbolKind = "Variable"
)

// FileMetrics holds the size/shape measurements for a single source file.
type FileMetrics struct {
	Path              string    `json:"path"`
	Language          string    `json:"language"`
	LOC               int       `json:"loc"`
	SizeBytes         int64     `json:"sizeBytes"`
	FunctionCount     int       `json:"functionCount"`
	LastModified      Timestamp `json:"lastModified"`
	DeadFunctionCount *int      `json:"deadFunctionCount,omitempty"`
	DeadCodeLOC       *int      `json:"deadCodeLoc,omitempty"`
	DeadCodeRatio     *float64  `json:"deadCodeRatio,omitempty"`
}

// Summary is the roll-up over all analyzed files in one AnalysisResult.
type Summary struct {
	TotalFiles     int      `json:"total_files"`
	TotalLOC       int      `json:"total_loc"`
	TotalFunctions int      `json:"total_functions"`
	LargestFiles   []string `json:"largest_files"`
}

// AnalysisResult is the top-level output of a metrics analysis run.
type AnalysisResult struct {
	Summary   Summary       `json:"summary"`
	Files     []FileMetrics `json:"files"`
	Timestamp Timestamp     `json:"timestamp"`
}

// BuildSummary derives a Summary from a (not necessarily sorted) file list,
// returning a copy of files sorted by path alongside the summary so callers
// get both in one pass. The input slice is not modified.
func BuildSummary(files []FileMetrics) (Summary, []FileMetrics) {
	sorted := make([]FileMetrics, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	summary := Summary{LargestFiles: []string{}}
	for _, f := range sorted {
		summary.TotalFiles++
		summary.TotalLOC += f.LOC
		summary.TotalFunctions += f.FunctionCount
	}

	byLOC := make([]FileMetrics, len(sorted))
	copy(byLOC, sorted)
	sort.Slice(byLOC, func(i, j int) bool {
		if byLOC[i].LOC != byLOC[j].LOC {
			return byLOC[i].LOC > byLOC[j].LOC
		}
		return byLOC[i].Path < byLOC[j].Path
	})
	top := 10
	if top > len(byLOC) {
		top = len(byLOC)
	}
	for i := 0; i < top; i++ {
		summary.LargestFiles = append(summary.LargestFiles, byLOC[i].Path)
	}

	return summary, sorted
}

// Symbol is a single named definition extracted by the symbol-graph builder.
//
// Its id is the canonical, stable handle for all cross-references within a
// SymbolGraph: "<path>:<line_start>:<name>". No other identity mechanism is
// used.
type Symbol struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Kind       SymbolKind `json:"kind"`
	Path       string     `json:"path"`
	LineStart  int        `json:"line_start"`
	LineEnd    int        `json:"line_end"`
	IsExported bool       `json:"is_exported"`
	IsTest     bool       `json:"is_test"`
}

// SymbolGraph is the full set of extracted symbols plus their import edges.
//
// symbols exclusively owns every Symbol value; Imports and Exports reference
// symbols by id, never by pointer.
type SymbolGraph struct {
	Symbols map[string]Symbol   `json:"symbols"`
	Imports map[string][]string `json:"imports"`
	Exports map[string][]string `json:"exports"`
}

// NewSymbolGraph returns an empty, ready-to-populate graph.
func NewSymbolGraph() *SymbolGraph {
	return &SymbolGraph{
		Symbols: make(map[string]Symbol),
		Imports: make(map[string][]string),
		Exports: make(map[string][]string),
	}
}

// DeadSymbol is a symbol the reachability engine could not reach, annotated
// with a deletion-confidence score.
type DeadSymbol struct {
	Name         string     `json:"symbol"`
	Kind         SymbolKind `json:"kind"`
	LineStart    int        `json:"lineStart"`
	LineEnd      int        `json:"lineEnd"`
	LOC          int        `json:"loc"`
	Confidence   int        `json:"confidence"`
	Reason       string     `json:"reason"`
	LastModified *Timestamp `json:"lastModified,omitempty"`
}

// FileDeadCode groups the dead symbols found in one file.
type FileDeadCode struct {
	Path     string       `json:"path"`
	DeadCode []DeadSymbol `json:"deadCode"`
}

// DeadCodeSummary is the roll-up over a DeadCodeResult.
type DeadCodeSummary struct {
	TotalFiles       int     `json:"totalFiles"`
	FilesWithDeadCode int    `json:"filesWithDeadCode"`
	DeadFunctions    int     `json:"deadFunctions"`
	DeadClasses      int     `json:"deadClasses"`
	TotalDeadLOC     int     `json:"totalDeadLoc"`
	DeadCodeRatio    float64 `json:"deadCodeRatio"`
}

// DeadCodeResult is the top-level output of a dead-code analysis run.
type DeadCodeResult struct {
	Summary DeadCodeSummary `json:"summary"`
	Files   []FileDeadCode  `json:"files"`
}

// BuildDeadCodeResult assembles a DeadCodeResult from per-file dead-symbol
// groups, sorting files by path and each file's dead symbols by LineStart,
// and deriving the summary.
func BuildDeadCodeResult(files []FileDeadCode, totalFiles int, totalLOC int) DeadCodeResult {
	sorted := make([]FileDeadCode, 0, len(files))
	for _, f := range files {
		if len(f.DeadCode) == 0 {
			continue
		}
		dc := make([]DeadSymbol, len(f.DeadCode))
		copy(dc, f.DeadCode)
		sort.Slice(dc, func(i, j int) bool { return dc[i].LineStart < dc[j].LineStart })
		sorted = append(sorted, FileDeadCode{Path: f.Path, DeadCode: dc})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	summary := DeadCodeSummary{TotalFiles: totalFiles}
	for _, f := range sorted {
		summary.FilesWithDeadCode++
		for _, d := range f.DeadCode {
			summary.TotalDeadLOC += d.LOC
			switch d.Kind {
			case KindFunction, KindArrowFunction, KindMethod:
				summary.DeadFunctions++
			case KindClass:
				summary.DeadClasses++
			}
		}
	}
	if totalLOC > 0 {
		summary.DeadCodeRatio = float64(summary.TotalDeadLOC) / float64(totalLOC)
	}

	return DeadCodeResult{Summary: summary, Files: sorted}
}

// CurrentCacheSchemaVersion is bumped whenever CachedGraph's on-disk shape
// changes incompatibly. A cache entry whose schema_version doesn't match
// this constant is discarded and rebuilt.
const CurrentCacheSchemaVersion = 1

// CachedGraph is the persisted form of a SymbolGraph plus the per-file
// content hashes used to detect staleness.
type CachedGraph struct {
	SchemaVersion int               `json:"schema_version"`
	CreatedAt     Timestamp         `json:"created_at"`
	Graph         *SymbolGraph      `json:"graph"`
	FileHashes    map[string]uint64 `json:"file_hashes"`
}
