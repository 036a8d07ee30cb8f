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

// Package symgraph is the symbol-graph builder: per-file extraction of
// named definitions and import directives, two-pass assembly with path
// resolution into a graph of nodes keyed by (file, line, name).
//
// Current supported source languages for symbol extraction are TS/TSX and
// JS/JSX only; Rust/Python/Go/C++ files are visible to the metrics
// extractor but never contribute to the graph.
package symgraph

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kraklabs/codeviz/pkg/langparse"
	"github.com/kraklabs/codeviz/pkg/model"
	"github.com/kraklabs/codeviz/pkg/vfs"
)

// ParseError reports that a file could not be parsed while building the
// graph. The builder never partially publishes: a failed file aborts the
// whole build.
type ParseError struct {
	File    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("symgraph: %s: %s", e.File, e.Message)
}

// symGraphLanguages is the closed set of language tags that contribute to
// the symbol graph.
var symGraphLanguages = map[string]bool{
	langparse.TagTypeScript: true,
	langparse.TagTSX:        true,
	langparse.TagJavaScript: true,
}

// Options configures a graph Build.
type Options struct {
	// Root is the project root used to resolve "@/" and "~/" path-alias
	// imports; if empty, those imports resolve relative to "".
	Root string
	// NumWorkers bounds the parallelism of passes 1 and 2. Defaults to 1.
	NumWorkers int
	Logger     *slog.Logger
}

// Build runs the three-pass symbol-graph assembly over paths, a subset of
// which must already have passed discovery. Non-TS/JS-family paths are
// skipped; they never contribute symbols or imports.
func Build(ctx context.Context, fsys vfs.FileSystem, reg *langparse.Registry, paths []string, opts Options) (*model.SymbolGraph, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	numWorkers := opts.NumWorkers
	if numWorkers < 1 {
		numWorkers = 1
	}

	discovered := make(map[string]bool, len(paths))
	var jsFiles []string
	for _, p := range paths {
		norm := filepath.ToSlash(p)
		discovered[norm] = true
		tag, ok := langparse.LanguageTagForPath(p)
		if ok && symGraphLanguages[tag] {
			jsFiles = append(jsFiles, norm)
		}
	}

	fileSymbols, fileImportSpecs, err := extractAll(ctx, fsys, reg, jsFiles, numWorkers)
	if err != nil {
		return nil, err
	}

	graph := model.NewSymbolGraph()
	for _, syms := range fileSymbols {
		for _, s := range syms {
			graph.Symbols[s.ID] = s
			if s.IsExported {
				graph.Exports[s.Path] = append(graph.Exports[s.Path], s.ID)
			}
		}
	}
	for _, exps := range graph.Exports {
		sort.Strings(exps)
	}

	resolvedEdges := resolveImports(fileImportSpecs, discovered, opts.Root, logger)
	buildImportEdges(graph, fileSymbols, resolvedEdges)
	for id, deps := range graph.Imports {
		sort.Strings(deps)
		graph.Imports[id] = deps
	}

	return graph, nil
}

// importSpec is one raw import specifier string found in sourceFile,
// not yet resolved to a discovered file path.
type importSpec struct {
	sourceFile string
	specifier  string
}

func extractAll(ctx context.Context, fsys vfs.FileSystem, reg *langparse.Registry, files []string, numWorkers int) (map[string][]model.Symbol, map[string][]importSpec, error) {
	type fileResult struct {
		path    string
		symbols []model.Symbol
		imports []importSpec
		err     error
	}

	jobs := make(chan string)
	results := make(chan fileResult, len(files))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				syms, imps, err := extractFile(ctx, fsys, reg, path)
				results <- fileResult{path: path, symbols: syms, imports: imps, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, f := range files {
			jobs <- f
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	fileSymbols := make(map[string][]model.Symbol, len(files))
	fileImports := make(map[string][]importSpec, len(files))
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = &ParseError{File: res.path, Message: res.err.Error()}
			}
			continue
		}
		fileSymbols[res.path] = res.symbols
		fileImports[res.path] = res.imports
	}
	if firstErr != nil {
		return nil, nil, firstErr
	}
	return fileSymbols, fileImports, nil
}

func extractFile(ctx context.Context, fsys vfs.FileSystem, reg *langparse.Registry, path string) ([]model.Symbol, []importSpec, error) {
	source, err := fsys.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	tag, _ := langparse.LanguageTagForPath(path)
	cap, err := reg.Get(tag)
	if err != nil {
		return nil, nil, err
	}

	tree, err := cap.Parse(ctx, source)
	if err != nil {
		return nil, nil, err
	}
	defer tree.Close()

	symbols := extractSymbols(tree.RootNode(), source, path)
	imports := extractImportSpecs(tree.RootNode(), source, path)
	return symbols, imports, nil
}

// isTestPath is the test-path predicate shared by symbol extraction and
// the entry-point detector.
func isTestPath(path string) bool {
	norm := filepath.ToSlash(path)
	for _, marker := range []string{".test.", ".spec.", "__tests__", "/test/", "/tests/"} {
		if strings.Contains(norm, marker) {
			return true
		}
	}
	parts := strings.Split(norm, "/")
	if len(parts) > 0 && (parts[0] == "test" || parts[0] == "tests") {
		return true
	}
	return false
}

// isExported walks up from n to the tree root looking for an
// export_statement ancestor.
func isExported(n *sitter.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "export_statement" {
			return true
		}
	}
	return false
}
