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

package symgraph

import (
	"log/slog"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kraklabs/codeviz/pkg/model"
)

// jsResolvableExtensions is the extension-probe order for Pass 2 step 4.
var jsResolvableExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// extractImportSpecs collects the raw specifier string of every
// import_statement in root.
func extractImportSpecs(root *sitter.Node, source []byte, path string) []importSpec {
	var specs []importSpec
	walkImportStatements(root, source, path, &specs)
	return specs
}

func walkImportStatements(n *sitter.Node, source []byte, path string, out *[]importSpec) {
	if n == nil {
		return
	}
	if n.Type() == "import_statement" {
		if src := n.ChildByFieldName("source"); src != nil {
			*out = append(*out, importSpec{sourceFile: path, specifier: unquote(src.Content(source))})
		}
	}
	childCount := int(n.ChildCount())
	for i := 0; i < childCount; i++ {
		walkImportStatements(n.Child(i), source, path, out)
	}
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '`' && last == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// resolveImports maps each importSpec to the discovered file it resolves
// to, dropping (and logging) anything it cannot resolve. Returns, per
// source file, the list of target files it successfully imports.
func resolveImports(fileImportSpecs map[string][]importSpec, discovered map[string]bool, root string, logger *slog.Logger) map[string][]string {
	resolved := make(map[string][]string, len(fileImportSpecs))
	for file, specs := range fileImportSpecs {
		for _, spec := range specs {
			if !isPathQualified(spec.specifier) {
				continue // bare-module import, never resolved
			}
			target, ok := resolveOne(spec, discovered, root)
			if !ok {
				logger.Debug("symgraph.import.unresolved", "file", file, "specifier", spec.specifier)
				continue
			}
			resolved[file] = append(resolved[file], target)
		}
	}
	return resolved
}

func isPathQualified(specifier string) bool {
	for _, prefix := range []string{".", "/", "@/", "~/"} {
		if strings.HasPrefix(specifier, prefix) {
			return true
		}
	}
	return false
}

// resolveOne resolves a single import specifier against the discovered
// file set: alias prefixes are root-relative, dot paths are
// importer-relative; the literal path is probed first, then each
// extension, then each index.* file inside the path.
func resolveOne(spec importSpec, discovered map[string]bool, root string) (string, bool) {
	raw := spec.specifier

	var base string
	switch {
	case strings.HasPrefix(raw, "@/"):
		base = filepath.ToSlash(filepath.Join(root, strings.TrimPrefix(raw, "@/")))
	case strings.HasPrefix(raw, "~/"):
		base = filepath.ToSlash(filepath.Join(root, strings.TrimPrefix(raw, "~/")))
	case strings.HasPrefix(raw, "."):
		base = filepath.ToSlash(filepath.Join(filepath.Dir(spec.sourceFile), raw))
	case strings.HasPrefix(raw, "/"):
		base = filepath.ToSlash(filepath.Join(root, raw))
	default:
		// Unreachable: isPathQualified already filtered bare-module imports.
		return "", false
	}

	if discovered[base] {
		return base, true
	}
	for _, ext := range jsResolvableExtensions {
		if candidate := base + ext; discovered[candidate] {
			return candidate, true
		}
	}
	for _, ext := range jsResolvableExtensions {
		if candidate := filepath.ToSlash(filepath.Join(base, "index"+ext)); discovered[candidate] {
			return candidate, true
		}
	}
	return "", false
}

// buildImportEdges: for every resolved import from file F to file G,
// every symbol in F gains every exported symbol id of G in its imports
// list. Conservative over-approximation: it overestimates reachability
// rather than tracking which import binding is used where.
func buildImportEdges(graph *model.SymbolGraph, fileSymbols map[string][]model.Symbol, resolvedTargets map[string][]string) {
	for file, targets := range resolvedTargets {
		symbolsInFile := fileSymbols[file]
		if len(symbolsInFile) == 0 {
			continue
		}
		var deps []string
		seen := make(map[string]bool)
		for _, target := range targets {
			for _, e := range graph.Exports[target] {
				if !seen[e] {
					seen[e] = true
					deps = append(deps, e)
				}
			}
		}
		if len(deps) == 0 {
			continue
		}
		for _, s := range symbolsInFile {
			graph.Imports[s.ID] = append(graph.Imports[s.ID], deps...)
		}
	}
}
