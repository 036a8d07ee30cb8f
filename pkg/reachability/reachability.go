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

// Package reachability marks every symbol transitively visitable via a
// SymbolGraph's imports edges from a seed set.
//
// Symbol edges form arbitrary digraphs, including cycles from mutually
// importing modules. Traversal uses an explicit stack and a visited set
// checked before push, never recursion, so circular imports terminate
// without a visited-twice blowup.
package reachability

import "github.com/kraklabs/codeviz/pkg/model"

// Analyze returns the set of symbol ids reachable from seeds via graph's
// imports edges, seeds included. An empty seeds set with a non-empty graph
// is the caller's concern (entrypoints.ErrNoEntryPoints is raised there);
// Analyze itself just returns an empty set for an empty seeds input.
func Analyze(graph *model.SymbolGraph, seeds map[string]bool) map[string]bool {
	visited := make(map[string]bool, len(seeds))
	stack := make([]string, 0, len(seeds))

	for id := range seeds {
		if _, ok := graph.Symbols[id]; !ok {
			continue
		}
		if !visited[id] {
			visited[id] = true
			stack = append(stack, id)
		}
	}

	for len(stack) > 0 {
		n := len(stack) - 1
		id := stack[n]
		stack = stack[:n]

		for _, dep := range graph.Imports[id] {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			stack = append(stack, dep)
		}
	}

	return visited
}

// Dead returns every symbol in graph not present in reachable.
func Dead(graph *model.SymbolGraph, reachable map[string]bool) []model.Symbol {
	var dead []model.Symbol
	for id, s := range graph.Symbols {
		if !reachable[id] {
			dead = append(dead, s)
		}
	}
	return dead
}
