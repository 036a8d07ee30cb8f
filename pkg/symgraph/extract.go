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
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kraklabs/codeviz/pkg/model"
)

// extractSymbols walks root and returns one model.Symbol per matched
// function-like/class/method/arrow node. Anonymous definitions (empty
// resolved name) are dropped.
func extractSymbols(root *sitter.Node, source []byte, path string) []model.Symbol {
	var symbols []model.Symbol
	walkSymbolNodes(root, source, path, &symbols)
	return symbols
}

func walkSymbolNodes(n *sitter.Node, source []byte, path string, out *[]model.Symbol) {
	if n == nil {
		return
	}

	if sym, ok := symbolFor(n, source, path); ok {
		*out = append(*out, sym)
	}

	childCount := int(n.ChildCount())
	for i := 0; i < childCount; i++ {
		walkSymbolNodes(n.Child(i), source, path, out)
	}
}

func symbolFor(n *sitter.Node, source []byte, path string) (model.Symbol, bool) {
	var name string
	var kind model.SymbolKind

	switch n.Type() {
	case "function_declaration":
		kind = model.KindFunction
		name = identText(n.ChildByFieldName("name"), source)
	case "class_declaration":
		kind = model.KindClass
		name = identText(n.ChildByFieldName("name"), source)
	case "method_definition":
		kind = model.KindMethod
		name = identText(n.ChildByFieldName("name"), source)
	case "variable_declarator":
		value := n.ChildByFieldName("value")
		if value == nil || value.Type() != "arrow_function" {
			return model.Symbol{}, false
		}
		kind = model.KindArrowFunction
		name = identText(n.ChildByFieldName("name"), source)
	default:
		return model.Symbol{}, false
	}

	if name == "" {
		return model.Symbol{}, false
	}

	lineStart := int(n.StartPoint().Row) + 1
	lineEnd := int(n.EndPoint().Row) + 1

	return model.Symbol{
		ID:         symbolID(path, lineStart, name),
		Name:       name,
		Kind:       kind,
		Path:       path,
		LineStart:  lineStart,
		LineEnd:    lineEnd,
		IsExported: isExported(n),
		IsTest:     isTestPath(path),
	}, true
}

func identText(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return n.Content(source)
}

func symbolID(path string, lineStart int, name string) string {
	return path + ":" + strconv.Itoa(lineStart) + ":" + name
}
