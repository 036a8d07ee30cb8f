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

package langparse

import (
	"context"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// jsFamilyCapability implements Capability for TypeScript, TSX, and
// JavaScript/JSX. Their function-like node set isn't a flat type list: an
// arrow function only counts when it initializes a variable/lexical
// declarator, so counting needs the same structural check pkg/symgraph
// performs when assigning kinds.
type jsFamilyCapability struct {
	tag  string
	lang *sitter.Language
	pool sync.Pool
}

func newJSFamilyCapability(tag string, lang *sitter.Language) *jsFamilyCapability {
	c := &jsFamilyCapability{tag: tag, lang: lang}
	c.pool.New = func() any {
		p := sitter.NewParser()
		p.SetLanguage(c.lang)
		return p
	}
	return c
}

func (c *jsFamilyCapability) LanguageTag() string { return c.tag }

func (c *jsFamilyCapability) Parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	p := c.pool.Get().(*sitter.Parser)
	defer c.pool.Put(p)
	return p.ParseCtx(ctx, nil, source)
}

func (c *jsFamilyCapability) CountFunctions(tree *sitter.Tree) int {
	count := 0
	walkJSFunctionLike(tree.RootNode(), func(*sitter.Node) { count++ })
	return count
}

func (c *jsFamilyCapability) CommentRanges(tree *sitter.Tree, source []byte) []Range {
	types := map[string]bool{"comment": true}
	var ranges []Range
	collectTypeMembership(tree.RootNode(), types, &ranges)
	return ranges
}

// walkJSFunctionLike visits every function_declaration, arrow-initialized
// variable_declarator, class_declaration, and method_definition node,
// invoking visit for each match. CountFunctions uses it; pkg/symgraph's
// Pass 1 extraction applies the same node checks in its own traversal.
func walkJSFunctionLike(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}

	switch n.Type() {
	case "function_declaration", "class_declaration", "method_definition":
		visit(n)
	case "variable_declarator":
		if isArrowInitialized(n) {
			visit(n)
		}
	}

	childCount := int(n.ChildCount())
	for i := 0; i < childCount; i++ {
		walkJSFunctionLike(n.Child(i), visit)
	}
}

// isArrowInitialized reports whether a variable_declarator's value is an
// arrow_function.
func isArrowInitialized(declarator *sitter.Node) bool {
	value := declarator.ChildByFieldName("value")
	return value != nil && value.Type() == "arrow_function"
}
