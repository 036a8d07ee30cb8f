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

// genericCapability implements Capability for languages whose function-like
// node set is a flat set of node type names (Rust, Python, Go, C/C++):
// counting and comment-range extraction reduce to a type-membership walk.
type genericCapability struct {
	tag           string
	lang          *sitter.Language
	functionTypes map[string]bool
	commentTypes  map[string]bool
	pool          sync.Pool
}

func newGenericCapability(tag string, lang *sitter.Language, functionTypes, commentTypes map[string]bool) *genericCapability {
	c := &genericCapability{tag: tag, lang: lang, functionTypes: functionTypes, commentTypes: commentTypes}
	c.pool.New = func() any {
		p := sitter.NewParser()
		p.SetLanguage(c.lang)
		return p
	}
	return c
}

func (c *genericCapability) LanguageTag() string { return c.tag }

func (c *genericCapability) Parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	p := c.pool.Get().(*sitter.Parser)
	defer c.pool.Put(p)
	return p.ParseCtx(ctx, nil, source)
}

func (c *genericCapability) CountFunctions(tree *sitter.Tree) int {
	count := 0
	walkTypeMembership(tree.RootNode(), c.functionTypes, &count)
	return count
}

func (c *genericCapability) CommentRanges(tree *sitter.Tree, source []byte) []Range {
	var ranges []Range
	collectTypeMembership(tree.RootNode(), c.commentTypes, &ranges)
	return ranges
}

func walkTypeMembership(n *sitter.Node, types map[string]bool, count *int) {
	if n == nil {
		return
	}
	if types[n.Type()] {
		*count++
	}
	childCount := int(n.ChildCount())
	for i := 0; i < childCount; i++ {
		walkTypeMembership(n.Child(i), types, count)
	}
}

func collectTypeMembership(n *sitter.Node, types map[string]bool, ranges *[]Range) {
	if n == nil {
		return
	}
	if types[n.Type()] {
		*ranges = append(*ranges, nodeRange(n))
	}
	childCount := int(n.ChildCount())
	for i := 0; i < childCount; i++ {
		collectTypeMembership(n.Child(i), types, ranges)
	}
}

func nodeRange(n *sitter.Node) Range {
	start := n.StartPoint()
	end := n.EndPoint()
	return Range{StartRow: start.Row, StartCol: start.Column, EndRow: end.Row, EndCol: end.Column}
}
