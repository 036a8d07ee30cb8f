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

// Package langparse is the parser registry: given a normalized language
// tag, it returns a Capability that parses source into a concrete syntax
// tree and answers two node queries, function-like and comment.
package langparse

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Recognized language tags.
const (
	TagTypeScript = "typescript"
	TagTSX        = "tsx"
	TagJavaScript = "javascript"
	TagRust       = "rust"
	TagPython     = "python"
	TagGo         = "go"
	TagCPP        = "cpp"
)

// ErrUnsupportedLanguage is returned by Registry.Get for any tag outside
// the recognized set.
var ErrUnsupportedLanguage = errors.New("langparse: unsupported language")

// Range is a half-open-by-column source range expressed in 0-indexed rows
// and columns, matching tree-sitter's own point convention.
type Range struct {
	StartRow, StartCol uint32
	EndRow, EndCol     uint32
}

// Capability is the per-language parsing surface the rest of the engine
// depends on. Obtaining one is cheap; it is safe for concurrent use by
// multiple goroutines (each call borrows a thread-local parser internally).
type Capability interface {
	// LanguageTag returns this capability's normalized tag.
	LanguageTag() string
	// Parse parses source into a concrete syntax tree. It never aborts on
	// syntax error; the returned tree may contain error nodes.
	Parse(ctx context.Context, source []byte) (*sitter.Tree, error)
	// CountFunctions counts function-like definitions in tree per this
	// language's function-like node set.
	CountFunctions(tree *sitter.Tree) int
	// CommentRanges returns the ranges of every comment node in tree.
	CommentRanges(tree *sitter.Tree, source []byte) []Range
}

// Registry resolves a language tag to a Capability.
type Registry struct {
	mu   sync.Mutex
	caps map[string]Capability
}

// NewRegistry builds a registry with every recognized language wired in.
// The underlying tree-sitter Language value is process-wide and immutable
// after first use; build the registry once and share it across workers.
func NewRegistry() *Registry {
	r := &Registry{caps: make(map[string]Capability)}
	r.register(newJSFamilyCapability(TagTypeScript, typescript.GetLanguage()))
	r.register(newJSFamilyCapability(TagTSX, tsx.GetLanguage()))
	r.register(newJSFamilyCapability(TagJavaScript, javascript.GetLanguage()))
	r.register(newGenericCapability(TagRust, rust.GetLanguage(),
		map[string]bool{"function_item": true},
		map[string]bool{"line_comment": true, "block_comment": true}))
	r.register(newGenericCapability(TagPython, python.GetLanguage(),
		map[string]bool{"function_definition": true},
		map[string]bool{"comment": true}))
	r.register(newGenericCapability(TagGo, golang.GetLanguage(),
		map[string]bool{"function_declaration": true, "method_declaration": true, "func_literal": true},
		map[string]bool{"comment": true}))
	r.register(newGenericCapability(TagCPP, cpp.GetLanguage(),
		map[string]bool{"function_declaration": true, "function_definition": true},
		map[string]bool{"comment": true}))
	return r
}

func (r *Registry) register(c Capability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.caps[c.LanguageTag()] = c
}

// Get returns the Capability for tag, or ErrUnsupportedLanguage.
func (r *Registry) Get(tag string) (Capability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.caps[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, tag)
	}
	return c, nil
}

// extToTag maps a supported file extension to its normalized language tag.
var extToTag = map[string]string{
	".ts":  TagTypeScript,
	".tsx": TagTSX,
	".js":  TagJavaScript,
	".jsx": TagJavaScript,
	".rs":  TagRust,
	".py":  TagPython,
	".go":  TagGo,
	".cpp": TagCPP,
	".cc":  TagCPP,
	".cxx": TagCPP,
	".hpp": TagCPP,
	".h":   TagCPP,
}

// LanguageTagForPath normalizes path's extension into a recognized
// language tag. The ok result is false for unsupported extensions.
func LanguageTagForPath(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	tag, ok := extToTag[ext]
	return tag, ok
}
