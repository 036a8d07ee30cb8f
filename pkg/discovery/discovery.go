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

// Package discovery walks a repository root and returns the sorted list of
// candidate source files: ignore-aware, extension-gated, size-capped.
//
// Three filter layers apply, in order: the project's own gitignore files
// (per-directory, global, and .git/info/exclude), the caller's exclude
// globs, and the fixed extension/size gate.
package discovery

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MaxFileSize is the per-file size cap; files larger than this are skipped
// with a warning. A file exactly at this size is included.
const MaxFileSize = 10 * 1024 * 1024 // 10 MiB

// supportedExtensions is the fixed allow-list of source extensions the
// engine understands.
var supportedExtensions = map[string]bool{
	".ts": true, ".tsx": true, ".js": true, ".jsx": true,
	".rs": true, ".py": true, ".go": true,
	".cpp": true, ".cc": true, ".cxx": true, ".hpp": true, ".h": true,
}

// ErrNotFound indicates the root directory does not exist.
var ErrNotFound = errors.New("discovery: root not found")

// ErrNotADirectory indicates the root exists but is not a directory.
var ErrNotADirectory = errors.New("discovery: root is not a directory")

// InvalidPatternError wraps a malformed exclude glob pattern.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("discovery: invalid exclude pattern %q: %v", e.Pattern, e.Err)
}
func (e *InvalidPatternError) Unwrap() error { return e.Err }

// Options configures a Walker.
type Options struct {
	// Root is the directory to scan.
	Root string
	// ExcludePatterns are glob patterns relative to Root, in addition to
	// whatever the project's VCS ignore files already exclude.
	ExcludePatterns []string
	// Logger receives per-entry warnings (never fatal).
	Logger *slog.Logger
	// MaxFileSize overrides the package's MaxFileSize cap. Zero or
	// negative means use the default.
	MaxFileSize int64
}

// Walker enumerates candidate source files under a root.
type Walker struct {
	root        string
	excludes    []string
	logger      *slog.Logger
	maxFileSize int64
}

// New validates opts and returns a ready Walker.
func New(opts Options) (*Walker, error) {
	info, err := os.Stat(opts.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, opts.Root)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, opts.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, opts.Root)
	}

	for _, p := range opts.ExcludePatterns {
		if err := validateGlob(p); err != nil {
			return nil, &InvalidPatternError{Pattern: p, Err: err}
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	absRoot, err := filepath.Abs(opts.Root)
	if err != nil {
		absRoot = opts.Root
	}

	maxSize := int64(MaxFileSize)
	if opts.MaxFileSize > 0 {
		maxSize = opts.MaxFileSize
	}

	return &Walker{root: absRoot, excludes: opts.ExcludePatterns, logger: logger, maxFileSize: maxSize}, nil
}

// Discover returns the sorted list of absolute paths to candidate source
// files under the root.
func (w *Walker) Discover() ([]string, error) {
	ignores := newIgnoreSet(w.root, w.logger)

	var results []string

	var walk func(dir string) error
	walk = func(dir string) error {
		ignores.loadDir(dir)

		entries, err := os.ReadDir(dir)
		if err != nil {
			w.logger.Warn("discovery: cannot read directory, skipping", "path", dir, "error", err)
			return nil
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

		for _, entry := range entries {
			name := entry.Name()
			path := filepath.Join(dir, name)

			if strings.HasPrefix(name, ".") {
				continue
			}

			if entry.IsDir() {
				if ignores.matches(path, true) {
					continue
				}
				if err := walk(path); err != nil {
					return err
				}
				continue
			}

			if ignores.matches(path, false) {
				continue
			}
			if w.isExcludedByPattern(path) {
				continue
			}

			info, err := entry.Info()
			if err != nil {
				w.logger.Warn("discovery: cannot stat file, skipping", "path", path, "error", err)
				continue
			}

			ext := strings.ToLower(filepath.Ext(name))
			if !supportedExtensions[ext] {
				continue
			}

			if info.Size() > w.maxFileSize {
				w.logger.Warn("discovery: file exceeds size cap, skipping", "path", path, "size", info.Size())
				continue
			}

			results = append(results, path)
		}
		return nil
	}

	if err := walk(w.root); err != nil {
		return nil, err
	}

	sort.Strings(results)
	return results, nil
}

// isExcludedByPattern checks path (relative to root) against the
// user-supplied exclude globs.
func (w *Walker) isExcludedByPattern(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.excludes {
		if matchesGlob(pattern, rel) {
			return true
		}
	}
	return false
}
