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

// Package config holds the orchestrator's tunables: the repository root,
// exclude patterns, cache directory, worker count, and size cap. File-based
// configuration loading belongs to the front-end adapters; this package is
// just the plain struct the engine receives its parameters through.
package config

import (
	"path/filepath"
	"runtime"

	"github.com/kraklabs/codeviz/pkg/discovery"
)

// Config configures one analysis run of pkg/engine.
type Config struct {
	// Root is the repository directory to analyze.
	Root string
	// ExcludeGlobs are additional exclude patterns, relative to Root, on
	// top of whatever the project's VCS ignore files already exclude.
	ExcludeGlobs []string
	// CacheDir overrides the default <root>/.code-viz/cache cache
	// location. Empty means use the default.
	CacheDir string
	// DisableCache skips the incremental cache entirely, always rebuilding
	// the symbol graph from scratch.
	DisableCache bool
	// NumWorkers bounds the parallelism of the per-file passes. Zero or
	// negative means use runtime.NumCPU(), capped at maxWorkers.
	NumWorkers int
	// MaxFileSize overrides discovery.MaxFileSize. Zero means use the
	// default of 10 MiB.
	MaxFileSize int64
}

// maxWorkers bounds worker-pool size regardless of core count; past this
// the passes are I/O-bound and extra workers just add contention.
const maxWorkers = 8

// Option customizes a Config built by New.
type Option func(*Config)

// WithExcludeGlobs sets additional exclude patterns.
func WithExcludeGlobs(globs ...string) Option {
	return func(c *Config) { c.ExcludeGlobs = globs }
}

// WithCacheDir overrides the cache directory.
func WithCacheDir(dir string) Option {
	return func(c *Config) { c.CacheDir = dir }
}

// WithoutCache disables the incremental cache.
func WithoutCache() Option {
	return func(c *Config) { c.DisableCache = true }
}

// WithWorkers overrides the worker-pool size.
func WithWorkers(n int) Option {
	return func(c *Config) { c.NumWorkers = n }
}

// WithMaxFileSize overrides the per-file size cap.
func WithMaxFileSize(bytes int64) Option {
	return func(c *Config) { c.MaxFileSize = bytes }
}

// New builds a Config for root with sensible defaults, applying opts in
// order.
func New(root string, opts ...Option) Config {
	c := Config{Root: root}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Workers resolves NumWorkers to a concrete worker count.
func (c Config) Workers() int {
	if c.NumWorkers > 0 {
		return c.NumWorkers
	}
	n := runtime.NumCPU()
	if n > maxWorkers {
		n = maxWorkers
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ResolvedCacheDir returns the effective cache directory, defaulting to
// <root>/.code-viz/cache.
func (c Config) ResolvedCacheDir() string {
	if c.CacheDir != "" {
		return c.CacheDir
	}
	return filepath.Join(c.Root, ".code-viz", "cache")
}

// ResolvedMaxFileSize returns the effective per-file size cap.
func (c Config) ResolvedMaxFileSize() int64 {
	if c.MaxFileSize > 0 {
		return c.MaxFileSize
	}
	return discovery.MaxFileSize
}
