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

// Package cache is the incremental cache layer: a bbolt-backed key/value
// store under <root>/.code-viz/cache holding a single CachedGraph under
// the key "symbol_graph", transparently reused when no discovered file's
// content hash has changed since the last run.
//
// The store is single-writer per process; concurrent processes on the
// same cache directory are not supported, and bbolt's file lock enforces
// that only best-effort.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/kraklabs/codeviz/pkg/model"
	"github.com/kraklabs/codeviz/pkg/vfs"
)

const (
	bucketName = "codeviz"
	graphKey   = "symbol_graph"

	// DefaultDirName is the default cache directory, relative to the
	// analyzed root.
	DefaultDirName = ".code-viz/cache"
	// DBFileName is the bbolt database file inside the cache directory.
	DBFileName = "cache.db"
)

// Store is the incremental cache. It owns an open bbolt database handle
// for the lifetime of one analysis invocation; callers must Close it.
type Store struct {
	db     *bolt.DB
	logger *slog.Logger
}

// Open bootstraps dir (creating it if absent) and opens the bbolt database
// inside it. An open failure is never fatal to an analysis run: callers
// log the returned error and proceed without persistence, treating the
// nil *Store like an always-stale cache.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create dir %s: %w", dir, err)
	}
	db, err := bolt.Open(filepath.Join(dir, DBFileName), 0o644, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", dir, err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load fetches the cached graph and reports whether it is fresh for the
// given file hashes. A missing or corrupt entry is reported as
// (nil, false, nil): corruption is never a fatal error, only a cache miss;
// the corrupt entry is also deleted so the next Save starts clean. A stale
// or version-mismatched entry is returned with fresh set to false.
func (s *Store) Load(currentHashes map[string]uint64) (*model.CachedGraph, bool, error) {
	if s == nil || s.db == nil {
		return nil, false, nil
	}

	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(graphKey)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("cache: read: %w", err)
	}
	if raw == nil {
		return nil, false, nil
	}

	var cached model.CachedGraph
	if err := json.Unmarshal(raw, &cached); err != nil {
		s.logger.Warn("cache.corrupt", "error", err)
		_ = s.clear()
		return nil, false, nil
	}

	if !s.isFresh(&cached, currentHashes) {
		return &cached, false, nil
	}
	return &cached, true, nil
}

// isFresh is the staleness predicate: schema version must match, and the
// cached and current file sets must agree path-for-path and hash-for-hash.
func (s *Store) isFresh(cached *model.CachedGraph, currentHashes map[string]uint64) bool {
	if cached.SchemaVersion != model.CurrentCacheSchemaVersion {
		return false
	}
	if len(cached.FileHashes) != len(currentHashes) {
		return false
	}
	for path, hash := range currentHashes {
		cachedHash, ok := cached.FileHashes[path]
		if !ok || cachedHash != hash {
			return false
		}
	}
	for path := range cached.FileHashes {
		if _, ok := currentHashes[path]; !ok {
			return false
		}
	}
	return true
}

// Save atomically replaces the single cache entry. bbolt's Update
// transaction is itself atomic (fsync on commit), so unlike a plain-file
// cache there is no separate temp-file-plus-rename dance: a crash mid-write
// leaves either the prior committed value or nothing.
func (s *Store) Save(graph *model.SymbolGraph, fileHashes map[string]uint64) error {
	if s == nil || s.db == nil {
		return errors.New("cache: store not open")
	}

	cached := model.CachedGraph{
		SchemaVersion: model.CurrentCacheSchemaVersion,
		CreatedAt:     model.Now(),
		Graph:         graph,
		FileHashes:    fileHashes,
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("cache: marshal: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		return b.Put([]byte(graphKey), data)
	})
}

// clear deletes the cache entry, used after detecting corruption.
func (s *Store) clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(graphKey))
	})
}

// HashFiles computes the mtime-derived content hash for every path in the
// current analysis set. Paths that fail to stat are left out, which reads
// as stale on the next freshness check.
func HashFiles(fsys vfs.FileSystem, paths []string) map[string]uint64 {
	hashes := make(map[string]uint64, len(paths))
	for _, p := range paths {
		info, err := fsys.Stat(p)
		if err != nil {
			continue
		}
		hashes[p] = HashModTime(info.ModTime)
	}
	return hashes
}
