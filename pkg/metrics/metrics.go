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

// Package metrics is the metrics extractor: it computes per-file size,
// line count (excluding comment-only and blank lines), and function count,
// then aggregates those into a repo-wide summary.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/kraklabs/codeviz/pkg/langparse"
	"github.com/kraklabs/codeviz/pkg/model"
	"github.com/kraklabs/codeviz/pkg/vfs"
)

// ParseError reports that a single file could not be parsed or measured;
// callers collect these and continue with the rest of the batch rather
// than aborting the whole run on one bad file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("metrics: %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExtractFile computes FileMetrics for a single discovered path. Language
// support is looked up from path's extension; a file whose extension maps to
// no language tag still yields metrics with Language "unknown", LOC computed
// by treating every non-blank line as code, and FunctionCount left at zero.
// A language tag with no registered Capability returns a *ParseError.
func ExtractFile(ctx context.Context, fs vfs.FileSystem, reg *langparse.Registry, path string) (model.FileMetrics, error) {
	source, err := fs.ReadFile(path)
	if err != nil {
		return model.FileMetrics{}, &ParseError{Path: path, Err: err}
	}

	// An unreadable mtime is not worth losing the file's metrics over.
	lastModified := time.Now()
	if info, err := fs.Stat(path); err == nil {
		lastModified = info.ModTime
	}

	tag, ok := langparse.LanguageTagForPath(path)
	if !ok {
		return model.FileMetrics{
			Path:         path,
			Language:     "unknown",
			LOC:          countLOC(source, nil),
			SizeBytes:    int64(len(source)),
			LastModified: model.NewTimestamp(lastModified),
		}, nil
	}

	cap, err := reg.Get(tag)
	if err != nil {
		return model.FileMetrics{}, &ParseError{Path: path, Err: err}
	}

	tree, err := cap.Parse(ctx, source)
	if err != nil {
		return model.FileMetrics{}, &ParseError{Path: path, Err: err}
	}
	defer tree.Close()

	ranges := cap.CommentRanges(tree, source)

	return model.FileMetrics{
		Path:          path,
		Language:      tag,
		LOC:           countLOC(source, ranges),
		SizeBytes:     int64(len(source)),
		FunctionCount: cap.CountFunctions(tree),
		LastModified:  model.NewTimestamp(lastModified),
	}, nil
}

// ExtractAll runs ExtractFile over paths using up to numWorkers concurrent
// goroutines, returning metrics for every file that parsed cleanly and a
// ParseError for every one that didn't. A file's failure never blocks the
// rest of the batch.
func ExtractAll(ctx context.Context, fsys vfs.FileSystem, reg *langparse.Registry, paths []string, numWorkers int) ([]model.FileMetrics, []error) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if numWorkers > len(paths) {
		numWorkers = len(paths)
	}
	if numWorkers == 0 {
		return nil, nil
	}

	jobs := make(chan string)
	type result struct {
		metrics model.FileMetrics
		err     error
	}
	results := make(chan result, len(paths))

	done := make(chan struct{})
	for w := 0; w < numWorkers; w++ {
		go func() {
			for path := range jobs {
				m, err := ExtractFile(ctx, fsys, reg, path)
				results <- result{metrics: m, err: err}
			}
			done <- struct{}{}
		}()
	}

	go func() {
		defer close(jobs)
		for _, p := range paths {
			select {
			case jobs <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		for w := 0; w < numWorkers; w++ {
			<-done
		}
		close(results)
	}()

	var files []model.FileMetrics
	var errs []error
	for res := range results {
		if res.err != nil {
			errs = append(errs, res.err)
			continue
		}
		files = append(files, res.metrics)
	}
	return files, errs
}
