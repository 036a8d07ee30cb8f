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

package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string, size int) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestDiscover_ExtensionAllowList(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.ts", 10)
	writeFile(t, root, "b.rb", 10)
	writeFile(t, root, "c.go", 10)

	w, err := New(Options{Root: root})
	require.NoError(t, err)
	files, err := w.Discover()
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.ElementsMatch(t, []string{"a.ts", "c.go"}, names)
}

func TestDiscover_SizeCapBoundary(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "exact.ts", MaxFileSize)
	writeFile(t, root, "over.ts", MaxFileSize+1)

	w, err := New(Options{Root: root})
	require.NoError(t, err)
	files, err := w.Discover()
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.ElementsMatch(t, []string{"exact.ts"}, names)
}

func TestDiscover_SkipsDotfilesAndDotDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".hidden.ts", 10)
	writeFile(t, root, ".hiddendir/x.ts", 10)
	writeFile(t, root, "visible.ts", 10)

	w, err := New(Options{Root: root})
	require.NoError(t, err)
	files, err := w.Discover()
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.ElementsMatch(t, []string{"visible.ts"}, names)
}

func TestDiscover_HonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep.ts", 10)
	writeFile(t, root, "build/out.ts", 10)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("build/\n"), 0o644))

	w, err := New(Options{Root: root})
	require.NoError(t, err)
	files, err := w.Discover()
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.ElementsMatch(t, []string{"keep.ts"}, names)
}

func TestDiscover_ExplicitExcludeGlob(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.ts", 10)
	writeFile(t, root, "src/a.test.ts", 10)

	w, err := New(Options{Root: root, ExcludePatterns: []string{"**/*.test.ts"}})
	require.NoError(t, err)
	files, err := w.Discover()
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.ElementsMatch(t, []string{"a.ts"}, names)
}

func TestDiscover_RejectsBadRoot(t *testing.T) {
	_, err := New(Options{Root: filepath.Join(t.TempDir(), "does-not-exist")})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDiscover_RejectsNonDirectoryRoot(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := New(Options{Root: file})
	require.ErrorIs(t, err, ErrNotADirectory)
}

func TestDiscover_RejectsInvalidPattern(t *testing.T) {
	root := t.TempDir()
	_, err := New(Options{Root: root, ExcludePatterns: []string{"[abc"}})
	require.Error(t, err)
	var ipe *InvalidPatternError
	assert.ErrorAs(t, err, &ipe)
}

func TestDiscover_EmptyRoot(t *testing.T) {
	root := t.TempDir()
	w, err := New(Options{Root: root})
	require.NoError(t, err)
	files, err := w.Discover()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestMatchesGlob_DoubleStarAndClasses(t *testing.T) {
	assert.True(t, matchesGlob("**/*.test.ts", "a/b/c.test.ts"))
	assert.True(t, matchesGlob("src/*.ts", "src/a.ts"))
	assert.False(t, matchesGlob("src/*.ts", "src/sub/a.ts"))
	assert.True(t, matchesGlob("src/file?.ts", "src/file1.ts"))
	assert.True(t, matchesGlob("src/[a-c].ts", "src/b.ts"))
	assert.False(t, matchesGlob("src/[!a-c].ts", "src/b.ts"))
}
