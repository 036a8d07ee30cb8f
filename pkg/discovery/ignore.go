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
	"bytes"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// ignoreLayer is one compiled .gitignore (or equivalent) scoped to baseDir;
// its patterns apply to paths relative to baseDir.
type ignoreLayer struct {
	baseDir string
	matcher *gitignore.GitIgnore
}

// ignoreSet accumulates ignoreLayers as the walker descends into root,
// honoring repo-wide and per-subtree .gitignore files, the user's global
// ignore file (core.excludesFile), and the repository-local
// .git/info/exclude.
type ignoreSet struct {
	root   string
	logger *slog.Logger
	layers []ignoreLayer
	loaded map[string]bool
}

func newIgnoreSet(root string, logger *slog.Logger) *ignoreSet {
	s := &ignoreSet{root: root, logger: logger, loaded: make(map[string]bool)}
	if globalPath := resolveGlobalExcludesFile(root); globalPath != "" && fileExists(globalPath) {
		s.compile(root, globalPath)
	}
	if excludePath := filepath.Join(root, ".git", "info", "exclude"); fileExists(excludePath) {
		s.compile(root, excludePath)
	}
	return s
}

// resolveGlobalExcludesFile locates git's user-level ignore file the same
// way git itself does: core.excludesFile if configured, else
// $XDG_CONFIG_HOME/git/ignore, else $HOME/.config/git/ignore. Returns ""
// only when no home directory can be determined; the returned path is not
// checked for existence. A missing git binary or an unset config key is
// treated as "no value", never an error.
func resolveGlobalExcludesFile(root string) string {
	cmd := exec.Command("git", "config", "--get", "core.excludesFile")
	cmd.Dir = root
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &bytes.Buffer{}
	if err := cmd.Run(); err == nil {
		if path := strings.TrimSpace(stdout.String()); path != "" {
			return expandHome(path)
		}
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "git", "ignore")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "git", "ignore")
	}
	return ""
}

// expandHome resolves a leading "~" the way git's own config parsing does.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// loadDir compiles dir's .gitignore, if present and not already loaded.
func (s *ignoreSet) loadDir(dir string) {
	if s.loaded[dir] {
		return
	}
	s.loaded[dir] = true

	giPath := filepath.Join(dir, ".gitignore")
	if fileExists(giPath) {
		s.compile(dir, giPath)
	}
}

func (s *ignoreSet) compile(baseDir, path string) {
	m, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		s.logger.Warn("discovery: cannot parse ignore file, skipping", "path", path, "error", err)
		return
	}
	s.layers = append(s.layers, ignoreLayer{baseDir: baseDir, matcher: m})
}

// matches reports whether path (a file or directory) is ignored by any
// applicable layer.
func (s *ignoreSet) matches(path string, isDir bool) bool {
	for _, layer := range s.layers {
		rel, err := filepath.Rel(layer.baseDir, path)
		if err != nil || rel == "." || len(rel) >= 2 && rel[0:2] == ".." {
			continue
		}
		rel = filepath.ToSlash(rel)
		if isDir {
			rel += "/"
		}
		if layer.matcher.MatchesPath(rel) {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
