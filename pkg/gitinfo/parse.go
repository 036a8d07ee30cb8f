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

package gitinfo

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
)

// parseHistoryOutput parses the unit-separator-delimited `git log` format
// GetHistory requests into CommitInfo values, one per line.
func parseHistoryOutput(out []byte) ([]CommitInfo, error) {
	var commits []CommitInfo
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, historyFieldSep)
		if len(fields) != 5 {
			continue
		}
		ts, err := parseUnixSeconds(fields[1])
		if err != nil {
			continue
		}
		commits = append(commits, CommitInfo{
			Hash:        fields[0],
			Timestamp:   ts,
			AuthorName:  fields[2],
			AuthorEmail: fields[3],
			Message:     fields[4],
		})
	}
	return commits, scanner.Err()
}

// parseBlameOutput parses `git blame --porcelain` output. Porcelain repeats
// full commit metadata only the first time a hash is seen; subsequent
// occurrences carry just the header line (hash, original line, final line,
// optional group-size). The known map caches metadata across the whole file so
// abbreviated headers still resolve to author/timestamp.
func parseBlameOutput(out []byte) ([]BlameLine, error) {
	type meta struct {
		author string
		ts     string
	}
	known := make(map[string]meta)

	var result []BlameLine
	var curHash string
	var curFinalLine int
	var curAuthor string
	var curTS string

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "\t"):
			ts, _ := parseUnixSeconds(curTS)
			result = append(result, BlameLine{
				Line:       curFinalLine,
				CommitHash: curHash,
				Author:     curAuthor,
				Timestamp:  ts,
				Content:    strings.TrimPrefix(line, "\t"),
			})
		case strings.HasPrefix(line, "author "):
			curAuthor = strings.TrimPrefix(line, "author ")
		case strings.HasPrefix(line, "author-time "):
			curTS = strings.TrimPrefix(line, "author-time ")
		case isBlameHeaderLine(line):
			parts := strings.Fields(line)
			curHash = parts[0]
			if len(parts) >= 3 {
				if n, err := strconv.Atoi(parts[2]); err == nil {
					curFinalLine = n
				}
			}
			if m, ok := known[curHash]; ok {
				curAuthor, curTS = m.author, m.ts
			}
		}

		if curHash != "" {
			known[curHash] = meta{author: curAuthor, ts: curTS}
		}
	}
	return result, scanner.Err()
}

// isBlameHeaderLine reports whether line starts a new blame hunk: a
// 40-character lowercase hex hash followed by at least two more fields
// (original and final line numbers); the fields are not checked to be numeric.
func isBlameHeaderLine(line string) bool {
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return false
	}
	hash := parts[0]
	if len(hash) != 40 {
		return false
	}
	for _, c := range hash {
		if !strings.ContainsRune("0123456789abcdef", c) {
			return false
		}
	}
	return true
}
