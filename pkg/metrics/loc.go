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

package metrics

import (
	"strings"

	"github.com/kraklabs/codeviz/pkg/langparse"
)

// interval is a half-open byte-column range [start, end) covered by a
// comment on one source line.
type interval struct {
	start, end int
}

// countLOC returns the number of lines in source with at least one
// non-whitespace byte that falls outside every comment range.
//
// A comment spanning rows consumes all columns on intermediate rows; on
// the end row, coverage is half-open so that "end */ code" on the same
// row still counts "code" as live source.
func countLOC(source []byte, commentRanges []langparse.Range) int {
	lines := strings.Split(string(source), "\n")
	covered := make([][]interval, len(lines))

	for _, r := range commentRanges {
		addCoverage(covered, lines, r)
	}

	loc := 0
	for i, line := range lines {
		if lineHasLiveCode(line, covered[i]) {
			loc++
		}
	}
	return loc
}

func addCoverage(covered [][]interval, lines []string, r langparse.Range) {
	startRow, endRow := int(r.StartRow), int(r.EndRow)
	if startRow < 0 || startRow >= len(lines) {
		return
	}

	if startRow == endRow {
		covered[startRow] = append(covered[startRow], interval{int(r.StartCol), int(r.EndCol)})
		return
	}

	covered[startRow] = append(covered[startRow], interval{int(r.StartCol), len(lines[startRow])})
	for row := startRow + 1; row < endRow && row < len(lines); row++ {
		covered[row] = append(covered[row], interval{0, len(lines[row])})
	}
	if endRow >= 0 && endRow < len(lines) {
		covered[endRow] = append(covered[endRow], interval{0, int(r.EndCol)})
	}
}

func lineHasLiveCode(line string, intervals []interval) bool {
	for col := 0; col < len(line); col++ {
		switch line[col] {
		case ' ', '\t', '\r', '\v', '\f':
			continue
		}
		if !isCovered(intervals, col) {
			return true
		}
	}
	return false
}

func isCovered(intervals []interval, col int) bool {
	for _, iv := range intervals {
		if col >= iv.start && col < iv.end {
			return true
		}
	}
	return false
}
