// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui renders codeviz's two text reports: the analysis summary and
// the dead-code report. All helpers write to an explicit io.Writer so the
// commands can be tested against a buffer, and colors respect --no-color
// and the NO_COLOR environment variable via the fatih/color globals.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	heading = color.New(color.Bold)
	dimmed  = color.New(color.Faint)
	count   = color.New(color.FgCyan)
	safe    = color.New(color.FgGreen)
	caution = color.New(color.FgYellow)
	risky   = color.New(color.FgRed)
)

// InitColors configures global color output based on the noColor flag.
// Call it once in main() after flag parsing; a set NO_COLOR environment
// variable disables colors regardless of the flag.
func InitColors(noColor bool) {
	color.NoColor = noColor || os.Getenv("NO_COLOR") != ""
}

// Title prints the report title in bold with an underline sized to it.
func Title(w io.Writer, text string) {
	_, _ = heading.Fprintln(w, text)
	fmt.Fprintln(w, strings.Repeat("=", len(text)))
}

// Section prints a bold section heading.
func Section(w io.Writer, text string) {
	_, _ = heading.Fprintln(w, text)
}

// Stat prints one "label: value" summary line with the value in cyan.
func Stat(w io.Writer, label string, value int) {
	fmt.Fprintf(w, "%s %s\n", heading.Sprint(label), count.Sprint(value))
}

// Path returns a file path dimmed, so symbol names stand out next to it.
func Path(p string) string {
	return dimmed.Sprint(p)
}

// Confidence renders a 0-100 deletion-confidence score, colored by how
// safe the deletion is: green at 80 and above, yellow at 50 and above,
// red below that.
func Confidence(score int) string {
	switch {
	case score >= 80:
		return safe.Sprintf("%d%%", score)
	case score >= 50:
		return caution.Sprintf("%d%%", score)
	default:
		return risky.Sprintf("%d%%", score)
	}
}

// Ratio renders a dead-code ratio in [0,1] as a percentage, colored the
// opposite way from Confidence: more dead code is worse.
func Ratio(r float64) string {
	pct := r * 100
	switch {
	case pct >= 20:
		return risky.Sprintf("%.1f%%", pct)
	case pct >= 5:
		return caution.Sprintf("%.1f%%", pct)
	default:
		return safe.Sprintf("%.1f%%", pct)
	}
}

// Okf prints a green confirmation line with a checkmark prefix.
func Okf(w io.Writer, format string, args ...any) {
	_, _ = safe.Fprintf(w, "✓ "+format+"\n", args...)
}

// Warnf prints a yellow warning line with a warning-sign prefix.
func Warnf(w io.Writer, format string, args ...any) {
	_, _ = caution.Fprintf(w, "⚠ "+format+"\n", args...)
}
