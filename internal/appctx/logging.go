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

package appctx

import (
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// barResolution is the step count the fractional progress reports map onto.
// The orchestrator reports fractions, not item counts, so the bar's "total"
// is an arbitrary resolution rather than a number of files.
const barResolution = 1000

// LoggingContext is the production AppContext. Events go to a shared
// slog.Logger; progress drives a terminal bar on stderr when one was
// requested and stderr is actually an interactive terminal.
type LoggingContext struct {
	logger *slog.Logger
	bar    *progressbar.ProgressBar
	appDir string
}

var _ AppContext = (*LoggingContext)(nil)

// Options configures NewLoggingContext. The zero value means: no progress
// bar, default logger, empty app directory.
type Options struct {
	// Interactive requests a progress bar. The bar is still suppressed when
	// stderr is not a TTY (piped or redirected output).
	Interactive bool
	// NoColor disables ANSI color codes in the bar.
	NoColor bool
	// AppDir is the writable directory reported by AppDir.
	AppDir string
}

// NewLoggingContext builds a production AppContext.
func NewLoggingContext(logger *slog.Logger, opts Options) *LoggingContext {
	if logger == nil {
		logger = slog.Default()
	}

	var bar *progressbar.ProgressBar
	if opts.Interactive && isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(barResolution,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("analyzing"),
			// Fractions jump between fixed milestones; a time estimate over
			// them would be noise.
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionEnableColorCodes(!opts.NoColor),
			progressbar.OptionThrottle(100*time.Millisecond),
		)
	}

	return &LoggingContext{logger: logger, bar: bar, appDir: opts.AppDir}
}

// EmitEvent logs a structured event at info level.
func (c *LoggingContext) EmitEvent(name string, payload map[string]any) {
	args := make([]any, 0, len(payload)*2)
	for k, v := range payload {
		args = append(args, k, v)
	}
	c.logger.Info(name, args...)
}

// ReportProgress advances the bar, if any, and logs at debug level.
func (c *LoggingContext) ReportProgress(fraction float64, message string) {
	c.logger.Debug("progress", "fraction", fraction, "message", message)
	if c.bar == nil {
		return
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	_ = c.bar.Set(int(fraction * barResolution))
	c.bar.Describe(message)
}

// AppDir returns the configured application directory.
func (c *LoggingContext) AppDir() string {
	return c.appDir
}
