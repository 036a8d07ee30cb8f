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

package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"

	"github.com/kraklabs/codeviz/internal/appctx"
	codeerrors "github.com/kraklabs/codeviz/internal/errors"
	"github.com/kraklabs/codeviz/internal/ui"
	"github.com/kraklabs/codeviz/pkg/config"
	"github.com/kraklabs/codeviz/pkg/engine"
	"github.com/kraklabs/codeviz/pkg/gitinfo"
)

// sharedFlags are the options common to both analyze and deadcode.
type sharedFlags struct {
	jsonOutput bool
	noColor    bool
	quiet      bool
	noCache    bool
	workers    int
	exclude    stringSliceFlag
	root       string
}

// stringSliceFlag accumulates repeated --exclude flags.
type stringSliceFlag []string

func (s *stringSliceFlag) String() string { return strings.Join(*s, ",") }
func (s *stringSliceFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func parseSharedFlags(fs *flag.FlagSet, args []string) *sharedFlags {
	sf := &sharedFlags{}
	fs.BoolVar(&sf.jsonOutput, "json", false, "Emit machine-readable JSON instead of a text report")
	fs.BoolVar(&sf.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&sf.quiet, "quiet", false, "Suppress the progress bar")
	fs.BoolVar(&sf.noCache, "no-cache", false, "Disable the incremental symbol-graph cache")
	fs.IntVar(&sf.workers, "workers", 0, "Worker-pool size (default: NumCPU, capped at 8)")
	fs.Var(&sf.exclude, "exclude", "Exclude glob pattern relative to root (repeatable)")

	if err := fs.Parse(args); err != nil {
		os.Exit(codeerrors.ExitUserError)
	}

	root := "."
	if rest := fs.Args(); len(rest) > 0 {
		root = rest[0]
	}
	sf.root = root

	ui.InitColors(sf.noColor)
	return sf
}

// buildEngine wires a production engine.Engine for the resolved flags.
func (sf *sharedFlags) buildEngine() *engine.Engine {
	logLevel := slog.LevelWarn
	if sf.quiet {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	appCtx := appctx.NewLoggingContext(logger, appctx.Options{
		Interactive: !sf.quiet && !sf.jsonOutput,
		NoColor:     sf.noColor,
		AppDir:      sf.root,
	})

	cfg := config.New(sf.root,
		config.WithExcludeGlobs(sf.exclude...),
		config.WithWorkers(sf.workers),
	)
	if sf.noCache {
		cfg.DisableCache = true
	}

	return engine.New(cfg, engine.Options{
		Git:    gitinfo.NewCLIProvider(sf.root),
		Logger: logger,
		AppCtx: appCtx,
	})
}
