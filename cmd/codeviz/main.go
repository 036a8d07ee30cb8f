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

// Package main implements the codeviz CLI, a thin front-end over the
// analysis engine.
//
// Usage:
//
//	codeviz analyze [root]      Print size/shape metrics for a repository
//	codeviz deadcode [root]     Print the dead-code report for a repository
//
// The CLI is a thin adapter: flag parsing, color, and the choice of whether
// to show a progress bar live here (the bar itself is built by
// internal/appctx); everything of substance lives in pkg/engine and below.
package main

import (
	"flag"
	"fmt"
	"os"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `codeviz - multi-language source analysis

Usage:
  codeviz <command> [options] [root]

Commands:
  analyze       Print per-file size/shape metrics and a summary
  deadcode      Print the dead-code report with deletion-confidence scores

Global Options:
  --version     Show version and exit

Examples:
  codeviz analyze .
  codeviz analyze --json .
  codeviz deadcode --no-cache .

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("codeviz version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "analyze":
		runAnalyze(cmdArgs)
	case "deadcode":
		runDeadCode(cmdArgs)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(2)
	}
}
