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
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	codeerrors "github.com/kraklabs/codeviz/internal/errors"
	"github.com/kraklabs/codeviz/internal/output"
	"github.com/kraklabs/codeviz/internal/ui"
	"github.com/kraklabs/codeviz/pkg/entrypoints"
	"github.com/kraklabs/codeviz/pkg/model"
)

// runDeadCode executes the 'deadcode' CLI command: unreachable symbols with
// deletion-confidence scores.
func runDeadCode(args []string) {
	fs := flag.NewFlagSet("deadcode", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: codeviz deadcode [options] [root]

Prints symbols unreachable from any entry point, each with a
deletion-confidence score from 0 to 100, for the files under root
(default: ".").

Options:
`)
		fs.PrintDefaults()
	}
	maxRatio := fs.Float64("max-ratio", 0, "Fail (exit 3) if the dead-code ratio exceeds this ceiling (0..1)")
	sf := parseSharedFlags(fs, args)

	eng := sf.buildEngine()
	result, err := eng.AnalyzeDeadCode(context.Background())
	if err != nil {
		if errors.Is(err, entrypoints.ErrNoEntryPoints) {
			ue := codeerrors.NewDeadCodeError("No entry points found",
				"The symbol graph is non-empty but no main(), exported index/main file, or test symbol qualifies as an entry point",
				"Ensure the root contains a recognizable entry file (main.ts, index.ts, ...) or pass a narrower root",
				err)
			codeerrors.FatalError(ue, sf.jsonOutput)
		}
		ue := codeerrors.NewDeadCodeError("Dead-code analysis failed", err.Error(),
			"Check that the root path exists and is readable", err)
		codeerrors.FatalError(ue, sf.jsonOutput)
	}

	if *maxRatio > 0 && result.Summary.DeadCodeRatio > *maxRatio {
		ue := codeerrors.NewThresholdError("Dead-code ratio ceiling exceeded",
			fmt.Sprintf("dead-code ratio %.3f exceeds the requested ceiling %.3f", result.Summary.DeadCodeRatio, *maxRatio),
			"Raise --max-ratio or delete the reported symbols")
		codeerrors.FatalError(ue, sf.jsonOutput)
	}

	if sf.jsonOutput {
		if err := output.Write(result); err != nil {
			codeerrors.FatalError(err, true)
		}
		return
	}
	printDeadCodeReport(os.Stdout, result)
}

func printDeadCodeReport(w io.Writer, result *model.DeadCodeResult) {
	ui.Title(w, "codeviz Dead-Code Report")
	ui.Stat(w, "Files scanned:", result.Summary.TotalFiles)
	ui.Stat(w, "Files with dead code:", result.Summary.FilesWithDeadCode)
	ui.Stat(w, "Dead functions:", result.Summary.DeadFunctions)
	ui.Stat(w, "Dead classes:", result.Summary.DeadClasses)
	ui.Stat(w, "Dead LOC:", result.Summary.TotalDeadLOC)
	fmt.Fprintf(w, "Dead-code ratio: %s\n", ui.Ratio(result.Summary.DeadCodeRatio))

	if len(result.Files) == 0 {
		fmt.Fprintln(w)
		ui.Okf(w, "No dead code found")
		return
	}

	for _, f := range result.Files {
		fmt.Fprintln(w)
		ui.Section(w, f.Path)
		for _, d := range f.DeadCode {
			fmt.Fprintf(w, "  %s:%d-%d %s (%s) %s\n",
				ui.Path(f.Path), d.LineStart, d.LineEnd, d.Name, d.Kind,
				ui.Confidence(d.Confidence))
		}
	}
}
