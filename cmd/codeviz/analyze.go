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
	"flag"
	"fmt"
	"io"
	"os"

	codeerrors "github.com/kraklabs/codeviz/internal/errors"
	"github.com/kraklabs/codeviz/internal/output"
	"github.com/kraklabs/codeviz/internal/ui"
	"github.com/kraklabs/codeviz/pkg/model"
)

// runAnalyze executes the 'analyze' CLI command: per-file size/shape
// metrics and a summary roll-up.
func runAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: codeviz analyze [options] [root]

Prints per-file size/shape metrics (lines of code, function count, size)
and a repo-wide summary for the files under root (default: ".").

Options:
`)
		fs.PrintDefaults()
	}
	maxLOC := fs.Int("max-loc", 0, "Fail (exit 3) if total lines of code exceed this ceiling")
	sf := parseSharedFlags(fs, args)

	eng := sf.buildEngine()
	result, err := eng.Analyze(context.Background())
	if err != nil {
		ue := codeerrors.NewAnalysisError("Analysis failed", err.Error(),
			"Check that the root path exists and is readable", err)
		codeerrors.FatalError(ue, sf.jsonOutput)
	}

	if *maxLOC > 0 && result.Summary.TotalLOC > *maxLOC {
		ue := codeerrors.NewThresholdError("LOC ceiling exceeded",
			fmt.Sprintf("total lines of code %d exceed the requested ceiling %d", result.Summary.TotalLOC, *maxLOC),
			"Raise --max-loc or reduce the analyzed tree")
		codeerrors.FatalError(ue, sf.jsonOutput)
	}

	if sf.jsonOutput {
		if err := output.Write(result); err != nil {
			codeerrors.FatalError(err, true)
		}
		return
	}
	printAnalysisReport(os.Stdout, result)
}

func printAnalysisReport(w io.Writer, result *model.AnalysisResult) {
	ui.Title(w, "codeviz Analysis Summary")
	ui.Stat(w, "Files:", result.Summary.TotalFiles)
	ui.Stat(w, "Lines of code:", result.Summary.TotalLOC)
	ui.Stat(w, "Functions:", result.Summary.TotalFunctions)

	if len(result.Summary.LargestFiles) > 0 {
		fmt.Fprintln(w)
		ui.Section(w, "Largest files:")
		for _, path := range result.Summary.LargestFiles {
			fmt.Fprintf(w, "  %s\n", ui.Path(path))
		}
	}
}
