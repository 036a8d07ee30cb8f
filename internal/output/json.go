// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package output encodes analysis results as JSON for --json mode. The
// wire shape itself lives in pkg/model's struct tags; this package only
// owns how the bytes reach the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteTo encodes v as 2-space-indented JSON to w, the format every
// codeviz front-end consumes.
func WriteTo(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}

// Write encodes v to stdout.
func Write(v any) error {
	return WriteTo(os.Stdout, v)
}
