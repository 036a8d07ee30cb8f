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

import "sync"

// ProgressCall records one ReportProgress invocation.
type ProgressCall struct {
	Fraction float64
	Message  string
}

// EventCall records one EmitEvent invocation.
type EventCall struct {
	Name    string
	Payload map[string]any
}

// RecordingContext is an AppContext that records every call for test
// assertions instead of touching a real terminal or host.
type RecordingContext struct {
	mu       sync.Mutex
	Events   []EventCall
	Progress []ProgressCall
	appDir   string
}

var _ AppContext = (*RecordingContext)(nil)

// NewRecordingContext returns an AppContext suitable for tests.
func NewRecordingContext(appDir string) *RecordingContext {
	return &RecordingContext{appDir: appDir}
}

// EmitEvent records the event.
func (r *RecordingContext) EmitEvent(name string, payload map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, EventCall{Name: name, Payload: payload})
}

// ReportProgress records the progress report.
func (r *RecordingContext) ReportProgress(fraction float64, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Progress = append(r.Progress, ProgressCall{Fraction: fraction, Message: message})
}

// AppDir returns the configured test application directory.
func (r *RecordingContext) AppDir() string {
	return r.appDir
}
