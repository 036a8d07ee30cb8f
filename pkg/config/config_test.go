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

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kraklabs/codeviz/pkg/discovery"
)

func TestNewAppliesDefaults(t *testing.T) {
	c := New("/repo")
	assert.Equal(t, "/repo", c.Root)
	assert.False(t, c.DisableCache)
	assert.Equal(t, "/repo/.code-viz/cache", c.ResolvedCacheDir())
	assert.Equal(t, int64(discovery.MaxFileSize), c.ResolvedMaxFileSize())
}

func TestNewAppliesOptions(t *testing.T) {
	c := New("/repo",
		WithExcludeGlobs("vendor/**", "*.gen.go"),
		WithCacheDir("/tmp/cache"),
		WithoutCache(),
		WithWorkers(4),
		WithMaxFileSize(1024),
	)
	assert.Equal(t, []string{"vendor/**", "*.gen.go"}, c.ExcludeGlobs)
	assert.Equal(t, "/tmp/cache", c.ResolvedCacheDir())
	assert.True(t, c.DisableCache)
	assert.Equal(t, 4, c.Workers())
	assert.Equal(t, int64(1024), c.ResolvedMaxFileSize())
}

func TestWorkersCapsAtEight(t *testing.T) {
	c := New("/repo")
	assert.LessOrEqual(t, c.Workers(), 8)
	assert.GreaterOrEqual(t, c.Workers(), 1)
}

func TestWorkersZeroOrNegativeUsesDefault(t *testing.T) {
	c := New("/repo", WithWorkers(0))
	assert.GreaterOrEqual(t, c.Workers(), 1)

	c = New("/repo", WithWorkers(-3))
	assert.GreaterOrEqual(t, c.Workers(), 1)
}
