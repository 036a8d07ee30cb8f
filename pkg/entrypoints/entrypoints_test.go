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

package entrypoints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/codeviz/pkg/model"
)

func graphWith(symbols ...model.Symbol) *model.SymbolGraph {
	g := model.NewSymbolGraph()
	for _, s := range symbols {
		g.Symbols[s.ID] = s
	}
	return g
}

func TestDetect_MainByName(t *testing.T) {
	g := graphWith(model.Symbol{ID: "a:1:main", Name: "main", Path: "a.ts"})
	seeds, err := Detect(g)
	require.NoError(t, err)
	assert.True(t, seeds["a:1:main"])
}

func TestDetect_TestFileSymbolsAreEntryPoints(t *testing.T) {
	g := graphWith(model.Symbol{ID: "a.test.ts:1:checkThing", Name: "checkThing", Path: "a.test.ts", IsTest: true})
	seeds, err := Detect(g)
	require.NoError(t, err)
	assert.True(t, seeds["a.test.ts:1:checkThing"])
}

func TestDetect_ExportedInEntryFile(t *testing.T) {
	g := graphWith(model.Symbol{ID: "src/index.ts:1:run", Name: "run", Path: "src/index.ts", IsExported: true})
	seeds, err := Detect(g)
	require.NoError(t, err)
	assert.True(t, seeds["src/index.ts:1:run"])
}

func TestDetect_UnexportedInEntryFileNotSeeded(t *testing.T) {
	g := graphWith(model.Symbol{ID: "src/index.ts:1:helper", Name: "helper", Path: "src/index.ts", IsExported: false})
	seeds, err := Detect(g)
	require.NoError(t, err)
	assert.False(t, seeds["src/index.ts:1:helper"])
}

func TestDetect_EveryExportOfEntryFileSeeded(t *testing.T) {
	g := graphWith(
		model.Symbol{ID: "src/main.ts:1:main", Name: "main", Path: "src/main.ts", IsExported: false},
		model.Symbol{ID: "src/main.ts:3:setup", Name: "setup", Path: "src/main.ts", IsExported: true},
	)
	seeds, err := Detect(g)
	require.NoError(t, err)
	assert.True(t, seeds["src/main.ts:1:main"])
	assert.True(t, seeds["src/main.ts:3:setup"])
}

func TestDetect_NonEntryNonExportedProducesNoEntryPoints(t *testing.T) {
	g := graphWith(model.Symbol{ID: "src/util.ts:1:helper", Name: "helper", Path: "src/util.ts", IsExported: false})
	_, err := Detect(g)
	require.ErrorIs(t, err, ErrNoEntryPoints)
}

func TestDetect_EmptyGraphYieldsNoError(t *testing.T) {
	g := model.NewSymbolGraph()
	seeds, err := Detect(g)
	require.NoError(t, err)
	assert.Empty(t, seeds)
}

func TestDetect_LibRsCounts(t *testing.T) {
	g := graphWith(model.Symbol{ID: "lib.rs:1:start", Name: "start", Path: "lib.rs", IsExported: true})
	seeds, err := Detect(g)
	require.NoError(t, err)
	assert.True(t, seeds["lib.rs:1:start"])
}
