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

package reachability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kraklabs/codeviz/pkg/model"
)

func TestAnalyze_CircularGraphTerminates(t *testing.T) {
	g := model.NewSymbolGraph()
	g.Symbols["a"] = model.Symbol{ID: "a", Name: "a"}
	g.Symbols["b"] = model.Symbol{ID: "b", Name: "b"}
	g.Imports["a"] = []string{"b"}
	g.Imports["b"] = []string{"a"}

	reachable := Analyze(g, map[string]bool{"a": true})
	assert.True(t, reachable["a"])
	assert.True(t, reachable["b"])
}

func TestAnalyze_UnreachableSymbolIsDead(t *testing.T) {
	g := model.NewSymbolGraph()
	g.Symbols["run"] = model.Symbol{ID: "run", Name: "run"}
	g.Symbols["helper"] = model.Symbol{ID: "helper", Name: "helper"}
	g.Symbols["leftover"] = model.Symbol{ID: "leftover", Name: "leftover"}
	g.Imports["run"] = []string{"helper"}

	reachable := Analyze(g, map[string]bool{"run": true})
	dead := Dead(g, reachable)

	assert.Len(t, dead, 1)
	assert.Equal(t, "leftover", dead[0].Name)
}

func TestAnalyze_EmptySeeds(t *testing.T) {
	g := model.NewSymbolGraph()
	g.Symbols["a"] = model.Symbol{ID: "a", Name: "a"}
	reachable := Analyze(g, map[string]bool{})
	assert.Empty(t, reachable)
	assert.Len(t, Dead(g, reachable), 1)
}

func TestAnalyze_SeedNotInGraphIgnored(t *testing.T) {
	g := model.NewSymbolGraph()
	g.Symbols["a"] = model.Symbol{ID: "a", Name: "a"}
	reachable := Analyze(g, map[string]bool{"ghost": true})
	assert.Empty(t, reachable)
}

func TestAnalyze_DiamondDependency(t *testing.T) {
	g := model.NewSymbolGraph()
	for _, id := range []string{"a", "b", "c", "d"} {
		g.Symbols[id] = model.Symbol{ID: id, Name: id}
	}
	g.Imports["a"] = []string{"b", "c"}
	g.Imports["b"] = []string{"d"}
	g.Imports["c"] = []string{"d"}

	reachable := Analyze(g, map[string]bool{"a": true})
	assert.Len(t, reachable, 4)
}
