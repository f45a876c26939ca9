// Copyright (c) 2026 TTBT Enterprises LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package engine resolves individual baseball plays into outcomes.
//
// Every judgment follows one pattern: a base rate is adjusted by weighted
// deviations of the relevant abilities from 50, clamped to a documented
// range, and compared against a single draw in [0, 100) from the
// Resolver's Source. Draw order inside each play is fixed, so a
// ReplaySource reproduces a play exactly.
//
// Results are plain values. The engine never mutates game state; callers
// apply the returned advancement lists with RunnerState.Apply.
package engine

import "golang.org/x/text/language"

// Resolver resolves plays with an injected random source. It is not safe
// for concurrent use because its Source is not.
type Resolver struct {
	src  Source
	narr *Narrator
}

// NewResolver returns a Resolver drawing from src and rendering with narr.
// A nil narrator renders Japanese commentary.
func NewResolver(src Source, narr *Narrator) *Resolver {
	if narr == nil {
		narr = NewNarrator(language.Japanese)
	}
	return &Resolver{src: src, narr: narr}
}

// Narrator returns the narrator used for commentary.
func (r *Resolver) Narrator() *Narrator {
	return r.narr
}
