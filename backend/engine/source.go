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

package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Source is the randomness provider for every judgment.
//
// Float64 returns a value in [0, 1). Each probability decision consumes
// exactly one value, so a scripted Source replays a play exactly.
type Source interface {
	Float64() float64
}

// NewSource returns a deterministic PCG stream for the given seed.
// It is not safe for concurrent use.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// ReplaySource returns pre-scripted draws in order. Values are fractions
// in [0, 1). Once the script is exhausted it keeps returning Fallback.
type ReplaySource struct {
	Draws    []float64
	Fallback float64

	next int
}

// NewReplaySource creates a ReplaySource over draws.
func NewReplaySource(draws ...float64) *ReplaySource {
	return &ReplaySource{Draws: draws, Fallback: 0.5}
}

// Float64 implements Source.
func (r *ReplaySource) Float64() float64 {
	if r.next >= len(r.Draws) {
		return r.Fallback
	}
	v := r.Draws[r.next]
	r.next++
	return v
}

// Used reports how many scripted draws have been consumed.
func (r *ReplaySource) Used() int {
	return r.next
}
