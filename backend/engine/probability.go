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

// Neutral is the midpoint every ability deviation is measured from.
const Neutral = 50

// dev returns the weighted deviation of an ability from Neutral.
func dev(ability int, weight float64) float64 {
	return float64(ability-Neutral) * weight
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roll draws one value in [0, 100).
func roll(src Source) float64 {
	return src.Float64() * 100
}

// check draws once and reports whether the draw falls under rate.
func check(src Source, rate float64) bool {
	return roll(src) < rate
}

// pick draws once and returns the index of the bucket the draw lands in.
// Weights need not sum to 100; the draw is scaled to their total.
func pick(src Source, weights ...float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := src.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return i
		}
	}
	return len(weights) - 1
}
