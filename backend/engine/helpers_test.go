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

import "golang.org/x/text/language"

// testPlayer returns a right-handed player with every ability at 50.
func testPlayer(id string, pos Position) *Player {
	return &Player{
		ID:       id,
		Name:     id,
		Position: pos,
		Bats:     Right,
		Throws:   Right,
		Batting: BattingAbility{
			Contact: 50, Power: 50, Eye: 50, BABIP: 50,
			SacrificeBunt: 50, BuntForHit: 50,
		},
		Running: RunningAbility{Speed: 50, Baserunning: 50, StealingAbility: 50, StealingAggr: 50},
		Fielding: FieldingAbility{
			InfieldRange: 50, InfieldArm: 50, InfieldFielding: 50,
			OutfieldRange: 50, OutfieldArm: 50, OutfieldFielding: 50,
		},
		Condition: ConditionNormal,
		Fatigue:   FatigueFresh,
	}
}

func testPitcher(id string) *Player {
	p := testPlayer(id, PosPitcher)
	p.Pitching = &PitchingAbility{
		Velocity: 50, Stuff: 50, Control: 50, Movement: 50,
		Stamina: 50, HoldRunners: 50, GroundBall: 50,
	}
	return p
}

func testDefense() Defense {
	d := Defense{}
	for _, pos := range FieldPositions {
		if pos == PosPitcher {
			d[pos] = testPitcher("P")
			continue
		}
		d[pos] = testPlayer(string(pos), pos)
	}
	return d
}

// replay returns a resolver over scripted draws plus the script, so tests
// can assert how many draws a play consumed.
func replay(draws ...float64) (*Resolver, *ReplaySource) {
	src := NewReplaySource(draws...)
	return NewResolver(src, NewNarrator(language.Japanese)), src
}

func seeded(seed uint64) *Resolver {
	return NewResolver(NewSource(seed), nil)
}
