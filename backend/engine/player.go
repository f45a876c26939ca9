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

// Handedness of a batter (L, R, S) or pitcher (L, R).
type Handedness string

const (
	Left   Handedness = "L"
	Right  Handedness = "R"
	Switch Handedness = "S"
)

// Position is a defensive position.
type Position string

const (
	PosPitcher    Position = "P"
	PosCatcher    Position = "C"
	PosFirstBase  Position = "1B"
	PosSecondBase Position = "2B"
	PosThirdBase  Position = "3B"
	PosShortstop  Position = "SS"
	PosLeftField  Position = "LF"
	PosCenter     Position = "CF"
	PosRightField Position = "RF"
	PosDH         Position = "DH"
)

// FieldPositions are the eight positions behind the pitcher plus the pitcher.
var FieldPositions = []Position{
	PosPitcher, PosCatcher, PosFirstBase, PosSecondBase, PosThirdBase,
	PosShortstop, PosLeftField, PosCenter, PosRightField,
}

// IsInfield reports whether the position fields with infield abilities.
func (p Position) IsInfield() bool {
	switch p {
	case PosPitcher, PosCatcher, PosFirstBase, PosSecondBase, PosThirdBase, PosShortstop:
		return true
	}
	return false
}

// Condition is a player's day-to-day form.
type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionNormal    Condition = "normal"
	ConditionPoor      Condition = "poor"
	ConditionTerrible  Condition = "terrible"
)

// Fatigue is a player's accumulated tiredness.
type Fatigue string

const (
	FatigueFresh     Fatigue = "fresh"
	FatigueSlight    Fatigue = "slight"
	FatigueTired     Fatigue = "tired"
	FatigueExhausted Fatigue = "exhausted"
)

// BattingAbility holds hitting attributes (1-100).
type BattingAbility struct {
	Contact       int `json:"contact" yaml:"contact"`
	Power         int `json:"power" yaml:"power"`
	Eye           int `json:"eye" yaml:"eye"`
	BABIP         int `json:"babip" yaml:"babip"`
	SacrificeBunt int `json:"sacrificeBunt" yaml:"sacrifice_bunt"`
	BuntForHit    int `json:"buntForHit" yaml:"bunt_for_hit"`
	VsLHP         int `json:"vsLHP" yaml:"vs_lhp"`
	VsRHP         int `json:"vsRHP" yaml:"vs_rhp"`
}

// PitchingAbility holds pitching attributes (1-100).
type PitchingAbility struct {
	Velocity    int `json:"velocity" yaml:"velocity"`
	Stuff       int `json:"stuff" yaml:"stuff"`
	Control     int `json:"control" yaml:"control"`
	Movement    int `json:"movement" yaml:"movement"`
	Stamina     int `json:"stamina" yaml:"stamina"`
	HoldRunners int `json:"holdRunners" yaml:"hold_runners"`
	GroundBall  int `json:"groundBall" yaml:"ground_ball"`
	VsLHB       int `json:"vsLHB" yaml:"vs_lhb"`
	VsRHB       int `json:"vsRHB" yaml:"vs_rhb"`
}

// RunningAbility holds baserunning attributes (1-100).
type RunningAbility struct {
	Speed           int `json:"speed" yaml:"speed"`
	Baserunning     int `json:"baserunning" yaml:"baserunning"`
	StealingAbility int `json:"stealingAbility" yaml:"stealing_ability"`
	StealingAggr    int `json:"stealingAggr" yaml:"stealing_aggr"`
}

// FieldingAbility holds defensive attributes (1-100).
type FieldingAbility struct {
	InfieldRange     int `json:"infieldRange" yaml:"infield_range"`
	InfieldArm       int `json:"infieldArm" yaml:"infield_arm"`
	InfieldFielding  int `json:"infieldFielding" yaml:"infield_fielding"`
	OutfieldRange    int `json:"outfieldRange" yaml:"outfield_range"`
	OutfieldArm      int `json:"outfieldArm" yaml:"outfield_arm"`
	OutfieldFielding int `json:"outfieldFielding" yaml:"outfield_fielding"`
}

// Player is immutable reference data for one player.
type Player struct {
	ID        string           `json:"id" yaml:"id"`
	Name      string           `json:"name" yaml:"name"`
	Number    string           `json:"number,omitempty" yaml:"number"`
	Position  Position         `json:"position" yaml:"position"`
	Bats      Handedness       `json:"bats" yaml:"bats"`
	Throws    Handedness       `json:"throws" yaml:"throws"`
	Batting   BattingAbility   `json:"batting" yaml:"batting"`
	Pitching  *PitchingAbility `json:"pitching,omitempty" yaml:"pitching"`
	Running   RunningAbility   `json:"running" yaml:"running"`
	Fielding  FieldingAbility  `json:"fielding" yaml:"fielding"`
	Condition Condition        `json:"condition,omitempty" yaml:"condition"`
	Fatigue   Fatigue          `json:"fatigue,omitempty" yaml:"fatigue"`
}

// Runner returns the occupancy marker for this player.
func (p *Player) Runner() *Runner {
	return &Runner{PlayerID: p.ID, PlayerName: p.Name}
}

// rangeAt returns the range rating used when fielding at pos.
func (p *Player) rangeAt(pos Position) int {
	if pos.IsInfield() {
		return p.Fielding.InfieldRange
	}
	return p.Fielding.OutfieldRange
}

func (p *Player) armAt(pos Position) int {
	if pos.IsInfield() {
		return p.Fielding.InfieldArm
	}
	return p.Fielding.OutfieldArm
}

func (p *Player) fieldingAt(pos Position) int {
	if pos.IsInfield() {
		return p.Fielding.InfieldFielding
	}
	return p.Fielding.OutfieldFielding
}

// PlayerInGame is a Player plus the per-game counters the orchestrator
// mutates between plays. The engine only reads it.
type PlayerInGame struct {
	*Player
	PitchCount int `json:"pitchCount"`
	AtBats     int `json:"atBats"`
	Hits       int `json:"hits"`
	Runs       int `json:"runs"`
	RBIs       int `json:"rbis"`
}

// NewPlayerInGame wraps p with zeroed counters.
func NewPlayerInGame(p *Player) *PlayerInGame {
	return &PlayerInGame{Player: p}
}
