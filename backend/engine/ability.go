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
	"fmt"
	"math"
)

// BatterType is the archetype a batter is tagged with.
type BatterType string

const (
	BatterPower     BatterType = "power"
	BatterContact   BatterType = "contact"
	BatterBalanced  BatterType = "balanced"
	BatterSpeedster BatterType = "speedster"
	BatterSlap      BatterType = "slap"
)

// PitcherType is the archetype a pitcher is tagged with.
type PitcherType string

const (
	PitcherPower      PitcherType = "power"
	PitcherControl    PitcherType = "control"
	PitcherGroundball PitcherType = "groundball"
	PitcherBalanced   PitcherType = "balanced"
)

// Modifier tuning.
const (
	sameHandFactor     = 0.9
	oppositeHandFactor = 1.1
	switchHitterFactor = 1.05

	splitBaseline = 65.0
	splitRatio    = 0.3

	pitchCountBase      = 60.0
	pitchCountPerStam   = 0.4
	pitchCountDecay     = 0.003
	pitchCountMinFactor = 0.70

	maxAbility = 100
)

// ClassifyBatter tags a batter by weighted sums of raw abilities.
func ClassifyBatter(p *Player) BatterType {
	b, r := p.Batting, p.Running
	powerScore := float64(b.Power)*0.6 + float64(b.Eye)*0.2 + float64(b.Contact)*0.2
	contactScore := float64(b.Contact)*0.6 + float64(b.Eye)*0.3 + float64(b.Power)*0.1
	speedScore := float64(r.Speed)*0.6 + float64(r.StealingAbility)*0.2 + float64(r.Baserunning)*0.2
	slapScore := float64(b.Contact)*0.4 + float64(b.BuntForHit)*0.3 + float64(r.Speed)*0.3

	switch {
	case b.Power >= 70 && powerScore >= 65:
		return BatterPower
	case speedScore >= 75 && slapScore >= 65 && b.Power < 50:
		return BatterSlap
	case speedScore >= 75:
		return BatterSpeedster
	case contactScore >= 65:
		return BatterContact
	}
	return BatterBalanced
}

// ClassifyPitcher tags a pitcher by weighted sums of raw abilities.
// Players without a pitching block are balanced.
func ClassifyPitcher(p *Player) PitcherType {
	if p.Pitching == nil {
		return PitcherBalanced
	}
	a := p.Pitching
	powerScore := float64(a.Velocity)*0.5 + float64(a.Stuff)*0.5
	controlScore := float64(a.Control)*0.7 + float64(a.Movement)*0.3
	groundScore := float64(a.GroundBall)*0.6 + float64(a.Movement)*0.4

	switch {
	case powerScore >= 70:
		return PitcherPower
	case controlScore >= 68:
		return PitcherControl
	case groundScore >= 65:
		return PitcherGroundball
	}
	return PitcherBalanced
}

// ConditionFactor maps a condition level to its multiplier.
func ConditionFactor(c Condition) float64 {
	switch c {
	case ConditionExcellent:
		return 1.10
	case ConditionGood:
		return 1.05
	case ConditionPoor:
		return 0.93
	case ConditionTerrible:
		return 0.85
	}
	return 1.00
}

// FatigueFactor maps a fatigue level to its multiplier.
func FatigueFactor(f Fatigue) float64 {
	switch f {
	case FatigueSlight:
		return 0.95
	case FatigueTired:
		return 0.88
	case FatigueExhausted:
		return 0.80
	}
	return 1.00
}

// PitchCountThreshold is the pitch count above which stamina runs out.
func PitchCountThreshold(stamina int) float64 {
	return pitchCountBase + float64(stamina-Neutral)*pitchCountPerStam
}

// PitchCountFactor is the cumulative pitch-count fatigue multiplier.
func PitchCountFactor(stamina, pitchCount int) float64 {
	excess := float64(pitchCount) - PitchCountThreshold(stamina)
	if excess <= 0 {
		return 1.0
	}
	return math.Max(pitchCountMinFactor, 1.0-excess*pitchCountDecay)
}

// battingSide resolves which side a batter hits from against a pitcher.
func battingSide(bats, throws Handedness) Handedness {
	if bats != Switch {
		return bats
	}
	if throws == Left {
		return Right
	}
	return Left
}

// HandednessFactor is the batting multiplier for a batter/pitcher matchup.
func HandednessFactor(bats, throws Handedness) float64 {
	switch {
	case bats == Switch:
		return switchHitterFactor
	case bats == throws:
		return sameHandFactor
	}
	return oppositeHandFactor
}

// SplitFactor blends a platoon split rating against the baseline.
// A zero rating means the split is unknown and is treated as neutral.
func SplitFactor(split int) float64 {
	if split == 0 {
		return 1.0
	}
	return 1.0 + splitRatio*(float64(split)-splitBaseline)/splitBaseline
}

// capAbility rounds and caps a derived value at 100. There is no floor.
func capAbility(v float64) int {
	r := int(math.Round(v))
	if r > maxAbility {
		return maxAbility
	}
	return r
}

// EffectiveBatting applies condition, fatigue and, when pitcher is known,
// the handedness matchup and platoon split to the batter's hitting.
func EffectiveBatting(batter, pitcher *Player) BattingAbility {
	f := ConditionFactor(batter.Condition) * FatigueFactor(batter.Fatigue)
	if pitcher != nil {
		f *= HandednessFactor(batter.Bats, pitcher.Throws)
		split := batter.Batting.VsRHP
		if pitcher.Throws == Left {
			split = batter.Batting.VsLHP
		}
		f *= SplitFactor(split)
	}

	out := batter.Batting
	out.Contact = capAbility(float64(out.Contact) * f)
	out.Power = capAbility(float64(out.Power) * f)
	out.Eye = capAbility(float64(out.Eye) * f)
	out.BABIP = capAbility(float64(out.BABIP) * f)
	return out
}

// EffectivePitching applies condition, fatigue, pitch-count fatigue and,
// when batter is known, the platoon split to the pitcher's stuff.
func EffectivePitching(pitcher *Player, pitchCount int, batter *Player) (PitchingAbility, error) {
	if pitcher == nil || pitcher.Pitching == nil {
		return PitchingAbility{}, fmt.Errorf("%w: player has no pitching ability", ErrMissingPrecondition)
	}
	a := *pitcher.Pitching
	f := ConditionFactor(pitcher.Condition) * FatigueFactor(pitcher.Fatigue) * PitchCountFactor(a.Stamina, pitchCount)
	if batter != nil {
		split := a.VsRHB
		if battingSide(batter.Bats, pitcher.Throws) == Left {
			split = a.VsLHB
		}
		f *= SplitFactor(split)
	}

	a.Velocity = capAbility(float64(a.Velocity) * f)
	a.Stuff = capAbility(float64(a.Stuff) * f)
	a.Control = capAbility(float64(a.Control) * f)
	a.Movement = capAbility(float64(a.Movement) * f)
	return a, nil
}

// positionWeight scales fielding by how demanding a position is.
func positionWeight(pos Position) float64 {
	switch pos {
	case PosCatcher, PosShortstop:
		return 1.10
	case PosSecondBase, PosCenter:
		return 1.05
	case PosLeftField, PosRightField:
		return 0.95
	case PosFirstBase:
		return 0.90
	}
	return 1.00
}

const dhFieldingScore = 40.0

func avg(vals ...int) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return float64(sum) / float64(len(vals))
}

// OverallRating blends a player's abilities into one 0-100 number.
func OverallRating(p *Player) float64 {
	f := p.Fielding
	if p.Position == PosPitcher && p.Pitching != nil {
		a := p.Pitching
		pitching := avg(a.Velocity, a.Stuff, a.Control, a.Movement, a.Stamina)
		return pitching*0.9 + avg(f.InfieldRange, f.InfieldArm, f.InfieldFielding)*0.1
	}

	batting := avg(p.Batting.Contact, p.Batting.Power, p.Batting.Eye)
	running := avg(p.Running.Speed, p.Running.Baserunning)

	var fielding float64
	switch {
	case p.Position == PosDH || p.Position == "":
		fielding = dhFieldingScore
	case p.Position.IsInfield():
		fielding = avg(f.InfieldRange, f.InfieldArm, f.InfieldFielding) * positionWeight(p.Position)
	default:
		fielding = avg(f.OutfieldRange, f.OutfieldArm, f.OutfieldFielding) * positionWeight(p.Position)
	}
	fielding = math.Min(fielding, maxAbility)

	return batting*0.5 + running*0.2 + fielding*0.3
}

// Grade is a letter tier with its presentation color and severity.
type Grade struct {
	Letter   string `json:"letter"`
	Color    string `json:"color"`
	Severity int    `json:"severity"`
}

var grades = []struct {
	min   float64
	grade Grade
}{
	{90, Grade{"S", "#d4af37", 0}},
	{80, Grade{"A", "#e0393e", 1}},
	{70, Grade{"B", "#f28c28", 2}},
	{60, Grade{"C", "#e6c229", 3}},
	{50, Grade{"D", "#3fa34d", 4}},
	{40, Grade{"E", "#2f6fd6", 5}},
}

var gradeF = Grade{"F", "#8a8a8a", 6}

// GradeFor maps a rating to its letter grade.
func GradeFor(rating float64) Grade {
	for _, g := range grades {
		if rating >= g.min {
			return g.grade
		}
	}
	return gradeF
}
