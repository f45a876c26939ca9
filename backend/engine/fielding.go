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

// Bunt fielding tuning.
const (
	leadThrowBase          = 70.0
	leadThrowSpeedPivot    = 70
	leadThrowSpeedWeight   = 0.5
	throwFirstBase         = 75.0
	throwFirstSpeedPivot   = 60
	throwFirstSpeedWeight  = 0.3
	throwFirstLeftyPenalty = 10.0
	throwFirstArmWeight    = 0.2
	throwFirstMin          = 30.0
	throwFirstMax          = 95.0
	leadRunnerOutRate      = 70.0
)

var buntCatchBase = map[BuntStrength]float64{
	BuntVeryWeak: 95,
	BuntWeak:     80,
	BuntMedium:   60,
}

var throwFirstStrength = map[BuntStrength]float64{
	BuntVeryWeak: 15,
	BuntWeak:     5,
	BuntMedium:   -10,
}

// BuntCatchRate is the chance the fielder cleanly picks up a bunt.
func BuntCatchRate(strength BuntStrength, fieldRange int) float64 {
	return buntCatchBase[strength] * float64(fieldRange) / 100
}

// LeadThrowRate is the chance a fielder goes for the lead runner rather
// than the sure out at first. A fast batter makes the lead runner the
// more attractive target.
func LeadThrowRate(batterSpeed int) float64 {
	rate := leadThrowBase
	if batterSpeed > leadThrowSpeedPivot {
		rate += float64(batterSpeed-leadThrowSpeedPivot) * leadThrowSpeedWeight
	}
	return clamp(rate, 0, 100)
}

// ThrowFirstRate is the chance a throw to first retires the bunter. side
// is the side of the plate he bunted from.
func ThrowFirstRate(batterSpeed int, side Handedness, strength BuntStrength, arm int) float64 {
	rate := throwFirstBase - float64(batterSpeed-throwFirstSpeedPivot)*throwFirstSpeedWeight +
		throwFirstStrength[strength] + dev(arm, throwFirstArmWeight)
	if side == Left {
		rate -= throwFirstLeftyPenalty
	}
	return clamp(rate, throwFirstMin, throwFirstMax)
}

// ResolveFielding resolves the defense on a successfully bunted ball.
//
// Draw order: catch; then, when the choice is open, the throw target;
// then the throw. A ball not picked up cleanly, or a throw to the lead
// runner that is too late, is a bunt single with every runner moving up.
func (r *Resolver) ResolveFielding(ball BuntBall, buntType BuntType, batter, fielder, assist *Player, runners RunnerState, outs int) (DefensiveResult, error) {
	if batter == nil {
		return DefensiveResult{}, missing("bunt fielding", "a batter")
	}
	if fielder == nil {
		return DefensiveResult{}, missing("bunt fielding", "a fielder at "+string(ball.Fielder))
	}
	res := DefensiveResult{Fielder: ball.Fielder}
	if assist != nil {
		res.Assist = ball.Assist
	}

	if !check(r.src, BuntCatchRate(ball.Strength, fielder.Fielding.InfieldRange)) {
		r.buntSingle(&res, runners, outs)
		res.Commentary = r.narr.buntFielding(ball.Fielder, res.Play)
		return res, nil
	}

	lead := runners.Lead()
	toLead := false
	if buntType != BuntSafety && outs < 2 && lead != "" {
		toLead = check(r.src, LeadThrowRate(batter.Running.Speed))
	}

	if !toLead {
		side := ball.Side
		if side == "" {
			side = batter.Bats
		}
		rate := ThrowFirstRate(batter.Running.Speed, side, ball.Strength, fielder.Fielding.InfieldArm)
		res.Advancements = advanceAll(runners, 1)
		if check(r.src, rate) {
			res.Outcome = DefenseOut
			res.Play = PlaySacrifice
			res.BatterBase = BaseOut
		} else {
			res.Outcome = DefenseHit
			res.Play = PlayBeatThrow
			res.Hit = HitSingle
			res.BatterBase = BaseFirst
		}
		res.finish(outs)
		res.Commentary = r.narr.buntFielding(ball.Fielder, res.Play)
		return res, nil
	}

	target := lead.Next()
	if !check(r.src, leadRunnerOutRate) {
		r.buntSingle(&res, runners, outs)
		res.Commentary = r.narr.join(
			r.narr.leadThrow(ball.Fielder, target, false),
			r.narr.buntFielding(ball.Fielder, res.Play),
		)
		return res, nil
	}

	res.Outcome = DefenseOut
	res.Play = PlayFieldersChoice
	res.BatterBase = BaseFirst
	trailing := runners
	trailing.set(lead, nil)
	res.Advancements = append([]Advancement{{Runner: runners.At(lead), From: lead, To: BaseOut}}, advanceAll(trailing, 1)...)
	res.finish(outs)
	res.Commentary = r.narr.leadThrow(ball.Fielder, target, true)
	return res, nil
}

func (r *Resolver) buntSingle(res *DefensiveResult, runners RunnerState, outs int) {
	res.Outcome = DefenseHit
	res.Play = PlayBuntSingle
	res.Hit = HitSingle
	res.BatterBase = BaseFirst
	res.Advancements = advanceAll(runners, 1)
	res.finish(outs)
}
