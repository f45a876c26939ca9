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

// Defense maps positions to the players fielding them.
type Defense map[Position]*Player

// At returns the player at pos, or nil.
func (d Defense) At(pos Position) *Player {
	if d == nil {
		return nil
	}
	return d[pos]
}

// Shift is the defensive alignment.
type Shift string

const (
	ShiftNone Shift = "none"
	// ShiftPull overloads the batter's pull side.
	ShiftPull Shift = "pull"
)

// DefensiveOutcome is the tagged result of a fielded ball.
type DefensiveOutcome string

const (
	DefenseHomeRun DefensiveOutcome = "home_run"
	DefenseHit     DefensiveOutcome = "hit"
	DefenseOut     DefensiveOutcome = "out"
	DefenseError   DefensiveOutcome = "error"
)

// HitType is the number of bases a hit is worth.
type HitType string

const (
	HitSingle  HitType = "single"
	HitDouble  HitType = "double"
	HitTriple  HitType = "triple"
	HitHomeRun HitType = "home_run"
)

// FieldingPlay describes how a ball was fielded.
type FieldingPlay string

const (
	PlayBuntSingle     FieldingPlay = "bunt_single"
	PlaySacrifice      FieldingPlay = "sacrifice"
	PlayBeatThrow      FieldingPlay = "beat_throw"
	PlayFieldersChoice FieldingPlay = "fielders_choice"
	PlayGroundOut      FieldingPlay = "ground_out"
	PlayDoublePlay     FieldingPlay = "double_play"
	PlayFlyOut         FieldingPlay = "fly_out"
	PlaySacFly         FieldingPlay = "sac_fly"
	PlayLineOut        FieldingPlay = "line_out"
	PlayPopOut         FieldingPlay = "pop_out"
	PlayHit            FieldingPlay = "hit"
	PlayHomeRun        FieldingPlay = "home_run"
	PlayError          FieldingPlay = "error"
)

// DefensiveResult is the outcome of a fielded ball, bunted or hit.
// BatterBase is where the batter ends up; BaseOut when he is retired.
// RunsScored and OutsRecorded match what RunnerState.Apply reports for
// Advancements and BatterBase.
type DefensiveResult struct {
	Outcome      DefensiveOutcome `json:"outcome"`
	Play         FieldingPlay     `json:"play"`
	Hit          HitType          `json:"hit,omitempty"`
	Fielder      Position         `json:"fielder"`
	Assist       Position         `json:"assist,omitempty"`
	OutsRecorded int              `json:"outsRecorded"`
	RunsScored   int              `json:"runsScored"`
	BatterOut    bool             `json:"batterOut"`
	BatterBase   Base             `json:"batterBase"`
	Advancements []Advancement    `json:"advancements"`
	Commentary   string           `json:"commentary"`
}

// finish fills the derived counters. When the play makes the third out
// only the outs are kept: no run scores and nobody moves up on an
// inning-ending play.
func (d *DefensiveResult) finish(outsBefore int) {
	d.BatterOut = d.BatterBase == BaseOut
	outs := countOuts(d.Advancements)
	if d.BatterOut {
		outs++
	}
	if outsBefore+outs >= 3 {
		kept := make([]Advancement, 0, len(d.Advancements))
		for _, a := range d.Advancements {
			if a.To == BaseOut {
				kept = append(kept, a)
			}
		}
		d.Advancements = kept
	}
	d.OutsRecorded = outs
	d.RunsScored = countRuns(d.Advancements)
	if d.BatterBase == BaseHome {
		d.RunsScored++
	}
}

// Ball-in-play tuning.
const (
	homeRunBase           = 8.0
	homeRunPowerWeight    = 0.5
	homeRunMin            = 2.0
	homeRunMax            = 40.0
	outRangeWeight        = 0.3
	outFieldingWeight     = 0.1
	outSpeedWeight        = 0.15
	shiftDelta            = 8.0
	outMin, outMax        = 5.0, 98.0
	errorBase             = 3.0
	errorFieldingWeight   = 0.06
	errorMin, errorMax    = 0.5, 8.0
	doublePlayBase        = 45.0
	doublePlayArmWeight   = 0.3
	doublePlaySpeedWeight = 0.4
	doublePlayMin         = 10.0
	doublePlayMax         = 80.0
	sacFlyBase            = 70.0
	sacFlyArmWeight       = 0.4
	sacFlyMin, sacFlyMax  = 5.0, 95.0
	extraBaseSpeedWeight  = 0.2
	tripleSpeed           = 75
)

var outBase = map[Trajectory]map[Strength]float64{
	TrajectoryGround: {StrengthWeak: 80, StrengthMedium: 72, StrengthStrong: 55},
	TrajectoryLine:   {StrengthWeak: 55, StrengthMedium: 35, StrengthStrong: 20},
	TrajectoryFly:    {StrengthWeak: 90, StrengthMedium: 80, StrengthStrong: 55},
	TrajectoryPopup:  {StrengthWeak: 97, StrengthMedium: 97, StrengthStrong: 97},
}

var extraBaseBase = map[Trajectory]map[Strength]float64{
	TrajectoryLine: {StrengthWeak: 5, StrengthMedium: 25, StrengthStrong: 50},
	TrajectoryFly:  {StrengthWeak: 0, StrengthMedium: 30, StrengthStrong: 60},
}

var sacFlyStrength = map[Strength]float64{
	StrengthWeak:   -30,
	StrengthMedium: 0,
	StrengthStrong: 15,
}

// HomeRunRate is the chance a strong fly ball leaves the park.
func HomeRunRate(power int) float64 {
	return clamp(homeRunBase+dev(power, homeRunPowerWeight), homeRunMin, homeRunMax)
}

// OutRate is the chance a batted ball is converted into an out.
func OutRate(ball BattedBall, fieldRange, fielding, batterSpeed int, shifted int) float64 {
	rate := outBase[ball.Trajectory][ball.Strength] + dev(fieldRange, outRangeWeight) + dev(fielding, outFieldingWeight)
	if ball.Trajectory == TrajectoryGround {
		rate -= dev(batterSpeed, outSpeedWeight)
	}
	rate += float64(shifted) * shiftDelta
	return clamp(rate, outMin, outMax)
}

// ErrorRate is the chance a makeable play is botched.
func ErrorRate(fielding int) float64 {
	return clamp(errorBase-dev(fielding, errorFieldingWeight), errorMin, errorMax)
}

// DoublePlayRate is the chance a ground ball with a runner on first is
// turned into two outs.
func DoublePlayRate(arm, batterSpeed int) float64 {
	return clamp(doublePlayBase+dev(arm, doublePlayArmWeight)-dev(batterSpeed, doublePlaySpeedWeight), doublePlayMin, doublePlayMax)
}

// SacFlyRate is the chance the runner from third scores after the catch.
func SacFlyRate(arm int, strength Strength) float64 {
	return clamp(sacFlyBase-dev(arm, sacFlyArmWeight)+sacFlyStrength[strength], sacFlyMin, sacFlyMax)
}

// primaryFielder picks who plays a batted ball.
func primaryFielder(ball BattedBall) Position {
	infield := map[Field]Position{FieldLeft: PosThirdBase, FieldCenter: PosShortstop, FieldRight: PosSecondBase}
	outfield := map[Field]Position{FieldLeft: PosLeftField, FieldCenter: PosCenter, FieldRight: PosRightField}
	switch ball.Trajectory {
	case TrajectoryGround:
		if ball.Field == FieldCenter && ball.Strength == StrengthWeak {
			return PosPitcher
		}
		return infield[ball.Field]
	case TrajectoryPopup:
		if ball.Field == FieldRight {
			return PosFirstBase
		}
		return infield[ball.Field]
	case TrajectoryLine:
		if ball.Strength == StrengthWeak {
			return infield[ball.Field]
		}
	}
	return outfield[ball.Field]
}

// shiftEffect is +1 when the shift guards where the ball went, -1 when it
// left that side open and 0 otherwise.
func shiftEffect(shift Shift, ball BattedBall, side Handedness) int {
	if shift != ShiftPull || ball.Trajectory == TrajectoryFly || ball.Trajectory == TrajectoryPopup {
		return 0
	}
	pull, opposite := FieldLeft, FieldRight
	if side == Left {
		pull, opposite = FieldRight, FieldLeft
	}
	switch ball.Field {
	case pull:
		return 1
	case opposite:
		return -1
	}
	return 0
}

// ResolveBallInPlay resolves a batted ball against the defense.
//
// Draw order: home run (strong fly balls only), out, then error on a
// made play or extra bases on a hit, then the double play or sacrifice
// fly when the situation allows one.
func (r *Resolver) ResolveBallInPlay(ball BattedBall, batter *Player, defense Defense, runners RunnerState, outs int, shift Shift) (DefensiveResult, error) {
	if batter == nil {
		return DefensiveResult{}, missing("ball in play", "a batter")
	}
	pos := primaryFielder(ball)
	fielder := defense.At(pos)
	if fielder == nil {
		return DefensiveResult{}, missing("ball in play", "a fielder at "+string(pos))
	}

	pitcher := defense.At(PosPitcher)
	var throws Handedness
	if pitcher != nil {
		throws = pitcher.Throws
	}
	bat := EffectiveBatting(batter, pitcher)
	speed := batter.Running.Speed

	res := DefensiveResult{Fielder: pos, Advancements: []Advancement{}}

	if ball.Trajectory == TrajectoryFly && ball.Strength == StrengthStrong && check(r.src, HomeRunRate(bat.Power)) {
		res.Outcome = DefenseHomeRun
		res.Play = PlayHomeRun
		res.Hit = HitHomeRun
		res.Advancements = advanceAll(runners, 4)
		res.BatterBase = BaseHome
		res.finish(outs)
		res.Commentary = r.narr.ballInPlay(batter.Name, ball, res)
		return res, nil
	}

	shifted := shiftEffect(shift, ball, battingSide(batter.Bats, throws))
	if check(r.src, OutRate(ball, fielder.rangeAt(pos), fielder.fieldingAt(pos), speed, shifted)) {
		if check(r.src, ErrorRate(fielder.fieldingAt(pos))) {
			res.Outcome = DefenseError
			res.Play = PlayError
			res.Advancements = advanceAll(runners, 1)
			res.BatterBase = BaseFirst
			res.finish(outs)
			res.Commentary = r.narr.ballInPlay(batter.Name, ball, res)
			return res, nil
		}
		res.Outcome = DefenseOut
		res.BatterBase = BaseOut
		r.madePlay(&res, ball, fielder, pos, speed, runners, outs)
		res.finish(outs)
		res.Commentary = r.narr.ballInPlay(batter.Name, ball, res)
		return res, nil
	}

	res.Outcome = DefenseHit
	res.Play = PlayHit
	res.Hit = HitSingle
	if extra, ok := extraBaseBase[ball.Trajectory]; ok {
		rate := clamp(extra[ball.Strength]+dev(speed, extraBaseSpeedWeight), 0, 100)
		if check(r.src, rate) {
			res.Hit = HitDouble
			if speed >= tripleSpeed && ball.Field != FieldLeft && ball.Strength == StrengthStrong {
				res.Hit = HitTriple
			}
		}
	}
	switch res.Hit {
	case HitSingle:
		res.BatterBase = BaseFirst
		res.Advancements = singleAdvances(runners, ball.Strength != StrengthWeak)
	case HitDouble:
		res.BatterBase = BaseSecond
		res.Advancements = advanceAll(runners, 2)
	case HitTriple:
		res.BatterBase = BaseThird
		res.Advancements = advanceAll(runners, 3)
	}
	res.finish(outs)
	res.Commentary = r.narr.ballInPlay(batter.Name, ball, res)
	return res, nil
}

// madePlay fills the out branch: ground outs with possible double plays,
// fly outs with possible sacrifice flies, line and pop outs.
func (r *Resolver) madePlay(res *DefensiveResult, ball BattedBall, fielder *Player, pos Position, speed int, runners RunnerState, outs int) {
	switch ball.Trajectory {
	case TrajectoryGround:
		res.Play = PlayGroundOut
		if outs >= 2 {
			return
		}
		if runners.First != nil && check(r.src, DoublePlayRate(fielder.armAt(pos), speed)) {
			res.Play = PlayDoublePlay
			res.Advancements = append(advanceAll(RunnerState{Second: runners.Second, Third: runners.Third}, 1),
				Advancement{Runner: runners.First, From: BaseFirst, To: BaseOut})
			return
		}
		res.Advancements = advanceAll(runners, 1)
	case TrajectoryFly:
		res.Play = PlayFlyOut
		if outs >= 2 || runners.Third == nil || pos.IsInfield() {
			return
		}
		if check(r.src, SacFlyRate(fielder.armAt(pos), ball.Strength)) {
			res.Play = PlaySacFly
			res.Advancements = []Advancement{{Runner: runners.Third, From: BaseThird, To: BaseHome}}
		}
	case TrajectoryLine:
		res.Play = PlayLineOut
	default:
		res.Play = PlayPopOut
	}
}

// singleAdvances moves every runner one base; a runner from second also
// scores when the ball was not weakly hit.
func singleAdvances(rs RunnerState, scoreFromSecond bool) []Advancement {
	advs := advanceAll(rs, 1)
	if !scoreFromSecond {
		return advs
	}
	for i, a := range advs {
		if a.From == BaseSecond {
			advs[i].To = BaseHome
		}
	}
	return advs
}
