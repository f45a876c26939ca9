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

import "math"

// BuntType distinguishes a sacrifice from a bunt for a hit.
type BuntType string

const (
	BuntSacrifice BuntType = "sacrifice"
	BuntSafety    BuntType = "safety"
)

// BuntOutcome is the tagged result of a bunt attempt.
type BuntOutcome string

const (
	BuntSuccess   BuntOutcome = "success"
	BuntFoul      BuntOutcome = "foul"
	BuntSwingMiss BuntOutcome = "swing_miss"
	BuntPopup     BuntOutcome = "popup"
)

// BuntDirection is where a bunt is placed.
type BuntDirection string

const (
	BuntThirdBaseLine BuntDirection = "third_base_line"
	BuntPitcherFront  BuntDirection = "pitcher_front"
	BuntFirstBaseLine BuntDirection = "first_base_line"
)

// BuntStrength is how hard a bunt is deadened.
type BuntStrength string

const (
	BuntVeryWeak BuntStrength = "very_weak"
	BuntWeak     BuntStrength = "weak"
	BuntMedium   BuntStrength = "medium"
)

// BuntBall describes a bunt put in play and who fields it. Side is the
// side of the plate the batter bunted from.
type BuntBall struct {
	Direction BuntDirection `json:"direction"`
	Strength  BuntStrength  `json:"strength"`
	Fielder   Position      `json:"fielder"`
	Assist    Position      `json:"assist"`
	Side      Handedness    `json:"side,omitempty"`
}

// BuntResult is the outcome of a bunt attempt. A successful bunt is not
// yet a finished play: pass Ball to ResolveFielding.
type BuntResult struct {
	Success           bool          `json:"success"`
	Outcome           BuntOutcome   `json:"outcome"`
	IsFoul            bool          `json:"isFoul"`
	IsStrikeout       bool          `json:"isStrikeout"`
	Ball              *BuntBall     `json:"ball,omitempty"`
	BatterOut         bool          `json:"batterOut"`
	BatterReachedBase bool          `json:"batterReachedBase"`
	Strikes           int           `json:"strikes"`
	Advancements      []Advancement `json:"advancements"`
	Commentary        string        `json:"commentary"`
}

// SqueezeResult extends BuntResult with the fate of the runner from third.
type SqueezeResult struct {
	BuntResult
	Runner       *Runner `json:"runner"`
	RunnerSafe   bool    `json:"runnerSafe"`
	RunsScored   int     `json:"runsScored"`
	OutsRecorded int     `json:"outsRecorded"`
}

// Bunt tuning.
const (
	buntBase                 = 70.0
	buntAbilityWeight        = 0.4
	buntPitcherWeight        = 0.2
	buntTwoStrikePenalty     = 20.0
	buntMin, buntMax         = 30.0, 95.0
	buntTwoStrikeFoulCut     = 60.0
	buntTwoStrikeMissCut     = 80.0
	buntFoulCut              = 50.0
	buntMissCut              = 75.0
	buntSafetyShiftWeight    = 0.2
	buntMinDirectionWeight   = 5.0
	veryWeakBase             = 25.0
	veryWeakWeight           = 0.3
	veryWeakMin, veryWeakMax = 5.0, 45.0
	mediumBuntBase           = 30.0
	mediumBuntWeight         = 0.4
	mediumBuntMin            = 10.0
	mediumBuntMax            = 60.0

	squeezeBase              = 60.0
	squeezeSpeedPivot        = 60
	squeezeSpeedWeight       = 0.35
	squeezeBaserunningWeight = 0.25
	squeezeMin, squeezeMax   = 20.0, 95.0
)

var squeezeStrengthBonus = map[BuntStrength]float64{
	BuntVeryWeak: -20,
	BuntWeak:     0,
	BuntMedium:   10,
}

// BuntSuccessRate is the chance a bunt attempt is put in play fair.
func BuntSuccessRate(ability, control, stuff, strikes int) float64 {
	pitcher := (float64(control)+float64(stuff))/2 - Neutral
	rate := buntBase + dev(ability, buntAbilityWeight) - pitcher*buntPitcherWeight
	if strikes == 2 {
		rate -= buntTwoStrikePenalty
	}
	return clamp(rate, buntMin, buntMax)
}

// SqueezeRunnerRate is the chance the runner from third beats the play
// home on a successful squeeze bunt.
func SqueezeRunnerRate(speed, baserunning int, strength BuntStrength) float64 {
	rate := squeezeBase + float64(speed-squeezeSpeedPivot)*squeezeSpeedWeight +
		dev(baserunning, squeezeBaserunningWeight) + squeezeStrengthBonus[strength]
	return clamp(rate, squeezeMin, squeezeMax)
}

// buntDirectionWeights returns third-base-line, pitcher-front and
// first-base-line weights for a bunter.
func buntDirectionWeights(bats Handedness, buntType BuntType, buntForHit int) (third, front, first float64) {
	shift := 0.0
	if buntType == BuntSafety {
		shift = dev(buntForHit, buntSafetyShiftWeight)
	}
	switch bats {
	case Left:
		third, front, first = 20, 30, 50+shift
		third -= shift
	case Right:
		third, front, first = 40+shift, 35, 25
		first -= shift
	default:
		return 100.0 / 3, 100.0 / 3, 100.0 / 3
	}
	return math.Max(third, buntMinDirectionWeight), front, math.Max(first, buntMinDirectionWeight)
}

// buntFielders is the fixed (direction, strength) fielder lookup.
func buntFielders(dir BuntDirection, strength BuntStrength) (fielder, assist Position) {
	switch dir {
	case BuntThirdBaseLine:
		return PosThirdBase, PosPitcher
	case BuntFirstBaseLine:
		return PosFirstBase, PosPitcher
	}
	if strength == BuntVeryWeak {
		return PosCatcher, PosPitcher
	}
	return PosPitcher, PosCatcher
}

func buntAbility(batter *Player, buntType BuntType) int {
	if buntType == BuntSafety {
		return batter.Batting.BuntForHit
	}
	return batter.Batting.SacrificeBunt
}

// attemptBunt draws the attempt, then either the failure split or the
// direction and strength. It fills every field except commentary and
// advancements.
func (r *Resolver) attemptBunt(batter, pitcher *Player, buntType BuntType, strikes int) (BuntResult, error) {
	if batter == nil {
		return BuntResult{}, missing("bunt", "a batter")
	}
	if pitcher == nil || pitcher.Pitching == nil {
		return BuntResult{}, missing("bunt", "a pitcher with pitching ability")
	}
	if buntType == "" {
		buntType = BuntSacrifice
	}
	ability := buntAbility(batter, buntType)

	res := BuntResult{Strikes: strikes}
	if check(r.src, BuntSuccessRate(ability, pitcher.Pitching.Control, pitcher.Pitching.Stuff, strikes)) {
		res.Success = true
		res.Outcome = BuntSuccess
		ball := BuntBall{Side: battingSide(batter.Bats, pitcher.Throws)}
		third, front, first := buntDirectionWeights(batter.Bats, buntType, batter.Batting.BuntForHit)
		switch pick(r.src, third, front, first) {
		case 0:
			ball.Direction = BuntThirdBaseLine
		case 1:
			ball.Direction = BuntPitcherFront
		default:
			ball.Direction = BuntFirstBaseLine
		}
		veryWeak := clamp(veryWeakBase-dev(ability, veryWeakWeight), veryWeakMin, veryWeakMax)
		medium := clamp(mediumBuntBase+dev(ability, mediumBuntWeight), mediumBuntMin, mediumBuntMax)
		switch x := roll(r.src); {
		case x < veryWeak:
			ball.Strength = BuntVeryWeak
		case x < veryWeak+medium:
			ball.Strength = BuntMedium
		default:
			ball.Strength = BuntWeak
		}
		ball.Fielder, ball.Assist = buntFielders(ball.Direction, ball.Strength)
		res.Ball = &ball
		return res, nil
	}

	x := roll(r.src)
	if strikes >= 2 {
		switch {
		case x < buntTwoStrikeFoulCut:
			res.Outcome = BuntFoul
			res.IsFoul = true
		case x < buntTwoStrikeMissCut:
			res.Outcome = BuntSwingMiss
		default:
			res.Outcome = BuntPopup
		}
		res.IsStrikeout = res.Outcome != BuntPopup
		res.BatterOut = true
		if res.IsStrikeout {
			res.Strikes = 3
		}
		return res, nil
	}
	switch {
	case x < buntFoulCut:
		res.Outcome = BuntFoul
		res.IsFoul = true
		res.Strikes++
	case x < buntMissCut:
		res.Outcome = BuntSwingMiss
		res.Strikes++
	default:
		res.Outcome = BuntPopup
		res.BatterOut = true
	}
	return res, nil
}

// ResolveBunt resolves a bunt attempt.
//
// Draw order: attempt; then on failure one split roll, on success the
// direction and then the strength. The runners and the ball count are
// taken for symmetry with the at-bat and do not affect the rates; runners
// hold on every bunt outcome until the fielding is resolved.
func (r *Resolver) ResolveBunt(batter, pitcher *Player, buntType BuntType, _ RunnerState, _, strikes int) (BuntResult, error) {
	res, err := r.attemptBunt(batter, pitcher, buntType, strikes)
	if err != nil {
		return BuntResult{}, err
	}
	res.Advancements = []Advancement{}
	res.Commentary = r.narr.bunt(batter.Name, buntType, res)
	return res, nil
}

// ResolveSqueeze resolves a squeeze bunt with a runner breaking from third.
//
// Draw order: attempt; failure split or direction then strength; then,
// only when the bunt succeeded, the runner roll. A failed bunt fails the
// runner without a further draw: on a foul he returns to third, on a miss
// or popup he is caught off the bag. Only the runner from third is in the
// advancement list; trailing runners are the caller's concern. The ball
// count does not affect the rates.
func (r *Resolver) ResolveSqueeze(batter, pitcher *Player, thirdRunner *Runner, runnerPlayer *Player, _, strikes int) (SqueezeResult, error) {
	if thirdRunner == nil {
		return SqueezeResult{}, missing("squeeze", "a runner on third")
	}
	if runnerPlayer == nil {
		return SqueezeResult{}, missing("squeeze", "the runner's player record")
	}
	bunt, err := r.attemptBunt(batter, pitcher, BuntSacrifice, strikes)
	if err != nil {
		return SqueezeResult{}, err
	}
	res := SqueezeResult{BuntResult: bunt, Runner: thirdRunner}
	res.Advancements = []Advancement{}

	switch {
	case bunt.Success:
		rate := SqueezeRunnerRate(runnerPlayer.Running.Speed, runnerPlayer.Running.Baserunning, bunt.Ball.Strength)
		res.RunnerSafe = check(r.src, rate)
		if res.RunnerSafe {
			res.Advancements = append(res.Advancements, Advancement{Runner: thirdRunner, From: BaseThird, To: BaseHome})
			res.BatterOut = true
			res.RunsScored = 1
		} else {
			res.Advancements = append(res.Advancements, Advancement{Runner: thirdRunner, From: BaseThird, To: BaseOut})
			res.BatterReachedBase = true
		}
	case bunt.Outcome == BuntFoul && !bunt.IsStrikeout:
	default:
		res.Advancements = append(res.Advancements, Advancement{Runner: thirdRunner, From: BaseThird, To: BaseOut})
	}

	res.OutsRecorded = countOuts(res.Advancements)
	if res.BatterOut {
		res.OutsRecorded++
	}
	res.Commentary = r.narr.join(
		r.narr.bunt(batter.Name, BuntSacrifice, bunt),
		r.narr.squeezeRunner(thirdRunner.PlayerName, res),
		r.narr.runs(res.RunsScored),
	)
	return res, nil
}
