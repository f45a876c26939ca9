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

// StealOutcome is the tagged result of one runner's steal attempt.
type StealOutcome string

const (
	StealSafe   StealOutcome = "safe"
	StealCaught StealOutcome = "caught"
)

// StealResult is the outcome of a single steal.
type StealResult struct {
	Runner       *Runner       `json:"runner"`
	From         Base          `json:"from"`
	To           Base          `json:"to"`
	Success      bool          `json:"success"`
	Outcome      StealOutcome  `json:"outcome"`
	Advancements []Advancement `json:"advancements"`
	OutsRecorded int           `json:"outsRecorded"`
	RunsScored   int           `json:"runsScored"`
	Commentary   string        `json:"commentary"`
}

// DoubleStealResult is the outcome of two or three runners going at once.
// Attempts lists the targeted runner first.
type DoubleStealResult struct {
	Target       Base          `json:"target"`
	Attempts     []StealResult `json:"attempts"`
	Advancements []Advancement `json:"advancements"`
	OutsRecorded int           `json:"outsRecorded"`
	RunsScored   int           `json:"runsScored"`
	Commentary   string        `json:"commentary"`
}

// BattingOutcome is the pre-resolved swing result of a hit-and-run.
type BattingOutcome string

const (
	BattingHit       BattingOutcome = "hit"
	BattingOut       BattingOutcome = "out"
	BattingSwingMiss BattingOutcome = "swing_miss"
)

// HitAndRunOutcome is the tagged result of a hit-and-run. On a hit the
// runner takes two bases when his steal succeeds (extra_base) and is
// thrown out when it fails (hit_caught); runner_moved is a batter out
// with the runner safe.
type HitAndRunOutcome string

const (
	HitAndRunExtraBase   HitAndRunOutcome = "extra_base"
	HitAndRunHitCaught   HitAndRunOutcome = "hit_caught"
	HitAndRunRunnerMoved HitAndRunOutcome = "runner_moved"
	HitAndRunDoublePlay  HitAndRunOutcome = "double_play"
	HitAndRunStolen      HitAndRunOutcome = "stolen"
	HitAndRunCaught      HitAndRunOutcome = "caught"
)

// HitAndRunResult is the outcome of a hit-and-run.
type HitAndRunResult struct {
	Runner         *Runner          `json:"runner"`
	From           Base             `json:"from"`
	RunnerTo       Base             `json:"runnerTo"`
	BattingOutcome BattingOutcome   `json:"battingOutcome"`
	StealSuccess   bool             `json:"stealSuccess"`
	Outcome        HitAndRunOutcome `json:"outcome"`
	BatterOut      bool             `json:"batterOut"`
	BatterBase     Base             `json:"batterBase"`
	Advancements   []Advancement    `json:"advancements"`
	OutsRecorded   int              `json:"outsRecorded"`
	RunsScored     int              `json:"runsScored"`
	Commentary     string           `json:"commentary"`
}

// PickoffOutcome is the tagged result of a pickoff.
type PickoffOutcome string

const (
	PickoffNotAttempted PickoffOutcome = "not_attempted"
	PickoffOut          PickoffOutcome = "out"
	PickoffSafe         PickoffOutcome = "safe"
	PickoffWildThrow    PickoffOutcome = "wild_throw"
)

// PickoffResult is the outcome of a pickoff throw.
type PickoffResult struct {
	Attempted    bool           `json:"attempted"`
	Success      bool           `json:"success"`
	Runner       *Runner        `json:"runner"`
	Target       Base           `json:"target"`
	Outcome      PickoffOutcome `json:"outcome"`
	WildThrow    bool           `json:"wildThrow"`
	Advancements []Advancement  `json:"advancements"`
	OutsRecorded int            `json:"outsRecorded"`
	RunsScored   int            `json:"runsScored"`
	Commentary   string         `json:"commentary"`
}

// Steal tuning.
const (
	stealBase               = 50.0
	stealAbilityWeight      = 0.8
	stealSpeedWeight        = 0.5
	stealBaserunningWeight  = 0.3
	stealHoldWeight         = 0.6
	stealQuicknessWeight    = 0.2
	stealCatcherArmWeight   = 0.7
	stealCatcherFieldWeight = 0.3
	stealCoverFieldWeight   = 0.2
	stealCoverRangeWeight   = 0.2
	stealThirdPenalty       = 15.0
	stealHomePenalty        = 25.0
	undefendedStealRate     = 95.0

	pickoffAttemptBase       = 20.0
	pickoffAttemptHoldWeight = 0.5
	pickoffAttemptAggrWeight = 0.4
	leadAbilityWeight        = 0.4
	leadAggrWeight           = 0.3
	leadBaserunningWeight    = 0.2
	leadHoldWeight           = 0.5
	pickoffBase              = 10.0
	pickoffHoldWeight        = 0.6
	pickoffLeadWeight        = 0.5
	pickoffCoverFieldWeight  = 0.3
	pickoffCoverRangeWeight  = 0.2
	pickoffBaserunningWeight = 0.4
	pickoffSpeedWeight       = 0.3
	wildThrowBase            = 5.0
	wildThrowControlWeight   = 0.2
	wildThrowMin             = 5.0
	wildThrowMax             = 15.0
)

// cover is the averaged fielding and range of whoever takes a throw.
type cover struct {
	fielding, rng float64
}

// coverFor returns the fielder(s) covering base. Second is shared by the
// second baseman and shortstop; home is the catcher's.
func coverFor(base Base, defense Defense, catcher *Player) (cover, bool) {
	var ps []*Player
	switch base {
	case BaseFirst:
		ps = []*Player{defense.At(PosFirstBase)}
	case BaseSecond:
		ps = []*Player{defense.At(PosSecondBase), defense.At(PosShortstop)}
	case BaseThird:
		ps = []*Player{defense.At(PosThirdBase)}
	case BaseHome:
		ps = []*Player{catcher}
	}
	var c cover
	n := 0
	for _, p := range ps {
		if p == nil {
			continue
		}
		c.fielding += float64(p.Fielding.InfieldFielding)
		c.rng += float64(p.Fielding.InfieldRange)
		n++
	}
	if n == 0 {
		return cover{}, false
	}
	c.fielding /= float64(n)
	c.rng /= float64(n)
	return c, true
}

// StealSuccessRate is the chance a runner steals base to. coverFielding
// and coverRange belong to whoever takes the throw.
func StealSuccessRate(run RunningAbility, pitching PitchingAbility, catcher FieldingAbility, coverFielding, coverRange float64, to Base) float64 {
	rate := stealBase +
		dev(run.StealingAbility, stealAbilityWeight) +
		dev(run.Speed, stealSpeedWeight) +
		dev(run.Baserunning, stealBaserunningWeight) -
		dev(pitching.HoldRunners, stealHoldWeight) -
		dev(pitching.Control, stealQuicknessWeight) -
		dev(catcher.InfieldArm, stealCatcherArmWeight) -
		dev(catcher.InfieldFielding, stealCatcherFieldWeight) -
		(coverFielding-Neutral)*stealCoverFieldWeight -
		(coverRange-Neutral)*stealCoverRangeWeight
	switch to {
	case BaseThird:
		rate -= stealThirdPenalty
	case BaseHome:
		rate -= stealHomePenalty
	}
	return clamp(rate, 0, 100)
}

// PickoffAttemptRate is the chance the pitcher throws over at all.
func PickoffAttemptRate(holdRunners, stealingAggr int) float64 {
	return clamp(pickoffAttemptBase+dev(holdRunners, pickoffAttemptHoldWeight)+dev(stealingAggr, pickoffAttemptAggrWeight), 0, 100)
}

// LeadDistance scores how far off the bag a runner strays.
func LeadDistance(run RunningAbility, holdRunners int) float64 {
	return clamp(Neutral+
		dev(run.StealingAbility, leadAbilityWeight)+
		dev(run.StealingAggr, leadAggrWeight)-
		dev(run.Baserunning, leadBaserunningWeight)-
		dev(holdRunners, leadHoldWeight), 0, 100)
}

// PickoffSuccessRate is the chance an attempted pickoff retires the runner.
func PickoffSuccessRate(run RunningAbility, holdRunners int, lead, coverFielding, coverRange float64) float64 {
	return clamp(pickoffBase+
		dev(holdRunners, pickoffHoldWeight)+
		(lead-Neutral)*pickoffLeadWeight+
		(coverFielding-Neutral)*pickoffCoverFieldWeight+
		(coverRange-Neutral)*pickoffCoverRangeWeight-
		dev(run.Baserunning, pickoffBaserunningWeight)-
		dev(run.Speed, pickoffSpeedWeight), 0, 100)
}

// WildThrowRate is the chance a failed pickoff gets away.
func WildThrowRate(control int) float64 {
	return clamp(wildThrowBase+math.Max(0, float64(Neutral-control))*wildThrowControlWeight, wildThrowMin, wildThrowMax)
}

// stealRate validates a steal and returns its success rate.
func stealRate(play string, from Base, runnerPlayer, pitcher, catcher *Player, infielders Defense) (float64, error) {
	if !from.IsBag() {
		return 0, missing(play, "a runner on first, second or third")
	}
	if runnerPlayer == nil {
		return 0, missing(play, "the runner's player record")
	}
	if pitcher == nil || pitcher.Pitching == nil {
		return 0, missing(play, "a pitcher with pitching ability")
	}
	if catcher == nil {
		return 0, missing(play, "a catcher")
	}
	to := from.Next()
	c, ok := coverFor(to, infielders, catcher)
	if !ok {
		return 0, missing(play, "a fielder covering "+string(to))
	}
	return StealSuccessRate(runnerPlayer.Running, *pitcher.Pitching, catcher.Fielding, c.fielding, c.rng, to), nil
}

func stealAdvancement(runner *Runner, from Base, safe bool) Advancement {
	if safe {
		return Advancement{Runner: runner, From: from, To: from.Next()}
	}
	return Advancement{Runner: runner, From: from, To: BaseOut}
}

func (r *Resolver) steal(runner *Runner, from Base, safe bool) StealResult {
	res := StealResult{
		Runner:       runner,
		From:         from,
		To:           from.Next(),
		Success:      safe,
		Outcome:      StealCaught,
		Advancements: []Advancement{stealAdvancement(runner, from, safe)},
	}
	if safe {
		res.Outcome = StealSafe
	}
	res.OutsRecorded = countOuts(res.Advancements)
	res.RunsScored = countRuns(res.Advancements)
	res.Commentary = r.narr.join(r.narr.steal(runner.PlayerName, res.To, safe), r.narr.runs(res.RunsScored))
	return res
}

// ResolveSteal resolves a single steal from fromBase. One draw.
func (r *Resolver) ResolveSteal(runner *Runner, fromBase Base, runnerPlayer, pitcher, catcher *Player, infielders Defense) (StealResult, error) {
	if runner == nil {
		return StealResult{}, missing("steal", "a runner")
	}
	rate, err := stealRate("steal", fromBase, runnerPlayer, pitcher, catcher, infielders)
	if err != nil {
		return StealResult{}, err
	}
	return r.steal(runner, fromBase, check(r.src, rate)), nil
}

// DoubleStealTarget is the base the catcher throws to: home when third is
// occupied, else third when second is, else second.
func DoubleStealTarget(runners RunnerState) Base {
	switch {
	case runners.Third != nil:
		return BaseHome
	case runners.Second != nil:
		return BaseThird
	}
	return BaseSecond
}

// ResolveDoubleSteal sends every runner at once. The runner the catcher
// throws on uses the single-steal rate; the rest run at a flat 95.
// runnerPlayers is keyed by player ID.
//
// Draw order: the targeted runner, then the others from lead to trail.
func (r *Resolver) ResolveDoubleSteal(runners RunnerState, runnerPlayers map[string]*Player, pitcher, catcher *Player, infielders Defense) (DoubleStealResult, error) {
	if runners.Occupied() < 2 {
		return DoubleStealResult{}, missing("double steal", "at least two runners")
	}
	target := DoubleStealTarget(runners)
	var targetFrom Base
	for _, b := range leadToTrail {
		if runners.At(b) != nil && b.Next() == target {
			targetFrom = b
		}
	}
	if targetFrom == "" {
		return DoubleStealResult{}, missing("double steal", "a runner headed to "+string(target))
	}
	for _, b := range leadToTrail {
		if rn := runners.At(b); rn != nil && runnerPlayers[rn.PlayerID] == nil {
			return DoubleStealResult{}, missing("double steal", "a player record for "+rn.PlayerName)
		}
	}
	targeted := runners.At(targetFrom)
	rate, err := stealRate("double steal", targetFrom, runnerPlayers[targeted.PlayerID], pitcher, catcher, infielders)
	if err != nil {
		return DoubleStealResult{}, err
	}

	res := DoubleStealResult{Target: target}
	res.Attempts = append(res.Attempts, r.steal(targeted, targetFrom, check(r.src, rate)))
	for _, b := range leadToTrail {
		if rn := runners.At(b); rn != nil && b != targetFrom {
			res.Attempts = append(res.Attempts, r.steal(rn, b, check(r.src, undefendedStealRate)))
		}
	}

	parts := []string{r.narr.say("double_steal.intro", r.narr.base(target))}
	for _, a := range res.Attempts {
		res.Advancements = append(res.Advancements, a.Advancements...)
		parts = append(parts, r.narr.steal(a.Runner.PlayerName, a.To, a.Success))
	}
	res.OutsRecorded = countOuts(res.Advancements)
	res.RunsScored = countRuns(res.Advancements)
	parts = append(parts, r.narr.runs(res.RunsScored))
	res.Commentary = r.narr.join(parts...)
	return res, nil
}

// ResolveHitAndRun combines the runner's break with a pre-resolved swing.
// One draw, for the steal.
//
// A hit with a successful steal moves the runner two bases; with a failed
// one the steal result stands and the runner is out while the batter
// reaches first. An out with a caught runner is a double play; an out with
// a safe runner still moves him up. A swing and miss is a plain steal.
func (r *Resolver) ResolveHitAndRun(runner *Runner, fromBase Base, runnerPlayer, batter, pitcher, catcher *Player, infielders Defense, outcome BattingOutcome) (HitAndRunResult, error) {
	if runner == nil {
		return HitAndRunResult{}, missing("hit-and-run", "a runner")
	}
	if batter == nil {
		return HitAndRunResult{}, missing("hit-and-run", "a batter")
	}
	switch outcome {
	case BattingHit, BattingOut, BattingSwingMiss:
	default:
		return HitAndRunResult{}, missing("hit-and-run", "a batting outcome of hit, out or swing_miss")
	}
	rate, err := stealRate("hit-and-run", fromBase, runnerPlayer, pitcher, catcher, infielders)
	if err != nil {
		return HitAndRunResult{}, err
	}
	safe := check(r.src, rate)

	res := HitAndRunResult{Runner: runner, From: fromBase, BattingOutcome: outcome, StealSuccess: safe}
	switch outcome {
	case BattingHit:
		res.BatterBase = BaseFirst
		if safe {
			res.Outcome = HitAndRunExtraBase
			res.RunnerTo = fromBase.advanceBy(2)
		} else {
			res.Outcome = HitAndRunHitCaught
			res.RunnerTo = BaseOut
		}
	case BattingOut:
		res.BatterBase = BaseOut
		if safe {
			res.Outcome = HitAndRunRunnerMoved
			res.RunnerTo = fromBase.Next()
		} else {
			res.Outcome = HitAndRunDoublePlay
			res.RunnerTo = BaseOut
		}
	default:
		if safe {
			res.Outcome = HitAndRunStolen
			res.RunnerTo = fromBase.Next()
		} else {
			res.Outcome = HitAndRunCaught
			res.RunnerTo = BaseOut
		}
	}
	res.BatterOut = res.BatterBase == BaseOut
	res.Advancements = []Advancement{{Runner: runner, From: fromBase, To: res.RunnerTo}}
	res.OutsRecorded = countOuts(res.Advancements)
	if res.BatterOut {
		res.OutsRecorded++
	}
	res.RunsScored = countRuns(res.Advancements)
	res.Commentary = r.narr.join(r.narr.hitAndRun(batter.Name, runner.PlayerName, res), r.narr.runs(res.RunsScored))
	return res, nil
}

// ResolvePickoff resolves a pickoff throw to targetBase, where runner
// stands. A nil runner is a no-op that draws nothing.
//
// Draw order: attempt, success, then the wild throw on a failed attempt.
func (r *Resolver) ResolvePickoff(runner *Runner, targetBase Base, runnerPlayer, pitcher *Player, infielders Defense) (PickoffResult, error) {
	res := PickoffResult{Target: targetBase, Outcome: PickoffNotAttempted, Advancements: []Advancement{}}
	if runner == nil {
		return res, nil
	}
	if !targetBase.IsBag() {
		return PickoffResult{}, missing("pickoff", "a target of first, second or third")
	}
	if runnerPlayer == nil {
		return PickoffResult{}, missing("pickoff", "the runner's player record")
	}
	if pitcher == nil || pitcher.Pitching == nil {
		return PickoffResult{}, missing("pickoff", "a pitcher with pitching ability")
	}
	c, ok := coverFor(targetBase, infielders, nil)
	if !ok {
		return PickoffResult{}, missing("pickoff", "a fielder covering "+string(targetBase))
	}
	res.Runner = runner
	hold := pitcher.Pitching.HoldRunners

	if !check(r.src, PickoffAttemptRate(hold, runnerPlayer.Running.StealingAggr)) {
		return res, nil
	}
	res.Attempted = true
	lead := LeadDistance(runnerPlayer.Running, hold)
	switch {
	case check(r.src, PickoffSuccessRate(runnerPlayer.Running, hold, lead, c.fielding, c.rng)):
		res.Success = true
		res.Outcome = PickoffOut
		res.Advancements = append(res.Advancements, Advancement{Runner: runner, From: targetBase, To: BaseOut})
	case check(r.src, WildThrowRate(pitcher.Pitching.Control)):
		res.WildThrow = true
		res.Outcome = PickoffWildThrow
		res.Advancements = append(res.Advancements, Advancement{Runner: runner, From: targetBase, To: targetBase.Next()})
	default:
		res.Outcome = PickoffSafe
	}
	res.OutsRecorded = countOuts(res.Advancements)
	res.RunsScored = countRuns(res.Advancements)
	res.Commentary = r.narr.join(r.narr.pickoff(runner.PlayerName, targetBase, res.Outcome), r.narr.runs(res.RunsScored))
	return res, nil
}
