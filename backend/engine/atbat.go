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

// AtBatInstruction is the offensive instruction for a plate appearance.
type AtBatInstruction string

const (
	InstructNormal          AtBatInstruction = "normal"
	InstructWait            AtBatInstruction = "wait"
	InstructAggressive      AtBatInstruction = "aggressive"
	InstructContact         AtBatInstruction = "contact"
	InstructIntentionalWalk AtBatInstruction = "intentional_walk"
)

// PitchResult classifies one pitch.
type PitchResult string

const (
	PitchBall            PitchResult = "ball"
	PitchCalledStrike    PitchResult = "called_strike"
	PitchSwingingStrike  PitchResult = "swinging_strike"
	PitchFoul            PitchResult = "foul"
	PitchInPlay          PitchResult = "in_play"
	PitchIntentionalBall PitchResult = "intentional_ball"
)

// AtBatOutcome is the terminal result of a plate appearance.
type AtBatOutcome string

const (
	AtBatStrikeout AtBatOutcome = "strikeout"
	AtBatWalk      AtBatOutcome = "walk"
	AtBatInPlay    AtBatOutcome = "in_play"
)

// Trajectory of a batted ball.
type Trajectory string

const (
	TrajectoryGround Trajectory = "ground"
	TrajectoryLine   Trajectory = "line"
	TrajectoryFly    Trajectory = "fly"
	TrajectoryPopup  Trajectory = "popup"
)

// Strength is the power class of a batted ball.
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

// Field is the part of the field a batted ball goes to.
type Field string

const (
	FieldLeft   Field = "left"
	FieldCenter Field = "center"
	FieldRight  Field = "right"
)

// BattedBall describes a ball put in play.
type BattedBall struct {
	Trajectory Trajectory `json:"trajectory"`
	Strength   Strength   `json:"strength"`
	Field      Field      `json:"field"`
}

// PitchRecord is one pitch of a plate appearance. Balls and Strikes are
// the count after the pitch.
type PitchRecord struct {
	Number  int         `json:"number"`
	Result  PitchResult `json:"result"`
	InZone  bool        `json:"inZone"`
	Swung   bool        `json:"swung"`
	Balls   int         `json:"balls"`
	Strikes int         `json:"strikes"`
}

// AtBatResult is the outcome of a plate appearance.
type AtBatResult struct {
	Pitches     []PitchRecord `json:"pitches"`
	Outcome     AtBatOutcome  `json:"outcome"`
	BattedBall  *BattedBall   `json:"battedBall,omitempty"`
	Balls       int           `json:"balls"`
	Strikes     int           `json:"strikes"`
	Looking     bool          `json:"looking,omitempty"`
	Intentional bool          `json:"intentional,omitempty"`
	Commentary  string        `json:"commentary"`
}

// At-bat tuning.
const (
	stretchControlPenalty = 3

	zoneBase           = 50.0
	zoneControlWeight  = 0.4
	zoneThreeBallBonus = 10.0
	zoneAheadPenalty   = 8.0
	zoneMin, zoneMax   = 25.0, 80.0

	swingBase            = 65.0
	swingEyeWeight       = 0.2
	swingTwoStrikeBonus  = 20.0
	swingMin, swingMax   = 10.0, 98.0
	chaseBase            = 30.0
	chaseEyeWeight       = 0.4
	chaseMovementWeight  = 0.2
	chaseTwoStrikeBonus  = 10.0
	chaseMin, chaseMax   = 5.0, 70.0
	aggressiveSwingBonus = 15.0

	contactBase              = 75.0
	contactWeight            = 0.5
	contactStuffWeight       = 0.4
	contactMovementWeight    = 0.2
	contactChasePenalty      = 20.0
	contactTwoStrikeBonus    = 5.0
	contactInstructionBonus  = 10.0
	contactMin, contactMax   = 35.0, 95.0
	foulBase                 = 35.0
	foulContactWeight        = 0.2
	foulChaseBonus           = 15.0
	foulTwoStrikeBonus       = 8.0
	foulMin, foulMax         = 15.0, 60.0
	foulRepeatPenalty        = 6.0
	strongBase               = 20.0
	strongPowerWeight        = 0.5
	strongStuffWeight        = 0.2
	strongInstructionDelta   = 10.0
	strongTwoStrikePenalty   = 5.0
	strongMin, strongMax     = 5.0, 60.0
	weakBase                 = 30.0
	weakContactWeight        = 0.3
	weakMovementWeight       = 0.2
	weakMin, weakMax         = 10.0, 55.0
	groundBase               = 44.0
	groundPitcherWeight      = 0.3
	groundPowerWeight        = 0.2
	groundMin, groundMax     = 20.0, 70.0
	lineBase                 = 20.0
	lineContactWeight        = 0.15
	lineMin, lineMax         = 10.0, 30.0
	popupWeight              = 8.0
	pullWeight, centerWeight = 40.0, 35.0
	oppositeWeight           = 25.0
)

// ZoneRate is the chance a pitch is in the strike zone.
func ZoneRate(control, balls, strikes int) float64 {
	rate := zoneBase + dev(control, zoneControlWeight)
	if balls == 3 {
		rate += zoneThreeBallBonus
	}
	if strikes == 2 && balls < 2 {
		rate -= zoneAheadPenalty
	}
	return clamp(rate, zoneMin, zoneMax)
}

// SwingRate is the chance the batter offers at a pitch.
func SwingRate(eye, movement int, inZone bool, strikes int, instr AtBatInstruction) float64 {
	bonus := 0.0
	if instr == InstructAggressive {
		bonus = aggressiveSwingBonus
	}
	if inZone {
		rate := swingBase + dev(eye, swingEyeWeight) + bonus
		if strikes == 2 {
			rate += swingTwoStrikeBonus
		}
		return clamp(rate, swingMin, swingMax)
	}
	rate := chaseBase - dev(eye, chaseEyeWeight) + dev(movement, chaseMovementWeight) + bonus
	if strikes == 2 {
		rate += chaseTwoStrikeBonus
	}
	return clamp(rate, chaseMin, chaseMax)
}

// ContactRate is the chance a swing makes contact.
func ContactRate(contact, stuff, movement int, inZone bool, strikes int, instr AtBatInstruction) float64 {
	rate := contactBase + dev(contact, contactWeight) - dev(stuff, contactStuffWeight) - dev(movement, contactMovementWeight)
	if !inZone {
		rate -= contactChasePenalty
	}
	if strikes == 2 {
		rate += contactTwoStrikeBonus
	}
	switch instr {
	case InstructContact:
		rate += contactInstructionBonus
	case InstructAggressive:
		rate -= contactInstructionBonus
	}
	return clamp(rate, contactMin, contactMax)
}

// FoulRate is the chance contact goes foul. Each consecutive two-strike
// foul lowers it further, which bounds every plate appearance.
func FoulRate(contact int, inZone bool, strikes, twoStrikeFouls int) float64 {
	rate := foulBase - dev(contact, foulContactWeight)
	if !inZone {
		rate += foulChaseBonus
	}
	if strikes == 2 {
		rate += foulTwoStrikeBonus
	}
	return clamp(rate, foulMin, foulMax) - foulRepeatPenalty*float64(twoStrikeFouls)
}

// ResolveAtBat simulates a plate appearance pitch by pitch.
//
// Draw order per pitch: zone, swing (skipped when the instruction decides
// it), contact, foul. A ball in play then draws strength, trajectory and
// field. An intentional walk draws nothing.
func (r *Resolver) ResolveAtBat(batter, pitcher *PlayerInGame, runners RunnerState, pitchCountSoFar int, instr AtBatInstruction) (AtBatResult, error) {
	if batter == nil || batter.Player == nil {
		return AtBatResult{}, missing("at-bat", "a batter")
	}
	if pitcher == nil || pitcher.Player == nil || pitcher.Pitching == nil {
		return AtBatResult{}, missing("at-bat", "a pitcher with pitching ability")
	}
	if instr == "" {
		instr = InstructNormal
	}

	res := AtBatResult{}
	if instr == InstructIntentionalWalk {
		for i := 1; i <= 4; i++ {
			res.Pitches = append(res.Pitches, PitchRecord{
				Number: pitchCountSoFar + i,
				Result: PitchIntentionalBall,
				Balls:  i,
			})
		}
		res.Outcome = AtBatWalk
		res.Balls = 4
		res.Intentional = true
		res.Commentary = r.narr.atBat(batter.Name, res)
		return res, nil
	}

	bat := EffectiveBatting(batter.Player, pitcher.Player)
	stretch := !runners.Empty()

	balls, strikes, twoStrikeFouls := 0, 0, 0
	number := pitchCountSoFar
	for {
		pa, err := EffectivePitching(pitcher.Player, number, batter.Player)
		if err != nil {
			return AtBatResult{}, err
		}
		number++
		control := pa.Control
		if stretch {
			control -= stretchControlPenalty
		}

		p := PitchRecord{Number: number}
		p.InZone = check(r.src, ZoneRate(control, balls, strikes))

		if instr == InstructWait && strikes < 2 {
			p.Swung = false
		} else {
			p.Swung = check(r.src, SwingRate(bat.Eye, pa.Movement, p.InZone, strikes, instr))
		}

		switch {
		case !p.Swung && p.InZone:
			p.Result = PitchCalledStrike
			strikes++
		case !p.Swung:
			p.Result = PitchBall
			balls++
		case !check(r.src, ContactRate(bat.Contact, pa.Stuff, pa.Movement, p.InZone, strikes, instr)):
			p.Result = PitchSwingingStrike
			strikes++
		case check(r.src, FoulRate(bat.Contact, p.InZone, strikes, twoStrikeFouls)):
			p.Result = PitchFoul
			if strikes < 2 {
				strikes++
			} else {
				twoStrikeFouls++
			}
		default:
			p.Result = PitchInPlay
		}

		p.Balls, p.Strikes = balls, strikes
		res.Pitches = append(res.Pitches, p)
		res.Balls, res.Strikes = balls, strikes

		switch {
		case p.Result == PitchInPlay:
			ball := r.battedBall(batter.Player, pitcher.Player, bat, pa, strikes, instr)
			res.Outcome = AtBatInPlay
			res.BattedBall = &ball
		case balls == 4:
			res.Outcome = AtBatWalk
		case strikes == 3:
			res.Outcome = AtBatStrikeout
			res.Looking = p.Result == PitchCalledStrike
		default:
			continue
		}
		res.Commentary = r.narr.atBat(batter.Name, res)
		return res, nil
	}
}

// TrajectoryWeights returns the ground, line and fly weights of a ball in
// play. Popups always take popupWeight; ground and line are scaled down
// when together they would leave the fly weight negative.
func TrajectoryWeights(groundBall, power, contact int) (ground, line, fly float64) {
	ground = clamp(groundBase+dev(groundBall, groundPitcherWeight)-dev(power, groundPowerWeight), groundMin, groundMax)
	line = clamp(lineBase+dev(contact, lineContactWeight), lineMin, lineMax)
	if room := 100 - popupWeight; ground+line > room {
		scale := room / (ground + line)
		return ground * scale, line * scale, 0
	}
	return ground, line, 100 - ground - line - popupWeight
}

// battedBall draws strength, trajectory and field, in that order.
func (r *Resolver) battedBall(batter, pitcher *Player, bat BattingAbility, pa PitchingAbility, strikes int, instr AtBatInstruction) BattedBall {
	strong := strongBase + dev(bat.Power, strongPowerWeight) - dev(pa.Stuff, strongStuffWeight)
	switch instr {
	case InstructAggressive:
		strong += strongInstructionDelta
	case InstructContact:
		strong -= strongInstructionDelta
	}
	if strikes == 2 {
		strong -= strongTwoStrikePenalty
	}
	strong = clamp(strong, strongMin, strongMax)
	weak := clamp(weakBase-dev(bat.Contact, weakContactWeight)+dev(pa.Movement, weakMovementWeight), weakMin, weakMax)

	var ball BattedBall
	switch x := roll(r.src); {
	case x < strong:
		ball.Strength = StrengthStrong
	case x < strong+weak:
		ball.Strength = StrengthWeak
	default:
		ball.Strength = StrengthMedium
	}

	ground, line, fly := TrajectoryWeights(pa.GroundBall, bat.Power, bat.Contact)
	switch pick(r.src, ground, line, fly, popupWeight) {
	case 0:
		ball.Trajectory = TrajectoryGround
	case 1:
		ball.Trajectory = TrajectoryLine
	case 2:
		ball.Trajectory = TrajectoryFly
	default:
		ball.Trajectory = TrajectoryPopup
	}

	pull, opposite := FieldLeft, FieldRight
	if battingSide(batter.Bats, pitcher.Throws) == Left {
		pull, opposite = FieldRight, FieldLeft
	}
	switch pick(r.src, pullWeight, centerWeight, oppositeWeight) {
	case 0:
		ball.Field = pull
	case 1:
		ball.Field = FieldCenter
	default:
		ball.Field = opposite
	}
	return ball
}
