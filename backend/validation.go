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

package backend

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/ttbt-io/skoresim/backend/engine"
	"golang.org/x/text/language"
)

// uuidRegex is a regex for standard UUIDs (8-4-4-4-12 hex digits)
var uuidRegex = regexp.MustCompile(`^[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{12}$`)

// isValidUUID checks if the string is a valid UUID.
func isValidUUID(id string) bool {
	return uuidRegex.MatchString(id)
}

// validateStringLen checks if the string length is within the limit.
func validateStringLen(s string, max int, name string) error {
	if len(s) > max {
		return fmt.Errorf("%s too long (max %d chars)", name, max)
	}
	return nil
}

// validateAbility checks a 1-100 rating. Splits pass allowZero: 0 means
// no split.
func validateAbility(v int, name string, allowZero bool) error {
	if allowZero && v == 0 {
		return nil
	}
	if v < 1 || v > 100 {
		return fmt.Errorf("%s out of range: %d", name, v)
	}
	return nil
}

type rating struct {
	name      string
	value     int
	allowZero bool
}

func validateRatings(ratings []rating) error {
	for _, r := range ratings {
		if err := validateAbility(r.value, r.name, r.allowZero); err != nil {
			return err
		}
	}
	return nil
}

var validPositions = map[engine.Position]bool{
	engine.PosPitcher: true, engine.PosCatcher: true, engine.PosFirstBase: true,
	engine.PosSecondBase: true, engine.PosThirdBase: true, engine.PosShortstop: true,
	engine.PosLeftField: true, engine.PosCenter: true, engine.PosRightField: true,
	engine.PosDH: true,
}

var validConditions = map[engine.Condition]bool{
	"": true, engine.ConditionExcellent: true, engine.ConditionGood: true,
	engine.ConditionNormal: true, engine.ConditionPoor: true, engine.ConditionTerrible: true,
}

var validFatigue = map[engine.Fatigue]bool{
	"": true, engine.FatigueFresh: true, engine.FatigueSlight: true,
	engine.FatigueTired: true, engine.FatigueExhausted: true,
}

// ValidatePlayer checks a player's identity and ratings.
func ValidatePlayer(p *engine.Player) error {
	if p == nil {
		return fmt.Errorf("missing player")
	}
	if p.ID == "" {
		return fmt.Errorf("missing player id")
	}
	if err := validateStringLen(p.ID, maxIDLen, "player id"); err != nil {
		return err
	}
	if p.Name == "" {
		return fmt.Errorf("player %s: missing name", p.ID)
	}
	if err := validateStringLen(p.Name, maxNameLen, "player name"); err != nil {
		return err
	}
	if err := validateStringLen(p.Number, maxNumberLen, "player number"); err != nil {
		return err
	}
	if !validPositions[p.Position] {
		return fmt.Errorf("player %s: invalid position: %q", p.ID, p.Position)
	}
	switch p.Bats {
	case engine.Left, engine.Right, engine.Switch:
	default:
		return fmt.Errorf("player %s: invalid bats: %q", p.ID, p.Bats)
	}
	switch p.Throws {
	case engine.Left, engine.Right:
	default:
		return fmt.Errorf("player %s: invalid throws: %q", p.ID, p.Throws)
	}
	if !validConditions[p.Condition] {
		return fmt.Errorf("player %s: invalid condition: %q", p.ID, p.Condition)
	}
	if !validFatigue[p.Fatigue] {
		return fmt.Errorf("player %s: invalid fatigue: %q", p.ID, p.Fatigue)
	}

	b, r, f := p.Batting, p.Running, p.Fielding
	ratings := []rating{
		{"contact", b.Contact, false},
		{"power", b.Power, false},
		{"eye", b.Eye, false},
		{"babip", b.BABIP, false},
		{"sacrifice_bunt", b.SacrificeBunt, false},
		{"bunt_for_hit", b.BuntForHit, false},
		{"vs_lhp", b.VsLHP, true},
		{"vs_rhp", b.VsRHP, true},
		{"speed", r.Speed, false},
		{"baserunning", r.Baserunning, false},
		{"stealing_ability", r.StealingAbility, false},
		{"stealing_aggr", r.StealingAggr, false},
		{"infield_range", f.InfieldRange, false},
		{"infield_arm", f.InfieldArm, false},
		{"infield_fielding", f.InfieldFielding, false},
		{"outfield_range", f.OutfieldRange, false},
		{"outfield_arm", f.OutfieldArm, false},
		{"outfield_fielding", f.OutfieldFielding, false},
	}
	if pa := p.Pitching; pa != nil {
		ratings = append(ratings,
			rating{"velocity", pa.Velocity, false},
			rating{"stuff", pa.Stuff, false},
			rating{"control", pa.Control, false},
			rating{"movement", pa.Movement, false},
			rating{"stamina", pa.Stamina, false},
			rating{"hold_runners", pa.HoldRunners, false},
			rating{"ground_ball", pa.GroundBall, false},
			rating{"vs_lhb", pa.VsLHB, true},
			rating{"vs_rhb", pa.VsRHB, true},
		)
	}
	if err := validateRatings(ratings); err != nil {
		return fmt.Errorf("player %s: %w", p.ID, err)
	}
	return nil
}

// fieldedPositions must each be covered by the lineup. The pitcher may
// come from the roster's pitcher entry instead.
var fieldedPositions = []engine.Position{
	engine.PosCatcher, engine.PosFirstBase, engine.PosSecondBase, engine.PosThirdBase,
	engine.PosShortstop, engine.PosLeftField, engine.PosCenter, engine.PosRightField,
}

// ValidateRoster checks that a roster can take the field: nine batters
// with unique ids, every position covered and a pitcher who can pitch.
func ValidateRoster(r *Roster) error {
	if r == nil {
		return fmt.Errorf("missing roster")
	}
	if r.ID != "" && !isValidUUID(r.ID) {
		return fmt.Errorf("invalid roster ID format: %s", r.ID)
	}
	if r.Name == "" {
		return fmt.Errorf("missing roster name")
	}
	if err := validateStringLen(r.Name, maxNameLen, "name"); err != nil {
		return err
	}
	if err := validateStringLen(r.ShortName, maxShortNameLen, "short name"); err != nil {
		return err
	}
	if len(r.Lineup) != lineupSize {
		return fmt.Errorf("lineup must have %d players, got %d", lineupSize, len(r.Lineup))
	}
	if len(r.Bench) > maxBenchSize {
		return fmt.Errorf("bench too large (max %d players)", maxBenchSize)
	}

	seen := make(map[string]bool)
	for _, p := range r.players() {
		if err := ValidatePlayer(p); err != nil {
			return err
		}
		if seen[p.ID] && p != r.Pitcher {
			return fmt.Errorf("duplicate player id: %s", p.ID)
		}
		seen[p.ID] = true
	}
	for i, p := range r.Lineup {
		if p == nil {
			return fmt.Errorf("lineup slot %d is empty", i+1)
		}
	}

	covered := make(map[engine.Position]int)
	for _, p := range r.Lineup {
		covered[p.Position]++
	}
	for _, pos := range fieldedPositions {
		switch covered[pos] {
		case 0:
			return fmt.Errorf("no fielder at %s", pos)
		case 1:
		default:
			return fmt.Errorf("more than one fielder at %s", pos)
		}
	}
	if covered[engine.PosDH] > 1 {
		return fmt.Errorf("more than one designated hitter")
	}

	sp := r.StartingPitcher()
	if sp == nil {
		return fmt.Errorf("missing pitcher")
	}
	if sp.Pitching == nil {
		return fmt.Errorf("pitcher %s has no pitching ratings", sp.ID)
	}
	return nil
}

// ValidateRosterJSON decodes and validates a roster from raw JSON.
func ValidateRosterJSON(data []byte) (*Roster, error) {
	var r Roster
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("invalid roster JSON: %w", err)
	}
	r.normalize()
	if err := ValidateRoster(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// validatePlanStep checks one plan step's action and its options.
func validatePlanStep(step PlanStep) error {
	if !validActions[step.Action] {
		return fmt.Errorf("unknown action: %q", step.Action)
	}
	switch step.Swing {
	case "", engine.InstructNormal, engine.InstructWait, engine.InstructAggressive,
		engine.InstructContact, engine.InstructIntentionalWalk:
	default:
		return fmt.Errorf("unknown swing instruction: %q", step.Swing)
	}
	switch step.Base {
	case "", engine.BaseFirst, engine.BaseSecond, engine.BaseThird:
	default:
		return fmt.Errorf("invalid base: %q", step.Base)
	}
	switch step.Batting {
	case "", engine.BattingHit, engine.BattingOut, engine.BattingSwingMiss:
	default:
		return fmt.Errorf("invalid batting outcome: %q", step.Batting)
	}
	return nil
}

// ValidateRequest checks a half-inning request after rosters have been
// resolved.
func ValidateRequest(req *HalfInningRequest) error {
	if req == nil {
		return fmt.Errorf("missing request")
	}
	if req.Home == nil || req.Away == nil {
		return fmt.Errorf("both home and away rosters are required")
	}
	if err := ValidateRoster(req.Home); err != nil {
		return fmt.Errorf("home: %w", err)
	}
	if err := ValidateRoster(req.Away); err != nil {
		return fmt.Errorf("away: %w", err)
	}
	if req.Inning < 1 || req.Inning > 99 {
		return fmt.Errorf("invalid inning: %d", req.Inning)
	}
	if req.Half != HalfTop && req.Half != HalfBottom {
		return fmt.Errorf("invalid half: %q", req.Half)
	}
	if req.LeadOff < 0 || req.LeadOff >= lineupSize {
		return fmt.Errorf("invalid lead-off slot: %d", req.LeadOff)
	}
	if req.RunLimit < 0 {
		return fmt.Errorf("invalid run limit: %d", req.RunLimit)
	}
	switch req.Shift {
	case "", engine.ShiftNone, engine.ShiftPull:
	default:
		return fmt.Errorf("invalid shift: %q", req.Shift)
	}
	if req.Lang != "" {
		if _, err := language.Parse(req.Lang); err != nil {
			return fmt.Errorf("invalid lang: %w", err)
		}
	}
	if len(req.Plan) > maxPlanSteps {
		return fmt.Errorf("plan too long (max %d steps)", maxPlanSteps)
	}
	for i, step := range req.Plan {
		if err := validatePlanStep(step); err != nil {
			return fmt.Errorf("invalid plan step at index %d: %w", i, err)
		}
	}
	return nil
}
