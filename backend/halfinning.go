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
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/ttbt-io/skoresim/backend/engine"
	"golang.org/x/text/language"
)

// PlanAction is a manager's instruction for the batting side.
type PlanAction string

const (
	PlanSwing           PlanAction = "swing"
	PlanIntentionalWalk PlanAction = "intentional_walk"
	PlanBunt            PlanAction = "bunt"
	PlanSafetyBunt      PlanAction = "safety_bunt"
	PlanSqueeze         PlanAction = "squeeze"
	PlanSteal           PlanAction = "steal"
	PlanDoubleSteal     PlanAction = "double_steal"
	PlanHitAndRun       PlanAction = "hit_and_run"
	PlanPickoff         PlanAction = "pickoff"
)

var validActions = map[PlanAction]bool{
	PlanSwing: true, PlanIntentionalWalk: true, PlanBunt: true, PlanSafetyBunt: true,
	PlanSqueeze: true, PlanSteal: true, PlanDoubleSteal: true, PlanHitAndRun: true,
	PlanPickoff: true,
}

// prePitch reports whether the action happens between pitches and leaves
// the batter at the plate.
func (a PlanAction) prePitch() bool {
	return a == PlanSteal || a == PlanDoubleSteal || a == PlanPickoff
}

// PlanStep is one queued instruction. Base picks the runner for a steal or
// a pickoff (default: the lead runner). Batting fixes the swing of a
// hit-and-run; when empty the swing is drawn.
type PlanStep struct {
	Action  PlanAction              `json:"action" yaml:"action"`
	Swing   engine.AtBatInstruction `json:"swing,omitempty" yaml:"swing"`
	Base    engine.Base             `json:"base,omitempty" yaml:"base"`
	Batting engine.BattingOutcome   `json:"batting,omitempty" yaml:"batting"`
}

// HalfInningRequest describes one half-inning to simulate. Home and Away
// are resolved from HomeID and AwayID by the server when not inlined.
type HalfInningRequest struct {
	Home     *Roster      `json:"home,omitempty"`
	Away     *Roster      `json:"away,omitempty"`
	HomeID   string       `json:"homeId,omitempty"`
	AwayID   string       `json:"awayId,omitempty"`
	Inning   int          `json:"inning"`
	Half     string       `json:"half"`
	LeadOff  int          `json:"leadOff"`
	Seed     *uint64      `json:"seed,omitempty"`
	Lang     string       `json:"lang,omitempty"`
	Shift    engine.Shift `json:"shift,omitempty"`
	RunLimit int          `json:"runLimit,omitempty"`
	Plan     []PlanStep   `json:"plan,omitempty"`
}

// PlayEvent is one resolved engine call. Result holds the engine's result
// struct as JSON.
type PlayEvent struct {
	ID          string             `json:"id"`
	Seq         int                `json:"seq"`
	Type        string             `json:"type"`
	Outcome     string             `json:"outcome"`
	Inning      int                `json:"inning"`
	Half        string             `json:"half"`
	Batter      string             `json:"batter"`
	Pitcher     string             `json:"pitcher"`
	Pitches     int                `json:"pitches,omitempty"`
	OutsBefore  int                `json:"outsBefore"`
	OutsAfter   int                `json:"outsAfter"`
	RunsScored  int                `json:"runsScored"`
	Before      engine.RunnerState `json:"before"`
	After       engine.RunnerState `json:"after"`
	Description string             `json:"description"`
	Result      json.RawMessage    `json:"result"`
}

// EventSink receives play events as they are resolved.
type EventSink interface {
	Publish(simID string, ev PlayEvent)
}

// BoxLine is one batter's line for the half-inning.
type BoxLine struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	PA       int    `json:"pa"`
	AB       int    `json:"ab"`
	H        int    `json:"h"`
	R        int    `json:"r"`
	RBI      int    `json:"rbi"`
}

// SimRecord is a simulated half-inning as stored and served.
type SimRecord struct {
	ID            string      `json:"id"`
	SchemaVersion int         `json:"schemaVersion"`
	CreatedAt     int64       `json:"createdAt"`
	Seed          uint64      `json:"seed"`
	Lang          string      `json:"lang"`
	Home          string      `json:"home"`
	Away          string      `json:"away"`
	Inning        int         `json:"inning"`
	Half          string      `json:"half"`
	Runs          int         `json:"runs"`
	Outs          int         `json:"outs"`
	Hits          int         `json:"hits"`
	LeftOnBase    int         `json:"leftOnBase"`
	PitchCount    int         `json:"pitchCount"`
	NextBatter    int         `json:"nextBatter"`
	Box           []BoxLine   `json:"box"`
	Skipped       []string    `json:"skipped,omitempty"`
	Events        []PlayEvent `json:"events"`

	// Status can be "complete" or "deleted"
	Status string `json:"status"`
	// DeletedAt is the timestamp (Unix Nano) when the record was deleted.
	DeletedAt int64 `json:"deletedAt,omitempty"`
}

// Simulator plays half-innings. Each Run builds its own random source and
// resolver, so one Simulator serves concurrent requests.
type Simulator struct {
	// Sink, when set, receives every event as it is resolved.
	Sink EventSink
	// Lang is the commentary language when the request names none.
	Lang language.Tag
	// Seed is used when the request carries none. Zero draws a fresh seed.
	Seed  uint64
	Debug bool
}

// NewSimulator returns a Simulator publishing to sink.
func NewSimulator(sink EventSink, lang language.Tag, seed uint64, debug bool) *Simulator {
	return &Simulator{Sink: sink, Lang: lang, Seed: seed, Debug: debug}
}

func (s *Simulator) debugf(format string, args ...any) {
	if s.Debug {
		log.Printf("[DEBUG SIM] "+format, args...)
	}
}

// Run simulates the half-inning described by req until the third out, the
// run limit or the end of the context.
func (s *Simulator) Run(ctx context.Context, req HalfInningRequest) (*SimRecord, error) {
	if err := ValidateRequest(&req); err != nil {
		return nil, err
	}
	seed := s.Seed
	if req.Seed != nil {
		seed = *req.Seed
	} else if seed == 0 {
		var err error
		if seed, err = engine.NewSeed(); err != nil {
			return nil, err
		}
	}
	lang := s.Lang
	if req.Lang != "" {
		lang = language.Make(req.Lang)
	}
	narr := engine.NewNarrator(lang)
	src := engine.NewSource(seed)

	batting, fielding := req.Away, req.Home
	if req.Half == HalfBottom {
		batting, fielding = req.Home, req.Away
	}
	rec := &SimRecord{
		ID:            uuid.NewString(),
		SchemaVersion: CurrentSchemaVersion,
		CreatedAt:     time.Now().UnixNano(),
		Seed:          seed,
		Lang:          narr.Language().String(),
		Home:          req.Home.Name,
		Away:          req.Away.Name,
		Inning:        req.Inning,
		Half:          req.Half,
		Box:           make([]BoxLine, 0, lineupSize),
		Events:        make([]PlayEvent, 0),
		Status:        StatusComplete,
	}
	st := newInning(s, rec, engine.NewResolver(src, narr), src, batting, fielding, req)
	s.debugf("%s: %s %d, %s batting, seed %d", rec.ID, req.Half, req.Inning, batting.Name, seed)

	for st.outs < 3 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if req.RunLimit > 0 && st.runs >= req.RunLimit {
			break
		}
		if st.plateAppearances >= maxPlateAppearance {
			return nil, fmt.Errorf("half-inning did not end after %d plate appearances", maxPlateAppearance)
		}
		if err := st.play(st.nextStep()); err != nil {
			return nil, fmt.Errorf("%s %d: %w", req.Half, req.Inning, err)
		}
	}
	st.finish()
	return rec, nil
}

// inning is the mutable state of one half-inning in progress.
type inning struct {
	sim     *Simulator
	rec     *SimRecord
	res     *engine.Resolver
	src     engine.Source
	lineup  []*engine.PlayerInGame
	byID    map[string]*engine.PlayerInGame
	pa      map[string]int
	pitcher *engine.PlayerInGame
	defense engine.Defense
	shift   engine.Shift
	plan    []PlanStep
	order   int
	runners engine.RunnerState
	outs    int
	runs    int
	hits    int
	strikes int

	plateAppearances int
}

func newInning(s *Simulator, rec *SimRecord, res *engine.Resolver, src engine.Source, batting, fielding *Roster, req HalfInningRequest) *inning {
	st := &inning{
		sim:     s,
		rec:     rec,
		res:     res,
		src:     src,
		byID:    make(map[string]*engine.PlayerInGame),
		pa:      make(map[string]int),
		pitcher: engine.NewPlayerInGame(fielding.StartingPitcher()),
		defense: fielding.Defense(),
		shift:   req.Shift,
		plan:    append([]PlanStep(nil), req.Plan...),
		order:   req.LeadOff,
	}
	if st.shift == "" {
		st.shift = engine.ShiftNone
	}
	for _, p := range batting.Lineup {
		pig := engine.NewPlayerInGame(p)
		st.lineup = append(st.lineup, pig)
		st.byID[p.ID] = pig
	}
	return st
}

func (st *inning) batter() *engine.PlayerInGame {
	return st.lineup[st.order]
}

func (st *inning) nextStep() PlanStep {
	if len(st.plan) == 0 {
		return PlanStep{Action: PlanSwing, Swing: engine.InstructNormal}
	}
	step := st.plan[0]
	st.plan = st.plan[1:]
	return step
}

// skip records a step whose precondition does not hold. A skipped plate
// appearance step falls back to a normal swing.
func (st *inning) skip(step PlanStep, reason string) error {
	log.Printf("[SIM] %s: skipping %s: %s", st.rec.ID, step.Action, reason)
	st.rec.Skipped = append(st.rec.Skipped, fmt.Sprintf("%s: %s", step.Action, reason))
	if step.Action.prePitch() {
		return nil
	}
	return st.swing(engine.InstructNormal)
}

func (st *inning) play(step PlanStep) error {
	switch step.Action {
	case PlanSwing:
		instr := step.Swing
		if instr == "" {
			instr = engine.InstructNormal
		}
		return st.swing(instr)
	case PlanIntentionalWalk:
		return st.swing(engine.InstructIntentionalWalk)
	case PlanBunt:
		if st.runners.Empty() || st.outs >= 2 {
			return st.skip(step, "a sacrifice needs a runner and fewer than two outs")
		}
		return st.bunt(engine.BuntSacrifice)
	case PlanSafetyBunt:
		return st.bunt(engine.BuntSafety)
	case PlanSqueeze:
		if st.runners.Third == nil || st.outs >= 2 {
			return st.skip(step, "a squeeze needs a runner on third and fewer than two outs")
		}
		return st.squeeze()
	case PlanSteal:
		return st.steal(step)
	case PlanDoubleSteal:
		if st.runners.Occupied() < 2 {
			return st.skip(step, "a double steal needs two runners")
		}
		return st.doubleSteal()
	case PlanHitAndRun:
		lead := st.runners.Lead()
		if st.runners.Occupied() != 1 || (lead != engine.BaseFirst && lead != engine.BaseSecond) {
			return st.skip(step, "a hit-and-run needs a lone runner on first or second")
		}
		return st.hitAndRun(lead, step.Batting)
	case PlanPickoff:
		return st.pickoff(step)
	}
	return fmt.Errorf("unknown action: %q", step.Action)
}

// event starts a play event for the current state.
func (st *inning) event(typ, outcome, batter, description string) PlayEvent {
	return PlayEvent{
		ID:          uuid.NewString(),
		Type:        typ,
		Outcome:     outcome,
		Inning:      st.rec.Inning,
		Half:        st.rec.Half,
		Batter:      batter,
		Pitcher:     st.pitcher.Name,
		Description: description,
	}
}

// apply moves the runners, places the batter and records the event. A
// play that makes the third out scores nothing. Runs are credited to the
// runners who scored and, when rbi is set, driven in by the batter.
func (st *inning) apply(ev PlayEvent, result any, advs []engine.Advancement, batter *engine.PlayerInGame, batterTo engine.Base, rbi bool) error {
	var br *engine.Runner
	if batter != nil {
		br = batter.Runner()
	}
	next, tr, err := st.runners.Apply(advs, br, batterTo)
	if err != nil {
		return fmt.Errorf("%s: %w", ev.Type, err)
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	ev.Before, ev.OutsBefore = st.runners, st.outs
	st.outs += tr.Outs
	if st.outs >= 3 {
		st.outs = 3
		tr.Runs, tr.Scored = 0, nil
	}
	for _, r := range tr.Scored {
		if p := st.byID[r.PlayerID]; p != nil {
			p.Runs++
		}
	}
	if rbi && batter != nil {
		batter.RBIs += tr.Runs
	}
	st.runs += tr.Runs
	st.runners = next

	ev.Seq = len(st.rec.Events) + 1
	ev.After, ev.OutsAfter, ev.RunsScored = next, st.outs, tr.Runs
	ev.Result = raw
	st.rec.Events = append(st.rec.Events, ev)
	st.sim.debugf("%s #%d %s/%s outs=%d runs=%d", st.rec.ID, ev.Seq, ev.Type, ev.Outcome, st.outs, st.runs)
	if st.sim.Sink != nil {
		st.sim.Sink.Publish(st.rec.ID, ev)
	}
	return nil
}

// endPA closes the batter's plate appearance and brings up the next one.
func (st *inning) endPA(batter *engine.PlayerInGame, atBat, hit bool) {
	st.pa[batter.ID]++
	st.plateAppearances++
	if atBat {
		batter.AtBats++
	}
	if hit {
		batter.Hits++
		st.hits++
	}
	st.order = (st.order + 1) % len(st.lineup)
	st.strikes = 0
}

func (st *inning) swing(instr engine.AtBatInstruction) error {
	batter := st.batter()
	ab, err := st.res.ResolveAtBat(batter, st.pitcher, st.runners, st.pitcher.PitchCount, instr)
	if err != nil {
		return err
	}
	st.pitcher.PitchCount += len(ab.Pitches)
	ev := st.event(EventAtBat, string(ab.Outcome), batter.Name, ab.Commentary)
	ev.Pitches = len(ab.Pitches)

	switch ab.Outcome {
	case engine.AtBatWalk:
		if err := st.apply(ev, ab, engine.ForcedAdvances(st.runners), batter, engine.BaseFirst, true); err != nil {
			return err
		}
		st.endPA(batter, false, false)
		return nil
	case engine.AtBatStrikeout:
		if err := st.apply(ev, ab, nil, batter, engine.BaseOut, false); err != nil {
			return err
		}
		st.endPA(batter, true, false)
		return nil
	}
	if err := st.apply(ev, ab, nil, nil, "", false); err != nil {
		return err
	}
	return st.ballInPlay(batter, *ab.BattedBall)
}

func (st *inning) ballInPlay(batter *engine.PlayerInGame, ball engine.BattedBall) error {
	dr, err := st.res.ResolveBallInPlay(ball, batter.Player, st.defense, st.runners, st.outs, st.shift)
	if err != nil {
		return err
	}
	ev := st.event(EventBallInPlay, string(dr.Play), batter.Name, dr.Commentary)
	rbi := dr.Play != engine.PlayDoublePlay && dr.Play != engine.PlayError
	if err := st.apply(ev, dr, dr.Advancements, batter, dr.BatterBase, rbi); err != nil {
		return err
	}
	hit := dr.Outcome == engine.DefenseHit || dr.Outcome == engine.DefenseHomeRun
	st.endPA(batter, dr.Play != engine.PlaySacFly, hit)
	return nil
}

func (st *inning) bunt(buntType engine.BuntType) error {
	batter := st.batter()
	br, err := st.res.ResolveBunt(batter.Player, st.pitcher.Player, buntType, st.runners, 0, st.strikes)
	if err != nil {
		return err
	}
	st.pitcher.PitchCount++
	ev := st.event(EventBunt, string(br.Outcome), batter.Name, br.Commentary)
	ev.Pitches = 1

	switch {
	case br.Success:
		if err := st.apply(ev, br, nil, nil, "", false); err != nil {
			return err
		}
		return st.buntFielding(batter, *br.Ball, buntType)
	case br.BatterOut:
		if err := st.apply(ev, br, nil, batter, engine.BaseOut, false); err != nil {
			return err
		}
		st.endPA(batter, true, false)
		return nil
	}
	if err := st.apply(ev, br, nil, nil, "", false); err != nil {
		return err
	}
	st.strikes = br.Strikes
	return nil
}

func (st *inning) buntFielding(batter *engine.PlayerInGame, ball engine.BuntBall, buntType engine.BuntType) error {
	hadRunners := !st.runners.Empty()
	fr, err := st.res.ResolveFielding(ball, buntType, batter.Player, st.defense.At(ball.Fielder), st.defense.At(ball.Assist), st.runners, st.outs)
	if err != nil {
		return err
	}
	ev := st.event(EventBuntFielding, string(fr.Play), batter.Name, fr.Commentary)
	if err := st.apply(ev, fr, fr.Advancements, batter, fr.BatterBase, fr.Play != engine.PlayFieldersChoice); err != nil {
		return err
	}
	sacrifice := fr.Play == engine.PlaySacrifice && hadRunners
	st.endPA(batter, !sacrifice, fr.Outcome == engine.DefenseHit)
	return nil
}

func (st *inning) squeeze() error {
	batter := st.batter()
	third := st.runners.Third
	rp := st.byID[third.PlayerID]
	if rp == nil {
		return fmt.Errorf("squeeze: runner %s is not in the lineup", third.PlayerName)
	}
	sq, err := st.res.ResolveSqueeze(batter.Player, st.pitcher.Player, third, rp.Player, 0, st.strikes)
	if err != nil {
		return err
	}
	st.pitcher.PitchCount++
	ev := st.event(EventSqueeze, string(sq.Outcome), batter.Name, sq.Commentary)
	ev.Pitches = 1

	var batterTo engine.Base
	switch {
	case sq.BatterOut:
		batterTo = engine.BaseOut
	case sq.BatterReachedBase:
		batterTo = engine.BaseFirst
	}
	advs := sq.Advancements
	if sq.Success {
		// Trailing runners move up on the bunt.
		for _, b := range []engine.Base{engine.BaseSecond, engine.BaseFirst} {
			if r := st.runners.At(b); r != nil {
				advs = append(advs, engine.Advancement{Runner: r, From: b, To: b.Next()})
			}
		}
		advs = st.runners.Push(advs, batterTo)
	}
	if err := st.apply(ev, sq, advs, batter, batterTo, sq.RunnerSafe); err != nil {
		return err
	}
	if batterTo == "" {
		st.strikes = sq.Strikes
		return nil
	}
	sacrifice := sq.Success && sq.RunnerSafe
	st.endPA(batter, !sacrifice, false)
	return nil
}

func (st *inning) runnerPlayer(r *engine.Runner) (*engine.Player, error) {
	p := st.byID[r.PlayerID]
	if p == nil {
		return nil, fmt.Errorf("runner %s is not in the lineup", r.PlayerName)
	}
	return p.Player, nil
}

func (st *inning) steal(step PlanStep) error {
	from := step.Base
	if from == "" {
		from = st.runners.Lead()
	}
	runner := st.runners.At(from)
	if runner == nil {
		return st.skip(step, "no runner to steal")
	}
	if to := from.Next(); to.IsBag() && st.runners.At(to) != nil {
		return st.skip(step, "the next base is occupied")
	}
	rp, err := st.runnerPlayer(runner)
	if err != nil {
		return err
	}
	sr, err := st.res.ResolveSteal(runner, from, rp, st.pitcher.Player, st.defense.At(engine.PosCatcher), st.defense)
	if err != nil {
		return err
	}
	ev := st.event(EventSteal, string(sr.Outcome), st.batter().Name, sr.Commentary)
	return st.apply(ev, sr, sr.Advancements, nil, "", false)
}

func (st *inning) doubleSteal() error {
	players := make(map[string]*engine.Player)
	for _, b := range []engine.Base{engine.BaseFirst, engine.BaseSecond, engine.BaseThird} {
		if r := st.runners.At(b); r != nil {
			rp, err := st.runnerPlayer(r)
			if err != nil {
				return err
			}
			players[r.PlayerID] = rp
		}
	}
	ds, err := st.res.ResolveDoubleSteal(st.runners, players, st.pitcher.Player, st.defense.At(engine.PosCatcher), st.defense)
	if err != nil {
		return err
	}
	outcome := string(engine.StealSafe)
	if ds.OutsRecorded > 0 {
		outcome = string(engine.StealCaught)
	}
	ev := st.event(EventDoubleSteal, outcome, st.batter().Name, ds.Commentary)
	return st.apply(ev, ds, ds.Advancements, nil, "", false)
}

func (st *inning) pickoff(step PlanStep) error {
	target := step.Base
	if target == "" {
		target = st.runners.Lead()
	}
	runner := st.runners.At(target)
	if runner == nil {
		return st.skip(step, "no runner to pick off")
	}
	rp, err := st.runnerPlayer(runner)
	if err != nil {
		return err
	}
	pr, err := st.res.ResolvePickoff(runner, target, rp, st.pitcher.Player, st.defense)
	if err != nil {
		return err
	}
	if pr.Attempted {
		st.pitcher.PitchCount++
	}
	ev := st.event(EventPickoff, string(pr.Outcome), st.batter().Name, pr.Commentary)
	return st.apply(ev, pr, st.runners.Push(pr.Advancements, ""), nil, "", false)
}

func (st *inning) hitAndRun(from engine.Base, outcome engine.BattingOutcome) error {
	batter := st.batter()
	runner := st.runners.At(from)
	rp, err := st.runnerPlayer(runner)
	if err != nil {
		return err
	}
	if outcome == "" {
		outcome = st.hitAndRunSwing(batter)
	}
	hr, err := st.res.ResolveHitAndRun(runner, from, rp, batter.Player, st.pitcher.Player, st.defense.At(engine.PosCatcher), st.defense, outcome)
	if err != nil {
		return err
	}
	st.pitcher.PitchCount++
	ev := st.event(EventHitAndRun, string(hr.Outcome), batter.Name, hr.Commentary)
	ev.Pitches = 1

	batterTo := hr.BatterBase
	if outcome == engine.BattingSwingMiss {
		st.strikes++
		if st.strikes >= 3 {
			batterTo = engine.BaseOut
		}
	}
	if err := st.apply(ev, hr, hr.Advancements, batter, batterTo, outcome == engine.BattingHit); err != nil {
		return err
	}
	if batterTo != "" {
		st.endPA(batter, true, outcome == engine.BattingHit)
	}
	return nil
}

// hitAndRunSwing draws the batter's swing when the plan leaves it open:
// contact at the contact-hitting rate, then a ground ball up the middle
// that the covering middle infielder has left open.
func (st *inning) hitAndRunSwing(batter *engine.PlayerInGame) engine.BattingOutcome {
	bat := engine.EffectiveBatting(batter.Player, st.pitcher.Player)
	pa, err := engine.EffectivePitching(st.pitcher.Player, st.pitcher.PitchCount, batter.Player)
	if err != nil {
		return engine.BattingSwingMiss
	}
	if st.src.Float64()*100 >= engine.ContactRate(bat.Contact, pa.Stuff, pa.Movement, true, st.strikes, engine.InstructContact) {
		return engine.BattingSwingMiss
	}
	ball := engine.BattedBall{Trajectory: engine.TrajectoryGround, Strength: engine.StrengthMedium, Field: engine.FieldCenter}
	ss := st.defense.At(engine.PosShortstop)
	if st.src.Float64()*100 < engine.OutRate(ball, ss.Fielding.InfieldRange, ss.Fielding.InfieldFielding, batter.Running.Speed, -1) {
		return engine.BattingOut
	}
	return engine.BattingHit
}

// finish fills the record's totals and box score.
func (st *inning) finish() {
	rec := st.rec
	rec.Runs, rec.Outs, rec.Hits = st.runs, st.outs, st.hits
	rec.LeftOnBase = st.runners.Occupied()
	rec.PitchCount = st.pitcher.PitchCount
	rec.NextBatter = st.order
	for _, p := range st.lineup {
		rec.Box = append(rec.Box, BoxLine{
			PlayerID: p.ID,
			Name:     p.Name,
			PA:       st.pa[p.ID],
			AB:       p.AtBats,
			H:        p.Hits,
			R:        p.Runs,
			RBI:      p.RBIs,
		})
	}
}
