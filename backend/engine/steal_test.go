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
	"errors"
	"testing"
)

func TestStealSuccessRate(t *testing.T) {
	run := RunningAbility{Speed: 50, Baserunning: 50, StealingAbility: 50}
	pitching := PitchingAbility{HoldRunners: 50, Control: 50}
	catcher := FieldingAbility{InfieldArm: 50, InfieldFielding: 50}

	tests := []struct {
		to   Base
		want float64
	}{
		{BaseSecond, 50},
		{BaseThird, 35},
		{BaseHome, 25},
	}
	for _, tt := range tests {
		if got := StealSuccessRate(run, pitching, catcher, 50, 50, tt.to); got != tt.want {
			t.Errorf("StealSuccessRate to %s: expected %v, got %v", tt.to, tt.want, got)
		}
	}

	prev := 101.0
	for arm := 0; arm <= 100; arm++ {
		catcher.InfieldArm = arm
		rate := StealSuccessRate(run, pitching, catcher, 50, 50, BaseSecond)
		if rate > prev {
			t.Fatalf("Steal success rose from %v to %v as catcher arm reached %d", prev, rate, arm)
		}
		prev = rate
	}
}

func TestResolveStealCatcherArm(t *testing.T) {
	success := func(arm int) int {
		catcher := testPlayer("c", PosCatcher)
		catcher.Fielding.InfieldArm = arm
		r := seeded(5)
		n := 0
		for i := 0; i < 500; i++ {
			res, err := r.ResolveSteal(runnerOn("a"), BaseFirst, testPlayer("a", PosCenter), testPitcher("p"), catcher, testDefense())
			if err != nil {
				t.Fatalf("ResolveSteal failed: %v", err)
			}
			if res.Success {
				n++
			}
		}
		return n
	}
	// The same seed replays the same draws, so a stronger arm can only
	// turn successes into failures.
	if weak, strong := success(20), success(90); strong > weak {
		t.Errorf("Expected stronger arm to allow no more steals: weak=%d strong=%d", weak, strong)
	}
}

func TestStealBaseDifficultyOrdering(t *testing.T) {
	rate := func(from Base) float64 {
		r := seeded(9)
		n := 0
		for i := 0; i < 500; i++ {
			res, err := r.ResolveSteal(runnerOn("a"), from, testPlayer("a", PosCenter), testPitcher("p"), testDefense()[PosCatcher], testDefense())
			if err != nil {
				t.Fatalf("ResolveSteal failed: %v", err)
			}
			if res.Success {
				n++
			}
		}
		return float64(n) / 5
	}
	if second, third := rate(BaseFirst), rate(BaseSecond); third > second+5 {
		t.Errorf("Expected stealing third to be no easier: second=%v%% third=%v%%", second, third)
	}
}

func TestResolveStealAdvancements(t *testing.T) {
	a := runnerOn("a")
	r, src := replay(0.0, 0.99)
	safe, err := r.ResolveSteal(a, BaseSecond, testPlayer("a", PosCenter), testPitcher("p"), testPlayer("c", PosCatcher), testDefense())
	if err != nil {
		t.Fatalf("ResolveSteal failed: %v", err)
	}
	if !safe.Success || safe.To != BaseThird || safe.Advancements[0].To != BaseThird {
		t.Errorf("Expected steal of third, got %+v", safe)
	}
	caught, err := r.ResolveSteal(a, BaseThird, testPlayer("a", PosCenter), testPitcher("p"), testPlayer("c", PosCatcher), testDefense())
	if err != nil {
		t.Fatalf("ResolveSteal failed: %v", err)
	}
	if caught.Success || caught.Outcome != StealCaught || caught.OutsRecorded != 1 {
		t.Errorf("Expected caught stealing home, got %+v", caught)
	}
	if src.Used() != 2 {
		t.Errorf("Expected one draw per steal, got %d", src.Used())
	}
}

func TestResolveStealPreconditions(t *testing.T) {
	r, _ := replay()
	d := testDefense()
	delete(d, PosThirdBase)
	tests := []struct {
		name string
		call func() error
	}{
		{"nil runner", func() error {
			_, err := r.ResolveSteal(nil, BaseFirst, testPlayer("a", PosCenter), testPitcher("p"), testPlayer("c", PosCatcher), testDefense())
			return err
		}},
		{"no runner player", func() error {
			_, err := r.ResolveSteal(runnerOn("a"), BaseFirst, nil, testPitcher("p"), testPlayer("c", PosCatcher), testDefense())
			return err
		}},
		{"no catcher", func() error {
			_, err := r.ResolveSteal(runnerOn("a"), BaseFirst, testPlayer("a", PosCenter), testPitcher("p"), nil, testDefense())
			return err
		}},
		{"no third baseman covering", func() error {
			_, err := r.ResolveSteal(runnerOn("a"), BaseSecond, testPlayer("a", PosCenter), testPitcher("p"), testPlayer("c", PosCatcher), d)
			return err
		}},
		{"from home", func() error {
			_, err := r.ResolveSteal(runnerOn("a"), BaseHome, testPlayer("a", PosCenter), testPitcher("p"), testPlayer("c", PosCatcher), testDefense())
			return err
		}},
	}
	for _, tt := range tests {
		if err := tt.call(); !errors.Is(err, ErrMissingPrecondition) {
			t.Errorf("%s: expected ErrMissingPrecondition, got %v", tt.name, err)
		}
	}
}

func TestResolveDoubleSteal(t *testing.T) {
	first, third := runnerOn("r1"), runnerOn("r3")
	players := map[string]*Player{"r1": testPlayer("r1", PosCenter), "r3": testPlayer("r3", PosLeftField)}
	rs := RunnerState{First: first, Third: third}

	if got := DoubleStealTarget(rs); got != BaseHome {
		t.Fatalf("Expected throw home, got %s", got)
	}

	r := seeded(13)
	trailSafe := 0
	for i := 0; i < 50; i++ {
		res, err := r.ResolveDoubleSteal(rs, players, testPitcher("p"), testPlayer("c", PosCatcher), testDefense())
		if err != nil {
			t.Fatalf("ResolveDoubleSteal failed: %v", err)
		}
		if res.Attempts[0].Runner != third {
			t.Fatalf("Expected the runner from third to be targeted first")
		}
		if res.Attempts[1].Success {
			trailSafe++
		}
		if _, _, err := rs.Apply(res.Advancements, nil, ""); err != nil {
			t.Fatalf("Result does not apply cleanly: %v", err)
		}
	}
	if trailSafe < 35 {
		t.Errorf("Expected undefended runner to succeed in at least 70%% of 50 trials, got %d", trailSafe)
	}
}

func TestResolveDoubleStealDrawOrder(t *testing.T) {
	first, second := runnerOn("r1"), runnerOn("r2")
	players := map[string]*Player{"r1": testPlayer("r1", PosCenter), "r2": testPlayer("r2", PosLeftField)}
	rs := RunnerState{First: first, Second: second}

	r, src := replay(0.99, 0.0)
	res, err := r.ResolveDoubleSteal(rs, players, testPitcher("p"), testPlayer("c", PosCatcher), testDefense())
	if err != nil {
		t.Fatalf("ResolveDoubleSteal failed: %v", err)
	}
	if res.Target != BaseThird {
		t.Errorf("Expected throw to third, got %s", res.Target)
	}
	if res.Attempts[0].Runner != second || res.Attempts[0].Success {
		t.Errorf("Expected runner from second caught, got %+v", res.Attempts[0])
	}
	if res.Attempts[1].Runner != first || !res.Attempts[1].Success {
		t.Errorf("Expected runner from first safe, got %+v", res.Attempts[1])
	}
	if src.Used() != 2 || res.OutsRecorded != 1 {
		t.Errorf("Expected 2 draws and 1 out, got %d draws %d outs", src.Used(), res.OutsRecorded)
	}
	next, _, err := rs.Apply(res.Advancements, nil, "")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if next.Second != first || next.First != nil || next.Third != nil {
		t.Errorf("Unexpected state %+v", next)
	}

	if _, err := r.ResolveDoubleSteal(RunnerState{First: first}, players, testPitcher("p"), testPlayer("c", PosCatcher), testDefense()); !errors.Is(err, ErrMissingPrecondition) {
		t.Errorf("Expected ErrMissingPrecondition with one runner, got %v", err)
	}
}

func TestResolveHitAndRun(t *testing.T) {
	a := runnerOn("a")
	tests := []struct {
		name     string
		draw     float64
		outcome  BattingOutcome
		want     HitAndRunOutcome
		runnerTo Base
		batter   Base
		outs     int
	}{
		{"hit with a jump", 0.0, BattingHit, HitAndRunExtraBase, BaseThird, BaseFirst, 0},
		{"hit with runner caught", 0.99, BattingHit, HitAndRunHitCaught, BaseOut, BaseFirst, 1},
		{"out with runner safe", 0.0, BattingOut, HitAndRunRunnerMoved, BaseSecond, BaseOut, 1},
		{"out with runner caught", 0.99, BattingOut, HitAndRunDoublePlay, BaseOut, BaseOut, 2},
		{"miss with steal", 0.0, BattingSwingMiss, HitAndRunStolen, BaseSecond, "", 0},
		{"miss and caught", 0.99, BattingSwingMiss, HitAndRunCaught, BaseOut, "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, src := replay(tt.draw)
			res, err := r.ResolveHitAndRun(a, BaseFirst, testPlayer("a", PosCenter), testPlayer("b", PosFirstBase), testPitcher("p"), testPlayer("c", PosCatcher), testDefense(), tt.outcome)
			if err != nil {
				t.Fatalf("ResolveHitAndRun failed: %v", err)
			}
			if res.Outcome != tt.want || res.RunnerTo != tt.runnerTo || res.BatterBase != tt.batter || res.OutsRecorded != tt.outs {
				t.Errorf("Expected %s runner=%s batter=%s outs=%d, got %+v", tt.want, tt.runnerTo, tt.batter, tt.outs, res)
			}
			if src.Used() != 1 {
				t.Errorf("Expected a single draw, got %d", src.Used())
			}
			rs := RunnerState{First: a}
			if _, _, err := rs.Apply(res.Advancements, runnerOn("b"), res.BatterBase); err != nil {
				t.Errorf("Result does not apply cleanly: %v", err)
			}
		})
	}

	r, _ := replay()
	if _, err := r.ResolveHitAndRun(a, BaseFirst, testPlayer("a", PosCenter), testPlayer("b", PosFirstBase), testPitcher("p"), testPlayer("c", PosCatcher), testDefense(), "bunt"); !errors.Is(err, ErrMissingPrecondition) {
		t.Errorf("Expected ErrMissingPrecondition for an unknown batting outcome, got %v", err)
	}
}

func TestResolveHitAndRunFromSecondScores(t *testing.T) {
	a := runnerOn("a")
	r, _ := replay(0.0)
	res, err := r.ResolveHitAndRun(a, BaseSecond, testPlayer("a", PosCenter), testPlayer("b", PosFirstBase), testPitcher("p"), testPlayer("c", PosCatcher), testDefense(), BattingHit)
	if err != nil {
		t.Fatalf("ResolveHitAndRun failed: %v", err)
	}
	if res.RunnerTo != BaseHome || res.RunsScored != 1 {
		t.Errorf("Expected runner to score from second, got %+v", res)
	}
}

func TestResolvePickoff(t *testing.T) {
	t.Run("no runner", func(t *testing.T) {
		r, src := replay()
		res, err := r.ResolvePickoff(nil, BaseFirst, nil, testPitcher("p"), testDefense())
		if err != nil {
			t.Fatalf("ResolvePickoff failed: %v", err)
		}
		if res.Attempted || res.Success || res.Runner != nil {
			t.Errorf("Expected a no-op, got %+v", res)
		}
		if src.Used() != 0 {
			t.Errorf("Expected no draws, got %d", src.Used())
		}
	})

	a := runnerOn("a")
	tests := []struct {
		name      string
		draws     []float64
		attempted bool
		outcome   PickoffOutcome
		to        Base
	}{
		{"not attempted", []float64{0.99}, false, PickoffNotAttempted, ""},
		{"picked off", []float64{0.0, 0.0}, true, PickoffOut, BaseOut},
		{"back safely", []float64{0.0, 0.99, 0.99}, true, PickoffSafe, ""},
		{"wild throw", []float64{0.0, 0.99, 0.0}, true, PickoffWildThrow, BaseSecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, src := replay(tt.draws...)
			res, err := r.ResolvePickoff(a, BaseFirst, testPlayer("a", PosCenter), testPitcher("p"), testDefense())
			if err != nil {
				t.Fatalf("ResolvePickoff failed: %v", err)
			}
			if res.Attempted != tt.attempted || res.Outcome != tt.outcome || res.Runner != a {
				t.Errorf("Expected attempted=%v %s, got %+v", tt.attempted, tt.outcome, res)
			}
			if tt.to == "" && len(res.Advancements) != 0 {
				t.Errorf("Expected no movement, got %+v", res.Advancements)
			}
			if tt.to != "" && (len(res.Advancements) != 1 || res.Advancements[0].To != tt.to) {
				t.Errorf("Expected runner to %s, got %+v", tt.to, res.Advancements)
			}
			if src.Used() != len(tt.draws) {
				t.Errorf("Expected %d draws, got %d", len(tt.draws), src.Used())
			}
		})
	}

	r, _ := replay()
	d := testDefense()
	delete(d, PosFirstBase)
	if _, err := r.ResolvePickoff(a, BaseFirst, testPlayer("a", PosCenter), testPitcher("p"), d); !errors.Is(err, ErrMissingPrecondition) {
		t.Errorf("Expected ErrMissingPrecondition without a first baseman, got %v", err)
	}
}

func TestWildThrowRate(t *testing.T) {
	tests := []struct {
		control int
		want    float64
	}{
		{100, 5}, {50, 5}, {25, 10}, {0, 15},
	}
	for _, tt := range tests {
		if got := WildThrowRate(tt.control); got != tt.want {
			t.Errorf("WildThrowRate(%d): expected %v, got %v", tt.control, tt.want, got)
		}
	}
}
