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

func TestResolveFielding(t *testing.T) {
	a := runnerOn("a")
	weakThird := BuntBall{Direction: BuntThirdBaseLine, Strength: BuntWeak, Fielder: PosThirdBase, Assist: PosPitcher}

	tests := []struct {
		name       string
		draws      []float64
		buntType   BuntType
		runners    RunnerState
		outs       int
		play       FieldingPlay
		batterBase Base
		outsRec    int
		used       int
	}{
		{"bobbled", []float64{0.99}, BuntSacrifice, RunnerState{First: a}, 0, PlayBuntSingle, BaseFirst, 0, 1},
		{"sacrifice at first", []float64{0.0, 0.99, 0.0}, BuntSacrifice, RunnerState{First: a}, 0, PlaySacrifice, BaseOut, 1, 3},
		{"beats the throw", []float64{0.0, 0.99, 0.99}, BuntSacrifice, RunnerState{First: a}, 0, PlayBeatThrow, BaseFirst, 0, 3},
		{"lead runner out", []float64{0.0, 0.0, 0.0}, BuntSacrifice, RunnerState{First: a}, 0, PlayFieldersChoice, BaseFirst, 1, 3},
		{"lead runner safe", []float64{0.0, 0.0, 0.99}, BuntSacrifice, RunnerState{First: a}, 0, PlayBuntSingle, BaseFirst, 0, 3},
		{"safety always throws to first", []float64{0.0, 0.0}, BuntSafety, RunnerState{First: a}, 0, PlaySacrifice, BaseOut, 1, 2},
		{"two outs throws to first", []float64{0.0, 0.0}, BuntSacrifice, RunnerState{First: a}, 2, PlaySacrifice, BaseOut, 1, 2},
		{"empty bases throws to first", []float64{0.0, 0.0}, BuntSacrifice, RunnerState{}, 0, PlaySacrifice, BaseOut, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, src := replay(tt.draws...)
			res, err := r.ResolveFielding(weakThird, tt.buntType, testPlayer("b", PosSecondBase), testPlayer("3B", PosThirdBase), testPitcher("p"), tt.runners, tt.outs)
			if err != nil {
				t.Fatalf("ResolveFielding failed: %v", err)
			}
			if res.Play != tt.play || res.BatterBase != tt.batterBase || res.OutsRecorded != tt.outsRec {
				t.Errorf("Expected %s batter=%s outs=%d, got %+v", tt.play, tt.batterBase, tt.outsRec, res)
			}
			if src.Used() != tt.used {
				t.Errorf("Expected %d draws, got %d", tt.used, src.Used())
			}
			if _, _, err := tt.runners.Apply(res.Advancements, runnerOn("b"), res.BatterBase); err != nil {
				t.Errorf("Result does not apply cleanly: %v", err)
			}
			if res.Commentary == "" {
				t.Errorf("Expected commentary")
			}
		})
	}
}

func TestResolveFieldingSacrificeMovesRunners(t *testing.T) {
	rs := RunnerState{First: runnerOn("a"), Second: runnerOn("c")}
	r, _ := replay(0.0, 0.99, 0.0)
	ball := BuntBall{Direction: BuntFirstBaseLine, Strength: BuntVeryWeak, Fielder: PosFirstBase, Assist: PosPitcher}
	res, err := r.ResolveFielding(ball, BuntSacrifice, testPlayer("b", PosSecondBase), testPlayer("1B", PosFirstBase), nil, rs, 0)
	if err != nil {
		t.Fatalf("ResolveFielding failed: %v", err)
	}
	next, tr, err := rs.Apply(res.Advancements, runnerOn("b"), res.BatterBase)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if next.Second == nil || next.Third == nil || next.First != nil || tr.Outs != 1 {
		t.Errorf("Expected runners on second and third with one out, got %+v %+v", next, tr)
	}
	if res.Assist != "" {
		t.Errorf("Expected no assist without an assisting fielder, got %s", res.Assist)
	}
}

func TestResolveFieldingMissingFielder(t *testing.T) {
	r, _ := replay()
	_, err := r.ResolveFielding(BuntBall{Fielder: PosCatcher}, BuntSacrifice, testPlayer("b", PosSecondBase), nil, nil, RunnerState{}, 0)
	if !errors.Is(err, ErrMissingPrecondition) {
		t.Fatalf("Expected ErrMissingPrecondition, got %v", err)
	}
}

func TestResolveFieldingUsesBuntingSide(t *testing.T) {
	// Speed 50 on a weak bunt: 83 from the right side, 73 from the left.
	draws := []float64{0.0, 0.78}
	for _, tt := range []struct {
		side Handedness
		play FieldingPlay
	}{
		{Right, PlaySacrifice},
		{Left, PlayBeatThrow},
	} {
		r, _ := replay(draws...)
		ball := BuntBall{Direction: BuntPitcherFront, Strength: BuntWeak, Fielder: PosPitcher, Assist: PosCatcher, Side: tt.side}
		res, err := r.ResolveFielding(ball, BuntSacrifice, testPlayer("b", PosSecondBase), testPitcher("p"), testPlayer("C", PosCatcher), RunnerState{}, 0)
		if err != nil {
			t.Fatalf("ResolveFielding failed: %v", err)
		}
		if res.Play != tt.play {
			t.Errorf("side %s: expected %s, got %s", tt.side, tt.play, res.Play)
		}
	}
}

func TestSwitchHitterBuntsFromTheLeftAgainstRighties(t *testing.T) {
	batter := testPlayer("b", PosSecondBase)
	batter.Bats = Switch
	r, _ := replay(0.0, 0.0, 0.0)
	res, err := r.ResolveBunt(batter, testPitcher("p"), BuntSacrifice, RunnerState{}, 0, 0)
	if err != nil {
		t.Fatalf("ResolveBunt failed: %v", err)
	}
	if res.Ball == nil || res.Ball.Side != Left {
		t.Fatalf("Expected a bunt from the left side, got %+v", res.Ball)
	}
}

func TestThrowFirstRate(t *testing.T) {
	if got := ThrowFirstRate(60, Right, BuntWeak, 50); got != 80 {
		t.Errorf("Expected 80, got %v", got)
	}
	if ThrowFirstRate(60, Left, BuntWeak, 50) >= ThrowFirstRate(60, Right, BuntWeak, 50) {
		t.Errorf("Expected left-handed batters to be harder to throw out")
	}
	if ThrowFirstRate(60, Right, BuntVeryWeak, 50) <= ThrowFirstRate(60, Right, BuntMedium, 50) {
		t.Errorf("Expected deadened bunts to be easier to throw out on")
	}
	if got := LeadThrowRate(50); got != 70 {
		t.Errorf("Expected baseline lead throw rate 70, got %v", got)
	}
	if got := LeadThrowRate(90); got != 80 {
		t.Errorf("Expected fast batter to raise lead throw rate to 80, got %v", got)
	}
	if got := BuntCatchRate(BuntMedium, 50); got != 30 {
		t.Errorf("Expected catch rate 30, got %v", got)
	}
}
