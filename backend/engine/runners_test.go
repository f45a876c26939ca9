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

func runnerOn(id string) *Runner {
	return &Runner{PlayerID: id, PlayerName: id}
}

func TestApply(t *testing.T) {
	a, b, c, bat := runnerOn("a"), runnerOn("b"), runnerOn("c"), runnerOn("bat")
	loaded := RunnerState{First: a, Second: b, Third: c}

	t.Run("walk with bases loaded forces a run", func(t *testing.T) {
		next, tr, err := loaded.Apply(ForcedAdvances(loaded), bat, BaseFirst)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if tr.Runs != 1 || tr.Outs != 0 {
			t.Errorf("Expected 1 run 0 outs, got %+v", tr)
		}
		if next.First != bat || next.Second != a || next.Third != b {
			t.Errorf("Unexpected state %+v", next)
		}
		if len(tr.Scored) != 1 || tr.Scored[0] != c {
			t.Errorf("Expected c to score, got %+v", tr.Scored)
		}
	})

	t.Run("walk with first only moves the forced runner", func(t *testing.T) {
		rs := RunnerState{First: a, Third: c}
		next, tr, err := rs.Apply(ForcedAdvances(rs), bat, BaseFirst)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if tr.Runs != 0 || next.Third != c || next.Second != a || next.First != bat {
			t.Errorf("Unexpected result %+v %+v", next, tr)
		}
	})

	t.Run("home run clears the bases", func(t *testing.T) {
		next, tr, err := loaded.Apply(advanceAll(loaded, 4), bat, BaseHome)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if tr.Runs != 4 || !next.Empty() {
			t.Errorf("Expected grand slam, got %+v %+v", next, tr)
		}
	})

	t.Run("outs are counted", func(t *testing.T) {
		rs := RunnerState{First: a}
		advs := []Advancement{{Runner: a, From: BaseFirst, To: BaseOut}}
		next, tr, err := rs.Apply(advs, bat, BaseOut)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if tr.Outs != 2 || !next.Empty() {
			t.Errorf("Expected double play, got %+v %+v", next, tr)
		}
	})

	errCases := []struct {
		name     string
		rs       RunnerState
		advs     []Advancement
		batterTo Base
	}{
		{"empty base", RunnerState{}, []Advancement{{From: BaseFirst, To: BaseSecond}}, ""},
		{"wrong runner", RunnerState{First: a}, []Advancement{{Runner: b, From: BaseFirst, To: BaseSecond}}, ""},
		{"backwards", RunnerState{Second: a}, []Advancement{{From: BaseSecond, To: BaseFirst}}, ""},
		{"from home", RunnerState{}, []Advancement{{From: BaseHome, To: BaseOut}}, ""},
		{"collision", RunnerState{First: a, Second: b}, []Advancement{{From: BaseFirst, To: BaseSecond}}, ""},
		{"batter into occupied base", RunnerState{First: a}, nil, BaseFirst},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			next, _, err := tc.rs.Apply(tc.advs, bat, tc.batterTo)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("Expected ErrInvalidTransition, got %v", err)
			}
			if next != tc.rs {
				t.Errorf("Expected state to be unchanged on error")
			}
		})
	}
}

func TestRunnerStateHelpers(t *testing.T) {
	rs := RunnerState{First: runnerOn("a"), Third: runnerOn("c")}
	if rs.Occupied() != 2 || rs.Empty() {
		t.Errorf("Expected 2 occupied bases")
	}
	if rs.Lead() != BaseThird {
		t.Errorf("Expected lead runner on third, got %s", rs.Lead())
	}
	if (RunnerState{}).Lead() != "" {
		t.Errorf("Expected no lead runner on empty bases")
	}
	if BaseSecond.advanceBy(5) != BaseHome {
		t.Errorf("Expected advancing past home to stop at home")
	}
}

func TestPush(t *testing.T) {
	a, b, c, bat := runnerOn("a"), runnerOn("b"), runnerOn("c"), runnerOn("bat")

	t.Run("wild throw pushes the runner ahead", func(t *testing.T) {
		rs := RunnerState{First: a, Second: b}
		advs := rs.Push([]Advancement{{Runner: a, From: BaseFirst, To: BaseSecond}}, "")
		next, tr, err := rs.Apply(advs, nil, "")
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if next.Second != a || next.Third != b || next.First != nil || tr.Runs != 0 {
			t.Errorf("Unexpected state %+v", next)
		}
	})

	t.Run("batter taking first cascades home", func(t *testing.T) {
		rs := RunnerState{First: a, Second: b, Third: c}
		next, tr, err := rs.Apply(rs.Push(nil, BaseFirst), bat, BaseFirst)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if tr.Runs != 1 || next.First != bat || next.Second != a || next.Third != b {
			t.Errorf("Unexpected result %+v %+v", next, tr)
		}
	})

	t.Run("open bag leaves others alone", func(t *testing.T) {
		rs := RunnerState{First: a, Third: c}
		advs := rs.Push([]Advancement{{Runner: a, From: BaseFirst, To: BaseSecond}}, "")
		if len(advs) != 1 {
			t.Errorf("Expected no extra advancement, got %+v", advs)
		}
	})
}
