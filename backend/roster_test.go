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
	"os"
	"strings"
	"testing"

	"github.com/ttbt-io/skoresim/backend/engine"
)

func loadTestRoster(t *testing.T, name string) *Roster {
	t.Helper()
	r, err := LoadRosterFile("testdata/" + name + ".yaml")
	if err != nil {
		t.Fatalf("LoadRosterFile failed: %v", err)
	}
	return r
}

func TestParseRosterTestdata(t *testing.T) {
	for _, name := range []string{"hawks", "lions"} {
		t.Run(name, func(t *testing.T) {
			r := loadTestRoster(t, name)
			if len(r.Lineup) != lineupSize {
				t.Fatalf("Expected %d lineup players, got %d", lineupSize, len(r.Lineup))
			}
			if r.SchemaVersion != CurrentSchemaVersion {
				t.Errorf("Expected schema version %d, got %d", CurrentSchemaVersion, r.SchemaVersion)
			}
			for _, p := range r.Lineup {
				if p.Condition != engine.ConditionNormal || p.Fatigue != engine.FatigueFresh {
					t.Errorf("Expected defaults for %s, got %q/%q", p.ID, p.Condition, p.Fatigue)
				}
			}
			if err := ValidateRoster(r); err != nil {
				t.Errorf("ValidateRoster failed: %v", err)
			}
		})
	}
}

func TestParseRosterRejectsUnknownFields(t *testing.T) {
	data := []byte("name: Test\nlineup:\n  - id: a\n    name: A\n    batting: {contact: 50, powr: 50}\n")
	if _, err := ParseRoster(data); err == nil {
		t.Fatal("Expected error for misspelled ability, got nil")
	}
}

func TestParseRosterEmpty(t *testing.T) {
	_, err := ParseRoster(nil)
	if err == nil || !strings.Contains(err.Error(), "empty roster") {
		t.Errorf("Expected empty roster error, got %v", err)
	}
}

func TestLoadRosterFileMissing(t *testing.T) {
	if _, err := LoadRosterFile("testdata/nope.yaml"); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestRosterDefense(t *testing.T) {
	r := loadTestRoster(t, "hawks")
	d := r.Defense()
	if _, ok := d[engine.PosDH]; ok {
		t.Error("Expected designated hitter to be left out of the defense")
	}
	for _, pos := range engine.FieldPositions {
		if d.At(pos) == nil {
			t.Errorf("Expected a fielder at %s", pos)
		}
	}
	if d.At(engine.PosPitcher) != r.Pitcher {
		t.Errorf("Expected the starting pitcher at P, got %v", d.At(engine.PosPitcher))
	}
}

func TestRosterStartingPitcher(t *testing.T) {
	p := &engine.Player{ID: "p", Name: "P", Position: engine.PosPitcher, Pitching: &engine.PitchingAbility{}}
	r := &Roster{Lineup: []*engine.Player{{ID: "c", Position: engine.PosCatcher}, p}}
	if got := r.StartingPitcher(); got != p {
		t.Errorf("Expected lineup pitcher, got %v", got)
	}
	r.Pitcher = &engine.Player{ID: "sp"}
	if got := r.StartingPitcher(); got != r.Pitcher {
		t.Errorf("Expected pitcher entry to win, got %v", got)
	}
	if got := (&Roster{}).StartingPitcher(); got != nil {
		t.Errorf("Expected nil, got %v", got)
	}
}

func TestRosterYAMLRoundTrip(t *testing.T) {
	r := loadTestRoster(t, "lions")
	data, err := r.YAML()
	if err != nil {
		t.Fatalf("YAML failed: %v", err)
	}
	got, err := ParseRoster(data)
	if err != nil {
		t.Fatalf("ParseRoster failed: %v", err)
	}
	if got.Name != r.Name || len(got.Lineup) != len(r.Lineup) || got.Pitcher.ID != r.Pitcher.ID {
		t.Errorf("Expected %q with %d players, got %q with %d", r.Name, len(r.Lineup), got.Name, len(got.Lineup))
	}
	if got.Pitcher.Throws != engine.Left {
		t.Errorf("Expected lefty pitcher, got %q", got.Pitcher.Throws)
	}
	if err := ValidateRoster(got); err != nil {
		t.Errorf("ValidateRoster failed: %v", err)
	}
}

func TestLoadPlanFile(t *testing.T) {
	plan, err := LoadPlanFile("testdata/plan.yaml")
	if err != nil {
		t.Fatalf("LoadPlanFile failed: %v", err)
	}
	want := []PlanStep{
		{Action: PlanSwing, Swing: engine.InstructWait},
		{Action: PlanSteal, Base: engine.BaseFirst},
		{Action: PlanBunt},
		{Action: PlanSwing, Swing: engine.InstructAggressive},
	}
	if len(plan) != len(want) {
		t.Fatalf("Expected %d steps, got %d", len(want), len(plan))
	}
	for i := range want {
		if plan[i] != want[i] {
			t.Errorf("Step %d: expected %+v, got %+v", i, want[i], plan[i])
		}
	}

	dir := t.TempDir()
	bad := dir + "/bad.yaml"
	if err := os.WriteFile(bad, []byte("- action: moonwalk\n"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadPlanFile(bad); err == nil || !strings.Contains(err.Error(), "step 1") {
		t.Errorf("Expected a step 1 error, got %v", err)
	}
}
