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
	"testing"

	"github.com/ttbt-io/skoresim/backend/search"
)

// FuzzParseRoster tests ParseRoster and ValidateRoster with arbitrary YAML to ensure no panics.
func FuzzParseRoster(f *testing.F) {
	f.Add([]byte("name: Test\nlineup: []\n"))
	f.Add([]byte("lineup:\n  - null\n"))
	f.Add([]byte("pitcher: {id: p, pitching: null}\n"))
	f.Add([]byte(`: invalid yaml`))
	f.Fuzz(func(t *testing.T, data []byte) {
		r, err := ParseRoster(data)
		if err != nil {
			return
		}
		_ = ValidateRoster(r)
		_ = r.Defense()
	})
}

// FuzzValidateRequest tests ValidateRequest with arbitrary JSON to ensure no panics.
func FuzzValidateRequest(f *testing.F) {
	f.Add([]byte(`{"inning": 1, "half": "top", "plan": [{"action": "steal", "base": "first"}]}`))
	f.Add([]byte(`{"home": {"lineup": [null]}, "away": {}}`))
	f.Add([]byte(`invalid json`))
	f.Fuzz(func(t *testing.T, data []byte) {
		var req HalfInningRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return
		}
		_ = ValidateRequest(&req)
	})
}

// FuzzFilterEvents tests event queries with arbitrary input to ensure no panics.
func FuzzFilterEvents(f *testing.F) {
	f.Add(`type:steal runs:>0 "hit"`)
	f.Add(`inning:1..3 -outcome:walk`)
	f.Add(`"unterminated`)
	events := []PlayEvent{
		{Seq: 1, Type: EventAtBat, Outcome: "walk", Inning: 1, Half: HalfTop, Batter: "A"},
		{Seq: 2, Type: EventSteal, Outcome: "safe", Inning: 1, Half: HalfTop, RunsScored: 1},
	}
	f.Fuzz(func(t *testing.T, q string) {
		_, _ = FilterEvents(events, search.Parse(q))
	})
}
