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
	"fmt"
	"strings"

	"github.com/ttbt-io/skoresim/backend/search"
)

var textKeys = map[string]func(PlayEvent) string{
	"type":    func(ev PlayEvent) string { return ev.Type },
	"outcome": func(ev PlayEvent) string { return ev.Outcome },
	"batter":  func(ev PlayEvent) string { return ev.Batter },
	"half":    func(ev PlayEvent) string { return ev.Half },
}

var numericKeys = map[string]func(PlayEvent) int{
	"inning": func(ev PlayEvent) int { return ev.Inning },
	"runs":   func(ev PlayEvent) int { return ev.RunsScored },
	"outs":   func(ev PlayEvent) int { return ev.OutsAfter },
}

// FilterEvents returns the events matching every filter and every free
// text term of q. Free text matches descriptions and batter names.
func FilterEvents(events []PlayEvent, q search.Query) ([]PlayEvent, error) {
	for _, f := range q.Filters {
		if textKeys[f.Key] == nil && numericKeys[f.Key] == nil {
			return nil, fmt.Errorf("unknown search key: %q", f.Key)
		}
	}
	out := make([]PlayEvent, 0, len(events))
	for _, ev := range events {
		if matchEvent(ev, q) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func matchEvent(ev PlayEvent, q search.Query) bool {
	for _, f := range q.Filters {
		if get := textKeys[f.Key]; get != nil {
			if !f.MatchString(get(ev)) {
				return false
			}
			continue
		}
		if !f.MatchInt(numericKeys[f.Key](ev)) {
			return false
		}
	}
	desc := strings.ToLower(ev.Description)
	batter := strings.ToLower(ev.Batter)
	for _, term := range q.FreeText {
		term = strings.ToLower(term)
		if !strings.Contains(desc, term) && !strings.Contains(batter, term) {
			return false
		}
	}
	return true
}
