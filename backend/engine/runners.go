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

import "fmt"

// Base names a bag, home plate, or the "out" destination.
type Base string

const (
	BaseFirst  Base = "first"
	BaseSecond Base = "second"
	BaseThird  Base = "third"
	BaseHome   Base = "home"
	BaseOut    Base = "out"
)

// Next returns the base after b, or "" for home and out.
func (b Base) Next() Base {
	switch b {
	case BaseFirst:
		return BaseSecond
	case BaseSecond:
		return BaseThird
	case BaseThird:
		return BaseHome
	}
	return ""
}

// index orders bases from first (1) to home (4).
func (b Base) index() int {
	switch b {
	case BaseFirst:
		return 1
	case BaseSecond:
		return 2
	case BaseThird:
		return 3
	case BaseHome:
		return 4
	}
	return 0
}

// IsBag reports whether b is first, second or third.
func (b Base) IsBag() bool {
	i := b.index()
	return i >= 1 && i <= 3
}

// advanceBy moves n bases forward, stopping at home.
func (b Base) advanceBy(n int) Base {
	out := b
	for i := 0; i < n && out != BaseHome; i++ {
		out = out.Next()
	}
	return out
}

// Runner is a lightweight occupancy marker.
type Runner struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

// RunnerState is the occupancy of the three bags.
type RunnerState struct {
	First  *Runner `json:"first"`
	Second *Runner `json:"second"`
	Third  *Runner `json:"third"`
}

// At returns the runner on bag b.
func (rs RunnerState) At(b Base) *Runner {
	switch b {
	case BaseFirst:
		return rs.First
	case BaseSecond:
		return rs.Second
	case BaseThird:
		return rs.Third
	}
	return nil
}

func (rs *RunnerState) set(b Base, r *Runner) {
	switch b {
	case BaseFirst:
		rs.First = r
	case BaseSecond:
		rs.Second = r
	case BaseThird:
		rs.Third = r
	}
}

// Occupied returns the number of occupied bags.
func (rs RunnerState) Occupied() int {
	n := 0
	for _, b := range leadToTrail {
		if rs.At(b) != nil {
			n++
		}
	}
	return n
}

// Empty reports whether the bases are empty.
func (rs RunnerState) Empty() bool {
	return rs.Occupied() == 0
}

// Lead returns the most advanced occupied bag, or "" when empty.
func (rs RunnerState) Lead() Base {
	for _, b := range leadToTrail {
		if rs.At(b) != nil {
			return b
		}
	}
	return ""
}

var leadToTrail = []Base{BaseThird, BaseSecond, BaseFirst}

// Advancement is the intent to move one runner.
type Advancement struct {
	Runner *Runner `json:"runner"`
	From   Base    `json:"from"`
	To     Base    `json:"to"`
}

// Transition summarizes what applying a play did.
type Transition struct {
	Runs   int       `json:"runs"`
	Outs   int       `json:"outs"`
	Scored []*Runner `json:"scored,omitempty"`
}

// Apply moves runners per advs and then places the batter on batterTo
// ("" when the batter did not reach and was not put out, BaseOut when he
// was). Runners not named in advs stay where they are.
func (rs RunnerState) Apply(advs []Advancement, batter *Runner, batterTo Base) (RunnerState, Transition, error) {
	next := rs
	var t Transition

	moving := make([]Advancement, 0, len(advs))
	for _, a := range advs {
		if !a.From.IsBag() {
			return rs, Transition{}, fmt.Errorf("%w: runner cannot start from %q", ErrInvalidTransition, a.From)
		}
		occupant := rs.At(a.From)
		if occupant == nil {
			return rs, Transition{}, fmt.Errorf("%w: no runner on %s", ErrInvalidTransition, a.From)
		}
		if a.Runner != nil && a.Runner.PlayerID != occupant.PlayerID {
			return rs, Transition{}, fmt.Errorf("%w: %s is not on %s", ErrInvalidTransition, a.Runner.PlayerName, a.From)
		}
		if a.To != BaseOut && a.To.index() < a.From.index() {
			return rs, Transition{}, fmt.Errorf("%w: runner cannot move back from %s to %s", ErrInvalidTransition, a.From, a.To)
		}
		next.set(a.From, nil)
		a.Runner = occupant
		moving = append(moving, a)
	}

	for _, a := range moving {
		switch a.To {
		case BaseOut:
			t.Outs++
		case BaseHome:
			t.Runs++
			t.Scored = append(t.Scored, a.Runner)
		default:
			if next.At(a.To) != nil {
				return rs, Transition{}, fmt.Errorf("%w: %s is already occupied", ErrInvalidTransition, a.To)
			}
			next.set(a.To, a.Runner)
		}
	}

	switch batterTo {
	case "":
	case BaseOut:
		t.Outs++
	case BaseHome:
		t.Runs++
		t.Scored = append(t.Scored, batter)
	default:
		if batter == nil {
			return rs, Transition{}, fmt.Errorf("%w: batter destination without a batter", ErrInvalidTransition)
		}
		if next.At(batterTo) != nil {
			return rs, Transition{}, fmt.Errorf("%w: batter cannot take occupied %s", ErrInvalidTransition, batterTo)
		}
		next.set(batterTo, batter)
	}

	return next, t, nil
}

// advanceAll moves every runner n bases, lead runner first.
func advanceAll(rs RunnerState, n int) []Advancement {
	var out []Advancement
	for _, b := range leadToTrail {
		if r := rs.At(b); r != nil {
			out = append(out, Advancement{Runner: r, From: b, To: b.advanceBy(n)})
		}
	}
	return out
}

// ForcedAdvances moves only the runners forced by the batter taking first.
func ForcedAdvances(rs RunnerState) []Advancement {
	if rs.First == nil {
		return nil
	}
	out := []Advancement{}
	if rs.Second != nil {
		if rs.Third != nil {
			out = append(out, Advancement{Runner: rs.Third, From: BaseThird, To: BaseHome})
		}
		out = append(out, Advancement{Runner: rs.Second, From: BaseSecond, To: BaseThird})
	}
	out = append(out, Advancement{Runner: rs.First, From: BaseFirst, To: BaseSecond})
	return out
}

// Push extends advs so that no runner stays on a bag another runner, or
// the batter taking batterTo, is moving to. Each displaced runner moves up
// one base, cascading toward home. Runners already named in advs are left
// as given.
func (rs RunnerState) Push(advs []Advancement, batterTo Base) []Advancement {
	out := append([]Advancement(nil), advs...)
	moving := map[Base]bool{}
	pending := []Base{batterTo}
	for _, a := range advs {
		moving[a.From] = true
		pending = append(pending, a.To)
	}
	for len(pending) > 0 {
		to := pending[0]
		pending = pending[1:]
		if !to.IsBag() || moving[to] {
			continue
		}
		if occupant := rs.At(to); occupant != nil {
			moving[to] = true
			out = append(out, Advancement{Runner: occupant, From: to, To: to.Next()})
			pending = append(pending, to.Next())
		}
	}
	return out
}

// countRuns counts advancements that end at home.
func countRuns(advs []Advancement) int {
	n := 0
	for _, a := range advs {
		if a.To == BaseHome {
			n++
		}
	}
	return n
}

func countOuts(advs []Advancement) int {
	n := 0
	for _, a := range advs {
		if a.To == BaseOut {
			n++
		}
	}
	return n
}
