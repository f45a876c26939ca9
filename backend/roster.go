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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ttbt-io/skoresim/backend/engine"
	"gopkg.in/yaml.v3"
)

// Roster is a team as the simulator sees it: a batting order, a bench and
// the pitcher on the mound.
type Roster struct {
	ID            string           `json:"id" yaml:"id"`
	SchemaVersion int              `json:"schemaVersion" yaml:"-"`
	Name          string           `json:"name" yaml:"name"`
	ShortName     string           `json:"shortName,omitempty" yaml:"short_name"`
	Lineup        []*engine.Player `json:"lineup" yaml:"lineup"`
	Bench         []*engine.Player `json:"bench,omitempty" yaml:"bench"`
	Pitcher       *engine.Player   `json:"pitcher,omitempty" yaml:"pitcher"`
	UpdatedAt     int64            `json:"updatedAt,omitempty" yaml:"-"`

	// Status can be "active" (default/empty) or "deleted"
	Status string `json:"status,omitempty" yaml:"-"`
	// DeletedAt is the timestamp (Unix Nano) when the roster was deleted.
	DeletedAt int64 `json:"deletedAt,omitempty" yaml:"-"`
}

func (r *Roster) normalize() {
	if r.SchemaVersion == 0 {
		r.SchemaVersion = CurrentSchemaVersion
	}
	if r.Lineup == nil {
		r.Lineup = make([]*engine.Player, 0)
	}
	if r.Bench == nil {
		r.Bench = make([]*engine.Player, 0)
	}
	for _, p := range r.players() {
		if p.Condition == "" {
			p.Condition = engine.ConditionNormal
		}
		if p.Fatigue == "" {
			p.Fatigue = engine.FatigueFresh
		}
	}
}

// players returns every non-nil player on the roster, lineup first.
func (r *Roster) players() []*engine.Player {
	out := make([]*engine.Player, 0, len(r.Lineup)+len(r.Bench)+1)
	for _, group := range [][]*engine.Player{r.Lineup, r.Bench, {r.Pitcher}} {
		for _, p := range group {
			if p != nil {
				out = append(out, p)
			}
		}
	}
	return out
}

// StartingPitcher returns the pitcher on the mound: the Pitcher entry, or
// the lineup player at P when the roster bats its pitcher.
func (r *Roster) StartingPitcher() *engine.Player {
	if r.Pitcher != nil {
		return r.Pitcher
	}
	for _, p := range r.Lineup {
		if p != nil && p.Position == engine.PosPitcher {
			return p
		}
	}
	return nil
}

// Defense returns the fielders by position. Designated hitters do not
// field.
func (r *Roster) Defense() engine.Defense {
	d := engine.Defense{}
	for _, p := range r.Lineup {
		if p != nil && p.Position != engine.PosDH {
			d[p.Position] = p
		}
	}
	if sp := r.StartingPitcher(); sp != nil {
		d[engine.PosPitcher] = sp
	}
	return d
}

// ParseRoster decodes a YAML roster. Unknown keys are rejected so that a
// misspelled ability does not silently default to zero.
func ParseRoster(data []byte) (*Roster, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var r Roster
	if err := dec.Decode(&r); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty roster")
		}
		return nil, fmt.Errorf("yaml.Decode: %w", err)
	}
	r.normalize()
	return &r, nil
}

// LoadRosterFile reads and parses a YAML roster file.
func LoadRosterFile(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	r, err := ParseRoster(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// LoadPlanFile reads a YAML list of plan steps. JSON is accepted as well.
func LoadPlanFile(path string) ([]PlanStep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var plan []PlanStep
	if err := dec.Decode(&plan); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: yaml.Decode: %w", path, err)
	}
	for i, step := range plan {
		if err := validatePlanStep(step); err != nil {
			return nil, fmt.Errorf("%s: step %d: %w", path, i+1, err)
		}
	}
	return plan, nil
}

// YAML encodes the roster in the file format ParseRoster reads.
func (r *Roster) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("yaml.Encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
