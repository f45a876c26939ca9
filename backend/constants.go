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

// Schema Versions
const (
	SchemaVersionV1      = 1
	CurrentSchemaVersion = SchemaVersionV1
	CurrentAppVersion    = "0.1.0"
)

// Record statuses
const (
	StatusComplete = "complete"
	StatusDeleted  = "deleted"
)

// Halves of an inning
const (
	HalfTop    = "top"
	HalfBottom = "bottom"
)

// Play event types, one per engine call the orchestrator makes.
const (
	EventAtBat        = "at_bat"
	EventBallInPlay   = "ball_in_play"
	EventBunt         = "bunt"
	EventBuntFielding = "bunt_fielding"
	EventSqueeze      = "squeeze"
	EventSteal        = "steal"
	EventDoubleSteal  = "double_steal"
	EventHitAndRun    = "hit_and_run"
	EventPickoff      = "pickoff"
)

// Storage directories under the data dir.
const (
	simsDir    = "sims"
	rostersDir = "rosters"
)

// Limits
const (
	maxNameLen         = 100
	maxShortNameLen    = 20
	maxNumberLen       = 3
	maxIDLen           = 64
	maxPlanSteps       = 200
	maxBenchSize       = 30
	lineupSize         = 9
	maxRequestBody     = 1 << 20
	defaultCacheSize   = 128
	defaultListLimit   = 50
	maxListLimit       = 100
	maxPlateAppearance = 100
)
