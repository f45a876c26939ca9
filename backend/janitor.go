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
	"log"
	"sync"
	"time"
)

const tombstoneTTL = 30 * 24 * time.Hour
const gcInterval = 12 * time.Hour

// Janitor purges expired simulation and roster tombstones in the
// background.
type Janitor struct {
	sims    *SimStore
	rosters *RosterStore
	ttl     time.Duration

	stopChan chan struct{}
	stopOnce sync.Once
}

func NewJanitor(sims *SimStore, rosters *RosterStore, ttl time.Duration) *Janitor {
	if ttl <= 0 {
		ttl = tombstoneTTL
	}
	return &Janitor{
		sims:     sims,
		rosters:  rosters,
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}
}

// StartGC starts the background tombstone garbage collector.
func (j *Janitor) StartGC() {
	go func() {
		ticker := time.NewTicker(gcInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				j.PurgeOldTombstones()
			case <-j.stopChan:
				return
			}
		}
	}()
}

// StopGC stops the background tombstone garbage collector.
func (j *Janitor) StopGC() {
	j.stopOnce.Do(func() {
		close(j.stopChan)
	})
}

// PurgeOldTombstones permanently deletes expired tombstones from disk and
// returns how many simulations and rosters it removed.
func (j *Janitor) PurgeOldTombstones() (purgedSims, purgedRosters int) {
	cutoff := time.Now().Add(-j.ttl).UnixNano()

	n, err := j.sims.PurgeDeleted(j.ttl)
	if err != nil {
		log.Printf("[GC] Error purging simulations: %v", err)
	}
	purgedSims = n

	var expired []string
	for r, err := range j.rosters.ListAllRosters() {
		if err == nil && r.Status == StatusDeleted && r.DeletedAt > 0 && r.DeletedAt <= cutoff {
			expired = append(expired, r.ID)
		}
	}
	for _, id := range expired {
		if err := j.rosters.PurgeRoster(id); err == nil {
			purgedRosters++
		}
	}

	if purgedSims > 0 || purgedRosters > 0 {
		log.Printf("[GC] Purged %d simulations, %d rosters.", purgedSims, purgedRosters)
	}
	return purgedSims, purgedRosters
}
