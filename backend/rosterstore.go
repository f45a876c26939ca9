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
	"iter"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/c2FmZQ/storage"
)

// RosterStore manages roster persistence to disk.
type RosterStore struct {
	DataDir string
	storage *storage.Storage
	mu      sync.Map // Stores *sync.Mutex for each rosterId to protect writes
}

// NewRosterStore creates a new RosterStore.
func NewRosterStore(dataDir string, s *storage.Storage) *RosterStore {
	return &RosterStore{
		DataDir: dataDir,
		storage: s,
	}
}

func rosterFilename(rosterId string) string {
	return filepath.Join(rostersDir, fmt.Sprintf("%s.json", url.PathEscape(rosterId)))
}

func (rs *RosterStore) lock(rosterId string) *sync.Mutex {
	m, _ := rs.mu.LoadOrStore(rosterId, &sync.Mutex{})
	return m.(*sync.Mutex)
}

// SaveRoster saves the roster data atomically.
func (rs *RosterStore) SaveRoster(r *Roster) error {
	if !isValidUUID(r.ID) {
		return fmt.Errorf("invalid roster ID format: %s", r.ID)
	}
	mutex := rs.lock(r.ID)
	mutex.Lock()
	defer mutex.Unlock()

	r.normalize()
	r.UpdatedAt = time.Now().UnixNano()
	if err := rs.storage.SaveDataFile(rosterFilename(r.ID), r); err != nil {
		return fmt.Errorf("storage.SaveDataFile: %w", err)
	}
	return nil
}

// LoadRoster loads the roster by ID.
func (rs *RosterStore) LoadRoster(rosterId string) (*Roster, error) {
	var r Roster
	if err := rs.storage.ReadDataFile(rosterFilename(rosterId), &r); err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("ReadDataFile: %w", err)
	}
	if r.SchemaVersion > CurrentSchemaVersion {
		return nil, fmt.Errorf("unsupported schema version %d", r.SchemaVersion)
	}
	r.normalize()
	return &r, nil
}

// LoadActiveRoster loads a roster that can take the field: tombstones are
// reported as missing.
func (rs *RosterStore) LoadActiveRoster(rosterId string) (*Roster, error) {
	r, err := rs.LoadRoster(rosterId)
	if err != nil {
		return nil, err
	}
	if r.Status == StatusDeleted {
		return nil, os.ErrNotExist
	}
	return r, nil
}

// RosterSummary is a roster listing entry.
type RosterSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName,omitempty"`
	UpdatedAt int64  `json:"updatedAt"`
	Status    string `json:"status,omitempty"`
}

func (r *Roster) Summary() RosterSummary {
	return RosterSummary{ID: r.ID, Name: r.Name, ShortName: r.ShortName, UpdatedAt: r.UpdatedAt, Status: r.Status}
}

// ListAllRosters returns an iterator over all rosters in the rosters
// directory, tombstones included.
func (rs *RosterStore) ListAllRosters() iter.Seq2[*Roster, error] {
	return func(yield func(*Roster, error) bool) {
		files, err := os.ReadDir(filepath.Join(rs.DataDir, rostersDir))
		if err != nil {
			if os.IsNotExist(err) {
				return
			}
			yield(nil, fmt.Errorf("could not read rosters directory: %w", err))
			return
		}
		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
				continue
			}
			rosterId, err := url.PathUnescape(strings.TrimSuffix(file.Name(), ".json"))
			if err != nil {
				continue
			}
			r, err := rs.LoadRoster(rosterId)
			if err != nil {
				log.Printf("Warning: could not load roster '%s': %v", rosterId, err)
				continue
			}
			if !yield(r, nil) {
				return
			}
		}
	}
}

// DeleteRoster deletes a roster by overwriting it with a tombstone.
func (rs *RosterStore) DeleteRoster(rosterId string) error {
	r, err := rs.LoadRoster(rosterId)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	mutex := rs.lock(rosterId)
	mutex.Lock()
	defer mutex.Unlock()

	tombstone := &Roster{
		ID:            rosterId,
		SchemaVersion: CurrentSchemaVersion,
		Name:          r.Name,
		Status:        StatusDeleted,
		DeletedAt:     time.Now().UnixNano(),
	}
	if err := rs.storage.SaveDataFile(rosterFilename(rosterId), tombstone); err != nil {
		return fmt.Errorf("storage.SaveDataFile (tombstone): %w", err)
	}
	return nil
}

// PurgeRoster permanently deletes the roster file.
func (rs *RosterStore) PurgeRoster(rosterId string) error {
	mutex := rs.lock(rosterId)
	mutex.Lock()
	defer mutex.Unlock()

	if err := os.Remove(filepath.Join(rs.DataDir, rosterFilename(rosterId))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not purge roster file: %w", err)
	}
	rs.mu.Delete(rosterId)
	return nil
}
