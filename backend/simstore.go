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
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/c2FmZQ/storage"
	lru "github.com/hashicorp/golang-lru/v2"
)

// SimMetadata contains only the fields needed for listing.
type SimMetadata struct {
	ID        string `json:"id"`
	CreatedAt int64  `json:"createdAt"`
	Seed      uint64 `json:"seed"`
	Lang      string `json:"lang"`
	Home      string `json:"home"`
	Away      string `json:"away"`
	Inning    int    `json:"inning"`
	Half      string `json:"half"`
	Runs      int    `json:"runs"`
	Hits      int    `json:"hits"`
	Status    string `json:"status"`
	DeletedAt int64  `json:"deletedAt,omitempty"`
}

func (r *SimRecord) metadata() SimMetadata {
	return SimMetadata{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Seed:      r.Seed,
		Lang:      r.Lang,
		Home:      r.Home,
		Away:      r.Away,
		Inning:    r.Inning,
		Half:      r.Half,
		Runs:      r.Runs,
		Hits:      r.Hits,
		Status:    r.Status,
		DeletedAt: r.DeletedAt,
	}
}

func (r *SimRecord) normalize() {
	if r.SchemaVersion == 0 {
		r.SchemaVersion = CurrentSchemaVersion
	}
	if r.Events == nil {
		r.Events = make([]PlayEvent, 0)
	}
	if r.Box == nil {
		r.Box = make([]BoxLine, 0)
	}
}

// SimStore persists simulated half-innings. Each record is a data file
// with a metadata sidecar so listings do not read event logs.
type SimStore struct {
	DataDir string
	Debug   bool
	storage *storage.Storage
	mu      sync.Map // Stores *sync.RWMutex for each simId
	cache   *lru.Cache[string, *SimRecord]
}

// NewSimStore creates a new SimStore keeping up to cacheSize records in
// memory.
func NewSimStore(dataDir string, s *storage.Storage, cacheSize int) *SimStore {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, _ := lru.New[string, *SimRecord](cacheSize)
	return &SimStore{
		DataDir: dataDir,
		storage: s,
		cache:   cache,
	}
}

func (ss *SimStore) lock(simId string) *sync.RWMutex {
	m, _ := ss.mu.LoadOrStore(simId, &sync.RWMutex{})
	return m.(*sync.RWMutex)
}

func simFilenames(simId string) (string, string) {
	encoded := url.PathEscape(simId)
	return filepath.Join(simsDir, fmt.Sprintf("%s.json", encoded)),
		filepath.Join(simsDir, fmt.Sprintf("%s.meta.json", encoded))
}

// SaveSim saves the record and its metadata sidecar.
func (ss *SimStore) SaveSim(rec *SimRecord) error {
	if !isValidUUID(rec.ID) {
		return fmt.Errorf("invalid sim ID format: %s", rec.ID)
	}
	mutex := ss.lock(rec.ID)
	mutex.Lock()
	defer mutex.Unlock()

	rec.normalize()
	filename, metaFilename := simFilenames(rec.ID)
	if err := ss.storage.SaveDataFile(filename, rec); err != nil {
		return fmt.Errorf("storage.SaveDataFile: %w", err)
	}
	meta := rec.metadata()
	if err := ss.storage.SaveDataFile(metaFilename, &meta); err != nil {
		log.Printf("Warning: Failed to save metadata sidecar for sim %s: %v", rec.ID, err)
	}
	ss.cache.Add(rec.ID, rec)
	return nil
}

// LoadSim loads a record by id. The returned record is shared with the
// cache and must not be modified.
func (ss *SimStore) LoadSim(simId string) (*SimRecord, error) {
	if rec, ok := ss.cache.Get(simId); ok {
		if ss.Debug {
			log.Printf("[CACHE] Hit for sim %s", simId)
		}
		return rec, nil
	}
	if ss.Debug {
		log.Printf("[CACHE] Miss for sim %s", simId)
	}

	mutex := ss.lock(simId)
	mutex.RLock()
	defer mutex.RUnlock()

	filename, _ := simFilenames(simId)
	var rec SimRecord
	if err := ss.storage.ReadDataFile(filename, &rec); err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("ReadDataFile: %w", err)
	}
	if rec.SchemaVersion > CurrentSchemaVersion {
		return nil, fmt.Errorf("unsupported schema version %d", rec.SchemaVersion)
	}
	rec.normalize()
	ss.cache.Add(simId, &rec)
	return &rec, nil
}

// DeleteSim replaces a record with a tombstone. Deleting a missing record
// is not an error.
func (ss *SimStore) DeleteSim(simId string) error {
	rec, err := ss.LoadSim(simId)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if rec.Status == StatusDeleted {
		return nil
	}

	mutex := ss.lock(simId)
	mutex.Lock()
	defer mutex.Unlock()

	tombstone := &SimRecord{
		ID:            simId,
		SchemaVersion: CurrentSchemaVersion,
		CreatedAt:     rec.CreatedAt,
		Home:          rec.Home,
		Away:          rec.Away,
		Inning:        rec.Inning,
		Half:          rec.Half,
		Status:        StatusDeleted,
		DeletedAt:     time.Now().UnixNano(),
	}
	tombstone.normalize()
	filename, metaFilename := simFilenames(simId)
	if err := ss.storage.SaveDataFile(filename, tombstone); err != nil {
		return fmt.Errorf("storage.SaveDataFile (tombstone): %w", err)
	}
	meta := tombstone.metadata()
	if err := ss.storage.SaveDataFile(metaFilename, &meta); err != nil {
		log.Printf("Warning: Failed to save metadata tombstone for sim %s: %v", simId, err)
	}
	ss.cache.Add(simId, tombstone)
	return nil
}

// PurgeSim permanently deletes the record files.
func (ss *SimStore) PurgeSim(simId string) error {
	mutex := ss.lock(simId)
	mutex.Lock()
	defer mutex.Unlock()

	ss.cache.Remove(simId)
	filename, metaFilename := simFilenames(simId)
	if err := os.Remove(filepath.Join(ss.DataDir, filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not purge sim file: %w", err)
	}
	if err := os.Remove(filepath.Join(ss.DataDir, metaFilename)); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not purge meta file for sim %s: %v", simId, err)
	}
	ss.mu.Delete(simId)
	return nil
}

// PurgeDeleted removes tombstones older than maxAge and returns how many
// were purged.
func (ss *SimStore) PurgeDeleted(maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge).UnixNano()
	var ids []string
	for meta, err := range ss.ListAllMetadata() {
		if err != nil {
			return 0, err
		}
		if meta.Status == StatusDeleted && meta.DeletedAt <= cutoff {
			ids = append(ids, meta.ID)
		}
	}
	for _, id := range ids {
		if err := ss.PurgeSim(id); err != nil {
			return 0, err
		}
	}
	return len(ids), nil
}

// scan returns the ids of the records on disk and which of them have a
// metadata sidecar.
func (ss *SimStore) scan() (map[string]bool, error) {
	files, err := os.ReadDir(filepath.Join(ss.DataDir, simsDir))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("could not read sims directory: %w", err)
	}
	ids := make(map[string]bool)
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		meta := strings.HasSuffix(name, ".meta.json")
		encoded := strings.TrimSuffix(strings.TrimSuffix(name, ".json"), ".meta")
		id, err := url.PathUnescape(encoded)
		if err != nil {
			continue
		}
		ids[id] = ids[id] || meta
	}
	return ids, nil
}

// ListAllMetadata returns metadata for every record, newest first,
// without loading event logs. Records whose sidecar is missing or
// unreadable are read in full.
func (ss *SimStore) ListAllMetadata() iter.Seq2[SimMetadata, error] {
	return func(yield func(SimMetadata, error) bool) {
		ids, err := ss.scan()
		if err != nil {
			yield(SimMetadata{}, err)
			return
		}
		all := make([]SimMetadata, 0, len(ids))
		for id, hasMeta := range ids {
			if hasMeta {
				_, metaFilename := simFilenames(id)
				var meta SimMetadata
				err := ss.storage.ReadDataFile(metaFilename, &meta)
				if err == nil {
					all = append(all, meta)
					continue
				}
				log.Printf("Warning: failed to load metadata for sim %s: %v. Falling back to main file.", id, err)
			}
			rec, err := ss.LoadSim(id)
			if err != nil {
				log.Printf("Warning: failed to load sim %s from disk: %v", id, err)
				continue
			}
			all = append(all, rec.metadata())
		}
		sort.Slice(all, func(i, j int) bool {
			if all[i].CreatedAt != all[j].CreatedAt {
				return all[i].CreatedAt > all[j].CreatedAt
			}
			return all[i].ID < all[j].ID
		})
		for _, meta := range all {
			if !yield(meta, nil) {
				return
			}
		}
	}
}

// ListAllSims returns an iterator over every stored record, tombstones
// included.
func (ss *SimStore) ListAllSims() iter.Seq2[*SimRecord, error] {
	return func(yield func(*SimRecord, error) bool) {
		ids, err := ss.scan()
		if err != nil {
			yield(nil, err)
			return
		}
		for id := range ids {
			rec, err := ss.LoadSim(id)
			if err != nil {
				log.Printf("Warning: could not load sim '%s': %v", id, err)
				continue
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}
