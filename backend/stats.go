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
	"iter"
	"sync"
	"time"
)

// StatBuckets holds counts 0 through StatBuckets-2; the last bucket
// collects everything larger.
const StatBuckets = 21

// Histogram counts small non-negative integers such as runs or pitches.
type Histogram struct {
	Buckets [StatBuckets]uint64 `json:"b"`
	Count   uint64              `json:"c"`
	Sum     float64             `json:"s"`
}

func (h *Histogram) Add(v int) {
	idx := v
	if idx < 0 {
		idx = 0
	}
	if idx >= StatBuckets {
		idx = StatBuckets - 1
	}
	h.Buckets[idx]++
	h.Count++
	h.Sum += float64(v)
}

func (h *Histogram) Merge(other *Histogram) {
	if other == nil {
		return
	}
	for i := 0; i < StatBuckets; i++ {
		h.Buckets[i] += other.Buckets[i]
	}
	h.Count += other.Count
	h.Sum += other.Sum
}

// Mean returns the average value, 0 when empty.
func (h *Histogram) Mean() float64 {
	if h.Count == 0 {
		return 0
	}
	return h.Sum / float64(h.Count)
}

// Percentile returns the smallest bucket value at or below which a
// fraction p of the samples fall.
func (h *Histogram) Percentile(p float64) int {
	if h.Count == 0 {
		return 0
	}
	target := p * float64(h.Count)
	var seen uint64
	for i, n := range h.Buckets {
		seen += n
		if float64(seen) >= target {
			return i
		}
	}
	return StatBuckets - 1
}

const LatencyBuckets = 101
const LatencyBucketSize = 50 * time.Millisecond

// LatencyHistogram buckets request durations in 50ms steps.
type LatencyHistogram struct {
	Buckets [LatencyBuckets]uint64 `json:"b"`
	Count   uint64                 `json:"c"`
	Sum     float64                `json:"s"` // Sum of durations in milliseconds
}

func (h *LatencyHistogram) Add(d time.Duration) {
	idx := int(d / LatencyBucketSize)
	if idx >= LatencyBuckets {
		idx = LatencyBuckets - 1
	}
	h.Buckets[idx]++
	h.Count++
	h.Sum += float64(d.Milliseconds())
}

// Point is a single data point in a time series.
type Point[T any] struct {
	Timestamp int64 `json:"t"`
	Value     T     `json:"v"`
}

// RingBuffer is a fixed-size circular time series at one resolution.
type RingBuffer[T any] struct {
	Resolution time.Duration `json:"resolution"`
	Data       []Point[T]    `json:"data"`
	Head       int           `json:"head"` // Points to the *next* write position
}

func NewRingBuffer[T any](resolution time.Duration, size int) *RingBuffer[T] {
	return &RingBuffer[T]{
		Resolution: resolution,
		Data:       make([]Point[T], size),
	}
}

// Update applies fn to the point for timestamp's slot, starting a new
// point from the zero value when the slot changed.
func (rb *RingBuffer[T]) Update(timestamp int64, fn func(T) T) {
	resSec := int64(rb.Resolution.Seconds())
	aligned := (timestamp / resSec) * resSec

	prev := (rb.Head - 1 + len(rb.Data)) % len(rb.Data)
	if rb.Data[prev].Timestamp == aligned {
		rb.Data[prev].Value = fn(rb.Data[prev].Value)
		return
	}
	var zero T
	rb.Data[rb.Head] = Point[T]{Timestamp: aligned, Value: fn(zero)}
	rb.Head = (rb.Head + 1) % len(rb.Data)
}

// Points returns the recorded points oldest first.
func (rb *RingBuffer[T]) Points() []Point[T] {
	points := make([]Point[T], 0, len(rb.Data))
	for i := 0; i < len(rb.Data); i++ {
		idx := (rb.Head + i) % len(rb.Data)
		if rb.Data[idx].Timestamp > 0 {
			points = append(points, rb.Data[idx])
		}
	}
	return points
}

// SimStats aggregates stored half-innings.
type SimStats struct {
	Sims        int            `json:"sims"`
	Runs        Histogram      `json:"runs"`        // runs per half-inning
	Pitches     Histogram      `json:"pitches"`     // pitches per at-bat event
	Outcomes    map[string]int `json:"outcomes"`    // keyed by type/outcome
	ScoringRate float64        `json:"scoringRate"` // share of half-innings with a run
	MeanRuns    float64        `json:"meanRuns"`

	scoring int
}

func NewSimStats() *SimStats {
	return &SimStats{Outcomes: make(map[string]int)}
}

// Add folds one record into the totals. Tombstones are ignored.
func (s *SimStats) Add(rec *SimRecord) {
	if rec == nil || rec.Status == StatusDeleted {
		return
	}
	s.Sims++
	s.Runs.Add(rec.Runs)
	if rec.Runs > 0 {
		s.scoring++
	}
	for _, ev := range rec.Events {
		s.Outcomes[ev.Type+"/"+ev.Outcome]++
		if ev.Type == EventAtBat {
			s.Pitches.Add(ev.Pitches)
		}
	}
	s.ScoringRate = float64(s.scoring) / float64(s.Sims)
	s.MeanRuns = s.Runs.Mean()
}

// CollectStats aggregates every record the iterator yields.
func CollectStats(records iter.Seq2[*SimRecord, error]) (*SimStats, error) {
	s := NewSimStats()
	for rec, err := range records {
		if err != nil {
			return nil, err
		}
		s.Add(rec)
	}
	return s, nil
}

// monitor tracks request latency and simulation throughput for this
// process.
type monitor struct {
	mu         sync.Mutex
	latency    LatencyHistogram
	throughput *RingBuffer[int]
}

func newMonitor() *monitor {
	return &monitor{throughput: NewRingBuffer[int](time.Minute, 120)}
}

func (m *monitor) observe(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latency.Add(d)
}

func (m *monitor) simulated(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.throughput.Update(now.Unix(), func(n int) int { return n + 1 })
}

// MonitorSnapshot is the process view served with the stats.
type MonitorSnapshot struct {
	Latency    LatencyHistogram `json:"latency"`
	Throughput []Point[int]     `json:"throughput"` // simulations per minute
}

func (m *monitor) snapshot() MonitorSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MonitorSnapshot{Latency: m.latency, Throughput: m.throughput.Points()}
}
