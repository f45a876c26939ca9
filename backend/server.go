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
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/c2FmZQ/storage"
	"github.com/google/uuid"
	"github.com/ttbt-io/skoresim/backend/search"
	"golang.org/x/text/language"
)

func generateETag(data []byte) string {
	return fmt.Sprintf("\"%x\"", sha256.Sum256(data))
}

func parsePagination(r *http.Request) (int, int) {
	limit := defaultListLimit
	offset := 0

	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if val, err := strconv.Atoi(o); err == nil {
			offset = val
		}
	}

	if limit < 1 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := min(offset+limit, len(all))
	return all[offset:end]
}

// listResponse is the envelope of every list endpoint.
type listResponse[T any] struct {
	Data []T `json:"data"`
	Meta struct {
		Total  int `json:"total"`
		Offset int `json:"offset"`
		Limit  int `json:"limit"`
	} `json:"meta"`
}

// Options represent server options.
type Options struct {
	Addr        string
	Cert        *tls.Certificate
	Listener    net.Listener
	DataDir     string
	Storage     *storage.Storage
	SimStore    *SimStore
	RosterStore *RosterStore
	CacheSize   int
	Debug       bool

	// TombstoneTTL is how long deleted records are kept before purging.
	TombstoneTTL time.Duration

	// Simulation defaults
	Lang language.Tag
	Seed uint64
}

// Server represents the running server instance.
type Server struct {
	httpServer *http.Server
	janitor    *Janitor
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.janitor.StopGC()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	return nil
}

// StartServer starts the web server and registers the API handlers.
func StartServer(opts Options) (*Server, error) {
	if opts.DataDir == "" {
		opts.DataDir = "data"
	}
	if opts.Storage == nil {
		opts.Storage = storage.New(opts.DataDir, nil)
	}
	if opts.SimStore == nil {
		opts.SimStore = NewSimStore(opts.DataDir, opts.Storage, opts.CacheSize)
	}
	if opts.RosterStore == nil {
		opts.RosterStore = NewRosterStore(opts.DataDir, opts.Storage)
	}
	janitor := NewJanitor(opts.SimStore, opts.RosterStore, opts.TombstoneTTL)
	janitor.PurgeOldTombstones()
	janitor.StartGC()

	_, handler := NewServerHandler(opts)

	httpServer := &http.Server{
		Addr:    opts.Addr,
		Handler: handler,
	}
	if opts.Cert != nil {
		httpServer.TLSConfig = &tls.Config{
			Certificates: []tls.Certificate{*opts.Cert},
		}
	}

	go func() {
		var err error
		switch {
		case opts.Listener != nil && httpServer.TLSConfig != nil:
			log.Printf("Starting HTTPS server on provided listener %s...", opts.Listener.Addr())
			err = httpServer.ServeTLS(opts.Listener, "", "")
		case opts.Listener != nil:
			log.Printf("Starting HTTP server on provided listener %s...", opts.Listener.Addr())
			err = httpServer.Serve(opts.Listener)
		case opts.Cert != nil:
			log.Printf("Starting HTTPS server on %s...", opts.Addr)
			err = httpServer.ListenAndServeTLS("", "")
		default:
			log.Printf("Starting HTTP server on %s...", opts.Addr)
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, net.ErrClosed) && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return &Server{httpServer: httpServer, janitor: janitor}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// NewServerHandler creates and configures the HTTP handler for the server.
// The returned FeedHub receives the events of every simulation the
// handler runs.
func NewServerHandler(opts Options) (*FeedHub, http.Handler) {
	if opts.DataDir == "" {
		opts.DataDir = "data"
	}
	if opts.Storage == nil {
		opts.Storage = storage.New(opts.DataDir, nil)
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.Lang == language.Und {
		opts.Lang = language.Japanese
	}

	sims := opts.SimStore
	if sims == nil {
		sims = NewSimStore(opts.DataDir, opts.Storage, opts.CacheSize)
	}
	sims.Debug = opts.Debug
	rosters := opts.RosterStore
	if rosters == nil {
		rosters = NewRosterStore(opts.DataDir, opts.Storage)
	}

	hub := NewFeedHub(sims)
	sim := NewSimulator(hub, opts.Lang, opts.Seed, opts.Debug)
	mon := newMonitor()

	debugf := func(string, ...any) {}
	if opts.Debug {
		debugf = func(f string, a ...any) {
			log.Printf("[DEBUG BACKEND] "+f, a...)
		}
	}
	mux := http.NewServeMux()

	resolveRoster := func(inline *Roster, id string) (*Roster, error) {
		if inline != nil || id == "" {
			return inline, nil
		}
		if !isValidUUID(id) {
			return nil, fmt.Errorf("invalid roster id %q", id)
		}
		return rosters.LoadActiveRoster(id)
	}

	mux.HandleFunc("/api/simulate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
			return
		}

		var req HalfInningRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
			http.Error(w, "Bad Request: Malformed JSON", http.StatusBadRequest)
			return
		}

		var err error
		if req.Home, err = resolveRoster(req.Home, req.HomeID); err == nil {
			req.Away, err = resolveRoster(req.Away, req.AwayID)
		}
		if errors.Is(err, os.ErrNotExist) {
			http.Error(w, "Not Found: Roster not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, fmt.Sprintf("Bad Request: %v", err), http.StatusBadRequest)
			return
		}
		if err := ValidateRequest(&req); err != nil {
			http.Error(w, fmt.Sprintf("Bad Request: %v", err), http.StatusBadRequest)
			return
		}

		rec, err := sim.Run(r.Context(), req)
		if err != nil {
			log.Printf("Error running simulation: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if err := sims.SaveSim(rec); err != nil {
			log.Printf("Error saving simulation %s: %v", rec.ID, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		mon.simulated(time.Now())
		debugf("simulated %s: %d runs, %d events", rec.ID, rec.Runs, len(rec.Events))

		w.Header().Set("Location", "/api/sims/"+rec.ID)
		writeJSON(w, http.StatusCreated, rec)
	})

	mux.HandleFunc("/api/sims", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		limit, offset := parsePagination(r)

		all := make([]SimMetadata, 0)
		for meta, err := range sims.ListAllMetadata() {
			if err != nil {
				log.Printf("Error listing simulations: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if meta.Status == StatusDeleted {
				continue
			}
			all = append(all, meta)
		}

		var resp listResponse[SimMetadata]
		resp.Data = page(all, limit, offset)
		resp.Meta.Total = len(all)
		resp.Meta.Offset = offset
		resp.Meta.Limit = limit
		writeJSON(w, http.StatusOK, resp)
	})

	loadSim := func(w http.ResponseWriter, r *http.Request) (*SimRecord, bool) {
		simId := r.PathValue("id")
		if !isValidUUID(simId) {
			http.Error(w, "Bad Request: simId is missing or invalid", http.StatusBadRequest)
			return nil, false
		}
		rec, err := sims.LoadSim(simId)
		if errors.Is(err, os.ErrNotExist) || (err == nil && rec.Status == StatusDeleted) {
			http.Error(w, "Not Found: Simulation not found", http.StatusNotFound)
			return nil, false
		}
		if err != nil {
			log.Printf("Error loading simulation %s: %v", simId, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return nil, false
		}
		return rec, true
	}

	mux.HandleFunc("/api/sims/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			rec, ok := loadSim(w, r)
			if !ok {
				return
			}
			data, err := json.Marshal(rec)
			if err != nil {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			etag := generateETag(data)
			if r.Header.Get("If-None-Match") == etag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
			w.Header().Set("ETag", etag)
			w.Header().Set("Content-Type", "application/json")
			w.Write(data)
		case http.MethodDelete:
			if _, ok := loadSim(w, r); !ok {
				return
			}
			if err := sims.DeleteSim(r.PathValue("id")); err != nil {
				log.Printf("Error deleting simulation: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/sims/{id}/events", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		rec, ok := loadSim(w, r)
		if !ok {
			return
		}
		events, err := FilterEvents(rec.Events, search.Parse(r.URL.Query().Get("q")))
		if err != nil {
			http.Error(w, fmt.Sprintf("Bad Request: %v", err), http.StatusBadRequest)
			return
		}
		limit, offset := parsePagination(r)
		var resp listResponse[PlayEvent]
		resp.Data = page(events, limit, offset)
		resp.Meta.Total = len(events)
		resp.Meta.Offset = offset
		resp.Meta.Limit = limit
		writeJSON(w, http.StatusOK, resp)
	})

	mux.HandleFunc("/api/rosters", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			limit, offset := parsePagination(r)
			all := make([]RosterSummary, 0)
			for ro, err := range rosters.ListAllRosters() {
				if err != nil {
					log.Printf("Error listing rosters: %v", err)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				if ro.Status == StatusDeleted {
					continue
				}
				all = append(all, ro.Summary())
			}
			var resp listResponse[RosterSummary]
			resp.Data = page(all, limit, offset)
			resp.Meta.Total = len(all)
			resp.Meta.Offset = offset
			resp.Meta.Limit = limit
			writeJSON(w, http.StatusOK, resp)

		case http.MethodPost:
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
			if err != nil {
				http.Error(w, "Bad Request: body too large", http.StatusBadRequest)
				return
			}
			var ro *Roster
			if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
				if ro, err = ParseRoster(body); err == nil {
					err = ValidateRoster(ro)
				}
			} else {
				ro, err = ValidateRosterJSON(body)
			}
			if err != nil {
				http.Error(w, fmt.Sprintf("Bad Request: Data validation failed: %v", err), http.StatusBadRequest)
				return
			}
			status := http.StatusOK
			if ro.ID == "" {
				ro.ID = uuid.NewString()
				status = http.StatusCreated
			}
			if err := rosters.SaveRoster(ro); err != nil {
				log.Printf("Error saving roster %s: %v", ro.ID, err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			debugf("saved roster %s (%s)", ro.ID, ro.Name)
			writeJSON(w, status, ro.Summary())

		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/rosters/{id}", func(w http.ResponseWriter, r *http.Request) {
		rosterId := r.PathValue("id")
		if !isValidUUID(rosterId) {
			http.Error(w, "Bad Request: rosterId is missing or invalid", http.StatusBadRequest)
			return
		}
		ro, err := rosters.LoadActiveRoster(rosterId)
		if errors.Is(err, os.ErrNotExist) {
			http.Error(w, "Not Found: Roster not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("Error loading roster %s: %v", rosterId, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		switch r.Method {
		case http.MethodGet:
			if r.URL.Query().Get("format") != "yaml" {
				writeJSON(w, http.StatusOK, ro)
				return
			}
			data, err := ro.YAML()
			if err != nil {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/yaml")
			w.Write(data)
		case http.MethodDelete:
			if err := rosters.DeleteRoster(rosterId); err != nil {
				log.Printf("Error deleting roster %s: %v", rosterId, err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		stats, err := CollectStats(sims.ListAllSims())
		if err != nil {
			log.Printf("Error collecting stats: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"sims":        stats,
			"monitor":     mon.snapshot(),
			"feedClients": hub.Clients(),
		})
	})

	mux.HandleFunc("/api/feed", hub.ServeWS)

	mux.HandleFunc("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"version":       CurrentAppVersion,
			"schemaVersion": CurrentSchemaVersion,
		})
	})

	handler := http.Handler(mux)
	handler = loggingMiddleware(mon, handler)
	handler = securityMiddleware(handler)
	handler = cacheControlMiddleware(handler)
	return hub, handler
}

// cacheControlMiddleware keeps API responses out of shared caches.
func cacheControlMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Cache-Control", "private, no-cache, no-transform")
		}
		next.ServeHTTP(w, r)
	})
}

// securityMiddleware adds HTTP security headers to responses.
func securityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs every incoming request and records its latency.
// The feed is excluded from the latency histogram since the handler
// returns as soon as the connection is upgraded.
func loggingMiddleware(mon *monitor, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("Received request: %s %s", r.Method, r.URL.Path)
		start := time.Now()
		next.ServeHTTP(w, r)
		if r.URL.Path != "/api/feed" {
			mon.observe(time.Since(start))
		}
	})
}
