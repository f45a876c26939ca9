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

package main

import (
	"context"
	"crypto/tls"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/c2FmZQ/storage"
	"github.com/ttbt-io/skoresim/backend"
	"golang.org/x/text/language"
)

// main runs one half-inning from the command line, or serves the API with
// -serve.
func main() {
	cfg, err := backend.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var (
		addr      = flag.String("addr", cfg.Addr, "The TCP address to listen to")
		dataDir   = flag.String("data-dir", cfg.DataDir, "Directory for simulation and roster data")
		lang      = flag.String("lang", cfg.Lang, "Commentary language (ja or en)")
		seed      = flag.Uint64("seed", cfg.Seed, "Random seed; 0 draws a fresh one per simulation")
		debugMode = flag.Bool("debug", cfg.Debug, "Enable debug mode")
		cacheSize = flag.Int("cache-size", cfg.CacheSize, "Number of simulations kept in memory")
		serve     = flag.Bool("serve", false, "Serve the HTTP API instead of running one half-inning")
		tlsCert   = flag.String("tls-cert", "", "Path to HTTP TLS certificate")
		tlsKey    = flag.String("tls-key", "", "Path to HTTP TLS key")
		homeFile  = flag.String("home", "", "YAML roster of the home team")
		awayFile  = flag.String("away", "", "YAML roster of the visiting team")
		planFile  = flag.String("plan", "", "YAML list of plan steps")
		inning    = flag.Int("inning", 1, "Inning number")
		half      = flag.String("half", backend.HalfTop, "Half of the inning (top or bottom)")
		leadOff   = flag.Int("lead-off", 0, "Lineup index (0-8) of the first batter")
		save      = flag.Bool("save", false, "Store the simulated half-inning in the data dir")
	)
	flag.Parse()

	tag, err := language.Parse(*lang)
	if err != nil {
		log.Fatalf("Invalid -lang %q: %v", *lang, err)
	}

	if !*serve {
		store := openStorage(*dataDir, cfg.MasterKey, *save)
		if err := runOnce(store, *dataDir, *cacheSize, tag, *seed, *debugMode, *homeFile, *awayFile, *planFile, *inning, *half, *leadOff); err != nil {
			log.Fatal(err)
		}
		return
	}

	var cert *tls.Certificate
	if *tlsCert != "" && *tlsKey != "" {
		c, err := tls.LoadX509KeyPair(*tlsCert, *tlsKey)
		if err != nil {
			log.Fatalf("Failed to load TLS cert/key: %v", err)
		}
		cert = &c
	}

	server, err := backend.StartServer(backend.Options{
		Addr:      *addr,
		Cert:      cert,
		DataDir:   *dataDir,
		Storage:   openStorage(*dataDir, cfg.MasterKey, true),
		CacheSize: *cacheSize,
		Debug:     *debugMode,
		Lang:      tag,
		Seed:      *seed,
	})
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	// Wait for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	} else {
		log.Println("Gracefully stopped.")
	}
}

func openStorage(dataDir, passphrase string, persist bool) *storage.Storage {
	if !persist {
		return nil
	}
	store, err := backend.OpenStorage(dataDir, passphrase)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	return store
}

// runOnce simulates one half-inning and prints the play-by-play.
func runOnce(store *storage.Storage, dataDir string, cacheSize int, lang language.Tag, seed uint64, debug bool, homeFile, awayFile, planFile string, inning int, half string, leadOff int) error {
	if homeFile == "" || awayFile == "" {
		return fmt.Errorf("-home and -away are required without -serve")
	}
	home, err := backend.LoadRosterFile(homeFile)
	if err != nil {
		return err
	}
	away, err := backend.LoadRosterFile(awayFile)
	if err != nil {
		return err
	}
	req := backend.HalfInningRequest{
		Home:    home,
		Away:    away,
		Inning:  inning,
		Half:    half,
		LeadOff: leadOff,
	}
	if planFile != "" {
		if req.Plan, err = backend.LoadPlanFile(planFile); err != nil {
			return err
		}
	}

	sim := backend.NewSimulator(nil, lang, seed, debug)
	rec, err := sim.Run(context.Background(), req)
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	fmt.Printf("%s vs %s, %s of inning %d (seed %d)\n", rec.Away, rec.Home, rec.Half, rec.Inning, rec.Seed)
	for _, ev := range rec.Events {
		fmt.Printf("%3d  [%d out] %s\n", ev.Seq, ev.OutsBefore, ev.Description)
	}
	for _, reason := range rec.Skipped {
		fmt.Printf("     skipped: %s\n", reason)
	}
	fmt.Printf("R %d  H %d  LOB %d  pitches %d\n", rec.Runs, rec.Hits, rec.LeftOnBase, rec.PitchCount)

	if store != nil {
		sims := backend.NewSimStore(dataDir, store, cacheSize)
		if err := sims.SaveSim(rec); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		fmt.Printf("saved as %s\n", rec.ID)
	}
	return nil
}
