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

// readfile prints stored simulations and rosters as indented JSON, or a
// simulation's play-by-play with -text.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ttbt-io/skoresim/backend"
)

var (
	dataDir = flag.String("data-dir", "data", "Directory for simulation and roster data")
	text    = flag.Bool("text", false, "Print simulations as play-by-play text")
)

func main() {
	flag.Parse()
	store, err := backend.OpenStorage(*dataDir, os.Getenv("SKORESIM_MASTER_KEY"))
	if err != nil {
		log.Fatal(err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, arg := range flag.Args() {
		arg = strings.TrimPrefix(strings.TrimPrefix(arg, *dataDir), "/")
		if strings.HasPrefix(arg, "sims/") && !strings.HasSuffix(arg, ".meta.json") {
			var rec backend.SimRecord
			if err := store.ReadDataFile(arg, &rec); err != nil {
				log.Printf("%s: %v", arg, err)
				continue
			}
			fmt.Printf("=========== %s ===========\n", arg)
			if *text {
				for _, ev := range rec.Events {
					fmt.Printf("%3d  [%d out] %s\n", ev.Seq, ev.OutsBefore, ev.Description)
				}
				continue
			}
			if err := enc.Encode(&rec); err != nil {
				log.Printf("JSON: %s: %v", arg, err)
			}
			continue
		}

		var obj any
		switch {
		case strings.HasSuffix(arg, ".meta.json"):
			obj = new(backend.SimMetadata)
		case strings.HasPrefix(arg, "rosters/"):
			obj = new(backend.Roster)
		default:
			log.Printf("%s: not a simulation or roster file", arg)
			continue
		}
		if err := store.ReadDataFile(arg, obj); err != nil {
			log.Printf("%s: %v", arg, err)
			continue
		}
		fmt.Printf("=========== %s ===========\n", arg)
		if err := enc.Encode(obj); err != nil {
			log.Printf("JSON: %s: %v", arg, err)
		}
	}
}
