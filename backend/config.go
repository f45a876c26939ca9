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

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"
)

// Config is the process configuration read from SKORESIM_* environment
// variables. Command-line flags take their defaults from it.
type Config struct {
	Addr      string `env:"ADDR" envDefault:":8080"`
	DataDir   string `env:"DATA_DIR" envDefault:"data"`
	Lang      string `env:"LANG" envDefault:"ja"`
	Seed      uint64 `env:"SEED"`
	Debug     bool   `env:"DEBUG"`
	CacheSize int    `env:"CACHE_SIZE" envDefault:"128"`
	MasterKey string `env:"MASTER_KEY,unset"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "SKORESIM_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := language.Parse(cfg.Lang); err != nil {
		return Config{}, fmt.Errorf("SKORESIM_LANG: %w", err)
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}
	return cfg, nil
}

// Language returns the commentary language tag.
func (c Config) Language() language.Tag {
	tag, err := language.Parse(c.Lang)
	if err != nil {
		return language.Japanese
	}
	return tag
}
