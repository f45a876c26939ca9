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
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.DataDir != "data" || cfg.CacheSize != defaultCacheSize {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.Language() != language.Japanese {
		t.Errorf("Expected Japanese, got %s", cfg.Language())
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SKORESIM_ADDR", ":9999")
	t.Setenv("SKORESIM_SEED", "42")
	t.Setenv("SKORESIM_LANG", "en-US")
	t.Setenv("SKORESIM_DEBUG", "true")
	t.Setenv("SKORESIM_CACHE_SIZE", "0")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.Seed != 42 || !cfg.Debug {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.CacheSize != defaultCacheSize {
		t.Errorf("Expected non-positive cache size to fall back, got %d", cfg.CacheSize)
	}
	if cfg.Language() != language.AmericanEnglish {
		t.Errorf("Expected en-US, got %s", cfg.Language())
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"SKORESIM_SEED", "not-a-number"},
		{"SKORESIM_LANG", "!!"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), "SKORESIM_") && !strings.Contains(err.Error(), "parse env") {
				t.Errorf("Unexpected error %v", err)
			}
		})
	}
}
