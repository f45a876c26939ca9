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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestOpenStorage(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "open_storage_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	s, err := OpenStorage(tempDir, "correct horse")
	if err != nil {
		t.Fatalf("OpenStorage failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tempDir, "master.key")); err != nil {
		t.Fatalf("Expected a master key file: %v", err)
	}

	sims := NewSimStore(tempDir, s, 1)
	rec := testRecord(1)
	if err := sims.SaveSim(rec); err != nil {
		t.Fatalf("SaveSim failed: %v", err)
	}

	t.Run("reopen with passphrase", func(t *testing.T) {
		s2, err := OpenStorage(tempDir, "correct horse")
		if err != nil {
			t.Fatalf("OpenStorage failed: %v", err)
		}
		got, err := NewSimStore(tempDir, s2, 1).LoadSim(rec.ID)
		if err != nil {
			t.Fatalf("LoadSim failed: %v", err)
		}
		if got.Runs != rec.Runs {
			t.Errorf("Expected %d runs, got %d", rec.Runs, got.Runs)
		}
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		if _, err := OpenStorage(tempDir, "battery staple"); err == nil {
			t.Error("Expected an error for the wrong passphrase")
		}
	})

	t.Run("refuse unencrypted", func(t *testing.T) {
		if _, err := OpenStorage(tempDir, ""); !errors.Is(err, ErrUnencryptedKeyFile) {
			t.Errorf("Expected ErrUnencryptedKeyFile, got %v", err)
		}
	})

	t.Run("unencrypted", func(t *testing.T) {
		dir := filepath.Join(tempDir, uuid.NewString())
		if _, err := OpenStorage(dir, ""); err != nil {
			t.Errorf("OpenStorage failed: %v", err)
		}
	})
}
