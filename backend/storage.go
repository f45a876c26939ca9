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
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/c2FmZQ/storage"
	"github.com/c2FmZQ/storage/crypto"
)

// ErrUnencryptedKeyFile is returned when a data dir holds a master key but
// no passphrase was given to unlock it.
var ErrUnencryptedKeyFile = errors.New("master.key exists but no passphrase is set")

// OpenStorage initializes the encryption key and storage for dataDir. With
// a passphrase the master key in dataDir/master.key is read, or created on
// first use. Without one data is stored unencrypted, which is refused
// when a key file already exists.
func OpenStorage(dataDir, passphrase string) (*storage.Storage, error) {
	keyFile := filepath.Join(dataDir, "master.key")
	var masterKey crypto.MasterKey
	if passphrase != "" {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		var err error
		masterKey, err = crypto.ReadMasterKey([]byte(passphrase), keyFile)
		switch {
		case err == nil:
			log.Println("Loaded master encryption key.")
		case os.IsNotExist(err):
			log.Println("Initializing new master encryption key...")
			if masterKey, err = crypto.CreateMasterKey(); err != nil {
				return nil, fmt.Errorf("create master key: %w", err)
			}
			if err := masterKey.Save([]byte(passphrase), keyFile); err != nil {
				return nil, fmt.Errorf("save master key: %w", err)
			}
		default:
			return nil, fmt.Errorf("read master key: %w", err)
		}
	} else {
		if _, err := os.Stat(keyFile); err == nil {
			return nil, fmt.Errorf("%s: %w", keyFile, ErrUnencryptedKeyFile)
		}
		log.Println("Warning: No SKORESIM_MASTER_KEY provided. Data will be stored UNENCRYPTED.")
	}

	store := storage.New(dataDir, masterKey)
	store.EnableCompression(true)
	return store, nil
}
