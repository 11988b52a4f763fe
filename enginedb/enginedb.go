// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package enginedb implements an optional on-disk store for a masternode
// list engine's ingested state (§10 Domain Stack), backed by
// goleveldb. No engine mutator depends on it — everything the engine
// does runs purely in memory — but cmd/mnlistdiag uses it so repeated
// invocations against the same fixture set don't need to re-ingest
// everything from genesis each time.
package enginedb

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/dashpay/dashmnle/chaincfg"
	"github.com/dashpay/dashmnle/engine"
)

// snapshotKey is the single key the store keeps the most recently saved
// engine snapshot under. The store never needs more than the latest
// snapshot: DeserializeEngine rebuilds every height the engine held in
// memory at the time Serialize was called.
var snapshotKey = []byte("snapshot")

// heightKeyPrefix namespaces the per-height markers Save records,
// letting NewestHeight answer "what's the newest height ever saved"
// without deserializing the full snapshot.
const heightKeyPrefix = "height-"

func heightKey(height uint32) []byte {
	key := make([]byte, len(heightKeyPrefix)+4)
	copy(key, heightKeyPrefix)
	binary.BigEndian.PutUint32(key[len(heightKeyPrefix):], height)
	return key
}

// Store is a goleveldb-backed persistence layer for a single engine's
// state.
type Store struct {
	db *leveldb.DB
}

// Open opens (creating if necessary) a Store at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("enginedb: open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save serializes e and records height as a newest-height marker,
// replacing whatever snapshot was previously stored.
func (s *Store) Save(e *engine.Engine, height uint32) error {
	var buf bytes.Buffer
	if err := e.Serialize(&buf); err != nil {
		return fmt.Errorf("enginedb: serialize: %w", err)
	}

	batch := new(leveldb.Batch)
	batch.Put(snapshotKey, buf.Bytes())
	batch.Put(heightKey(height), []byte{1})
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("enginedb: write: %w", err)
	}
	return nil
}

// Load reconstructs the engine previously saved for network, and
// reports false if no snapshot has ever been saved.
func (s *Store) Load(network *chaincfg.Network) (*engine.Engine, bool, error) {
	data, err := s.db.Get(snapshotKey, nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("enginedb: get: %w", err)
	}

	e, err := engine.DeserializeEngine(bytes.NewReader(data), network)
	if err != nil {
		return nil, false, fmt.Errorf("enginedb: deserialize: %w", err)
	}
	return e, true, nil
}

// NewestHeight returns the highest height ever passed to Save, and false
// if none has been recorded.
func (s *Store) NewestHeight() (uint32, bool, error) {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(heightKeyPrefix)), nil)
	defer iter.Release()

	var best uint32
	found := false
	for iter.Next() {
		key := iter.Key()
		if len(key) != len(heightKeyPrefix)+4 {
			continue
		}
		h := binary.BigEndian.Uint32(key[len(heightKeyPrefix):])
		if !found || h > best {
			best = h
			found = true
		}
	}
	if err := iter.Error(); err != nil {
		return 0, false, fmt.Errorf("enginedb: iterate: %w", err)
	}
	return best, found, nil
}
