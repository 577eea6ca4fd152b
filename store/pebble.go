// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"
	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultCacheSize = 10_000

// PebbleStore persists accounts in a pebble database. Reads go through an LRU
// cache that is updated only after a commit has been synced.
type PebbleStore struct {
	db    *pebble.DB
	path  string
	cache *lru.Cache[string, []byte]
	once  sync.Once
}

// OpenPebbleStore opens (or creates) a pebble database at path. A cacheSize
// of 0 uses DefaultCacheSize.
func OpenPebbleStore(path string, cacheSize int) (*PebbleStore, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create read cache: %w", err)
	}
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble database: %w", err)
	}
	return &PebbleStore{
		db:    db,
		path:  path,
		cache: cache,
	}, nil
}

func (s *PebbleStore) Path() string {
	return s.path
}

func (s *PebbleStore) Get(key []byte) ([]byte, error) {
	if value, ok := s.cache.Get(string(key)); ok {
		return bytes.Clone(value), nil
	}
	value, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get key: %w", err)
	}
	defer closer.Close()
	ret := bytes.Clone(value)
	s.cache.Add(string(key), bytes.Clone(ret))
	return ret, nil
}

func (s *PebbleStore) Commit(writes []Write) error {
	batch := s.db.NewBatch()
	defer batch.Close()
	for _, w := range writes {
		if err := batch.Set(w.Key, w.Value, nil); err != nil {
			return fmt.Errorf("failed to stage write: %w", err)
		}
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	for _, w := range writes {
		s.cache.Add(string(w.Key), bytes.Clone(w.Value))
	}
	return nil
}

func (s *PebbleStore) Iterate(
	prefix []byte,
	fn func(key []byte, value []byte) error,
) error {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return fmt.Errorf("failed to create iterator: %w", err)
	}
	defer iter.Close()
	for iter.First(); iter.Valid(); iter.Next() {
		if err := fn(bytes.Clone(iter.Key()), bytes.Clone(iter.Value())); err != nil {
			return err
		}
	}
	return iter.Error()
}

// Close closes the database. Calling it more than once is a no-op.
func (s *PebbleStore) Close() error {
	var err error
	s.once.Do(func() {
		s.cache.Purge()
		err = s.db.Close()
	})
	return err
}
