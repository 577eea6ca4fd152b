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
	"slices"

	"github.com/sasha-s/go-deadlock"
)

// MemoryStore keeps everything in a map. It is intended for tests and
// short-lived engines.
type MemoryStore struct {
	mutex deadlock.RWMutex
	data  map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

func (m *MemoryStore) Get(key []byte) ([]byte, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	value, ok := m.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(value), nil
}

func (m *MemoryStore) Commit(writes []Write) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, w := range writes {
		m.data[string(w.Key)] = bytes.Clone(w.Value)
	}
	return nil
}

func (m *MemoryStore) Iterate(
	prefix []byte,
	fn func(key []byte, value []byte) error,
) error {
	m.mutex.RLock()
	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		if bytes.HasPrefix([]byte(key), prefix) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	values := make([][]byte, len(keys))
	for i, key := range keys {
		values[i] = bytes.Clone(m.data[key])
	}
	m.mutex.RUnlock()
	// fn runs without the lock held so it may call back into the store
	for i, key := range keys {
		if err := fn([]byte(key), values[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
