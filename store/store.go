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

// Package store provides the account storage used by the engine and the publisher
package store

import (
	"bytes"
	"errors"
)

var ErrNotFound = errors.New("store: key not found")

// Write is a single key/value put within an atomic commit
type Write struct {
	Key   []byte
	Value []byte
}

// Store is a flat key/value store. Commit applies all writes or none of them.
// Returned values are owned by the caller.
type Store interface {
	Get(key []byte) ([]byte, error)
	Commit(writes []Write) error
	// Iterate calls fn for every key with the given prefix, in key order.
	// Iteration stops at the first error returned by fn.
	Iterate(prefix []byte, fn func(key []byte, value []byte) error) error
	Close() error
}

// Has reports whether key is present in s
func Has(s Store, key []byte) (bool, error) {
	_, err := s.Get(key)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

// prefixUpperBound returns the smallest key greater than every key with the
// given prefix, or nil if there is none
func prefixUpperBound(prefix []byte) []byte {
	upper := bytes.Clone(prefix)
	for i := len(upper) - 1; i >= 0; i-- {
		upper[i]++
		if upper[i] != 0 {
			return upper[:i+1]
		}
	}
	return nil
}
