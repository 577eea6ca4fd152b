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

package publisher

import (
	"context"
	"errors"
	"fmt"

	"github.com/blinklabs-io/helm/cbor"
	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/blinklabs-io/helm/ledger/content"
	"github.com/blinklabs-io/helm/store"
)

var ErrTextNotFound = errors.New("no text for content hash")

// TextSource returns the tweets whose hash was submitted for approval
type TextSource interface {
	Texts(ctx context.Context, hash common.ContentHash, kind content.Kind) ([]string, error)
}

// StoreTextSource keeps composed text in a store, keyed by content hash
type StoreTextSource struct {
	store  store.Store
	params common.Params
}

func NewStoreTextSource(s store.Store, params common.Params) *StoreTextSource {
	return &StoreTextSource{store: s, params: params}
}

var textKeyPrefix = []byte("text/")

func textKey(hash common.ContentHash) []byte {
	return append(append([]byte{}, textKeyPrefix...), hash.Bytes()...)
}

// Put hashes the tweets the same way the composer does and stores them. A
// single tweet is hashed as a tweet, more than one as a thread.
func (s *StoreTextSource) Put(tweets []string) (common.ContentHash, content.Kind, error) {
	hash, kind, err := composeHash(s.params, tweets)
	if err != nil {
		return common.ContentHash{}, content.Kind{}, err
	}
	data, err := cbor.Encode(tweets)
	if err != nil {
		return common.ContentHash{}, content.Kind{}, err
	}
	if err := s.store.Commit([]store.Write{{Key: textKey(hash), Value: data}}); err != nil {
		return common.ContentHash{}, content.Kind{}, err
	}
	return hash, kind, nil
}

// Texts returns the stored tweets after checking they still hash to hash
func (s *StoreTextSource) Texts(
	_ context.Context,
	hash common.ContentHash,
	kind content.Kind,
) ([]string, error) {
	data, err := s.store.Get(textKey(hash))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTextNotFound, hash)
		}
		return nil, err
	}
	var tweets []string
	if _, err := cbor.Decode(data, &tweets); err != nil {
		return nil, fmt.Errorf("failed to decode text: %w", err)
	}
	stored, storedKind, err := composeHash(s.params, tweets)
	if err != nil {
		return nil, err
	}
	if stored != hash || storedKind.Type != kind.Type {
		return nil, fmt.Errorf("%w: stored text does not match %s", common.ErrInvalidContentHash, hash)
	}
	return tweets, nil
}

func composeHash(
	params common.Params,
	tweets []string,
) (common.ContentHash, content.Kind, error) {
	if len(tweets) == 1 {
		hash, err := content.HashTweet(params, tweets[0])
		return hash, content.Tweet(), err
	}
	return content.HashThread(params, tweets)
}
