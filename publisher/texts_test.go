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

package publisher_test

import (
	"context"
	"testing"

	"github.com/blinklabs-io/helm/cbor"
	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/blinklabs-io/helm/ledger/content"
	"github.com/blinklabs-io/helm/publisher"
	"github.com/blinklabs-io/helm/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreTextSource(t *testing.T) {
	params := common.DefaultParams()
	texts := publisher.NewStoreTextSource(store.NewMemoryStore(), params)

	hash, kind, err := texts.Put([]string{"gm"})
	require.NoError(t, err)
	assert.Equal(t, content.Tweet(), kind)
	expected, err := content.HashTweet(params, "gm")
	require.NoError(t, err)
	assert.Equal(t, expected, hash)
	got, err := texts.Texts(context.Background(), hash, kind)
	require.NoError(t, err)
	assert.Equal(t, []string{"gm"}, got)

	hash, kind, err = texts.Put([]string{"one", "two", "three"})
	require.NoError(t, err)
	assert.Equal(t, content.Thread(3), kind)
	got, err = texts.Texts(context.Background(), hash, kind)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, got)

	_, _, err = texts.Put(nil)
	assert.ErrorIs(t, err, common.ErrThreadTooLong)
}

func TestStoreTextSourceMissing(t *testing.T) {
	texts := publisher.NewStoreTextSource(store.NewMemoryStore(), common.DefaultParams())
	_, err := texts.Texts(context.Background(), common.Keccak256Hash([]byte("x")), content.Tweet())
	assert.ErrorIs(t, err, publisher.ErrTextNotFound)
}

func TestStoreTextSourceMismatch(t *testing.T) {
	s := store.NewMemoryStore()
	texts := publisher.NewStoreTextSource(s, common.DefaultParams())
	hash, kind, err := texts.Put([]string{"original"})
	require.NoError(t, err)

	// overwrite the stored text behind the source's back
	data, err := cbor.Encode([]string{"edited"})
	require.NoError(t, err)
	key := append([]byte("text/"), hash.Bytes()...)
	require.NoError(t, s.Commit([]store.Write{{Key: key, Value: data}}))

	_, err = texts.Texts(context.Background(), hash, kind)
	assert.ErrorIs(t, err, common.ErrInvalidContentHash)
}
