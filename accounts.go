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

package helm

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/helm/cbor"
	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/blinklabs-io/helm/ledger/content"
	"github.com/blinklabs-io/helm/ledger/governance"
	"github.com/blinklabs-io/helm/store"
)

var ErrAccountExists = errors.New("account already exists")

// Account kinds, stored as the first element of every account envelope
const (
	AccountKindIdentity    = 1
	AccountKindAdminList   = 2
	AccountKindCreatorList = 3
	AccountKindContent     = 4
	AccountKindSigner      = 5
)

var accountKeyPrefix = []byte("acct/")

type identityAccount struct {
	cbor.StructAsArray
	Kind   uint
	Record governance.Identity
}

type adminListAccount struct {
	cbor.StructAsArray
	Kind   uint
	Record governance.AdminList
}

type creatorListAccount struct {
	cbor.StructAsArray
	Kind   uint
	Record governance.CreatorList
}

type contentAccount struct {
	cbor.StructAsArray
	Kind   uint
	Record content.Content
}

type signerAccount struct {
	cbor.StructAsArray
	Kind   uint
	Record governance.Signer
}

func accountKey(addr common.Address) []byte {
	ret := make([]byte, 0, len(accountKeyPrefix)+common.AddressSize)
	ret = append(ret, accountKeyPrefix...)
	return append(ret, addr.Bytes()...)
}

// encodeAccount wraps a record in its envelope
func encodeAccount(record any) ([]byte, error) {
	switch r := record.(type) {
	case governance.Identity:
		return cbor.Encode(identityAccount{Kind: AccountKindIdentity, Record: r})
	case governance.AdminList:
		return cbor.Encode(adminListAccount{Kind: AccountKindAdminList, Record: r})
	case governance.CreatorList:
		return cbor.Encode(creatorListAccount{Kind: AccountKindCreatorList, Record: r})
	case content.Content:
		return cbor.Encode(contentAccount{Kind: AccountKindContent, Record: r})
	case governance.Signer:
		return cbor.Encode(signerAccount{Kind: AccountKindSigner, Record: r})
	}
	return nil, fmt.Errorf("unsupported record type %T", record)
}

// decodeAccount returns the record held in an envelope
func decodeAccount(data []byte) (any, error) {
	ret, err := cbor.DecodeById(
		data,
		map[int]any{
			AccountKindIdentity:    &identityAccount{},
			AccountKindAdminList:   &adminListAccount{},
			AccountKindCreatorList: &creatorListAccount{},
			AccountKindContent:     &contentAccount{},
			AccountKindSigner:      &signerAccount{},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to decode account: %w", err)
	}
	switch a := ret.(type) {
	case *identityAccount:
		return a.Record, nil
	case *adminListAccount:
		return a.Record, nil
	case *creatorListAccount:
		return a.Record, nil
	case *contentAccount:
		return a.Record, nil
	case *signerAccount:
		return a.Record, nil
	}
	return nil, fmt.Errorf("unexpected account type %T", ret)
}

// snapshot reads accounts from a store and collects the writes of a single
// instruction. Nothing reaches the store until the writes are committed.
type snapshot struct {
	store  store.Store
	writes []store.Write
	// addresses of the writes, for logging
	touched []common.Address
	// statuses of content records written
	statuses []content.Status
}

func newSnapshot(s store.Store) *snapshot {
	return &snapshot{store: s}
}

func (s *snapshot) load(addr common.Address) (any, error) {
	data, err := s.store.Get(accountKey(addr))
	if err != nil {
		return nil, err
	}
	return decodeAccount(data)
}

func (s *snapshot) exists(addr common.Address) (bool, error) {
	return store.Has(s.store, accountKey(addr))
}

// loadAs loads the record at addr and checks its type. Governance accounts
// that are missing or of the wrong type report InvalidTwitterAccount.
func loadAs[T any](s *snapshot, addr common.Address, what string) (T, error) {
	var zero T
	record, err := s.load(addr)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			if _, isContent := any(zero).(content.Content); isContent {
				return zero, fmt.Errorf("no content at %s: %w", addr, err)
			}
			return zero, fmt.Errorf(
				"%w: no %s at %s: %w",
				common.ErrInvalidTwitterAccount,
				what,
				addr,
				err,
			)
		}
		return zero, err
	}
	ret, ok := record.(T)
	if !ok {
		return zero, fmt.Errorf(
			"%w: account %s holds %T, not %s",
			common.ErrInvalidTwitterAccount,
			addr,
			record,
			what,
		)
	}
	return ret, nil
}

func (s *snapshot) identity(externalId string) (governance.Identity, error) {
	addr, _ := common.IdentityAddress(externalId)
	return loadAs[governance.Identity](s, addr, "identity")
}

func (s *snapshot) identityAt(addr common.Address) (governance.Identity, error) {
	return loadAs[governance.Identity](s, addr, "identity")
}

func (s *snapshot) adminList(externalId string) (governance.AdminList, error) {
	addr, _ := common.AdminListAddress(externalId)
	return loadAs[governance.AdminList](s, addr, "admin list")
}

func (s *snapshot) creatorList(externalId string) (governance.CreatorList, error) {
	addr, _ := common.CreatorListAddress(externalId)
	return loadAs[governance.CreatorList](s, addr, "creator list")
}

func (s *snapshot) content(addr common.Address) (content.Content, error) {
	return loadAs[content.Content](s, addr, "content")
}

// signer returns the nonce state of key. A key that never signed anything
// starts at nonce 0.
func (s *snapshot) signer(key common.PublicKey) (governance.Signer, error) {
	addr, _ := common.SignerAddress(key)
	record, err := s.load(addr)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return governance.NewSigner(key), nil
		}
		return governance.Signer{}, err
	}
	ret, ok := record.(governance.Signer)
	if !ok {
		return governance.Signer{}, fmt.Errorf("account %s holds %T, not a signer", addr, record)
	}
	return ret, nil
}

// put stages a record write at addr
func (s *snapshot) put(addr common.Address, record any) error {
	if err := s.stage(addr, record); err != nil {
		return err
	}
	s.touched = append(s.touched, addr)
	return nil
}

// stage adds a write without reporting addr as touched
func (s *snapshot) stage(addr common.Address, record any) error {
	data, err := encodeAccount(record)
	if err != nil {
		return err
	}
	s.writes = append(s.writes, store.Write{Key: accountKey(addr), Value: data})
	return nil
}
