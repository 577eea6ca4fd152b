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

	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/blinklabs-io/helm/ledger/content"
	"github.com/blinklabs-io/helm/ledger/governance"
	"github.com/blinklabs-io/helm/store"
)

// AccountAddresses are the derived addresses of the accounts created for an
// external account id
type AccountAddresses struct {
	Identity    common.Address
	AdminList   common.Address
	CreatorList common.Address
}

// Addresses derives the account addresses for an external account id. The
// accounts need not exist.
func Addresses(externalId string) AccountAddresses {
	identity, _ := common.IdentityAddress(externalId)
	adminList, _ := common.AdminListAddress(externalId)
	creatorList, _ := common.CreatorListAddress(externalId)
	return AccountAddresses{
		Identity:    identity,
		AdminList:   adminList,
		CreatorList: creatorList,
	}
}

func (e *Engine) Identity(externalId string) (governance.Identity, error) {
	return newSnapshot(e.store).identity(externalId)
}

// IdentityAt returns the identity stored at addr
func (e *Engine) IdentityAt(addr common.Address) (governance.Identity, error) {
	return newSnapshot(e.store).identityAt(addr)
}

func (e *Engine) AdminList(externalId string) (governance.AdminList, error) {
	return newSnapshot(e.store).adminList(externalId)
}

func (e *Engine) CreatorList(externalId string) (governance.CreatorList, error) {
	return newSnapshot(e.store).creatorList(externalId)
}

func (e *Engine) Content(addr common.Address) (content.Content, error) {
	return newSnapshot(e.store).content(addr)
}

// ContentsByStatus returns every content record with the given status, in address order
func (e *Engine) ContentsByStatus(status content.Status) ([]content.Content, error) {
	var ret []content.Content
	err := e.store.Iterate(
		accountKeyPrefix,
		func(key []byte, value []byte) error {
			// skip other account kinds without decoding the record
			if len(value) < 2 || value[1] != AccountKindContent {
				return nil
			}
			record, err := decodeAccount(value)
			if err != nil {
				return err
			}
			c, ok := record.(content.Content)
			if !ok {
				return errors.New("content envelope holds another record type")
			}
			if c.Status == status {
				ret = append(ret, c)
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// NextNonce returns the nonce the next instruction signed by key must carry
func (e *Engine) NextNonce(key common.PublicKey) (uint64, error) {
	signer, err := newSnapshot(e.store).signer(key)
	if err != nil {
		return 0, err
	}
	return signer.NextNonce(), nil
}

// RawAccount returns the encoded account envelope stored at addr
func (e *Engine) RawAccount(addr common.Address) ([]byte, error) {
	return e.store.Get(accountKey(addr))
}

// Store returns the store backing the engine
func (e *Engine) Store() store.Store {
	return e.store
}
