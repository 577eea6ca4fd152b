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

package governance

import (
	"fmt"
	"slices"

	"github.com/blinklabs-io/helm/cbor"
	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/jinzhu/copier"
)

// AdminList holds the keys allowed to approve, reject and cancel content for an identity.
// It never becomes empty.
type AdminList struct {
	cbor.StructAsArray
	Identity  common.Address
	Admins    []common.PublicKey
	Authority common.PublicKey
	Bump      uint8
}

// CreatorList holds the keys allowed to author content for an identity
type CreatorList struct {
	cbor.StructAsArray
	Identity  common.Address
	Creators  []common.PublicKey
	Authority common.PublicKey
	Bump      uint8
}

func (l AdminList) Contains(key common.PublicKey) bool {
	return slices.Contains(l.Admins, key)
}

func (l AdminList) Len() int {
	return len(l.Admins)
}

// Clone returns a deep copy that shares no backing storage with l
func (l AdminList) Clone() AdminList {
	var ret AdminList
	cloneRecord(&ret, &l)
	return ret
}

// Add returns a copy of the list with admin appended. Adding admins requires a
// verified identity.
func (l AdminList) Add(
	params common.Params,
	identity Identity,
	requester common.PublicKey,
	admin common.PublicKey,
) (AdminList, error) {
	if err := checkManager(l.Identity, l.Authority, identity, requester); err != nil {
		return AdminList{}, err
	}
	if !identity.IsVerified {
		return AdminList{}, common.ErrTwitterAccountNotVerified
	}
	if l.Contains(admin) {
		return AdminList{}, common.ErrAdminAlreadyExists
	}
	if l.Len() >= params.MaxAdmins {
		return AdminList{}, common.ErrMaxAdminsReached
	}
	ret := l.Clone()
	ret.Admins = append(ret.Admins, admin)
	return ret, nil
}

// Remove returns a copy of the list without admin. The owner and the last
// admin can never be removed.
func (l AdminList) Remove(
	identity Identity,
	requester common.PublicKey,
	admin common.PublicKey,
) (AdminList, error) {
	if err := checkManager(l.Identity, l.Authority, identity, requester); err != nil {
		return AdminList{}, err
	}
	if !l.Contains(admin) {
		return AdminList{}, common.ErrAdminDoesNotExist
	}
	if admin.Equal(l.Authority) {
		return AdminList{}, fmt.Errorf(
			"%w: the owner is always an admin",
			common.ErrCannotRemoveLastAdmin,
		)
	}
	if l.Len() <= 1 {
		return AdminList{}, common.ErrCannotRemoveLastAdmin
	}
	ret := l.Clone()
	ret.Admins = removeMember(ret.Admins, admin)
	return ret, nil
}

func (l CreatorList) Contains(key common.PublicKey) bool {
	return slices.Contains(l.Creators, key)
}

func (l CreatorList) Len() int {
	return len(l.Creators)
}

// Clone returns a deep copy that shares no backing storage with l
func (l CreatorList) Clone() CreatorList {
	var ret CreatorList
	cloneRecord(&ret, &l)
	return ret
}

// Add returns a copy of the list with creator appended
func (l CreatorList) Add(
	params common.Params,
	identity Identity,
	requester common.PublicKey,
	creator common.PublicKey,
) (CreatorList, error) {
	if err := checkManager(l.Identity, l.Authority, identity, requester); err != nil {
		return CreatorList{}, err
	}
	if l.Contains(creator) {
		return CreatorList{}, common.ErrCreatorAlreadyExists
	}
	if l.Len() >= params.MaxCreators {
		return CreatorList{}, common.ErrMaxCreatorsReached
	}
	ret := l.Clone()
	ret.Creators = append(ret.Creators, creator)
	return ret, nil
}

// Remove returns a copy of the list without creator. Unlike admins, the
// creator list may become empty.
func (l CreatorList) Remove(
	identity Identity,
	requester common.PublicKey,
	creator common.PublicKey,
) (CreatorList, error) {
	if err := checkManager(l.Identity, l.Authority, identity, requester); err != nil {
		return CreatorList{}, err
	}
	if !l.Contains(creator) {
		return CreatorList{}, common.ErrCreatorDoesNotExist
	}
	ret := l.Clone()
	ret.Creators = removeMember(ret.Creators, creator)
	return ret, nil
}

// CheckIdentity reports InvalidTwitterAccount unless the list belongs to identity
func (l AdminList) CheckIdentity(identity Identity) error {
	return checkBinding(l.Identity, identity)
}

func (l CreatorList) CheckIdentity(identity Identity) error {
	return checkBinding(l.Identity, identity)
}

func checkBinding(listIdentity common.Address, identity Identity) error {
	if listIdentity != identity.Address() {
		return fmt.Errorf(
			"%w: list bound to %s, got %s",
			common.ErrInvalidTwitterAccount,
			listIdentity,
			identity.Address(),
		)
	}
	return nil
}

func checkManager(
	listIdentity common.Address,
	authority common.PublicKey,
	identity Identity,
	requester common.PublicKey,
) error {
	if err := checkBinding(listIdentity, identity); err != nil {
		return err
	}
	if !requester.Equal(authority) {
		return common.ErrUnauthorized
	}
	return nil
}

func removeMember(
	members []common.PublicKey,
	key common.PublicKey,
) []common.PublicKey {
	return slices.DeleteFunc(members, func(k common.PublicKey) bool {
		return k == key
	})
}

func cloneRecord(dst any, src any) {
	if err := copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true}); err != nil {
		panic(
			fmt.Sprintf("unexpected error cloning record: %s", err),
		)
	}
}
