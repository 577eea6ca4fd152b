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
	"unicode/utf8"

	"github.com/blinklabs-io/helm/cbor"
	"github.com/blinklabs-io/helm/ledger/common"
)

// Identity is the governed social-media account. It is created once per
// external id and owns an AdminList, a CreatorList and every Content record
// submitted under it.
type Identity struct {
	cbor.StructAsArray
	Owner             common.PublicKey
	ExternalId        string
	ExternalHandle    string
	RequiredApprovals uint8
	IsVerified        bool
	CreatedAt         int64
	Bump              uint8
}

// Address returns the derived address of the identity record
func (i Identity) Address() common.Address {
	addr, _ := common.IdentityAddress(i.ExternalId)
	return addr
}

// ValidateExternalId checks that an external account id is a non-empty string
// of decimal digits no longer than the configured bound
func ValidateExternalId(params common.Params, externalId string) error {
	if len(externalId) == 0 || len(externalId) > params.MaxExternalIdLength {
		return common.ErrInvalidTwitterId
	}
	for i := 0; i < len(externalId); i++ {
		if externalId[i] < '0' || externalId[i] > '9' {
			return common.ErrInvalidTwitterId
		}
	}
	return nil
}

// ValidateHandle checks that a handle is non-empty, within the configured
// length and made only of ASCII letters, digits and underscores
func ValidateHandle(params common.Params, handle string) error {
	if handle == "" || utf8.RuneCountInString(handle) > params.MaxHandleLength {
		return common.ErrInvalidTwitterHandle
	}
	for _, r := range handle {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return common.ErrInvalidTwitterHandle
		}
	}
	return nil
}

// Register builds the three records created together for a new external
// account: the identity, an admin list seeded with the owner and an empty
// creator list. The caller is responsible for checking that none of the
// derived addresses already hold a record.
func Register(
	params common.Params,
	owner common.PublicKey,
	externalId string,
	handle string,
	now int64,
) (Identity, AdminList, CreatorList, error) {
	if err := ValidateHandle(params, handle); err != nil {
		return Identity{}, AdminList{}, CreatorList{}, err
	}
	if err := ValidateExternalId(params, externalId); err != nil {
		return Identity{}, AdminList{}, CreatorList{}, err
	}
	if owner.IsZero() {
		return Identity{}, AdminList{}, CreatorList{}, fmt.Errorf(
			"%w: zero owner key",
			common.ErrUnauthorized,
		)
	}
	identityAddr, identityBump := common.IdentityAddress(externalId)
	_, adminBump := common.AdminListAddress(externalId)
	_, creatorBump := common.CreatorListAddress(externalId)
	identity := Identity{
		Owner:             owner,
		ExternalId:        externalId,
		ExternalHandle:    handle,
		RequiredApprovals: params.DefaultRequiredApprovals,
		CreatedAt:         now,
		Bump:              identityBump,
	}
	admins := AdminList{
		Identity:  identityAddr,
		Admins:    []common.PublicKey{owner},
		Authority: owner,
		Bump:      adminBump,
	}
	creators := CreatorList{
		Identity:  identityAddr,
		Creators:  []common.PublicKey{},
		Authority: owner,
		Bump:      creatorBump,
	}
	return identity, admins, creators, nil
}

// Verify marks the identity as verified. It can only happen once, and only the
// owner may do it.
func (i Identity) Verify(requester common.PublicKey) (Identity, error) {
	if !requester.Equal(i.Owner) {
		return Identity{}, common.ErrUnauthorized
	}
	if i.IsVerified {
		return Identity{}, common.ErrAlreadyVerified
	}
	ret := i
	ret.IsVerified = true
	return ret, nil
}

// SetRequiredApprovals changes the quorum. Content already in flight is not
// re-evaluated; the new value applies from the next approval onward.
func (i Identity) SetRequiredApprovals(
	params common.Params,
	requester common.PublicKey,
	n uint8,
) (Identity, error) {
	if !requester.Equal(i.Owner) {
		return Identity{}, common.ErrUnauthorized
	}
	if n < params.MinRequiredApprovals || n > params.MaxRequiredApprovals {
		return Identity{}, fmt.Errorf(
			"%w: %d outside %d..%d",
			common.ErrInvalidRequiredApprovals,
			n,
			params.MinRequiredApprovals,
			params.MaxRequiredApprovals,
		)
	}
	ret := i
	ret.RequiredApprovals = n
	return ret, nil
}
