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

package governance_test

import (
	"testing"

	"github.com/blinklabs-io/helm/internal/test"
	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/blinklabs-io/helm/ledger/governance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerified(t *testing.T, externalId string) (governance.Identity, governance.AdminList, governance.CreatorList) {
	t.Helper()
	owner := test.NewPublicKey(1)
	identity, admins, creators, err := governance.Register(testParams, owner, externalId, "test_handle", 0)
	require.NoError(t, err)
	identity, err = identity.Verify(owner)
	require.NoError(t, err)
	return identity, admins, creators
}

func TestAdminListAdd(t *testing.T) {
	identity, admins, _ := newVerified(t, "123")
	owner := identity.Owner
	admin2 := test.NewPublicKey(2)

	updated, err := admins.Add(testParams, identity, owner, admin2)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Len())
	assert.True(t, updated.Contains(admin2))
	// original snapshot is unchanged
	assert.Equal(t, 1, admins.Len())

	_, err = updated.Add(testParams, identity, owner, admin2)
	assert.ErrorIs(t, err, common.ErrAdminAlreadyExists)

	_, err = admins.Add(testParams, identity, admin2, test.NewPublicKey(3))
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestAdminListAddUnverified(t *testing.T) {
	owner := test.NewPublicKey(1)
	identity, admins, _, err := governance.Register(testParams, owner, "123", "test_handle", 0)
	require.NoError(t, err)
	_, err = admins.Add(testParams, identity, owner, test.NewPublicKey(2))
	assert.ErrorIs(t, err, common.ErrTwitterAccountNotVerified)
}

func TestAdminListCapacity(t *testing.T) {
	identity, admins, _ := newVerified(t, "123")
	var err error
	for i := 2; i <= testParams.MaxAdmins; i++ {
		admins, err = admins.Add(testParams, identity, identity.Owner, test.NewPublicKey(byte(i)))
		require.NoError(t, err)
	}
	assert.Equal(t, testParams.MaxAdmins, admins.Len())
	_, err = admins.Add(testParams, identity, identity.Owner, test.NewPublicKey(200))
	assert.ErrorIs(t, err, common.ErrMaxAdminsReached)
	// a duplicate at capacity reports the duplicate
	_, err = admins.Add(testParams, identity, identity.Owner, test.NewPublicKey(2))
	assert.ErrorIs(t, err, common.ErrAdminAlreadyExists)
}

func TestAdminListRemove(t *testing.T) {
	identity, admins, _ := newVerified(t, "123")
	owner := identity.Owner
	admin2 := test.NewPublicKey(2)

	_, err := admins.Remove(identity, owner, owner)
	assert.ErrorIs(t, err, common.ErrCannotRemoveLastAdmin)

	_, err = admins.Remove(identity, owner, admin2)
	assert.ErrorIs(t, err, common.ErrAdminDoesNotExist)

	admins, err = admins.Add(testParams, identity, owner, admin2)
	require.NoError(t, err)
	removed, err := admins.Remove(identity, owner, admin2)
	require.NoError(t, err)
	assert.Equal(t, []common.PublicKey{owner}, removed.Admins)
	assert.Equal(t, 2, admins.Len())

	_, err = removed.Remove(identity, owner, owner)
	assert.ErrorIs(t, err, common.ErrCannotRemoveLastAdmin)
}

func TestAdminListRemoveOwner(t *testing.T) {
	identity, admins, _ := newVerified(t, "123")
	owner := identity.Owner
	var err error
	for seed := byte(2); seed <= 4; seed++ {
		admins, err = admins.Add(testParams, identity, owner, test.NewPublicKey(seed))
		require.NoError(t, err)
	}
	// other admins do not make the owner removable
	_, err = admins.Remove(identity, owner, owner)
	assert.ErrorIs(t, err, common.ErrCannotRemoveLastAdmin)
	assert.True(t, admins.Contains(owner))
	assert.Equal(t, 4, admins.Len())
}

func TestAdminListWrongIdentity(t *testing.T) {
	_, admins, _ := newVerified(t, "123")
	other, _, _ := newVerified(t, "456")
	_, err := admins.Add(testParams, other, other.Owner, test.NewPublicKey(2))
	assert.ErrorIs(t, err, common.ErrInvalidTwitterAccount)
	assert.ErrorIs(t, admins.CheckIdentity(other), common.ErrInvalidTwitterAccount)
}

func TestAdminListCloneIndependent(t *testing.T) {
	identity, admins, _ := newVerified(t, "123")
	admins, err := admins.Add(testParams, identity, identity.Owner, test.NewPublicKey(2))
	require.NoError(t, err)
	clone := admins.Clone()
	clone.Admins[0] = test.NewPublicKey(9)
	assert.Equal(t, identity.Owner, admins.Admins[0])
}

func TestCreatorList(t *testing.T) {
	owner := test.NewPublicKey(1)
	// creators may be managed before verification
	identity, _, creators, err := governance.Register(testParams, owner, "123", "test_handle", 0)
	require.NoError(t, err)
	creator := test.NewPublicKey(5)

	creators, err = creators.Add(testParams, identity, owner, creator)
	require.NoError(t, err)
	assert.True(t, creators.Contains(creator))

	_, err = creators.Add(testParams, identity, owner, creator)
	assert.ErrorIs(t, err, common.ErrCreatorAlreadyExists)

	_, err = creators.Add(testParams, identity, creator, test.NewPublicKey(6))
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	creators, err = creators.Remove(identity, owner, creator)
	require.NoError(t, err)
	assert.Equal(t, 0, creators.Len())

	_, err = creators.Remove(identity, owner, creator)
	assert.ErrorIs(t, err, common.ErrCreatorDoesNotExist)
}

func TestCreatorListCapacity(t *testing.T) {
	params := testParams
	params.MaxCreators = 2
	identity, _, creators := newVerified(t, "123")
	var err error
	for i := 10; i < 12; i++ {
		creators, err = creators.Add(params, identity, identity.Owner, test.NewPublicKey(byte(i)))
		require.NoError(t, err)
	}
	_, err = creators.Add(params, identity, identity.Owner, test.NewPublicKey(20))
	assert.ErrorIs(t, err, common.ErrMaxCreatorsReached)
}
