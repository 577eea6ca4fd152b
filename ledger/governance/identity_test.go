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
	"strings"
	"testing"

	"github.com/blinklabs-io/helm/cbor"
	"github.com/blinklabs-io/helm/internal/test"
	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/blinklabs-io/helm/ledger/governance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParams = common.DefaultParams()

func TestValidateExternalId(t *testing.T) {
	testDefs := []struct {
		id    string
		valid bool
	}{
		{"123", true},
		{"1234567890123456789", true},
		{strings.Repeat("9", 64), true},
		{strings.Repeat("9", 65), false},
		{"", false},
		{"12a", false},
		{"-12", false},
		{" 12", false},
	}
	for _, testDef := range testDefs {
		err := governance.ValidateExternalId(testParams, testDef.id)
		if testDef.valid {
			assert.NoError(t, err, testDef.id)
		} else {
			assert.ErrorIs(t, err, common.ErrInvalidTwitterId, testDef.id)
		}
	}
}

func TestValidateHandle(t *testing.T) {
	testDefs := []struct {
		handle string
		valid  bool
	}{
		{"test_handle", true},
		{"A1_b2", true},
		{"fifteen_chars_x", true},
		{"sixteen_chars_xx", false},
		{"", false},
		{"bad-handle", false},
		{"@handle", false},
		{"hándle", false},
	}
	for _, testDef := range testDefs {
		err := governance.ValidateHandle(testParams, testDef.handle)
		if testDef.valid {
			assert.NoError(t, err, testDef.handle)
		} else {
			assert.ErrorIs(t, err, common.ErrInvalidTwitterHandle, testDef.handle)
		}
	}
}

func TestRegister(t *testing.T) {
	owner := test.NewPublicKey(1)
	identity, admins, creators, err := governance.Register(
		testParams,
		owner,
		"123",
		"test_handle",
		1000,
	)
	require.NoError(t, err)
	assert.Equal(t, owner, identity.Owner)
	assert.Equal(t, uint8(3), identity.RequiredApprovals)
	assert.False(t, identity.IsVerified)
	assert.Equal(t, int64(1000), identity.CreatedAt)

	identityAddr, identityBump := common.IdentityAddress("123")
	assert.Equal(t, identityAddr, identity.Address())
	assert.Equal(t, identityBump, identity.Bump)

	assert.Equal(t, []common.PublicKey{owner}, admins.Admins)
	assert.Equal(t, owner, admins.Authority)
	assert.Equal(t, identityAddr, admins.Identity)
	assert.Equal(t, 0, creators.Len())
	assert.Equal(t, identityAddr, creators.Identity)
	assert.NoError(t, admins.CheckIdentity(identity))
	assert.NoError(t, creators.CheckIdentity(identity))
}

func TestRegisterInvalid(t *testing.T) {
	owner := test.NewPublicKey(1)
	_, _, _, err := governance.Register(testParams, owner, "abc", "test_handle", 0)
	assert.ErrorIs(t, err, common.ErrInvalidTwitterId)
	_, _, _, err = governance.Register(testParams, owner, "123", "bad handle", 0)
	assert.ErrorIs(t, err, common.ErrInvalidTwitterHandle)
	_, _, _, err = governance.Register(testParams, common.PublicKey{}, "123", "test_handle", 0)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestIdentityVerify(t *testing.T) {
	owner := test.NewPublicKey(1)
	other := test.NewPublicKey(2)
	identity, _, _, err := governance.Register(testParams, owner, "123", "test_handle", 0)
	require.NoError(t, err)

	_, err = identity.Verify(other)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	verified, err := identity.Verify(owner)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	// the receiver is untouched
	assert.False(t, identity.IsVerified)

	_, err = verified.Verify(owner)
	assert.ErrorIs(t, err, common.ErrAlreadyVerified)
}

func TestIdentitySetRequiredApprovals(t *testing.T) {
	owner := test.NewPublicKey(1)
	identity, _, _, err := governance.Register(testParams, owner, "123", "test_handle", 0)
	require.NoError(t, err)

	testDefs := []struct {
		n       uint8
		wantErr bool
	}{
		{0, true},
		{1, false},
		{10, false},
		{11, true},
	}
	for _, testDef := range testDefs {
		updated, err := identity.SetRequiredApprovals(testParams, owner, testDef.n)
		if testDef.wantErr {
			assert.ErrorIs(t, err, common.ErrInvalidRequiredApprovals)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, testDef.n, updated.RequiredApprovals)
	}
	_, err = identity.SetRequiredApprovals(testParams, test.NewPublicKey(2), 2)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestIdentityEncoding(t *testing.T) {
	owner := test.NewPublicKey(1)
	identity, _, _, err := governance.Register(testParams, owner, "123", "test_handle", 42)
	require.NoError(t, err)
	data, err := cbor.Encode(identity)
	require.NoError(t, err)
	// records are encoded as arrays
	assert.Equal(t, byte(0x87), data[0])
	var decoded governance.Identity
	_, err = cbor.Decode(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, identity, decoded)
}
