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

package common_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/blinklabs-io/helm/cbor"
	"github.com/blinklabs-io/helm/internal/test"
	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicKeyVerify(t *testing.T) {
	kp := test.NewKeypair(7)
	msg := []byte("approve")
	sig := ed25519.Sign(kp.Private, msg)
	assert.True(t, kp.Public.Verify(msg, sig))
	assert.False(t, kp.Public.Verify([]byte("reject"), sig))
	assert.False(t, test.NewPublicKey(8).Verify(msg, sig))
	assert.False(t, kp.Public.Verify(msg, sig[:10]))
}

func TestPublicKeyOnCurve(t *testing.T) {
	assert.True(t, test.NewPublicKey(1).IsOnCurve())
	assert.True(t, test.NewPublicKey(2).IsOnCurve())
}

func TestPublicKeyStringRoundTrip(t *testing.T) {
	key := test.NewPublicKey(3)
	parsed, err := common.NewPublicKeyFromString(key.String())
	require.NoError(t, err)
	assert.Equal(t, key, parsed)
	_, err = common.NewPublicKeyFromString("")
	assert.Error(t, err)
}

func TestPublicKeyCbor(t *testing.T) {
	key := test.NewPublicKey(4)
	data, err := cbor.Encode(key)
	require.NoError(t, err)
	// bytestring header for 32 bytes followed by the key
	assert.Equal(t, byte(0x58), data[0])
	assert.Equal(t, byte(0x20), data[1])
	var decoded common.PublicKey
	_, err = cbor.Decode(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, key, decoded)

	short, err := cbor.Encode([]byte{0x01})
	require.NoError(t, err)
	_, err = cbor.Decode(short, &decoded)
	assert.Error(t, err)
}
