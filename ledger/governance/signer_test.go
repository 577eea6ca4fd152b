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
	"math"
	"testing"

	"github.com/blinklabs-io/helm/internal/test"
	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/blinklabs-io/helm/ledger/governance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignerAdvance(t *testing.T) {
	signer := governance.NewSigner(test.NewPublicKey(1))
	assert.Equal(t, uint64(1), signer.NextNonce())
	addr, _ := common.SignerAddress(test.NewPublicKey(1))
	assert.Equal(t, addr, signer.Address())

	testDefs := []struct {
		name  string
		nonce uint64
	}{
		{"zero", 0},
		{"skipped", 2},
		{"far ahead", 1000},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, err := signer.Advance(testDef.nonce)
			assert.ErrorIs(t, err, common.ErrInvalidNonce)
		})
	}

	next, err := signer.Advance(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), next.Nonce)
	assert.Equal(t, uint64(0), signer.Nonce)
	// a used nonce is stale
	_, err = next.Advance(1)
	assert.ErrorIs(t, err, common.ErrInvalidNonce)
	next, err = next.Advance(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), next.NextNonce())
}

func TestSignerExhausted(t *testing.T) {
	signer := governance.NewSigner(test.NewPublicKey(1))
	signer.Nonce = math.MaxUint64
	for _, nonce := range []uint64{0, 1, math.MaxUint64} {
		_, err := signer.Advance(nonce)
		assert.ErrorIs(t, err, common.ErrInvalidNonce)
	}
}
