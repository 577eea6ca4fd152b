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
	"math"

	"github.com/blinklabs-io/helm/cbor"
	"github.com/blinklabs-io/helm/ledger/common"
)

// Signer tracks the last nonce a key signed with. Every accepted instruction
// must carry exactly the next nonce, so a captured instruction cannot be
// executed a second time.
type Signer struct {
	cbor.StructAsArray
	Key   common.PublicKey
	Nonce uint64
	Bump  uint8
}

// NewSigner returns the state of a key that has not signed anything yet
func NewSigner(key common.PublicKey) Signer {
	_, bump := common.SignerAddress(key)
	return Signer{Key: key, Bump: bump}
}

func (s Signer) Address() common.Address {
	addr, _ := common.SignerAddress(s.Key)
	return addr
}

// NextNonce is the nonce the next instruction from this key must carry
func (s Signer) NextNonce() uint64 {
	return s.Nonce + 1
}

// Advance consumes nonce, which must be the next one
func (s Signer) Advance(nonce uint64) (Signer, error) {
	if s.Nonce == math.MaxUint64 || nonce != s.NextNonce() {
		return Signer{}, fmt.Errorf(
			"%w: got %d, expected %d",
			common.ErrInvalidNonce,
			nonce,
			s.NextNonce(),
		)
	}
	ret := s
	ret.Nonce = nonce
	return ret, nil
}
