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

package test

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/blinklabs-io/helm/ledger/common"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// Keypair is a deterministic ed25519 keypair for tests
type Keypair struct {
	Private ed25519.PrivateKey
	Public  common.PublicKey
}

// NewKeypair derives a keypair from a single seed byte, so tests can refer to
// "key 1", "key 2", etc. and get the same key every run
func NewKeypair(seed byte) Keypair {
	seedBytes := make([]byte, ed25519.SeedSize)
	for i := range seedBytes {
		seedBytes[i] = seed
	}
	priv := ed25519.NewKeyFromSeed(seedBytes)
	return Keypair{
		Private: priv,
		Public:  common.PublicKeyFromPrivate(priv),
	}
}

// NewPublicKey returns only the public half of NewKeypair(seed)
func NewPublicKey(seed byte) common.PublicKey {
	return NewKeypair(seed).Public
}
