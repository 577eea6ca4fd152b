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

package common

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/blinklabs-io/helm/cbor"
	"github.com/btcsuite/btcd/btcutil/base58"
)

const PublicKeySize = ed25519.PublicKeySize

// PublicKey is an ed25519 public key identifying an owner, admin, creator or author
type PublicKey [PublicKeySize]byte

func NewPublicKey(data []byte) (PublicKey, error) {
	if len(data) != PublicKeySize {
		return PublicKey{}, fmt.Errorf(
			"invalid public key length: %d, expected %d",
			len(data),
			PublicKeySize,
		)
	}
	var k PublicKey
	copy(k[:], data)
	return k, nil
}

// NewPublicKeyFromString parses a base58-encoded public key
func NewPublicKeyFromString(s string) (PublicKey, error) {
	decoded := base58.Decode(s)
	if len(decoded) == 0 {
		return PublicKey{}, fmt.Errorf("invalid base58 public key: %q", s)
	}
	return NewPublicKey(decoded)
}

func (k PublicKey) String() string {
	return base58.Encode(k[:])
}

func (k PublicKey) Bytes() []byte {
	return k[:]
}

func (k PublicKey) IsZero() bool {
	return k == PublicKey{}
}

func (k PublicKey) Equal(other PublicKey) bool {
	return bytes.Equal(k[:], other[:])
}

// IsOnCurve reports whether the key decodes to a point on the ed25519 curve.
// Derived addresses are never on the curve, so no private key exists for them.
func (k PublicKey) IsOnCurve() bool {
	return isOnCurve(k[:])
}

// Verify checks an ed25519 signature made by this key over message
func (k PublicKey) Verify(message []byte, sig []byte) bool {
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(k[:]), message, sig)
}

func (k PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *PublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	tmp, err := NewPublicKeyFromString(s)
	if err != nil {
		return err
	}
	*k = tmp
	return nil
}

func (k PublicKey) MarshalCBOR() ([]byte, error) {
	// Ensure we always encode a full-sized bytestring, even if the key is zero-valued
	keyBytes := make([]byte, PublicKeySize)
	copy(keyBytes, k[:])
	return cbor.Encode(keyBytes)
}

func (k *PublicKey) UnmarshalCBOR(data []byte) error {
	var tmp []byte
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	key, err := NewPublicKey(tmp)
	if err != nil {
		return err
	}
	*k = key
	return nil
}

// PublicKeyFromPrivate returns the public half of an ed25519 private key
func PublicKeyFromPrivate(priv ed25519.PrivateKey) PublicKey {
	var k PublicKey
	copy(k[:], priv.Public().(ed25519.PublicKey))
	return k
}

func isOnCurve(data []byte) bool {
	if len(data) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(data)
	return err == nil
}
