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
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/blinklabs-io/helm/cbor"
	"golang.org/x/crypto/sha3"
)

const ContentHashSize = 32

// ContentHash is the digest of the authored text. The core never sees the text itself.
type ContentHash [ContentHashSize]byte

func NewContentHash(data []byte) (ContentHash, error) {
	if len(data) != ContentHashSize {
		return ContentHash{}, fmt.Errorf(
			"invalid content hash length: %d, expected %d",
			len(data),
			ContentHashSize,
		)
	}
	var h ContentHash
	copy(h[:], data)
	return h, nil
}

// NewContentHashFromString parses a hex-encoded content hash
func NewContentHashFromString(s string) (ContentHash, error) {
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return ContentHash{}, fmt.Errorf("invalid content hash hex: %w", err)
	}
	return NewContentHash(decoded)
}

func (h ContentHash) String() string {
	return hex.EncodeToString(h[:])
}

func (h ContentHash) Bytes() []byte {
	return h[:]
}

func (h ContentHash) IsZero() bool {
	return h == ContentHash{}
}

func (h ContentHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h ContentHash) MarshalCBOR() ([]byte, error) {
	// Ensure we always encode a full-sized bytestring, even if the hash is zero-valued
	hashBytes := make([]byte, ContentHashSize)
	copy(hashBytes, h[:])
	return cbor.Encode(hashBytes)
}

func (h *ContentHash) UnmarshalCBOR(data []byte) error {
	var tmp []byte
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	hash, err := NewContentHash(tmp)
	if err != nil {
		return err
	}
	*h = hash
	return nil
}

// Keccak256Hash generates a legacy (pre-standard) Keccak-256 hash from the provided data
func Keccak256Hash(data []byte) ContentHash {
	tmpHash := sha3.NewLegacyKeccak256()
	tmpHash.Write(data)
	return ContentHash(tmpHash.Sum(nil))
}
