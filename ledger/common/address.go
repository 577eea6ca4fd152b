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
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blinklabs-io/helm/cbor"
	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/blake2b"
)

const (
	AddressSize = blake2b.Size256

	NamespaceIdentity    = "identity"
	NamespaceAdminList   = "admin-list"
	NamespaceCreatorList = "creator-list"
	NamespaceContent     = "content"
	NamespaceSigner      = "signer"

	// Prefixed to every derivation so our digests can't be mistaken for any
	// other blake2b-256 usage
	addressDomainTag = "helm/derived-address"
)

var ErrNoViableBump = errors.New("no off-curve address found for seeds")

// Address is the storage key of an account. Addresses are never chosen, only derived.
type Address [AddressSize]byte

func NewAddress(data []byte) (Address, error) {
	if len(data) != AddressSize {
		return Address{}, fmt.Errorf(
			"invalid address length: %d, expected %d",
			len(data),
			AddressSize,
		)
	}
	var a Address
	copy(a[:], data)
	return a, nil
}

// NewAddressFromString parses a base58-encoded address
func NewAddressFromString(s string) (Address, error) {
	decoded := base58.Decode(s)
	if len(decoded) == 0 {
		return Address{}, fmt.Errorf("invalid base58 address: %q", s)
	}
	return NewAddress(decoded)
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a Address) MarshalCBOR() ([]byte, error) {
	// Ensure we always encode a full-sized bytestring, even if the address is zero-valued
	addrBytes := make([]byte, AddressSize)
	copy(addrBytes, a[:])
	return cbor.Encode(addrBytes)
}

func (a *Address) UnmarshalCBOR(data []byte) error {
	var tmp []byte
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	addr, err := NewAddress(tmp)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// DeriveAddress maps a namespace and an ordered list of seeds to an address.
//
// Every element is framed with a 4-byte big-endian length, so ("ab", "c") and
// ("a", "bc") produce different preimages. A bump byte is appended and
// decremented from 255 until the digest is not a valid ed25519 point. The
// returned bump is the one that succeeded.
func DeriveAddress(namespace string, seeds ...[]byte) (Address, uint8, error) {
	preimage := frameSeeds(namespace, seeds)
	for bump := 255; bump >= 0; bump-- {
		candidate := derivationDigest(preimage, uint8(bump)) // #nosec G115
		if !isOnCurve(candidate[:]) {
			return candidate, uint8(bump), nil // #nosec G115
		}
	}
	return Address{}, 0, ErrNoViableBump
}

// MustDeriveAddress is DeriveAddress for callers that cannot meaningfully recover.
// Exhausting all 256 bumps has probability of roughly 2^-256.
func MustDeriveAddress(namespace string, seeds ...[]byte) (Address, uint8) {
	addr, bump, err := DeriveAddress(namespace, seeds...)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error deriving address: %s", err),
		)
	}
	return addr, bump
}

// VerifyDerivedAddress checks that addr is the derivation of the seeds with the given bump
func VerifyDerivedAddress(
	addr Address,
	bump uint8,
	namespace string,
	seeds ...[]byte,
) bool {
	candidate := derivationDigest(frameSeeds(namespace, seeds), bump)
	return candidate == addr && !isOnCurve(candidate[:])
}

// IdentityAddress returns the address of the identity record for an external account id
func IdentityAddress(externalId string) (Address, uint8) {
	return MustDeriveAddress(NamespaceIdentity, []byte(externalId))
}

// AdminListAddress returns the address of the admin list for an external account id
func AdminListAddress(externalId string) (Address, uint8) {
	return MustDeriveAddress(NamespaceAdminList, []byte(externalId))
}

// CreatorListAddress returns the address of the creator list for an external account id
func CreatorListAddress(externalId string) (Address, uint8) {
	return MustDeriveAddress(NamespaceCreatorList, []byte(externalId))
}

// ContentAddress returns the address of a content record. The (identity, author, hash)
// triple is the record's identity, which is what makes resubmission land on the same record.
func ContentAddress(
	identity Address,
	author PublicKey,
	hash ContentHash,
) (Address, uint8) {
	return MustDeriveAddress(
		NamespaceContent,
		identity.Bytes(),
		author.Bytes(),
		hash.Bytes(),
	)
}

// SignerAddress returns the address of the account holding a signer's last used nonce
func SignerAddress(key PublicKey) (Address, uint8) {
	return MustDeriveAddress(NamespaceSigner, key.Bytes())
}

func frameSeeds(namespace string, seeds [][]byte) []byte {
	size := len(addressDomainTag) + 4 + len(namespace)
	for _, seed := range seeds {
		size += 4 + len(seed)
	}
	ret := make([]byte, 0, size+1)
	ret = append(ret, addressDomainTag...)
	ret = appendFramed(ret, []byte(namespace))
	for _, seed := range seeds {
		ret = appendFramed(ret, seed)
	}
	return ret
}

func appendFramed(dst []byte, item []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(item))) // #nosec G115
	return append(dst, item...)
}

func derivationDigest(preimage []byte, bump uint8) Address {
	tmpHash, err := blake2b.New256(nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(preimage)
	tmpHash.Write([]byte{bump})
	return Address(tmpHash.Sum(nil))
}
