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

package helm

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/blinklabs-io/helm/cbor"
	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/blinklabs-io/helm/ledger/content"
)

var ErrInvalidPayload = errors.New("invalid instruction payload")

// Op identifies the operation an instruction performs
type Op uint8

const (
	OpRegisterIdentity Op = iota + 1
	OpVerifyIdentity
	OpUpdateRequiredApprovals
	OpAddAdmin
	OpRemoveAdmin
	OpAddCreator
	OpRemoveCreator
	OpSubmitContent
	OpApproveContent
	OpRejectContent
	OpCancelContent
)

var opNames = map[Op]string{
	OpRegisterIdentity:        "register_identity",
	OpVerifyIdentity:          "verify_identity",
	OpUpdateRequiredApprovals: "update_required_approvals",
	OpAddAdmin:                "add_admin",
	OpRemoveAdmin:             "remove_admin",
	OpAddCreator:              "add_creator",
	OpRemoveCreator:           "remove_creator",
	OpSubmitContent:           "submit_content",
	OpApproveContent:          "approve_content",
	OpRejectContent:           "reject_content",
	OpCancelContent:           "cancel_content",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Instruction is a signed request to perform one operation. The signature
// covers the CBOR encoding of [op, signer, nonce, payload]. Nonce must be the
// signer's next nonce when the instruction executes.
type Instruction struct {
	cbor.StructAsArray
	Op        Op
	Signer    common.PublicKey
	Nonce     uint64
	Payload   []byte
	Signature []byte
}

type RegisterIdentityPayload struct {
	cbor.StructAsArray
	ExternalId string
	Handle     string
}

type VerifyIdentityPayload struct {
	cbor.StructAsArray
	ExternalId string
}

type UpdateRequiredApprovalsPayload struct {
	cbor.StructAsArray
	ExternalId        string
	RequiredApprovals uint8
}

// MemberPayload is used by the add/remove admin and creator operations
type MemberPayload struct {
	cbor.StructAsArray
	ExternalId string
	Member     common.PublicKey
}

type SubmitContentPayload struct {
	cbor.StructAsArray
	ExternalId   string
	Kind         content.Kind
	Hash         common.ContentHash
	ScheduledFor *int64
}

// ContentActionPayload is used by approve and cancel
type ContentActionPayload struct {
	cbor.StructAsArray
	Content common.Address
}

type RejectContentPayload struct {
	cbor.StructAsArray
	Content common.Address
	Reason  string
}

// NewInstruction encodes payload and signs the instruction with key. Use
// Engine.NextNonce for the signer's next nonce.
func NewInstruction(
	key ed25519.PrivateKey,
	op Op,
	nonce uint64,
	payload any,
) (Instruction, error) {
	payloadCbor, err := cbor.Encode(payload)
	if err != nil {
		return Instruction{}, fmt.Errorf("failed to encode payload: %w", err)
	}
	ins := Instruction{
		Op:      op,
		Signer:  common.PublicKeyFromPrivate(key),
		Nonce:   nonce,
		Payload: payloadCbor,
	}
	msg, err := ins.SigningBytes()
	if err != nil {
		return Instruction{}, err
	}
	ins.Signature = ed25519.Sign(key, msg)
	return ins, nil
}

// SigningBytes returns the bytes covered by the signature
func (i Instruction) SigningBytes() ([]byte, error) {
	return cbor.Encode([]any{i.Op, i.Signer, i.Nonce, i.Payload})
}

// VerifySignature reports whether the signature was made by the signer
func (i Instruction) VerifySignature() bool {
	msg, err := i.SigningBytes()
	if err != nil {
		return false
	}
	return i.Signer.Verify(msg, i.Signature)
}

func decodePayload(data []byte, dest any) error {
	if _, err := cbor.Decode(data, dest); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return nil
}
