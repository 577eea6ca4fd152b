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
	"errors"
	"fmt"

	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/blinklabs-io/helm/ledger/content"
	"github.com/blinklabs-io/helm/ledger/governance"
	"github.com/blinklabs-io/helm/store"
)

// request is the context an op handler runs in
type request struct {
	params common.Params
	signer common.PublicKey
	now    int64
	snap   *snapshot
}

type handlerFunc func(req request, payload []byte) error

var handlers = map[Op]handlerFunc{
	OpRegisterIdentity:        handleRegisterIdentity,
	OpVerifyIdentity:          handleVerifyIdentity,
	OpUpdateRequiredApprovals: handleUpdateRequiredApprovals,
	OpAddAdmin:                handleAddAdmin,
	OpRemoveAdmin:             handleRemoveAdmin,
	OpAddCreator:              handleAddCreator,
	OpRemoveCreator:           handleRemoveCreator,
	OpSubmitContent:           handleSubmitContent,
	OpApproveContent:          handleApproveContent,
	OpRejectContent:           handleRejectContent,
	OpCancelContent:           handleCancelContent,
}

func handleRegisterIdentity(req request, payload []byte) error {
	var p RegisterIdentityPayload
	if err := decodePayload(payload, &p); err != nil {
		return err
	}
	identity, admins, creators, err := governance.Register(
		req.params,
		req.signer,
		p.ExternalId,
		p.Handle,
		req.now,
	)
	if err != nil {
		return err
	}
	addrs := Addresses(p.ExternalId)
	for _, addr := range []common.Address{addrs.Identity, addrs.AdminList, addrs.CreatorList} {
		exists, err := req.snap.exists(addr)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrAccountExists, addr)
		}
	}
	if err := req.snap.put(addrs.Identity, identity); err != nil {
		return err
	}
	if err := req.snap.put(addrs.AdminList, admins); err != nil {
		return err
	}
	return req.snap.put(addrs.CreatorList, creators)
}

func handleVerifyIdentity(req request, payload []byte) error {
	var p VerifyIdentityPayload
	if err := decodePayload(payload, &p); err != nil {
		return err
	}
	identity, err := req.snap.identity(p.ExternalId)
	if err != nil {
		return err
	}
	identity, err = identity.Verify(req.signer)
	if err != nil {
		return err
	}
	return req.snap.put(identity.Address(), identity)
}

func handleUpdateRequiredApprovals(req request, payload []byte) error {
	var p UpdateRequiredApprovalsPayload
	if err := decodePayload(payload, &p); err != nil {
		return err
	}
	identity, err := req.snap.identity(p.ExternalId)
	if err != nil {
		return err
	}
	identity, err = identity.SetRequiredApprovals(req.params, req.signer, p.RequiredApprovals)
	if err != nil {
		return err
	}
	return req.snap.put(identity.Address(), identity)
}

// loadAdmins loads an identity and its admin list for a member payload
func loadAdmins(
	req request,
	payload []byte,
) (MemberPayload, governance.Identity, governance.AdminList, error) {
	var p MemberPayload
	if err := decodePayload(payload, &p); err != nil {
		return p, governance.Identity{}, governance.AdminList{}, err
	}
	identity, err := req.snap.identity(p.ExternalId)
	if err != nil {
		return p, governance.Identity{}, governance.AdminList{}, err
	}
	admins, err := req.snap.adminList(p.ExternalId)
	if err != nil {
		return p, governance.Identity{}, governance.AdminList{}, err
	}
	return p, identity, admins, nil
}

func loadCreators(
	req request,
	payload []byte,
) (MemberPayload, governance.Identity, governance.CreatorList, error) {
	var p MemberPayload
	if err := decodePayload(payload, &p); err != nil {
		return p, governance.Identity{}, governance.CreatorList{}, err
	}
	identity, err := req.snap.identity(p.ExternalId)
	if err != nil {
		return p, governance.Identity{}, governance.CreatorList{}, err
	}
	creators, err := req.snap.creatorList(p.ExternalId)
	if err != nil {
		return p, governance.Identity{}, governance.CreatorList{}, err
	}
	return p, identity, creators, nil
}

func handleAddAdmin(req request, payload []byte) error {
	p, identity, admins, err := loadAdmins(req, payload)
	if err != nil {
		return err
	}
	admins, err = admins.Add(req.params, identity, req.signer, p.Member)
	if err != nil {
		return err
	}
	addr, _ := common.AdminListAddress(p.ExternalId)
	return req.snap.put(addr, admins)
}

func handleRemoveAdmin(req request, payload []byte) error {
	p, identity, admins, err := loadAdmins(req, payload)
	if err != nil {
		return err
	}
	admins, err = admins.Remove(identity, req.signer, p.Member)
	if err != nil {
		return err
	}
	addr, _ := common.AdminListAddress(p.ExternalId)
	return req.snap.put(addr, admins)
}

func handleAddCreator(req request, payload []byte) error {
	p, identity, creators, err := loadCreators(req, payload)
	if err != nil {
		return err
	}
	creators, err = creators.Add(req.params, identity, req.signer, p.Member)
	if err != nil {
		return err
	}
	addr, _ := common.CreatorListAddress(p.ExternalId)
	return req.snap.put(addr, creators)
}

func handleRemoveCreator(req request, payload []byte) error {
	p, identity, creators, err := loadCreators(req, payload)
	if err != nil {
		return err
	}
	creators, err = creators.Remove(identity, req.signer, p.Member)
	if err != nil {
		return err
	}
	addr, _ := common.CreatorListAddress(p.ExternalId)
	return req.snap.put(addr, creators)
}

func handleSubmitContent(req request, payload []byte) error {
	var p SubmitContentPayload
	if err := decodePayload(payload, &p); err != nil {
		return err
	}
	identity, err := req.snap.identity(p.ExternalId)
	if err != nil {
		return err
	}
	admins, err := req.snap.adminList(p.ExternalId)
	if err != nil {
		return err
	}
	creators, err := req.snap.creatorList(p.ExternalId)
	if err != nil {
		return err
	}
	addr, _ := common.ContentAddress(identity.Address(), req.signer, p.Hash)
	var existing *content.Content
	if prev, err := req.snap.content(addr); err == nil {
		existing = &prev
	} else if !isNotFound(err) {
		return err
	}
	c, err := content.Submit(content.Submission{
		Params:       req.params,
		Identity:     identity,
		Admins:       admins,
		Creators:     creators,
		Author:       req.signer,
		Kind:         p.Kind,
		Hash:         p.Hash,
		ScheduledFor: p.ScheduledFor,
		Existing:     existing,
		Now:          req.now,
	})
	if err != nil {
		return err
	}
	return putContent(req, c)
}

// loadAction loads a content record together with the accounts an action on
// it is checked against. The admin list is located through the identity the
// record names.
func loadAction(
	req request,
	addr common.Address,
) (content.Content, content.Action, error) {
	c, err := req.snap.content(addr)
	if err != nil {
		return content.Content{}, content.Action{}, err
	}
	identity, err := req.snap.identityAt(c.Identity)
	if err != nil {
		return content.Content{}, content.Action{}, err
	}
	admins, err := req.snap.adminList(identity.ExternalId)
	if err != nil {
		return content.Content{}, content.Action{}, err
	}
	return c, content.Action{
		Identity:  identity,
		Admins:    admins,
		Authority: req.signer,
		Now:       req.now,
	}, nil
}

func handleApproveContent(req request, payload []byte) error {
	var p ContentActionPayload
	if err := decodePayload(payload, &p); err != nil {
		return err
	}
	c, action, err := loadAction(req, p.Content)
	if err != nil {
		return err
	}
	c, err = c.Approve(action)
	if err != nil {
		return err
	}
	return putContent(req, c)
}

func handleRejectContent(req request, payload []byte) error {
	var p RejectContentPayload
	if err := decodePayload(payload, &p); err != nil {
		return err
	}
	c, action, err := loadAction(req, p.Content)
	if err != nil {
		return err
	}
	c, err = c.Reject(req.params, action, p.Reason)
	if err != nil {
		return err
	}
	return putContent(req, c)
}

func handleCancelContent(req request, payload []byte) error {
	var p ContentActionPayload
	if err := decodePayload(payload, &p); err != nil {
		return err
	}
	c, action, err := loadAction(req, p.Content)
	if err != nil {
		return err
	}
	c, err = c.Cancel(action)
	if err != nil {
		return err
	}
	return putContent(req, c)
}

func putContent(req request, c content.Content) error {
	if err := req.snap.put(c.Address(), c); err != nil {
		return err
	}
	req.snap.statuses = append(req.snap.statuses, c.Status)
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
