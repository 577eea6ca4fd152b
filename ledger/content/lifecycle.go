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

package content

import (
	"fmt"

	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/blinklabs-io/helm/ledger/governance"
)

var allowedTransitions = map[Status][]Status{
	StatusDraft:           {StatusPendingApproval, StatusCanceled},
	StatusPendingApproval: {StatusApproved, StatusRejected, StatusCanceled},
}

// CanTransition returns InvalidStateTransition unless the core may move a
// record from one status to the other
func CanTransition(from Status, to Status) error {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf(
		"%w: %s -> %s",
		common.ErrInvalidStateTransition,
		from,
		to,
	)
}

// Action carries the accounts and signer an approve, reject or cancel is checked against
type Action struct {
	Identity  governance.Identity
	Admins    governance.AdminList
	Authority common.PublicKey
	Now       int64
}

// Approve records an approval from an admin and moves the record to Approved
// once the identity's quorum is met
func (c Content) Approve(action Action) (Content, error) {
	if err := c.checkAction(action); err != nil {
		return Content{}, err
	}
	if err := c.checkPending(); err != nil {
		return Content{}, err
	}
	if !action.Admins.Contains(action.Authority) {
		return Content{}, common.ErrUnauthorized
	}
	if c.HasApproved(action.Authority) {
		return Content{}, common.ErrAlreadyApproved
	}
	ret := c.Clone()
	ret.Approvals = append(ret.Approvals, action.Authority)
	ret.UpdatedAt = action.Now
	if ret.quorumMet(action.Identity) {
		return ret.transition(StatusApproved, action.Now)
	}
	return ret, nil
}

// Reject moves a pending record to Rejected with the admin's reason
func (c Content) Reject(
	params common.Params,
	action Action,
	reason string,
) (Content, error) {
	if err := c.checkAction(action); err != nil {
		return Content{}, err
	}
	if err := c.checkPending(); err != nil {
		return Content{}, err
	}
	if !action.Admins.Contains(action.Authority) {
		return Content{}, common.ErrUnauthorized
	}
	if len(reason) > params.MaxReasonLength {
		return Content{}, fmt.Errorf(
			"%w: rejection reason is %d bytes, max %d",
			common.ErrContentTooLong,
			len(reason),
			params.MaxReasonLength,
		)
	}
	ret, err := c.Clone().transition(StatusRejected, action.Now)
	if err != nil {
		return Content{}, err
	}
	ret.RejectionReason = &reason
	return ret, nil
}

// Cancel withdraws a non-terminal record. The author or any admin may cancel.
func (c Content) Cancel(action Action) (Content, error) {
	if err := c.checkAction(action); err != nil {
		return Content{}, err
	}
	if c.IsTerminal() {
		return Content{}, common.ErrContentInTerminalState
	}
	if !action.Authority.Equal(c.Author) &&
		!action.Admins.Contains(action.Authority) {
		return Content{}, common.ErrUnauthorized
	}
	return c.Clone().transition(StatusCanceled, action.Now)
}

// ReadyForPublish reports whether an approved record is due at now. Records
// that are not approved, or whose approvals no longer meet the identity's
// current quorum, are an error rather than "not yet".
func ReadyForPublish(
	c Content,
	identity governance.Identity,
	now int64,
) (bool, error) {
	if c.Status != StatusApproved {
		return false, common.ErrContentNotActive
	}
	if !c.quorumMet(identity) {
		return false, fmt.Errorf(
			"%w: %d of %d",
			common.ErrInsufficientApprovals,
			len(c.Approvals),
			identity.RequiredApprovals,
		)
	}
	if c.ScheduledFor != nil && *c.ScheduledFor > now {
		return false, nil
	}
	return true, nil
}

func (c Content) quorumMet(identity governance.Identity) bool {
	return len(c.Approvals) >= int(identity.RequiredApprovals)
}

// checkAction verifies the cross-account relationships shared by all actions
func (c Content) checkAction(action Action) error {
	if c.Identity != action.Identity.Address() {
		return fmt.Errorf(
			"%w: content bound to %s",
			common.ErrInvalidTwitterAccount,
			c.Identity,
		)
	}
	if err := action.Admins.CheckIdentity(action.Identity); err != nil {
		return err
	}
	if !action.Identity.IsVerified {
		return common.ErrTwitterAccountNotVerified
	}
	return nil
}

func (c Content) checkPending() error {
	if c.IsTerminal() {
		return common.ErrContentInTerminalState
	}
	if c.Status != StatusPendingApproval {
		return fmt.Errorf(
			"%w: %s",
			common.ErrInvalidContentStatus,
			c.Status,
		)
	}
	return nil
}

func (c Content) transition(to Status, now int64) (Content, error) {
	if err := CanTransition(c.Status, to); err != nil {
		return Content{}, err
	}
	c.Status = to
	c.UpdatedAt = now
	return c, nil
}
