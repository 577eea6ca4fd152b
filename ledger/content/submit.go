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
	"math"

	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/blinklabs-io/helm/ledger/governance"
)

// Submission is everything a submitForApproval is checked against. Existing is
// the record already stored at the derived address, if any.
type Submission struct {
	Params       common.Params
	Identity     governance.Identity
	Admins       governance.AdminList
	Creators     governance.CreatorList
	Author       common.PublicKey
	Kind         Kind
	Hash         common.ContentHash
	ScheduledFor *int64
	Existing     *Content
	Now          int64
}

var SubmissionRules = []common.ValidationRuleFunc[Submission]{
	SubmitValidateAccounts,
	SubmitValidateVerified,
	SubmitValidateAuthor,
	SubmitValidateNotSubmitted,
	SubmitValidateHash,
	SubmitValidateKind,
	SubmitValidateSchedule,
}

// Submit creates a content record in PendingApproval with the author's
// implicit approval. If that approval alone meets the quorum the record is
// approved immediately.
func Submit(s Submission) (Content, error) {
	if err := common.VerifyRules(
		common.ValidationErrorTypeContent,
		"content submission failed",
		s,
		SubmissionRules,
	); err != nil {
		return Content{}, err
	}
	identityAddr := s.Identity.Address()
	_, bump := common.ContentAddress(identityAddr, s.Author, s.Hash)
	c := Content{
		Identity:     identityAddr,
		Author:       s.Author,
		Kind:         s.Kind,
		Hash:         s.Hash,
		ScheduledFor: s.ScheduledFor,
		Status:       StatusDraft,
		Approvals:    []common.PublicKey{},
		CreatedAt:    s.Now,
		UpdatedAt:    s.Now,
		Bump:         bump,
	}
	if s.ScheduledFor != nil {
		scheduledFor := *s.ScheduledFor
		c.ScheduledFor = &scheduledFor
	}
	c, err := c.transition(StatusPendingApproval, s.Now)
	if err != nil {
		return Content{}, err
	}
	c.Approvals = append(c.Approvals, s.Author)
	if c.quorumMet(s.Identity) {
		return c.transition(StatusApproved, s.Now)
	}
	return c, nil
}

func SubmitValidateAccounts(s Submission) error {
	if err := s.Admins.CheckIdentity(s.Identity); err != nil {
		return err
	}
	return s.Creators.CheckIdentity(s.Identity)
}

func SubmitValidateVerified(s Submission) error {
	if !s.Identity.IsVerified {
		return common.ErrTwitterAccountNotVerified
	}
	return nil
}

// SubmitValidateAuthor requires the author to be a creator or an admin
func SubmitValidateAuthor(s Submission) error {
	if s.Creators.Contains(s.Author) || s.Admins.Contains(s.Author) {
		return nil
	}
	return common.ErrUnauthorized
}

// SubmitValidateNotSubmitted rejects a second submission landing on an
// existing record. Terminal records are never reopened.
func SubmitValidateNotSubmitted(s Submission) error {
	if s.Existing == nil {
		return nil
	}
	if s.Existing.IsTerminal() {
		return fmt.Errorf(
			"%w: existing record is %s",
			common.ErrContentInTerminalState,
			s.Existing.Status,
		)
	}
	return common.ErrAlreadySubmitted
}

func SubmitValidateHash(s Submission) error {
	if s.Hash.IsZero() {
		return common.ErrInvalidContentHash
	}
	return nil
}

func SubmitValidateKind(s Submission) error {
	switch s.Kind.Type {
	case KindTypeTweet:
		return nil
	case KindTypeThread:
		if s.Kind.Count == 0 || s.Kind.Count > s.Params.MaxThreadLength {
			return fmt.Errorf(
				"%w: %d tweets, max %d",
				common.ErrThreadTooLong,
				s.Kind.Count,
				s.Params.MaxThreadLength,
			)
		}
		return nil
	}
	return fmt.Errorf("unknown content kind: %d", s.Kind.Type)
}

// SubmitValidateSchedule checks that an optional publish time falls strictly
// inside (now+MinScheduleDelay, now+MaxScheduleDelay)
func SubmitValidateSchedule(s Submission) error {
	if s.ScheduledFor == nil {
		if s.Params.RequireSchedule {
			return common.ErrScheduleTimeRequired
		}
		return nil
	}
	scheduledFor := *s.ScheduledFor
	if scheduledFor <= s.Now {
		return common.ErrScheduleTimeInPast
	}
	if s.Now > math.MaxInt64-s.Params.MaxScheduleDelay {
		return common.ErrInvalidScheduleTime
	}
	if scheduledFor <= s.Now+s.Params.MinScheduleDelay ||
		scheduledFor >= s.Now+s.Params.MaxScheduleDelay {
		return fmt.Errorf(
			"%w: %d not within (%d, %d)",
			common.ErrInvalidScheduleTime,
			scheduledFor,
			s.Now+s.Params.MinScheduleDelay,
			s.Now+s.Params.MaxScheduleDelay,
		)
	}
	return nil
}
