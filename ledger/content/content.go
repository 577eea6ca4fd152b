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
	"slices"
	"strings"

	"github.com/blinklabs-io/helm/cbor"
	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/jinzhu/copier"
)

type Status uint8

const (
	StatusDraft Status = iota
	StatusPendingApproval
	StatusApproved
	StatusRejected
	StatusPublished
	StatusFailed
	StatusCanceled
)

var statusNames = map[Status]string{
	StatusDraft:           "Draft",
	StatusPendingApproval: "PendingApproval",
	StatusApproved:        "Approved",
	StatusRejected:        "Rejected",
	StatusPublished:       "Published",
	StatusFailed:          "Failed",
	StatusCanceled:        "Canceled",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// IsTerminal reports whether no core transition leaves this status.
// Published and Failed are only ever observed by the publisher, but they are
// terminal here too so that nothing can move a record out of them.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusCanceled, StatusPublished, StatusFailed:
		return true
	}
	return false
}

// ParseStatus accepts a status name, case-insensitively
func ParseStatus(name string) (Status, error) {
	for status, statusName := range statusNames {
		if strings.EqualFold(name, statusName) {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown content status: %q", name)
}

type KindType uint8

const (
	KindTypeTweet KindType = iota
	KindTypeThread
)

// Kind is either a single tweet or a thread with a tweet count
type Kind struct {
	cbor.StructAsArray
	Type  KindType
	Count uint8
}

func Tweet() Kind {
	return Kind{Type: KindTypeTweet}
}

func Thread(count uint8) Kind {
	return Kind{Type: KindTypeThread, Count: count}
}

func (k Kind) String() string {
	switch k.Type {
	case KindTypeTweet:
		return "tweet"
	case KindTypeThread:
		return fmt.Sprintf("thread(%d)", k.Count)
	}
	return fmt.Sprintf("kind(%d)", uint8(k.Type))
}

// Content is the record governed by the lifecycle state machine. It lives at
// the address derived from (Identity, Author, Hash) and is never deleted.
type Content struct {
	cbor.StructAsArray
	Identity        common.Address
	Author          common.PublicKey
	Kind            Kind
	Hash            common.ContentHash
	ScheduledFor    *int64
	Status          Status
	Approvals       []common.PublicKey
	RejectionReason *string
	FailureReason   *string
	CreatedAt       int64
	UpdatedAt       int64
	Bump            uint8
}

func (c Content) Address() common.Address {
	addr, _ := common.ContentAddress(c.Identity, c.Author, c.Hash)
	return addr
}

func (c Content) IsTerminal() bool {
	return c.Status.IsTerminal()
}

func (c Content) HasApproved(key common.PublicKey) bool {
	return slices.Contains(c.Approvals, key)
}

// Clone returns a deep copy that shares no backing storage with c
func (c Content) Clone() Content {
	var ret Content
	if err := copier.CopyWithOption(&ret, &c, copier.Option{DeepCopy: true}); err != nil {
		panic(
			fmt.Sprintf("unexpected error cloning content: %s", err),
		)
	}
	return ret
}
