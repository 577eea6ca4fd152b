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

package publisher

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/helm/cbor"
	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/blinklabs-io/helm/store"
	"github.com/google/uuid"
)

type JobStatus uint8

const (
	JobStatusScheduled JobStatus = iota
	JobStatusPublished
	JobStatusFailed
)

func (s JobStatus) String() string {
	switch s {
	case JobStatusScheduled:
		return "scheduled"
	case JobStatusPublished:
		return "published"
	case JobStatusFailed:
		return "failed"
	}
	return fmt.Sprintf("JobStatus(%d)", uint8(s))
}

// Job is the publisher's own record for an approved content record. It is
// kept in the publisher's store and never written back to the engine.
type Job struct {
	cbor.StructAsArray
	Id        string
	Content   common.Address
	Status    JobStatus
	Attempts  int
	RemoteId  string
	LastError string
	CreatedAt int64
	UpdatedAt int64
}

func newJob(addr common.Address, now int64) Job {
	return Job{
		Id:        uuid.NewString(),
		Content:   addr,
		Status:    JobStatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Done reports whether the job needs no further attempts
func (j Job) Done() bool {
	return j.Status == JobStatusPublished || j.Status == JobStatusFailed
}

var jobKeyPrefix = []byte("job/")

func jobKey(addr common.Address) []byte {
	return append(append([]byte{}, jobKeyPrefix...), addr.Bytes()...)
}

func loadJob(s store.Store, addr common.Address) (Job, bool, error) {
	data, err := s.Get(jobKey(addr))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Job{}, false, nil
		}
		return Job{}, false, err
	}
	var job Job
	if _, err := cbor.Decode(data, &job); err != nil {
		return Job{}, false, fmt.Errorf("failed to decode job: %w", err)
	}
	return job, true, nil
}

func saveJob(s store.Store, job Job) error {
	data, err := cbor.Encode(job)
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}
	return s.Commit([]store.Write{{Key: jobKey(job.Content), Value: data}})
}

// Jobs returns every job in the store
func Jobs(s store.Store) ([]Job, error) {
	var ret []Job
	err := s.Iterate(jobKeyPrefix, func(key []byte, value []byte) error {
		var job Job
		if _, err := cbor.Decode(value, &job); err != nil {
			return fmt.Errorf("failed to decode job: %w", err)
		}
		ret = append(ret, job)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
