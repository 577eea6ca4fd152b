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
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Params holds the capacity and policy limits enforced by every transition.
// Time values are in seconds.
type Params struct {
	MaxAdmins                int   `toml:"max_admins"`
	MaxCreators              int   `toml:"max_creators"`
	DefaultRequiredApprovals uint8 `toml:"default_required_approvals"`
	MinRequiredApprovals     uint8 `toml:"min_required_approvals"`
	MaxRequiredApprovals     uint8 `toml:"max_required_approvals"`
	MaxExternalIdLength      int   `toml:"max_external_id_length"`
	MaxHandleLength          int   `toml:"max_handle_length"`
	MaxThreadLength          uint8 `toml:"max_thread_length"`
	MaxTweetLength           int   `toml:"max_tweet_length"`
	MaxReasonLength          int   `toml:"max_reason_length"`
	MinScheduleDelay         int64 `toml:"min_schedule_delay"`
	MaxScheduleDelay         int64 `toml:"max_schedule_delay"`
	RequireSchedule          bool  `toml:"require_schedule"`
}

func DefaultParams() Params {
	return Params{
		MaxAdmins:                10,
		MaxCreators:              10,
		DefaultRequiredApprovals: 3,
		MinRequiredApprovals:     1,
		MaxRequiredApprovals:     10,
		MaxExternalIdLength:      64,
		MaxHandleLength:          15,
		MaxThreadLength:          50,
		MaxTweetLength:           280,
		MaxReasonLength:          256,
		MinScheduleDelay:         5 * 60,
		MaxScheduleDelay:         30 * 24 * 60 * 60,
	}
}

// Validate checks that the params are internally consistent
func (p Params) Validate() error {
	if p.MaxAdmins < 1 {
		return errors.New("max_admins must be at least 1")
	}
	if p.MaxCreators < 0 {
		return errors.New("max_creators must not be negative")
	}
	if p.MinRequiredApprovals < 1 ||
		p.MaxRequiredApprovals < p.MinRequiredApprovals {
		return fmt.Errorf(
			"%w: bounds %d..%d",
			ErrInvalidRequiredApprovals,
			p.MinRequiredApprovals,
			p.MaxRequiredApprovals,
		)
	}
	if p.DefaultRequiredApprovals < p.MinRequiredApprovals ||
		p.DefaultRequiredApprovals > p.MaxRequiredApprovals {
		return fmt.Errorf(
			"%w: default %d outside %d..%d",
			ErrInvalidRequiredApprovals,
			p.DefaultRequiredApprovals,
			p.MinRequiredApprovals,
			p.MaxRequiredApprovals,
		)
	}
	if p.MaxExternalIdLength < 1 || p.MaxHandleLength < 1 {
		return errors.New("external id and handle lengths must be positive")
	}
	if p.MaxThreadLength < 1 || p.MaxTweetLength < 1 || p.MaxReasonLength < 1 {
		return errors.New("content length limits must be positive")
	}
	if p.MinScheduleDelay < 0 || p.MaxScheduleDelay <= p.MinScheduleDelay {
		return fmt.Errorf(
			"schedule window %d..%d is empty",
			p.MinScheduleDelay,
			p.MaxScheduleDelay,
		)
	}
	return nil
}

// LoadParams reads params from a TOML file. Keys missing from the file keep
// their default values.
func LoadParams(path string) (Params, error) {
	params := DefaultParams()
	if _, err := toml.DecodeFile(path, &params); err != nil {
		return Params{}, fmt.Errorf("params load failed (%s): %w", path, err)
	}
	if err := params.Validate(); err != nil {
		return Params{}, fmt.Errorf("params invalid (%s): %w", path, err)
	}
	return params, nil
}
