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

package common_test

import (
	"errors"
	"testing"

	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyRules(t *testing.T) {
	var calls []int
	rule := func(idx int, err error) common.ValidationRuleFunc[string] {
		return func(string) error {
			calls = append(calls, idx)
			return err
		}
	}

	t.Run("all pass", func(t *testing.T) {
		calls = nil
		err := common.VerifyRules(
			common.ValidationErrorTypeContent,
			"failed",
			"input",
			[]common.ValidationRuleFunc[string]{rule(0, nil), rule(1, nil)},
		)
		assert.NoError(t, err)
		assert.Equal(t, []int{0, 1}, calls)
	})

	t.Run("first failure stops", func(t *testing.T) {
		calls = nil
		err := common.VerifyRules(
			common.ValidationErrorTypeContent,
			"failed",
			"input",
			[]common.ValidationRuleFunc[string]{
				rule(0, nil),
				rule(1, common.ErrThreadTooLong),
				rule(2, common.ErrContentTooLong),
			},
		)
		require.Error(t, err)
		assert.Equal(t, []int{0, 1}, calls)
		assert.ErrorIs(t, err, common.ErrThreadTooLong)
		var valErr *common.ValidationError
		require.True(t, errors.As(err, &valErr))
		assert.Equal(t, 1, valErr.Details["rule_index"])
		assert.Equal(t, "ThreadTooLong", valErr.Details["code"])
	})
}
