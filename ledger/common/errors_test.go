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
	"fmt"
	"testing"

	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodesStable(t *testing.T) {
	codes := common.ErrorCodes()
	require.Len(t, codes, 29)
	assert.Equal(t, common.ErrorCode(6000), common.ErrTwitterAccountNotVerified)
	assert.Equal(t, common.ErrorCode(6022), common.ErrUnauthorized)
	assert.Equal(t, common.ErrorCode(6027), common.ErrTooManyRequests)
	assert.Equal(t, common.ErrorCode(6028), common.ErrInvalidNonce)
	names := make(map[string]struct{})
	for _, code := range codes {
		assert.NotEqual(t, "Unknown", code.Name())
		assert.NotEmpty(t, code.Group(), "code %s has no group", code)
		_, dup := names[code.Name()]
		assert.False(t, dup, "duplicate name %s", code.Name())
		names[code.Name()] = struct{}{}
	}
}

func TestErrorCodeGroups(t *testing.T) {
	testDefs := []struct {
		code  common.ErrorCode
		group common.ErrorGroup
	}{
		{common.ErrUnauthorized, common.ErrorGroupAuthorization},
		{common.ErrAdminAlreadyExists, common.ErrorGroupAuthorization},
		{common.ErrAlreadyVerified, common.ErrorGroupIdentity},
		{common.ErrInvalidContentHash, common.ErrorGroupContent},
		{common.ErrAlreadySubmitted, common.ErrorGroupLifecycle},
		{common.ErrCannotRemoveLastAdmin, common.ErrorGroupCapacity},
		{common.ErrScheduleTimeInPast, common.ErrorGroupScheduling},
		{common.ErrTooManyRequests, common.ErrorGroupThrottling},
		{common.ErrInvalidNonce, common.ErrorGroupAuthorization},
	}
	for _, testDef := range testDefs {
		assert.Equal(t, testDef.group, testDef.code.Group(), testDef.code.Name())
	}
}

func TestErrorCodeUnknown(t *testing.T) {
	code := common.ErrorCode(42)
	assert.Equal(t, "Unknown", code.Name())
	assert.Contains(t, code.Error(), "42")
}

func TestErrorCodeThroughWrapping(t *testing.T) {
	valErr := common.NewValidationError(
		common.ValidationErrorTypeContent,
		"content validation failed",
		nil,
		common.ErrInvalidContentHash,
	)
	wrapped := fmt.Errorf("dispatch: %w", valErr)
	assert.ErrorIs(t, wrapped, common.ErrInvalidContentHash)
	assert.NotErrorIs(t, wrapped, common.ErrContentTooLong)
	code, ok := common.CodeOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, common.ErrInvalidContentHash, code)

	var target *common.ValidationError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, common.ValidationErrorTypeContent, target.Type)

	_, ok = common.CodeOf(errors.New("plain"))
	assert.False(t, ok)
}
