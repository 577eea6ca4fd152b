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
	"strconv"
)

// ErrorCode is a stable, enumerable rejection code. Each code names exactly one
// violated invariant, and the numeric values never change once assigned.
type ErrorCode uint32

const errorCodeBase = 6000

const (
	ErrTwitterAccountNotVerified ErrorCode = errorCodeBase + iota
	ErrAlreadyVerified
	ErrInvalidTwitterHandle
	ErrInvalidTwitterId
	ErrInvalidContentStatus
	ErrContentInTerminalState
	ErrContentNotActive
	ErrInvalidStateTransition
	ErrAlreadySubmitted
	ErrAlreadyApproved
	ErrInsufficientApprovals
	ErrInvalidRequiredApprovals
	ErrAdminAlreadyExists
	ErrAdminDoesNotExist
	ErrCannotRemoveLastAdmin
	ErrMaxAdminsReached
	ErrCreatorAlreadyExists
	ErrCreatorDoesNotExist
	ErrMaxCreatorsReached
	ErrInvalidScheduleTime
	ErrScheduleTimeRequired
	ErrScheduleTimeInPast
	ErrUnauthorized
	ErrInvalidTwitterAccount
	ErrInvalidContentHash
	ErrContentTooLong
	ErrThreadTooLong
	ErrTooManyRequests
	ErrInvalidNonce
)

type ErrorGroup string

const (
	ErrorGroupAuthorization ErrorGroup = "authorization"
	ErrorGroupIdentity      ErrorGroup = "identity"
	ErrorGroupContent       ErrorGroup = "content"
	ErrorGroupLifecycle     ErrorGroup = "lifecycle"
	ErrorGroupCapacity      ErrorGroup = "capacity"
	ErrorGroupScheduling    ErrorGroup = "scheduling"
	ErrorGroupThrottling    ErrorGroup = "throttling"
)

type errorCodeInfo struct {
	name    string
	message string
	group   ErrorGroup
}

var errorCodeInfos = map[ErrorCode]errorCodeInfo{
	ErrTwitterAccountNotVerified: {"TwitterAccountNotVerified", "Twitter account not verified", ErrorGroupIdentity},
	ErrAlreadyVerified:           {"AlreadyVerified", "Twitter account already verified", ErrorGroupIdentity},
	ErrInvalidTwitterHandle:      {"InvalidTwitterHandle", "Invalid Twitter handle format", ErrorGroupIdentity},
	ErrInvalidTwitterId:          {"InvalidTwitterId", "Invalid Twitter ID format", ErrorGroupIdentity},
	ErrInvalidContentStatus:      {"InvalidContentStatus", "Invalid content status for operation", ErrorGroupLifecycle},
	ErrContentInTerminalState:    {"ContentInTerminalState", "Content is in terminal state", ErrorGroupLifecycle},
	ErrContentNotActive:          {"ContentNotActive", "Content not active", ErrorGroupLifecycle},
	ErrInvalidStateTransition:    {"InvalidStateTransition", "Invalid state transition", ErrorGroupLifecycle},
	ErrAlreadySubmitted:          {"AlreadySubmitted", "Content already submitted for approval", ErrorGroupLifecycle},
	ErrAlreadyApproved:           {"AlreadyApproved", "Content already approved by this admin", ErrorGroupLifecycle},
	ErrInsufficientApprovals:     {"InsufficientApprovals", "Insufficient approvals", ErrorGroupLifecycle},
	ErrInvalidRequiredApprovals:  {"InvalidRequiredApprovals", "Invalid minimum required approvals", ErrorGroupIdentity},
	ErrAdminAlreadyExists:        {"AdminAlreadyExists", "Admin already exists", ErrorGroupAuthorization},
	ErrAdminDoesNotExist:         {"AdminDoesNotExist", "Admin does not exist", ErrorGroupAuthorization},
	ErrCannotRemoveLastAdmin:     {"CannotRemoveLastAdmin", "Cannot remove last admin", ErrorGroupCapacity},
	ErrMaxAdminsReached:          {"MaxAdminsReached", "Maximum number of admins reached", ErrorGroupCapacity},
	ErrCreatorAlreadyExists:      {"CreatorAlreadyExists", "Creator already exists", ErrorGroupAuthorization},
	ErrCreatorDoesNotExist:       {"CreatorDoesNotExist", "Creator does not exist", ErrorGroupAuthorization},
	ErrMaxCreatorsReached:        {"MaxCreatorsReached", "Maximum number of creators reached", ErrorGroupCapacity},
	ErrInvalidScheduleTime:       {"InvalidScheduleTime", "Invalid scheduling time", ErrorGroupScheduling},
	ErrScheduleTimeRequired:      {"ScheduleTimeRequired", "Schedule time required", ErrorGroupScheduling},
	ErrScheduleTimeInPast:        {"ScheduleTimeInPast", "Schedule time in past", ErrorGroupScheduling},
	ErrUnauthorized:              {"Unauthorized", "Not authorized", ErrorGroupAuthorization},
	ErrInvalidTwitterAccount:     {"InvalidTwitterAccount", "Invalid Twitter account", ErrorGroupIdentity},
	ErrInvalidContentHash:        {"InvalidContentHash", "Invalid content hash", ErrorGroupContent},
	ErrContentTooLong:            {"ContentTooLong", "Content too long", ErrorGroupContent},
	ErrThreadTooLong:             {"ThreadTooLong", "Thread too long", ErrorGroupContent},
	ErrTooManyRequests:           {"TooManyRequests", "Too many requests", ErrorGroupThrottling},
	ErrInvalidNonce:              {"InvalidNonce", "Instruction nonce is not the signer's next nonce", ErrorGroupAuthorization},
}

// ErrorCodes returns every defined code in numeric order
func ErrorCodes() []ErrorCode {
	ret := make([]ErrorCode, 0, len(errorCodeInfos))
	for code := ErrTwitterAccountNotVerified; code <= ErrInvalidNonce; code++ {
		ret = append(ret, code)
	}
	return ret
}

func (c ErrorCode) Error() string {
	if info, ok := errorCodeInfos[c]; ok {
		return info.message
	}
	return "unknown error code " + strconv.FormatUint(uint64(c), 10)
}

// Name returns the stable symbolic name of the code
func (c ErrorCode) Name() string {
	if info, ok := errorCodeInfos[c]; ok {
		return info.name
	}
	return "Unknown"
}

func (c ErrorCode) Group() ErrorGroup {
	return errorCodeInfos[c].group
}

func (c ErrorCode) String() string {
	return fmt.Sprintf("%s(%d)", c.Name(), uint32(c))
}

// CodeOf returns the first ErrorCode found in err's chain
func CodeOf(err error) (ErrorCode, bool) {
	var code ErrorCode
	if errors.As(err, &code) {
		return code, true
	}
	return 0, false
}

// ValidationError represents a structured validation error with additional context
type ValidationError struct {
	Type    ValidationErrorType
	Message string
	Details map[string]any
	Cause   error
}

type ValidationErrorType string

const (
	ValidationErrorTypeIdentity    ValidationErrorType = "identity"
	ValidationErrorTypeRegistry    ValidationErrorType = "registry"
	ValidationErrorTypeContent     ValidationErrorType = "content"
	ValidationErrorTypeInstruction ValidationErrorType = "instruction"
)

func (e ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new structured validation error
func NewValidationError(
	errType ValidationErrorType,
	message string,
	details map[string]any,
	cause error,
) *ValidationError {
	return &ValidationError{
		Type:    errType,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}
