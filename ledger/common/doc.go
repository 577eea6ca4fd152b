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

// Package common provides the types shared by every account kind: keys,
// derived addresses, content hashes, the rejection code taxonomy, the
// validation-rule runner, and the policy params.
//
// Addresses are derived, never allocated. Anyone can compute where a record
// lives before it exists:
//
//	identity, _ := common.IdentityAddress("123")
//	content, _ := common.ContentAddress(identity, author, common.Keccak256Hash(text))
//
// Every rejected operation surfaces exactly one ErrorCode, which can be
// matched with errors.Is through any wrapping:
//
//	if errors.Is(err, common.ErrAlreadySubmitted) { ... }
package common
