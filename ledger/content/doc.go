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

// Package content implements the content record and its lifecycle.
//
// A record materializes in PendingApproval when it is submitted, collects
// distinct admin approvals until the identity's quorum is met, and ends in
// exactly one of Approved, Rejected or Canceled. Every transition is a pure
// function from a record (plus the accounts it is checked against) to a new
// record or an error; the receiver is never modified.
package content
