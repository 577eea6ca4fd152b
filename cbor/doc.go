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

// Package cbor provides the CBOR encoding used for stored account records and
// signed instructions.
//
// This package wraps github.com/fxamacker/cbor/v2 with a single deterministic
// encoding mode. Two encodings of the same value are always byte-identical,
// which matters because instruction signatures are computed over encoded bytes.
//
// Embed StructAsArray to encode a struct as a CBOR array rather than a map:
//
//	type Record struct {
//	    cbor.StructAsArray
//	    Kind  uint8
//	    Value []byte
//	}
//
// DecodeById decodes list-shaped data whose first item selects the target type.
package cbor
