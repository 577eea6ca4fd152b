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

package utils

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/blinklabs-io/helm/cbor"
)

// DumpCbor renders raw CBOR as an indented tree, for inspecting stored
// accounts and instructions
func DumpCbor(data []byte) (string, error) {
	var tmp any
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return "", err
	}
	var sb strings.Builder
	dumpItem(&sb, tmp, 0)
	return sb.String(), nil
}

func dumpItem(sb *strings.Builder, item any, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := item.(type) {
	case []byte:
		if len(v) > 32 {
			fmt.Fprintf(sb, "%sh'%s...' (%d bytes)\n", indent, hex.EncodeToString(v[:32]), len(v))
		} else {
			fmt.Fprintf(sb, "%sh'%s'\n", indent, hex.EncodeToString(v))
		}
	case string:
		fmt.Fprintf(sb, "%s%q\n", indent, v)
	case []any:
		fmt.Fprintf(sb, "%s[\n", indent)
		for _, elem := range v {
			dumpItem(sb, elem, depth+1)
		}
		fmt.Fprintf(sb, "%s]\n", indent)
	case map[any]any:
		keys := make([]string, 0, len(v))
		byKey := make(map[string]any, len(v))
		for key, val := range v {
			k := fmt.Sprintf("%v", key)
			keys = append(keys, k)
			byKey[k] = val
		}
		sort.Strings(keys)
		fmt.Fprintf(sb, "%s{\n", indent)
		for _, k := range keys {
			fmt.Fprintf(sb, "%s  %s =>\n", indent, k)
			dumpItem(sb, byKey[k], depth+2)
		}
		fmt.Fprintf(sb, "%s}\n", indent)
	case nil:
		fmt.Fprintf(sb, "%snull\n", indent)
	default:
		fmt.Fprintf(sb, "%s%v\n", indent, v)
	}
}
