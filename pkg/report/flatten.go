// Copyright (c) 2025, Fleetworks, Inc.  All rights reserved.
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

package report

import "fmt"

// FlattenSeparator joins parent and child keys when collapsing nested
// fact mappings. The separator is part of the server contract.
const FlattenSeparator = "=>"

// Flatten collapses nested mappings into a flat map by joining parent and
// child keys with sep, recursively. Non-mapping leaf values are
// stringified. Flattening an already-flat map is idempotent: keys pass
// through unchanged and values keep their string form.
func Flatten(in map[string]any, sep string) map[string]string {
	out := make(map[string]string, len(in))
	flattenInto(out, "", in, sep)
	return out
}

func flattenInto(out map[string]string, prefix string, m map[string]any, sep string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + sep + k
		}

		switch child := v.(type) {
		case map[string]any:
			flattenInto(out, key, child, sep)
		case map[any]any:
			// Legacy YAML decoders produce interface-keyed maps.
			converted := make(map[string]any, len(child))
			for ck, cv := range child {
				converted[fmt.Sprintf("%v", ck)] = cv
			}
			flattenInto(out, key, converted, sep)
		default:
			out[key] = stringify(v)
		}
	}
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
