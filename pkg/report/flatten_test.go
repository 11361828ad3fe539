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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenNested(t *testing.T) {
	in := map[string]any{
		"os": map[string]any{
			"name": "Ubuntu",
			"release": map[string]any{
				"major": 24,
				"minor": 4,
			},
		},
		"is_virtual": false,
		"uptime":     "30 days",
	}

	got := Flatten(in, FlattenSeparator)

	want := map[string]string{
		"os=>name":           "Ubuntu",
		"os=>release=>major": "24",
		"os=>release=>minor": "4",
		"is_virtual":         "false",
		"uptime":             "30 days",
	}
	assert.Equal(t, want, got)
}

func TestFlattenIdempotentOnFlatMap(t *testing.T) {
	in := map[string]any{
		"hostname": "mac-042",
		"cores":    8,
	}

	once := Flatten(in, FlattenSeparator)

	// Re-flattening the already-flat result is a no-op.
	again := make(map[string]any, len(once))
	for k, v := range once {
		again[k] = v
	}
	assert.Equal(t, once, Flatten(again, FlattenSeparator))
}

func TestFlattenStringifiesLeaves(t *testing.T) {
	in := map[string]any{
		"count":  3,
		"ratio":  1.5,
		"ok":     true,
		"nilval": nil,
		"list":   []any{"a", "b"},
	}

	got := Flatten(in, FlattenSeparator)

	assert.Equal(t, "3", got["count"])
	assert.Equal(t, "1.5", got["ratio"])
	assert.Equal(t, "true", got["ok"])
	assert.Equal(t, "", got["nilval"])
	assert.Equal(t, "[a b]", got["list"])
}

func TestFlattenInterfaceKeyedMaps(t *testing.T) {
	in := map[string]any{
		"resources": map[any]any{
			"total":  10,
			"failed": 0,
		},
	}

	got := Flatten(in, FlattenSeparator)

	assert.Equal(t, "10", got["resources=>total"])
	assert.Equal(t, "0", got["resources=>failed"])
}

func TestFlattenEmpty(t *testing.T) {
	assert.Empty(t, Flatten(nil, FlattenSeparator))
	assert.Empty(t, Flatten(map[string]any{}, FlattenSeparator))
	assert.Empty(t, Flatten(map[string]any{"empty": map[string]any{}}, FlattenSeparator))
}
