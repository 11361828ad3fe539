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

// Package serializer renders assembled reports for local inspection.
//
// The package supports three output formats:
//   - JSON: machine-readable structured data with indentation
//   - YAML: human-readable format
//   - Table: flattened key/value rows for quick scanning
//
// Usage:
//
//	w := serializer.NewWriter(serializer.FormatJSON, os.Stdout)
//	defer w.Close()
//	if err := w.Serialize(ctx, rep); err != nil {
//		log.Fatal(err)
//	}
package serializer

import "context"

// Serializer renders a value to the configured destination.
type Serializer interface {
	Serialize(ctx context.Context, v any) error
}

// Closer is an optional interface Serializers implement when they hold
// resources such as file handles.
type Closer interface {
	Close() error
}
