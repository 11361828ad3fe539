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

// Package file reads the log and result files collectors depend on:
// plain text line reading with a size bound, tailing for large install
// logs, and newline-delimited JSON decoding with parsed-prefix semantics.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// Option configures a Reader.
type Option func(*Reader)

// WithMaxSize sets the maximum size (in bytes) of a file to be read.
// Default is 10MB; results logs and install logs grow unbounded, so the
// cap keeps a runaway log from exhausting memory.
func WithMaxSize(size int) Option {
	return func(r *Reader) {
		r.maxSize = size
	}
}

// Reader reads subsystem files with a configurable size bound.
type Reader struct {
	maxSize int
}

// NewReader creates a Reader with the provided options.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		maxSize: 10 << 20,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lines reads the file at path and returns its non-empty lines with
// surrounding whitespace trimmed. An error is returned if the file
// cannot be read, exceeds the size bound, or is not valid UTF-8.
func (r *Reader) Lines(path string) ([]string, error) {
	b, err := r.read(path)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(string(b), "\n")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		line := strings.TrimSpace(part)
		if line == "" {
			continue
		}
		result = append(result, line)
	}
	return result, nil
}

// Tail returns at most the last n non-empty lines of the file at path.
func (r *Reader) Tail(path string, n int) ([]string, error) {
	lines, err := r.Lines(path)
	if err != nil {
		return nil, err
	}
	if n <= 0 || len(lines) <= n {
		return lines, nil
	}
	return lines[len(lines)-n:], nil
}

// JSONLines decodes the file at path as newline-delimited JSON objects.
// Decoding stops at the first malformed line and the successfully parsed
// prefix is returned without error; a truncated final line from an
// in-flight writer must not discard the rest of the log.
func (r *Reader) JSONLines(path string) ([]map[string]any, error) {
	lines, err := r.Lines(path)
	if err != nil {
		return nil, err
	}

	records := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			break
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *Reader) read(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	// The size bound must hold before the content is materialized, so
	// the check runs on file metadata, not on the loaded bytes.
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	if info.Size() > int64(r.maxSize) {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", path, r.maxSize)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	if !utf8.Valid(b) {
		return nil, fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	return b, nil
}
