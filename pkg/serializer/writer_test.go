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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fleetworks/scout/pkg/report"
)

func sampleReport() *report.Report {
	r := report.New()
	r.Machine = report.Machine{
		Serial:  "C02TEST123",
		Name:    "build-box",
		RunUUID: "11111111-2222-3333-4444-555555555555",
	}
	r.Add(&report.Section{Name: "facts", Data: map[string]any{"os": "Darwin"}})
	return r
}

func TestSerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	require.NoError(t, w.Serialize(context.TODO(), sampleReport()))

	var got report.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "C02TEST123", got.Machine.Serial)
	assert.Equal(t, "Darwin", got.Sections["facts"].Data["os"])
}

func TestSerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	require.NoError(t, w.Serialize(context.TODO(), sampleReport()))

	var got report.Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "build-box", got.Machine.Name)
}

func TestSerializeTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	require.NoError(t, w.Serialize(context.TODO(), sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "Machine.Serial")
	assert.Contains(t, out, "C02TEST123")
	assert.Contains(t, out, "Sections.facts.Data.os")
}

func TestSerializeTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	require.NoError(t, w.Serialize(context.TODO(), struct{}{}))
	assert.Contains(t, buf.String(), "<empty>")
}

func TestNewWriterUnknownFormatDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("xml"), &buf)

	require.NoError(t, w.Serialize(context.TODO(), map[string]string{"a": "b"}))
	assert.True(t, json.Valid(buf.Bytes()))
}

func TestNewFileWriterOrStdout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	w := NewFileWriterOrStdout(FormatJSON, path)

	require.NoError(t, w.Serialize(context.TODO(), sampleReport()))
	if c, ok := w.(Closer); ok {
		require.NoError(t, c.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestNewFileWriterOrStdoutEmptyPathFallsBack(t *testing.T) {
	w := NewFileWriterOrStdout(FormatYAML, "  ")
	_, isWriter := w.(*Writer)
	assert.True(t, isWriter)
}

func TestFormatIsUnknown(t *testing.T) {
	assert.False(t, FormatJSON.IsUnknown())
	assert.False(t, FormatYAML.IsUnknown())
	assert.False(t, FormatTable.IsUnknown())
	assert.True(t, Format("csv").IsUnknown())
}

func TestSupportedFormats(t *testing.T) {
	assert.Equal(t, []string{"json", "yaml", "table"}, SupportedFormats())
}
