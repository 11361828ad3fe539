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

package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetworks/scout/pkg/serializer"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{
			name:       "valid json format",
			format:     "json",
			wantFormat: serializer.FormatJSON,
		},
		{
			name:       "valid yaml format",
			format:     "yaml",
			wantFormat: serializer.FormatYAML,
		},
		{
			name:       "valid table format",
			format:     "table",
			wantFormat: serializer.FormatTable,
		},
		{
			name:    "invalid format xml",
			format:  "xml",
			wantErr: true,
		},
		{
			name:    "empty format",
			format:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOutputFormat(tt.format)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown output format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, got)
		})
	}
}

func TestRootCommandStructure(t *testing.T) {
	cmd := rootCommand()
	assert.Equal(t, name, cmd.Name)

	var names []string
	for _, c := range cmd.Commands {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "checkin")
	assert.Contains(t, names, "report")
	assert.Contains(t, names, "version")
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := rootCommand()
	cmd.Writer = &buf

	require.NoError(t, cmd.Run(context.TODO(), []string{name, "version"}))
	assert.Contains(t, buf.String(), name)
	assert.Contains(t, buf.String(), versionDefault)
}

func TestCheckinCommandMissingServer(t *testing.T) {
	t.Setenv("SCOUT_SERVER_URL", "")
	t.Setenv("SCOUT_KEY", "")

	cmd := rootCommand()
	cmd.Writer = &bytes.Buffer{}

	err := cmd.Run(context.TODO(), []string{name, "checkin"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ServerURL")
}

func TestReportCommandRejectsUnknownFormat(t *testing.T) {
	cmd := rootCommand()
	cmd.Writer = &bytes.Buffer{}

	err := cmd.Run(context.TODO(), []string{name, "report", "--format", "csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
