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

package managedinstalls

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>ManagedInstallVersion</key>
	<string>6.3.1</string>
	<key>ConsoleUser</key>
	<string>jdoe</string>
	<key>ManagedInstalls</key>
	<array>
		<dict>
			<key>name</key>
			<string>Firefox</string>
			<key>installed_version</key>
			<string>128.0</string>
			<key>installed</key>
			<true/>
		</dict>
	</array>
	<key>Errors</key>
	<array/>
	<key>Warnings</key>
	<array>
		<string>repo unreachable</string>
	</array>
	<key>InternalDetail</key>
	<string>should not be carried</string>
</dict>
</plist>`

func writeReport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ManagedInstallReport.plist")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestCollect(t *testing.T) {
	c := &Collector{ReportPath: writeReport(t, sampleReport)}

	s, err := c.Collect(context.TODO())
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, SectionName, s.Name)
	assert.False(t, s.IsEmpty())
	assert.Equal(t, "6.3.1", ClientVersion(s))
	assert.Equal(t, "jdoe", s.Data[KeyConsoleUser])
	assert.NotContains(t, s.Data, "InternalDetail")

	items, ok := s.Data[KeyItems].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item, ok := items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Firefox", item["name"])
}

func TestCollectAbsentReport(t *testing.T) {
	c := &Collector{ReportPath: filepath.Join(t.TempDir(), "missing.plist")}

	s, err := c.Collect(context.TODO())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.True(t, s.IsEmpty())
	assert.Contains(t, s.Reason, "install report absent")
}

func TestCollectMalformedReport(t *testing.T) {
	c := &Collector{ReportPath: writeReport(t, "not a plist at all")}

	s, err := c.Collect(context.TODO())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.True(t, s.IsEmpty())
	assert.Contains(t, s.Reason, "malformed install report")
}

func TestCollectContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.TODO())
	cancel()

	c := &Collector{ReportPath: writeReport(t, sampleReport)}
	_, err := c.Collect(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClientVersionNil(t *testing.T) {
	assert.Equal(t, "", ClientVersion(nil))
}
