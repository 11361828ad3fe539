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

package prefs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetworks/scout/pkg/errors"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scout.yaml")
	content := `
server_url: https://fleet.example.com/
key: unit-42
name_type: serial
base_path: /opt/managed
http_timeout: 10s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	p, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://fleet.example.com/", p.ServerURL)
	assert.Equal(t, "https://fleet.example.com", p.BaseURL())
	assert.Equal(t, "unit-42", p.Key)
	assert.Equal(t, NameTypeSerial, p.NameType)
	assert.Equal(t, "/opt/managed/ManagedInstallReport.plist", p.InstallReportPath)
	assert.Equal(t, "/opt/managed/catalogs", p.CatalogsDir)
	assert.Equal(t, 10*time.Second, p.HTTPTimeout)
	assert.Equal(t, DefaultCommandTimeout, p.CommandTimeout)
	assert.Equal(t, DefaultSubmitRateLimit, p.SubmitRateLimit)
	assert.Equal(t, DefaultSubmitRateBurst, p.SubmitRateBurst)
	assert.Equal(t, DefaultInstallLogTailLines, p.InstallLogTailLines)
	assert.NoError(t, p.Validate())
}

func TestLoadMissingFileUsesEnv(t *testing.T) {
	t.Setenv(EnvServerURL, "https://env.example.com")
	t.Setenv(EnvKey, "env-key")

	p, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", p.ServerURL)
	assert.Equal(t, "env-key", p.Key)
	assert.Equal(t, NameTypeHostname, p.NameType)
	assert.NoError(t, p.Validate())
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- not yaml"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
}

func TestValidatePreconditions(t *testing.T) {
	p := &Preferences{}
	p.applyDefaults()

	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodePrecondition))
	assert.Contains(t, err.Error(), "required preference not set: ServerURL")

	p.ServerURL = "https://fleet.example.com"
	err = p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required preference not set: Key")

	p.Key = "unit-42"
	assert.NoError(t, p.Validate())

	p.NameType = "bogus"
	assert.Error(t, p.Validate())
}
