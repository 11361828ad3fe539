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

package checksum

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	// Known SHA-256 of "hello"
	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		Sum([]byte("hello")))

	// Empty input still yields a digest
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		Sum(nil))
}

func TestSumFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.plist")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0600))

	sum, err := SumFile(path)
	require.NoError(t, err)
	assert.Equal(t, Sum([]byte("hello")), sum)

	_, err = SumFile(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestSumDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "production"), []byte("catalog-a"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "testing"), []byte("catalog-b"), 0600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0700))

	sums, err := SumDir(dir)
	require.NoError(t, err)
	assert.Len(t, sums, 2)
	assert.Equal(t, Sum([]byte("catalog-a")), sums["production"])
	assert.Equal(t, Sum([]byte("catalog-b")), sums["testing"])

	_, err = SumDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
