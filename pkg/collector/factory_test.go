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

package collector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetworks/scout/pkg/collector/configmgmt"
	"github.com/fleetworks/scout/pkg/collector/facts"
	"github.com/fleetworks/scout/pkg/collector/managedinstalls"
	"github.com/fleetworks/scout/pkg/collector/profiler"
	"github.com/fleetworks/scout/pkg/collector/querylog"
	"github.com/fleetworks/scout/pkg/prefs"
)

func TestNewDefaultFactory(t *testing.T) {
	f := NewDefaultFactory()
	require.NotNil(t, f.Prefs)

	// Every slot produces a collector without error.
	assert.NotNil(t, f.CreateManagedInstallsCollector())
	assert.NotNil(t, f.CreateProfilerCollector())
	assert.NotNil(t, f.CreateConfigMgmtCollector())
	assert.NotNil(t, f.CreateQueryLogCollector())
	assert.NotNil(t, f.CreateFactsCollector())
}

func TestFactoryWiresPreferences(t *testing.T) {
	p := prefs.Default()
	p.InstallReportPath = "/tmp/report.plist"
	p.ProfilerCommand = "custom_profiler"
	p.ConfigMgmtSummaryPath = "/tmp/summary.yaml"
	p.QueryLogPath = "/tmp/results.log"
	p.QueryDaemonUnit = "osqueryd.service"
	p.FactsCommand = "custom_facter"
	p.FactsSearchPath = "/opt/facts"
	p.CommandTimeout = 5 * time.Second

	f := NewDefaultFactory(WithPreferences(p))

	mi, ok := f.CreateManagedInstallsCollector().(*managedinstalls.Collector)
	require.True(t, ok)
	assert.Equal(t, "/tmp/report.plist", mi.ReportPath)

	pr, ok := f.CreateProfilerCollector().(*profiler.Collector)
	require.True(t, ok)
	assert.Equal(t, "custom_profiler", pr.Command)
	assert.Equal(t, 5*time.Second, pr.Timeout)

	cm, ok := f.CreateConfigMgmtCollector().(*configmgmt.Collector)
	require.True(t, ok)
	assert.Equal(t, "/tmp/summary.yaml", cm.SummaryPath)

	ql, ok := f.CreateQueryLogCollector().(*querylog.Collector)
	require.True(t, ok)
	assert.Equal(t, "/tmp/results.log", ql.LogPath)
	assert.Equal(t, "osqueryd.service", ql.Unit)

	fc, ok := f.CreateFactsCollector().(*facts.Collector)
	require.True(t, ok)
	assert.Equal(t, "custom_facter", fc.Command)
	assert.Equal(t, "/opt/facts", fc.SearchPath)
}
