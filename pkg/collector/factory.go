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
	"github.com/fleetworks/scout/pkg/collector/configmgmt"
	"github.com/fleetworks/scout/pkg/collector/facts"
	"github.com/fleetworks/scout/pkg/collector/managedinstalls"
	"github.com/fleetworks/scout/pkg/collector/profiler"
	"github.com/fleetworks/scout/pkg/collector/querylog"
	"github.com/fleetworks/scout/pkg/prefs"
)

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateManagedInstallsCollector() Collector
	CreateProfilerCollector() Collector
	CreateConfigMgmtCollector() Collector
	CreateQueryLogCollector() Collector
	CreateFactsCollector() Collector
}

// Option configures a DefaultFactory.
type Option func(*DefaultFactory)

// WithPreferences sets the preferences used to configure collectors.
func WithPreferences(p *prefs.Preferences) Option {
	return func(f *DefaultFactory) {
		f.Prefs = p
	}
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	Prefs *prefs.Preferences
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		Prefs: prefs.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateManagedInstallsCollector creates the install report collector.
func (f *DefaultFactory) CreateManagedInstallsCollector() Collector {
	return &managedinstalls.Collector{
		ReportPath: f.Prefs.InstallReportPath,
	}
}

// CreateProfilerCollector creates the system profiler collector.
func (f *DefaultFactory) CreateProfilerCollector() Collector {
	return &profiler.Collector{
		Command: f.Prefs.ProfilerCommand,
		Timeout: f.Prefs.CommandTimeout,
	}
}

// CreateConfigMgmtCollector creates the config-management collector.
func (f *DefaultFactory) CreateConfigMgmtCollector() Collector {
	return &configmgmt.Collector{
		SummaryPath: f.Prefs.ConfigMgmtSummaryPath,
		Command:     f.Prefs.ConfigMgmtCommand,
		Timeout:     f.Prefs.CommandTimeout,
	}
}

// CreateQueryLogCollector creates the query daemon log collector.
func (f *DefaultFactory) CreateQueryLogCollector() Collector {
	return &querylog.Collector{
		LogPath: f.Prefs.QueryLogPath,
		Unit:    f.Prefs.QueryDaemonUnit,
		Command: f.Prefs.QueryDaemonCommand,
	}
}

// CreateFactsCollector creates the fact gatherer collector.
func (f *DefaultFactory) CreateFactsCollector() Collector {
	return &facts.Collector{
		Command:    f.Prefs.FactsCommand,
		SearchPath: f.Prefs.FactsSearchPath,
		Timeout:    f.Prefs.CommandTimeout,
	}
}
