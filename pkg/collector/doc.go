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

// Package collector provides interfaces and implementations for gathering
// machine state from local subsystems.
//
// # Core Interface
//
// The Collector interface defines a single method for gathering data:
//
//	type Collector interface {
//	    Collect(ctx context.Context) (*report.Section, error)
//	}
//
// Collection is best-effort by policy: an absent subsystem or malformed
// input never fails the run. Collectors return a Section whose Reason
// field records why the data map is empty; the error return is reserved
// for context cancellation.
//
// # Factory Pattern
//
// The Factory interface enables dependency injection and testing by
// abstracting collector creation:
//
//	factory := collector.NewDefaultFactory(
//	    collector.WithPreferences(p),
//	)
//	facts := factory.CreateFactsCollector()
//
// # Available Collectors
//
// managedinstalls: reads the package-manager install report plist.
// profiler: invokes the system profiler for hardware and storage state.
// configmgmt: reads the config-management run summary and agent version.
// querylog: reads the query daemon's newline-delimited JSON results log.
// facts: invokes the fact gatherer and flattens its nested output.
package collector
