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

// Package cli implements the command-line interface for the scout agent.
//
// # Commands
//
// checkin - Collect inventory and submit it:
//
//	scout checkin [--config FILE]
//
// Runs every collector, assembles the machine report, and differentially
// submits the report, application inventory, install log, and catalogs.
// Artifacts whose server-side digest already matches are skipped.
//
// report - Collect inventory without submitting:
//
//	scout report [--output FILE] [--format json|yaml|table]
//
// Runs the same collectors and prints the assembled report locally.
//
// version - Print version information.
//
// # Global Flags
//
//	--config, -c     Preferences file path (default: env + built-in defaults)
//	--log-level      Log level: debug, info, warn, error (default: info)
//
// # Environment Variables
//
//	SCOUT_SERVER_URL  Reporting server base URL
//	SCOUT_KEY         Business-unit key
//	SCOUT_NAME_TYPE   Machine name source: hostname, profile, serial
//	SCOUT_BASE_PATH   Package-management client data directory
//	LOG_LEVEL         Logging verbosity
//
// # Exit Codes
//
//	0  Success
//	1  Error (missing preferences, collector abort, submission failure)
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/fleetworks/scout/pkg/cli.version=1.0.0'"
package cli
