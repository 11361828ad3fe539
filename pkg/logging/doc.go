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

// Package logging provides structured logging utilities for scout.
//
// It wraps the standard library slog package with scout-specific defaults:
// JSON output to stderr, module/version context on every record, and
// environment-based level configuration via LOG_LEVEL.
//
// Setting the default logger (recommended, early in main):
//
//	logging.SetDefaultStructuredLogger("scout", version)
//	slog.Info("starting check-in", "server", cfg.ServerURL)
//
// Supported log levels (case-insensitive): DEBUG, INFO (default),
// WARN/WARNING, ERROR. Debug level enables source location tracking.
package logging
