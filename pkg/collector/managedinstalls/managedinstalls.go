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

// Package managedinstalls reads the package-management client's install
// report plist. The report is the client's own record of its last run:
// managed install items, errors, warnings, and the client version.
package managedinstalls

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"howett.net/plist"

	"github.com/fleetworks/scout/pkg/report"
	"github.com/fleetworks/scout/pkg/version"
)

// SectionName is the report slot this collector fills.
const SectionName = "managed_installs"

// Data keys within the section.
const (
	KeyClientVersion = "client_version"
	KeyItems         = "managed_installs"
	KeyErrors        = "errors"
	KeyWarnings      = "warnings"
	KeyConsoleUser   = "console_user"
	KeyStartTime     = "start_time"
	KeyEndTime       = "end_time"
)

// reportKeys are the install report keys carried into the section.
// Everything else in the plist is client-internal detail.
var reportKeys = map[string]string{
	"ManagedInstallVersion": KeyClientVersion,
	"ManagedInstalls":       KeyItems,
	"Errors":                KeyErrors,
	"Warnings":              KeyWarnings,
	"ConsoleUser":           KeyConsoleUser,
	"StartTime":             KeyStartTime,
	"EndTime":               KeyEndTime,
}

// Collector reads the install report plist from ReportPath.
type Collector struct {
	ReportPath string
}

// Collect parses the install report. An absent or malformed report
// yields an empty section with a reason; the run continues either way.
func (c *Collector) Collect(ctx context.Context) (*report.Section, error) {
	slog.Info("collecting package-manager install report", "path", c.ReportPath)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(c.ReportPath)
	if err != nil {
		if os.IsNotExist(err) {
			return report.Empty(SectionName, fmt.Sprintf("install report absent: %s", c.ReportPath)), nil
		}
		return report.Empty(SectionName, fmt.Sprintf("install report unreadable: %v", err)), nil
	}

	var raw map[string]any
	if _, err := plist.Unmarshal(b, &raw); err != nil {
		return report.Empty(SectionName, fmt.Sprintf("malformed install report: %v", err)), nil
	}

	data := make(map[string]any, len(reportKeys))
	for plistKey, key := range reportKeys {
		if v, ok := raw[plistKey]; ok {
			data[key] = v
		}
	}

	if v, ok := data[KeyClientVersion].(string); ok {
		if parsed, err := version.Parse(v); err == nil {
			data[KeyClientVersion] = parsed.String()
		}
	}

	return &report.Section{Name: SectionName, Data: data}, nil
}

// ClientVersion extracts the package-management client version from a
// collected section, or "" when unknown.
func ClientVersion(s *report.Section) string {
	if s == nil {
		return ""
	}
	v, _ := s.Data[KeyClientVersion].(string)
	return v
}
