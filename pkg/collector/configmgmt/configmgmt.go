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

// Package configmgmt reads the configuration-management agent's last run
// summary and version. Machines without the agent produce an empty
// section; the agent is optional fleet-wide.
package configmgmt

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fleetworks/scout/pkg/report"
)

// SectionName is the report slot this collector fills.
const SectionName = "configmgmt"

// Data keys within the section.
const (
	KeySummary = "summary"
	KeyVersion = "version"
)

// Collector reads the run summary YAML and queries the agent version.
type Collector struct {
	// SummaryPath is the last run summary YAML file.
	SummaryPath string
	// Command is the agent binary used for the version query.
	Command string
	// Timeout bounds the version subprocess.
	Timeout time.Duration
}

// Collect parses the run summary and, when the agent binary is present,
// records its version. Absent or malformed input yields an empty section
// with a reason.
func (c *Collector) Collect(ctx context.Context) (*report.Section, error) {
	slog.Info("collecting config-management state", "path", c.SummaryPath)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(c.SummaryPath)
	if err != nil {
		if os.IsNotExist(err) {
			return report.Empty(SectionName, fmt.Sprintf("run summary absent: %s", c.SummaryPath)), nil
		}
		return report.Empty(SectionName, fmt.Sprintf("run summary unreadable: %v", err)), nil
	}

	var summary map[string]any
	if err := yaml.Unmarshal(b, &summary); err != nil {
		return report.Empty(SectionName, fmt.Sprintf("malformed run summary: %v", err)), nil
	}
	if len(summary) == 0 {
		return report.Empty(SectionName, "run summary empty"), nil
	}

	data := map[string]any{
		KeySummary: summary,
	}

	if v := c.agentVersion(ctx); v != "" {
		data[KeyVersion] = v
	}

	return &report.Section{Name: SectionName, Data: data}, nil
}

// agentVersion runs "<command> --version" and returns the trimmed first
// line, or "" when the binary is missing or the command fails.
func (c *Collector) agentVersion(ctx context.Context) string {
	cmdPath, err := exec.LookPath(c.Command)
	if err != nil {
		return ""
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	out, err := exec.CommandContext(ctx, cmdPath, "--version").Output()
	if err != nil {
		slog.Debug("config-management version query failed", "error", err)
		return ""
	}

	version, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(version)
}
