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

// Package facts invokes the fact-gathering tool and flattens its nested
// output so downstream consumers need not handle arbitrary nesting.
package facts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/fleetworks/scout/pkg/report"
)

// SectionName is the report slot this collector fills.
const SectionName = "facts"

// Collector runs the fact gatherer with JSON output.
type Collector struct {
	// Command is the fact gatherer binary name or path.
	Command string
	// SearchPath is an additional fact module directory, handed to the
	// child process environment for this invocation only. The parent
	// process environment is never mutated.
	SearchPath string
	// Timeout bounds the subprocess invocation.
	Timeout time.Duration
}

// searchPathEnv is the fact gatherer's module search path variable.
const searchPathEnv = "FACTERLIB"

// Collect runs the fact gatherer, parses its JSON map, and flattens
// nested facts with the report separator. A missing binary or
// unparseable output yields an empty section with a reason.
func (c *Collector) Collect(ctx context.Context) (*report.Section, error) {
	slog.Info("collecting facts", "command", c.Command)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmdPath, err := exec.LookPath(c.Command)
	if err != nil {
		return report.Empty(SectionName, fmt.Sprintf("fact gatherer not found: %s", c.Command)), nil
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, cmdPath, "--json")
	if c.SearchPath != "" {
		cmd.Env = append(os.Environ(), searchPathEnv+"="+c.SearchPath)
	}

	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return report.Empty(SectionName, fmt.Sprintf("fact gatherer failed: %v", err)), nil
	}

	var raw map[string]any
	if err := json.Unmarshal(out, &raw); err != nil {
		return report.Empty(SectionName, fmt.Sprintf("unparseable fact output: %v", err)), nil
	}

	flat := report.Flatten(raw, report.FlattenSeparator)

	data := make(map[string]any, len(flat))
	for k, v := range flat {
		data[k] = v
	}

	return &report.Section{Name: SectionName, Data: data}, nil
}
