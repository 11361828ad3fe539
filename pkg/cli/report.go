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

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/fleetworks/scout/pkg/checkin"
	"github.com/fleetworks/scout/pkg/serializer"
)

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:                  "report",
		EnableShellCompletion: true,
		Usage:                 "Collect inventory and print the report without submitting",
		Description: `Run every collector and assemble the machine report, but transmit
nothing. Useful for inspecting exactly what a check-in would send.

The report can be output in JSON, YAML, or table format.

# Examples

Print the report as YAML:
  scout report --format yaml

Write the report to a file:
  scout report --output /tmp/report.json`,
		Flags: []cli.Flag{
			configFlag,
			logLevelFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd.String("format"))
			if err != nil {
				return err
			}

			p, err := loadPrefs(cmd)
			if err != nil {
				return err
			}

			agent := checkin.New(version, p)
			r, err := agent.BuildReport(ctx)
			if err != nil {
				return err
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if c, ok := w.(serializer.Closer); ok {
				defer c.Close()
			}

			if err := w.Serialize(ctx, r); err != nil {
				return fmt.Errorf("failed to serialize report: %w", err)
			}
			return nil
		},
	}
}
