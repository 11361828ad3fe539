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
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/fleetworks/scout/pkg/logging"
	"github.com/fleetworks/scout/pkg/prefs"
	"github.com/fleetworks/scout/pkg/serializer"
)

const (
	name           = "scout"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Flags shared across commands.
var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "preferences file path",
		Sources: cli.EnvVars("SCOUT_CONFIG"),
	}

	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "log level (debug, info, warn, error)",
		Value:   "info",
		Sources: cli.EnvVars(logging.EnvLogLevel),
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
		Value:   string(serializer.FormatJSON),
	}
)

func rootCommand() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "fleet inventory check-in agent",
		Version: version,
		Description: `scout gathers machine inventory from the package-management client,
the system profiler, the config-management agent, the query daemon,
and the fact gatherer, then differentially submits the assembled
report to the fleet server. Unchanged artifacts are never re-sent.`,
		Flags: []cli.Flag{
			configFlag,
			logLevelFlag,
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			checkinCmd(),
			reportCmd(),
			versionCmd(),
		},
	}
}

// Execute runs the CLI. It is called by main.main() and handles
// SIGINT/SIGTERM for graceful shutdown.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadPrefs reads preferences using the --config flag.
func loadPrefs(cmd *cli.Command) (*prefs.Preferences, error) {
	return prefs.Load(cmd.String("config"))
}

// parseOutputFormat validates the --format flag value.
func parseOutputFormat(s string) (serializer.Format, error) {
	f := serializer.Format(s)
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported: %s)",
			s, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return f, nil
}
