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

// Package querylog reads the query daemon's scheduled query results from
// its newline-delimited JSON log. The daemon is optional; its presence
// is checked via the systemd unit state where available, falling back to
// a PATH lookup of the daemon binary.
package querylog

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/fleetworks/scout/pkg/collector/file"
	"github.com/fleetworks/scout/pkg/report"
)

// SectionName is the report slot this collector fills.
const SectionName = "query_events"

// EventMarkerField is the field every result line must carry: the name
// of the scheduled query that produced it. A line without it means the
// daemon is logging something other than query results (misconfigured
// logger plugin), so reading stops at that point.
const EventMarkerField = "name"

// Data keys within the section.
const (
	KeyEvents = "events"
	KeyCount  = "count"
)

// Collector reads the query daemon results log.
type Collector struct {
	// LogPath is the newline-delimited JSON results log.
	LogPath string
	// Unit is the daemon's systemd unit name.
	Unit string
	// Command is the daemon binary, used as a presence fallback where
	// systemd is unavailable.
	Command string

	// Reader overrides the default log reader, for tests.
	Reader *file.Reader
	// PresenceCheck overrides daemon presence detection, for tests.
	PresenceCheck func(ctx context.Context) bool
}

// Collect returns the parsed query events. A missing daemon or absent
// log yields an empty section with a reason. Lines missing the event
// marker abort further reading; the events parsed so far are returned.
func (c *Collector) Collect(ctx context.Context) (*report.Section, error) {
	slog.Info("collecting query daemon events", "path", c.LogPath)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	present := c.present(ctx)
	if !present {
		return report.Empty(SectionName, "query daemon not present"), nil
	}

	reader := c.Reader
	if reader == nil {
		reader = file.NewReader()
	}

	records, err := reader.JSONLines(c.LogPath)
	if err != nil {
		return report.Empty(SectionName, fmt.Sprintf("results log unreadable: %v", err)), nil
	}

	events := make([]any, 0, len(records))
	for _, rec := range records {
		if _, ok := rec[EventMarkerField]; !ok {
			slog.Warn("query result line missing event marker, stopping",
				"parsed", len(events))
			break
		}
		events = append(events, rec)
	}

	return &report.Section{
		Name: SectionName,
		Data: map[string]any{
			KeyEvents: events,
			KeyCount:  len(events),
		},
	}, nil
}

func (c *Collector) present(ctx context.Context) bool {
	if c.PresenceCheck != nil {
		return c.PresenceCheck(ctx)
	}

	if unitActive(ctx, c.Unit) {
		return true
	}

	_, err := exec.LookPath(c.Command)
	return err == nil
}

// unitActive reports whether the named systemd unit is active. Hosts
// without systemd (or without D-Bus access) report false and presence
// falls back to the PATH lookup.
func unitActive(ctx context.Context, unit string) bool {
	if unit == "" {
		return false
	}

	conn, err := dbus.NewSystemConnectionContext(ctx)
	if err != nil {
		return false
	}
	defer conn.Close()

	units, err := conn.ListUnitsByNamesContext(ctx, []string{unit})
	if err != nil || len(units) == 0 {
		return false
	}
	return units[0].ActiveState == "active"
}
