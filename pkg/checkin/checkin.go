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

// Package checkin orchestrates a complete agent run: validate the
// preconditions, run every collector, assemble the report, and apply
// the differential submission protocol.
//
// Collectors run sequentially in a fixed order. The report is small and
// each collector touches a different subsystem; predictable ordering
// and trivial debugging are worth more here than overlapped I/O.
package checkin

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/fleetworks/scout/pkg/collector"
	"github.com/fleetworks/scout/pkg/collector/configmgmt"
	"github.com/fleetworks/scout/pkg/collector/facts"
	"github.com/fleetworks/scout/pkg/collector/file"
	"github.com/fleetworks/scout/pkg/collector/managedinstalls"
	"github.com/fleetworks/scout/pkg/collector/profiler"
	"github.com/fleetworks/scout/pkg/collector/querylog"
	"github.com/fleetworks/scout/pkg/errors"
	"github.com/fleetworks/scout/pkg/prefs"
	"github.com/fleetworks/scout/pkg/report"
	"github.com/fleetworks/scout/pkg/submit"
)

// Submitter is the differential submission surface the agent needs.
// Satisfied by *submit.Submitter; narrowed here for testing.
type Submitter interface {
	Checkin(ctx context.Context, r *report.Report) (bool, error)
	SubmitContent(ctx context.Context, class string, data []byte) (bool, error)
	SubmitFile(ctx context.Context, class, path string) (bool, error)
	SubmitCatalogs(ctx context.Context, dir string) (int, error)
}

// Result summarizes what a run produced and transmitted.
type Result struct {
	// Report is the assembled machine report.
	Report *report.Report

	// CheckinSent records whether the report itself was transmitted or
	// the server was already current.
	CheckinSent bool
	// InventorySent and InstallLogSent record the file submissions.
	InventorySent  bool
	InstallLogSent bool
	// CatalogsSent is the number of catalog files transmitted.
	CatalogsSent int
}

// Agent runs the check-in pipeline.
type Agent struct {
	// Version is the agent version, recorded in logs.
	Version string

	// Prefs configures the run. Required.
	Prefs *prefs.Preferences

	// Factory creates the collectors. If nil, the default factory
	// configured from Prefs is used.
	Factory collector.Factory

	// Submitter performs the differential submissions. If nil, one is
	// built from Prefs.
	Submitter Submitter

	// PrivilegeCheck verifies the process runs with the privilege the
	// subsystem files require. If nil, the effective uid must be root.
	PrivilegeCheck func() error
}

// New creates an Agent from validated preferences.
func New(version string, p *prefs.Preferences) *Agent {
	return &Agent{Version: version, Prefs: p}
}

// namedCollector pairs a collector with its section slot for logging
// and metrics.
type namedCollector struct {
	name string
	c    collector.Collector
}

// BuildReport validates preconditions, runs every collector in order,
// and assembles the report. It never transmits anything.
//
// Collectors are best-effort: a collector error other than context
// cancellation becomes an empty section with a reason, and the run
// continues. Only a canceled or expired context aborts the run.
func (a *Agent) BuildReport(ctx context.Context) (*report.Report, error) {
	if a.Prefs == nil {
		a.Prefs = prefs.Default()
	}
	if err := a.Prefs.Validate(); err != nil {
		return nil, err
	}
	privCheck := a.PrivilegeCheck
	if privCheck == nil {
		privCheck = requireRoot
	}
	if err := privCheck(); err != nil {
		return nil, err
	}
	if a.Factory == nil {
		a.Factory = collector.NewDefaultFactory(collector.WithPreferences(a.Prefs))
	}

	runID := uuid.NewString()
	slog.Info("starting check-in", "run_uuid", runID, "version", a.Version)

	r := report.New()
	r.Machine.RunUUID = runID

	collectors := []namedCollector{
		{managedinstalls.SectionName, a.Factory.CreateManagedInstallsCollector()},
		{profiler.SectionName, a.Factory.CreateProfilerCollector()},
		{configmgmt.SectionName, a.Factory.CreateConfigMgmtCollector()},
		{querylog.SectionName, a.Factory.CreateQueryLogCollector()},
		{facts.SectionName, a.Factory.CreateFactsCollector()},
	}

	for _, nc := range collectors {
		start := time.Now()
		s, err := nc.c.Collect(ctx)
		collectorDuration.WithLabelValues(nc.name).Observe(time.Since(start).Seconds())

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			slog.Warn("collector failed, continuing", "collector", nc.name, "error", err)
			r.Add(report.Empty(nc.name, fmt.Sprintf("collector failed: %v", err)))
			continue
		}
		r.Add(s)
		if s.IsEmpty() {
			slog.Info("collector produced no data", "collector", nc.name, "reason", s.Reason)
		}
	}

	a.assembleMachine(r)
	if r.Machine.Serial == "" {
		return nil, errors.New(errors.ErrCodePrecondition,
			"could not determine machine serial or name")
	}
	reportSectionCount.Set(float64(populatedSections(r)))

	return r, nil
}

// assembleMachine fills the identity fields from collected sections and
// the naming preference.
func (a *Agent) assembleMachine(r *report.Report) {
	profile := r.Section(profiler.SectionName)
	r.Machine.Serial = profiler.Serial(profile)
	r.Machine.DiskSize = profiler.DiskSize(profile)
	r.Machine.ClientVersion = managedinstalls.ClientVersion(r.Section(managedinstalls.SectionName))

	switch a.Prefs.NameType {
	case prefs.NameTypeProfile:
		r.Machine.Name = profiler.Name(profile)
	case prefs.NameTypeSerial:
		r.Machine.Name = r.Machine.Serial
	default:
		if h, err := os.Hostname(); err == nil {
			r.Machine.Name = h
		}
	}

	// A profiler-less machine still needs a stable identity for the
	// server's hash store.
	if r.Machine.Serial == "" {
		r.Machine.Serial = r.Machine.Name
	}
}

func populatedSections(r *report.Report) int {
	n := 0
	for _, s := range r.Sections {
		if !s.IsEmpty() {
			n++
		}
	}
	return n
}

// Run executes the full pipeline: build the report, then differentially
// submit the report, the application inventory, the install log, and
// the catalog set. Submission failures abort the run; the next run will
// re-send because its hash lookup will not match.
func (a *Agent) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	defer func() {
		checkinDuration.Observe(time.Since(start).Seconds())
	}()

	r, err := a.BuildReport(ctx)
	if err != nil {
		checkinTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if a.Submitter == nil {
		a.Submitter = submit.NewSubmitter(newSubmitClient(a.Prefs), r.Machine)
	}

	res := &Result{Report: r}

	res.CheckinSent, err = a.Submitter.Checkin(ctx, r)
	if err != nil {
		checkinTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("check-in submission failed: %w", err)
	}
	observeSubmission(submit.ClassCheckin, res.CheckinSent)

	res.InventorySent, err = a.Submitter.SubmitFile(ctx, submit.ClassInventory, a.Prefs.InventoryPath)
	if err != nil {
		checkinTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("inventory submission failed: %w", err)
	}
	observeSubmission(submit.ClassInventory, res.InventorySent)

	res.InstallLogSent, err = a.submitInstallLog(ctx)
	if err != nil {
		checkinTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("install log submission failed: %w", err)
	}
	observeSubmission(submit.ClassInstallLog, res.InstallLogSent)

	res.CatalogsSent, err = a.Submitter.SubmitCatalogs(ctx, a.Prefs.CatalogsDir)
	if err != nil {
		checkinTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("catalog submission failed: %w", err)
	}
	observeSubmission(submit.ClassCatalog, res.CatalogsSent > 0)

	checkinTotal.WithLabelValues("success").Inc()
	slog.Info("check-in complete",
		"run_uuid", r.Machine.RunUUID,
		"checkin_sent", res.CheckinSent,
		"inventory_sent", res.InventorySent,
		"installlog_sent", res.InstallLogSent,
		"catalogs_sent", res.CatalogsSent)

	return res, nil
}

func observeSubmission(class string, sent bool) {
	outcome := "skipped"
	if sent {
		outcome = "sent"
	}
	submissionTotal.WithLabelValues(class, outcome).Inc()
}

// newSubmitClient builds the HTTP client for a run: per-request timeout
// and the submission rate limiter, both from preferences.
func newSubmitClient(p *prefs.Preferences) *submit.Client {
	return submit.NewClient(p.BaseURL(), p.Key,
		submit.WithTimeout(p.HTTPTimeout),
		submit.WithRateLimit(rate.Limit(p.SubmitRateLimit), p.SubmitRateBurst))
}

// submitInstallLog differentially submits the tail of the install log.
// The log grows for the lifetime of the machine; submitting all of it
// on every mismatch would swamp both sides, so only the last
// InstallLogTailLines lines travel. An absent log is not an error.
func (a *Agent) submitInstallLog(ctx context.Context) (bool, error) {
	lines, err := file.NewReader().Tail(a.Prefs.InstallLogPath, a.Prefs.InstallLogTailLines)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			slog.Debug("install log absent, nothing to submit", "path", a.Prefs.InstallLogPath)
			return false, nil
		}
		return false, fmt.Errorf("failed to read install log %s: %w", a.Prefs.InstallLogPath, err)
	}
	if len(lines) == 0 {
		return false, nil
	}
	content := strings.Join(lines, "\n") + "\n"
	return a.Submitter.SubmitContent(ctx, submit.ClassInstallLog, []byte(content))
}
