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

package prefs

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fleetworks/scout/pkg/errors"
)

// NameType selects which machine identifier is reported as the display name.
type NameType string

const (
	// NameTypeHostname reports the OS hostname.
	NameTypeHostname NameType = "hostname"
	// NameTypeProfile reports the computer name from the system profiler.
	NameTypeProfile NameType = "profile"
	// NameTypeSerial reports the hardware serial number.
	NameTypeSerial NameType = "serial"
)

// Environment variable names for preference overrides.
const (
	EnvServerURL = "SCOUT_SERVER_URL"
	EnvKey       = "SCOUT_KEY"
	EnvNameType  = "SCOUT_NAME_TYPE"
	EnvBasePath  = "SCOUT_BASE_PATH"
)

// Default timeouts. Subprocess and network calls must never hang a run
// indefinitely.
const (
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultCommandTimeout = 30 * time.Second
)

// Default submission tuning.
const (
	// DefaultSubmitRateLimit caps submission POSTs per second. Catalog
	// directories can hold dozens of files; a cold server must not be
	// hit with them all at once.
	DefaultSubmitRateLimit = 5.0
	// DefaultSubmitRateBurst is the rate limiter burst size.
	DefaultSubmitRateBurst = 5
	// DefaultInstallLogTailLines bounds how much of the install log is
	// submitted. The log grows for the lifetime of the machine; only
	// the recent entries are useful server-side.
	DefaultInstallLogTailLines = 5000
)

// Preferences holds everything the agent needs for a run: server identity,
// subsystem locations, and timeouts. All fields are plain data; loading
// and validation are the only behaviors.
type Preferences struct {
	// ServerURL is the base URL of the reporting server. Required.
	ServerURL string `yaml:"server_url"`

	// Key is the business-unit key scoping this machine's reports. Required.
	Key string `yaml:"key"`

	// NameType selects the machine display name source.
	NameType NameType `yaml:"name_type"`

	// BasePath is the package-management client's data directory. The
	// install report, application inventory, install log, and catalogs
	// default to paths under it.
	BasePath string `yaml:"base_path"`

	// InstallReportPath is the package-manager install report plist.
	InstallReportPath string `yaml:"install_report_path"`
	// InventoryPath is the application inventory plist.
	InventoryPath string `yaml:"inventory_path"`
	// InstallLogPath is the package-manager install log.
	InstallLogPath string `yaml:"install_log_path"`
	// InstallLogTailLines is the maximum number of install log lines
	// submitted, counted from the end.
	InstallLogTailLines int `yaml:"install_log_tail_lines"`
	// CatalogsDir is the directory of downloaded catalog files.
	CatalogsDir string `yaml:"catalogs_dir"`

	// ProfilerCommand is the system profiler binary.
	ProfilerCommand string `yaml:"profiler_command"`

	// ConfigMgmtSummaryPath is the config-management run summary YAML.
	ConfigMgmtSummaryPath string `yaml:"configmgmt_summary_path"`
	// ConfigMgmtCommand is the config-management agent binary.
	ConfigMgmtCommand string `yaml:"configmgmt_command"`

	// QueryLogPath is the query daemon's newline-delimited JSON results log.
	QueryLogPath string `yaml:"query_log_path"`
	// QueryDaemonUnit is the systemd unit name used for the daemon
	// presence check.
	QueryDaemonUnit string `yaml:"query_daemon_unit"`
	// QueryDaemonCommand is the daemon binary, used as a presence
	// fallback where systemd is unavailable.
	QueryDaemonCommand string `yaml:"query_daemon_command"`

	// FactsCommand is the fact-gatherer binary.
	FactsCommand string `yaml:"facts_command"`
	// FactsSearchPath is an additional module search path handed to the
	// fact gatherer explicitly (never via process environment mutation).
	FactsSearchPath string `yaml:"facts_search_path"`

	// HTTPTimeout bounds each HTTP exchange with the server.
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	// CommandTimeout bounds each subprocess invocation.
	CommandTimeout time.Duration `yaml:"command_timeout"`

	// SubmitRateLimit caps submission POSTs per second.
	SubmitRateLimit float64 `yaml:"submit_rate_limit"`
	// SubmitRateBurst is the submission rate limiter burst size.
	SubmitRateBurst int `yaml:"submit_rate_burst"`
}

// Default returns preferences with only defaults applied. Useful for
// tests and for factories created without an explicit preference file.
func Default() *Preferences {
	p := &Preferences{}
	p.applyDefaults()
	return p
}

// Load reads preferences from the YAML file at path, applies environment
// overrides, and fills defaults. A missing file is not an error: the
// environment alone can configure a run. A malformed file is an error,
// since silently ignoring it would check the machine in against the
// wrong server.
func Load(path string) (*Preferences, error) {
	p := &Preferences{}

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, p); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput,
					fmt.Sprintf("malformed preferences file %s", path), err)
			}
		case os.IsNotExist(err):
			// fall through to env + defaults
		default:
			return nil, fmt.Errorf("failed to read preferences file %s: %w", path, err)
		}
	}

	p.applyEnv()
	p.applyDefaults()
	return p, nil
}

func (p *Preferences) applyEnv() {
	if v := os.Getenv(EnvServerURL); v != "" {
		p.ServerURL = v
	}
	if v := os.Getenv(EnvKey); v != "" {
		p.Key = v
	}
	if v := os.Getenv(EnvNameType); v != "" {
		p.NameType = NameType(v)
	}
	if v := os.Getenv(EnvBasePath); v != "" {
		p.BasePath = v
	}
}

func (p *Preferences) applyDefaults() {
	if p.NameType == "" {
		p.NameType = NameTypeHostname
	}
	if p.BasePath == "" {
		p.BasePath = "/Library/Managed Installs"
	}
	if p.InstallReportPath == "" {
		p.InstallReportPath = p.BasePath + "/ManagedInstallReport.plist"
	}
	if p.InventoryPath == "" {
		p.InventoryPath = p.BasePath + "/ApplicationInventory.plist"
	}
	if p.InstallLogPath == "" {
		p.InstallLogPath = p.BasePath + "/Logs/Install.log"
	}
	if p.CatalogsDir == "" {
		p.CatalogsDir = p.BasePath + "/catalogs"
	}
	if p.ProfilerCommand == "" {
		p.ProfilerCommand = "system_profiler"
	}
	if p.ConfigMgmtSummaryPath == "" {
		p.ConfigMgmtSummaryPath = "/var/lib/puppet/state/last_run_summary.yaml"
	}
	if p.ConfigMgmtCommand == "" {
		p.ConfigMgmtCommand = "puppet"
	}
	if p.QueryLogPath == "" {
		p.QueryLogPath = "/var/log/osquery/osqueryd.results.log"
	}
	if p.QueryDaemonUnit == "" {
		p.QueryDaemonUnit = "osqueryd.service"
	}
	if p.QueryDaemonCommand == "" {
		p.QueryDaemonCommand = "osqueryd"
	}
	if p.FactsCommand == "" {
		p.FactsCommand = "facter"
	}
	if p.HTTPTimeout <= 0 {
		p.HTTPTimeout = DefaultHTTPTimeout
	}
	if p.CommandTimeout <= 0 {
		p.CommandTimeout = DefaultCommandTimeout
	}
	if p.SubmitRateLimit <= 0 {
		p.SubmitRateLimit = DefaultSubmitRateLimit
	}
	if p.SubmitRateBurst <= 0 {
		p.SubmitRateBurst = DefaultSubmitRateBurst
	}
	if p.InstallLogTailLines <= 0 {
		p.InstallLogTailLines = DefaultInstallLogTailLines
	}
}

// Validate checks the fatal preconditions for a run. The returned errors
// carry ErrCodePrecondition; the caller aborts before any collector runs.
func (p *Preferences) Validate() error {
	if strings.TrimSpace(p.ServerURL) == "" {
		return errors.New(errors.ErrCodePrecondition, "required preference not set: ServerURL")
	}
	if strings.TrimSpace(p.Key) == "" {
		return errors.New(errors.ErrCodePrecondition, "required preference not set: Key")
	}
	switch p.NameType {
	case NameTypeHostname, NameTypeProfile, NameTypeSerial:
	default:
		return errors.Newf(errors.ErrCodeInvalidInput, "unknown name_type: %q", p.NameType)
	}
	return nil
}

// BaseURL returns the server URL without a trailing slash, ready for
// path joining.
func (p *Preferences) BaseURL() string {
	return strings.TrimRight(p.ServerURL, "/")
}
