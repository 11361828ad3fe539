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

// Package profiler invokes the system profiler to gather hardware
// identity: serial number, model, computer name, and boot volume size.
package profiler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/fleetworks/scout/pkg/report"
)

// SectionName is the report slot this collector fills.
const SectionName = "profile"

// Data keys within the section.
const (
	KeySerial    = "serial"
	KeyModel     = "model"
	KeyName      = "name"
	KeyOSVersion = "os_version"
	KeyMemory    = "memory"
	KeyDiskSize  = "disk_size"
)

// Data type arguments requested from the profiler.
var profilerDataTypes = []string{
	"SPHardwareDataType",
	"SPSoftwareDataType",
	"SPStorageDataType",
}

// Collector runs the system profiler command with JSON output.
type Collector struct {
	// Command is the profiler binary name or path.
	Command string
	// Timeout bounds the subprocess invocation.
	Timeout time.Duration
}

// Collect runs the profiler and extracts identity fields. A missing
// binary or unparseable output yields an empty section with a reason.
func (c *Collector) Collect(ctx context.Context) (*report.Section, error) {
	slog.Info("collecting system profile", "command", c.Command)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmdPath, err := exec.LookPath(c.Command)
	if err != nil {
		return report.Empty(SectionName, fmt.Sprintf("system profiler not found: %s", c.Command)), nil
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, profilerDataTypes...), "-json")
	out, err := exec.CommandContext(ctx, cmdPath, args...).Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return report.Empty(SectionName, fmt.Sprintf("system profiler failed: %v", err)), nil
	}

	var profile struct {
		Hardware []map[string]any `json:"SPHardwareDataType"`
		Software []map[string]any `json:"SPSoftwareDataType"`
		Storage  []map[string]any `json:"SPStorageDataType"`
	}
	if err := json.Unmarshal(out, &profile); err != nil {
		return report.Empty(SectionName, fmt.Sprintf("unparseable profiler output: %v", err)), nil
	}

	data := make(map[string]any, 6)

	if len(profile.Hardware) > 0 {
		hw := profile.Hardware[0]
		if v, ok := hw["serial_number"].(string); ok {
			data[KeySerial] = v
		}
		if v, ok := hw["machine_model"].(string); ok {
			data[KeyModel] = v
		}
		if v, ok := hw["physical_memory"].(string); ok {
			data[KeyMemory] = v
		}
	}

	if len(profile.Software) > 0 {
		sw := profile.Software[0]
		if v, ok := sw["local_host_name"].(string); ok {
			// Computer names come back decomposed (NFD); the server
			// expects NFC.
			data[KeyName] = norm.NFC.String(v)
		}
		if v, ok := sw["os_version"].(string); ok {
			data[KeyOSVersion] = v
		}
	}

	if size := bootVolumeSize(profile.Storage); size > 0 {
		data[KeyDiskSize] = size
	}

	return &report.Section{Name: SectionName, Data: data}, nil
}

// bootVolumeSize returns the size of the root volume, falling back to the
// first listed volume when none is mounted at "/".
func bootVolumeSize(storage []map[string]any) int64 {
	var fallback int64
	for i, vol := range storage {
		size := toInt64(vol["size_in_bytes"])
		if i == 0 {
			fallback = size
		}
		if mp, ok := vol["mount_point"].(string); ok && mp == "/" {
			return size
		}
	}
	return fallback
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case json.Number:
		i, _ := n.Int64()
		return i
	default:
		return 0
	}
}

// Serial extracts the hardware serial from a collected section.
func Serial(s *report.Section) string {
	if s == nil {
		return ""
	}
	v, _ := s.Data[KeySerial].(string)
	return v
}

// Name extracts the computer name from a collected section.
func Name(s *report.Section) string {
	if s == nil {
		return ""
	}
	v, _ := s.Data[KeyName].(string)
	return v
}

// DiskSize extracts the boot volume size from a collected section.
func DiskSize(s *report.Section) int64 {
	if s == nil {
		return 0
	}
	return toInt64(s.Data[KeyDiskSize])
}
