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

package report

// Machine holds the identity fields submitted with every report.
type Machine struct {
	// Serial is the hardware serial number.
	Serial string `json:"serial" yaml:"serial"`
	// Name is the display name, selected by the naming preference.
	Name string `json:"name" yaml:"name"`
	// DiskSize is the boot volume size in bytes.
	DiskSize int64 `json:"disk_size,omitempty" yaml:"disk_size,omitempty"`
	// ClientVersion is the package-management client version, if known.
	ClientVersion string `json:"client_version,omitempty" yaml:"client_version,omitempty"`
	// RunUUID uniquely identifies this agent run.
	RunUUID string `json:"run_uuid" yaml:"run_uuid"`
}

// Section is one subsystem's contribution to the report. A Section with
// no data and a non-empty Reason records why the subsystem produced
// nothing (absent binary, malformed file) without failing the run.
type Section struct {
	// Name is the subsystem slot this section occupies in the report.
	Name string `json:"name" yaml:"name"`
	// Data is the subsystem's semi-structured output.
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
	// Reason explains an empty Data map.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Empty creates a Section with no data and the given reason.
func Empty(name, reason string) *Section {
	return &Section{Name: name, Reason: reason}
}

// IsEmpty reports whether the section carries no data.
func (s *Section) IsEmpty() bool {
	return len(s.Data) == 0
}

// Report is the assembled machine state: identity fields plus one slot
// per subsystem. Built fresh each run and discarded after submission.
type Report struct {
	Machine Machine `json:"machine" yaml:"machine"`

	// Sections maps subsystem name to that subsystem's output.
	Sections map[string]*Section `json:"sections" yaml:"sections"`
}

// New creates an empty Report.
func New() *Report {
	return &Report{
		Sections: make(map[string]*Section),
	}
}

// Add places a section into its named slot, unconditionally overwriting
// any existing slot of the same name. Collectors are independent and run
// once, so no conflict resolution is needed.
func (r *Report) Add(s *Section) {
	if s == nil || s.Name == "" {
		return
	}
	r.Sections[s.Name] = s
}

// Section returns the named section, or nil if absent.
func (r *Report) Section(name string) *Section {
	return r.Sections[name]
}
