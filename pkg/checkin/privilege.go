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

package checkin

import (
	"os"

	"github.com/fleetworks/scout/pkg/errors"
)

// requireRoot is the default privilege check. The install report, the
// config-management run summary, and the query daemon results log are
// all root-readable only, so an unprivileged run would report a machine
// with every subsystem missing.
func requireRoot() error {
	if euid := os.Geteuid(); euid != 0 {
		return errors.Newf(errors.ErrCodePrecondition,
			"insufficient privilege: must run as root (effective uid %d)", euid)
	}
	return nil
}
