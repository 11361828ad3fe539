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

package submit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fleetworks/scout/pkg/checksum"
	"github.com/fleetworks/scout/pkg/report"
)

// Submission classes. Each class has its own server-side hash store and
// submission endpoint.
const (
	ClassCheckin    = "checkin"
	ClassInventory  = "inventory"
	ClassInstallLog = "installlog"
	ClassCatalog    = "catalog"
)

// Submitter applies the differential protocol: hash-compare first,
// transmit only on mismatch.
type Submitter struct {
	// Client performs the HTTP exchanges.
	Client *Client
	// Machine identifies this host on every submission.
	Machine report.Machine
}

// NewSubmitter creates a Submitter for the given client and machine identity.
func NewSubmitter(c *Client, m report.Machine) *Submitter {
	return &Submitter{Client: c, Machine: m}
}

func hashPath(class, serial string) string {
	return fmt.Sprintf("/%s/hash/%s/", class, url.PathEscape(serial))
}

func submitPath(class string) string {
	return fmt.Sprintf("/%s/submit/", class)
}

// shouldSend compares the local digest against the server's stored
// digest for class. A failed lookup reports true: when in doubt, send.
func (s *Submitter) shouldSend(ctx context.Context, class, localHash string) bool {
	remote, err := s.Client.fetchHash(ctx, hashPath(class, s.Machine.Serial))
	if err != nil {
		slog.Debug("hash lookup failed, forcing submission", "class", class, "error", err)
		return true
	}
	if remote == "" || remote != localHash {
		return true
	}
	slog.Debug("server already current, skipping submission", "class", class)
	return false
}

// identityForm returns the form fields common to every submission.
func (s *Submitter) identityForm() url.Values {
	form := url.Values{}
	form.Set("serial", s.Machine.Serial)
	form.Set("name", s.Machine.Name)
	form.Set("run_uuid", s.Machine.RunUUID)
	if s.Machine.DiskSize > 0 {
		form.Set("disk_size", strconv.FormatInt(s.Machine.DiskSize, 10))
	}
	if s.Machine.ClientVersion != "" {
		form.Set("client_version", s.Machine.ClientVersion)
	}
	return form
}

// send encodes data and POSTs it to the class submission endpoint.
func (s *Submitter) send(ctx context.Context, class string, extra url.Values, data []byte) error {
	payload, err := Encode(data)
	if err != nil {
		return err
	}

	form := s.identityForm()
	for k, vs := range extra {
		for _, v := range vs {
			form.Add(k, v)
		}
	}
	form.Set("payload", payload)

	if _, err := s.Client.postForm(ctx, submitPath(class), form); err != nil {
		return err
	}
	slog.Info("submitted", "class", class, "bytes", len(data))
	return nil
}

// Checkin submits the assembled report, differentially. Returns whether
// a transmission actually happened.
func (s *Submitter) Checkin(ctx context.Context, r *report.Report) (bool, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return false, fmt.Errorf("failed to serialize report: %w", err)
	}

	if !s.shouldSend(ctx, ClassCheckin, checksum.Sum(data)) {
		return false, nil
	}
	if err := s.send(ctx, ClassCheckin, nil, data); err != nil {
		return false, err
	}
	return true, nil
}

// SubmitContent differentially submits in-memory content under class.
func (s *Submitter) SubmitContent(ctx context.Context, class string, data []byte) (bool, error) {
	if !s.shouldSend(ctx, class, checksum.Sum(data)) {
		return false, nil
	}
	if err := s.send(ctx, class, nil, data); err != nil {
		return false, err
	}
	return true, nil
}

// SubmitFile differentially submits the file at path under class. An
// absent file is not an error: the subsystem that produces it may not
// be installed on this machine.
func (s *Submitter) SubmitFile(ctx context.Context, class, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("artifact absent, nothing to submit", "class", class, "path", path)
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return s.SubmitContent(ctx, class, data)
}

// SubmitCatalogs differentially submits the catalog files under dir.
// One batch request exchanges the local name-to-digest map for the
// server's map; only files whose digest differs are transmitted.
// Returns the number of files sent. An absent or empty directory is
// not an error.
func (s *Submitter) SubmitCatalogs(ctx context.Context, dir string) (int, error) {
	local, err := checksum.SumDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("catalog directory absent, nothing to submit", "dir", dir)
			return 0, nil
		}
		return 0, fmt.Errorf("failed to hash catalogs in %s: %w", dir, err)
	}
	if len(local) == 0 {
		return 0, nil
	}

	remote := s.fetchCatalogHashes(ctx, local)

	sent := 0
	for name, digest := range local {
		if remote[name] == digest {
			slog.Debug("catalog already current", "catalog", name)
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return sent, fmt.Errorf("failed to read catalog %s: %w", name, err)
		}

		extra := url.Values{}
		extra.Set("catalog", name)
		extra.Set("sha256hash", digest)
		if err := s.send(ctx, ClassCatalog, extra, data); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

// fetchCatalogHashes posts the local digest map and returns the
// server's map. Any failure returns an empty map, which forces every
// catalog to be sent.
func (s *Submitter) fetchCatalogHashes(ctx context.Context, local map[string]string) map[string]string {
	hashes, err := json.Marshal(local)
	if err != nil {
		return nil
	}

	form := s.identityForm()
	form.Set("hashes", string(hashes))

	body, err := s.Client.postForm(ctx, fmt.Sprintf("/%s/hash/", ClassCatalog), form)
	if err != nil {
		slog.Debug("catalog hash exchange failed, forcing submission", "error", err)
		return nil
	}

	remote := map[string]string{}
	if err := json.Unmarshal(body, &remote); err != nil {
		slog.Debug("unparseable catalog hash response, forcing submission", "error", err)
		return nil
	}
	return remote
}
