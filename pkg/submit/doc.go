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

// Package submit implements the differential submission protocol.
//
// For each data class (check-in payload, application inventory, install
// log, catalog set) the submitter:
//
//  1. Computes the SHA-256 digest of the local artifact.
//  2. Fetches the server's stored digest for that artifact.
//  3. Transmits the artifact only when the digests differ. A failed
//     lookup counts as a difference: a transient network error must
//     force a re-send rather than silently skip an update.
//
// The catalog set is compared per file: one batch request exchanges the
// full local name-to-digest map for the server's map, then only files
// whose digest differs are individually transmitted.
//
// Payloads are gzip-compressed and base64-encoded before inclusion in
// URL-form-encoded submission data. This is the wire contract with the
// server, not a performance optimization.
package submit
