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
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/fleetworks/scout/pkg/errors"
)

const (
	defaultUserAgent = "scout-agent"

	// maxHashBody caps how much of a hash-lookup response is read. A
	// digest is 64 hex characters; anything near the cap is garbage.
	maxHashBody = 1 << 16
)

// ClientOption configures a Client during construction.
type ClientOption func(*Client)

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.http = h
	}
}

// WithRateLimit caps submission POSTs at r per second with the given
// burst. Hash lookups are not limited; only transmissions are.
func WithRateLimit(r rate.Limit, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(r, burst)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// Client is a thin HTTP wrapper around the server's hash-lookup and
// submission endpoints. It knows URLs and transport concerns; the
// differential logic lives in Submitter.
type Client struct {
	baseURL   string
	key       string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
}

// NewClient creates a Client for the server at baseURL, authenticating
// with the business-unit key.
func NewClient(baseURL, key string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		key:       key,
		userAgent: defaultUserAgent,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// fetchHash retrieves the server's stored digest from path. Any failure
// (network, non-200 status, unreadable body) is returned as an error;
// the caller treats a failed lookup as a digest mismatch.
func (c *Client) fetchHash(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeTransport, "failed to create hash request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Scout-Key", c.key)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeTransport, "hash lookup failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf(errors.ErrCodeTransport,
			"hash lookup returned status %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxHashBody))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeTransport, "failed to read hash response", err)
	}
	return strings.TrimSpace(string(body)), nil
}

// postForm sends URL-form-encoded data to path and returns the response
// body. The business-unit key is always included. Submissions pass
// through the rate limiter when one is configured.
func (c *Client) postForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter interrupted: %w", err)
		}
	}

	form.Set("key", c.key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransport, "failed to create submission request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransport, "submission failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransport, "failed to read submission response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("submission rejected", "path", path, "status", resp.StatusCode)
		return nil, errors.Newf(errors.ErrCodeTransport,
			"submission returned status %d for %s", resp.StatusCode, path)
	}
	return body, nil
}
