// Copyright 2024 Dimitrij Drus <dadrus@gmx.de>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package sources

import (
	"fmt"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/ybbus/httpretry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dadrus/kvasir/internal/config"
	"github.com/dadrus/kvasir/internal/x/httpx"
)

type Option func(*Client)

func WithTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *Client) {
		if len(headers) != 0 {
			c.headers = maps.Clone(headers)
		}
	}
}

func WithRetry(conf *config.RetryConfig) Option {
	return func(c *Client) {
		if conf != nil {
			c.client = newHTTPClient(conf)
		}
	}
}

// WithKnownResources announces the logical names this deployment is
// configured for, e.g. for cache warming.
func WithKnownResources(names ...string) Option {
	return func(c *Client) {
		c.resources = slices.Compact(slices.Sorted(slices.Values(names)))
	}
}

func newHTTPClient(retry *config.RetryConfig) *http.Client {
	client := &http.Client{
		Transport: otelhttp.NewTransport(
			httpx.NewTraceRoundTripper(http.DefaultTransport),
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return fmt.Sprintf("%s %s %s", r.Proto, r.Method, r.URL.Path)
			})),
	}

	if retry != nil {
		client = httpretry.NewCustomClient(
			client,
			httpretry.WithMaxRetryCount(retry.MaxAttempts),
			httpretry.WithBackoffPolicy(
				httpretry.ExponentialBackoff(retry.MinDelay, retry.MaxDelay, 0)))
	}

	return client
}
