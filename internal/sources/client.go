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
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"maps"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/elnormous/contenttype"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"

	"github.com/dadrus/kvasir/internal/cache"
	"github.com/dadrus/kvasir/internal/kvasir"
	"github.com/dadrus/kvasir/internal/x/errorchain"
	"github.com/dadrus/kvasir/internal/x/stringx"
)

const (
	cacheKeyPrefix = "sources:"

	defaultTTL     = 5 * time.Minute
	defaultTimeout = 10 * time.Second
)

// FetchOptions customize a single fetch. They become part of the cache
// key, so differently parametrized fetches of the same resource are
// cached independently.
type FetchOptions struct {
	Query   map[string]string
	Headers map[string]string
}

// Client fetches analytics resources and memoizes successful responses
// in the configured cache backend. Failed fetches are never cached.
type Client struct {
	resolver  Resolver
	cache     cache.Cache
	client    *http.Client
	ttl       time.Duration
	timeout   time.Duration
	headers   map[string]string
	resources []string

	sf singleflight.Group
}

func NewClient(resolver Resolver, cch cache.Cache, opts ...Option) *Client {
	client := &Client{
		resolver: resolver,
		cache:    cch,
		ttl:      defaultTTL,
		timeout:  defaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.client == nil {
		client.client = newHTTPClient(nil)
	}

	return client
}

// Fetch returns the document for the given logical resource. A valid
// cache entry is served without touching the upstream. Concurrent
// fetches of the same key coalesce into a single upstream call.
func (c *Client) Fetch(ctx context.Context, resource string, opts *FetchOptions) (*Payload, error) {
	target := c.resolver.Resolve(resource)
	key := c.cacheKey(resource, target, opts)
	logger := zerolog.Ctx(ctx)

	if raw, err := c.cache.Get(ctx, key); err == nil {
		payload, err := unmarshalEnvelope(resource, raw)
		if err == nil {
			logger.Debug().Str("_resource", resource).Msg("Serving resource from cache")

			return payload, nil
		}

		logger.Warn().Err(err).Str("_resource", resource).Msg("Ignoring corrupt cache entry")
	}

	result, err, _ := c.sf.Do(key, func() (any, error) {
		data, err := c.load(ctx, resource, target, opts)
		if err != nil {
			return nil, err
		}

		payload := &Payload{Resource: resource, Raw: data, FetchedAt: time.Now()}

		raw, err := marshalEnvelope(payload.FetchedAt, data)
		if err != nil {
			return nil, errorchain.NewWithMessagef(kvasir.ErrInternal,
				"failed to encode cache entry for %s", resource).CausedBy(err)
		}

		if err = c.cache.Set(ctx, key, raw, c.ttl); err != nil {
			logger.Warn().Err(err).Str("_resource", resource).Msg("Failed caching resource")
		}

		return payload, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Payload), nil // nolint: forcetypeassert
}

// Clear unconditionally evicts all cached resource documents.
func (c *Client) Clear(ctx context.Context) error {
	return c.cache.Clear(ctx)
}

// Resources lists the logical names this deployment knows about.
func (c *Client) Resources() []string { return slices.Clone(c.resources) }

func (c *Client) load(ctx context.Context, resource string, target Target, opts *FetchOptions) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if target.Static() {
		data, err = c.loadStatic(resource, target)
	} else {
		data, err = c.loadLive(ctx, resource, target, opts)
	}

	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(data) {
		return nil, errorchain.NewWithMessagef(kvasir.ErrMalformedPayload,
			"%s did not deliver a valid JSON document", resource)
	}

	return data, nil
}

func (c *Client) loadStatic(resource string, target Target) ([]byte, error) {
	data, err := os.ReadFile(target.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errorchain.NewWithMessagef(kvasir.ErrCommunication,
				"no static export for %s at %s", resource, target.Path).CausedBy(err)
		}

		return nil, errorchain.NewWithMessagef(kvasir.ErrCommunication,
			"failed reading static export for %s", resource).CausedBy(err)
	}

	return data, nil
}

func (c *Client) loadLive(ctx context.Context, resource string, target Target, opts *FetchOptions) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		return nil, errorchain.NewWithMessagef(kvasir.ErrInternal,
			"failed to create request for %s", resource).CausedBy(err)
	}

	req.Header.Set("Accept", "application/json")

	for name, value := range c.headers {
		req.Header.Set(name, value)
	}

	if opts != nil {
		for name, value := range opts.Headers {
			req.Header.Set(name, value)
		}

		if len(opts.Query) != 0 {
			query := req.URL.Query()
			for name, value := range opts.Query {
				query.Set(name, value)
			}

			req.URL.RawQuery = query.Encode()
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		var clientErr *url.Error
		if errors.As(err, &clientErr) && clientErr.Timeout() || errors.Is(err, context.DeadlineExceeded) {
			return nil, errorchain.NewWithMessagef(kvasir.ErrCommunicationTimeout,
				"request to %s timed out", resource).CausedBy(err)
		}

		return nil, errorchain.NewWithMessagef(kvasir.ErrCommunication,
			"request to %s failed", resource).CausedBy(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errorchain.NewWithMessagef(kvasir.ErrCommunication,
			"unexpected response code %d for %s", resp.StatusCode, resource)
	}

	if !isJSONMediaType(resp.Header.Get("Content-Type")) {
		return nil, errorchain.NewWithMessagef(kvasir.ErrMalformedPayload,
			"%s delivered an unexpected content type %q", resource, resp.Header.Get("Content-Type"))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errorchain.NewWithMessagef(kvasir.ErrCommunication,
			"failed to read response for %s", resource).CausedBy(err)
	}

	return data, nil
}

// cacheKey derives the entry key from the resource, its resolved target
// and the canonical serialization of the fetch options.
func (c *Client) cacheKey(resource string, target Target, opts *FetchOptions) string {
	hash := sha256.New()
	hash.Write(stringx.ToBytes(resource))
	hash.Write(stringx.ToBytes(target.String()))

	if opts != nil {
		writeSorted(hash, "q", opts.Query)
		writeSorted(hash, "h", opts.Headers)
	}

	return cacheKeyPrefix + hex.EncodeToString(hash.Sum(nil))
}

func writeSorted(dst io.Writer, prefix string, values map[string]string) {
	for _, key := range slices.Sorted(maps.Keys(values)) {
		dst.Write(stringx.ToBytes(prefix))       // nolint: errcheck
		dst.Write(stringx.ToBytes(key))          // nolint: errcheck
		dst.Write(stringx.ToBytes(values[key]))  // nolint: errcheck
	}
}

func isJSONMediaType(value string) bool {
	if len(value) == 0 {
		return false
	}

	mediaType := contenttype.NewMediaType(value)

	return mediaType.Subtype == "json" || strings.HasSuffix(mediaType.Subtype, "+json")
}
