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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/kvasir/internal/cache"
	"github.com/dadrus/kvasir/internal/cache/memory"
	"github.com/dadrus/kvasir/internal/config"
	"github.com/dadrus/kvasir/internal/kvasir"
)

func newMemoryCache(t *testing.T) cache.Cache {
	t.Helper()

	cch, err := memory.NewCache(nil, nil)
	require.NoError(t, err)

	require.NoError(t, cch.Start(t.Context()))
	t.Cleanup(func() { _ = cch.Stop(t.Context()) })

	return cch
}

func newLiveResolverFor(baseURL string) Resolver {
	return NewResolver(config.SourcesConfig{Mode: config.LiveMode, BaseURL: baseURL})
}

func TestClientFetchCachesSuccessfulResponses(t *testing.T) {
	// GIVEN
	var requestCount atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		requestCount.Add(1)

		rw.Header().Set("Content-Type", "application/json")
		rw.Write([]byte(`{"labels":["a","b"],"values":[1,2]}`))
	}))
	defer srv.Close()

	client := NewClient(newLiveResolverFor(srv.URL), newMemoryCache(t), WithTTL(time.Minute))

	// WHEN fetched twice within the ttl window
	first, err := client.Fetch(t.Context(), "summary", nil)
	require.NoError(t, err)

	second, err := client.Fetch(t.Context(), "summary", nil)
	require.NoError(t, err)

	// THEN exactly one upstream call happened
	assert.Equal(t, int64(1), requestCount.Load())
	assert.False(t, first.FromCache)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Raw, second.Raw)
}

func TestClientFetchAfterTTLExpiryHitsUpstreamAgain(t *testing.T) {
	// GIVEN
	var requestCount atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		requestCount.Add(1)

		rw.Header().Set("Content-Type", "application/json")
		rw.Write([]byte(`{"values":[]}`))
	}))
	defer srv.Close()

	client := NewClient(newLiveResolverFor(srv.URL), newMemoryCache(t), WithTTL(20*time.Millisecond))

	// WHEN
	_, err := client.Fetch(t.Context(), "summary", nil)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	_, err = client.Fetch(t.Context(), "summary", nil)
	require.NoError(t, err)

	// THEN
	assert.Equal(t, int64(2), requestCount.Load())
}

func TestClientClearForcesRefetch(t *testing.T) {
	// GIVEN
	var requestCount atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		requestCount.Add(1)

		rw.Header().Set("Content-Type", "application/json")
		rw.Write([]byte(`{"values":[]}`))
	}))
	defer srv.Close()

	client := NewClient(newLiveResolverFor(srv.URL), newMemoryCache(t), WithTTL(time.Minute))

	_, err := client.Fetch(t.Context(), "summary", nil)
	require.NoError(t, err)

	// WHEN
	require.NoError(t, client.Clear(t.Context()))

	_, err = client.Fetch(t.Context(), "summary", nil)
	require.NoError(t, err)

	// THEN
	assert.Equal(t, int64(2), requestCount.Load())
}

func TestClientFetchOptionsArePartOfTheCacheKey(t *testing.T) {
	// GIVEN
	var requestCount atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		requestCount.Add(1)

		rw.Header().Set("Content-Type", "application/json")
		rw.Write([]byte(`{"metric":"` + req.URL.Query().Get("metric") + `"}`))
	}))
	defer srv.Close()

	client := NewClient(newLiveResolverFor(srv.URL), newMemoryCache(t), WithTTL(time.Minute))

	// WHEN fetching the same resource with different query options
	first, err := client.Fetch(t.Context(), "timeseries",
		&FetchOptions{Query: map[string]string{"metric": "fraud_rate"}})
	require.NoError(t, err)

	second, err := client.Fetch(t.Context(), "timeseries",
		&FetchOptions{Query: map[string]string{"metric": "volume"}})
	require.NoError(t, err)

	// THEN both hit the upstream and delivered distinct documents
	assert.Equal(t, int64(2), requestCount.Load())
	assert.NotEqual(t, first.Raw, second.Raw)
}

func TestClientCoalescesConcurrentFetches(t *testing.T) {
	// GIVEN
	var requestCount atomic.Int64

	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		requestCount.Add(1)
		<-release

		rw.Header().Set("Content-Type", "application/json")
		rw.Write([]byte(`{"values":[]}`))
	}))
	defer srv.Close()

	client := NewClient(newLiveResolverFor(srv.URL), newMemoryCache(t), WithTTL(time.Minute))

	// WHEN ten goroutines fetch the same resource at once
	var wg sync.WaitGroup

	for range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := client.Fetch(t.Context(), "summary", nil)
			assert.NoError(t, err)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	// THEN they coalesced into a single upstream call
	assert.Equal(t, int64(1), requestCount.Load())
}

func TestClientFetchErrors(t *testing.T) {
	for uc, tc := range map[string]struct {
		handler     http.HandlerFunc
		expectedErr error
	}{
		"non 2xx response": {
			handler: func(rw http.ResponseWriter, _ *http.Request) {
				rw.WriteHeader(http.StatusBadGateway)
			},
			expectedErr: kvasir.ErrCommunication,
		},
		"unexpected content type": {
			handler: func(rw http.ResponseWriter, _ *http.Request) {
				rw.Header().Set("Content-Type", "text/html")
				rw.Write([]byte("<html></html>"))
			},
			expectedErr: kvasir.ErrMalformedPayload,
		},
		"malformed json": {
			handler: func(rw http.ResponseWriter, _ *http.Request) {
				rw.Header().Set("Content-Type", "application/json")
				rw.Write([]byte(`{"values":`))
			},
			expectedErr: kvasir.ErrMalformedPayload,
		},
		"timeout": {
			handler: func(rw http.ResponseWriter, _ *http.Request) {
				time.Sleep(200 * time.Millisecond)

				rw.Header().Set("Content-Type", "application/json")
				rw.Write([]byte(`{}`))
			},
			expectedErr: kvasir.ErrCommunicationTimeout,
		},
	} {
		t.Run(uc, func(t *testing.T) {
			// GIVEN
			var requestCount atomic.Int64

			srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
				requestCount.Add(1)
				tc.handler(rw, req)
			}))
			defer srv.Close()

			client := NewClient(newLiveResolverFor(srv.URL), newMemoryCache(t),
				WithTTL(time.Minute), WithTimeout(50*time.Millisecond))

			// WHEN
			_, err := client.Fetch(t.Context(), "summary", nil)

			// THEN the error is classified and nothing was cached
			require.ErrorIs(t, err, tc.expectedErr)

			_, err = client.Fetch(t.Context(), "summary", nil)
			require.Error(t, err)

			assert.Equal(t, int64(2), requestCount.Load())
		})
	}
}

func TestClientFetchFromStaticExports(t *testing.T) {
	// GIVEN
	testDir := t.TempDir()

	require.NoError(t, os.WriteFile(
		filepath.Join(testDir, "summary.json"),
		[]byte(`{"labels":["fraud","ok"],"values":[2,98]}`),
		0o600))

	resolver := NewResolver(config.SourcesConfig{Mode: config.StaticMode, StaticDir: testDir})
	client := NewClient(resolver, newMemoryCache(t), WithTTL(time.Minute))

	// WHEN
	payload, err := client.Fetch(t.Context(), "summary", nil)

	// THEN
	require.NoError(t, err)

	var doc map[string]any

	require.NoError(t, payload.Decode(&doc))
	assert.Contains(t, doc, "labels")

	// WHEN the export does not exist
	_, err = client.Fetch(t.Context(), "no-such-resource", nil)

	// THEN
	require.ErrorIs(t, err, kvasir.ErrCommunication)
}
