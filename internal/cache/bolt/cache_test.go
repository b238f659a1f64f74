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

package bolt

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/kvasir/internal/cache"
	"github.com/dadrus/kvasir/internal/kvasir"
)

func TestNewCache(t *testing.T) {
	for uc, tc := range map[string]struct {
		config func(t *testing.T) map[string]any
		assert func(t *testing.T, err error, cch cache.Cache)
	}{
		"without path": {
			config: func(t *testing.T) map[string]any {
				t.Helper()

				return nil
			},
			assert: func(t *testing.T, err error, _ cache.Cache) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, kvasir.ErrConfiguration)
				require.ErrorContains(t, err, "path")
			},
		},
		"with unsupported properties": {
			config: func(t *testing.T) map[string]any {
				t.Helper()

				return map[string]any{"foo": "bar"}
			},
			assert: func(t *testing.T, err error, _ cache.Cache) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, kvasir.ErrConfiguration)
				require.ErrorContains(t, err, "failed decoding bolt cache config")
			},
		},
		"successful creation": {
			config: func(t *testing.T) map[string]any {
				t.Helper()

				return map[string]any{"path": filepath.Join(t.TempDir(), "cache.db")}
			},
			assert: func(t *testing.T, err error, cch cache.Cache) {
				t.Helper()

				require.NoError(t, err)
				assert.NotNil(t, cch)
			},
		},
	} {
		t.Run(uc, func(t *testing.T) {
			cch, err := NewCache(nil, tc.config(t))

			if cch != nil {
				t.Cleanup(func() { _ = cch.Stop(t.Context()) })
			}

			tc.assert(t, err, cch)
		})
	}
}

func TestCacheUsage(t *testing.T) {
	cch, err := NewCache(nil, map[string]any{"path": filepath.Join(t.TempDir(), "cache.db")})
	require.NoError(t, err)

	require.NoError(t, cch.Start(t.Context()))

	t.Cleanup(func() { _ = cch.Stop(t.Context()) })

	// GIVEN
	require.NoError(t, cch.Set(t.Context(), "foo", []byte("bar"), 10*time.Minute))
	require.NoError(t, cch.Set(t.Context(), "short", []byte("lived"), time.Millisecond))

	// THEN a present entry is returned
	data, err := cch.Get(t.Context(), "foo")
	require.NoError(t, err)
	assert.Equal(t, []byte("bar"), data)

	// THEN the expired entry is absent
	time.Sleep(5 * time.Millisecond)

	_, err = cch.Get(t.Context(), "short")
	require.ErrorIs(t, err, cache.ErrNoCacheEntry)

	// THEN a deleted entry is absent
	require.NoError(t, cch.Delete(t.Context(), "foo"))

	_, err = cch.Get(t.Context(), "foo")
	require.ErrorIs(t, err, cache.ErrNoCacheEntry)

	// THEN clear removes everything
	require.NoError(t, cch.Set(t.Context(), "baz", []byte("zab"), 10*time.Minute))
	require.NoError(t, cch.Clear(t.Context()))

	_, err = cch.Get(t.Context(), "baz")
	require.ErrorIs(t, err, cache.ErrNoCacheEntry)
}
