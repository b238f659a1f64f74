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

package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type testListener struct {
	called atomic.Int64
}

func (l *testListener) OnChanged(_ zerolog.Logger) { l.called.Add(1) }

func TestWatcherNotifiesAboutWrites(t *testing.T) {
	// GIVEN
	testDir := t.TempDir()
	file := filepath.Join(testDir, "test.json")

	require.NoError(t, os.WriteFile(file, []byte(`{"foo":"bar"}`), 0o600))

	w, err := newWatcher(zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, w.start(t.Context()))

	t.Cleanup(func() { _ = w.stop(t.Context()) })

	listener := &testListener{}
	require.NoError(t, w.Add(file, listener))

	// WHEN
	require.NoError(t, os.WriteFile(file, []byte(`{"foo":"baz"}`), 0o600))

	// THEN
	require.Eventually(t, func() bool { return listener.called.Load() >= 1 },
		time.Second, 10*time.Millisecond)
}

func TestWatcherNotifiesDirectoryListenerAboutContainedFiles(t *testing.T) {
	// GIVEN
	testDir := t.TempDir()
	file := filepath.Join(testDir, "summary.json")

	require.NoError(t, os.WriteFile(file, []byte(`{}`), 0o600))

	w, err := newWatcher(zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, w.start(t.Context()))

	t.Cleanup(func() { _ = w.stop(t.Context()) })

	listener := &testListener{}
	require.NoError(t, w.Add(testDir, listener))

	// WHEN
	require.NoError(t, os.WriteFile(file, []byte(`{"labels":[]}`), 0o600))

	// THEN
	require.Eventually(t, func() bool { return listener.called.Load() >= 1 },
		time.Second, 10*time.Millisecond)
}

func TestWatcherAddFailsForNotExistingPath(t *testing.T) {
	// GIVEN
	w, err := newWatcher(zerolog.Nop())
	require.NoError(t, err)

	t.Cleanup(func() { _ = w.stop(t.Context()) })

	// WHEN
	err = w.Add(filepath.Join(t.TempDir(), "no-such-file"), &testListener{})

	// THEN
	require.Error(t, err)
}
