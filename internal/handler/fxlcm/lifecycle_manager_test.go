// Copyright 2023 Dimitrij Drus <dadrus@gmx.de>
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

package fxlcm

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/kvasir/internal/kvasir"
	"github.com/dadrus/kvasir/internal/x/testsupport"
)

func TestLifecycleManagerStartAndStop(t *testing.T) {
	// GIVEN
	port, err := testsupport.GetFreePort()
	require.NoError(t, err)

	tl := &testsupport.TestingLog{TB: t}
	logger := zerolog.New(zerolog.TestWriter{T: tl})

	lm := &LifecycleManager{
		ServiceName:    "test",
		ServiceAddress: fmt.Sprintf("127.0.0.1:%d", port),
		Logger:         logger,
		Server: &http.Server{
			Handler: http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
				rw.WriteHeader(http.StatusNoContent)
			}),
			ReadHeaderTimeout: time.Second,
		},
	}

	// WHEN
	require.NoError(t, lm.Start(t.Context()))

	// THEN
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/", port))
		if err != nil {
			return false
		}

		defer resp.Body.Close()

		return resp.StatusCode == http.StatusNoContent
	}, time.Second, 10*time.Millisecond)

	// WHEN
	require.NoError(t, lm.Stop(t.Context()))

	// THEN
	_, err = http.Get(fmt.Sprintf("http://127.0.0.1:%d/", port))
	require.Error(t, err)

	assert.Contains(t, tl.CollectedLog(), "Starting listening")
	assert.Contains(t, tl.CollectedLog(), "Tearing down service")
}

func TestLifecycleManagerStartWithUnusableAddress(t *testing.T) {
	lm := &LifecycleManager{
		ServiceName:    "test",
		ServiceAddress: "not:a:valid:address",
		Logger:         zerolog.Nop(),
		Server:         &http.Server{ReadHeaderTimeout: time.Second},
	}

	err := lm.Start(t.Context())

	require.Error(t, err)
	require.ErrorIs(t, err, kvasir.ErrInternal)
	assert.Contains(t, err.Error(), "test service")
}
