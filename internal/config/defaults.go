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

package config

import (
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/rs/zerolog"
)

const (
	defaultReadTimeout  = 5 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 2 * time.Minute

	defaultBufferLimit = 4 * bytesize.KB

	defaultSourceTTL     = 5 * time.Minute
	defaultSourceTimeout = 10 * time.Second

	defaultHandshakeTimeout = 10 * time.Second
	defaultBackoffMin       = time.Second
	defaultBackoffMax       = 30 * time.Second
	defaultAlertHistory     = 100

	defaultRefreshInterval = 5 * time.Minute
)

// nolint: gochecknoglobals
var defaultConfiguration = Configuration{
	Log: LoggingConfig{
		Level:  zerolog.ErrorLevel,
		Format: LogTextFormat,
	},
	Serve: ServeConfig{
		Host: "",
		Port: 4476, // nolint: mnd
		Timeout: Timeout{
			Read:  defaultReadTimeout,
			Write: defaultWriteTimeout,
			Idle:  defaultIdleTimeout,
		},
		BufferLimit: BufferLimit{
			Read:  defaultBufferLimit,
			Write: defaultBufferLimit,
		},
		Respond: RespondConfig{Verbose: false},
	},
	Cache: CacheConfig{Type: "in-memory"},
	Sources: SourcesConfig{
		Mode:      LiveMode,
		TTL:       defaultSourceTTL,
		Timeout:   defaultSourceTimeout,
		Endpoints: map[string]string{},
	},
	Live: LiveConfig{
		Enabled:          false,
		HandshakeTimeout: defaultHandshakeTimeout,
		Backoff: BackoffConfig{
			Min: defaultBackoffMin,
			Max: defaultBackoffMax,
		},
		AlertHistory: defaultAlertHistory,
	},
	Refresh: RefreshConfig{
		Enabled:  false,
		Interval: defaultRefreshInterval,
	},
	Tracing: TracingConfig{Enabled: true},
	Metrics: MetricsConfig{Enabled: true},
	Profiling: ProfilingConfig{
		Enabled: false,
		Host:    "127.0.0.1",
		Port:    10251, // nolint: mnd
	},
}
