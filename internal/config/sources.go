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
)

type SourceMode string

const (
	LiveMode   SourceMode = "live"
	StaticMode SourceMode = "static"
)

func (m SourceMode) String() string { return string(m) }

// SourcesConfig describes where dashboard resources come from. In live
// mode resources are fetched from the backend API, in static mode from
// pre-rendered JSON documents on disk.
type SourcesConfig struct {
	Mode      SourceMode        `koanf:"mode"       validate:"required,oneof=live static"`
	BaseURL   string            `koanf:"base_url"   validate:"required_if=Mode live,omitempty,http_url"`
	StaticDir string            `koanf:"static_dir" validate:"required_if=Mode static"`
	TTL       time.Duration     `koanf:"ttl,string" validate:"gt=1s"`
	Timeout   time.Duration     `koanf:"timeout,string"`
	Retry     *RetryConfig      `koanf:"retry,omitempty"`
	Headers   map[string]string `koanf:"headers,omitempty"`
	Endpoints map[string]string `koanf:"endpoints,omitempty"`
}

type RetryConfig struct {
	MaxAttempts int           `koanf:"max_attempts" validate:"gte=1"`
	MinDelay    time.Duration `koanf:"min_delay,string"`
	MaxDelay    time.Duration `koanf:"max_delay,string"`
}
