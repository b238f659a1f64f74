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

type LiveConfig struct {
	Enabled          bool          `koanf:"enabled"`
	URL              string        `koanf:"url" validate:"required_if=Enabled true,omitempty,url"`
	HandshakeTimeout time.Duration `koanf:"handshake_timeout,string"`
	Backoff          BackoffConfig `koanf:"backoff"`
	AlertHistory     int           `koanf:"alert_history" validate:"gte=1"`
}

type BackoffConfig struct {
	Min time.Duration `koanf:"min,string" mapstructure:"min"`
	Max time.Duration `koanf:"max,string" mapstructure:"max"`
}
