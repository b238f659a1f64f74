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

package otel

import (
	"go.opentelemetry.io/contrib/instrumentation/host"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.uber.org/fx"

	"github.com/dadrus/kvasir/internal/config"
)

// nolint: gochecknoglobals
var Module = fx.Options(
	fx.Provide(newResource),
	fx.Invoke(initTraceProvider),
	fx.Invoke(initMeterProvider),
	fx.Invoke(initProcessInstrumentation),
)

func initProcessInstrumentation(conf *config.Configuration) error {
	if !conf.Metrics.Enabled {
		return nil
	}

	if err := runtime.Start(); err != nil {
		return err
	}

	return host.Start()
}
