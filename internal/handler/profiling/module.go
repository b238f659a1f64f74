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

package profiling

import (
	"go.uber.org/fx"

	"github.com/dadrus/kvasir/internal/app"
	"github.com/dadrus/kvasir/internal/handler/fxlcm"
)

// Module is invoked on app bootstrap.
// nolint: gochecknoglobals
var Module = fx.Invoke(registerHooks)

func registerHooks(lc fx.Lifecycle, ctx app.Context) {
	conf := ctx.Config().Profiling
	if !conf.Enabled {
		return
	}

	lcm := &fxlcm.LifecycleManager{
		ServiceName:    "profiling",
		ServiceAddress: conf.Address(),
		Server:         newApp(ctx.Logger()),
		Logger:         ctx.Logger(),
	}

	lc.Append(fx.Hook{
		OnStart: lcm.Start,
		OnStop:  lcm.Stop,
	})
}
