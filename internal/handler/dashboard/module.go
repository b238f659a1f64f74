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

package dashboard

import (
	"go.uber.org/fx"

	"github.com/dadrus/kvasir/internal/app"
	"github.com/dadrus/kvasir/internal/charts"
	"github.com/dadrus/kvasir/internal/handler/fxlcm"
	"github.com/dadrus/kvasir/internal/live"
	"github.com/dadrus/kvasir/internal/sources"
)

// nolint: gochecknoglobals
var Module = fx.Invoke(registerHooks)

type hooksArgs struct {
	fx.In

	Lifecycle fx.Lifecycle
	App       app.Context
	Client    *sources.Client
	Charts    charts.Adapter
	Live      *live.Listener
}

func registerHooks(args hooksArgs) {
	conf := args.App.Config()
	logger := args.App.Logger()

	lcm := &fxlcm.LifecycleManager{
		ServiceName:    "dashboard",
		ServiceAddress: conf.Serve.Address(),
		Server:         newApp(conf, logger, args.Client, args.Charts, args.Live),
		Logger:         logger,
	}

	args.Lifecycle.Append(
		fx.Hook{
			OnStart: lcm.Start,
			OnStop:  lcm.Stop,
		},
	)
}
