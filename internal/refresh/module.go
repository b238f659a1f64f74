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

package refresh

import (
	"context"

	"go.uber.org/fx"

	"github.com/dadrus/kvasir/internal/app"
	"github.com/dadrus/kvasir/internal/sources"
)

// nolint: gochecknoglobals
var Module = fx.Invoke(registerWarmer)

func registerWarmer(lc fx.Lifecycle, ctx app.Context, client *sources.Client) error {
	conf := ctx.Config()

	if !conf.Refresh.Enabled {
		return nil
	}

	warmer, err := NewWarmer(client, conf.Refresh.Interval, ctx.Logger())
	if err != nil {
		return err
	}

	lc.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error { return warmer.Start(ctx) },
			OnStop:  func(ctx context.Context) error { return warmer.Stop(ctx) },
		},
	)

	return nil
}
