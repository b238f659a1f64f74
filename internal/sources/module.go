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

package sources

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/dadrus/kvasir/internal/app"
	"github.com/dadrus/kvasir/internal/cache"
	"github.com/dadrus/kvasir/internal/config"
)

// nolint: gochecknoglobals
var Module = fx.Options(
	fx.Provide(
		func(ctx app.Context) Resolver { return NewResolver(ctx.Config().Sources) },
		newClient,
	),
	fx.Invoke(registerStaticDataWatcher),
)

func newClient(ctx app.Context, resolver Resolver, cch cache.Cache) *Client {
	conf := ctx.Config()

	known := make([]string, 0, len(conf.Sources.Endpoints)+len(conf.Charts))
	for name := range conf.Sources.Endpoints {
		known = append(known, name)
	}

	for _, chart := range conf.Charts {
		known = append(known, chart.Resource)
	}

	return NewClient(resolver, cch,
		WithTTL(conf.Sources.TTL),
		WithTimeout(conf.Sources.Timeout),
		WithRetry(conf.Sources.Retry),
		WithDefaultHeaders(conf.Sources.Headers),
		WithKnownResources(known...),
	)
}

// In static mode the cache must not outlive the exports it was filled
// from. Any change below the data directory flushes it.
func registerStaticDataWatcher(ctx app.Context, cch cache.Cache) error {
	conf := ctx.Config()

	if conf.Sources.Mode != config.StaticMode {
		return nil
	}

	return ctx.Watcher().Add(conf.Sources.StaticDir, &flushListener{cch: cch})
}

type flushListener struct {
	cch cache.Cache
}

func (l *flushListener) OnChanged(logger zerolog.Logger) {
	if err := l.cch.Clear(context.Background()); err != nil {
		logger.Warn().Err(err).Msg("Failed flushing cache after static data change")
	} else {
		logger.Info().Msg("Static data changed, cache flushed")
	}
}
