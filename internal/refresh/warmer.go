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
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"github.com/dadrus/kvasir/internal/kvasir"
	"github.com/dadrus/kvasir/internal/sources"
	"github.com/dadrus/kvasir/internal/x/errorchain"
)

// Warmer keeps the cache populated by periodically refetching all
// known resources.
type Warmer struct {
	client    *sources.Client
	interval  time.Duration
	log       zerolog.Logger
	scheduler gocron.Scheduler
}

func NewWarmer(client *sources.Client, interval time.Duration, logger zerolog.Logger) (*Warmer, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, errorchain.NewWithMessage(kvasir.ErrInternal,
			"failed creating refresh scheduler").CausedBy(err)
	}

	return &Warmer{
		client:    client,
		interval:  interval,
		log:       logger,
		scheduler: scheduler,
	}, nil
}

func (w *Warmer) Start(_ context.Context) error {
	_, err := w.scheduler.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(w.refresh),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return errorchain.NewWithMessage(kvasir.ErrInternal,
			"failed scheduling cache refresh").CausedBy(err)
	}

	w.scheduler.Start()

	w.log.Info().Dur("_interval", w.interval).Msg("Cache refresh scheduled")

	return nil
}

func (w *Warmer) Stop(_ context.Context) error {
	w.log.Info().Msg("Tearing down cache refresh")

	return w.scheduler.Shutdown()
}

func (w *Warmer) refresh() {
	ctx := w.log.WithContext(context.Background())

	for _, resource := range w.client.Resources() {
		if _, err := w.client.Fetch(ctx, resource, nil); err != nil {
			w.log.Warn().Err(err).
				Str("_resource", resource).
				Msg("Failed refreshing resource")
		}
	}
}
