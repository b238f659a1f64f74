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

package charts

import (
	"go.uber.org/fx"

	"github.com/dadrus/kvasir/internal/app"
)

// nolint: gochecknoglobals
var Module = fx.Provide(newAdapter)

func newAdapter(ctx app.Context) (Adapter, error) {
	conf := ctx.Config()
	logger := ctx.Logger()

	adpt, err := NewAdapter(conf.Charts)
	if err != nil {
		logger.Error().Err(err).Msg("Failed configuring charts")

		return nil, err
	}

	logger.Info().Int("_charts", len(conf.Charts)).Msg("Charts configured")

	return adpt, nil
}
