// Copyright 2022-2025 Dimitrij Drus <dadrus@gmx.de>
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

package internal

import (
	"go.uber.org/fx"

	"github.com/dadrus/kvasir/internal/app"
	cachemodule "github.com/dadrus/kvasir/internal/cache/module"
	"github.com/dadrus/kvasir/internal/charts"
	"github.com/dadrus/kvasir/internal/live"
	"github.com/dadrus/kvasir/internal/handler/profiling"
	"github.com/dadrus/kvasir/internal/otel"
	"github.com/dadrus/kvasir/internal/refresh"
	"github.com/dadrus/kvasir/internal/sources"
	"github.com/dadrus/kvasir/internal/watcher"
)

// nolint: gochecknoglobals
var Module = fx.Options(
	watcher.Module,
	app.Module,
	otel.Module,
	cachemodule.Module,
	sources.Module,
	charts.Module,
	live.Module,
	refresh.Module,
	profiling.Module,
)
