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

package noop

import (
	"context"
	"time"

	"github.com/dadrus/kvasir/internal/app"
	"github.com/dadrus/kvasir/internal/cache"
)

// by intention. Used only during application bootstrap.
func init() { // nolint: gochecknoinits
	cache.Register("noop", cache.FactoryFunc(
		func(_ app.Context, _ map[string]any) (cache.Cache, error) {
			return &Cache{}, nil
		},
	))
}

// Cache never stores anything. Every lookup is a miss.
type Cache struct{}

func (Cache) Start(_ context.Context) error { return nil }

func (Cache) Stop(_ context.Context) error { return nil }

func (Cache) Get(_ context.Context, _ string) ([]byte, error) {
	return nil, cache.ErrNoCacheEntry
}

func (Cache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error { return nil }

func (Cache) Delete(_ context.Context, _ string) error { return nil }

func (Cache) Clear(_ context.Context) error { return nil }
