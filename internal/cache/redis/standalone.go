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

package redis

import (
	"time"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/rueidisotel"

	"github.com/dadrus/kvasir/internal/app"
	"github.com/dadrus/kvasir/internal/cache"
	"github.com/dadrus/kvasir/internal/kvasir"
	"github.com/dadrus/kvasir/internal/x/errorchain"
)

const defaultClientCacheTTL = 5 * time.Minute

// by intention. Used only during application bootstrap.
func init() { // nolint: gochecknoinits
	cache.Register("redis", cache.FactoryFunc(NewStandaloneCache))
}

func NewStandaloneCache(_ app.Context, conf map[string]any) (cache.Cache, error) {
	type Config struct {
		baseConfig `mapstructure:",squash"`

		Address string `mapstructure:"address" validate:"required"`
		DB      int    `mapstructure:"db"`
	}

	cfg := Config{
		baseConfig: baseConfig{ClientCache: clientCache{TTL: defaultClientCacheTTL}},
	}

	if err := decodeConfig(conf, &cfg); err != nil {
		return nil, err
	}

	if len(cfg.Address) == 0 {
		return nil, errorchain.NewWithMessage(kvasir.ErrConfiguration,
			"redis cache requires an address")
	}

	opts := rueidis.ClientOption{
		ClientName:          "kvasir",
		InitAddress:         []string{cfg.Address},
		SelectDB:            cfg.DB,
		Username:            cfg.Credentials.Username,
		Password:            cfg.Credentials.Password,
		DisableCache:        cfg.ClientCache.Disabled,
		CacheSizeEachConn:   int(cfg.ClientCache.SizePerConnection),
		WriteBufferEachConn: int(cfg.BufferLimit.Write),
		ReadBufferEachConn:  int(cfg.BufferLimit.Read),
		ConnWriteTimeout:    cfg.WriteTimeout,
		MaxFlushDelay:       cfg.MaxFlushDelay,
	}

	client, err := rueidisotel.NewClient(opts)
	if err != nil {
		return nil, errorchain.NewWithMessage(kvasir.ErrInternal,
			"failed creating redis client").CausedBy(err)
	}

	return &redisCache{c: client, ttl: cfg.ClientCache.TTL}, nil
}
