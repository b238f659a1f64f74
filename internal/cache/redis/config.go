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

	"github.com/inhies/go-bytesize"
	dec "github.com/go-viper/mapstructure/v2"

	"github.com/dadrus/kvasir/internal/kvasir"
	"github.com/dadrus/kvasir/internal/x/errorchain"
)

type clientCache struct {
	Disabled          bool              `mapstructure:"disabled"`
	TTL               time.Duration     `mapstructure:"ttl"`
	SizePerConnection bytesize.ByteSize `mapstructure:"size_per_connection"`
}

type credentials struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type bufferLimit struct {
	Read  bytesize.ByteSize `mapstructure:"read"`
	Write bytesize.ByteSize `mapstructure:"write"`
}

type baseConfig struct {
	Credentials   credentials   `mapstructure:"credentials"`
	ClientCache   clientCache   `mapstructure:"client_cache"`
	BufferLimit   bufferLimit   `mapstructure:"buffer_limit"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	MaxFlushDelay time.Duration `mapstructure:"max_flush_delay"`
}

func decodeConfig(input map[string]any, output any) error {
	decoder, err := dec.NewDecoder(&dec.DecoderConfig{
		DecodeHook: dec.ComposeDecodeHookFunc(
			dec.StringToTimeDurationHookFunc(),
			dec.TextUnmarshallerHookFunc(),
		),
		Result:      output,
		ErrorUnused: true,
	})
	if err != nil {
		return errorchain.NewWithMessage(kvasir.ErrInternal,
			"failed to create decoder for the redis cache configuration").CausedBy(err)
	}

	if err = decoder.Decode(input); err != nil {
		return errorchain.NewWithMessage(kvasir.ErrConfiguration,
			"failed decoding redis cache config").CausedBy(err)
	}

	return nil
}
