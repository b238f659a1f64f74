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

package config

import (
	"github.com/go-viper/mapstructure/v2"

	"github.com/dadrus/kvasir/internal/config/parser"
	"github.com/dadrus/kvasir/internal/kvasir"
	"github.com/dadrus/kvasir/internal/validation"
	"github.com/dadrus/kvasir/internal/x/errorchain"
)

type (
	// EnvVarPrefix is the prefix of environment variables, which can be used to
	// override the configuration from the config file.
	EnvVarPrefix string

	// ConfigurationPath is the path to the configuration file.
	ConfigurationPath string
)

type Configuration struct {
	Log       LoggingConfig   `koanf:"log"`
	Serve     ServeConfig     `koanf:"serve"`
	Cache     CacheConfig     `koanf:"cache"`
	Sources   SourcesConfig   `koanf:"sources"`
	Charts    []ChartSpec     `koanf:"charts"`
	Live      LiveConfig      `koanf:"live"`
	Refresh   RefreshConfig   `koanf:"refresh"`
	Tracing   TracingConfig   `koanf:"tracing"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Profiling ProfilingConfig `koanf:"profiling"`
}

func NewConfiguration(
	envPrefix EnvVarPrefix,
	configPath ConfigurationPath,
	validator *validation.Validator,
) (*Configuration, error) {
	// copy the defaults, the loader mutates the struct
	conf := defaultConfiguration

	loader := parser.New(
		parser.WithConfigFile(string(configPath)),
		parser.WithDefaultConfigFilename("kvasir.yaml"),
		parser.WithConfigLookupDir("."),
		parser.WithConfigLookupDir("$HOME/.config/kvasir"),
		parser.WithConfigLookupDir("/etc/kvasir"),
		parser.WithEnvPrefix(string(envPrefix)),
		parser.WithConfigValidator(ValidateConfigSchema),
		parser.WithDecodeHookFunc(mapstructure.StringToTimeDurationHookFunc()),
		parser.WithDecodeHookFunc(mapstructure.StringToSliceHookFunc(",")),
		parser.WithDecodeHookFunc(mapstructure.TextUnmarshallerHookFunc()),
		parser.WithDecodeHookFunc(logLevelDecodeHookFunc),
		parser.WithDecodeHookFunc(logFormatDecodeHookFunc),
	)

	if err := loader.Load(&conf); err != nil {
		return nil, errorchain.NewWithMessage(kvasir.ErrConfiguration,
			"failed loading configuration").CausedBy(err)
	}

	if err := validator.ValidateStruct(conf); err != nil {
		return nil, errorchain.New(kvasir.ErrConfiguration).CausedBy(err)
	}

	return &conf, nil
}
