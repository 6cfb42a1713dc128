// Copyright 2025 Dimitrij Drus <dadrus@gmx.de>
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
	"github.com/dadrus/pathrouter/internal/config/parser"
	"github.com/dadrus/pathrouter/internal/pathrouter"
	"github.com/dadrus/pathrouter/internal/validation"
	"github.com/dadrus/pathrouter/internal/x/errorchain"
)

const DefaultEnvVarPrefix = "PATHROUTER_"

type (
	EnvVarPrefix      string
	ConfigurationPath string
)

type Configuration struct {
	Log     LoggingConfig `koanf:"log"`
	Router  RouterConfig  `koanf:"router"`
	Routes  RoutesConfig  `koanf:"routes"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// NewConfiguration loads the configuration from the file at configFile (or pathrouter.yaml in
// the working directory or /etc/pathrouter if configFile is empty) and from environment
// variables starting with envPrefix. Values not set by either source keep their defaults.
func NewConfiguration(
	envPrefix EnvVarPrefix,
	configFile ConfigurationPath,
	validator validation.Validator,
) (*Configuration, error) {
	result := defaultConfig()

	err := parser.New(
		parser.WithDecodeHookFunc(logLevelDecodeHookFunc),
		parser.WithDecodeHookFunc(logFormatDecodeHookFunc),
		parser.WithConfigFile(string(configFile)),
		parser.WithDefaultConfigFilename("pathrouter.yaml"),
		parser.WithConfigLookupDir("."),
		parser.WithConfigLookupDir("/etc/pathrouter"),
		parser.WithEnvPrefix(string(envPrefix)),
		parser.WithConfigValidator(ValidateConfig),
	).Load(&result)
	if err != nil {
		return nil, errorchain.NewWithMessage(pathrouter.ErrConfiguration,
			"failed to load configuration").CausedBy(err)
	}

	if err = validator.ValidateStruct(result); err != nil {
		return nil, errorchain.NewWithMessage(pathrouter.ErrConfiguration,
			"invalid configuration").CausedBy(err)
	}

	return &result, nil
}
