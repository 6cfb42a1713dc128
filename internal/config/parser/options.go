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

package parser

import (
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

type ConfigValidator func(configPath string) error

type opts struct {
	configFile            string
	defaultConfigFileName string
	configLookupDirs      []string
	envPrefix             string
	decodeHooks           []mapstructure.DecodeHookFunc
	validate              ConfigValidator
}

type Option func(*opts)

func WithConfigFile(file string) Option {
	return func(o *opts) {
		configFile := strings.TrimSpace(file)
		if len(configFile) != 0 {
			o.configFile = configFile
		}
	}
}

func WithDefaultConfigFilename(name string) Option {
	return func(o *opts) {
		fileName := strings.TrimSpace(name)
		if len(fileName) != 0 {
			o.defaultConfigFileName = fileName
		}
	}
}

func WithConfigLookupDir(dir string) Option {
	return func(o *opts) {
		dir = strings.TrimSpace(dir)
		if len(dir) != 0 {
			o.configLookupDirs = append(o.configLookupDirs, dir)
		}
	}
}

// WithEnvPrefix sets the prefix of environment variables considered while loading. Only
// variables with this prefix are taken into account.
func WithEnvPrefix(prefix string) Option {
	return func(o *opts) {
		o.envPrefix = prefix
	}
}

func WithDecodeHookFunc(hook mapstructure.DecodeHookFunc) Option {
	return func(o *opts) {
		if hook != nil {
			o.decodeHooks = append(o.decodeHooks, hook)
		}
	}
}

func WithConfigValidator(validator ConfigValidator) Option {
	return func(o *opts) {
		if validator != nil {
			o.validate = validator
		}
	}
}
