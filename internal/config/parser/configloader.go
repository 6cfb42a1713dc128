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
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/v2"

	"github.com/dadrus/pathrouter/internal/pathrouter"
	"github.com/dadrus/pathrouter/internal/x/errorchain"
)

type ConfigLoader interface {
	Load(config any) error
}

func New(options ...Option) ConfigLoader {
	loader := &configLoader{o: opts{
		decodeHooks: []mapstructure.DecodeHookFunc{
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		},
	}}

	for _, opt := range options {
		opt(&loader.o)
	}

	return loader
}

type configLoader struct {
	o opts
}

// Load fills config, which must be a pointer to a struct. The values already present in config
// serve as defaults, which are overridden by the configuration file (if any) and then by the
// environment variables.
func (c *configLoader) Load(config any) error {
	configFile, err := c.configFile()
	if err != nil {
		return err
	}

	if len(configFile) != 0 && c.o.validate != nil {
		if err = c.o.validate(configFile); err != nil {
			return err
		}
	}

	parser, err := koanfFromStruct(config)
	if err != nil {
		return err
	}

	if len(configFile) != 0 {
		konf, err := koanfFromYaml(configFile)
		if err != nil {
			return err
		}

		if err = parser.Merge(konf); err != nil {
			return errorchain.NewWithMessage(pathrouter.ErrInternal, "failed to merge config file").
				CausedBy(err)
		}
	}

	konf, err := koanfFromEnv(c.o.envPrefix)
	if err != nil {
		return err
	}

	if err = parser.Merge(konf); err != nil {
		return errorchain.NewWithMessage(pathrouter.ErrInternal, "failed to merge environment").
			CausedBy(err)
	}

	if err = parser.UnmarshalWithConf("", config, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.ComposeDecodeHookFunc(c.o.decodeHooks...),
			Metadata:         nil,
			Result:           config,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return errorchain.NewWithMessage(pathrouter.ErrConfiguration, "failed to decode config").
			CausedBy(err)
	}

	return nil
}

func (c *configLoader) configFile() (string, error) {
	if len(c.o.configFile) != 0 {
		if _, err := os.Stat(c.o.configFile); err != nil {
			return "", errorchain.NewWithMessagef(pathrouter.ErrConfiguration,
				"config file %s not accessible", c.o.configFile).CausedBy(err)
		}

		return c.o.configFile, nil
	}

	if len(c.o.defaultConfigFileName) == 0 {
		return "", nil
	}

	for _, confDir := range c.o.configLookupDirs {
		filePath := filepath.Join(confDir, c.o.defaultConfigFileName)
		if _, err := os.Stat(filePath); err == nil {
			return filePath, nil
		}
	}

	return "", nil
}
