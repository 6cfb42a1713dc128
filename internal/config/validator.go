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
	"bytes"
	"io"
	"os"

	"github.com/drone/envsubst/v2"
	"github.com/knadh/koanf/maps"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/dadrus/pathrouter/internal/pathrouter"
	"github.com/dadrus/pathrouter/internal/x/errorchain"
	"github.com/dadrus/pathrouter/schema"
)

// ValidateConfig checks the configuration file at configPath against the configuration schema.
func ValidateConfig(configPath string) error {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return errorchain.NewWithMessage(pathrouter.ErrConfiguration,
			"could not read config file").CausedBy(err)
	}

	if len(raw) == 0 {
		return errorchain.NewWithMessage(pathrouter.ErrConfiguration, "config file is empty")
	}

	content, err := envsubst.EvalEnv(string(raw))
	if err != nil {
		return errorchain.NewWithMessage(pathrouter.ErrConfiguration,
			"failed to substitute environment variables in config file").CausedBy(err)
	}

	return ValidateConfigSchema(bytes.NewBufferString(content))
}

func ValidateConfigSchema(src io.Reader) error {
	var conf map[string]any

	err := yaml.NewDecoder(src).Decode(&conf)
	if err != nil {
		return errorchain.NewWithMessage(pathrouter.ErrConfiguration,
			"failed to parse config").CausedBy(err)
	}

	compiledSchema, err := compileSchema("config.schema.json", schema.ConfigSchema)
	if err != nil {
		return errorchain.NewWithMessage(pathrouter.ErrInternal,
			"failed to compile JSON schema").CausedBy(err)
	}

	maps.IntfaceKeysToStrings(conf)

	if err = compiledSchema.Validate(conf); err != nil {
		return errorchain.New(pathrouter.ErrConfiguration).CausedBy(err)
	}

	return nil
}

func compileSchema(url string, schemaContent []byte) (*jsonschema.Schema, error) {
	configSchema, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaContent))
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, configSchema); err != nil {
		return nil, err
	}

	return compiler.Compile(url)
}
