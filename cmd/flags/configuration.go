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

package flags

import (
	"github.com/spf13/cobra"

	"github.com/dadrus/pathrouter/internal/config"
	"github.com/dadrus/pathrouter/internal/validation"
)

// Configuration loads the configuration referenced by the global flags. A route set source
// given on the command line takes precedence over the configured one.
func Configuration(cmd *cobra.Command) (*config.Configuration, validation.Validator, error) {
	configPath, _ := cmd.Flags().GetString(Config)
	envPrefix, _ := cmd.Flags().GetString(EnvironmentConfigPrefix)

	validator, err := validation.NewValidator(
		validation.WithTagValidator(validation.RegexpGroups{}),
		validation.WithErrorTranslator(validation.RegexpGroups{}),
	)
	if err != nil {
		return nil, nil, err
	}

	conf, err := config.NewConfiguration(
		config.EnvVarPrefix(envPrefix),
		config.ConfigurationPath(configPath),
		validator,
	)
	if err != nil {
		return nil, nil, err
	}

	if routes, _ := cmd.Flags().GetString(Routes); len(routes) != 0 {
		conf.Routes.Source = routes
	}

	return conf, validator, nil
}
