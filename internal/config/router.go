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
	"regexp"

	"github.com/dadrus/pathrouter/routing"
)

type RouterConfig struct {
	Separator       string `koanf:"separator"        validate:"required"`
	VariablePattern string `koanf:"variable_pattern" validate:"required,regexp_groups=1"`
}

// Options converts the settings to router options. It expects a validated configuration.
func (c RouterConfig) Options() []routing.Option {
	return []routing.Option{
		routing.WithSeparator(c.Separator),
		routing.WithVariablePattern(regexp.MustCompile(c.VariablePattern)),
	}
}

type RoutesConfig struct {
	// Source is a route set file or a directory with route set files.
	Source string `koanf:"src"`
	Watch  bool   `koanf:"watch"`
}
