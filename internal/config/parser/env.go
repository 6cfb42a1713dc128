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

	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/dadrus/pathrouter/internal/pathrouter"
	"github.com/dadrus/pathrouter/internal/x/errorchain"
)

// toRealType lets the yaml parser guess the type of the given value.
func toRealType(val string) any {
	var parsed map[string]any

	if err := yaml.Unmarshal([]byte("val: "+val), &parsed); err != nil {
		return val
	}

	return parsed["val"]
}

// envKey maps an environment variable name to a config key. A single underscore
// separates nesting levels, a double one stands for an underscore in the key,
// e.g. PATHROUTER_ROUTER_VARIABLE__PATTERN becomes router.variable_pattern.
func envKey(prefix, name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, prefix))
	key = strings.ReplaceAll(key, "__", `\:\`)
	key = strings.ReplaceAll(key, "_", ".")

	return strings.ReplaceAll(key, `\:\`, "_")
}

func koanfFromEnv(prefix string) (*koanf.Koanf, error) {
	parser := koanf.New(".")

	if len(prefix) == 0 {
		return parser, nil
	}

	provider := env.Provider(".", env.Opt{
		Prefix: prefix,
		TransformFunc: func(key, val string) (string, any) {
			return envKey(prefix, key), toRealType(val)
		},
	})

	if err := parser.Load(provider, nil); err != nil {
		return nil, errorchain.NewWithMessage(pathrouter.ErrConfiguration,
			"failed to parse environment variables to config").CausedBy(err)
	}

	return parser, nil
}
