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

import "go.uber.org/fx"

// Module makes the parts of a supplied *Configuration available to their consumers.
var Module = fx.Options( // nolint: gochecknoglobals
	fx.Provide(
		LogConfiguration,
		func(conf *Configuration) RouterConfig { return conf.Router },
		func(conf *Configuration) RoutesConfig { return conf.Routes },
		func(conf *Configuration) MetricsConfig { return conf.Metrics },
	),
)
