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

package metrics

import (
	"go.uber.org/fx"

	"github.com/dadrus/pathrouter/routing"
)

// Module provides a routing.Observer backed by prometheus and serves the collected
// metrics if enabled by configuration.
var Module = fx.Options( //nolint:gochecknoglobals
	fx.Provide(
		newRegistry,
		fx.Annotate(NewObserver, fx.As(new(routing.Observer))),
		newLifecycleManager,
	),
	fx.Invoke(func(lc fx.Lifecycle, lcm lifecycleManager) {
		lc.Append(fx.Hook{OnStart: lcm.Start, OnStop: lcm.Stop})
	}),
)
