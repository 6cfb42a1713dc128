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

package routeset

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/dadrus/pathrouter/internal/config"
	"github.com/dadrus/pathrouter/routing"
)

// Module provides a Registry[T] kept in sync with the configured route set files. It requires
// a CallbackFactory[T] to be supplied. A routing.Observer is used if present.
func Module[T any]() fx.Option {
	return fx.Options(
		fx.Provide(
			newParser,
			newRegistry[T],
			newProvider[T],
		),
		fx.Invoke(registerHooks[T]),
	)
}

func newParser() (*Parser, error) { return NewParser(true) }

type registryArgs struct {
	fx.In

	Config   config.RouterConfig
	Logger   zerolog.Logger
	Observer routing.Observer `optional:"true"`
}

func newRegistry[T any](args registryArgs) (*Registry[T], error) {
	return NewRegistry[T](args.Logger, args.Observer, args.Config.Options()...)
}

func newProvider[T any](
	conf config.RoutesConfig,
	parser *Parser,
	factory CallbackFactory[T],
	registry *Registry[T],
	logger zerolog.Logger,
) (*FileProvider[T], error) {
	return NewFileProvider(conf, parser, factory, registry, logger)
}

func registerHooks[T any](lc fx.Lifecycle, provider *FileProvider[T]) {
	lc.Append(fx.Hook{OnStart: provider.Start, OnStop: provider.Stop})
}
