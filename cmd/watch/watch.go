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

package watch

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/dadrus/pathrouter/cmd/flags"
	"github.com/dadrus/pathrouter/cmd/match"
	"github.com/dadrus/pathrouter/internal/config"
	"github.com/dadrus/pathrouter/internal/metrics"
	"github.com/dadrus/pathrouter/internal/routeset"
)

func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Matches paths read from stdin against hot reloaded route sets",
		Long: "Loads the route sets and keeps them up to date while running. Every line read from stdin\n" +
			"is matched and a JSON line is printed for every fired route. Stops at the end of input.",
		Example: "pathrouter watch -r ./routes < paths.txt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := createApp(cmd, watchModule(cmd))
			if err != nil {
				return err
			}

			app.Run()

			return nil
		},
	}

	flags.RegisterRoutingFlags(cmd)

	return cmd
}

func watchModule(cmd *cobra.Command) fx.Option {
	detail, _ := cmd.Flags().GetString(flags.Detail)
	async, _ := cmd.Flags().GetBool(flags.Async)

	return fx.Options(
		fx.Decorate(func(conf config.RoutesConfig) config.RoutesConfig {
			conf.Watch = true

			return conf
		}),
		fx.Provide(func() routeset.CallbackFactory[string] { return match.NewPrinter(cmd.OutOrStdout()) }),
		routeset.Module[string](),
		metrics.Module,
		fx.Invoke(func(
			lc fx.Lifecycle,
			sd fx.Shutdowner,
			registry *routeset.Registry[string],
			logger zerolog.Logger,
		) {
			s := &session{
				in:     cmd.InOrStdin(),
				errOut: cmd.ErrOrStderr(),
				detail: detail,
				async:  async,
				r:      registry,
				sd:     sd,
				l:      logger,
			}

			lc.Append(fx.Hook{OnStart: s.Start, OnStop: s.Stop})
		}),
	)
}
