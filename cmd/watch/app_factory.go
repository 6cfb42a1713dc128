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
	"bytes"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/dadrus/pathrouter/cmd/flags"
	"github.com/dadrus/pathrouter/internal/config"
	"github.com/dadrus/pathrouter/internal/logging"
	"github.com/dadrus/pathrouter/internal/validation"
	"github.com/dadrus/pathrouter/version"
)

func createApp(cmd *cobra.Command, mainModule fx.Option) (*fx.App, error) {
	cli := bytes.NewBufferString(cmd.CommandPath())

	cmd.Flags().Visit(func(flag *pflag.Flag) {
		cli.WriteString(" --")
		cli.WriteString(flag.Name)

		if flag.Value.Type() != "bool" {
			cli.WriteString(" ")
			cli.WriteString(flag.Value.String())
		}
	})

	cfg, validator, err := flags.Configuration(cmd)
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(cfg.Log, cmd.ErrOrStderr())
	logger.Info().
		Str("_version", version.Version).
		Str("_cli", cli.String()).
		Msg("Starting pathrouter")

	app := fx.New(
		fx.Supply(
			cfg,
			logger,
			fx.Annotate(validator, fx.As(new(validation.Validator))),
		),
		fx.WithLogger(func(logger zerolog.Logger) fxevent.Logger {
			return &eventLogger{l: logger}
		}),
		config.Module,
		mainModule,
	)

	return app, app.Err()
}
