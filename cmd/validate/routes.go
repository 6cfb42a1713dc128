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

package validate

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dadrus/pathrouter/cmd/flags"
	"github.com/dadrus/pathrouter/internal/routeset"
	"github.com/dadrus/pathrouter/routing"
)

func NewValidateRoutesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "routes [path to route set]",
		Short:   "Validates route sets",
		Long:    "Validates a route set file or all route set files of a directory, including their compatibility.",
		Args:    cobra.ExactArgs(1),
		Example: "pathrouter validate routes -c myconfig.yaml myroutes.yaml",
		Run: func(cmd *cobra.Command, args []string) {
			length, err := validateRoutes(cmd, args[0])
			if err != nil {
				cmd.PrintErrf("%v\n", err)

				os.Exit(1)
			}

			cmd.Printf("Route set is valid (%d entries)\n", length)
		},
	}
}

func validateRoutes(cmd *cobra.Command, src string) (int, error) {
	conf, _, err := flags.Configuration(cmd)
	if err != nil {
		return 0, err
	}

	conf.Routes.Source = src
	conf.Routes.Watch = false

	logger := zerolog.Nop()

	parser, err := routeset.NewParser(true)
	if err != nil {
		return 0, err
	}

	registry, err := routeset.NewRegistry[struct{}](logger, nil, conf.Router.Options()...)
	if err != nil {
		return 0, err
	}

	provider, err := routeset.NewFileProvider(conf.Routes, parser, noopCallback, registry, logger)
	if err != nil {
		return 0, err
	}

	if err = provider.Start(context.Background()); err != nil {
		return 0, err
	}

	return registry.Length(), provider.Stop(context.Background())
}

func noopCallback(_ *routeset.RouteSet, _ routeset.RouteDefinition) routing.Callback[struct{}] {
	return func(_ context.Context, _ *routing.Match[struct{}]) error { return nil }
}
