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

package match

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/dadrus/pathrouter/cmd/flags"
	"github.com/dadrus/pathrouter/internal/logging"
	"github.com/dadrus/pathrouter/internal/routeset"
)

func NewMatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "match [path]...",
		Short:   "Matches paths against route sets",
		Long:    "Matches every given path against the route sets and prints a JSON line for every fired route.",
		Args:    cobra.MinimumNArgs(1),
		Example: "pathrouter match -r routes.yaml /action/42/edit",
		Run: func(cmd *cobra.Command, args []string) {
			if err := matchPaths(cmd, args); err != nil {
				cmd.PrintErrf("%v\n", err)

				os.Exit(1)
			}
		},
	}

	flags.RegisterRoutingFlags(cmd)

	return cmd
}

func matchPaths(cmd *cobra.Command, paths []string) error {
	detail, _ := cmd.Flags().GetString(flags.Detail)
	async, _ := cmd.Flags().GetBool(flags.Async)

	conf, _, err := flags.Configuration(cmd)
	if err != nil {
		return err
	}

	conf.Routes.Watch = false

	logger := logging.NewLogger(conf.Log, cmd.ErrOrStderr())

	parser, err := routeset.NewParser(true)
	if err != nil {
		return err
	}

	registry, err := routeset.NewRegistry[string](logger, nil, conf.Router.Options()...)
	if err != nil {
		return err
	}

	provider, err := routeset.NewFileProvider(conf.Routes, parser, NewPrinter(cmd.OutOrStdout()), registry, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if err = provider.Start(ctx); err != nil {
		return err
	}

	defer provider.Stop(ctx) //nolint:errcheck

	for _, path := range paths {
		m := registry.Match(path, detail)
		if m.Length() == 0 {
			cmd.PrintErrf("no route matched %s\n", path)

			continue
		}

		if err = Run(ctx, m, async); err != nil {
			return err
		}
	}

	return nil
}
