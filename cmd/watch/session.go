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
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/dadrus/pathrouter/cmd/match"
	"github.com/dadrus/pathrouter/internal/routeset"
)

// session matches every line read from in against the registry until in is exhausted.
type session struct {
	in     io.Reader
	errOut io.Writer
	detail string
	async  bool

	r      *routeset.Registry[string]
	sd     fx.Shutdowner
	l      zerolog.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

func (s *session) Start(_ context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())

	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		s.run(ctx)

		if err := s.sd.Shutdown(); err != nil {
			s.l.Warn().Err(err).Msg("Failed to shut down")
		}
	}()

	return nil
}

// Stop does not wait for the session to finish, since reading from in cannot be interrupted.
func (s *session) Stop(_ context.Context) error {
	s.cancel()

	return nil
}

func (s *session) run(ctx context.Context) {
	s.l.Debug().Msg("Reading paths")

	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		path := strings.TrimSpace(scanner.Text())
		if len(path) == 0 {
			continue
		}

		m := s.r.Match(path, s.detail)
		if m.Length() == 0 {
			fmt.Fprintf(s.errOut, "no route matched %s\n", path)

			continue
		}

		if err := match.Run(ctx, m, s.async); err != nil {
			s.l.Warn().Err(err).Str("_path", path).Msg("Processing of fired routes failed")
		}
	}

	if err := scanner.Err(); err != nil {
		s.l.Error().Err(err).Msg("Failed reading paths")
	}
}
