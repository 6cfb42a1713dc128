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
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/dadrus/pathrouter/internal/config"
	"github.com/dadrus/pathrouter/internal/pathrouter"
	"github.com/dadrus/pathrouter/internal/x/errorchain"
)

const serviceName = "metrics"

// errLoggerFunc adapts a function to the promhttp.Logger interface.
type errLoggerFunc func(v ...any)

func (l errLoggerFunc) Println(v ...any) { l(v...) }

type lifecycleManager interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

type noopManager struct{}

func (noopManager) Start(context.Context) error { return nil }
func (noopManager) Stop(context.Context) error  { return nil }

type service struct {
	address string
	srv     *http.Server
	l       zerolog.Logger
}

func newLifecycleManager(
	conf config.MetricsConfig,
	reg prometheus.Registerer,
	gatherer prometheus.Gatherer,
	logger zerolog.Logger,
) lifecycleManager {
	if !conf.Enabled {
		logger.Info().Msg("Metrics service disabled")

		return noopManager{}
	}

	mux := http.NewServeMux()
	mux.Handle(conf.Path, promhttp.InstrumentMetricHandler(reg,
		promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
			Registry: reg,
			ErrorLog: errLoggerFunc(func(v ...any) { logger.Error().Msg(fmt.Sprint(v...)) }),
		}),
	))

	return &service{
		address: conf.Address,
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second, //nolint:mnd
		},
		l: logger,
	}
}

func (s *service) Start(_ context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return errorchain.NewWithMessagef(pathrouter.ErrInternal,
			"could not create listener for %s service", serviceName).CausedBy(err)
	}

	go func() {
		s.l.Info().
			Str("_address", ln.Addr().String()).
			Str("_service", serviceName).
			Msg("Starting listening")

		if err := s.srv.Serve(ln); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				s.l.Error().Err(err).Str("_service", serviceName).Msg("Service failed")
			} else {
				s.l.Info().Str("_service", serviceName).Msg("Service stopped")
			}
		}
	}()

	return nil
}

func (s *service) Stop(ctx context.Context) error {
	s.l.Info().Str("_service", serviceName).Msg("Tearing down service")

	err := s.srv.Shutdown(ctx)
	if err != nil {
		s.l.Warn().Err(err).Str("_service", serviceName).Msg("Graceful shutdown failed")
	}

	return err
}
