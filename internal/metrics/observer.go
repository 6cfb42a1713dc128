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
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "pathrouter"
	subsystem = "router"

	resultExact   = "exact"
	resultPartial = "partial"
	resultNone    = "none"
)

// Observer exposes the activity of a router as prometheus metrics.
type Observer struct {
	inserted  prometheus.Counter
	cleared   prometheus.Counter
	entries   prometheus.Gauge
	matches   *prometheus.CounterVec
	callbacks prometheus.Histogram
}

func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	obs := &Observer{
		inserted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "route_insertions_total",
			Help:      "Number of route insertions into the route trie. Reloading route sets re-inserts all routes.",
		}),
		cleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "clears_total",
			Help:      "Number of times all routes have been removed from the router.",
		}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "entries",
			Help:      "Number of entries in the route trie.",
		}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "matches_total",
			Help:      "Number of matched paths by result.",
		}, []string{"result"}),
		callbacks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "match_callbacks",
			Help:      "Number of callbacks selected per match.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16}, //nolint:mnd
		}),
	}

	for _, collector := range []prometheus.Collector{
		obs.inserted, obs.cleared, obs.entries, obs.matches, obs.callbacks,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}

	return obs, nil
}

// ObserveAdd counts an insertion, not a distinct route. A rebuild of the trie after a route set
// reload inserts every route again.
func (o *Observer) ObserveAdd(created int) {
	o.inserted.Inc()
	o.entries.Add(float64(created))
}

func (o *Observer) ObserveClear() {
	o.cleared.Inc()
	o.entries.Set(0)
}

func (o *Observer) ObserveMatch(exact bool, callbacks int) {
	result := resultPartial

	switch {
	case callbacks == 0:
		result = resultNone
	case exact:
		result = resultExact
	}

	o.matches.WithLabelValues(result).Inc()
	o.callbacks.Observe(float64(callbacks))
}
