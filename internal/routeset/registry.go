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
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dadrus/pathrouter/internal/pathrouter"
	"github.com/dadrus/pathrouter/internal/x/errorchain"
	"github.com/dadrus/pathrouter/routing"
)

// Registry keeps the routes of several sources in a single router. It serializes modifications
// and lets matches run concurrently.
type Registry[T any] struct {
	mut     sync.RWMutex
	opts    []routing.Option
	router  *routing.Router[T]
	sources []string
	routes  map[string][]routing.Route[T]

	l zerolog.Logger
}

// NewRegistry creates an empty registry. The router it maintains is created with opts and
// reports to observer.
func NewRegistry[T any](logger zerolog.Logger, observer routing.Observer, opts ...routing.Option) (*Registry[T], error) {
	router, err := routing.New[T](append(slices.Clone(opts),
		routing.WithLogger(logger),
		routing.WithObserver(observer),
	)...)
	if err != nil {
		return nil, err
	}

	return &Registry[T]{
		opts:   opts,
		router: router,
		routes: make(map[string][]routing.Route[T]),
		l:      logger,
	}, nil
}

// Replace sets the routes of the given source. Sources keep the order in which they were first
// seen. If the resulting route set cannot be built, the registry stays unchanged.
func (r *Registry[T]) Replace(src string, routes []routing.Route[T]) error {
	r.mut.Lock()
	defer r.mut.Unlock()

	sources := r.sources
	if !slices.Contains(sources, src) {
		sources = append(slices.Clone(sources), src)
	}

	all := make(map[string][]routing.Route[T], len(r.routes)+1)
	for _, name := range sources {
		all[name] = r.routes[name]
	}

	all[src] = routes

	trial, err := routing.New[T](r.opts...)
	if err != nil {
		return errorchain.NewWithMessage(pathrouter.ErrInternal, "failed to create router").CausedBy(err)
	}

	if err = addAll(trial, sources, all); err != nil {
		return errorchain.NewWithMessagef(pathrouter.ErrConfiguration,
			"routes from %q rejected", src).CausedBy(err)
	}

	r.sources = sources
	r.routes = all

	r.rebuild()

	r.l.Info().
		Str("_src", src).
		Int("_routes", len(routes)).
		Msg("Routes updated")

	return nil
}

// Remove drops the routes of the given source. Unknown sources are ignored.
func (r *Registry[T]) Remove(src string) {
	r.mut.Lock()
	defer r.mut.Unlock()

	idx := slices.Index(r.sources, src)
	if idx == -1 {
		return
	}

	r.sources = slices.Delete(slices.Clone(r.sources), idx, idx+1)
	delete(r.routes, src)

	r.rebuild()

	r.l.Info().Str("_src", src).Msg("Routes removed")
}

// Match matches path against the routes of all sources.
func (r *Registry[T]) Match(path string, detail T) *routing.Match[T] {
	r.mut.RLock()
	defer r.mut.RUnlock()

	return r.router.Match(path, detail)
}

// Length returns the number of entries of the underlying route trie.
func (r *Registry[T]) Length() int {
	r.mut.RLock()
	defer r.mut.RUnlock()

	return r.router.Length()
}

func (r *Registry[T]) Sources() []string {
	r.mut.RLock()
	defer r.mut.RUnlock()

	return slices.Clone(r.sources)
}

// rebuild must be called with the write lock held. The router is cleared and all routes are
// inserted again, so the observer sees one clear followed by an insertion per route.
func (r *Registry[T]) rebuild() {
	if err := addAll(r.router.Clear(), r.sources, r.routes); err != nil {
		// Only route sets which have been added successfully before end up here.
		r.l.Error().Err(err).Msg("Failed to rebuild routes")
	}
}

func addAll[T any](router *routing.Router[T], sources []string, routes map[string][]routing.Route[T]) error {
	for _, src := range sources {
		if err := router.Add(routes[src]...); err != nil {
			return err
		}
	}

	return nil
}
