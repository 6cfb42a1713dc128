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

package routing

import (
	"maps"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/dadrus/pathrouter/internal/pathrouter"
	"github.com/dadrus/pathrouter/internal/x/errorchain"
)

// Variables maps variable names to values.
type Variables map[string]string

// Route describes a route to be added to a Router. It is not retained by the router.
type Route[T any] struct {
	// Path of the route, e.g. /action/{id}/edit.
	Path string
	// Exact routes fire only if the matched path has been consumed entirely.
	Exact bool
	// Environment is merged into the variables seen by OnMatch. It overrides
	// captured variables with the same name.
	Environment Variables
	// Constraint holds a pattern for every variable referenced in Path.
	Constraint Constraint
	// OnMatch is required.
	OnMatch Callback[T]
}

// Router matches paths against the added routes. T is the type of the detail
// value passed through to the callbacks.
type Router[T any] struct {
	separator string
	variable  *regexp.Regexp
	entries   *directory[T]
	counter   int

	l zerolog.Logger
	o Observer
}

func New[T any](opts ...Option) (*Router[T], error) {
	conf := options{
		separator: DefaultSeparator,
		variable:  DefaultVariablePattern,
		logger:    zerolog.Nop(),
		observer:  noopObserver{},
	}

	for _, opt := range opts {
		opt(&conf)
	}

	if len(conf.separator) == 0 {
		return nil, errorchain.NewWithMessage(pathrouter.ErrConfiguration, "separator must not be empty")
	}

	if conf.variable.NumSubexp() != 1 {
		return nil, errorchain.NewWithMessagef(pathrouter.ErrConfiguration,
			"variable pattern %q must have exactly one capture group", conf.variable.String())
	}

	return &Router[T]{
		separator: conf.separator,
		variable:  conf.variable,
		entries:   newDirectory[T](),
		l:         conf.logger,
		o:         conf.observer,
	}, nil
}

// Length returns the number of distinct entries in the route trie. Routes sharing a prefix
// share the entries of that prefix.
func (r *Router[T]) Length() int { return r.counter }

// Add adds the given routes in order. It stops at the first route, which cannot be added.
// Routes added before that one remain in the router.
func (r *Router[T]) Add(routes ...Route[T]) error {
	for idx, route := range routes {
		if route.OnMatch == nil {
			return errorchain.NewWithMessagef(pathrouter.ErrArgument,
				"route %q at index %d has no callback", route.Path, idx).CausedBy(ErrNoCallback)
		}

		last, created, err := r.insertEntries(splitPath(route.Path, r.separator), route.Constraint)
		if err != nil {
			return errorchain.NewWithMessagef(pathrouter.ErrConfiguration,
				"failed to add route %q at index %d", route.Path, idx).CausedBy(err)
		}

		evt := event[T]{environment: maps.Clone(route.Environment), callback: route.OnMatch}
		if route.Exact {
			last.exact = append(last.exact, evt)
		} else {
			last.partial = append(last.partial, evt)
		}

		r.l.Debug().
			Str("_path", route.Path).
			Bool("_exact", route.Exact).
			Int("_created_entries", created).
			Msg("Route added")

		r.o.ObserveAdd(created)
	}

	return nil
}

// Match matches path against the added routes. It never fails. If nothing matches, the returned
// Match has no callbacks and its remaining path is the whole path.
func (r *Router[T]) Match(path string, detail T) *Match[T] {
	tokens := splitPath(path, r.separator)
	sel := r.collectEntries(tokens)

	analysed := joinTokens(tokens[:sel.depth])
	remaining := remainingPath(tokens[sel.depth:], r.separator)

	var (
		callbacks []Callback[T]
		variables []Variables
	)

	for _, selected := range sel.entries {
		if len(remaining) == 0 {
			for _, evt := range selected.exact {
				callbacks = append(callbacks, evt.callback)
				variables = append(variables, mergeVariables(sel.variables, evt.environment))
			}
		}

		for _, evt := range selected.partial {
			callbacks = append(callbacks, evt.callback)
			variables = append(variables, mergeVariables(sel.variables, evt.environment))
		}
	}

	r.l.Debug().
		Str("_path", path).
		Str("_matched", analysed).
		Str("_remaining", remaining).
		Int("_callbacks", len(callbacks)).
		Msg("Path matched")

	r.o.ObserveMatch(len(remaining) == 0, len(callbacks))

	return newMatch(analysed, remaining, detail, callbacks, variables)
}

// Clear removes all routes. Matches created before are not affected.
func (r *Router[T]) Clear() *Router[T] {
	r.entries = newDirectory[T]()
	r.counter = 0

	r.l.Debug().Msg("Routes cleared")
	r.o.ObserveClear()

	return r
}

func mergeVariables(captured, environment Variables) Variables {
	merged := make(Variables, len(captured)+len(environment))

	maps.Copy(merged, captured)
	maps.Copy(merged, environment)

	return merged
}
