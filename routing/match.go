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
	"context"
	"sync"
)

// Callback is invoked for a matched route. Errors are handed over to the caller of
// Match.Next or Match.NextAsync unchanged.
type Callback[T any] func(ctx context.Context, match *Match[T]) error

// Match is the ordered sequence of callbacks of the routes matched by a Router.Match call.
//
// The accessors reflect the callback currently invoked (or to be invoked next). A Match is
// meant to be used by a single goroutine. NextAsync calls are serialized, but Next must not
// be called while a step started with NextAsync is still pending.
type Match[T any] struct {
	path      string
	remaining string
	detail    T

	callbacks []Callback[T]
	variables []Variables
	current   Variables

	mut     sync.Mutex
	pending <-chan struct{}
}

func newMatch[T any](path, remaining string, detail T, callbacks []Callback[T], variables []Variables) *Match[T] {
	m := &Match[T]{
		path:      path,
		remaining: remaining,
		detail:    detail,
		callbacks: callbacks,
		variables: variables,
	}

	m.current = m.head()

	return m
}

// Path returns the part of the path matched by the selected routes.
func (m *Match[T]) Path() string { return m.path }

// Remaining returns the part of the path not consumed by the selected routes.
func (m *Match[T]) Remaining() string { return m.remaining }

// Variables returns the captured variables merged with the environment of the current route.
// The returned map must not be modified.
func (m *Match[T]) Variables() Variables { return m.current }

func (m *Match[T]) Detail() T { return m.detail }

// Exact reports whether the whole path has been matched.
func (m *Match[T]) Exact() bool { return len(m.remaining) == 0 }

// Length returns the number of callbacks not invoked yet.
func (m *Match[T]) Length() int { return len(m.callbacks) }

// Next invokes the next callback and waits for it to return. The callback is consumed even
// if it fails, so calling Next again continues with the following one. Calling Next on an
// exhausted Match does nothing.
func (m *Match[T]) Next(ctx context.Context) error {
	return m.advance(ctx)
}

// NextAsync is the non-blocking counterpart of Next. The returned channel receives the result
// of the callback as soon as it returned. Steps issued by consecutive NextAsync calls are
// executed one after another in the order of the calls.
func (m *Match[T]) NextAsync(ctx context.Context) <-chan error {
	result := make(chan error, 1)
	done := make(chan struct{})

	m.mut.Lock()
	previous := m.pending
	m.pending = done
	m.mut.Unlock()

	go func() {
		defer close(done)

		if previous != nil {
			<-previous
		}

		result <- m.advance(ctx)
	}()

	return result
}

// Drain invokes all remaining callbacks one after another. It stops at the first failing callback
// and returns its error.
func (m *Match[T]) Drain(ctx context.Context) error {
	for m.Length() != 0 {
		if err := m.Next(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (m *Match[T]) advance(ctx context.Context) error {
	if len(m.callbacks) == 0 {
		return nil
	}

	callback := m.callbacks[0]
	m.current = m.variables[0]
	m.callbacks = m.callbacks[1:]
	m.variables = m.variables[1:]

	defer func() { m.current = m.head() }()

	return callback(ctx, m)
}

func (m *Match[T]) head() Variables {
	if len(m.variables) == 0 {
		return Variables{}
	}

	return m.variables[0]
}
