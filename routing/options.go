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
	"regexp"

	"github.com/rs/zerolog"
)

const DefaultSeparator = "/"

// DefaultVariablePattern recognizes variables written as {name}.
var DefaultVariablePattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`) //nolint:gochecknoglobals

// Observer is notified about changes to and lookups in a router.
type Observer interface {
	// ObserveAdd is called for every added route with the number of entries it created.
	ObserveAdd(created int)
	ObserveClear()
	ObserveMatch(exact bool, callbacks int)
}

type noopObserver struct{}

func (noopObserver) ObserveAdd(_ int) {}

func (noopObserver) ObserveClear() {}

func (noopObserver) ObserveMatch(_ bool, _ int) {}

type options struct {
	separator string
	variable  *regexp.Regexp
	logger    zerolog.Logger
	observer  Observer
}

type Option func(o *options)

// WithSeparator sets the string delimiting path segments. Defaults to DefaultSeparator.
func WithSeparator(separator string) Option {
	return func(o *options) {
		o.separator = separator
	}
}

// WithVariablePattern sets the expression identifying a variable reference in a route's
// path segment. It must have exactly one capture group, which yields the variable name.
func WithVariablePattern(pattern *regexp.Regexp) Option {
	return func(o *options) {
		if pattern != nil {
			o.variable = pattern
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observer = observer
		}
	}
}
