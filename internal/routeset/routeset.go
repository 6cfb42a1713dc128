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
	"github.com/google/uuid"

	"github.com/dadrus/pathrouter/internal/pathrouter"
	"github.com/dadrus/pathrouter/internal/x/errorchain"
	"github.com/dadrus/pathrouter/routing"
)

const CurrentVersion = "1"

type RouteSet struct {
	Version string            `json:"version" validate:"required,eq=1"`
	Name    string            `json:"name"`
	Routes  []RouteDefinition `json:"routes"  validate:"dive"`
}

type RouteDefinition struct {
	ID          string                          `json:"id"`
	Path        string                          `json:"path"        validate:"required"`
	Exact       bool                            `json:"exact"`
	Environment map[string]string               `json:"environment"`
	Constraint  map[string]ConstraintDefinition `json:"constraint"  validate:"dive"`
}

type ConstraintDefinition struct {
	Type  string `json:"type"  validate:"omitempty,oneof=regex regexp2 glob"`
	Value string `json:"value" validate:"required"`
}

// CallbackFactory creates the callback invoked when the given route matches.
type CallbackFactory[T any] func(set *RouteSet, def RouteDefinition) routing.Callback[T]

// ToRoutes compiles the constraints of all route definitions of rs and converts them to routes.
func ToRoutes[T any](rs *RouteSet, factory CallbackFactory[T]) ([]routing.Route[T], error) {
	routes := make([]routing.Route[T], len(rs.Routes))

	for idx, def := range rs.Routes {
		constraint := make(routing.Constraint, len(def.Constraint))

		for name, cd := range def.Constraint {
			pattern, err := routing.NewPattern(cd.Type, cd.Value)
			if err != nil {
				return nil, errorchain.NewWithMessagef(pathrouter.ErrConfiguration,
					"invalid constraint for variable %q in route %q", name, def.ID).CausedBy(err)
			}

			constraint[name] = pattern
		}

		routes[idx] = routing.Route[T]{
			Path:        def.Path,
			Exact:       def.Exact,
			Environment: def.Environment,
			Constraint:  constraint,
			OnMatch:     factory(rs, def),
		}
	}

	return routes, nil
}

func (rs *RouteSet) assignIDs() error {
	known := make(map[string]struct{}, len(rs.Routes))

	for idx := range rs.Routes {
		def := &rs.Routes[idx]

		if len(def.ID) == 0 {
			def.ID = uuid.NewString()
		}

		if _, ok := known[def.ID]; ok {
			return errorchain.NewWithMessagef(pathrouter.ErrConfiguration,
				"duplicate route id %q in route set %q", def.ID, rs.Name)
		}

		known[def.ID] = struct{}{}
	}

	return nil
}
