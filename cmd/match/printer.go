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
	"io"
	"sync"

	"github.com/goccy/go-json"

	"github.com/dadrus/pathrouter/internal/routeset"
	"github.com/dadrus/pathrouter/routing"
)

// Result describes a fired route.
type Result struct {
	Route     string            `json:"route"`
	Set       string            `json:"set,omitempty"`
	Path      string            `json:"path"`
	Remaining string            `json:"remaining"`
	Exact     bool              `json:"exact"`
	Variables map[string]string `json:"variables"`
	Detail    string            `json:"detail,omitempty"`
}

// NewPrinter returns a callback factory, which writes a JSON line for every fired route to out.
func NewPrinter(out io.Writer) routeset.CallbackFactory[string] {
	var mut sync.Mutex

	enc := json.NewEncoder(out)

	return func(set *routeset.RouteSet, def routeset.RouteDefinition) routing.Callback[string] {
		return func(_ context.Context, m *routing.Match[string]) error {
			mut.Lock()
			defer mut.Unlock()

			return enc.Encode(Result{
				Route:     def.ID,
				Set:       set.Name,
				Path:      m.Path(),
				Remaining: m.Remaining(),
				Exact:     def.Exact,
				Variables: m.Variables(),
				Detail:    m.Detail(),
			})
		}
	}
}

// Run steps through all fired routes of m and stops at the first failing one.
func Run(ctx context.Context, m *routing.Match[string], async bool) error {
	if !async {
		return m.Drain(ctx)
	}

	for m.Length() != 0 {
		if err := <-m.NextAsync(ctx); err != nil {
			return err
		}
	}

	return nil
}
