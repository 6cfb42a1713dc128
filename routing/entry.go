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

type (
	event[T any] struct {
		environment Variables
		callback    Callback[T]
	}

	// entryKey identifies an entry within its directory. Literal entries are keyed by
	// their token, variable entries by the canonical pattern only. Routes using another
	// variable name with the same pattern share the entry and capture under the name of
	// the route which created it.
	entryKey struct {
		text     string
		variable bool
	}

	entry[T any] struct {
		token string

		// both set for variable entries only
		pattern  Pattern
		variable string

		entries *directory[T]

		exact   []event[T]
		partial []event[T]
	}

	// directory holds the children of an entry in insertion order.
	directory[T any] struct {
		index   map[entryKey]*entry[T]
		entries []*entry[T]
	}
)

func newDirectory[T any]() *directory[T] {
	return &directory[T]{index: make(map[entryKey]*entry[T])}
}

func (d *directory[T]) lookup(key entryKey) *entry[T] { return d.index[key] }

func (d *directory[T]) add(key entryKey, e *entry[T]) {
	d.index[key] = e
	d.entries = append(d.entries, e)
}

func newEntry[T any](token string, pattern Pattern, variable string) *entry[T] {
	return &entry[T]{
		token:    token,
		pattern:  pattern,
		variable: variable,
		entries:  newDirectory[T](),
	}
}

func (e *entry[T]) isVariable() bool { return e.pattern != nil }

func (e *entry[T]) hasEvents() bool { return len(e.exact) != 0 || len(e.partial) != 0 }

func variableKey(pattern Pattern) entryKey {
	return entryKey{text: pattern.String(), variable: true}
}
