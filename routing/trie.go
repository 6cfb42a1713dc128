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

	"github.com/dadrus/pathrouter/internal/pathrouter"
	"github.com/dadrus/pathrouter/internal/x/errorchain"
)

type (
	step struct {
		token    string
		key      entryKey
		pattern  Pattern
		variable string
	}

	selection[T any] struct {
		// number of tokens consumed up to the selected entries
		depth     int
		entries   []*entry[T]
		variables Variables
	}
)

// resolveSteps determines the entry key for every token. It fails before anything is
// inserted, so a route referencing an unconstrained variable leaves no traces in the trie.
func (r *Router[T]) resolveSteps(tokens []string, constraint Constraint) ([]step, error) {
	steps := make([]step, len(tokens))

	for idx, token := range tokens {
		steps[idx] = step{token: token, key: entryKey{text: token}}

		if token == r.separator {
			continue
		}

		name, ok := variableName(token, r.variable)
		if !ok {
			continue
		}

		pattern := constraint[name]
		if pattern == nil {
			return nil, errorchain.NewWithMessagef(pathrouter.ErrConfiguration,
				"no constraint defined for variable %q", name).CausedBy(ErrMissingConstraint)
		}

		steps[idx] = step{token: token, key: variableKey(pattern), pattern: pattern, variable: name}
	}

	return steps, nil
}

// insertEntries creates all entries missing for the given tokens and returns the last one
// together with the number of created entries.
func (r *Router[T]) insertEntries(tokens []string, constraint Constraint) (*entry[T], int, error) {
	steps, err := r.resolveSteps(tokens, constraint)
	if err != nil {
		return nil, 0, err
	}

	var (
		current *entry[T]
		created int
	)

	entries := r.entries

	for _, s := range steps {
		current = entries.lookup(s.key)
		if current == nil {
			current = newEntry[T](s.token, s.pattern, s.variable)
			entries.add(s.key, current)

			r.counter++
			created++
		}

		entries = current.entries
	}

	return current, created, nil
}

// searchEntries returns the entries of dir matching the expected token. Values of matched
// variable entries are written to variables.
func (r *Router[T]) searchEntries(expected string, dir *directory[T], variables Variables) []*entry[T] {
	var found []*entry[T]

	for _, candidate := range dir.entries {
		if candidate.isVariable() {
			if expected != r.separator && candidate.pattern.Match(expected) {
				variables[candidate.variable] = expected
				found = append(found, candidate)
			}
		} else if candidate.token == expected {
			found = append(found, candidate)
		}
	}

	return found
}

// collectEntries descends the trie level by level, following every entry matching the
// current token. The deepest level holding entries with events wins.
func (r *Router[T]) collectEntries(tokens []string) selection[T] {
	var result selection[T]

	variables := make(Variables)
	targets := []*directory[T]{r.entries}
	consumed := 0

	for consumed < len(tokens) && len(targets) != 0 {
		var (
			next       []*directory[T]
			candidates []*entry[T]
		)

		for _, dir := range targets {
			for _, found := range r.searchEntries(tokens[consumed], dir, variables) {
				if found.hasEvents() {
					candidates = append(candidates, found)
				}

				next = append(next, found.entries)
			}
		}

		targets = next
		if len(targets) == 0 {
			break
		}

		consumed++

		if len(candidates) != 0 {
			result = selection[T]{depth: consumed, entries: candidates, variables: maps.Clone(variables)}
		}
	}

	return result
}
