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
	"errors"
	"io"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/dadrus/pathrouter/internal/encoding"
	"github.com/dadrus/pathrouter/internal/validation"
	"github.com/dadrus/pathrouter/routing"
)

type Parser struct {
	v         validation.Validator
	expandEnv bool
}

// NewParser creates a route set parser. If expandEnv is set, references to environment
// variables (${VAR}) are substituted before a route set is parsed.
func NewParser(expandEnv bool) (*Parser, error) {
	validator, err := validation.NewValidator()
	if err != nil {
		return nil, err
	}

	return &Parser{v: validator, expandEnv: expandEnv}, nil
}

// Parse reads a route set in the given content type (application/yaml or application/json).
// Empty input results in an empty route set.
func (p *Parser) Parse(contentType string, reader io.Reader) (*RouteSet, error) {
	var rs RouteSet

	dec := encoding.NewDecoder(
		encoding.WithSourceContentType(contentType),
		encoding.WithEnvVarsSubstitution(p.expandEnv),
		encoding.WithErrorOnUnused(true),
		encoding.WithDecodeHooks(constraintDecodeHookFunc),
		encoding.WithValidator(p.v),
	)

	if err := dec.Decode(&rs, reader); err != nil {
		if errors.Is(err, io.EOF) {
			return &RouteSet{Version: CurrentVersion}, nil
		}

		return nil, err
	}

	if err := rs.assignIDs(); err != nil {
		return nil, err
	}

	return &rs, nil
}

// ContentType derives the content type of a route set file from its extension.
func ContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return encoding.ContentTypeJSON
	default:
		return encoding.ContentTypeYAML
	}
}

// constraintDecodeHookFunc allows constraints to be written as plain regular expressions.
func constraintDecodeHookFunc(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(ConstraintDefinition{}) {
		return data, nil
	}

	return map[string]any{"type": routing.KindRegex, "value": data}, nil
}
