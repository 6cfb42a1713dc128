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
	"time"

	"github.com/dlclark/regexp2"
	"github.com/gobwas/glob"

	"github.com/dadrus/pathrouter/internal/pathrouter"
	"github.com/dadrus/pathrouter/internal/x/errorchain"
)

const (
	KindRegex   = "regex"
	KindRegexp2 = "regexp2"
	KindGlob    = "glob"

	regexp2MatchTimeout = 100 * time.Millisecond
)

// Pattern constrains the values a variable segment accepts.
type Pattern interface {
	// Match reports whether the whole value satisfies the pattern.
	Match(value string) bool
	// String returns the canonical form of the pattern, which is its kind followed
	// by a colon and the expression, e.g. "regex:[0-9]+". Routes referencing the
	// same variable with patterns having the same canonical form share a trie entry.
	String() string
}

// Constraint maps variable names to the pattern their values must match.
type Constraint map[string]Pattern

type regexPattern struct {
	expr     string
	compiled *regexp.Regexp
}

func (p *regexPattern) Match(value string) bool { return p.compiled.MatchString(value) }

func (p *regexPattern) String() string { return KindRegex + ":" + p.expr }

type regexp2Pattern struct {
	expr     string
	compiled *regexp2.Regexp
}

func (p *regexp2Pattern) Match(value string) bool {
	// the error is only set on timeouts, which is the same as a miss
	ok, _ := p.compiled.MatchString(value)

	return ok
}

func (p *regexp2Pattern) String() string { return KindRegexp2 + ":" + p.expr }

type globPattern struct {
	expr     string
	compiled glob.Glob
}

func (p *globPattern) Match(value string) bool { return p.compiled.Match(value) }

func (p *globPattern) String() string { return KindGlob + ":" + p.expr }

// Regex compiles expr using the syntax of the regexp package. The resulting pattern
// matches a value only if expr matches it in its entirety.
func Regex(expr string) (Pattern, error) {
	if len(expr) == 0 {
		return nil, errorchain.NewWithMessage(pathrouter.ErrConfiguration, "no regex pattern defined").
			CausedBy(ErrInvalidPattern)
	}

	compiled, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return nil, errorchain.NewWithMessagef(pathrouter.ErrConfiguration,
			"failed to compile regex pattern %q", expr).CausedBy(ErrInvalidPattern).CausedBy(err)
	}

	return &regexPattern{expr: expr, compiled: compiled}, nil
}

// MustRegex is like Regex but panics if the expression cannot be compiled.
func MustRegex(expr string) Pattern {
	pattern, err := Regex(expr)
	if err != nil {
		panic(err)
	}

	return pattern
}

// Regexp2 compiles expr using the .NET compatible syntax of github.com/dlclark/regexp2, which
// supports lookarounds and backreferences.
func Regexp2(expr string) (Pattern, error) {
	if len(expr) == 0 {
		return nil, errorchain.NewWithMessage(pathrouter.ErrConfiguration, "no regexp2 pattern defined").
			CausedBy(ErrInvalidPattern)
	}

	compiled, err := regexp2.Compile(`^(?:`+expr+`)$`, regexp2.None)
	if err != nil {
		return nil, errorchain.NewWithMessagef(pathrouter.ErrConfiguration,
			"failed to compile regexp2 pattern %q", expr).CausedBy(ErrInvalidPattern).CausedBy(err)
	}

	compiled.MatchTimeout = regexp2MatchTimeout

	return &regexp2Pattern{expr: expr, compiled: compiled}, nil
}

// Glob compiles expr as a github.com/gobwas/glob pattern.
func Glob(expr string) (Pattern, error) {
	if len(expr) == 0 {
		return nil, errorchain.NewWithMessage(pathrouter.ErrConfiguration, "no glob pattern defined").
			CausedBy(ErrInvalidPattern)
	}

	compiled, err := glob.Compile(expr)
	if err != nil {
		return nil, errorchain.NewWithMessagef(pathrouter.ErrConfiguration,
			"failed to compile glob pattern %q", expr).CausedBy(ErrInvalidPattern).CausedBy(err)
	}

	return &globPattern{expr: expr, compiled: compiled}, nil
}

// NewPattern creates a pattern of the given kind. An empty kind defaults to KindRegex.
func NewPattern(kind, expr string) (Pattern, error) {
	switch kind {
	case KindRegex, "":
		return Regex(expr)
	case KindRegexp2:
		return Regexp2(expr)
	case KindGlob:
		return Glob(expr)
	default:
		return nil, errorchain.NewWithMessagef(pathrouter.ErrConfiguration,
			"pattern kind %q is not supported", kind).CausedBy(ErrUnsupportedPatternKind)
	}
}
