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

package errorchain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/pathrouter/internal/x/errorchain"
)

var (
	errConfiguration = errors.New("configuration error")
	errMissing       = errors.New("missing constraint")
	errUnrelated     = errors.New("unrelated")
)

func TestErrorChain(t *testing.T) {
	t.Parallel()

	for uc, tc := range map[string]struct {
		err      *errorchain.ErrorChain
		message  string
		is       []error
		isNot    []error
		unwraps  bool
		jsonBody string
	}{
		"head only": {
			err:      errorchain.New(errConfiguration),
			message:  "configuration error",
			is:       []error{errConfiguration},
			isNot:    []error{errMissing},
			jsonBody: `{"code":"configurationError"}`,
		},
		"head with message": {
			err:      errorchain.NewWithMessage(errConfiguration, "routes rejected"),
			message:  "configuration error: routes rejected",
			is:       []error{errConfiguration},
			jsonBody: `{"code":"configurationError","message":"routes rejected"}`,
		},
		"head with formatted message and cause": {
			err: errorchain.NewWithMessagef(errConfiguration, "route %q rejected", "/foo").
				CausedBy(errMissing),
			message:  `configuration error: route "/foo" rejected: missing constraint`,
			is:       []error{errConfiguration, errMissing},
			isNot:    []error{errUnrelated},
			unwraps:  true,
			jsonBody: `{"code":"configurationError","message":"route \"/foo\" rejected"}`,
		},
		"nested chain as cause": {
			err: errorchain.NewWithMessage(errConfiguration, "outer").
				CausedBy(errorchain.NewWithMessage(errMissing, "inner")),
			message:  "configuration error: outer: missing constraint: inner",
			is:       []error{errConfiguration, errMissing},
			unwraps:  true,
			jsonBody: `{"code":"configurationError","message":"outer"}`,
		},
	} {
		t.Run(uc, func(t *testing.T) {
			t.Parallel()

			// WHEN
			res, err := tc.err.MarshalJSON()

			// THEN
			require.NoError(t, err)
			assert.JSONEq(t, tc.jsonBody, string(res))
			assert.Equal(t, tc.message, tc.err.Error())
			assert.Equal(t, tc.unwraps, errors.Unwrap(tc.err) != nil)

			for _, target := range tc.is {
				require.ErrorIs(t, tc.err, target)
			}

			for _, target := range tc.isNot {
				require.NotErrorIs(t, tc.err, target)
			}
		})
	}
}

func TestErrorChainUnwrap(t *testing.T) {
	t.Parallel()

	// GIVEN
	chain := errorchain.NewWithMessage(errConfiguration, "foo").CausedBy(errMissing)

	// WHEN
	cause := errors.Unwrap(chain)

	// THEN
	require.Error(t, cause)
	require.NotErrorIs(t, cause, errConfiguration)
	require.ErrorIs(t, cause, errMissing)
	require.NoError(t, errors.Unwrap(cause))

	// WHEN
	extended := cause.(*errorchain.ErrorChain).CausedBy(errUnrelated) //nolint:forcetypeassert

	// THEN
	require.ErrorIs(t, extended, errUnrelated)
	require.NotErrorIs(t, chain, errUnrelated)
	assert.Equal(t, "configuration error: foo: missing constraint", chain.Error())
}

type codedError struct {
	code int
}

func (e *codedError) Error() string { return "coded error" }

func TestErrorChainAs(t *testing.T) {
	t.Parallel()

	// GIVEN
	chain := errorchain.NewWithMessage(errConfiguration, "foo").CausedBy(&codedError{code: 42})

	// WHEN
	var target *codedError

	ok := errors.As(chain, &target)

	// THEN
	require.True(t, ok)
	assert.Equal(t, 42, target.code)
}
