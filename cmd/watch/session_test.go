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

package watch

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/dadrus/pathrouter/internal/routeset"
	"github.com/dadrus/pathrouter/internal/x/testsupport"
	"github.com/dadrus/pathrouter/routing"
)

type shutdowner struct {
	calls atomic.Int32
	err   error
}

func (s *shutdowner) Shutdown(...fx.ShutdownOption) error {
	s.calls.Add(1)

	return s.err
}

func TestSession(t *testing.T) {
	t.Parallel()

	for uc, tc := range map[string]struct {
		input    string
		async    bool
		failWith error
		sdErr    error
		assert   func(t *testing.T, fired []string, errOut string, logs string)
	}{
		"matches every line": {
			input: "/foo\n\n  /foo/bar  \n/baz\n",
			assert: func(t *testing.T, fired []string, errOut string, _ string) {
				t.Helper()

				assert.Equal(t, []string{"detail:/foo", "detail:/foo"}, fired)
				assert.Equal(t, "no route matched /baz\n", errOut)
			},
		},
		"non blocking stepping": {
			input: "/foo/bar",
			async: true,
			assert: func(t *testing.T, fired []string, errOut string, _ string) {
				t.Helper()

				assert.Equal(t, []string{"detail:/foo"}, fired)
				assert.Empty(t, errOut)
			},
		},
		"failing callbacks do not stop the session": {
			input:    "/foo\n/foo\n",
			failWith: errors.New("test error"),
			assert: func(t *testing.T, fired []string, _ string, logs string) {
				t.Helper()

				assert.Len(t, fired, 2)
				assert.Contains(t, logs, "test error")
			},
		},
		"failing shutdown is logged": {
			input: "",
			sdErr: errors.New("shutdown error"),
			assert: func(t *testing.T, fired []string, _ string, logs string) {
				t.Helper()

				assert.Empty(t, fired)
				assert.Contains(t, logs, "shutdown error")
			},
		},
	} {
		t.Run(uc, func(t *testing.T) {
			t.Parallel()

			// GIVEN
			var fired []string

			tlog := &testsupport.TestingLog{TB: t}
			logger := zerolog.New(zerolog.TestWriter{T: tlog})

			reg, err := routeset.NewRegistry[string](zerolog.Nop(), nil)
			require.NoError(t, err)

			require.NoError(t, reg.Replace("test", []routing.Route[string]{{
				Path: "/foo",
				OnMatch: func(_ context.Context, m *routing.Match[string]) error {
					fired = append(fired, m.Detail()+":"+m.Path())

					return tc.failWith
				},
			}}))

			errOut := &bytes.Buffer{}
			sd := &shutdowner{err: tc.sdErr}
			s := &session{
				in:     strings.NewReader(tc.input),
				errOut: errOut,
				detail: "detail",
				async:  tc.async,
				r:      reg,
				sd:     sd,
				l:      logger,
			}

			// WHEN
			require.NoError(t, s.Start(t.Context()))
			<-s.done
			require.NoError(t, s.Stop(t.Context()))

			// THEN
			assert.Equal(t, int32(1), sd.calls.Load())
			tc.assert(t, fired, errOut.String(), tlog.CollectedLog())
		})
	}
}
