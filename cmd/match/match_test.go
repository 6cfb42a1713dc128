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
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/pathrouter/cmd/flags"
	"github.com/dadrus/pathrouter/internal/pathrouter"
)

const testRouteSet = `
version: "1"
name: test
routes:
  - id: root
    path: /
  - id: edit
    path: /action/{id}/edit
    environment:
      action: edit
    constraint:
      id: "[0-9]+"
  - id: edit-exact
    path: /action/{id}/edit
    exact: true
    constraint:
      id: "[0-9]+"
`

func decodeResults(t *testing.T, data []byte) []Result {
	t.Helper()

	var results []Result

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		var res Result

		require.NoError(t, json.Unmarshal(scanner.Bytes(), &res))

		results = append(results, res)
	}

	return results
}

func TestMatchPaths(t *testing.T) {
	t.Parallel()

	routesFile := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(routesFile, []byte(testRouteSet), 0o600))

	for uc, tc := range map[string]struct {
		args   []string
		paths  []string
		assert func(t *testing.T, err error, results []Result, stderr string)
	}{
		"exact and partial routes fire": {
			args:  []string{"-r", routesFile, "--detail", "req-1"},
			paths: []string{"/action/42/edit"},
			assert: func(t *testing.T, err error, results []Result, _ string) {
				t.Helper()

				require.NoError(t, err)
				require.Len(t, results, 2)

				assert.Equal(t, Result{
					Route:     "edit-exact",
					Set:       "test",
					Path:      "/action/42/edit",
					Exact:     true,
					Variables: map[string]string{"id": "42"},
					Detail:    "req-1",
				}, results[0])
				assert.Equal(t, Result{
					Route:     "edit",
					Set:       "test",
					Path:      "/action/42/edit",
					Variables: map[string]string{"id": "42", "action": "edit"},
					Detail:    "req-1",
				}, results[1])
			},
		},
		"non blocking stepping keeps the order": {
			args:  []string{"-r", routesFile, "--async"},
			paths: []string{"/action/42/edit", "/unknown"},
			assert: func(t *testing.T, err error, results []Result, _ string) {
				t.Helper()

				require.NoError(t, err)
				require.Len(t, results, 3)
				assert.Equal(t, "edit-exact", results[0].Route)
				assert.Equal(t, "edit", results[1].Route)
				assert.Equal(t, "root", results[2].Route)
				assert.Equal(t, "/unknown", results[2].Remaining)
			},
		},
		"partial route with remaining path": {
			args:  []string{"-r", routesFile},
			paths: []string{"/action/42/edit/more"},
			assert: func(t *testing.T, err error, results []Result, _ string) {
				t.Helper()

				require.NoError(t, err)
				require.Len(t, results, 1)
				assert.Equal(t, "edit", results[0].Route)
				assert.Equal(t, "/more", results[0].Remaining)
			},
		},
		"no routes configured": {
			paths: []string{"/foo"},
			assert: func(t *testing.T, err error, _ []Result, _ string) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, pathrouter.ErrConfiguration)
			},
		},
		"route set does not exist": {
			args:  []string{"-r", filepath.Join(t.TempDir(), "missing.yaml")},
			paths: []string{"/foo"},
			assert: func(t *testing.T, err error, _ []Result, _ string) {
				t.Helper()

				require.Error(t, err)
			},
		},
	} {
		t.Run(uc, func(t *testing.T) {
			t.Parallel()

			// GIVEN
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			cmd := NewMatchCommand()
			flags.RegisterGlobalFlags(cmd)
			cmd.SetOut(stdout)
			cmd.SetErr(stderr)
			require.NoError(t, cmd.ParseFlags(tc.args))

			// WHEN
			err := matchPaths(cmd, tc.paths)

			// THEN
			tc.assert(t, err, decodeResults(t, stdout.Bytes()), stderr.String())
		})
	}
}

func TestMatchPathsReportsUnmatchedPaths(t *testing.T) {
	t.Parallel()

	// GIVEN
	routesFile := filepath.Join(t.TempDir(), "routes.json")
	require.NoError(t, os.WriteFile(routesFile,
		[]byte(`{"version": "1", "routes": [{"id": "foo", "path": "/foo", "exact": true}]}`), 0o600))

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := NewMatchCommand()
	flags.RegisterGlobalFlags(cmd)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	require.NoError(t, cmd.ParseFlags([]string{"-r", routesFile}))

	// WHEN
	err := matchPaths(cmd, []string{"/bar", "/foo"})

	// THEN
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "no route matched /bar")

	results := decodeResults(t, stdout.Bytes())
	require.Len(t, results, 1)
	assert.Equal(t, "foo", results[0].Route)
}
