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
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/pathrouter/internal/config"
	"github.com/dadrus/pathrouter/internal/pathrouter"
	"github.com/dadrus/pathrouter/routing"
)

type routeIDs struct {
	mut sync.Mutex
	ids []string
}

func (r *routeIDs) factory(_ *RouteSet, def RouteDefinition) routing.Callback[string] {
	return func(_ context.Context, _ *routing.Match[string]) error {
		r.mut.Lock()
		defer r.mut.Unlock()

		r.ids = append(r.ids, def.ID)

		return nil
	}
}

func (r *routeIDs) matched(t *testing.T, reg *Registry[string], path string) []string {
	t.Helper()

	r.mut.Lock()
	r.ids = nil
	r.mut.Unlock()

	require.NoError(t, reg.Match(path, "").Drain(context.Background()))

	r.mut.Lock()
	defer r.mut.Unlock()

	return slices.Clone(r.ids)
}

func writeRouteSet(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newTestProvider(t *testing.T, conf config.RoutesConfig, ids *routeIDs) (*FileProvider[string], *Registry[string]) {
	t.Helper()

	parser, err := NewParser(false)
	require.NoError(t, err)

	reg, err := NewRegistry[string](zerolog.Nop(), nil)
	require.NoError(t, err)

	provider, err := NewFileProvider(conf, parser, ids.factory, reg, zerolog.Nop())
	require.NoError(t, err)

	return provider, reg
}

func TestNewFileProvider(t *testing.T) {
	t.Parallel()

	for uc, tc := range map[string]struct {
		conf   func(t *testing.T) config.RoutesConfig
		assert func(t *testing.T, provider *FileProvider[string], err error)
	}{
		"without src": {
			conf: func(t *testing.T) config.RoutesConfig {
				t.Helper()

				return config.RoutesConfig{}
			},
			assert: func(t *testing.T, _ *FileProvider[string], err error) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, pathrouter.ErrConfiguration)
				assert.Contains(t, err.Error(), "no routes src")
			},
		},
		"src does not exist": {
			conf: func(t *testing.T) config.RoutesConfig {
				t.Helper()

				return config.RoutesConfig{Source: filepath.Join(t.TempDir(), "missing.yaml")}
			},
			assert: func(t *testing.T, _ *FileProvider[string], err error) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, pathrouter.ErrConfiguration)
			},
		},
		"without watching": {
			conf: func(t *testing.T) config.RoutesConfig {
				t.Helper()

				return config.RoutesConfig{Source: t.TempDir()}
			},
			assert: func(t *testing.T, provider *FileProvider[string], err error) {
				t.Helper()

				require.NoError(t, err)
				assert.Nil(t, provider.w)
				assert.True(t, filepath.IsAbs(provider.src))
			},
		},
		"with watching": {
			conf: func(t *testing.T) config.RoutesConfig {
				t.Helper()

				return config.RoutesConfig{Source: t.TempDir(), Watch: true}
			},
			assert: func(t *testing.T, provider *FileProvider[string], err error) {
				t.Helper()

				require.NoError(t, err)
				require.NotNil(t, provider.w)
				require.NoError(t, provider.Stop(t.Context()))
			},
		},
	} {
		t.Run(uc, func(t *testing.T) {
			t.Parallel()

			// GIVEN
			ids := &routeIDs{}
			parser, err := NewParser(false)
			require.NoError(t, err)

			reg, err := NewRegistry[string](zerolog.Nop(), nil)
			require.NoError(t, err)

			// WHEN
			provider, err := NewFileProvider(tc.conf(t), parser, ids.factory, reg, zerolog.Nop())

			// THEN
			tc.assert(t, provider, err)
		})
	}
}

func TestFileProviderStart(t *testing.T) {
	t.Parallel()

	for uc, tc := range map[string]struct {
		setup  func(t *testing.T, dir string) string
		assert func(t *testing.T, ids *routeIDs, reg *Registry[string], err error)
	}{
		"single file": {
			setup: func(t *testing.T, dir string) string {
				t.Helper()

				file := filepath.Join(dir, "routes.yaml")
				writeRouteSet(t, file, `
version: "1"
routes:
  - id: edit
    path: /action/{id}/edit
    constraint:
      id: "[0-9]+"
`)

				return file
			},
			assert: func(t *testing.T, ids *routeIDs, reg *Registry[string], err error) {
				t.Helper()

				require.NoError(t, err)
				assert.Len(t, reg.Sources(), 1)
				assert.Equal(t, []string{"edit"}, ids.matched(t, reg, "/action/1/edit"))
				assert.Empty(t, ids.matched(t, reg, "/action/x/edit"))
			},
		},
		"directory with yaml and json files": {
			setup: func(t *testing.T, dir string) string {
				t.Helper()

				writeRouteSet(t, filepath.Join(dir, "a.yaml"), `{ version: "1", routes: [{ id: a, path: /foo }] }`)
				writeRouteSet(t, filepath.Join(dir, "b.json"), `{ "version": "1", "routes": [{ "id": "b", "path": "/foo" }] }`)
				writeRouteSet(t, filepath.Join(dir, "c.yaml"), "")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o700))

				return dir
			},
			assert: func(t *testing.T, ids *routeIDs, reg *Registry[string], err error) {
				t.Helper()

				require.NoError(t, err)
				assert.Len(t, reg.Sources(), 2)
				assert.Equal(t, []string{"a", "b"}, ids.matched(t, reg, "/foo/bar"))
			},
		},
		"invalid route set": {
			setup: func(t *testing.T, dir string) string {
				t.Helper()

				writeRouteSet(t, filepath.Join(dir, "a.yaml"), `{ version: "1", routes: [{ id: a }] }`)

				return dir
			},
			assert: func(t *testing.T, _ *routeIDs, reg *Registry[string], err error) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, pathrouter.ErrConfiguration)
				assert.Empty(t, reg.Sources())
			},
		},
		"route set with missing constraint": {
			setup: func(t *testing.T, dir string) string {
				t.Helper()

				writeRouteSet(t, filepath.Join(dir, "a.yaml"), `{ version: "1", routes: [{ id: a, path: "/{id}" }] }`)

				return dir
			},
			assert: func(t *testing.T, _ *routeIDs, reg *Registry[string], err error) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, routing.ErrMissingConstraint)
				assert.Empty(t, reg.Sources())
			},
		},
	} {
		t.Run(uc, func(t *testing.T) {
			t.Parallel()

			// GIVEN
			ids := &routeIDs{}
			src := tc.setup(t, t.TempDir())
			provider, reg := newTestProvider(t, config.RoutesConfig{Source: src}, ids)

			// WHEN
			err := provider.Start(t.Context())

			// THEN
			tc.assert(t, ids, reg, err)
			require.NoError(t, provider.Stop(t.Context()))
		})
	}
}

func TestFileProviderWatchesChanges(t *testing.T) {
	t.Parallel()

	// GIVEN
	ids := &routeIDs{}
	dir := t.TempDir()
	file := filepath.Join(dir, "routes.yaml")

	writeRouteSet(t, file, `{ version: "1", routes: [{ id: first, path: /foo }] }`)

	provider, reg := newTestProvider(t, config.RoutesConfig{Source: dir, Watch: true}, ids)

	require.NoError(t, provider.Start(t.Context()))

	defer provider.Stop(context.Background()) //nolint:errcheck

	require.Equal(t, []string{"first"}, ids.matched(t, reg, "/foo"))

	// WHEN
	writeRouteSet(t, file, `{ version: "1", routes: [{ id: second, path: /foo }] }`)

	// THEN
	assert.EventuallyWithT(t, func(c *assert.CollectT) {
		assert.Equal(c, []string{"second"}, ids.matched(t, reg, "/foo"))
	}, 2*time.Second, 20*time.Millisecond)

	// WHEN
	writeRouteSet(t, filepath.Join(dir, "other.yaml"), `{ version: "1", routes: [{ id: other, path: /bar }] }`)

	// THEN
	assert.EventuallyWithT(t, func(c *assert.CollectT) {
		assert.Equal(c, []string{"other"}, ids.matched(t, reg, "/bar"))
	}, 2*time.Second, 20*time.Millisecond)

	// WHEN
	writeRouteSet(t, file, `{ version: "1", routes: [{ id: broken, path: "/{id}" }] }`)
	time.Sleep(200 * time.Millisecond)

	// THEN
	assert.Equal(t, []string{"second"}, ids.matched(t, reg, "/foo"))

	// WHEN
	require.NoError(t, os.Remove(file))

	// THEN
	assert.EventuallyWithT(t, func(c *assert.CollectT) {
		assert.Empty(c, ids.matched(t, reg, "/foo"))
		assert.Len(c, reg.Sources(), 1)
	}, 2*time.Second, 20*time.Millisecond)
}
