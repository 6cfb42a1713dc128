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

package parser

import (
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/pathrouter/internal/pathrouter"
)

func TestKoanfFromYaml(t *testing.T) {
	t.Setenv("PARSERTEST_SEPARATOR", ".")

	for uc, tc := range map[string]struct {
		config string
		assert func(t *testing.T, err error, konf *koanf.Koanf)
	}{
		"valid content": {
			config: `
some_string: foo
someint: 3
nested1:
  somebool: true
  some_string: ${PARSERTEST_SEPARATOR}
`,
			assert: func(t *testing.T, err error, konf *koanf.Koanf) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "foo", konf.Get("some_string"))
				assert.Equal(t, 3, konf.Get("someint"))
				assert.Equal(t, ".", konf.Get("nested1.some_string"))
				assert.Equal(t, true, konf.Get("nested1.somebool"))
			},
		},
		"invalid content": {
			config: "foobar",
			assert: func(t *testing.T, err error, _ *koanf.Koanf) {
				t.Helper()

				require.ErrorIs(t, err, pathrouter.ErrConfiguration)
				assert.Contains(t, err.Error(), "failed to load")
			},
		},
	} {
		t.Run(uc, func(t *testing.T) {
			// GIVEN
			fileName := writeFile(t, t.TempDir(), "config.yaml", tc.config)

			// WHEN
			konf, err := koanfFromYaml(fileName)

			// THEN
			tc.assert(t, err, konf)
		})
	}
}

func TestKoanfFromYamlWithMissingFile(t *testing.T) {
	t.Parallel()

	_, err := koanfFromYaml(filepath.Join(t.TempDir(), "missing.yaml"))

	require.ErrorIs(t, err, pathrouter.ErrConfiguration)
}
