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

package encoding

import (
	"testing"

	"github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/assert"
)

func TestDecoderOptions(t *testing.T) {
	t.Parallel()

	for uc, tc := range map[string]struct {
		option DecoderOption
		assert func(t *testing.T, opts *decoderOpts)
	}{
		"empty content type keeps the default": {
			option: WithSourceContentType(""),
			assert: func(t *testing.T, opts *decoderOpts) {
				t.Helper()

				assert.Equal(t, "application/yaml", opts.contentType)
			},
		},
		"content type": {
			option: WithSourceContentType("application/json"),
			assert: func(t *testing.T, opts *decoderOpts) {
				t.Helper()

				assert.Equal(t, "application/json", opts.contentType)
			},
		},
		"nil validator keeps the default": {
			option: WithValidator(nil),
			assert: func(t *testing.T, opts *decoderOpts) {
				t.Helper()

				assert.IsType(t, noopValidator{}, opts.validator)
			},
		},
		"error on unused": {
			option: WithErrorOnUnused(true),
			assert: func(t *testing.T, opts *decoderOpts) {
				t.Helper()

				assert.True(t, opts.errorOnUnused)
			},
		},
		"env vars substitution": {
			option: WithEnvVarsSubstitution(true),
			assert: func(t *testing.T, opts *decoderOpts) {
				t.Helper()

				assert.True(t, opts.substituteEnvVars)
			},
		},
		"decode hooks": {
			option: WithDecodeHooks(mapstructure.StringToBasicTypeHookFunc(), mapstructure.StringToTimeHookFunc("")),
			assert: func(t *testing.T, opts *decoderOpts) {
				t.Helper()

				assert.Len(t, opts.decodeHooks, 2)
			},
		},
		"empty tag name keeps the default": {
			option: WithTagName(""),
			assert: func(t *testing.T, opts *decoderOpts) {
				t.Helper()

				assert.Equal(t, "json", opts.tagName)
			},
		},
		"tag name": {
			option: WithTagName("yaml"),
			assert: func(t *testing.T, opts *decoderOpts) {
				t.Helper()

				assert.Equal(t, "yaml", opts.tagName)
			},
		},
	} {
		t.Run(uc, func(t *testing.T) {
			t.Parallel()

			// GIVEN
			opts := defaultDecoderOpts()

			// WHEN
			tc.option(&opts)

			// THEN
			tc.assert(t, &opts)
		})
	}
}
