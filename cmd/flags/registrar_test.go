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

package flags

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestRegisterGlobalFlags(t *testing.T) {
	t.Parallel()

	// GIVEN
	cmd := &cobra.Command{}

	// WHEN
	RegisterGlobalFlags(cmd)

	// THEN
	configFlag := cmd.PersistentFlags().Lookup(Config)
	assert.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.Empty(t, configFlag.DefValue)
	assert.NotEmpty(t, configFlag.Usage)

	envPrefixFlag := cmd.PersistentFlags().Lookup(EnvironmentConfigPrefix)
	assert.NotNil(t, envPrefixFlag)
	assert.Empty(t, envPrefixFlag.Shorthand)
	assert.Equal(t, "PATHROUTER_", envPrefixFlag.DefValue)
	assert.NotEmpty(t, envPrefixFlag.Usage)
}

func TestRegisterRoutingFlags(t *testing.T) {
	t.Parallel()

	// GIVEN
	cmd := &cobra.Command{}

	// WHEN
	RegisterRoutingFlags(cmd)

	// THEN
	routesFlag := cmd.Flags().Lookup(Routes)
	assert.NotNil(t, routesFlag)
	assert.Equal(t, "r", routesFlag.Shorthand)
	assert.Empty(t, routesFlag.DefValue)

	detailFlag := cmd.Flags().Lookup(Detail)
	assert.NotNil(t, detailFlag)
	assert.Empty(t, detailFlag.DefValue)

	asyncFlag := cmd.Flags().Lookup(Async)
	assert.NotNil(t, asyncFlag)
	assert.Equal(t, "false", asyncFlag.DefValue)
}
