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

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogFormatToString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "text", LogTextFormat.String())
	assert.Equal(t, "gelf", LogGelfFormat.String())
}

func TestLogConfiguration(t *testing.T) {
	t.Parallel()

	conf := &Configuration{Log: LoggingConfig{Format: LogGelfFormat}}

	assert.Equal(t, conf.Log, LogConfiguration(conf))
}
