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

package testsupport

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
)

// TestingLog collects everything logged through it. It can be used as the target of a
// zerolog.TestWriter, also if logging happens from several goroutines.
type TestingLog struct {
	testing.TB

	mut sync.Mutex
	buf bytes.Buffer
}

func (t *TestingLog) Log(args ...any) {
	t.write(fmt.Sprint(args...))
}

func (t *TestingLog) Logf(format string, args ...any) {
	t.write(fmt.Sprintf(format, args...))
}

func (t *TestingLog) CollectedLog() string {
	t.mut.Lock()
	defer t.mut.Unlock()

	return t.buf.String()
}

func (t *TestingLog) write(value string) {
	t.mut.Lock()
	defer t.mut.Unlock()

	if _, err := t.buf.WriteString(value); err != nil {
		t.Error(err)
	}
}
