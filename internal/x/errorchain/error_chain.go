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

package errorchain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/iancoleman/strcase"
)

type cause struct {
	err error
	msg string
}

func (c cause) String() string {
	if len(c.msg) == 0 {
		return c.err.Error()
	}

	return c.err.Error() + ": " + c.msg
}

// ErrorChain is an ordered list of errors. The first one classifies the chain, e.g. as
// a configuration error, all following ones describe what caused it.
type ErrorChain struct { // nolint: errname
	causes []cause
}

func New(err error) *ErrorChain { return NewWithMessage(err, "") }

func NewWithMessage(err error, message string) *ErrorChain {
	return &ErrorChain{causes: []cause{{err: err, msg: message}}}
}

func NewWithMessagef(err error, format string, a ...any) *ErrorChain {
	return NewWithMessage(err, fmt.Sprintf(format, a...))
}

// CausedBy appends err to the chain.
func (ec *ErrorChain) CausedBy(err error) *ErrorChain {
	ec.causes = append(ec.causes, cause{err: err})

	return ec
}

func (ec *ErrorChain) Error() string {
	parts := make([]string, len(ec.causes))
	for idx, c := range ec.causes {
		parts[idx] = c.String()
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the chain without its first element or nil if nothing is left.
func (ec *ErrorChain) Unwrap() error {
	if len(ec.causes) < 2 { //nolint:mnd
		return nil
	}

	rest := ec.causes[1:len(ec.causes):len(ec.causes)]

	return &ErrorChain{causes: rest}
}

// Is only looks at the first element. errors.Is reaches the others via Unwrap.
func (ec *ErrorChain) Is(target error) bool {
	return len(ec.causes) != 0 && errors.Is(ec.causes[0].err, target)
}

func (ec *ErrorChain) As(target any) bool {
	return len(ec.causes) != 0 && errors.As(ec.causes[0].err, target)
}

// MarshalJSON renders the first element only. The causes are not meant to leave the process.
func (ec *ErrorChain) MarshalJSON() ([]byte, error) {
	type message struct {
		Code    string `json:"code"`
		Message string `json:"message,omitempty"`
	}

	if len(ec.causes) == 0 {
		return json.Marshal(message{})
	}

	return json.Marshal(message{
		Code:    strcase.ToLowerCamel(ec.causes[0].err.Error()),
		Message: ec.causes[0].msg,
	})
}
