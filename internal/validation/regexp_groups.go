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

package validation

import (
	"reflect"
	"regexp"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// RegexpGroups implements the "regexp_groups" tag. A string field tagged with regexp_groups=N
// must hold a regular expression with exactly N capture groups.
type RegexpGroups struct{}

func (RegexpGroups) Tag() string { return "regexp_groups" }

func (RegexpGroups) AlwaysValidate() bool { return false }

func (RegexpGroups) Validate(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}

	expected, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	re, err := regexp.Compile(fl.Field().String())
	if err != nil {
		return false
	}

	return re.NumSubexp() == expected
}

func (RegexpGroups) MessageTemplate() string {
	return "{0} must be a regular expression with {1} capture group(s)"
}

func (r RegexpGroups) Translate(ut ut.Translator, fe validator.FieldError) string {
	msg, err := ut.T(r.Tag(), fe.Field(), fe.Param())
	if err != nil {
		return fe.Error()
	}

	return msg
}
