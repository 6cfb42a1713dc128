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

package routing

import (
	"regexp"
	"strings"
)

// splitPath turns path into its directory tokens. The first token is always the separator,
// followed by the non-blank segments, each pair of them delimited by the separator again.
// A path without segments results in the separator alone.
func splitPath(path, separator string) []string {
	pieces := strings.Split(path, separator)
	tokens := make([]string, 1, 2*len(pieces)) // nolint: mnd
	tokens[0] = separator

	for _, piece := range pieces {
		if len(strings.TrimSpace(piece)) == 0 {
			continue
		}

		if len(tokens) > 1 {
			tokens = append(tokens, separator)
		}

		tokens = append(tokens, piece)
	}

	return tokens
}

// variableName returns the name of the variable referenced by token. The delimiter
// pattern must match the token in its entirety.
func variableName(token string, delimiter *regexp.Regexp) (string, bool) {
	loc := delimiter.FindStringSubmatchIndex(token)
	if loc == nil || loc[0] != 0 || loc[1] != len(token) || loc[2] < 0 {
		return "", false
	}

	return token[loc[2]:loc[3]], true
}

func joinTokens(tokens []string) string { return strings.Join(tokens, "") }

// remainingPath renders the not consumed tokens. These always start with a separator,
// except after the root, in which case it is added to keep the result a valid path.
func remainingPath(tokens []string, separator string) string {
	if len(tokens) == 0 {
		return ""
	}

	if tokens[0] != separator {
		return separator + joinTokens(tokens)
	}

	return joinTokens(tokens)
}
