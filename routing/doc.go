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

/*
Package routing implements a generic, in-process path router.

Routes are registered with a path made of separator delimited segments. A segment can reference a
variable (by default written as {name}), whose value must fully match the Pattern registered for that
variable in the route's Constraint. Several routes may reference the same variable at the same depth
with different patterns. The router keeps such routes side by side and reports all of them if the
path segment satisfies more than one pattern.

Matching a path never fails. It returns a Match, which holds the callbacks of all matched routes
in registration order, the path matched so far, the remaining (not matched) part of the path and
the variables captured while descending the route trie. The callbacks are not invoked by the router.
The caller steps through them either in a blocking way (Match.Next) or asynchronously (Match.NextAsync).

A route is either exact or partial. Exact routes fire only if the whole path has been consumed.
Partial routes fire as long as the route is a prefix of the path.

The Router performs no internal locking. Add and Clear must not run concurrently with Match.
*/
package routing
