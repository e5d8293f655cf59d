// Copyright Stratagem Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package rewriter

import "fmt"

// Error reports an evaluation-time problem that pkg/linker should have
// caught statically (an unresolved Instance, an arity mismatch, an unbound
// Variable). Seeing one in practice means a Rewriter was driven over
// declarations that were never linked.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

func unresolvedInstance(name string) *Error {
	return &Error{Reason: fmt.Sprintf("rewriter: unresolved strategy instance %q: run pkg/linker before rewriting", name)}
}

func instanceArityMismatch(name string, required, found int) *Error {
	return &Error{Reason: fmt.Sprintf(
		"rewriter: strategy instance %q called with %d parameters, declaration requires %d", name, found, required)}
}

func unboundVariable(name string) *Error {
	return &Error{Reason: fmt.Sprintf("rewriter: strategy variable %q has no binding in the current frame", name)}
}
