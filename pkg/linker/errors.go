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
package linker

import "fmt"

// Error is a single static-validation failure produced while linking a
// transition system's strategy declarations.  Its message's prefix is
// stable: collaborators (and tests) assert on it.
type Error struct {
	// Declaration names the declaration in which the problem was found.
	Declaration string
	Message     string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

func undefinedStrategy(usedName, inDeclaration string) *Error {
	return &Error{
		Declaration: inDeclaration,
		Message:     fmt.Sprintf("Usage of invalid strategy %s in declared strategy %s", usedName, inDeclaration),
	}
}

func arityMismatch(name, inDeclaration string, required, found int) *Error {
	return &Error{
		Declaration: inDeclaration,
		Message: fmt.Sprintf(
			"Invalid number of parameters for strategy %s. Required Set{%d}, found Set{%d}",
			name, required, found),
	}
}

func unknownVariableStrategy(varName, inDeclaration string) *Error {
	return &Error{
		Declaration: inDeclaration,
		Message: fmt.Sprintf(
			"Strategy variable name '%s' is not in declaration. If you wanted to use a declared strategy you need to append parentheses to it, like this: %s()",
			varName, varName),
	}
}

func illegalUnderNot(found, inDeclaration string) *Error {
	return &Error{
		Declaration: inDeclaration,
		Message: fmt.Sprintf(
			"Strategy Not only accepts SimpleStrategy and Not strategies as parameters. Found %s", found),
	}
}

func illegalUnderNotParameterised(found, inDeclaration string) *Error {
	return &Error{
		Declaration: inDeclaration,
		Message: fmt.Sprintf(
			"Strategy Not only accepts SimpleStrategy and Not strategies as parameters. Found declared strategy %s with parameters", found),
	}
}
