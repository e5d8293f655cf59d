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
package term

import "fmt"

// BadTermError is reported when a term cannot be constructed: an arity
// mismatch, an ill-sorted argument, or a sub-term belonging to a different
// ADT than its parent.  An unknown operation is reported as an
// adt.BadSignatureError.
type BadTermError struct {
	Operation string
	Reason    string
}

// Error implements the error interface.
func (e *BadTermError) Error() string {
	return fmt.Sprintf("bad term: %s: %s", e.Operation, e.Reason)
}

func badTerm(op, reason string) error {
	return &BadTermError{Operation: op, Reason: reason}
}

// ErrUnboundVariable is returned by Apply when a pattern still contains a
// variable with no binding in the given substitution.
type ErrUnboundVariable struct {
	Variable string
}

// Error implements the error interface.
func (e *ErrUnboundVariable) Error() string {
	return fmt.Sprintf("unbound variable: %s", e.Variable)
}
