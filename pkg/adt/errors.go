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
package adt

import "fmt"

// BadSignatureError is reported immediately by the signature builder when an
// invariant (sort/operation uniqueness, an unknown super-sort, a sub-sort
// cycle, an unknown operation) is violated.  Construction errors never
// accumulate: the first one stops the chain.  An unknown operation is
// reported by term.Builder.Term when a term names one.
type BadSignatureError struct {
	// Offender names the sort or operation which violated an invariant.
	Offender string
	// Reason is a short human-readable explanation.
	Reason string
}

// Error implements the error interface.
func (e *BadSignatureError) Error() string {
	return fmt.Sprintf("bad signature: %s: %s", e.Offender, e.Reason)
}

func badSort(name, reason string) error {
	return &BadSignatureError{Offender: name, Reason: reason}
}

func badOperation(name, reason string) error {
	return &BadSignatureError{Offender: name, Reason: reason}
}
