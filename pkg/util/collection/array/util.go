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

// Package array holds small generic helper types shared by the collection
// packages.
package array

import "cmp"

// Predicate abstracts the notion of a function which identifies something.
type Predicate[T any] func(T) bool

// Comparable interface which can be implemented by non-primitive types.
type Comparable[T any] interface {
	// Cmp returns < 0 if this is less than other, or 0 if they are equal, or >
	// 0 if this is greater than other.
	Cmp(other T) int
}

// Compare two slices of comparable elements: a shorter slice is less than a
// longer one, and slices of equal length are compared element by element.
func Compare[T Comparable[T]](lhs []T, rhs []T) int {
	c := cmp.Compare(len(lhs), len(rhs))
	//
	if c == 0 {
		for i := range lhs {
			if c = lhs[i].Cmp(rhs[i]); c != 0 {
				break
			}
		}
	}
	//
	return c
}
