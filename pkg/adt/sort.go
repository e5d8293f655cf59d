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

import (
	"github.com/stratagem-mc/stratagem/pkg/util"
	"github.com/stratagem-mc/stratagem/pkg/util/collection/bit"
)

// Sort is a named element of a many-sorted signature.  A sort is either a
// base sort, or declared as a sub-sort of exactly one other (previously
// declared) sort.
type Sort struct {
	name  string
	super util.Option[string]
	// index is this sort's position within its owning Signature.
	index uint
	// ancestors holds the transitive closure of super-sort indices, used to
	// answer IsSubSortOf in O(1).  It does not include this sort's own index.
	ancestors bit.Set
}

// Name returns this sort's declared name.
func (s Sort) Name() string {
	return s.name
}

// SuperSort returns the name of this sort's immediate super-sort, if any.
func (s Sort) SuperSort() util.Option[string] {
	return s.super
}

// IsBase returns true if this sort has no super-sort.
func (s Sort) IsBase() bool {
	return s.super.IsEmpty()
}
