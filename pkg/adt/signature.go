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

// Package adt provides the many-sorted algebraic signature and abstract data
// type (ADT) layer: sorts with a sub-sort relation, operations and
// generators, and variable declarations.  Everything here is
// construction-then-freeze: a Signature or ADT is built incrementally through
// chainable With* methods, each of which returns a new value (or the first
// BadSignatureError encountered) rather than mutating in place.
package adt

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/stratagem-mc/stratagem/pkg/util"
	"github.com/stratagem-mc/stratagem/pkg/util/collection/bit"
)

// Signature is an ordered set of sorts plus operations.  Sort names and
// operation names are each unique within a Signature.
type Signature struct {
	sorts   []Sort
	sortIdx map[string]uint
	ops     []Operation
	opIdx   map[string]uint
}

// NewSignature constructs an empty signature.
func NewSignature() Signature {
	return Signature{
		sortIdx: make(map[string]uint),
		opIdx:   make(map[string]uint),
	}
}

// Sorts returns the ordered list of declared sorts.
func (s Signature) Sorts() []Sort {
	return s.sorts
}

// Operations returns the ordered list of declared operations.
func (s Signature) Operations() []Operation {
	return s.ops
}

// Sort looks up a declared sort by name.
func (s Signature) Sort(name string) (Sort, bool) {
	i, ok := s.sortIdx[name]
	if !ok {
		return Sort{}, false
	}

	return s.sorts[i], true
}

// Operation looks up a declared operation by name.
func (s Signature) Operation(name string) (Operation, bool) {
	i, ok := s.opIdx[name]
	if !ok {
		return Operation{}, false
	}

	return s.ops[i], true
}

// IsSubSortOf returns true if sort a is the same sort as b, or a (transitive)
// sub-sort of b.  Both names must be declared in this signature.
func (s Signature) IsSubSortOf(a, b string) bool {
	ai, aok := s.sortIdx[a]
	bi, bok := s.sortIdx[b]

	if !aok || !bok {
		return false
	}

	if ai == bi {
		return true
	}

	return s.sorts[ai].ancestors.Contains(bi)
}

// WithSort declares a new sort, optionally as a sub-sort of an
// already-declared super-sort.  Because a super-sort must already exist,
// the sub-sort relation is a DAG by construction: no cycle check is needed
// beyond requiring the super-sort to be previously declared.
func (s Signature) WithSort(name string, super ...string) (Signature, error) {
	if len(super) > 1 {
		return s, badSort(name, "at most one super-sort may be given")
	}

	if _, exists := s.sortIdx[name]; exists {
		return s, badSort(name, "duplicate sort name")
	}

	var (
		ancestors bit.Set
		superOpt  = util.None[string]()
	)

	if len(super) == 1 {
		superIdx, ok := s.sortIdx[super[0]]
		if !ok {
			return s, badSort(name, "unknown super-sort '"+super[0]+"'")
		}

		ancestors.Insert(superIdx)
		ancestors.Union(s.sorts[superIdx].ancestors)
		superOpt = util.Some(super[0])
	}

	ns := s.clone()
	index := uint(len(ns.sorts))
	ns.sorts = append(ns.sorts, Sort{
		name:      name,
		super:     superOpt,
		index:     index,
		ancestors: ancestors,
	})
	ns.sortIdx[name] = index

	return ns, nil
}

// WithOperation declares a new operation.  paramSorts may be empty (a
// constant); every named sort (params and return) must already be declared.
func (s Signature) WithOperation(name, returnSort string, isGenerator bool, paramSorts ...string) (Signature, error) {
	if _, exists := s.opIdx[name]; exists {
		return s, badOperation(name, "duplicate operation name")
	}

	if _, ok := s.sortIdx[returnSort]; !ok {
		return s, badOperation(name, "unknown return sort '"+returnSort+"'")
	}

	for _, p := range paramSorts {
		if _, ok := s.sortIdx[p]; !ok {
			return s, badOperation(name, "unknown parameter sort '"+p+"'")
		}
	}

	ns := s.clone()
	index := uint(len(ns.ops))
	ns.ops = append(ns.ops, Operation{
		name:        name,
		params:      append([]string{}, paramSorts...),
		ret:         returnSort,
		isGenerator: isGenerator,
	})
	ns.opIdx[name] = index

	return ns, nil
}

// WithConstantGenerator declares a zero-arity generator carrying a canonical
// numeric payload (see Operation.IsConstant).
func (s Signature) WithConstantGenerator(name, returnSort string, value fr.Element) (Signature, error) {
	ns, err := s.WithOperation(name, returnSort, true)
	if err != nil {
		return s, err
	}

	idx := ns.opIdx[name]
	v := value
	ns.ops[idx].constant = &v

	return ns, nil
}

// clone returns a shallow-but-disjoint copy of this signature, suitable for
// the immutable-by-copy builder chain: the backing slices and maps are
// copied so that appending to the new value never aliases the original.
func (s Signature) clone() Signature {
	ns := Signature{
		sorts:   append([]Sort{}, s.sorts...),
		ops:     append([]Operation{}, s.ops...),
		sortIdx: make(map[string]uint, len(s.sortIdx)),
		opIdx:   make(map[string]uint, len(s.opIdx)),
	}

	for k, v := range s.sortIdx {
		ns.sortIdx[k] = v
	}

	for k, v := range s.opIdx {
		ns.opIdx[k] = v
	}

	return ns
}
