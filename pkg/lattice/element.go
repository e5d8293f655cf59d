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

// Package lattice implements the memoised, hash-consed lattice of
// finite term sets that a Union strategy lifts its operands into and that
// the system-level fixed-point driver iterates over to compute a reachable
// state set. Elements are canonicalised by a Builder the same way pkg/term's
// Builder hash-conses Terms, so convergence of an iteration is a pointer
// comparison rather than a deep one.
package lattice

import (
	"github.com/stratagem-mc/stratagem/pkg/term"
	"github.com/stratagem-mc/stratagem/pkg/util/collection/hash"
)

// Element is a finite set of ground terms. The bottom element (the empty
// set) represents a failed strategy application.
type Element interface {
	hash.Hasher[Element]
	// IsBottom reports whether this element is the empty set.
	IsBottom() bool
	// Contains reports whether t is a member of this element.
	Contains(t term.Term) bool
	// Terms returns this element's members. The order is unspecified but
	// stable for a given Element value.
	Terms() []term.Term
}

// termSet is the sole Element implementation. Values are only ever produced
// through a Builder, which hash-conses them.
type termSet struct {
	terms    []term.Term
	hashCode uint64
}

func newTermSet(elems []term.Term) *termSet {
	seen := hash.NewSet[term.Term](uint(len(elems)))

	var (
		uniq []term.Term
		h    uint64
	)

	for _, t := range elems {
		if seen.Contains(t) {
			continue
		}

		seen.Insert(t)
		uniq = append(uniq, t)
		h ^= t.Hash()
	}

	return &termSet{terms: uniq, hashCode: h}
}

func (s *termSet) IsBottom() bool {
	return len(s.terms) == 0
}

func (s *termSet) Contains(t term.Term) bool {
	return s.contains(t)
}

func (s *termSet) Terms() []term.Term {
	return s.terms
}

func (s *termSet) contains(t term.Term) bool {
	for _, x := range s.terms {
		if x.Equals(t) {
			return true
		}
	}

	return false
}

// Equals implements hash.Hasher[Element]: two term sets are equal iff they
// contain the same members, irrespective of insertion order.
func (s *termSet) Equals(other Element) bool {
	o, ok := other.(*termSet)
	if !ok || len(o.terms) != len(s.terms) {
		return false
	}

	for _, t := range s.terms {
		if !o.contains(t) {
			return false
		}
	}

	return true
}

// Hash implements hash.Hasher[Element]. It is order-independent (XOR of
// member hashes), as required for Equals to agree with it on sets built from
// permuted insertion orders.
func (s *termSet) Hash() uint64 {
	return s.hashCode
}
