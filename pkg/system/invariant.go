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
package system

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/stratagem-mc/stratagem/pkg/lattice"
	"github.com/stratagem-mc/stratagem/pkg/term"
	"github.com/stratagem-mc/stratagem/pkg/util/logical"
)

// Predicate is a named, decidable test over a single ground term: the
// atomic building block of an Invariant.
type Predicate struct {
	Name string
	Test func(term.Term) bool
}

// predicateAtom adapts a Predicate to pkg/util/logical's Atom contract, so
// an Invariant can be built up from Predicates using the same
// conjunction/disjunction/negation algebra the rest of that package offers,
// rather than a bespoke boolean tree.
type predicateAtom struct {
	predicate Predicate
	negated   bool
}

// Cmp orders atoms by predicate name, then by polarity; it exists only so
// Invariant (a DNF set of sets of atoms) can keep its conjuncts
// deduplicated and sorted.
func (a predicateAtom) Cmp(other predicateAtom) int {
	switch {
	case a.predicate.Name < other.predicate.Name:
		return -1
	case a.predicate.Name > other.predicate.Name:
		return 1
	case a.negated == other.negated:
		return 0
	case a.negated:
		return 1
	default:
		return -1
	}
}

// Negate implements logical.Atom.
func (a predicateAtom) Negate() predicateAtom {
	return predicateAtom{predicate: a.predicate, negated: !a.negated}
}

// Is implements logical.Atom; a named predicate is never statically known
// to be logical truth or falsehood, so it never short-circuits.
func (predicateAtom) Is(bool) bool {
	return false
}

// CloseOver implements logical.Atom. Named predicates carry no algebraic
// relationship to one another (unlike, say, two equalities sharing a
// variable), so there is nothing to close over.
func (a predicateAtom) CloseOver(predicateAtom) predicateAtom {
	return a
}

// String implements logical.Atom.
func (a predicateAtom) String(func(term.Term) string) string {
	if a.negated {
		return "¬" + a.predicate.Name
	}

	return a.predicate.Name
}

func (a predicateAtom) holds(t term.Term) bool {
	r := a.predicate.Test(t)
	if a.negated {
		return !r
	}

	return r
}

// NewNumericPredicate builds a Predicate testing the canonical numeric
// payload of a constant-generator term (term.ConstantValue) — e.g. a
// Petri-net place marking or a bounded round counter. The predicate fails
// (does not hold) on a term that carries no constant payload at all.
func NewNumericPredicate(name string, accept func(fr.Element) bool) Predicate {
	return Predicate{Name: name, Test: func(t term.Term) bool {
		v, ok := term.ConstantValue(t)
		return ok && accept(v)
	}}
}

// Invariant is a disjunctive-normal-form proposition over named Predicates,
// evaluated pointwise against a ground term.
type Invariant = logical.Proposition[term.Term, predicateAtom]

// NewInvariant builds an Invariant asserting a single predicate.
func NewInvariant(p Predicate) Invariant {
	return logical.NewProposition[term.Term, predicateAtom](predicateAtom{predicate: p})
}

// Not returns the negation of inv.
func Not(inv Invariant) Invariant {
	return inv.Negate()
}

// And returns the conjunction of lhs and rhs.
func And(lhs, rhs Invariant) Invariant {
	return lhs.And(rhs)
}

// Or returns the disjunction of lhs and rhs.
func Or(lhs, rhs Invariant) Invariant {
	return lhs.Or(rhs)
}

// CheckInvariant evaluates inv against every term in reached, returning the
// subset which violates it (nil if none do). This is how a caller checks a
// safety property against a TransitionSystem.Reachable result without
// walking the lattice element by hand.
func CheckInvariant(inv Invariant, reached lattice.Element) []term.Term {
	var violations []term.Term

	for _, t := range reached.Terms() {
		if !holds(inv, t) {
			violations = append(violations, t)
		}
	}

	return violations
}

func holds(inv Invariant, t term.Term) bool {
	if inv.IsTrue() {
		return true
	} else if inv.IsFalse() {
		return false
	}

	for _, c := range inv.Conjuncts() {
		if conjunctHolds(c, t) {
			return true
		}
	}

	return false
}

func conjunctHolds(c logical.Conjunction[term.Term, predicateAtom], t term.Term) bool {
	for _, atom := range c.Atoms() {
		if !atom.holds(t) {
			return false
		}
	}

	return true
}
