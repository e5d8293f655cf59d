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
package system_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/stratagem-mc/stratagem/pkg/adt"
	"github.com/stratagem-mc/stratagem/pkg/lattice"
	"github.com/stratagem-mc/stratagem/pkg/system"
	"github.com/stratagem-mc/stratagem/pkg/term"
)

func isEating(t term.Term) bool {
	op, _, ok := term.Application(t)
	return ok && op.Name() == "eating"
}

func TestInvariantAcceptsSatisfyingStates(t *testing.T) {
	sig := adt.NewSignature()

	sig, err := sig.WithSort("state")
	requireNoError(t, err)
	sig, err = sig.WithOperation("thinking", "state", true)
	requireNoError(t, err)
	sig, err = sig.WithOperation("eating", "state", true)
	requireNoError(t, err)

	a := adt.NewADT("philosophers", sig)
	b := term.NewBuilder(a)

	thinking, err := b.Term("thinking")
	requireNoError(t, err)
	eating, err := b.Term("eating")
	requireNoError(t, err)

	neverEating := system.Not(system.NewInvariant(system.Predicate{Name: "eating", Test: isEating}))

	lb := lattice.NewBuilder()
	reached := lb.FromTerms([]term.Term{thinking})

	if v := system.CheckInvariant(neverEating, reached); v != nil {
		t.Fatalf("expected no violations, got %v", v)
	}

	reached = lb.FromTerms([]term.Term{thinking, eating})

	v := system.CheckInvariant(neverEating, reached)
	if len(v) != 1 || v[0] != eating {
		t.Fatalf("expected exactly the eating state to violate the invariant, got %v", v)
	}
}

func TestInvariantDisjunctionAndConjunction(t *testing.T) {
	sig := adt.NewSignature()

	sig, err := sig.WithSort("state")
	requireNoError(t, err)
	sig, err = sig.WithOperation("a", "state", true)
	requireNoError(t, err)
	sig, err = sig.WithOperation("b", "state", true)
	requireNoError(t, err)
	sig, err = sig.WithOperation("c", "state", true)
	requireNoError(t, err)

	ad := adt.NewADT("letters", sig)
	b := term.NewBuilder(ad)

	ta, err := b.Term("a")
	requireNoError(t, err)
	tb, err := b.Term("b")
	requireNoError(t, err)
	tc, err := b.Term("c")
	requireNoError(t, err)

	isA := system.NewInvariant(system.Predicate{Name: "is-a", Test: func(t term.Term) bool {
		op, _, ok := term.Application(t)
		return ok && op.Name() == "a"
	}})
	isB := system.NewInvariant(system.Predicate{Name: "is-b", Test: func(t term.Term) bool {
		op, _, ok := term.Application(t)
		return ok && op.Name() == "b"
	}})

	aOrB := system.Or(isA, isB)

	lb := lattice.NewBuilder()
	reached := lb.FromTerms([]term.Term{ta, tb, tc})

	v := system.CheckInvariant(aOrB, reached)
	if len(v) != 1 || v[0] != tc {
		t.Fatalf("expected only 'c' to violate (is-a or is-b), got %v", v)
	}

	aAndB := system.And(isA, isB)

	v = system.CheckInvariant(aAndB, reached)
	if len(v) != 3 {
		t.Fatalf("expected (is-a and is-b) to be unsatisfiable over distinct generators, violations: %v", v)
	}
}

func TestNumericPredicateChecksConstantGeneratorPayload(t *testing.T) {
	sig := adt.NewSignature()

	sig, err := sig.WithSort("marking")
	requireNoError(t, err)

	var zero, five, ten fr.Element
	zero.SetUint64(0)
	five.SetUint64(5)
	ten.SetUint64(10)

	sig, err = sig.WithConstantGenerator("m0", "marking", zero)
	requireNoError(t, err)
	sig, err = sig.WithConstantGenerator("m5", "marking", five)
	requireNoError(t, err)
	sig, err = sig.WithConstantGenerator("m10", "marking", ten)
	requireNoError(t, err)

	a := adt.NewADT("petri-place", sig)
	b := term.NewBuilder(a)

	t0, err := b.Term("m0")
	requireNoError(t, err)
	t5, err := b.Term("m5")
	requireNoError(t, err)
	t10, err := b.Term("m10")
	requireNoError(t, err)

	var bound fr.Element
	bound.SetUint64(5)

	withinBound := system.NewInvariant(system.NewNumericPredicate("within-bound", func(v fr.Element) bool {
		return v.Cmp(&bound) <= 0
	}))

	lb := lattice.NewBuilder()
	reached := lb.FromTerms([]term.Term{t0, t5, t10})

	v := system.CheckInvariant(withinBound, reached)
	if len(v) != 1 || v[0] != t10 {
		t.Fatalf("expected only the marking exceeding the bound to violate the invariant, got %v", v)
	}
}
