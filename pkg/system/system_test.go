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
	"context"
	"strings"
	"testing"

	"github.com/stratagem-mc/stratagem/pkg/adt"
	"github.com/stratagem-mc/stratagem/pkg/lattice"
	"github.com/stratagem-mc/stratagem/pkg/strategy"
	"github.com/stratagem-mc/stratagem/pkg/system"
	"github.com/stratagem-mc/stratagem/pkg/term"
)

func requireNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func philosopherFixture(t *testing.T) (*adt.ADT, *term.Builder, term.Term) {
	t.Helper()

	sig := adt.NewSignature()

	sig, err := sig.WithSort("state")
	requireNoError(t, err)
	sig, err = sig.WithOperation("thinking", "state", true)
	requireNoError(t, err)
	sig, err = sig.WithOperation("eating", "state", true)
	requireNoError(t, err)

	a := adt.NewADT("philosophers", sig)
	b := term.NewBuilder(a)

	initial, err := b.Term("thinking")
	requireNoError(t, err)

	return a, b, initial
}

func TestDeclarationOnlyConstructionSucceeds(t *testing.T) {
	a, b, initial := philosopherFixture(t)
	_ = a

	eating, err := b.Term("eating")
	requireNoError(t, err)

	ts := system.NewTransitionSystem(a, initial)
	ts.DeclareStrategy("eat", nil, strategy.Simple{Rules: []strategy.Rule{{LHS: initial, RHS: eating}}}, true)

	if err := ts.Diagnose(); err != nil {
		t.Fatalf("expected a well-formed system to diagnose cleanly: %v", err)
	}
}

func TestDiagnoseReportsUndeclaredStrategy(t *testing.T) {
	a, _, initial := philosopherFixture(t)

	ts := system.NewTransitionSystem(a, initial)
	ts.DeclareStrategy("root", nil, strategy.Instance{Name: "bogus"}, true)

	err := ts.Diagnose()
	if err == nil || !strings.Contains(err.Error(), "Usage of invalid strategy bogus in declared strategy root") {
		t.Fatalf("expected an undefined-strategy diagnostic, got: %v", err)
	}
}

func TestDiagnoseReportsArityMismatch(t *testing.T) {
	a, _, initial := philosopherFixture(t)

	ts := system.NewTransitionSystem(a, initial)

	helper := ts.DeclareStrategy("helper", []string{"S1"}, nil, false)
	helper.Body = strategy.Variable{Formal: helper.Formal[0]}

	ts.DeclareStrategy("root", nil,
		strategy.Instance{Name: "helper", Actuals: []strategy.Strategy{strategy.Fail{}, strategy.Identity{}}}, true)

	err := ts.Diagnose()
	if err == nil || !strings.Contains(err.Error(), "Invalid number of parameters for strategy helper. Required Set{1}, found Set{2}") {
		t.Fatalf("expected an arity-mismatch diagnostic, got: %v", err)
	}
}

func TestDiagnoseReportsForeignVariableStrategy(t *testing.T) {
	a, _, initial := philosopherFixture(t)

	ts := system.NewTransitionSystem(a, initial)

	other := ts.DeclareStrategy("other", []string{"S2"}, strategy.Identity{}, false)
	ts.DeclareStrategy("root", []string{"S1"}, strategy.Variable{Formal: other.Formal[0]}, true)

	err := ts.Diagnose()
	if err == nil || !strings.Contains(err.Error(), "Strategy variable name 'S2' is not in declaration") {
		t.Fatalf("expected a foreign-variable diagnostic, got: %v", err)
	}
}

func TestDeclareStrategyPanicsOnDuplicateName(t *testing.T) {
	a, _, initial := philosopherFixture(t)

	ts := system.NewTransitionSystem(a, initial)
	ts.DeclareStrategy("eat", nil, strategy.Identity{}, false)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a panic on duplicate strategy declaration")
		}

		if !strings.Contains(r.(string), `duplicate strategy declaration "eat"`) {
			t.Fatalf("unexpected panic message: %v", r)
		}
	}()

	ts.DeclareStrategy("eat", nil, strategy.Fail{}, false)
}

func TestNewTransitionSystemPanicsOnCrossADTInitialState(t *testing.T) {
	a, _, _ := philosopherFixture(t)

	otherSig := adt.NewSignature()

	otherSig, err := otherSig.WithSort("n")
	requireNoError(t, err)
	otherSig, err = otherSig.WithOperation("zero", "n", true)
	requireNoError(t, err)

	other := adt.NewADT("counter", otherSig)
	ob := term.NewBuilder(other)

	foreignInitial, err := ob.Term("zero")
	requireNoError(t, err)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a panic when the initial term belongs to a different ADT")
		}

		if !strings.Contains(r.(string), "initial term belongs to ADT") {
			t.Fatalf("unexpected panic message: %v", r)
		}
	}()

	system.NewTransitionSystem(a, foreignInitial)
}

func TestReachableComputesFullFixedPoint(t *testing.T) {
	sig := adt.NewSignature()

	sig, err := sig.WithSort("n")
	requireNoError(t, err)
	sig, err = sig.WithOperation("zero", "n", true)
	requireNoError(t, err)
	sig, err = sig.WithOperation("succ", "n", true, "n")
	requireNoError(t, err)

	a := adt.NewADT("counter", sig)
	b := term.NewBuilder(a)

	zero, err := b.Term("zero")
	requireNoError(t, err)
	one, err := b.Term("succ", zero)
	requireNoError(t, err)
	two, err := b.Term("succ", one)
	requireNoError(t, err)

	ts := system.NewTransitionSystem(a, zero)
	ts.DeclareStrategy("step", nil, strategy.Simple{Rules: []strategy.Rule{
		{LHS: zero, RHS: one},
		{LHS: one, RHS: two},
	}}, true)

	requireNoError(t, ts.Diagnose())

	lb := lattice.NewBuilder()

	reachable, err := ts.Reachable(context.Background(), b, lb)
	requireNoError(t, err)

	if len(reachable.Terms()) != 3 || !reachable.Contains(zero) || !reachable.Contains(one) || !reachable.Contains(two) {
		t.Fatalf("expected {zero, one, two} to be reachable, got %v", reachable.Terms())
	}
}

func TestRewriteFailsWithoutTransitionRelation(t *testing.T) {
	a, b, initial := philosopherFixture(t)

	ts := system.NewTransitionSystem(a, initial)

	_, err := ts.Rewrite(context.Background(), b, lattice.NewBuilder(), initial)
	if err == nil {
		t.Fatalf("expected an error when no transition relation has been declared")
	}
}
