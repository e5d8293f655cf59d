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
package rewriter_test

import (
	"context"
	"testing"

	"github.com/stratagem-mc/stratagem/pkg/adt"
	"github.com/stratagem-mc/stratagem/pkg/lattice"
	"github.com/stratagem-mc/stratagem/pkg/linker"
	"github.com/stratagem-mc/stratagem/pkg/rewriter"
	"github.com/stratagem-mc/stratagem/pkg/strategy"
	"github.com/stratagem-mc/stratagem/pkg/term"
)

func requireNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func counterFixture(t *testing.T) (*term.Builder, term.Term, term.Term, term.Term) {
	t.Helper()

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

	return b, zero, one, two
}

// boundedIncrement grows zero -> succ(zero) -> succ(succ(zero)), then fails:
// a deterministic, terminating strategy to exercise Repeat and FixPoint
// without risking an infinite loop in the test itself.
func boundedIncrement(b *term.Builder, zero, one, two term.Term) strategy.Simple {
	three, err := b.Term("succ", two)
	if err != nil {
		panic(err)
	}

	return strategy.Simple{Rules: []strategy.Rule{
		{LHS: zero, RHS: one},
		{LHS: one, RHS: two},
		{LHS: two, RHS: three},
	}}
}

func TestIdentityAndFail(t *testing.T) {
	b, zero, _, _ := counterFixture(t)
	r := rewriter.New(b, lattice.NewBuilder(), linker.MapEnvironment{})

	id, err := r.Apply(context.Background(), strategy.Identity{}, zero)
	requireNoError(t, err)

	if len(id.Terms()) != 1 || !id.Contains(zero) {
		t.Fatalf("expected Identity to return the input unchanged")
	}

	fail, err := r.Apply(context.Background(), strategy.Fail{}, zero)
	requireNoError(t, err)

	if !fail.IsBottom() {
		t.Fatalf("expected Fail to produce bottom")
	}
}

func TestSimpleAppliesFirstMatchingRule(t *testing.T) {
	b, zero, one, _ := counterFixture(t)
	r := rewriter.New(b, lattice.NewBuilder(), linker.MapEnvironment{})

	s := strategy.Simple{Rules: []strategy.Rule{{LHS: zero, RHS: one}}}

	res, err := r.Apply(context.Background(), s, zero)
	requireNoError(t, err)

	if len(res.Terms()) != 1 || !res.Contains(one) {
		t.Fatalf("expected zero to rewrite to one")
	}

	// no rule matches 'one'
	res, err = r.Apply(context.Background(), s, one)
	requireNoError(t, err)

	if !res.IsBottom() {
		t.Fatalf("expected no matching rule to fail")
	}
}

func TestChoiceFallsBackOnFailure(t *testing.T) {
	b, zero, one, _ := counterFixture(t)
	r := rewriter.New(b, lattice.NewBuilder(), linker.MapEnvironment{})

	s := strategy.Choice{First: strategy.Fail{}, Second: strategy.Simple{Rules: []strategy.Rule{{LHS: zero, RHS: one}}}}

	res, err := r.Apply(context.Background(), s, zero)
	requireNoError(t, err)

	if len(res.Terms()) != 1 || !res.Contains(one) {
		t.Fatalf("expected Choice to fall back to Second")
	}
}

func TestSequenceComposes(t *testing.T) {
	b, zero, one, two := counterFixture(t)
	r := rewriter.New(b, lattice.NewBuilder(), linker.MapEnvironment{})

	inc := strategy.Simple{Rules: []strategy.Rule{{LHS: zero, RHS: one}, {LHS: one, RHS: two}}}
	s := strategy.Sequence{First: inc, Second: inc}

	res, err := r.Apply(context.Background(), s, zero)
	requireNoError(t, err)

	if len(res.Terms()) != 1 || !res.Contains(two) {
		t.Fatalf("expected zero to advance by two steps")
	}
}

func TestUnionCombinesBothBranches(t *testing.T) {
	b, zero, one, _ := counterFixture(t)
	r := rewriter.New(b, lattice.NewBuilder(), linker.MapEnvironment{})

	s := strategy.Union{
		First:  strategy.Simple{Rules: []strategy.Rule{{LHS: zero, RHS: one}}},
		Second: strategy.Identity{},
	}

	res, err := r.Apply(context.Background(), s, zero)
	requireNoError(t, err)

	if len(res.Terms()) != 2 || !res.Contains(zero) || !res.Contains(one) {
		t.Fatalf("expected Union to contain both the rewritten and the original term")
	}
}

func TestIfThenElseTestsConditionAgainstOriginalInput(t *testing.T) {
	b, zero, one, two := counterFixture(t)
	r := rewriter.New(b, lattice.NewBuilder(), linker.MapEnvironment{})

	s := strategy.IfThenElse{
		Cond: strategy.Simple{Rules: []strategy.Rule{{LHS: zero, RHS: one}}},
		Then: strategy.Simple{Rules: []strategy.Rule{{LHS: zero, RHS: two}}},
		Else: strategy.Fail{},
	}

	res, err := r.Apply(context.Background(), s, zero)
	requireNoError(t, err)

	if len(res.Terms()) != 1 || !res.Contains(two) {
		t.Fatalf("expected Then to evaluate against the original input, not Cond's result")
	}
}

func TestOneRewritesSelectedChild(t *testing.T) {
	b, zero, one, _ := counterFixture(t)
	r := rewriter.New(b, lattice.NewBuilder(), linker.MapEnvironment{})

	pair, err := b.Term("succ", zero)
	requireNoError(t, err)

	s := strategy.NewOne(strategy.Simple{Rules: []strategy.Rule{{LHS: zero, RHS: one}}})

	res, err := r.Apply(context.Background(), s, pair)
	requireNoError(t, err)

	expected, err := b.Term("succ", one)
	requireNoError(t, err)

	if len(res.Terms()) != 1 || !res.Contains(expected) {
		t.Fatalf("expected One to rewrite the first child only")
	}
}

func TestOneFailsWhenChildOutOfRange(t *testing.T) {
	b, zero, _, _ := counterFixture(t)
	r := rewriter.New(b, lattice.NewBuilder(), linker.MapEnvironment{})

	s := strategy.NewOne(strategy.Identity{}, 1)

	res, err := r.Apply(context.Background(), s, zero)
	requireNoError(t, err)

	if !res.IsBottom() {
		t.Fatalf("expected One to fail on a childless term")
	}
}

func TestNotSucceedsIffInnerFails(t *testing.T) {
	b, zero, one, _ := counterFixture(t)
	r := rewriter.New(b, lattice.NewBuilder(), linker.MapEnvironment{})

	doesFail := strategy.Not{Inner: strategy.Fail{}}

	res, err := r.Apply(context.Background(), doesFail, zero)
	requireNoError(t, err)

	if len(res.Terms()) != 1 || !res.Contains(zero) {
		t.Fatalf("expected Not(Fail) to succeed with the unchanged input")
	}

	doesNotFail := strategy.Not{Inner: strategy.Simple{Rules: []strategy.Rule{{LHS: zero, RHS: one}}}}

	res, err = r.Apply(context.Background(), doesNotFail, zero)
	requireNoError(t, err)

	if !res.IsBottom() {
		t.Fatalf("expected Not(succeeding) to fail")
	}
}

func TestRepeatRunsUntilFailure(t *testing.T) {
	b, zero, _, two := counterFixture(t)
	r := rewriter.New(b, lattice.NewBuilder(), linker.MapEnvironment{})

	inc := boundedIncrement(b, zero, mustOne(b, zero), two)

	res, err := r.Apply(context.Background(), strategy.RepeatOf(inc), zero)
	requireNoError(t, err)

	three, err := b.Term("succ", two)
	requireNoError(t, err)

	if len(res.Terms()) != 1 || !res.Contains(three) {
		t.Fatalf("expected Repeat to run to the strategy's fixed point, got %v", res.Terms())
	}
}

func TestFixPointConverges(t *testing.T) {
	b, zero, one, two := counterFixture(t)
	r := rewriter.New(b, lattice.NewBuilder(), linker.MapEnvironment{})

	inc := boundedIncrement(b, zero, one, two)

	res, err := r.Apply(context.Background(), strategy.FixPoint{Inner: inc}, zero)
	requireNoError(t, err)

	three, err := b.Term("succ", two)
	requireNoError(t, err)

	if len(res.Terms()) != 1 || !res.Contains(three) {
		t.Fatalf("expected FixPoint to stabilise at the strategy's terminal term")
	}
}

func TestInstanceAndVariableIndirection(t *testing.T) {
	b, zero, one, _ := counterFixture(t)

	inc := strategy.Simple{Rules: []strategy.Rule{{LHS: zero, RHS: one}}}

	tryInc := strategy.NewDeclared("tryInc", []string{"S"}, nil, false)
	tryInc.Body = strategy.Variable{Formal: tryInc.Formal[0]}

	root := strategy.NewDeclared("root", nil, strategy.Instance{Name: "tryInc", Actuals: []strategy.Strategy{inc}}, true)

	env := linker.MapEnvironment{"tryInc": tryInc, "root": root}

	if err := linker.Link(env, []*strategy.Declared{tryInc, root}); err != nil {
		t.Fatalf("expected declarations to link cleanly: %v", err)
	}

	r := rewriter.New(b, lattice.NewBuilder(), env)

	res, err := r.Apply(context.Background(), strategy.Instance{Name: "root"}, zero)
	requireNoError(t, err)

	if len(res.Terms()) != 1 || !res.Contains(one) {
		t.Fatalf("expected root to resolve to tryInc(inc), which rewrites zero to one")
	}
}

func TestVariableActualResolvesThroughNestedInstance(t *testing.T) {
	b, zero, one, _ := counterFixture(t)

	inc := strategy.Simple{Rules: []strategy.Rule{{LHS: zero, RHS: one}}}

	// inner(T){ T } just forwards its actual.
	inner := strategy.NewDeclared("inner", []string{"T"}, nil, false)
	inner.Body = strategy.Variable{Formal: inner.Formal[0]}

	// outer(S){ inner(S) } passes its own variable actual one level deeper.
	outer := strategy.NewDeclared("outer", []string{"S"}, nil, false)
	outer.Body = strategy.Instance{Name: "inner", Actuals: []strategy.Strategy{strategy.Variable{Formal: outer.Formal[0]}}}

	root := strategy.NewDeclared("root", nil, strategy.Instance{Name: "outer", Actuals: []strategy.Strategy{inc}}, true)

	env := linker.MapEnvironment{"inner": inner, "outer": outer, "root": root}

	if err := linker.Link(env, []*strategy.Declared{inner, outer, root}); err != nil {
		t.Fatalf("expected declarations to link cleanly: %v", err)
	}

	r := rewriter.New(b, lattice.NewBuilder(), env)

	res, err := r.Apply(context.Background(), strategy.Instance{Name: "root"}, zero)
	requireNoError(t, err)

	if len(res.Terms()) != 1 || !res.Contains(one) {
		t.Fatalf("expected outer(inc) to reach inc through inner's pass-through, got %v", res.Terms())
	}
}

func TestApplyToSetUnionsAcrossMembers(t *testing.T) {
	b, zero, one, two := counterFixture(t)
	lb := lattice.NewBuilder()
	r := rewriter.New(b, lb, linker.MapEnvironment{})

	working := lb.FromTerms([]term.Term{zero, one})
	inc := strategy.Simple{Rules: []strategy.Rule{{LHS: zero, RHS: one}, {LHS: one, RHS: two}}}

	res, err := r.ApplyToSet(context.Background(), inc, working)
	requireNoError(t, err)

	if len(res.Terms()) != 2 || !res.Contains(one) || !res.Contains(two) {
		t.Fatalf("expected ApplyToSet to advance every member independently")
	}
}

func mustOne(b *term.Builder, zero term.Term) term.Term {
	one, err := b.Term("succ", zero)
	if err != nil {
		panic(err)
	}

	return one
}
