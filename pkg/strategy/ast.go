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

// Package strategy is the variant type of rewriting-strategy expressions (in
// the ELAN/Stratego tradition) and the declared-strategy table of a
// TransitionSystem.  It is a closed AST: evaluation lives in pkg/rewriter,
// static validation in pkg/linker.
package strategy

import "github.com/stratagem-mc/stratagem/pkg/term"

// Rule is an oriented equation lhs -> rhs used by a Simple strategy.
type Rule struct {
	LHS term.Term
	RHS term.Term
}

// Strategy is a rewriting-strategy expression. It is unexported-method
// sealed: only the types declared in this package may implement it.
type Strategy interface {
	strategy()
}

// Fail always fails.
type Fail struct{}

// Identity always succeeds, returning its input unchanged.
type Identity struct{}

// Simple tries each rule in order, applying the first whose left-hand side
// matches; it fails if no rule matches. Rules must be non-empty.
type Simple struct {
	Rules []Rule
}

// Choice evaluates First; if it fails, evaluates Second.
type Choice struct {
	First  Strategy
	Second Strategy
}

// Sequence evaluates First; on success, evaluates Second against the
// result.
type Sequence struct {
	First  Strategy
	Second Strategy
}

// Union evaluates both operands (lifted to the lattice) and returns their
// union.
type Union struct {
	First  Strategy
	Second Strategy
}

// IfThenElse evaluates Cond against the input term; if it succeeds, Then is
// evaluated against the *original* input (not Cond's result); otherwise Else
// is.
type IfThenElse struct {
	Cond Strategy
	Then Strategy
	Else Strategy
}

// One applies Inner to the Child'th (one-based) immediate sub-term, leaving
// all others unchanged; it fails if the input has no children, or if Inner
// fails on the selected child.
type One struct {
	Inner Strategy
	Child uint
}

// NewOne constructs a One strategy, defaulting the child index to 1 when
// none is given. This fixes the distilled specification's open question
// about One's default uniformly for every call site, including the
// Petri-net compiler's.
func NewOne(inner Strategy, child ...uint) One {
	c := uint(1)
	if len(child) > 0 {
		c = child[0]
	}

	return One{Inner: inner, Child: c}
}

// Not succeeds (returning its input unchanged) iff Inner fails. Subject to
// the Not-context restriction enforced by pkg/linker.
type Not struct {
	Inner Strategy
}

// Try is sugar for Choice(Inner, Identity): it never fails.
func TryOf(inner Strategy) Strategy {
	return Choice{First: inner, Second: Identity{}}
}

// Repeat is sugar for Try(Sequence(Inner, Repeat(Inner))). Its literal
// expansion is infinite, so it is represented as its own node and expanded
// lazily by the rewriter rather than eagerly unrolled here.
type Repeat struct {
	Inner Strategy
}

// RepeatOf constructs a Repeat strategy.
func RepeatOf(inner Strategy) Strategy {
	return Repeat{Inner: inner}
}

// FixPoint repeatedly applies Inner until the term stops changing (by
// hash-cons identity) or Inner fails.
type FixPoint struct {
	Inner Strategy
}

// Saturation is semantically equivalent to FixPoint(Inner) on a single
// term; Level names the lattice level at which the working set is
// maintained by the fixed-point driver (pkg/lattice), an optimisation with
// no semantic effect at this layer.
type Saturation struct {
	Inner Strategy
	Level uint
}

// Variable resolves, at evaluation time, to whatever strategy is currently
// bound to Formal in the evaluator's parameter-binding stack. Formal must
// be the very same *Param object as one of the enclosing Declared's
// formals (checked by identity, not name, by pkg/linker).
type Variable struct {
	Formal *Param
}

// Instance invokes a declared strategy by name with actual parameters.
type Instance struct {
	Name    string
	Actuals []Strategy
}

func (Fail) strategy()       {}
func (Identity) strategy()   {}
func (Simple) strategy()     {}
func (Choice) strategy()     {}
func (Sequence) strategy()   {}
func (Union) strategy()      {}
func (IfThenElse) strategy() {}
func (One) strategy()        {}
func (Not) strategy()        {}
func (Repeat) strategy()     {}
func (FixPoint) strategy()   {}
func (Saturation) strategy() {}
func (Variable) strategy()   {}
func (Instance) strategy()   {}

// Param is a formal variable-strategy parameter of a Declared strategy.
// Identity (the pointer) is what matters for variable-strategy resolution
// and for the linker's binding check — two Params with the same Name are
// still distinct unless they are the same object.
type Param struct {
	Name string
}
