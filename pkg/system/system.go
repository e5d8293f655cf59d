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

// Package system assembles a many-sorted ADT, an initial term and a table
// of declared rewriting strategies into a TransitionSystem, and exposes the
// three operations a caller actually wants: Diagnose (static validation),
// Rewrite (one transition step) and Reachable (full fixed-point
// reachability).
package system

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/stratagem-mc/stratagem/pkg/adt"
	"github.com/stratagem-mc/stratagem/pkg/lattice"
	"github.com/stratagem-mc/stratagem/pkg/linker"
	"github.com/stratagem-mc/stratagem/pkg/rewriter"
	"github.com/stratagem-mc/stratagem/pkg/strategy"
	"github.com/stratagem-mc/stratagem/pkg/term"
)

// TransitionSystem couples a many-sorted ADT, a designated initial term and
// a table of declared rewriting strategies, at most one of which is marked
// as the system's transition relation.
//
// TransitionSystem implements linker.Environment directly: its declaration
// table doubles as the Instance-resolution environment pkg/linker and
// pkg/rewriter both need.
type TransitionSystem struct {
	adt            *adt.ADT
	initial        term.Term
	declarations   map[string]*strategy.Declared
	order          []*strategy.Declared
	transitionName string
}

var _ linker.Environment = (*TransitionSystem)(nil)

// NewTransitionSystem constructs a system over a whose initial state is
// initial. Panics if initial was not built against a: this is a programmer
// error discovered the moment the system is assembled, not a
// data-dependent failure, so — in the same spirit as go-corset's schema
// builder panicking on a duplicate module — it is caught immediately rather
// than threaded through every subsequent call as an error return.
func NewTransitionSystem(a *adt.ADT, initial term.Term) *TransitionSystem {
	if initial.ADT() != a {
		panic(fmt.Sprintf("stratagem: initial term belongs to ADT %q, not %q", initial.ADT().Name(), a.Name()))
	}

	return &TransitionSystem{adt: a, initial: initial, declarations: make(map[string]*strategy.Declared)}
}

// ADT returns the many-sorted signature this system's terms are built
// against.
func (ts *TransitionSystem) ADT() *adt.ADT {
	return ts.adt
}

// Initial returns the system's designated initial state.
func (ts *TransitionSystem) Initial() term.Term {
	return ts.initial
}

// DeclareStrategy adds a new named strategy declaration to this system,
// returning it. Panics if name is already declared, or if this is a second
// isTransition=true declaration: both are construction-time programmer
// errors.
func (ts *TransitionSystem) DeclareStrategy(
	name string, formalNames []string, body strategy.Strategy, isTransition bool,
) *strategy.Declared {
	if _, exists := ts.declarations[name]; exists {
		panic(fmt.Sprintf("stratagem: duplicate strategy declaration %q", name))
	}

	if isTransition && ts.transitionName != "" {
		panic(fmt.Sprintf(
			"stratagem: transition relation already declared as %q, cannot also declare %q as one", ts.transitionName, name))
	}

	d := strategy.NewDeclared(name, formalNames, body, isTransition)
	ts.declarations[name] = d
	ts.order = append(ts.order, d)

	if isTransition {
		ts.transitionName = name
	}

	return d
}

// Lookup implements linker.Environment.
func (ts *TransitionSystem) Lookup(name string) (*strategy.Declared, bool) {
	d, ok := ts.declarations[name]
	return d, ok
}

// Declarations returns every declared strategy, in declaration order.
func (ts *TransitionSystem) Declarations() []*strategy.Declared {
	return ts.order
}

// TransitionRelation returns the declaration marked isTransition=true, if
// one has been declared.
func (ts *TransitionSystem) TransitionRelation() (*strategy.Declared, bool) {
	if ts.transitionName == "" {
		return nil, false
	}

	return ts.Lookup(ts.transitionName)
}

// Diagnose runs the static linker pass over every declaration, returning
// the aggregate of every problem found (nil if the system is sound).
func (ts *TransitionSystem) Diagnose() error {
	return linker.Link(ts, ts.order)
}

// Link validates this system's declarations; it is an alias for Diagnose,
// matching the "linking a strategy module" vocabulary of the ELAN
// tradition this package draws its strategy algebra from.
func (ts *TransitionSystem) Link() error {
	return ts.Diagnose()
}

// Rewrite evaluates the system's designated transition relation once
// against t, returning the set of successor states. It first re-runs
// Diagnose, so a caller never observes an undefined-behaviour evaluation of
// an unlinked system.
func (ts *TransitionSystem) Rewrite(
	ctx context.Context, b *term.Builder, lb *lattice.Builder, t term.Term,
) (lattice.Element, error) {
	rel, ok := ts.TransitionRelation()
	if !ok {
		return nil, badTransitionSystem("no transition relation declared")
	}

	if err := ts.Diagnose(); err != nil {
		return nil, err
	}

	rw := rewriter.New(b, lb, ts)

	return rw.Apply(ctx, strategy.Instance{Name: rel.Label}, t)
}

// Reachable computes the full set of states reachable from the system's
// initial state, by repeatedly applying the transition relation to the
// working set and folding the expansion back in (pkg/lattice.Fix) until no
// new state is discovered or ctx is cancelled.
func (ts *TransitionSystem) Reachable(
	ctx context.Context, b *term.Builder, lb *lattice.Builder,
) (lattice.Element, error) {
	rel, ok := ts.TransitionRelation()
	if !ok {
		return nil, badTransitionSystem("no transition relation declared")
	}

	if err := ts.Diagnose(); err != nil {
		return nil, err
	}

	rw := rewriter.New(b, lb, ts)
	relRef := strategy.Instance{Name: rel.Label}

	if log.IsLevelEnabled(log.DebugLevel) {
		log.WithField("adt", ts.adt.Name()).Debug("system: computing reachable states")
	}

	step := func(stepCtx context.Context, x lattice.Element) (lattice.Element, error) {
		return rw.ApplyToSet(stepCtx, relRef, x)
	}

	return lattice.Fix(ctx, lb, lb.Singleton(ts.initial), step)
}
