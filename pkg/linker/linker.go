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

// Package linker performs the static validation pass over a transition
// system's strategy declarations: name resolution of Instance references,
// arity checking, variable-strategy referential identity, and the
// Not-context restriction. It never mutates a declaration; it only reports
// what is wrong with it.
package linker

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/stratagem-mc/stratagem/pkg/strategy"
)

// Environment resolves a declared-strategy name to its declaration. A
// TransitionSystem satisfies this by exposing its declaration table.
type Environment interface {
	Lookup(name string) (*strategy.Declared, bool)
}

// MapEnvironment is the simplest Environment: a plain lookup table, useful
// standalone and in tests without pulling in pkg/system.
type MapEnvironment map[string]*strategy.Declared

// Lookup implements Environment.
func (m MapEnvironment) Lookup(name string) (*strategy.Declared, bool) {
	d, ok := m[name]
	return d, ok
}

// Link validates every declaration visible in env and returns the aggregate
// of every problem found, via errors.Join, or nil if the environment is
// sound. Each individual error is a *Error and keeps its own
// Declaration context, so callers may errors.As over the result.
func Link(env Environment, declarations []*strategy.Declared) error {
	var problems []error

	for _, d := range declarations {
		w := &walker{env: env, declaration: d}
		w.walkBody(d.Body, false)
		problems = append(problems, w.errs...)
	}

	for _, p := range problems {
		log.WithField("diagnostic", p.Error()).Warn("linker: transition system failed validation")
	}

	return errors.Join(problems...)
}

type walker struct {
	env         Environment
	declaration *strategy.Declared
	errs        []error
}

func (w *walker) isFormal(p *strategy.Param) bool {
	for _, f := range w.declaration.Formal {
		if f == p {
			return true
		}
	}

	return false
}

// walkBody recurses through s, collecting errors. underNot is true while
// walking the sub-expression directly beneath a Not node (the restriction
// does not apply transitively past an Instance boundary, which re-enters at
// underNot=false for its own body, then re-applies the restriction only
// where the declaration is itself invoked from within a Not).
func (w *walker) walkBody(s strategy.Strategy, underNot bool) {
	if underNot {
		w.checkNotContext(s)
	}

	switch v := s.(type) {
	case strategy.Fail, strategy.Identity, strategy.Simple:
		// no children to recurse into
	case strategy.Choice:
		w.walkBody(v.First, underNot)
		w.walkBody(v.Second, underNot)
	case strategy.Sequence:
		w.walkBody(v.First, underNot)
		w.walkBody(v.Second, underNot)
	case strategy.Union:
		w.walkBody(v.First, underNot)
		w.walkBody(v.Second, underNot)
	case strategy.IfThenElse:
		w.walkBody(v.Cond, underNot)
		w.walkBody(v.Then, underNot)
		w.walkBody(v.Else, underNot)
	case strategy.One:
		w.walkBody(v.Inner, underNot)
	case strategy.Not:
		w.walkBody(v.Inner, true)
	case strategy.Repeat:
		w.walkBody(v.Inner, underNot)
	case strategy.FixPoint:
		w.walkBody(v.Inner, underNot)
	case strategy.Saturation:
		w.walkBody(v.Inner, underNot)
	case strategy.Variable:
		if !w.isFormal(v.Formal) {
			w.errs = append(w.errs, unknownVariableStrategy(v.Formal.Name, w.declaration.Label))
		}
	case strategy.Instance:
		w.walkInstance(v, underNot)
	}
}

func (w *walker) walkInstance(inst strategy.Instance, underNot bool) {
	resolved, ok := w.env.Lookup(inst.Name)
	if !ok {
		w.errs = append(w.errs, undefinedStrategy(inst.Name, w.declaration.Label))
	} else if int(resolved.Arity()) != len(inst.Actuals) {
		w.errs = append(w.errs, arityMismatch(inst.Name, w.declaration.Label, int(resolved.Arity()), len(inst.Actuals)))
	}

	for _, a := range inst.Actuals {
		w.walkBody(a, underNot)
	}

	if underNot && ok && len(inst.Actuals) == 0 {
		// A nullary reference to another declaration is permitted beneath Not
		// only if that declaration's own body would itself be legal there.
		sub := &walker{env: w.env, declaration: resolved}
		sub.walkBody(resolved.Body, true)
		w.errs = append(w.errs, sub.errs...)
	}
}

// checkNotContext reports s if it is not one of the forms Not accepts
// directly: SimpleStrategy, nested Not, a bound Variable, or a nullary
// Instance (whose callee is checked separately in walkInstance).
func (w *walker) checkNotContext(s strategy.Strategy) {
	switch v := s.(type) {
	case strategy.Simple, strategy.Not, strategy.Variable:
		return
	case strategy.Instance:
		if len(v.Actuals) == 0 {
			return
		}

		w.errs = append(w.errs, illegalUnderNotParameterised(v.Name, w.declaration.Label))
	default:
		w.errs = append(w.errs, illegalUnderNot(strategy.Print(s), w.declaration.Label))
	}
}
