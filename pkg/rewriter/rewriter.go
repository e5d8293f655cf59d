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

// Package rewriter evaluates the strategy algebra of pkg/strategy against
// terms built by pkg/term, producing a pkg/lattice.Element: the empty
// (bottom) element represents failure, and a non-empty one the set of terms
// the strategy rewrote its input to. A strategy that is deterministic in
// the ELAN sense always yields a singleton; Union, Repeat and FixPoint are
// the only combinators that can grow the set beyond one member.
//
// A Rewriter assumes its declarations have already passed pkg/linker: it
// does not re-validate them up front. If it nonetheless meets an
// unresolved Instance, an Instance arity mismatch or an unbound Variable, it
// reports a rewriter.Error (rather than panicking), so that a caller which
// skipped linking fails loudly instead of silently misbehaving. A
// Not-context violation is not detected here; Not is evaluated as written.
package rewriter

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/stratagem-mc/stratagem/pkg/lattice"
	"github.com/stratagem-mc/stratagem/pkg/linker"
	"github.com/stratagem-mc/stratagem/pkg/strategy"
	"github.com/stratagem-mc/stratagem/pkg/term"
	"github.com/stratagem-mc/stratagem/pkg/util/collection/stack"
)

// binding pairs an actual strategy passed into a Declared strategy's formal
// parameter with the frame that was active at the call site, so a
// VariableStrategy that is itself an actual passed down into a further
// nested Instance still resolves against the scope it was captured in
// (lexical, not dynamic, scoping) — see evalVariable.
type binding struct {
	actual strategy.Strategy
	frame  bindingFrame
}

// bindingFrame binds a Declared strategy's formal parameters, by identity,
// to the actual strategies it was invoked with.
type bindingFrame map[*strategy.Param]binding

// Rewriter evaluates strategies over terms built by a single term.Builder
// and lattice elements built by a single lattice.Builder, resolving
// declared-strategy Instances against an Environment (normally a
// TransitionSystem's declaration table).
//
// A Rewriter is not safe for concurrent use.
type Rewriter struct {
	builder *term.Builder
	lattice *lattice.Builder
	env     linker.Environment
	frames  *stack.Stack[bindingFrame]
}

// New constructs a Rewriter bound to a term builder, a lattice builder and
// the declaration environment Instances are resolved against.
func New(b *term.Builder, lb *lattice.Builder, env linker.Environment) *Rewriter {
	return &Rewriter{builder: b, lattice: lb, env: env, frames: stack.NewStack[bindingFrame]()}
}

// Apply evaluates s against the single input term t, returning the lattice
// element of its results (bottom on failure).
func (r *Rewriter) Apply(ctx context.Context, s strategy.Strategy, t term.Term) (lattice.Element, error) {
	return r.evalOne(ctx, s, t)
}

// ApplyToSet evaluates s against every member of elem, returning the union
// of the individual results.
func (r *Rewriter) ApplyToSet(ctx context.Context, s strategy.Strategy, elem lattice.Element) (lattice.Element, error) {
	return r.evalSet(ctx, s, elem)
}

func (r *Rewriter) trace(s strategy.Strategy, t term.Term) {
	if log.IsLevelEnabled(log.TraceLevel) {
		log.WithField("strategy", strategy.Print(s)).WithField("term", t.String()).Trace("rewriter: evaluating")
	}
}

//nolint:cyclop
func (r *Rewriter) evalOne(ctx context.Context, s strategy.Strategy, t term.Term) (lattice.Element, error) {
	if err := ctx.Err(); err != nil {
		return r.lattice.Bottom(), err
	}

	r.trace(s, t)

	switch v := s.(type) {
	case strategy.Fail:
		return r.lattice.Bottom(), nil
	case strategy.Identity:
		return r.lattice.Singleton(t), nil
	case strategy.Simple:
		return r.evalSimple(v, t)
	case strategy.Choice:
		return r.evalChoice(ctx, v, t)
	case strategy.Sequence:
		return r.evalSequence(ctx, v, t)
	case strategy.Union:
		return r.evalUnion(ctx, v, t)
	case strategy.IfThenElse:
		return r.evalIfThenElse(ctx, v, t)
	case strategy.One:
		return r.evalOneChild(ctx, v, t)
	case strategy.Not:
		return r.evalNot(ctx, v, t)
	case strategy.Repeat:
		return r.evalRepeat(ctx, v.Inner, t)
	case strategy.FixPoint:
		return r.evalFixPoint(ctx, v.Inner, t)
	case strategy.Saturation:
		return r.evalFixPoint(ctx, v.Inner, t)
	case strategy.Variable:
		return r.evalVariable(ctx, v, t)
	case strategy.Instance:
		return r.evalInstance(ctx, v, t)
	default:
		return r.lattice.Bottom(), &Error{Reason: "rewriter: unrecognised strategy node"}
	}
}

func (r *Rewriter) evalSimple(s strategy.Simple, t term.Term) (lattice.Element, error) {
	for _, rule := range s.Rules {
		subst, ok := term.Match(rule.LHS, t)
		if !ok {
			continue
		}

		result, err := term.Apply(r.builder, subst, rule.RHS)
		if err != nil {
			return r.lattice.Bottom(), err
		}

		return r.lattice.Singleton(result), nil
	}

	return r.lattice.Bottom(), nil
}

func (r *Rewriter) evalChoice(ctx context.Context, s strategy.Choice, t term.Term) (lattice.Element, error) {
	first, err := r.evalOne(ctx, s.First, t)
	if err != nil {
		return first, err
	}

	if !first.IsBottom() {
		return first, nil
	}

	return r.evalOne(ctx, s.Second, t)
}

func (r *Rewriter) evalSequence(ctx context.Context, s strategy.Sequence, t term.Term) (lattice.Element, error) {
	first, err := r.evalOne(ctx, s.First, t)
	if err != nil || first.IsBottom() {
		return first, err
	}

	return r.evalSet(ctx, s.Second, first)
}

func (r *Rewriter) evalUnion(ctx context.Context, s strategy.Union, t term.Term) (lattice.Element, error) {
	first, err := r.evalOne(ctx, s.First, t)
	if err != nil {
		return first, err
	}

	second, err := r.evalOne(ctx, s.Second, t)
	if err != nil {
		return second, err
	}

	return r.lattice.Union(first, second), nil
}

func (r *Rewriter) evalIfThenElse(ctx context.Context, s strategy.IfThenElse, t term.Term) (lattice.Element, error) {
	cond, err := r.evalOne(ctx, s.Cond, t)
	if err != nil {
		return cond, err
	}

	if !cond.IsBottom() {
		return r.evalOne(ctx, s.Then, t)
	}

	return r.evalOne(ctx, s.Else, t)
}

func (r *Rewriter) evalOneChild(ctx context.Context, s strategy.One, t term.Term) (lattice.Element, error) {
	op, args, ok := term.Application(t)
	if !ok || s.Child == 0 || int(s.Child) > len(args) {
		return r.lattice.Bottom(), nil
	}

	idx := int(s.Child) - 1

	results, err := r.evalOne(ctx, s.Inner, args[idx])
	if err != nil {
		return results, err
	}

	if results.IsBottom() {
		return r.lattice.Bottom(), nil
	}

	out := r.lattice.Bottom()

	for _, replacement := range results.Terms() {
		newArgs := append([]term.Term{}, args...)
		newArgs[idx] = replacement

		rebuilt, err := r.builder.Term(op.Name(), newArgs...)
		if err != nil {
			return r.lattice.Bottom(), err
		}

		out = r.lattice.Union(out, r.lattice.Singleton(rebuilt))
	}

	return out, nil
}

func (r *Rewriter) evalNot(ctx context.Context, s strategy.Not, t term.Term) (lattice.Element, error) {
	inner, err := r.evalOne(ctx, s.Inner, t)
	if err != nil {
		return inner, err
	}

	if inner.IsBottom() {
		return r.lattice.Singleton(t), nil
	}

	return r.lattice.Bottom(), nil
}

// evalRepeat applies inner to t for as long as it keeps succeeding,
// returning the set of terms reached once every branch has failed to
// progress further. It never fails: a t on which inner immediately fails is
// returned unchanged, per Repeat = Try(Sequence(Inner, Repeat(Inner))).
func (r *Rewriter) evalRepeat(ctx context.Context, inner strategy.Strategy, t term.Term) (lattice.Element, error) {
	if err := ctx.Err(); err != nil {
		return r.lattice.Bottom(), err
	}

	next, err := r.evalOne(ctx, inner, t)
	if err != nil {
		return next, err
	}

	if next.IsBottom() {
		return r.lattice.Singleton(t), nil
	}

	out := r.lattice.Bottom()

	for _, nt := range next.Terms() {
		sub, err := r.evalRepeat(ctx, inner, nt)
		if err != nil {
			return sub, err
		}

		out = r.lattice.Union(out, sub)
	}

	return out, nil
}

// evalFixPoint repeatedly applies inner to the current working set (a
// singleton of t, to begin with) until the set stops changing by canonical
// identity, or inner fails on every member, whichever comes first.
func (r *Rewriter) evalFixPoint(ctx context.Context, inner strategy.Strategy, t term.Term) (lattice.Element, error) {
	cur := r.lattice.Singleton(t)

	for {
		if err := ctx.Err(); err != nil {
			return cur, err
		}

		next, err := r.evalSet(ctx, inner, cur)
		if err != nil {
			return cur, err
		}

		if next.IsBottom() || next == cur {
			return cur, nil
		}

		cur = next
	}
}

func (r *Rewriter) evalSet(ctx context.Context, s strategy.Strategy, elem lattice.Element) (lattice.Element, error) {
	out := r.lattice.Bottom()

	for _, t := range elem.Terms() {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		res, err := r.evalOne(ctx, s, t)
		if err != nil {
			return out, err
		}

		out = r.lattice.Union(out, res)
	}

	return out, nil
}

// evalVariable looks v up in the top frame (the frame of the declaration
// whose body is being evaluated), but the formal's binding carries the frame
// that was active when its actual was passed in, and that captured frame —
// not whatever frame happens to be on top right now — is pushed and used to
// evaluate the actual. This is what lets a VariableStrategy actual flow unchanged
// through an arbitrary number of nested Instance calls, e.g.
// outer(S){ inner(S) } / inner(T){ T }: T's binding captures outer's frame,
// so resolving T reaches back to S in the frame it was bound in.
func (r *Rewriter) evalVariable(ctx context.Context, v strategy.Variable, t term.Term) (lattice.Element, error) {
	if r.frames.IsEmpty() {
		return r.lattice.Bottom(), unboundVariable(v.Formal.Name)
	}

	bound, ok := r.frames.Peek(0)[v.Formal]
	if !ok {
		return r.lattice.Bottom(), unboundVariable(v.Formal.Name)
	}

	r.frames.Push(bound.frame)
	defer r.frames.Pop()

	return r.evalOne(ctx, bound.actual, t)
}

func (r *Rewriter) evalInstance(ctx context.Context, inst strategy.Instance, t term.Term) (lattice.Element, error) {
	decl, ok := r.env.Lookup(inst.Name)
	if !ok {
		return r.lattice.Bottom(), unresolvedInstance(inst.Name)
	}

	if len(decl.Formal) != len(inst.Actuals) {
		return r.lattice.Bottom(), instanceArityMismatch(inst.Name, len(decl.Formal), len(inst.Actuals))
	}

	var caller bindingFrame
	if !r.frames.IsEmpty() {
		caller = r.frames.Peek(0)
	}

	frame := make(bindingFrame, len(decl.Formal))
	for i, f := range decl.Formal {
		frame[f] = binding{actual: inst.Actuals[i], frame: caller}
	}

	r.frames.Push(frame)
	defer r.frames.Pop()

	return r.evalOne(ctx, decl.Body, t)
}
