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

// Package term implements ground and open first-order terms over a
// many-sorted ADT (pkg/adt), with hash-consing so that structurally equal
// terms share identity: FixPointStrategy's convergence check
// (t_{i+1} == t_i) relies on this being a pointer comparison, not a deep
// structural one.
package term

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/stratagem-mc/stratagem/pkg/adt"
	"github.com/stratagem-mc/stratagem/pkg/util/collection/hash"
)

// Term is either a Variable or an Application.  Two Terms built through the
// same Builder are Equals if and only if they are the same Go value
// (pointer), since the Builder hash-conses every term it returns.
type Term interface {
	hash.Hasher[Term]
	// Sort returns the sort of this term's value.
	Sort() string
	// ADT returns the abstract data type this term was built against.
	ADT() *adt.ADT
	// IsGround returns true if this term contains no variables.
	IsGround() bool
	// String renders this term in prefix notation, e.g. "f(x,g())".
	String() string
}

// Builder hash-conses every term it constructs against a single ADT.  A
// Builder is not safe for concurrent use (the whole core is single-threaded
// cooperative, per the concurrency model).
type Builder struct {
	adt   *adt.ADT
	table *hash.Map[Term, Term]
}

// NewBuilder constructs a term builder bound to a (frozen) ADT.
func NewBuilder(a *adt.ADT) *Builder {
	return &Builder{adt: a, table: hash.NewMap[Term, Term](64)}
}

// ADT returns the ADT this builder constructs terms against.
func (b *Builder) ADT() *adt.ADT {
	return b.adt
}

// Var builds a reference to a declared variable.
func (b *Builder) Var(name string) (Term, error) {
	v, ok := b.adt.Variable(name)
	if !ok {
		return nil, badTerm(name, "unknown variable")
	}

	t := &variableTerm{adt: b.adt, v: v}

	return b.intern(t), nil
}

// Term builds a hash-consed Application of a named operation to a list of
// argument terms.  Every argument must belong to the same ADT as this
// builder, and its sort must be a sub-sort of the operation's corresponding
// formal parameter sort.
func (b *Builder) Term(opName string, args ...Term) (Term, error) {
	op, ok := b.adt.Signature().Operation(opName)
	if !ok {
		return nil, &adt.BadSignatureError{Offender: opName, Reason: "unknown operation"}
	}

	if uint(len(args)) != op.Arity() {
		return nil, badTerm(opName, fmt.Sprintf("arity mismatch: expected %d, found %d", op.Arity(), len(args)))
	}

	formals := op.ParamSorts()
	sig := b.adt.Signature()

	for i, arg := range args {
		if arg.ADT() != b.adt {
			return nil, badTerm(opName, "argument belongs to a different ADT")
		}

		if !sig.IsSubSortOf(arg.Sort(), formals[i]) {
			return nil, badTerm(opName, fmt.Sprintf("argument %d has sort '%s', not a sub-sort of '%s'", i, arg.Sort(), formals[i]))
		}
	}

	t := &applicationTerm{adt: b.adt, op: op, args: append([]Term{}, args...)}

	return b.intern(t), nil
}

// intern returns the canonical, previously-built term structurally equal to
// t, inserting t itself if this is the first time it has been seen.
func (b *Builder) intern(t Term) Term {
	if existing, ok := b.table.Get(t); ok {
		return existing
	}

	b.table.Insert(t, t)

	return t
}

// ============================================================================
// Variable
// ============================================================================

type variableTerm struct {
	adt *adt.ADT
	v   adt.Variable
}

func (t *variableTerm) Sort() string   { return t.v.Sort() }
func (t *variableTerm) ADT() *adt.ADT  { return t.adt }
func (t *variableTerm) IsGround() bool { return false }
func (t *variableTerm) String() string { return t.v.Name() }

// Name returns the underlying variable's declared name.
func (t *variableTerm) Name() string { return t.v.Name() }

func (t *variableTerm) Equals(other Term) bool {
	ov, ok := other.(*variableTerm)
	return ok && ov.adt == t.adt && ov.v.Name() == t.v.Name()
}

func (t *variableTerm) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte("var:"))
	h.Write([]byte(t.v.Name()))

	return h.Sum64()
}

// ============================================================================
// Application
// ============================================================================

type applicationTerm struct {
	adt  *adt.ADT
	op   adt.Operation
	args []Term
	// hashCode is computed lazily and cached on first use.
	hashCode uint64
	hashed   bool
}

func (t *applicationTerm) Sort() string  { return t.op.ReturnSort() }
func (t *applicationTerm) ADT() *adt.ADT { return t.adt }

func (t *applicationTerm) IsGround() bool {
	for _, a := range t.args {
		if !a.IsGround() {
			return false
		}
	}

	return true
}

// Args returns this application's sub-terms, in operation-declaration order.
func (t *applicationTerm) Args() []Term {
	return t.args
}

// Operation returns the operation this term applies.
func (t *applicationTerm) Operation() adt.Operation {
	return t.op
}

func (t *applicationTerm) String() string {
	if len(t.args) == 0 {
		return t.op.Name() + "()"
	}

	var b strings.Builder

	b.WriteString(t.op.Name())
	b.WriteString("(")

	for i, a := range t.args {
		if i != 0 {
			b.WriteString(",")
		}

		b.WriteString(a.String())
	}

	b.WriteString(")")

	return b.String()
}

func (t *applicationTerm) Equals(other Term) bool {
	if t == other {
		return true
	}

	ot, ok := other.(*applicationTerm)
	if !ok || ot.adt != t.adt || ot.op.Name() != t.op.Name() || len(ot.args) != len(t.args) {
		return false
	}

	for i := range t.args {
		if !t.args[i].Equals(ot.args[i]) {
			return false
		}
	}

	return true
}

func (t *applicationTerm) Hash() uint64 {
	if !t.hashed {
		h := fnv.New64a()
		h.Write([]byte(t.op.Name()))

		for _, a := range t.args {
			var buf [8]byte
			ah := a.Hash()

			for i := range buf {
				buf[i] = byte(ah >> (8 * i))
			}

			h.Write(buf[:])
		}

		t.hashCode = h.Sum64()
		t.hashed = true
	}

	return t.hashCode
}

// Variable returns the underlying adt.Variable of a Term known to be a
// variable.  Ok is false if t is an Application.
func Variable(t Term) (adt.Variable, bool) {
	v, ok := t.(*variableTerm)
	if !ok {
		return adt.Variable{}, false
	}

	return v.v, true
}

// Application returns the operation and arguments of a Term known to be an
// Application.  Ok is false if t is a Variable.
func Application(t Term) (adt.Operation, []Term, bool) {
	a, ok := t.(*applicationTerm)
	if !ok {
		return adt.Operation{}, nil, false
	}

	return a.op, a.args, true
}
