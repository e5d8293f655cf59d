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
package term

import "github.com/stratagem-mc/stratagem/pkg/adt"

// Substitution is a finite mapping from variable declarations to ground
// terms.  Every mapped term's sort must be a sub-sort of the variable's
// declared sort; Bind enforces this.
type Substitution struct {
	bindings map[string]Term
}

// EmptySubstitution returns a substitution with no bindings.
func EmptySubstitution() Substitution {
	return Substitution{bindings: make(map[string]Term)}
}

// Lookup returns the ground term bound to v, if any.
func (s Substitution) Lookup(v adt.Variable) (Term, bool) {
	t, ok := s.bindings[v.Name()]
	return t, ok
}

// Bind extends this substitution with v ↦ value, returning a new
// Substitution (the receiver is not mutated).  If v is already bound, the
// existing binding must be identical (by hash-cons identity) to value;
// otherwise bind fails and ok is false.  This is how Match enforces that a
// pattern variable occurring more than once is matched consistently.  Bind
// also fails if value is not ground or its sort is not a sub-sort of v's.
func (s Substitution) Bind(v adt.Variable, value Term) (Substitution, bool) {
	if !value.IsGround() {
		return s, false
	}

	if !value.ADT().Signature().IsSubSortOf(value.Sort(), v.Sort()) {
		return s, false
	}

	if existing, bound := s.bindings[v.Name()]; bound {
		return s, existing == value
	}

	ns := Substitution{bindings: make(map[string]Term, len(s.bindings)+1)}

	for k, t := range s.bindings {
		ns.bindings[k] = t
	}

	ns.bindings[v.Name()] = value

	return ns, true
}

// Variables returns the set of variable names bound by this substitution.
func (s Substitution) Variables() []string {
	names := make([]string, 0, len(s.bindings))
	for k := range s.bindings {
		names = append(names, k)
	}

	return names
}

// Apply substitutes every variable occurrence in pattern with its bound
// value, bottom-up.  Applying to a ground term is the identity. Fails with
// ErrUnboundVariable if pattern contains a variable with no binding in s.
func Apply(b *Builder, s Substitution, pattern Term) (Term, error) {
	if pattern.IsGround() {
		return pattern, nil
	}

	if v, ok := Variable(pattern); ok {
		t, bound := s.Lookup(v)
		if !bound {
			return nil, &ErrUnboundVariable{Variable: v.Name()}
		}

		return t, nil
	}

	op, args, _ := Application(pattern)

	newArgs := make([]Term, len(args))

	for i, a := range args {
		na, err := Apply(b, s, a)
		if err != nil {
			return nil, err
		}

		newArgs[i] = na
	}

	return b.Term(op.Name(), newArgs...)
}

// OccursIn returns true if variable v appears anywhere within t.
func OccursIn(v adt.Variable, t Term) bool {
	if tv, ok := Variable(t); ok {
		return tv.Name() == v.Name()
	}

	_, args, _ := Application(t)

	for _, a := range args {
		if OccursIn(v, a) {
			return true
		}
	}

	return false
}
