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
package adt

// Variable is a declaration of a named, sorted placeholder usable within an
// open term (a pattern).  Term variables are identified by name within their
// ADT: DeclareVariable rejects a second declaration of the same name, and
// terms and substitutions compare variables by name.  (Strategy variables,
// by contrast, are compared by referential identity in the linker.)
type Variable struct {
	name string
	sort string
}

// Name returns this variable's declared name.
func (v Variable) Name() string {
	return v.name
}

// Sort returns the name of this variable's declared sort.
func (v Variable) Sort() string {
	return v.sort
}

// ADT is a signature plus a set of variable declarations.  An ADT is
// identified by pointer: two ADTs built from identical signatures are still
// distinct ADTs, and a term built against one may never appear as a
// sub-term of a term built against the other (see BadTermError).
type ADT struct {
	name      string
	signature Signature
	vars      []Variable
	varIdx    map[string]uint
}

// NewADT constructs an ADT from a frozen signature.  The returned pointer is
// this ADT's identity for the lifetime of the program; terms built against
// it hold this same pointer.
func NewADT(name string, sig Signature) *ADT {
	return &ADT{
		name:      name,
		signature: sig,
		varIdx:    make(map[string]uint),
	}
}

// Name returns this ADT's declared name.
func (a *ADT) Name() string {
	return a.name
}

// Signature returns the signature underlying this ADT.
func (a *ADT) Signature() Signature {
	return a.signature
}

// Variables returns the ordered list of variable declarations.
func (a *ADT) Variables() []Variable {
	return a.vars
}

// Variable looks up a declared variable by name.
func (a *ADT) Variable(name string) (Variable, bool) {
	i, ok := a.varIdx[name]
	if !ok {
		return Variable{}, false
	}

	return a.vars[i], true
}

// DeclareVariable adds a new variable declaration to this ADT, returning a
// new ADT (the receiver is never mutated).  Fails with a BadSignatureError
// if the name is already declared or the sort is unknown.
func (a *ADT) DeclareVariable(name, sort string) (*ADT, error) {
	if _, exists := a.varIdx[name]; exists {
		return a, badSort(name, "duplicate variable name")
	}

	if _, ok := a.signature.Sort(sort); !ok {
		return a, badSort(name, "unknown sort '"+sort+"' for variable")
	}

	na := &ADT{
		name:      a.name,
		signature: a.signature,
		vars:      append([]Variable{}, a.vars...),
		varIdx:    make(map[string]uint, len(a.varIdx)+1),
	}

	for k, v := range a.varIdx {
		na.varIdx[k] = v
	}

	idx := uint(len(na.vars))
	na.vars = append(na.vars, Variable{name: name, sort: sort})
	na.varIdx[name] = idx

	return na, nil
}
