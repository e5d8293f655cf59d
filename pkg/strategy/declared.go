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
package strategy

// Declared is a named strategy declaration: a label, an ordered list of
// formal variable-strategy parameters, and a body which may reference them
// (by identity, via Variable) and may invoke other declarations (by name,
// via Instance).
type Declared struct {
	Label  string
	Formal []*Param
	Body   Strategy
	// IsTransition distinguishes a top-level transition relation from an
	// auxiliary strategy used only as a building block.
	IsTransition bool
}

// NewDeclared constructs a declaration whose formals are fresh *Param
// objects (so Variable nodes referencing them are compared by identity, not
// name).  formalNames gives each formal's display name, in order.
func NewDeclared(label string, formalNames []string, body Strategy, isTransition bool) *Declared {
	formals := make([]*Param, len(formalNames))
	for i, n := range formalNames {
		formals[i] = &Param{Name: n}
	}

	return &Declared{Label: label, Formal: formals, Body: body, IsTransition: isTransition}
}

// Arity returns the number of formal parameters.
func (d *Declared) Arity() uint {
	return uint(len(d.Formal))
}
