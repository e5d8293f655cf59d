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

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// Operation is a named function symbol of a signature: a (possibly empty)
// list of formal parameter sorts and a return sort.  An Operation declared as
// a generator is a constructor of its return sort; only generators may
// appear at the root of a canonical (ground, fully-reduced) value.
type Operation struct {
	name        string
	params      []string
	ret         string
	isGenerator bool
	// constant is non-nil when this is a zero-arity generator carrying a
	// canonical numeric payload (e.g. a Petri-net place marking or a bounded
	// counter).  See ConstantGenerator.
	constant *fr.Element
}

// Name returns this operation's declared name.
func (o Operation) Name() string {
	return o.name
}

// ParamSorts returns the (possibly empty) list of formal parameter sort
// names, in declaration order.
func (o Operation) ParamSorts() []string {
	return o.params
}

// Arity returns the number of formal parameters.
func (o Operation) Arity() uint {
	return uint(len(o.params))
}

// ReturnSort returns the name of the sort this operation constructs or
// computes a value of.
func (o Operation) ReturnSort() string {
	return o.ret
}

// IsGenerator returns true if this operation is a constructor of its return
// sort.
func (o Operation) IsGenerator() bool {
	return o.isGenerator
}

// IsConstant returns true if this is a zero-arity generator carrying a
// canonical numeric payload.
func (o Operation) IsConstant() bool {
	return o.constant != nil
}

// ConstantValue returns the canonical numeric payload of a constant
// generator.  Panics if this operation is not a constant generator.
func (o Operation) ConstantValue() fr.Element {
	if o.constant == nil {
		panic("not a constant generator: " + o.name)
	}

	return *o.constant
}
