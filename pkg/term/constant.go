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

import "github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

// ConstantValue returns the canonical numeric payload carried by t, if t is
// an Application of a constant generator (adt.Operation.IsConstant). Ok is
// false for a Variable, or an Application of a non-constant operation.
func ConstantValue(t Term) (fr.Element, bool) {
	op, _, ok := Application(t)
	if !ok || !op.IsConstant() {
		return fr.Element{}, false
	}

	return op.ConstantValue(), true
}
