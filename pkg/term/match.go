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

// Match unifies a pattern (which may contain variables) against a ground
// term, returning the substitution which makes them equal, or ok=false
// (NoMatch) if no such substitution exists.  A variable already bound in
// the partial substitution must match the new binding by identity; a
// variable bound for the first time is checked for well-sortedness against
// its declared sort.
func Match(pattern, ground Term) (Substitution, bool) {
	return matchWith(EmptySubstitution(), pattern, ground)
}

func matchWith(s Substitution, pattern, ground Term) (Substitution, bool) {
	if v, ok := Variable(pattern); ok {
		sig := ground.ADT().Signature()
		if !sig.IsSubSortOf(ground.Sort(), v.Sort()) {
			return s, false
		}

		return s.Bind(v, ground)
	}

	pop, pargs, _ := Application(pattern)
	gop, gargs, gok := Application(ground)

	if !gok || pop.Name() != gop.Name() || len(pargs) != len(gargs) {
		return s, false
	}

	for i := range pargs {
		ns, ok := matchWith(s, pargs[i], gargs[i])
		if !ok {
			return s, false
		}

		s = ns
	}

	return s, true
}
