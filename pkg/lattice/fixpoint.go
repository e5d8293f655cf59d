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
package lattice

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Fix computes the least fixed point of x ↦ x ∪ f(x) starting from x0,
// iterating x_{i+1} := x_i ∪ f(x_i) until x_{i+1} and x_i are the same
// canonical Element (identity convergence) or ctx is cancelled. This is the
// reachability computation a TransitionSystem runs over its transition
// strategy: f expands the current working set by one step, and Union folds
// the expansion back in so previously-seen states are never lost.
func Fix(ctx context.Context, b *Builder, x0 Element, f func(context.Context, Element) (Element, error)) (Element, error) {
	cur := x0

	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return cur, err
		}

		next, err := f(ctx, cur)
		if err != nil {
			return cur, err
		}

		union := b.Union(cur, next)
		if log.IsLevelEnabled(log.DebugLevel) {
			log.WithField("iteration", i).WithField("size", len(union.Terms())).Debug("lattice: fixed-point iteration")
		}

		if union == cur {
			return cur, nil
		}

		cur = union
	}
}
