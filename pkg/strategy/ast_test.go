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
package strategy_test

import (
	"testing"

	"github.com/stratagem-mc/stratagem/pkg/strategy"
)

func TestPrintCanonicalForms(t *testing.T) {
	tests := []struct {
		name string
		s    strategy.Strategy
		want string
	}{
		{"fail", strategy.Fail{}, "Fail"},
		{"identity", strategy.Identity{}, "Identity"},
		{"try", strategy.TryOf(strategy.Fail{}), "Choice(Fail, Identity)"},
		{"one-default", strategy.NewOne(strategy.Identity{}), "One(Identity, 1)"},
		{"one-explicit", strategy.NewOne(strategy.Identity{}, 2), "One(Identity, 2)"},
		{"not", strategy.Not{Inner: strategy.Fail{}}, "Not(Fail)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strategy.Print(tt.s); got != tt.want {
				t.Fatalf("Print() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVariableIdentityNotName(t *testing.T) {
	d := strategy.NewDeclared("d", []string{"S", "S"}, strategy.Identity{}, false)

	if d.Formal[0] == d.Formal[1] {
		t.Fatalf("expected distinct formals to be distinct objects even with the same name")
	}

	ref := strategy.Variable{Formal: d.Formal[0]}
	if ref.Formal != d.Formal[0] {
		t.Fatalf("expected Variable to hold the same object as the formal")
	}
}
