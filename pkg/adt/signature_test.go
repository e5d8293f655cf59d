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
package adt_test

import (
	"errors"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/stratagem-mc/stratagem/pkg/adt"
)

func requireNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func requireBadSignature(t *testing.T, err error) *adt.BadSignatureError {
	t.Helper()

	var bse *adt.BadSignatureError
	if !errors.As(err, &bse) {
		t.Fatalf("expected a *BadSignatureError, got %v", err)
	}

	return bse
}

func TestWithSortRejectsDuplicateName(t *testing.T) {
	sig, err := adt.NewSignature().WithSort("state")
	requireNoError(t, err)

	_, err = sig.WithSort("state")
	requireBadSignature(t, err)
}

func TestWithSortRejectsUnknownSuperSort(t *testing.T) {
	_, err := adt.NewSignature().WithSort("thinking", "bogus")
	requireBadSignature(t, err)
}

func TestWithSortRejectsMultipleSuperSorts(t *testing.T) {
	sig, err := adt.NewSignature().WithSort("a")
	requireNoError(t, err)
	sig, err = sig.WithSort("b")
	requireNoError(t, err)

	_, err = sig.WithSort("c", "a", "b")
	requireBadSignature(t, err)
}

func TestIsSubSortOfClosesTransitively(t *testing.T) {
	sig, err := adt.NewSignature().WithSort("state")
	requireNoError(t, err)
	sig, err = sig.WithSort("active", "state")
	requireNoError(t, err)
	sig, err = sig.WithSort("eating", "active")
	requireNoError(t, err)

	if !sig.IsSubSortOf("eating", "state") {
		t.Fatalf("expected eating to be a transitive sub-sort of state")
	}

	if sig.IsSubSortOf("state", "eating") {
		t.Fatalf("did not expect state to be a sub-sort of eating")
	}
}

func TestWithOperationRejectsUnknownSorts(t *testing.T) {
	sig, err := adt.NewSignature().WithSort("state")
	requireNoError(t, err)

	_, err = sig.WithOperation("eat", "bogus", true)
	requireBadSignature(t, err)

	_, err = sig.WithOperation("eat", "state", true, "bogus")
	requireBadSignature(t, err)
}

func TestWithOperationRejectsDuplicateName(t *testing.T) {
	sig, err := adt.NewSignature().WithSort("state")
	requireNoError(t, err)
	sig, err = sig.WithOperation("thinking", "state", true)
	requireNoError(t, err)

	_, err = sig.WithOperation("thinking", "state", true)
	requireBadSignature(t, err)
}

func TestWithConstantGeneratorCarriesFieldElement(t *testing.T) {
	sig, err := adt.NewSignature().WithSort("n")
	requireNoError(t, err)

	var v fr.Element
	v.SetUint64(42)

	sig, err = sig.WithConstantGenerator("forty-two", "n", v)
	requireNoError(t, err)

	op, ok := sig.Operation("forty-two")
	if !ok {
		t.Fatalf("expected operation forty-two to be declared")
	}

	if !op.IsConstant() {
		t.Fatalf("expected forty-two to be a constant generator")
	}

	if op.ConstantValue() != v {
		t.Fatalf("expected constant value to round-trip")
	}
}

func TestDeclareVariableRejectsDuplicateAndUnknownSort(t *testing.T) {
	sig, err := adt.NewSignature().WithSort("state")
	requireNoError(t, err)

	a := adt.NewADT("philosophers", sig)

	a, err = a.DeclareVariable("x", "state")
	requireNoError(t, err)

	if _, err := a.DeclareVariable("x", "state"); err == nil {
		t.Fatalf("expected duplicate variable name to be rejected")
	}

	if _, err := a.DeclareVariable("y", "bogus"); err == nil {
		t.Fatalf("expected unknown sort to be rejected")
	}
}
