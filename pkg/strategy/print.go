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

import "fmt"

// Print renders s in the canonical, stable notation used throughout error
// messages (pkg/linker) and trace-level log lines (pkg/rewriter). The
// prefix this produces for named forms never changes shape across releases,
// since diagnostics consumers assert on it.
func Print(s Strategy) string {
	switch v := s.(type) {
	case Fail:
		return "Fail"
	case Identity:
		return "Identity"
	case Simple:
		return fmt.Sprintf("SimpleStrategy(%d rules)", len(v.Rules))
	case Choice:
		return fmt.Sprintf("Choice(%s, %s)", Print(v.First), Print(v.Second))
	case Sequence:
		return fmt.Sprintf("Sequence(%s, %s)", Print(v.First), Print(v.Second))
	case Union:
		return fmt.Sprintf("Union(%s, %s)", Print(v.First), Print(v.Second))
	case IfThenElse:
		return fmt.Sprintf("IfThenElse(%s, %s, %s)", Print(v.Cond), Print(v.Then), Print(v.Else))
	case One:
		return fmt.Sprintf("One(%s, %d)", Print(v.Inner), v.Child)
	case Not:
		return fmt.Sprintf("Not(%s)", Print(v.Inner))
	case Repeat:
		return fmt.Sprintf("Repeat(%s)", Print(v.Inner))
	case FixPoint:
		return fmt.Sprintf("FixPointStrategy(%s)", Print(v.Inner))
	case Saturation:
		return fmt.Sprintf("Saturation(%s, %d)", Print(v.Inner), v.Level)
	case Variable:
		return v.Formal.Name
	case Instance:
		return fmt.Sprintf("%s(%s)", v.Name, printActuals(v.Actuals))
	default:
		return "<unknown strategy>"
	}
}

func printActuals(actuals []Strategy) string {
	s := ""

	for i, a := range actuals {
		if i != 0 {
			s += ", "
		}

		s += Print(a)
	}

	return s
}
