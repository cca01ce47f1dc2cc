/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// minSpan keeps the re-mapped split parameter finite when the visible window
// starts at the very end of the curve.
const minSpan = 1e-9

// Trim cuts the curve p0-control-p2, drawn between the centres of source and
// target, down to the part outside both shapes. ok is false when no visible
// part exists; the returned curve is then the zero value.
func Trim(p0, control, p2 Pt, source, target Shape) (QuadCurve, bool) {
	return TrimN(p0, control, p2, source, target, DefaultIterations)
}

// TrimN is Trim with an explicit bisection depth.
func TrimN(p0, control, p2 Pt, source, target Shape, iterations int) (QuadCurve, bool) {
	full := QuadCurve{P0: p0, Control: control, P2: p2}
	if !full.Finite() {
		return QuadCurve{}, false
	}
	startT := ExitParam(source, full.Eval, iterations)
	endT := 1 - ExitParam(target, func(t float64) Pt { return full.Eval(1 - t) }, iterations)
	startT = clamp(startT, 0, 1)
	endT = clamp(endT, 0, 1)
	if startT >= endT {
		return QuadCurve{}, false
	}

	_, tail := full.SplitAt(startT)
	span := 1 - startT
	if span < minSpan {
		span = minSpan
	}
	localT := clamp((endT-startT)/span, 0, 1)
	visible, _ := tail.SplitAt(localT)
	if !visible.Finite() {
		return QuadCurve{}, false
	}
	return visible, true
}

// ExitParam bisects the parameter of at over [0,1] for the point where the
// walk leaves s. at(0) is expected to lie inside s.
func ExitParam(s Shape, at func(t float64) Pt, iterations int) float64 {
	return Bisect(func(t float64) bool { return Contains(s, at(t)) }, iterations)
}
