/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// QuadCurve is a quadratic Bezier from P0 through the pull of Control to P2.
type QuadCurve struct {
	P0      Pt
	Control Pt
	P2      Pt
}

// ControlFromBend returns the control point whose curve between the two
// centres passes through bend at t=0.5.
//
// B(0.5) = p0/4 + control/2 + p2/4, so control = 2*bend - (p0+p2)/2.
func ControlFromBend(bend, sourceCenter, targetCenter Pt) Pt {
	return Pt{
		X: 2*bend.X - 0.5*(sourceCenter.X+targetCenter.X),
		Y: 2*bend.Y - 0.5*(sourceCenter.Y+targetCenter.Y),
	}
}

// StraightControl is the control point that degenerates a quadratic into the
// segment a-b. It is also the bend point of an unbent connector.
func StraightControl(a, b Pt) Pt { return a.Mid(b) }

// Eval evaluates (1-t)^2*p0 + 2(1-t)t*control + t^2*p2.
func Eval(p0, control, p2 Pt, t float64) Pt {
	mt := 1 - t
	return Pt{
		X: mt*mt*p0.X + 2*mt*t*control.X + t*t*p2.X,
		Y: mt*mt*p0.Y + 2*mt*t*control.Y + t*t*p2.Y,
	}
}

func (q QuadCurve) Eval(t float64) Pt { return Eval(q.P0, q.Control, q.P2, t) }

// Derivative returns B'(t) = 2(1-t)(control-p0) + 2t(p2-control).
func (q QuadCurve) Derivative(t float64) Pt {
	d0 := q.Control.Sub(q.P0)
	d1 := q.P2.Sub(q.Control)
	return d0.Scale(2 * (1 - t)).Add(d1.Scale(2 * t))
}

// Tangent returns the unit direction of travel at t. Where the derivative
// vanishes (control on an endpoint) the chord direction is used instead.
func (q QuadCurve) Tangent(t float64) Pt {
	if d := q.Derivative(t); d.Len() > 0 {
		return Normalize(d)
	}
	return Normalize(q.P2.Sub(q.P0))
}

// SplitAt cuts q at t with de Casteljau's construction.
func (q QuadCurve) SplitAt(t float64) (QuadCurve, QuadCurve) {
	a := q.P0.Lerp(q.Control, t)
	b := q.Control.Lerp(q.P2, t)
	m := a.Lerp(b, t)
	return QuadCurve{P0: q.P0, Control: a, P2: m}, QuadCurve{P0: m, Control: b, P2: q.P2}
}

// Finite reports whether all three points are real.
func (q QuadCurve) Finite() bool {
	return q.P0.Finite() && q.Control.Finite() && q.P2.Finite()
}

// Path converts the curve into a drawable path.
func (q QuadCurve) Path() Path {
	var p Path
	p.MoveTo(q.P0.X, q.P0.Y)
	p.QuadTo(q.Control.X, q.Control.Y, q.P2.X, q.P2.Y)
	return p
}
