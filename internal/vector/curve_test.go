/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math/rand"
	"testing"
)

func TestControlFromBend_CurvePassesThroughBend(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		src := Pt{rng.Float64()*2000 - 1000, rng.Float64()*2000 - 1000}
		tgt := Pt{rng.Float64()*2000 - 1000, rng.Float64()*2000 - 1000}
		bend := Pt{rng.Float64()*2000 - 1000, rng.Float64()*2000 - 1000}
		ctrl := ControlFromBend(bend, src, tgt)
		if got := Eval(src, ctrl, tgt, 0.5); !ptNear(got, bend, 1e-9) {
			t.Fatalf("curve midpoint %+v, want bend %+v", got, bend)
		}
	}
}

func TestControlFromBend_MidpointBendIsStraight(t *testing.T) {
	a, b := Pt{0, 0}, Pt{100, 40}
	if got := ControlFromBend(a.Mid(b), a, b); !ptNear(got, StraightControl(a, b), 1e-12) {
		t.Fatalf("midpoint bend should give the straight control, got %+v", got)
	}
}

func TestEval_Endpoints(t *testing.T) {
	q := QuadCurve{P0: Pt{1, 2}, Control: Pt{50, -80}, P2: Pt{100, 3}}
	if q.Eval(0) != q.P0 || q.Eval(1) != q.P2 {
		t.Fatalf("curve must start at P0 and end at P2")
	}
	// 0.25*p0 + 0.5*c + 0.25*p2
	if got := q.Eval(0.5); !ptNear(got, Pt{0.25 + 25 + 25, 0.5 - 40 + 0.75}, 1e-12) {
		t.Fatalf("Eval(0.5) = %+v", got)
	}
}

func TestSplitAt_HalvesFollowCurve(t *testing.T) {
	q := QuadCurve{P0: Pt{0, 0}, Control: Pt{40, 90}, P2: Pt{120, 10}}
	const at = 0.3
	left, right := q.SplitAt(at)
	if left.P2 != right.P0 {
		t.Fatalf("halves must share the split point")
	}
	for _, u := range []float64{0, 0.2, 0.5, 0.9, 1} {
		if !ptNear(left.Eval(u), q.Eval(u*at), 1e-9) {
			t.Fatalf("left half diverges at u=%v", u)
		}
		if !ptNear(right.Eval(u), q.Eval(at+u*(1-at)), 1e-9) {
			t.Fatalf("right half diverges at u=%v", u)
		}
	}
}

func TestTangent(t *testing.T) {
	q := QuadCurve{P0: Pt{0, 0}, Control: Pt{0, 100}, P2: Pt{100, 100}}
	if got := q.Tangent(0); !ptNear(got, Pt{0, 1}, 1e-12) {
		t.Fatalf("start tangent = %+v", got)
	}
	if got := q.Tangent(1); !ptNear(got, Pt{1, 0}, 1e-12) {
		t.Fatalf("end tangent = %+v", got)
	}

	// control on the start point: derivative vanishes at t=0
	d := QuadCurve{P0: Pt{0, 0}, Control: Pt{0, 0}, P2: Pt{0, 50}}
	if got := d.Tangent(0); !ptNear(got, Pt{0, 1}, 1e-12) {
		t.Fatalf("degenerate start tangent should follow the chord, got %+v", got)
	}
	p := QuadCurve{P0: Pt{5, 5}, Control: Pt{5, 5}, P2: Pt{5, 5}}
	if got := p.Tangent(0.5); got != DefaultDirection {
		t.Fatalf("point curve tangent should default, got %+v", got)
	}
}
