/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestAttachToward_InsetAlongDirection(t *testing.T) {
	shapes := []Shape{
		NewShape(Rectangle, 0, 0, 120, 80),
		NewShape(Ellipse, -50, 30, 200, 60),
		NewShape(Diamond, 400, 400, 90, 90),
	}
	targets := []Pt{{500, 40}, {-300, -300}, {60, 900}, {445, 0}}
	for _, s := range shapes {
		c := s.Center()
		for _, target := range targets {
			a := AttachToward(s, target)
			if !almostEq(a.Direction.Len(), 1, 1e-12) {
				t.Fatalf("%v: direction not unit length: %+v", s.Kind, a.Direction)
			}
			boundary := a.Point.Add(a.Direction.Scale(DefaultInset))
			if want := Boundary(s, a.Direction); !ptNear(boundary, want, 1e-3) {
				t.Fatalf("%v: attach point %+v is not %v inside boundary %+v", s.Kind, a.Point, DefaultInset, want)
			}
			if got, raw := c.Dist(a.Point), c.Dist(boundary); !(got < raw) || !almostEq(raw-got, DefaultInset, 1e-9) {
				t.Fatalf("%v: attach distance %v should be %v closer than boundary %v", s.Kind, got, DefaultInset, raw)
			}
		}
	}
}

func TestAttachToward_TargetOnCenter(t *testing.T) {
	s := NewShape(Rectangle, 0, 0, 100, 100)
	a := AttachToward(s, s.Center())
	if a.Direction != DefaultDirection {
		t.Fatalf("expected default direction, got %+v", a.Direction)
	}
	if !ptNear(a.Point, Pt{100 - DefaultInset, 50}, 1e-3) {
		t.Fatalf("unexpected attach point %+v", a.Point)
	}
}

func TestAttachFromDirection_FollowsMovedShape(t *testing.T) {
	s := NewShape(Ellipse, 0, 0, 100, 60)
	a := AttachToward(s, Pt{300, -200})

	if got := AttachFromDirection(s, a.Direction); !ptNear(got, a.Point, 1e-3) {
		t.Fatalf("same shape and direction should reproduce %+v, got %+v", a.Point, got)
	}

	moved := s
	moved.Pos = Pt{250, 40}
	got := AttachFromDirection(moved, a.Direction)
	want := a.Point.Add(Pt{250, 40})
	if !ptNear(got, want, 1e-3) {
		t.Fatalf("re-anchored point %+v, want %+v", got, want)
	}
}

func TestAttachFromDirectionN_CustomInset(t *testing.T) {
	s := NewShape(Rectangle, 0, 0, 100, 100)
	if got := AttachFromDirectionN(s, Pt{0, 1}, 0, DefaultIterations); !ptNear(got, Pt{50, 100}, 1e-3) {
		t.Fatalf("zero inset should land on the boundary, got %+v", got)
	}
	if got := AttachFromDirectionN(s, Pt{0, 2}, 10, DefaultIterations); !ptNear(got, Pt{50, 90}, 1e-3) {
		t.Fatalf("non-unit direction should be normalised, got %+v", got)
	}
}
