/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"fmt"
	"math"
	"strings"
)

// ShapeKind is the outline family of a node.
type ShapeKind uint8

const (
	Rectangle ShapeKind = iota
	Ellipse
	Diamond
)

// ShapeKinds lists every outline family in declaration order.
var ShapeKinds = []ShapeKind{Rectangle, Ellipse, Diamond}

func (k ShapeKind) String() string {
	switch k {
	case Rectangle:
		return "rectangle"
	case Ellipse:
		return "ellipse"
	case Diamond:
		return "diamond"
	default:
		return fmt.Sprintf("ShapeKind(%d)", uint8(k))
	}
}

// ParseShapeKind accepts the lower-case names produced by String.
func ParseShapeKind(s string) (ShapeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectangle", "rect":
		return Rectangle, nil
	case "ellipse":
		return Ellipse, nil
	case "diamond":
		return Diamond, nil
	}
	return 0, fmt.Errorf("unknown shape kind %q", s)
}

func (k ShapeKind) MarshalText() ([]byte, error) {
	switch k {
	case Rectangle, Ellipse, Diamond:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("unknown shape kind %d", uint8(k))
}

func (k *ShapeKind) UnmarshalText(b []byte) error {
	v, err := ParseShapeKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// MinExtent is the smallest width/height the outline tests work with.
// Shapes with a missing or non-positive dimension are treated as this size
// around their centre.
const MinExtent = 1.0

// Shape is the geometric identity of a node for connector purposes.
// Pos is the top-left corner.
type Shape struct {
	Pos  Pt
	Size Size
	Kind ShapeKind
}

// NewShape builds a shape from its top-left corner and size.
func NewShape(kind ShapeKind, x, y, w, h float64) Shape {
	return Shape{Pos: Pt{x, y}, Size: Size{w, h}, Kind: kind}
}

// PointShape is a zero-sized shape sitting on p. It stands in for free
// anchors wherever an outline is required.
func PointShape(p Pt) Shape { return Shape{Pos: p, Kind: Rectangle} }

// Center is Pos + Size/2 using the raw size.
func (s Shape) Center() Pt {
	return Pt{s.Pos.X + s.Size.W/2, s.Pos.Y + s.Size.H/2}
}

// Bounds returns the axis-aligned box of the outline, with any dimension
// below MinExtent widened to MinExtent around the centre.
func (s Shape) Bounds() Rect {
	r := Rect{X: s.Pos.X, Y: s.Pos.Y, W: s.Size.W, H: s.Size.H}
	c := s.Center()
	if !(r.W >= MinExtent) {
		r.X, r.W = c.X-MinExtent/2, MinExtent
	}
	if !(r.H >= MinExtent) {
		r.Y, r.H = c.Y-MinExtent/2, MinExtent
	}
	return r
}

// Contains reports whether p lies inside the outline of s, boundary included.
func Contains(s Shape, p Pt) bool {
	if !p.Finite() {
		return false
	}
	b := s.Bounds()
	c := b.Center()
	dx := (p.X - c.X) / (b.W / 2)
	dy := (p.Y - c.Y) / (b.H / 2)
	switch s.Kind {
	case Rectangle:
		return b.Contains(p)
	case Ellipse:
		return dx*dx+dy*dy <= 1
	case Diamond:
		return math.Abs(dx)+math.Abs(dy) <= 1
	default:
		return false
	}
}

// Contains is the method form of the package-level Contains.
func (s Shape) Contains(p Pt) bool { return Contains(s, p) }
