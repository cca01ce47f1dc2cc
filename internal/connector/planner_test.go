/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package connector

import (
	"testing"

	"linkcanvas/internal/vector"
)

func TestPlan_AttachAndFreeAnchor(t *testing.T) {
	nodes := []Node{
		{ID: "A", Shape: vector.NewShape(vector.Rectangle, 0, 0, 100, 100)},
		{ID: "B", Shape: vector.NewShape(vector.Ellipse, 300, 0, 100, 100)},
	}
	p := Plan(vector.Pt{X: 50, Y: 50}, vector.Pt{X: 500, Y: 500}, nodes)

	start, ok := p.Start.(AttachedLive)
	if !ok || start.NodeID != "A" {
		t.Fatalf("start should attach to A, got %#v", p.Start)
	}
	end, ok := p.End.(FreeAnchor)
	if !ok || end.Point != (vector.Pt{X: 500, Y: 500}) {
		t.Fatalf("end should be a free anchor at (500,500), got %#v", p.End)
	}
}

func TestPlan_BothEndsAttached(t *testing.T) {
	nodes := []Node{
		{ID: "A", Shape: vector.NewShape(vector.Rectangle, 0, 0, 100, 100)},
		{ID: "B", Shape: vector.NewShape(vector.Ellipse, 300, 0, 100, 100)},
	}
	p := Plan(vector.Pt{X: 10, Y: 90}, vector.Pt{X: 350, Y: 50}, nodes)
	if id, _ := NodeID(p.Start); id != "A" {
		t.Fatalf("start = %#v", p.Start)
	}
	if id, _ := NodeID(p.End); id != "B" {
		t.Fatalf("end = %#v", p.End)
	}
	// (305,5) is inside B's box but outside the ellipse
	if _, ok := Plan(vector.Pt{X: 305, Y: 5}, vector.Pt{}, nodes).Start.(FreeAnchor); !ok {
		t.Fatalf("ellipse corner region must not attach")
	}
}

func TestPick_HigherStackingOrderWins(t *testing.T) {
	top := Node{ID: "top", Shape: vector.NewShape(vector.Rectangle, 0, 0, 100, 100), Z: 5}
	bottom := Node{ID: "bottom", Shape: vector.NewShape(vector.Rectangle, 0, 0, 100, 100), Z: 1}
	for _, nodes := range [][]Node{{top, bottom}, {bottom, top}} {
		n, ok := Pick(vector.Pt{X: 50, Y: 50}, nodes)
		if !ok || n.ID != "top" {
			t.Fatalf("expected top, got %q (ok=%v)", n.ID, ok)
		}
	}
}

func TestPick_TieGoesToMostRecent(t *testing.T) {
	first := Node{ID: "first", Shape: vector.NewShape(vector.Ellipse, 0, 0, 100, 100)}
	second := Node{ID: "second", Shape: vector.NewShape(vector.Diamond, 0, 0, 100, 100)}
	n, ok := Pick(vector.Pt{X: 50, Y: 50}, []Node{first, second})
	if !ok || n.ID != "second" {
		t.Fatalf("expected the most recently added node, got %q", n.ID)
	}
}

func TestPick_SkipsAuxiliary(t *testing.T) {
	anchor := Node{ID: "anchor", Shape: vector.NewShape(vector.Ellipse, 40, 40, 20, 20), Z: 10, Auxiliary: true}
	box := Node{ID: "box", Shape: vector.NewShape(vector.Rectangle, 0, 0, 100, 100)}
	n, ok := Pick(vector.Pt{X: 50, Y: 50}, []Node{box, anchor})
	if !ok || n.ID != "box" {
		t.Fatalf("auxiliary nodes must be ignored, got %q", n.ID)
	}
	if _, ok := Pick(vector.Pt{X: 50, Y: 50}, []Node{anchor}); ok {
		t.Fatalf("only auxiliary nodes: expected no hit")
	}
}
