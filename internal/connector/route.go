/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package connector

import (
	"errors"
	"fmt"

	"linkcanvas/internal/vector"
)

// ErrMissingNode reports an endpoint whose node no longer exists. The route
// returned alongside it treats that end as a free anchor at its last point.
var ErrMissingNode = errors.New("node not found")

// Link connects two endpoints. A nil Bend draws a straight line.
type Link struct {
	ID     string
	Source Endpoint
	Target Endpoint
	Bend   *vector.Pt
}

// SetBend replaces the bend point as a whole.
func (l *Link) SetBend(p vector.Pt) { l.Bend = &p }

// ResetBend returns the link to a straight line.
func (l *Link) ResetBend() { l.Bend = nil }

// Route is the drawable geometry of a link for one frame. When Visible is
// false nothing should be drawn; Start and End then hold the end centres.
type Route struct {
	Start, End vector.Pt
	Curve      vector.QuadCurve
	Curved     bool
	Visible    bool

	// Unit directions of travel at the ends, for arrowheads.
	StartTangent, EndTangent vector.Pt
	// Unit directions from each node centre to its attachment; zero for
	// free anchors. Callers store these to pin an end (see Pin).
	SourceDirection, TargetDirection vector.Pt
}

// side is an endpoint resolved against the live nodes.
type side struct {
	center vector.Pt
	shape  vector.Shape
	free   bool
	dir    *vector.Pt // stored direction of an AttachedDirection end
}

func resolveSide(ep Endpoint, nodes Lookup) (side, error) {
	switch e := ep.(type) {
	case FreeAnchor:
		return freeSide(e.Point), nil
	case AttachedLive:
		n, ok := nodes.Node(e.NodeID)
		if !ok {
			return freeSide(e.Last), fmt.Errorf("%w: %s", ErrMissingNode, e.NodeID)
		}
		return side{center: n.Shape.Center(), shape: n.Shape}, nil
	case AttachedDirection:
		n, ok := nodes.Node(e.NodeID)
		if !ok {
			return freeSide(e.Last), fmt.Errorf("%w: %s", ErrMissingNode, e.NodeID)
		}
		d := e.Direction
		return side{center: n.Shape.Center(), shape: n.Shape, dir: &d}, nil
	default:
		return side{}, fmt.Errorf("unsupported endpoint %T", ep)
	}
}

func freeSide(p vector.Pt) side {
	return side{center: p, shape: vector.PointShape(p), free: true}
}

// attach resolves where a straight line leaves s heading for other.
func (s side) attach(other vector.Pt, st Settings) (vector.Pt, vector.Pt) {
	switch {
	case s.free:
		return s.center, vector.Pt{}
	case s.dir != nil:
		d := vector.Normalize(*s.dir)
		return vector.AttachFromDirectionN(s.shape, d, st.Inset, st.Iterations), d
	default:
		a := vector.AttachTowardN(s.shape, other, st.Inset, st.Iterations)
		return a.Point, a.Direction
	}
}

// Resolve computes the route of l against the live nodes. A non-nil error
// wraps ErrMissingNode; the route is still usable and falls back to free
// anchors for the missing ends.
//
// Curved links are trimmed between node centres, so a pinned direction
// only shapes straight links.
func Resolve(l Link, nodes Lookup, st Settings) (Route, error) {
	st = st.Sanitized()
	src, serr := resolveSide(l.Source, nodes)
	tgt, terr := resolveSide(l.Target, nodes)
	err := errors.Join(serr, terr)

	if l.Bend == nil {
		return straightRoute(src, tgt, st), err
	}
	return curvedRoute(src, tgt, *l.Bend, st), err
}

func straightRoute(src, tgt side, st Settings) Route {
	start, sdir := src.attach(tgt.center, st)
	end, tdir := tgt.attach(src.center, st)
	r := Route{
		Start:           start,
		End:             end,
		Curve:           vector.QuadCurve{P0: start, Control: vector.StraightControl(start, end), P2: end},
		SourceDirection: sdir,
		TargetDirection: tdir,
	}
	r.Visible = r.Curve.Finite() && start != end
	if r.Visible {
		r.StartTangent = r.Curve.Tangent(0)
		r.EndTangent = r.Curve.Tangent(1)
	}
	return r
}

func curvedRoute(src, tgt side, bend vector.Pt, st Settings) Route {
	r := Route{Start: src.center, End: tgt.center, Curved: true}
	ctrl := vector.ControlFromBend(bend, src.center, tgt.center)
	c, ok := vector.TrimN(src.center, ctrl, tgt.center, src.shape, tgt.shape, st.Iterations)
	if !ok {
		return r
	}
	r.Visible = true
	r.Curve = c
	r.Start, r.End = c.P0, c.P2
	r.StartTangent = c.Tangent(0)
	r.EndTangent = c.Tangent(1)
	if !src.free {
		r.SourceDirection = vector.Normalize(c.P0.Sub(src.center))
	}
	if !tgt.free {
		r.TargetDirection = vector.Normalize(c.P2.Sub(tgt.center))
	}
	return r
}

// Reanchor refreshes the last known point of ep after its node moved. For
// AttachedDirection ends this re-resolves along the stored direction;
// AttachedLive ends re-attach toward their previous point. The result is
// false when the node no longer exists.
func Reanchor(ep Endpoint, nodes Lookup, st Settings) (Endpoint, bool) {
	st = st.Sanitized()
	switch e := ep.(type) {
	case AttachedDirection:
		n, ok := nodes.Node(e.NodeID)
		if !ok {
			return ep, false
		}
		e.Last = vector.AttachFromDirectionN(n.Shape, e.Direction, st.Inset, st.Iterations)
		return e, true
	case AttachedLive:
		n, ok := nodes.Node(e.NodeID)
		if !ok {
			return ep, false
		}
		e.Last = vector.AttachTowardN(n.Shape, e.Last, st.Inset, st.Iterations).Point
		return e, true
	default:
		return ep, true
	}
}
