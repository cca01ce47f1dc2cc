/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"log/slog"

	"linkcanvas/internal/connector"
	applog "linkcanvas/internal/log"
	"linkcanvas/internal/vector"
)

// Resolved is one link's route for the current node positions.
type Resolved struct {
	LinkID string
	Route  connector.Route
	// Err wraps connector.ErrMissingNode when an end lost its node.
	Err error
}

// Report is the JSON view of a Resolved route.
type Report struct {
	Link         string     `json:"link"`
	Visible      bool       `json:"visible"`
	Curved       bool       `json:"curved"`
	Start        vector.Pt  `json:"start"`
	End          vector.Pt  `json:"end"`
	Control      *vector.Pt `json:"control,omitempty"`
	Path         string     `json:"path,omitempty"`
	StartTangent vector.Pt  `json:"start_tangent"`
	EndTangent   vector.Pt  `json:"end_tangent"`
	Error        string     `json:"error,omitempty"`
}

// Report rounds the route to three decimals for display.
func (r Resolved) Report() Report {
	rt := r.Route
	rep := Report{
		Link:         r.LinkID,
		Visible:      rt.Visible,
		Curved:       rt.Curved,
		Start:        round(rt.Start),
		End:          round(rt.End),
		StartTangent: round(rt.StartTangent),
		EndTangent:   round(rt.EndTangent),
	}
	if rt.Visible {
		path := rt.Curve.Path()
		rep.Path = path.SVG()
		if rt.Curved {
			c := round(rt.Curve.Control)
			rep.Control = &c
		}
	}
	if r.Err != nil {
		rep.Error = r.Err.Error()
	}
	return rep
}

func round(p vector.Pt) vector.Pt {
	return vector.Pt{X: vector.FloatRound(p.X, 3), Y: vector.FloatRound(p.Y, 3)}
}

// Resolve computes the route of every link in order. The last known point
// of each end whose node still exists is updated from visible routes, so a
// node removed later leaves its links where they were last drawn.
func (s *Scene) Resolve(st connector.Settings) []Resolved {
	lg := applog.WithOperation(applog.WithComponent("scene"), "resolve")
	out := make([]Resolved, 0, len(s.Links))
	for i := range s.Links {
		l := &s.Links[i]
		r, err := connector.Resolve(*l, s, st)
		if err != nil {
			lg.Warn("link end lost its node", slog.String("link", l.ID), slog.Any("err", err))
		}
		if r.Visible {
			l.Source = s.withLast(l.Source, r.Start)
			l.Target = s.withLast(l.Target, r.End)
		} else {
			lg.Debug("link hidden", slog.String("link", l.ID), slog.Bool("curved", r.Curved))
		}
		out = append(out, Resolved{LinkID: l.ID, Route: r, Err: err})
	}
	lg.Debug("resolved", slog.Int("links", len(out)))
	return out
}

// withLast records p as the last point of an attached end. Ends whose node
// is gone keep their point; their route end is only a fallback.
func (s *Scene) withLast(ep connector.Endpoint, p vector.Pt) connector.Endpoint {
	if id, ok := connector.NodeID(ep); ok {
		if _, live := s.Node(id); !live {
			return ep
		}
	}
	switch e := ep.(type) {
	case connector.AttachedLive:
		e.Last = p
		return e
	case connector.AttachedDirection:
		e.Last = p
		return e
	default:
		return ep
	}
}

// Bounds is the union of all node outlines and visible routes.
func (s *Scene) Bounds(routes []Resolved) vector.Rect {
	var b vector.Rect
	first := true
	add := func(r vector.Rect) {
		if first {
			b, first = r, false
			return
		}
		b = b.Union(r)
	}
	for _, n := range s.Nodes {
		add(n.Shape.Bounds())
	}
	for _, r := range routes {
		if r.Route.Visible {
			path := r.Route.Curve.Path()
			add(path.Bounds())
		}
	}
	return b
}
