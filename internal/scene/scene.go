/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene is the node/link document the command line operates on.
// It owns persistence and id bookkeeping and delegates all geometry to
// the connector engine.
package scene

import (
	"errors"
	"fmt"
	"strings"

	"linkcanvas/internal/connector"
	"linkcanvas/internal/vector"
)

var (
	ErrInvalidScene = errors.New("invalid scene")
	ErrUnknownNode  = errors.New("unknown node")
	ErrUnknownLink  = errors.New("unknown link")
	ErrDuplicateID  = errors.New("duplicate id")
)

const (
	// Version is the document format written by Encode.
	Version = 1

	anchorPrefix = "anchor-"
	linkPrefix   = "link-"
)

// Node is a connector node plus its presentation label.
type Node struct {
	connector.Node
	Label string
}

// Scene holds nodes in insertion order and the links between them.
type Scene struct {
	Nodes []Node
	Links []connector.Link
}

// New returns an empty scene.
func New() *Scene { return &Scene{} }

// Node implements connector.Lookup.
func (s *Scene) Node(id string) (connector.Node, bool) {
	if i := s.nodeIndex(id); i >= 0 {
		return s.Nodes[i].Node, true
	}
	return connector.Node{}, false
}

// Link returns the link with the given id.
func (s *Scene) Link(id string) (connector.Link, bool) {
	if i := s.linkIndex(id); i >= 0 {
		return s.Links[i], true
	}
	return connector.Link{}, false
}

func (s *Scene) nodeIndex(id string) int {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Scene) linkIndex(id string) int {
	for i := range s.Links {
		if s.Links[i].ID == id {
			return i
		}
	}
	return -1
}

// connectorNodes returns the nodes in insertion order, as the planner wants them.
func (s *Scene) connectorNodes() []connector.Node {
	out := make([]connector.Node, len(s.Nodes))
	for i, n := range s.Nodes {
		out[i] = n.Node
	}
	return out
}

// AddNode appends n. Ids are shared between nodes and links.
func (s *Scene) AddNode(n Node) error {
	if strings.TrimSpace(n.ID) == "" {
		return fmt.Errorf("%w: empty node id", ErrInvalidScene)
	}
	if s.taken(n.ID) {
		return fmt.Errorf("%w: %s", ErrDuplicateID, n.ID)
	}
	s.Nodes = append(s.Nodes, n)
	return nil
}

// RemoveNode deletes a node. Links that referenced it stay in place and
// resolve their dangling ends as free anchors.
func (s *Scene) RemoveNode(id string) error {
	i := s.nodeIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	s.Nodes = append(s.Nodes[:i], s.Nodes[i+1:]...)
	return nil
}

func (s *Scene) taken(id string) bool {
	return s.nodeIndex(id) >= 0 || s.linkIndex(id) >= 0
}

// nextID returns the first unused prefix+N, counting from 1.
func (s *Scene) nextID(prefix string) string {
	for i := 1; ; i++ {
		id := fmt.Sprintf("%s%d", prefix, i)
		if !s.taken(id) {
			return id
		}
	}
}

// AddLink plans a new link from start to end and appends it. Each end that
// lands on empty canvas gets an auxiliary anchor node of st.AnchorSize
// centred on the point, and the link attaches to that anchor.
func (s *Scene) AddLink(start, end vector.Pt, st connector.Settings) (connector.Link, connector.Placement) {
	st = st.Sanitized()
	pl := connector.Plan(start, end, s.connectorNodes())
	l := connector.Link{
		ID:     s.nextID(linkPrefix),
		Source: s.materialize(pl.Start, st),
		Target: s.materialize(pl.End, st),
	}
	s.Links = append(s.Links, l)
	return l, pl
}

func (s *Scene) materialize(ep connector.Endpoint, st connector.Settings) connector.Endpoint {
	fa, ok := ep.(connector.FreeAnchor)
	if !ok {
		return ep
	}
	half := st.AnchorSize / 2
	n := Node{Node: connector.Node{
		ID:        s.nextID(anchorPrefix),
		Shape:     vector.NewShape(vector.Ellipse, fa.Point.X-half, fa.Point.Y-half, st.AnchorSize, st.AnchorSize),
		Auxiliary: true,
	}}
	s.Nodes = append(s.Nodes, n)
	return connector.AttachedLive{NodeID: n.ID, Last: fa.Point}
}

// SetBend replaces the bend point of a link.
func (s *Scene) SetBend(linkID string, p vector.Pt) error {
	i := s.linkIndex(linkID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownLink, linkID)
	}
	if !p.Finite() {
		return fmt.Errorf("bend for %s: non-finite point", linkID)
	}
	s.Links[i].SetBend(p)
	return nil
}

// ResetBend makes a link straight again.
func (s *Scene) ResetBend(linkID string) error {
	i := s.linkIndex(linkID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownLink, linkID)
	}
	s.Links[i].ResetBend()
	return nil
}

// MoveNode places the top-left corner of a node at pos and re-anchors every
// link end attached to it.
func (s *Scene) MoveNode(id string, pos vector.Pt, st connector.Settings) error {
	i := s.nodeIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	if !pos.Finite() {
		return fmt.Errorf("move %s: non-finite position", id)
	}
	s.Nodes[i].Shape.Pos = pos
	for j := range s.Links {
		l := &s.Links[j]
		if nid, ok := connector.NodeID(l.Source); ok && nid == id {
			l.Source, _ = connector.Reanchor(l.Source, s, st)
		}
		if nid, ok := connector.NodeID(l.Target); ok && nid == id {
			l.Target, _ = connector.Reanchor(l.Target, s, st)
		}
	}
	return nil
}

// PinLink freezes both attached ends of a link to the directions its
// current route uses, so later moves keep each end on the same side.
func (s *Scene) PinLink(linkID string, st connector.Settings) error {
	i := s.linkIndex(linkID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownLink, linkID)
	}
	l := &s.Links[i]
	r, err := connector.Resolve(*l, s, st)
	if err != nil {
		return fmt.Errorf("pin %s: %w", linkID, err)
	}
	if !r.Visible {
		return fmt.Errorf("pin %s: route is not visible", linkID)
	}
	l.Source = connector.Pin(l.Source, r.SourceDirection, r.Start)
	l.Target = connector.Pin(l.Target, r.TargetDirection, r.End)
	return nil
}
