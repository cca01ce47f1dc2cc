/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package connector

import "linkcanvas/internal/vector"

// Endpoint is one end of a link. It is exactly one of AttachedLive,
// AttachedDirection or FreeAnchor.
type Endpoint interface {
	endpoint()
}

// AttachedLive follows its node and faces the other end of the link each
// time the route is resolved. Last is the most recent resolved point.
type AttachedLive struct {
	NodeID string
	Last   vector.Pt
}

// AttachedDirection keeps a fixed direction relative to its node's centre,
// so moving the node re-anchors the end along the same side.
type AttachedDirection struct {
	NodeID    string
	Direction vector.Pt
	Last      vector.Pt
}

// FreeAnchor is not attached to any node.
type FreeAnchor struct {
	Point vector.Pt
}

func (AttachedLive) endpoint()      {}
func (AttachedDirection) endpoint() {}
func (FreeAnchor) endpoint()        {}

// NodeID returns the id of the node ep is attached to.
func NodeID(ep Endpoint) (string, bool) {
	switch e := ep.(type) {
	case AttachedLive:
		return e.NodeID, true
	case AttachedDirection:
		return e.NodeID, true
	default:
		return "", false
	}
}

// LastPoint is where ep was last seen; for a free anchor that is its point.
func LastPoint(ep Endpoint) vector.Pt {
	switch e := ep.(type) {
	case AttachedLive:
		return e.Last
	case AttachedDirection:
		return e.Last
	case FreeAnchor:
		return e.Point
	default:
		return vector.Pt{}
	}
}

// Pin freezes an attached end to the direction it currently uses. Free
// anchors are returned unchanged.
func Pin(ep Endpoint, dir, at vector.Pt) Endpoint {
	if id, ok := NodeID(ep); ok {
		return AttachedDirection{NodeID: id, Direction: vector.Normalize(dir), Last: at}
	}
	return ep
}
