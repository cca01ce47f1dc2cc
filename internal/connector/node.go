/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package connector

import "linkcanvas/internal/vector"

// Node is a live shape a link can attach to. Z is the stacking order (higher
// is on top). Auxiliary nodes, such as materialised free anchors, are never
// attach targets.
type Node struct {
	ID        string
	Shape     vector.Shape
	Z         int
	Auxiliary bool
}

// Lookup resolves node ids to live nodes.
type Lookup interface {
	Node(id string) (Node, bool)
}

// Nodes is a Lookup over a slice, in insertion order.
type Nodes []Node

func (ns Nodes) Node(id string) (Node, bool) {
	for _, n := range ns {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
