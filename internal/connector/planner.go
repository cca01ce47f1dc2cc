/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package connector

import "linkcanvas/internal/vector"

// Placement is the outcome of drawing a new line: each end is either an
// AttachedLive on an existing node or a FreeAnchor at the drawn point.
type Placement struct {
	Start Endpoint
	End   Endpoint
}

// Plan decides how a line drawn from start to end attaches to nodes.
func Plan(start, end vector.Pt, nodes []Node) Placement {
	return Placement{Start: planEnd(start, nodes), End: planEnd(end, nodes)}
}

func planEnd(p vector.Pt, nodes []Node) Endpoint {
	if n, ok := Pick(p, nodes); ok {
		return AttachedLive{NodeID: n.ID, Last: p}
	}
	return FreeAnchor{Point: p}
}

// Pick returns the topmost attachable node containing p. Higher Z wins; on
// equal Z the node added last (later in nodes) wins.
func Pick(p vector.Pt, nodes []Node) (Node, bool) {
	best := -1
	for i, n := range nodes {
		if n.Auxiliary || !vector.Contains(n.Shape, p) {
			continue
		}
		if best < 0 || n.Z >= nodes[best].Z {
			best = i
		}
	}
	if best < 0 {
		return Node{}, false
	}
	return nodes[best], true
}
