/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// DefaultInset pulls visual attachment points this far inside the outline so
// strokes and arrowheads meet the shape without a seam.
const DefaultInset = 6.0

// Attachment is where a connector visually touches a shape, together with the
// unit direction from the shape centre that produced it. Callers store the
// direction to re-anchor the endpoint when the shape moves.
type Attachment struct {
	Point     Pt
	Direction Pt
}

// AttachToward attaches to s on the side facing target.
func AttachToward(s Shape, target Pt) Attachment {
	return AttachTowardN(s, target, DefaultInset, DefaultIterations)
}

// AttachTowardN is AttachToward with explicit inset and bisection depth.
// A target sitting exactly on the centre attaches along DefaultDirection.
func AttachTowardN(s Shape, target Pt, inset float64, iterations int) Attachment {
	dir := Normalize(target.Sub(s.Center()))
	return Attachment{
		Point:     boundaryAlong(s, dir, iterations).Sub(dir.Scale(inset)),
		Direction: dir,
	}
}

// AttachFromDirection re-resolves an attachment along a stored direction.
func AttachFromDirection(s Shape, dir Pt) Pt {
	return AttachFromDirectionN(s, dir, DefaultInset, DefaultIterations)
}

// AttachFromDirectionN is AttachFromDirection with explicit inset and depth.
func AttachFromDirectionN(s Shape, dir Pt, inset float64, iterations int) Pt {
	dir = Normalize(dir)
	return boundaryAlong(s, dir, iterations).Sub(dir.Scale(inset))
}
