/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "math"

// Boundary returns the point where the ray from the centre of s along dir
// leaves the outline.
func Boundary(s Shape, dir Pt) Pt { return BoundaryN(s, dir, DefaultIterations) }

// BoundaryN is Boundary with an explicit bisection depth.
//
// The search never looks at the kind of s: it walks the segment from the
// centre to a point far outside and bisects on Contains.
func BoundaryN(s Shape, dir Pt, iterations int) Pt {
	return boundaryAlong(s, Normalize(dir), iterations)
}

// boundaryAlong expects dir to be a unit vector already.
func boundaryAlong(s Shape, dir Pt, iterations int) Pt {
	b := s.Bounds()
	a := b.Center()
	far := math.Max(b.W, b.H) * 4
	end := a.Add(dir.Scale(far))
	if Contains(s, end) {
		end = a.Add(dir.Scale(far * 8))
	}
	t := Bisect(func(t float64) bool { return Contains(s, a.Lerp(end, t)) }, iterations)
	return a.Lerp(end, t)
}
