/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// DefaultIterations is the bisection depth used by Boundary and Trim. Twenty
// halvings of any practical bracket land well below a thousandth of a unit.
const DefaultIterations = 20

// Bisect searches s in [0,1] for the point where inside flips from true to
// false. inside(0) is assumed true. After iterations halvings it returns the
// midpoint of the remaining bracket; iterations <= 0 returns 0.5.
func Bisect(inside func(s float64) bool, iterations int) float64 {
	lo, hi := 0.0, 1.0
	for i := 0; i < iterations; i++ {
		mid := (lo + hi) / 2
		if inside(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
