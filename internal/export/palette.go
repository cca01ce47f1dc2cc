/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"linkcanvas/internal/vector"
)

// Palette returns n link colours with evenly spaced hues. The first hue is
// fixed so previews of the same scene are stable.
func Palette(n int) []vector.Color {
	out := make([]vector.Color, n)
	for i := range out {
		h := 210 + 360*float64(i)/float64(n)
		for h >= 360 {
			h -= 360
		}
		r, g, b := colorful.Hsv(h, 0.7, 0.75).RGB255()
		out[i] = vector.Color{R: r, G: g, B: b, A: 255}
	}
	return out
}
