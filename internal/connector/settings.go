/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package connector

import "linkcanvas/internal/vector"

// DefaultAnchorSize is the width and height of a materialised free anchor.
const DefaultAnchorSize = 12.0

// Settings carries the engine constants so every call site agrees on them.
type Settings struct {
	Inset      float64
	Iterations int
	AnchorSize float64
}

func DefaultSettings() Settings {
	return Settings{
		Inset:      vector.DefaultInset,
		Iterations: vector.DefaultIterations,
		AnchorSize: DefaultAnchorSize,
	}
}

// Sanitized replaces unusable values with the defaults.
func (s Settings) Sanitized() Settings {
	d := DefaultSettings()
	if !(s.Inset >= 0) {
		s.Inset = d.Inset
	}
	if s.Iterations <= 0 {
		s.Iterations = d.Iterations
	}
	if !(s.AnchorSize > 0) {
		s.AnchorSize = d.AnchorSize
	}
	return s
}
