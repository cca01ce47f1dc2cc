/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders diagnostic previews of a scene and its resolved
// routes as SVG, PDF or PNG.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	applog "linkcanvas/internal/log"
	"linkcanvas/internal/scene"
	"linkcanvas/internal/vector"
)

// ErrUnsupportedFormat is returned by Write for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported preview format")

// Options controls preview output. Margin is in output units (px or pt)
// and Scale maps world units to output units.
type Options struct {
	Margin float64
	Scale  float64
	Labels bool
}

// DefaultOptions matches the preview section of the default config.
func DefaultOptions() Options { return Options{Margin: 40, Scale: 1, Labels: true} }

const (
	arrowLength = 10.0
	arrowWidth  = 4.0
	dotRadius   = 2.5
)

var (
	nodeFill    = vector.White
	nodeStroke  = vector.Color{R: 60, G: 60, B: 60, A: 255}
	anchorColor = vector.Gray
	labelColor  = vector.Black
)

// plot maps world coordinates onto the output surface and holds what
// every backend draws.
type plot struct {
	sc     *scene.Scene
	routes []scene.Resolved
	colors []vector.Color
	bounds vector.Rect
	opts   Options
	width  float64
	height float64
}

func newPlot(sc *scene.Scene, routes []scene.Resolved, opts Options) *plot {
	if !(opts.Scale > 0) {
		opts.Scale = 1
	}
	if !(opts.Margin >= 0) {
		opts.Margin = 0
	}
	b := sc.Bounds(routes)
	if b.W <= 0 && b.H <= 0 {
		b = vector.R(b.X, b.Y, 1, 1)
	}
	return &plot{
		sc:     sc,
		routes: routes,
		colors: Palette(len(routes)),
		bounds: b,
		opts:   opts,
		width:  b.W*opts.Scale + 2*opts.Margin,
		height: b.H*opts.Scale + 2*opts.Margin,
	}
}

// at maps a world point onto the output surface.
func (p *plot) at(w vector.Pt) vector.Pt {
	return vector.Pt{
		X: (w.X-p.bounds.X)*p.opts.Scale + p.opts.Margin,
		Y: (w.Y-p.bounds.Y)*p.opts.Scale + p.opts.Margin,
	}
}

// world is the inverse of at.
func (p *plot) world(o vector.Pt) vector.Pt {
	return vector.Pt{
		X: (o.X-p.opts.Margin)/p.opts.Scale + p.bounds.X,
		Y: (o.Y-p.opts.Margin)/p.opts.Scale + p.bounds.Y,
	}
}

// box returns the output-space rectangle of a node outline.
func (p *plot) box(s vector.Shape) vector.Rect {
	b := s.Bounds()
	o := p.at(b.Min())
	return vector.R(o.X, o.Y, b.W*p.opts.Scale, b.H*p.opts.Scale)
}

// diamond returns the four output-space corners of a diamond outline,
// clockwise from the top.
func diamond(r vector.Rect) [4]vector.Pt {
	c := r.Center()
	return [4]vector.Pt{{X: c.X, Y: r.Y}, {X: r.X + r.W, Y: c.Y}, {X: c.X, Y: r.Y + r.H}, {X: r.X, Y: c.Y}}
}

// arrowHead returns the corners of an arrow ending at tip and travelling
// along dir, with its size multiplied by k.
func arrowHead(tip, dir vector.Pt, k float64) []vector.Pt {
	d := vector.Normalize(dir)
	n := vector.Pt{X: -d.Y, Y: d.X}
	base := tip.Sub(d.Scale(arrowLength * k))
	return []vector.Pt{tip, base.Add(n.Scale(arrowWidth * k)), base.Sub(n.Scale(arrowWidth * k))}
}

// visible yields the visible routes with their colour.
func (p *plot) visible(yield func(scene.Resolved, vector.Color)) {
	for i, r := range p.routes {
		if r.Route.Visible {
			yield(r, p.colors[i])
		}
	}
}

// Write renders a preview to path; the extension picks the format.
func Write(path string, sc *scene.Scene, routes []scene.Resolved, opts Options) error {
	var render func(io.Writer, *scene.Scene, []scene.Resolved, Options) error
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".svg":
		render = SVG
	case ".pdf":
		render = PDF
	case ".png":
		render = PNG
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	var buf bytes.Buffer
	if err := render(&buf, sc, routes, opts); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure out dir: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	applog.WithOperation(applog.WithComponent("export"), "write").Info("preview written",
		slog.String("path", path),
		slog.String("format", strings.TrimPrefix(ext, ".")),
		slog.Int("bytes", buf.Len()),
		slog.Int("links", len(routes)))
	return nil
}

func ceil(v float64) int { return int(math.Ceil(v)) }
