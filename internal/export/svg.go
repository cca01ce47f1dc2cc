/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"linkcanvas/internal/scene"
	"linkcanvas/internal/vector"
)

// SVG writes the preview as a standalone SVG document. Geometry stays in
// world units inside a transformed group, so route paths are emitted
// exactly as resolved.
func SVG(w io.Writer, sc *scene.Scene, routes []scene.Resolved, opts Options) error {
	p := newPlot(sc, routes, opts)
	bw := bufio.NewWriter(w)
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(bw, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"0 0 %g %g\">\n", ceil(p.width), ceil(p.height), p.width, p.height)
	wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"#ffffff\"/>\n", p.width, p.height)
	o := p.at(vector.Pt{})
	wf("  <g transform=\"translate(%g %g) scale(%g)\">\n", r3(o.X), r3(o.Y), p.opts.Scale)
	// Strokes and markers are sized in output units.
	unit := 1 / p.opts.Scale

	for _, n := range sc.Nodes {
		b := n.Shape.Bounds()
		if n.Auxiliary {
			c := b.Center()
			wf("    <circle id=\"%s\" cx=\"%g\" cy=\"%g\" r=\"%g\" fill=\"%s\"/>\n", escAttr(n.ID), r3(c.X), r3(c.Y), r3(b.W/2), anchorColor.Hex())
			continue
		}
		style := fmt.Sprintf("fill=\"%s\" stroke=\"%s\" stroke-width=\"%g\"", nodeFill.Hex(), nodeStroke.Hex(), r3(unit))
		switch n.Shape.Kind {
		case vector.Ellipse:
			c := b.Center()
			wf("    <ellipse id=\"%s\" cx=\"%g\" cy=\"%g\" rx=\"%g\" ry=\"%g\" %s/>\n", escAttr(n.ID), r3(c.X), r3(c.Y), r3(b.W/2), r3(b.H/2), style)
		case vector.Diamond:
			pts := diamond(b)
			wf("    <polygon id=\"%s\" points=\"%s\" %s/>\n", escAttr(n.ID), svgPoints(pts[:]), style)
		default:
			wf("    <rect id=\"%s\" x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" %s/>\n", escAttr(n.ID), r3(b.X), r3(b.Y), r3(b.W), r3(b.H), style)
		}
		if p.opts.Labels && n.Label != "" {
			c := b.Center()
			wf("    <text x=\"%g\" y=\"%g\" font-family=\"Helvetica, Arial, sans-serif\" font-size=\"%g\" text-anchor=\"middle\" dominant-baseline=\"middle\" fill=\"%s\">%s</text>\n", r3(c.X), r3(c.Y), r3(12*unit), labelColor.Hex(), escText(n.Label))
		}
	}

	p.visible(func(r scene.Resolved, col vector.Color) {
		rt := r.Route
		path := rt.Curve.Path()
		hex := col.Hex()
		wf("    <path id=\"%s\" d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%g\"/>\n", escAttr(r.LinkID), path.SVG(), hex, r3(1.5*unit))
		wf("    <polygon points=\"%s\" fill=\"%s\"/>\n", svgPoints(arrowHead(rt.End, rt.EndTangent, unit)), hex)
		wf("    <circle cx=\"%g\" cy=\"%g\" r=\"%g\" fill=\"%s\"/>\n", r3(rt.Start.X), r3(rt.Start.Y), r3(dotRadius*unit), hex)
	})

	wf("  </g>\n</svg>\n")
	if werr != nil {
		return fmt.Errorf("build svg: %w", werr)
	}
	return bw.Flush()
}

func r3(v float64) float64 { return vector.FloatRound(v, 3) }

func svgPoints(pts []vector.Pt) string {
	parts := make([]string, len(pts))
	for i, q := range pts {
		parts[i] = fmt.Sprintf("%g,%g", r3(q.X), r3(q.Y))
	}
	return strings.Join(parts, " ")
}

func escAttr(s string) string {
	return strings.NewReplacer("&", "&amp;", "\"", "&quot;", "<", "&lt;", "\n", " ", "\r", "").Replace(s)
}

func escText(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
