/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"linkcanvas/internal/scene"
	"linkcanvas/internal/vector"
)

// PNG rasterises the preview. Outlines are filled by testing each pixel
// centre against the node shape, so the image shows exactly what the hit
// tests accept.
func PNG(w io.Writer, sc *scene.Scene, routes []scene.Resolved, opts Options) error {
	p := newPlot(sc, routes, opts)
	img := image.NewRGBA(image.Rect(0, 0, ceil(p.width), ceil(p.height)))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: toRGBA(vector.White)}, image.Point{}, draw.Src)

	for _, n := range sc.Nodes {
		if n.Auxiliary {
			fillShape(img, p, n.Shape, toRGBA(anchorColor), toRGBA(anchorColor))
			continue
		}
		fillShape(img, p, n.Shape, toRGBA(nodeFill), toRGBA(nodeStroke))
	}

	p.visible(func(r scene.Resolved, col vector.Color) {
		c := toRGBA(col)
		strokeCurve(img, p, r.Route.Curve, c)
		fillTriangle(img, arrowHead(p.at(r.Route.End), r.Route.EndTangent, 1), c)
		stamp(img, p.at(r.Route.Start), dotRadius, c)
	})

	if p.opts.Labels {
		for _, n := range sc.Nodes {
			if n.Label != "" && !n.Auxiliary {
				drawLabel(img, p.at(n.Shape.Center()), n.Label, toRGBA(labelColor))
			}
		}
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func toRGBA(c vector.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// fillShape paints every pixel whose centre lies inside s; inside pixels
// with an outside 4-neighbour get the outline colour.
func fillShape(img *image.RGBA, p *plot, s vector.Shape, fill, outline color.RGBA) {
	r := p.box(s)
	x0, y0 := int(math.Floor(r.X))-1, int(math.Floor(r.Y))-1
	x1, y1 := ceil(r.X+r.W)+1, ceil(r.Y+r.H)+1
	in := func(x, y int) bool {
		return s.Contains(p.world(vector.Pt{X: float64(x) + 0.5, Y: float64(y) + 0.5}))
	}
	bounds := img.Bounds()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !(image.Point{X: x, Y: y}).In(bounds) || !in(x, y) {
				continue
			}
			if !in(x-1, y) || !in(x+1, y) || !in(x, y-1) || !in(x, y+1) {
				img.SetRGBA(x, y, outline)
			} else {
				img.SetRGBA(x, y, fill)
			}
		}
	}
}

// strokeCurve stamps small discs along the curve, at least two per output
// unit of chord and control polygon length.
func strokeCurve(img *image.RGBA, p *plot, c vector.QuadCurve, col color.RGBA) {
	a, b, e := p.at(c.P0), p.at(c.Control), p.at(c.P2)
	steps := max(2, ceil(2*(a.Dist(b)+b.Dist(e))))
	for i := 0; i <= steps; i++ {
		stamp(img, vector.Eval(a, b, e, float64(i)/float64(steps)), 0.9, col)
	}
}

func stamp(img *image.RGBA, c vector.Pt, radius float64, col color.RGBA) {
	for y := int(math.Floor(c.Y - radius)); y <= ceil(c.Y+radius); y++ {
		for x := int(math.Floor(c.X - radius)); x <= ceil(c.X+radius); x++ {
			dx, dy := float64(x)+0.5-c.X, float64(y)+0.5-c.Y
			if dx*dx+dy*dy <= radius*radius {
				setIn(img, x, y, col)
			}
		}
	}
}

// fillTriangle fills pixels whose centre is on the inner side of all three edges.
func fillTriangle(img *image.RGBA, t []vector.Pt, col color.RGBA) {
	minX, minY := math.Min(t[0].X, math.Min(t[1].X, t[2].X)), math.Min(t[0].Y, math.Min(t[1].Y, t[2].Y))
	maxX, maxY := math.Max(t[0].X, math.Max(t[1].X, t[2].X)), math.Max(t[0].Y, math.Max(t[1].Y, t[2].Y))
	edge := func(a, b, q vector.Pt) float64 { return (b.X-a.X)*(q.Y-a.Y) - (b.Y-a.Y)*(q.X-a.X) }
	for y := int(math.Floor(minY)); y <= ceil(maxY); y++ {
		for x := int(math.Floor(minX)); x <= ceil(maxX); x++ {
			q := vector.Pt{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			e0, e1, e2 := edge(t[0], t[1], q), edge(t[1], t[2], q), edge(t[2], t[0], q)
			if (e0 >= 0 && e1 >= 0 && e2 >= 0) || (e0 <= 0 && e1 <= 0 && e2 <= 0) {
				setIn(img, x, y, col)
			}
		}
	}
}

func setIn(img *image.RGBA, x, y int, col color.RGBA) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.SetRGBA(x, y, col)
	}
}

// drawLabel centres s on c using the fixed 7x13 face.
func drawLabel(img *image.RGBA, c vector.Pt, s string, col color.RGBA) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, s).Round()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(int(math.Round(c.X))-width/2, int(math.Round(c.Y))+face.Ascent/2),
	}
	d.DrawString(s)
}
