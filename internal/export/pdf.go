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
	"io"

	"github.com/jung-kurt/gofpdf"

	"linkcanvas/internal/scene"
	"linkcanvas/internal/vector"
)

// PDF writes the preview as a single-page PDF. Output units are points and
// the page is sized to the plot, origin top-left.
func PDF(w io.Writer, sc *scene.Scene, routes []scene.Resolved, opts Options) error {
	p := newPlot(sc, routes, opts)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: p.width, Ht: p.height},
	})
	pdf.SetTitle("linkcanvas preview", false)
	pdf.SetCreator("linkcanvas", false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	// Built-in Helvetica keeps text vector without embedding
	pdf.SetFont("Helvetica", "", 9)

	for _, n := range sc.Nodes {
		r := p.box(n.Shape)
		if n.Auxiliary {
			c := r.Center()
			setFillColor(pdf, anchorColor)
			pdf.Circle(c.X, c.Y, r.W/2, "F")
			continue
		}
		setFillColor(pdf, nodeFill)
		setDrawColor(pdf, nodeStroke)
		pdf.SetLineWidth(1)
		switch n.Shape.Kind {
		case vector.Ellipse:
			c := r.Center()
			pdf.Ellipse(c.X, c.Y, r.W/2, r.H/2, 0, "FD")
		case vector.Diamond:
			pts := diamond(r)
			pdf.Polygon(pdfPoints(pts[:]), "FD")
		default:
			pdf.Rect(r.X, r.Y, r.W, r.H, "FD")
		}
		if p.opts.Labels && n.Label != "" {
			c := r.Center()
			setTextColor(pdf, labelColor)
			pdf.Text(c.X-pdf.GetStringWidth(n.Label)/2, c.Y+3, n.Label)
		}
	}

	p.visible(func(r scene.Resolved, col vector.Color) {
		c := r.Route.Curve
		p0, ctl, p2 := p.at(c.P0), p.at(c.Control), p.at(c.P2)
		setDrawColor(pdf, col)
		setFillColor(pdf, col)
		pdf.SetLineWidth(1.5)
		pdf.Curve(p0.X, p0.Y, ctl.X, ctl.Y, p2.X, p2.Y, "D")
		pdf.Polygon(pdfPoints(arrowHead(p2, r.Route.EndTangent, 1)), "F")
		pdf.Circle(p0.X, p0.Y, dotRadius, "F")
	})

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func pdfPoints(pts []vector.Pt) []gofpdf.PointType {
	out := make([]gofpdf.PointType, len(pts))
	for i, q := range pts {
		out[i] = gofpdf.PointType{X: q.X, Y: q.Y}
	}
	return out
}

func setDrawColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func setTextColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}
