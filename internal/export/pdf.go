// Package export renders a committed scene to other formats.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"InkBoard/internal/state"
)

// pdfScale maps canvas units to millimeters on an A4 page.
const pdfScale = 3.0

// PDF writes the object sequence to a single-page PDF at path. Objects are
// drawn in scene order so the stacking on paper matches the screen.
func PDF(path string, objects []state.CanvasObject) error {
	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()

	for _, o := range objects {
		switch o.Type {
		case state.TypeInk:
			drawInk(p, o)
		case state.TypeShape:
			drawShape(p, o)
		case state.TypeText:
			drawText(p, o)
		}
	}
	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("export: pdf: %w", err)
	}
	return nil
}

func drawInk(p *gofpdf.Fpdf, o state.CanvasObject) {
	if o.Tool == state.InkEraser {
		// Eraser strokes paint background; they do not belong on paper.
		return
	}
	r, g, b := parseHexColor(o.Stroke)
	p.SetDrawColor(r, g, b)
	p.SetLineWidth(o.StrokeWidth / pdfScale)
	for i := 2; i+1 < len(o.Points); i += 2 {
		p.Line(
			o.Points[i-2]/pdfScale, o.Points[i-1]/pdfScale,
			o.Points[i]/pdfScale, o.Points[i+1]/pdfScale,
		)
	}
}

func drawShape(p *gofpdf.Fpdf, o state.CanvasObject) {
	r, g, b := parseHexColor(o.Stroke)
	p.SetDrawColor(r, g, b)
	p.SetLineWidth(o.StrokeWidth / pdfScale)

	style := "D"
	if o.Fill != "" {
		fr, fg, fb := parseHexColor(o.Fill)
		p.SetFillColor(fr, fg, fb)
		style = "FD"
	}

	x, y := o.X/pdfScale, o.Y/pdfScale
	w, h := o.Width/pdfScale, o.Height/pdfScale
	switch o.ShapeName {
	case state.ShapeOval:
		p.Ellipse(x+w/2, y+h/2, w/2, h/2, o.Rotation, style)
	default:
		p.Rect(x, y, w, h, style)
	}
}

func drawText(p *gofpdf.Fpdf, o state.CanvasObject) {
	r, g, b := parseHexColor(o.Fill)
	p.SetTextColor(r, g, b)
	size := o.FontSize / pdfScale * 2.83 // canvas px to pt
	if size <= 0 {
		size = 10
	}
	p.SetFont("Helvetica", "", size)
	p.Text(o.X/pdfScale, (o.Y+o.FontSize)/pdfScale, o.Text)
}

// parseHexColor reads #rgb and #rrggbb strings, defaulting to black.
func parseHexColor(s string) (r, g, b int) {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
