// Package render generates visual diffs of legalization outcomes.
//
// The SVG output shows the placement before and after legalization as two
// side-by-side panels, with optional grid lines and displacement arrows.
// PNG and PDF output is converted from the SVG via rsvg-convert.
package render

import (
	"bytes"
	"fmt"

	"github.com/mbecker/rowlegal/pkg/legalize"
)

// Options controls SVG rendering.
type Options struct {
	// Width is the width of each panel in pixels. The full image is roughly
	// twice this wide plus margins.
	Width float64

	// ShowGrid draws a dashed line at every row boundary.
	ShowGrid bool

	// Arrows draws a displacement arrow for every moved cell in the
	// after-panel.
	Arrows bool
}

const (
	margin     = 30.0 // Outer margin around both panels
	panelGap   = 40.0 // Horizontal gap between the panels
	titleSpace = 28.0 // Space above each panel for its title
)

// Palette. Muted fills with stronger strokes so overlapping cells in the
// before-panel stay readable.
const (
	colorBoundary   = "#475569"
	colorGrid       = "#cbd5e1"
	colorCell       = "#60a5fa"
	colorCellStroke = "#1d4ed8"
	colorMoved      = "#34d399"
	colorMovedLine  = "#047857"
	colorDeadlocked = "#f87171"
	colorDeadLine   = "#b91c1c"
	colorUnresolved = "#fbbf24"
	colorUnresLine  = "#b45309"
	colorArrow      = "#0f172a"
	colorText       = "#334155"
)

// SVG renders an outcome as a two-panel before/after diff.
func SVG(o *legalize.Outcome, opts Options) ([]byte, error) {
	if opts.Width <= 0 {
		opts.Width = 800
	}

	bw := o.Boundary.XMax - o.Boundary.XMin
	bh := o.Boundary.YMax - o.Boundary.YMin
	if bw <= 0 || bh <= 0 {
		return nil, fmt.Errorf("degenerate boundary %+v", o.Boundary)
	}

	scale := opts.Width / bw
	panelH := bh * scale
	totalW := 2*opts.Width + panelGap + 2*margin
	totalH := panelH + titleSpace + 2*margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		totalW, totalH, totalW, totalH)
	buf.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>` + "\n")

	before := panel{
		outcome: o,
		originX: margin,
		originY: margin + titleSpace,
		scale:   scale,
		height:  panelH,
	}
	after := before
	after.originX = margin + opts.Width + panelGap

	title := o.Name
	if title == "" {
		title = "design"
	}
	before.renderTitle(&buf, fmt.Sprintf("%s — input", title))
	after.renderTitle(&buf, fmt.Sprintf("%s — legalized", title))

	before.renderFrame(&buf, opts.ShowGrid, o.Grid)
	after.renderFrame(&buf, opts.ShowGrid, o.Grid)

	for _, c := range o.Cells {
		before.renderCell(&buf, c.OrigX, c.OrigY, c, false)
	}
	for _, c := range o.Cells {
		after.renderCell(&buf, c.X, c.Y, c, true)
	}

	if opts.Arrows {
		buf.WriteString(arrowDefs)
		for _, c := range o.Cells {
			if c.X != c.OrigX || c.Y != c.OrigY {
				after.renderArrow(&buf, c)
			}
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

const arrowDefs = `<defs><marker id="arrowhead" markerWidth="8" markerHeight="6" refX="7" refY="3" orient="auto"><polygon points="0 0, 8 3, 0 6" fill="` + colorArrow + `"/></marker></defs>` + "\n"

// panel maps design coordinates into one screen-space viewport. Design y
// grows upward, SVG y grows downward, so ty flips around the panel height.
type panel struct {
	outcome *legalize.Outcome
	originX float64
	originY float64
	scale   float64
	height  float64
}

func (p panel) tx(x float64) float64 {
	return p.originX + (x-p.outcome.Boundary.XMin)*p.scale
}

func (p panel) ty(y float64) float64 {
	return p.originY + p.height - (y-p.outcome.Boundary.YMin)*p.scale
}

func (p panel) renderTitle(buf *bytes.Buffer, title string) {
	fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" font-family="monospace" font-size="14" fill="%s">%s</text>`+"\n",
		p.originX, p.originY-10, colorText, escape(title))
}

func (p panel) renderFrame(buf *bytes.Buffer, showGrid bool, grid float64) {
	b := p.outcome.Boundary
	if showGrid && grid > 0 {
		for y := b.YMin; y <= b.YMax; y += grid {
			fmt.Fprintf(buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="0.5" stroke-dasharray="4 3"/>`+"\n",
				p.tx(b.XMin), p.ty(y), p.tx(b.XMax), p.ty(y), colorGrid)
		}
	}
	fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n",
		p.tx(b.XMin), p.ty(b.YMax), (b.XMax-b.XMin)*p.scale, (b.YMax-b.YMin)*p.scale, colorBoundary)
}

func (p panel) renderCell(buf *bytes.Buffer, x, y float64, c legalize.CellOutcome, final bool) {
	fill, stroke := colorCell, colorCellStroke
	if final {
		switch c.Status {
		case "deadlocked":
			fill, stroke = colorDeadlocked, colorDeadLine
		case "unresolved":
			fill, stroke = colorUnresolved, colorUnresLine
		default:
			if c.X != c.OrigX || c.Y != c.OrigY {
				fill, stroke = colorMoved, colorMovedLine
			}
		}
	}
	fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.55" stroke="%s" stroke-width="1"/>`+"\n",
		p.tx(x), p.ty(y+c.Height), c.Width*p.scale, c.Height*p.scale, fill, stroke)

	// Label only when the cell is wide enough to hold it.
	if c.Width*p.scale >= float64(8*len(c.ID)) {
		fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" font-family="monospace" font-size="10" text-anchor="middle" fill="%s">%s</text>`+"\n",
			p.tx(x+c.Width/2), p.ty(y+c.Height/2)+3, colorText, escape(c.ID))
	}
}

func (p panel) renderArrow(buf *bytes.Buffer, c legalize.CellOutcome) {
	x1 := p.tx(c.OrigX + c.Width/2)
	y1 := p.ty(c.OrigY + c.Height/2)
	x2 := p.tx(c.X + c.Width/2)
	y2 := p.ty(c.Y + c.Height/2)
	fmt.Fprintf(buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.2" marker-end="url(#arrowhead)"/>`+"\n",
		x1, y1, x2, y2, colorArrow)
}

// escape replaces the characters XML treats specially in text content.
func escape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
