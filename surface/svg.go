package surface

import (
	"bufio"
	"io"
	"math"

	"github.com/midbel/diagram"
	"github.com/midbel/svg"
)

const (
	fullcircle    = 2 * math.Pi
	shadowOpacity = 0.3
	shadowOffset  = 2
)

// SVG is a diagram.Canvas producing an SVG document. Every translation opens
// a new group carrying the accumulated offset so that the coordinates written
// in the paths stay the ones given by the renderers.
type SVG struct {
	Width  float64
	Height float64

	groups []svg.Group
	group  svg.Group
	tx, ty float64

	path    svg.Path
	empty   bool
	current bool
	alpha   float64
	shadow  bool
}

func NewSVG(width, height float64) *SVG {
	s := SVG{
		Width:  width,
		Height: height,
		alpha:  1,
	}
	s.reset()
	return &s
}

func (s *SVG) MoveTo(x, y float64) {
	s.path.AbsMoveTo(svg.NewPos(x, y))
	s.empty = false
	s.current = true
}

func (s *SVG) LineTo(x, y float64) {
	if !s.current {
		s.MoveTo(x, y)
		return
	}
	s.path.AbsLineTo(svg.NewPos(x, y))
	s.empty = false
}

func (s *SVG) Arc(cx, cy, radius, start, end float64) {
	pos := arcPos(cx, cy, radius, start)
	if s.current {
		s.path.AbsLineTo(pos)
	} else {
		s.path.AbsMoveTo(pos)
	}
	s.empty = false
	s.current = true

	sweep := end - start
	if sweep >= fullcircle-1e-9 {
		// a single arc command cannot describe a full circle
		mid := start + sweep/2
		s.path.AbsArcTo(arcPos(cx, cy, radius, mid), radius, radius, 0, false, true)
		s.path.AbsArcTo(arcPos(cx, cy, radius, end), radius, radius, 0, false, true)
		return
	}
	s.path.AbsArcTo(arcPos(cx, cy, radius, end), radius, radius, 0, sweep > math.Pi, true)
}

func (s *SVG) Rect(x, y, w, h float64) {
	s.path.AbsMoveTo(svg.NewPos(x, y))
	s.path.AbsLineTo(svg.NewPos(x+w, y))
	s.path.AbsLineTo(svg.NewPos(x+w, y+h))
	s.path.AbsLineTo(svg.NewPos(x, y+h))
	s.path.ClosePath()
	s.empty = false
	s.current = true
}

func (s *SVG) ClosePath() {
	if s.empty {
		return
	}
	s.path.ClosePath()
}

func (s *SVG) Fill(c diagram.Color) {
	if s.empty {
		return
	}
	c = s.color(c)
	s.path.Fill = svg.NewFill(c.Hex())
	s.path.Fill.Opacity = c.Opacity() * s.alpha
	s.flush()
}

func (s *SVG) Stroke(c diagram.Color, width float64) {
	if s.empty {
		return
	}
	c = s.color(c)
	s.path.Fill = svg.NewFill("none")
	s.path.Stroke = svg.NewStroke(c.Hex(), width)
	s.path.Stroke.Opacity = c.Opacity() * s.alpha
	s.flush()
}

func (s *SVG) Text(str string, x, y float64, style diagram.TextStyle) {
	txt := svg.NewText(str)
	txt.Pos = svg.NewPos(x, y)
	txt.Font = svg.NewFont(style.Size)
	txt.Anchor = style.Align.String()
	txt.Baseline = style.Baseline.String()

	var g svg.Group
	g.Class = append(g.Class, "label")
	c := s.color(style.Color)
	g.Fill = svg.NewFill(c.Hex())
	g.Fill.Opacity = c.Opacity() * s.alpha
	g.Append(txt.AsElement())
	s.group.Append(g.AsElement())
}

func (s *SVG) Translate(x, y float64) {
	s.discard()
	s.groups = append(s.groups, s.group)
	s.tx += x
	s.ty += y
	s.reset()
}

// Shadow has no blur filter to rely on. The shape is drawn once more,
// slightly offset and translucent, under what comes next.
func (s *SVG) Shadow(blur float64, fn func(diagram.Canvas)) {
	if blur <= 0 {
		return
	}
	sub := SVG{
		tx:     shadowOffset,
		ty:     shadowOffset,
		alpha:  s.alpha * shadowOpacity,
		shadow: true,
	}
	sub.reset()
	fn(&sub)
	sub.discard()

	var g svg.Group
	g.Class = append(g.Class, "shadow")
	for _, sg := range append(sub.groups, sub.group) {
		g.Append(sg.AsElement())
	}
	s.discard()
	s.group.Append(g.AsElement())
}

func (s *SVG) Render(w io.Writer) error {
	el := svg.NewSVG(svg.WithDimension(s.Width, s.Height))
	el.OmitProlog = true
	for _, g := range s.groups {
		el.Append(g.AsElement())
	}
	el.Append(s.group.AsElement())

	bw := bufio.NewWriter(w)
	el.Render(bw)
	return bw.Flush()
}

func (s *SVG) color(c diagram.Color) diagram.Color {
	if s.shadow {
		return diagram.RGBA(0, 0, 0, c.A)
	}
	return c
}

func (s *SVG) flush() {
	s.group.Append(s.path.AsElement())
	s.discard()
}

func (s *SVG) discard() {
	var pat svg.Path
	pat.Rendering = "geometricPrecision"
	s.path = pat
	s.empty = true
	s.current = false
}

func (s *SVG) reset() {
	var g svg.Group
	g.Transform = svg.Translate(s.tx, s.ty)
	s.group = g
	s.discard()
}

func arcPos(cx, cy, radius, angle float64) svg.Pos {
	return svg.NewPos(cx+radius*math.Cos(angle), cy+radius*math.Sin(angle))
}
