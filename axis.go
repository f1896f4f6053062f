package diagram

import (
	"math"
	"strconv"

	"github.com/midbel/slices"
)

const (
	tickOffset  = 5
	textOffsetY = 2
	yearOffset  = 20
)

// Ticks is either a number of divisions or a list of labels, in which case
// there is one division less than labels.
type Ticks struct {
	Count  int
	Labels []string
}

func CountTicks(n int) Ticks {
	return Ticks{Count: n}
}

func LabelTicks(labels ...string) Ticks {
	return Ticks{Labels: labels}
}

func (t Ticks) Divisions() int {
	if len(t.Labels) > 0 {
		return len(t.Labels) - 1
	}
	return t.Count
}

func (t Ticks) literal() bool {
	return len(t.Labels) > 0
}

type Grid struct {
	Rows Ticks
	Cols Ticks
	Max  float64

	RowLabels bool
	// SemiGrid labels the columns with the value found at their position
	// instead of literal labels.
	SemiGrid bool
	Truncate int

	Text   TextStyle
	Stroke Color
	Width  float64
}

func (g Grid) Render(cv Canvas, area Rect) Cell {
	var (
		rows = g.Rows.Divisions()
		cols = g.Cols.Divisions()
		cell Cell
	)
	if cols > 0 {
		cell.Width = area.Width / float64(cols)
	}
	if rows > 0 {
		cell.Height = area.Height / float64(rows)
	}
	if rows > 0 {
		g.drawRows(cv, area, rows, cell.Height)
	}
	if cols > 0 {
		g.drawCols(cv, area, cols, cell.Width)
	}
	return cell
}

func (g Grid) drawRows(cv Canvas, area Rect, rows int, height float64) {
	text := g.Text
	text.Align = AlignRight
	text.Baseline = BaselineMiddle
	for i := 0; i <= rows; i++ {
		y := area.Y + float64(i)*height
		cv.MoveTo(area.X, y)
		cv.LineTo(area.Right(), y)
	}
	cv.Stroke(g.Stroke, g.Width)
	if !g.RowLabels {
		return
	}
	for i := 0; i <= rows; i++ {
		var (
			y   = area.Y + float64(i)*height
			n   = rows - i
			str string
		)
		switch {
		case g.Rows.literal():
			str = g.Rows.Labels[n]
		case n == 0:
			continue
		case g.Max > 0:
			str = formatValue(float64(n) / float64(rows) * g.Max)
		default:
			str = strconv.Itoa(n)
		}
		cv.Text(str, area.X-tickOffset, y+textOffsetY, text)
	}
}

func (g Grid) drawCols(cv Canvas, area Rect, cols int, width float64) {
	text := g.Text
	text.Align = AlignCenter
	text.Baseline = BaselineTop
	for i := 0; i <= cols; i++ {
		x := area.X + float64(i)*width
		cv.MoveTo(x, area.Y)
		cv.LineTo(x, area.Bottom())
	}
	cv.Stroke(g.Stroke, g.Width)
	for i := 0; i <= cols; i++ {
		var (
			x   = area.X + float64(i)*width
			str string
		)
		switch {
		case g.Cols.literal():
			str = truncate(g.Cols.Labels[i], g.Truncate)
		case g.SemiGrid:
			str = formatValue((x - area.X) / area.Width * g.Max)
		default:
			continue
		}
		cv.Text(str, x, area.Bottom()+tickOffset, text)
	}
}

// Period is a group of consecutive steps of a time axis, typically the months
// of a year.
type Period struct {
	Label string
	Steps []string
}

func (p Period) Len() int {
	return len(p.Steps)
}

type TimeGrid struct {
	Periods []Period
	Rows    int
	Cols    int
	Max     float64

	Truncate   int
	FirstMonth string

	Text   TextStyle
	Stroke Color
	Width  float64
}

func (g TimeGrid) Steps() int {
	var n int
	for _, p := range g.Periods {
		n += p.Len()
	}
	return n
}

// Render draws the grid and returns the width of one column.
func (g TimeGrid) Render(cv Canvas, area Rect) float64 {
	cols := g.Cols
	if cols <= 0 {
		cols = g.Steps() - 1
	}
	var interval float64
	if cols > 0 {
		interval = area.Width / float64(cols)
	} else {
		interval = area.Width
	}
	if g.Rows > 0 {
		g.drawRows(cv, area)
	}
	switch {
	case len(g.Periods) == 1 && slices.Fst(g.Periods).Len() == 1:
		g.drawSingle(cv, area, slices.Fst(slices.Fst(g.Periods).Steps))
	case len(g.Periods) == 1:
		g.drawMonths(cv, area, cols, interval)
	case len(g.Periods) > 1:
		g.drawYears(cv, area, interval)
	}
	return interval
}

func (g TimeGrid) drawRows(cv Canvas, area Rect) {
	var (
		height = area.Height / float64(g.Rows)
		text   = g.Text
	)
	text.Align = AlignRight
	text.Baseline = BaselineMiddle
	for i := 0; i <= g.Rows; i++ {
		y := area.Bottom() - float64(i)*height
		cv.MoveTo(area.X, y)
		cv.LineTo(area.Right(), y)
	}
	cv.Stroke(g.Stroke, g.Width)
	for i := 1; i <= g.Rows; i++ {
		var (
			y   = area.Bottom() - float64(i)*height
			str = formatValue(float64(i) / float64(g.Rows) * g.Max)
		)
		cv.Text(str, area.X-tickOffset, y+textOffsetY, text)
	}
}

func (g TimeGrid) drawSingle(cv Canvas, area Rect, label string) {
	cv.MoveTo(area.X, area.Y)
	cv.LineTo(area.X, area.Bottom())
	cv.MoveTo(area.Right(), area.Y)
	cv.LineTo(area.Right(), area.Bottom())
	cv.Stroke(g.Stroke, g.Width)

	text := g.colText()
	cv.Text(truncate(label, g.Truncate), area.X+area.Width/2, area.Bottom()+tickOffset, text)
}

func (g TimeGrid) drawMonths(cv Canvas, area Rect, cols int, interval float64) {
	steps := slices.Fst(g.Periods).Steps
	for i := 0; i <= cols; i++ {
		x := area.X + float64(i)*interval
		cv.MoveTo(x, area.Y)
		cv.LineTo(x, area.Bottom())
	}
	cv.Stroke(g.Stroke, g.Width)

	text := g.colText()
	for i := 0; i <= cols && i < len(steps); i++ {
		x := area.X + float64(i)*interval
		cv.Text(truncate(steps[i], g.Truncate), x, area.Bottom()+tickOffset, text)
	}
}

func (g TimeGrid) drawYears(cv Canvas, area Rect, interval float64) {
	var (
		text = g.colText()
		x    = area.X
	)
	type label struct {
		str string
		x   float64
		y   float64
	}
	var labels []label
	for _, p := range g.Periods {
		if p.Len() > 0 && slices.Fst(p.Steps) == g.FirstMonth {
			labels = append(labels, label{str: p.Label, x: x, y: area.Bottom() + yearOffset})
		}
		for _, s := range p.Steps {
			cv.MoveTo(x, area.Y)
			cv.LineTo(x, area.Bottom())
			labels = append(labels, label{str: truncate(s, g.Truncate), x: x, y: area.Bottom() + tickOffset})
			x += interval
		}
	}
	cv.Stroke(g.Stroke, g.Width)
	for _, i := range labels {
		cv.Text(i.str, i.x, i.y, text)
	}
}

func (g TimeGrid) colText() TextStyle {
	text := g.Text
	text.Align = AlignCenter
	text.Baseline = BaselineTop
	return text
}

func truncate(str string, n int) string {
	if n <= 0 {
		return str
	}
	rs := []rune(str)
	if len(rs) <= n {
		return str
	}
	return string(rs[:n])
}

func formatValue(f float64) string {
	f = math.Round(f*100) / 100
	return strconv.FormatFloat(f, 'f', -1, 64)
}
