package diagram

import (
	"fmt"
	"math"
	"strconv"

	"github.com/midbel/slices"
)

const (
	pieTolerance = 0.001
	lineWidth    = 2
)

// Renderer draws the body of one kind of diagram. Prepare runs before any
// drawing and is the only place where a render can fail.
type Renderer interface {
	Kind() Kind
	Prepare(*Diagram) error
	Render(Canvas, *Diagram)
}

func getRenderer(kind Kind, shape Shape) (Renderer, error) {
	switch kind {
	case KindPie:
		return &PieRenderer{}, nil
	case KindBar:
		if shape == ShapeSeries {
			return &GroupRenderer{}, nil
		}
		return &BarRenderer{}, nil
	case KindMultiBar:
		return &GroupRenderer{}, nil
	case KindLine:
		return &LineRenderer{}, nil
	default:
		return nil, configError(kind, "type", "unrecognized chart type")
	}
}

type PieRenderer struct {
	Center Point
	Radius float64
}

func (r *PieRenderer) Kind() Kind {
	return KindPie
}

func (r *PieRenderer) Prepare(d *Diagram) error {
	if d.Data.Shape != ShapeScalar {
		return configError(KindPie, "data", fmt.Sprintf("expected scalar values, got %s", d.Data.Shape))
	}
	if d.Diagram.Radius <= 0 {
		return configError(KindPie, "diagram.radius", "must be greater than 0")
	}
	if err := d.Data.checkMagnitudes(KindPie); err != nil {
		return err
	}
	if sum := d.Data.Sum(); math.Abs(sum-1) > pieTolerance {
		return dataError(KindPie, fmt.Sprintf("values must sum to 1 (got %g)", sum))
	}
	var (
		orig = d.Diagram.Origin
		size = d.Diagram.Radius * 2
	)
	r.Radius = d.Diagram.Radius
	r.Center = orig.Add(r.Radius, r.Radius)

	d.Max = 1
	d.Area = NewRect(orig.X, orig.Y, size, size)
	d.Entries = d.Data.Keys()
	d.Percents = d.Data.Values()
	d.Colors = d.source.Take(len(d.Entries))
	return nil
}

func (r *PieRenderer) Render(cv Canvas, d *Diagram) {
	draw := func(cv Canvas) {
		var angle float64
		for i, e := range d.Data.Entries {
			next := angle + e.Value*fullcircle
			if e.Value > 0 {
				drawWedge(cv, r.Center, r.Radius, angle, next, d.Colors[i])
			}
			angle = next
		}
	}
	if d.Style.Blur > 0 {
		cv.Shadow(d.Style.Blur, draw)
	}
	draw(cv)
	if d.Style.Outline {
		drawCircle(cv, r.Center, r.Radius, Shade, 1)
	}
}

type BarRenderer struct {
	ItemHeight float64
	Spacing    float64
	Scale      Scale
}

func (r *BarRenderer) Kind() Kind {
	return KindBar
}

func (r *BarRenderer) Prepare(d *Diagram) error {
	if d.Data.Shape != ShapeScalar {
		return configError(KindBar, "data", fmt.Sprintf("expected scalar values, got %s", d.Data.Shape))
	}
	if err := d.Data.checkMagnitudes(KindBar); err != nil {
		return err
	}
	height, spacing, err := barGeometry(KindBar, d, 1)
	if err != nil {
		return err
	}
	r.Spacing = spacing
	r.ItemHeight = height
	d.Max = ComputeMax(d.Data)
	r.Scale = NewScale(d.Max, d.Area.Width)

	d.Entries = d.Data.Keys()
	d.Colors = d.source.Take(len(d.Entries))
	return nil
}

func (r *BarRenderer) Render(cv Canvas, d *Diagram) {
	drawBarGrid(cv, d)

	var (
		text = d.Style.text(d.Style.Font, AlignRight, BaselineMiddle)
		y    = d.Area.Y + r.Spacing/2
	)
	for i, e := range d.Data.Entries {
		w := r.Scale.Scale(e.Value)
		drawBar(cv, d.Area.X, y, w, r.ItemHeight, d.Colors[i])
		cv.Text(e.Key, d.Area.X-labelMargin, y+r.ItemHeight/2+textOffsetY, text)
		if d.Diagram.Indicators && e.Value != 0 {
			drawIndicator(cv, d, e.Value, d.Area.X+w, y+r.ItemHeight/2)
		}
		y += r.ItemHeight + r.Spacing
	}
}

// GroupRenderer draws one bar per sub-series inside each category. Colors
// belong to the sub-series so that they are the same in every category.
type GroupRenderer struct {
	Subseries   []string
	ItemHeight  float64
	EntryHeight float64
	Spacing     float64
	Scale       Scale
}

func (r *GroupRenderer) Kind() Kind {
	return KindMultiBar
}

func (r *GroupRenderer) Prepare(d *Diagram) error {
	if d.Data.Shape != ShapeSeries {
		return configError(d.Kind, "data", fmt.Sprintf("expected category/series values, got %s", d.Data.Shape))
	}
	if err := d.Data.checkMagnitudes(d.Kind); err != nil {
		return err
	}
	r.Subseries = d.Data.Subseries()
	height, spacing, err := barGeometry(d.Kind, d, len(r.Subseries))
	if err != nil {
		return err
	}
	r.Spacing = spacing
	r.ItemHeight = height
	r.EntryHeight = height / float64(len(r.Subseries))
	d.Max = ComputeMax(d.Data)
	r.Scale = NewScale(d.Max, d.Area.Width)

	d.Entries = r.Subseries
	d.Colors = d.source.Take(len(d.Entries))
	return nil
}

func (r *GroupRenderer) Render(cv Canvas, d *Diagram) {
	drawBarGrid(cv, d)

	var (
		text = d.Style.text(d.Style.Font, AlignRight, BaselineMiddle)
		y    = d.Area.Y + r.Spacing/2
	)
	for _, e := range d.Data.Entries {
		cv.Text(e.Key, d.Area.X-labelMargin, y+r.ItemHeight/2+textOffsetY, text)

		values := make(map[string]float64)
		for _, c := range e.Children {
			values[c.Key] = c.Value
		}
		for j, s := range r.Subseries {
			v, ok := values[s]
			if ok {
				w := r.Scale.Scale(v)
				drawBar(cv, d.Area.X, y, w, r.EntryHeight, d.Colors[j])
				if v != 0 {
					drawIndicator(cv, d, v, d.Area.X+w, y+r.EntryHeight/2)
				}
			}
			y += r.EntryHeight
		}
		y += r.Spacing
	}
}

type LineRenderer struct {
	Series  []Serie
	Periods []Period
	Scale   Scale
}

func (r *LineRenderer) Kind() Kind {
	return KindLine
}

func (r *LineRenderer) Prepare(d *Diagram) error {
	if d.Data.Shape == ShapeScalar {
		return configError(KindLine, "data", "expected category/series or year/month/series values")
	}
	if err := d.Data.checkMagnitudes(KindLine); err != nil {
		return err
	}
	if d.Diagram.Height == 0 {
		d.Diagram.Height = lineHeight
	}
	d.Max = ComputeMax(d.Data)
	d.Area = NewRect(d.Diagram.Origin.X, d.Diagram.Origin.Y, d.Diagram.Width, d.Diagram.Height)

	r.Series, r.Periods = Transpose(d.Data)
	r.Scale = NewScale(d.Max, d.Area.Height)

	d.Entries = make([]string, 0, len(r.Series))
	for _, s := range r.Series {
		d.Entries = append(d.Entries, s.Title)
	}
	d.Colors = d.source.Take(len(d.Entries))
	for i := range r.Series {
		r.Series[i].Color = d.Colors[i]
	}
	return nil
}

func (r *LineRenderer) Render(cv Canvas, d *Diagram) {
	grid := TimeGrid{
		Periods:    r.Periods,
		Rows:       d.Diagram.Grid.Rows.Or(autoRows),
		Cols:       d.Diagram.Grid.Cols.Or(0),
		Max:        d.Max,
		Truncate:   d.Diagram.Grid.Truncate,
		FirstMonth: d.Diagram.Grid.FirstMonth,
		Text:       d.Style.text(d.Style.LabelFont, AlignCenter, BaselineTop),
		Stroke:     d.Style.GridColor,
		Width:      d.Style.LineWidth,
	}
	interval := grid.Render(cv, d.Area)
	for _, s := range r.Series {
		r.renderSerie(cv, d.Area, s, interval)
	}
}

func (r *LineRenderer) renderSerie(cv Canvas, area Rect, s Serie, interval float64) {
	if s.Len() == 0 {
		return
	}
	if s.Len() == 1 {
		y := area.Y + r.Scale.Invert(slices.Fst(s.Points).Value)
		cv.MoveTo(area.X, y)
		cv.LineTo(area.Right(), y)
		cv.Stroke(s.Color, lineWidth)
		return
	}
	var prev int
	for i, pt := range s.Points {
		var (
			x = area.X + float64(pt.Index)*interval
			y = area.Y + r.Scale.Invert(pt.Value)
		)
		if i == 0 || pt.Index != prev+1 {
			cv.MoveTo(x, y)
		} else {
			cv.LineTo(x, y)
		}
		prev = pt.Index
	}
	cv.Stroke(s.Color, lineWidth)
}

// barGeometry sets the plot area of the bar charts and returns the height of
// one category and the space between two categories.
func barGeometry(kind Kind, d *Diagram, per int) (float64, float64, error) {
	var (
		count   = float64(d.Data.Len())
		spacing = d.Diagram.Spacing
	)
	if per <= 0 {
		return 0, 0, configError(kind, "data", "no series found")
	}
	if d.Diagram.Height == 0 {
		d.Diagram.Height = count * float64(per+1) * barRow
		if spacing == 0 {
			spacing = barRow
		}
	}
	height := (d.Diagram.Height - spacing*count) / count
	if height <= 0 {
		return 0, 0, configError(kind, "diagram.spacing", "leaves no room for the bars")
	}
	d.Area = NewRect(d.Diagram.Origin.X, d.Diagram.Origin.Y, d.Diagram.Width, d.Diagram.Height)
	return height, spacing, nil
}

func drawBarGrid(cv Canvas, d *Diagram) Cell {
	grid := d.grid()
	grid.Rows = CountTicks(d.Diagram.Grid.Rows.Or(d.Data.Len() + 1))
	grid.Cols = CountTicks(d.Diagram.Grid.Cols.Or(autoCols))
	grid.SemiGrid = true
	return grid.Render(cv, d.Area)
}

func drawIndicator(cv Canvas, d *Diagram, value, x, y float64) {
	text := d.Style.text(d.Style.LabelFont, AlignLeft, BaselineMiddle)
	str := strconv.FormatFloat(value, 'f', -1, 64)
	cv.Text(str, x+tickOffset, y+textOffsetY, text)
}
