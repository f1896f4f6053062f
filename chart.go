package diagram

import (
	"fmt"
	"math"
)

type Kind string

const (
	KindPie      Kind = "pie"
	KindBar      Kind = "bar"
	KindMultiBar Kind = "multibar"
	KindLine     Kind = "line"
)

func ParseKind(str string) (Kind, error) {
	switch k := Kind(str); k {
	case KindPie, KindBar, KindMultiBar, KindLine:
		return k, nil
	case "group", "multi-bar":
		return KindMultiBar, nil
	default:
		return "", fmt.Errorf("%s: unrecognized chart type", str)
	}
}

// Count is a number of grid divisions. Auto lets the renderer derive it from
// the shape of the data.
type Count int

const Auto Count = -1

func (c Count) Or(n int) int {
	if c == Auto {
		return n
	}
	return int(c)
}

type GridLayout struct {
	Rows       Count
	Cols       Count
	Truncate   int
	FirstMonth string
}

func AutoGrid() GridLayout {
	return GridLayout{
		Rows: Auto,
		Cols: Auto,
	}
}

// Layout is the geometry of the plot area. Zero sizes are derived from the
// page width of the style.
type Layout struct {
	Origin     Point
	Width      float64
	Height     float64
	Spacing    float64
	Radius     float64
	Grid       GridLayout
	Indicators bool
}

type Config struct {
	Kind    Kind
	Title   string
	Data    Dataset
	Width   float64
	Height  float64
	Diagram Layout
	Legend  Legend
	Colors  Palette
	Style   Style
}

const (
	DefaultFirstMonth = "January"

	autoRows    = 6
	autoCols    = 6
	barRow      = 20
	lineHeight  = 250
	labelMargin = 10
	footer      = 50
)

// Diagram is the state of one render: the configuration with its defaults
// applied and everything derived from the data before drawing.
type Diagram struct {
	Config

	Max  float64
	Area Rect

	// Entries and Colors are shared by the body and the legend.
	Entries  []string
	Colors   Palette
	Percents []float64

	source   *ColorSource
	renderer Renderer
}

// New checks the configuration, applies the defaults and computes the layout.
// Nothing is drawn when it returns an error.
func New(cfg Config) (*Diagram, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	rdr, err := getRenderer(cfg.Kind, cfg.Data.Shape)
	if err != nil {
		return nil, err
	}
	d := Diagram{
		Config:   cfg,
		renderer: rdr,
		source:   NewColorSource(cfg.Colors, cfg.Style),
	}
	if err := rdr.Prepare(&d); err != nil {
		return nil, err
	}
	if d.Legend.Visible && d.Legend.Origin.Zero() {
		d.Legend.Origin = NewPoint(d.Area.Right()+labelMargin, d.Area.Y)
	}
	d.fitCanvas()
	return &d, nil
}

// Render creates a diagram from cfg and draws it on cv.
func Render(cv Canvas, cfg Config) (*Diagram, error) {
	d, err := New(cfg)
	if err != nil {
		return nil, err
	}
	d.Draw(cv)
	return d, nil
}

func (d *Diagram) Draw(cv Canvas) {
	if m := d.Style.Margin; m > 0 {
		cv.Translate(m, m)
	}
	d.renderer.Render(cv, d)
	if d.Legend.Visible {
		text := d.Style.text(d.Style.Font, AlignLeft, BaselineMiddle)
		DrawLegend(cv, d.Legend, d.Entries, d.Colors, d.Percents, text)
	}
}

func (d *Diagram) Renderer() Renderer {
	return d.renderer
}

// ColorOf returns the color assigned to a legend entry.
func (d *Diagram) ColorOf(entry string) (Color, bool) {
	for i := range d.Entries {
		if d.Entries[i] == entry && i < len(d.Colors) {
			return d.Colors[i], true
		}
	}
	return Color{}, false
}

func (d *Diagram) grid() Grid {
	return Grid{
		Max:      d.Max,
		Truncate: d.Diagram.Grid.Truncate,
		Text:     d.Style.text(d.Style.LabelFont, AlignCenter, BaselineTop),
		Stroke:   d.Style.GridColor,
		Width:    d.Style.LineWidth,
	}
}

func (d *Diagram) fitCanvas() {
	margin := 2 * d.Style.Margin
	if d.Width == 0 {
		d.Width = d.Style.PageWidth
	}
	if d.Height == 0 {
		height := d.Area.Bottom()
		if d.Kind != KindPie {
			height += footer
		}
		if d.Legend.Visible {
			bottom := d.Legend.Origin.Y + float64(len(d.Entries))*legendRow
			height = math.Max(height, bottom)
		}
		d.Height = height + margin
	}
}

func (c *Config) check() error {
	if c.Kind == "" {
		return configError(c.Kind, "type", "chart type is missing")
	}
	kind, err := ParseKind(string(c.Kind))
	if err != nil {
		return configError(c.Kind, "type", err.Error())
	}
	c.Kind = kind
	sizes := []struct {
		field string
		value float64
	}{
		{"width", c.Width},
		{"height", c.Height},
		{"diagram.width", c.Diagram.Width},
		{"diagram.height", c.Diagram.Height},
		{"diagram.spacing", c.Diagram.Spacing},
		{"diagram.radius", c.Diagram.Radius},
	}
	for _, s := range sizes {
		if math.IsNaN(s.value) || math.IsInf(s.value, 0) {
			return configError(c.Kind, s.field, "must be a finite number")
		}
		if s.value < 0 {
			return configError(c.Kind, s.field, "must not be negative")
		}
	}
	if c.Diagram.Grid.Rows < Auto {
		return configError(c.Kind, "diagram.grid.rows", "must be a positive number or auto")
	}
	if c.Diagram.Grid.Cols < Auto {
		return configError(c.Kind, "diagram.grid.cols", "must be a positive number or auto")
	}
	if c.Diagram.Grid.Truncate < 0 {
		return configError(c.Kind, "diagram.grid.truncate", "must not be negative")
	}
	if _, err := LookupStyle(c.Style.Name); err != nil {
		return configError(c.Kind, "style", err.Error())
	}
	if len(c.Data.Entries) == 0 {
		return configError(c.Kind, "data", "no data given")
	}
	if err := c.Data.Infer(); err != nil {
		return configError(c.Kind, "data", err.Error())
	}
	return nil
}

func (c *Config) setDefaults() {
	if base, err := LookupStyle(c.Style.Name); err == nil {
		c.Style.fill(base)
	}
	if c.Diagram.Grid.FirstMonth == "" {
		c.Diagram.Grid.FirstMonth = DefaultFirstMonth
	}
	if c.Diagram.Width == 0 {
		width := c.Width
		if width == 0 {
			width = c.Style.PageWidth
		}
		c.Diagram.Width = width * 3 / 5
	}
	if c.Legend.Border == nil {
		border := c.Style.Border
		c.Legend.Border = &border
	}
}
