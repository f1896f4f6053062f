package diagram

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func pieConfig(values ...float64) Config {
	keys := []string{"go", "rust", "zig", "odin", "nim"}
	var entries []Entry
	for i, v := range values {
		entries = append(entries, Value(keys[i], v))
	}
	return Config{
		Kind: KindPie,
		Data: Dataset{Entries: entries},
		Diagram: Layout{
			Radius: 80,
			Grid:   AutoGrid(),
		},
		Legend: Legend{
			Visible:     true,
			Percentages: true,
		},
		Style: PrintStyle(),
	}
}

func barConfig() Config {
	return Config{
		Kind: KindBar,
		Data: Dataset{
			Entries: []Entry{
				Value("gateway", 120),
				Value("accounts", 0),
				Value("billing", 35),
			},
		},
		Diagram: Layout{
			Grid:       AutoGrid(),
			Indicators: true,
		},
		Legend: Legend{Visible: true},
		Style:  PrintStyle(),
	}
}

func multiConfig() Config {
	return Config{
		Kind: KindMultiBar,
		Data: Dataset{
			Entries: []Entry{
				Group("q1", Value("north", 3), Value("south", 5), Value("east", 1)),
				Group("q2", Value("south", 4), Value("north", 2)),
				Group("q3", Value("east", 7)),
			},
		},
		Diagram: Layout{Grid: AutoGrid()},
		Legend:  Legend{Visible: true},
		Style:   PrintStyle(),
	}
}

func lineConfig() Config {
	return Config{
		Kind: KindLine,
		Data: Dataset{
			Entries: []Entry{
				Group("2023",
					Group("November", Value("api", 10), Value("web", 4)),
					Group("December", Value("api", 12)),
				),
				Group("2024",
					Group("January", Value("api", 15), Value("web", 7)),
				),
			},
		},
		Diagram: Layout{Grid: AutoGrid()},
		Legend:  Legend{Visible: true},
		Style:   PrintStyle(),
	}
}

func TestPieAngles(t *testing.T) {
	var rec Recorder
	d, err := Render(&rec, pieConfig(0.5, 0.25, 0.125, 0.125))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	var sum float64
	for _, c := range rec.Filter(OpArc) {
		sum += c.Args[4] - c.Args[3]
	}
	if math.Abs(sum-2*math.Pi) > 1e-6 {
		t.Errorf("wedges do not cover the circle: %f", sum)
	}
	if d.Height != 80*2+2*DefaultMargin {
		t.Errorf("height mismatched! want %d, got %f", 80*2+2*DefaultMargin, d.Height)
	}
	if d.Width != DefaultPageWidth {
		t.Errorf("width mismatched! want %d, got %f", DefaultPageWidth, d.Width)
	}
}

func TestPieZeroWedge(t *testing.T) {
	var rec Recorder
	d, err := Render(&rec, pieConfig(0.5, 0, 0.5))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if n := len(rec.Filter(OpArc)); n != 2 {
		t.Errorf("wedges mismatched! want 2, got %d", n)
	}
	if len(d.Colors) != 3 {
		t.Errorf("empty wedge should keep its color, got %d colors", len(d.Colors))
	}
}

func TestPieInvalidSum(t *testing.T) {
	var rec Recorder
	_, err := Render(&rec, pieConfig(0.25, 0.25))
	if !errors.Is(err, ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
	var de *InvalidDataError
	if !errors.As(err, &de) || de.Chart != KindPie {
		t.Errorf("error should name the pie chart: %v", err)
	}
	if len(rec.Commands) != 0 {
		t.Errorf("nothing should be drawn on error, got %d commands", len(rec.Commands))
	}
}

func TestPieShadow(t *testing.T) {
	cfg := pieConfig(0.5, 0.5)
	cfg.Style = ScreenStyle()

	var rec Recorder
	if _, err := Render(&rec, cfg); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	shadows := rec.Filter(OpShadow)
	if len(shadows) != 1 {
		t.Fatalf("shadow pass mismatched! want 1, got %d", len(shadows))
	}
	if shadows[0].Args[0] != 20 {
		t.Errorf("blur mismatched! want 20, got %f", shadows[0].Args[0])
	}
	// two wedges and the outline
	if n := len(rec.Filter(OpArc)); n != 3 {
		t.Errorf("arcs mismatched! want 3, got %d", n)
	}
}

func TestBarLayout(t *testing.T) {
	var rec Recorder
	d, err := Render(&rec, barConfig())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if d.Max != 120 {
		t.Errorf("max mismatched! want 120, got %f", d.Max)
	}
	if d.Area.Height != 120 || d.Area.Width != DefaultPageWidth*3/5 {
		t.Errorf("area mismatched: %+v", d.Area)
	}
	rdr, ok := d.Renderer().(*BarRenderer)
	if !ok {
		t.Fatalf("unexpected renderer %T", d.Renderer())
	}
	if rdr.ItemHeight != 20 || rdr.Spacing != 20 {
		t.Errorf("item mismatched! want 20/20, got %f/%f", rdr.ItemHeight, rdr.Spacing)
	}
	var (
		bars   = bodyRects(&rec, d)
		widths = []float64{d.Area.Width, 0, d.Area.Width * 35 / 120}
	)
	if len(bars) != len(widths) {
		t.Fatalf("bars mismatched! want %d, got %d", len(widths), len(bars))
	}
	for i, b := range bars {
		if math.Abs(b.Args[2]-widths[i]) > 1e-9 {
			t.Errorf("bar %d: width mismatched! want %f, got %f", i, widths[i], b.Args[2])
		}
	}
	var indicators int
	for _, c := range rec.Filter(OpText) {
		if c.Style.Align != AlignLeft {
			continue
		}
		if c.Text == "120" || c.Text == "35" || c.Text == "0" {
			indicators++
		}
	}
	if indicators != 2 {
		t.Errorf("indicators mismatched! want 2, got %d", indicators)
	}
}

func TestBarWithSeries(t *testing.T) {
	cfg := multiConfig()
	cfg.Kind = KindBar

	d, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if _, ok := d.Renderer().(*GroupRenderer); !ok {
		t.Errorf("bar with series should use the group renderer, got %T", d.Renderer())
	}
}

func TestMultiBarColors(t *testing.T) {
	var rec Recorder
	d, err := Render(&rec, multiConfig())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if want := []string{"north", "south", "east"}; !reflect.DeepEqual(d.Entries, want) {
		t.Fatalf("entries mismatched! want %v, got %v", want, d.Entries)
	}
	// sub-series in drawing order, missing ones skipped
	order := []string{"north", "south", "east", "north", "south", "east"}
	bars := bodyRects(&rec, d)
	if len(bars) != len(order) {
		t.Fatalf("bars mismatched! want %d, got %d", len(order), len(bars))
	}
	colors := fillsAfter(&rec, bars)
	for i, s := range order {
		want, _ := d.ColorOf(s)
		if colors[i] != want {
			t.Errorf("bar %d (%s): color mismatched! want %s, got %s", i, s, want, colors[i])
		}
	}
}

func TestMultiBarValueLabels(t *testing.T) {
	var rec Recorder
	d, err := Render(&rec, multiConfig())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if d.Diagram.Indicators {
		t.Fatalf("indicators should be left off")
	}
	var got []string
	for _, c := range rec.Filter(OpText) {
		if c.Style.Align == AlignLeft && c.Style.Font == d.Style.LabelFont {
			got = append(got, c.Text)
		}
	}
	want := []string{"3", "5", "1", "2", "4", "7"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("value labels mismatched! want %v, got %v", want, got)
	}
}

func TestBarWithSeriesErrors(t *testing.T) {
	cfg := multiConfig()
	cfg.Kind = KindBar
	cfg.Data.Entries[0].Children[0].Value = -1

	_, err := New(cfg)
	var de *InvalidDataError
	if !errors.As(err, &de) {
		t.Fatalf("expected InvalidDataError, got %v", err)
	}
	if de.Chart != KindBar {
		t.Errorf("chart mismatched! want %s, got %s", KindBar, de.Chart)
	}
}

func TestStyleDefaults(t *testing.T) {
	cfg := barConfig()
	cfg.Style = Style{
		Colors: ColorShuffle,
		Blur:   5,
		Seed:   3,
	}
	d, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if d.Style.Colors != ColorShuffle || d.Style.Blur != 5 || d.Style.Seed != 3 {
		t.Errorf("style overwritten: colors=%d blur=%f seed=%d", d.Style.Colors, d.Style.Blur, d.Style.Seed)
	}
	base := DefaultStyle()
	if d.Style.Font != base.Font || d.Style.LabelFont != base.LabelFont {
		t.Errorf("fonts not defaulted: %+v %+v", d.Style.Font, d.Style.LabelFont)
	}
	if d.Style.TextColor != base.TextColor || d.Style.GridColor != base.GridColor {
		t.Errorf("colors not defaulted: %s %s", d.Style.TextColor, d.Style.GridColor)
	}
	if d.Style.LineWidth != base.LineWidth || d.Style.PageWidth != base.PageWidth || d.Style.Margin != base.Margin {
		t.Errorf("geometry not defaulted: %+v", d.Style)
	}

	cfg.Style = ClassicStyle()
	cfg.Style.Font = NewFont("monospace", 10)
	if d, err = New(cfg); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if d.Style.Font != NewFont("monospace", 10) {
		t.Errorf("font overwritten: %+v", d.Style.Font)
	}
}

func TestLegendBorder(t *testing.T) {
	off, on := false, true
	tests := []struct {
		name   string
		style  Style
		border *bool
		want   bool
	}{
		{name: "screen-default", style: ScreenStyle(), want: true},
		{name: "screen-off", style: ScreenStyle(), border: &off, want: false},
		{name: "print-default", style: PrintStyle(), want: false},
		{name: "print-on", style: PrintStyle(), border: &on, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := barConfig()
			cfg.Style = tt.style
			cfg.Legend.Border = tt.border

			var rec Recorder
			d, err := Render(&rec, cfg)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			var strokes int
			for _, c := range rec.Filter(OpStroke) {
				if c.Color == Shade {
					strokes++
				}
			}
			want := 0
			if tt.want {
				want = len(d.Entries)
			}
			if strokes != want {
				t.Errorf("swatch borders mismatched! want %d, got %d", want, strokes)
			}
		})
	}
}

func TestLineSinglePoint(t *testing.T) {
	cfg := Config{
		Kind: KindLine,
		Data: Dataset{
			Entries: []Entry{
				Group("march", Value("api", 4), Value("web", 8)),
			},
		},
		Diagram: Layout{Grid: AutoGrid()},
		Style:   PrintStyle(),
	}
	var rec Recorder
	d, err := Render(&rec, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if d.Area.Height != 250 {
		t.Errorf("height mismatched! want 250, got %f", d.Area.Height)
	}
	segments := polylines(&rec)
	if len(segments) != 2 {
		t.Fatalf("series mismatched! want 2, got %d", len(segments))
	}
	for i, v := range []float64{4, 8} {
		var (
			seg = segments[i]
			y   = d.Area.Y + (1-v/d.Max)*d.Area.Height
		)
		if len(seg.points) != 2 {
			t.Fatalf("serie %d: want a single segment, got %d points", i, len(seg.points))
		}
		if seg.points[0] != NewPoint(d.Area.X, y) || seg.points[1] != NewPoint(d.Area.Right(), y) {
			t.Errorf("serie %d: segment mismatched! got %v", i, seg.points)
		}
	}
}

func TestLineGaps(t *testing.T) {
	var rec Recorder
	d, err := Render(&rec, lineConfig())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if want := []string{"api", "web"}; !reflect.DeepEqual(d.Entries, want) {
		t.Fatalf("entries mismatched! want %v, got %v", want, d.Entries)
	}
	segments := polylines(&rec)
	if len(segments) != 2 {
		t.Fatalf("series mismatched! want 2, got %d", len(segments))
	}
	// web has no value in December: its two points are not joined
	if n := segments[1].moves; n != 2 {
		t.Errorf("web: moves mismatched! want 2, got %d", n)
	}
	if n := segments[0].moves; n != 1 {
		t.Errorf("api: moves mismatched! want 1, got %d", n)
	}
}

func TestLegendColors(t *testing.T) {
	configs := map[string]Config{
		"pie":      pieConfig(0.5, 0.3, 0.2),
		"bar":      barConfig(),
		"multibar": multiConfig(),
		"line":     lineConfig(),
	}
	for name, cfg := range configs {
		cfg := cfg
		t.Run(name, func(t *testing.T) {
			var rec Recorder
			d, err := Render(&rec, cfg)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			legend := legendColors(&rec, d)
			if len(legend) != len(d.Entries) {
				t.Fatalf("legend entries mismatched! want %d, got %d", len(d.Entries), len(legend))
			}
			for _, c := range bodyColors(&rec, d) {
				found := false
				for _, lc := range legend {
					found = found || lc == c
				}
				if !found {
					t.Errorf("%s: body color missing from legend", c)
				}
			}
			for k, c := range legend {
				want, ok := d.ColorOf(k)
				if !ok || want != c {
					t.Errorf("%s: legend color mismatched! want %s, got %s", k, want, c)
				}
			}
		})
	}
}

func TestIdempotence(t *testing.T) {
	configs := []Config{
		pieConfig(0.5, 0.3, 0.2),
		barConfig(),
		multiConfig(),
		lineConfig(),
	}
	for _, cfg := range configs {
		cfg.Style = ScreenStyle()
		cfg.Style.Seed = 7

		var fst, snd Recorder
		if _, err := Render(&fst, cfg); err != nil {
			t.Fatalf("%s: unexpected error: %s", cfg.Kind, err)
		}
		if _, err := Render(&snd, cfg); err != nil {
			t.Fatalf("%s: unexpected error: %s", cfg.Kind, err)
		}
		if !reflect.DeepEqual(fst.Commands, snd.Commands) {
			t.Errorf("%s: renders differ", cfg.Kind)
		}
	}
}

func TestReplay(t *testing.T) {
	cfg := pieConfig(0.5, 0.5)
	cfg.Style = ScreenStyle()

	var fst, snd Recorder
	if _, err := Render(&fst, cfg); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	fst.Replay(&snd)
	if !reflect.DeepEqual(fst.Commands, snd.Commands) {
		t.Errorf("replayed commands differ")
	}
	snd.Reset()
	if len(snd.Commands) != 0 {
		t.Errorf("reset should drop all commands")
	}
}

func TestConfigErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		update func(*Config)
		field  string
		data   bool
	}{
		{
			name:   "missing-type",
			update: func(c *Config) { c.Kind = "" },
			field:  "type",
		},
		{
			name:   "unknown-type",
			update: func(c *Config) { c.Kind = "donut" },
			field:  "type",
		},
		{
			name:   "negative-width",
			update: func(c *Config) { c.Width = -1 },
			field:  "width",
		},
		{
			name:   "nan-height",
			update: func(c *Config) { c.Diagram.Height = math.NaN() },
			field:  "diagram.height",
		},
		{
			name:   "bad-rows",
			update: func(c *Config) { c.Diagram.Grid.Rows = -2 },
			field:  "diagram.grid.rows",
		},
		{
			name:   "unknown-style",
			update: func(c *Config) { c.Style.Name = "neon" },
			field:  "style",
		},
		{
			name:   "no-data",
			update: func(c *Config) { c.Data = Dataset{} },
			field:  "data",
		},
		{
			name: "mixed-depth",
			update: func(c *Config) {
				c.Data = Dataset{Entries: []Entry{Value("a", 1), Group("b", Value("x", 1))}}
			},
			field: "data",
		},
		{
			name:   "pie-without-radius",
			update: func(c *Config) { c.Kind, c.Data = KindPie, pieConfig(1).Data },
			field:  "diagram.radius",
		},
		{
			name:   "line-with-scalar",
			update: func(c *Config) { c.Kind = KindLine },
			field:  "data",
		},
		{
			name:   "no-room",
			update: func(c *Config) { c.Diagram.Height, c.Diagram.Spacing = 30, 20 },
			field:  "diagram.spacing",
		},
		{
			name:   "negative-value",
			update: func(c *Config) { c.Data.Entries[1].Value = -3 },
			data:   true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := barConfig()
			tt.update(&cfg)
			_, err := New(cfg)
			if tt.data {
				if !errors.Is(err, ErrInvalidData) {
					t.Fatalf("expected ErrInvalidData, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
			}
			var ce *InvalidConfigurationError
			if !errors.As(err, &ce) {
				t.Fatalf("expected InvalidConfigurationError, got %T", err)
			}
			if ce.Field != tt.field {
				t.Errorf("field mismatched! want %s, got %s (%s)", tt.field, ce.Field, err)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := map[string]Kind{
		"pie":       KindPie,
		"bar":       KindBar,
		"multibar":  KindMultiBar,
		"multi-bar": KindMultiBar,
		"group":     KindMultiBar,
		"line":      KindLine,
	}
	for str, want := range tests {
		got, err := ParseKind(str)
		if err != nil || got != want {
			t.Errorf("%s: want %s, got %s (%v)", str, want, got, err)
		}
	}
	if _, err := ParseKind("sunburst"); err == nil {
		t.Errorf("sunburst: expected error")
	}
}

// bodyRects returns the bars of the plot, the legend swatches excluded.
func bodyRects(rec *Recorder, d *Diagram) []Command {
	var list []Command
	for _, c := range rec.Filter(OpRect) {
		if c.Args[0] == d.Area.X {
			list = append(list, c)
		}
	}
	return list
}

// fillsAfter returns the color filling each of the given rectangles.
func fillsAfter(rec *Recorder, rects []Command) []Color {
	var (
		list []Color
		next int
	)
	for i, c := range rec.Commands {
		if next >= len(rects) {
			break
		}
		if c.Op != OpRect || !reflect.DeepEqual(c.Args, rects[next].Args) {
			continue
		}
		for _, f := range rec.Commands[i+1:] {
			if f.Op == OpFill {
				list = append(list, f.Color)
				break
			}
		}
		next++
	}
	return list
}

func legendColors(rec *Recorder, d *Diagram) map[string]Color {
	var (
		colors = make(map[string]Color)
		fill   *Color
	)
	for i, c := range rec.Commands {
		switch {
		case c.Op == OpRect && c.Args[0] == d.Legend.Origin.X && c.Args[2] == swatchWidth:
			if f := rec.Commands[i+1]; f.Op == OpFill {
				col := f.Color
				fill = &col
			}
		case c.Op == OpText && fill != nil:
			key := c.Text
			if x := strings.LastIndex(key, " ("); x > 0 && d.Legend.Percentages {
				key = key[:x]
			}
			colors[key] = *fill
			fill = nil
		}
	}
	return colors
}

func bodyColors(rec *Recorder, d *Diagram) []Color {
	var list []Color
	switch d.Kind {
	case KindLine:
		for _, c := range rec.Filter(OpStroke) {
			if c.Width == lineWidth {
				list = append(list, c.Color)
			}
		}
	case KindPie:
		for i, c := range rec.Commands {
			if c.Op == OpArc && i+2 < len(rec.Commands) && rec.Commands[i+2].Op == OpFill {
				list = append(list, rec.Commands[i+2].Color)
			}
		}
	default:
		list = fillsAfter(rec, bodyRects(rec, d))
	}
	return list
}

type polyline struct {
	points []Point
	moves  int
}

// polylines groups the paths stroked with the width of the series.
func polylines(rec *Recorder) []polyline {
	var (
		list []polyline
		curr polyline
	)
	for _, c := range rec.Commands {
		switch c.Op {
		case OpMoveTo:
			curr.moves++
			curr.points = append(curr.points, NewPoint(c.Args[0], c.Args[1]))
		case OpLineTo:
			curr.points = append(curr.points, NewPoint(c.Args[0], c.Args[1]))
		case OpStroke:
			if c.Width == lineWidth {
				list = append(list, curr)
			}
			curr = polyline{}
		}
	}
	return list
}
