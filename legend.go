package diagram

import (
	"math"
	"strconv"
)

const (
	swatchWidth  = 50
	swatchHeight = 20
	swatchGap    = 7
	legendRow    = swatchHeight + 10
)

type Legend struct {
	Visible     bool
	Origin      Point
	Percentages bool
	// Border strokes the swatches. Nil follows the style.
	Border *bool
}

// DrawLegend draws one swatch and one label per entry, from top to bottom.
// percents is only read when the legend asks for percentages.
func DrawLegend(cv Canvas, lg Legend, entries []string, colors Palette, percents []float64, text TextStyle) {
	text.Align = AlignLeft
	text.Baseline = BaselineMiddle

	var (
		x = lg.Origin.X
		y = lg.Origin.Y
	)
	for i, e := range entries {
		var c Color
		if i < len(colors) {
			c = colors[i]
		}
		cv.Rect(x, y, swatchWidth, swatchHeight)
		cv.Fill(c)
		if lg.Border != nil && *lg.Border {
			cv.Rect(x, y, swatchWidth, swatchHeight)
			cv.Stroke(Shade, 1)
		}
		if lg.Percentages && i < len(percents) {
			e += " (" + formatPercent(percents[i]) + "%)"
		}
		cv.Text(e, x+swatchWidth+swatchGap, y+swatchHeight/2+textOffsetY, text)
		y += legendRow
	}
}

func formatPercent(f float64) string {
	f = math.Floor(f*1000+1e-9) / 10
	return strconv.FormatFloat(f, 'f', 1, 64)
}
