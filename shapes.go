package diagram

import (
	"math"
)

const (
	fullcircle = 2 * math.Pi
)

func drawWedge(cv Canvas, center Point, radius, from, to float64, fill Color) {
	cv.MoveTo(center.X, center.Y)
	cv.Arc(center.X, center.Y, radius, from, to)
	cv.ClosePath()
	cv.Fill(fill)
}

func drawCircle(cv Canvas, center Point, radius float64, stroke Color, width float64) {
	cv.Arc(center.X, center.Y, radius, 0, fullcircle)
	cv.Stroke(stroke, width)
}

func drawBar(cv Canvas, x, y, w, h float64, fill Color) {
	cv.Rect(x, y, w, h)
	cv.Fill(fill)
}
