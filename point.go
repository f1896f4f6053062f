package diagram

type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

func (p Point) Zero() bool {
	return p.X == 0 && p.Y == 0
}

func (p Point) Add(x, y float64) Point {
	p.X += x
	p.Y += y
	return p
}

type Rect struct {
	Point
	Width  float64
	Height float64
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{
		Point:  NewPoint(x, y),
		Width:  w,
		Height: h,
	}
}

func (r Rect) Right() float64 {
	return r.X + r.Width
}

func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Cell is the size of one grid interval.
type Cell struct {
	Width  float64
	Height float64
}
