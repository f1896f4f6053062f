package diagram

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "middle"
	case AlignRight:
		return "end"
	default:
		return "start"
	}
}

type Baseline int

const (
	BaselineAlphabetic Baseline = iota
	BaselineTop
	BaselineMiddle
	BaselineBottom
)

func (b Baseline) String() string {
	switch b {
	case BaselineTop:
		return "hanging"
	case BaselineMiddle:
		return "middle"
	case BaselineBottom:
		return "text-after-edge"
	default:
		return "auto"
	}
}

type Font struct {
	Family string
	Weight string
	Size   float64
}

func NewFont(family string, size float64) Font {
	return Font{
		Family: family,
		Size:   size,
	}
}

type TextStyle struct {
	Font
	Color    Color
	Align    Align
	Baseline Baseline
}

// Canvas is the drawing surface a diagram is rendered on. Paths follow the
// usual 2D context semantic: Fill and Stroke consume the current path.
type Canvas interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(cx, cy, radius, start, end float64)
	Rect(x, y, w, h float64)
	ClosePath()

	Fill(Color)
	Stroke(Color, float64)
	Text(str string, x, y float64, style TextStyle)

	Translate(x, y float64)
	// Shadow draws fn onto an offscreen buffer, blurs it and composites the
	// result onto the canvas.
	Shadow(blur float64, fn func(Canvas))
}

type Op int

const (
	OpMoveTo Op = iota
	OpLineTo
	OpArc
	OpRect
	OpClose
	OpFill
	OpStroke
	OpText
	OpTranslate
	OpShadow
)

func (o Op) String() string {
	switch o {
	case OpMoveTo:
		return "move"
	case OpLineTo:
		return "line"
	case OpArc:
		return "arc"
	case OpRect:
		return "rect"
	case OpClose:
		return "close"
	case OpFill:
		return "fill"
	case OpStroke:
		return "stroke"
	case OpText:
		return "text"
	case OpTranslate:
		return "translate"
	case OpShadow:
		return "shadow"
	default:
		return "unknown"
	}
}

type Command struct {
	Op    Op
	Args  []float64
	Color Color
	Width float64
	Text  string
	Style TextStyle
	Sub   []Command
}

// Recorder is a Canvas keeping the commands it receives.
type Recorder struct {
	Commands []Command
}

func (r *Recorder) MoveTo(x, y float64) {
	r.push(Command{Op: OpMoveTo, Args: []float64{x, y}})
}

func (r *Recorder) LineTo(x, y float64) {
	r.push(Command{Op: OpLineTo, Args: []float64{x, y}})
}

func (r *Recorder) Arc(cx, cy, radius, start, end float64) {
	r.push(Command{Op: OpArc, Args: []float64{cx, cy, radius, start, end}})
}

func (r *Recorder) Rect(x, y, w, h float64) {
	r.push(Command{Op: OpRect, Args: []float64{x, y, w, h}})
}

func (r *Recorder) ClosePath() {
	r.push(Command{Op: OpClose})
}

func (r *Recorder) Fill(c Color) {
	r.push(Command{Op: OpFill, Color: c})
}

func (r *Recorder) Stroke(c Color, width float64) {
	r.push(Command{Op: OpStroke, Color: c, Width: width})
}

func (r *Recorder) Text(str string, x, y float64, style TextStyle) {
	r.push(Command{Op: OpText, Args: []float64{x, y}, Text: str, Style: style})
}

func (r *Recorder) Translate(x, y float64) {
	r.push(Command{Op: OpTranslate, Args: []float64{x, y}})
}

func (r *Recorder) Shadow(blur float64, fn func(Canvas)) {
	var sub Recorder
	fn(&sub)
	r.push(Command{Op: OpShadow, Args: []float64{blur}, Sub: sub.Commands})
}

// Filter returns the recorded commands with the given operation, shadow
// passes excluded.
func (r *Recorder) Filter(op Op) []Command {
	var list []Command
	for _, c := range r.Commands {
		if c.Op == op {
			list = append(list, c)
		}
	}
	return list
}

// Replay sends the recorded commands to another canvas.
func (r *Recorder) Replay(cv Canvas) {
	replay(cv, r.Commands)
}

func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
}

func (r *Recorder) push(c Command) {
	r.Commands = append(r.Commands, c)
}

func replay(cv Canvas, list []Command) {
	for _, c := range list {
		switch c.Op {
		case OpMoveTo:
			cv.MoveTo(c.Args[0], c.Args[1])
		case OpLineTo:
			cv.LineTo(c.Args[0], c.Args[1])
		case OpArc:
			cv.Arc(c.Args[0], c.Args[1], c.Args[2], c.Args[3], c.Args[4])
		case OpRect:
			cv.Rect(c.Args[0], c.Args[1], c.Args[2], c.Args[3])
		case OpClose:
			cv.ClosePath()
		case OpFill:
			cv.Fill(c.Color)
		case OpStroke:
			cv.Stroke(c.Color, c.Width)
		case OpText:
			cv.Text(c.Text, c.Args[0], c.Args[1], c.Style)
		case OpTranslate:
			cv.Translate(c.Args[0], c.Args[1])
		case OpShadow:
			sub := c.Sub
			cv.Shadow(c.Args[0], func(cv Canvas) {
				replay(cv, sub)
			})
		}
	}
}
