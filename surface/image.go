package surface

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/midbel/diagram"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// regular is embedded in the binary: failing to parse it is a build defect.
var regular = mustParse(goregular.TTF)

func mustParse(ttf []byte) *truetype.Font {
	f, err := truetype.Parse(ttf)
	if err != nil {
		panic(err)
	}
	return f
}

// Image is a diagram.Canvas rasterizing the diagram in memory. Text is set
// with the Go regular font whatever the family asked by the style.
type Image struct {
	dc     *gg.Context
	tx, ty float64

	faces map[float64]font.Face
}

// NewImage creates a surface of the given size filled with background. A
// transparent background leaves the pixels untouched.
func NewImage(width, height float64, background diagram.Color) *Image {
	img := newImage(width, height, make(map[float64]font.Face))
	if background.A > 0 {
		img.dc.SetColor(background)
		img.dc.Clear()
	}
	return img
}

func newImage(width, height float64, faces map[float64]font.Face) *Image {
	w, h := int(width+0.5), int(height+0.5)
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Image{
		dc:    gg.NewContext(w, h),
		faces: faces,
	}
}

func (i *Image) MoveTo(x, y float64) {
	i.dc.MoveTo(x, y)
}

func (i *Image) LineTo(x, y float64) {
	i.dc.LineTo(x, y)
}

func (i *Image) Arc(cx, cy, radius, start, end float64) {
	i.dc.DrawArc(cx, cy, radius, start, end)
}

func (i *Image) Rect(x, y, w, h float64) {
	i.dc.DrawRectangle(x, y, w, h)
}

func (i *Image) ClosePath() {
	i.dc.ClosePath()
}

func (i *Image) Fill(c diagram.Color) {
	i.dc.SetColor(c)
	i.dc.Fill()
}

func (i *Image) Stroke(c diagram.Color, width float64) {
	i.dc.SetColor(c)
	i.dc.SetLineWidth(width)
	i.dc.Stroke()
}

func (i *Image) Text(str string, x, y float64, style diagram.TextStyle) {
	i.dc.SetFontFace(i.face(style.Size))
	i.dc.SetColor(style.Color)

	var ax, ay float64
	switch style.Align {
	case diagram.AlignCenter:
		ax = 0.5
	case diagram.AlignRight:
		ax = 1
	default:
	}
	switch style.Baseline {
	case diagram.BaselineTop:
		ay = 1
	case diagram.BaselineMiddle:
		ay = 0.5
	default:
	}
	i.dc.DrawStringAnchored(str, x, y, ax, ay)
}

func (i *Image) Translate(x, y float64) {
	i.tx += x
	i.ty += y
	i.dc.Translate(x, y)
}

// Shadow renders fn on a transparent layer of the same size, blurs it and
// draws the result under what comes next.
func (i *Image) Shadow(blur float64, fn func(diagram.Canvas)) {
	if blur <= 0 {
		return
	}
	bounds := i.dc.Image().Bounds()
	layer := newImage(float64(bounds.Dx()), float64(bounds.Dy()), i.faces)
	layer.Translate(i.tx+shadowOffset, i.ty+shadowOffset)
	fn(layer)

	img := imaging.Blur(layer.dc.Image(), blur/2)
	for j := 0; j < len(img.Pix); j += 4 {
		img.Pix[j], img.Pix[j+1], img.Pix[j+2] = 0, 0, 0
		img.Pix[j+3] = uint8(float64(img.Pix[j+3]) * shadowOpacity)
	}
	i.dc.Push()
	i.dc.Identity()
	i.dc.DrawImage(img, 0, 0)
	i.dc.Pop()
}

func (i *Image) Image() image.Image {
	return i.dc.Image()
}

func (i *Image) Encode(w io.Writer, format imaging.Format) error {
	return imaging.Encode(w, i.dc.Image(), format)
}

func (i *Image) face(size float64) font.Face {
	if f, ok := i.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(regular, &truetype.Options{
		Size:    size,
		Hinting: font.HintingFull,
	})
	i.faces[size] = f
	return f
}
