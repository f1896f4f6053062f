package diagram

import (
	"fmt"
)

type ColorMode int

const (
	ColorFixed ColorMode = iota
	ColorShuffle
	ColorRandom
)

// Style gathers what differs between the historical renditions of the
// diagrams: how colors are picked, the shadow under the pie, the fonts and the
// page geometry used when sizes are left to zero.
type Style struct {
	Name   string
	Colors ColorMode
	Seed   int64

	Blur    float64
	Outline bool

	Font      Font
	LabelFont Font
	TextColor Color
	GridColor Color
	LineWidth float64
	Border    bool

	PageWidth float64
	Margin    float64
}

const (
	StyleScreen  = "screen"
	StyleClassic = "classic"
	StylePrint   = "print"
)

const (
	DefaultPageWidth = 880
	DefaultMargin    = 25
)

func DefaultStyle() Style {
	return PrintStyle()
}

// ScreenStyle renders pies with random colors, a blurred shadow and a light
// outline.
func ScreenStyle() Style {
	return Style{
		Name:      StyleScreen,
		Colors:    ColorRandom,
		Blur:      20,
		Outline:   true,
		Border:    true,
		Font:      NewFont("system-ui", 20),
		LabelFont: NewFont("system-ui", 16),
		TextColor: Black,
		GridColor: Gray,
		LineWidth: 0.5,
		PageWidth: DefaultPageWidth,
	}
}

func ClassicStyle() Style {
	return Style{
		Name:      StyleClassic,
		Colors:    ColorShuffle,
		Font:      NewFont("sans-serif", 16),
		LabelFont: NewFont("sans-serif", 14),
		TextColor: Black,
		GridColor: Gray,
		LineWidth: 0.5,
		PageWidth: DefaultPageWidth,
	}
}

func PrintStyle() Style {
	font := NewFont("sans-serif", 14)
	font.Weight = "lighter"
	label := NewFont("sans-serif", 12)
	label.Weight = "lighter"
	return Style{
		Name:      StylePrint,
		Colors:    ColorFixed,
		Font:      font,
		LabelFont: label,
		TextColor: Black,
		GridColor: Gray,
		LineWidth: 0.5,
		PageWidth: DefaultPageWidth,
		Margin:    DefaultMargin,
	}
}

func LookupStyle(name string) (Style, error) {
	switch name {
	case "", StylePrint:
		return PrintStyle(), nil
	case StyleScreen:
		return ScreenStyle(), nil
	case StyleClassic:
		return ClassicStyle(), nil
	default:
		return Style{}, fmt.Errorf("%s: unknown style", name)
	}
}

// fill copies the properties of base that s leaves to their zero value.
func (s *Style) fill(base Style) {
	if s.Name == "" {
		s.Name = base.Name
	}
	if s.Font == (Font{}) {
		s.Font = base.Font
	}
	if s.LabelFont == (Font{}) {
		s.LabelFont = base.LabelFont
	}
	if s.TextColor == (Color{}) {
		s.TextColor = base.TextColor
	}
	if s.GridColor == (Color{}) {
		s.GridColor = base.GridColor
	}
	if s.LineWidth == 0 {
		s.LineWidth = base.LineWidth
	}
	if s.PageWidth == 0 {
		s.PageWidth = base.PageWidth
	}
	if s.Margin == 0 {
		s.Margin = base.Margin
	}
}

func (s Style) text(f Font, a Align, b Baseline) TextStyle {
	return TextStyle{
		Font:     f,
		Color:    s.TextColor,
		Align:    a,
		Baseline: b,
	}
}
