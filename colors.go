package diagram

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

type Color struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

var (
	Black   = RGB(0, 0, 0)
	White   = RGB(0xff, 0xff, 0xff)
	Gray    = RGB(0x9e, 0x9e, 0x9e)
	Shade   = RGBA(0, 0, 0, 0x22)
	Outline = RGBA(1, 1, 1, 0x80)
)

func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 0xff)
}

func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: r,
		G: g,
		B: b,
		A: a,
	}
}

// ParseColor accepts #rgb, #rrggbb and #rrggbbaa.
func ParseColor(str string) (Color, error) {
	str = strings.TrimPrefix(strings.TrimSpace(str), "#")
	switch len(str) {
	case 3:
		var b strings.Builder
		for _, r := range str {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		str = b.String() + "ff"
	case 6:
		str += "ff"
	case 8:
	default:
		return Color{}, fmt.Errorf("%q: invalid color", str)
	}
	v, err := strconv.ParseUint(str, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%q: invalid color", str)
	}
	return RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

func MustParseColor(str string) Color {
	c, err := ParseColor(str)
	if err != nil {
		panic(err)
	}
	return c
}

// RGBA implements color.Color with alpha-premultiplied components.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	a |= a << 8
	r = uint32(c.R)
	r |= r << 8
	r = r * a / 0xffff
	g = uint32(c.G)
	g |= g << 8
	g = g * a / 0xffff
	b = uint32(c.B)
	b |= b << 8
	b = b * a / 0xffff
	return
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) Opacity() float64 {
	return float64(c.A) / 0xff
}

func (c Color) String() string {
	if c.A == 0xff {
		return c.Hex()
	}
	return fmt.Sprintf("%s%02x", c.Hex(), c.A)
}

type Palette []Color

var Material18 Palette

func init() {
	Material18 = splitColorString("2979ffff8a65ffd6008e24aa4caf50e64a190096881de9b642a5f5ef9a9a6d4c41ffa000f06292c5cae9aed5819575cdf44336607d8b")
}

func splitColorString(str string) Palette {
	var arr Palette
	for i := 0; i < len(str); i += 6 {
		arr = append(arr, MustParseColor(str[i:i+6]))
	}
	return arr
}

// ColorSource hands out the colors of a single render. Caller colors come
// first, then the curated palette, then random colors never returned before.
type ColorSource struct {
	list  Palette
	index int
	taken Palette
	seen  map[Color]struct{}
	rand  *rand.Rand
	mode  ColorMode
}

func NewColorSource(custom Palette, style Style) *ColorSource {
	src := ColorSource{
		seen: make(map[Color]struct{}),
		rand: rand.New(rand.NewSource(style.Seed)),
		mode: style.Colors,
	}
	src.list = append(src.list, custom...)
	switch style.Colors {
	case ColorShuffle:
		base := make(Palette, len(Material18))
		copy(base, Material18)
		src.rand.Shuffle(len(base), func(i, j int) {
			base[i], base[j] = base[j], base[i]
		})
		src.list = append(src.list, base...)
	case ColorRandom:
	default:
		src.list = append(src.list, Material18...)
	}
	return &src
}

func (s *ColorSource) Next() Color {
	var c Color
	for s.index < len(s.list) {
		c = s.list[s.index]
		s.index++
		if _, ok := s.seen[c]; !ok {
			return s.take(c)
		}
	}
	for i := 0; i < 64; i++ {
		c = s.random()
		if _, ok := s.seen[c]; !ok {
			break
		}
	}
	return s.take(c)
}

// Take returns n fresh colors.
func (s *ColorSource) Take(n int) Palette {
	list := make(Palette, 0, n)
	for i := 0; i < n; i++ {
		list = append(list, s.Next())
	}
	return list
}

func (s *ColorSource) Taken() Palette {
	return s.taken
}

func (s *ColorSource) take(c Color) Color {
	s.seen[c] = struct{}{}
	s.taken = append(s.taken, c)
	return c
}

func (s *ColorSource) random() Color {
	return RGB(uint8(s.rand.Intn(255)), uint8(s.rand.Intn(255)), uint8(s.rand.Intn(255)))
}
