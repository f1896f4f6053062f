package decode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/midbel/diagram"
	"gopkg.in/yaml.v3"
)

type document struct {
	Type    string     `yaml:"type"`
	Title   string     `yaml:"title"`
	Width   float64    `yaml:"width"`
	Height  float64    `yaml:"height"`
	Style   styleValue `yaml:"style"`
	Colors  []string   `yaml:"colors"`
	Diagram layout     `yaml:"diagram"`
	Legend  legend     `yaml:"legend"`
}

type point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p point) get() diagram.Point {
	return diagram.NewPoint(p.X, p.Y)
}

type layout struct {
	Origin     point   `yaml:"origin"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Spacing    float64 `yaml:"spacing"`
	Radius     float64 `yaml:"radius"`
	Indicators bool    `yaml:"indicators"`
	Grid       grid    `yaml:"grid"`
}

type grid struct {
	Rows       count  `yaml:"rows"`
	Cols       count  `yaml:"cols"`
	Truncate   int    `yaml:"truncate"`
	FirstMonth string `yaml:"first-month"`
}

type legend struct {
	Visible     bool  `yaml:"visible"`
	Origin      point `yaml:"origin"`
	Percentages bool  `yaml:"percentages"`
	Border      *bool `yaml:"border"`
}

// count is a number of divisions or the word auto. A missing count is auto.
type count struct {
	set   bool
	value diagram.Count
}

func (c *count) UnmarshalYAML(n *yaml.Node) error {
	if n.Value == "auto" {
		c.set, c.value = true, diagram.Auto
		return nil
	}
	v, err := strconv.Atoi(n.Value)
	if err != nil || v < 0 {
		return fmt.Errorf("line %d: %q: expected a positive number or auto", n.Line, n.Value)
	}
	c.set, c.value = true, diagram.Count(v)
	return nil
}

func (c count) get() diagram.Count {
	if !c.set {
		return diagram.Auto
	}
	return c.value
}

// styleValue is either the name of a preset or a mapping overriding some of
// its properties.
type styleValue struct {
	Name      string   `yaml:"name"`
	Seed      *int64   `yaml:"seed"`
	Palette   string   `yaml:"palette"`
	Blur      *float64 `yaml:"blur"`
	Outline   *bool    `yaml:"outline"`
	Border    *bool    `yaml:"border"`
	PageWidth float64  `yaml:"page-width"`
}

func (s *styleValue) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		s.Name = n.Value
		return nil
	}
	type plain styleValue
	return n.Decode((*plain)(s))
}

func (s styleValue) get() (diagram.Style, error) {
	style, err := diagram.LookupStyle(s.Name)
	if err != nil {
		return style, err
	}
	switch s.Palette {
	case "":
	case "fixed":
		style.Colors = diagram.ColorFixed
	case "shuffle":
		style.Colors = diagram.ColorShuffle
	case "random":
		style.Colors = diagram.ColorRandom
	default:
		return style, fmt.Errorf("%s: unknown palette mode", s.Palette)
	}
	if s.Seed != nil {
		style.Seed = *s.Seed
	}
	if s.Blur != nil {
		style.Blur = *s.Blur
	}
	if s.Outline != nil {
		style.Outline = *s.Outline
	}
	if s.Border != nil {
		style.Border = *s.Border
	}
	if s.PageWidth > 0 {
		style.PageWidth = s.PageWidth
	}
	return style, nil
}

// Decoder reads a stream of YAML (or JSON) documents, each describing one
// diagram.
type Decoder struct {
	file string
	dec  *yaml.Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		dec: yaml.NewDecoder(r),
	}
}

func DecodeFile(file string) ([]diagram.Config, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	d := NewDecoder(r)
	d.file = file
	return d.Decode()
}

// Decode returns the configurations of all the documents of the stream.
func (d *Decoder) Decode() ([]diagram.Config, error) {
	var list []diagram.Config
	for {
		cfg, err := d.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		list = append(list, cfg)
	}
	if len(list) == 0 {
		return nil, d.errorf(nil, "no document found")
	}
	return list, nil
}

// Next decodes the next document of the stream. It returns io.EOF when the
// stream is exhausted.
func (d *Decoder) Next() (diagram.Config, error) {
	var (
		cfg  diagram.Config
		root yaml.Node
	)
	if err := d.dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, err
		}
		return cfg, d.wrap(nil, err)
	}
	return d.decodeDocument(&root)
}

func (d *Decoder) decodeDocument(root *yaml.Node) (diagram.Config, error) {
	var cfg diagram.Config
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return cfg, d.errorf(root, "document: expected a mapping")
	}
	var doc document
	if err := root.Decode(&doc); err != nil {
		return cfg, d.wrap(root, err)
	}
	if doc.Type == "" {
		return cfg, d.errorf(root, "type: chart type is missing")
	}
	kind, err := diagram.ParseKind(doc.Type)
	if err != nil {
		return cfg, d.wrap(lookup(root, "type"), err)
	}
	style, err := doc.Style.get()
	if err != nil {
		return cfg, d.wrap(lookup(root, "style"), err)
	}
	colors, err := d.decodeColors(lookup(root, "colors"))
	if err != nil {
		return cfg, err
	}
	data, err := d.decodeData(lookup(root, "data"))
	if err != nil {
		return cfg, err
	}
	cfg = diagram.Config{
		Kind:   kind,
		Title:  doc.Title,
		Width:  doc.Width,
		Height: doc.Height,
		Data:   data,
		Colors: colors,
		Style:  style,
		Diagram: diagram.Layout{
			Origin:     doc.Diagram.Origin.get(),
			Width:      doc.Diagram.Width,
			Height:     doc.Diagram.Height,
			Spacing:    doc.Diagram.Spacing,
			Radius:     doc.Diagram.Radius,
			Indicators: doc.Diagram.Indicators,
			Grid: diagram.GridLayout{
				Rows:       doc.Diagram.Grid.Rows.get(),
				Cols:       doc.Diagram.Grid.Cols.get(),
				Truncate:   doc.Diagram.Grid.Truncate,
				FirstMonth: doc.Diagram.Grid.FirstMonth,
			},
		},
		Legend: diagram.Legend{
			Visible:     doc.Legend.Visible,
			Origin:      doc.Legend.Origin.get(),
			Percentages: doc.Legend.Percentages,
			Border:      doc.Legend.Border,
		},
	}
	return cfg, nil
}

func (d *Decoder) decodeColors(n *yaml.Node) (diagram.Palette, error) {
	if n == nil {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, "colors: expected a list of colors")
	}
	var list diagram.Palette
	for _, c := range n.Content {
		col, err := diagram.ParseColor(c.Value)
		if err != nil {
			return nil, d.wrap(c, err)
		}
		list = append(list, col)
	}
	return list, nil
}

func (d *Decoder) decodeData(n *yaml.Node) (diagram.Dataset, error) {
	if n == nil {
		return diagram.Dataset{}, nil
	}
	entries, err := d.decodeEntries(n)
	if err != nil {
		return diagram.Dataset{}, err
	}
	data, err := diagram.NewDataset(entries...)
	if err != nil {
		return data, d.wrap(n, err)
	}
	return data, nil
}

// decodeEntries walks the mapping node by node so that the keys keep the
// order of the document.
func (d *Decoder) decodeEntries(n *yaml.Node) ([]diagram.Entry, error) {
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "data: expected a mapping")
	}
	var list []diagram.Entry
	for i := 0; i+1 < len(n.Content); i += 2 {
		var (
			key = n.Content[i]
			val = resolve(n.Content[i+1])
		)
		switch val.Kind {
		case yaml.MappingNode:
			children, err := d.decodeEntries(val)
			if err != nil {
				return nil, err
			}
			list = append(list, diagram.Group(key.Value, children...))
		case yaml.ScalarNode:
			var f float64
			if err := val.Decode(&f); err != nil {
				return nil, d.errorf(val, "%s: %q is not a number", key.Value, val.Value)
			}
			list = append(list, diagram.Value(key.Value, f))
		default:
			return nil, d.errorf(val, "%s: expected a number or a mapping", key.Value)
		}
	}
	return list, nil
}

func (d *Decoder) errorf(n *yaml.Node, format string, args ...any) error {
	return DecodeError{
		Message:  fmt.Sprintf(format, args...),
		File:     d.file,
		Position: positionOf(n),
	}
}

func (d *Decoder) wrap(n *yaml.Node, err error) error {
	return DecodeError{
		Message:  err.Error(),
		File:     d.file,
		Position: positionOf(n),
		Err:      err,
	}
}

func lookup(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
