package diagram_test

import (
	"fmt"

	"github.com/midbel/diagram"
)

func ExampleComputeMax() {
	data := diagram.MustDataset(
		diagram.Group("a", diagram.Value("x", 5), diagram.Value("y", 9)),
		diagram.Group("b", diagram.Value("x", 12)),
	)
	fmt.Println(diagram.ComputeMax(data))
	// Output: 20
}

func ExampleRender() {
	cfg := diagram.Config{
		Kind: diagram.KindMultiBar,
		Data: diagram.MustDataset(
			diagram.Group("q1", diagram.Value("north", 3), diagram.Value("south", 5)),
			diagram.Group("q2", diagram.Value("south", 4)),
		),
		Diagram: diagram.Layout{
			Grid: diagram.AutoGrid(),
		},
		Legend: diagram.Legend{
			Visible: true,
		},
	}
	var rec diagram.Recorder
	d, err := diagram.Render(&rec, cfg)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(d.Entries, d.Max, len(rec.Filter(diagram.OpRect)))
	// Output: [north south] 10 5
}

func ExampleNew_error() {
	cfg := diagram.Config{
		Kind: diagram.KindPie,
		Data: diagram.MustDataset(
			diagram.Value("a", 0.25),
			diagram.Value("b", 0.25),
		),
		Diagram: diagram.Layout{
			Radius: 50,
		},
	}
	_, err := diagram.New(cfg)
	fmt.Println(err)
	// Output: pie: values must sum to 1 (got 0.5)
}
