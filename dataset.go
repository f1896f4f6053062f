package diagram

import (
	"fmt"
	"math"
)

type Shape int

const (
	ShapeScalar Shape = iota
	ShapeSeries
	ShapeTimeSeries
)

func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeSeries:
		return "series"
	case ShapeTimeSeries:
		return "time-series"
	default:
		return "unknown"
	}
}

// Entry is a key with either a value or nested entries.
type Entry struct {
	Key      string
	Value    float64
	Children []Entry
}

func Value(key string, value float64) Entry {
	return Entry{
		Key:   key,
		Value: value,
	}
}

func Group(key string, children ...Entry) Entry {
	return Entry{
		Key:      key,
		Children: children,
	}
}

func (e Entry) Leaf() bool {
	return len(e.Children) == 0
}

func (e Entry) depth() int {
	if e.Leaf() {
		return 1
	}
	return 1 + e.Children[0].depth()
}

func (e Entry) leaves(fn func(float64)) {
	if e.Leaf() {
		fn(e.Value)
		return
	}
	for _, c := range e.Children {
		c.leaves(fn)
	}
}

// Dataset is an ordered set of entries tagged with its shape.
type Dataset struct {
	Shape   Shape
	Entries []Entry
}

// NewDataset builds a dataset and infers its shape from its first entry.
func NewDataset(entries ...Entry) (Dataset, error) {
	ds := Dataset{
		Entries: entries,
	}
	return ds, ds.Infer()
}

func MustDataset(entries ...Entry) Dataset {
	ds, err := NewDataset(entries...)
	if err != nil {
		panic(err)
	}
	return ds
}

// Infer sets the shape from the depth of the first entry and checks that all
// the entries share it.
func (d *Dataset) Infer() error {
	if len(d.Entries) == 0 {
		return fmt.Errorf("empty dataset")
	}
	depth := d.Entries[0].depth()
	switch depth {
	case 1:
		d.Shape = ShapeScalar
	case 2:
		d.Shape = ShapeSeries
	case 3:
		d.Shape = ShapeTimeSeries
	default:
		return fmt.Errorf("dataset nested too deeply (%d levels)", depth)
	}
	for _, e := range d.Entries {
		if err := checkDepth(e, depth); err != nil {
			return err
		}
	}
	return nil
}

func checkDepth(e Entry, depth int) error {
	if depth == 1 {
		if !e.Leaf() {
			return fmt.Errorf("%s: expected value, got nested entries", e.Key)
		}
		return nil
	}
	if e.Leaf() {
		return fmt.Errorf("%s: expected nested entries, got value", e.Key)
	}
	for _, c := range e.Children {
		if err := checkDepth(c, depth-1); err != nil {
			return fmt.Errorf("%s.%w", e.Key, err)
		}
	}
	return nil
}

func (d Dataset) Len() int {
	return len(d.Entries)
}

func (d Dataset) Keys() []string {
	keys := make([]string, 0, len(d.Entries))
	for _, e := range d.Entries {
		keys = append(keys, e.Key)
	}
	return keys
}

func (d Dataset) Values() []float64 {
	values := make([]float64, 0, len(d.Entries))
	for _, e := range d.Entries {
		values = append(values, e.Value)
	}
	return values
}

func (d Dataset) Leaves() []float64 {
	var list []float64
	for _, e := range d.Entries {
		e.leaves(func(f float64) {
			list = append(list, f)
		})
	}
	return list
}

func (d Dataset) Sum() float64 {
	var sum float64
	for _, f := range d.Leaves() {
		sum += f
	}
	return sum
}

// Subseries returns the keys of the innermost level, in first-seen order.
func (d Dataset) Subseries() []string {
	var (
		list []string
		seen = make(map[string]struct{})
	)
	var walk func(Entry, int)
	walk = func(e Entry, level int) {
		if level == 0 {
			if _, ok := seen[e.Key]; !ok {
				seen[e.Key] = struct{}{}
				list = append(list, e.Key)
			}
			return
		}
		for _, c := range e.Children {
			walk(c, level-1)
		}
	}
	level := int(d.Shape)
	for _, e := range d.Entries {
		for _, c := range e.Children {
			walk(c, level-1)
		}
	}
	return list
}

func (d Dataset) checkMagnitudes(kind Kind) error {
	for _, f := range d.Leaves() {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return dataError(kind, "values must be finite")
		}
		if f < 0 {
			return dataError(kind, fmt.Sprintf("negative value %g", f))
		}
	}
	return nil
}
