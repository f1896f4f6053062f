package diagram

// Step is a value at a position of the time (or category) axis.
type Step struct {
	Index int
	Value float64
}

type Serie struct {
	Title  string
	Color  Color
	Points []Step
}

func (s Serie) Len() int {
	return len(s.Points)
}

// Transpose turns a dataset keyed by category (or by year then month) into
// one serie per innermost key. Series come in first-seen order and their
// points follow the order of the source.
func Transpose(d Dataset) ([]Serie, []Period) {
	var (
		series  []Serie
		periods []Period
		index   = make(map[string]int)
		step    int
	)
	add := func(e Entry) {
		for _, c := range e.Children {
			x, ok := index[c.Key]
			if !ok {
				x = len(series)
				index[c.Key] = x
				series = append(series, Serie{Title: c.Key})
			}
			series[x].Points = append(series[x].Points, Step{Index: step, Value: c.Value})
		}
		step++
	}
	switch d.Shape {
	case ShapeSeries:
		var p Period
		for _, e := range d.Entries {
			p.Steps = append(p.Steps, e.Key)
			add(e)
		}
		periods = append(periods, p)
	case ShapeTimeSeries:
		for _, e := range d.Entries {
			p := Period{Label: e.Key}
			for _, m := range e.Children {
				p.Steps = append(p.Steps, m.Key)
				add(m)
			}
			periods = append(periods, p)
		}
	default:
	}
	return series, periods
}
