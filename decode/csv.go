package decode

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/midbel/diagram"
)

// LoadCSV reads a dataset from a CSV file with a header row. The number of
// columns gives the shape of the data: key and value for scalar data, then
// one more key column per level of nesting. Rows sharing the same leading
// keys are merged in the order they appear.
func LoadCSV(r io.Reader) (diagram.Dataset, error) {
	rs := csv.NewReader(r)
	rs.TrimLeadingSpace = true

	header, err := rs.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = DecodeError{Message: "csv: empty input"}
		}
		return diagram.Dataset{}, err
	}
	if n := len(header); n < 2 || n > 4 {
		return diagram.Dataset{}, DecodeError{
			Message:  "csv: expected 2, 3 or 4 columns",
			Position: Position{Line: 1, Column: 1},
		}
	}
	var root []diagram.Entry
	for {
		row, err := rs.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return diagram.Dataset{}, err
		}
		var (
			last  = len(row) - 1
			value = strings.TrimSpace(row[last])
		)
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			line, col := rs.FieldPos(last)
			return diagram.Dataset{}, DecodeError{
				Message:  value + ": not a number",
				Position: Position{Line: line, Column: col},
				Err:      err,
			}
		}
		root = insert(root, row[:last], v)
	}
	return diagram.NewDataset(root...)
}

func LoadCSVFile(file string) (diagram.Dataset, error) {
	r, err := os.Open(file)
	if err != nil {
		return diagram.Dataset{}, err
	}
	defer r.Close()

	data, err := LoadCSV(r)
	if err != nil {
		var de DecodeError
		if errors.As(err, &de) {
			de.File = file
			return data, de
		}
	}
	return data, err
}

func insert(list []diagram.Entry, keys []string, value float64) []diagram.Entry {
	key := keys[0]
	if len(keys) == 1 {
		return append(list, diagram.Value(key, value))
	}
	for i := range list {
		if list[i].Key == key && !list[i].Leaf() {
			list[i].Children = insert(list[i].Children, keys[1:], value)
			return list
		}
	}
	return append(list, diagram.Group(key, insert(nil, keys[1:], value)...))
}
