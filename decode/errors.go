package decode

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func positionOf(n *yaml.Node) Position {
	if n == nil {
		return Position{}
	}
	return Position{
		Line:   n.Line,
		Column: n.Column,
	}
}

type DecodeError struct {
	Message string
	File    string
	Position
	Err error
}

func (e DecodeError) Error() string {
	var prefix string
	if e.File != "" {
		prefix = e.File + ":"
	}
	if e.Line > 0 {
		prefix += e.Position.String() + ":"
	}
	if prefix == "" {
		return e.Message
	}
	return prefix + " " + e.Message
}

func (e DecodeError) Unwrap() error {
	return e.Err
}
