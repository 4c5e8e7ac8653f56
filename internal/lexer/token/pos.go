package token

import "fmt"

type Pos struct {
	Filename     string
	Offset       int
	Line, Column int
}

func NewPosition(filename string, offset, line, column int) Pos {
	return Pos{Filename: filename, Offset: offset, Line: line, Column: column}
}

func (pos *Pos) Move(character byte) {
	pos.Offset++
	if character == '\n' {
		pos.Column = 1
		pos.Line++
	} else {
		pos.Column++
	}
}

func (pos Pos) String() string {
	return fmt.Sprintf("[%s:%d:%d]", pos.Filename, pos.Line, pos.Column)
}
