package diagnostics

import "bytes"

// Location points at a byte offset of a source buffer. Line and Column are
// 1-based; Text is the whole source line containing the offset, without its
// line terminator.
type Location struct {
	Offset int
	Line   int
	Column int
	Text   string
}

// Locate derives the line, column and line text of offset in src. Offsets
// past the end of src are clamped to the end.
func Locate(src []byte, offset int) *Location {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src) {
		offset = len(src)
	}

	lineStart := bytes.LastIndexByte(src[:offset], '\n') + 1
	lineEnd := bytes.IndexByte(src[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(src)
	} else {
		lineEnd += offset
	}

	text := src[lineStart:lineEnd]
	text = bytes.TrimSuffix(text, []byte{'\r'})

	return &Location{
		Offset: offset,
		Line:   bytes.Count(src[:offset], []byte{'\n'}) + 1,
		Column: offset - lineStart + 1,
		Text:   string(text),
	}
}
