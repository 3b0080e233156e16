package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Buffer is the text being edited and a cursor. The cursor is a byte offset
// that always sits on a grapheme cluster boundary.
type Buffer struct {
	text   string
	cursor int
}

// NewBuffer returns a buffer holding text with the cursor at the end.
func NewBuffer(text string) *Buffer {
	return &Buffer{text: text, cursor: len(text)}
}

func (b *Buffer) Text() string { return b.text }
func (b *Buffer) Cursor() int  { return b.cursor }
func (b *Buffer) Before() string {
	return b.text[:b.cursor]
}
func (b *Buffer) After() string {
	return b.text[b.cursor:]
}
func (b *Buffer) Empty() bool {
	return b.text == ""
}

// SetText replaces the content and moves the cursor to the end.
func (b *Buffer) SetText(text string) {
	b.text = text
	b.cursor = len(text)
}

// Insert places s at the cursor and moves the cursor past it.
func (b *Buffer) Insert(s string) {
	if s == "" {
		return
	}
	b.text = b.text[:b.cursor] + s + b.text[b.cursor:]
	b.cursor += len(s)
}

// Backspace removes the grapheme before the cursor.
func (b *Buffer) Backspace() bool {
	if b.cursor == 0 {
		return false
	}
	start := prevBoundary(b.text, b.cursor)
	b.text = b.text[:start] + b.text[b.cursor:]
	b.cursor = start
	return true
}

// Delete removes the grapheme after the cursor.
func (b *Buffer) Delete() bool {
	if b.cursor == len(b.text) {
		return false
	}
	end := nextBoundary(b.text, b.cursor)
	b.text = b.text[:b.cursor] + b.text[end:]
	return true
}

// DeleteWordBackward removes trailing whitespace and then the word before
// the cursor.
func (b *Buffer) DeleteWordBackward() bool {
	if b.cursor == 0 {
		return false
	}
	start := b.cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(b.text[:start])
		if !unicode.IsSpace(r) {
			break
		}
		start -= size
	}
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(b.text[:start])
		if unicode.IsSpace(r) {
			break
		}
		start -= size
	}
	b.text = b.text[:start] + b.text[b.cursor:]
	b.cursor = start
	return true
}

func (b *Buffer) Left() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor = prevBoundary(b.text, b.cursor)
	return true
}

func (b *Buffer) Right() bool {
	if b.cursor == len(b.text) {
		return false
	}
	b.cursor = nextBoundary(b.text, b.cursor)
	return true
}

// Home moves to the start of the current line.
func (b *Buffer) Home() bool {
	start := b.lineStart(b.cursor)
	moved := start != b.cursor
	b.cursor = start
	return moved
}

// End moves to the end of the current line.
func (b *Buffer) End() bool {
	end := b.lineEnd(b.cursor)
	moved := end != b.cursor
	b.cursor = end
	return moved
}

// Up moves to the same grapheme column on the previous line.
func (b *Buffer) Up() bool {
	start := b.lineStart(b.cursor)
	if start == 0 {
		return false
	}
	col := uniseg.GraphemeClusterCount(b.text[start:b.cursor])
	prevStart := b.lineStart(start - 1)
	b.cursor = b.column(prevStart, start-1, col)
	return true
}

// Down moves to the same grapheme column on the next line.
func (b *Buffer) Down() bool {
	end := b.lineEnd(b.cursor)
	if end == len(b.text) {
		return false
	}
	col := uniseg.GraphemeClusterCount(b.text[b.lineStart(b.cursor):b.cursor])
	nextStart := end + 1
	b.cursor = b.column(nextStart, b.lineEnd(nextStart), col)
	return true
}

func (b *Buffer) lineStart(pos int) int {
	return strings.LastIndexByte(b.text[:pos], '\n') + 1
}

func (b *Buffer) lineEnd(pos int) int {
	if i := strings.IndexByte(b.text[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(b.text)
}

// column returns the offset of the col-th grapheme within [start, end],
// clamped to end.
func (b *Buffer) column(start, end, col int) int {
	pos := start
	for range col {
		if pos >= end {
			break
		}
		pos = nextBoundary(b.text, pos)
	}
	return min(pos, end)
}

func nextBoundary(s string, pos int) int {
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[pos:], -1)
	return pos + len(cluster)
}

// prevBoundary finds the start of the grapheme ending at pos. Segmentation
// restarts at the line start so long buffers stay cheap.
func prevBoundary(s string, pos int) int {
	lineStart := strings.LastIndexByte(s[:pos], '\n') + 1
	if lineStart == pos {
		// pos sits right after a newline; step over it, including a CRLF pair.
		if pos >= 2 && s[pos-2:pos] == "\r\n" {
			return pos - 2
		}
		return pos - 1
	}
	last := lineStart
	state := -1
	rest := s[lineStart:pos]
	offset := lineStart
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		last = offset
		offset += len(cluster)
	}
	return last
}

// firstGrapheme splits s into its first grapheme cluster and the rest.
func firstGrapheme(s string) (string, string) {
	cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return cluster, rest
}
