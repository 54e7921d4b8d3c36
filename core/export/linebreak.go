package export

import "strings"

// lineBreaker accumulates text and inserts wraps so that no line exceeds the
// maximum length. Strings handed to append are never split: a single string
// longer than the maximum ends up alone on an oversized line.
type lineBreaker struct {
	max  int
	size int
	out  strings.Builder
}

func newLineBreaker(max int) *lineBreaker {
	return &lineBreaker{max: max}
}

// append adds s, starting a fresh continuation line first if s would push
// the current line past the maximum.
func (b *lineBreaker) append(s string) {
	b.size += len(s)
	if b.size > b.max {
		b.size = len(s)
		b.out.WriteString("\n ")
	}
	b.out.WriteString(s)
}

// willFit reports whether s fits on the current line without a wrap.
func (b *lineBreaker) willFit(s string) bool {
	return b.size+len(s) < b.max
}

// consume reserves size characters on the current line, accounting for text
// the caller emits outside the breaker, such as a row name prefix.
func (b *lineBreaker) consume(size int) {
	b.size += size
}

func (b *lineBreaker) output() string {
	return b.out.String()
}
