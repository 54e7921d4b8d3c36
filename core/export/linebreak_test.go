package export

import "testing"

func TestLineBreakerWrap(t *testing.T) {
	b := newLineBreaker(10)
	b.append("aaaa ")
	b.append("bbbb ")
	b.append("c")
	if got, want := b.output(), "aaaa bbbb \n c"; got != want {
		t.Errorf("output() = %q, want %q", got, want)
	}
}

func TestLineBreakerNeverSplits(t *testing.T) {
	b := newLineBreaker(10)
	b.append("abc")
	b.append("defghijklmnop")
	if got, want := b.output(), "abc\n defghijklmnop"; got != want {
		t.Errorf("output() = %q, want %q", got, want)
	}
}

func TestLineBreakerWillFit(t *testing.T) {
	b := newLineBreaker(10)
	b.append("12345")
	if !b.willFit("1234") {
		t.Error("willFit() = false for text inside the limit, want true")
	}
	if b.willFit("12345") {
		t.Error("willFit() = true for text reaching the limit, want false")
	}
}

func TestLineBreakerConsume(t *testing.T) {
	b := newLineBreaker(10)
	b.consume(8)
	b.append("abc")
	if got, want := b.output(), "\n abc"; got != want {
		t.Errorf("output() after consume = %q, want %q", got, want)
	}
}
