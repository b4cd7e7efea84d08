package sourcemap

import "testing"

func TestNew(t *testing.T) {
	source := []byte("package main\n\nfunc main() {}\n")
	sm := New(source)

	if got, want := sm.LineCount(), 4; got != want {
		t.Errorf("LineCount() = %d, want %d", got, want)
	}
}

func TestNew_EmptySource(t *testing.T) {
	sm := New([]byte{})
	if got, want := sm.LineCount(), 1; got != want {
		t.Errorf("LineCount() = %d, want %d", got, want)
	}
}

func TestNew_CRLF(t *testing.T) {
	source := []byte("line one\r\nline two\r\n")
	sm := New(source)

	if got, want := sm.LineCount(), 3; got != want {
		t.Errorf("LineCount() = %d, want %d", got, want)
	}
	if got, want := sm.Line(0), "line one"; got != want {
		t.Errorf("Line(0) = %q, want %q", got, want)
	}
}

func TestLine_OutOfRange(t *testing.T) {
	sm := New([]byte("a\nb\n"))
	if got := sm.Line(-1); got != "" {
		t.Errorf("Line(-1) = %q, want empty", got)
	}
	if got := sm.Line(100); got != "" {
		t.Errorf("Line(100) = %q, want empty", got)
	}
}

func TestLineOffset(t *testing.T) {
	sm := New([]byte("abc\nde\nfghi"))
	cases := []struct {
		line int
		want int
	}{
		{0, 0},
		{1, 4},
		{2, 7},
		{3, -1},
	}
	for _, c := range cases {
		if got := sm.LineOffset(c.line); got != c.want {
			t.Errorf("LineOffset(%d) = %d, want %d", c.line, got, c.want)
		}
	}
}

func TestSnippet(t *testing.T) {
	sm := New([]byte("one\ntwo\nthree\nfour"))
	if got, want := sm.Snippet(1, 2), "two\nthree"; got != want {
		t.Errorf("Snippet(1,2) = %q, want %q", got, want)
	}
	if got := sm.Snippet(5, 10); got != "" {
		t.Errorf("Snippet out of range = %q, want empty", got)
	}
}

func TestByteToLineCol(t *testing.T) {
	source := []byte("abc\ndef\nghi")
	cases := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{3, 1, 4},
		{4, 2, 1},
		{7, 2, 4},
		{8, 3, 1},
	}
	for _, c := range cases {
		line, col := ByteToLineCol(source, c.offset)
		if line != c.wantLine || col != c.wantCol {
			t.Errorf("ByteToLineCol(%d) = (%d,%d), want (%d,%d)", c.offset, line, col, c.wantLine, c.wantCol)
		}
	}
}

func TestLineForOffset(t *testing.T) {
	sm := New([]byte("abc\nde\nfghi"))
	cases := []struct {
		offset int
		want   int
	}{
		{0, 0},
		{3, 0},
		{4, 1},
		{6, 1},
		{7, 2},
		{10, 2},
	}
	for _, c := range cases {
		if got := sm.LineForOffset(c.offset); got != c.want {
			t.Errorf("LineForOffset(%d) = %d, want %d", c.offset, got, c.want)
		}
	}
}
