package scpi

import "testing"

func TestFormatScalars(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{true, "1"},
		{false, "0"},
		{42, "42"},
		{"hello", "hello"},
		{nil, ""},
	}
	for _, c := range cases {
		if got := Format(c.in); got != c.want {
			t.Errorf("Format(%#v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatBlock(t *testing.T) {
	got := Block([]byte("abcdefghij"))
	want := "#210abcdefghij"
	if got != want {
		t.Errorf("Block = %q, want %q", got, want)
	}
}

func TestFormatAllJoinsWithSemicolon(t *testing.T) {
	got := FormatAll([]any{true, 7, "ok"})
	want := "1;7;ok"
	if got != want {
		t.Errorf("FormatAll = %q, want %q", got, want)
	}
}
