package source

import (
	"path/filepath"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		changed bool
	}{
		{"a\nb", "a\nb", false},
		{"a\r\nb", "a\nb", true},
		{"a\rb", "a\rb", false}, // одиночный \r не трогаем
		{"\r\n\r\n", "\n\n", true},
	}
	for _, tt := range tests {
		got, changed := normalizeCRLF([]byte(tt.in))
		if string(got) != tt.want || changed != tt.changed {
			t.Errorf("normalizeCRLF(%q) = %q,%v; want %q,%v", tt.in, got, changed, tt.want, tt.changed)
		}
	}
}

func TestToLineCol(t *testing.T) {
	idx := buildLineIndex([]byte("ab\ncd\n\nx"))
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // сам '\n' относится к первой строке
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
	}
	for _, tt := range tests {
		if got := toLineCol(idx, tt.off); got != tt.want {
			t.Errorf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestRelativePathOutsideBase(t *testing.T) {
	base := t.TempDir()
	other := t.TempDir()
	target := filepath.Join(other, "B.java")

	got, err := RelativePath(target, base)
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.ToSlash(target) {
		t.Fatalf("RelativePath = %q, want absolute %q", got, filepath.ToSlash(target))
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Errorf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Errorf("Cover across files must be a no-op, got %v", got)
	}
	if !a.Contains(Span{File: 1, Start: 5, End: 8}) {
		t.Errorf("Contains failed")
	}
	if NoSpan.IsValid() {
		t.Errorf("NoSpan must be invalid")
	}
}
