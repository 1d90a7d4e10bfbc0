package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetIDsStartAtOne(t *testing.T) {
	fs := NewFileSet()
	if got := fs.Get(NoFileID); got != nil {
		t.Fatalf("Get(NoFileID) = %+v, want nil", got)
	}

	a := fs.AddVirtual("A.java", []byte("class A {}"))
	b := fs.AddVirtual("B.java", []byte("class B {}"))
	if a != 1 || b != 2 {
		t.Fatalf("ids = %d, %d; want 1, 2", a, b)
	}
	if f := fs.Get(b); f == nil || f.Path != "B.java" {
		t.Fatalf("Get(%d) = %+v", b, f)
	}
	if fs.Get(3) != nil {
		t.Fatalf("Get(3) должен вернуть nil")
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", fs.Len())
	}
}

func TestFileSetGetLatest(t *testing.T) {
	fs := NewFileSet()
	first := fs.AddVirtual("pkg/A.java", []byte("class A {}"))
	second := fs.AddVirtual("pkg/./A.java", []byte("class A { }"))
	if first == second {
		t.Fatalf("expected a fresh id for the second add")
	}
	id, ok := fs.GetLatest("pkg/A.java")
	if !ok || id != second {
		t.Fatalf("GetLatest = %d,%v; want %d,true", id, ok, second)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	src := "class A {\n  void m() {}\n}\n"
	id := fs.AddVirtual("A.java", []byte(src))

	// "void" начинается на второй строке, колонка 3
	off := uint32(len("class A {\n  "))
	start, end := fs.Resolve(Span{File: id, Start: off, End: off + 4})
	if start != (LineCol{Line: 2, Col: 3}) {
		t.Errorf("start = %+v", start)
	}
	if end != (LineCol{Line: 2, Col: 7}) {
		t.Errorf("end = %+v", end)
	}
	if got := fs.Text(Span{File: id, Start: off, End: off + 4}); got != "void" {
		t.Errorf("Text = %q", got)
	}

	s, e := fs.Resolve(NoSpan)
	if s != (LineCol{}) || e != (LineCol{}) {
		t.Errorf("Resolve(NoSpan) = %+v %+v", s, e)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("A.java", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""}
	for line, want := range cases {
		if got := f.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "A.java")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("class A {\r\n}\r\n")...)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "class A {\n}\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b", f.Flags)
	}
	if f.Flags&FileVirtual != 0 {
		t.Fatalf("loaded file must not be virtual")
	}

	if _, err := fs.Load(filepath.Join(dir, "missing.java")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFormatPath(t *testing.T) {
	dir := t.TempDir()
	f := &File{Path: filepath.ToSlash(filepath.Join(dir, "src", "A.java"))}

	if got := f.FormatPath("basename", ""); got != "A.java" {
		t.Errorf("basename = %q", got)
	}
	if got := f.FormatPath("relative", dir); got != "src/A.java" {
		t.Errorf("relative = %q", got)
	}
	if got := f.FormatPath("absolute", ""); got != f.Path {
		t.Errorf("absolute = %q, want %q", got, f.Path)
	}
	short := &File{Path: "A.java"}
	if got := short.FormatPath("auto", ""); got != "A.java" {
		t.Errorf("auto = %q", got)
	}
}
