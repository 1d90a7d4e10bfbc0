package lexer

import (
	"testing"

	"busguard/internal/source"
)

func TestCursorBasics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("C.java", []byte("abc"))
	c := NewCursor(fs.Get(id))

	m := c.Mark()
	if c.Peek() != 'a' || c.Bump() != 'a' {
		t.Fatalf("Peek/Bump mismatch")
	}
	if b0, b1, ok := c.Peek2(); !ok || b0 != 'b' || b1 != 'c' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	if _, _, _, ok := c.Peek3(); ok {
		t.Fatalf("Peek3 must fail with two bytes left")
	}
	if !c.Eat('b') || c.Eat('x') {
		t.Fatalf("Eat mismatch")
	}
	sp := c.SpanFrom(m)
	if sp.File != id || sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	c.Bump()
	if !c.EOF() || c.Bump() != 0 || c.Peek() != 0 {
		t.Fatalf("EOF handling")
	}
	c.Reset(m)
	if c.Off != 0 {
		t.Fatalf("Reset failed")
	}
}
