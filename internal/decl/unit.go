package decl

import (
	"strings"

	"busguard/internal/source"
)

// Import is one import declaration.
type Import struct {
	Path     string
	Static   bool
	Wildcard bool
	Span     source.Span
}

// SimpleName returns the last segment of a single-type import ("" for wildcards).
func (i Import) SimpleName() string {
	if i.Wildcard {
		return ""
	}
	if k := strings.LastIndexByte(i.Path, '.'); k >= 0 {
		return i.Path[k+1:]
	}
	return i.Path
}

// Unit is one parsed compilation unit.
type Unit struct {
	File    source.FileID
	Path    string
	Package string
	Imports []Import
	Types   []*Type
}

// Walk visits every element of u depth-first in source order: each type,
// then its members, then method parameters. Returning false from fn skips the
// element's children.
func (u *Unit) Walk(fn func(Element) bool) {
	for _, t := range u.Types {
		walk(t, fn)
	}
}

func walk(e Element, fn func(Element) bool) {
	if !fn(e) {
		return
	}
	switch v := e.(type) {
	case *Type:
		for _, m := range v.Members {
			walk(m, fn)
		}
	case *Method:
		for _, p := range v.Params() {
			walk(p, fn)
		}
	}
}

// AllTypes returns every type declared in u, nested ones included, in source order.
func (u *Unit) AllTypes() []*Type {
	var out []*Type
	u.Walk(func(e Element) bool {
		if t, ok := e.(*Type); ok {
			out = append(out, t)
		}
		return true
	})
	return out
}
