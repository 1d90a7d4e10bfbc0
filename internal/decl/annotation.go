package decl

import (
	"strconv"
	"strings"

	"busguard/internal/source"
)

// ValueKind tags an annotation argument value.
type ValueKind uint8

const (
	ValOther ValueKind = iota
	ValString
	ValChar
	ValNumber
	ValBool
	ValName  // enum constant or constant reference: Bus.MOD
	ValClass // class literal: Foo.class
	ValArray
)

var valueKindNames = [...]string{
	ValOther:  "other",
	ValString: "string",
	ValChar:   "char",
	ValNumber: "number",
	ValBool:   "bool",
	ValName:   "name",
	ValClass:  "class",
	ValArray:  "array",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return "other"
}

// Value is an annotation argument as written in source.
// Text keeps the literal text (quoted for strings), Elems holds array items.
type Value struct {
	Kind  ValueKind
	Text  string
	Elems []Value
	Span  source.Span
}

// Symbol returns the comparable identity of the value: the last segment of a
// name (Bus.MOD -> MOD), the unquoted text of a string or char literal, the
// type name of a class literal, or the raw text otherwise.
func (v Value) Symbol() string {
	switch v.Kind {
	case ValName:
		if i := strings.LastIndexByte(v.Text, '.'); i >= 0 {
			return v.Text[i+1:]
		}
		return v.Text
	case ValString, ValChar:
		if s, err := strconv.Unquote(v.Text); err == nil {
			return s
		}
		return strings.Trim(v.Text, `"'`)
	case ValClass:
		return strings.TrimSuffix(v.Text, ".class")
	default:
		return v.Text
	}
}

// Arg is one key=value pair of an annotation. A single unnamed argument is keyed "value".
type Arg struct {
	Key   string
	Value Value
}

// Annotation is the metadata attached to a declaration.
type Annotation struct {
	// Name is the canonical name when resolved, otherwise the name as written.
	Name    string
	Written string
	Args    []Arg
	Span    source.Span
}

// Arg returns the first argument with the given key.
func (a *Annotation) Arg(key string) (Value, bool) {
	if a == nil {
		return Value{}, false
	}
	for _, arg := range a.Args {
		if arg.Key == key {
			return arg.Value, true
		}
	}
	return Value{}, false
}

// SimpleName returns the last segment of the annotation name.
func (a *Annotation) SimpleName() string {
	if i := strings.LastIndexByte(a.Name, '.'); i >= 0 {
		return a.Name[i+1:]
	}
	return a.Name
}

// FindAnnotations returns the annotations of e with the given canonical name, in source order.
func FindAnnotations(e Element, name string) []*Annotation {
	if e == nil {
		return nil
	}
	var out []*Annotation
	for _, a := range e.Annotations() {
		if a.Name == name {
			out = append(out, a)
		}
	}
	return out
}

// HasAnnotation reports whether e carries an annotation with the given canonical name.
func HasAnnotation(e Element, name string) bool {
	if e == nil {
		return false
	}
	for _, a := range e.Annotations() {
		if a.Name == name {
			return true
		}
	}
	return false
}
