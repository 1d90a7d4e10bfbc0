package decl

// Snapshot types are the serialisable form of the model used by `busguard decls`.

type UnitSnapshot struct {
	Path    string           `json:"path" msgpack:"path"`
	Package string           `json:"package,omitempty" msgpack:"package,omitempty"`
	Imports []ImportSnapshot `json:"imports,omitempty" msgpack:"imports,omitempty"`
	Types   []TypeSnapshot   `json:"types" msgpack:"types"`
}

type ImportSnapshot struct {
	Path     string `json:"path" msgpack:"path"`
	Static   bool   `json:"static,omitempty" msgpack:"static,omitempty"`
	Wildcard bool   `json:"wildcard,omitempty" msgpack:"wildcard,omitempty"`
}

type AnnotationSnapshot struct {
	Name string            `json:"name" msgpack:"name"`
	Args map[string]string `json:"args,omitempty" msgpack:"args,omitempty"`
}

type TypeSnapshot struct {
	Kind        string               `json:"kind" msgpack:"kind"`
	Name        string               `json:"name" msgpack:"name"`
	Modifiers   []string             `json:"modifiers,omitempty" msgpack:"modifiers,omitempty"`
	Annotations []AnnotationSnapshot `json:"annotations,omitempty" msgpack:"annotations,omitempty"`
	Supertypes  []string             `json:"supertypes,omitempty" msgpack:"supertypes,omitempty"`
	Methods     []MethodSnapshot     `json:"methods,omitempty" msgpack:"methods,omitempty"`
	Fields      []FieldSnapshot      `json:"fields,omitempty" msgpack:"fields,omitempty"`
	Nested      []TypeSnapshot       `json:"nested,omitempty" msgpack:"nested,omitempty"`
}

type MethodSnapshot struct {
	Name        string               `json:"name" msgpack:"name"`
	Constructor bool                 `json:"constructor,omitempty" msgpack:"constructor,omitempty"`
	Modifiers   []string             `json:"modifiers,omitempty" msgpack:"modifiers,omitempty"`
	Annotations []AnnotationSnapshot `json:"annotations,omitempty" msgpack:"annotations,omitempty"`
	Result      string               `json:"result,omitempty" msgpack:"result,omitempty"`
	Params      []ParamSnapshot      `json:"params,omitempty" msgpack:"params,omitempty"`
}

type ParamSnapshot struct {
	Name    string `json:"name" msgpack:"name"`
	Type    string `json:"type" msgpack:"type"`
	Varargs bool   `json:"varargs,omitempty" msgpack:"varargs,omitempty"`
}

type FieldSnapshot struct {
	Name      string   `json:"name" msgpack:"name"`
	Type      string   `json:"type,omitempty" msgpack:"type,omitempty"`
	Modifiers []string `json:"modifiers,omitempty" msgpack:"modifiers,omitempty"`
}

// Snapshot converts u into its serialisable form. Type references use the
// resolved canonical name when known.
func Snapshot(u *Unit) UnitSnapshot {
	out := UnitSnapshot{Path: u.Path, Package: u.Package}
	for _, imp := range u.Imports {
		out.Imports = append(out.Imports, ImportSnapshot{Path: imp.Path, Static: imp.Static, Wildcard: imp.Wildcard})
	}
	out.Types = make([]TypeSnapshot, 0, len(u.Types))
	for _, t := range u.Types {
		out.Types = append(out.Types, snapshotType(t))
	}
	return out
}

func snapshotType(t *Type) TypeSnapshot {
	ts := TypeSnapshot{
		Kind:        t.TypeKind.String(),
		Name:        t.Qualified,
		Modifiers:   t.Mods.Words(),
		Annotations: snapshotAnnotations(t.Annots),
	}
	for _, st := range t.Supertypes() {
		ts.Supertypes = append(ts.Supertypes, refName(st))
	}
	for _, m := range t.Members {
		switch v := m.(type) {
		case *Method:
			ms := MethodSnapshot{
				Name:        v.Name,
				Constructor: v.Constructor,
				Modifiers:   v.Mods.Words(),
				Annotations: snapshotAnnotations(v.Annots),
			}
			if !v.Constructor {
				ms.Result = refName(v.Result)
			}
			for _, p := range v.Params() {
				ms.Params = append(ms.Params, ParamSnapshot{Name: p.Name, Type: refName(p.Type), Varargs: p.Varargs})
			}
			ts.Methods = append(ts.Methods, ms)
		case *Field:
			ts.Fields = append(ts.Fields, FieldSnapshot{Name: v.Name, Type: refName(v.Type), Modifiers: v.Mods.Words()})
		case *Type:
			ts.Nested = append(ts.Nested, snapshotType(v))
		}
	}
	return ts
}

func snapshotAnnotations(list []*Annotation) []AnnotationSnapshot {
	if len(list) == 0 {
		return nil
	}
	out := make([]AnnotationSnapshot, 0, len(list))
	for _, a := range list {
		as := AnnotationSnapshot{Name: a.Name}
		if len(a.Args) > 0 {
			as.Args = make(map[string]string, len(a.Args))
			for _, arg := range a.Args {
				as.Args[arg.Key] = arg.Value.Text
			}
		}
		out = append(out, as)
	}
	return out
}

func refName(t TypeRef) string {
	if t.Name != "" {
		return t.Erasure()
	}
	return t.Text
}
