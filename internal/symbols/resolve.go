package symbols

import (
	"fmt"
	"strings"

	"busguard/internal/decl"
	"busguard/internal/diag"
)

// ResolverOptions configure name resolution.
type ResolverOptions struct {
	Reporter diag.Reporter
	// ReportUnresolved emits a SemaUnresolvedType warning for every written
	// type that could not be bound to a known type.
	ReportUnresolved bool
}

// Resolver binds written type names of parsed units to canonical names.
type Resolver struct {
	table *Table
	opts  ResolverOptions
}

// NewResolver creates a resolver over table.
func NewResolver(table *Table, opts ResolverOptions) *Resolver {
	return &Resolver{table: table, opts: opts}
}

// ResolveAll resolves every unit in two steps: type headers (supertypes and
// type parameter bounds) first, so that member types inherited from
// supertypes are visible while members are resolved.
func (r *Resolver) ResolveAll(units []*decl.Unit) {
	resolvers := make([]*fileResolver, 0, len(units))
	for _, u := range units {
		if u == nil {
			continue
		}
		fr := r.newFileResolver(u)
		fr.resolveHeaders()
		resolvers = append(resolvers, fr)
	}
	for _, fr := range resolvers {
		fr.resolveMembers()
	}
}

type fileResolver struct {
	r    *Resolver
	unit *decl.Unit
	// single maps simple names of single-type imports to canonical names.
	single map[string]string
	// onDemand lists the prefixes of wildcard imports in source order.
	onDemand []string
}

func (r *Resolver) newFileResolver(u *decl.Unit) *fileResolver {
	fr := &fileResolver{
		r:      r,
		unit:   u,
		single: make(map[string]string, len(u.Imports)),
	}
	for _, imp := range u.Imports {
		switch {
		case imp.Wildcard:
			fr.onDemand = append(fr.onDemand, imp.Path)
		case imp.Static:
			// import static a.B.Inner; импортирует member type, если он известен
			if r.table.Has(imp.Path) {
				fr.single[imp.SimpleName()] = imp.Path
			}
		default:
			if _, dup := fr.single[imp.SimpleName()]; !dup {
				fr.single[imp.SimpleName()] = imp.Path
			}
		}
	}
	return fr
}

// resolveHeaders resolves supertypes and type parameter bounds and records
// the direct supertypes in the table.
func (fr *fileResolver) resolveHeaders() {
	for _, t := range fr.unit.AllTypes() {
		outer := decl.EnclosingType(t)
		for i := range t.TypeParams {
			fr.resolveBounds(&t.TypeParams[i], t, typeVars(t))
		}
		// супертипы разрешаются в области внешнего типа, но с видимостью своих type vars
		if t.Super != nil {
			fr.resolveRef(t.Super, outer, typeVars(t))
		}
		for i := range t.Interfaces {
			fr.resolveRef(&t.Interfaces[i], outer, typeVars(t))
		}

		sym := fr.r.table.Lookup(t.Qualified)
		if sym == nil || sym.Decl != t {
			continue
		}
		sym.Supers = sym.Supers[:0]
		for _, ref := range t.Supertypes() {
			if ref.Resolved() {
				sym.Supers = append(sym.Supers, ref.Name)
			}
		}
		if t.Super == nil {
			if s := implicitSuper(t.TypeKind); s != "" {
				sym.Supers = append(sym.Supers, s)
			}
		}
	}
}

// resolveMembers resolves annotations, fields, methods and parameters.
func (fr *fileResolver) resolveMembers() {
	fr.unit.Walk(func(e decl.Element) bool {
		ctx := decl.EnclosingType(e)
		switch v := e.(type) {
		case *decl.Type:
			fr.resolveAnnotations(v.Annots, ctx)
		case *decl.Field:
			fr.resolveAnnotations(v.Annots, ctx)
			fr.resolveRef(&v.Type, ctx, typeVars(ctx))
		case *decl.Method:
			fr.resolveAnnotations(v.Annots, ctx)
			for i := range v.TypeParams {
				fr.resolveBounds(&v.TypeParams[i], ctx, methodVars(v, ctx))
			}
			// границы уже разрешены, пересобираем копию
			vars := methodVars(v, ctx)
			if !v.Constructor {
				fr.resolveRef(&v.Result, ctx, vars)
			}
			for _, p := range v.Params() {
				fr.resolveAnnotations(p.Annots, ctx)
				fr.resolveRef(&p.Type, ctx, vars)
			}
			return false
		}
		return true
	})
}

func (fr *fileResolver) resolveBounds(tp *decl.TypeParam, ctx *decl.Type, vars []decl.TypeParam) {
	for i := range tp.Bounds {
		fr.resolveRef(&tp.Bounds[i], ctx, vars)
	}
}

func (fr *fileResolver) resolveAnnotations(annots []*decl.Annotation, ctx *decl.Type) {
	for _, a := range annots {
		written := a.Written
		if written == "" {
			written = a.Name
		}
		if name, ok := fr.resolveName(written, ctx, nil); ok {
			a.Name = name
		}
	}
}

func (fr *fileResolver) resolveRef(ref *decl.TypeRef, ctx *decl.Type, vars []decl.TypeParam) {
	if ref == nil || ref.Text == "" || ref.Resolved() {
		return
	}
	base := ref.Base()
	name, ok := fr.resolveName(base, ctx, vars)
	if ok {
		ref.Name = name
		return
	}
	if fr.r.opts.ReportUnresolved && fr.r.opts.Reporter != nil {
		msg := fmt.Sprintf("cannot resolve type %s", base)
		if b := diag.ReportWarning(fr.r.opts.Reporter, diag.SemaUnresolvedType, ref.Span, msg); b != nil {
			b.Emit()
		}
	}
}

// resolveName binds a possibly qualified written name. Lookup order for the
// first segment: type variables, the enclosing types and their member types
// (inherited ones included), single-type imports, the unit's package,
// on-demand imports, java.lang. A name whose first segment binds nowhere is
// tried as a fully qualified name.
func (fr *fileResolver) resolveName(written string, ctx *decl.Type, vars []decl.TypeParam) (string, bool) {
	written = strings.TrimSpace(written)
	if written == "" {
		return "", false
	}
	if decl.IsPrimitive(written) {
		return written, true
	}
	segs := strings.Split(written, ".")
	if len(segs) == 1 {
		for _, tv := range vars {
			if tv.Name == written {
				return tv.Erasure(), true
			}
		}
	}
	if head, ok := fr.resolveSimple(segs[0], ctx); ok {
		return fr.selectMembers(head, segs[1:]), true
	}
	return fr.resolveQualified(segs)
}

func (fr *fileResolver) resolveSimple(name string, ctx *decl.Type) (string, bool) {
	table := fr.r.table
	for t := ctx; t != nil; t = decl.EnclosingType(t) {
		if t.Name == name {
			return t.Qualified, true
		}
		if m, ok := fr.memberType(t.Qualified, name, nil); ok {
			return m, true
		}
	}
	if path, ok := fr.single[name]; ok {
		return path, true
	}
	if cand := qualify(fr.unit.Package, name); table.Has(cand) {
		return cand, true
	}
	for _, prefix := range fr.onDemand {
		if cand := prefix + "." + name; table.Has(cand) {
			return cand, true
		}
	}
	if cand := "java.lang." + name; table.Has(cand) {
		return cand, true
	}
	return "", false
}

// resolveQualified treats segs as a fully qualified name: the longest known
// type prefix wins and the remaining segments select member types.
func (fr *fileResolver) resolveQualified(segs []string) (string, bool) {
	if len(segs) < 2 {
		return "", false
	}
	for i := len(segs); i >= 2; i-- {
		prefix := strings.Join(segs[:i], ".")
		if fr.r.table.Has(prefix) {
			return fr.selectMembers(prefix, segs[i:]), true
		}
	}
	return "", false
}

// selectMembers walks Outer.Inner.Deeper member selections starting at head.
func (fr *fileResolver) selectMembers(head string, rest []string) string {
	cur := head
	for _, seg := range rest {
		if m, ok := fr.memberType(cur, seg, nil); ok {
			cur = m
			continue
		}
		cur = cur + "." + seg
	}
	return cur
}

// memberType finds a member type declared in owner or inherited from one of
// its supertypes.
func (fr *fileResolver) memberType(owner, name string, seen map[string]struct{}) (string, bool) {
	table := fr.r.table
	if cand := owner + "." + name; table.Has(cand) {
		return cand, true
	}
	sym := table.Lookup(owner)
	if sym == nil {
		return "", false
	}
	if seen == nil {
		seen = make(map[string]struct{})
	}
	if _, ok := seen[owner]; ok {
		return "", false
	}
	seen[owner] = struct{}{}
	for _, sup := range sym.Supers {
		if m, ok := fr.memberType(sup, name, seen); ok {
			return m, true
		}
	}
	return "", false
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

func methodVars(m *decl.Method, ctx *decl.Type) []decl.TypeParam {
	out := append([]decl.TypeParam(nil), m.TypeParams...)
	return append(out, typeVars(ctx)...)
}

// typeVars collects the type variables visible in t: its own first, then
// those of enclosing types.
func typeVars(t *decl.Type) []decl.TypeParam {
	var out []decl.TypeParam
	for cur := t; cur != nil; cur = decl.EnclosingType(cur) {
		out = append(out, cur.TypeParams...)
	}
	return out
}
