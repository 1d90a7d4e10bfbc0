package types

import (
	"strings"
	"sync"

	"busguard/internal/decl"
	"busguard/internal/symbols"
)

// Graph answers subtype queries over the types known to a symbol table.
// Names are canonical erasures; arrays carry one "[]" suffix per dimension.
// Graph is safe for concurrent use once the table is no longer mutated.
type Graph struct {
	table *symbols.Table

	mu   sync.RWMutex
	memo map[pair]bool
}

type pair struct{ sub, super string }

// NewGraph wraps table. The table must not change while the graph is in use.
func NewGraph(table *symbols.Table) *Graph {
	return &Graph{
		table: table,
		memo:  make(map[pair]bool),
	}
}

// IsSubtype reports whether sub is assignable to super by widening
// reference conversion: identity, the declared supertype closure, any
// reference type to java.lang.Object. Primitives are only subtypes of
// themselves.
func (g *Graph) IsSubtype(sub, super string) bool {
	if sub == "" || super == "" {
		return false
	}
	if sub == super {
		return true
	}
	subElem, subDims := splitArray(sub)
	superElem, superDims := splitArray(super)
	if (subDims == 0 && decl.IsPrimitive(subElem)) || (superDims == 0 && decl.IsPrimitive(superElem)) {
		return false
	}
	if subDims > 0 {
		switch {
		case superDims > 0:
			// S[] <: T[] iff S <: T
			return g.IsSubtype(sub[:len(sub)-2], super[:len(super)-2])
		case super == decl.ObjectName, super == "java.lang.Cloneable", super == "java.io.Serializable":
			return true
		default:
			return false
		}
	}
	if superDims > 0 {
		return false
	}
	if super == decl.ObjectName {
		return true
	}

	key := pair{sub, super}
	g.mu.RLock()
	res, ok := g.memo[key]
	g.mu.RUnlock()
	if ok {
		return res
	}
	res = g.search(sub, super)
	g.mu.Lock()
	g.memo[key] = res
	g.mu.Unlock()
	return res
}

// search walks the supertype closure of sub breadth-first.
func (g *Graph) search(sub, super string) bool {
	seen := map[string]struct{}{sub: {}}
	queue := []string{sub}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		sym := g.table.Lookup(cur)
		if sym == nil {
			continue
		}
		for _, s := range sym.Supers {
			if s == super {
				return true
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			queue = append(queue, s)
		}
	}
	return false
}

// Known reports whether the graph has any information about name.
// Primitives and java.lang.Object are always known.
func (g *Graph) Known(name string) bool {
	elem, _ := splitArray(name)
	if decl.IsPrimitive(elem) || elem == decl.ObjectName {
		return true
	}
	return g.table.Has(elem)
}

// Ancestors returns the transitive supertypes of name in breadth-first
// order, java.lang.Object excluded.
func (g *Graph) Ancestors(name string) []string {
	var out []string
	seen := map[string]struct{}{name: {}}
	queue := []string{name}
	for len(queue) > 0 {
		sym := g.table.Lookup(queue[0])
		queue = queue[1:]
		if sym == nil {
			continue
		}
		for _, s := range sym.Supers {
			if _, ok := seen[s]; ok || s == decl.ObjectName {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
			queue = append(queue, s)
		}
	}
	return out
}

func splitArray(name string) (string, int) {
	dims := 0
	for strings.HasSuffix(name, "[]") {
		name = name[:len(name)-2]
		dims++
	}
	return name, dims
}
