package symbols

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// Hints provide optional capacity suggestions for the table.
type Hints struct{ Types uint }

// Table indexes every known type by canonical name.
type Table struct {
	data   []*Symbol
	byName map[string]SymbolID
}

// NewTable builds a fresh table with optional capacity hints.
func NewTable(h Hints) *Table {
	capHint, err := safecast.Conv[uint32](h.Types)
	if err != nil {
		panic(fmt.Errorf("type capacity overflow: %w", err))
	}
	data := make([]*Symbol, 1, capHint+1) // index 0 reserved
	return &Table{
		data:   data,
		byName: make(map[string]SymbolID, capHint),
	}
}

// Declare adds sym under sym.Name. When the name is taken it returns the
// existing ID and false.
func (t *Table) Declare(sym Symbol) (SymbolID, bool) {
	if id, ok := t.byName[sym.Name]; ok {
		return id, false
	}
	n, err := safecast.Conv[uint32](len(t.data))
	if err != nil {
		panic(fmt.Errorf("symbol table overflow: %w", err))
	}
	id := SymbolID(n)
	s := sym
	t.data = append(t.data, &s)
	t.byName[sym.Name] = id
	return id, true
}

// DeclareExternal registers a type known only by name and supertypes.
// Source declarations take precedence: an existing symbol is left untouched.
// Supertypes of an existing external symbol are merged.
func (t *Table) DeclareExternal(name string, kind SymbolKind, flags SymbolFlags, supers []string) SymbolID {
	if id, ok := t.byName[name]; ok {
		sym := t.data[id]
		if !sym.IsSource() {
			sym.Supers = mergeNames(sym.Supers, supers)
			if kind != SymbolInvalid {
				sym.Kind = kind
			}
		}
		return id
	}
	if flags == 0 {
		flags = SymbolFlagExternal
	}
	id, _ := t.Declare(Symbol{
		Name:   name,
		Kind:   kind,
		Flags:  flags,
		Supers: append([]string(nil), supers...),
	})
	return id
}

// Get returns the symbol for id or nil.
func (t *Table) Get(id SymbolID) *Symbol {
	if t == nil || !id.IsValid() || int(id) >= len(t.data) {
		return nil
	}
	return t.data[id]
}

// Lookup finds a symbol by canonical name.
func (t *Table) Lookup(name string) *Symbol {
	if t == nil {
		return nil
	}
	if id, ok := t.byName[name]; ok {
		return t.data[id]
	}
	return nil
}

// Has reports whether name is a known type.
func (t *Table) Has(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.byName[name]
	return ok
}

// Len returns the number of symbols.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.data) - 1
}

// Names returns all canonical names sorted.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.byName))
	for name := range t.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Each calls fn for every symbol in declaration order.
func (t *Table) Each(fn func(SymbolID, *Symbol)) {
	if t == nil {
		return
	}
	for i := 1; i < len(t.data); i++ {
		fn(SymbolID(i), t.data[i]) //nolint:gosec // i < len(t.data), checked in Declare
	}
}

func mergeNames(dst, src []string) []string {
	for _, s := range src {
		dup := false
		for _, d := range dst {
			if d == s {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, s)
		}
	}
	return dst
}
