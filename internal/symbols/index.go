package symbols

import (
	"fmt"

	"busguard/internal/decl"
	"busguard/internal/diag"
)

// Index declares every type of units (nested ones included) in table.
// A second declaration of the same canonical name is reported as
// SemaDuplicateType and ignored.
func Index(table *Table, units []*decl.Unit, r diag.Reporter) {
	for _, u := range units {
		if u == nil {
			continue
		}
		for _, t := range u.AllTypes() {
			declareType(table, t, r)
		}
	}
}

func declareType(table *Table, t *decl.Type, r diag.Reporter) {
	if t.Qualified == "" {
		return
	}
	id, ok := table.Declare(Symbol{
		Name:  t.Qualified,
		Kind:  KindOf(t.TypeKind),
		Flags: SymbolFlagSource,
		Decl:  t,
		Span:  t.Pos(),
	})
	if ok {
		return
	}
	prev := table.Get(id)
	if !prev.IsSource() {
		// source переопределяет внешнее описание типа
		prev.Flags = SymbolFlagSource
		prev.Kind = KindOf(t.TypeKind)
		prev.Decl = t
		prev.Span = t.Pos()
		prev.Supers = nil
		return
	}
	if r == nil {
		return
	}
	msg := fmt.Sprintf("duplicate type %s", t.Qualified)
	if b := diag.ReportError(r, diag.SemaDuplicateType, t.Pos(), msg); b != nil {
		b.WithNote(prev.Span, "previous declaration here").Emit()
	}
}
