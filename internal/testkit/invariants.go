// Package testkit holds checks shared by parser tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"busguard/internal/decl"
	"busguard/internal/source"
)

// CheckSpanBounds verifies that every declaration span of u points into sf
// and lies within its content. It holds even for units recovered from
// syntax errors.
func CheckSpanBounds(u *decl.Unit, sf *source.File) error {
	if u == nil || sf == nil {
		return fmt.Errorf("nil unit or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	inBounds := func(what string, sp source.Span) error {
		if !sp.IsValid() {
			return nil
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s span points to different file id: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.End < sp.Start {
			return fmt.Errorf("%s span is inverted: %v", what, sp)
		}
		if sp.End > lenContent {
			return fmt.Errorf("%s span end beyond content: %d > %d", what, sp.End, lenContent)
		}
		return nil
	}

	var failure error
	u.Walk(func(e decl.Element) bool {
		if failure != nil {
			return false
		}
		h := header(e)
		if h == nil {
			return true
		}
		what := e.Kind().String() + " " + h.Name
		if err := inBounds(what, h.Span); err != nil {
			failure = err
			return false
		}
		if err := inBounds(what+" name", h.NameSpan); err != nil {
			failure = err
			return false
		}
		return true
	})
	return failure
}

// CheckSpanInvariants runs CheckSpanBounds plus the nesting invariants of a
// cleanly parsed unit:
// 1) every declaration has a non-empty span
// 2) the name span lies inside the declaration span
// 3) members lie inside their type, parameters inside their method
func CheckSpanInvariants(u *decl.Unit, sf *source.File) error {
	if err := CheckSpanBounds(u, sf); err != nil {
		return err
	}
	var failure error
	u.Walk(func(e decl.Element) bool {
		if failure != nil {
			return false
		}
		h := header(e)
		if h == nil {
			return true
		}
		what := e.Kind().String() + " " + h.Name
		if h.Span.Empty() {
			failure = fmt.Errorf("%s has an empty span: %v", what, h.Span)
			return false
		}
		if h.NameSpan.IsValid() && !h.Span.Contains(h.NameSpan) {
			failure = fmt.Errorf("%s name span %v is outside %v", what, h.NameSpan, h.Span)
			return false
		}
		if parent := header(e.Enclosing()); parent != nil && !parent.Span.Contains(h.Span) {
			failure = fmt.Errorf("%s span %v is outside its parent %v", what, h.Span, parent.Span)
			return false
		}
		return true
	})
	return failure
}

func header(e decl.Element) *decl.Header {
	switch v := e.(type) {
	case *decl.Type:
		return &v.Header
	case *decl.Method:
		return &v.Header
	case *decl.Field:
		return &v.Header
	case *decl.Param:
		return &v.Header
	}
	return nil
}
