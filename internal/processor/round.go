package processor

import (
	"sort"
	"sync"

	"busguard/internal/decl"
)

// RoundEnv is the read-only view of one round.
type RoundEnv interface {
	// RootElements returns the top-level types of the round in file order.
	RootElements() []decl.Element
	// ElementsAnnotatedWith returns every element carrying the annotation,
	// in source order.
	ElementsAnnotatedWith(name string) []decl.Element
	ProcessingOver() bool
}

// Round is a RoundEnv over parsed units.
type Round struct {
	Number int
	units  []*decl.Unit
	over   bool

	once  sync.Once
	index map[string][]decl.Element
}

// NewRound creates round number n over units. over marks the terminal round.
func NewRound(n int, units []*decl.Unit, over bool) *Round {
	return &Round{Number: n, units: units, over: over}
}

func (r *Round) ProcessingOver() bool { return r.over }

func (r *Round) RootElements() []decl.Element {
	var out []decl.Element
	for _, u := range r.units {
		if u == nil {
			continue
		}
		for _, t := range u.Types {
			out = append(out, t)
		}
	}
	return out
}

func (r *Round) ElementsAnnotatedWith(name string) []decl.Element {
	r.build()
	return append([]decl.Element(nil), r.index[name]...)
}

// AnnotationNames returns the distinct annotation names present in the round, sorted.
func (r *Round) AnnotationNames() []string {
	r.build()
	out := make([]string, 0, len(r.index))
	for name := range r.index {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (r *Round) build() {
	r.once.Do(func() {
		r.index = make(map[string][]decl.Element)
		for _, u := range r.units {
			if u == nil {
				continue
			}
			u.Walk(func(e decl.Element) bool {
				seen := make(map[string]struct{}, len(e.Annotations()))
				for _, a := range e.Annotations() {
					if _, dup := seen[a.Name]; dup {
						continue // repeatable annotation: element listed once
					}
					seen[a.Name] = struct{}{}
					r.index[a.Name] = append(r.index[a.Name], e)
				}
				return true
			})
		}
	})
}
