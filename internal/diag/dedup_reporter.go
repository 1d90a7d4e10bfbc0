package diag

import "busguard/internal/source"

// findingKey identifies one finding. Severity is implied by the code and
// notes only elaborate, so neither takes part.
type findingKey struct {
	code Code
	span source.Span
	msg  string
}

// DedupReporter forwards each distinct finding to next once.
// Not safe for concurrent use; wrap it in a SyncReporter.
type DedupReporter struct {
	next       Reporter
	seen       map[findingKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[findingKey]struct{}),
	}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil {
		return
	}
	key := findingKey{code: code, span: primary, msg: msg}
	if _, ok := r.seen[key]; ok {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}

// Replay reports every item of bag, e.g. a per-file parse bag.
func (r *DedupReporter) Replay(bag *Bag) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	}
}

// Suppressed returns how many duplicates were dropped.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}
