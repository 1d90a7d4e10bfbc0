// Package observ collects per-run phase timings and counters for --timings.
package observ

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Phase records the duration of one pipeline phase (load, parse, resolve...).
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
	done  bool
}

// Timer tracks pipeline phases and named counters. Safe for concurrent use.
type Timer struct {
	mu       sync.Mutex
	started  time.Time
	phases   []Phase
	counters map[string]int64
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer {
	return &Timer{
		started:  time.Now(),
		phases:   make([]Phase, 0, 8),
		counters: make(map[string]int64),
	}
}

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index. Ending twice keeps the first duration.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) || t.phases[idx].done {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
	p.done = true
}

// Measure runs fn as a phase named name.
func (t *Timer) Measure(name string, fn func() error) error {
	idx := t.Begin(name)
	err := fn()
	note := ""
	if err != nil {
		note = "failed"
	}
	t.End(idx, note)
	return err
}

// Add increments counter name by n.
func (t *Timer) Add(name string, n int64) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.counters[name] += n
	t.mu.Unlock()
}

// Count returns the current value of a counter.
func (t *Timer) Count(name string) int64 {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counters[name]
}

// PhaseReport представляет сжатую информацию о фазе для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	WallMS   float64          `json:"wall_ms"`
	TotalMS  float64          `json:"total_ms"`
	Phases   []PhaseReport    `json:"phases"`
	Counters map[string]int64 `json:"counters,omitempty"`
}

// Report формирует срез фаз, сумму их длительностей и счётчики.
// Незавершённые фазы не попадают в отчёт.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	report := Report{
		WallMS: durationToMillis(time.Since(t.started)),
		Phases: make([]PhaseReport, 0, len(t.phases)),
	}
	var total time.Duration
	for _, phase := range t.phases {
		if !phase.done {
			continue
		}
		total += phase.Dur
		report.Phases = append(report.Phases, PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		})
	}
	report.TotalMS = durationToMillis(total)
	if len(t.counters) > 0 {
		report.Counters = make(map[string]int64, len(t.counters))
		for k, v := range t.counters {
			report.Counters[k] = v
		}
	}
	return report
}

// Summary renders the report as an aligned text table.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-20s %8.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %-20s %8.2f ms\n", "total", report.TotalMS)

	if len(report.Counters) > 0 {
		names := make([]string, 0, len(report.Counters))
		for k := range report.Counters {
			names = append(names, k)
		}
		sort.Strings(names)
		sb.WriteString("counters:\n")
		for _, k := range names {
			fmt.Fprintf(&sb, "  %-20s %8d\n", k, report.Counters[k])
		}
	}
	return sb.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
