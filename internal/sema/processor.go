package sema

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"busguard/internal/decl"
	"busguard/internal/diag"
	"busguard/internal/processor"
)

const (
	ProcessorID      = "ForgeEventBusSubscriber"
	ProcessorVersion = "1.0.0"
)

// Stats counts candidates by outcome across all rounds.
type Stats struct {
	Candidates int64
	Skipped    int64
	Valid      int64
	Reported   int64
	Failed     int64
}

// EventProcessor runs the listener checks over every method carrying the
// listener marker.
type EventProcessor struct {
	names Names
	env   *processor.Env
	log   *zap.Logger

	candidates atomic.Int64
	skipped    atomic.Int64
	valid      atomic.Int64
	reported   atomic.Int64
	failed     atomic.Int64
}

var _ processor.Processor = (*EventProcessor)(nil)

// NewEventProcessor creates the processor; empty names take Forge defaults.
func NewEventProcessor(names Names) *EventProcessor {
	return &EventProcessor{names: names.WithDefaults(), log: zap.NewNop()}
}

// Factory returns a registry factory producing processors for names.
func Factory(names Names) processor.Factory {
	return func() processor.Processor { return NewEventProcessor(names) }
}

func (p *EventProcessor) ID() string      { return ProcessorID }
func (p *EventProcessor) Version() string { return ProcessorVersion }

func (p *EventProcessor) SupportedAnnotationTypes() []string {
	return []string{p.names.Listener}
}

func (p *EventProcessor) SupportedOptions() []string { return []string{} }

func (p *EventProcessor) Init(env *processor.Env) {
	p.env = env
	if env != nil && env.Logger != nil {
		p.log = env.Logger.Named("sema")
	}
}

// Names returns the effective names.
func (p *EventProcessor) Names() Names { return p.names }

// Stats returns a snapshot of the counters.
func (p *EventProcessor) Stats() Stats {
	return Stats{
		Candidates: p.candidates.Load(),
		Skipped:    p.skipped.Load(),
		Valid:      p.valid.Load(),
		Reported:   p.reported.Load(),
		Failed:     p.failed.Load(),
	}
}

// Process validates every listener method of the round. It always claims
// the listener marker.
func (p *EventProcessor) Process(_ []string, round processor.RoundEnv) bool {
	var methods []*decl.Method
	for _, e := range round.ElementsAnnotatedWith(p.names.Listener) {
		if e.Kind() != decl.KindMethod {
			continue
		}
		if m, ok := e.(*decl.Method); ok {
			methods = append(methods, m)
		}
	}
	if len(methods) == 0 {
		return true
	}

	env := Env{Names: p.names}
	var exec processor.Executor
	if p.env != nil {
		env.Types = p.env.Types
		env.Reporter = p.env.Reporter
		exec = p.env.Exec
	}
	if env.Reporter == nil {
		env.Reporter = diag.NopReporter{}
	}

	if exec == nil || len(methods) == 1 {
		for _, m := range methods {
			p.check(m, env)
		}
	} else {
		env.Reporter = diag.NewSyncReporter(env.Reporter)
		var wg sync.WaitGroup
		for _, m := range methods {
			wg.Add(1)
			task := func() {
				defer wg.Done()
				p.check(m, env)
			}
			if err := exec.Submit(task); err != nil {
				p.log.Warn("executor rejected task, running inline", zap.Error(err))
				task()
			}
		}
		wg.Wait()
	}

	p.log.Debug("listeners checked", zap.Int("candidates", len(methods)), zap.Bool("over", round.ProcessingOver()))
	return true
}

// check validates one candidate; a panic is logged and counted, never propagated.
func (p *EventProcessor) check(m *decl.Method, env Env) {
	p.candidates.Add(1)
	defer func() {
		if r := recover(); r != nil {
			p.failed.Add(1)
			p.log.Error("listener check panicked",
				zap.String("method", describe(m)),
				zap.String("panic", fmt.Sprint(r)),
				zap.Stack("stack"))
		}
	}()
	switch ValidateListener(m, Classify(m.Enclosing(), p.names), env) {
	case OutcomeSkipped:
		p.skipped.Add(1)
	case OutcomeValid:
		p.valid.Add(1)
	case OutcomeReported:
		p.reported.Add(1)
	}
}

func describe(m *decl.Method) string {
	if t := m.Type(); t != nil {
		return t.Qualified + "." + m.Name
	}
	return m.Name
}
