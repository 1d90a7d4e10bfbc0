package processor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"busguard/internal/decl"
	"busguard/internal/diag"
	"busguard/internal/source"
)

// RoundStats summarises one round.
type RoundStats struct {
	Number  int
	Over    bool
	Invoked []string
	// Claimed maps processor ID to the annotations it claimed.
	Claimed map[string][]string
}

// Host drives processors through rounds.
type Host struct {
	env   *Env
	procs []Processor
	log   *zap.Logger
}

// NewHost initialises procs with env.
func NewHost(env *Env, procs ...Processor) *Host {
	if env == nil {
		env = &Env{}
	}
	if env.Reporter == nil {
		env.Reporter = diag.NopReporter{}
	}
	log := env.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := &Host{env: env, procs: procs, log: log.Named("processor")}
	for _, p := range procs {
		p.Init(env)
	}
	return h
}

// Run executes one round per element of rounds and a final terminal round.
// A processor is first invoked in a round containing one of its supported
// annotations and then in every later round, the terminal one included.
func (h *Host) Run(ctx context.Context, rounds ...[]*decl.Unit) ([]RoundStats, error) {
	invoked := make([]bool, len(h.procs))
	stats := make([]RoundStats, 0, len(rounds)+1)

	for i := 0; i <= len(rounds); i++ {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("round %d: %w", i+1, err)
		}
		over := i == len(rounds)
		var units []*decl.Unit
		if !over {
			units = rounds[i]
		}
		round := NewRound(i+1, units, over)
		present := round.AnnotationNames()
		st := RoundStats{Number: round.Number, Over: over, Claimed: make(map[string][]string)}

		for pi, p := range h.procs {
			anns := matchAnnotations(p.SupportedAnnotationTypes(), present)
			if len(anns) == 0 && !invoked[pi] {
				continue
			}
			invoked[pi] = true
			st.Invoked = append(st.Invoked, p.ID())
			if h.invoke(p, anns, round) && len(anns) > 0 {
				st.Claimed[p.ID()] = anns
			}
		}
		h.log.Debug("round done",
			zap.Int("round", round.Number),
			zap.Bool("over", over),
			zap.Strings("invoked", st.Invoked),
			zap.Int("annotations", len(present)))
		stats = append(stats, st)
	}
	return stats, nil
}

// invoke runs one processor and turns a panic into a ProcFailure diagnostic.
func (h *Host) invoke(p Processor, anns []string, round *Round) (claimed bool) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("processor panicked", zap.String("processor", p.ID()), zap.Any("panic", r), zap.Stack("stack"))
			msg := fmt.Sprintf("processor %s failed: %v", p.ID(), r)
			h.env.Reporter.Report(diag.ProcFailure, diag.SevError, source.Span{}, msg, nil)
			claimed = false
		}
	}()
	return Invoke(p, anns, round, h.env)
}

// matchAnnotations returns the annotations of present that supported accepts.
func matchAnnotations(supported, present []string) []string {
	var out []string
	for _, name := range present {
		for _, s := range supported {
			if s == "*" || s == name {
				out = append(out, name)
				break
			}
		}
	}
	return out
}
