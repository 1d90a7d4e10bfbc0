package processor

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"busguard/internal/decl"
	"busguard/internal/diag"
	"busguard/internal/source"
)

// ErrDuplicateProcessor is returned when two processors share an ID.
var ErrDuplicateProcessor = errors.New("duplicate processor")

// Processor is a declaration pass driven round by round.
type Processor interface {
	ID() string
	Version() string
	// SupportedAnnotationTypes lists canonical annotation names; "*" matches all.
	SupportedAnnotationTypes() []string
	SupportedOptions() []string
	Init(env *Env)
	// Process handles one round. Returning true claims the annotations.
	Process(annotations []string, round RoundEnv) bool
}

// Executor runs tasks concurrently. An ants pool satisfies it.
type Executor interface {
	Submit(task func()) error
}

// Env is what a processor receives at Init.
type Env struct {
	Reporter diag.Reporter
	Types    decl.TypeOracle
	Logger   *zap.Logger
	// Exec is optional; when nil processors run sequentially.
	Exec    Executor
	Options map[string]string
}

// Info returns the identification line of p.
func Info(p Processor) string {
	return fmt.Sprintf("Annotation Processor: %s Version: %s", p.ID(), p.Version())
}

// Invoke emits the identification note on non-terminal rounds and runs p.
func Invoke(p Processor, annotations []string, round RoundEnv, env *Env) bool {
	if !round.ProcessingOver() && env != nil && env.Reporter != nil {
		env.Reporter.Report(diag.ProcInfo, diag.SevInfo, source.Span{}, Info(p), nil)
	}
	return p.Process(annotations, round)
}
