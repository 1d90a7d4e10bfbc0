package trace

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapTracer logs span boundaries at debug level through a zap logger.
type ZapTracer struct {
	log   *zap.Logger
	level Level
}

// NewZapTracer wraps logger. A nil logger yields a tracer that drops events.
func NewZapTracer(logger *zap.Logger, level Level) *ZapTracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapTracer{log: logger.Named("trace"), level: level}
}

func (t *ZapTracer) Emit(ev *Event) {
	if ev == nil || !t.level.ShouldEmit(ev.Scope) {
		return
	}
	ce := t.log.Check(zapcore.DebugLevel, ev.Kind.String()+" "+ev.Name)
	if ce == nil {
		return
	}
	fields := make([]zap.Field, 0, 5+len(ev.Extra))
	fields = append(fields,
		zap.String("scope", ev.Scope.String()),
		zap.Uint64("span", ev.SpanID),
	)
	if ev.ParentID != 0 {
		fields = append(fields, zap.Uint64("parent", ev.ParentID))
	}
	if ev.Detail != "" {
		fields = append(fields, zap.String("detail", ev.Detail))
	}
	for k, v := range ev.Extra {
		fields = append(fields, zap.String(k, v))
	}
	ce.Write(fields...)
}

func (t *ZapTracer) Flush() error {
	// stderr/stdout sync returns EINVAL on some platforms; nothing to report.
	_ = t.log.Sync() //nolint:errcheck
	return nil
}

func (t *ZapTracer) Close() error  { return t.Flush() }
func (t *ZapTracer) Level() Level  { return t.level }
func (t *ZapTracer) Enabled() bool { return t.level > LevelOff }
