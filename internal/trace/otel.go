package trace

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"

	"busguard/internal/version"
)

// OTelTracer replays span events as OpenTelemetry spans and exports them as
// JSON through stdouttrace. Point events become span events on their parent.
type OTelTracer struct {
	level    Level
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
	out      io.Writer

	mu    sync.Mutex
	spans map[uint64]oteltrace.Span
	ctxs  map[uint64]context.Context
}

// NewOTelTracer exports to w. Spans are written synchronously when they end.
func NewOTelTracer(w io.Writer, level Level) (*OTelTracer, error) {
	exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("otel exporter: %w", err)
	}
	res := resource.NewSchemaless(
		attribute.String("service.name", "busguard"),
		attribute.String("service.version", version.Version),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exp),
		sdktrace.WithResource(res),
	)
	return &OTelTracer{
		level:    level,
		provider: tp,
		tracer:   tp.Tracer("busguard"),
		out:      w,
		spans:    make(map[uint64]oteltrace.Span),
		ctxs:     make(map[uint64]context.Context),
	}, nil
}

func (t *OTelTracer) Emit(ev *Event) {
	if ev == nil || !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	switch ev.Kind {
	case KindSpanBegin:
		parent := context.Background()
		if pc, ok := t.ctxs[ev.ParentID]; ok {
			parent = pc
		}
		ctx, span := t.tracer.Start(parent, ev.Name,
			oteltrace.WithTimestamp(ev.Time),
			oteltrace.WithAttributes(
				attribute.String("busguard.scope", ev.Scope.String()),
				attribute.Int64("busguard.gid", int64(ev.GID)),
			))
		t.spans[ev.SpanID] = span
		t.ctxs[ev.SpanID] = ctx
	case KindSpanEnd:
		span, ok := t.spans[ev.SpanID]
		if !ok {
			return
		}
		span.SetAttributes(extraAttributes(ev)...)
		span.End(oteltrace.WithTimestamp(ev.Time))
		delete(t.spans, ev.SpanID)
		delete(t.ctxs, ev.SpanID)
	case KindPoint:
		span, ok := t.spans[ev.ParentID]
		if !ok {
			return
		}
		span.AddEvent(ev.Name, oteltrace.WithTimestamp(ev.Time), oteltrace.WithAttributes(extraAttributes(ev)...))
	}
}

func extraAttributes(ev *Event) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 1+len(ev.Extra))
	if ev.Detail != "" {
		attrs = append(attrs, attribute.String("busguard.detail", ev.Detail))
	}
	for k, v := range ev.Extra {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			attrs = append(attrs, attribute.Int64(k, n))
			continue
		}
		attrs = append(attrs, attribute.String(k, v))
	}
	return attrs
}

func (t *OTelTracer) Flush() error {
	return t.provider.ForceFlush(context.Background())
}

// Close ends spans that never saw their end event and shuts the provider down.
func (t *OTelTracer) Close() error {
	t.mu.Lock()
	for id, span := range t.spans {
		span.End()
		delete(t.spans, id)
		delete(t.ctxs, id)
	}
	t.mu.Unlock()
	err := t.provider.Shutdown(context.Background())
	if c, ok := t.out.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (t *OTelTracer) Level() Level  { return t.level }
func (t *OTelTracer) Enabled() bool { return t.level > LevelOff }
