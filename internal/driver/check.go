package driver

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"busguard/internal/config"
	"busguard/internal/decl"
	"busguard/internal/diag"
	"busguard/internal/logging"
	"busguard/internal/observ"
	"busguard/internal/processor"
	"busguard/internal/sema"
	"busguard/internal/source"
	"busguard/internal/symbols"
	"busguard/internal/trace"
	"busguard/internal/types"
)

// Options configure a run.
type Options struct {
	// Inputs are files or directories; empty means the manifest sources.
	Inputs   []string
	Manifest *config.Manifest // nil means config.DefaultManifest
	// Jobs limits parse workers; 0 means GOMAXPROCS.
	Jobs int
	// Workers sizes the validation pool; 0 validates sequentially.
	Workers int
	// MaxDiagnostics caps the final bag; 0 means no cap.
	MaxDiagnostics int
	// ReportUnresolved turns unresolved type names into warnings.
	ReportUnresolved bool
	// TimingsDiagnostic appends an ObsTimings INFO diagnostic with the phase report.
	TimingsDiagnostic bool

	Logger   *zap.Logger
	Progress ProgressSink
	Timer    *observ.Timer
}

// Result is everything a run produced.
type Result struct {
	FileSet *source.FileSet
	Files   []string
	Units   []*decl.Unit
	Bag     *diag.Bag
	Table   *symbols.Table
	Types   *types.Graph
	Rounds  []processor.RoundStats
	Stats   sema.Stats
	// Dropped counts diagnostics cut by MaxDiagnostics.
	Dropped int
}

// HasErrors reports whether the run produced an ERROR diagnostic.
func (r *Result) HasErrors() bool {
	return r != nil && r.Bag != nil && r.Bag.HasErrors()
}

func (o *Options) manifest() *config.Manifest {
	if o.Manifest != nil {
		return o.Manifest
	}
	m := config.DefaultManifest()
	return &m
}

func (o *Options) logger(ctx context.Context) *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logging.FromContext(ctx)
}

func (o *Options) timer() *observ.Timer {
	if o.Timer != nil {
		return o.Timer
	}
	return observ.NewTimer()
}

// workspace holds the front half of a run: parsed and resolved sources.
type workspace struct {
	fs     *source.FileSet
	files  []string
	units  []*decl.Unit
	bag    *diag.Bag
	rep    *diag.DedupReporter
	table  *symbols.Table
	graph  *types.Graph
	timer  *observ.Timer
	log    *zap.Logger
	manif  *config.Manifest
	ctx    context.Context
	finish func()
}

// load discovers, parses and resolves the inputs.
func load(ctx context.Context, opts Options) (*workspace, error) {
	log := logging.Named(opts.logger(ctx), "driver")
	timer := opts.timer()
	m := opts.manifest()

	ctx, root := trace.StartSpan(ctx, trace.ScopeDriver, "busguard")
	ws := &workspace{timer: timer, log: log, manif: m, ctx: ctx, bag: diag.NewBag(0)}
	ws.rep = diag.NewDedupReporter(diag.BagReporter{Bag: ws.bag})
	ws.finish = func() { root.End(strconv.Itoa(ws.bag.Len()) + " diagnostics") }

	// discover
	idx := timer.Begin(string(StageDiscover))
	files, err := Discover(opts.Inputs, m)
	timer.End(idx, "")
	if err != nil {
		ws.finish()
		return nil, err
	}
	ws.files = files
	timer.Add("files", int64(len(files)))
	log.Info("sources discovered", zap.Int("files", len(files)))

	baseDir := m.Root
	if baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			baseDir = wd
		}
	}
	ws.fs = source.NewFileSetWithBase(baseDir)

	if len(files) == 0 {
		diag.ReportWarning(ws.rep, diag.IONoSources, source.Span{}, "no "+JavaExt+" files found").Emit()
	}

	// parse
	emit(opts.Progress, Event{Stage: StageParse, Status: StatusWorking})
	pctx, span := trace.StartSpan(ctx, trace.ScopePass, string(StageParse))
	idx = timer.Begin(string(StageParse))
	started := time.Now()
	results, err := parseFiles(pctx, ws.fs, files, opts.Jobs, opts.Progress, log)
	timer.End(idx, fmt.Sprintf("%d files", len(files)))
	span.End("")
	if err != nil {
		ws.finish()
		return nil, fmt.Errorf("parse: %w", err)
	}
	for _, r := range results {
		ws.rep.Replay(r.Bag)
	}
	ws.units = units(results)
	emit(opts.Progress, Event{Stage: StageParse, Status: StatusDone, Elapsed: time.Since(started)})

	// resolve
	emit(opts.Progress, Event{Stage: StageResolve, Status: StatusWorking})
	_, span = trace.StartSpan(ctx, trace.ScopePass, string(StageResolve))
	idx = timer.Begin(string(StageResolve))
	ws.table = buildTable(ws.units, m, ws.rep, opts.ReportUnresolved)
	ws.graph = types.NewGraph(ws.table)
	timer.End(idx, fmt.Sprintf("%d types", ws.table.Len()))
	span.WithExtra("types", strconv.Itoa(ws.table.Len())).End("")
	timer.Add("types", int64(ws.table.Len()))
	emit(opts.Progress, Event{Stage: StageResolve, Status: StatusDone})

	return ws, nil
}

// buildTable declares java.lang, the source types and the external event
// hierarchy, then resolves every written type name.
func buildTable(units []*decl.Unit, m *config.Manifest, r diag.Reporter, reportUnresolved bool) *symbols.Table {
	table := symbols.NewTable(symbols.Hints{Types: uint(len(units)) * 4})
	symbols.DeclarePrelude(table)
	symbols.Index(table, units, r)
	types.DeclareExternals(table, m.ExternalTypes())
	symbols.NewResolver(table, symbols.ResolverOptions{
		Reporter:         r,
		ReportUnresolved: reportUnresolved,
	}).ResolveAll(units)
	return table
}

// Check runs the whole pipeline. Rule violations land in Result.Bag; the
// error is reserved for failures of the run itself (bad input path,
// cancellation, worker pool setup).
func Check(ctx context.Context, opts Options) (*Result, error) {
	ws, err := load(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer ws.finish()

	res := &Result{
		FileSet: ws.fs,
		Files:   ws.files,
		Units:   ws.units,
		Bag:     ws.bag,
		Table:   ws.table,
		Types:   ws.graph,
	}

	env := &processor.Env{
		Reporter: diag.NewSyncReporter(ws.rep),
		Types:    ws.graph,
		Logger:   ws.log,
	}
	if opts.Workers > 0 {
		pool, err := ants.NewPool(opts.Workers)
		if err != nil {
			return nil, fmt.Errorf("validation pool: %w", err)
		}
		defer pool.Release()
		env.Exec = pool
	}

	reg := processor.NewRegistry()
	if err := reg.Register(sema.ProcessorID, sema.Factory(ws.manif.Names())); err != nil {
		return nil, err
	}
	procs := reg.All()
	ep, _ := procs[0].(*sema.EventProcessor)
	host := processor.NewHost(env, procs...)

	emit(opts.Progress, Event{Stage: StageProcess, Status: StatusWorking})
	_, span := trace.StartSpan(ws.ctx, trace.ScopePass, string(StageProcess))
	idx := ws.timer.Begin(string(StageProcess))
	rounds, err := host.Run(ws.ctx, ws.units)
	res.Rounds = rounds
	res.Stats = ep.Stats()
	ws.timer.End(idx, fmt.Sprintf("%d listeners", res.Stats.Candidates))
	span.WithExtra("listeners", strconv.FormatInt(res.Stats.Candidates, 10)).End("")
	if err != nil {
		emit(opts.Progress, Event{Stage: StageProcess, Status: StatusError, Err: err})
		return nil, fmt.Errorf("process: %w", err)
	}
	ws.timer.Add("listeners", res.Stats.Candidates)
	ws.timer.Add("reported", res.Stats.Reported)
	emit(opts.Progress, Event{Stage: StageProcess, Status: StatusDone})

	if n := ws.rep.Suppressed(); n > 0 {
		ws.log.Debug("duplicate diagnostics suppressed", zap.Int("count", n))
	}
	res.Bag, res.Dropped = finalize(ws.bag, opts.MaxDiagnostics)
	if res.Dropped > 0 {
		ws.log.Warn("diagnostics truncated", zap.Int("kept", res.Bag.Len()), zap.Int("dropped", res.Dropped))
	}
	if opts.TimingsDiagnostic {
		appendTimingDiagnostic(res.Bag, ws.timer.Report())
	}

	ws.log.Info("check finished",
		zap.Int("files", len(res.Files)),
		zap.Int64("listeners", res.Stats.Candidates),
		zap.Int64("reported", res.Stats.Reported),
		zap.Int("diagnostics", res.Bag.Len()))
	return res, nil
}

// finalize sorts bag and applies the cap.
func finalize(bag *diag.Bag, maxDiagnostics int) (*diag.Bag, int) {
	bag.Sort()
	if maxDiagnostics <= 0 || bag.Len() <= maxDiagnostics {
		return bag, 0
	}
	out := diag.NewBag(maxDiagnostics)
	for _, d := range bag.Items() {
		if !out.Add(d) {
			break
		}
	}
	return out, bag.Len() - out.Len()
}
