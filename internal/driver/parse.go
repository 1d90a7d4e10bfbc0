package driver

import (
	"context"
	"runtime"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"busguard/internal/decl"
	"busguard/internal/diag"
	"busguard/internal/parser"
	"busguard/internal/source"
	"busguard/internal/trace"
)

// parsed is the outcome of one file.
type parsed struct {
	Path string
	Unit *decl.Unit // nil when the file could not be loaded
	Bag  *diag.Bag
}

// loadFiles reads every path into fs. FileSet is not safe for concurrent
// appends, so loading stays sequential; failures become IOLoadFileError
// diagnostics in the slot of the file.
func loadFiles(fs *source.FileSet, paths []string) ([]source.FileID, []*diag.Bag) {
	ids := make([]source.FileID, len(paths))
	bags := make([]*diag.Bag, len(paths))
	for i, path := range paths {
		bags[i] = diag.NewBag(0)
		id, err := fs.Load(path)
		if err != nil {
			bags[i].Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{}, "failed to load file: "+err.Error()))
			continue
		}
		ids[i] = id
	}
	return ids, bags
}

// parseFiles loads and parses paths with at most jobs workers. Results are
// indexed by input position, so the order is deterministic whatever the
// scheduling.
func parseFiles(ctx context.Context, fs *source.FileSet, paths []string, jobs int, sink ProgressSink, log *zap.Logger) ([]parsed, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	for _, p := range paths {
		emit(sink, Event{File: p, Stage: StageParse, Status: StatusQueued})
	}

	ids, bags := loadFiles(fs, paths)

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]parsed, len(paths))
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = parsed{Path: path, Bag: bags[i]}
			if ids[i] == source.NoFileID {
				emit(sink, Event{File: path, Stage: StageParse, Status: StatusError})
				return nil
			}

			started := time.Now()
			emit(sink, Event{File: path, Stage: StageParse, Status: StatusWorking})
			span := trace.Begin(tracer, trace.ScopeFile, "file:"+source.BaseName(path), parent)

			res := parser.ParseSource(fs, ids[i], diag.BagReporter{Bag: bags[i]})
			results[i].Unit = res.Unit

			span.WithExtra("types", strconv.Itoa(len(res.Unit.AllTypes()))).
				WithExtra("errors", strconv.FormatUint(uint64(res.Errors), 10)).
				End("")
			status := StatusDone
			if bags[i].HasErrors() {
				status = StatusError
			}
			emit(sink, Event{File: path, Stage: StageParse, Status: status, Elapsed: time.Since(started)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	log.Debug("parsed", zap.Int("files", len(paths)), zap.Int("jobs", jobs))
	return results, nil
}

// units returns the parsed units in input order, skipping failed loads.
func units(results []parsed) []*decl.Unit {
	out := make([]*decl.Unit, 0, len(results))
	for _, r := range results {
		if r.Unit != nil {
			out = append(out, r.Unit)
		}
	}
	return out
}
