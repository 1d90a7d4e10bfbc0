package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"busguard/internal/decl"
	"busguard/internal/diag"
	"busguard/internal/source"
)

// DeclsResult is the parsed and resolved declaration model of the inputs.
type DeclsResult struct {
	FileSet *source.FileSet
	Units   []decl.UnitSnapshot
	Bag     *diag.Bag
}

// Decls parses and resolves the inputs without running the listener checks.
func Decls(ctx context.Context, opts Options) (*DeclsResult, error) {
	ws, err := load(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer ws.finish()

	out := &DeclsResult{FileSet: ws.fs, Units: make([]decl.UnitSnapshot, 0, len(ws.units))}
	for _, u := range ws.units {
		snap := decl.Snapshot(u)
		if f := ws.fs.Get(u.File); f != nil {
			snap.Path = f.FormatPath("relative", ws.fs.BaseDir())
		}
		out.Units = append(out.Units, snap)
	}
	out.Bag, _ = finalize(ws.bag, opts.MaxDiagnostics)
	return out, nil
}

// EncodeDecls writes units as indented JSON or as a msgpack array.
func EncodeDecls(w io.Writer, units []decl.UnitSnapshot, format string) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(units); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case "msgpack":
		if err := msgpack.NewEncoder(w).Encode(units); err != nil {
			return fmt.Errorf("encode msgpack: %w", err)
		}
	default:
		return fmt.Errorf("unknown decls format %q (expected: json|msgpack)", format)
	}
	return nil
}
