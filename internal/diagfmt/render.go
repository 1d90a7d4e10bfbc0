package diagfmt

import (
	"io"

	"busguard/internal/diag"
	"busguard/internal/source"
)

// RenderOpts bundles the options of every renderer so callers can switch on
// Format without building each option set.
type RenderOpts struct {
	Format Format
	Pretty PrettyOpts
	JSON   JSONOpts
	Sarif  SarifRunMeta
}

// Render writes bag in the selected format.
func Render(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts RenderOpts) error {
	switch opts.Format {
	case FormatShort:
		Short(w, bag, fs, opts.Pretty.PathMode)
	case FormatJSON:
		return JSON(w, bag, fs, opts.JSON)
	case FormatSARIF:
		return Sarif(w, bag, fs, opts.Sarif)
	default:
		Pretty(w, bag, fs, opts.Pretty)
	}
	return nil
}
